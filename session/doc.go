// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package session drives one interactive convolution layer.
//
// # Overview
//
// A Session holds an input tensor, a kernel and the output they produce
// under an immutable Configuration. Editing an input cell recomputes the
// whole layer. Any output cell can be explained two ways:
//   - ReceptiveField / AllInfluencing: which input cells feed it
//   - Trace: the term-by-term products that sum to its value
//
// # Basic Usage
//
//	import "github.com/born-ml/convlens/session"
//
//	func main() {
//	    p := session.DefaultParams()
//	    p.PaddingMode = tensor.PadReflect
//	    p.PaddingSize = 1
//
//	    cfg, notices, err := session.Configure(p)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    for _, n := range notices {
//	        log.Println(n)
//	    }
//
//	    s, err := session.New(cfg, session.WithSeed(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    s.SetInputCell(0, 2, 2, "7")
//	    tr, _ := s.Trace(0, 0, 0)
//	    fmt.Println(tr.Total == s.Output().At(0, 0, 0)) // true
//	}
//
// # Configuration Files
//
// Params can be loaded from YAML with LoadParamsFile. Keys match the yaml
// tags of Params; missing keys keep their DefaultParams values.
package session
