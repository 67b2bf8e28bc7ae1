// Package main provides the ConvLens CLI.
//
// It builds one convolution layer from flags or a YAML file, applies input
// edits, and explains a chosen output cell:
//
//	convlens -padding reflect -pad 1 -seed 42 -set 0,2,2=7 -cell 0,0,0
//	convlens -config layer.yaml -stride 2
//	convlens version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/born-ml/convlens/session"
	"github.com/born-ml/convlens/tensor"
)

const version = "v0.1.0-dev"

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("ConvLens %s\n", version)
		return
	}

	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatal(err)
	}
}

// options collects everything the command line asks for.
type options struct {
	configPath string
	params     session.Params
	seed       int64
	verbose    bool
	dumpConfig bool
	edits      cellEdits
	cell       *cellRef
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("convlens", flag.ContinueOnError)
	fs.SetOutput(stderr)

	defaults := session.DefaultParams()
	opts := &options{params: defaults}
	var cell cellRef

	fs.StringVar(&opts.configPath, "config", "", "YAML file with layer parameters (flags override it)")
	fs.IntVar(&opts.params.InputHeight, "height", defaults.InputHeight, "Input height")
	fs.IntVar(&opts.params.InputWidth, "width", defaults.InputWidth, "Input width")
	fs.IntVar(&opts.params.InputChannels, "channels", defaults.InputChannels, "Input channels")
	fs.IntVar(&opts.params.KernelSize, "kernel", defaults.KernelSize, "Kernel size (square)")
	fs.IntVar(&opts.params.OutputChannels, "out", defaults.OutputChannels, "Output channels")
	fs.IntVar(&opts.params.Stride, "stride", defaults.Stride, "Stride")
	fs.TextVar(&opts.params.PaddingMode, "padding", defaults.PaddingMode, "Padding mode: valid, reflect, replicate, circular")
	fs.IntVar(&opts.params.PaddingSize, "pad", defaults.PaddingSize, "Padding size (ignored for valid)")
	fs.Int64Var(&opts.seed, "seed", 0, "Random seed (0 = nondeterministic)")
	fs.BoolVar(&opts.verbose, "v", false, "Log session activity to stderr")
	fs.BoolVar(&opts.dumpConfig, "dump-config", false, "Print the normalized parameters as YAML and exit")
	fs.Var(&opts.edits, "set", "Input edit c,row,col=value (repeatable)")
	fs.Var(&cell, "cell", "Output cell oc,row,col to explain")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if cell.set {
		opts.cell = &cell
	}

	if opts.configPath == "" {
		return opts, nil
	}

	// Start from the file and re-apply only the flags given explicitly.
	fileParams, err := session.LoadParamsFile(opts.configPath)
	if err != nil {
		return nil, err
	}
	flagParams := opts.params
	opts.params = fileParams
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "height":
			opts.params.InputHeight = flagParams.InputHeight
		case "width":
			opts.params.InputWidth = flagParams.InputWidth
		case "channels":
			opts.params.InputChannels = flagParams.InputChannels
		case "kernel":
			opts.params.KernelSize = flagParams.KernelSize
		case "out":
			opts.params.OutputChannels = flagParams.OutputChannels
		case "stride":
			opts.params.Stride = flagParams.Stride
		case "padding":
			opts.params.PaddingMode = flagParams.PaddingMode
		case "pad":
			opts.params.PaddingSize = flagParams.PaddingSize
		}
	})
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, notices, err := session.Configure(opts.params)
	if err != nil {
		return err
	}
	for _, n := range notices {
		fmt.Fprintf(stdout, "note: %s\n", n)
	}

	if opts.dumpConfig {
		data, err := session.MarshalParams(cfg.Params())
		if err != nil {
			return err
		}
		_, err = stdout.Write(data)
		return err
	}

	var sessOpts []session.Option
	if opts.seed != 0 {
		sessOpts = append(sessOpts, session.WithSeed(opts.seed))
	}
	if opts.verbose {
		sessOpts = append(sessOpts, session.WithLogger(log.New(stderr, "convlens: ", log.Ltime)))
	}
	s, err := session.New(cfg, sessOpts...)
	if err != nil {
		return err
	}

	for _, e := range opts.edits {
		stored, err := s.SetInputCell(e.channel, e.row, e.col, e.raw)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "set input[%d][%d][%d] = %d\n", e.channel, e.row, e.col, stored)
	}

	p := cfg.Params()
	fmt.Fprintf(stdout, "\nlayer: input %v, kernel %v, stride %d, padding %s -> output %v\n",
		cfg.InputShape(), cfg.KernelShape(), p.Stride, cfg.Padding(), cfg.OutputShape())

	printTensor(stdout, "input", s.Input())
	printKernel(stdout, s.Kernel())
	if out := s.Output(); out != nil {
		printTensor(stdout, "output", out)
	} else {
		fmt.Fprintln(stdout, "\noutput: empty")
	}

	if opts.cell == nil {
		return nil
	}
	return explain(stdout, s, *opts.cell)
}

// explain prints the receptive field and the calculation trace of one
// output cell.
func explain(w io.Writer, s *session.Session, c cellRef) error {
	tr, err := s.Trace(c.channel, c.row, c.col)
	if err != nil {
		return err
	}

	target := session.Coordinate{Layer: 1, Channel: c.channel, Row: c.row, Col: c.col}
	rf := s.ReceptiveField(target)
	fmt.Fprintf(w, "\nreceptive field of %s: %d input cells\n", target, len(rf))
	printField(w, s.Input().Shape(), s.AllInfluencing(target).Cells(0))

	fmt.Fprintf(w, "\ntrace of output[%d][%d][%d]:\n", c.channel, c.row, c.col)
	for _, ch := range tr.Channels {
		fmt.Fprintf(w, "  channel %d:\n", ch.Channel)
		for _, term := range ch.Terms {
			origin := fmt.Sprintf("[%d,%d]", term.Row, term.Col)
			if term.IsPadding {
				origin += " pad"
			}
			fmt.Fprintf(w, "    x(%d,%d)%-12s = %3d  *  w(%d,%d) = %2d  ->  %4d\n",
				term.PaddedRow, term.PaddedCol, origin, term.Value, term.KH, term.KW, term.Weight, term.Product)
		}
		fmt.Fprintf(w, "    sum %d\n", ch.Sum)
	}
	fmt.Fprintf(w, "  total %d (%d of %d terms, %d from padding)\n",
		tr.Total, tr.Participating, tr.Possible, tr.PaddingTerms())
	return nil
}

func printTensor(w io.Writer, name string, t *tensor.Tensor) {
	fmt.Fprintf(w, "\n%s %v:\n", name, t.Shape())
	for c := 0; c < t.Channels(); c++ {
		fmt.Fprintf(w, "  [%d]\n", c)
		printPlane(w, t.Channel(c))
	}
}

func printKernel(w io.Writer, k *tensor.Kernel) {
	fmt.Fprintf(w, "\nkernel %v:\n", k.Shape())
	for oc := 0; oc < k.OutChannels(); oc++ {
		for ic := 0; ic < k.InChannels(); ic++ {
			fmt.Fprintf(w, "  [%d][%d]\n", oc, ic)
			printPlane(w, k.Slice(oc, ic))
		}
	}
}

func printPlane(w io.Writer, plane [][]int) {
	for _, row := range plane {
		fmt.Fprint(w, "   ")
		for _, v := range row {
			fmt.Fprintf(w, " %4d", v)
		}
		fmt.Fprintln(w)
	}
}

// printField marks the input cells of a closure with '#'.
func printField(w io.Writer, shape tensor.Shape, cells []session.Cell) {
	marked := make(map[session.Cell]bool, len(cells))
	for _, c := range cells {
		marked[c] = true
	}
	for ch := 0; ch < shape[0]; ch++ {
		fmt.Fprintf(w, "  [%d]\n", ch)
		for r := 0; r < shape[1]; r++ {
			fmt.Fprint(w, "    ")
			for col := 0; col < shape[2]; col++ {
				if marked[session.Cell{Channel: ch, Row: r, Col: col}] {
					fmt.Fprint(w, " #")
				} else {
					fmt.Fprint(w, " .")
				}
			}
			fmt.Fprintln(w)
		}
	}
}
