// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package session_test

import (
	"strings"
	"testing"

	"github.com/born-ml/convlens/backend/cpu"
	"github.com/born-ml/convlens/session"
	"github.com/born-ml/convlens/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicSession(t *testing.T) {
	params, err := session.LoadParams(strings.NewReader("padding_mode: replicate\npadding_size: 1\n"))
	require.NoError(t, err)

	cfg, notices, err := session.Configure(params)
	require.NoError(t, err)
	assert.Empty(t, notices)

	s, err := session.New(cfg, session.WithSeed(5), session.WithBackend(cpu.NewSequential()))
	require.NoError(t, err)
	assert.True(t, tensor.Shape{3, 5, 5}.Equal(s.Output().Shape()))

	_, err = s.SetInputCell(1, 0, 0, "3")
	require.NoError(t, err)

	target := session.Coordinate{Layer: 1, Channel: 0, Row: 0, Col: 0}
	assert.True(t, s.Influences(target, session.Coordinate{Layer: 0, Channel: 1, Row: 0, Col: 0}))

	tr, err := s.Trace(0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, s.Output().At(0, 0, 0), tr.Total)
	assert.Equal(t, 27, tr.Possible)
	assert.Equal(t, 27, tr.Participating)
	assert.Equal(t, 15, tr.PaddingTerms())
}

func TestPublicConfigure_Error(t *testing.T) {
	p := session.DefaultParams()
	p.KernelSize = 9

	_, _, err := session.Configure(p)
	var cfgErr *session.ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.ErrorIs(t, err, session.ErrKernelTooLarge)
}
