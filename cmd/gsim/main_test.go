// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gsim/config"
	"github.com/katalvlaran/gsim/gsim"
)

func TestParseAngle(t *testing.T) {
	cases := map[string]float64{
		"0.5":   0.5,
		"-1e-2": -0.01,
		"pi":    math.Pi,
		"-pi/2": -math.Pi / 2,
		"3pi/4": 3 * math.Pi / 4,
		"1/8":   0.125,
	}
	for in, want := range cases {
		got, err := parseAngle(in)
		require.NoErrorf(t, err, "input %q", in)
		require.InDeltaf(t, want, got, 1e-15, "input %q", in)
	}
	for _, bad := range []string{"", "x", "pi/0", "1/q"} {
		_, err := parseAngle(bad)
		require.Errorf(t, err, "input %q", bad)
	}
}

func TestParseCircuit(t *testing.T) {
	c, err := parseCircuit("0.3:0, pi/2:1\t-1:0")
	require.NoError(t, err)
	require.Equal(t, gsim.Circuit{{Theta: 0.3, Gate: 0}, {Theta: math.Pi / 2, Gate: 1}, {Theta: -1, Gate: 0}}, c)

	_, err = parseCircuit("0.3")
	require.Error(t, err)
	_, err = parseCircuit("0.3:x")
	require.Error(t, err)
}

func newTestSession(t *testing.T) *session {
	t.Helper()
	cfg := config.Default()
	b, err := cfg.Build(nil)
	require.NoError(t, err)

	return newSession(cfg, b)
}

func TestSessionHandle(t *testing.T) {
	s := newTestSession(t)
	var out bytes.Buffer

	require.NoError(t, s.handle("pi/2:0", &out))
	v, err := strconv.ParseFloat(strings.TrimSpace(out.String()), 64)
	require.NoError(t, err)
	require.InDelta(t, -1, v, 1e-9)

	out.Reset()
	require.NoError(t, s.handle("/obs Y", &out))
	require.Contains(t, out.String(), "⟨1*Y⟩ = ")

	out.Reset()
	require.NoError(t, s.handle("/coords", &out))
	require.True(t, strings.HasPrefix(out.String(), "["))

	out.Reset()
	require.NoError(t, s.handle("/run x-flip", &out))
	require.NoError(t, s.handle("/info", &out))
	require.Contains(t, out.String(), "algebra dim   3")

	require.ErrorIs(t, s.handle("/quit", &out), errQuit)
	require.Error(t, s.handle("/nope", &out))
	require.Error(t, s.handle("/run missing", &out))
	require.ErrorIs(t, s.handle("0.1:7", &out), gsim.ErrIndexOutOfRange)
	require.NoError(t, s.handle("   ", &out))
}

func TestRunREPL_Piped(t *testing.T) {
	s := newTestSession(t)
	in := strings.NewReader("0:0\n0.1:9\n/quit\n1:0\n")
	var out bytes.Buffer
	require.NoError(t, runREPL(in, &out, s))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2, "the line after /quit is not evaluated")
	require.Equal(t, "1", lines[0])
	require.True(t, strings.HasPrefix(lines[1], "error: "))
}

func TestDispatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	var out bytes.Buffer

	require.NoError(t, dispatch("init", []string{"-config", path}, nil, &out))
	require.NoError(t, dispatch("run", []string{"-config", path}, nil, &out))
	require.Contains(t, out.String(), "x-flip\t-1")

	out.Reset()
	require.NoError(t, dispatch("info", []string{"-config", path}, nil, &out))
	require.Contains(t, out.String(), "exact         true")

	require.Error(t, dispatch("run", []string{"-config", path, "-circuit", "nope"}, nil, &out))
	require.Error(t, dispatch("frobnicate", nil, nil, &out))

	t.Setenv("GSIM_WORKERS", "zero")
	require.Error(t, dispatch("info", []string{"-config", path}, nil, &out))
}
