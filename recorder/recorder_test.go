// recorder/recorder_test.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package recorder

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aerosim/fmgc/ap"
)

func sampleFrames(n int) []ap.EngineOutput {
	frames := make([]ap.EngineOutput, n)
	for i := range frames {
		frames[i] = ap.EngineOutput{
			Tick: ap.TickContext{DtS: 0.05, SimTimeS: float64(i) * 0.05},
			Modes: ap.ModeSelection{
				LateralLaw:  ap.LateralHeading,
				VerticalLaw: ap.VerticalVS,
				PsiCDeg:     120,
				HDotCFpm:    -500,
			},
			Raw: ap.RawOutput{
				ApEngaged: i%2 == 0,
				FlightDirector: ap.OutputCommand{
					ThetaCDeg: float32(i) * 0.1,
					PhiCDeg:   -float32(i) * 0.2,
				},
			},
		}
		frames[i].Derived.HFt = 10000 + float32(i)
		frames[i].Derived.VIasKn = 250
	}
	return frames
}

func TestRoundTrip(t *testing.T) {
	frames := sampleFrames(100)

	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	for _, f := range frames {
		require.NoError(t, w.Record(f))
	}
	require.NoError(t, w.Close())

	r, err := NewReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer r.Close()

	for i, want := range frames {
		got, err := r.Next()
		require.NoError(t, err, "frame %d", i)
		assert.Equal(t, want.Tick, got.Tick, "frame %d", i)
		assert.Equal(t, want.Modes, got.Modes, "frame %d", i)
		assert.Equal(t, want.Raw, got.Raw, "frame %d", i)
		assert.Equal(t, want.Derived.HFt, got.Derived.HFt, "frame %d", i)
	}

	_, err = r.Next()
	assert.Equal(t, io.EOF, err)
}

func TestBadMagic(t *testing.T) {
	_, err := NewReader(bytes.NewReader([]byte("NOTANFDR plus some trailing bytes")))
	assert.ErrorIs(t, err, ErrMagic)

	_, err = NewReader(bytes.NewReader([]byte("FM")))
	assert.ErrorIs(t, err, ErrMagic)
}

func TestTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf)
	require.NoError(t, err)
	for _, f := range sampleFrames(10) {
		require.NoError(t, w.Record(f))
	}
	require.NoError(t, w.Close())

	// Chop the compressed payload mid-stream; the reader must surface
	// corruption, not bad frames.
	trunc := buf.Bytes()[:buf.Len()-20]
	r, err := NewReader(bytes.NewReader(trunc))
	require.NoError(t, err)
	defer r.Close()

	var readErr error
	for {
		if _, readErr = r.Next(); readErr != nil {
			break
		}
	}
	assert.ErrorIs(t, readErr, ErrCorrupt)
}
