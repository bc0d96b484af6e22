// ap/ap_test.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"errors"
	"testing"

	"github.com/aerosim/fmgc/math"
)

// levelState is a nominal clean-configuration cruise sample at 10,000 ft.
func levelState() AircraftState {
	return AircraftState{
		ThetaDeg:         2,
		VIasKn:           250,
		VTasKn:           280,
		VGndKn:           280,
		HFt:              10000,
		HIndFt:           10000,
		HRadioFt:         2500,
		PsiMagDeg:        90,
		PsiMagTrackDeg:   90,
		PsiTrueDeg:       90,
		VlsKn:            200,
		VmaxKn:           350,
		Engine1Operative: true,
		Engine2Operative: true,
	}
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := NewEngine(DefaultConfig(), nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func mustUpdate(t *testing.T, e *Engine, in EngineInput) EngineOutput {
	t.Helper()
	out, err := e.Update(in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	return out
}

func TestZeroDtHoldsTrends(t *testing.T) {
	e := newTestEngine(t)

	ac := levelState()
	mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 1, SimTimeS: 1}, Aircraft: ac})

	ac.VIasKn = 255
	ac.NavLocErrorDeg = 0.5
	out := mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 1, SimTimeS: 2}, Aircraft: ac})
	if out.Derived.VTrendKnS != 5 {
		t.Errorf("airspeed trend %f, expected 5", out.Derived.VTrendKnS)
	}
	if out.Derived.LocErrRateDegS != 0.5 {
		t.Errorf("loc error rate %f, expected 0.5", out.Derived.LocErrRateDegS)
	}

	// dt=0: rate-derived fields hold their previous values even though the
	// raw sample moved.
	ac.VIasKn = 260
	ac.NavLocErrorDeg = 1.5
	out = mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 0, SimTimeS: 2}, Aircraft: ac})
	if out.Derived.VTrendKnS != 5 {
		t.Errorf("airspeed trend after dt=0 %f, expected held 5", out.Derived.VTrendKnS)
	}
	if out.Derived.LocErrRateDegS != 0.5 {
		t.Errorf("loc error rate after dt=0 %f, expected held 0.5", out.Derived.LocErrRateDegS)
	}
	if out.Derived.GsErrRateDegS != 0 {
		t.Errorf("gs error rate after dt=0 %f, expected held 0", out.Derived.GsErrRateDegS)
	}
}

func TestIllegalSelectors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		modes ModeSelection
		tick  TickContext
		err   error
	}{
		{name: "lateral law", modes: ModeSelection{LateralLaw: LateralLaw(99)}, err: ErrLateralLaw},
		{name: "lateral law negative", modes: ModeSelection{LateralLaw: LateralLaw(-1)}, err: ErrLateralLaw},
		{name: "vertical law", modes: ModeSelection{VerticalLaw: NumVerticalLaws}, err: ErrVerticalLaw},
		{name: "lateral armed", modes: ModeSelection{LateralArmed: LateralArmed(7)}, err: ErrArmedMode},
		{name: "vertical armed", modes: ModeSelection{VerticalArmed: VerticalArmed(-2)}, err: ErrArmedMode},
		{name: "negative dt", tick: TickContext{DtS: -1}, err: ErrTick},
	} {
		e := newTestEngine(t)
		out, err := e.Update(EngineInput{Tick: tc.tick, Aircraft: levelState(), Modes: tc.modes})
		if !errors.Is(err, tc.err) {
			t.Errorf("%s: got error %v, expected %v", tc.name, err, tc.err)
		}
		if out != (EngineOutput{}) {
			t.Errorf("%s: output not zero on error", tc.name)
		}
		if e.d.Initialized {
			t.Errorf("%s: engine state mutated on rejected input", tc.name)
		}
	}
}

func TestLevelFlightHold(t *testing.T) {
	e := newTestEngine(t)

	in := EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: levelState(),
		Modes:    ModeSelection{VerticalLaw: VerticalHold, HCFt: 10000},
	}
	out := mustUpdate(t, e, in)

	// Level at the target: commanded pitch is the level-flight trim, which
	// with zero vertical speed is the current pitch.
	if math.Abs(out.Raw.FlightDirector.ThetaCDeg-2) > 0.25 {
		t.Errorf("hold pitch %f, expected ~2 (trim)", out.Raw.FlightDirector.ThetaCDeg)
	}
	if out.Modes.RevertVertical {
		t.Errorf("unexpected vertical reversion")
	}
	if out.Raw.ApEngaged {
		t.Errorf("ApEngaged with no AP requested")
	}
	if out.Raw.Autopilot != out.Raw.FlightDirector {
		t.Errorf("autopilot channel should mirror flight director when not engaged")
	}

	// With an AP engaged, the flag is echoed and the command is
	// rate-limited rather than mirrored.
	in.Tick = TickContext{DtS: 1, SimTimeS: 2}
	in.Modes.AP1Engaged = true
	out = mustUpdate(t, e, in)
	if !out.Raw.ApEngaged {
		t.Errorf("ApEngaged not set with AP1 requested")
	}
}

func TestSnapshotDeterminism(t *testing.T) {
	e := newTestEngine(t)

	input := func(i int) EngineInput {
		ac := levelState()
		ac.PsiMagDeg = math.NormalizeHeading(90 + float32(i)*2)
		ac.HFt = 10000 + float32(i)*10
		ac.HDotFpm = 600
		return EngineInput{
			Tick:     TickContext{DtS: 1, SimTimeS: float64(i)},
			Aircraft: ac,
			Modes: ModeSelection{
				LateralLaw:  LateralHeading,
				VerticalLaw: VerticalVS,
				PsiCDeg:     120,
				HDotCFpm:    500,
				AP1Engaged:  true,
			},
		}
	}

	for i := 0; i < 3; i++ {
		mustUpdate(t, e, input(i))
	}

	snap := e.TakeSnapshot()

	var first []RawOutput
	for i := 3; i < 8; i++ {
		first = append(first, mustUpdate(t, e, input(i)).Raw)
	}

	e.RestoreSnapshot(snap)
	for i := 3; i < 8; i++ {
		out := mustUpdate(t, e, input(i))
		if out.Raw != first[i-3] {
			t.Errorf("tick %d: replay diverged: %+v vs %+v", i, out.Raw, first[i-3])
		}
	}
}

func TestForkIndependence(t *testing.T) {
	e := newTestEngine(t)
	in := EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: levelState(),
		Modes:    ModeSelection{LateralLaw: LateralHeading, PsiCDeg: 100},
	}
	mustUpdate(t, e, in)

	fork := e.Fork()

	// Advancing the fork must not disturb the original's hold references.
	in.Tick.SimTimeS = 2
	in.Modes.PsiCDeg = 270
	mustUpdate(t, fork, in)

	if e.d.PrevSimTimeS != 1 {
		t.Errorf("original engine advanced by fork update")
	}
}
