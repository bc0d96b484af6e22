// ap/vertical_test.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"testing"

	"github.com/aerosim/fmgc/math"
)

func TestAltCaptureAtTargetIsImmediateHold(t *testing.T) {
	e := newTestEngine(t)

	out := mustUpdate(t, e, EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: levelState(),
		Modes:    ModeSelection{VerticalLaw: VerticalAltCapture, HCFt: 10000.5},
	})

	if out.Modes.VerticalLaw != VerticalHold {
		t.Fatalf("capture at target: law %s, expected hold", out.Modes.VerticalLaw)
	}
	// No residual capture transient: commanded pitch is the level trim.
	if theta := out.Raw.FlightDirector.ThetaCDeg; math.Abs(theta-2) > 0.25 {
		t.Errorf("hold pitch %f, expected ~2 (trim)", theta)
	}
}

func TestAltCaptureDirectionAndSoftGain(t *testing.T) {
	// 500 ft below the target, entered from a 2500 fpm climb: both gains
	// start leveling off, and the soft gain shapes toward the gentler rate
	// sooner, so it pitches down further than the hard gain.
	pitchFor := func(soft bool) float32 {
		e := newTestEngine(t)
		ac := levelState()
		ac.HFt = 9500
		ac.HDotFpm = 2500
		out := mustUpdate(t, e, EngineInput{
			Tick:     TickContext{DtS: 1, SimTimeS: 1},
			Aircraft: ac,
			Modes:    ModeSelection{VerticalLaw: VerticalAltCapture, HCFt: 10000, AltSoftMode: soft},
		})
		return out.Raw.FlightDirector.ThetaCDeg
	}

	hard, soft := pitchFor(false), pitchFor(true)

	if hard >= 2 {
		t.Errorf("hard capture pitch %f does not start the level-off", hard)
	}
	if soft >= hard {
		t.Errorf("soft capture pitch %f not below hard %f", soft, hard)
	}
}

func TestAltCaptureNeverSteeperThanEntryRate(t *testing.T) {
	// Entered with a modest climb rate far from the target: the shaped
	// rate must clamp at the entry rate, not the gain * error product.
	e := newTestEngine(t)
	ac := levelState()
	ac.HFt = 9000
	ac.HDotFpm = 500
	out := mustUpdate(t, e, EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: ac,
		Modes:    ModeSelection{VerticalLaw: VerticalAltCapture, HCFt: 10000},
	})

	// 4 fpm/ft * 1000 ft = 4000 fpm unclamped; entry rate caps it at 500,
	// which is the current rate, so the command just sustains the current
	// attitude.
	theta := out.Raw.FlightDirector.ThetaCDeg
	if math.Abs(theta-2) > 0.5 {
		t.Errorf("capture pitch %f, expected ~2 (entry-rate limited)", theta)
	}
}

func TestSpeedProtectionClampsVs(t *testing.T) {
	e := newTestEngine(t)

	// 5 kn above VLS: the protection envelope only allows a gentle climb,
	// so a 3000 fpm vertical-speed target must be realized shallower.
	ac := levelState()
	ac.VIasKn = 205
	out := mustUpdate(t, e, EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: ac,
		Modes:    ModeSelection{VerticalLaw: VerticalVS, HDotCFpm: 3000},
	})

	theta := out.Raw.FlightDirector.ThetaCDeg
	unclamped := 2 + e.cfg.VsPitchGain*3000
	if theta <= 2 {
		t.Errorf("protected pitch %f does not command a climb at all", theta)
	}
	if theta >= unclamped-1 {
		t.Errorf("pitch %f is the unclamped command %f; protection did not bite", theta, unclamped)
	}
}

func TestExpeditePromotesToCapture(t *testing.T) {
	e := newTestEngine(t)

	// Far from the target: expedite commands the maximum rate.
	ac := levelState()
	ac.HFt = 6000
	out := mustUpdate(t, e, EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: ac,
		Modes:    ModeSelection{VerticalLaw: VerticalExpedite, HCFt: 10000},
	})
	if out.Modes.VerticalLaw != VerticalExpedite {
		t.Fatalf("law %s, expected expedite", out.Modes.VerticalLaw)
	}
	if theta := out.Raw.FlightDirector.ThetaCDeg; theta <= 5 {
		t.Errorf("expedite pitch %f, expected a steep climb command", theta)
	}

	// Inside the capture envelope: expedite hands off automatically.
	ac.HFt = 9990
	ac.HDotFpm = 200
	out = mustUpdate(t, e, EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 2},
		Aircraft: ac,
		Modes:    ModeSelection{VerticalLaw: VerticalExpedite, HCFt: 10000},
	})
	if l := out.Modes.VerticalLaw; l != VerticalAltCapture && l != VerticalHold {
		t.Errorf("expedite did not hand off at the capture threshold: %s", l)
	}
}

func TestArmedAltPromotion(t *testing.T) {
	e := newTestEngine(t)

	// Climbing at 2000 fpm, 1500 ft to go: outside the capture horizon.
	ac := levelState()
	ac.HFt = 8500
	ac.HDotFpm = 2000
	modes := ModeSelection{VerticalLaw: VerticalVS, HDotCFpm: 2000, HCFt: 10000, VerticalArmed: VerticalArmedAlt}
	out := mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 1, SimTimeS: 1}, Aircraft: ac, Modes: modes})
	if out.Modes.VerticalLaw != VerticalVS || out.Modes.VerticalArmed != VerticalArmedAlt {
		t.Fatalf("premature alt engagement: %s armed %s", out.Modes.VerticalLaw, out.Modes.VerticalArmed)
	}

	// 200 ft to go at 2000 fpm is inside the horizon: engage capture.
	ac.HFt = 9800
	out = mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 1, SimTimeS: 2}, Aircraft: ac, Modes: modes})
	if out.Modes.VerticalLaw != VerticalAltCapture {
		t.Errorf("armed alt did not engage: %s", out.Modes.VerticalLaw)
	}
	if out.Modes.VerticalArmed != VerticalArmedNone {
		t.Errorf("armed flag not cleared on promotion")
	}
}

func TestOpenClimbRespectsConstraint(t *testing.T) {
	// An intervening flight-plan constraint caps the open-climb path.
	theta := func(constraint float32) float32 {
		e := newTestEngine(t)
		ac := levelState()
		ac.HFt = 9995
		ac.VIasKn = 280 // faster than target: pitch wants to rise
		ac.FlightPlanAvail = constraint != 0
		ac.AltConstraintFt = constraint
		out := mustUpdate(t, e, EngineInput{
			Tick:     TickContext{DtS: 1, SimTimeS: 1},
			Aircraft: ac,
			Modes:    ModeSelection{VerticalLaw: VerticalOpenClimb, HCFt: 20000, VCKn: 250},
		})
		return out.Raw.FlightDirector.ThetaCDeg
	}

	unconstrained := theta(0)
	constrained := theta(10000) // 5 ft above: path must flatten to level

	if constrained >= unconstrained {
		t.Errorf("constraint ignored: pitch %f vs unconstrained %f", constrained, unconstrained)
	}
	if constrained > 2.5 {
		t.Errorf("pitch %f still climbing through the constraint", constrained)
	}
}

func TestGsCaptureToTrackAndFlare(t *testing.T) {
	e := newTestEngine(t)

	// On the beam and closing: capture promotes to track.
	ac := levelState()
	ac.HRadioFt = 1500
	ac.NavGsValid = true
	ac.NavGsErrorDeg = 0.05
	modes := ModeSelection{VerticalLaw: VerticalGsCapture}
	out := mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 1, SimTimeS: 1}, Aircraft: ac, Modes: modes})
	if out.Modes.VerticalLaw != VerticalGsTrack {
		t.Fatalf("gs capture on beam: law %s, expected gs-track", out.Modes.VerticalLaw)
	}

	// Descending through the flare height hands off to the flare law.
	ac.NavGsErrorDeg = 0
	ac.HRadioFt = 30
	ac.ThetaDeg = -2
	ac.HDotFpm = -700
	out = mustUpdate(t, e, EngineInput{Tick: TickContext{DtS: 1, SimTimeS: 2}, Aircraft: ac, Modes: modes})
	if out.Modes.VerticalLaw != VerticalFlare {
		t.Fatalf("below flare height: law %s, expected flare", out.Modes.VerticalLaw)
	}
	// The flare targets a much shallower sink than the approach's.
	if theta := out.Raw.FlightDirector.ThetaCDeg; theta < -2 {
		t.Errorf("flare pitch %f below the entry attitude", theta)
	}
}

func TestSRS(t *testing.T) {
	takeoff := func(ias float32, engineOut bool) float32 {
		e := newTestEngine(t)
		ac := levelState()
		ac.FlightPhase = PhaseTakeoff
		ac.HFt = 1500
		ac.HDotFpm = 2000
		ac.VGndKn = 150
		ac.ThetaDeg = 12
		ac.VIasKn = ias
		ac.V2Kn = 145
		ac.AccelerationAltFt = 3000
		ac.AccelerationAltEoFt = 3000
		if engineOut {
			ac.Engine2Operative = false
		}
		out := mustUpdate(t, e, EngineInput{
			Tick:     TickContext{DtS: 1, SimTimeS: 1},
			Aircraft: ac,
			Modes:    ModeSelection{VerticalLaw: VerticalSRS, VCKn: 250},
		})
		return out.Raw.FlightDirector.ThetaCDeg
	}

	// Both engines reference V2+10: on speed, pitch rides the SRS floor;
	// fast, it rises to convert the excess into climb.
	onSpeed := takeoff(155, false)
	fast := takeoff(175, false)
	if onSpeed != 8 {
		t.Errorf("on-speed SRS pitch %f, expected the 8 degree floor", onSpeed)
	}
	if fast <= onSpeed {
		t.Errorf("fast SRS pitch %f did not rise above %f", fast, onSpeed)
	}

	// Engine out: reference drops to V2 and the pitch ceiling tightens.
	fastEo := takeoff(175, true)
	if fastEo != 12.5 {
		t.Errorf("engine-out SRS pitch %f, expected the 12.5 degree ceiling", fastEo)
	}
	if full := takeoff(220, false); full != 18 {
		t.Errorf("all-engine SRS ceiling %f, expected 18", full)
	}
}

func TestTrimFollowsFlightPath(t *testing.T) {
	// In a steady 1000 fpm climb, holding the current rate commands a
	// pitch near the current attitude.
	e := newTestEngine(t)
	ac := levelState()
	ac.ThetaDeg = 5
	ac.HDotFpm = 1000
	out := mustUpdate(t, e, EngineInput{
		Tick:     TickContext{DtS: 1, SimTimeS: 1},
		Aircraft: ac,
		Modes:    ModeSelection{VerticalLaw: VerticalVS, HDotCFpm: 1000},
	})
	if theta := out.Raw.FlightDirector.ThetaCDeg; math.Abs(theta-5) > 0.5 {
		t.Errorf("steady climb hold pitch %f, expected ~5", theta)
	}
}
