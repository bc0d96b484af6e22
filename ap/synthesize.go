// ap/synthesize.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/aerosim/fmgc/math"
)

// synthesize merges the axis outputs into the dual-channel command. The
// flight-director channel is the unfiltered guidance; the autopilot channel
// is the same command passed through servo authority limiting, meaningful
// only when an AP is engaged.
func (e *Engine) synthesize(lat lateralOutput, vert verticalOutput, in EngineInput, prot protectionContext) RawOutput {
	d := &e.d
	cfg := e.cfg

	cmd := OutputCommand{
		ThetaCDeg: math.Clamp(vert.ThetaCDeg, cfg.MinPitchDeg, cfg.MaxPitchDeg),
		PhiCDeg:   math.Clamp(lat.PhiCDeg, -prot.MaxBankDeg, prot.MaxBankDeg),
		BetaCDeg:  math.Clamp(lat.BetaCDeg, -cfg.MaxRudderDeg, cfg.MaxRudderDeg),
	}

	out := RawOutput{
		ApEngaged:     in.Modes.AP1Engaged || in.Modes.AP2Engaged,
		PhiLocLimited: lat.PhiLocLimited,
	}

	if d.FdConnected {
		out.FlightDirector = cmd
	}

	// Servo-rate-limit the autopilot channel against the previous tick's
	// command; without an engaged AP it mirrors the flight director and
	// consumers must check ApEngaged before applying it.
	apCmd := cmd
	if out.ApEngaged && d.ApCmd != nil && in.Tick.DtS > 0 {
		prev := *d.ApCmd
		maxDTheta := cfg.MaxPitchRateDps * in.Tick.DtS
		maxDPhi := cfg.MaxRollRateDps * in.Tick.DtS
		apCmd.ThetaCDeg = prev.ThetaCDeg + math.Clamp(cmd.ThetaCDeg-prev.ThetaCDeg, -maxDTheta, maxDTheta)
		apCmd.PhiCDeg = prev.PhiCDeg + math.Clamp(cmd.PhiCDeg-prev.PhiCDeg, -maxDPhi, maxDPhi)
	}
	out.Autopilot = apCmd

	hold := apCmd
	d.ApCmd = &hold

	LawLog(in.Tick.SimTimeS, LawLogSynth, "fd theta %.1f phi %.1f / ap theta %.1f phi %.1f engaged %v",
		cmd.ThetaCDeg, cmd.PhiCDeg, apCmd.ThetaCDeg, apCmd.PhiCDeg, out.ApEngaged)
	return out
}
