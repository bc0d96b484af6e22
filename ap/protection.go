// ap/protection.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/aerosim/fmgc/math"
	"github.com/aerosim/fmgc/util"
)

// maximumRate is a sentinel rate limit meaning "no constraint"; it is
// used when no reference speed is available to derive one from.
const maximumRate = 100000

// protectionContext is the per-tick envelope shared by both axis engines:
// the vertical rates beyond which airspeed would leave [VLS, VMAX], and
// the effective bank limit. It is computed once, after ingest, and passed
// by value into the laws.
type protectionContext struct {
	VlsKn  float32
	VmaxKn float32

	// Climbing steeper than MaxClimbFpm bleeds airspeed below VLS;
	// descending steeper (more negative) than MaxDescentFpm accelerates
	// past VMAX. maximumRate when the reference speed is absent.
	MaxClimbFpm   float32
	MaxDescentFpm float32

	MaxBankDeg float32

	// Caller-requested speed protection; the clamp is honored verbatim.
	Requested bool
}

func (e *Engine) protection(in EngineInput) protectionContext {
	d := &e.d
	cfg := e.cfg

	prot := protectionContext{
		VlsKn:         d.VlsKn,
		VmaxKn:        d.VmaxKn,
		MaxClimbFpm:   maximumRate,
		MaxDescentFpm: -maximumRate,
		Requested:     in.Modes.SpeedProtectionActive,
	}

	// A one-second airspeed lookahead sharpens the margin when speed is
	// already decaying toward the limit.
	iasAhead := d.VIasKn + d.VTrendKnS

	if d.VlsKn > 0 {
		margin := min(d.VIasKn, iasAhead) - d.VlsKn
		prot.MaxClimbFpm = margin * cfg.SpeedProtMarginGain
	}
	if d.VmaxKn > 0 {
		margin := d.VmaxKn - max(d.VIasKn, iasAhead)
		prot.MaxDescentFpm = -margin * cfg.SpeedProtMarginGain
	}

	engineOut := !d.Engine1Operative || !d.Engine2Operative
	lowBank := engineOut || d.HRadioFt < cfg.BankReductionRadioAltFt
	prot.MaxBankDeg = util.Select(lowBank, cfg.MaxBankLowDeg, cfg.MaxBankDeg)

	if prot.Requested {
		LawLog(in.Tick.SimTimeS, LawLogProtect, "speed protection requested, climb<=%.0f descent>=%.0f",
			prot.MaxClimbFpm, prot.MaxDescentFpm)
	}

	return prot
}

// clampVs applies the protection envelope to a commanded vertical speed.
func (p protectionContext) clampVs(vsFpm float32) float32 {
	return math.Clamp(vsFpm, p.MaxDescentFpm, p.MaxClimbFpm)
}

// clampBank applies the effective bank limit, reporting whether it bit.
func (p protectionContext) clampBank(phiDeg float32) (float32, bool) {
	clamped := math.Clamp(phiDeg, -p.MaxBankDeg, p.MaxBankDeg)
	return clamped, clamped != phiDeg
}
