// ap/reversion.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/aerosim/fmgc/aero"
	"github.com/aerosim/fmgc/math"
	"github.com/aerosim/fmgc/util"
)

// revert applies the reversion rules in priority order against the
// tentative axis outputs. Each axis slot is claimed by the first rule that
// modifies it; later rules inspect only the tentative state, never the
// post-reversion state, so simultaneous lateral and vertical triggers both
// fire in the same tick.
func (e *Engine) revert(lat *lateralOutput, vert *verticalOutput, in EngineInput, echo *ModeSelection) {
	d := &e.d
	latClaimed, vertClaimed := false, false

	// Rule 1: lateral law lost its navigation validity.
	if lat.Law.requiresNavValidity() {
		valid := util.Select(locLineage(lat.Law), d.NavLocValid, d.NavValid)
		if !valid {
			hdg := d.PsiMagDeg
			d.HeadingHoldDeg = &hdg
			d.TrackHoldDeg = nil
			d.RollOutPhiDeg = nil
			lat.Law = LateralNone
			lat.PhiCDeg = 0
			lat.BetaCDeg = 0
			lat.PhiLocLimited = false
			echo.RevertLateral = true
			echo.RefreshFma = true
			latClaimed = true
			LawLog(in.Tick.SimTimeS, LawLogRevert, "nav validity lost -> heading hold %.0f", hdg)
		}
	}

	// Rule 2: vertical law lost the glideslope.
	if vert.Law.requiresGsValidity() && !d.NavGsValid {
		rate := d.HDotFpm
		d.VsHoldFpm = &rate
		vert.Law = VerticalVS
		vert.ThetaCDeg = d.ThetaDeg
		echo.RevertVertical = true
		echo.RefreshFma = true
		vertClaimed = true
		LawLog(in.Tick.SimTimeS, LawLogRevert, "gs validity lost -> vs hold %.0f", rate)
	}

	// Rule 3: heading/track and vs/fpa representation swap. The physical
	// target is unchanged: degrees carry over directly, rates convert
	// through the current ground speed.
	if in.Modes.ToggleTrkFpa && !d.PrevToggleTrkFpa {
		if !latClaimed {
			switch lat.Law {
			case LateralHeading:
				lat.Law = LateralTrack
			case LateralTrack:
				lat.Law = LateralHeading
			}
		}
		if !vertClaimed {
			switch vert.Law {
			case VerticalVS:
				tgt := in.Modes.HDotCFpm
				if d.VsHoldFpm != nil {
					tgt = *d.VsHoldFpm
				}
				fpa := aero.FPADeg(tgt, d.VGndKn)
				d.FpaHoldDeg = &fpa
				d.VsHoldFpm = nil
				vert.Law = VerticalFPA
				echo.FpaCDeg = fpa
			case VerticalFPA:
				tgt := in.Modes.FpaCDeg
				if d.FpaHoldDeg != nil {
					tgt = *d.FpaHoldDeg
				}
				vs := aero.VSFpm(tgt, d.VGndKn)
				d.VsHoldFpm = &vs
				d.FpaHoldDeg = nil
				vert.Law = VerticalVS
				echo.HDotCFpm = vs
			}
		}
	}

	// Rule 4: triple-click disconnect acknowledgement; both axes to their
	// hold laws at the current attitude.
	if in.Modes.TripleClick && !d.PrevTripleClick {
		if !latClaimed {
			d.TrackHoldDeg = nil
			d.RollOutPhiDeg = nil
			if math.Abs(d.PhiDeg) <= e.cfg.WingsLevelBankDeg {
				hdg := d.PsiMagDeg
				d.HeadingHoldDeg = &hdg
			} else {
				d.HeadingHoldDeg = nil
			}
			lat.Law = LateralNone
			lat.PhiCDeg = 0
			lat.BetaCDeg = 0
			lat.PhiLocLimited = false
		}
		if !vertClaimed {
			pitch := d.ThetaDeg
			d.PitchHoldDeg = &pitch
			d.AltHoldFt = nil
			d.VsHoldFpm = nil
			d.FpaHoldDeg = nil
			vert.Law = VerticalHold
			vert.ThetaCDeg = pitch
		}
		if in.Modes.FDDisconnect {
			d.FdConnected = false
		}
		LawLog(in.Tick.SimTimeS, LawLogRevert, "triple click -> %s / %s", lat.Law, vert.Law)
	}
}
