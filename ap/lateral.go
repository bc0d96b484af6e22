// ap/lateral.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/aerosim/fmgc/math"
)

type lateralOutput struct {
	Law           LateralLaw
	PhiCDeg       float32
	BetaCDeg      float32
	PhiLocLimited bool
}

// lateralTentative resolves and evaluates the lateral law for this tick.
// The result is tentative: the reversion coordinator may still override
// it before synthesis.
func (e *Engine) lateralTentative(in EngineInput, prot protectionContext, echo *ModeSelection) lateralOutput {
	d := &e.d

	// Level-triggered selection: an unchanged selector carries the
	// engine's own resolved law forward so that internal promotions
	// stick; a changed selector is a fresh engagement.
	law := in.Modes.LateralLaw
	fresh := law != d.ReqLateral
	if !fresh {
		law = d.ActiveLateral
	}

	// Rollout applies only on the ground; an early selection keeps the
	// previous law until touchdown, at which point it engages even though
	// the selector itself hasn't changed since.
	if law == LateralRollOut && !d.OnGround && d.ActiveLateral != LateralRollOut {
		law = d.ActiveLateral
	} else if in.Modes.LateralLaw == LateralRollOut && d.OnGround {
		law = LateralRollOut
	}

	// Armed-mode promotion: engage the capture law once the beam envelope
	// is entered. The armed flag has no other effect on output.
	switch in.Modes.LateralArmed {
	case LateralArmedNav:
		if navLineage(law) {
			echo.LateralArmed = LateralArmedNone
		} else if d.NavValid && math.Abs(d.FgXtkNmi) < e.cfg.NavEngageXtkNmi {
			law = LateralNavCapture
			echo.LateralArmed = LateralArmedNone
			LawLog(in.Tick.SimTimeS, LawLogArm, "nav armed -> capture, xtk %.2f nm", d.FgXtkNmi)
		}
	case LateralArmedLoc:
		if locLineage(law) {
			echo.LateralArmed = LateralArmedNone
		} else if d.NavLocValid && math.Abs(d.NavLocErrorDeg) < e.cfg.LocEngageDeg {
			law = LateralLocCapture
			echo.LateralArmed = LateralArmedNone
			LawLog(in.Tick.SimTimeS, LawLogArm, "loc armed -> capture, dev %.2f deg", d.NavLocErrorDeg)
		}
	}

	// A moved selector re-engages even if it names the already-active law
	// (e.g. re-selecting heading hold after a reversion to it): stale hold
	// references are dropped either way.
	if law != d.ActiveLateral || (fresh && law == in.Modes.LateralLaw) {
		e.initLateral(law)
	}

	// Capture-to-track promotion: cross-track inside the threshold AND
	// track-angle error inside the band, both at once. The promotion
	// latches; track never demotes back to capture on its own.
	if law == LateralNavCapture && e.lateralCaptureComplete() {
		law = LateralNavTrack
		LawLog(in.Tick.SimTimeS, LawLogLateral, "nav capture -> track")
	}
	if law == LateralLocCapture && e.lateralCaptureComplete() && d.NavLocValid {
		law = LateralLocTrack
		e.locPid.Reset()
		LawLog(in.Tick.SimTimeS, LawLogLateral, "loc capture -> track")
	}

	out := lateralOutput{Law: law}
	switch law {
	case LateralNone:
		out.PhiCDeg = e.rollHeadingHoldCmd(prot)

	case LateralHeading:
		out.PhiCDeg = e.headingSelectCmd(in.Modes.PsiCDeg, prot)

	case LateralTrack:
		out.PhiCDeg = e.trackSelectCmd(in.Modes.PsiCDeg, prot)

	case LateralNavCapture:
		out.PhiCDeg, _ = prot.clampBank(e.beamCaptureRaw())

	case LateralNavTrack:
		out.PhiCDeg, _ = prot.clampBank(e.beamTrackRaw())

	case LateralLocCapture:
		out.PhiCDeg, out.PhiLocLimited = prot.clampBank(e.beamCaptureRaw())

	case LateralLocTrack:
		ctl := pidUpdate(&e.locPid, 0, d.NavLocErrorDeg, in.Tick.DtS)
		out.PhiCDeg, _ = prot.clampBank(ctl)

	case LateralRollOut:
		if d.RollOutPhiDeg != nil && in.Tick.DtS > 0 {
			decayed := *d.RollOutPhiDeg * math.Exp(-in.Tick.DtS/e.cfg.RollOutDecayS)
			d.RollOutPhiDeg = &decayed
		}
		if d.RollOutPhiDeg != nil {
			out.PhiCDeg = *d.RollOutPhiDeg
		}
		if d.NavLocValid {
			out.BetaCDeg = math.Clamp(-e.cfg.RollOutYawGain*d.NavLocErrorDeg,
				-e.cfg.MaxRudderDeg, e.cfg.MaxRudderDeg)
		}

	case LateralGaTrack:
		if d.TrackHoldDeg != nil {
			err := math.HeadingSignedTurn(d.PsiMagTrackDeg, *d.TrackHoldDeg)
			out.PhiCDeg, _ = prot.clampBank(e.cfg.HeadingBankGain * err)
		}
	}

	LawLog(in.Tick.SimTimeS, LawLogLateral, "%s phi_c %.1f", law, out.PhiCDeg)
	return out
}

// initLateral establishes the references a newly engaged law holds.
func (e *Engine) initLateral(law LateralLaw) {
	d := &e.d
	d.HeadingHoldDeg = nil
	d.TrackHoldDeg = nil
	d.RollOutPhiDeg = nil

	switch law {
	case LateralNone:
		// Only take the heading reference with the wings near level;
		// otherwise roll level first and grab it on the way through.
		if math.Abs(d.PhiDeg) <= e.cfg.WingsLevelBankDeg {
			hdg := d.PsiMagDeg
			d.HeadingHoldDeg = &hdg
		}
	case LateralGaTrack:
		trk := d.PsiMagTrackDeg
		d.TrackHoldDeg = &trk
	case LateralRollOut:
		phi := d.PhiDeg
		d.RollOutPhiDeg = &phi
	case LateralLocTrack:
		e.locPid.Reset()
	}
}

func (e *Engine) lateralCaptureComplete() bool {
	d := &e.d
	return math.Abs(d.FgXtkNmi) < e.cfg.CaptureXtkThresholdNmi &&
		math.Abs(d.FgTaeDeg) < e.cfg.CaptureTaeThresholdDeg
}

// rollHeadingHoldCmd is the basic lateral law: roll the wings level, then
// hold the heading passing under the nose.
func (e *Engine) rollHeadingHoldCmd(prot protectionContext) float32 {
	d := &e.d
	if d.HeadingHoldDeg == nil {
		if math.Abs(d.PhiDeg) > e.cfg.WingsLevelBankDeg {
			return 0
		}
		hdg := d.PsiMagDeg
		d.HeadingHoldDeg = &hdg
	}
	err := math.HeadingSignedTurn(d.PsiMagDeg, *d.HeadingHoldDeg)
	phi, _ := prot.clampBank(e.cfg.HeadingBankGain * err)
	return phi
}

func (e *Engine) headingSelectCmd(targetDeg float32, prot protectionContext) float32 {
	err := math.HeadingSignedTurn(e.d.PsiMagDeg, math.NormalizeHeading(targetDeg))
	phi, _ := prot.clampBank(e.cfg.HeadingBankGain * err)
	return phi
}

func (e *Engine) trackSelectCmd(targetDeg float32, prot protectionContext) float32 {
	err := math.HeadingSignedTurn(e.d.PsiMagTrackDeg, math.NormalizeHeading(targetDeg))
	phi, _ := prot.clampBank(e.cfg.HeadingBankGain * err)
	return phi
}

// beamCaptureRaw converges track-angle error toward an intercept angle
// that shrinks with cross-track: far off the beam it flies a bounded
// intercept, closing to beam-aligned as cross-track goes to zero. The
// flight-guidance bank suggestion rides through as feedforward.
func (e *Engine) beamCaptureRaw() float32 {
	d := &e.d
	taeTarget := math.Clamp(-e.cfg.NavXtkGainDegPerNmi*d.FgXtkNmi,
		-e.cfg.NavInterceptMaxDeg, e.cfg.NavInterceptMaxDeg)
	return e.cfg.NavTaeBankGain*(taeTarget-d.FgTaeDeg) + d.FgPhiDeg
}

// beamTrackRaw holds the beam: cross-track and track-angle error both
// feed bank directly, plus the geometry feedforward.
func (e *Engine) beamTrackRaw() float32 {
	d := &e.d
	return d.FgPhiDeg - e.cfg.NavTrackXtkBankGain*d.FgXtkNmi - e.cfg.NavTaeBankGain*d.FgTaeDeg
}

func navLineage(l LateralLaw) bool {
	return l == LateralNavCapture || l == LateralNavTrack
}

func locLineage(l LateralLaw) bool {
	return l == LateralLocCapture || l == LateralLocTrack || l == LateralRollOut
}
