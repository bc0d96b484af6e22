// ap/vertical.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/aerosim/fmgc/aero"
	"github.com/aerosim/fmgc/math"
	"github.com/aerosim/fmgc/util"
)

type verticalOutput struct {
	Law       VerticalLaw
	ThetaCDeg float32
}

// verticalTentative resolves and evaluates the vertical law for this tick.
// As with the lateral axis, the result is tentative until the reversion
// coordinator has run.
func (e *Engine) verticalTentative(in EngineInput, prot protectionContext, echo *ModeSelection) verticalOutput {
	d := &e.d
	cfg := e.cfg

	law := in.Modes.VerticalLaw
	fresh := law != d.ReqVertical
	if !fresh {
		law = d.ActiveVertical
	}

	// Armed-mode promotion.
	switch in.Modes.VerticalArmed {
	case VerticalArmedAlt:
		if altLineage(law) {
			echo.VerticalArmed = VerticalArmedNone
		} else if e.altCaptureEnvelope(in.Modes.HCFt) {
			law = VerticalAltCapture
			echo.VerticalArmed = VerticalArmedNone
			LawLog(in.Tick.SimTimeS, LawLogArm, "alt armed -> capture, err %.0f ft",
				in.Modes.HCFt-d.HFt)
		}
	case VerticalArmedGs:
		if gsLineage(law) {
			echo.VerticalArmed = VerticalArmedNone
		} else if d.NavGsValid && math.Abs(d.NavGsErrorDeg) < cfg.GsEngageDeg {
			law = VerticalGsCapture
			echo.VerticalArmed = VerticalArmedNone
			LawLog(in.Tick.SimTimeS, LawLogArm, "gs armed -> capture, dev %.2f deg", d.NavGsErrorDeg)
		}
	}

	// As on the lateral axis, a moved selector re-engages even if it names
	// the already-active law.
	if law != d.ActiveVertical || (fresh && law == in.Modes.VerticalLaw) {
		e.initVertical(law, in)
	}

	// Internal promotions. Each one latches; none ever demotes on its own.
	if law == VerticalExpedite && e.altCaptureEnvelope(in.Modes.HCFt) {
		law = VerticalAltCapture
		d.CaptureVsFpm = d.HDotFpm
		LawLog(in.Tick.SimTimeS, LawLogVertical, "expedite -> alt capture")
	}
	if law == VerticalAltCapture {
		err := in.Modes.HCFt - d.HFt
		if math.Abs(err) < 1 ||
			(math.Abs(err) < cfg.AltHoldBandFt && math.Abs(d.HDotFpm) < cfg.AltHoldVsBandFpm) {
			law = VerticalHold
			hc := in.Modes.HCFt
			d.AltHoldFt = &hc
			d.PitchHoldDeg = nil
			e.vsPid.Reset()
			LawLog(in.Tick.SimTimeS, LawLogVertical, "alt capture -> hold at %.0f", hc)
		}
	}
	if law == VerticalGsCapture && d.NavGsValid &&
		math.Abs(d.NavGsErrorDeg) < cfg.CaptureGsThresholdDeg &&
		d.NavGsErrorDeg*d.GsErrRateDegS <= 0 {
		law = VerticalGsTrack
		e.gsPid.Reset()
		LawLog(in.Tick.SimTimeS, LawLogVertical, "gs capture -> track")
	}
	if law == VerticalGsTrack && !d.OnGround && d.HRadioFt < cfg.FlareHeightFt {
		law = VerticalFlare
		pitch := d.ThetaDeg
		d.FlareEntryPitchDeg = &pitch
		LawLog(in.Tick.SimTimeS, LawLogVertical, "gs track -> flare at %.0f ft", d.HRadioFt)
	}

	out := verticalOutput{Law: law}
	dt := in.Tick.DtS

	switch law {
	case VerticalHold:
		out.ThetaCDeg = e.altHoldCmd(in, prot)

	case VerticalAltCapture:
		err := in.Modes.HCFt - d.HFt
		var vsCmd float32
		if in.Modes.AltCruiseMode {
			// Cruise-altitude step: fixed gentle rate, fading only close in.
			vsCmd = math.Sign(err) * min(cfg.CruiseStepVsFpm, cfg.AltCaptureSoftGain*math.Abs(err))
		} else {
			gain := util.Select(in.Modes.AltSoftMode, cfg.AltCaptureSoftGain, cfg.AltCaptureHardGain)
			vsCmd = gain * err
		}
		// Capture never commands a steeper rate than it was entered with.
		if lim := math.Abs(d.CaptureVsFpm); lim > 0 {
			vsCmd = math.Clamp(vsCmd, -lim, lim)
		}
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(vsCmd), dt)

	case VerticalAltCruise:
		ref := d.CruiseAltFt
		if ref <= 0 {
			ref = in.Modes.HCFt
		}
		vsCmd := math.Clamp(cfg.AltHoldGainFpmPerFt/2*(ref-d.HFt),
			-cfg.CruiseStepVsFpm, cfg.CruiseStepVsFpm)
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(vsCmd), dt)

	case VerticalVS:
		tgt := in.Modes.HDotCFpm
		if d.VsHoldFpm != nil {
			tgt = *d.VsHoldFpm
		}
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(tgt), dt)

	case VerticalFPA:
		fpa := in.Modes.FpaCDeg
		if d.FpaHoldDeg != nil {
			fpa = *d.FpaHoldDeg
		}
		vsCmd := aero.VSFpm(fpa, d.VGndKn)
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(vsCmd), dt)

	case VerticalOpenClimb, VerticalOpenDescent:
		out.ThetaCDeg = e.openCmd(law, in, prot)

	case VerticalExpedite:
		vsCmd := math.Sign(in.Modes.HCFt-d.HFt) * cfg.ExpediteVsFpm
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(vsCmd), dt)

	case VerticalGsCapture:
		// Level (or hold the current path) until the beam comes in, then
		// steepen toward it; never climb during capture.
		fpaCmd := math.Clamp(cfg.GsNominalFpaDeg-cfg.GsTrackP*d.NavGsErrorDeg,
			2*cfg.GsNominalFpaDeg, 0)
		vsCmd := aero.VSFpm(fpaCmd, d.VGndKn)
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(vsCmd), dt)

	case VerticalGsTrack:
		ctl := pidUpdate(&e.gsPid, 0, d.NavGsErrorDeg, dt)
		fpaCmd := math.Clamp(cfg.GsNominalFpaDeg+ctl, 2*cfg.GsNominalFpaDeg, 0)
		vsCmd := aero.VSFpm(fpaCmd, d.VGndKn)
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(vsCmd), dt)

	case VerticalFlare:
		// Exponentially decaying sink: command the rate that closes the
		// remaining height over the flare time constant.
		vsCmd := -60 * max(d.HRadioFt, 5) / cfg.FlareTimeConstS
		theta := e.pitchForVs(vsCmd, dt)
		if d.FlareEntryPitchDeg != nil {
			theta = max(theta, *d.FlareEntryPitchDeg)
		}
		out.ThetaCDeg = theta

	case VerticalSpeedProtection:
		out.ThetaCDeg = e.pitchForVs(prot.clampVs(in.Modes.HDotCFpm), dt)

	case VerticalSRS:
		out.ThetaCDeg = e.srsCmd(in)
	}

	LawLog(in.Tick.SimTimeS, LawLogVertical, "%s theta_c %.1f", law, out.ThetaCDeg)
	return out
}

// initVertical establishes the references a newly engaged law holds.
func (e *Engine) initVertical(law VerticalLaw, in EngineInput) {
	d := &e.d
	d.AltHoldFt = nil
	d.PitchHoldDeg = nil
	d.VsHoldFpm = nil
	d.FpaHoldDeg = nil
	d.FlareEntryPitchDeg = nil
	d.CaptureVsFpm = 0
	e.vsPid.Reset()

	switch law {
	case VerticalHold:
		// Hold the selected altitude if we're already there, otherwise the
		// altitude passing under us.
		ref := d.HFt
		if math.Abs(in.Modes.HCFt-d.HFt) <= e.cfg.AltHoldBandFt {
			ref = in.Modes.HCFt
		}
		d.AltHoldFt = &ref
	case VerticalAltCapture:
		d.CaptureVsFpm = d.HDotFpm
	case VerticalFlare:
		pitch := d.ThetaDeg
		d.FlareEntryPitchDeg = &pitch
	case VerticalGsTrack:
		e.gsPid.Reset()
	case VerticalSRS:
		pitch := d.ThetaDeg
		d.PitchHoldDeg = &pitch
	}
}

// altCaptureEnvelope reports whether the capture target is close enough to
// engage: inside the minimum band, or reachable within the capture horizon
// at the current rate.
func (e *Engine) altCaptureEnvelope(targetFt float32) bool {
	d := &e.d
	band := max(e.cfg.AltCaptureMinBandFt, math.Abs(d.HDotFpm)*e.cfg.AltCaptureHorizonS/60)
	return math.Abs(targetFt-d.HFt) < band
}

// trimPitchDeg estimates the level-flight trim attitude: the current pitch
// less the current flight-path angle.
func (e *Engine) trimPitchDeg() float32 {
	d := &e.d
	return d.ThetaDeg - aero.FPADeg(d.HDotFpm, d.VGndKn)
}

// pitchForVs is the rate-to-pitch inner loop: trim plus the commanded
// flight-path angle as feedforward, plus the controller correction
// tracking the commanded vertical speed.
func (e *Engine) pitchForVs(vsCmdFpm, dt float32) float32 {
	d := &e.d
	corr := pidUpdate(&e.vsPid, vsCmdFpm, d.HDotFpm, dt)
	theta := e.trimPitchDeg() + aero.FPADeg(vsCmdFpm, d.VGndKn) + corr
	return math.Clamp(theta, e.cfg.MinPitchDeg, e.cfg.MaxPitchDeg)
}

// pitchForVsP is the proportional-only version, used for bounds so the
// integrator is not advanced twice in one tick.
func (e *Engine) pitchForVsP(vsCmdFpm float32) float32 {
	d := &e.d
	corr := e.cfg.VsPitchGain * (vsCmdFpm - d.HDotFpm)
	theta := e.trimPitchDeg() + aero.FPADeg(vsCmdFpm, d.VGndKn) + corr
	return math.Clamp(theta, e.cfg.MinPitchDeg, e.cfg.MaxPitchDeg)
}

// altHoldCmd holds either a pitch attitude (after a triple-click reversion)
// or an altitude reference.
func (e *Engine) altHoldCmd(in EngineInput, prot protectionContext) float32 {
	d := &e.d
	cfg := e.cfg

	if d.PitchHoldDeg != nil {
		return math.Clamp(*d.PitchHoldDeg, cfg.MinPitchDeg, cfg.MaxPitchDeg)
	}

	if d.AltHoldFt == nil {
		ref := d.HFt
		d.AltHoldFt = &ref
	}
	vsCmd := math.Clamp(cfg.AltHoldGainFpmPerFt*(*d.AltHoldFt-d.HFt),
		-cfg.AltHoldVsLimitFpm, cfg.AltHoldVsLimitFpm)
	return e.pitchForVs(prot.clampVs(vsCmd), in.Tick.DtS)
}

// openCmd is speed-on-elevator: pitch controls airspeed while thrust
// (climb) or idle (descent) sets the energy, bounded so the path never
// commands through the target altitude or an intervening flight-plan
// constraint.
func (e *Engine) openCmd(law VerticalLaw, in EngineInput, prot protectionContext) float32 {
	d := &e.d
	cfg := e.cfg

	tgt := e.openTargetFt(law, in)

	spdErr := d.VIasKn + d.VTrendKnS - in.Modes.VCKn
	theta := e.trimPitchDeg() + cfg.SpeedPitchGain*spdErr

	capVs := prot.clampVs(cfg.AltCaptureHardGain * (tgt - d.HFt))
	capTheta := e.pitchForVsP(capVs)
	if law == VerticalOpenClimb {
		theta = min(theta, capTheta)
	} else {
		theta = max(theta, capTheta)
	}
	return math.Clamp(theta, cfg.MinPitchDeg, cfg.MaxPitchDeg)
}

// openTargetFt substitutes an intervening altitude constraint for the
// selected target; a constraint equal to the selected target is the target.
func (e *Engine) openTargetFt(law VerticalLaw, in EngineInput) float32 {
	d := &e.d
	tgt := in.Modes.HCFt
	if !d.FlightPlanAvail || d.AltConstraintFt == 0 || d.AltConstraintFt == tgt {
		return tgt
	}
	c := d.AltConstraintFt
	if law == VerticalOpenClimb && c > d.HFt && c < tgt {
		return c
	}
	if law == VerticalOpenDescent && c < d.HFt && c > tgt {
		return c
	}
	return tgt
}

// srsCmd is the takeoff/go-around speed-reference law: hold the reference
// speed on the elevator below the acceleration altitude, fading to the
// open-climb target above it.
func (e *Engine) srsCmd(in EngineInput) float32 {
	d := &e.d
	cfg := e.cfg

	goAround := d.FlightPhase == PhaseGoAround
	engineOut := !d.Engine1Operative || !d.Engine2Operative

	var refKn, accelAltFt float32
	if goAround {
		refKn = d.VappKn
		accelAltFt = d.AccelerationAltGaFt
	} else {
		refKn = d.V2Kn
		if engineOut {
			accelAltFt = d.AccelerationAltEoFt
		} else {
			refKn += 10
			accelAltFt = d.AccelerationAltFt
		}
	}

	if refKn <= 0 {
		// No valid speed reference; hold the current pitch.
		if d.PitchHoldDeg == nil {
			pitch := d.ThetaDeg
			d.PitchHoldDeg = &pitch
		}
		return *d.PitchHoldDeg
	}

	spdErr := d.VIasKn + d.VTrendKnS - refKn
	maxPitch := util.Select(engineOut, cfg.SrsMaxPitchEoDeg, cfg.SrsMaxPitchDeg)
	theta := math.Clamp(e.trimPitchDeg()+cfg.SpeedPitchGain*spdErr,
		cfg.SrsMinPitchDeg, maxPitch)

	if accelAltFt > 0 && d.HFt > accelAltFt {
		// SRS does not disengage by itself; the target fades to open climb.
		open := math.Clamp(e.trimPitchDeg()+cfg.SpeedPitchGain*(d.VIasKn+d.VTrendKnS-in.Modes.VCKn),
			cfg.MinPitchDeg, cfg.MaxPitchDeg)
		t := math.Clamp((d.HFt-accelAltFt)/500, 0, 1)
		theta = math.Lerp(t, theta, open)
	}
	return theta
}

func altLineage(l VerticalLaw) bool {
	return l == VerticalAltCapture || l == VerticalHold || l == VerticalAltCruise
}

func gsLineage(l VerticalLaw) bool {
	return l == VerticalGsCapture || l == VerticalGsTrack || l == VerticalFlare
}
