// ap/ingest.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/aerosim/fmgc/math"
)

// ingest normalizes the raw sample into the working representation:
// Euler-angle rates from body rates, local-frame accelerations, ground
// contact, rudder deflection, and the trends the laws and promotions
// consume. Raw fields pass through unchanged.
func (e *Engine) ingest(in EngineInput) {
	d := &e.d
	raw := in.Aircraft
	dt := in.Tick.DtS

	first := !d.Initialized

	// Trends derive from the previous tick's sample, so compute them
	// before the new sample replaces it. At dt=0 they hold their previous
	// value rather than dividing by zero.
	if first {
		d.VTrendKnS = 0
		d.LocErrRateDegS = 0
		d.GsErrRateDegS = 0
	} else if dt > 0 {
		d.VTrendKnS = (raw.VIasKn - d.PrevVIasKn) / dt
		d.LocErrRateDegS = (raw.NavLocErrorDeg - d.PrevLocErr) / dt
		d.GsErrRateDegS = (raw.NavGsErrorDeg - d.PrevGsErr) / dt
	}
	d.PrevVIasKn = raw.VIasKn
	d.PrevLocErr = raw.NavLocErrorDeg
	d.PrevGsErr = raw.NavGsErrorDeg

	d.AircraftState = raw

	// Body rates to Euler-angle rates. cos(theta) appears in the heading
	// rate; keep it away from zero so an extreme pitch sample cannot blow
	// up the conversion.
	sinPhi, cosPhi := math.Sin(math.Radians(raw.PhiDeg)), math.Cos(math.Radians(raw.PhiDeg))
	sinTheta, cosTheta := math.Sin(math.Radians(raw.ThetaDeg)), math.Cos(math.Radians(raw.ThetaDeg))
	cosTheta = max(cosTheta, 0.1)
	tanTheta := sinTheta / cosTheta

	p, q, r := raw.PRadS, raw.QRadS, raw.RRadS
	d.PkDegS = math.Degrees(p + (q*sinPhi+r*cosPhi)*tanTheta)
	d.QkDegS = math.Degrees(q*cosPhi - r*sinPhi)
	d.RkDegS = math.Degrees((q*sinPhi + r*cosPhi) / cosTheta)

	// Body accelerations rotated through pitch and roll into the local
	// frame (heading left out; the laws only need the vertical split).
	bx, by, bz := raw.BxMS2, raw.ByMS2, raw.BzMS2
	d.AxMS2 = bx*cosTheta + (by*sinPhi+bz*cosPhi)*sinTheta
	d.AyMS2 = by*cosPhi - bz*sinPhi
	d.AzMS2 = -bx*sinTheta + (by*sinPhi+bz*cosPhi)*cosTheta

	d.OnGround = raw.GearStrutLeft > e.cfg.StrutCompressionGroundThreshold ||
		raw.GearStrutRight > e.cfg.StrutCompressionGroundThreshold

	d.ZetaDeg = math.Clamp(raw.ZetaPos, -1, 1) * e.cfg.MaxRudderDeg

	d.Initialized = true
}
