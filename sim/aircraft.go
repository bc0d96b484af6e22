// sim/aircraft.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"github.com/aerosim/fmgc/aero"
	"github.com/aerosim/fmgc/ap"
	"github.com/aerosim/fmgc/math"
)

// trimPitchDeg is the point-mass model's level-flight attitude: flight
// path angle is pitch less this offset.
const trimPitchDeg = 2

// attitudeTauS is the first-order response of the airframe to an attitude
// command.
const attitudeTauS = 1

// Aircraft is a point-mass airframe that applies the engine's attitude
// commands with a first-order lag and integrates the resulting path. It is
// deliberately simple: good enough to close the loop around the guidance
// laws, not an aerodynamic model.
type Aircraft struct {
	HeadingDeg float32
	BankDeg    float32
	PitchDeg   float32
	AltitudeFt float32
	VsFpm      float32
	IasKn      float32

	// Ground track integrated from the start point, (east, north) nm.
	PosNm [2]float32
}

// Step advances the airframe by dt seconds under the given attitude
// command. Airspeed is held (autothrust is outside the guidance core).
func (a *Aircraft) Step(cmd ap.OutputCommand, dt float32) {
	if dt <= 0 {
		return
	}

	// First-order attitude response.
	blend := 1 - math.Exp(-dt/attitudeTauS)
	a.BankDeg += (cmd.PhiCDeg - a.BankDeg) * blend
	a.PitchDeg += (cmd.ThetaCDeg - a.PitchDeg) * blend

	tas := aero.IASToTAS(a.IasKn, a.AltitudeFt)
	a.HeadingDeg = math.NormalizeHeading(a.HeadingDeg + aero.TurnRateDps(a.BankDeg, tas)*dt)

	hdg := math.Radians(a.HeadingDeg)
	a.PosNm = math.Add2f(a.PosNm, math.Scale2f([2]float32{math.Sin(hdg), math.Cos(hdg)}, tas*dt/3600))

	a.VsFpm = aero.VSFpm(a.PitchDeg-trimPitchDeg, tas)
	a.AltitudeFt += a.VsFpm * dt / 60
}

// Sample produces the engine's input view of the airframe. Navigation and
// reference-speed fields not modeled here are filled with plausible
// constants; noise, if any, is added by the caller.
func (a *Aircraft) Sample() ap.AircraftState {
	tas := aero.IASToTAS(a.IasKn, a.AltitudeFt)
	return ap.AircraftState{
		ThetaDeg:         a.PitchDeg,
		PhiDeg:           a.BankDeg,
		VIasKn:           a.IasKn,
		VTasKn:           tas,
		VGndKn:           tas,
		HFt:              a.AltitudeFt,
		HIndFt:           a.AltitudeFt,
		HRadioFt:         min(a.AltitudeFt, 2500),
		HDotFpm:          a.VsFpm,
		PsiMagDeg:        a.HeadingDeg,
		PsiMagTrackDeg:   a.HeadingDeg,
		PsiTrueDeg:       a.HeadingDeg,
		VlsKn:            a.IasKn - 60,
		VmaxKn:           a.IasKn + 100,
		Engine1Operative: true,
		Engine2Operative: true,
	}
}
