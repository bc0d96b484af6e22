// aero/aero.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package aero

import (
	"github.com/aerosim/fmgc/math"
)

const (
	FtPerNm  = 6076.115
	FpmPerKn = FtPerNm / 60 // 1 kn of along-path speed in ft/min
	MSPerKn  = 0.512774     // knots to m/s
)

// DensityRatioAtAltitude returns the ratio of air density at the given
// altitude (in feet) to the air density at sea level, assuming the
// standard atmosphere.
func DensityRatioAtAltitude(alt float32) float32 {
	altm := alt * 0.3048 // altitude in meters

	// https://en.wikipedia.org/wiki/Barometric_formula#Density_equations
	const g0 = 9.80665    // gravitational constant, m/s^2
	const M_air = 0.02897 // molar mass of earth's air, kg/mol
	const R = 8.314463    // universal gas constant J/(mol K)
	const T_b = 288.15    // reference temperature at sea level, degrees K

	return math.Exp(-g0 * M_air * altm / (R * T_b))
}

func IASToTAS(ias, altitude float32) float32 {
	return ias / math.Sqrt(DensityRatioAtAltitude(altitude))
}

func TASToIAS(tas, altitude float32) float32 {
	return tas * math.Sqrt(DensityRatioAtAltitude(altitude))
}

// FPADeg returns the flight path angle in degrees for the given vertical
// speed (ft/min) and along-path ground speed (knots).
func FPADeg(vsFpm, gsKn float32) float32 {
	if gsKn <= 0 {
		return 0
	}
	return math.Degrees(math.Atan2(vsFpm, gsKn*FpmPerKn))
}

// VSFpm is the inverse of FPADeg: the vertical speed in ft/min that flies
// the given flight path angle at the given ground speed.
func VSFpm(fpaDeg, gsKn float32) float32 {
	return math.Tan(math.Radians(fpaDeg)) * gsKn * FpmPerKn
}

// TurnRateDps returns the rate of heading change in degrees/second for a
// coordinated turn at the given bank angle and true airspeed.
func TurnRateDps(bankDeg, tasKn float32) float32 {
	if tasKn <= 0 {
		return 0
	}
	return math.Degrees(9.81 * math.Tan(math.Radians(bankDeg)) / (tasKn * MSPerKn))
}

// BankForTurnRateDeg is the inverse of TurnRateDps: the bank angle that
// yields the given heading rate at the given true airspeed.
func BankForTurnRateDeg(rateDps, tasKn float32) float32 {
	return math.Degrees(math.Atan2(math.Radians(rateDps)*tasKn*MSPerKn, 9.81))
}
