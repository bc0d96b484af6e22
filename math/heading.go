// math/heading.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

///////////////////////////////////////////////////////////////////////////
// headings and directions

// NormalizeHeading reduces a heading to [0,360).
func NormalizeHeading(h float32) float32 {
	if h < 0 {
		return 360 - NormalizeHeading(-h)
	}
	return Mod(h, 360)
}

func OppositeHeading(h float32) float32 {
	return NormalizeHeading(h + 180)
}

// HeadingDifference returns the minimum difference between two
// headings. (i.e., the result is always in the range [0,180].)
func HeadingDifference(a float32, b float32) float32 {
	var d float32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d > 180 {
		d = 360 - d
	}
	return d
}

// HeadingSignedTurn returns the signed turn from cur to target, negative
// for left turns. First rotate so that the target is aligned with 180
// degrees; this lets us not worry about the wrap around at 0/360.
func HeadingSignedTurn(cur, target float32) float32 {
	rot := NormalizeHeading(180 - target)
	return 180 - NormalizeHeading(cur+rot) // w.r.t. 180 target
}

// HeadingVector returns the unit direction (east, north components) for
// flying the given heading.
func HeadingVector(hdg float32) [2]float32 {
	r := Radians(hdg)
	return [2]float32{Sin(r), Cos(r)}
}

// VectorHeading returns the heading that the given (east, north) vector
// points along.
func VectorHeading(v [2]float32) float32 {
	// atan2 measures w.r.t. +x with angles positive counter-clockwise; we
	// want w.r.t. +y with positive clockwise. Swapping the arguments,
	// passing (x,y), gives exactly that.
	return NormalizeHeading(Degrees(Atan2(v[0], v[1])))
}
