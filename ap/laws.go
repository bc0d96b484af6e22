// ap/laws.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"fmt"
	"strings"
)

// LateralLaw selects the roll guidance law. LateralNone is the basic
// roll/heading hold that the other laws fall back to.
type LateralLaw int32

const (
	LateralNone = LateralLaw(iota)
	LateralHeading
	LateralTrack
	LateralNavCapture
	LateralNavTrack
	LateralLocCapture
	LateralLocTrack
	LateralRollOut
	LateralGaTrack
	NumLateralLaws
)

func (l LateralLaw) String() string {
	return []string{"hold", "heading", "track", "nav-capture", "nav-track",
		"loc-capture", "loc-track", "rollout", "ga-track"}[l]
}

func (l LateralLaw) IsValid() bool {
	return l >= LateralNone && l < NumLateralLaws
}

// requiresNavValidity reports whether the law controls on data that a
// validity flag guards; losing that flag mid-law is a reversion trigger.
func (l LateralLaw) requiresNavValidity() bool {
	switch l {
	case LateralNavCapture, LateralNavTrack, LateralLocCapture, LateralLocTrack:
		return true
	default:
		return false
	}
}

func ParseLateralLaw(s string) (LateralLaw, error) {
	for l := LateralNone; l < NumLateralLaws; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return LateralNone, fmt.Errorf("%q: %w", s, ErrLateralLaw)
}

// VerticalLaw selects the pitch guidance law. VerticalHold is the basic
// pitch/altitude hold.
type VerticalLaw int32

const (
	VerticalHold = VerticalLaw(iota)
	VerticalAltCapture
	VerticalAltCruise
	VerticalVS
	VerticalFPA
	VerticalOpenClimb
	VerticalOpenDescent
	VerticalExpedite
	VerticalGsCapture
	VerticalGsTrack
	VerticalFlare
	VerticalSpeedProtection
	VerticalSRS
	NumVerticalLaws
)

func (l VerticalLaw) String() string {
	return []string{"hold", "alt-capture", "alt-cruise", "vs", "fpa",
		"open-climb", "open-descent", "expedite", "gs-capture", "gs-track",
		"flare", "speed-protection", "srs"}[l]
}

func (l VerticalLaw) IsValid() bool {
	return l >= VerticalHold && l < NumVerticalLaws
}

func (l VerticalLaw) requiresGsValidity() bool {
	return l == VerticalGsCapture || l == VerticalGsTrack
}

func ParseVerticalLaw(s string) (VerticalLaw, error) {
	for l := VerticalHold; l < NumVerticalLaws; l++ {
		if strings.EqualFold(s, l.String()) {
			return l, nil
		}
	}
	return VerticalHold, fmt.Errorf("%q: %w", s, ErrVerticalLaw)
}

// LateralArmed is a mode armed to engage once its capture precondition is
// met; it has no effect on output until then.
type LateralArmed int32

const (
	LateralArmedNone = LateralArmed(iota)
	LateralArmedNav
	LateralArmedLoc
	NumLateralArmed
)

func (a LateralArmed) String() string {
	return []string{"none", "nav", "loc"}[a]
}

func (a LateralArmed) IsValid() bool {
	return a >= LateralArmedNone && a < NumLateralArmed
}

type VerticalArmed int32

const (
	VerticalArmedNone = VerticalArmed(iota)
	VerticalArmedAlt
	VerticalArmedGs
	NumVerticalArmed
)

func (a VerticalArmed) String() string {
	return []string{"none", "alt", "gs"}[a]
}

func (a VerticalArmed) IsValid() bool {
	return a >= VerticalArmedNone && a < NumVerticalArmed
}
