// sim/scenario.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/aerosim/fmgc/ap"
)

var ErrScenario = errors.New("invalid scenario")

// A Scenario describes one closed-loop run: where the airframe starts,
// how fast the loop ticks, optional sensor noise, and a timeline of
// crew/FMS inputs applied at absolute times.
type Scenario struct {
	Name      string  `yaml:"name"`
	TickS     float32 `yaml:"tick_s"`
	DurationS float32 `yaml:"duration_s"`

	Initial InitialState `yaml:"initial"`
	Noise   *NoiseSpec   `yaml:"noise"`

	Timeline []Event `yaml:"timeline"`
}

type InitialState struct {
	HeadingDeg float32 `yaml:"heading_deg"`
	AltitudeFt float32 `yaml:"altitude_ft"`
	IasKn      float32 `yaml:"ias_kn"`
	PitchDeg   float32 `yaml:"pitch_deg"`
	BankDeg    float32 `yaml:"bank_deg"`
}

// NoiseSpec adds per-sensor gaussian noise to the sampled state. The seed
// makes a run reproducible.
type NoiseSpec struct {
	Seed          int64   `yaml:"seed"`
	AltSigmaFt    float32 `yaml:"alt_sigma_ft"`
	HdgSigmaDeg   float32 `yaml:"hdg_sigma_deg"`
	IasSigmaKn    float32 `yaml:"ias_sigma_kn"`
	VsSigmaFpm    float32 `yaml:"vs_sigma_fpm"`
	PitchSigmaDeg float32 `yaml:"pitch_sigma_deg"`
}

// An Event applies a mode selection at an absolute time; it stays in
// effect until the next event.
type Event struct {
	AtS   float32  `yaml:"at_s"`
	Modes ModeSpec `yaml:"modes"`
}

// ModeSpec is the YAML-friendly mirror of ap.ModeSelection: law selectors
// by name instead of by ordinal.
type ModeSpec struct {
	Ap1 bool `yaml:"ap1"`
	Ap2 bool `yaml:"ap2"`

	LateralLaw    string `yaml:"lateral_law"`
	LateralArmed  string `yaml:"lateral_armed"`
	VerticalLaw   string `yaml:"vertical_law"`
	VerticalArmed string `yaml:"vertical_armed"`

	HeadingDeg float32 `yaml:"heading_deg"`
	AltitudeFt float32 `yaml:"altitude_ft"`
	VsFpm      float32 `yaml:"vs_fpm"`
	FpaDeg     float32 `yaml:"fpa_deg"`
	SpeedKn    float32 `yaml:"speed_kn"`

	AltSoft   bool `yaml:"alt_soft"`
	AltCruise bool `yaml:"alt_cruise"`
	Expedite  bool `yaml:"expedite"`

	ToggleTrkFpa bool `yaml:"toggle_trk_fpa"`
	TripleClick  bool `yaml:"triple_click"`
}

func (m ModeSpec) resolve() (ap.ModeSelection, error) {
	sel := ap.ModeSelection{
		AP1Engaged:    m.Ap1,
		AP2Engaged:    m.Ap2,
		PsiCDeg:       m.HeadingDeg,
		HCFt:          m.AltitudeFt,
		HDotCFpm:      m.VsFpm,
		FpaCDeg:       m.FpaDeg,
		VCKn:          m.SpeedKn,
		AltSoftMode:   m.AltSoft,
		AltCruiseMode: m.AltCruise,
		ExpediteMode:  m.Expedite,
		ToggleTrkFpa:  m.ToggleTrkFpa,
		TripleClick:   m.TripleClick,
	}

	var err error
	if m.LateralLaw != "" {
		if sel.LateralLaw, err = ap.ParseLateralLaw(m.LateralLaw); err != nil {
			return sel, err
		}
	}
	if m.VerticalLaw != "" {
		if sel.VerticalLaw, err = ap.ParseVerticalLaw(m.VerticalLaw); err != nil {
			return sel, err
		}
	}

	switch m.LateralArmed {
	case "", "none":
	case "nav":
		sel.LateralArmed = ap.LateralArmedNav
	case "loc":
		sel.LateralArmed = ap.LateralArmedLoc
	default:
		return sel, fmt.Errorf("lateral armed %q: %w", m.LateralArmed, ap.ErrArmedMode)
	}
	switch m.VerticalArmed {
	case "", "none":
	case "alt":
		sel.VerticalArmed = ap.VerticalArmedAlt
	case "gs":
		sel.VerticalArmed = ap.VerticalArmedGs
	default:
		return sel, fmt.Errorf("vertical armed %q: %w", m.VerticalArmed, ap.ErrArmedMode)
	}

	return sel, nil
}

// LoadScenario reads and validates one YAML scenario file. Unknown law
// names are boundary errors surfaced here, not at run time.
func LoadScenario(path string) (Scenario, error) {
	var sc Scenario

	data, err := os.ReadFile(path)
	if err != nil {
		return sc, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return sc, fmt.Errorf("%s: %w: %v", path, ErrScenario, err)
	}
	if err := sc.Validate(); err != nil {
		return sc, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

func (sc *Scenario) Validate() error {
	if sc.TickS <= 0 {
		return fmt.Errorf("%w: tick_s %v must be positive", ErrScenario, sc.TickS)
	}
	if sc.DurationS <= 0 {
		return fmt.Errorf("%w: duration_s %v must be positive", ErrScenario, sc.DurationS)
	}
	if sc.Initial.IasKn <= 0 {
		return fmt.Errorf("%w: initial ias_kn %v must be positive", ErrScenario, sc.Initial.IasKn)
	}

	if !sort.SliceIsSorted(sc.Timeline, func(i, j int) bool {
		return sc.Timeline[i].AtS < sc.Timeline[j].AtS
	}) {
		return fmt.Errorf("%w: timeline not in time order", ErrScenario)
	}
	for _, ev := range sc.Timeline {
		if _, err := ev.Modes.resolve(); err != nil {
			return fmt.Errorf("%w: event at %v s: %v", ErrScenario, ev.AtS, err)
		}
	}
	return nil
}
