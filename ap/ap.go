// ap/ap.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package ap evaluates the lateral and vertical autopilot guidance laws.
// An Engine is fed one EngineInput per simulation tick and produces the
// attitude commands for the flight-director cues and the autopilot
// servos, running the mode engagement/arming state machine, envelope
// protections, and reversion logic along the way.
//
// The evaluation order within a tick is fixed: ingest, protection
// context, lateral and vertical laws (tentative), reversion coordinator,
// command synthesis. The only state that survives a tick is the engine's
// own DerivedState; everything else is passed by value.
package ap

import (
	"errors"
	"fmt"
	"time"

	"github.com/aerosim/fmgc/log"
	gomath "math"

	"go.einride.tech/pid"
)

// Errors used by the ap package
var (
	ErrLateralLaw  = errors.New("unknown lateral law selector")
	ErrVerticalLaw = errors.New("unknown vertical law selector")
	ErrArmedMode   = errors.New("unknown armed mode selector")
	ErrTick        = errors.New("invalid tick context")
	ErrConfig      = errors.New("invalid configuration")
)

// Engine evaluates the guidance laws for one autopilot instance. Engines
// are not safe for concurrent use; AP1/AP2 candidates each get their own.
type Engine struct {
	cfg Config
	lg  *log.Logger

	d DerivedState

	// Inner-loop controllers; their state is part of the engine and is
	// captured by Snapshot.
	vsPid  pid.Controller
	locPid pid.Controller
	gsPid  pid.Controller
}

func NewEngine(cfg Config, lg *log.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Engine{cfg: cfg, lg: lg}
	e.d.FdConnected = true
	e.vsPid = pid.Controller{
		Config: pid.ControllerConfig{
			ProportionalGain: float64(cfg.VsPitchGain),
			IntegralGain:     float64(cfg.VsPitchIntegralGain),
		},
	}
	e.locPid = pid.Controller{
		Config: pid.ControllerConfig{
			ProportionalGain: float64(cfg.LocTrackP),
			IntegralGain:     float64(cfg.LocTrackI),
			DerivativeGain:   float64(cfg.LocTrackD),
		},
	}
	e.gsPid = pid.Controller{
		Config: pid.ControllerConfig{
			ProportionalGain: float64(cfg.GsTrackP),
			IntegralGain:     float64(cfg.GsTrackI),
		},
	}
	return e, nil
}

// Update runs one tick. The returned output echoes the ingested state and
// the resolved mode selection alongside the commands. An error is
// returned only for a contract violation at the boundary (an illegal law
// selector or tick context); in that case the engine's state is left
// untouched and the output is the zero value.
func (e *Engine) Update(in EngineInput) (EngineOutput, error) {
	if err := validateInput(&e.d, in); err != nil {
		return EngineOutput{}, err
	}

	e.ingest(in)

	prot := e.protection(in)

	echo := in.Modes

	lat := e.lateralTentative(in, prot, &echo)
	vert := e.verticalTentative(in, prot, &echo)

	e.revert(&lat, &vert, in, &echo)

	raw := e.synthesize(lat, vert, in, prot)

	e.commit(lat, vert, in, &echo)

	return EngineOutput{Tick: in.Tick, Derived: e.d, Modes: echo, Raw: raw}, nil
}

func validateInput(d *DerivedState, in EngineInput) error {
	if !in.Modes.LateralLaw.IsValid() {
		return fmt.Errorf("lateral law %d: %w", in.Modes.LateralLaw, ErrLateralLaw)
	}
	if !in.Modes.VerticalLaw.IsValid() {
		return fmt.Errorf("vertical law %d: %w", in.Modes.VerticalLaw, ErrVerticalLaw)
	}
	if !in.Modes.LateralArmed.IsValid() {
		return fmt.Errorf("lateral armed %d: %w", in.Modes.LateralArmed, ErrArmedMode)
	}
	if !in.Modes.VerticalArmed.IsValid() {
		return fmt.Errorf("vertical armed %d: %w", in.Modes.VerticalArmed, ErrArmedMode)
	}

	if dt := in.Tick.DtS; dt < 0 || gomath.IsNaN(float64(dt)) || gomath.IsInf(float64(dt), 0) {
		return fmt.Errorf("dt %v: %w", dt, ErrTick)
	}
	if d.Initialized && in.Tick.SimTimeS < d.PrevSimTimeS {
		return fmt.Errorf("sim time went backwards (%v -> %v): %w",
			d.PrevSimTimeS, in.Tick.SimTimeS, ErrTick)
	}
	return nil
}

// commit persists the resolved laws and edge-detection state once the
// coordinator and synthesizer have run.
func (e *Engine) commit(lat lateralOutput, vert verticalOutput, in EngineInput, echo *ModeSelection) {
	d := &e.d

	if lat.Law != d.ActiveLateral {
		e.lg.Debugf("lateral law %s -> %s", d.ActiveLateral, lat.Law)
		LawLog(in.Tick.SimTimeS, LawLogLateral, "active %s -> %s", d.ActiveLateral, lat.Law)
	}
	if vert.Law != d.ActiveVertical {
		e.lg.Debugf("vertical law %s -> %s", d.ActiveVertical, vert.Law)
		LawLog(in.Tick.SimTimeS, LawLogVertical, "active %s -> %s", d.ActiveVertical, vert.Law)
	}

	d.ReqLateral = in.Modes.LateralLaw
	d.ReqVertical = in.Modes.VerticalLaw
	d.ActiveLateral = lat.Law
	d.ActiveVertical = vert.Law

	echo.LateralLaw = lat.Law
	echo.VerticalLaw = vert.Law

	if in.Modes.FDConnect {
		d.FdConnected = true
	}

	d.PrevToggleTrkFpa = in.Modes.ToggleTrkFpa
	d.PrevTripleClick = in.Modes.TripleClick
	d.PrevSimTimeS = in.Tick.SimTimeS
}

// pidUpdate advances an inner-loop controller and returns its control
// signal. At dt=0 the controller is not advanced and the previous signal
// is reused.
func pidUpdate(c *pid.Controller, reference, actual, dt float32) float32 {
	if dt > 0 {
		c.Update(pid.ControllerInput{
			ReferenceSignal:  float64(reference),
			ActualSignal:     float64(actual),
			SamplingInterval: time.Duration(float64(dt) * float64(time.Second)),
		})
	}
	return float32(c.State.ControlSignal)
}
