// sim/sim.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sim

import (
	"fmt"

	"github.com/aerosim/fmgc/ap"
	"github.com/aerosim/fmgc/log"
	"github.com/aerosim/fmgc/math"
	"github.com/aerosim/fmgc/rand"
)

// Sim closes the loop between the guidance engine and the point-mass
// airframe for one scenario.
type Sim struct {
	sc  Scenario
	eng *ap.Engine
	lg  *log.Logger

	ac    Aircraft
	noise rand.Rand
}

// Result summarizes a completed run.
type Result struct {
	Name  string
	Ticks int

	FinalHeadingDeg  float32
	FinalAltitudeFt  float32
	FinalVsFpm       float32
	TrackNm          float32
	FinalLateralLaw  ap.LateralLaw
	FinalVerticalLaw ap.VerticalLaw

	Reversions int
}

func New(sc Scenario, cfg ap.Config, lg *log.Logger) (*Sim, error) {
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	eng, err := ap.NewEngine(cfg, lg)
	if err != nil {
		return nil, err
	}

	s := &Sim{
		sc:  sc,
		eng: eng,
		lg:  lg,
		ac: Aircraft{
			HeadingDeg: sc.Initial.HeadingDeg,
			BankDeg:    sc.Initial.BankDeg,
			PitchDeg:   sc.Initial.PitchDeg,
			AltitudeFt: sc.Initial.AltitudeFt,
			IasKn:      sc.Initial.IasKn,
		},
		noise: rand.New(),
	}
	if sc.Noise != nil {
		s.noise.Seed(sc.Noise.Seed)
	}
	return s, nil
}

// Run executes the scenario to completion. If record is non-nil it is
// called with every tick's output; a record error aborts the run.
func (s *Sim) Run(record func(ap.EngineOutput) error) (Result, error) {
	res := Result{Name: s.sc.Name}

	modes := ap.ModeSelection{}
	nextEv := 0

	ticks := int(s.sc.DurationS/s.sc.TickS + 0.5)
	for i := 0; i < ticks; i++ {
		t := float64(i) * float64(s.sc.TickS)

		for nextEv < len(s.sc.Timeline) && float64(s.sc.Timeline[nextEv].AtS) <= t {
			sel, err := s.sc.Timeline[nextEv].Modes.resolve()
			if err != nil {
				// Validate() already vetted the timeline.
				return res, err
			}
			modes = sel
			s.lg.Debugf("%s: t=%.1f applying %s / %s", s.sc.Name, t,
				modes.LateralLaw, modes.VerticalLaw)
			nextEv++
		}

		in := ap.EngineInput{
			Tick:     ap.TickContext{DtS: s.sc.TickS, SimTimeS: t},
			Aircraft: s.sample(),
			Modes:    modes,
		}
		out, err := s.eng.Update(in)
		if err != nil {
			return res, fmt.Errorf("%s: t=%.1f: %w", s.sc.Name, t, err)
		}

		// Request pulses are one-shot; the engine edge-detects them but a
		// held pulse would mask the next one.
		modes.ToggleTrkFpa = false
		modes.TripleClick = false

		if out.Modes.RevertLateral || out.Modes.RevertVertical {
			res.Reversions++
		}

		if record != nil {
			if err := record(out); err != nil {
				return res, fmt.Errorf("%s: record: %w", s.sc.Name, err)
			}
		}

		cmd := out.Raw.FlightDirector
		if out.Raw.ApEngaged {
			cmd = out.Raw.Autopilot
		}
		s.ac.Step(cmd, s.sc.TickS)
		res.Ticks++

		res.FinalLateralLaw = out.Modes.LateralLaw
		res.FinalVerticalLaw = out.Modes.VerticalLaw
	}

	res.FinalHeadingDeg = s.ac.HeadingDeg
	res.FinalAltitudeFt = s.ac.AltitudeFt
	res.FinalVsFpm = s.ac.VsFpm
	res.TrackNm = math.Length2f(s.ac.PosNm)
	return res, nil
}

func (s *Sim) sample() ap.AircraftState {
	st := s.ac.Sample()
	n := s.sc.Noise
	if n == nil {
		return st
	}

	st.HFt += s.noise.NormFloat32(n.AltSigmaFt)
	st.HIndFt = st.HFt
	hdg := math.NormalizeHeading(st.PsiMagDeg + s.noise.NormFloat32(n.HdgSigmaDeg))
	st.PsiMagDeg, st.PsiMagTrackDeg, st.PsiTrueDeg = hdg, hdg, hdg
	st.VIasKn += s.noise.NormFloat32(n.IasSigmaKn)
	st.HDotFpm += s.noise.NormFloat32(n.VsSigmaFpm)
	st.ThetaDeg += s.noise.NormFloat32(n.PitchSigmaDeg)
	return st
}
