// ap/snapshot.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"github.com/brunoga/deep"
	"go.einride.tech/pid"
)

// Snapshot is a deep copy of everything that makes an engine's future
// evaluation deterministic: the derived state and the inner-loop
// controller state.
type Snapshot struct {
	Derived DerivedState
	VsPid   pid.Controller
	LocPid  pid.Controller
	GsPid   pid.Controller
}

// TakeSnapshot captures the engine's mutable state. Restoring it and
// replaying the same inputs reproduces the same outputs exactly.
func (e *Engine) TakeSnapshot() Snapshot {
	return Snapshot{
		Derived: deep.MustCopy(e.d),
		VsPid:   e.vsPid,
		LocPid:  e.locPid,
		GsPid:   e.gsPid,
	}
}

// RestoreSnapshot restores engine state from a previously captured
// snapshot. The snapshot remains usable afterwards.
func (e *Engine) RestoreSnapshot(snap Snapshot) {
	e.d = deep.MustCopy(snap.Derived)
	e.vsPid = snap.VsPid
	e.locPid = snap.LocPid
	e.gsPid = snap.GsPid
}

// Fork returns an independent engine continuing from e's current state,
// sharing nothing with it; AP1/AP2 candidate evaluation forks a second
// instance rather than sharing DerivedState.
func (e *Engine) Fork() *Engine {
	clone := *e
	clone.d = deep.MustCopy(e.d)
	return &clone
}
