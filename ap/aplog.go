// ap/aplog.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

// Available logging categories
const (
	LawLogLateral  = "lateral"
	LawLogVertical = "vertical"
	LawLogArm      = "arm"
	LawLogRevert   = "revert"
	LawLogProtect  = "protect"
	LawLogSynth    = "synth"
)
