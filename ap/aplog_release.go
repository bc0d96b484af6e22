//go:build !aplog

// ap/aplog_release.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

// InitLawLog is a no-op in release builds
func InitLawLog(enabled bool, categories string) {}

// LawLog is a no-op in release builds
func LawLog(simTimeS float64, category string, format string, args ...interface{}) {}

// LawLogEnabled always returns false in release builds
func LawLogEnabled(category string) bool { return false }
