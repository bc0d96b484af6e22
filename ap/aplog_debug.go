//go:build aplog

// ap/aplog_debug.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"fmt"
	"strings"
)

// Law logging configuration
var (
	lawlogEnabled    bool
	lawlogCategories map[string]bool
)

// InitLawLog initializes per-tick law logging. An empty or "all" category
// list enables every category.
func InitLawLog(enabled bool, categories string) {
	lawlogEnabled = enabled
	lawlogCategories = make(map[string]bool)

	if !enabled {
		return
	}

	if categories == "" || categories == "all" {
		for _, cat := range []string{LawLogLateral, LawLogVertical, LawLogArm,
			LawLogRevert, LawLogProtect, LawLogSynth} {
			lawlogCategories[cat] = true
		}
	} else {
		for _, cat := range strings.Split(categories, ",") {
			lawlogCategories[strings.TrimSpace(cat)] = true
		}
	}
}

// LawLog logs a message with simulation time and category.
func LawLog(simTimeS float64, category string, format string, args ...interface{}) {
	if !lawlogEnabled || !lawlogCategories[category] {
		return
	}

	// Format: [ssss.sss] [category] message
	message := fmt.Sprintf(format, args...)
	fmt.Printf("[%08.3f] [%s] %s\n", simTimeS, category, message)
}

// LawLogEnabled returns whether law logging is enabled for a given category
func LawLogEnabled(category string) bool {
	return lawlogEnabled && lawlogCategories[category]
}
