// ap/config_test.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tunables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_bank_deg: 30\nloc_engage_deg: 1.5\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, float32(30), cfg.MaxBankDeg)
	assert.Equal(t, float32(1.5), cfg.LocEngageDeg)
	// Everything else keeps its default.
	assert.Equal(t, DefaultConfig().CaptureXtkThresholdNmi, cfg.CaptureXtkThresholdNmi)
	assert.Equal(t, DefaultConfig().FlareHeightFt, cfg.FlareHeightFt)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	for name, body := range map[string]string{
		"negative threshold": "capture_xtk_threshold_nmi: -1\n",
		"zero gain":          "alt_capture_hard_gain: 0\n",
		"inverted bank":      "max_bank_low_deg: 40\n",
		"inverted pitch":     "min_pitch_deg: 30\n",
		"not yaml":           "{{{\n",
	} {
		path := filepath.Join(t.TempDir(), "tunables.yaml")
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

		_, err := LoadConfig(path)
		assert.ErrorIs(t, err, ErrConfig, name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestParseLaws(t *testing.T) {
	l, err := ParseLateralLaw("loc-capture")
	require.NoError(t, err)
	assert.Equal(t, LateralLocCapture, l)

	v, err := ParseVerticalLaw("OPEN-CLIMB")
	require.NoError(t, err)
	assert.Equal(t, VerticalOpenClimb, v)

	_, err = ParseLateralLaw("bogus")
	assert.ErrorIs(t, err, ErrLateralLaw)
	_, err = ParseVerticalLaw("bogus")
	assert.ErrorIs(t, err, ErrVerticalLaw)
}
