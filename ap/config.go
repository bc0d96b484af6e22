// ap/config.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the guidance-law tunables. The structure of the laws is
// fixed; the numbers here are subject to tuning against reference
// flight-test data. Zero values are rejected by Validate where a zero
// would make a law degenerate.
type Config struct {
	// Bank limits. The low limit applies close to the ground or with an
	// engine inoperative.
	MaxBankDeg              float32 `yaml:"max_bank_deg"`
	MaxBankLowDeg           float32 `yaml:"max_bank_low_deg"`
	BankReductionRadioAltFt float32 `yaml:"bank_reduction_radio_alt_ft"`

	// Capture-to-track promotion thresholds; both must be satisfied.
	CaptureXtkThresholdNmi float32 `yaml:"capture_xtk_threshold_nmi"`
	CaptureTaeThresholdDeg float32 `yaml:"capture_tae_threshold_deg"`

	// Altitude capture shaping, ft/min of commanded rate per ft of
	// remaining altitude error.
	AltCaptureSoftGain float32 `yaml:"alt_capture_soft_gain"`
	AltCaptureHardGain float32 `yaml:"alt_capture_hard_gain"`

	// Either gear strut compressing beyond this fraction means on-ground.
	StrutCompressionGroundThreshold float32 `yaml:"strut_compression_ground_threshold"`

	// Heading/track select.
	HeadingBankGain   float32 `yaml:"heading_bank_gain"` // deg bank per deg error
	WingsLevelBankDeg float32 `yaml:"wings_level_bank_deg"`

	// Nav/localizer beam geometry.
	NavXtkGainDegPerNmi float32 `yaml:"nav_xtk_gain_deg_per_nmi"`
	NavInterceptMaxDeg  float32 `yaml:"nav_intercept_max_deg"`
	NavTaeBankGain      float32 `yaml:"nav_tae_bank_gain"`
	NavTrackXtkBankGain float32 `yaml:"nav_track_xtk_bank_gain"`
	NavEngageXtkNmi     float32 `yaml:"nav_engage_xtk_nmi"`
	LocEngageDeg        float32 `yaml:"loc_engage_deg"`

	// Localizer track inner loop.
	LocTrackP float32 `yaml:"loc_track_p"`
	LocTrackI float32 `yaml:"loc_track_i"`
	LocTrackD float32 `yaml:"loc_track_d"`

	// Glideslope.
	GsEngageDeg           float32 `yaml:"gs_engage_deg"`
	CaptureGsThresholdDeg float32 `yaml:"capture_gs_threshold_deg"`
	GsNominalFpaDeg       float32 `yaml:"gs_nominal_fpa_deg"`
	GsTrackP              float32 `yaml:"gs_track_p"`
	GsTrackI              float32 `yaml:"gs_track_i"`

	// Vertical-speed-to-pitch inner loop.
	VsPitchGain         float32 `yaml:"vs_pitch_gain"` // deg pitch per fpm error
	VsPitchIntegralGain float32 `yaml:"vs_pitch_integral_gain"`
	MinPitchDeg         float32 `yaml:"min_pitch_deg"`
	MaxPitchDeg         float32 `yaml:"max_pitch_deg"`

	// Altitude hold shaping.
	AltHoldGainFpmPerFt float32 `yaml:"alt_hold_gain_fpm_per_ft"`
	AltHoldVsLimitFpm   float32 `yaml:"alt_hold_vs_limit_fpm"`
	AltHoldBandFt       float32 `yaml:"alt_hold_band_ft"`
	AltHoldVsBandFpm    float32 `yaml:"alt_hold_vs_band_fpm"`

	// Altitude capture envelope: engage when the target is inside
	// max(min band, |vs| * horizon).
	AltCaptureMinBandFt float32 `yaml:"alt_capture_min_band_ft"`
	AltCaptureHorizonS  float32 `yaml:"alt_capture_horizon_s"`

	CruiseStepVsFpm float32 `yaml:"cruise_step_vs_fpm"`
	ExpediteVsFpm   float32 `yaml:"expedite_vs_fpm"`

	// Speed-on-elevator, deg pitch per kn of speed error.
	SpeedPitchGain float32 `yaml:"speed_pitch_gain"`

	// SRS takeoff/go-around pitch limits.
	SrsMaxPitchDeg   float32 `yaml:"srs_max_pitch_deg"`
	SrsMaxPitchEoDeg float32 `yaml:"srs_max_pitch_eo_deg"`
	SrsMinPitchDeg   float32 `yaml:"srs_min_pitch_deg"`

	// Flare.
	FlareHeightFt   float32 `yaml:"flare_height_ft"`
	FlareTimeConstS float32 `yaml:"flare_time_const_s"`

	// Rollout.
	RollOutDecayS  float32 `yaml:"roll_out_decay_s"`
	RollOutYawGain float32 `yaml:"roll_out_yaw_gain"`

	// Speed protection: allowed climb/descent rate per kn of margin to
	// VLS/VMAX.
	SpeedProtMarginGain float32 `yaml:"speed_prot_margin_gain"`

	// Servo authority for the autopilot channel.
	MaxRollRateDps  float32 `yaml:"max_roll_rate_dps"`
	MaxPitchRateDps float32 `yaml:"max_pitch_rate_dps"`

	MaxRudderDeg float32 `yaml:"max_rudder_deg"`
}

func DefaultConfig() Config {
	return Config{
		MaxBankDeg:              25,
		MaxBankLowDeg:           15,
		BankReductionRadioAltFt: 100,

		CaptureXtkThresholdNmi: 0.2,
		CaptureTaeThresholdDeg: 10,

		AltCaptureSoftGain: 2,
		AltCaptureHardGain: 4,

		StrutCompressionGroundThreshold: 0.5,

		HeadingBankGain:   2.5,
		WingsLevelBankDeg: 5,

		NavXtkGainDegPerNmi: 20,
		NavInterceptMaxDeg:  45,
		NavTaeBankGain:      2,
		NavTrackXtkBankGain: 12,
		NavEngageXtkNmi:     2.5,
		LocEngageDeg:        2,

		LocTrackP: 8,
		LocTrackI: 0.3,
		LocTrackD: 1.5,

		GsEngageDeg:           0.8,
		CaptureGsThresholdDeg: 0.12,
		GsNominalFpaDeg:       -3,
		GsTrackP:              6,
		GsTrackI:              0.25,

		VsPitchGain:         0.004,
		VsPitchIntegralGain: 0.0002,
		MinPitchDeg:         -15,
		MaxPitchDeg:         25,

		AltHoldGainFpmPerFt: 4,
		AltHoldVsLimitFpm:   1500,
		AltHoldBandFt:       20,
		AltHoldVsBandFpm:    150,

		AltCaptureMinBandFt: 50,
		AltCaptureHorizonS:  10,

		CruiseStepVsFpm: 1000,
		ExpediteVsFpm:   4000,

		SpeedPitchGain: 0.3,

		SrsMaxPitchDeg:   18,
		SrsMaxPitchEoDeg: 12.5,
		SrsMinPitchDeg:   8,

		FlareHeightFt:   40,
		FlareTimeConstS: 4,

		RollOutDecayS:  1,
		RollOutYawGain: 4,

		SpeedProtMarginGain: 150,

		MaxRollRateDps:  5,
		MaxPitchRateDps: 3,

		MaxRudderDeg: 30,
	}
}

// LoadConfig reads a YAML tunables file, overlaying it on the defaults,
// and validates the result. A missing file is an error; an empty file is
// just the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w: %v", path, ErrConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	check := func(v float32, name string) error {
		if v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrConfig, name, v)
		}
		return nil
	}

	for _, p := range []struct {
		v    float32
		name string
	}{
		{c.MaxBankDeg, "max_bank_deg"},
		{c.MaxBankLowDeg, "max_bank_low_deg"},
		{c.CaptureXtkThresholdNmi, "capture_xtk_threshold_nmi"},
		{c.CaptureTaeThresholdDeg, "capture_tae_threshold_deg"},
		{c.AltCaptureSoftGain, "alt_capture_soft_gain"},
		{c.AltCaptureHardGain, "alt_capture_hard_gain"},
		{c.StrutCompressionGroundThreshold, "strut_compression_ground_threshold"},
		{c.HeadingBankGain, "heading_bank_gain"},
		{c.VsPitchGain, "vs_pitch_gain"},
		{c.AltHoldGainFpmPerFt, "alt_hold_gain_fpm_per_ft"},
		{c.AltHoldVsLimitFpm, "alt_hold_vs_limit_fpm"},
		{c.AltCaptureMinBandFt, "alt_capture_min_band_ft"},
		{c.AltCaptureHorizonS, "alt_capture_horizon_s"},
		{c.ExpediteVsFpm, "expedite_vs_fpm"},
		{c.FlareHeightFt, "flare_height_ft"},
		{c.FlareTimeConstS, "flare_time_const_s"},
		{c.RollOutDecayS, "roll_out_decay_s"},
		{c.SpeedProtMarginGain, "speed_prot_margin_gain"},
		{c.MaxRollRateDps, "max_roll_rate_dps"},
		{c.MaxPitchRateDps, "max_pitch_rate_dps"},
		{c.MaxRudderDeg, "max_rudder_deg"},
	} {
		if err := check(p.v, p.name); err != nil {
			return err
		}
	}

	if c.MaxBankLowDeg > c.MaxBankDeg {
		return fmt.Errorf("%w: max_bank_low_deg %v exceeds max_bank_deg %v",
			ErrConfig, c.MaxBankLowDeg, c.MaxBankDeg)
	}
	if c.MinPitchDeg >= c.MaxPitchDeg {
		return fmt.Errorf("%w: min_pitch_deg %v must be below max_pitch_deg %v",
			ErrConfig, c.MinPitchDeg, c.MaxPitchDeg)
	}
	return nil
}
