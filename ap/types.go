// ap/types.go
// Copyright(c) 2025-2026 fmgc contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package ap

// TickContext carries the timing for one evaluation. DtS is the seconds
// since the previous tick and may be zero; SimTimeS is monotonic elapsed
// simulation time.
type TickContext struct {
	DtS      float32
	SimTimeS float64
}

// AircraftState is the raw per-tick sample from the state-acquisition
// subsystem. It is read-only for the engine; absent navigation data is
// represented by the corresponding validity flag being false.
type AircraftState struct {
	// Attitude and body rates.
	ThetaDeg float32
	PhiDeg   float32
	QRadS    float32
	RRadS    float32
	PRadS    float32

	// Speeds.
	VIasKn   float32
	VTasKn   float32
	VMach    float32
	VGndKn   float32
	AlphaDeg float32

	// Altitudes and vertical speed.
	HFt      float32
	HIndFt   float32
	HRadioFt float32
	HDotFpm  float32

	// Headings and track.
	PsiMagDeg      float32
	PsiMagTrackDeg float32
	PsiTrueDeg     float32

	// Body accelerations.
	BxMS2 float32
	ByMS2 float32
	BzMS2 float32

	// Radio navigation.
	NavValid       bool
	NavLocDeg      float32
	NavGsDeg       float32
	NavDmeValid    bool
	NavDmeNmi      float32
	NavLocValid    bool
	NavLocErrorDeg float32
	NavGsValid     bool
	NavGsErrorDeg  float32

	// Flight-guidance deviations: cross-track, track-angle error, and the
	// suggested bank for the active leg geometry.
	FgXtkNmi float32
	FgTaeDeg float32
	FgPhiDeg float32

	FlightPhase int32

	// Reference speeds.
	V2Kn   float32
	VappKn float32
	VlsKn  float32
	VmaxKn float32

	// Flight-plan scalars.
	FlightPlanAvail        bool
	AltConstraintFt        float32
	ThrustReductionAltFt   float32
	ThrustReductionAltGaFt float32
	AccelerationAltFt      float32
	AccelerationAltEoFt    float32
	AccelerationAltGaFt    float32
	CruiseAltFt            float32

	// Ground contact and controls.
	GearStrutLeft     float32
	GearStrutRight    float32
	ZetaPos           float32
	ThrottleLever1Pos float32
	ThrottleLever2Pos float32
	FlapsHandleIndex  int32
	Engine1Operative  bool
	Engine2Operative  bool
}

// Flight phase ordinals carried in AircraftState.FlightPhase.
const (
	PhasePreflight = int32(iota)
	PhaseTakeoff
	PhaseClimb
	PhaseCruise
	PhaseDescent
	PhaseApproach
	PhaseGoAround
	PhaseDone
)

// ModeSelection is the crew/FMS-origin selection for one tick. It is
// level-triggered: the caller supplies it every tick and the engine
// edge-detects changes itself.
type ModeSelection struct {
	AP1Engaged bool
	AP2Engaged bool

	LateralLaw   LateralLaw
	LateralMode  int32 // FMA mode ordinal, echoed not interpreted
	LateralArmed LateralArmed

	VerticalLaw   VerticalLaw
	VerticalMode  int32
	VerticalArmed VerticalArmed

	// Reversion requests and acknowledgements. RevertLateral and
	// RevertVertical are raised by the engine in the echoed selection when
	// a reversion fires; ToggleTrkFpa and TripleClick are caller requests.
	RevertLateral bool
	RevertVertical bool
	ToggleTrkFpa  bool
	TripleClick   bool
	RefreshFma    bool

	SpeedProtectionActive bool
	AutothrustMode        int32

	// Targets.
	PsiCDeg  float32
	HCFt     float32
	HDotCFpm float32
	FpaCDeg  float32
	VCKn     float32

	AltSoftMode   bool
	AltCruiseMode bool
	ExpediteMode  bool

	FDDisconnect bool
	FDConnect    bool
}

// EngineInput is the sole per-tick input, immutable for the duration of
// one evaluation.
type EngineInput struct {
	Tick     TickContext
	Aircraft AircraftState
	Modes    ModeSelection
}

// DerivedState is the engine's working representation: the last ingested
// sample plus derived quantities and the law state that persists across
// ticks. One instance per engine; nothing else reads or writes it.
type DerivedState struct {
	AircraftState

	// Body rates re-expressed as Euler-angle rates, deg/s.
	QkDegS float32
	RkDegS float32
	PkDegS float32

	// Accelerations rotated into the local frame.
	AxMS2 float32
	AyMS2 float32
	AzMS2 float32

	OnGround bool
	ZetaDeg  float32

	// Airspeed and beam-deviation trends; first-order hold at dt=0.
	VTrendKnS      float32
	LocErrRateDegS float32
	GsErrRateDegS  float32

	// Previous-tick raw values the trends derive from.
	PrevVIasKn   float32
	PrevLocErr   float32
	PrevGsErr    float32
	PrevSimTimeS float64

	// Law selection state. Req* is the caller's previous selection (for
	// level-trigger edge detection); Active* is the law actually flown,
	// which can differ after an arming promotion, a capture-to-track
	// promotion, or a reversion.
	ReqLateral     LateralLaw
	ReqVertical    VerticalLaw
	ActiveLateral  LateralLaw
	ActiveVertical VerticalLaw

	// Hold references. Pointers are used for optional values; nil ->
	// not yet established.
	HeadingHoldDeg     *float32
	TrackHoldDeg       *float32
	AltHoldFt          *float32
	PitchHoldDeg       *float32
	VsHoldFpm          *float32
	FpaHoldDeg         *float32
	FlareEntryPitchDeg *float32
	RollOutPhiDeg      *float32

	// Vertical speed at altitude-capture entry; capture never commands a
	// steeper rate than this.
	CaptureVsFpm float32

	FdConnected bool

	// Edge detection for caller request pulses.
	PrevToggleTrkFpa bool
	PrevTripleClick  bool

	// Servo-channel state: last autopilot-channel command, rate-limit
	// basis for the next tick. Nil until first synthesis.
	ApCmd *OutputCommand

	Initialized bool
}

// OutputCommand is one channel's attitude command set.
type OutputCommand struct {
	ThetaCDeg float32
	PhiCDeg   float32
	BetaCDeg  float32
}

// RawOutput is the synthesized result of one tick.
type RawOutput struct {
	// ApEngaged reports whether the autopilot servo path is engaged;
	// consumers must not apply the Autopilot command without checking it.
	ApEngaged bool

	// PhiLocLimited is raised when localizer-capture geometry demanded
	// more bank than the effective limit allowed.
	PhiLocLimited bool

	FlightDirector OutputCommand
	Autopilot      OutputCommand
}

// EngineOutput echoes the context that produced the commands so that
// downstream consumers (FMA, servo loop) can observe it without
// re-fetching. Modes is the resolved selection: promotions applied, armed
// flags cleared on promotion, reversion flags OR-ed in.
type EngineOutput struct {
	Tick    TickContext
	Derived DerivedState
	Modes   ModeSelection
	Raw     RawOutput
}
