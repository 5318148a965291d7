package parameter

// Built-in tuning, values are per nominal time step unless noted

// Nature
const (
	TimeDelta0Float = 0.05 // nominal time step, seconds
	GravityFloat    = 40.0
	DensityFloat    = 0.0013
)

// Global speed
const (
	GlobalSpeedFactorFloat    = 1.0
	GlobalMobilityFactorFloat = 1.0
)

// Drag multipliers, V for linear and W for angular velocity
const (
	DragFreeVFloat = 0.98
	DragFreeWFloat = 0.95

	// Exponential per unit of speed
	DragSpeedVFloat = 0.002
	DragSpeedWFloat = 0.01

	DragWheelVFloat  = 0.97
	DragWheelWFloat  = 0.9
	DragSpringVFloat = 0.9
	DragSpringWFloat = 0.8
	DragCollVFloat   = 0.7
	DragCollWFloat   = 0.7
	DragRestVFloat   = 0.3
	DragRestWFloat   = 0.3
	DragWaterVFloat  = 0.8
	DragWaterWFloat  = 0.8

	// Speeds under which an upright touching body gets the rest drag
	DragAbsMinVFloat = 1.0
	DragAbsMinWFloat = 0.1

	// Speeds under which pose integration is skipped
	DragAbsStopVFloat = 0.2
	DragAbsStopWFloat = 0.02

	DragWheelSpeedFloat = 0.9
	DragZFloat          = 0.95
)

// Impulses
var ImpulseFactors = [3]float32{1.0, 1.0, 0.5}

const (
	ImpulseKWheelFloat       = 0.5
	ImpulseKFrictionFloat    = 0.2
	ImpulseRollingScaleFloat = 0.5
	ImpulseJumpForceFloat    = 20.0
	ImpulseRollForceFloat    = 120.0
)

// Forces
const (
	ForceElasticSpringFloat      = 20.0
	ForceElasticRestrictionFloat = 200.0
	ForceTractionFloat           = 30.0
	ForceBuoyancyFloat           = 1.5
)

// Traction and steering
const (
	TractionIncrFloat = 0.5
	TractionDecrFloat = 0.1
	RudderStepFloat   = 0.1
	RudderMaxFloat    = 0.6 // radians
	RudderDecayFloat  = 0.05
)
