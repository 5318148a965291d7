package parameter

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DragCoeff is a pair of linear (V) and angular (W) coefficients
type DragCoeff struct {
	V float32 `toml:"v"`
	W float32 `toml:"w"`
}

type Nature struct {
	TimeDelta0 float32 `toml:"time_delta0"`
	Gravity    float32 `toml:"gravity"`
	Density    float32 `toml:"density"`
}

type Speed struct {
	GlobalSpeedFactor    float32 `toml:"global_speed_factor"`
	GlobalMobilityFactor float32 `toml:"global_mobility_factor"`
}

type Drag struct {
	Free    DragCoeff `toml:"free"`
	Speed   DragCoeff `toml:"speed"`
	Wheel   DragCoeff `toml:"wheel"`
	Spring  DragCoeff `toml:"spring"`
	Coll    DragCoeff `toml:"coll"`
	AbsMin  DragCoeff `toml:"abs_min"`
	AbsStop DragCoeff `toml:"abs_stop"`
	Rest    DragCoeff `toml:"rest"`
	Water   DragCoeff `toml:"water"`

	WheelSpeed float32 `toml:"wheel_speed"`
	Z          float32 `toml:"z"`
}

type Impulse struct {
	// Factors: [0] hard contact, [1] soft contact, [2] roll assist
	Factors      [3]float32 `toml:"factors"`
	KWheel       float32    `toml:"k_wheel"`
	KFriction    float32    `toml:"k_friction"`
	RollingScale float32    `toml:"rolling_scale"`
	JumpForce    float32    `toml:"jump_force"`
	RollForce    float32    `toml:"roll_force"`
}

type Force struct {
	ElasticSpring      float32 `toml:"elastic_spring"`
	ElasticRestriction float32 `toml:"elastic_restriction"`
	Traction           float32 `toml:"traction"`
	Buoyancy           float32 `toml:"buoyancy"`
}

type Traction struct {
	Incr        float32 `toml:"incr"`
	Decr        float32 `toml:"decr"`
	RudderStep  float32 `toml:"rudder_step"`
	RudderMax   float32 `toml:"rudder_max"`
	RudderDecay float32 `toml:"rudder_decay"`
}

// Common is the shared physics tuning, immutable once loaded
type Common struct {
	Nature   Nature   `toml:"nature"`
	Speed    Speed    `toml:"speed"`
	Drag     Drag     `toml:"drag"`
	Impulse  Impulse  `toml:"impulse"`
	Force    Force    `toml:"force"`
	Traction Traction `toml:"traction"`
}

// DefaultCommon returns the built-in tuning
func DefaultCommon() *Common {
	return &Common{
		Nature: Nature{
			TimeDelta0: TimeDelta0Float,
			Gravity:    GravityFloat,
			Density:    DensityFloat,
		},
		Speed: Speed{
			GlobalSpeedFactor:    GlobalSpeedFactorFloat,
			GlobalMobilityFactor: GlobalMobilityFactorFloat,
		},
		Drag: Drag{
			Free:       DragCoeff{DragFreeVFloat, DragFreeWFloat},
			Speed:      DragCoeff{DragSpeedVFloat, DragSpeedWFloat},
			Wheel:      DragCoeff{DragWheelVFloat, DragWheelWFloat},
			Spring:     DragCoeff{DragSpringVFloat, DragSpringWFloat},
			Coll:       DragCoeff{DragCollVFloat, DragCollWFloat},
			AbsMin:     DragCoeff{DragAbsMinVFloat, DragAbsMinWFloat},
			AbsStop:    DragCoeff{DragAbsStopVFloat, DragAbsStopWFloat},
			Rest:       DragCoeff{DragRestVFloat, DragRestWFloat},
			Water:      DragCoeff{DragWaterVFloat, DragWaterWFloat},
			WheelSpeed: DragWheelSpeedFloat,
			Z:          DragZFloat,
		},
		Impulse: Impulse{
			Factors:      ImpulseFactors,
			KWheel:       ImpulseKWheelFloat,
			KFriction:    ImpulseKFrictionFloat,
			RollingScale: ImpulseRollingScaleFloat,
			JumpForce:    ImpulseJumpForceFloat,
			RollForce:    ImpulseRollForceFloat,
		},
		Force: Force{
			ElasticSpring:      ForceElasticSpringFloat,
			ElasticRestriction: ForceElasticRestrictionFloat,
			Traction:           ForceTractionFloat,
			Buoyancy:           ForceBuoyancyFloat,
		},
		Traction: Traction{
			Incr:        TractionIncrFloat,
			Decr:        TractionDecrFloat,
			RudderStep:  RudderStepFloat,
			RudderMax:   RudderMaxFloat,
			RudderDecay: RudderDecayFloat,
		},
	}
}

// LoadCommon reads a TOML tuning file over the defaults
// Keys missing from the file keep their default value
func LoadCommon(path string) (*Common, error) {
	c := DefaultCommon()
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("load common %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("load common %s: unknown keys %v", path, undecoded)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("load common %s: %w", path, err)
	}
	return c, nil
}

// Save writes the tuning as TOML
func (c *Common) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save common %s: %w", path, err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("save common %s: %w", path, err)
	}
	return nil
}

// Validate rejects tuning the physics step cannot run with
func (c *Common) Validate() error {
	if c.Nature.TimeDelta0 <= 0 {
		return fmt.Errorf("nature.time_delta0 must be positive, got %g", c.Nature.TimeDelta0)
	}
	if c.Nature.Density <= 0 {
		return fmt.Errorf("nature.density must be positive, got %g", c.Nature.Density)
	}
	if c.Drag.WheelSpeed <= 0 {
		return fmt.Errorf("drag.wheel_speed must be positive, got %g", c.Drag.WheelSpeed)
	}
	multipliers := map[string]DragCoeff{
		"free":   c.Drag.Free,
		"wheel":  c.Drag.Wheel,
		"spring": c.Drag.Spring,
		"coll":   c.Drag.Coll,
		"rest":   c.Drag.Rest,
		"water":  c.Drag.Water,
	}
	for name, d := range multipliers {
		if d.V <= 0 || d.V > 1 || d.W <= 0 || d.W > 1 {
			return fmt.Errorf("drag.%s must be in (0,1], got %+v", name, d)
		}
	}
	return nil
}
