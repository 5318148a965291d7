package physics

import (
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/vmath"
)

// MaxTraction bounds the traction magnitude
const MaxTraction = 4.0

// Dynamo is the persistent drivetrain and steering state of one vehicle
// Velocities are in the body frame
type Dynamo struct {
	Traction        float32
	Rudder          float32 // radians, positive steers left
	LinearVelocity  vmath.Vec3
	AngularVelocity vmath.Vec3
}

// ChangeTraction clamps traction+delta to ±MaxTraction
// A change that crosses zero stops at exactly zero
func (d *Dynamo) ChangeTraction(delta float32) {
	old := d.Traction
	d.Traction = vmath.Clamp(old+delta, -MaxTraction, MaxTraction)
	if old*d.Traction < 0 {
		d.Traction = 0
	}
}

// SlowDown reduces traction magnitude by delta without reversing it
func (d *Dynamo) SlowDown(delta float32) {
	if delta < 0 {
		delta = -delta
	}
	d.ChangeTraction(-vmath.Sign(d.Traction) * delta)
}

// Unsteer recenters the rudder proportionally to the lateral speed
func (d *Dynamo) Unsteer(lateral, dt, rate float32) {
	decay := d.Rudder * lateral * dt * rate
	if decay < 0 {
		decay = -decay
	}
	if decay > abs(d.Rudder) {
		decay = abs(d.Rudder)
	}
	d.Rudder -= vmath.Sign(d.Rudder) * decay
}

// Drive applies driver throttle input in [-1, 1]
func (d *Dynamo) Drive(input float32, c *parameter.Common, correction float32) {
	d.ChangeTraction(input * c.Traction.Incr * correction)
}

// Steer turns the rudder by input in [-1, 1], bounded by the rudder range
func (d *Dynamo) Steer(input float32, c *parameter.Common, correction float32) {
	d.Rudder = vmath.Clamp(d.Rudder+input*c.Traction.RudderStep*correction, -c.Traction.RudderMax, c.Traction.RudderMax)
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
