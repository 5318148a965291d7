package physics

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/vmath"
)

// RigidBody accumulates impulses over one step
// Built from the dynamo velocities at step entry and consumed by Finish
type RigidBody struct {
	invInertia        mgl32.Mat3
	linearVelocity    vmath.Vec3
	angularVelocity   vmath.Vec3 // at step entry
	rawAngularImpulse vmath.Vec3 // not yet transformed by invInertia
}

// InverseInertia derives the body-space inverse inertia tensor of a scaled car
// Panics on a singular jacobian, which only corrupt car data produces
func InverseInertia(p *car.Physics, scale float32) mgl32.Mat3 {
	return vmath.MustInvert(p.Jacobian.Mul(scale * scale / p.Volume))
}

func NewRigidBody(invInertia mgl32.Mat3, linear, angular vmath.Vec3) RigidBody {
	return RigidBody{
		invInertia:      invInertia,
		linearVelocity:  linear,
		angularVelocity: angular,
	}
}

// VelocityAt returns the velocity of a body point
// Uses the entry angular velocity so every contact of a step sees the same field
func (rb *RigidBody) VelocityAt(point vmath.Vec3) vmath.Vec3 {
	return rb.linearVelocity.Add(rb.angularVelocity.Cross(point))
}

// collisionMatrix maps a pulse at point to the velocity change of that point
// K = I - S·J⁻¹·S, S being the cross-product matrix of point
func (rb *RigidBody) collisionMatrix(point vmath.Vec3) mgl32.Mat3 {
	s := vmath.Skew(point)
	return mgl32.Ident3().Sub(s.Mul3(rb.invInertia).Mul3(s))
}

// Push applies the pulse that changes the velocity of point by impulse
// Returns the applied pulse
func (rb *RigidBody) Push(point, impulse vmath.Vec3) vmath.Vec3 {
	pulse := rb.collisionMatrix(point).Inv().Mul3x1(impulse)
	rb.linearVelocity = rb.linearVelocity.Add(pulse)
	rb.rawAngularImpulse = rb.rawAngularImpulse.Add(point.Cross(pulse))
	return pulse
}

// AddRaw accumulates a velocity change and an angular impulse in torque units
func (rb *RigidBody) AddRaw(linear, rawAngular vmath.Vec3) {
	rb.linearVelocity = rb.linearVelocity.Add(linear)
	rb.rawAngularImpulse = rb.rawAngularImpulse.Add(rawAngular)
}

// LinearVelocity returns the current accumulated linear velocity
func (rb *RigidBody) LinearVelocity() vmath.Vec3 {
	return rb.linearVelocity
}

// Finish returns the resulting linear and angular velocities
func (rb RigidBody) Finish() (vmath.Vec3, vmath.Vec3) {
	w := rb.angularVelocity.Add(rb.invInertia.Mul3x1(rb.rawAngularImpulse))
	return rb.linearVelocity, w
}
