package physics

import (
	"math"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/terrain"
	"github.com/kvark/vange-rs-sub000/vmath"
)

const (
	// jumpMassExponent is tuned game feel, not physics
	jumpMassExponent = 0.3
	// fallSpeedLimit is the world vertical speed under which the Z drag kicks in
	fallSpeedLimit = -10.0
	// velocityEpsilon keeps speed normalizations finite
	velocityEpsilon = 1e-5
	// debugForceScale shortens force vectors for display
	debugForceScale = 0.1
)

// jumpDirection is the body-frame direction of a jump impulse
var jumpDirection = vmath.Vec3{0, 0.5, 1}.Normalize()

// Input is the driver control state of one tick
type Input struct {
	Turbo float32  // traction multiplier, 1 is normal
	Brake float32  // brake factor, 0 is released
	Jump  *float32 // jump power, nil when not jumping
	Roll  float32  // tip-over assist direction and strength, sign picks the edge
}

// StepResult reports what happened during a step, for observation only
type StepResult struct {
	WheelTouch  int
	SpringTouch int
	DownMinusUp int
	// HardDominant counts polygons with at least half their samples past the wall threshold
	HardDominant int
	Collided     bool
	Immersion    float32
	Integrated   bool
}

// Touching reports any ground contact
func (r StepResult) Touching() bool {
	return r.WheelTouch+r.SpringTouch != 0
}

// Step advances one vehicle by dt
// Reads car, level and tuning, mutates only dynamo and transform
// A zero dt without a jump leaves both untouched
func Step(
	dynamo *Dynamo,
	transform *vmath.Transform,
	dt float32,
	profile *car.Profile,
	level *terrain.Level,
	common *parameter.Common,
	input Input,
	sink LineSink,
) StepResult {
	var res StepResult
	if dt == 0 && input.Jump == nil {
		return res
	}
	if sink == nil {
		sink = NopSink{}
	}

	correction := dt / common.Nature.TimeDelta0
	scale := transform.Scale
	sampleScale := profile.Physics.ScaleBound
	up := transform.InverseRotate(vmath.Vec3{0, 0, 1})
	upright := transform.Up().Z() > 0
	gravity := up.Mul(-common.Nature.Gravity)

	rb := NewRigidBody(InverseInertia(&profile.Physics, scale), dynamo.LinearVelocity, dynamo.AngularVelocity)
	entryVelocity := dynamo.LinearVelocity

	if input.Jump != nil {
		mass := common.Nature.Density * profile.Physics.Volume * scale * scale
		power := *input.Jump * common.Impulse.JumpForce / vmath.Powf(mass, jumpMassExponent)
		rb.AddRaw(jumpDirection.Mul(power), vmath.Vec3{})
	}

	// Contacts
	var springForce, springTorque vmath.Vec3 // world orientation, about the body origin
	for _, poly := range profile.Polygons {
		if transform.Rotate(poly.Normal).Z() >= 0 {
			continue
		}
		contact := terrain.CollideLow(poly, profile.Samples, sampleScale, *transform, level, profile.Physics.MinWallDelta)
		if contact.HardDominant {
			res.HardDominant++
		}

		center := poly.Middle.Mul(sampleScale * scale)
		vc := rb.VelocityAt(center)
		mostlyHorizontal := vc.Z()*vc.Z() < vc.X()*vc.X()+vc.Y()*vc.Y()

		if hard := contact.Hard; hard != nil && mostlyHorizontal {
			r := transform.InverseRotate(hard.Pos.Sub(transform.Disp))
			v := rb.VelocityAt(r)
			if vn := v.Dot(poly.Normal); vn > 0 {
				pulse := rb.Push(r, poly.Normal.Mul(-vn*common.Impulse.Factors[0]))
				res.Collided = true
				sink.Add(hard.Pos, hard.Pos.Add(transform.Rotate(pulse)), ColorCollision)
			}
		}

		soft := contact.Soft
		if soft == nil {
			continue
		}
		wheel := upright && poly.Normal.Z() < 0
		r := transform.InverseRotate(soft.Pos.Sub(transform.Disp))
		v := rb.VelocityAt(r)
		if vn := v.Dot(up); vn < 0 {
			tangent := v.Sub(up.Mul(vn))
			var dv vmath.Vec3
			if wheel && vmath.LenSq(v) < common.Drag.AbsMin.V*common.Drag.AbsMin.V {
				// Resting on wheels, no sliding at all
				dv = tangent.Mul(-1)
			} else {
				reduce := vmath.Clamp(-vn*common.Impulse.KFriction/(tangent.Len()+velocityEpsilon), 0, 1)
				dv = up.Mul(-vn).Sub(tangent.Mul(reduce))
			}
			pulse := rb.Push(r, dv.Mul(common.Impulse.Factors[1]))
			sink.Add(soft.Pos, soft.Pos.Add(transform.Rotate(pulse)), ColorContact)
		}

		f := soft.Depth * common.Force.ElasticSpring
		if f > common.Force.ElasticRestriction {
			f = common.Force.ElasticRestriction
		}
		arm := soft.Pos.Sub(transform.Disp)
		springForce[2] += f
		springTorque[0] += arm.Y() * f
		springTorque[1] -= arm.X() * f
		sink.Add(soft.Pos, soft.Pos.Add(vmath.Vec3{0, 0, f * debugForceScale}), ColorSpring)

		if wheel {
			res.WheelTouch++
		} else {
			res.SpringTouch++
		}
		if poly.Normal.Z() < 0 {
			res.DownMinusUp++
		} else {
			res.DownMinusUp--
		}
	}

	touching := res.Touching()
	force := gravity
	var torque vmath.Vec3
	if touching {
		force = force.Add(transform.InverseRotate(springForce))
		torque = torque.Add(transform.InverseRotate(springTorque))
	}

	res.Immersion = terrain.Immersion(profile.Samples, sampleScale, *transform, level)
	if res.Immersion > 0 {
		force = force.Add(up.Mul(common.Force.Buoyancy * common.Nature.Gravity * res.Immersion))
	}

	// Drag factors, applied once at the end
	speed := rb.LinearVelocity().Len()
	vDrag := common.Drag.Free.V * vmath.Expf(-common.Drag.Speed.V*speed)
	wDrag := common.Drag.Free.W * vmath.Expf(-common.Drag.Speed.W*dynamo.AngularVelocity.Len())
	lateralScale := float32(1)
	if res.WheelTouch != 0 {
		vDrag *= common.Drag.Wheel.V
		wDrag *= common.Drag.Wheel.W
		k := vmath.Lnf(common.Drag.WheelSpeed) * profile.Physics.MobilityFactor *
			common.Speed.GlobalSpeedFactor / profile.Physics.SpeedFactor
		lateralScale = vmath.Powf(1+speed, k*correction)
	}

	// Traction, brakes and lateral grip
	if res.WheelTouch != 0 && upright && len(profile.Wheels) != 0 {
		n := float32(len(profile.Wheels))
		perWheel := dynamo.Traction * common.Force.Traction * profile.Physics.MobilityFactor *
			common.Speed.GlobalMobilityFactor * input.Turbo / n
		sin, cos := math.Sincos(float64(dynamo.Rudder))
		steerDir := vmath.Vec3{-float32(sin), float32(cos), 0}

		for _, w := range profile.Wheels {
			pos := w.Pos.Mul(scale)
			dir := vmath.Vec3{0, 1, 0}
			if w.Steer {
				dir = steerDir
			}
			// Wheel forces act in the ground plane, only their yaw moment is kept
			if perWheel != 0 {
				f := dir.Mul(perWheel)
				force = force.Add(f)
				torque[2] += pos.Cross(f).Z()
			}

			vw := rb.VelocityAt(pos)
			if input.Brake != 0 {
				f := vw.Mul(-input.Brake / n)
				force = force.Add(f)
				torque[2] += pos.Cross(f).Z()
			}
			if !res.Collided {
				lateral := vmath.Vec3{dir.Y(), -dir.X(), 0}
				pulse := rb.Push(pos, lateral.Mul(-vw.Dot(lateral)*common.Impulse.KWheel))
				wp := transform.TransformPoint(w.Pos)
				sink.Add(wp, wp.Add(transform.Rotate(pulse)), ColorWheel)
			}
		}
	}

	if touching {
		comOffset := vmath.Vec3{0, 0, profile.Physics.ZOffsetOfMassCenter * scale}
		torque = torque.Add(comOffset.Cross(gravity))
		if transform.Rotate(rb.LinearVelocity()).Z() < fallSpeedLimit {
			vDrag *= common.Drag.Z
		}
	}

	// Tip-over assist while lying on the side, pushes along body Z at one X edge
	if input.Roll != 0 && res.SpringTouch != 0 && res.WheelTouch == 0 {
		edge := profile.Bounds.Min[0]
		if input.Roll > 0 {
			edge = profile.Bounds.Max[0]
		}
		point := vmath.Vec3{edge * scale, 0, 0}
		f := vmath.Vec3{0, 0, abs(input.Roll) * common.Impulse.RollForce * common.Impulse.Factors[2]}
		force = force.Add(f)
		torque = torque.Add(point.Cross(f))
	}

	rb.AddRaw(force.Mul(dt), torque.Mul(dt))
	v, w := rb.Finish()

	if touching {
		vDrag *= common.Drag.Spring.V
		wDrag *= common.Drag.Spring.W
		if upright && v.Len() < common.Drag.AbsMin.V && w.Len() < common.Drag.AbsMin.W {
			vDrag *= common.Drag.Rest.V
			wDrag *= common.Drag.Rest.W
		}
	}
	if res.Collided {
		vDrag *= common.Drag.Coll.V
		wDrag *= common.Drag.Coll.W
	}
	if res.Immersion > 0 {
		vDrag *= vmath.Powf(common.Drag.Water.V, res.Immersion)
		wDrag *= vmath.Powf(common.Drag.Water.W, res.Immersion)
	}

	res.Integrated = v.Len() > common.Drag.AbsStop.V || w.Len() > common.Drag.AbsStop.W
	if res.Integrated {
		var pivot vmath.Vec3
		if res.DownMinusUp != 0 {
			pivot[2] = -vmath.Sign(float32(res.DownMinusUp)) * common.Impulse.RollingScale * profile.Bounds.Radius() * scale
		}
		move := v.Add(entryVelocity).Mul(0.5).Sub(w.Cross(pivot))
		transform.Disp = transform.Disp.Add(transform.Rotate(move.Mul(dt)))

		q := vmath.QuatFromAngularVelocity(w, dt)
		transform.Rot = transform.Rot.Mul(q).Normalize()
		inv := q.Conjugate()
		v = inv.Rotate(v)
		w = inv.Rotate(w)
	}

	v = v.Mul(vmath.Powf(vDrag, correction))
	v[0] *= lateralScale
	w = w.Mul(vmath.Powf(wDrag, correction))

	sink.Add(transform.Disp, transform.Disp.Add(transform.Rotate(force.Mul(debugForceScale))), ColorForce)
	sink.Add(transform.Disp, transform.Disp.Add(transform.Rotate(v)), ColorVelocity)

	dynamo.LinearVelocity = v
	dynamo.AngularVelocity = w
	if res.WheelTouch != 0 {
		dynamo.Unsteer(v.X(), dt, common.Traction.RudderDecay)
	}
	dynamo.SlowDown(common.Traction.Decr * correction)
	return res
}
