package physics

import (
	"math"
	"testing"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/terrain"
	"github.com/kvark/vange-rs-sub000/vmath"
)

const tick = float32(1.0 / 60)

// groundHeight is the world height of the test ground at altitude 40
const groundHeight = 20

type scene struct {
	profile   *car.Profile
	level     *terrain.Level
	common    *parameter.Common
	dynamo    Dynamo
	transform vmath.Transform
}

// newScene places a box car with its bottom at z on flat ground
func newScene(z float32) *scene {
	return &scene{
		profile:   car.NewBoxProfile("box", [3]int8{10, 16, 6}),
		level:     terrain.NewFlatLevel(256, 256, 40, terrain.KindMain),
		common:    parameter.DefaultCommon(),
		transform: vmath.NewTransform(vmath.Vec3{64, 64, z + 6}, 1),
	}
}

func (s *scene) step(input Input) StepResult {
	return Step(&s.dynamo, &s.transform, tick, s.profile, s.level, s.common, input, nil)
}

func (s *scene) run(n int, control func(s *scene) Input) StepResult {
	var res StepResult
	for i := 0; i < n; i++ {
		in := Input{Turbo: 1}
		if control != nil {
			in = control(s)
		}
		res = s.step(in)
	}
	return res
}

func (s *scene) correction() float32 {
	return tick / s.common.Nature.TimeDelta0
}

func throttle(s *scene) Input {
	s.dynamo.Drive(1, s.common, s.correction())
	return Input{Turbo: 1}
}

type recordingSink struct {
	colors map[uint32]int
}

func (r *recordingSink) Add(from, to vmath.Vec3, color uint32) {
	r.colors[color]++
}

// TestStepZeroDt verifies a zero step without a jump is a no-op
func TestStepZeroDt(t *testing.T) {
	s := newScene(groundHeight)
	s.dynamo.LinearVelocity = vmath.Vec3{1, 2, 3}
	before := s.transform
	beforeDyn := s.dynamo

	res := Step(&s.dynamo, &s.transform, 0, s.profile, s.level, s.common, Input{Turbo: 1}, nil)
	if res != (StepResult{}) {
		t.Errorf("result = %+v, want zero", res)
	}
	if s.transform != before || s.dynamo != beforeDyn {
		t.Error("state changed on zero dt")
	}
}

// TestStepJumpAtZeroDt verifies a jump applies its impulse even without time passing
func TestStepJumpAtZeroDt(t *testing.T) {
	s := newScene(100)
	power := float32(1)
	before := s.transform.Disp

	Step(&s.dynamo, &s.transform, 0, s.profile, s.level, s.common, Input{Turbo: 1, Jump: &power}, nil)
	v := s.dynamo.LinearVelocity
	if v.Y() <= 0 || v.Z() <= v.Y() {
		t.Errorf("jump velocity = %v, want up and slightly forward", v)
	}
	if s.transform.Disp != before {
		t.Errorf("position moved to %v on zero dt", s.transform.Disp)
	}
}

// TestStepFreeFall verifies one airborne step matches constant acceleration
func TestStepFreeFall(t *testing.T) {
	s := newScene(100)
	z0 := s.transform.Disp.Z()
	res := s.step(Input{Turbo: 1})

	if res.Touching() || res.Collided {
		t.Fatalf("airborne body reported contact: %+v", res)
	}
	g := s.common.Nature.Gravity
	want := -0.5 * g * tick * tick
	if dz := s.transform.Disp.Z() - z0; dz < want-5e-5 || dz > want+5e-5 {
		t.Errorf("dz = %g, want %g", dz, want)
	}
	vz := s.dynamo.LinearVelocity.Z()
	if vz >= 0 || vz < -g*tick {
		t.Errorf("vz = %g, want in [%g, 0)", vz, -g*tick)
	}
	if d := s.transform.Disp.Sub(vmath.Vec3{64, 64, s.transform.Disp.Z()}); d.Len() > 1e-5 {
		t.Errorf("horizontal drift in free fall: %v", s.transform.Disp)
	}
}

// TestStepSettlesAtRest verifies a car placed on flat ground comes to rest upright
// without its speed creeping back up
func TestStepSettlesAtRest(t *testing.T) {
	s := newScene(groundHeight)
	var res StepResult
	var peaks []float32
	for window := 0; window < 6; window++ {
		var peak float32
		for i := 0; i < 100; i++ {
			res = s.step(Input{Turbo: 1})
			if v := s.dynamo.LinearVelocity.Len(); v > peak {
				peak = v
			}
		}
		peaks = append(peaks, peak)
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i] > peaks[i-1]+1e-3 {
			t.Errorf("peak speed rose from %g to %g in window %d", peaks[i-1], peaks[i], i)
		}
	}

	if res.WheelTouch == 0 {
		t.Errorf("resting car lost wheel contact: %+v", res)
	}
	if res.Integrated {
		t.Error("resting car still integrating")
	}
	if v := s.dynamo.LinearVelocity.Len(); v >= s.common.Drag.AbsStop.V {
		t.Errorf("|v| = %g, want < %g", v, s.common.Drag.AbsStop.V)
	}
	if w := s.dynamo.AngularVelocity.Len(); w >= s.common.Drag.AbsStop.W {
		t.Errorf("|w| = %g, want < %g", w, s.common.Drag.AbsStop.W)
	}
	if z := s.transform.Disp.Z(); z < groundHeight+5 || z > groundHeight+7 {
		t.Errorf("rest height = %g, want near %d", z, groundHeight+6)
	}
	if up := s.transform.Up().Z(); up < 0.99 {
		t.Errorf("car tilted, up.z = %g", up)
	}
}

// TestStepJumpMassScaling verifies jump speed falls with mass to the power 0.3
func TestStepJumpMassScaling(t *testing.T) {
	power := float32(1)
	jump := func(scale float32) vmath.Vec3 {
		s := newScene(200)
		s.transform.Scale = scale
		if res := s.step(Input{Turbo: 1, Jump: &power}); res.Touching() {
			t.Errorf("scale %g: airborne jump touched ground: %+v", scale, res)
		}
		return s.dynamo.LinearVelocity
	}

	base := jump(1)
	if base.Y() <= 0 || base.Z() <= 0 {
		t.Fatalf("jump velocity = %v, want up and forward", base)
	}
	tests := []struct {
		scale float32
	}{
		{2},
		{3},
	}
	for _, tt := range tests {
		// Mass grows with scale squared
		want := vmath.Powf(tt.scale*tt.scale, -jumpMassExponent)
		if got := jump(tt.scale).Y() / base.Y(); got < want-0.01 || got > want+0.01 {
			t.Errorf("scale %g: forward jump ratio = %g, want %g", tt.scale, got, want)
		}
	}
}

// TestStepRudderCentering verifies the rudder recenters only while rolling on wheels
func TestStepRudderCentering(t *testing.T) {
	tests := []struct {
		name     string
		rudder   float32
		airborne bool
	}{
		{"left on wheels", 0.5, false},
		{"right on wheels", -0.5, false},
		{"airborne", 0.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s *scene
			if tt.airborne {
				s = newScene(200)
				s.dynamo.Rudder = tt.rudder
				s.run(30, nil)
			} else {
				s = newScene(groundHeight)
				s.run(100, throttle)
				s.dynamo.Rudder = tt.rudder
				s.run(200, nil)
			}

			got := s.dynamo.Rudder
			if tt.airborne {
				if got != tt.rudder {
					t.Errorf("airborne rudder = %g, want %g", got, tt.rudder)
				}
				return
			}
			if got*tt.rudder <= 0 {
				t.Errorf("rudder = %g, crossed center from %g", got, tt.rudder)
			}
			if abs(got) > abs(tt.rudder)*0.96 {
				t.Errorf("rudder = %g, want recentered from %g", got, tt.rudder)
			}
		})
	}
}

// sideScene lays the box car on its +X side on flat ground
func sideScene() *scene {
	s := newScene(groundHeight)
	s.transform.Disp = vmath.Vec3{64, 64, groundHeight + 10.5}
	s.transform.Rot = vmath.QuatFromAngularVelocity(vmath.Vec3{0, math.Pi / 2, 0}, 1)
	return s
}

// TestStepRollAssist verifies the roll input tips a car lying on its side
func TestStepRollAssist(t *testing.T) {
	tests := []struct {
		name string
		roll float32
		want func(up vmath.Vec3) bool
	}{
		{"no input stays on the side", 0, func(up vmath.Vec3) bool { return up.X() > 0.95 }},
		{"positive rolls onto the wheels", 1, func(up vmath.Vec3) bool { return up.Z() > 0.95 }},
		{"negative rolls onto the roof", -1, func(up vmath.Vec3) bool { return up.Z() < -0.95 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sideScene()
			if res := s.run(200, nil); res.SpringTouch == 0 || res.WheelTouch != 0 {
				t.Fatalf("car not lying on its side: %+v, up %v", res, s.transform.Up())
			}
			s.run(120, func(*scene) Input { return Input{Turbo: 1, Roll: tt.roll} })
			s.run(300, nil)
			if up := s.transform.Up(); !tt.want(up) {
				t.Errorf("up = %v after roll %g", up, tt.roll)
			}
		})
	}
}

// TestStepDropLands verifies a dropped car lands and settles upright
func TestStepDropLands(t *testing.T) {
	for _, h := range []float32{5, 10} {
		s := newScene(groundHeight + h)
		s.run(400, nil)
		if z := s.transform.Disp.Z(); z < groundHeight+5 || z > groundHeight+7 {
			t.Errorf("drop %g: final height %g", h, z)
		}
		if up := s.transform.Up().Z(); up < 0.99 {
			t.Errorf("drop %g: up.z = %g", h, up)
		}
		if v := s.dynamo.LinearVelocity.Len(); v > s.common.Drag.AbsMin.V {
			t.Errorf("drop %g: still moving at %g", h, v)
		}
	}
}

// TestStepDrivesForward verifies throttle moves the car along its heading
func TestStepDrivesForward(t *testing.T) {
	s := newScene(groundHeight)
	s.run(60, nil)
	start := s.transform.Disp

	s.run(120, throttle)
	d := s.transform.Disp.Sub(start)
	if d.Y() < 20 {
		t.Errorf("forward travel = %g, want > 20", d.Y())
	}
	if d.X() > 2 || d.X() < -2 {
		t.Errorf("lateral drift = %g", d.X())
	}
	if up := s.transform.Up().Z(); up < 0.99 {
		t.Errorf("car tipped while driving, up.z = %g", up)
	}
	if s.dynamo.Traction <= 0 {
		t.Errorf("traction = %g after throttle", s.dynamo.Traction)
	}
}

// TestStepSteersAndCoasts verifies a left turn followed by coasting to a stop
func TestStepSteersAndCoasts(t *testing.T) {
	s := newScene(groundHeight)
	s.run(100, throttle)
	start := s.transform.Disp

	s.run(100, func(s *scene) Input {
		s.dynamo.Steer(1, s.common, s.correction())
		return throttle(s)
	})
	if dx := s.transform.Disp.X() - start.X(); dx > -5 {
		t.Errorf("left turn moved x by %g, want < -5", dx)
	}
	if wz := s.dynamo.AngularVelocity.Z(); wz <= 0 {
		t.Errorf("yaw rate = %g, want positive", wz)
	}
	if up := s.transform.Up().Z(); up < 0.98 {
		t.Errorf("car tipped in the turn, up.z = %g", up)
	}

	res := s.run(500, nil)
	if s.dynamo.Traction != 0 {
		t.Errorf("traction did not decay, got %g", s.dynamo.Traction)
	}
	if v := s.dynamo.LinearVelocity.Len(); v >= s.common.Drag.AbsStop.V {
		t.Errorf("coasting car still at %g", v)
	}
	if res.Integrated {
		t.Error("coasting car still integrating")
	}
}

// TestStepBrake verifies braking sheds speed faster than coasting
func TestStepBrake(t *testing.T) {
	s := newScene(groundHeight)
	s.run(90, throttle)

	coast := *s
	brake := *s
	coast.run(30, nil)
	brake.run(30, func(*scene) Input { return Input{Turbo: 1, Brake: 10} })

	vc := coast.dynamo.LinearVelocity.Len()
	vb := brake.dynamo.LinearVelocity.Len()
	if vb >= vc {
		t.Errorf("braked speed %g not below coasting speed %g", vb, vc)
	}
}

// TestStepWallCollision verifies driving into a wall reports a hard collision
func TestStepWallCollision(t *testing.T) {
	s := newScene(groundHeight)
	s.level = terrain.NewLevelFunc(256, 256, func(x, y int32) terrain.Texel {
		if y >= 90 && y < 110 {
			return terrain.Single(80, terrain.KindMain)
		}
		return terrain.Single(40, terrain.KindMain)
	})

	collided := false
	for i := 0; i < 90 && !collided; i++ {
		collided = s.step(throttle(s)).Collided
	}
	if !collided {
		t.Errorf("no collision reported, car at %v", s.transform.Disp)
	}
}

// TestStepHardDominant verifies polygons buried past the wall threshold are counted
func TestStepHardDominant(t *testing.T) {
	tests := []struct {
		name   string
		bottom float32
		want   int
	}{
		{"resting", groundHeight, 0},
		{"buried", groundHeight - 10, 4},
	}
	for _, tt := range tests {
		s := newScene(tt.bottom)
		if res := s.step(Input{Turbo: 1}); res.HardDominant != tt.want {
			t.Errorf("%s: hard dominant polygons = %d, want %d", tt.name, res.HardDominant, tt.want)
		}
	}
}

// TestStepBuoyancy verifies submerged bodies are pushed up
func TestStepBuoyancy(t *testing.T) {
	dry := newScene(50)
	wet := newScene(50)
	wet.level = terrain.NewFlatLevel(256, 256, 0, terrain.KindWater)
	wet.level.FloodMap = []uint8{200} // sea at 100

	dry.step(Input{Turbo: 1})
	res := wet.step(Input{Turbo: 1})

	if res.Immersion != 1 {
		t.Errorf("immersion = %g, want 1", res.Immersion)
	}
	if dry.dynamo.LinearVelocity.Z() >= 0 {
		t.Errorf("dry body rising: %v", dry.dynamo.LinearVelocity)
	}
	if wet.dynamo.LinearVelocity.Z() <= 0 {
		t.Errorf("submerged body sinking: %v", wet.dynamo.LinearVelocity)
	}
}

// TestStepDebugLines verifies the sink observes contacts and motion
func TestStepDebugLines(t *testing.T) {
	s := newScene(groundHeight - 1)
	sink := &recordingSink{colors: map[uint32]int{}}
	Step(&s.dynamo, &s.transform, tick, s.profile, s.level, s.common, Input{Turbo: 1}, sink)

	for _, c := range []uint32{ColorSpring, ColorForce, ColorVelocity} {
		if sink.colors[c] == 0 {
			t.Errorf("no lines of color %08x", c)
		}
	}
	if sink.colors[ColorCollision] != 0 {
		t.Errorf("unexpected collision lines on a flat landing")
	}
}

func BenchmarkStepResting(b *testing.B) {
	s := newScene(groundHeight)
	s.run(120, nil)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.step(Input{Turbo: 1})
	}
}

func BenchmarkStepAirborne(b *testing.B) {
	s := newScene(1000)
	start := s.transform
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%600 == 0 {
			s.transform = start
			s.dynamo = Dynamo{}
		}
		s.step(Input{Turbo: 1})
	}
}
