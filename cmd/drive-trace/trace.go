package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/physics"
	"github.com/kvark/vange-rs-sub000/terrain"
	"github.com/kvark/vange-rs-sub000/vmath"
)

// traceConfig is one headless run
type traceConfig struct {
	Ticks    int
	Dt       float32
	Traction float32 // held every tick, clamped to the dynamo range
	Rudder   float32
	Drop     float32 // start height of the car bottom above the ground
	Every    int     // print every Nth tick
}

// traceSummary is the state after the last tick
type traceSummary struct {
	Disp         vmath.Vec3
	Speed        float32
	Angular      float32
	Last         physics.StepResult
	MaxImmersion float32
	Collisions   int
}

// trace steps one car and writes a line per printed tick
func trace(w io.Writer, cfg traceConfig, profile *car.Profile, level *terrain.Level, common *parameter.Common) (traceSummary, error) {
	if cfg.Ticks <= 0 {
		return traceSummary{}, fmt.Errorf("ticks must be positive, got %d", cfg.Ticks)
	}
	if cfg.Dt < 0 {
		return traceSummary{}, fmt.Errorf("dt must not be negative, got %g", cfg.Dt)
	}
	if cfg.Every <= 0 {
		cfg.Every = 1
	}

	cx, cy := float32(level.Size[0])/2, float32(level.Size[1])/2
	ground := terrain.HeightOf(level.TexelAtPoint(vmath.Vec3{cx, cy, 0}).Top().Altitude)
	transform := vmath.NewTransform(vmath.Vec3{cx, cy, ground - profile.Bounds.Min.Z() + cfg.Drop}, 1)
	var dynamo physics.Dynamo

	out := bufio.NewWriter(w)
	fmt.Fprintln(out, "tick\tx\ty\tz\tspeed\tangular\ttraction\twheels\tsprings\tcollided\tintegrated")

	var sum traceSummary
	for i := 0; i < cfg.Ticks; i++ {
		dynamo.Traction = vmath.Clamp(cfg.Traction, -physics.MaxTraction, physics.MaxTraction)
		dynamo.Rudder = vmath.Clamp(cfg.Rudder, -common.Traction.RudderMax, common.Traction.RudderMax)

		res := physics.Step(&dynamo, &transform, cfg.Dt, profile, level, common, physics.Input{Turbo: 1}, nil)
		if res.Collided {
			sum.Collisions++
		}
		if res.Immersion > sum.MaxImmersion {
			sum.MaxImmersion = res.Immersion
		}
		sum.Last = res

		if i%cfg.Every == 0 || i == cfg.Ticks-1 {
			p := transform.Disp
			fmt.Fprintf(out, "%d\t%.3f\t%.3f\t%.3f\t%.4f\t%.4f\t%.2f\t%d\t%d\t%v\t%v\n",
				i, p.X(), p.Y(), p.Z(), dynamo.LinearVelocity.Len(), dynamo.AngularVelocity.Len(),
				dynamo.Traction, res.WheelTouch, res.SpringTouch, res.Collided, res.Integrated)
		}
	}

	sum.Disp = transform.Disp
	sum.Speed = dynamo.LinearVelocity.Len()
	sum.Angular = dynamo.AngularVelocity.Len()
	if err := out.Flush(); err != nil {
		return sum, fmt.Errorf("write trace: %w", err)
	}
	return sum, nil
}
