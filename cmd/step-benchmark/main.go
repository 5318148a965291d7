package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/physics"
	"github.com/kvark/vange-rs-sub000/terrain"
	"github.com/kvark/vange-rs-sub000/vmath"
)

const dt = float32(1.0 / 60)

var iterationsFlag = flag.Int("n", 20000, "Steps per scenario")

// scenario is one vehicle state replayed from the same start each run
type scenario struct {
	name     string
	drop     float32 // car bottom above the ground
	traction float32
	level    *terrain.Level
}

func run(sc scenario, profile *car.Profile, common *parameter.Common, n int) (time.Duration, physics.StepResult) {
	ground := terrain.HeightOf(sc.level.TexelAt(128, 128).Top().Altitude)
	start := vmath.NewTransform(vmath.Vec3{128, 128, ground - profile.Bounds.Min.Z() + sc.drop}, 1)

	transform := start
	var dynamo physics.Dynamo
	var res physics.StepResult

	begin := time.Now()
	for i := 0; i < n; i++ {
		// Restart periodically so the car never leaves the scenario it measures
		if i%600 == 0 {
			transform = start
			dynamo = physics.Dynamo{}
		}
		dynamo.Traction = sc.traction
		res = physics.Step(&dynamo, &transform, dt, profile, sc.level, common, physics.Input{Turbo: 1}, nil)
	}
	return time.Since(begin), res
}

func main() {
	flag.Parse()
	n := *iterationsFlag
	if n <= 0 {
		n = 1
	}

	fmt.Println("Vehicle Step Benchmark")
	fmt.Println("======================")
	fmt.Println()
	fmt.Println("Run with: go test -bench=. -benchmem ./physics/")
	fmt.Println()

	profile := car.NewBoxProfile("box", [3]int8{10, 16, 6})
	common := parameter.DefaultCommon()
	flat := terrain.NewFlatLevel(256, 256, 40, terrain.KindMain)

	scenarios := []scenario{
		{name: "airborne", drop: 200, level: flat},
		{name: "resting", level: flat},
		{name: "driving", traction: physics.MaxTraction, level: flat},
		{name: "demo terrain", traction: physics.MaxTraction, level: terrain.NewDemoLevel(256)},
	}

	fmt.Printf("%-14s %12s %12s %8s %8s\n", "Scenario", "Total", "Per step", "Wheels", "Springs")
	for _, sc := range scenarios {
		total, res := run(sc, profile, common, n)
		fmt.Printf("%-14s %12v %12v %8d %8d\n", sc.name, total, total/time.Duration(n), res.WheelTouch, res.SpringTouch)
	}
	fmt.Printf("\n%d steps per scenario, %d polygons, %d samples\n", n, len(profile.Polygons), len(profile.Samples))
}
