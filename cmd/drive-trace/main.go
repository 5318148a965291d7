package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/terrain"
)

var (
	ticksFlag    = flag.Int("ticks", 600, "Number of steps")
	dtFlag       = flag.Float64("dt", 1.0/60, "Step duration in seconds")
	tractionFlag = flag.Float64("traction", 0, "Traction held every step")
	rudderFlag   = flag.Float64("rudder", 0, "Rudder angle held every step, radians")
	dropFlag     = flag.Float64("drop", 0, "Start height of the car bottom above the ground")
	everyFlag    = flag.Int("every", 1, "Print every Nth step")
	levelFlag    = flag.String("level", "flat", "Level: flat or demo")
	commonFlag   = flag.String("common", "", "Physics tuning TOML, built-in defaults when empty")
	carFlag      = flag.String("car", "", "Car description TOML, built-in box car when empty")
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("drive-trace: ")
	flag.Parse()

	common := parameter.DefaultCommon()
	if *commonFlag != "" {
		c, err := parameter.LoadCommon(*commonFlag)
		if err != nil {
			log.Fatal(err)
		}
		common = c
	}

	profile := car.NewBoxProfile("box", [3]int8{10, 16, 6})
	if *carFlag != "" {
		p, err := car.Load(*carFlag)
		if err != nil {
			log.Fatal(err)
		}
		profile = p
	}

	var level *terrain.Level
	switch *levelFlag {
	case "flat":
		level = terrain.NewFlatLevel(256, 256, 40, terrain.KindMain)
	case "demo":
		level = terrain.NewDemoLevel(256)
	default:
		log.Fatalf("unknown level %q", *levelFlag)
	}

	cfg := traceConfig{
		Ticks:    *ticksFlag,
		Dt:       float32(*dtFlag),
		Traction: float32(*tractionFlag),
		Rudder:   float32(*rudderFlag),
		Drop:     float32(*dropFlag),
		Every:    *everyFlag,
	}
	sum, err := trace(os.Stdout, cfg, profile, level, common)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Fprintf(os.Stderr, "final %v speed %.4f angular %.4f collisions %d max immersion %.2f\n",
		sum.Disp, sum.Speed, sum.Angular, sum.Collisions, sum.MaxImmersion)
}
