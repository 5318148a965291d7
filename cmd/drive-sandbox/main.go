package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gdamore/tcell/v2"

	"github.com/kvark/vange-rs-sub000/audio"
	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/terrain"
)

var (
	commonFlag = flag.String("common", "", "Physics tuning TOML, built-in defaults when empty")
	carFlag    = flag.String("car", "", "Car description TOML, built-in box car when empty")
	levelFlag  = flag.Int("level", 256, "Demo level size in texels")
	debugFlag  = flag.Bool("debug", false, "Write logs to logs/drive-sandbox.log")
	muteFlag   = flag.Bool("mute", false, "Disable engine sound")
)

func loadCommon(path string) (*parameter.Common, error) {
	if path == "" {
		return parameter.DefaultCommon(), nil
	}
	return parameter.LoadCommon(path)
}

func loadCar(path string) (*car.Profile, error) {
	if path == "" {
		return car.NewBoxProfile("box", [3]int8{10, 16, 6}), nil
	}
	return car.Load(path)
}

func main() {
	flag.Parse()

	if logFile := setupLogging(*debugFlag); logFile != nil {
		defer logFile.Close()
	}

	common, err := loadCommon(*commonFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load tuning: %v\n", err)
		os.Exit(1)
	}
	profile, err := loadCar(*carFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load car: %v\n", err)
		os.Exit(1)
	}
	if *levelFlag < 64 {
		fmt.Fprintf(os.Stderr, "Level size must be at least 64, got %d\n", *levelFlag)
		os.Exit(1)
	}
	level := terrain.NewDemoLevel(int32(*levelFlag))
	log.Printf("car %q: %d polygons, %d samples, %d wheels", profile.Name, len(profile.Polygons), len(profile.Samples), len(profile.Wheels))

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}

	// Panic Recovery: Ensure terminal is reset even if the step crashes
	crashScreen = screen
	defer func() {
		handleCrash(recover())
	}()

	sound := audio.NewEngineSound()
	if !*muteFlag {
		if err := sound.Initialize(); err != nil {
			// Non-fatal, the sandbox can run without sound
			log.Printf("Audio initialization failed: %v", err)
		}
	}

	NewSandbox(screen, sound, profile, level, common).Run()

	sound.Cleanup()
	screen.Fini()
}
