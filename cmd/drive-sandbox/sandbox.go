package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/kvark/vange-rs-sub000/audio"
	"github.com/kvark/vange-rs-sub000/car"
	"github.com/kvark/vange-rs-sub000/parameter"
	"github.com/kvark/vange-rs-sub000/physics"
	"github.com/kvark/vange-rs-sub000/render"
	"github.com/kvark/vange-rs-sub000/terrain"
	"github.com/kvark/vange-rs-sub000/vmath"
)

const (
	tickRate = 60
	// holdWindow keeps a key pressed between terminal auto-repeat events
	holdWindow = 150 * time.Millisecond
	viewZoom   = 1.5
	brakeForce = 6.0
	turboBoost = 2.0
	logEvery   = tickRate // ticks
)

// Sandbox drives one vehicle over a level in the terminal
type Sandbox struct {
	screen  tcell.Screen
	sound   *audio.EngineSound
	profile *car.Profile
	level   *terrain.Level
	common  *parameter.Common

	dynamo    physics.Dynamo
	transform vmath.Transform
	start     vmath.Transform
	lines     *render.LineBuffer
	last      physics.StepResult

	held    map[rune]time.Time
	jump    bool
	turbo   bool
	paused  bool
	showDbg bool
	ticks   int
}

func NewSandbox(screen tcell.Screen, sound *audio.EngineSound, profile *car.Profile, level *terrain.Level, common *parameter.Common) *Sandbox {
	sb := &Sandbox{
		screen:  screen,
		sound:   sound,
		profile: profile,
		level:   level,
		common:  common,
		lines:   render.NewLineBuffer(),
		held:    make(map[rune]time.Time),
		showDbg: true,
	}
	sb.start = vmath.NewTransform(sb.spawnPoint(), 1)
	sb.reset()
	return sb
}

// spawnPoint rests the car bottom on the ground at the level center
func (sb *Sandbox) spawnPoint() vmath.Vec3 {
	cx, cy := float32(sb.level.Size[0])/2, float32(sb.level.Size[1])/2
	ground := terrain.HeightOf(sb.level.TexelAtPoint(vmath.Vec3{cx, cy, 0}).Top().Altitude)
	return vmath.Vec3{cx, cy, ground - sb.profile.Bounds.Min.Z() + 1}
}

func (sb *Sandbox) reset() {
	sb.transform = sb.start
	sb.dynamo = physics.Dynamo{}
	log.Printf("reset at %v", sb.transform.Disp)
}

// Arrow keys are folded into runes so all held controls share one table
const (
	keyUp    = '↑'
	keyDown  = '↓'
	keyLeft  = '←'
	keyRight = '→'
)

func (sb *Sandbox) isHeld(r rune, now time.Time) bool {
	t, ok := sb.held[r]
	return ok && now.Sub(t) < holdWindow
}

// handleEvent returns false when the sandbox should exit
func (sb *Sandbox) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		now := time.Now()
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			sb.held[keyUp] = now
		case tcell.KeyDown:
			sb.held[keyDown] = now
		case tcell.KeyLeft:
			sb.held[keyLeft] = now
		case tcell.KeyRight:
			sb.held[keyRight] = now
		case tcell.KeyRune:
			switch r := ev.Rune(); r {
			case ' ':
				sb.jump = true
			case 't':
				sb.turbo = !sb.turbo
				log.Printf("turbo %v", sb.turbo)
			case 'p':
				sb.paused = !sb.paused
				sb.sound.Pause(sb.paused)
			case 'r':
				sb.reset()
			case 'l':
				sb.showDbg = !sb.showDbg
			case 'b', 'q', 'e':
				sb.held[r] = now
			}
		}
	case *tcell.EventResize:
		sb.screen.Sync()
	}
	return true
}

// input converts held keys into dynamo changes and the step input
func (sb *Sandbox) input(now time.Time, correction float32) physics.Input {
	in := physics.Input{Turbo: 1}
	if sb.turbo {
		in.Turbo = turboBoost
	}

	switch {
	case sb.isHeld(keyUp, now):
		sb.dynamo.Drive(1, sb.common, correction)
	case sb.isHeld(keyDown, now):
		sb.dynamo.Drive(-1, sb.common, correction)
	}
	switch {
	case sb.isHeld(keyLeft, now):
		sb.dynamo.Steer(1, sb.common, correction)
	case sb.isHeld(keyRight, now):
		sb.dynamo.Steer(-1, sb.common, correction)
	}

	if sb.isHeld('b', now) {
		in.Brake = brakeForce
	}
	switch {
	case sb.isHeld('q', now):
		in.Roll = -1
	case sb.isHeld('e', now):
		in.Roll = 1
	}
	if sb.jump {
		power := float32(1)
		in.Jump = &power
		sb.jump = false
	}
	return in
}

func (sb *Sandbox) tick(dt float32) {
	if sb.paused {
		return
	}
	correction := dt / sb.common.Nature.TimeDelta0
	in := sb.input(time.Now(), correction)

	sb.lines.Reset()
	var sink physics.LineSink = physics.NopSink{}
	if sb.showDbg {
		sink = sb.lines
	}
	sb.last = physics.Step(&sb.dynamo, &sb.transform, dt, sb.profile, sb.level, sb.common, in, sink)
	sb.sound.SetLoad(sb.dynamo.Traction, sb.dynamo.LinearVelocity.Len())

	sb.ticks++
	if sb.ticks%logEvery == 0 {
		log.Printf("tick %d pos %v v %v w %v result %+v", sb.ticks, sb.transform.Disp,
			sb.dynamo.LinearVelocity, sb.dynamo.AngularVelocity, sb.last)
	}
}

// hullPoints returns the world positions of all hull samples
func (sb *Sandbox) hullPoints() []vmath.Vec3 {
	points := make([]vmath.Vec3, 0, len(sb.profile.Samples))
	scale := sb.profile.Physics.ScaleBound
	for _, s := range sb.profile.Samples {
		points = append(points, sb.transform.TransformPoint(s.Vec3().Mul(scale)))
	}
	return points
}

func (sb *Sandbox) draw() {
	sb.screen.Clear()
	view := render.NewView(sb.screen, sb.transform.Disp, viewZoom)
	render.DrawTerrain(sb.screen, view, sb.level)
	render.DrawPoints(sb.screen, view, sb.hullPoints(), '#', render.RGBHUD)
	if sb.showDbg {
		render.DrawLines(sb.screen, view, sb.lines.Lines())
	}

	hud := tcell.StyleDefault.Foreground(render.RGBHUD.Color()).Background(render.RGBBlack.Color())
	p := sb.transform.Disp
	render.DrawText(sb.screen, 0, 0, fmt.Sprintf(
		"%s  pos %6.1f %6.1f %5.1f  speed %5.1f  traction %5.2f  rudder %5.2f",
		sb.profile.Name, p.X(), p.Y(), p.Z(), sb.dynamo.LinearVelocity.Len(), sb.dynamo.Traction, sb.dynamo.Rudder), hud)
	render.DrawText(sb.screen, 0, 1, fmt.Sprintf(
		"wheels %d  springs %d  walls %d  collided %-5v  immersion %4.2f  turbo %-5v  paused %v",
		sb.last.WheelTouch, sb.last.SpringTouch, sb.last.HardDominant, sb.last.Collided, sb.last.Immersion, sb.turbo, sb.paused), hud)
	_, h := sb.screen.Size()
	render.DrawText(sb.screen, 0, h-1,
		"arrows drive/steer  space jump  b brake  t turbo  q/e roll  l lines  p pause  r reset  esc quit", hud)
	sb.screen.Show()
}

// Run polls events and steps the vehicle at a fixed rate until quit
func (sb *Sandbox) Run() {
	ticker := time.NewTicker(time.Second / tickRate)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	goSafe(func() {
		for {
			ev := sb.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	dt := float32(1) / tickRate
	for {
		select {
		case ev := <-eventChan:
			if !sb.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			sb.tick(dt)
			sb.draw()
		}
	}
}
