package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"snapfit/audio"
	"snapfit/config"
	"snapfit/core"
	"snapfit/engine"
	"snapfit/input"
	"snapfit/render"
	"snapfit/status"
)

var (
	puzzleFlag  = flag.String("puzzle", "", "puzzle file (YAML); empty loads the built-in gearbox")
	muteFlag    = flag.Bool("mute", false, "disable audio cues")
	scatterFlag = flag.Bool("scatter", false, "shuffle starting positions")
	seedFlag    = flag.Int64("seed", 0, "scatter seed; 0 uses the clock")
)

// App ties the session to the terminal: translates tcell input into
// pointer calls and redraws on every tick.
type App struct {
	screen   tcell.Screen
	sess     *engine.Session
	renderer *render.Renderer
	sound    *audio.Engine
	machine  *input.Machine
}

func main() {
	flag.Parse()

	puzzle, err := config.Load(*puzzleFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load puzzle: %v\n", err)
		os.Exit(1)
	}
	if *scatterFlag {
		puzzle.Options.Scatter = true
	}
	if *seedFlag != 0 {
		puzzle.Options.Seed = *seedFlag
	}

	reg := status.NewRegistry()
	sess := engine.NewSession(puzzle, reg)

	sound, err := audio.NewEngine(*muteFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Audio initialization failed: %v (continuing without sound)\n", err)
	}
	sess.Router().Register(sound)

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	screen.EnableMouse()
	screen.Clear()

	// Restore the terminal before any crash output, for main and for
	// every goroutine started through core.Go
	core.SetCrashHandler(func(r any) {
		screen.Fini()
	})
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	app := &App{
		screen:   screen,
		sess:     sess,
		renderer: render.NewRenderer(screen, reg),
		sound:    sound,
		machine:  input.NewMachine(),
	}
	app.renderer.SetMuted(sound.Muted())

	width, height := screen.Size()
	app.layout(width, height)
	if puzzle.Options.Scatter {
		sess.Scatter()
	}

	defer app.cleanup()
	app.run()
}

// layout reserves the bottom row for the status bar
func (a *App) layout(width, height int) {
	a.renderer.Resize(width, height)
	a.sess.Resize(width, height-1)
}

func (a *App) run() {
	ticker := time.NewTicker(a.sess.TickInterval())
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 256)
	core.Go(func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	a.renderer.Draw(a.sess)

	for {
		select {
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
			a.renderer.Draw(a.sess)

		case <-ticker.C:
			a.sess.Step()
			a.renderer.Draw(a.sess)
		}
	}
}

// handleEvent returns false when the app should exit
func (a *App) handleEvent(ev tcell.Event) bool {
	intent := a.machine.Process(ev)
	if intent == nil {
		return true
	}

	switch intent.Type {
	case input.IntentQuit:
		return false
	case input.IntentReset:
		a.sess.RequestReset()
	case input.IntentToggleMute:
		a.renderer.SetMuted(a.sound.ToggleMute())
	case input.IntentPress:
		a.sess.PressAt(intent.Pos)
	case input.IntentDrag:
		a.sess.MoveTo(intent.Pos)
	case input.IntentRelease:
		a.sess.MoveTo(intent.Pos)
		a.sess.Release()
	case input.IntentResize:
		width, height := a.screen.Size()
		a.layout(width, height)
		a.screen.Sync()
	}

	return true
}

func (a *App) cleanup() {
	a.sound.Close()
	a.screen.Fini()
}
