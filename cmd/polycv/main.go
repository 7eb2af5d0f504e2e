package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // Register MIDI driver

	"go-polycv/config"
	"go-polycv/debug"
	"go-polycv/host"
	"go-polycv/midi"
	"go-polycv/theme"
	"go-polycv/tui"
	"go-polycv/voice"
)

func main() {
	if err := run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		port    = flag.String("port", "", "only open inputs whose name contains this")
		mode    = flag.String("mode", "", "start in this mode (mpe, rotate, unison-lower, ...)")
		voices  = flag.Int("voices", 0, "voice count 1-16")
		palette = flag.String("palette", "", "GIMP palette for the UI")
		verbose = flag.Bool("debug", false, "log to ~/.config/go-polycv/debug.log")
	)
	flag.Parse()

	if *verbose {
		if err := debug.Enable(); err != nil {
			return err
		}
		defer debug.Disable()
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if *port != "" {
		cfg.Input.PortFilter = *port
	}
	if *mode != "" {
		m, err := voice.ParseMode(*mode)
		if err != nil {
			return err
		}
		cfg.Engine.Mode = m
	}
	if *voices > 0 {
		cfg.Engine.Voices = *voices
	}
	if *palette != "" {
		cfg.UI.Palette = *palette
	}

	pal, err := theme.LoadOrDefault(cfg.UI.Palette)
	if err != nil {
		debug.Log("ui", "palette: %v, using default", err)
	}
	th := theme.New(pal)

	deviceMgr := midi.NewDeviceManager(cfg.Input.PortFilter, cfg.Input.Buffer)
	engine := voice.New(cfg.Engine, rand.New(rand.NewSource(time.Now().UnixNano())))
	cfg.Engine = engine.Settings()
	h := host.New(engine, deviceMgr.Messages(), cfg.CycleHz)
	debug.Log("main", "config %s mode=%s voices=%d", cfg.ID, cfg.Engine.Mode, cfg.Engine.Voices)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deviceMgr.Run(ctx)
	go h.Run(ctx)

	fmt.Println("go-polycv")
	fmt.Println("Connect MIDI devices any time - they'll be detected automatically")
	fmt.Println("")

	m := tui.NewModel(h, deviceMgr, cfg, th)
	p := tea.NewProgram(m, tea.WithAltScreen())

	_, err = p.Run()
	return err
}
