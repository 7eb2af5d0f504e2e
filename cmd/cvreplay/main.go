package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"go-polycv/config"
	"go-polycv/host"
	"go-polycv/midi"
	"go-polycv/voice"
)

func main() {
	var (
		mode   = flag.String("mode", "", "allocation mode (default: saved config)")
		voices = flag.Int("voices", 0, "voice count 1-16 (default: saved config)")
		rate   = flag.Int("rate", 1000, "control cycles per second")
		tail   = flag.Duration("tail", 100*time.Millisecond, "keep running after the last event")
		seed   = flag.Int64("seed", 1, "drift random seed")
		all    = flag.Bool("all", false, "print every cycle, not only changes")
		dual   = flag.Bool("dual", false, "run the lower/upper dual converter instead of the voice engine")
	)
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: cvreplay [flags] file.mid")
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	settings := cfg.Engine
	if *mode != "" {
		m, err := voice.ParseMode(*mode)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		settings.Mode = m
	}
	if *voices > 0 {
		settings.Voices = *voices
	}

	msgs, err := midi.ReadSMFFile(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	cycle := time.Second / time.Duration(max(1, *rate))
	if *dual {
		fmt.Printf("%s: %d messages, dual\n", flag.Arg(0), len(msgs))
		replayDual(voice.NewDual(cfg.Dual), msgs, cycle, *tail, *all)
		return
	}

	engine := voice.New(settings, rand.New(rand.NewSource(*seed)))
	h := host.New(engine, nil, *rate)

	fmt.Printf("%s: %d messages, mode %s, %d voices\n", flag.Arg(0), len(msgs), engine.Mode(), len(engine.Voices()))

	last := ""
	h.Replay(msgs, cycle, *tail, func(at time.Duration, f voice.Frame) {
		line := formatFrame(f)
		if !*all && line == last {
			return
		}
		last = line
		fmt.Printf("%10.3fs  %s\n", at.Seconds(), line)
	})
}

// formatFrame shows each voice as note/pitch when gated, "--" when idle
func formatFrame(f voice.Frame) string {
	parts := make([]string, len(f.Voices))
	for i, v := range f.Voices {
		if v.Gate > 0 {
			parts[i] = fmt.Sprintf("%3d %+6.3f", v.Note, v.Pitch)
		} else {
			parts[i] = "   --      "
		}
	}
	pedal := " "
	if f.Pedal {
		pedal = "P"
	}
	return pedal + " | " + strings.Join(parts, " | ")
}

// replayDual steps the dual converter through msgs at a fixed cycle and
// prints the lower and upper voices
func replayDual(d *voice.Dual, msgs []midi.TimedMessage, cycle, tail time.Duration, all bool) {
	var end time.Duration
	if n := len(msgs); n > 0 {
		end = msgs[n-1].At
	}
	end += tail

	dt := float32(cycle.Seconds())
	next := 0
	last := ""
	for at := time.Duration(0); at <= end; at += cycle {
		for next < len(msgs) && msgs[next].At <= at {
			d.Handle(msgs[next].Message)
			next++
		}
		line := formatDual(d.Process(dt))
		if !all && line == last {
			continue
		}
		last = line
		fmt.Printf("%10.3fs  %s\n", at.Seconds(), line)
	}
}

func formatDual(f voice.DualFrame) string {
	if f.Gate == 0 {
		return "  | lower    --       | upper    --"
	}
	pedal := " "
	if f.Pedal {
		pedal = "P"
	}
	return fmt.Sprintf("%s | lower %3d %+6.3f | upper %3d %+6.3f", pedal, f.Lower.Note, f.Lower.Pitch, f.Upper.Note, f.Upper.Pitch)
}
