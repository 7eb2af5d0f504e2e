package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"go-polycv/midi"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "list":
		listPorts()
	case "monitor":
		filter := ""
		if len(os.Args) > 2 {
			filter = os.Args[2]
		}
		monitor(filter)
	case "poll":
		pollDevices()
	default:
		usage()
	}
}

func usage() {
	fmt.Println("MIDI Test Scripts")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  list              - List all MIDI ports")
	fmt.Println("  monitor [filter]  - Print converted messages from matching inputs")
	fmt.Println("  poll              - Poll for device changes")
}

func listPorts() {
	fmt.Println("=== MIDI Input Ports ===")
	fmt.Println("(waiting up to 3 seconds...)")

	ins, err := midi.InPorts(3 * time.Second)
	if err != nil {
		fmt.Println("\nTIMEOUT! CoreMIDI is hung.")
		fmt.Println("Fix: sudo killall coreaudiod midiserver")
		return
	}
	for i, p := range ins {
		fmt.Printf("  %d: %s\n", i, p.String())
	}

	fmt.Println("\n=== MIDI Output Ports ===")
	for i, p := range gomidi.GetOutPorts() {
		fmt.Printf("  %d: %s\n", i, p.String())
	}
}

func monitor(filter string) {
	fmt.Printf("Monitoring inputs matching %q. Ctrl+C to exit.\n", filter)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	dm := midi.NewDeviceManager(filter, 0)
	go dm.Run(ctx)

	start := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-dm.Events():
			if !ok {
				return
			}
			kind := ""
			if ev.Controller != nil {
				kind = " (" + ev.Controller.Kind().String() + ")"
			}
			fmt.Printf("[%s] %s %s%s\n", time.Now().Format("15:04:05"), ev.Type, ev.ID, kind)
		case msg := <-dm.Messages():
			fmt.Printf("%9.3f  %s\n", time.Since(start).Seconds(), msg)
		}
	}
}

func pollDevices() {
	fmt.Println("Polling for device changes every 2 seconds...")
	fmt.Println("Connect/disconnect devices to test. Ctrl+C to exit.")

	lastIn := ""

	for {
		ins, err := midi.InPorts(3 * time.Second)
		if err != nil {
			fmt.Printf("\n[%s] %v\n", time.Now().Format("15:04:05"), err)
			time.Sleep(2 * time.Second)
			continue
		}

		var inNames []string
		for _, p := range ins {
			inNames = append(inNames, p.String())
		}
		currentIn := strings.Join(inNames, ",")

		if currentIn != lastIn {
			fmt.Printf("\n[%s] Device change detected!\n", time.Now().Format("15:04:05"))
			for _, name := range inNames {
				fmt.Printf("  %-40s %s\n", name, midi.KindForPort(name))
			}
			lastIn = currentIn
		}

		time.Sleep(2 * time.Second)
	}
}
