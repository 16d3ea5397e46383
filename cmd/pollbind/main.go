// Package main is an interactive terminal demo for the pollbind engine.
//
// Terminal key events drive a bank of debounced virtual buttons; a
// fixed-rate polling loop runs the keybind engine and displays button
// states and fired events. Terminals report only key-down, so a button
// is considered released once its key has been quiet for a linger
// window (key auto-repeat keeps a held key alive).
package main

import (
	"flag"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pollbind/internal/button"
	"github.com/dshills/pollbind/internal/config"
	"github.com/dshills/pollbind/internal/keybind"
	"github.com/dshills/pollbind/internal/script"
)

// Version information (set via ldflags during build).
var version = "dev"

// keyRow maps terminal keys to button IDs, in slot order.
var keyRow = []struct {
	r  rune
	id button.ID
}{
	{'a', 1},
	{'s', 2},
	{'d', 3},
	{'f', 4},
	{'j', 5},
	{'k', 6},
	{'l', 7},
	{';', 8},
}

const (
	pollRate  = 15 * time.Millisecond
	keyLinger = 175 * time.Millisecond
	fireHold  = 400 * time.Millisecond
	numEvents = 8
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to a JSON binding set")
	scriptPath := flag.String("script", "", "Path to a Lua binding script")
	showVersion := flag.Bool("version", false, "Show version information")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "pollbind - polled keybind detection demo\n\n")
		fmt.Fprintf(os.Stderr, "Usage: pollbind [options]\n\n")
		fmt.Fprintf(os.Stderr, "Keys a s d f j k l ; drive buttons 1-8. Esc quits.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *showVersion {
		fmt.Printf("pollbind %s\n", version)
		return 0
	}

	// One deadline per button, pushed forward by key events and read
	// by the samplers.
	var mu sync.Mutex
	deadlines := make([]time.Time, len(keyRow))

	buttons := make([]button.Button, len(keyRow))
	for i := range keyRow {
		buttons[i] = button.NewDebounced(keyRow[i].id, func() bool {
			mu.Lock()
			defer mu.Unlock()
			return time.Now().Before(deadlines[i])
		}, button.WithDebounce(0))
	}

	kb, err := keybind.New(buttons, numEvents, 3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := loadBindings(kb, *configPath, *scriptPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create screen: %v\n", err)
		return 1
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to init screen: %v\n", err)
		return 1
	}
	defer screen.Fini()

	quit := make(chan struct{})
	go pollKeys(screen, deadlines, &mu, quit)

	ticker := time.NewTicker(pollRate)
	defer ticker.Stop()

	firedUntil := make([]time.Time, numEvents)
	for {
		select {
		case <-quit:
			return 0
		case <-ticker.C:
			kb.Update()
			now := time.Now()
			for i := 0; i < numEvents; i++ {
				if kb.IsEvent(i) {
					firedUntil[i] = now.Add(fireHold)
				}
			}
			draw(screen, kb, firedUntil, now)
		}
	}
}

// loadBindings applies the configured binding source, defaulting to a
// built-in demo set.
func loadBindings(kb *keybind.Keybind, configPath, scriptPath string) error {
	switch {
	case configPath != "":
		set, err := config.LoadFile(configPath)
		if err != nil {
			return err
		}
		return set.Apply(kb)

	case scriptPath != "":
		r := script.NewRunner(kb)
		defer r.Close()
		return r.RunFile(scriptPath)

	default:
		return defaultBindings(kb)
	}
}

// defaultBindings assigns a demo set exercising priority, tie-breaks,
// and modifier consumption.
func defaultBindings(kb *keybind.Keybind) error {
	demo := []struct {
		event int
		ids   []button.ID
		state button.State
	}{
		{0, []button.ID{4}, button.Release},             // f tapped
		{1, []button.ID{1, 4}, button.Hold},             // a+f chord
		{2, []button.ID{1, 2, 4}, button.Hold},          // a+s+f chord
		{3, []button.ID{5}, button.Push | button.Rapid}, // j double-tap
		{4, []button.ID{5}, button.Hold | button.Delay}, // j held past repeat
		{5, []button.ID{1}, button.Release},             // a alone; consumed while chording
	}
	for _, d := range demo {
		if err := kb.Assign(d.event, d.ids, d.state); err != nil {
			return err
		}
	}
	return nil
}

// pollKeys forwards terminal key events to button deadlines.
func pollKeys(screen tcell.Screen, deadlines []time.Time, mu *sync.Mutex, quit chan struct{}) {
	for {
		ev := screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				close(quit)
				return
			}
			for i, k := range keyRow {
				if ev.Rune() == k.r {
					mu.Lock()
					deadlines[i] = time.Now().Add(keyLinger)
					mu.Unlock()
					break
				}
			}
		case *tcell.EventResize:
			screen.Sync()
		}
	}
}

func draw(screen tcell.Screen, kb *keybind.Keybind, firedUntil []time.Time, now time.Time) {
	screen.Clear()

	drawText(screen, 0, 0, tcell.StyleDefault.Bold(true),
		"pollbind demo - keys a s d f j k l ; - Esc quits")

	y := 2
	drawText(screen, 0, y, tcell.StyleDefault.Underline(true), "buttons")
	y++
	for i, k := range keyRow {
		b := kb.Button(i)
		st := b.State()
		style := tcell.StyleDefault
		if st.Engaged() {
			style = style.Foreground(tcell.ColorGreen)
		}
		drawText(screen, 0, y, style,
			fmt.Sprintf("  [%c] button %d  %s", k.r, k.id, st))
		y++
	}

	y++
	drawText(screen, 0, y, tcell.StyleDefault.Underline(true), "events")
	y++
	for i := range firedUntil {
		style := tcell.StyleDefault
		marker := " "
		if now.Before(firedUntil[i]) {
			style = style.Foreground(tcell.ColorYellow).Bold(true)
			marker = "*"
		}
		drawText(screen, 0, y, style, fmt.Sprintf("  %s event %d", marker, i))
		y++
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, s string) {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
}
