// Command gbcore runs a headless Game Boy CPU/Bus core against a ROM image
// and reports the final register state and any output published over the
// serial side channel. It is deliberately display-less: there is no PPU or
// windowing driver behind this core, so the only observable output is
// whatever a test ROM writes to the serial port.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"golang.org/x/term"

	"github.com/bramwell/gbcore/internal/bus"
	"github.com/bramwell/gbcore/internal/cartridge"
	"github.com/bramwell/gbcore/internal/cpu"
	"github.com/bramwell/gbcore/internal/hostlog"
)

func main() {
	romFile := flag.String("rom", "", "the ROM file to load")
	maxSteps := flag.Int("max-steps", 10_000_000, "give up after this many CPU steps")
	colorMode := flag.String("color", "auto", "colorize output: auto, always, or never")
	verbose := flag.Bool("verbose", false, "log every serial byte as it arrives")
	flag.Parse()

	logger := hostlog.New()

	if *romFile == "" {
		logger.Errorf("no -rom given")
		os.Exit(2)
	}

	rom, err := os.ReadFile(*romFile)
	if err != nil {
		logger.Errorf("reading rom: %v", err)
		os.Exit(1)
	}

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		logger.Errorf("parsing header: %v", err)
		os.Exit(1)
	}

	color := shouldColor(*colorMode)
	fingerprint := xxhash.Sum64(rom)
	logger.Infof("%s  %s  xxhash=%016x", *romFile, header.String(), fingerprint)

	runLog := logger
	if !*verbose {
		runLog = hostlog.NewNull()
	}

	b := bus.New(runLog)
	b.LoadROM(rom)
	c := cpu.NewCPU(b, runLog)
	c.LoadROM(rom)

	steps := 0
	for steps < *maxSteps {
		if c.IsHalted() && !b.InterruptPending() {
			break
		}
		if b.SerialStopRequested {
			break
		}
		c.Step()
		steps++
	}

	serial := b.SerialString()
	if color {
		fmt.Println(colorize(serial))
	} else {
		fmt.Println(serial)
	}

	logger.Infof("stopped after %d steps (halted=%t, serialStop=%t)", steps, c.IsHalted(), b.SerialStopRequested)
	logger.Infof("PC=%04x SP=%04x AF=%04x BC=%04x DE=%04x HL=%04x IME=%t",
		c.PC, c.SP, c.AF.Uint16(), c.BC.Uint16(), c.DE.Uint16(), c.HL.Uint16(), c.IME)
}

func shouldColor(mode string) bool {
	switch strings.ToLower(mode) {
	case "always":
		return true
	case "never":
		return false
	default:
		return term.IsTerminal(int(os.Stdout.Fd()))
	}
}

// colorize highlights a Blargg-style "Passed"/"Failed" verdict if the
// serial transcript contains one, and leaves everything else plain. It is
// a cosmetic convenience only; nothing about core behavior depends on it.
func colorize(serial string) string {
	const (
		green = "\x1b[32m"
		red   = "\x1b[31m"
		reset = "\x1b[0m"
	)
	switch {
	case strings.Contains(serial, "Passed"):
		return green + serial + reset
	case strings.Contains(serial, "Failed"):
		return red + serial + reset
	default:
		return serial
	}
}
