// Command gbtrace runs a ROM for a fixed number of CPU steps while tallying
// how often each base opcode is fetched, then renders the busiest opcodes as
// a bar chart PNG. It exists purely as a diagnostic for comparing ROMs or
// spotting an interpreter loop that never leaves a handful of opcodes.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/cespare/xxhash"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/bramwell/gbcore/internal/bus"
	"github.com/bramwell/gbcore/internal/cpu"
	"github.com/bramwell/gbcore/internal/hostlog"
)

func main() {
	romFile := flag.String("rom", "", "the ROM file to load")
	steps := flag.Int("steps", 200_000, "number of CPU steps to trace")
	top := flag.Int("top", 16, "number of busiest opcodes to plot")
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

	b := bus.New(hostlog.NewNull())
	b.LoadROM(rom)
	c := cpu.NewCPU(b, hostlog.NewNull())
	c.LoadROM(rom)

	counts := make(map[uint8]int)
	c.OnFetch(func(opcode uint8) { counts[opcode]++ })

	for i := 0; i < *steps; i++ {
		if c.IsHalted() && !b.InterruptPending() {
			break
		}
		if b.SerialStopRequested {
			break
		}
		c.Step()
	}

	entries := rankOpcodes(counts, *top)
	outFile := fmt.Sprintf("%016x-trace.png", xxhash.Sum64(rom))
	if err := renderHistogram(entries, outFile); err != nil {
		logger.Errorf("rendering histogram: %v", err)
		os.Exit(1)
	}
	logger.Infof("wrote %s (%d distinct opcodes observed)", outFile, len(counts))
}

type opcodeCount struct {
	opcode uint8
	count  int
}

// rankOpcodes sorts by descending frequency, breaking ties by opcode value
// for a stable, reproducible chart, and keeps only the busiest n.
func rankOpcodes(counts map[uint8]int, n int) []opcodeCount {
	entries := make([]opcodeCount, 0, len(counts))
	for op, c := range counts {
		entries = append(entries, opcodeCount{op, c})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].opcode < entries[j].opcode
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// renderHistogram draws entries as a bar chart and saves it as a PNG.
func renderHistogram(entries []opcodeCount, filename string) error {
	p := plot.New()
	p.Title.Text = "opcode fetch frequency"
	p.Y.Label.Text = "fetches"

	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))
	for i, e := range entries {
		values[i] = float64(e.count)
		labels[i] = fmt.Sprintf("%#02x", e.opcode)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(labels...)

	return p.Save(8*vg.Inch, 4*vg.Inch, filename)
}
