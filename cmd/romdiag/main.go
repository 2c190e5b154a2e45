// Command romdiag is the developer-tooling slot for this project: it
// dumps a cartridge's header, and, given a -trace file of (cycle, mode)
// samples recorded by a debug build, renders a scanline-mode histogram.
// This is the closest Go-native equivalent of the original xtask crate's
// disk-image/packaging glue: there is no Cargo workspace or Playdate .pdx
// to build here, so the slot becomes a diagnostic tool instead.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/rustyboy-go/rustyboy/internal/cartridge"
	"github.com/rustyboy-go/rustyboy/internal/romfile"
)

func main() {
	romPath := flag.String("rom", "", "path to a .gb/.gbc ROM, or a .zip/.7z archive containing one")
	tracePath := flag.String("trace", "", "optional trace file of 'cycle,mode' lines to histogram")
	out := flag.String("out", "romdiag.png", "output PNG path for the timing histogram")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "romdiag: -rom is required")
		os.Exit(1)
	}

	rom, err := romfile.Load(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "romdiag: loading rom: %v\n", err)
		os.Exit(1)
	}

	header, err := cartridge.ParseHeader(rom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "romdiag: parsing header: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("title:          %s\n", header.Title)
	fmt.Printf("cartridge type: 0x%02X\n", uint8(header.CartridgeType))
	fmt.Printf("rom banks:      %d\n", header.ROMBanks)
	fmt.Printf("ram size:       %d bytes\n", header.RAMSize)
	fmt.Printf("battery:        %v\n", header.HasBattery())
	fmt.Printf("rtc:            %v\n", header.HasRTC())

	if *tracePath == "" {
		return
	}

	counts, err := readModeCounts(*tracePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "romdiag: reading trace: %v\n", err)
		os.Exit(1)
	}

	if err := plotModeHistogram(counts, *out); err != nil {
		fmt.Fprintf(os.Stderr, "romdiag: plotting: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *out)
}

// readModeCounts parses a trace file of "cycle,mode" lines and tallies how
// many cycles were spent in each of the PPU's four modes.
func readModeCounts(path string) ([4]float64, error) {
	var counts [4]float64

	f, err := os.Open(path)
	if err != nil {
		return counts, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.SplitN(scanner.Text(), ",", 2)
		if len(fields) != 2 {
			continue
		}
		mode, err := strconv.Atoi(strings.TrimSpace(fields[1]))
		if err != nil || mode < 0 || mode > 3 {
			continue
		}
		counts[mode]++
	}
	return counts, scanner.Err()
}

func plotModeHistogram(counts [4]float64, out string) error {
	p := plot.New()
	p.Title.Text = "PPU mode occupancy"
	p.Y.Label.Text = "samples"

	names := []string{"HBlank", "VBlank", "OAM", "Draw"}
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		values[i] = c
	}

	bars, err := plotter.NewBarChart(values, vg.Points(30))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)

	return p.Save(6*vg.Inch, 4*vg.Inch, out)
}
