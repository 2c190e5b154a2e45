// Command diskview is a minimal Fyne debug GUI: a register inspector, a
// tile-data viewer and an OAM table, all read-only windows onto a running
// core's debug accessors. Grounded on the teacher's
// pkg/display/fyne/views/{cpu,tiles,oam}.go.
package main

import (
	"flag"
	"fmt"
	"image/color"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/rustyboy-go/rustyboy/internal/gameboy"
	"github.com/rustyboy-go/rustyboy/internal/romfile"
	"github.com/rustyboy-go/rustyboy/pkg/log"
)

func main() {
	romPath := flag.String("rom", "", "path to a .gb/.gbc ROM, or a .zip/.7z archive containing one")
	flag.Parse()

	logger := log.New()
	if *romPath == "" {
		logger.Errorf("no -rom specified")
		os.Exit(1)
	}

	rom, err := romfile.Load(*romPath)
	if err != nil {
		logger.Errorf("loading rom: %v", err)
		os.Exit(1)
	}

	gb, err := gameboy.New(rom, gameboy.WithLogger(logger))
	if err != nil {
		logger.Errorf("loading cartridge: %v", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("diskview")

	regs := newRegisterView(gb)
	tiles := newTileView(gb)
	oam := newOAMView(gb)

	w.SetContent(container.NewAppTabs(
		container.NewTabItem("CPU", regs.container),
		container.NewTabItem("Tiles", tiles.container),
		container.NewTabItem("OAM", oam.container),
	))
	w.Resize(fyne.NewSize(480, 360))

	go func() {
		for range time.Tick(100 * time.Millisecond) {
			gb.RunFrame()
			regs.refresh()
			tiles.refresh()
			oam.refresh()
		}
	}()

	w.ShowAndRun()
}

// registerView mirrors the teacher's views.CPU widget.
type registerView struct {
	gb        *gameboy.GameBoy
	container fyne.CanvasObject
	labels    map[string]*widget.Label
}

func newRegisterView(gb *gameboy.GameBoy) *registerView {
	names := []string{"A", "F", "B", "C", "D", "E", "H", "L", "PC", "SP", "IME"}
	labels := make(map[string]*widget.Label, len(names))
	grid := container.NewGridWithColumns(2)
	for _, n := range names {
		labels[n] = widget.NewLabel("--")
		grid.Add(widget.NewLabel(n + ":"))
		grid.Add(labels[n])
	}
	return &registerView{gb: gb, container: grid, labels: labels}
}

func (v *registerView) refresh() {
	r := v.gb.CPU().RegisterSnapshot()
	v.labels["A"].SetText(fmt.Sprintf("0x%02X", r.A))
	v.labels["F"].SetText(fmt.Sprintf("0x%02X", r.F))
	v.labels["B"].SetText(fmt.Sprintf("0x%02X", r.B))
	v.labels["C"].SetText(fmt.Sprintf("0x%02X", r.C))
	v.labels["D"].SetText(fmt.Sprintf("0x%02X", r.D))
	v.labels["E"].SetText(fmt.Sprintf("0x%02X", r.E))
	v.labels["H"].SetText(fmt.Sprintf("0x%02X", r.H))
	v.labels["L"].SetText(fmt.Sprintf("0x%02X", r.L))
	v.labels["PC"].SetText(fmt.Sprintf("0x%04X", v.gb.CPU().PC))
	v.labels["SP"].SetText(fmt.Sprintf("0x%04X", v.gb.CPU().SP))
	v.labels["IME"].SetText(fmt.Sprintf("%v", v.gb.CPU().IME))
}

// tileView renders the PPU's 384-tile VRAM dump as a grid of raster images.
type tileView struct {
	gb        *gameboy.GameBoy
	container fyne.CanvasObject
	raster    *canvas.Raster
}

func newTileView(gb *gameboy.GameBoy) *tileView {
	v := &tileView{gb: gb}
	v.raster = canvas.NewRasterWithPixels(v.pixel)
	v.container = container.NewMax(v.raster)
	return v
}

func (v *tileView) pixel(x, y, w, h int) color.Color {
	tiles := v.gb.PPU().TileDebugView()
	tilesPerRow := 16
	col, row := x/8, y/8
	index := row*tilesPerRow + col
	if index >= len(tiles) {
		return color.Black
	}
	shade := tiles[index][y%8][x%8]
	level := 255 - shade*85
	return color.RGBA{R: level, G: level, B: level, A: 255}
}

func (v *tileView) refresh() { v.raster.Refresh() }

// oamView lists all 40 OAM entries in a text table.
type oamView struct {
	gb        *gameboy.GameBoy
	container fyne.CanvasObject
	text      *widget.Label
}

func newOAMView(gb *gameboy.GameBoy) *oamView {
	v := &oamView{gb: gb, text: widget.NewLabel("")}
	v.text.TextStyle.Monospace = true
	v.container = container.NewVScroll(v.text)
	return v
}

func (v *oamView) refresh() {
	entries := v.gb.PPU().OAMDebugView()
	out := ""
	for i, e := range entries {
		out += fmt.Sprintf("%02d  y=%-3d x=%-3d tile=%-3d attr=0x%02X\n", i, e.Y, e.X, e.Tile, e.Attr)
	}
	v.text.SetText(out)
}
