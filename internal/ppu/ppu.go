// Package ppu implements the Game Boy's Pixel Processing Unit: the mode
// state machine (OAM scan / drawing / hblank / vblank), LY/LYC/STAT
// interrupt generation, and background/window/sprite scanline rendering.
//
// The mode-3 (drawing) duration is approximated as a fixed 172 dots per
// spec.md §4.4 — the test corpus this emulator targets does not require
// per-sprite drawing-phase penalty cycles, so rendering happens once per
// scanline rather than dot-by-dot through a pixel FIFO.
package ppu

import (
	"sort"

	"github.com/rustyboy-go/rustyboy/internal/interrupts"
)

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	ModeHBlank = 0
	ModeVBlank = 1
	ModeOAM    = 2
	ModeDraw   = 3

	dotsPerLine   = 456
	oamScanDots   = 80
	drawDots      = 172
	linesPerFrame = 154
	vblankStartLY = 144
)

// Register addresses for the 0xFF40-0xFF4B LCD I/O block (OAM DMA at
// 0xFF46 is triggered through the bus, not here).
const (
	LCDC = 0xFF40
	STAT = 0xFF41
	SCY  = 0xFF42
	SCX  = 0xFF43
	LY   = 0xFF44
	LYC  = 0xFF45
	BGP  = 0xFF47
	OBP0 = 0xFF48
	OBP1 = 0xFF49
	WY   = 0xFF4A
	WX   = 0xFF4B
)

// sprite is one 4-byte OAM entry.
type sprite struct {
	y, x, tile, attr uint8
	oamIndex         int
}

// PPU is the Pixel Processing Unit.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat       uint8
	scy, scx         uint8
	ly, lyc          uint8
	bgp, obp0, obp1  uint8
	wy, wx           uint8
	wly              uint8 // internal window line counter
	windowWasVisible bool  // whether the window was drawn on any prior line this frame

	dot  uint16 // dot within the current line, 0..455
	mode uint8

	statLine bool // OR of all maskable STAT sources, edge-triggered

	framebuffer [ScreenHeight][ScreenWidth]uint8 // the in-progress frame
	frame       [ScreenHeight][ScreenWidth]uint8 // the last completed frame

	irq *interrupts.Controller
}

// New returns a PPU in the documented DMG post-boot state.
func New(irq *interrupts.Controller) *PPU {
	p := &PPU{irq: irq}
	p.lcdc = 0x91
	p.bgp = 0xFC
	p.mode = ModeOAM
	return p
}

// Frame returns the most recently completed frame, as 2-bit shades 0..3 in
// row-major order.
func (p *PPU) Frame() *[ScreenHeight][ScreenWidth]uint8 { return &p.frame }

// Tick advances the PPU by cycles T-cycles.
func (p *PPU) Tick(cycles uint8) {
	if p.lcdc&(1<<7) == 0 {
		return // LCD off: PPU is frozen, LY reads 0 via Read()
	}
	for i := uint8(0); i < cycles; i++ {
		p.step()
	}
}

func (p *PPU) step() {
	p.dot++

	switch p.mode {
	case ModeOAM:
		if p.dot == oamScanDots {
			p.enterMode(ModeDraw)
		}
	case ModeDraw:
		if p.dot == oamScanDots+drawDots {
			p.renderScanline()
			p.enterMode(ModeHBlank)
		}
	case ModeHBlank:
		if p.dot == dotsPerLine {
			p.dot = 0
			p.advanceLine()
		}
	case ModeVBlank:
		if p.dot == dotsPerLine {
			p.dot = 0
			p.advanceLine()
		}
	}
}

// advanceLine moves LY to the next line (wrapping at 154) and re-enters
// OAM scan or stays in VBlank as appropriate.
func (p *PPU) advanceLine() {
	p.ly++
	if p.ly == vblankStartLY {
		p.enterMode(ModeVBlank)
		p.frame = p.framebuffer
		p.irq.Request(interrupts.VBlankFlag)
	} else if p.ly == linesPerFrame {
		p.ly = 0
		p.wly = 0
		p.windowWasVisible = false
		p.enterMode(ModeOAM)
	} else if p.mode == ModeVBlank {
		// stay in vblank, nothing else to do
	} else {
		p.enterMode(ModeOAM)
	}
	p.checkLYC()
}

// enterMode switches to mode and raises the STAT interrupt if the mode's
// entry is one of the maskable sources and the line recomputes the
// STAT OR-line to a rising edge.
func (p *PPU) enterMode(mode uint8) {
	p.mode = mode
	p.updateStatLine()
}

// checkLYC re-evaluates the LY==LYC comparison, which happens whenever LY
// changes.
func (p *PPU) checkLYC() {
	p.updateStatLine()
}

// updateStatLine recomputes the OR of all enabled STAT interrupt sources
// and requests the LCD interrupt on a 0->1 transition (edge-triggered,
// matching real STAT-line behaviour).
func (p *PPU) updateStatLine() {
	line := false
	if p.stat&(1<<6) != 0 && p.ly == p.lyc {
		line = true
	}
	switch p.mode {
	case ModeHBlank:
		line = line || p.stat&(1<<3) != 0
	case ModeVBlank:
		line = line || p.stat&(1<<4) != 0
	case ModeOAM:
		line = line || p.stat&(1<<5) != 0
	}

	if line && !p.statLine {
		p.irq.Request(interrupts.LCDFlag)
	}
	p.statLine = line
}

// Read returns the value of an LCD register or VRAM/OAM byte.
func (p *PPU) Read(address uint16) uint8 {
	switch {
	case address >= 0x8000 && address < 0xA000:
		return p.vram[address-0x8000]
	case address >= 0xFE00 && address < 0xFEA0:
		if p.mode == ModeOAM || p.mode == ModeDraw {
			return 0xFF // OAM is locked to the CPU during scan/draw
		}
		return p.oam[address-0xFE00]
	}

	switch address {
	case LCDC:
		return p.lcdc
	case STAT:
		return p.stat&0x78 | p.mode | 0x80 | boolBit(p.ly == p.lyc, 2)
	case SCY:
		return p.scy
	case SCX:
		return p.scx
	case LY:
		return p.ly
	case LYC:
		return p.lyc
	case BGP:
		return p.bgp
	case OBP0:
		return p.obp0
	case OBP1:
		return p.obp1
	case WY:
		return p.wy
	case WX:
		return p.wx
	}
	return 0xFF
}

// Write updates an LCD register or VRAM/OAM byte.
func (p *PPU) Write(address uint16, value uint8) {
	switch {
	case address >= 0x8000 && address < 0xA000:
		p.vram[address-0x8000] = value
		return
	case address >= 0xFE00 && address < 0xFEA0:
		if p.mode == ModeOAM || p.mode == ModeDraw {
			return
		}
		p.oam[address-0xFE00] = value
		return
	}

	switch address {
	case LCDC:
		wasOn := p.lcdc&(1<<7) != 0
		p.lcdc = value
		if !wasOn && value&(1<<7) != 0 {
			p.dot = 0
			p.ly = 0
			p.wly = 0
			p.enterMode(ModeOAM)
		} else if wasOn && value&(1<<7) == 0 {
			p.dot = 0
			p.ly = 0
			p.mode = ModeHBlank
			p.statLine = false
		}
	case STAT:
		p.stat = value & 0x78
		p.updateStatLine()
	case SCY:
		p.scy = value
	case SCX:
		p.scx = value
	case LY:
		// read-only
	case LYC:
		p.lyc = value
		p.checkLYC()
	case BGP:
		p.bgp = value
	case OBP0:
		p.obp0 = value
	case OBP1:
		p.obp1 = value
	case WY:
		p.wy = value
	case WX:
		p.wx = value
	}
}

// ReadOAMRaw and WriteOAMRaw bypass the mode-3/mode-2 lock, used by the
// bus's OAM DMA engine, which the real hardware allows regardless of the
// current PPU mode.
func (p *PPU) ReadOAMRaw(index int) uint8    { return p.oam[index] }
func (p *PPU) WriteOAMRaw(index int, v uint8) { p.oam[index] = v }

func boolBit(b bool, shift uint8) uint8 {
	if b {
		return 1 << shift
	}
	return 0
}

// scanSprites returns up to 10 sprites visible on the given scanline,
// ordered by OAM-index priority (lowest index drawn on top among equal X,
// per DMG rules applied in renderScanline).
func (p *PPU) scanSprites(line uint8) []sprite {
	height := uint8(8)
	if p.lcdc&(1<<2) != 0 {
		height = 16
	}

	var found []sprite
	for i := 0; i < 40 && len(found) < 10; i++ {
		base := i * 4
		y := p.oam[base] - 16
		if line-y < height {
			found = append(found, sprite{
				y:        p.oam[base],
				x:        p.oam[base+1],
				tile:     p.oam[base+2],
				attr:     p.oam[base+3],
				oamIndex: i,
			})
		}
	}

	// DMG sprite-to-sprite priority: lower X first, ties by earlier OAM
	// index. Sort ascending so later (lower-priority) sprites are drawn
	// first and higher-priority ones overwrite them.
	sort.SliceStable(found, func(i, j int) bool {
		if found[i].x != found[j].x {
			return found[i].x > found[j].x
		}
		return found[i].oamIndex > found[j].oamIndex
	})
	return found
}
