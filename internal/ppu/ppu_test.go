package ppu

import (
	"testing"

	"github.com/rustyboy-go/rustyboy/internal/interrupts"
)

func TestModeProgressionWithinALine(t *testing.T) {
	p := New(interrupts.NewController())

	if p.Mode() != ModeOAM {
		t.Fatalf("initial mode = %d, want ModeOAM", p.Mode())
	}

	p.Tick(oamScanDots)
	if p.Mode() != ModeDraw {
		t.Fatalf("mode after %d dots = %d, want ModeDraw", oamScanDots, p.Mode())
	}

	p.Tick(drawDots)
	if p.Mode() != ModeHBlank {
		t.Fatalf("mode after draw phase = %d, want ModeHBlank", p.Mode())
	}

	p.Tick(dotsPerLine - oamScanDots - drawDots)
	if p.Mode() != ModeOAM {
		t.Fatalf("mode after full line = %d, want ModeOAM (next line)", p.Mode())
	}
	if p.LY() != 1 {
		t.Fatalf("LY after one full line = %d, want 1", p.LY())
	}
}

func TestLYEntersVBlankAt144(t *testing.T) {
	irq := interrupts.NewController()
	irq.WriteIE(interrupts.VBlankFlag)
	p := New(irq)

	for line := 0; line < vblankStartLY; line++ {
		p.Tick(dotsPerLine)
	}

	if p.LY() != vblankStartLY {
		t.Fatalf("LY = %d, want %d", p.LY(), vblankStartLY)
	}
	if p.Mode() != ModeVBlank {
		t.Fatalf("mode = %d, want ModeVBlank", p.Mode())
	}
	if !irq.HasPending() {
		t.Fatalf("Vblank interrupt was not requested on entering line 144")
	}
}

func TestLYWrapsAfterFullFrame(t *testing.T) {
	p := New(interrupts.NewController())
	var elapsed uint32 // Tick takes a uint8; drive a full frame in small chunks
	for elapsed < linesPerFrame*dotsPerLine {
		p.Tick(255)
		elapsed += 255
	}
	if p.LY() != 0 {
		t.Fatalf("LY after a full frame = %d, want 0 (wrapped)", p.LY())
	}
	if p.Mode() != ModeOAM {
		t.Fatalf("mode after wraparound = %d, want ModeOAM", p.Mode())
	}
}

func TestLYCMatchRaisesSTATOnRisingEdgeOnly(t *testing.T) {
	irq := interrupts.NewController()
	irq.WriteIE(interrupts.LCDFlag)
	p := New(irq)
	p.Write(STAT, 1<<6) // enable the LYC=LY STAT source
	p.Write(LYC, 0)      // LY already 0: writing LYC re-evaluates and should edge-trigger

	if !irq.HasPending() {
		t.Fatalf("LYC=LY match did not raise LCD interrupt")
	}
	irq.Highest() // drain

	p.Write(LYC, 0) // re-writing the same match is not a new rising edge
	if irq.ReadIF()&interrupts.LCDFlag != 0 {
		t.Fatalf("re-confirming an already-true STAT line re-raised the interrupt")
	}
}

func TestSTATReportsCurrentMode(t *testing.T) {
	p := New(interrupts.NewController())
	if p.Read(STAT)&0x03 != ModeOAM {
		t.Fatalf("STAT mode bits = %d, want ModeOAM", p.Read(STAT)&0x03)
	}
}

func TestOAMLockedDuringOAMAndDrawModes(t *testing.T) {
	p := New(interrupts.NewController())
	p.Write(0xFE00, 0x42) // writes while unlocked should fail: we're in ModeOAM
	if p.Read(0xFE00) == 0x42 {
		t.Fatalf("OAM write succeeded while PPU held the OAM lock")
	}
}
