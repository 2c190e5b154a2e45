package gameboy

import (
	"testing"

	"github.com/rustyboy-go/rustyboy/internal/joypad"
)

// romOnlyImage builds a minimal ROM-only cartridge whose program is a
// tight infinite loop (JR -2 at 0x0100), enough to drive RunFrame without
// the CPU running off the end of a blank ROM into undefined opcodes.
func romOnlyImage() []byte {
	rom := make([]byte, 0x8000)
	rom[0x147] = 0x00 // ROM only
	rom[0x148] = 0x00 // 2 banks
	rom[0x149] = 0x00 // no RAM
	rom[0x0100] = 0x18 // JR e8
	rom[0x0101] = 0xFE // -2: branch to self
	return rom
}

func TestNewRejectsMalformedHeader(t *testing.T) {
	_, err := New(make([]byte, 0x10))
	if err == nil {
		t.Fatalf("expected an error constructing a GameBoy from a too-short rom")
	}
}

func TestRunFrameAdvancesLYThroughAFullFrame(t *testing.T) {
	gb, err := New(romOnlyImage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	frame := gb.RunFrame()
	if frame == nil {
		t.Fatalf("RunFrame returned a nil framebuffer")
	}
	// After exactly one 70224 T-cycle frame the PPU has wrapped back to
	// line 0, about to begin OAM scan for the next frame.
	if gb.PPU().LY() != 0 {
		t.Fatalf("LY after one RunFrame = %d, want 0", gb.PPU().LY())
	}
}

func TestPressButtonReflectsInHeaderAndButtons(t *testing.T) {
	gb, err := New(romOnlyImage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	gb.PressButton(joypad.ButtonStart)
	gb.ReleaseButton(joypad.ButtonStart) // should not panic or desync state
	gb.SetButtons(1 << joypad.ButtonA)
}

func TestSRAMNilWithoutBattery(t *testing.T) {
	gb, err := New(romOnlyImage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gb.SRAM() != nil {
		t.Fatalf("SRAM() = %v, want nil for a battery-less cartridge", gb.SRAM())
	}
}

func TestHeaderReflectsParsedCartridge(t *testing.T) {
	gb, err := New(romOnlyImage())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if gb.Header().ROMBanks != 2 {
		t.Fatalf("ROMBanks = %d, want 2", gb.Header().ROMBanks)
	}
}
