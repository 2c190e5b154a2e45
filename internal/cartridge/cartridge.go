// Package cartridge implements cartridge ROM/RAM banking: a plain
// ROM-only mapper, MBC1, and MBC3 (with its RTC surface), behind a common
// Cartridge interface so the bus never needs to know which mapper it is
// talking to.
package cartridge

// Cartridge is the banking interface the bus reads/writes through for the
// 0x0000-0x7FFF (ROM) and 0xA000-0xBFFF (cartridge RAM) regions.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header

	// RAM returns a snapshot of battery-backed RAM for persistence, or
	// nil if the cartridge carries no battery.
	RAM() []byte
	// LoadRAM restores battery-backed RAM from a previous RAM() snapshot.
	LoadRAM(data []byte)
}

// New parses rom's header and constructs the appropriate mapper. sram, if
// non-nil, seeds the cartridge's battery-backed RAM (e.g. restored from a
// host-provided save file).
func New(rom []byte, sram []byte) (Cartridge, error) {
	header, err := ParseHeader(rom)
	if err != nil {
		return nil, err
	}

	var c Cartridge
	switch header.CartridgeType {
	case ROM:
		c = newROMOnly(rom, header)
	case MBC1, MBC1RAM, MBC1RAMBATT:
		c = newMBC1(rom, header)
	case MBC3, MBC3RAM, MBC3RAMBATT, MBC3TIMERRAMBATT2, MBC3TIMERRAMBATT:
		c = newMBC3(rom, header)
	default:
		return nil, &HeaderError{Reason: "unhandled cartridge type after header validation"}
	}

	if sram != nil {
		c.LoadRAM(sram)
	}
	return c, nil
}

// romOnly is the simplest mapper: a fixed 32KiB ROM with no banking and no
// RAM. Writes to the ROM region are ignored.
type romOnly struct {
	rom    []byte
	header Header
}

func newROMOnly(rom []byte, header Header) *romOnly {
	return &romOnly{rom: rom, header: header}
}

func (r *romOnly) Read(address uint16) uint8 {
	if int(address) < len(r.rom) {
		return r.rom[address]
	}
	return 0xFF
}

func (r *romOnly) Write(uint16, uint8) {}
func (r *romOnly) Header() Header      { return r.header }
func (r *romOnly) RAM() []byte         { return nil }
func (r *romOnly) LoadRAM(data []byte) {}
