// Package bus implements the Game Boy's address-decoded memory bus: it
// routes CPU reads/writes to cartridge ROM/RAM, VRAM/OAM (via the PPU),
// work RAM, high RAM, the timer, the joypad, and the IF/IE interrupt
// registers, and triggers OAM DMA.
package bus

import (
	"github.com/rustyboy-go/rustyboy/internal/cartridge"
	"github.com/rustyboy-go/rustyboy/internal/interrupts"
	"github.com/rustyboy-go/rustyboy/internal/joypad"
	"github.com/rustyboy-go/rustyboy/internal/ppu"
	"github.com/rustyboy-go/rustyboy/internal/timer"
)

const (
	dmaRegister = 0xFF46
	sb          = 0xFF01
	sc          = 0xFF02
)

// Bus is the address-decoded memory bus wiring every other component
// together. It owns none of the emulation logic for its subsystems; it
// only routes addresses to them.
type Bus struct {
	Cart      cartridge.Cartridge
	PPU       *ppu.PPU
	Timer     *timer.Controller
	Joypad    *joypad.State
	Interrupt *interrupts.Controller

	wram [0x2000]byte // 0xC000-0xDFFF, also mirrored at 0xE000-0xFDFF
	hram [0x7F]byte   // 0xFF80-0xFFFE

	serialData    uint8
	serialControl uint8

	dmaPending bool
	dmaSource  uint8
}

// New wires a Bus around the given cartridge and shared peripherals.
func New(cart cartridge.Cartridge, p *ppu.PPU, t *timer.Controller, j *joypad.State, irq *interrupts.Controller) *Bus {
	return &Bus{Cart: cart, PPU: p, Timer: t, Joypad: j, Interrupt: irq}
}

// Read dispatches a CPU memory read by address.
func (b *Bus) Read(address uint16) uint8 {
	switch {
	case address < 0x8000:
		return b.Cart.Read(address)
	case address < 0xA000:
		return b.PPU.Read(address)
	case address < 0xC000:
		return b.Cart.Read(address)
	case address < 0xE000:
		return b.wram[address-0xC000]
	case address < 0xFE00:
		return b.wram[address-0xE000] // echo RAM
	case address < 0xFEA0:
		return b.PPU.Read(address)
	case address < 0xFF00:
		return 0xFF // prohibited region
	case address < 0xFF80:
		return b.readIO(address)
	case address < 0xFFFF:
		return b.hram[address-0xFF80]
	default: // 0xFFFF
		return b.Interrupt.ReadIE()
	}
}

// Write dispatches a CPU memory write by address.
func (b *Bus) Write(address uint16, value uint8) {
	switch {
	case address < 0x8000:
		b.Cart.Write(address, value)
	case address < 0xA000:
		b.PPU.Write(address, value)
	case address < 0xC000:
		b.Cart.Write(address, value)
	case address < 0xE000:
		b.wram[address-0xC000] = value
	case address < 0xFE00:
		b.wram[address-0xE000] = value // echo RAM
	case address < 0xFEA0:
		b.PPU.Write(address, value)
	case address < 0xFF00:
		// prohibited region: writes ignored
	case address < 0xFF80:
		b.writeIO(address, value)
	case address < 0xFFFF:
		b.hram[address-0xFF80] = value
	default: // 0xFFFF
		b.Interrupt.WriteIE(value)
	}
}

func (b *Bus) readIO(address uint16) uint8 {
	switch address {
	case joypad.P1:
		return b.Joypad.Read()
	case sb:
		return b.serialData
	case sc:
		return b.serialControl | 0x7E
	case 0xFF0F:
		return b.Interrupt.ReadIF()
	case timer.DIV, timer.TIMA, timer.TMA, timer.TAC:
		return b.Timer.Read(address)
	case dmaRegister:
		return b.dmaSource
	}
	if address >= 0xFF40 && address <= 0xFF4B {
		return b.PPU.Read(address)
	}
	return 0xFF
}

func (b *Bus) writeIO(address uint16, value uint8) {
	switch address {
	case joypad.P1:
		b.Joypad.Write(value)
		return
	case sb:
		b.serialData = value
		return
	case sc:
		b.serialControl = value & 0x81
		return
	case 0xFF0F:
		b.Interrupt.WriteIF(value)
		return
	case timer.DIV, timer.TIMA, timer.TMA, timer.TAC:
		b.Timer.Write(address, value)
		return
	case dmaRegister:
		b.dmaSource = value
		b.runDMA(value)
		return
	}
	if address >= 0xFF40 && address <= 0xFF4B {
		b.PPU.Write(address, value)
	}
}

// runDMA performs the synchronous 160-byte OAM DMA transfer from
// source*0x100, per spec.md §4.6 ("modelled as synchronous for
// simplicity").
func (b *Bus) runDMA(source uint8) {
	base := uint16(source) << 8
	for i := 0; i < 160; i++ {
		b.PPU.WriteOAMRaw(i, b.Read(base+uint16(i)))
	}
}
