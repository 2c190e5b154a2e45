// Package gameboy wires the CPU, PPU, timer, joypad, interrupt controller
// and cartridge into the cycle-accurate driver loop: the CPU reports how
// many T-cycles an instruction or interrupt dispatch consumed, and the
// driver ticks the timer and PPU for that same span before fetching the
// next instruction, per spec.md §2.
package gameboy

import (
	"github.com/rustyboy-go/rustyboy/internal/bus"
	"github.com/rustyboy-go/rustyboy/internal/cartridge"
	"github.com/rustyboy-go/rustyboy/internal/cpu"
	"github.com/rustyboy-go/rustyboy/internal/disasm"
	"github.com/rustyboy-go/rustyboy/internal/interrupts"
	"github.com/rustyboy-go/rustyboy/internal/joypad"
	"github.com/rustyboy-go/rustyboy/internal/ppu"
	"github.com/rustyboy-go/rustyboy/internal/timer"
	"github.com/rustyboy-go/rustyboy/pkg/log"
)

// dotsPerFrame is the number of T-cycles in one 154-line DMG frame
// (456 dots/line * 154 lines), used as RunFrame's stopping condition.
const dotsPerFrame = 70224

// GameBoy is the assembled emulator core.
type GameBoy struct {
	cpu   *cpu.CPU
	bus   *bus.Bus
	ppu   *ppu.PPU
	timer *timer.Controller
	pad   *joypad.State
	irq   *interrupts.Controller
	cart  cartridge.Cartridge

	log   log.Logger
	trace bool
}

// New constructs a GameBoy from a ROM image. The ROM is parsed and
// mapped according to its header (spec.md §4.5); an unrecognised or
// malformed header is returned as a typed *cartridge.HeaderError rather
// than causing a panic.
func New(rom []byte, opts ...Option) (*GameBoy, error) {
	cfg := &config{logger: log.Null()}
	for _, opt := range opts {
		opt(cfg)
	}

	cart, err := cartridge.New(rom, cfg.sram)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewController()
	t := timer.New(irq)
	pad := joypad.New(irq)
	p := ppu.New(irq)
	b := bus.New(cart, p, t, pad, irq)
	core := cpu.New(b, irq)

	cfg.logger.Infof("loaded cartridge %q, type=%v, rom_banks=%d, ram=%d bytes",
		cart.Header().Title, cart.Header().CartridgeType, cart.Header().ROMBanks, cart.Header().RAMSize)

	return &GameBoy{
		cpu:   core,
		bus:   b,
		ppu:   p,
		timer: t,
		pad:   pad,
		irq:   irq,
		cart:  cart,
		log:   cfg.logger,
		trace: cfg.trace,
	}, nil
}

// RunFrame drives the CPU, timer and PPU for exactly one 70224 T-cycle
// frame and returns the completed framebuffer as 2-bit shades 0..3 in
// row-major order. The returned pointer aliases the GameBoy's internal
// frame buffer and is overwritten by the next RunFrame call.
func (g *GameBoy) RunFrame() *[ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	var elapsed uint32
	for elapsed < dotsPerFrame {
		if g.trace {
			g.logStep()
		}
		cycles := g.cpu.Step()
		g.timer.Tick(uint8(cycles))
		g.ppu.Tick(uint8(cycles))
		elapsed += cycles
	}
	return g.ppu.Frame()
}

// logStep disassembles the instruction about to execute and logs it at
// Debugf level, per SPEC_FULL.md §4.12's -trace wiring. Run before Step
// so the logged PC is the instruction that is actually about to execute,
// not wherever it lands after.
func (g *GameBoy) logStep() {
	pc := g.cpu.PC
	text, _ := disasm.One(g.bus.Read, pc)
	g.log.Debugf("%04X  %s", pc, text)
}

// SetButtons replaces the full button state from a bit-packed mask; see
// joypad.State.SetButtons for bit order.
func (g *GameBoy) SetButtons(mask uint8) { g.pad.SetButtons(mask) }

// PressButton marks a single button as pressed.
func (g *GameBoy) PressButton(b joypad.Button) { g.pad.Press(b) }

// ReleaseButton marks a single button as released.
func (g *GameBoy) ReleaseButton(b joypad.Button) { g.pad.Release(b) }

// SRAM returns a snapshot of the cartridge's battery-backed RAM, or nil
// if the cartridge has none, for internal/persist to write out.
func (g *GameBoy) SRAM() []byte { return g.cart.RAM() }

// Header returns the parsed cartridge header, for front-ends and
// cmd/romdiag to display.
func (g *GameBoy) Header() cartridge.Header { return g.cart.Header() }

// CPU exposes the underlying CPU for debug front-ends (cmd/diskview) and
// the disassembler; mutating it from outside the driver loop is not
// supported.
func (g *GameBoy) CPU() *cpu.CPU { return g.cpu }

// PPU exposes the underlying PPU for debug front-ends.
func (g *GameBoy) PPU() *ppu.PPU { return g.ppu }
