package cpu

import "fmt"

// StrictOpcodes turns an unassigned opcode from a silent 1-byte NOP into a
// panic. Off by default so a malformed ROM never crashes the emulator
// (spec.md §7); the golden-test harness sets it to catch decode gaps.
var StrictOpcodes = false

// execute dispatches a fetched opcode. Instructions are grouped by the
// bit-pattern families the SM83 encoding actually falls into (mirroring
// the teacher's decode.go), rather than a 256-entry jump table: most of
// the opcode space is regular, and the families read far closer to the
// ISA manual than a flat table would.
func (c *CPU) execute(opcode uint8) {
	switch {
	case opcode == 0x00: // NOP

	case opcode == 0x10: // STOP
		c.readOperand()
		c.mode = modeHalted

	case opcode == 0x76: // HALT
		c.mode = modeHalted

	case opcode == 0xF3: // DI
		c.IME = false
		c.eiDelay = 0

	case opcode == 0xFB: // EI
		c.eiDelay = 2

	case opcode == 0xCB:
		c.executeCB(c.fetch())

	case opcode&0xCF == 0x01: // LD rr,d16
		c.ldRR_d16((opcode >> 4) & 0x3)

	case opcode&0xCF == 0x02: // LD (BC/DE/HL+/HL-),A
		switch (opcode >> 4) & 0x3 {
		case 0:
			c.ldMemBC_A()
		case 1:
			c.ldMemDE_A()
		case 2:
			c.ldMemHLInc_A()
		case 3:
			c.ldMemHLDec_A()
		}

	case opcode&0xCF == 0x0A: // LD A,(BC/DE/HL+/HL-)
		switch (opcode >> 4) & 0x3 {
		case 0:
			c.ldA_MemBC()
		case 1:
			c.ldA_MemDE()
		case 2:
			c.ldA_MemHLInc()
		case 3:
			c.ldA_MemHLDec()
		}

	case opcode&0xCF == 0x03: // INC rr
		c.incRR((opcode >> 4) & 0x3)

	case opcode&0xCF == 0x0B: // DEC rr
		c.decRR((opcode >> 4) & 0x3)

	case opcode&0xCF == 0x09: // ADD HL,rr
		c.addHL_RR((opcode >> 4) & 0x3)

	case opcode == 0x08: // LD (a16),SP
		c.ldMemA16_SP()

	case opcode&0xC7 == 0x04: // INC r8
		c.inc8((opcode >> 3) & 0x7)

	case opcode&0xC7 == 0x05: // DEC r8
		c.dec8((opcode >> 3) & 0x7)

	case opcode&0xC7 == 0x06: // LD r8,d8
		c.ldR8_d8((opcode >> 3) & 0x7)

	case opcode&0xC7 == 0x07: // RLCA/RRCA/RLA/RRA/DAA/CPL/SCF/CCF
		switch (opcode >> 3) & 0x7 {
		case 0:
			c.rlca()
		case 1:
			c.rrca()
		case 2:
			c.rla()
		case 3:
			c.rra()
		case 4:
			c.daa()
		case 5:
			c.cpl()
		case 6:
			c.scf()
		case 7:
			c.ccf()
		}

	case opcode == 0x18: // JR e8
		c.jrE8()

	case opcode&0xE7 == 0x20: // JR cc,e8
		c.jrCCE8((opcode >> 3) & 0x3)

	case opcode&0xC0 == 0x40: // LD r8,r8
		c.ldR8_R8((opcode>>3)&0x7, opcode&0x7)

	case opcode&0xC0 == 0x80: // ALU A,r8
		c.aluR8((opcode>>3)&0x7, c.operand8(opcode&0x7))

	case opcode&0xE7 == 0xC0: // RET cc
		c.retCC((opcode >> 3) & 0x3)

	case opcode == 0xC9: // RET
		c.ret()

	case opcode == 0xD9: // RETI
		c.reti()

	case opcode&0xCF == 0xC1: // POP rr
		c.pop16((opcode >> 4) & 0x3)

	case opcode&0xCF == 0xC5: // PUSH rr
		c.push16((opcode >> 4) & 0x3)

	case opcode == 0xC3: // JP a16
		c.jpA16()

	case opcode == 0xE9: // JP HL
		c.jpHL()

	case opcode&0xE7 == 0xC2: // JP cc,a16
		c.jpCCA16((opcode >> 3) & 0x3)

	case opcode == 0xCD: // CALL a16
		c.callA16()

	case opcode&0xE7 == 0xC4: // CALL cc,a16
		c.callCCA16((opcode >> 3) & 0x3)

	case opcode&0xC7 == 0xC6: // ALU A,d8
		c.aluR8((opcode>>3)&0x7, c.readOperand())

	case opcode&0xC7 == 0xC7: // RST
		c.rst(opcode & 0x38)

	case opcode == 0xE0: // LDH (a8),A
		c.ldhMemA8_A()

	case opcode == 0xF0: // LDH A,(a8)
		c.ldhA_MemA8()

	case opcode == 0xE2: // LD (C),A
		c.ldMemC_A()

	case opcode == 0xF2: // LD A,(C)
		c.ldA_MemC()

	case opcode == 0xEA: // LD (a16),A
		c.ldMemA16_A()

	case opcode == 0xFA: // LD A,(a16)
		c.ldA_MemA16()

	case opcode == 0xE8: // ADD SP,e8
		c.addSP_E8()

	case opcode == 0xF8: // LD HL,SP+e8
		c.ldHL_SPPlusE8()

	case opcode == 0xF9: // LD SP,HL
		c.ldSP_HL()

	default:
		// Unassigned opcode (0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB-0xED,
		// 0xF4, 0xFC, 0xFD). Real hardware locks up; we treat it as a
		// 1-byte NOP rather than panicking, since a malformed ROM
		// should never crash the emulator (spec.md §7).
		if StrictOpcodes {
			panic(fmt.Sprintf("cpu: unassigned opcode 0x%02X at 0x%04X", opcode, c.PC-1))
		}
	}
}

// executeCB dispatches the CB-prefixed instruction set: rotates/shifts/
// swap, BIT, RES and SET, all addressed by the same 3-bit r8 field as the
// unprefixed set.
func (c *CPU) executeCB(opcode uint8) {
	reg := opcode & 0x7
	bit := (opcode >> 3) & 0x7

	switch {
	case opcode < 0x40:
		switch (opcode >> 3) & 0x7 {
		case 0:
			c.rlcR8(reg)
		case 1:
			c.rrcR8(reg)
		case 2:
			c.rlR8(reg)
		case 3:
			c.rrR8(reg)
		case 4:
			c.slaR8(reg)
		case 5:
			c.sraR8(reg)
		case 6:
			c.swapR8(reg)
		case 7:
			c.srlR8(reg)
		}
	case opcode < 0x80:
		c.bitR8(bit, reg)
	case opcode < 0xC0:
		c.resR8(bit, reg)
	default:
		c.setR8(bit, reg)
	}
}
