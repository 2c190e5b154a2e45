package cpu

import "testing"

// This file is the golden-test harness spec.md §8 and SPEC_FULL.md §8 call
// for: rather than transcribing spec.md's six narrative scenarios (covered
// in cpu_test.go) it walks Decode/DecodeCB's own opcode space programmatically,
// the way the teacher's instructions_test.go walks an external fixture set.
// We have no sm83-test-data fixtures available, so each grid below sets
// entry state, executes exactly one instruction, and compares exit state
// against either Decode/DecodeCB's reported shape (cycles, byte length) or
// an independent arithmetic oracle for flag semantics.

// freshHL gives LD/ALU/INC/DEC (HL) variants a destination far from the
// opcode bytes at address 0, so writes never clobber the instruction under
// test.
const goldenHLAddr = 0x3000

// opcodes whose PC exit value is not entryPC+Decode(opcode).Length: jumps,
// calls, returns, RST and HALT/STOP. These get their own targeted tests
// elsewhere; the generic sweep below only asserts the length/cycle
// contract for every opcode for which that contract actually holds.
func isPCIrregular(opcode uint8) bool {
	switch opcode {
	case 0x18, 0x20, 0x28, 0x30, 0x38, // JR / JR cc
		0xC3, 0xE9, 0xC2, 0xCA, 0xD2, 0xDA, // JP / JP cc
		0xCD, 0xC4, 0xCC, 0xD4, 0xDC, // CALL / CALL cc
		0xC9, 0xD9, 0xC0, 0xC8, 0xD0, 0xD8, // RET / RETI / RET cc
		0xC7, 0xCF, 0xD7, 0xDF, 0xE7, 0xEF, 0xF7, 0xFF, // RST
		0x76, 0x10: // HALT, STOP
		return true
	}
	return false
}

// TestGolden_PrimaryOpcodeSpace walks every primary opcode whose PC/cycle
// behaviour is regular (entry PC + Decode(opcode).Length, Decode(opcode).Cycles
// consumed) and checks Step against Decode's own reported shape.
func TestGolden_PrimaryOpcodeSpace(t *testing.T) {
	for op := 0; op <= 0xFF; op++ {
		opcode := uint8(op)
		if opcode == 0xCB || isPCIrregular(opcode) {
			continue
		}
		t.Run(instrName(opcode), func(t *testing.T) {
			c, mem, _ := newTestCPU()
			c.PC = 0
			c.SetHL(goldenHLAddr)
			c.SetBC(0x1111)
			c.SetDE(0x2222)
			mem.mem[0] = opcode
			// Immediate operand bytes, harmless for any opcode that
			// doesn't consume them.
			mem.mem[1] = 0x42
			mem.mem[2] = 0x42

			want := Decode(opcode)
			cycles := c.Step()

			if uint8(cycles) != want.Cycles {
				t.Fatalf("opcode 0x%02X (%s): cycles = %d, want %d", opcode, want.Mnemonic, cycles, want.Cycles)
			}
			if c.PC != uint16(want.Length) {
				t.Fatalf("opcode 0x%02X (%s): PC = %d, want %d", opcode, want.Mnemonic, c.PC, want.Length)
			}
		})
	}
}

// TestGolden_CBOpcodeSpace walks the full CB-prefixed space: every opcode
// is unconditional and always advances PC by exactly 2.
func TestGolden_CBOpcodeSpace(t *testing.T) {
	for op := 0; op <= 0xFF; op++ {
		opcode := uint8(op)
		t.Run(instrNameCB(opcode), func(t *testing.T) {
			c, mem, _ := newTestCPU()
			c.PC = 0
			c.SetHL(goldenHLAddr)
			mem.mem[0] = 0xCB
			mem.mem[1] = opcode

			want := DecodeCB(opcode)
			cycles := c.Step()

			if uint8(cycles) != want.Cycles {
				t.Fatalf("CB 0x%02X (%s): cycles = %d, want %d", opcode, want.Mnemonic, cycles, want.Cycles)
			}
			if c.PC != 2 {
				t.Fatalf("CB 0x%02X (%s): PC = %d, want 2", opcode, want.Mnemonic, c.PC)
			}
		})
	}
}

func instrName(opcode uint8) string   { return Decode(opcode).Mnemonic }
func instrNameCB(opcode uint8) string { return DecodeCB(opcode).Mnemonic }

// TestGolden_LDR8R8 checks every one of the 63 non-HALT LD r8,r8 pairs
// actually moves the source's value into the destination, register or
// (HL) alike.
func TestGolden_LDR8R8(t *testing.T) {
	for dst := uint8(0); dst < 8; dst++ {
		for src := uint8(0); src < 8; src++ {
			if dst == 6 && src == 6 {
				continue // 0x76 is HALT
			}
			c, mem, _ := newTestCPU()
			c.PC = 0
			c.SetHL(goldenHLAddr)
			mem.mem[0] = 0x40 | dst<<3 | src

			c.setOperand8(src, 0x5A)
			if dst != src {
				// Give the destination a visibly different starting
				// value so a no-op bug can't hide behind src==dst.
				c.setOperand8(dst, 0xA5)
			}

			c.Step()

			if got := c.operand8(dst); got != 0x5A {
				t.Fatalf("LD %s,%s: dst = 0x%02X, want 0x5A", reg8Names[dst], reg8Names[src], got)
			}
		}
	}
}

// aluOracle independently computes ALU A,value's result and flags,
// deliberately not sharing code with arithmetic.go, so a shared bug in
// add8/sub8 can't also hide in the oracle.
func aluOracle(op uint8, a, value uint8, carryIn bool) (result, flags uint8) {
	switch op & 0x7 {
	case 0, 1: // ADD, ADC
		var c uint16
		if op&0x7 == 1 && carryIn {
			c = 1
		}
		sum := uint16(a) + uint16(value) + c
		result = uint8(sum)
		flags = boolFlag(result == 0, FlagZ) |
			boolFlag((a&0xF)+(value&0xF)+uint8(c) > 0xF, FlagH) |
			boolFlag(sum > 0xFF, FlagC)
	case 2, 3: // SUB, SBC
		var c uint8
		if op&0x7 == 3 && carryIn {
			c = 1
		}
		result = a - value - c
		flags = FlagN |
			boolFlag(result == 0, FlagZ) |
			boolFlag(int(a&0xF)-int(value&0xF)-int(c) < 0, FlagH) |
			boolFlag(int(a)-int(value)-int(c) < 0, FlagC)
	case 4: // AND
		result = a & value
		flags = boolFlag(result == 0, FlagZ) | FlagH
	case 5: // XOR
		result = a ^ value
		flags = boolFlag(result == 0, FlagZ)
	case 6: // OR
		result = a | value
		flags = boolFlag(result == 0, FlagZ)
	case 7: // CP
		result = a // CP never writes A
		diff := a - value
		flags = FlagN |
			boolFlag(diff == 0, FlagZ) |
			boolFlag(int(a&0xF)-int(value&0xF) < 0, FlagH) |
			boolFlag(int(a)-int(value) < 0, FlagC)
	}
	return result, flags
}

// TestGolden_ALUR8 checks all 64 op x src combinations of ALU A,r8 against
// an independent oracle, for both carry-clear and carry-set entry states.
func TestGolden_ALUR8(t *testing.T) {
	values := []uint8{0x00, 0x01, 0x0F, 0x10, 0x7F, 0x80, 0xFF}
	for op := uint8(0); op < 8; op++ {
		for src := uint8(0); src < 8; src++ {
			for _, a := range values {
				for _, v := range values {
					for _, carryIn := range []bool{false, true} {
						c, mem, _ := newTestCPU()
						c.PC = 0
						c.SetHL(goldenHLAddr)
						mem.mem[0] = 0x80 | op<<3 | src
						c.A = a
						c.setF(false, false, false, carryIn)
						// src==7 is A itself: operand8(7) reads A, so
						// the oracle must see A as both operands.
						value := v
						if src == 7 {
							value = a
						} else {
							c.setOperand8(src, v)
						}

						c.Step()

						wantResult, wantFlags := aluOracle(op, a, value, carryIn)
						if c.A != wantResult {
							t.Fatalf("op=%d src=%d a=0x%02X v=0x%02X: A = 0x%02X, want 0x%02X", op, src, a, value, c.A, wantResult)
						}
						if c.F != wantFlags {
							t.Fatalf("op=%d src=%d a=0x%02X v=0x%02X: F = 0x%02X, want 0x%02X", op, src, a, value, c.F, wantFlags)
						}
					}
				}
			}
		}
	}
}

// TestGolden_IncDecR8 checks Z/H flag semantics for INC/DEC r8 at the
// wraparound boundaries, across every register and (HL).
func TestGolden_IncDecR8(t *testing.T) {
	for r := uint8(0); r < 8; r++ {
		for _, entry := range []uint8{0x00, 0x0F, 0xFF} {
			c, mem, _ := newTestCPU()
			c.PC = 0
			c.SetHL(goldenHLAddr)
			mem.mem[0] = 0x04 | r<<3 // INC r8
			c.setOperand8(r, entry)
			oldCarry := c.flag(FlagC)

			c.Step()

			want := entry + 1
			if got := c.operand8(r); got != want {
				t.Fatalf("INC %s from 0x%02X: got 0x%02X, want 0x%02X", reg8Names[r], entry, got, want)
			}
			if c.flag(FlagZ) != (want == 0) {
				t.Fatalf("INC %s from 0x%02X: Z = %v, want %v", reg8Names[r], entry, c.flag(FlagZ), want == 0)
			}
			if c.flag(FlagH) != (entry&0xF == 0xF) {
				t.Fatalf("INC %s from 0x%02X: H = %v, want %v", reg8Names[r], entry, c.flag(FlagH), entry&0xF == 0xF)
			}
			if c.flag(FlagC) != oldCarry {
				t.Fatalf("INC %s: C flag disturbed", reg8Names[r])
			}

			c2, mem2, _ := newTestCPU()
			c2.PC = 0
			c2.SetHL(goldenHLAddr)
			mem2.mem[0] = 0x05 | r<<3 // DEC r8
			c2.setOperand8(r, entry)

			c2.Step()

			want = entry - 1
			if got := c2.operand8(r); got != want {
				t.Fatalf("DEC %s from 0x%02X: got 0x%02X, want 0x%02X", reg8Names[r], entry, got, want)
			}
			if !c2.flag(FlagN) {
				t.Fatalf("DEC %s: N flag not set", reg8Names[r])
			}
			if c2.flag(FlagH) != (entry&0xF == 0x0) {
				t.Fatalf("DEC %s from 0x%02X: H = %v, want %v", reg8Names[r], entry, c2.flag(FlagH), entry&0xF == 0x0)
			}
		}
	}
}

// rotShiftOracle computes the CB-prefixed rotate/shift/swap family
// independently of rotate.go/shift.go, by op index 0..7 (RLC/RRC/RL/RR/
// SLA/SRA/SWAP/SRL).
func rotShiftOracle(op, v uint8, carryIn bool) (result uint8, carryOut bool) {
	switch op {
	case 0: // RLC
		carryOut = v&0x80 != 0
		result = v<<1 | boolFlag(carryOut, 1)
	case 1: // RRC
		carryOut = v&0x01 != 0
		result = v>>1 | boolFlag(carryOut, 0x80)
	case 2: // RL
		carryOut = v&0x80 != 0
		result = v<<1 | boolFlag(carryIn, 1)
	case 3: // RR
		carryOut = v&0x01 != 0
		result = v>>1 | boolFlag(carryIn, 0x80)
	case 4: // SLA
		carryOut = v&0x80 != 0
		result = v << 1
	case 5: // SRA
		carryOut = v&0x01 != 0
		result = v>>1 | v&0x80
	case 6: // SWAP
		result = v<<4 | v>>4
	case 7: // SRL
		carryOut = v&0x01 != 0
		result = v >> 1
	}
	return result, carryOut
}

// TestGolden_CBRotateShift checks all 64 op x register combinations of the
// CB-prefixed rotate/shift/swap family against an independent oracle.
func TestGolden_CBRotateShift(t *testing.T) {
	values := []uint8{0x00, 0x01, 0x80, 0x81, 0xFF, 0x55, 0xAA}
	for op := uint8(0); op < 8; op++ {
		for reg := uint8(0); reg < 8; reg++ {
			for _, v := range values {
				for _, carryIn := range []bool{false, true} {
					c, mem, _ := newTestCPU()
					c.PC = 0
					c.SetHL(goldenHLAddr)
					mem.mem[0] = 0xCB
					mem.mem[1] = op<<3 | reg
					c.setOperand8(reg, v)
					c.setF(false, false, false, carryIn)

					c.Step()

					wantResult, wantCarry := rotShiftOracle(op, v, carryIn)
					if got := c.operand8(reg); got != wantResult {
						t.Fatalf("%s %s v=0x%02X: result = 0x%02X, want 0x%02X", cbRotNames[op], reg8Names[reg], v, got, wantResult)
					}
					if c.flag(FlagZ) != (wantResult == 0) {
						t.Fatalf("%s %s v=0x%02X: Z = %v, want %v", cbRotNames[op], reg8Names[reg], v, c.flag(FlagZ), wantResult == 0)
					}
					if c.flag(FlagC) != wantCarry {
						t.Fatalf("%s %s v=0x%02X: C = %v, want %v", cbRotNames[op], reg8Names[reg], v, c.flag(FlagC), wantCarry)
					}
					if c.flag(FlagN) || c.flag(FlagH) {
						t.Fatalf("%s %s: N/H must always clear", cbRotNames[op], reg8Names[reg])
					}
				}
			}
		}
	}
}

// TestGolden_CBBitResSet checks all 192 bit x register combinations of
// BIT/RES/SET.
func TestGolden_CBBitResSet(t *testing.T) {
	for bit := uint8(0); bit < 8; bit++ {
		for reg := uint8(0); reg < 8; reg++ {
			// BIT: set, then clear, the tested bit and confirm Z follows.
			for _, set := range []bool{true, false} {
				c, mem, _ := newTestCPU()
				c.PC = 0
				c.SetHL(goldenHLAddr)
				mem.mem[0] = 0xCB
				mem.mem[1] = 0x40 | bit<<3 | reg
				var v uint8 = 0xFF
				if !set {
					v = 0xFF &^ (1 << bit)
				}
				c.setOperand8(reg, v)
				c.setF(false, false, false, true) // C must survive BIT untouched

				c.Step()

				if c.flag(FlagZ) != !set {
					t.Fatalf("BIT %d,%s v=0x%02X: Z = %v, want %v", bit, reg8Names[reg], v, c.flag(FlagZ), !set)
				}
				if !c.flag(FlagH) || c.flag(FlagN) {
					t.Fatalf("BIT %d,%s: H/N wrong", bit, reg8Names[reg])
				}
				if !c.flag(FlagC) {
					t.Fatalf("BIT %d,%s: C flag disturbed", bit, reg8Names[reg])
				}
			}

			// RES clears the bit and leaves everything else untouched.
			cr, memr, _ := newTestCPU()
			cr.PC = 0
			cr.SetHL(goldenHLAddr)
			memr.mem[0] = 0xCB
			memr.mem[1] = 0x80 | bit<<3 | reg
			cr.setOperand8(reg, 0xFF)
			cr.Step()
			if got := cr.operand8(reg); got != 0xFF&^(1<<bit) {
				t.Fatalf("RES %d,%s: got 0x%02X, want bit cleared", bit, reg8Names[reg], got)
			}

			// SET sets the bit and leaves everything else untouched.
			cs, mems, _ := newTestCPU()
			cs.PC = 0
			cs.SetHL(goldenHLAddr)
			mems.mem[0] = 0xCB
			mems.mem[1] = 0xC0 | bit<<3 | reg
			cs.setOperand8(reg, 0x00)
			cs.Step()
			if got := cs.operand8(reg); got != 1<<bit {
				t.Fatalf("SET %d,%s: got 0x%02X, want 0x%02X", bit, reg8Names[reg], got, uint8(1<<bit))
			}
		}
	}
}

// TestGolden_16BitIncDec checks INC rr/DEC rr wraparound over all four
// register pairs.
func TestGolden_16BitIncDec(t *testing.T) {
	for rr := uint8(0); rr < 4; rr++ {
		c, mem, _ := newTestCPU()
		c.PC = 0
		mem.mem[0] = 0x03 | rr<<4 // INC rr
		c.setOperand16(rr, 0xFFFF)
		c.Step()
		if got := c.operand16(rr); got != 0x0000 {
			t.Fatalf("INC %s from 0xFFFF: got 0x%04X, want 0x0000", rr16Names[rr], got)
		}

		c2, mem2, _ := newTestCPU()
		c2.PC = 0
		mem2.mem[0] = 0x0B | rr<<4 // DEC rr
		c2.setOperand16(rr, 0x0000)
		c2.Step()
		if got := c2.operand16(rr); got != 0xFFFF {
			t.Fatalf("DEC %s from 0x0000: got 0x%04X, want 0xFFFF", rr16Names[rr], got)
		}
	}
}

// TestGolden_PushPop round-trips all four PUSH/POP pairs (BC, DE, HL, AF),
// with AF's low nibble forced to zero on the way back out.
func TestGolden_PushPop(t *testing.T) {
	values := []uint16{0x0000, 0xBEEF, 0xFFFF, 0x1234}
	for rr := uint8(0); rr < 4; rr++ {
		for _, v := range values {
			c, mem, _ := newTestCPU()
			c.PC = 0
			c.SP = 0xFFFE
			want := v
			if rr == 3 { // AF: low nibble of F always reads zero
				want &^= 0x000F
			}
			switch rr {
			case 0:
				c.SetBC(v)
			case 1:
				c.SetDE(v)
			case 2:
				c.SetHL(v)
			default:
				c.SetAF(v)
			}
			mem.mem[0] = 0xC5 | rr<<4 // PUSH rr
			mem.mem[1] = 0xC1 | rr<<4 // POP rr (same pair)

			c.Step()
			c.Step()

			var got uint16
			switch rr {
			case 0:
				got = c.BC()
			case 1:
				got = c.DE()
			case 2:
				got = c.HL()
			default:
				got = c.AF()
			}
			if got != want {
				t.Fatalf("PUSH/POP %s round-trip of 0x%04X: got 0x%04X, want 0x%04X", rr16StackNames[rr], v, got, want)
			}
			if c.SP != 0xFFFE {
				t.Fatalf("PUSH/POP %s: SP = 0x%04X, want 0xFFFE restored", rr16StackNames[rr], c.SP)
			}
		}
	}
}

// TestGolden_RST checks all eight RST vectors push the correct return
// address and jump to the correct fixed vector.
func TestGolden_RST(t *testing.T) {
	for _, vector := range []uint8{0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38} {
		c, mem, _ := newTestCPU()
		c.PC = 0x0100
		c.SP = 0x8000
		mem.mem[0x0100] = 0xC7 | vector // RST n

		c.Step()

		if c.PC != uint16(vector) {
			t.Fatalf("RST %02Xh: PC = 0x%04X, want 0x%04X", vector, c.PC, vector)
		}
		if c.SP != 0x7FFE {
			t.Fatalf("RST %02Xh: SP = 0x%04X, want 0x7FFE", vector, c.SP)
		}
		if mem.mem[0x7FFE] != 0x01 || mem.mem[0x7FFF] != 0x01 {
			t.Fatalf("RST %02Xh: pushed return address bytes = [0x%02X,0x%02X], want [0x01,0x01]", vector, mem.mem[0x7FFE], mem.mem[0x7FFF])
		}
	}
}

// TestGolden_ConditionalBranchGrid checks every conditional JR/JP/CALL/RET
// against Decode's taken/not-taken cycle counts, for all four conditions
// in both the taken and not-taken state.
func TestGolden_ConditionalBranchGrid(t *testing.T) {
	type form struct {
		name   string
		opcode func(cc uint8) uint8
	}
	forms := []form{
		{"JR cc,e8", func(cc uint8) uint8 { return 0x20 | cc<<3 }},
		{"JP cc,a16", func(cc uint8) uint8 { return 0xC2 | cc<<3 }},
		{"CALL cc,a16", func(cc uint8) uint8 { return 0xC4 | cc<<3 }},
		{"RET cc", func(cc uint8) uint8 { return 0xC0 | cc<<3 }},
	}
	// condition(cc): 0=NZ,1=Z,2=NC,3=C. zFlag/cFlag below is the register
	// state that makes each cc true ("taken").
	for _, f := range forms {
		for cc := uint8(0); cc < 4; cc++ {
			for _, taken := range []bool{true, false} {
				c, mem, _ := newTestCPU()
				c.PC = 0x0100
				c.SP = 0x9000
				opcode := f.opcode(cc)
				mem.mem[0x0100] = opcode
				mem.mem[0x0101] = 0x05
				mem.mem[0x0102] = 0x01 // a16 = 0x0105, also serves as JR target region

				zSet := cc == 1
				cSet := cc == 3
				if !taken {
					zSet = cc == 0
					cSet = cc == 2
				}
				c.setF(zSet, false, false, cSet)

				want := Decode(opcode)
				cycles := c.Step()
				wantCycles := want.Cycles
				if taken {
					wantCycles = want.CyclesTaken
				}
				if uint8(cycles) != wantCycles {
					t.Fatalf("%s cc=%d taken=%v: cycles = %d, want %d", f.name, cc, taken, cycles, wantCycles)
				}
			}
		}
	}
}
