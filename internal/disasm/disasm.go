// Package disasm turns SM83 machine code into Pan-Docs-style mnemonic
// text, grounded on original_source/rusty-boy/src/disassembler.rs's
// per-opcode tables (reimplemented over internal/cpu's own Decode/DecodeCB
// rather than a duplicate table, so the disassembler can never drift from
// what the CPU actually executes).
package disasm

import (
	"fmt"
	"strings"

	"github.com/rustyboy-go/rustyboy/internal/cpu"
)

// One decodes a single instruction starting at pc, reading bytes through
// read, and returns its disassembled text and length in bytes. Immediate
// operands are substituted into the mnemonic (e.g. "LD BC,d16" becomes
// "LD BC,$1234").
func One(read func(uint16) uint8, pc uint16) (string, uint8) {
	opcode := read(pc)

	if opcode == 0xCB {
		cb := read(pc + 1)
		instr := cpu.DecodeCB(cb)
		return instr.Mnemonic, instr.Length
	}

	instr := cpu.Decode(opcode)
	text := instr.Mnemonic

	switch instr.Length {
	case 2:
		operand := read(pc + 1)
		if strings.Contains(text, "e8") {
			text = strings.Replace(text, "e8", fmt.Sprintf("$%02X", operand), 1)
		} else {
			text = strings.Replace(text, "d8", fmt.Sprintf("$%02X", operand), 1)
		}
	case 3:
		lo := read(pc + 1)
		hi := read(pc + 2)
		value := uint16(hi)<<8 | uint16(lo)
		if strings.Contains(text, "a16") {
			text = strings.Replace(text, "a16", fmt.Sprintf("$%04X", value), 1)
		} else {
			text = strings.Replace(text, "d16", fmt.Sprintf("$%04X", value), 1)
		}
	}

	return text, instr.Length
}

// Range disassembles count instructions starting at pc, for trace dumps
// and cmd/rustyboy -disasm.
func Range(read func(uint16) uint8, pc uint16, count int) []string {
	lines := make([]string, 0, count)
	for i := 0; i < count; i++ {
		text, length := One(read, pc)
		lines = append(lines, fmt.Sprintf("%04X  %s", pc, text))
		if length == 0 {
			length = 1
		}
		pc += uint16(length)
	}
	return lines
}
