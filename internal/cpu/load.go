package cpu

// operand8 reads the 3-bit-encoded r8 operand, reading (HL) from memory
// when index is 6.
func (c *CPU) operand8(index uint8) uint8 {
	if index == 6 {
		return c.readByte(c.HL())
	}
	return *c.reg8(index)
}

// setOperand8 writes the 3-bit-encoded r8 operand, writing to (HL) when
// index is 6.
func (c *CPU) setOperand8(index, value uint8) {
	if index == 6 {
		c.writeByte(c.HL(), value)
		return
	}
	*c.reg8(index) = value
}

// operand16 reads the 2-bit-encoded rr operand (BC, DE, HL, SP).
func (c *CPU) operand16(index uint8) uint16 {
	switch index & 0x3 {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *CPU) setOperand16(index uint8, value uint16) {
	switch index & 0x3 {
	case 0:
		c.SetBC(value)
	case 1:
		c.SetDE(value)
	case 2:
		c.SetHL(value)
	default:
		c.SP = value
	}
}

// read16 reads a little-endian 16-bit immediate following the opcode.
func (c *CPU) read16() uint16 {
	lo := c.readOperand()
	hi := c.readOperand()
	return uint16(hi)<<8 | uint16(lo)
}

func (c *CPU) ldRR_d16(dst uint8)   { c.setOperand16(dst, c.read16()) }
func (c *CPU) ldR8_d8(dst uint8)    { c.setOperand8(dst, c.readOperand()) }
func (c *CPU) ldR8_R8(dst, src uint8) {
	if dst == 6 && src == 6 {
		// 0x76 is HALT, decoded separately; never reached here.
		return
	}
	c.setOperand8(dst, c.operand8(src))
}

func (c *CPU) ldMemBC_A() { c.writeByte(c.BC(), c.A) }
func (c *CPU) ldMemDE_A() { c.writeByte(c.DE(), c.A) }
func (c *CPU) ldA_MemBC() { c.A = c.readByte(c.BC()) }
func (c *CPU) ldA_MemDE() { c.A = c.readByte(c.DE()) }

func (c *CPU) ldMemHLInc_A() {
	hl := c.HL()
	c.writeByte(hl, c.A)
	c.SetHL(hl + 1)
}
func (c *CPU) ldMemHLDec_A() {
	hl := c.HL()
	c.writeByte(hl, c.A)
	c.SetHL(hl - 1)
}
func (c *CPU) ldA_MemHLInc() {
	hl := c.HL()
	c.A = c.readByte(hl)
	c.SetHL(hl + 1)
}
func (c *CPU) ldA_MemHLDec() {
	hl := c.HL()
	c.A = c.readByte(hl)
	c.SetHL(hl - 1)
}

func (c *CPU) ldMemA16_SP() {
	addr := c.read16()
	c.writeByte(addr, uint8(c.SP))
	c.writeByte(addr+1, uint8(c.SP>>8))
}

func (c *CPU) ldMemA16_A() { c.writeByte(c.read16(), c.A) }
func (c *CPU) ldA_MemA16() { c.A = c.readByte(c.read16()) }

func (c *CPU) ldhMemA8_A() { c.writeByte(0xFF00+uint16(c.readOperand()), c.A) }
func (c *CPU) ldhA_MemA8() { c.A = c.readByte(0xFF00 + uint16(c.readOperand())) }
func (c *CPU) ldMemC_A()   { c.writeByte(0xFF00+uint16(c.C), c.A) }
func (c *CPU) ldA_MemC()   { c.A = c.readByte(0xFF00 + uint16(c.C)) }

func (c *CPU) ldSP_HL() {
	c.tick(4)
	c.SP = c.HL()
}

func (c *CPU) push16(index uint8) {
	var v uint16
	switch index & 0x3 {
	case 0:
		v = c.BC()
	case 1:
		v = c.DE()
	case 2:
		v = c.HL()
	default:
		v = c.AF()
	}
	c.tick(4)
	c.push(v)
}

func (c *CPU) pop16(index uint8) {
	v := c.pop()
	switch index & 0x3 {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SetAF(v)
	}
}
