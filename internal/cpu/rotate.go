package cpu

// The accumulator rotates (RLCA/RRCA/RLA/RRA) always clear Z, unlike their
// CB-prefixed r8 counterparts which set it from the result.

func (c *CPU) rlca() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | boolFlag(carry, 1)
	c.setF(false, false, false, carry)
}

func (c *CPU) rrca() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | boolFlag(carry, 0x80)
	c.setF(false, false, false, carry)
}

func (c *CPU) rla() {
	carryIn := boolFlag(c.flag(FlagC), 1)
	carryOut := c.A&0x80 != 0
	c.A = c.A<<1 | carryIn
	c.setF(false, false, false, carryOut)
}

func (c *CPU) rra() {
	carryIn := boolFlag(c.flag(FlagC), 0x80)
	carryOut := c.A&0x01 != 0
	c.A = c.A>>1 | carryIn
	c.setF(false, false, false, carryOut)
}

func (c *CPU) rlcR8(index uint8) {
	v := c.operand8(index)
	carry := v&0x80 != 0
	result := v<<1 | boolFlag(carry, 1)
	c.setOperand8(index, result)
	c.setF(result == 0, false, false, carry)
}

func (c *CPU) rrcR8(index uint8) {
	v := c.operand8(index)
	carry := v&0x01 != 0
	result := v>>1 | boolFlag(carry, 0x80)
	c.setOperand8(index, result)
	c.setF(result == 0, false, false, carry)
}

func (c *CPU) rlR8(index uint8) {
	v := c.operand8(index)
	carryIn := boolFlag(c.flag(FlagC), 1)
	carryOut := v&0x80 != 0
	result := v<<1 | carryIn
	c.setOperand8(index, result)
	c.setF(result == 0, false, false, carryOut)
}

func (c *CPU) rrR8(index uint8) {
	v := c.operand8(index)
	carryIn := boolFlag(c.flag(FlagC), 0x80)
	carryOut := v&0x01 != 0
	result := v>>1 | carryIn
	c.setOperand8(index, result)
	c.setF(result == 0, false, false, carryOut)
}
