package cpu

// execute dispatches a primary (non-CB) opcode and returns the number of
// cycles taken. The eleven bytes with no defined SM83 behavior report
// IllegalOpcodeError instead of executing.
//
//nolint:gocognit,gocyclo // high complexity is inherent to opcode decoding (256 instructions)
func (c *CPU) execute(opcode uint8) (uint8, error) {
	switch opcode {
	// 0x00-0x0F
	case 0x00: // NOP
		return 4, nil
	case 0x01: // LD BC, nn
		c.Registers.SetBC(c.fetchWord())
		return 12, nil
	case 0x02: // LD (BC), A
		c.Memory.Write(c.Registers.BC(), c.Registers.A)
		return 8, nil
	case 0x03: // INC BC
		c.Registers.SetBC(c.Registers.BC() + 1)
		return 8, nil
	case 0x04: // INC B
		c.Registers.B = c.inc8(c.Registers.B)
		return 4, nil
	case 0x05: // DEC B
		c.Registers.B = c.dec8(c.Registers.B)
		return 4, nil
	case 0x06: // LD B, n
		c.Registers.B = c.fetchByte()
		return 8, nil
	case 0x07: // RLCA
		c.Registers.A = c.rlc(c.Registers.A)
		c.Registers.ClearFlag(FlagZ) // RLCA always clears Z
		return 4, nil
	case 0x08: // LD (nn), SP
		addr := c.fetchWord()
		c.Memory.Write(addr, uint8(c.Registers.SP))
		c.Memory.Write(addr+1, uint8(c.Registers.SP>>8))
		return 20, nil
	case 0x09: // ADD HL, BC
		c.Registers.SetHL(c.add16(c.Registers.HL(), c.Registers.BC()))
		return 8, nil
	case 0x0A: // LD A, (BC)
		c.Registers.A = c.Memory.Read(c.Registers.BC())
		return 8, nil
	case 0x0B: // DEC BC
		c.Registers.SetBC(c.Registers.BC() - 1)
		return 8, nil
	case 0x0C: // INC C
		c.Registers.C = c.inc8(c.Registers.C)
		return 4, nil
	case 0x0D: // DEC C
		c.Registers.C = c.dec8(c.Registers.C)
		return 4, nil
	case 0x0E: // LD C, n
		c.Registers.C = c.fetchByte()
		return 8, nil
	case 0x0F: // RRCA
		c.Registers.A = c.rrc(c.Registers.A)
		c.Registers.ClearFlag(FlagZ) // RRCA always clears Z
		return 4, nil

	// 0x10-0x1F
	case 0x10: // STOP
		c.fetchByte() // STOP is 2 bytes; the second is always consumed
		return 4, nil
	case 0x11: // LD DE, nn
		c.Registers.SetDE(c.fetchWord())
		return 12, nil
	case 0x12: // LD (DE), A
		c.Memory.Write(c.Registers.DE(), c.Registers.A)
		return 8, nil
	case 0x13: // INC DE
		c.Registers.SetDE(c.Registers.DE() + 1)
		return 8, nil
	case 0x14: // INC D
		c.Registers.D = c.inc8(c.Registers.D)
		return 4, nil
	case 0x15: // DEC D
		c.Registers.D = c.dec8(c.Registers.D)
		return 4, nil
	case 0x16: // LD D, n
		c.Registers.D = c.fetchByte()
		return 8, nil
	case 0x17: // RLA
		c.Registers.A = c.rl(c.Registers.A)
		c.Registers.ClearFlag(FlagZ) // RLA always clears Z
		return 4, nil
	case 0x18: // JR n
		c.jumpRelative(c.fetchByte())
		return 12, nil
	case 0x19: // ADD HL, DE
		c.Registers.SetHL(c.add16(c.Registers.HL(), c.Registers.DE()))
		return 8, nil
	case 0x1A: // LD A, (DE)
		c.Registers.A = c.Memory.Read(c.Registers.DE())
		return 8, nil
	case 0x1B: // DEC DE
		c.Registers.SetDE(c.Registers.DE() - 1)
		return 8, nil
	case 0x1C: // INC E
		c.Registers.E = c.inc8(c.Registers.E)
		return 4, nil
	case 0x1D: // DEC E
		c.Registers.E = c.dec8(c.Registers.E)
		return 4, nil
	case 0x1E: // LD E, n
		c.Registers.E = c.fetchByte()
		return 8, nil
	case 0x1F: // RRA
		c.Registers.A = c.rr(c.Registers.A)
		c.Registers.ClearFlag(FlagZ) // RRA always clears Z
		return 4, nil

	// 0x20-0x2F
	case 0x20: // JR NZ, n
		return c.jumpRelativeIf(0), nil
	case 0x21: // LD HL, nn
		c.Registers.SetHL(c.fetchWord())
		return 12, nil
	case 0x22: // LD (HL+), A
		c.Memory.Write(c.Registers.HL(), c.Registers.A)
		c.Registers.SetHL(c.Registers.HL() + 1)
		return 8, nil
	case 0x23: // INC HL
		c.Registers.SetHL(c.Registers.HL() + 1)
		return 8, nil
	case 0x24: // INC H
		c.Registers.H = c.inc8(c.Registers.H)
		return 4, nil
	case 0x25: // DEC H
		c.Registers.H = c.dec8(c.Registers.H)
		return 4, nil
	case 0x26: // LD H, n
		c.Registers.H = c.fetchByte()
		return 8, nil
	case 0x27: // DAA
		c.daa()
		return 4, nil
	case 0x28: // JR Z, n
		return c.jumpRelativeIf(1), nil
	case 0x29: // ADD HL, HL
		c.Registers.SetHL(c.add16(c.Registers.HL(), c.Registers.HL()))
		return 8, nil
	case 0x2A: // LD A, (HL+)
		c.Registers.A = c.Memory.Read(c.Registers.HL())
		c.Registers.SetHL(c.Registers.HL() + 1)
		return 8, nil
	case 0x2B: // DEC HL
		c.Registers.SetHL(c.Registers.HL() - 1)
		return 8, nil
	case 0x2C: // INC L
		c.Registers.L = c.inc8(c.Registers.L)
		return 4, nil
	case 0x2D: // DEC L
		c.Registers.L = c.dec8(c.Registers.L)
		return 4, nil
	case 0x2E: // LD L, n
		c.Registers.L = c.fetchByte()
		return 8, nil
	case 0x2F: // CPL
		c.Registers.A = ^c.Registers.A
		c.Registers.SetFlag(FlagN)
		c.Registers.SetFlag(FlagH)
		return 4, nil

	// 0x30-0x3F
	case 0x30: // JR NC, n
		return c.jumpRelativeIf(2), nil
	case 0x31: // LD SP, nn
		c.Registers.SP = c.fetchWord()
		return 12, nil
	case 0x32: // LD (HL-), A
		c.Memory.Write(c.Registers.HL(), c.Registers.A)
		c.Registers.SetHL(c.Registers.HL() - 1)
		return 8, nil
	case 0x33: // INC SP
		c.Registers.SP++
		return 8, nil
	case 0x34: // INC (HL)
		addr := c.Registers.HL()
		c.Memory.Write(addr, c.inc8(c.Memory.Read(addr)))
		return 12, nil
	case 0x35: // DEC (HL)
		addr := c.Registers.HL()
		c.Memory.Write(addr, c.dec8(c.Memory.Read(addr)))
		return 12, nil
	case 0x36: // LD (HL), n
		c.Memory.Write(c.Registers.HL(), c.fetchByte())
		return 12, nil
	case 0x37: // SCF
		c.Registers.ClearFlag(FlagN)
		c.Registers.ClearFlag(FlagH)
		c.Registers.SetFlag(FlagC)
		return 4, nil
	case 0x38: // JR C, n
		return c.jumpRelativeIf(3), nil
	case 0x39: // ADD HL, SP
		c.Registers.SetHL(c.add16(c.Registers.HL(), c.Registers.SP))
		return 8, nil
	case 0x3A: // LD A, (HL-)
		c.Registers.A = c.Memory.Read(c.Registers.HL())
		c.Registers.SetHL(c.Registers.HL() - 1)
		return 8, nil
	case 0x3B: // DEC SP
		c.Registers.SP--
		return 8, nil
	case 0x3C: // INC A
		c.Registers.A = c.inc8(c.Registers.A)
		return 4, nil
	case 0x3D: // DEC A
		c.Registers.A = c.dec8(c.Registers.A)
		return 4, nil
	case 0x3E: // LD A, n
		c.Registers.A = c.fetchByte()
		return 8, nil
	case 0x3F: // CCF
		c.Registers.ClearFlag(FlagN)
		c.Registers.ClearFlag(FlagH)
		c.Registers.SetFlagTo(FlagC, !c.Registers.CarryFlag())
		return 4, nil

	// 0x40-0x7F: 8-bit register/(HL) loads, plus HALT at 0x76
	case 0x40, 0x41, 0x42, 0x43, 0x44, 0x45, 0x46, 0x47,
		0x48, 0x49, 0x4A, 0x4B, 0x4C, 0x4D, 0x4E, 0x4F,
		0x50, 0x51, 0x52, 0x53, 0x54, 0x55, 0x56, 0x57,
		0x58, 0x59, 0x5A, 0x5B, 0x5C, 0x5D, 0x5E, 0x5F,
		0x60, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67,
		0x68, 0x69, 0x6A, 0x6B, 0x6C, 0x6D, 0x6E, 0x6F,
		0x70, 0x71, 0x72, 0x73, 0x74, 0x75, 0x77,
		0x78, 0x79, 0x7A, 0x7B, 0x7C, 0x7D, 0x7E, 0x7F:
		return c.executeLoadRR(opcode), nil
	case 0x76: // HALT
		c.halted = true
		return 4, nil

	// 0x80-0x8F: ADD A, r / ADC A, r
	case 0x80, 0x81, 0x82, 0x83, 0x84, 0x85, 0x86, 0x87:
		c.Registers.A = c.add8(c.Registers.A, c.operand8(opcode), false)
		return c.regOrHLCycles(opcode), nil
	case 0x88, 0x89, 0x8A, 0x8B, 0x8C, 0x8D, 0x8E, 0x8F:
		c.Registers.A = c.add8(c.Registers.A, c.operand8(opcode), true)
		return c.regOrHLCycles(opcode), nil

	// 0x90-0x9F: SUB r / SBC A, r
	case 0x90, 0x91, 0x92, 0x93, 0x94, 0x95, 0x96, 0x97:
		c.Registers.A = c.sub8(c.Registers.A, c.operand8(opcode), false)
		return c.regOrHLCycles(opcode), nil
	case 0x98, 0x99, 0x9A, 0x9B, 0x9C, 0x9D, 0x9E, 0x9F:
		c.Registers.A = c.sub8(c.Registers.A, c.operand8(opcode), true)
		return c.regOrHLCycles(opcode), nil

	// 0xA0-0xAF: AND r / XOR r
	case 0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5, 0xA6, 0xA7:
		c.Registers.A = c.and(c.operand8(opcode))
		return c.regOrHLCycles(opcode), nil
	case 0xA8, 0xA9, 0xAA, 0xAB, 0xAC, 0xAD, 0xAE, 0xAF:
		c.Registers.A = c.xor(c.operand8(opcode))
		return c.regOrHLCycles(opcode), nil

	// 0xB0-0xBF: OR r / CP r
	case 0xB0, 0xB1, 0xB2, 0xB3, 0xB4, 0xB5, 0xB6, 0xB7:
		c.Registers.A = c.or(c.operand8(opcode))
		return c.regOrHLCycles(opcode), nil
	case 0xB8, 0xB9, 0xBA, 0xBB, 0xBC, 0xBD, 0xBE, 0xBF:
		c.cp(c.operand8(opcode))
		return c.regOrHLCycles(opcode), nil

	// 0xC0-0xCF: returns, pops, jumps, calls
	case 0xC0: // RET NZ
		return c.returnIf(0), nil
	case 0xC1: // POP BC
		c.Registers.SetBC(c.pop())
		return 12, nil
	case 0xC2: // JP NZ, nn
		return c.jumpIf(0), nil
	case 0xC3: // JP nn
		c.Registers.PC = c.fetchWord()
		return 16, nil
	case 0xC4: // CALL NZ, nn
		return c.callIf(0), nil
	case 0xC5: // PUSH BC
		c.push(c.Registers.BC())
		return 16, nil
	case 0xC6: // ADD A, n
		c.Registers.A = c.add8(c.Registers.A, c.fetchByte(), false)
		return 8, nil
	case 0xC7: // RST 00H
		return c.restart(0x00), nil
	case 0xC8: // RET Z
		return c.returnIf(1), nil
	case 0xC9: // RET
		c.Registers.PC = c.pop()
		return 16, nil
	case 0xCA: // JP Z, nn
		return c.jumpIf(1), nil
	case 0xCC: // CALL Z, nn
		return c.callIf(1), nil
	case 0xCD: // CALL nn
		addr := c.fetchWord()
		c.push(c.Registers.PC)
		c.Registers.PC = addr
		return 24, nil
	case 0xCE: // ADC A, n
		c.Registers.A = c.add8(c.Registers.A, c.fetchByte(), true)
		return 8, nil
	case 0xCF: // RST 08H
		return c.restart(0x08), nil

	// 0xD0-0xDF
	case 0xD0: // RET NC
		return c.returnIf(2), nil
	case 0xD1: // POP DE
		c.Registers.SetDE(c.pop())
		return 12, nil
	case 0xD2: // JP NC, nn
		return c.jumpIf(2), nil
	case 0xD4: // CALL NC, nn
		return c.callIf(2), nil
	case 0xD5: // PUSH DE
		c.push(c.Registers.DE())
		return 16, nil
	case 0xD6: // SUB n
		c.Registers.A = c.sub8(c.Registers.A, c.fetchByte(), false)
		return 8, nil
	case 0xD7: // RST 10H
		return c.restart(0x10), nil
	case 0xD8: // RET C
		return c.returnIf(3), nil
	case 0xD9: // RETI
		c.Registers.PC = c.pop()
		c.IME = true
		return 16, nil
	case 0xDA: // JP C, nn
		return c.jumpIf(3), nil
	case 0xDC: // CALL C, nn
		return c.callIf(3), nil
	case 0xDE: // SBC A, n
		c.Registers.A = c.sub8(c.Registers.A, c.fetchByte(), true)
		return 8, nil
	case 0xDF: // RST 18H
		return c.restart(0x18), nil

	// 0xE0-0xEF
	case 0xE0: // LDH (n), A
		c.Memory.Write(0xFF00+uint16(c.fetchByte()), c.Registers.A)
		return 12, nil
	case 0xE1: // POP HL
		c.Registers.SetHL(c.pop())
		return 12, nil
	case 0xE2: // LD (C), A
		c.Memory.Write(0xFF00+uint16(c.Registers.C), c.Registers.A)
		return 8, nil
	case 0xE5: // PUSH HL
		c.push(c.Registers.HL())
		return 16, nil
	case 0xE6: // AND n
		c.Registers.A = c.and(c.fetchByte())
		return 8, nil
	case 0xE7: // RST 20H
		return c.restart(0x20), nil
	case 0xE8: // ADD SP, n
		c.Registers.SP = c.addSPSigned(c.fetchByte())
		return 16, nil
	case 0xE9: // JP (HL)
		c.Registers.PC = c.Registers.HL()
		return 4, nil
	case 0xEA: // LD (nn), A
		c.Memory.Write(c.fetchWord(), c.Registers.A)
		return 16, nil
	case 0xEE: // XOR n
		c.Registers.A = c.xor(c.fetchByte())
		return 8, nil
	case 0xEF: // RST 28H
		return c.restart(0x28), nil

	// 0xF0-0xFF
	case 0xF0: // LDH A, (n)
		c.Registers.A = c.Memory.Read(0xFF00 + uint16(c.fetchByte()))
		return 12, nil
	case 0xF1: // POP AF
		c.Registers.SetAF(c.pop())
		return 12, nil
	case 0xF2: // LD A, (C)
		c.Registers.A = c.Memory.Read(0xFF00 + uint16(c.Registers.C))
		return 8, nil
	case 0xF3: // DI
		c.IME = false
		c.pendingIME = false
		return 4, nil
	case 0xF5: // PUSH AF
		c.push(c.Registers.AF())
		return 16, nil
	case 0xF6: // OR n
		c.Registers.A = c.or(c.fetchByte())
		return 8, nil
	case 0xF7: // RST 30H
		return c.restart(0x30), nil
	case 0xF8: // LD HL, SP+n
		c.Registers.SetHL(c.addSPSigned(c.fetchByte()))
		return 12, nil
	case 0xF9: // LD SP, HL
		c.Registers.SP = c.Registers.HL()
		return 8, nil
	case 0xFA: // LD A, (nn)
		c.Registers.A = c.Memory.Read(c.fetchWord())
		return 16, nil
	case 0xFB: // EI
		c.pendingIME = true
		return 4, nil
	case 0xFE: // CP n
		c.cp(c.fetchByte())
		return 8, nil
	case 0xFF: // RST 38H
		return c.restart(0x38), nil

	default: // 0xD3 0xDB 0xDD 0xE3 0xE4 0xEB 0xEC 0xED 0xF4 0xFC 0xFD and CB-reaches-execute
		return 0, &IllegalOpcodeError{Opcode: opcode, PC: c.Registers.PC - 1}
	}
}

// registers8 maps the low 3 bits of an 0x40-0xBF opcode to the addressed
// 8-bit register, in the standard B,C,D,E,H,L,(HL),A operand order. Index 6
// ((HL)) has no register behind it; callers check for that case first.
func (c *CPU) registers8(index uint8) *uint8 {
	switch index & 0x07 {
	case 0:
		return &c.Registers.B
	case 1:
		return &c.Registers.C
	case 2:
		return &c.Registers.D
	case 3:
		return &c.Registers.E
	case 4:
		return &c.Registers.H
	case 5:
		return &c.Registers.L
	default: // 7
		return &c.Registers.A
	}
}

// operand8 reads the ALU right-hand operand for an 0x80-0xBF opcode: the
// register selected by the low 3 bits, or (HL) when those bits are 6.
func (c *CPU) operand8(opcode uint8) uint8 {
	if opcode&0x07 == 6 {
		return c.Memory.Read(c.Registers.HL())
	}
	return *c.registers8(opcode)
}

// regOrHLCycles returns the cycle count for an 0x80-0xBF opcode: 8 when the
// low 3 bits select (HL), 4 otherwise.
func (c *CPU) regOrHLCycles(opcode uint8) uint8 {
	if opcode&0x07 == 6 {
		return 8
	}
	return 4
}

// executeLoadRR handles the 0x40-0x7F block of 8-bit register/(HL) loads.
// HALT (0x76) is intercepted by the caller before reaching here.
func (c *CPU) executeLoadRR(opcode uint8) uint8 {
	dst := (opcode >> 3) & 0x07
	src := opcode & 0x07

	switch {
	case src == 6: // LD r, (HL)
		*c.registers8(dst) = c.Memory.Read(c.Registers.HL())
		return 8
	case dst == 6: // LD (HL), r
		c.Memory.Write(c.Registers.HL(), *c.registers8(src))
		return 8
	default: // LD r, r'
		*c.registers8(dst) = *c.registers8(src)
		return 4
	}
}

// jumpRelative applies a signed 8-bit displacement to PC.
func (c *CPU) jumpRelative(offset uint8) {
	c.Registers.PC = uint16(int32(c.Registers.PC) + int32(int8(offset)))
}

// jumpRelativeIf fetches the JR displacement, always consuming the byte,
// and applies it only if the branch condition holds.
func (c *CPU) jumpRelativeIf(cond uint8) uint8 {
	offset := c.fetchByte()
	if c.condition(cond) {
		c.jumpRelative(offset)
		return 12
	}
	return 8
}

// jumpIf fetches the JP target, always consuming both bytes, and jumps
// only if the branch condition holds.
func (c *CPU) jumpIf(cond uint8) uint8 {
	addr := c.fetchWord()
	if c.condition(cond) {
		c.Registers.PC = addr
		return 16
	}
	return 12
}

// callIf fetches the CALL target, always consuming both bytes, and pushes
// plus jumps only if the branch condition holds.
func (c *CPU) callIf(cond uint8) uint8 {
	addr := c.fetchWord()
	if c.condition(cond) {
		c.push(c.Registers.PC)
		c.Registers.PC = addr
		return 24
	}
	return 12
}

// returnIf pops and jumps to the return address only if the branch
// condition holds.
func (c *CPU) returnIf(cond uint8) uint8 {
	if c.condition(cond) {
		c.Registers.PC = c.pop()
		return 20
	}
	return 8
}

// restart pushes PC and jumps to one of the eight fixed RST vectors.
func (c *CPU) restart(vector uint16) uint8 {
	c.push(c.Registers.PC)
	c.Registers.PC = vector
	return 16
}
