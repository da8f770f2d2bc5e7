package cpu

// Flag bit positions within the F register. Only the upper nibble of F is
// meaningful; the lower nibble is permanently zero.
const (
	FlagZ uint8 = 1 << 7 // Zero
	FlagN uint8 = 1 << 6 // Subtract
	FlagH uint8 = 1 << 5 // Half-carry
	FlagC uint8 = 1 << 4 // Carry
)

// flagMask clears the four unused low bits of F when SetAF writes it.
const flagMask = 0xF0

// Registers holds the SM83 register file: eight 8-bit registers and the two
// 16-bit PC/SP registers. AF, BC, DE and HL are views over register pairs
// rather than separate storage.
type Registers struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8
	SP   uint16
	PC   uint16
}

// postBootState is the DMG register state immediately after the boot ROM
// hands off control, used both by NewRegisters and by CPU.Reset.
var postBootState = Registers{
	A: 0x01, F: 0xB0,
	B: 0x00, C: 0x13,
	D: 0x00, E: 0xD8,
	H: 0x01, L: 0x4D,
	SP: 0xFFFE,
	PC: 0x0100,
}

// NewRegisters returns a register file initialized to the DMG post-boot
// state.
func NewRegisters() *Registers {
	r := postBootState
	return &r
}

// Reset restores the register file to the DMG post-boot state.
func (r *Registers) Reset() {
	*r = postBootState
}

// AF returns the combined 16-bit AF pair (A high, F low).
func (r *Registers) AF() uint16 { return uint16(r.A)<<8 | uint16(r.F) }

// BC returns the combined 16-bit BC pair.
func (r *Registers) BC() uint16 { return uint16(r.B)<<8 | uint16(r.C) }

// DE returns the combined 16-bit DE pair.
func (r *Registers) DE() uint16 { return uint16(r.D)<<8 | uint16(r.E) }

// HL returns the combined 16-bit HL pair.
func (r *Registers) HL() uint16 { return uint16(r.H)<<8 | uint16(r.L) }

// SetAF stores a 16-bit value into A and F, masking the unused low nibble
// of F to zero. This is the sole write path POP AF must go through.
func (r *Registers) SetAF(value uint16) {
	r.A = uint8(value >> 8)
	r.F = uint8(value) & flagMask
}

// SetBC stores a 16-bit value into B and C.
func (r *Registers) SetBC(value uint16) {
	r.B = uint8(value >> 8)
	r.C = uint8(value)
}

// SetDE stores a 16-bit value into D and E.
func (r *Registers) SetDE(value uint16) {
	r.D = uint8(value >> 8)
	r.E = uint8(value)
}

// SetHL stores a 16-bit value into H and L.
func (r *Registers) SetHL(value uint16) {
	r.H = uint8(value >> 8)
	r.L = uint8(value)
}

// GetFlag reports whether the given flag bit is set.
func (r *Registers) GetFlag(flag uint8) bool { return r.F&flag != 0 }

// SetFlag sets a flag bit without disturbing the others.
func (r *Registers) SetFlag(flag uint8) { r.F |= flag }

// ClearFlag clears a flag bit without disturbing the others.
func (r *Registers) ClearFlag(flag uint8) { r.F &^= flag }

// SetFlagTo sets or clears a flag bit based on a boolean.
func (r *Registers) SetFlagTo(flag uint8, value bool) {
	if value {
		r.SetFlag(flag)
	} else {
		r.ClearFlag(flag)
	}
}

// ZeroFlag reports the state of the Z flag.
func (r *Registers) ZeroFlag() bool { return r.GetFlag(FlagZ) }

// SubtractFlag reports the state of the N flag.
func (r *Registers) SubtractFlag() bool { return r.GetFlag(FlagN) }

// HalfCarryFlag reports the state of the H flag.
func (r *Registers) HalfCarryFlag() bool { return r.GetFlag(FlagH) }

// CarryFlag reports the state of the C flag.
func (r *Registers) CarryFlag() bool { return r.GetFlag(FlagC) }
