// Package trace renders the bit-exact per-step diagnostic log line an
// embedding host can use to compare this core's execution against a
// known-good reference trace.
package trace

import (
	"fmt"

	"github.com/richardwooding/sm83/internal/cpu"
)

// Memory is the minimal read-only view trace needs of the bus; cpu.Memory
// satisfies it.
type Memory interface {
	Read(addr uint16) uint8
}

// Line renders one diagnostic line for the given CPU and memory, in the
// exact format `A:HH F:HH B:HH C:HH D:HH E:HH H:HH L:HH SP:HHHH PC:HHHH
// PCMEM:HH,HH,HH,HH`, where the four PCMEM bytes are read from PC, PC+1,
// PC+2 and PC+3 (wrapping at the top of the address space). Call it
// immediately before each Step to capture the state instruction fetch is
// about to read.
func Line(c *cpu.CPU, mem Memory) string {
	r := c.GetRegisters()
	pc := r.PC

	return fmt.Sprintf(
		"A:%02X F:%02X B:%02X C:%02X D:%02X E:%02X H:%02X L:%02X SP:%04X PC:%04X PCMEM:%02X,%02X,%02X,%02X",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L, r.SP, pc,
		mem.Read(pc), mem.Read(pc+1), mem.Read(pc+2), mem.Read(pc+3),
	)
}
