package trace_test

import (
	"testing"

	"github.com/richardwooding/sm83/internal/cpu"
	"github.com/richardwooding/sm83/internal/trace"
)

type fakeMemory struct {
	data [0x10000]uint8
}

func (m *fakeMemory) Read(addr uint16) uint8         { return m.data[addr] }
func (m *fakeMemory) Write(addr uint16, value uint8) { m.data[addr] = value }

func TestLineFormat(t *testing.T) {
	mem := &fakeMemory{}
	c := cpu.New(mem)

	mem.data[0x0100] = 0xC3
	mem.data[0x0101] = 0x50
	mem.data[0x0102] = 0x01
	mem.data[0x0103] = 0x00

	want := "A:01 F:B0 B:00 C:13 D:00 E:D8 H:01 L:4D SP:FFFE PC:0100 PCMEM:C3,50,01,00"
	if got := trace.Line(c, mem); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestLinePCMEMWraps(t *testing.T) {
	mem := &fakeMemory{}
	c := cpu.New(mem)
	c.Registers.PC = 0xFFFE
	mem.data[0xFFFE] = 0x11
	mem.data[0xFFFF] = 0x22
	mem.data[0x0000] = 0x33
	mem.data[0x0001] = 0x44

	want := "A:01 F:B0 B:00 C:13 D:00 E:D8 H:01 L:4D SP:FFFE PC:FFFE PCMEM:11,22,33,44"
	if got := trace.Line(c, mem); got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}
