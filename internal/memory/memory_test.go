package memory

import "testing"

func TestReadWrite(t *testing.T) {
	b := NewBus()

	b.Write(0xC000, 0x42)
	if got := b.Read(0xC000); got != 0x42 {
		t.Errorf("Read(0xC000) = %02X, want 0x42", got)
	}
}

func TestReset(t *testing.T) {
	b := NewBus()
	b.Write(0x1234, 0xFF)

	b.Reset()

	if got := b.Read(0x1234); got != 0 {
		t.Errorf("Read(0x1234) after Reset = %02X, want 0x00", got)
	}
}

func TestRequestInterrupt(t *testing.T) {
	b := NewBus()

	b.RequestInterrupt(1) // STAT
	b.RequestInterrupt(3) // Serial

	if got := b.Read(ifAddr); got != 1<<1|1<<3 {
		t.Errorf("IF = %02X, want %02X", got, uint8(1<<1|1<<3))
	}

	// A third request must OR in, not clobber, the bits already pending.
	b.RequestInterrupt(0)
	if got := b.Read(ifAddr); got != 1<<0|1<<1|1<<3 {
		t.Errorf("IF = %02X, want %02X", got, uint8(1<<0|1<<1|1<<3))
	}
}

func TestEnableInterrupts(t *testing.T) {
	b := NewBus()

	b.EnableInterrupts(1 << 0)
	b.EnableInterrupts(1 << 2)

	if got := b.Read(ieAddr); got != 1<<0|1<<2 {
		t.Errorf("IE = %02X, want %02X", got, uint8(1<<0|1<<2))
	}
}

func TestLoadROM(t *testing.T) {
	b := NewBus()
	b.LoadROM([]byte{0x00, 0xC3, 0x50, 0x01})

	if got := b.Read(0x0001); got != 0xC3 {
		t.Errorf("Read(0x0001) = %02X, want 0xC3", got)
	}
}
