package dac

import "testing"

func TestMemRegisters(t *testing.T) {
	m := NewMemRegisters()

	m.Write16(regDADR0, 0x0123)
	if got := m.Read16(regDADR0); got != 0x0123 {
		t.Errorf("Read16 = %#04x", got)
	}
	// Halfwords are little endian, same as the peripheral bus.
	if got := m.Read8(regDADR0); got != 0x23 {
		t.Errorf("low byte = %#02x", got)
	}
	if got := m.Read8(regDADR0 + 1); got != 0x01 {
		t.Errorf("high byte = %#02x", got)
	}

	m.Write8(regDACR, 0xc0)
	if got := m.Read8(regDACR); got != 0xc0 {
		t.Errorf("Read8 = %#02x", got)
	}
}

func TestChannelBits(t *testing.T) {
	if outputEnable(0) != 0x40 || outputEnable(1) != 0x80 {
		t.Errorf("DAOE bits = %#02x, %#02x", outputEnable(0), outputEnable(1))
	}
	if dataRegister(0) != regDADR0 || dataRegister(1) != regDADR1 {
		t.Errorf("data registers = %#02x, %#02x", dataRegister(0), dataRegister(1))
	}
}
