package probe

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ksekimoto/fsp/dac"
)

// loopMonitor is an in-process monitor serving frames from a simulated
// register block.
type loopMonitor struct {
	regs *dac.MemRegisters
	out  bytes.Buffer
}

func (m *loopMonitor) Write(b []byte) (int, error) {
	op, addr, payload, err := decodeFrame(b)
	if err != nil {
		m.out.Write(encodeResponse(statusParse, nil))
		return len(b), nil
	}

	switch {
	case op == opRead8 && len(payload) == 0:
		m.out.Write(encodeResponse(statusOK, []byte{m.regs.Read8(uint8(addr))}))
	case op == opRead16 && len(payload) == 0:
		v := m.regs.Read16(uint8(addr))
		m.out.Write(encodeResponse(statusOK, []byte{uint8(v), uint8(v >> 8)}))
	case op == opWrite8 && len(payload) == 1:
		m.regs.Write8(uint8(addr), payload[0])
		m.out.Write(encodeResponse(statusOK, nil))
	case op == opWrite16 && len(payload) == 2:
		m.regs.Write16(uint8(addr), uint16(payload[0])|uint16(payload[1])<<8)
		m.out.Write(encodeResponse(statusOK, nil))
	default:
		m.out.Write(encodeResponse(statusExecution, nil))
	}
	return len(b), nil
}

func (m *loopMonitor) Read(b []byte) (int, error) {
	return m.out.Read(b)
}

func (m *loopMonitor) Close() error {
	return nil
}

func TestProbeRegisterAccess(t *testing.T) {
	mon := &loopMonitor{regs: dac.NewMemRegisters()}
	p := New(mon, Config{})

	if err := p.Write16(0x0000, 0x0123); err != nil {
		t.Fatal(err)
	}
	if v, err := p.Read16(0x0000); err != nil || v != 0x0123 {
		t.Fatalf("Read16 = %#04x, %v", v, err)
	}

	if err := p.Write8(0x0004, 0x40); err != nil {
		t.Fatal(err)
	}
	if v, err := p.Read8(0x0004); err != nil || v != 0x40 {
		t.Fatalf("Read8 = %#02x, %v", v, err)
	}
}

func TestChannelOverProbe(t *testing.T) {
	mon := &loopMonitor{regs: dac.NewMemRegisters()}
	regs := NewRegs(New(mon, Config{}))

	var c dac.Channel
	if err := c.Open(dac.ConfigRA6M3Default(regs)); err != nil {
		t.Fatal(err)
	}
	if err := c.Write(0x0800); err != nil {
		t.Fatal(err)
	}
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}

	if got := mon.regs.Read16(0x00); got != 0x0800 {
		t.Errorf("data register = %#04x", got)
	}
	if mon.regs.Read8(0x04)&0x40 == 0 {
		t.Error("output enable bit not set")
	}
	if err := regs.Err(); err != nil {
		t.Errorf("transport error: %v", err)
	}
}

type brokenTransport struct{}

func (brokenTransport) Write(b []byte) (int, error) { return 0, errors.New("probe: wire fault") }
func (brokenTransport) Read(b []byte) (int, error)  { return 0, errors.New("probe: wire fault") }
func (brokenTransport) Close() error                { return nil }

func TestRegsStickyError(t *testing.T) {
	regs := NewRegs(New(brokenTransport{}, Config{}))

	if v := regs.Read8(0x04); v != 0 {
		t.Errorf("read returned %#02x", v)
	}
	if regs.Err() == nil {
		t.Fatal("transport error not recorded")
	}
	first := regs.Err()

	// Later accesses are dropped and the first error sticks.
	regs.Write16(0x00, 0xffff)
	if regs.Err() != first {
		t.Error("sticky error replaced")
	}
}
