package dac

import (
	"encoding/binary"
	"fmt"

	"periph.io/x/host/v3/pmem"
)

// MappedRegisters accesses a physical register block through /dev/mem.
//
// This is for host-side bring-up on parts whose peripheral bus is visible
// to the operating system. It requires root.
type MappedRegisters struct {
	view *pmem.View
	b    []byte
}

// NewMappedRegisters maps the register block at the given physical address.
func NewMappedRegisters(base uint64) (*MappedRegisters, error) {
	v, err := pmem.Map(base, BlockSize)
	if err != nil {
		return nil, fmt.Errorf("dac: failed to map register block: %w", err)
	}
	return &MappedRegisters{view: v, b: v.Bytes()}, nil
}

func (m *MappedRegisters) Read8(off uint8) uint8 {
	return m.b[off]
}

func (m *MappedRegisters) Write8(off uint8, v uint8) {
	m.b[off] = v
}

func (m *MappedRegisters) Read16(off uint8) uint16 {
	return binary.LittleEndian.Uint16(m.b[off:])
}

func (m *MappedRegisters) Write16(off uint8, v uint16) {
	binary.LittleEndian.PutUint16(m.b[off:], v)
}

// Close unmaps the register block.
func (m *MappedRegisters) Close() error {
	return m.view.Close()
}
