package dac

import (
	"encoding/binary"
)

// BlockSize is the size of the DAC register block in bytes.
const BlockSize = 0x10

// Register offsets within the block. Layout per the RA6M3 hardware manual,
// section 48.2. DAADUSR lives with the block here even though the hardware
// places it in the ADC unit; it is only ever touched by this driver.
const (
	regDADR0    = 0x00 // D/A data register 0 (16 bit)
	regDADR1    = 0x02 // D/A data register 1 (16 bit)
	regDACR     = 0x04 // D/A control register
	regDADPR    = 0x05 // D/A data register format select
	regDAADSCR  = 0x06 // D/A A/D synchronous start control
	regDAVREFCR = 0x07 // D/A reference voltage select
	regDAAMPCR  = 0x08 // D/A output amplifier control
	regDAASWCR  = 0x09 // D/A amplifier stabilization wait control
	regDAPC     = 0x0a // D/A charge pump control
	regDAADUSR  = 0x0c // D/A A/D synchronous unit select (shared)
)

// Bit positions and masks. Channel 0 uses bit 6, channel 1 bit 7 in DACR,
// DAAMPCR and DAASWCR.
const (
	channelBitBase = 6

	dadprDPSELBit    = 7    // 0: right justified, 1: left justified
	daadscrDAADSTBit = 7    // synchronous conversion enable
	daadusrUnit1     = 0x02 // select ADC unit 1
	davrefcrAVCC0    = 0x01 // AVCC0/AVSS0 reference
	dapcPUMPEN       = 0x01 // charge pump enable

	adcUnit1 = 0x01
)

func outputEnable(channel uint8) uint8 {
	return 1 << (channelBitBase + channel)
}

func amplifierControl(channel uint8) uint8 {
	return 1 << (channelBitBase + channel)
}

func stabilizationWait(channel uint8) uint8 {
	return 1 << (channelBitBase + channel)
}

func dataRegister(channel uint8) uint8 {
	if channel == 0 {
		return regDADR0
	}
	return regDADR1
}

// Registers is byte-level access to the DAC register block.
//
// One Registers value stands for one peripheral instance and is shared by
// all of its channels. Accesses are infallible, matching memory-mapped
// semantics; backends that can fail on the wire record a sticky error
// instead (see package probe).
//
// Read-modify-write sequences on shared registers must be serialized by the
// caller; the Channel operations do this with the configured critical
// section.
type Registers interface {
	Read8(off uint8) uint8
	Write8(off uint8, v uint8)
	Read16(off uint8) uint16
	Write16(off uint8, v uint16)
}

// MemRegisters is a register block backed by process memory.
//
// It is used for tests and host-side simulation of the peripheral.
type MemRegisters struct {
	b [BlockSize]byte
}

// NewMemRegisters returns a zeroed register block, the reset state of the
// peripheral.
func NewMemRegisters() *MemRegisters {
	return &MemRegisters{}
}

func (m *MemRegisters) Read8(off uint8) uint8 {
	return m.b[off]
}

func (m *MemRegisters) Write8(off uint8, v uint8) {
	m.b[off] = v
}

func (m *MemRegisters) Read16(off uint8) uint16 {
	return binary.LittleEndian.Uint16(m.b[off:])
}

func (m *MemRegisters) Write16(off uint8, v uint16) {
	binary.LittleEndian.PutUint16(m.b[off:], v)
}
