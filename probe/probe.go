// Package probe accesses peripheral registers through a debug probe.
//
// The probe side runs a small monitor that accepts fixed-format command
// frames and answers with a status and the requested data. Frames travel
// over USB HID or a serial line. This is the usual bring-up path when the
// firmware itself is not running yet.
package probe

import (
	"encoding/binary"
	"errors"
	"io"

	"github.com/ksekimoto/fsp/dac"
)

// Config carries the probe connection parameters.
type Config struct {
	// Retries is the number of connect attempts before giving up.
	Retries uint64
	// Debug is used for frame trace output.
	Debug dac.Logger
}

// Probe talks the monitor protocol over a transport.
//
// A Probe is not safe for concurrent use; the monitor handles one command
// at a time.
type Probe struct {
	t   io.ReadWriteCloser
	buf [maxFrameSize]byte
	log dac.Logger
}

// New returns a probe speaking the monitor protocol over t.
func New(t io.ReadWriteCloser, cfg Config) *Probe {
	log := dac.Logger(nullLogger{})
	if cfg.Debug != nil {
		log = cfg.Debug
	}
	return &Probe{t: t, log: log}
}

type nullLogger struct{}

func (nullLogger) Printf(format string, args ...interface{}) {}

// Read8 reads a byte register at the given monitor address.
func (p *Probe) Read8(addr uint16) (uint8, error) {
	payload, err := p.roundTrip(opRead8, addr, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) != 1 {
		return 0, errFrameSize
	}
	return payload[0], nil
}

// Read16 reads a halfword register at the given monitor address.
func (p *Probe) Read16(addr uint16) (uint16, error) {
	payload, err := p.roundTrip(opRead16, addr, nil)
	if err != nil {
		return 0, err
	}
	if len(payload) != 2 {
		return 0, errFrameSize
	}
	return binary.LittleEndian.Uint16(payload), nil
}

// Write8 writes a byte register at the given monitor address.
func (p *Probe) Write8(addr uint16, v uint8) error {
	_, err := p.roundTrip(opWrite8, addr, []byte{v})
	return err
}

// Write16 writes a halfword register at the given monitor address.
func (p *Probe) Write16(addr uint16, v uint16) error {
	var payload [2]byte
	binary.LittleEndian.PutUint16(payload[:], v)
	_, err := p.roundTrip(opWrite16, addr, payload[:])
	return err
}

// Close closes the underlying transport.
func (p *Probe) Close() error {
	return p.t.Close()
}

func (p *Probe) roundTrip(op uint8, addr uint16, payload []byte) ([]byte, error) {
	frame, err := encodeFrame(op, addr, payload)
	if err != nil {
		return nil, err
	}

	p.log.Printf("probe: -> op=%#02x addr=%#04x", op, addr)
	if _, err := p.t.Write(frame); err != nil {
		return nil, err
	}

	resp, err := p.recv()
	if err != nil {
		return nil, err
	}
	return decodeResponse(resp)
}

func (p *Probe) recv() ([]byte, error) {
	if _, err := io.ReadFull(p.t, p.buf[:1]); err != nil {
		return nil, err
	}
	size := int(p.buf[0])
	if size < respOverhead || size > len(p.buf) {
		return nil, errFrameSize
	}
	if _, err := io.ReadFull(p.t, p.buf[1:size]); err != nil {
		return nil, err
	}
	return p.buf[:size], nil
}

// Regs adapts a Probe to the dac.Registers interface.
//
// Register access through dac.Registers is infallible to match
// memory-mapped semantics, so transport failures are recorded here and the
// first one is reported by Err. Reads after a failure return zero and
// writes are dropped.
type Regs struct {
	p   *Probe
	err error
}

var _ dac.Registers = (*Regs)(nil)

// NewRegs returns the probe's view of the DAC register block.
func NewRegs(p *Probe) *Regs {
	return &Regs{p: p}
}

// Err returns the first transport error encountered, if any.
func (r *Regs) Err() error {
	return r.err
}

func (r *Regs) Read8(off uint8) uint8 {
	if r.err != nil {
		return 0
	}
	v, err := r.p.Read8(uint16(off))
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

func (r *Regs) Write8(off uint8, v uint8) {
	if r.err != nil {
		return
	}
	if err := r.p.Write8(uint16(off), v); err != nil {
		r.err = err
	}
}

func (r *Regs) Read16(off uint8) uint16 {
	if r.err != nil {
		return 0
	}
	v, err := r.p.Read16(uint16(off))
	if err != nil {
		r.err = err
		return 0
	}
	return v
}

func (r *Regs) Write16(off uint8, v uint16) {
	if r.err != nil {
		return
	}
	if err := r.p.Write16(uint16(off), v); err != nil {
		r.err = err
	}
}

var errNoDevice = errors.New("probe: no device found")
