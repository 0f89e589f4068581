// Package bsp defines the board support services the peripheral drivers
// depend on: module power gating, critical sections and software delays.
//
// The drivers only see these as interfaces. A real target supplies
// implementations backed by the clock controller and interrupt masking;
// the defaults here are suitable for host-side simulation and bring-up.
package bsp

import "time"

// Peripheral identifies a module for power gating.
type Peripheral int

const (
	PeripheralDAC Peripheral = iota
	PeripheralADC
)

func (p Peripheral) String() string {
	switch p {
	case PeripheralDAC:
		return "DAC"
	case PeripheralADC:
		return "ADC"
	default:
		return "unknown"
	}
}

// ModuleStarter enables the clock for a peripheral instance.
//
// Starting an already started module has no effect.
type ModuleStarter interface {
	ModuleStart(p Peripheral, channel uint16)
}

// CriticalSection brackets register read-modify-write sequences that must
// not be interleaved with interrupt context.
//
// Enter and Exit must nest safely: entering while already inside a critical
// section is allowed and the outermost Exit restores the previous state.
// Implementations keep the protected span as short as possible.
type CriticalSection interface {
	Enter()
	Exit()
}

// Delayer blocks the caller for at least the given duration.
//
// The wait is a bounded busy-wait and is never called while a critical
// section is held.
type Delayer interface {
	Delay(d time.Duration)
}

type nopModuleStarter struct{}

func (nopModuleStarter) ModuleStart(Peripheral, uint16) {}

// NopModuleStarter discards module start requests.
var NopModuleStarter ModuleStarter = nopModuleStarter{}

type nopCriticalSection struct{}

func (nopCriticalSection) Enter() {}
func (nopCriticalSection) Exit()  {}

// NopCriticalSection is a critical section for single-context use.
var NopCriticalSection CriticalSection = nopCriticalSection{}

// Spin busy-waits using the monotonic clock.
type Spin struct{}

func (Spin) Delay(d time.Duration) {
	t := time.Now()
	for time.Since(t) < d {
	}
}

// UniqueID is the factory-programmed device unique identifier.
type UniqueID [16]byte

// Bytes returns the identifier as a slice.
func (u UniqueID) Bytes() []byte {
	return u[:]
}
