package dac

import (
	"errors"
)

// Driver errors. All validation happens before any register is touched, so
// a non-nil error means the hardware state is unchanged.
var (
	// ErrInvalidArgument is returned for a nil register block, an
	// out-of-range enum value or a missing required extended config.
	ErrInvalidArgument = errors.New("dac: invalid argument")

	// ErrChannelNotPresent is returned when the requested channel index
	// exceeds what the device provides.
	ErrChannelNotPresent = errors.New("dac: channel not present on device")

	// ErrAlreadyOpen is returned when Open is called on an open channel.
	ErrAlreadyOpen = errors.New("dac: channel already open")

	// ErrAlreadyStarted is returned when Start is called while the
	// channel output is already enabled.
	ErrAlreadyStarted = errors.New("dac: conversion already started")

	// ErrNotOpen is returned when a channel is used before Open.
	ErrNotOpen = errors.New("dac: channel not open")
)

var errVoltageRange = errors.New("dac: voltage out of range")
