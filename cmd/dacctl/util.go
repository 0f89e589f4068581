package main

import (
	"context"
	"errors"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"github.com/ksekimoto/fsp/dac"
	"github.com/ksekimoto/fsp/probe"
)

const (
	// Renesas E2 emulator Lite.
	vendorRenesas = 0x045b
	productE2Lite = 0x0261

	// DAC12 block base on RA6 parts.
	defaultBase = "0x4005e000"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func newRegisters(ctx context.Context, c *rootConfig) (dac.Registers, io.Closer, error) {
	switch c.backend {
	case "mem":
		return dac.NewMemRegisters(), nopCloser{}, nil
	case "pmem":
		if _, err := host.Init(); err != nil {
			return nil, nil, err
		}
		base, err := parseBase(c.base)
		if err != nil {
			return nil, nil, err
		}
		m, err := dac.NewMappedRegisters(base)
		if err != nil {
			return nil, nil, err
		}
		return m, m, nil
	case "probe-hid":
		p, err := probe.OpenHID(ctx, vendorRenesas, productE2Lite, probe.Config{
			Debug: newLogger(c.verbose),
		})
		if err != nil {
			return nil, nil, err
		}
		return probe.NewRegs(p), p, nil
	case "probe-serial":
		p, err := probe.OpenSerial(ctx, c.port, c.baud, probe.Config{
			Debug: newLogger(c.verbose),
		})
		if err != nil {
			return nil, nil, err
		}
		return probe.NewRegs(p), p, nil
	default:
		return nil, nil, errors.New("dacctl: unknown backend")
	}
}

func newChannel(ctx context.Context, c *rootConfig) (*dac.Channel, dac.Registers, io.Closer, error) {
	regs, closer, err := newRegisters(ctx, c)
	if err != nil {
		return nil, nil, nil, err
	}

	cfg, err := channelConfig(c, regs)
	if err != nil {
		closer.Close()
		return nil, nil, nil, err
	}

	ch := new(dac.Channel)
	if err := ch.Open(cfg); err != nil {
		closer.Close()
		return nil, nil, nil, err
	}
	return ch, regs, closer, nil
}

func channelConfig(c *rootConfig, regs dac.Registers) (dac.Config, error) {
	dt, err := parseDeviceType(c.device)
	if err != nil {
		return dac.Config{}, err
	}

	cfg := dac.Config{
		Channel:          uint8(c.channel),
		Device:           dt,
		ADDASynchronized: c.sync,
		OutputAmplifier:  c.amp,
		VRef:             3300 * physic.MilliVolt,
		Regs:             regs,
		Debug:            newLogger(c.verbose),
	}
	if c.left {
		cfg.Format = dac.FormatLeftJustified
	}
	if dt == dac.DeviceRA2A1 {
		cfg.Extend = &dac.ExtendedConfig{EnableChargePump: c.pump}
	}
	return cfg, nil
}

func parseDeviceType(s string) (dac.DeviceType, error) {
	switch strings.ToUpper(s) {
	case "RA2A1":
		return dac.DeviceRA2A1, nil
	case "RA4M1":
		return dac.DeviceRA4M1, nil
	case "RA4W1":
		return dac.DeviceRA4W1, nil
	case "RA6M1":
		return dac.DeviceRA6M1, nil
	case "RA6M3":
		return dac.DeviceRA6M3, nil
	default:
		return 0, errors.New("dacctl: unknown device family")
	}
}

func parseBase(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(s, "0x"), 16, 64)
}

// checkRegs surfaces transport failures from backends that record them.
func checkRegs(regs dac.Registers) error {
	if r, ok := regs.(interface{ Err() error }); ok {
		return r.Err()
	}
	return nil
}

func newLogger(verbose bool) dac.Logger {
	if verbose {
		return log.New(os.Stderr, "", 0)
	}
	return nil
}
