package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"
	"periph.io/x/conn/v3/physic"
)

type setConfig struct {
	rootConfig *rootConfig
	err        io.Writer
	dn         int
	volts      float64
	hold       bool
}

func (c *setConfig) Exec(ctx context.Context, _ []string) error {
	if c.dn < 0 && c.volts < 0 {
		return errors.New("dacctl: specify -dn or -volts")
	}
	if c.dn > 0xffff {
		return errors.New("dacctl: -dn exceeds 16 bits")
	}

	ch, regs, closer, err := newChannel(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if c.dn >= 0 {
		err = ch.Write(uint16(c.dn))
	} else {
		err = ch.WritePotential(physic.ElectricPotential(c.volts * float64(physic.Volt)))
	}
	if err != nil {
		return err
	}

	if err := ch.Start(); err != nil {
		return err
	}
	if err := checkRegs(regs); err != nil {
		return err
	}

	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "output enabled")
	}
	if !c.hold {
		return nil
	}

	// Keep the process (and with it a probe connection) alive until
	// interrupted.
	<-ctx.Done()
	return ctx.Err()
}

func newSetCmd(rootConfig *rootConfig, err io.Writer) *ffcli.Command {
	cfg := setConfig{
		rootConfig: rootConfig,
		err:        err,
	}

	fs := flag.NewFlagSet("dacctl set", flag.ExitOnError)
	fs.IntVar(&cfg.dn, "dn", -1, "data number to convert")
	fs.Float64Var(&cfg.volts, "volts", -1, "output voltage against the 3.3 V reference")
	fs.BoolVar(&cfg.hold, "hold", false, "keep running until interrupted")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "set",
		ShortUsage: "set [flags]",
		ShortHelp:  "Writes a sample and starts conversion.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
