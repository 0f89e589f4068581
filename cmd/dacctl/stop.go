package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type stopConfig struct {
	rootConfig *rootConfig
	err        io.Writer
}

func (c *stopConfig) Exec(ctx context.Context, _ []string) error {
	// Open already forces the output off; the explicit stop keeps the
	// channel in a defined state if flags asked for synchronization or
	// amplifier routing.
	ch, regs, closer, err := newChannel(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	if err := ch.Stop(); err != nil {
		return err
	}
	if err := ch.Close(); err != nil {
		return err
	}
	if err := checkRegs(regs); err != nil {
		return err
	}

	if c.rootConfig.verbose {
		fmt.Fprintln(c.err, "output disabled")
	}
	return nil
}

func newStopCmd(rootConfig *rootConfig, err io.Writer) *ffcli.Command {
	cfg := stopConfig{
		rootConfig: rootConfig,
		err:        err,
	}

	fs := flag.NewFlagSet("dacctl stop", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "stop",
		ShortUsage: "stop [flags]",
		ShortHelp:  "Disables the channel output.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
