package main

import (
	"context"
	"flag"

	"github.com/peterbourgon/ff/v3/ffcli"
)

type rootConfig struct {
	verbose bool
	device  string
	channel int
	backend string
	port    string
	baud    int
	base    string
	amp     bool
	sync    bool
	left    bool
	pump    bool
}

func (c *rootConfig) registerFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "v", false, "increase log verbosity")
	fs.StringVar(&c.device, "device", "ra6m3", "device family: ra2a1, ra4m1, ra4w1, ra6m1, ra6m3")
	fs.IntVar(&c.channel, "channel", 0, "DAC channel index")
	fs.StringVar(&c.backend, "backend", "mem", "register access: mem, pmem, probe-hid or probe-serial")
	fs.StringVar(&c.port, "port", "/dev/ttyUSB0", "serial port for the probe-serial backend")
	fs.IntVar(&c.baud, "baud", 0, "serial baud rate, 0 for the default")
	fs.StringVar(&c.base, "base", defaultBase, "physical register base in hex for the pmem backend")
	fs.BoolVar(&c.amp, "amp", false, "route the channel through the output amplifier")
	fs.BoolVar(&c.sync, "sync", false, "synchronize conversion with ADC sampling")
	fs.BoolVar(&c.left, "left", false, "left justified data format")
	fs.BoolVar(&c.pump, "pump", true, "enable the charge pump on devices that have one")
}

func (c *rootConfig) Exec(context.Context, []string) error {
	return flag.ErrHelp
}

func newRootCmd() (*ffcli.Command, *rootConfig) {
	var cfg rootConfig

	fs := flag.NewFlagSet("dacctl", flag.ExitOnError)
	cfg.registerFlags(fs)

	return &ffcli.Command{
		Name:       "dacctl",
		ShortUsage: "dacctl [flags] <subcommand>",
		ShortHelp:  "Utilities to bring up and exercise the D/A converter.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}, &cfg
}
