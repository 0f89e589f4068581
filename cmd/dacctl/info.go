package main

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/ksekimoto/fsp/dac"
)

type infoConfig struct {
	rootConfig *rootConfig
	out        io.Writer
}

func (c *infoConfig) Exec(ctx context.Context, _ []string) error {
	dt, err := parseDeviceType(c.rootConfig.device)
	if err != nil {
		return err
	}

	v := dac.Version()
	fmt.Fprintf(c.out, "device:   %s\n", dt)
	fmt.Fprintf(c.out, "channels: %d\n", dt.Channels())
	fmt.Fprintf(c.out, "driver:   api %d.%d code %d.%d\n",
		v.APIMajor, v.APIMinor, v.CodeMajor, v.CodeMinor)
	return nil
}

func newInfoCmd(rootConfig *rootConfig, out io.Writer) *ffcli.Command {
	cfg := infoConfig{
		rootConfig: rootConfig,
		out:        out,
	}

	fs := flag.NewFlagSet("dacctl info", flag.ExitOnError)
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "info",
		ShortUsage: "info [flags]",
		ShortHelp:  "Prints device capabilities and driver version.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
