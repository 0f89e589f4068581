package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/peterbourgon/ff/v3/ffcli"
	yml "gopkg.in/yaml.v2"

	"github.com/ksekimoto/fsp/dac"
	"github.com/ksekimoto/fsp/dachttp"
)

// serveFile is the YAML configuration of the serve command.
type serveFile struct {
	// Addr is the listen address.
	Addr string `koanf:"addr" yaml:"addr"`
	// Device is the device family; overrides the -device flag.
	Device string `koanf:"device" yaml:"device"`
	// Channels lists the channel indices to open and serve.
	Channels []int `koanf:"channels" yaml:"channels"`
}

type serveConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	err        io.Writer
	conf       string
	print      bool
}

func (c *serveConfig) load() (serveFile, error) {
	k := koanf.New(".")
	_ = k.Load(structs.Provider(serveFile{
		Addr:     ":8000",
		Channels: []int{0},
	}, "koanf"), nil)

	if err := k.Load(file.Provider(c.conf), yaml.Parser()); err != nil {
		// A missing config file means defaults.
		if !strings.Contains(err.Error(), "no such") {
			return serveFile{}, fmt.Errorf("dacctl: loading config: %w", err)
		}
	}

	var fc serveFile
	if err := k.Unmarshal("", &fc); err != nil {
		return serveFile{}, err
	}
	return fc, nil
}

func (c *serveConfig) Exec(ctx context.Context, _ []string) error {
	fc, err := c.load()
	if err != nil {
		return err
	}
	if c.print {
		return yml.NewEncoder(c.out).Encode(fc)
	}
	if fc.Device != "" {
		c.rootConfig.device = fc.Device
	}

	regs, closer, err := newRegisters(ctx, c.rootConfig)
	if err != nil {
		return err
	}
	defer closer.Close()

	channels := make(map[int]*dac.Channel, len(fc.Channels))
	for _, idx := range fc.Channels {
		root := *c.rootConfig
		root.channel = idx
		cfg, err := channelConfig(&root, regs)
		if err != nil {
			return err
		}
		ch := new(dac.Channel)
		if err := ch.Open(cfg); err != nil {
			return fmt.Errorf("dacctl: opening channel %d: %w", idx, err)
		}
		channels[idx] = ch
	}
	if err := checkRegs(regs); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Mount("/dac", dachttp.NewServer(channels).Routes())

	srv := &http.Server{Addr: fc.Addr, Handler: r}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()

	if c.rootConfig.verbose {
		fmt.Fprintf(c.err, "serving %d channel(s) on %s\n", len(channels), fc.Addr)
	}
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func newServeCmd(rootConfig *rootConfig, out, err io.Writer) *ffcli.Command {
	cfg := serveConfig{
		rootConfig: rootConfig,
		out:        out,
		err:        err,
	}

	fs := flag.NewFlagSet("dacctl serve", flag.ExitOnError)
	fs.StringVar(&cfg.conf, "conf", "dacctl.yml", "path to the YAML config file")
	fs.BoolVar(&cfg.print, "print", false, "print the effective config and exit")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "serve",
		ShortUsage: "serve [flags]",
		ShortHelp:  "Serves DAC channels over HTTP.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
