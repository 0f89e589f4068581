package main

import (
	"context"
	"crypto/x509"
	"encoding/hex"
	"encoding/pem"
	"flag"
	"fmt"
	"io"

	"github.com/peterbourgon/ff/v3/ffcli"

	"github.com/ksekimoto/fsp/attest"
)

type keyConfig struct {
	rootConfig *rootConfig
	out        io.Writer
	attest     bool
	uid        string
	label      string
	size       int
}

func (c *keyConfig) Exec(ctx context.Context, _ []string) error {
	if c.attest {
		priv, err := attest.InitialAttestationKey()
		if err != nil {
			return err
		}
		der, err := x509.MarshalECPrivateKey(priv)
		if err != nil {
			return err
		}
		return pem.Encode(c.out, &pem.Block{
			Type:  "EC PRIVATE KEY",
			Bytes: der,
		})
	}

	uid, err := hex.DecodeString(c.uid)
	if err != nil {
		return fmt.Errorf("dacctl: invalid unique id: %w", err)
	}
	key, err := attest.DeriveKey(uid, []byte(c.label), c.size)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.out, hex.EncodeToString(key))
	return err
}

func newKeyCmd(rootConfig *rootConfig, out io.Writer) *ffcli.Command {
	cfg := keyConfig{
		rootConfig: rootConfig,
		out:        out,
	}

	fs := flag.NewFlagSet("dacctl key", flag.ExitOnError)
	fs.BoolVar(&cfg.attest, "attest", false, "print the initial attestation key instead of deriving one")
	fs.StringVar(&cfg.uid, "uid", "", "device unique id in hex")
	fs.StringVar(&cfg.label, "label", "", "derivation label")
	fs.IntVar(&cfg.size, "size", 32, "derived key size in bytes")
	rootConfig.registerFlags(fs)

	return &ffcli.Command{
		Name:       "key",
		ShortUsage: "key [flags]",
		ShortHelp:  "Prints provisioning key material.",
		FlagSet:    fs,
		Exec:       cfg.Exec,
	}
}
