package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/cenkalti/backoff"
	"github.com/karalabe/usb"
)

// ErrUSBNotSupported is returned when USB support is missing.
//
// When building, CGO is required for USB support. Without it the HID
// transport is not available.
var ErrUSBNotSupported = errors.New("probe: usb support is missing")

const defaultRetries = 5

func newBackOff(ctx context.Context, cfg Config) backoff.BackOffContext {
	retries := cfg.Retries
	if retries == 0 {
		retries = defaultRetries
	}
	return backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), retries), ctx,
	)
}

// OpenHID connects to a debug probe enumerated by its USB identifiers.
//
// Enumeration is retried with exponential backoff to cover the window
// right after the probe is plugged in.
func OpenHID(ctx context.Context, vendorID, productID uint16, cfg Config) (*Probe, error) {
	if !usb.Supported() {
		return nil, ErrUSBNotSupported
	}

	var dev usb.Device
	op := func() error {
		infos, err := usb.EnumerateHid(vendorID, productID)
		if err != nil {
			return fmt.Errorf("probe: failed to get hid devices: %w", err)
		}
		for _, di := range infos {
			if dev, err = di.Open(); err == nil {
				return nil
			}
		}
		if err != nil {
			return err
		}
		return errNoDevice
	}

	if err := backoff.Retry(op, newBackOff(ctx, cfg)); err != nil {
		return nil, err
	}
	return New(dev, cfg), nil
}
