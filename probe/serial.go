package probe

import (
	"context"
	"fmt"
	"time"

	"github.com/cenkalti/backoff"
	"github.com/tarm/serial"
)

const defaultBaud = 115200

// OpenSerial connects to a debug probe on a serial port.
func OpenSerial(ctx context.Context, name string, baud int, cfg Config) (*Probe, error) {
	if baud == 0 {
		baud = defaultBaud
	}
	sc := &serial.Config{Name: name, Baud: baud, ReadTimeout: time.Second}

	var port *serial.Port
	op := func() error {
		var err error
		port, err = serial.OpenPort(sc)
		return err
	}
	if err := backoff.Retry(op, newBackOff(ctx, cfg)); err != nil {
		return nil, fmt.Errorf("probe: failed to open %s: %w", name, err)
	}
	return New(port, cfg), nil
}
