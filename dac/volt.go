package dac

import (
	"periph.io/x/conn/v3/physic"
)

const (
	stepCount = 1 << 12 // 12-bit converter
	maxCount  = stepCount - 1
)

// PotentialToCount converts a voltage to the data number driving the
// converter, given the analog reference. The count is roughly
// v/(vref/4095). Voltages outside [0, vref] return an error.
func PotentialToCount(v, vref physic.ElectricPotential) (uint16, error) {
	if vref <= 0 || v < 0 || v > vref {
		return 0, errVoltageRange
	}
	step := vref / maxCount
	count := uint16(float64(v)/float64(step) + 0.5)
	if count > maxCount {
		count = maxCount
	}
	return count, nil
}

// WritePotential converts v against the configured reference and writes the
// resulting sample, honoring the configured data format.
func (c *Channel) WritePotential(v physic.ElectricPotential) error {
	vref := c.cfg.VRef
	if vref == 0 {
		vref = 3300 * physic.MilliVolt
	}
	count, err := PotentialToCount(v, vref)
	if err != nil {
		return err
	}
	if c.cfg.Format == FormatLeftJustified {
		count <<= 4
	}
	return c.Write(count)
}
