package dac

import (
	"time"

	"github.com/ksekimoto/fsp/bsp"
)

// amplifierStabilizationTime is the settling time of the output amplifier.
// See table 60.44 "D/A conversion characteristics" of the RA6M3 manual.
const amplifierStabilizationTime = 4 * time.Microsecond

type channelState int

const (
	stateClosed channelState = iota
	stateOpen
)

// Channel is one output path of the D/A converter.
//
// The zero value is a closed channel. Storage is owned by the caller; the
// driver never allocates and a closed channel may be reused with another
// Open. A Channel is not safe for concurrent use from multiple execution
// contexts except as described in the package documentation: register
// read-modify-write is guarded by the configured critical section, but the
// lifecycle flags are not.
type Channel struct {
	cfg   Config
	regs  Registers
	mod   bsp.ModuleStarter
	cs    bsp.CriticalSection
	delay bsp.Delayer
	log   Logger

	num   uint8
	feat  featureSet
	amp   bool
	state channelState
}

// Open validates the configuration, powers the peripheral and programs the
// channel for use. Open must not be called again without an intervening
// Close.
func (c *Channel) Open(cfg Config) error {
	feat := deviceFeatures[cfg.Device]

	if !cfg.DisableParamCheck {
		if cfg.Regs == nil {
			return ErrInvalidArgument
		}
		if cfg.Format != FormatRightJustified && cfg.Format != FormatLeftJustified {
			return ErrInvalidArgument
		}
		if _, ok := deviceFeatures[cfg.Device]; !ok {
			return ErrInvalidArgument
		}
		if cfg.Channel >= feat.maxChannels {
			return ErrChannelNotPresent
		}
		if c.state == stateOpen {
			return ErrAlreadyOpen
		}
		if feat.chargePump && cfg.Extend == nil {
			return ErrInvalidArgument
		}
	}

	c.cfg = cfg
	c.log = getLogger(cfg)
	c.regs = cfg.Regs
	if cfg.Debug != nil {
		c.regs = &regsDebug{c.log, cfg.Regs}
	}
	c.mod = moduleStarter(cfg)
	c.cs = criticalSection(cfg)
	c.delay = delayer(cfg)
	c.num = cfg.Channel
	c.feat = feat

	// Power on the DAC module.
	c.mod.ModuleStart(bsp.PeripheralDAC, uint16(cfg.Channel))

	// Stop the channel before reconfiguring it.
	c.cs.Enter()
	c.clearBit(regDACR, outputEnable(c.num))
	c.cs.Exit()

	// Data format: left or right justified.
	var dpsel uint8
	if cfg.Format == FormatLeftJustified {
		dpsel = 1 << dadprDPSELBit
	}
	c.regs.Write8(regDADPR, dpsel)

	if c.feat.adcUnit1 {
		// DAADUSR is shared by all DAC channels and must only be
		// programmed while it is still at its reset value. Writing it
		// requires ADC unit 1 to be powered, so start it here; the
		// application is expected to bring the ADC up properly later.
		if c.regs.Read8(regDAADSCR) == 0 && cfg.ADDASynchronized {
			c.mod.ModuleStart(bsp.PeripheralADC, adcUnit1)
			c.regs.Write8(regDAADUSR, daadusrUnit1)
			c.regs.Write8(regDAADSCR, 1<<daadscrDAADSTBit)
		}
	} else {
		var daadst uint8
		if cfg.ADDASynchronized {
			daadst = 1 << daadscrDAADSTBit
		}
		c.regs.Write8(regDAADSCR, daadst)
	}

	if c.feat.outputAmplifier {
		c.amp = cfg.OutputAmplifier
	}

	if c.feat.vrefControl {
		c.regs.Write8(regDAVREFCR, davrefcrAVCC0)
	}

	if c.feat.chargePump {
		var pump uint8
		if cfg.Extend != nil && cfg.Extend.EnableChargePump {
			pump = dapcPUMPEN
		}
		c.regs.Write8(regDAPC, pump)
	}

	c.state = stateOpen
	return nil
}

// Write stores a sample in the channel data register. Conversion of the new
// value starts in hardware as soon as the register is written; no further
// synchronization is needed for this single-register access.
func (c *Channel) Write(value uint16) error {
	if !c.cfg.DisableParamCheck {
		if c.state != stateOpen {
			return ErrNotOpen
		}
	}

	c.regs.Write16(dataRegister(c.num), value)
	return nil
}

// Start enables the channel output.
//
// With the output amplifier enabled the documented initialization sequence
// is followed: the converter settles against a zero sample while the
// amplifier stabilizes, then the previous sample is restored. See section
// 48.6.5 "Initialization Procedure with the Output Amplifier" of the RA6M3
// manual. The ordering of the register writes and the settling wait is
// mandated by hardware.
func (c *Channel) Start() error {
	if !c.cfg.DisableParamCheck {
		if c.state != stateOpen {
			return ErrNotOpen
		}
		if c.regs.Read8(regDACR)&outputEnable(c.num) != 0 {
			return ErrAlreadyStarted
		}
	}

	if !c.amp {
		c.cs.Enter()
		c.setBit(regDACR, outputEnable(c.num))
		c.cs.Exit()
		return nil
	}

	// Hold the sample the caller wants amplified and settle against zero.
	value := c.regs.Read16(dataRegister(c.num))
	c.regs.Write16(dataRegister(c.num), 0)

	c.cs.Enter()
	c.clearBit(regDACR, outputEnable(c.num))
	c.setBit(regDAASWCR, stabilizationWait(c.num))
	c.setBit(regDAAMPCR, amplifierControl(c.num))
	c.setBit(regDACR, outputEnable(c.num))
	c.cs.Exit()

	// The settling wait runs outside the critical section so interrupts
	// stay enabled for its whole duration.
	c.delay.Delay(amplifierStabilizationTime)

	c.cs.Enter()
	c.clearBit(regDAASWCR, stabilizationWait(c.num))
	c.cs.Exit()

	// Conversion now proceeds with the caller's sample.
	c.regs.Write16(dataRegister(c.num), value)
	return nil
}

// Stop disables the channel output. Stopping an already stopped channel is
// harmless.
func (c *Channel) Stop() error {
	if !c.cfg.DisableParamCheck {
		if c.state != stateOpen {
			return ErrNotOpen
		}
	}

	c.cs.Enter()
	c.clearBit(regDACR, outputEnable(c.num))
	c.cs.Exit()
	return nil
}

// Close disables the channel output and amplifier control and marks the
// channel closed.
//
// The peripheral is left powered: module stop is not channel-granular and
// would take down a sibling channel that may still be open. Powering the
// block down is a policy decision left to the caller.
func (c *Channel) Close() error {
	if !c.cfg.DisableParamCheck {
		if c.state != stateOpen {
			return ErrNotOpen
		}
	}

	c.cs.Enter()
	c.clearBit(regDACR, outputEnable(c.num))
	c.clearBit(regDAAMPCR, amplifierControl(c.num))
	c.cs.Exit()

	c.state = stateClosed
	return nil
}

func (c *Channel) setBit(off, mask uint8) {
	c.regs.Write8(off, c.regs.Read8(off)|mask)
}

func (c *Channel) clearBit(off, mask uint8) {
	c.regs.Write8(off, c.regs.Read8(off)&^mask)
}
