package dac

import (
	"periph.io/x/conn/v3/physic"

	"github.com/ksekimoto/fsp/bsp"
)

// DataFormat selects how a 12-bit sample sits in the 16-bit data register.
type DataFormat int

const (
	FormatRightJustified DataFormat = iota
	FormatLeftJustified
)

// Config is the configuration object for a channel.
type Config struct {
	// Channel is the output channel index this instance drives.
	Channel uint8
	// Device selects the device family, which fixes the available analog
	// options.
	Device DeviceType
	// Format selects left or right justified data.
	Format DataFormat
	// ADDASynchronized enables synchronization of D/A conversion with ADC
	// sampling.
	ADDASynchronized bool
	// OutputAmplifier routes the channel through the on-chip amplifier.
	// Only meaningful on devices that have one; Start then follows the
	// amplifier stabilization sequence.
	OutputAmplifier bool
	// Extend carries options that only exist on some parts. Mandatory on
	// devices with a charge pump.
	Extend *ExtendedConfig
	// VRef is the analog reference driving the output range. Used only by
	// WritePotential; zero means 3.3 V.
	VRef physic.ElectricPotential

	// Regs is the shared register block of the peripheral instance.
	Regs Registers
	// Module powers peripherals on. Nil means no power gating.
	Module bsp.ModuleStarter
	// Critical protects register read-modify-write against interrupt
	// context. Nil means single-context use.
	Critical bsp.CriticalSection
	// Delay provides the bounded busy-wait used by the amplifier
	// stabilization sequence. Nil selects bsp.Spin.
	Delay bsp.Delayer

	// Debug is used for register trace output.
	Debug Logger

	// DisableParamCheck skips all precondition validation, trading safety
	// for speed the way the production build of the reference firmware
	// does. With checking disabled, violating a precondition corrupts
	// hardware state or dereferences a nil register block.
	DisableParamCheck bool
}

// ExtendedConfig carries options for devices with extra analog hardware.
type ExtendedConfig struct {
	// EnableChargePump switches on the charge pump feeding the output
	// amplifier. Required to be decided explicitly on parts that have one.
	EnableChargePump bool
}

// ConfigRA6M3Default returns a config for an RA6M3 channel with the
// amplifier bypassed.
func ConfigRA6M3Default(regs Registers) Config {
	return Config{
		Device: DeviceRA6M3,
		Format: FormatRightJustified,
		VRef:   3300 * physic.MilliVolt,
		Regs:   regs,
	}
}

// ConfigRA2A1Default returns a config for the single RA2A1 channel with the
// charge pump enabled.
func ConfigRA2A1Default(regs Registers) Config {
	return Config{
		Device: DeviceRA2A1,
		Format: FormatRightJustified,
		VRef:   3300 * physic.MilliVolt,
		Regs:   regs,
		Extend: &ExtendedConfig{EnableChargePump: true},
	}
}

func moduleStarter(cfg Config) bsp.ModuleStarter {
	if cfg.Module == nil {
		return bsp.NopModuleStarter
	}
	return cfg.Module
}

func criticalSection(cfg Config) bsp.CriticalSection {
	if cfg.Critical == nil {
		return bsp.NopCriticalSection
	}
	return cfg.Critical
}

func delayer(cfg Config) bsp.Delayer {
	if cfg.Delay == nil {
		return bsp.Spin{}
	}
	return cfg.Delay
}
