package dac

// DeviceType selects the device family the driver runs on.
//
// The DAC block is the same across the RA family but individual parts
// differ in channel count and analog options. The table below captures
// those differences; behavior variants in the driver key off it.
type DeviceType int

const (
	DeviceRA2A1 DeviceType = iota
	DeviceRA4M1
	DeviceRA4W1
	DeviceRA6M1
	DeviceRA6M3
)

func (dt DeviceType) String() string {
	switch dt {
	case DeviceRA2A1:
		return "RA2A1"
	case DeviceRA4M1:
		return "RA4M1"
	case DeviceRA4W1:
		return "RA4W1"
	case DeviceRA6M1:
		return "RA6M1"
	case DeviceRA6M3:
		return "RA6M3"
	default:
		return "unknown"
	}
}

type featureSet struct {
	// maxChannels is the number of DAC output channels on the part.
	maxChannels uint8
	// outputAmplifier reports whether the part has the on-chip output
	// amplifier and its stabilization wait registers.
	outputAmplifier bool
	// chargePump reports whether the part needs DAPC programmed; on such
	// parts the extended config is mandatory.
	chargePump bool
	// vrefControl reports whether the part has DAVREFCR.
	vrefControl bool
	// adcUnit1 reports whether the part has a second ADC unit, which
	// changes how DA/AD synchronization is programmed.
	adcUnit1 bool
}

var deviceFeatures = map[DeviceType]featureSet{
	DeviceRA2A1: {maxChannels: 1, chargePump: true, vrefControl: true},
	DeviceRA4M1: {maxChannels: 1, vrefControl: true},
	DeviceRA4W1: {maxChannels: 1, vrefControl: true},
	DeviceRA6M1: {maxChannels: 2, outputAmplifier: true, adcUnit1: true},
	DeviceRA6M3: {maxChannels: 2, outputAmplifier: true, adcUnit1: true},
}

// Channels returns the number of DAC channels the device provides.
func (dt DeviceType) Channels() int {
	return int(deviceFeatures[dt].maxChannels)
}
