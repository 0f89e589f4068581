package main

import (
	"testing"

	"github.com/ksekimoto/fsp/dac"
)

func TestParseDeviceType(t *testing.T) {
	testCases := []struct {
		in      string
		want    dac.DeviceType
		wantErr bool
	}{
		{"ra6m3", dac.DeviceRA6M3, false},
		{"RA6M3", dac.DeviceRA6M3, false},
		{"ra2a1", dac.DeviceRA2A1, false},
		{"rx65n", 0, true},
		{"", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseDeviceType(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v", err)
			}
			if err == nil && got != tc.want {
				t.Errorf("got %v want %v", got, tc.want)
			}
		})
	}
}

func TestParseBase(t *testing.T) {
	base, err := parseBase("0x4005e000")
	if err != nil {
		t.Fatal(err)
	}
	if base != 0x4005e000 {
		t.Errorf("base = %#x", base)
	}

	if _, err := parseBase("zzz"); err == nil {
		t.Error("bad base accepted")
	}
}

func TestChannelConfigChargePump(t *testing.T) {
	regs := dac.NewMemRegisters()

	cfg, err := channelConfig(&rootConfig{device: "ra2a1", pump: true}, regs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extend == nil || !cfg.Extend.EnableChargePump {
		t.Error("charge pump extension not populated")
	}

	cfg, err = channelConfig(&rootConfig{device: "ra6m3"}, regs)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Extend != nil {
		t.Error("unexpected extension for ra6m3")
	}
}
