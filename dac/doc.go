// Package dac is a driver for the 12-bit D/A converter peripheral found on
// RA-family microcontrollers.
//
// A Channel wraps one output path of the converter. Both channels of a
// peripheral instance share one register block, reached through the
// Registers interface. Register read-modify-write sequences are bracketed
// by the board's critical section so the driver can be called from both
// thread and interrupt context.
//
// The register layout follows the RA6M3 hardware manual (R01UH0886EJ0100),
// section 48, with per-device capability differences captured by DeviceType.
package dac
