// Package at24mac drives the Microchip AT24MAC402/602: a 2-Kbit serial
// EEPROM with factory-programmed identity pages — an EUI-48 (402) or EUI-64
// (602) node address and a 128-bit serial number — plus a permanent
// software write-protection latch.
//
// Three chip address bases select the device's functions: 0xA0 for the
// EEPROM array, 0xB0 for the read-only identity page, 0x60 for the
// write-protection latch.
package at24mac

import (
	"context"
	"time"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
	"github.com/Emandhal/Memories-sub001/memdev"
)

// Chip address bases and identity-page offsets from the datasheet.
const (
	EEPROMBase   byte = 0xA0
	IdentityBase byte = 0xB0
	PSWPBase     byte = 0x60

	serialNumberAddr uint32 = 0x80
	eui48Addr        uint32 = 0x9A
	eui64Addr        uint32 = 0x98

	// SerialNumberLen is the length of the factory serial number in bytes.
	SerialNumberLen = 16
)

// Variant selects which identity the chip carries.
type Variant int

const (
	// MAC402 carries an EUI-48.
	MAC402 Variant = iota
	// MAC602 carries an EUI-64.
	MAC602
)

// ErrWrongVariant is returned when an identity read does not match the
// chip's variant, e.g. ReadEUI64 on a 402 (use GenerateEUI64 instead).
var ErrWrongVariant = errors.New("identity not present on this variant")

const (
	pageSize      = 16
	totalSize     = 256
	pageWriteTime = 5 * time.Millisecond
	maxClockHz    = 1000000
)

// Device is a handle to one AT24MAC chip.
type Device struct {
	dev     *memdev.Device
	variant Variant

	identity memdev.AddressSpace
	pswp     memdev.AddressSpace
}

// New wires a handle. pins is the state of the A2/A1/A0 select pins shifted
// into chip-address position (bits 3..1).
func New(bus buses.I2C, variant Variant, pins byte, clockHz uint32, logger golog.Logger, opts ...memdev.Option) (*Device, error) {
	name := "AT24MAC402"
	if variant == MAC602 {
		name = "AT24MAC602"
	}
	conf := &memdev.Config{
		Name: name,
		Data: memdev.AddressSpace{
			Base:        EEPROMBase,
			AddrBytes:   1,
			PageSize:    pageSize,
			TotalSize:   totalSize,
			RetryWindow: pageWriteTime,
		},
		MaxClockHz:     maxClockHz,
		SelectPinsMask: 0x0E,
	}
	dev, err := memdev.NewDevice(bus, conf, pins, clockHz, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &Device{
		dev:     dev,
		variant: variant,
		identity: memdev.AddressSpace{
			Base:      IdentityBase,
			AddrBytes: 1,
			PageSize:  pageSize,
			TotalSize: totalSize,
		},
		pswp: memdev.AddressSpace{
			Base:      PSWPBase,
			AddrBytes: 1,
			PageSize:  pageSize,
			TotalSize: totalSize,
		},
	}, nil
}

// Init configures the bus and probes the chip.
func (d *Device) Init(ctx context.Context) error { return d.dev.Init(ctx) }

// IsReady reports whether the chip acknowledges its bus address.
func (d *Device) IsReady(ctx context.Context) bool { return d.dev.IsReady(ctx) }

// Read reads from the EEPROM array.
func (d *Device) Read(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.ReadData(ctx, d.dev.Data(), offset, data)
}

// Write writes to the EEPROM array, page by page with busy retries.
func (d *Device) Write(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.WriteData(ctx, d.dev.Data(), offset, data)
}

// WaitEndOfWrite blocks until the last write cycle completes.
func (d *Device) WaitEndOfWrite(ctx context.Context) error {
	return d.dev.WaitReady(ctx, pageWriteTime)
}

// ReadEUI48 reads the factory EUI-48 of a 402.
func (d *Device) ReadEUI48(ctx context.Context) ([6]byte, error) {
	var eui [6]byte
	if d.variant != MAC402 {
		return eui, errors.Wrap(ErrWrongVariant, "EUI-48")
	}
	err := d.dev.ReadData(ctx, &d.identity, eui48Addr, eui[:])
	return eui, err
}

// ReadEUI64 reads the factory EUI-64 of a 602.
func (d *Device) ReadEUI64(ctx context.Context) ([8]byte, error) {
	var eui [8]byte
	if d.variant != MAC602 {
		return eui, errors.Wrap(ErrWrongVariant, "EUI-64")
	}
	err := d.dev.ReadData(ctx, &d.identity, eui64Addr, eui[:])
	return eui, err
}

// GenerateEUI64 derives an EUI-64 from a 402's EUI-48: the locally
// administered bit is set on the OUI and 0xFFFE spliced between OUI and NIC.
// A 602 returns its factory EUI-64 directly.
func (d *Device) GenerateEUI64(ctx context.Context) ([8]byte, error) {
	if d.variant == MAC602 {
		return d.ReadEUI64(ctx)
	}
	var eui64 [8]byte
	eui48, err := d.ReadEUI48(ctx)
	if err != nil {
		return eui64, err
	}
	eui64[0] = eui48[0] | 0x02
	eui64[1] = eui48[1]
	eui64[2] = eui48[2]
	eui64[3] = 0xFF
	eui64[4] = 0xFE
	eui64[5] = eui48[3]
	eui64[6] = eui48[4]
	eui64[7] = eui48[5]
	return eui64, nil
}

// SerialNumber reads the factory 128-bit serial number.
func (d *Device) SerialNumber(ctx context.Context) ([SerialNumberLen]byte, error) {
	var sn [SerialNumberLen]byte
	err := d.dev.ReadData(ctx, &d.identity, serialNumberAddr, sn[:])
	return sn, err
}

// SetPermanentWriteProtection permanently write protects the lower quarter
// of the array. The latch is one-time: there is no way to undo it, and the
// chip NACKs the latch address afterwards.
func (d *Device) SetPermanentWriteProtection(ctx context.Context) error {
	return d.dev.WriteData(ctx, &d.pswp, 0x00, []byte{0x00})
}
