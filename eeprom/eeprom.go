// Package eeprom drives generic I2C serial EEPROMs of the 1010xxx. chip
// address family: paged writes bounded by a per-page write time, during
// which the device NACKs its address, and reads/writes of arbitrary length
// split at page boundaries by the transfer engine.
//
// Chips provides ready-made geometry for the common parts; anything with
// compatible addressing can be described with a custom Chip value.
package eeprom

import (
	"context"
	"time"

	"github.com/edaniels/golog"

	"github.com/Emandhal/Memories-sub001/buses"
	"github.com/Emandhal/Memories-sub001/memdev"
)

// Base is the chip address base shared by the whole family.
const Base byte = 0xA0

// SelectPins builds the chip-address select bits from the A2, A1 and A0 pin
// levels. Pins the package does not bond, or borrows as address bits, are
// masked off by the chip geometry.
func SelectPins(a2, a1, a0 bool) byte {
	var pins byte
	if a2 {
		pins |= 1 << 3
	}
	if a1 {
		pins |= 1 << 2
	}
	if a0 {
		pins |= 1 << 1
	}
	return pins
}

// Chip describes the geometry and timing of one EEPROM part.
type Chip struct {
	Name string
	// AddrBytes is the memory-address width on the wire; BankMask the
	// select-pin bits the part borrows as high address bits.
	AddrBytes int
	BankMask  byte
	// SelectPinsMask marks the select pins actually bonded on the package.
	SelectPinsMask byte
	// PageSize and TotalSize in bytes.
	PageSize  uint32
	TotalSize uint32
	// PageWriteTime is the worst-case internal write-cycle duration, used
	// as the busy-retry window.
	PageWriteTime time.Duration
	// MaxClockHz is the fastest supported SCL for this part and supply
	// voltage.
	MaxClockHz uint32
}

func (c Chip) config() *memdev.Config {
	return &memdev.Config{
		Name: c.Name,
		Data: memdev.AddressSpace{
			Base:        Base,
			BankMask:    c.BankMask,
			AddrBytes:   c.AddrBytes,
			PageSize:    c.PageSize,
			TotalSize:   c.TotalSize,
			RetryWindow: c.PageWriteTime,
		},
		MaxClockHz:     c.MaxClockHz,
		SelectPinsMask: c.SelectPinsMask,
	}
}

// Device is a handle to one EEPROM chip.
type Device struct {
	dev  *memdev.Device
	chip Chip
}

// New wires a handle for the given chip geometry. pins is the state of the
// address-select pins (use SelectPins); clockHz the bus clock configured at
// Init.
func New(bus buses.I2C, chip Chip, pins byte, clockHz uint32, logger golog.Logger, opts ...memdev.Option) (*Device, error) {
	dev, err := memdev.NewDevice(bus, chip.config(), pins, clockHz, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &Device{dev: dev, chip: chip}, nil
}

// Init configures the bus and probes the chip.
func (d *Device) Init(ctx context.Context) error { return d.dev.Init(ctx) }

// IsReady reports whether the chip acknowledges its bus address. A chip mid
// write cycle answers false.
func (d *Device) IsReady(ctx context.Context) bool { return d.dev.IsReady(ctx) }

// Size returns the array size in bytes.
func (d *Device) Size() uint32 { return d.chip.TotalSize }

// Read reads len(data) bytes starting at offset, retrying each page while
// the device is busy with an earlier write cycle.
func (d *Device) Read(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.ReadData(ctx, d.dev.Data(), offset, data)
}

// Write writes data starting at offset, page by page. The last page's write
// cycle is not waited for; call WaitEndOfWrite before cutting power when the
// data must be durable.
func (d *Device) Write(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.WriteData(ctx, d.dev.Data(), offset, data)
}

// WaitEndOfWrite blocks until the chip acknowledges its address again,
// bounded by the page write time.
func (d *Device) WaitEndOfWrite(ctx context.Context) error {
	return d.dev.WaitReady(ctx, d.chip.PageWriteTime)
}
