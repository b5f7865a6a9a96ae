// Package memdev implements the transfer engine shared by every I2C serial
// memory driver in this module: page-bounded reads and writes with busy
// retries, single-register access, composite store/recall commands, and
// non-blocking transfer continuations.
//
// The package knows nothing about concrete chips. Chip packages (eeprom,
// eeram, at24mac) supply a Config naming the address spaces and register
// layout, and wrap the Device in a chip-specific API.
package memdev

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
)

// continuation is the non-blocking transfer state machine of a handle:
// idle, or awaiting completion of the transaction the bus numbered for us.
// Only issueAsync and pollContinuation transition it.
type continuation struct {
	active      bool
	transaction uint8
}

// Device is a handle to one serial memory device on a shared bus. The
// handle borrows the bus; closing or arbitrating the bus is the caller's
// concern. A handle is not safe for concurrent use: the driver assumes a
// single outstanding logical transaction, per the chip protocols it speaks.
type Device struct {
	conf       *Config
	bus        buses.I2C
	selectPins byte
	clockHz    uint32
	clock      clock.Clock
	logger     golog.Logger

	cont continuation
}

// Option configures a Device beyond its required parameters.
type Option func(*Device)

// WithClock substitutes the wall clock used for retry and wait deadlines.
func WithClock(c clock.Clock) Option {
	return func(d *Device) { d.clock = c }
}

// NewDevice wires a handle to a device described by conf, reachable through
// bus. selectPins holds the state of the package's address-select pins
// already shifted into chip-address position (bits 1..3); clockHz is the SCL
// frequency the bus will be configured for at Init.
func NewDevice(bus buses.I2C, conf *Config, selectPins byte, clockHz uint32, logger golog.Logger, opts ...Option) (*Device, error) {
	if bus == nil || conf == nil {
		return nil, errors.New("memdev: bus and config are required")
	}
	if err := conf.Validate(conf.Name); err != nil {
		return nil, err
	}
	d := &Device{
		conf:       conf,
		bus:        bus,
		selectPins: selectPins & conf.SelectPinsMask,
		clockHz:    clockHz,
		clock:      clock.New(),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Name returns the configured device name.
func (d *Device) Name() string { return d.conf.Name }

// DataSize returns the size of the data array in bytes.
func (d *Device) DataSize() uint32 { return d.conf.Data.TotalSize }

// Init configures the bus clock and probes the device for presence. It must
// be called once before any transfer.
func (d *Device) Init(ctx context.Context) error {
	if d.clockHz > d.conf.MaxClockHz {
		return errors.Wrapf(ErrClockTooFast, "%s: %d Hz > %d Hz", d.conf.Name, d.clockHz, d.conf.MaxClockHz)
	}
	if err := d.bus.Init(ctx, d.clockHz); err != nil {
		return err
	}
	d.cont = continuation{}
	if !d.IsReady(ctx) {
		return errors.Wrap(ErrNoDevice, d.conf.Name)
	}
	d.logger.Debugf("%s responding, bus clock %d Hz", d.conf.Name, d.clockHz)
	return nil
}

// IsReady sends an address-only transfer and reports whether the device
// acknowledged. Serial memories stop acknowledging while an internal write
// cycle runs, so this doubles as an end-of-write poll.
func (d *Device) IsReady(ctx context.Context) bool {
	pkt := buses.Packet{
		ChipAddr: buses.WriteAddr(d.chipAddr(&d.conf.Data, 0)),
		Phase:    buses.Simple,
		Start:    true,
		Stop:     true,
	}
	return d.bus.Transfer(ctx, &pkt) == nil
}

// WaitReady polls the device acknowledge until it answers or the window
// (plus one millisecond of clock-sampling slack) expires. EEPROM drivers
// call this after their final page write, whose completion the engine does
// not wait for.
func (d *Device) WaitReady(ctx context.Context, window time.Duration) error {
	deadline := d.clock.Now().Add(window + time.Millisecond)
	for {
		if d.IsReady(ctx) {
			return nil
		}
		if !d.clock.Now().Before(deadline) {
			return errors.Wrap(ErrDeviceTimeout, d.conf.Name)
		}
	}
}
