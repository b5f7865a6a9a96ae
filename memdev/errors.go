package memdev

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned before any bus activity when a request does
	// not fit the address space, or when a non-blocking request would cross
	// a page boundary.
	ErrOutOfRange = errors.New("request exceeds address space bounds")

	// ErrNotReady is returned when the device does not acknowledge the
	// address phase of a transfer, usually because an internal write or
	// store cycle is still running.
	ErrNotReady = errors.New("device not ready")

	// ErrInvalidAddress is returned when the device acknowledges its chip
	// address but rejects a byte of the memory address.
	ErrInvalidAddress = errors.New("device rejected memory address")

	// ErrInvalidCommand is returned when the device rejects the byte written
	// to a command register.
	ErrInvalidCommand = errors.New("device rejected command")

	// ErrDeviceTimeout is returned when a busy-retry or wait-for-completion
	// loop exceeds its deadline.
	ErrDeviceTimeout = errors.New("device timeout")

	// ErrNoDevice is returned by Init when the device does not acknowledge
	// its bus address at all.
	ErrNoDevice = errors.New("no device detected")

	// ErrClockTooFast is returned by Init when the configured bus clock
	// exceeds what the device supports.
	ErrClockTooFast = errors.New("bus clock exceeds device maximum")

	// ErrNoControlSpace is returned when a register operation or composite
	// command is invoked on a device whose configuration has no control
	// registers.
	ErrNoControlSpace = errors.New("device has no control registers")
)
