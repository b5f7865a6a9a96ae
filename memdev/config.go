package memdev

import (
	"time"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"
)

var (
	errInvalidAddrBytes  = errors.New("address width must be 1 or 2 bytes")
	errPageSizeNotPow2   = errors.New("page size must be a power of two")
	errTotalSizeNotPaged = errors.New("total size must be a multiple of page size")
)

// An AddressSpace describes one logical function of a device: its data
// array, its control registers, or a factory-programmed identity page. The
// descriptor is immutable configuration; the engine never mutates it.
type AddressSpace struct {
	// Base is the fixed chip address selecting this function, in 8-bit
	// convention with bit 0 clear (e.g. 0xA0 for the data array of the
	// 1010xxx. family, 0x30 for EERAM control registers).
	Base byte
	// BankMask marks the address-select bits (bits 1..3) this space borrows
	// as high memory-address bits. Small EEPROMs like the AT24C04 extend
	// their one-byte address this way.
	BankMask byte
	// AddrBytes is the width of the address prefix sent before the data
	// phase: 1 or 2.
	AddrBytes int
	// PageSize is the write-burst granularity in bytes. Must be a power of
	// two. Devices without internal paging set it equal to TotalSize.
	PageSize uint32
	// TotalSize is the size of the space in bytes; a multiple of PageSize.
	TotalSize uint32
	// RetryWindow bounds transparent busy-retries of a page transfer whose
	// address phase was not acknowledged. Zero disables retries, surfacing
	// ErrNotReady to the caller immediately; EEPROMs set it to the
	// worst-case page write time from the datasheet.
	RetryWindow time.Duration
}

func (s *AddressSpace) validate(path string) error {
	var err error
	if s.AddrBytes < 1 || s.AddrBytes > 2 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errInvalidAddrBytes))
	}
	if s.PageSize == 0 || s.PageSize&(s.PageSize-1) != 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errPageSizeNotPow2))
	} else if s.TotalSize == 0 || s.TotalSize%s.PageSize != 0 {
		err = multierr.Append(err, goutils.NewConfigValidationError(path, errTotalSizeNotPaged))
	}
	return err
}

// ControlSet names the control registers of a device and the bit layout of
// its status register. Packed register layouts are described by explicit bit
// masks rather than overlay tricks, so the same command code serves every
// chip variant.
type ControlSet struct {
	// StatusAddr and CommandAddr are the register addresses inside the
	// control space.
	StatusAddr  byte
	CommandAddr byte
	// StoreCmd and RecallCmd are the command bytes triggering the copy of
	// the volatile array to and from its non-volatile backing store.
	StoreCmd  byte
	RecallCmd byte
	// StoreTime and RecallTime are the worst-case durations of those
	// operations, used as wait-for-completion deadlines.
	StoreTime  time.Duration
	RecallTime time.Duration
	// Status register bit masks.
	EventBit     byte
	AutoStoreBit byte
	ModifiedBit  byte
	ProtectMask  byte
	ProtectShift uint8
}

// Config fully describes one serial memory device for the transfer engine.
// Chip packages provide ready-made configurations; the engine only consumes
// them.
type Config struct {
	Name string
	// Data is the byte-addressable array.
	Data AddressSpace
	// Control describes the control-register space; nil when the chip has
	// none (plain EEPROMs).
	Control *AddressSpace
	// Commands is the register map used by composite commands; nil when
	// Control is nil.
	Commands *ControlSet
	// MaxClockHz is the fastest SCL the device tolerates.
	MaxClockHz uint32
	// SelectPinsMask marks which of bits 1..3 of the chip address are wired
	// to address-select pins on this package.
	SelectPinsMask byte
}

// Validate checks the configuration the way component configs are validated
// in robot configs: everything wrong is reported at once.
func (c *Config) Validate(path string) error {
	var err error
	if c.Name == "" {
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "name"))
	}
	if c.MaxClockHz == 0 {
		err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "max_clock_hz"))
	}
	err = multierr.Append(err, c.Data.validate(path+".data"))
	if c.Control != nil {
		err = multierr.Append(err, c.Control.validate(path+".control"))
		if c.Commands == nil {
			err = multierr.Append(err, goutils.NewConfigValidationFieldRequiredError(path, "commands"))
		}
	}
	return err
}
