// Package eeram drives the Microchip 47x04 / 47x16 I2C EERAM family: an
// SRAM array shadowed by EEPROM, with store/recall commands, an auto-store
// feature, and block write protection. The SRAM is byte addressable with no
// page limit, and transfers may be pipelined in non-blocking bus mode.
//
// The chips expose two address spaces on the bus: the SRAM at chip base
// 0xA0 with a two-byte address, and the control registers at base 0x30. The
// status register holds {EVENT, ASE, BP[2:0], AM}; writing 0x33 or 0xDD to
// the command register at 0x55 triggers a store or recall.
package eeram

import (
	"context"
	"time"

	"github.com/edaniels/golog"

	"github.com/Emandhal/Memories-sub001/buses"
	"github.com/Emandhal/Memories-sub001/memdev"
)

// Chip address bases and control registers, from the 47L04/47C04/47L16/
// 47C16 datasheet.
const (
	SRAMBase    byte = 0xA0
	ControlBase byte = 0x30

	StatusRegisterAddr  byte = 0x00
	CommandRegisterAddr byte = 0x55
	StoreCommand        byte = 0x33
	RecallCommand       byte = 0xDD

	eventBit     byte = 0x01
	autoStoreBit byte = 0x02
	protectMask  byte = 0x1C
	protectShift      = 2
	modifiedBit  byte = 0x80

	maxClockHz uint32 = 1000000
)

// Block write-protection levels: a growing slice of the top of the array.
const (
	NoWriteProtect      memdev.BlockProtect = 0
	ProtectUpper64th    memdev.BlockProtect = 1
	ProtectUpper32nd    memdev.BlockProtect = 2
	ProtectUpper16th    memdev.BlockProtect = 3
	ProtectUpperEighth  memdev.BlockProtect = 4
	ProtectUpperQuarter memdev.BlockProtect = 5
	ProtectUpperHalf    memdev.BlockProtect = 6
	ProtectAll          memdev.BlockProtect = 7
)

// Variant describes one member of the family.
type Variant struct {
	Name string
	// Size of the SRAM array in bytes.
	Size uint32
	// Worst-case store and recall durations from the datasheet.
	StoreTime  time.Duration
	RecallTime time.Duration
}

// The two I2C EERAM densities. Both exist in 1.8V (47Lxx) and 5V (47Cxx)
// flavors with identical protocol behavior.
var (
	EERAM47x04 = Variant{Name: "47x04", Size: 512, StoreTime: 8 * time.Millisecond, RecallTime: 2 * time.Millisecond}
	EERAM47x16 = Variant{Name: "47x16", Size: 2048, StoreTime: 25 * time.Millisecond, RecallTime: 5 * time.Millisecond}
)

// SelectPins builds the chip-address select bits from the A2 and A1 pin
// levels. A0 is not bonded on this family.
func SelectPins(a2, a1 bool) byte {
	var pins byte
	if a2 {
		pins |= 1 << 3
	}
	if a1 {
		pins |= 1 << 2
	}
	return pins
}

// Device is a handle to one EERAM chip.
type Device struct {
	dev     *memdev.Device
	variant Variant
}

// New wires a handle for the given variant. pins is the state of the A2/A1
// address-select pins (use SelectPins); clockHz the bus clock configured at
// Init, at most 1 MHz for this family.
func New(bus buses.I2C, variant Variant, pins byte, clockHz uint32, logger golog.Logger, opts ...memdev.Option) (*Device, error) {
	conf := &memdev.Config{
		Name: variant.Name,
		Data: memdev.AddressSpace{
			Base:      SRAMBase,
			AddrBytes: 2,
			PageSize:  variant.Size,
			TotalSize: variant.Size,
		},
		Control: &memdev.AddressSpace{
			Base:      ControlBase,
			AddrBytes: 1,
			PageSize:  256,
			TotalSize: 256,
		},
		Commands: &memdev.ControlSet{
			StatusAddr:   StatusRegisterAddr,
			CommandAddr:  CommandRegisterAddr,
			StoreCmd:     StoreCommand,
			RecallCmd:    RecallCommand,
			StoreTime:    variant.StoreTime,
			RecallTime:   variant.RecallTime,
			EventBit:     eventBit,
			AutoStoreBit: autoStoreBit,
			ModifiedBit:  modifiedBit,
			ProtectMask:  protectMask,
			ProtectShift: protectShift,
		},
		MaxClockHz:     maxClockHz,
		SelectPinsMask: SelectPins(true, true),
	}
	dev, err := memdev.NewDevice(bus, conf, pins, clockHz, logger, opts...)
	if err != nil {
		return nil, err
	}
	return &Device{dev: dev, variant: variant}, nil
}

// Init configures the bus and probes the chip.
func (d *Device) Init(ctx context.Context) error { return d.dev.Init(ctx) }

// IsReady reports whether the chip acknowledges its bus address.
func (d *Device) IsReady(ctx context.Context) bool { return d.dev.IsReady(ctx) }

// Size returns the SRAM array size in bytes.
func (d *Device) Size() uint32 { return d.variant.Size }

// ReadSRAM reads len(data) bytes of SRAM starting at offset.
func (d *Device) ReadSRAM(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.ReadData(ctx, d.dev.Data(), offset, data)
}

// WriteSRAM writes data into SRAM starting at offset. SRAM writes have no
// page limit and complete as fast as the bus clocks them.
func (d *Device) WriteSRAM(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.WriteData(ctx, d.dev.Data(), offset, data)
}

// ReadSRAMAsync starts or continues a pipelined SRAM read; see
// memdev.Device.ReadDataAsync for the continuation protocol.
func (d *Device) ReadSRAMAsync(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.ReadDataAsync(ctx, d.dev.Data(), offset, data)
}

// WriteSRAMAsync starts or continues a pipelined SRAM write.
func (d *Device) WriteSRAMAsync(ctx context.Context, offset uint32, data []byte) error {
	return d.dev.WriteDataAsync(ctx, d.dev.Data(), offset, data)
}

// TransferInProgress reports whether a pipelined transfer is outstanding.
func (d *Device) TransferInProgress() bool { return d.dev.TransferInProgress() }

// Status reads the unpacked status register.
func (d *Device) Status(ctx context.Context) (memdev.Status, error) { return d.dev.Status(ctx) }

// Store copies the SRAM to EEPROM. Unless force is set the command is
// skipped when the array is unmodified; with wait set the call blocks until
// the store finishes or times out.
func (d *Device) Store(ctx context.Context, force, wait bool) error {
	return d.dev.Store(ctx, force, wait)
}

// Recall restores the SRAM from EEPROM.
func (d *Device) Recall(ctx context.Context, wait bool) error { return d.dev.Recall(ctx, wait) }

// SetAutoStore enables or disables the automatic store on power loss.
func (d *Device) SetAutoStore(ctx context.Context, enable bool) error {
	return d.dev.SetAutoStore(ctx, enable)
}

// SetBlockWriteProtect write protects the selected top slice of the array.
func (d *Device) SetBlockWriteProtect(ctx context.Context, level memdev.BlockProtect) error {
	return d.dev.SetBlockWriteProtect(ctx, level)
}
