package memdev

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
)

// BlockProtect selects how much of the top of the array the chip write
// protects. Zero means no protection; each chip package names the levels
// its datasheet defines.
type BlockProtect uint8

// Status is the unpacked view of a device status register, laid out by the
// ControlSet bit masks of the configuration.
type Status struct {
	// Event reports an event detected on the hardware-store pin.
	Event bool
	// AutoStore reports whether the automatic store on power-loss feature
	// is enabled.
	AutoStore bool
	// Modified reports that the volatile array differs from its
	// non-volatile backing copy.
	Modified bool
	// Protect is the current block write-protection level.
	Protect BlockProtect
}

func (cs *ControlSet) unpack(raw byte) Status {
	return Status{
		Event:     raw&cs.EventBit != 0,
		AutoStore: raw&cs.AutoStoreBit != 0,
		Modified:  raw&cs.ModifiedBit != 0,
		Protect:   BlockProtect((raw & cs.ProtectMask) >> cs.ProtectShift),
	}
}

// Status reads and unpacks the status register.
func (d *Device) Status(ctx context.Context) (Status, error) {
	if d.conf.Commands == nil {
		return Status{}, errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	raw, err := d.ReadRegister(ctx)
	if err != nil {
		return Status{}, err
	}
	return d.conf.Commands.unpack(raw), nil
}

// Store copies the volatile array to its non-volatile backing store. Unless
// force is set, the command is only issued when the status register reports
// the array modified. With wait set, the call polls the modified bit until
// the store completes, bounded by the chip's worst-case store time.
func (d *Device) Store(ctx context.Context, force, wait bool) error {
	cs := d.conf.Commands
	if cs == nil {
		return errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	if !force {
		status, err := d.Status(ctx)
		if err != nil {
			return err
		}
		if !status.Modified {
			return nil
		}
	}
	if err := d.WriteRegister(ctx, cs.CommandAddr, cs.StoreCmd); err != nil {
		return err
	}
	if !wait {
		return nil
	}
	return d.waitStatusClear(ctx, cs.ModifiedBit, cs.StoreTime)
}

// Recall overwrites the volatile array with its non-volatile backing copy.
// With wait set, the call polls until the recall completes.
func (d *Device) Recall(ctx context.Context, wait bool) error {
	cs := d.conf.Commands
	if cs == nil {
		return errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	if err := d.WriteRegister(ctx, cs.CommandAddr, cs.RecallCmd); err != nil {
		return err
	}
	if !wait {
		return nil
	}
	return d.waitStatusClear(ctx, cs.ModifiedBit, cs.RecallTime)
}

// SetAutoStore enables or disables the automatic store feature via a
// read-modify-write of the status register. Only the auto-store bit changes
// relative to what was read.
func (d *Device) SetAutoStore(ctx context.Context, enable bool) error {
	cs := d.conf.Commands
	if cs == nil {
		return errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	raw, err := d.ReadRegister(ctx)
	if err != nil {
		return err
	}
	if enable {
		raw |= cs.AutoStoreBit
	} else {
		raw &^= cs.AutoStoreBit
	}
	return d.WriteRegister(ctx, cs.StatusAddr, raw)
}

// SetBlockWriteProtect sets the block write-protection level via a
// read-modify-write of the status register.
func (d *Device) SetBlockWriteProtect(ctx context.Context, level BlockProtect) error {
	cs := d.conf.Commands
	if cs == nil {
		return errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	raw, err := d.ReadRegister(ctx)
	if err != nil {
		return err
	}
	raw = (raw &^ cs.ProtectMask) | ((byte(level) << cs.ProtectShift) & cs.ProtectMask)
	return d.WriteRegister(ctx, cs.StatusAddr, raw)
}

// waitStatusClear polls the status register until bit clears. The deadline
// is the worst-case operation latency plus one millisecond, since the clock
// may be sampled just before a millisecond boundary. A NACK while polling is
// tolerated: the device may drop off the bus while internally busy. Any
// other transport error aborts.
func (d *Device) waitStatusClear(ctx context.Context, bit byte, window time.Duration) error {
	deadline := d.clock.Now().Add(window + time.Millisecond)
	for {
		raw, err := d.ReadRegister(ctx)
		if err != nil && !errors.Is(err, buses.ErrNack) {
			return err
		}
		if err == nil && raw&bit == 0 {
			return nil
		}
		if !d.clock.Now().Before(deadline) {
			return errors.Wrap(ErrDeviceTimeout, d.conf.Name)
		}
	}
}
