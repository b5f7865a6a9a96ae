package memdev

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
)

// Data returns the descriptor of the device's data array, for use with the
// space-based transfer operations.
func (d *Device) Data() *AddressSpace { return &d.conf.Data }

// Control returns the control-register space descriptor, or nil.
func (d *Device) Control() *AddressSpace { return d.conf.Control }

// ReadData reads len(data) bytes starting at offset from space, splitting
// the request at page boundaries. The range is checked before any bus
// activity. When the space carries a retry window, a page whose address
// phase is not acknowledged is retried until the window expires; otherwise
// ErrNotReady surfaces immediately and the caller owns the retry policy.
func (d *Device) ReadData(ctx context.Context, space *AddressSpace, offset uint32, data []byte) error {
	return d.access(ctx, space, offset, data, false)
}

// WriteData writes data starting at offset into space, page by page. Like
// the chips themselves, the engine does not wait for the final page's
// internal write cycle; call WaitReady when that matters.
func (d *Device) WriteData(ctx context.Context, space *AddressSpace, offset uint32, data []byte) error {
	return d.access(ctx, space, offset, data, true)
}

func (d *Device) access(ctx context.Context, space *AddressSpace, offset uint32, data []byte, write bool) error {
	if uint64(offset)+uint64(len(data)) > uint64(space.TotalSize) {
		return errors.Wrapf(ErrOutOfRange, "%s: %d+%d > %d", d.conf.Name, offset, len(data), space.TotalSize)
	}
	for len(data) > 0 {
		chunk := space.PageSize - (offset & (space.PageSize - 1))
		if uint32(len(data)) < chunk {
			chunk = uint32(len(data))
		}

		deadline := d.clock.Now().Add(space.RetryWindow + time.Millisecond)
		for {
			err := d.transferPage(ctx, space, offset, data[:chunk], write)
			if err == nil {
				break
			}
			if space.RetryWindow == 0 || !errors.Is(err, ErrNotReady) {
				return err
			}
			if !d.clock.Now().Before(deadline) {
				return errors.Wrap(ErrDeviceTimeout, d.conf.Name)
			}
		}

		offset += chunk
		data = data[chunk:]
	}
	return nil
}

// transferPage performs one page-bounded compound transfer: framed address,
// then the data phase closing the transaction.
func (d *Device) transferPage(ctx context.Context, space *AddressSpace, offset uint32, data []byte, write bool) error {
	if write {
		if err := d.writeAddress(ctx, space, offset, false, buses.WriteThenWriteFirst); err != nil {
			return err
		}
		pkt := buses.Packet{
			ChipAddr: buses.WriteAddr(d.chipAddr(space, offset)),
			Phase:    buses.WriteThenWriteSecond,
			Start:    false,
			Stop:     true,
			Data:     data,
		}
		return d.bus.Transfer(ctx, &pkt)
	}
	if err := d.writeAddress(ctx, space, offset, false, buses.WriteThenReadFirst); err != nil {
		return err
	}
	pkt := buses.Packet{
		ChipAddr: buses.ReadAddr(d.chipAddr(space, offset)),
		Phase:    buses.WriteThenReadSecond,
		Start:    true,
		Stop:     true,
		Data:     data,
	}
	return d.bus.Transfer(ctx, &pkt)
}

// ReadDataAsync starts or continues a non-blocking read of len(data) bytes
// at offset. The first call issues the transfer in non-blocking bus mode;
// if the bus pipelines it, buses.ErrBusy is returned and the handle records
// the transaction. Every later call probes that transaction with an
// address-only transfer until the bus reports something other than
// buses.ErrBusy or buses.ErrOtherBusy, at which point the in-progress state
// is cleared and the outcome returned. The buffer must stay untouched until
// completion. One request may be outstanding per handle.
func (d *Device) ReadDataAsync(ctx context.Context, space *AddressSpace, offset uint32, data []byte) error {
	return d.accessAsync(ctx, space, offset, data, false)
}

// WriteDataAsync is the write counterpart of ReadDataAsync.
func (d *Device) WriteDataAsync(ctx context.Context, space *AddressSpace, offset uint32, data []byte) error {
	return d.accessAsync(ctx, space, offset, data, true)
}

// TransferInProgress reports whether a non-blocking transfer is awaiting
// completion on this handle.
func (d *Device) TransferInProgress() bool { return d.cont.active }

func (d *Device) accessAsync(ctx context.Context, space *AddressSpace, offset uint32, data []byte, write bool) error {
	if d.cont.active {
		return d.pollContinuation(ctx, space)
	}
	if uint64(offset)+uint64(len(data)) > uint64(space.TotalSize) {
		return errors.Wrapf(ErrOutOfRange, "%s: %d+%d > %d", d.conf.Name, offset, len(data), space.TotalSize)
	}
	// A pipelined transfer is a single data phase with no opportunity to
	// re-address, so it must not cross a page boundary.
	if pageRemain := space.PageSize - (offset & (space.PageSize - 1)); uint32(len(data)) > pageRemain {
		return errors.Wrapf(ErrOutOfRange, "%s: %d bytes cross page boundary", d.conf.Name, len(data))
	}

	firstPhase, secondPhase := buses.WriteThenReadFirst, buses.WriteThenReadSecond
	if write {
		firstPhase, secondPhase = buses.WriteThenWriteFirst, buses.WriteThenWriteSecond
	}
	if err := d.writeAddress(ctx, space, offset, true, firstPhase); err != nil {
		return err
	}
	pkt := buses.Packet{
		Phase:       secondPhase,
		Start:       !write,
		Stop:        true,
		Data:        data,
		NonBlocking: true,
	}
	if write {
		pkt.ChipAddr = buses.WriteAddr(d.chipAddr(space, offset))
	} else {
		pkt.ChipAddr = buses.ReadAddr(d.chipAddr(space, offset))
	}
	err := d.bus.Transfer(ctx, &pkt)
	if !errors.Is(err, buses.ErrOtherBusy) {
		d.cont = continuation{}
	}
	if errors.Is(err, buses.ErrBusy) {
		d.cont = continuation{active: true, transaction: pkt.Transaction}
	}
	return err
}

// pollContinuation probes the status of the pipelined transfer this handle
// is awaiting: an address-only transfer correlated by the stored transaction
// number. The in-progress flag survives only buses.ErrBusy (still flying)
// and buses.ErrOtherBusy (bus lent to someone else, try again later); every
// other outcome completes the transfer, successfully or not.
func (d *Device) pollContinuation(ctx context.Context, space *AddressSpace) error {
	pkt := buses.Packet{
		ChipAddr:    buses.ReadAddr(d.chipAddr(space, 0)),
		Phase:       buses.Simple,
		Start:       true,
		Stop:        true,
		NonBlocking: true,
		Transaction: d.cont.transaction,
	}
	err := d.bus.Transfer(ctx, &pkt)
	if !errors.Is(err, buses.ErrBusy) && !errors.Is(err, buses.ErrOtherBusy) {
		d.cont = continuation{}
	}
	return err
}
