//go:build linux

// Package genericlinux adapts a /dev/i2c-N device to the buses.I2C
// primitive for generic Linux systems.
//
// The kernel's i2c-dev interface exposes whole transactions, not partial
// ones, so compound transfers are coalesced: a no-stop write phase is
// buffered and sent together with the data phase that closes the transfer.
// For a closing read the buffered address bytes go out as a plain write
// first; serial memories latch the address across the stop, so the
// following read starts at the right offset. The interface is synchronous,
// therefore this bus never returns buses.ErrBusy and drivers fall back to
// blocking behavior on their non-blocking surfaces.
package genericlinux

import (
	"context"
	"sync"
	"syscall"

	i2c "github.com/d2r2/go-i2c"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/Emandhal/Memories-sub001/buses"
)

// Bus is one /dev/i2c-N adapter. Handles are opened lazily per chip
// address and kept for the life of the bus.
type Bus struct {
	number int

	mu         sync.Mutex
	handles    map[byte]*i2c.I2C
	pending    []byte
	hasPending bool
}

// NewBus returns a bus for /dev/i2c-<number>.
func NewBus(number int) *Bus {
	return &Bus{number: number, handles: make(map[byte]*i2c.I2C)}
}

// Init implements buses.I2C. The SCL frequency of an i2c-dev adapter is
// fixed by the device tree, so there is nothing to configure at runtime.
func (b *Bus) Init(ctx context.Context, clockHz uint32) error {
	return nil
}

// Close releases every open chip handle.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	var err error
	for addr, h := range b.handles {
		err = multierr.Combine(err, h.Close())
		delete(b.handles, addr)
	}
	return err
}

func (b *Bus) handle(addr7 byte) (*i2c.I2C, error) {
	if h, ok := b.handles[addr7]; ok {
		return h, nil
	}
	h, err := i2c.NewI2C(addr7, b.number)
	if err != nil {
		return nil, err
	}
	b.handles[addr7] = h
	return h, nil
}

// Transfer implements buses.I2C.
func (b *Bus) Transfer(ctx context.Context, pkt *buses.Packet) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	addr7 := pkt.ChipAddr >> 1
	read := pkt.ChipAddr&buses.ReadBit != 0

	if !pkt.Stop && !read {
		// Opening phase of a compound transfer: buffer until the closing
		// phase so the kernel sees one transaction. A NACK here is reported
		// on the closing phase instead.
		b.pending = append(b.pending[:0], pkt.Data...)
		b.hasPending = true
		return nil
	}

	h, err := b.handle(addr7)
	if err != nil {
		return err
	}

	if pkt.Data == nil {
		// Presence probe. A write of zero bytes never reaches the wire, so
		// probe with a one-byte current-address read, which these chips
		// answer without side effects.
		var probe [1]byte
		_, err := h.ReadBytes(probe[:])
		return mapErr(err)
	}

	if read {
		if b.hasPending {
			b.hasPending = false
			if _, err := h.WriteBytes(b.pending); err != nil {
				return mapErr(err)
			}
		}
		_, err := h.ReadBytes(pkt.Data)
		return mapErr(err)
	}

	out := pkt.Data
	if b.hasPending {
		b.hasPending = false
		out = append(b.pending, pkt.Data...)
	}
	_, err = h.WriteBytes(out)
	return mapErr(err)
}

// mapErr converts kernel errors to bus acknowledge outcomes: the i2c-dev
// driver answers EREMOTEIO or ENXIO when the device does not acknowledge.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	var errno syscall.Errno
	if errors.As(err, &errno) && (errno == syscall.EREMOTEIO || errno == syscall.ENXIO) {
		return buses.ErrNack
	}
	return err
}
