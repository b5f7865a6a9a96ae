// Package buses describes the two-wire bus primitive that the memory drivers
// are built on: a single addressed transfer with explicit start/stop framing,
// so a driver can compose the address phase and the data phase of a compound
// transfer without releasing the bus in between.
package buses

import (
	"context"
)

// Chip addresses follow the 8-bit datasheet convention: the upper seven bits
// select the device, bit 0 is the read/write bit.
const (
	ReadBit   byte = 0x01
	WriteMask byte = 0xFE
)

// ReadAddr returns the chip address with the read bit set.
func ReadAddr(addr byte) byte { return addr | ReadBit }

// WriteAddr returns the chip address with the read bit cleared.
func WriteAddr(addr byte) byte { return addr & WriteMask }

// TransferPhase tells the bus where a packet sits inside a compound transfer,
// so implementations that drive restarts in hardware can set up correctly.
type TransferPhase byte

const (
	// Simple is a self-contained transfer: start, payload, stop.
	Simple TransferPhase = iota
	// WriteThenReadFirst is the write half of a write-then-read compound
	// transfer; the bus must not be released afterwards.
	WriteThenReadFirst
	// WriteThenReadSecond is the read half following WriteThenReadFirst,
	// issued with a repeated start.
	WriteThenReadSecond
	// WriteThenWriteFirst is the first write of a write-then-write compound
	// transfer.
	WriteThenWriteFirst
	// WriteThenWriteSecond continues WriteThenWriteFirst without a new
	// address byte on the wire.
	WriteThenWriteSecond
)

// Packet describes one addressed transfer. Data is nil for an address-only
// probe (presence check or non-blocking status query).
type Packet struct {
	// ChipAddr is the device address in 8-bit convention; bit 0 selects the
	// transfer direction.
	ChipAddr byte
	// Phase places this packet inside a compound transfer.
	Phase TransferPhase
	// Start requests a start (or repeated start if the previous packet was
	// not stopped) before the payload.
	Start bool
	// Stop releases the bus after the last byte of this packet.
	Stop bool
	// Data is written to or filled from the device depending on the
	// direction bit of ChipAddr.
	Data []byte
	// NonBlocking asks the bus to pipeline the transfer (DMA or interrupt
	// driven) instead of waiting for completion.
	NonBlocking bool
	// Transaction correlates a status probe with an earlier transfer the bus
	// accepted in non-blocking mode. The bus assigns it when it returns
	// ErrBusy for a freshly issued transfer; the caller hands it back
	// unchanged on every probe for that transfer.
	Transaction uint8
}

// I2C is one two-wire bus, shared by every device wired to it.
//
// Transfer performs a single addressed transfer and reports how the device
// answered: nil on success, ErrNack when the device did not acknowledge its
// address, ErrNackOnData when it rejected a payload byte, ErrBusy when a
// non-blocking transfer was accepted but is still in flight, ErrOtherBusy
// when the bus is currently owned by a different pipelined transaction. Any
// other error is a transport fault and is passed through to callers
// uninterpreted.
//
// A bus that cannot track the status of a specific in-flight transfer must
// simply never return ErrBusy; drivers then fall back to blocking behavior.
type I2C interface {
	// Init configures the bus for the given SCL frequency in hertz. It is
	// called once per driver initialization and may be called again with the
	// same or a lower frequency when another device shares the bus.
	Init(ctx context.Context, clockHz uint32) error
	// Transfer performs one addressed transfer as described by pkt.
	Transfer(ctx context.Context, pkt *Packet) error
}
