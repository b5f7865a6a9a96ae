// Package fakebus simulates a serial memory chip behind the bus interface,
// for driver tests that need real read-back semantics: a byte array with
// page-style addressing, a status/command register pair, and a scriptable
// "internally busy" NACK phase. It also records every transfer so tests can
// assert how a request was split on the wire.
package fakebus

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
)

// Access is one completed data-phase transfer against a memory array.
type Access struct {
	// Base is the chip-address base the transfer targeted.
	Base   byte
	Offset uint32
	Len    int
	Write  bool
}

// Chip is a fake serial memory device on a fake bus. The zero value is not
// usable; fill in the geometry fields first.
type Chip struct {
	// Base is the data-array chip address base (e.g. 0xA0); AddrBytes the
	// width of the framed memory address; BankMask the chip-address bits
	// carrying high memory-address bits, if any.
	Base      byte
	AddrBytes int
	BankMask  byte
	// Mem is the backing array; its length is the address-space size.
	Mem []byte

	// IdentityBase enables a read-only identity page when nonzero.
	IdentityBase byte
	Identity     []byte

	// ControlBase enables a control-register space when nonzero.
	ControlBase byte
	StatusAddr  byte
	CommandAddr byte
	StoreCmd    byte
	RecallCmd   byte
	ModifiedBit byte
	// Status is the raw status register value.
	Status byte

	// NackAddr makes the chip NACK the next n address phases and presence
	// probes, the way a device mid write cycle behaves.
	NackAddr int

	// Recorded activity.
	InitCalls int
	ClockHz   uint32
	Transfers int
	Accesses  []Access
	ChipAddrs []byte

	pendingOffset uint32
	pendingValid  bool
	pendingReg    byte
	regPending    bool
}

var _ buses.I2C = (*Chip)(nil)

// Init records the bus configuration call.
func (c *Chip) Init(ctx context.Context, clockHz uint32) error {
	c.InitCalls++
	c.ClockHz = clockHz
	return nil
}

// Transfer implements the bus primitive against the simulated chip.
func (c *Chip) Transfer(ctx context.Context, pkt *buses.Packet) error {
	c.Transfers++
	c.ChipAddrs = append(c.ChipAddrs, pkt.ChipAddr)

	if pkt.Data == nil {
		// Address-only probe.
		if c.NackAddr > 0 {
			c.NackAddr--
			return buses.ErrNack
		}
		return nil
	}

	top := pkt.ChipAddr & 0xF0
	if c.ControlBase != 0 && top == c.ControlBase&0xF0 {
		return c.controlTransfer(pkt)
	}
	if c.IdentityBase != 0 && top == c.IdentityBase&0xF0 {
		return c.dataTransfer(pkt, top, c.Identity, true)
	}
	if top == c.Base&0xF0 {
		return c.dataTransfer(pkt, top, c.Mem, false)
	}
	return buses.ErrNack
}

func (c *Chip) controlTransfer(pkt *buses.Packet) error {
	if pkt.ChipAddr&buses.ReadBit != 0 {
		pkt.Data[0] = c.Status
		return nil
	}
	if !pkt.Stop {
		// Register address phase.
		if c.NackAddr > 0 {
			c.NackAddr--
			return buses.ErrNack
		}
		c.pendingReg = pkt.Data[0]
		c.regPending = true
		return nil
	}
	if !c.regPending {
		return buses.ErrNackOnData
	}
	c.regPending = false
	value := pkt.Data[0]
	switch c.pendingReg {
	case c.StatusAddr:
		c.Status = value
	case c.CommandAddr:
		switch value {
		case c.StoreCmd, c.RecallCmd:
			c.Status &^= c.ModifiedBit
		default:
			return buses.ErrNackOnData
		}
	default:
		return buses.ErrNackOnData
	}
	return nil
}

func (c *Chip) dataTransfer(pkt *buses.Packet, base byte, mem []byte, readOnly bool) error {
	if !pkt.Stop && pkt.ChipAddr&buses.ReadBit == 0 {
		// Framed memory address, most significant byte first.
		if c.NackAddr > 0 {
			c.NackAddr--
			return buses.ErrNack
		}
		if len(pkt.Data) != c.AddrBytes {
			return errors.Errorf("fakebus: expected %d address bytes, got %d", c.AddrBytes, len(pkt.Data))
		}
		var offset uint32
		for _, b := range pkt.Data {
			offset = offset<<8 | uint32(b)
		}
		if c.BankMask != 0 && base == c.Base&0xF0 {
			offset |= uint32(pkt.ChipAddr&c.BankMask) << uint(8*c.AddrBytes-1)
		}
		if offset >= uint32(len(mem)) {
			return buses.ErrNackOnData
		}
		c.pendingOffset = offset
		c.pendingValid = true
		return nil
	}

	if !c.pendingValid {
		return buses.ErrNack
	}
	c.pendingValid = false
	offset := c.pendingOffset
	if offset+uint32(len(pkt.Data)) > uint32(len(mem)) {
		return buses.ErrNackOnData
	}
	write := pkt.ChipAddr&buses.ReadBit == 0
	if write {
		if readOnly {
			return buses.ErrNackOnData
		}
		copy(mem[offset:], pkt.Data)
	} else {
		copy(pkt.Data, mem[offset:])
	}
	c.Accesses = append(c.Accesses, Access{Base: base, Offset: offset, Len: len(pkt.Data), Write: write})
	return nil
}
