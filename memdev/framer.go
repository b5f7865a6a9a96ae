package memdev

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
)

// chipAddr builds the device address for a transfer at offset within space:
// the fixed base, the address-select pins, and, for chips that bank their
// array across select pins, the high address bits folded into the masked
// pin positions.
func (d *Device) chipAddr(space *AddressSpace, offset uint32) byte {
	pins := d.selectPins
	if space.BankMask != 0 {
		bank := byte(offset>>uint(8*space.AddrBytes-1)) & space.BankMask
		pins = (pins &^ space.BankMask) | bank
	}
	return (space.Base | pins) & buses.WriteMask
}

// writeAddress frames the memory address as the first half of a compound
// transfer: address bytes most significant first, no stop, so the data phase
// that follows keeps ownership of the bus. A NACK here means the device is
// mid write cycle; a NACK on a later address byte means the offset is not
// addressable for this function.
func (d *Device) writeAddress(
	ctx context.Context,
	space *AddressSpace,
	offset uint32,
	nonBlocking bool,
	phase buses.TransferPhase,
) error {
	buf := make([]byte, space.AddrBytes)
	for i := range buf {
		buf[i] = byte(offset >> uint(8*(space.AddrBytes-1-i)))
	}
	pkt := buses.Packet{
		ChipAddr:    buses.WriteAddr(d.chipAddr(space, offset)),
		Phase:       phase,
		Start:       true,
		Stop:        false,
		Data:        buf,
		NonBlocking: nonBlocking,
	}
	err := d.bus.Transfer(ctx, &pkt)
	switch {
	case errors.Is(err, buses.ErrNack):
		return errors.Wrap(ErrNotReady, d.conf.Name)
	case errors.Is(err, buses.ErrNackOnData):
		return errors.Wrap(ErrInvalidAddress, d.conf.Name)
	}
	return err
}
