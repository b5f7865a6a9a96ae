package memdev

import (
	"context"

	"github.com/pkg/errors"

	"github.com/Emandhal/Memories-sub001/buses"
)

// ReadRegister reads the device's status register: a single-byte read at
// the control-register chip address, no address phase needed. The raw byte
// is returned; see Status for the unpacked view.
func (d *Device) ReadRegister(ctx context.Context) (byte, error) {
	if d.conf.Control == nil {
		return 0, errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	buf := make([]byte, 1)
	pkt := buses.Packet{
		ChipAddr: buses.ReadAddr(d.chipAddr(d.conf.Control, 0)),
		Phase:    buses.Simple,
		Start:    true,
		Stop:     true,
		Data:     buf,
	}
	if err := d.bus.Transfer(ctx, &pkt); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// WriteRegister writes one byte to a control register: the register address
// framed as the first half of a write-then-write transfer, then the value.
// The chips answer a NACK on the data phase when the byte is not a command
// they accept, which is reported as ErrInvalidCommand.
func (d *Device) WriteRegister(ctx context.Context, reg, value byte) error {
	if d.conf.Control == nil {
		return errors.Wrap(ErrNoControlSpace, d.conf.Name)
	}
	if err := d.writeAddress(ctx, d.conf.Control, uint32(reg), false, buses.WriteThenWriteFirst); err != nil {
		return err
	}
	pkt := buses.Packet{
		ChipAddr: buses.WriteAddr(d.chipAddr(d.conf.Control, 0)),
		Phase:    buses.WriteThenWriteSecond,
		Start:    false,
		Stop:     true,
		Data:     []byte{value},
	}
	err := d.bus.Transfer(ctx, &pkt)
	if errors.Is(err, buses.ErrNackOnData) {
		return errors.Wrap(ErrInvalidCommand, d.conf.Name)
	}
	return err
}
