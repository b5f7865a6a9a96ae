package memdev

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"go.viam.com/test"

	"github.com/Emandhal/Memories-sub001/buses"
	"github.com/Emandhal/Memories-sub001/testutils/inject"
)

func TestChipAddrSelectPins(t *testing.T) {
	conf := testConfig()
	conf.SelectPinsMask = 0x0C
	// Pins outside the package's bonded mask are ignored.
	d, err := NewDevice(newTestChip(), conf, 0x0E, 400000, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.chipAddr(d.Data(), 0), test.ShouldEqual, byte(0xAC))
}

func TestChipAddrFoldsBankBits(t *testing.T) {
	conf := testConfig()
	conf.Data = AddressSpace{Base: 0xA0, AddrBytes: 1, BankMask: 0x06, PageSize: 16, TotalSize: 1024}
	conf.SelectPinsMask = 0x08
	d, err := NewDevice(newTestChip(), conf, 0x08, 400000, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	space := d.Data()
	// Address bits 8..9 land on chip-address bits 1..2.
	test.That(t, d.chipAddr(space, 0x000), test.ShouldEqual, byte(0xA8))
	test.That(t, d.chipAddr(space, 0x0FF), test.ShouldEqual, byte(0xA8))
	test.That(t, d.chipAddr(space, 0x100), test.ShouldEqual, byte(0xAA))
	test.That(t, d.chipAddr(space, 0x300), test.ShouldEqual, byte(0xAE))
}

func TestAddressFramedMostSignificantFirst(t *testing.T) {
	var pkts []buses.Packet
	bus := &inject.I2C{TransferFunc: func(ctx context.Context, pkt *buses.Packet) error {
		pkts = append(pkts, *pkt)
		return nil
	}}
	conf := testConfig()
	conf.Data = AddressSpace{Base: 0xA0, AddrBytes: 2, PageSize: 64, TotalSize: 32768}
	d := newTestDevice(t, bus, conf)

	test.That(t, d.WriteData(context.Background(), d.Data(), 0x1234, []byte{0xAB}), test.ShouldBeNil)
	test.That(t, pkts, test.ShouldHaveLength, 2)
	test.That(t, pkts[0].ChipAddr, test.ShouldEqual, byte(0xA0))
	test.That(t, pkts[0].Data, test.ShouldResemble, []byte{0x12, 0x34})
	test.That(t, pkts[0].Start, test.ShouldBeTrue)
	test.That(t, pkts[0].Stop, test.ShouldBeFalse)
	test.That(t, pkts[1].Data, test.ShouldResemble, []byte{0xAB})
	test.That(t, pkts[1].Start, test.ShouldBeFalse)
	test.That(t, pkts[1].Stop, test.ShouldBeTrue)
}

func TestReadReaddressesWithRepeatedStart(t *testing.T) {
	var pkts []buses.Packet
	bus := &inject.I2C{TransferFunc: func(ctx context.Context, pkt *buses.Packet) error {
		pkts = append(pkts, *pkt)
		return nil
	}}
	conf := testConfig()
	conf.Data = AddressSpace{Base: 0xA0, AddrBytes: 1, PageSize: 8, TotalSize: 256}
	d := newTestDevice(t, bus, conf)

	test.That(t, d.ReadData(context.Background(), d.Data(), 0x80, make([]byte, 4)), test.ShouldBeNil)
	test.That(t, pkts, test.ShouldHaveLength, 2)
	test.That(t, pkts[0].ChipAddr, test.ShouldEqual, byte(0xA0))
	test.That(t, pkts[0].Phase, test.ShouldEqual, buses.WriteThenReadFirst)
	test.That(t, pkts[0].Data, test.ShouldResemble, []byte{0x80})
	test.That(t, pkts[1].ChipAddr, test.ShouldEqual, byte(0xA1))
	test.That(t, pkts[1].Phase, test.ShouldEqual, buses.WriteThenReadSecond)
	test.That(t, pkts[1].Start, test.ShouldBeTrue)
	test.That(t, pkts[1].Stop, test.ShouldBeTrue)
}
