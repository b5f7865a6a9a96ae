package memdev

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/Emandhal/Memories-sub001/buses"
	"github.com/Emandhal/Memories-sub001/testutils/inject"
)

func TestAsyncOnSynchronousBusCompletesInline(t *testing.T) {
	chip := newTestChip()
	d := newTestDevice(t, chip, testConfig())

	data := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	test.That(t, d.WriteDataAsync(context.Background(), d.Data(), 8, data), test.ShouldBeNil)
	test.That(t, d.TransferInProgress(), test.ShouldBeFalse)
	test.That(t, chip.Mem[8:12], test.ShouldResemble, data)

	got := make([]byte, 4)
	test.That(t, d.ReadDataAsync(context.Background(), d.Data(), 8, got), test.ShouldBeNil)
	test.That(t, d.TransferInProgress(), test.ShouldBeFalse)
	test.That(t, got, test.ShouldResemble, data)
}

func TestAsyncRejectsPageCrossing(t *testing.T) {
	chip := newTestChip()
	d := newTestDevice(t, chip, testConfig())

	// A pipelined transfer is a single data phase; it cannot re-address at a
	// page boundary.
	err := d.WriteDataAsync(context.Background(), d.Data(), testPageSize-2, make([]byte, 4))
	test.That(t, errors.Is(err, ErrOutOfRange), test.ShouldBeTrue)

	err = d.ReadDataAsync(context.Background(), d.Data(), testTotalSize-2, make([]byte, 4))
	test.That(t, errors.Is(err, ErrOutOfRange), test.ShouldBeTrue)

	test.That(t, chip.Transfers, test.ShouldEqual, 0)
}

func TestAsyncContinuationProtocol(t *testing.T) {
	var pkts []buses.Packet
	script := []error{nil, buses.ErrBusy, buses.ErrBusy, buses.ErrOtherBusy, nil}
	step := 0
	bus := &inject.I2C{TransferFunc: func(ctx context.Context, pkt *buses.Packet) error {
		pkts = append(pkts, *pkt)
		err := script[step]
		if step == 1 {
			// The bus numbers the accepted transfer.
			pkt.Transaction = 7
		}
		step++
		return err
	}}
	d := newTestDevice(t, bus, testConfig())

	data := make([]byte, 8)
	err := d.WriteDataAsync(context.Background(), d.Data(), 0, data)
	test.That(t, errors.Is(err, buses.ErrBusy), test.ShouldBeTrue)
	test.That(t, d.TransferInProgress(), test.ShouldBeTrue)

	test.That(t, pkts, test.ShouldHaveLength, 2)
	test.That(t, pkts[0].Phase, test.ShouldEqual, buses.WriteThenWriteFirst)
	test.That(t, pkts[0].Stop, test.ShouldBeFalse)
	test.That(t, pkts[0].NonBlocking, test.ShouldBeTrue)
	test.That(t, pkts[1].Phase, test.ShouldEqual, buses.WriteThenWriteSecond)
	test.That(t, pkts[1].Stop, test.ShouldBeTrue)
	test.That(t, pkts[1].NonBlocking, test.ShouldBeTrue)

	// Still flying.
	err = d.WriteDataAsync(context.Background(), d.Data(), 0, data)
	test.That(t, errors.Is(err, buses.ErrBusy), test.ShouldBeTrue)
	test.That(t, d.TransferInProgress(), test.ShouldBeTrue)

	// Bus lent to another transaction; ours is still pending.
	err = d.WriteDataAsync(context.Background(), d.Data(), 0, data)
	test.That(t, errors.Is(err, buses.ErrOtherBusy), test.ShouldBeTrue)
	test.That(t, d.TransferInProgress(), test.ShouldBeTrue)

	// Done.
	test.That(t, d.WriteDataAsync(context.Background(), d.Data(), 0, data), test.ShouldBeNil)
	test.That(t, d.TransferInProgress(), test.ShouldBeFalse)

	// Each probe is an address-only transfer correlated by the transaction
	// number the bus assigned.
	for _, probe := range pkts[2:] {
		test.That(t, probe.ChipAddr, test.ShouldEqual, buses.ReadAddr(0xA0))
		test.That(t, probe.Phase, test.ShouldEqual, buses.Simple)
		test.That(t, probe.Data, test.ShouldBeNil)
		test.That(t, probe.NonBlocking, test.ShouldBeTrue)
		test.That(t, probe.Transaction, test.ShouldEqual, uint8(7))
	}
}

func TestAsyncOtherBusyOnIssueLeavesHandleIdle(t *testing.T) {
	script := []error{nil, buses.ErrOtherBusy}
	step := 0
	bus := &inject.I2C{TransferFunc: func(ctx context.Context, pkt *buses.Packet) error {
		err := script[step]
		step++
		return err
	}}
	d := newTestDevice(t, bus, testConfig())

	// The bus never accepted the transfer, so there is nothing to await and
	// the next call reissues from scratch.
	err := d.ReadDataAsync(context.Background(), d.Data(), 0, make([]byte, 4))
	test.That(t, errors.Is(err, buses.ErrOtherBusy), test.ShouldBeTrue)
	test.That(t, d.TransferInProgress(), test.ShouldBeFalse)
}
