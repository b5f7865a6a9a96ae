package eeprom

import (
	"context"
	"math/bits"
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/Emandhal/Memories-sub001/memdev"
	"github.com/Emandhal/Memories-sub001/testutils/fakebus"
)

func TestSelectPins(t *testing.T) {
	test.That(t, SelectPins(false, false, false), test.ShouldEqual, byte(0x00))
	test.That(t, SelectPins(false, false, true), test.ShouldEqual, byte(0x02))
	test.That(t, SelectPins(false, true, false), test.ShouldEqual, byte(0x04))
	test.That(t, SelectPins(true, false, false), test.ShouldEqual, byte(0x08))
	test.That(t, SelectPins(true, true, true), test.ShouldEqual, byte(0x0E))
}

func TestChipTableIsConsistent(t *testing.T) {
	for _, chip := range []Chip{
		AT24C01A1V8, AT24C01A, AT24C021V8, AT24C02, AT24C041V8, AT24C04,
		AT24C08A1V8, AT24C08A, AT24C16A1V8, AT24C16A,
		M24AA2561V8, M24AA256, M24LC256, M24FC2561V8, M24FC256,
		AT24CM021V7, AT24CM02,
		AT24MAC4021V7, AT24MAC402, AT24MAC6021V7, AT24MAC602,
	} {
		t.Run(chip.Name, func(t *testing.T) {
			test.That(t, chip.config().Validate(chip.Name), test.ShouldBeNil)
			// Banked address bits and bonded select pins never overlap.
			test.That(t, chip.BankMask&chip.SelectPinsMask, test.ShouldEqual, byte(0))
			// Every part must be able to reach its whole array through its
			// address bytes plus borrowed bank bits.
			addressable := uint32(1) << uint(8*chip.AddrBytes+bits.OnesCount8(chip.BankMask))
			test.That(t, chip.TotalSize, test.ShouldBeLessThanOrEqualTo, addressable)
		})
	}
}

func TestWriteSplitsPagesAcrossBanks(t *testing.T) {
	chip := &fakebus.Chip{Base: Base, AddrBytes: 1, BankMask: 0x02, Mem: make([]byte, 512)}
	d, err := New(chip, AT24C04, SelectPins(true, true, false), 400000, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.Init(context.Background()), test.ShouldBeNil)
	test.That(t, d.Size(), test.ShouldEqual, uint32(512))

	data := make([]byte, 40)
	for i := range data {
		data[i] = byte(i + 1)
	}
	chip.Accesses = nil
	// Spans the one-byte address limit at 256; the high bit rides on the
	// chip-address bank pin.
	test.That(t, d.Write(context.Background(), 250, data), test.ShouldBeNil)
	test.That(t, chip.Accesses, test.ShouldResemble, []fakebus.Access{
		{Base: Base, Offset: 250, Len: 6, Write: true},
		{Base: Base, Offset: 256, Len: 16, Write: true},
		{Base: Base, Offset: 272, Len: 16, Write: true},
		{Base: Base, Offset: 288, Len: 2, Write: true},
	})

	got := make([]byte, 40)
	test.That(t, d.Read(context.Background(), 250, got), test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, data)
}

func TestWriteRetriesThroughWriteCycle(t *testing.T) {
	chip := &fakebus.Chip{Base: Base, AddrBytes: 2, Mem: make([]byte, 32768)}
	d, err := New(chip, M24LC256, 0, 400000, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	// The chip NACKs its address while an earlier write cycle runs.
	chip.NackAddr = 2
	test.That(t, d.Write(context.Background(), 0, []byte{1, 2, 3, 4}), test.ShouldBeNil)
	test.That(t, chip.Mem[:4], test.ShouldResemble, []byte{1, 2, 3, 4})
}

func TestWaitEndOfWrite(t *testing.T) {
	chip := &fakebus.Chip{Base: Base, AddrBytes: 2, Mem: make([]byte, 32768)}
	d, err := New(chip, M24AA256, 0, 400000, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	chip.NackAddr = 3
	test.That(t, d.WaitEndOfWrite(context.Background()), test.ShouldBeNil)
}

func TestReadOutOfRange(t *testing.T) {
	chip := &fakebus.Chip{Base: Base, AddrBytes: 1, Mem: make([]byte, 256)}
	d, err := New(chip, AT24C02, 0, 400000, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)

	err = d.Read(context.Background(), 200, make([]byte, 100))
	test.That(t, errors.Is(err, memdev.ErrOutOfRange), test.ShouldBeTrue)
	test.That(t, chip.Transfers, test.ShouldEqual, 0)
}
