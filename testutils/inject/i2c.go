// Package inject provides injectable bus implementations for testing: each
// method can be overridden by assigning a function field, and falls through
// to an embedded implementation otherwise.
package inject

import (
	"context"

	"github.com/Emandhal/Memories-sub001/buses"
)

// I2C is an injected I2C bus.
type I2C struct {
	buses.I2C
	InitFunc     func(ctx context.Context, clockHz uint32) error
	TransferFunc func(ctx context.Context, pkt *buses.Packet) error
}

// Init calls the injected Init or the real version.
func (i *I2C) Init(ctx context.Context, clockHz uint32) error {
	if i.InitFunc == nil {
		return i.I2C.Init(ctx, clockHz)
	}
	return i.InitFunc(ctx, clockHz)
}

// Transfer calls the injected Transfer or the real version.
func (i *I2C) Transfer(ctx context.Context, pkt *buses.Packet) error {
	if i.TransferFunc == nil {
		return i.I2C.Transfer(ctx, pkt)
	}
	return i.TransferFunc(ctx, pkt)
}
