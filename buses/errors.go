package buses

import "github.com/pkg/errors"

// Acknowledge-level outcomes of a transfer. Everything else returned by
// Transfer is a transport fault that drivers pass through unchanged.
var (
	// ErrNack means the device did not acknowledge its chip address. Serial
	// memories answer this way while an internal write or store cycle is
	// running, so drivers usually treat it as "not ready, try again".
	ErrNack = errors.New("i2c: no acknowledge from device")

	// ErrNackOnData means the device acknowledged its chip address but
	// rejected a later byte, typically an out-of-range memory address or an
	// unknown command byte.
	ErrNackOnData = errors.New("i2c: no acknowledge during data phase")

	// ErrBusy means a non-blocking transfer was accepted and is still in
	// flight; poll again with the transaction number the bus assigned.
	ErrBusy = errors.New("i2c: transfer in progress")

	// ErrOtherBusy means the bus is currently executing a different
	// pipelined transaction; retry later without disturbing driver state.
	ErrOtherBusy = errors.New("i2c: bus owned by another transaction")
)
