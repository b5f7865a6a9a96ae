package eeprom

import "time"

// Geometry for the common parts, straight from the datasheets. The 1V8
// variants are the same silicon qualified for a lower supply voltage, which
// caps the bus clock.
var (
	// AT24CXX(A) — one-byte addressing, 8 or 16 byte pages. The larger
	// densities bank their array across select pins: the AT24C04 borrows
	// A0, the AT24C08A borrows A1/A0, the AT24C16A borrows all three.
	AT24C01A1V8 = Chip{Name: "AT24C01A-1.8", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 8, TotalSize: 128, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 100000}
	AT24C01A    = Chip{Name: "AT24C01A", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 8, TotalSize: 128, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	AT24C021V8  = Chip{Name: "AT24C02-1.8", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 8, TotalSize: 256, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 100000}
	AT24C02     = Chip{Name: "AT24C02", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 8, TotalSize: 256, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	AT24C041V8  = Chip{Name: "AT24C04-1.8", AddrBytes: 1, BankMask: 0x02, SelectPinsMask: 0x0C, PageSize: 16, TotalSize: 512, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 100000}
	AT24C04     = Chip{Name: "AT24C04", AddrBytes: 1, BankMask: 0x02, SelectPinsMask: 0x0C, PageSize: 16, TotalSize: 512, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	AT24C08A1V8 = Chip{Name: "AT24C08A-1.8", AddrBytes: 1, BankMask: 0x06, SelectPinsMask: 0x08, PageSize: 16, TotalSize: 1024, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 100000}
	AT24C08A    = Chip{Name: "AT24C08A", AddrBytes: 1, BankMask: 0x06, SelectPinsMask: 0x08, PageSize: 16, TotalSize: 1024, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	AT24C16A1V8 = Chip{Name: "AT24C16A-1.8", AddrBytes: 1, BankMask: 0x0E, PageSize: 16, TotalSize: 2048, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 100000}
	AT24C16A    = Chip{Name: "AT24C16A", AddrBytes: 1, BankMask: 0x0E, PageSize: 16, TotalSize: 2048, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}

	// 24XX256 — two-byte addressing, 64 byte pages, 32 KiB.
	M24AA2561V8 = Chip{Name: "24AA256-1.8", AddrBytes: 2, SelectPinsMask: 0x0E, PageSize: 64, TotalSize: 32768, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 100000}
	M24AA256    = Chip{Name: "24AA256", AddrBytes: 2, SelectPinsMask: 0x0E, PageSize: 64, TotalSize: 32768, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	M24LC256    = Chip{Name: "24LC256", AddrBytes: 2, SelectPinsMask: 0x0E, PageSize: 64, TotalSize: 32768, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	M24FC2561V8 = Chip{Name: "24FC256-1.8", AddrBytes: 2, SelectPinsMask: 0x0E, PageSize: 64, TotalSize: 32768, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	M24FC256    = Chip{Name: "24FC256", AddrBytes: 2, SelectPinsMask: 0x0E, PageSize: 64, TotalSize: 32768, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 1000000}

	// AT24CM02 — 2 Mbit: two-byte addressing plus two banked select pins,
	// 256 byte pages.
	AT24CM021V7 = Chip{Name: "AT24CM02-1.7", AddrBytes: 2, BankMask: 0x06, SelectPinsMask: 0x08, PageSize: 256, TotalSize: 262144, PageWriteTime: 10 * time.Millisecond, MaxClockHz: 400000}
	AT24CM02    = Chip{Name: "AT24CM02", AddrBytes: 2, BankMask: 0x06, SelectPinsMask: 0x08, PageSize: 256, TotalSize: 262144, PageWriteTime: 10 * time.Millisecond, MaxClockHz: 1000000}

	// AT24MAC402/602 EEPROM array — the identity pages live behind other
	// chip bases and are driven by the at24mac package.
	AT24MAC4021V7 = Chip{Name: "AT24MAC402-1.7", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 16, TotalSize: 256, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	AT24MAC402    = Chip{Name: "AT24MAC402", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 16, TotalSize: 256, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 1000000}
	AT24MAC6021V7 = Chip{Name: "AT24MAC602-1.7", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 16, TotalSize: 256, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 400000}
	AT24MAC602    = Chip{Name: "AT24MAC602", AddrBytes: 1, SelectPinsMask: 0x0E, PageSize: 16, TotalSize: 256, PageWriteTime: 5 * time.Millisecond, MaxClockHz: 1000000}
)
