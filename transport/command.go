package transport

// The two known outbound command frames: fixed byte sequences a
// transport collaborator may write to request data from a device. The
// core decoder never produces these — they exist here so tests can
// round-trip them back through frame.Extractor/pg.Decode and so
// transport/fuzz and cmd/tbsperipheral can use them as realistic
// fixtures.
var (
	// RequestAddressClaimed asks a device to (re-)announce its
	// AddressClaimed PG.
	RequestAddressClaimed = []byte{
		0xAA, 0xFD, 0x00, 0x00, 0xEA, 0x03, 0x00, 0xEE, 0x00, 0x28, 0x99,
	}

	// SendAll asks a device to report every PG it supports.
	SendAll = []byte{
		0xAA, 0xFD, 0x00, 0x03, 0xF0, 0x08, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x10, 0x99,
	}
)
