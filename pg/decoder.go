package pg

import "github.com/tbselectronics/tbsdecode/frame"

// minFrameLength is the shortest legal frame: the 8-byte Heartbeat
// (start + header(2) + pgn(2) + len(1) + checksum + end).
const minFrameLength = 8

// Reasons reported on Unknown, one per decode precondition in the
// order they are checked.
const (
	ReasonTooShort         = "frame shorter than minimum length"
	ReasonChecksumMismatch = "checksum mismatch"
	ReasonUnrecognizedPGN  = "unrecognized pgn or length"
)

// Decode maps one de-stuffed Frame to exactly one Message. It is a pure
// function: it never panics and never returns an error — every
// precondition failure collapses to Unknown, with Reason naming which
// one. Callers that need to observe why a frame was rejected (for
// logging) should route decoding through diag.Decode instead, which
// wraps this function with trace hooks.
func Decode(f frame.Frame) Message {
	if len(f) < minFrameLength {
		return Unknown{Reason: ReasonTooShort}
	}

	pgnHi, pgnLo := f[3], f[4]
	n := len(f)

	stored := f[n-2]
	computed := Checksum(f[1 : n-2])
	if computed != stored {
		return Unknown{Reason: ReasonChecksumMismatch}
	}

	switch {
	case pgnLo == 0xF0 && n == 16:
		if bank, ok := bbNdcBanks[pgnHi]; ok {
			return decodeBasicQuantities(bank, f)
		}
		if bank, ok := bbNpcBanks[pgnHi]; ok {
			return decodePowerAndCharge(bank, f)
		}
		if bank, ok := bbNstBanks[pgnHi]; ok {
			return decodeBankStatus(bank, f)
		}
		if bank, ok := bbNcsBanks[pgnHi]; ok {
			return decodeChargeState(bank, f)
		}
		if bank, ok := bbNbsBanks[pgnHi]; ok {
			return decodeBasicSetup(bank, f)
		}
		if pgnHi == 0x02 {
			return decodeVersionInfo(f)
		}
		if pgnHi == 0x0E {
			return decodeOperatingModeStatus(f)
		}

	case pgnHi == 0x00 && pgnLo == 0xEE && n == 16:
		return decodeAddressClaimed(f)

	case pgnHi == 0x00 && pgnLo == 0xE8 && n == 16:
		return decodeAcknowledgement(f)

	case pgnHi == 0x00 && pgnLo == 0xF0 && n == 40:
		return decodeDeviceName(f)

	case pgnHi == 0xFF && pgnLo == 0xFF && n == 8:
		return Heartbeat{}
	}

	return Unknown{Reason: ReasonUnrecognizedPGN}
}

// Checksum computes the 8-bit wrapping sum of body followed by an
// 8-bit two's-complement negation. body is expected to be
// frame[1:len-2] — the range between the start delimiter and the
// trailing checksum/end-delimiter pair.
func Checksum(body []byte) byte {
	var sum byte
	for _, b := range body {
		sum += b
	}
	return -sum
}

var bbNdcBanks = map[byte]int{0x18: 1, 0x22: 2, 0x2C: 3}
var bbNpcBanks = map[byte]int{0x19: 1, 0x23: 2, 0x2D: 3}
var bbNstBanks = map[byte]int{0x1A: 1, 0x24: 2, 0x2E: 3}
var bbNcsBanks = map[byte]int{0x1E: 1, 0x28: 2, 0x32: 3}
var bbNbsBanks = map[byte]int{0x20: 1, 0x2A: 2, 0x34: 3}

func decodeBasicQuantities(bank int, f frame.Frame) Message {
	m := BasicQuantities{Bank: bank}

	if raw := u16le(f, 8); raw != 0xFFFF {
		v := float64(raw) * 0.01
		m.Voltage = &v
	}

	if raw := u24le(f, 10); raw != 0xFFFFFF {
		v := float64(raw)*0.01 - 80000.0
		m.Current = &v
	}

	switch f[13] {
	case 0xFE:
		m.Temperature = TemperatureNoSensorDetected
	case 0xFF:
		m.Temperature = TemperatureUnavailable
	default:
		m.Temperature = DegreesCelsius(float64(f[13])*0.5 - 40.0)
	}

	return m
}

func decodePowerAndCharge(bank int, f frame.Frame) Message {
	m := PowerAndCharge{Bank: bank}

	if raw := u24be(f[8], f[9], f[10]); raw != 0x00FFFFFF {
		v := float64(raw)*0.1 - 80000.0
		m.PowerWatts = &v
	}

	if raw := u24be(f[11], f[12], f[13]); raw != 0x00FFFFFF {
		v := float64(raw)*0.01 - 80000.0
		m.ConsumedAmpHours = &v
	}

	return m
}

func decodeBankStatus(bank int, f frame.Frame) Message {
	socRaw := u16le(f, 8)
	sohRaw := u16le(f, 10)
	trRaw := u16le(f, 12)

	m := BankStatus{Bank: bank}

	switch socRaw {
	case 65535:
		m.SoC = SoCUnavailable
	case 65533:
		m.SoC = SoCInitializing
	default:
		m.SoC = ChargePercentage(float64(socRaw) / 100.0)
	}

	switch sohRaw {
	case 65535:
		m.SoH = SoHUnavailable
	case 65533:
		m.SoH = SoHInitializing
	default:
		m.SoH = HealthPercentage(float64(sohRaw) / 100.0)
	}

	switch trRaw {
	case 65535:
		m.TimeRemaining = RemainingTimeUnavailable
	case 65533:
		m.TimeRemaining = RemainingTimeCharging
	default:
		m.TimeRemaining = Minutes(trRaw)
	}

	return m
}

func decodeChargeState(bank int, f frame.Frame) Message {
	return ChargeState{
		Bank:       bank,
		Stage:      chargeStageFromByte(f[8]),
		Indicators: chargeIndicatorsFromByte(f[9]),
	}
}

func decodeBasicSetup(bank int, f frame.Frame) Message {
	return BasicSetup{
		Bank:        bank,
		Enable:      bankEnableFromBits(f[6]),
		BatteryType: batteryTypeFromU16(u16le(f, 8)),
		Capacity:    capacityFromU16(u16le(f, 10)),
		Name:        bankNameFromByte(f[13]),
	}
}

func capacityFromU16(raw uint16) BankCapacity {
	if raw == 0xFFFF {
		return BankCapacityParameterNotAvailable
	}
	return CapacityAh(raw)
}

func decodeAddressClaimed(f frame.Frame) Message {
	raw := u32le(f, 6)
	return AddressClaimed{
		SerialNumber: -raw,
		BrandID:      brandIDFromByte(f[11]),
		DeviceID:     deviceIDFromU16(u16le(f, 12)),
	}
}

func decodeVersionInfo(f frame.Frame) Message {
	return VersionInfo{
		Firmware:   versionFromWord(u16le(f, 6)),
		Hardware:   versionFromWord(u16le(f, 8)),
		Bootloader: versionFromWord(u16le(f, 8)),
		Auxiliary:  versionFromWord(u16le(f, 10)),
	}
}

func decodeAcknowledgement(f frame.Frame) Message {
	return Acknowledgement{
		Type: acknowledgementTypeFromByte(f[6]),
		PGN:  u16le(f, 12),
	}
}

func decodeDeviceName(f frame.Frame) Message {
	var name DeviceName
	copy(name.Value[:], f[6:38])
	return name
}

func decodeOperatingModeStatus(f frame.Frame) Message {
	return OperatingModeStatus{
		Mode: operatingModeFromByte(f[6]),
		Lock: installerLockFromBits(u16le(f, 8)),
	}
}
