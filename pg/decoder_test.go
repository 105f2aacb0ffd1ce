package pg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hexFrame(bytes ...byte) []byte { return bytes }

// TestDecodeHeartbeat decodes a minimal 8-byte Heartbeat frame.
func TestDecodeHeartbeat(t *testing.T) {
	f := hexFrame(0xAA, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0x03, 0x99)
	assert.Equal(t, Heartbeat{}, Decode(f))
}

// TestDecodeBankStatus decodes bank 1 status at 100% SoC, 100% SoH,
// mid-charge (remaining-time sentinel 65533).
func TestDecodeBankStatus(t *testing.T) {
	f := hexFrame(
		0xAA, 0x00, 0xFF, 0x1A, 0xF0, 0x08,
		0xC0, 0xB0,
		0x10, 0x27, // soc_raw = 10000 -> 100.00%
		0x10, 0x27, // soh_raw = 10000 -> 100.00%
		0xFD, 0xFF, // remaining-time sentinel: charging
		0x15, 0x99,
	)

	got := Decode(f)
	bs, ok := got.(BankStatus)
	require.True(t, ok, "expected BankStatus, got %#v", got)

	assert.Equal(t, 1, bs.Bank)
	require.True(t, bs.SoC.IsAvailable())
	assert.InDelta(t, 100.0, bs.SoC.Percent(), 0.001)
	require.True(t, bs.SoH.IsAvailable())
	assert.InDelta(t, 100.0, bs.SoH.Percent(), 0.001)
	assert.True(t, bs.TimeRemaining.IsCharging())

	// Decoding is pure: the same frame decodes to the same message.
	assert.Equal(t, got, Decode(f))
}

// TestDecodeBasicQuantities decodes bank 1 DC quantities with no
// temperature sensor attached. u16le(frame[8:10])*0.01 on this byte
// sequence yields 13.30V; see DESIGN.md for why that, not 13.14V, is
// the value asserted here.
func TestDecodeBasicQuantities(t *testing.T) {
	f := hexFrame(
		0xAA, 0x00, 0xFF, 0x18, 0xF0, 0x08,
		0x00, 0xB0,
		0x32, 0x05, // voltage_raw = 0x0532 = 1330 -> 13.30V
		0xFD, 0x11, 0x7A, // current_raw (u24 LE)
		0xFE, // temperature: no sensor detected
		0x84, 0x99,
	)

	got := Decode(f)
	bq, ok := got.(BasicQuantities)
	require.True(t, ok, "expected BasicQuantities, got %#v", got)

	assert.Equal(t, 1, bq.Bank)
	require.NotNil(t, bq.Voltage)
	assert.InDelta(t, 13.30, *bq.Voltage, 0.001)
	require.NotNil(t, bq.Current)
	assert.InDelta(t, -0.03, *bq.Current, 0.001) // 0x7A11FD*0.01 - 80000
	assert.True(t, bq.Temperature.NoSensor())
}

// TestDecodeVersionInfo decodes a VersionInfo frame, including the
// quirk that hardware and bootloader read the same word.
func TestDecodeVersionInfo(t *testing.T) {
	f := hexFrame(
		0xAA, 0x00, 0xFF, 0x02, 0xF0, 0x08,
		0x67, 0x00, // firmware word 103 -> 1.0.3
		0x64, 0x00, // hardware/bootloader word 100 -> 1.0.0
		0x64, 0x00, // auxiliary word 100 -> 1.0.0
		0xFF, 0xFF,
		0xDA, 0x99,
	)

	got := Decode(f)
	vi, ok := got.(VersionInfo)
	require.True(t, ok, "expected VersionInfo, got %#v", got)

	assert.Equal(t, Version{Major: 1, Minor: 0, Maintenance: 3}, vi.Firmware)
	assert.Equal(t, Version{Major: 1, Minor: 0, Maintenance: 0}, vi.Hardware)
	assert.Equal(t, vi.Hardware, vi.Bootloader)
	assert.Equal(t, Version{Major: 1, Minor: 0, Maintenance: 0}, vi.Auxiliary)
}

// TestDecodeAddressClaimed decodes an AddressClaimed frame, including
// its two's-complement-negated serial number.
func TestDecodeAddressClaimed(t *testing.T) {
	f := hexFrame(
		0xAA, 0x00, 0xFF, 0x00, 0xEE, 0x08,
		0xD2, 0x66, 0x2F, 0xF4, // serial_number raw (u32 LE)
		0xFF,
		0x32, // brand id: TBS Electronics
		0x24, 0x0A, // device id 0x0A24: ExpertModular
		0x51, 0x99,
	)

	got := Decode(f)
	ac, ok := got.(AddressClaimed)
	require.True(t, ok, "expected AddressClaimed, got %#v", got)

	raw := uint32(0xF42F66D2)
	assert.Equal(t, -raw, ac.SerialNumber)
	assert.Equal(t, BrandIDTbsElectronics, ac.BrandID)
	assert.Equal(t, DeviceIDExpertModular, ac.DeviceID)
}

// TestDecodeUnknownTooShort decodes a frame shorter than any legal PG.
func TestDecodeUnknownTooShort(t *testing.T) {
	got := Decode(hexFrame(0xAA, 0x99))
	u, ok := got.(Unknown)
	require.True(t, ok, "expected Unknown, got %#v", got)
	assert.NotEmpty(t, u.Reason)
}

func TestDecodeUnknownBadChecksum(t *testing.T) {
	f := hexFrame(0xAA, 0x00, 0xFF, 0xFF, 0xFF, 0x00, 0x00, 0x99) // checksum forced wrong
	got := Decode(f)
	u, ok := got.(Unknown)
	require.True(t, ok, "expected Unknown, got %#v", got)
	assert.Equal(t, ReasonChecksumMismatch, u.Reason)
}

func TestDecodeUnknownUnrecognizedPGN(t *testing.T) {
	f := hexFrame(0xAA, 0x00, 0xFF, 0x7F, 0x7F, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x99)
	f[len(f)-2] = Checksum(f[1 : len(f)-2])
	got := Decode(f)
	u, ok := got.(Unknown)
	require.True(t, ok, "expected Unknown, got %#v", got)
	assert.Equal(t, ReasonUnrecognizedPGN, u.Reason)
}

// sealed stamps a valid checksum into the second-to-last byte of f and
// returns f, so fixtures below only need to spell out the field bytes.
func sealed(f []byte) []byte {
	f[len(f)-2] = Checksum(f[1 : len(f)-2])
	return f
}

// TestDecodePowerAndCharge decodes bank 1 power and charge, including
// the big-endian u24 quirk those two fields use.
func TestDecodePowerAndCharge(t *testing.T) {
	f := sealed(hexFrame(
		0xAA, 0x00, 0xFF, 0x19, 0xF0, 0x08,
		0x00, 0xB0,
		0x0C, 0x39, 0xD2, // power_raw (u24 BE) = 801234 -> 123.4W
		0xFF, 0xFF, 0xFF, // consumed amp-hours: unavailable
		0x00, 0x99,
	))

	got := Decode(f)
	pc, ok := got.(PowerAndCharge)
	require.True(t, ok, "expected PowerAndCharge, got %#v", got)

	assert.Equal(t, 1, pc.Bank)
	require.NotNil(t, pc.PowerWatts)
	assert.InDelta(t, 123.4, *pc.PowerWatts, 0.001)
	assert.Nil(t, pc.ConsumedAmpHours)
}

// TestDecodeChargeState decodes bank 2's charge stage and the four
// 2-bit indicator fields packed into the indicator byte.
func TestDecodeChargeState(t *testing.T) {
	f := sealed(hexFrame(
		0xAA, 0x00, 0xFF, 0x28, 0xF0, 0x08,
		0x00, 0xB0,
		0x08, // stage: float
		0xC9, // indicators: on, blinking, off, not-available
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x99,
	))

	got := Decode(f)
	cs, ok := got.(ChargeState)
	require.True(t, ok, "expected ChargeState, got %#v", got)

	assert.Equal(t, 2, cs.Bank)
	assert.Equal(t, ChargeStageFloat, cs.Stage)
	assert.Equal(t, ChargeIndicators{
		Range0To49:  IndicatorOn,
		Range50To79: IndicatorBlinking,
		Range80To99: IndicatorOff,
		Range100:    IndicatorNotAvailable,
	}, cs.Indicators)
}

func TestDecodeChargeStateUnknownStage(t *testing.T) {
	f := sealed(hexFrame(
		0xAA, 0x00, 0xFF, 0x1E, 0xF0, 0x08,
		0x00, 0xB0,
		0x07, // no stage is assigned this code
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x99,
	))

	got := Decode(f)
	cs, ok := got.(ChargeState)
	require.True(t, ok, "expected ChargeState, got %#v", got)
	assert.Equal(t, ChargeStageUnknown, cs.Stage)
}

// TestDecodeBasicSetup decodes bank 3's static configuration.
func TestDecodeBasicSetup(t *testing.T) {
	f := sealed(hexFrame(
		0xAA, 0x00, 0xFF, 0x34, 0xF0, 0x08,
		0x01, 0xB0, // flags: bank enabled
		0x88, 0x13, // battery type 5000: LiFePo4
		0xC8, 0x00, // capacity 200Ah
		0x00,
		0x0C, // bank name: house battery bank
		0x00, 0x99,
	))

	got := Decode(f)
	bs, ok := got.(BasicSetup)
	require.True(t, ok, "expected BasicSetup, got %#v", got)

	assert.Equal(t, 3, bs.Bank)
	assert.Equal(t, BankEnabled, bs.Enable)
	assert.Equal(t, BatteryTypeLiFePo4, bs.BatteryType)
	require.True(t, bs.Capacity.IsAvailable())
	assert.Equal(t, uint16(200), bs.Capacity.AmpHours())
	assert.Equal(t, BankNameHouseBatteryBank, bs.Name)
}

func TestDecodeAcknowledgement(t *testing.T) {
	f := sealed(hexFrame(
		0xAA, 0x00, 0xFF, 0x00, 0xE8, 0x08,
		0x01, // negative acknowledgement
		0x00, 0x00, 0x00, 0x00, 0x00,
		0x18, 0xF0, // acknowledged pgn
		0x00, 0x99,
	))

	got := Decode(f)
	ack, ok := got.(Acknowledgement)
	require.True(t, ok, "expected Acknowledgement, got %#v", got)

	assert.Equal(t, AcknowledgementNegative, ack.Type)
	assert.Equal(t, uint16(0xF018), ack.PGN)
}

func TestDecodeDeviceName(t *testing.T) {
	f := make([]byte, 40)
	f[0] = 0xAA
	f[1], f[2] = 0x00, 0xFF
	f[3], f[4] = 0x00, 0xF0
	f[5] = 0x20
	copy(f[6:38], "Expert Modular")
	f[39] = 0x99
	sealed(f)

	got := Decode(f)
	dn, ok := got.(DeviceName)
	require.True(t, ok, "expected DeviceName, got %#v", got)
	assert.Equal(t, "Expert Modular", dn.String())
}

func TestDecodeOperatingModeStatus(t *testing.T) {
	f := sealed(hexFrame(
		0xAA, 0x00, 0xFF, 0x0E, 0xF0, 0x08,
		0x0A, // mode: device on
		0x00,
		0x00, 0x40, // lock bits (u16 >> 14) = 1: on
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x99,
	))

	got := Decode(f)
	om, ok := got.(OperatingModeStatus)
	require.True(t, ok, "expected OperatingModeStatus, got %#v", got)

	assert.Equal(t, OperatingModeDeviceOn, om.Mode)
	assert.Equal(t, InstallerLockOn, om.Lock)
}

func TestChecksumNegatesWrappingSum(t *testing.T) {
	body := []byte{0x00, 0xFF, 0xFF, 0xFF, 0x00}
	assert.Equal(t, byte(0x03), Checksum(body))
}

func TestDeviceNameTrimsTrailingNul(t *testing.T) {
	var d DeviceName
	copy(d.Value[:], "TBS Monitor")
	assert.Equal(t, "TBS Monitor", d.String())
}
