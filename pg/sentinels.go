package pg

// This file defines the sentinel-valued sub-types for this protocol:
// protocol-reserved numeric encodings that mean "absent" or "initializing"
// are modeled as distinct variants rather than magic numbers, so callers
// can never mistake a sentinel for a measurement.

// StateOfCharge is a bank's reported state of charge.
type StateOfCharge struct {
	kind    socKind
	percent float64
}

type socKind int

const (
	socValue socKind = iota
	socUnavailable
	socInitializing
)

func ChargePercentage(pct float64) StateOfCharge { return StateOfCharge{kind: socValue, percent: pct} }

var (
	SoCUnavailable  = StateOfCharge{kind: socUnavailable}
	SoCInitializing = StateOfCharge{kind: socInitializing}
)

func (s StateOfCharge) IsAvailable() bool    { return s.kind == socValue }
func (s StateOfCharge) IsInitializing() bool { return s.kind == socInitializing }
func (s StateOfCharge) Percent() float64     { return s.percent }

// StateOfHealth is a bank's reported state of health.
type StateOfHealth struct {
	kind    sohKind
	percent float64
}

type sohKind int

const (
	sohValue sohKind = iota
	sohUnavailable
	sohInitializing
)

func HealthPercentage(pct float64) StateOfHealth { return StateOfHealth{kind: sohValue, percent: pct} }

var (
	SoHUnavailable  = StateOfHealth{kind: sohUnavailable}
	SoHInitializing = StateOfHealth{kind: sohInitializing}
)

func (s StateOfHealth) IsAvailable() bool    { return s.kind == sohValue }
func (s StateOfHealth) IsInitializing() bool { return s.kind == sohInitializing }
func (s StateOfHealth) Percent() float64     { return s.percent }

// RemainingTime is a bank's estimated remaining runtime.
type RemainingTime struct {
	kind    rtKind
	minutes uint16
}

type rtKind int

const (
	rtMinutes rtKind = iota
	rtCharging
	rtUnavailable
)

func Minutes(m uint16) RemainingTime { return RemainingTime{kind: rtMinutes, minutes: m} }

var (
	RemainingTimeCharging    = RemainingTime{kind: rtCharging}
	RemainingTimeUnavailable = RemainingTime{kind: rtUnavailable}
)

func (r RemainingTime) IsCharging() bool  { return r.kind == rtCharging }
func (r RemainingTime) IsAvailable() bool { return r.kind == rtMinutes }
func (r RemainingTime) Minutes() uint16   { return r.minutes }

// Temperature is a per-bank temperature reading.
type Temperature struct {
	kind    tempKind
	celsius float64
}

type tempKind int

const (
	tempValue tempKind = iota
	tempNoSensor
	tempUnavailable
)

func DegreesCelsius(c float64) Temperature { return Temperature{kind: tempValue, celsius: c} }

var (
	TemperatureNoSensorDetected = Temperature{kind: tempNoSensor}
	TemperatureUnavailable      = Temperature{kind: tempUnavailable}
)

func (t Temperature) IsAvailable() bool { return t.kind == tempValue }
func (t Temperature) NoSensor() bool    { return t.kind == tempNoSensor }
func (t Temperature) Celsius() float64  { return t.celsius }

// ChargeStage identifies the charger's current operating stage.
type ChargeStage int

const (
	ChargeStageUnknown ChargeStage = iota
	ChargeStageWaiting
	ChargeStageSoftStart
	ChargeStageBulk
	ChargeStageExtendedBulk
	ChargeStageAbsorption
	ChargeStageAnalyze
	ChargeStageFloat
	ChargeStagePulse
	ChargeStageEqualize
	ChargeStageStop
	ChargeStageError
	ChargeStageUnavailable
)

func chargeStageFromByte(b byte) ChargeStage {
	switch b {
	case 0:
		return ChargeStageWaiting
	case 1:
		return ChargeStageSoftStart
	case 2:
		return ChargeStageBulk
	case 3:
		return ChargeStageExtendedBulk
	case 4:
		return ChargeStageAbsorption
	case 6:
		return ChargeStageAnalyze
	case 8:
		return ChargeStageFloat
	case 9:
		return ChargeStagePulse
	case 11:
		return ChargeStageEqualize
	case 13:
		return ChargeStageStop
	case 15:
		return ChargeStageError
	case 255:
		return ChargeStageUnavailable
	default:
		return ChargeStageUnknown
	}
}

// IndicatorState is the on/off/blinking state of one of the four charge
// stage indicator LEDs packed into the indicator byte.
type IndicatorState int

const (
	IndicatorOff IndicatorState = iota
	IndicatorOn
	IndicatorBlinking
	IndicatorNotAvailable
)

func indicatorFromBits(b byte) IndicatorState {
	switch b {
	case 0:
		return IndicatorOff
	case 1:
		return IndicatorOn
	case 2:
		return IndicatorBlinking
	default:
		return IndicatorNotAvailable
	}
}

// ChargeIndicators unpacks the four 2-bit indicator fields from the
// indicator byte in a BbNcs frame.
type ChargeIndicators struct {
	Range0To49  IndicatorState
	Range50To79 IndicatorState
	Range80To99 IndicatorState
	Range100    IndicatorState
}

func chargeIndicatorsFromByte(b byte) ChargeIndicators {
	return ChargeIndicators{
		Range0To49:  indicatorFromBits(b & 0x3),
		Range50To79: indicatorFromBits((b >> 2) & 0x3),
		Range80To99: indicatorFromBits((b >> 4) & 0x3),
		Range100:    indicatorFromBits((b >> 6) & 0x3),
	}
}

// BankName is the user-configured name of a battery bank. The constant
// values mirror the wire codes 0 through 24.
type BankName int

const (
	BankNameBatteryBank1 BankName = iota
	BankNameBatteryBank2
	BankNameBatteryBank3
	BankNameMainBatteryBank
	BankNameAuxiliaryBatteryBank
	BankNameAuxiliaryBatteryBank1
	BankNameAuxiliaryBatteryBank2
	BankNamePrimaryBatteryBank
	BankNameSecondaryBatteryBank
	BankNameStarterBattery
	BankNameServiceBatteryBank
	BankNameAccessoryBatteryBank
	BankNameHouseBatteryBank
	BankNamePortBattery
	BankNameStarboardBatteryBank
	BankNamePowerBatteryBank
	BankNameGeneratorStarterBattery
	BankNameBowThrusterBattery
	BankNameRadioBattery
	BankNameVehicleBattery
	BankNameTrailerBattery
	BankNameDrivetrainBattery
	BankNameBrakeBattery
	BankNameSolarBattery
	BankNameOtherBattery
	BankNameParameterNotAvailable
)

func bankNameFromByte(b byte) BankName {
	if b < byte(BankNameParameterNotAvailable) {
		return BankName(b)
	}
	return BankNameParameterNotAvailable
}

// BankCapacity is a bank's configured Amp-hour capacity.
type BankCapacity struct {
	available bool
	ah        uint16
}

func CapacityAh(ah uint16) BankCapacity { return BankCapacity{available: true, ah: ah} }

var BankCapacityParameterNotAvailable = BankCapacity{}

func (c BankCapacity) IsAvailable() bool { return c.available }
func (c BankCapacity) AmpHours() uint16  { return c.ah }

// BatteryType identifies the chemistry configured for a bank.
type BatteryType int

const (
	BatteryTypeParameterNotAvailable BatteryType = iota
	BatteryTypeFlooded
	BatteryTypeGel
	BatteryTypeAGM
	BatteryTypeLiFePo4
)

func batteryTypeFromU16(v uint16) BatteryType {
	switch v {
	case 2000:
		return BatteryTypeFlooded
	case 3000:
		return BatteryTypeGel
	case 3200:
		return BatteryTypeAGM
	case 5000:
		return BatteryTypeLiFePo4
	default:
		return BatteryTypeParameterNotAvailable
	}
}

// BankEnable reports whether a bank is configured as monitored.
type BankEnable int

const (
	BankParameterUnavailable BankEnable = iota
	BankDisabled
	BankEnabled
)

func bankEnableFromBits(b byte) BankEnable {
	switch b & 0x3 {
	case 0:
		return BankDisabled
	case 1:
		return BankEnabled
	default:
		return BankParameterUnavailable
	}
}

// DeviceID identifies the originating device model in an AddressClaimed
// message.
type DeviceID int

const (
	DeviceIDUnknown DeviceID = iota
	DeviceIDExpertModular
)

func deviceIDFromU16(v uint16) DeviceID {
	if v == 0x0A24 {
		return DeviceIDExpertModular
	}
	return DeviceIDUnknown
}

// BrandID identifies the originating device's manufacturer.
type BrandID int

const (
	BrandIDUnknown BrandID = iota
	BrandIDTbsElectronics
)

func brandIDFromByte(b byte) BrandID {
	if b == 0x32 {
		return BrandIDTbsElectronics
	}
	return BrandIDUnknown
}

// AcknowledgementType is the outcome reported in an Acknowledgement
// message.
type AcknowledgementType int

const (
	AcknowledgementPositive AcknowledgementType = iota
	AcknowledgementNegative
	AcknowledgementAccessDenied
	AcknowledgementCannotRespond
	AcknowledgementReserved
)

func acknowledgementTypeFromByte(b byte) AcknowledgementType {
	switch b {
	case 0:
		return AcknowledgementPositive
	case 1:
		return AcknowledgementNegative
	case 2:
		return AcknowledgementAccessDenied
	case 3:
		return AcknowledgementCannotRespond
	default:
		return AcknowledgementReserved
	}
}

// OperatingMode identifies the device's current operating state.
type OperatingMode int

const (
	OperatingModeParameterNotAvailable OperatingMode = iota
	OperatingModeDeviceOff
	OperatingModeDeviceBooting
	OperatingModeDeviceWaitingForSlaves
	OperatingModeDeviceWaitingForMaster
	OperatingModeDeviceOn
	OperatingModeDeviceOnNightMode
	OperatingModeDeviceInError
)

func operatingModeFromByte(b byte) OperatingMode {
	switch b {
	case 0:
		return OperatingModeDeviceOff
	case 1:
		return OperatingModeDeviceBooting
	case 2:
		return OperatingModeDeviceWaitingForSlaves
	case 3:
		return OperatingModeDeviceWaitingForMaster
	case 10:
		return OperatingModeDeviceOn
	case 11:
		return OperatingModeDeviceOnNightMode
	case 127:
		return OperatingModeDeviceInError
	default:
		return OperatingModeParameterNotAvailable
	}
}

// InstallerLock reports whether the installer lock flag is engaged.
type InstallerLock int

const (
	InstallerLockParameterNotAvailable InstallerLock = iota
	InstallerLockOff
	InstallerLockOn
)

func installerLockFromBits(v uint16) InstallerLock {
	switch v >> 14 {
	case 0:
		return InstallerLockOff
	case 1:
		return InstallerLockOn
	default:
		return InstallerLockParameterNotAvailable
	}
}
