// Package ble defines the adapter interfaces a real Bluetooth Low
// Energy stack would implement to deliver TBS wire bytes to a pipeline.
// No platform Bluetooth access is implemented here — only the contract
// and a mock for testing against it.
package ble

//go:generate mockgen -destination=mocks/mock_ble.go -package=mocks github.com/tbselectronics/tbsdecode/transport/ble Scanner,Notifier

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// GATT identifiers of the TBS monitor/charger service and its combined
// TX/RX characteristic, which delivers wire frames as notifications.
var (
	ServiceUUID            = uuid.MustParse("65333333-A115-11E2-9E9A-0800200CA100")
	TxRxCharacteristicUUID = uuid.MustParse("65333333-A115-11E2-9E9A-0800200CA102")
)

// peripheralNameMatch is the advertised-name substring that identifies
// a TBS device during scanning.
const peripheralNameMatch = "TBS"

// Peripheral identifies a discovered BLE device advertising the TBS
// monitor/charger service.
type Peripheral struct {
	Address string
	Name    string
}

// IsTbsDevice reports whether the peripheral's advertised name marks it
// as a TBS monitor or charger.
func (p Peripheral) IsTbsDevice() bool {
	return strings.Contains(p.Name, peripheralNameMatch)
}

// Scanner discovers TBS peripherals.
type Scanner interface {
	// Scan blocks, sending every discovered Peripheral on the returned
	// channel, until ctx is done.
	Scan(ctx context.Context) (<-chan Peripheral, error)
}

// Notifier subscribes to notifications from a peripheral's TBS
// characteristic, delivering each notification payload as a chunk.
type Notifier interface {
	// Subscribe starts delivering notification payloads on the
	// returned channel. The channel is closed when ctx is done or the
	// peripheral disconnects.
	Subscribe(ctx context.Context, p Peripheral) (<-chan []byte, error)
}
