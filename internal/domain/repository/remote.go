package repository

import (
	"context"

	"github.com/glowdesk/salonpos-api/internal/domain/entity"
)

// RemoteBills is the remote replica of the bill collection. It is
// advisory and eventually consistent; the local store stays
// authoritative for the device.
type RemoteBills interface {
	// SubscribeBills registers a callback invoked with the full
	// collection, ordered by bill date descending, whenever it
	// changes. The returned func cancels the subscription.
	SubscribeBills(callback func(bills []entity.Bill)) (cancel func())
	// SaveBill upserts one bill by id.
	SaveBill(ctx context.Context, bill entity.Bill) error
}

// RemoteServices is the remote replica of the predefined-services
// collection.
type RemoteServices interface {
	SubscribeServices(callback func(services []entity.PredefinedService)) (cancel func())
	SaveService(ctx context.Context, service entity.PredefinedService) error
	DeleteService(ctx context.Context, id string) error
}

// RemoteStore groups both remote collections.
type RemoteStore interface {
	RemoteBills
	RemoteServices
}
