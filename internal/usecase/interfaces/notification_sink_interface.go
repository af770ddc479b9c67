package interfaces

import (
	"context"

	"instauto/internal/domain/entities"
)

//go:generate mockgen -source=notification_sink_interface.go -destination=mocks/notification_sink_mock.go -package=mock_interfaces

// INotificationSink persists one in-app notification. Delivery to devices is
// somebody else's job.
type INotificationSink interface {
	Enqueue(ctx context.Context, n entities.Notification) error
}
