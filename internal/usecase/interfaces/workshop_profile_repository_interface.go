package interfaces

import (
	"context"

	"instauto/internal/domain/entities"
)

//go:generate mockgen -source=workshop_profile_repository_interface.go -destination=mocks/workshop_profile_repository_mock.go -package=mock_interfaces

// IWorkshopProfileRepository is the read-only lookup of workshop profiles.
// GetByID returns an empty WorkshopProfile when the workshop does not exist.
type IWorkshopProfileRepository interface {
	GetByID(ctx context.Context, id string) (entities.WorkshopProfile, error)
}
