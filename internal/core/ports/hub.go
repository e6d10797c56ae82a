package ports

import (
	"context"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// HubFilter narrows a hub listing. Empty fields are ignored.
type HubFilter struct {
	CityID string
	Status string
	Search string // case-insensitive substring of hubName
}

// HubRepository persists hubs.
type HubRepository interface {
	List(ctx context.Context, filter HubFilter) ([]*domain.Hub, error)
	FindByID(ctx context.Context, id string) (*domain.Hub, error)
	// FindByName matches hubName exactly but case-insensitively within a city. excludeID skips one document.
	// It returns nil, nil when nothing matches; FindByID returns domain.ErrHubNotFound.
	FindByName(ctx context.Context, cityID, name, excludeID string) (*domain.Hub, error)
	CountByCity(ctx context.Context, cityID string) (int64, error)
	Create(ctx context.Context, hub *domain.Hub) error
	Update(ctx context.Context, hub *domain.Hub) error
	Delete(ctx context.Context, id string) error
}

// CreateHubInput carries the fields of a new hub.
type CreateHubInput struct {
	CityID              string
	HubName             string
	HubArea             string
	ServiceablePincodes []string
	Status              string
	CreatedBy           string
}

// UpdateHubInput carries a partial hub update; nil fields are untouched.
type UpdateHubInput struct {
	CityID              *string
	HubName             *string
	HubArea             *string
	ServiceablePincodes []string // nil leaves pincodes untouched
	Status              *string
}

// HubService holds the admin use cases for hubs.
type HubService interface {
	ListHubs(ctx context.Context, filter HubFilter) ([]*domain.Hub, error)
	CreateHub(ctx context.Context, input CreateHubInput) (*domain.Hub, error)
	UpdateHub(ctx context.Context, id string, input UpdateHubInput) (*domain.Hub, error)
	DeleteHub(ctx context.Context, id string) error
}
