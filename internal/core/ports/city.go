package ports

import (
	"context"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// CityFilter narrows a city listing. Empty fields are ignored.
type CityFilter struct {
	Status string
	Search string // case-insensitive substring of cityName
}

// CityRepository persists cities.
type CityRepository interface {
	List(ctx context.Context, filter CityFilter) ([]*domain.City, error)
	FindByID(ctx context.Context, id string) (*domain.City, error)
	FindByIDs(ctx context.Context, ids []string) ([]*domain.City, error)
	// FindByName matches the name exactly but case-insensitively. excludeID skips one document.
	// It returns nil, nil when nothing matches; FindByID returns domain.ErrCityNotFound.
	FindByName(ctx context.Context, name, excludeID string) (*domain.City, error)
	Create(ctx context.Context, city *domain.City) error
	Update(ctx context.Context, city *domain.City) error
	Delete(ctx context.Context, id string) error
}

// CreateCityInput carries the fields of a new city.
type CreateCityInput struct {
	CityName  string
	Status    string
	CreatedBy string
}

// UpdateCityInput carries a partial city update; nil fields are untouched.
type UpdateCityInput struct {
	CityName *string
	Status   *string
}

// CityService holds the admin use cases for cities.
type CityService interface {
	ListCities(ctx context.Context, filter CityFilter) ([]*domain.City, error)
	CreateCity(ctx context.Context, input CreateCityInput) (*domain.City, error)
	UpdateCity(ctx context.Context, id string, input UpdateCityInput) (*domain.City, error)
	DeleteCity(ctx context.Context, id string) error
}
