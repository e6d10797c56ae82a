package ports

import (
	"context"

	"github.com/appzeto/food-admin/internal/core/domain"
)

// AboutRepository persists the single active about page.
type AboutRepository interface {
	// FindActive returns nil, nil when no active page exists.
	FindActive(ctx context.Context) (*domain.About, error)
	Create(ctx context.Context, about *domain.About) error
	// UpsertActive applies the update to the active page, creating it when missing.
	UpsertActive(ctx context.Context, update AboutUpdate) (*domain.About, error)
}

// AboutUpdate is the sanitized change set applied to the active page.
// Nil Logo/Features/Stats are left untouched.
type AboutUpdate struct {
	AppName     string
	Version     string
	Description string
	Logo        *string
	Features    []domain.AboutFeature
	Stats       []domain.AboutStat
	UpdatedBy   string
}

// FeatureInput is a raw feature row from the admin form.
type FeatureInput struct {
	Icon        string
	Title       string
	Description string
	Color       string
	BgColor     string
	Order       *int
}

// StatInput is a raw stat row from the admin form.
type StatInput struct {
	Label string
	Value string
	Icon  string
	Order *int
}

// UpdateAboutInput is the admin form as received. Nil slices mean "not sent".
type UpdateAboutInput struct {
	AppName     string
	Version     string
	Description string
	Logo        *string
	Features    []FeatureInput
	Stats       []StatInput
	UpdatedBy   string
}

// AboutService holds the about page use cases.
type AboutService interface {
	GetPublic(ctx context.Context) (*domain.About, error)
	GetForAdmin(ctx context.Context, adminID string) (*domain.About, error)
	Update(ctx context.Context, input UpdateAboutInput) (*domain.About, error)
}
