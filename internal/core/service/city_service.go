package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/api/metrics"
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

type CityService struct {
	cities ports.CityRepository
	hubs   ports.HubRepository
	logger zerolog.Logger
}

func NewCityService(cities ports.CityRepository, hubs ports.HubRepository, logger zerolog.Logger) *CityService {
	return &CityService{cities: cities, hubs: hubs, logger: logger}
}

func (s *CityService) ListCities(ctx context.Context, filter ports.CityFilter) ([]*domain.City, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	return s.cities.List(ctx, filter)
}

// CreateCity stores a new city. Names are unique regardless of case.
func (s *CityService) CreateCity(ctx context.Context, input ports.CreateCityInput) (*domain.City, error) {
	name := strings.TrimSpace(input.CityName)
	if name == "" {
		return nil, fmt.Errorf("%w: city name is required", domain.ErrValidation)
	}
	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	existing, err := s.cities.FindByName(ctx, name, "")
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrCityExists
	}

	now := time.Now().UTC()
	city := &domain.City{
		CityName:  name,
		Status:    status,
		CreatedBy: input.CreatedBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.cities.Create(ctx, city); err != nil {
		s.logger.Error().Err(err).Str("city_name", name).Msg("failed to create city")
		return nil, err
	}

	metrics.AdminMutationsTotal.WithLabelValues("city", "create").Inc()
	s.logger.Info().Str("city_id", city.ID).Str("city_name", name).Msg("city created")
	return city, nil
}

func (s *CityService) UpdateCity(ctx context.Context, id string, input ports.UpdateCityInput) (*domain.City, error) {
	city, err := s.cities.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.CityName != nil {
		name := strings.TrimSpace(*input.CityName)
		if name == "" {
			return nil, fmt.Errorf("%w: city name cannot be empty", domain.ErrValidation)
		}
		dup, err := s.cities.FindByName(ctx, name, city.ID)
		if err != nil {
			return nil, err
		}
		if dup != nil {
			return nil, domain.ErrCityExists
		}
		city.CityName = name
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		city.Status = status
	}

	city.UpdatedAt = time.Now().UTC()
	if err := s.cities.Update(ctx, city); err != nil {
		s.logger.Error().Err(err).Str("city_id", id).Msg("failed to update city")
		return nil, err
	}

	metrics.AdminMutationsTotal.WithLabelValues("city", "update").Inc()
	return city, nil
}

// DeleteCity removes a city that no hub references.
func (s *CityService) DeleteCity(ctx context.Context, id string) error {
	if _, err := s.cities.FindByID(ctx, id); err != nil {
		return err
	}

	linked, err := s.hubs.CountByCity(ctx, id)
	if err != nil {
		return err
	}
	if linked > 0 {
		return fmt.Errorf("%w: %d hub(s) still reference it", domain.ErrCityHasHubs, linked)
	}

	if err := s.cities.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("city_id", id).Msg("failed to delete city")
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("city", "delete").Inc()
	s.logger.Info().Str("city_id", id).Msg("city deleted")
	return nil
}

// parseStatus validates an entity status; empty means active.
func parseStatus(raw string) (domain.EntityStatus, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return domain.StatusActive, nil
	}
	status := domain.EntityStatus(raw)
	if !status.Valid() {
		return "", fmt.Errorf("%w: status must be active or inactive", domain.ErrValidation)
	}
	return status, nil
}
