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

type HubService struct {
	hubs   ports.HubRepository
	cities ports.CityRepository
	logger zerolog.Logger
}

func NewHubService(hubs ports.HubRepository, cities ports.CityRepository, logger zerolog.Logger) *HubService {
	return &HubService{hubs: hubs, cities: cities, logger: logger}
}

// ListHubs returns the matching hubs with their city names filled in.
func (s *HubService) ListHubs(ctx context.Context, filter ports.HubFilter) ([]*domain.Hub, error) {
	filter.Search = strings.TrimSpace(filter.Search)
	hubs, err := s.hubs.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if err := s.resolveCityNames(ctx, hubs...); err != nil {
		return nil, err
	}
	return hubs, nil
}

func (s *HubService) CreateHub(ctx context.Context, input ports.CreateHubInput) (*domain.Hub, error) {
	name := strings.TrimSpace(input.HubName)
	cityID := strings.TrimSpace(input.CityID)
	if cityID == "" || name == "" {
		return nil, fmt.Errorf("%w: city and hub name are required", domain.ErrValidation)
	}
	status, err := parseStatus(input.Status)
	if err != nil {
		return nil, err
	}

	city, err := s.cities.FindByID(ctx, cityID)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, city.ID, name, ""); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	hub := &domain.Hub{
		CityID:              city.ID,
		CityName:            city.CityName,
		HubName:             name,
		HubArea:             strings.TrimSpace(input.HubArea),
		ServiceablePincodes: normalizePincodes(input.ServiceablePincodes),
		Status:              status,
		CreatedBy:           input.CreatedBy,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.hubs.Create(ctx, hub); err != nil {
		s.logger.Error().Err(err).Str("hub_name", name).Msg("failed to create hub")
		return nil, err
	}

	metrics.AdminMutationsTotal.WithLabelValues("hub", "create").Inc()
	s.logger.Info().Str("hub_id", hub.ID).Str("city_id", city.ID).Msg("hub created")
	return hub, nil
}

// UpdateHub applies a partial update. The name is re-checked against the
// effective city whenever either of them changes.
func (s *HubService) UpdateHub(ctx context.Context, id string, input ports.UpdateHubInput) (*domain.Hub, error) {
	hub, err := s.hubs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	recheck := false
	if input.CityID != nil {
		cityID := strings.TrimSpace(*input.CityID)
		if cityID != hub.CityID {
			city, err := s.cities.FindByID(ctx, cityID)
			if err != nil {
				return nil, err
			}
			hub.CityID = city.ID
			recheck = true
		}
	}
	if input.HubName != nil {
		name := strings.TrimSpace(*input.HubName)
		if name == "" {
			return nil, fmt.Errorf("%w: hub name cannot be empty", domain.ErrValidation)
		}
		if name != hub.HubName {
			hub.HubName = name
			recheck = true
		}
	}
	if recheck {
		if err := s.ensureUniqueName(ctx, hub.CityID, hub.HubName, hub.ID); err != nil {
			return nil, err
		}
	}

	if input.HubArea != nil {
		hub.HubArea = strings.TrimSpace(*input.HubArea)
	}
	if input.ServiceablePincodes != nil {
		hub.ServiceablePincodes = normalizePincodes(input.ServiceablePincodes)
	}
	if input.Status != nil {
		status, err := parseStatus(*input.Status)
		if err != nil {
			return nil, err
		}
		hub.Status = status
	}

	hub.UpdatedAt = time.Now().UTC()
	if err := s.hubs.Update(ctx, hub); err != nil {
		s.logger.Error().Err(err).Str("hub_id", id).Msg("failed to update hub")
		return nil, err
	}
	if err := s.resolveCityNames(ctx, hub); err != nil {
		return nil, err
	}

	metrics.AdminMutationsTotal.WithLabelValues("hub", "update").Inc()
	return hub, nil
}

func (s *HubService) DeleteHub(ctx context.Context, id string) error {
	if _, err := s.hubs.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.hubs.Delete(ctx, id); err != nil {
		s.logger.Error().Err(err).Str("hub_id", id).Msg("failed to delete hub")
		return err
	}

	metrics.AdminMutationsTotal.WithLabelValues("hub", "delete").Inc()
	s.logger.Info().Str("hub_id", id).Msg("hub deleted")
	return nil
}

func (s *HubService) ensureUniqueName(ctx context.Context, cityID, name, excludeID string) error {
	dup, err := s.hubs.FindByName(ctx, cityID, name, excludeID)
	if err != nil {
		return err
	}
	if dup != nil {
		return domain.ErrHubExists
	}
	return nil
}

// resolveCityNames fills CityName from a single batched city lookup.
func (s *HubService) resolveCityNames(ctx context.Context, hubs ...*domain.Hub) error {
	if len(hubs) == 0 {
		return nil
	}

	seen := make(map[string]bool)
	var ids []string
	for _, h := range hubs {
		if h.CityID != "" && !seen[h.CityID] {
			seen[h.CityID] = true
			ids = append(ids, h.CityID)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	cities, err := s.cities.FindByIDs(ctx, ids)
	if err != nil {
		return err
	}
	names := make(map[string]string, len(cities))
	for _, c := range cities {
		names[c.ID] = c.CityName
	}
	for _, h := range hubs {
		h.CityName = names[h.CityID]
	}
	return nil
}

// normalizePincodes trims entries, drops blanks and duplicates, keeping order.
func normalizePincodes(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, p := range in {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}
