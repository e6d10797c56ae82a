package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/api/metrics"
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

type AboutService struct {
	repo   ports.AboutRepository
	logger zerolog.Logger
}

func NewAboutService(repo ports.AboutRepository, logger zerolog.Logger) *AboutService {
	return &AboutService{repo: repo, logger: logger}
}

// GetPublic returns the active page, or the built-in default without storing it.
func (s *AboutService) GetPublic(ctx context.Context) (*domain.About, error) {
	about, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if about == nil {
		def := domain.DefaultAbout()
		return &def, nil
	}
	return about, nil
}

// GetForAdmin returns the active page, storing the default first when none exists.
func (s *AboutService) GetForAdmin(ctx context.Context, adminID string) (*domain.About, error) {
	about, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	if about != nil {
		return about, nil
	}

	def := domain.DefaultAbout()
	def.UpdatedBy = adminID
	if err := s.repo.Create(ctx, &def); err != nil {
		s.logger.Error().Err(err).Msg("failed to create default about page")
		return nil, err
	}

	metrics.AdminMutationsTotal.WithLabelValues("about", "create").Inc()
	s.logger.Info().Str("admin_id", adminID).Msg("default about page created")
	return &def, nil
}

func (s *AboutService) Update(ctx context.Context, input ports.UpdateAboutInput) (*domain.About, error) {
	update := ports.AboutUpdate{
		AppName:     strings.TrimSpace(input.AppName),
		Version:     strings.TrimSpace(input.Version),
		Description: strings.TrimSpace(input.Description),
		UpdatedBy:   input.UpdatedBy,
	}
	if update.AppName == "" || update.Version == "" || update.Description == "" {
		return nil, fmt.Errorf("%w: app name, version and description are required", domain.ErrValidation)
	}

	if input.Logo != nil {
		logo := strings.TrimSpace(*input.Logo)
		update.Logo = &logo
	}
	if input.Features != nil {
		update.Features = sanitizeFeatures(input.Features)
	}
	if input.Stats != nil {
		update.Stats = sanitizeStats(input.Stats)
	}

	about, err := s.repo.UpsertActive(ctx, update)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to update about page")
		return nil, err
	}

	metrics.AdminMutationsTotal.WithLabelValues("about", "update").Inc()
	s.logger.Info().Str("admin_id", input.UpdatedBy).Msg("about page updated")
	return about, nil
}

// sanitizeFeatures keeps complete rows only. Order defaults to the row's
// position in the submitted list.
func sanitizeFeatures(in []ports.FeatureInput) []domain.AboutFeature {
	out := make([]domain.AboutFeature, 0, len(in))
	for i, f := range in {
		icon, title, desc := strings.TrimSpace(f.Icon), strings.TrimSpace(f.Title), strings.TrimSpace(f.Description)
		if icon == "" || title == "" || desc == "" {
			continue
		}
		feature := domain.AboutFeature{
			Icon:        icon,
			Title:       title,
			Description: desc,
			Color:       orDefault(f.Color, domain.DefaultFeatureColor),
			BgColor:     orDefault(f.BgColor, domain.DefaultFeatureBgColor),
			Order:       i,
		}
		if f.Order != nil {
			feature.Order = *f.Order
		}
		out = append(out, feature)
	}
	return out
}

func sanitizeStats(in []ports.StatInput) []domain.AboutStat {
	out := make([]domain.AboutStat, 0, len(in))
	for i, st := range in {
		label, value, icon := strings.TrimSpace(st.Label), strings.TrimSpace(st.Value), strings.TrimSpace(st.Icon)
		if label == "" || value == "" || icon == "" {
			continue
		}
		stat := domain.AboutStat{Label: label, Value: value, Icon: icon, Order: i}
		if st.Order != nil {
			stat.Order = *st.Order
		}
		out = append(out, stat)
	}
	return out
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}
