package realtime

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/ports"
)

// EnsureMandatoryCollections creates every mandatory collection that does not
// exist yet with a "_meta" stub child. Existing collections are never
// touched. All collections are attempted; the joined errors are returned.
func EnsureMandatoryCollections(ctx context.Context, store ports.RealtimeStore, nowMs int64, log zerolog.Logger) error {
	var errs []error
	for _, name := range domain.MandatoryCollections {
		exists, err := store.Exists(ctx, name)
		if err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("failed to check collection")
			errs = append(errs, fmt.Errorf("check %s: %w", name, err))
			continue
		}
		if exists {
			continue
		}

		stub := domain.Record{
			domain.MetaKey: map[string]any{
				"initialized_at": nowMs,
				"mandatory":      domain.IsRequiredCollection(name),
			},
		}
		if err := store.Set(ctx, name, stub); err != nil {
			log.Warn().Err(err).Str("collection", name).Msg("failed to initialize collection")
			errs = append(errs, fmt.Errorf("initialize %s: %w", name, err))
			continue
		}
		log.Info().Str("collection", name).Msg("collection initialized")
	}
	return errors.Join(errs...)
}
