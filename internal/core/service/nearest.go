package service

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/appzeto/food-admin/internal/api/metrics"
	"github.com/appzeto/food-admin/internal/core/domain"
	"github.com/appzeto/food-admin/internal/core/geo"
)

// FindNearestOnlineDeliveryBoy returns the online delivery boy closest to
// (lat, lng) within maxDistanceKm, or nil. A NaN radius stands for an
// omitted one and falls back to domain.DefaultNearestRadiusKm. A zero radius
// only matches candidates at the exact point; a negative one matches nothing.
//
// Candidates are visited in ascending id order and only a strictly closer
// one replaces the current best, so ties go to the lowest id. Records whose
// lat or lng is not numeric are skipped.
func (s *TrackingService) FindNearestOnlineDeliveryBoy(ctx context.Context, lat, lng, maxDistanceKm float64) *domain.NearestDeliveryBoy {
	start := time.Now()
	if math.IsNaN(maxDistanceKm) {
		maxDistanceKm = domain.DefaultNearestRadiusKm
	}

	st := s.acquire(domain.CollectionDeliveryBoys, opQuery, "nearest")
	if st == nil {
		metrics.NearestSearchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil
	}

	boys, err := st.QueryEqual(ctx, domain.CollectionDeliveryBoys, "status", domain.DeliveryBoyOnline)
	if !s.finish(domain.CollectionDeliveryBoys, opQuery, "nearest", err) {
		metrics.NearestSearchDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return nil
	}

	ids := make([]string, 0, len(boys))
	for id := range boys {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	metrics.NearestCandidatesScanned.Add(float64(len(ids)))

	var nearest *domain.NearestDeliveryBoy
	minDistance := math.Inf(1)
	for _, id := range ids {
		boy := boys[id]
		if boy == nil || !geo.IsNumber(boy["lat"]) || !geo.IsNumber(boy["lng"]) {
			continue
		}

		d := geo.HaversineKm(lat, lng, geo.Coerce(boy["lat"]), geo.Coerce(boy["lng"]))
		if d <= maxDistanceKm && d < minDistance {
			minDistance = d
			nearest = &domain.NearestDeliveryBoy{
				BoyID:      id,
				DistanceKm: geo.Round(d, 3),
				Record:     boy,
			}
		}
	}

	result := "none"
	if nearest != nil {
		result = "found"
	}
	metrics.NearestSearchDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	s.log.Debug().
		Float64("lat", lat).
		Float64("lng", lng).
		Float64("max_km", maxDistanceKm).
		Int("candidates", len(ids)).
		Str("result", result).
		Msg("nearest delivery boy search")

	return nearest
}
