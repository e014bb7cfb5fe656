package service

import (
	"time"

	"bonsai/entities"
	"bonsai/pkg/recommend/types"
)

type RecommendService interface {
	// ForBonsai computes the combined insecticide/fungicide recommendation
	// for one tree at the given instant.
	ForBonsai(b *entities.Bonsai, now time.Time) (*types.Recommendation, error)

	// MonthlyRisks is the rolling two-month-ahead view: active risks and
	// top rotated candidates for the current and the next month.
	MonthlyRisks(b *entities.Bonsai, now time.Time) (*types.MonthlyRisks, error)

	// SpeciesPesticides lists the catalog of effective and prohibited
	// pesticides for a species, without month filtering.
	SpeciesPesticides(speciesID uint, now time.Time) (*types.SpeciesPesticides, error)
}
