package repository

import (
	"bonsai/entities"
	"bonsai/pkg/recommend/types"
)

// RecommendRepository is the engine's read-only view of the master tables
// and the application history. It never writes.
type RecommendRepository interface {
	// RisksBySpecies returns all risk rows for a species, highest
	// occurrence probability first, pests before diseases.
	RisksBySpecies(speciesID uint) ([]types.RiskRow, error)

	// EffectiveForTargets groups effectiveness rows for the given
	// pest/disease ids by pesticide, averaging the level. class narrows to
	// one pesticide class; empty means both. Sorted by mean effectiveness
	// descending, then shorter re-application interval first.
	EffectiveForTargets(pestDiseaseIDs []uint, class string) ([]types.Candidate, error)

	ProhibitionsBySpecies(speciesID uint) ([]types.Prohibition, error)

	// PesticideClassByName returns "" when the product is unknown.
	PesticideClassByName(name string) (string, error)

	// LogsSince returns a tree's application logs on or after the cutoff
	// date (YYYY-MM-DD), newest first.
	LogsSince(bonsaiID uint, cutoff string) ([]entities.PesticideLog, error)

	// LatestLog returns nil when the tree has no history.
	LatestLog(bonsaiID uint) (*entities.PesticideLog, error)
}
