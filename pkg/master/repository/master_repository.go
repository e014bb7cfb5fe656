package repository

import "bonsai/entities"

// Joined list rows for the admin screens.

type EffectivenessRow struct {
	entities.PesticideEffectiveness
	PesticideName   string `json:"pesticide_name"`
	PestDiseaseName string `json:"pest_disease_name"`
}

type SpeciesRiskRow struct {
	entities.SpeciesPestDisease
	SpeciesName     string `json:"species_name"`
	PestDiseaseName string `json:"pest_disease_name"`
	PestDiseaseType string `json:"pest_disease_type"`
}

type ProhibitedRow struct {
	entities.SpeciesProhibitedPesticide
	SpeciesName   string `json:"species_name"`
	PesticideName string `json:"pesticide_name"`
}

type MasterRepository interface {
	UserRole(userID uint) (string, error)

	ListPesticides() ([]entities.PesticideMaster, error)
	CreatePesticide(p *entities.PesticideMaster) error
	UpdatePesticide(p *entities.PesticideMaster) error
	DeletePesticide(id uint) error
	// PesticideRefs counts effectiveness and prohibition rows pointing at
	// the pesticide; a non-zero count blocks deletion.
	PesticideRefs(id uint) (int64, error)

	ListPestDiseases() ([]entities.PestDiseaseMaster, error)
	CreatePestDisease(pd *entities.PestDiseaseMaster) error
	DeletePestDisease(id uint) error
	PestDiseaseRefs(id uint) (int64, error)

	ListSpecies() ([]entities.SpeciesMaster, error)
	CreateSpecies(s *entities.SpeciesMaster) error
	DeleteSpecies(id uint) error
	SpeciesRefs(id uint) (int64, error)

	ListEffectiveness() ([]EffectivenessRow, error)
	UpsertEffectiveness(e *entities.PesticideEffectiveness) error
	DeleteEffectiveness(id uint) error

	ListSpeciesRisks() ([]SpeciesRiskRow, error)
	UpsertSpeciesRisk(sr *entities.SpeciesPestDisease) error
	DeleteSpeciesRisk(id uint) error

	ListProhibited() ([]ProhibitedRow, error)
	UpsertProhibited(p *entities.SpeciesProhibitedPesticide) error
	DeleteProhibited(id uint) error

	Summary() (map[string]int64, error)
}
