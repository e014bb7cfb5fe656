package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/master/repository"
)

type masterRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.MasterRepository { return &masterRepo{db} }

func (r *masterRepo) UserRole(userID uint) (string, error) {
	var u entities.User
	if err := r.db.First(&u, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return u.Role, nil
}

func (r *masterRepo) ListPesticides() ([]entities.PesticideMaster, error) {
	var out []entities.PesticideMaster
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterRepo) CreatePesticide(p *entities.PesticideMaster) error {
	return r.db.Create(p).Error
}

func (r *masterRepo) UpdatePesticide(p *entities.PesticideMaster) error {
	return r.db.Model(&entities.PesticideMaster{PesticideID: p.PesticideID}).
		Select("Name", "Type", "IntervalDays", "ActiveIngredient", "Description").
		Updates(p).Error
}

func (r *masterRepo) DeletePesticide(id uint) error {
	return r.db.Delete(&entities.PesticideMaster{}, id).Error
}

func (r *masterRepo) PesticideRefs(id uint) (int64, error) {
	var eff, prohibited int64
	if err := r.db.Model(&entities.PesticideEffectiveness{}).
		Where("pesticide_id = ?", id).Count(&eff).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&entities.SpeciesProhibitedPesticide{}).
		Where("pesticide_id = ?", id).Count(&prohibited).Error; err != nil {
		return 0, err
	}
	return eff + prohibited, nil
}

func (r *masterRepo) ListPestDiseases() ([]entities.PestDiseaseMaster, error) {
	var out []entities.PestDiseaseMaster
	if err := r.db.Order("type, name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterRepo) CreatePestDisease(pd *entities.PestDiseaseMaster) error {
	return r.db.Create(pd).Error
}

func (r *masterRepo) DeletePestDisease(id uint) error {
	return r.db.Delete(&entities.PestDiseaseMaster{}, id).Error
}

func (r *masterRepo) PestDiseaseRefs(id uint) (int64, error) {
	var eff, risks int64
	if err := r.db.Model(&entities.PesticideEffectiveness{}).
		Where("pest_disease_id = ?", id).Count(&eff).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&entities.SpeciesPestDisease{}).
		Where("pest_disease_id = ?", id).Count(&risks).Error; err != nil {
		return 0, err
	}
	return eff + risks, nil
}

func (r *masterRepo) ListSpecies() ([]entities.SpeciesMaster, error) {
	var out []entities.SpeciesMaster
	if err := r.db.Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterRepo) CreateSpecies(s *entities.SpeciesMaster) error {
	return r.db.Create(s).Error
}

func (r *masterRepo) DeleteSpecies(id uint) error {
	return r.db.Delete(&entities.SpeciesMaster{}, id).Error
}

func (r *masterRepo) SpeciesRefs(id uint) (int64, error) {
	var trees, risks, prohibited int64
	if err := r.db.Model(&entities.Bonsai{}).
		Where("species_id = ?", id).Count(&trees).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&entities.SpeciesPestDisease{}).
		Where("species_id = ?", id).Count(&risks).Error; err != nil {
		return 0, err
	}
	if err := r.db.Model(&entities.SpeciesProhibitedPesticide{}).
		Where("species_id = ?", id).Count(&prohibited).Error; err != nil {
		return 0, err
	}
	return trees + risks + prohibited, nil
}

func (r *masterRepo) ListEffectiveness() ([]repository.EffectivenessRow, error) {
	var out []repository.EffectivenessRow
	err := r.db.
		Table("pesticide_effectivenesses pe").
		Select("pe.*, pm.name AS pesticide_name, pdm.name AS pest_disease_name").
		Joins("JOIN pesticide_masters pm ON pe.pesticide_id = pm.pesticide_id").
		Joins("JOIN pest_disease_masters pdm ON pe.pest_disease_id = pdm.pest_disease_id").
		Order("pm.name, pdm.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterRepo) UpsertEffectiveness(e *entities.PesticideEffectiveness) error {
	var existing entities.PesticideEffectiveness
	err := r.db.Where("pesticide_id = ? AND pest_disease_id = ?", e.PesticideID, e.PestDiseaseID).
		First(&existing).Error
	if err == nil {
		e.EffectivenessID = existing.EffectivenessID
		return r.db.Save(e).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(e).Error
	}
	return err
}

func (r *masterRepo) DeleteEffectiveness(id uint) error {
	return r.db.Delete(&entities.PesticideEffectiveness{}, id).Error
}

func (r *masterRepo) ListSpeciesRisks() ([]repository.SpeciesRiskRow, error) {
	var out []repository.SpeciesRiskRow
	err := r.db.
		Table("species_pest_diseases spd").
		Select("spd.*, sm.name AS species_name, pdm.name AS pest_disease_name, pdm.type AS pest_disease_type").
		Joins("JOIN species_masters sm ON spd.species_id = sm.species_id").
		Joins("JOIN pest_disease_masters pdm ON spd.pest_disease_id = pdm.pest_disease_id").
		Order("sm.name, pdm.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterRepo) UpsertSpeciesRisk(sr *entities.SpeciesPestDisease) error {
	var existing entities.SpeciesPestDisease
	err := r.db.Where("species_id = ? AND pest_disease_id = ?", sr.SpeciesID, sr.PestDiseaseID).
		First(&existing).Error
	if err == nil {
		sr.SpeciesRiskID = existing.SpeciesRiskID
		return r.db.Save(sr).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(sr).Error
	}
	return err
}

func (r *masterRepo) DeleteSpeciesRisk(id uint) error {
	return r.db.Delete(&entities.SpeciesPestDisease{}, id).Error
}

func (r *masterRepo) ListProhibited() ([]repository.ProhibitedRow, error) {
	var out []repository.ProhibitedRow
	err := r.db.
		Table("species_prohibited_pesticides spp").
		Select("spp.*, sm.name AS species_name, pm.name AS pesticide_name").
		Joins("JOIN species_masters sm ON spp.species_id = sm.species_id").
		Joins("JOIN pesticide_masters pm ON spp.pesticide_id = pm.pesticide_id").
		Order("sm.name, pm.name").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterRepo) UpsertProhibited(p *entities.SpeciesProhibitedPesticide) error {
	var existing entities.SpeciesProhibitedPesticide
	err := r.db.Where("species_id = ? AND pesticide_id = ?", p.SpeciesID, p.PesticideID).
		First(&existing).Error
	if err == nil {
		p.ProhibitedID = existing.ProhibitedID
		return r.db.Save(p).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.db.Create(p).Error
	}
	return err
}

func (r *masterRepo) DeleteProhibited(id uint) error {
	return r.db.Delete(&entities.SpeciesProhibitedPesticide{}, id).Error
}

func (r *masterRepo) Summary() (map[string]int64, error) {
	counts := map[string]any{
		"species_count":       &entities.SpeciesMaster{},
		"pesticides_count":    &entities.PesticideMaster{},
		"pest_diseases_count": &entities.PestDiseaseMaster{},
		"effectiveness_count": &entities.PesticideEffectiveness{},
		"species_risks_count": &entities.SpeciesPestDisease{},
		"prohibited_count":    &entities.SpeciesProhibitedPesticide{},
	}
	out := make(map[string]int64, len(counts))
	for key, model := range counts {
		var n int64
		if err := r.db.Model(model).Count(&n).Error; err != nil {
			return nil, err
		}
		out[key] = n
	}
	return out, nil
}
