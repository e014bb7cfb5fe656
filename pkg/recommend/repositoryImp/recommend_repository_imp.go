package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/recommend/repository"
	"bonsai/pkg/recommend/types"
)

type recommendRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.RecommendRepository { return &recommendRepo{db} }

func (r *recommendRepo) RisksBySpecies(speciesID uint) ([]types.RiskRow, error) {
	var rows []types.RiskRow
	err := r.db.Table("species_pest_diseases spd").
		Select(`pdm.pest_disease_id, pdm.name, pdm.type AS kind, spd.occurrence_probability AS probability,
			spd.start_month AS override_start, spd.end_month AS override_end, spd.season AS override_season,
			pdm.start_month AS master_start, pdm.end_month AS master_end, pdm.season AS master_season,
			spd.notes`).
		Joins("JOIN pest_disease_masters pdm ON pdm.pest_disease_id = spd.pest_disease_id").
		Where("spd.species_id = ?", speciesID).
		Order("spd.occurrence_probability DESC, pdm.type DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recommendRepo) EffectiveForTargets(pestDiseaseIDs []uint, class string) ([]types.Candidate, error) {
	if len(pestDiseaseIDs) == 0 {
		return nil, nil
	}
	q := r.db.Table("pesticide_effectivenesses pe").
		Select(`pm.pesticide_id, pm.name, pm.type AS class, pm.interval_days, pm.active_ingredient,
			pm.description, AVG(pe.effectiveness_level) AS avg_effectiveness`).
		Joins("JOIN pesticide_masters pm ON pm.pesticide_id = pe.pesticide_id").
		Where("pe.pest_disease_id IN ?", pestDiseaseIDs)
	if class != "" {
		q = q.Where("pm.type = ?", class)
	}
	var out []types.Candidate
	err := q.Group("pe.pesticide_id").
		Order("avg_effectiveness DESC, pm.interval_days ASC").
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendRepo) ProhibitionsBySpecies(speciesID uint) ([]types.Prohibition, error) {
	var out []types.Prohibition
	err := r.db.Table("species_prohibited_pesticides spp").
		Select("spp.pesticide_id, pm.name AS pesticide_name, spp.severity, spp.reason").
		Joins("JOIN pesticide_masters pm ON pm.pesticide_id = spp.pesticide_id").
		Where("spp.species_id = ?", speciesID).
		Scan(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendRepo) PesticideClassByName(name string) (string, error) {
	var p entities.PesticideMaster
	if err := r.db.Where("name = ?", name).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return p.Type, nil
}

func (r *recommendRepo) LogsSince(bonsaiID uint, cutoff string) ([]entities.PesticideLog, error) {
	var out []entities.PesticideLog
	if err := r.db.Where("bonsai_id = ? AND date >= ?", bonsaiID, cutoff).
		Order("date DESC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recommendRepo) LatestLog(bonsaiID uint) (*entities.PesticideLog, error) {
	var l entities.PesticideLog
	if err := r.db.Where("bonsai_id = ?", bonsaiID).
		Order("date DESC").First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}
