package masterdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/metrics"
)

// Loader imports catalog files into the master tables. Rows are matched
// by name, so re-running an import updates instead of duplicating.
type Loader struct{ db *gorm.DB }

func New(db *gorm.DB) *Loader { return &Loader{db} }

func normHeader(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "\ufeff")
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "-", "")
	s = strings.ReplaceAll(s, "_", "")
	return s
}

type headerIndex map[string]int

func indexHeaders(head []string) headerIndex {
	h := headerIndex{}
	for i, col := range head {
		h[normHeader(col)] = i
	}
	return h
}

func (h headerIndex) findAny(keys ...string) int {
	for _, k := range keys {
		if idx, ok := h[normHeader(k)]; ok {
			return idx
		}
	}
	return -1
}

func cell(rec []string, idx int) string {
	if idx < 0 || idx >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[idx])
}

// ImportPesticidesCSV reads a product catalog and upserts it into
// pesticide_masters. Required columns: name, type, interval_days.
func (l *Loader) ImportPesticidesCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return 0, err
	}
	h := indexHeaders(head)
	cName := h.findAny("name", "pesticide", "product")
	cType := h.findAny("type", "class", "pesticide_type")
	cInterval := h.findAny("interval_days", "interval", "days")
	cIngredient := h.findAny("active_ingredient", "ingredient")
	cDesc := h.findAny("description", "note", "notes")
	if cName == -1 || cType == -1 || cInterval == -1 {
		return 0, fmt.Errorf("pesticide catalog %s missing required columns, found: %v", path, head)
	}

	imported := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return imported, err
		}
		name := cell(rec, cName)
		if name == "" {
			continue
		}
		interval, _ := strconv.Atoi(cell(rec, cInterval))
		if interval <= 0 {
			continue
		}
		class := cell(rec, cType)
		if class != "insecticide" && class != "fungicide" {
			continue
		}
		row := entities.PesticideMaster{
			Name: name, Type: class, IntervalDays: interval,
			ActiveIngredient: cell(rec, cIngredient),
			Description:      cell(rec, cDesc),
		}
		if err := l.upsertPesticide(&row); err != nil {
			return imported, err
		}
		imported++
	}
	metrics.MasterImportRows.WithLabelValues("pesticide_masters").Add(float64(imported))
	return imported, nil
}

func (l *Loader) upsertPesticide(row *entities.PesticideMaster) error {
	var existing entities.PesticideMaster
	err := l.db.Where("name = ?", row.Name).First(&existing).Error
	if err == nil {
		row.PesticideID = existing.PesticideID
		return l.db.Save(row).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return l.db.Create(row).Error
	}
	return err
}

// ImportPestDiseasesCSV reads the pest/disease catalog with optional
// month-range columns. Required: name, type.
func (l *Loader) ImportPestDiseasesCSV(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cr := csv.NewReader(f)
	head, err := cr.Read()
	if err != nil {
		return 0, err
	}
	h := indexHeaders(head)
	cName := h.findAny("name", "pest", "pest_disease")
	cType := h.findAny("type", "kind")
	cSeason := h.findAny("season")
	cStart := h.findAny("start_month", "from", "start")
	cEnd := h.findAny("end_month", "to", "end")
	cDesc := h.findAny("description", "notes")
	if cName == -1 || cType == -1 {
		return 0, fmt.Errorf("pest/disease catalog %s missing required columns, found: %v", path, head)
	}

	imported := 0
	for {
		rec, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return imported, err
		}
		name := cell(rec, cName)
		kind := cell(rec, cType)
		if name == "" || (kind != "pest" && kind != "disease") {
			continue
		}
		season := cell(rec, cSeason)
		if season == "" {
			season = "通年"
		}
		row := entities.PestDiseaseMaster{
			Name: name, Type: kind, Season: season,
			StartMonth:  monthCell(rec, cStart),
			EndMonth:    monthCell(rec, cEnd),
			Description: cell(rec, cDesc),
		}
		if err := l.upsertPestDisease(&row); err != nil {
			return imported, err
		}
		imported++
	}
	metrics.MasterImportRows.WithLabelValues("pest_disease_masters").Add(float64(imported))
	return imported, nil
}

func monthCell(rec []string, idx int) *int {
	v, err := strconv.Atoi(cell(rec, idx))
	if err != nil || v < 1 || v > 12 {
		return nil
	}
	return &v
}

func (l *Loader) upsertPestDisease(row *entities.PestDiseaseMaster) error {
	var existing entities.PestDiseaseMaster
	err := l.db.Where("name = ?", row.Name).First(&existing).Error
	if err == nil {
		row.PestDiseaseID = existing.PestDiseaseID
		return l.db.Save(row).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return l.db.Create(row).Error
	}
	return err
}

// ImportSpeciesXLSX reads the species sheet of a workbook. The first
// row is the header; name is required, the rest is optional.
func (l *Loader) ImportSpeciesXLSX(path, sheet string) (int, error) {
	x, err := excelize.OpenFile(path)
	if err != nil {
		return 0, err
	}
	defer x.Close()

	if sheet == "" {
		sheet = x.GetSheetName(0)
	}
	rows, err := x.GetRows(sheet)
	if err != nil {
		return 0, err
	}
	if len(rows) < 2 {
		return 0, nil
	}
	h := indexHeaders(rows[0])
	cName := h.findAny("name", "species")
	cSci := h.findAny("scientific_name", "latin")
	cCat := h.findAny("category")
	cDesc := h.findAny("description")
	cCare := h.findAny("care_notes", "care")
	if cName == -1 {
		return 0, fmt.Errorf("species sheet %s/%s has no name column", path, sheet)
	}

	imported := 0
	for _, rec := range rows[1:] {
		name := cell(rec, cName)
		if name == "" {
			continue
		}
		row := entities.SpeciesMaster{
			Name:           name,
			ScientificName: cell(rec, cSci),
			Category:       cell(rec, cCat),
			Description:    cell(rec, cDesc),
			CareNotes:      cell(rec, cCare),
		}
		if row.Category == "" {
			row.Category = "その他"
		}
		if err := l.upsertSpecies(&row); err != nil {
			return imported, err
		}
		imported++
	}
	metrics.MasterImportRows.WithLabelValues("species_masters").Add(float64(imported))
	return imported, nil
}

func (l *Loader) upsertSpecies(row *entities.SpeciesMaster) error {
	var existing entities.SpeciesMaster
	err := l.db.Where("name = ?", row.Name).First(&existing).Error
	if err == nil {
		row.SpeciesID = existing.SpeciesID
		return l.db.Save(row).Error
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return l.db.Create(row).Error
	}
	return err
}
