// database/bootstrap.go
package database

import (
	"fmt"
	"log"

	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"bonsai/entities"
	"bonsai/pkg/season"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.User{},
		&entities.Bonsai{},
		&entities.BonsaiImage{},
		&entities.PesticideLog{},
		&entities.WorkLog{},
		&entities.SpeciesMaster{},
		&entities.PesticideMaster{},
		&entities.PestDiseaseMaster{},
		&entities.PesticideEffectiveness{},
		&entities.SpeciesPestDisease{},
		&entities.SpeciesProhibitedPesticide{},
	); err != nil {
		log.Fatalf("automigrate: %v", err)
	}

	// Legacy rows carry only a season label; backfill month ranges so the
	// resolvers never have to consult the label at query time.
	if err := backfillMonthlyRanges(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	return db
}

// backfillMonthlyRanges converts season-label-only rows to month ranges,
// in both pest_disease_masters and species_pest_diseases.
func backfillMonthlyRanges(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		for label := range map[string]struct{}{"春": {}, "夏": {}, "秋": {}, "冬": {}, "梅雨": {}, "通年": {}} {
			r, _ := season.Months(label)
			if err := tx.Model(&entities.PestDiseaseMaster{}).
				Where("season = ? AND start_month IS NULL", label).
				Updates(map[string]any{"start_month": r.Start, "end_month": r.End}).Error; err != nil {
				return fmt.Errorf("backfill pest_disease_masters: %w", err)
			}
			if err := tx.Model(&entities.SpeciesPestDisease{}).
				Where("season = ? AND start_month IS NULL", label).
				Updates(map[string]any{"start_month": r.Start, "end_month": r.End}).Error; err != nil {
				return fmt.Errorf("backfill species_pest_diseases: %w", err)
			}
		}
		return nil
	})
}

// SeedMasterData inserts the reference catalog on a fresh database.
// Existing data is left untouched.
func SeedMasterData(db *gorm.DB) {
	var n int64
	if err := db.Model(&entities.PesticideMaster{}).Count(&n).Error; err != nil {
		log.Fatalf("seed check: %v", err)
	}
	if n > 0 {
		log.Printf("[seed] master data already present, skipping")
		return
	}

	speciesRows := []entities.SpeciesMaster{
		{Name: "黒松", ScientificName: "Pinus thunbergii", Category: "針葉樹", Description: "耐寒性に優れた代表的な盆栽樹種", CareNotes: "日当たりと風通しを好む"},
		{Name: "赤松", ScientificName: "Pinus densiflora", Category: "針葉樹", Description: "優美な樹形が特徴的な松", CareNotes: "乾燥気味に管理"},
		{Name: "五葉松", ScientificName: "Pinus parviflora", Category: "針葉樹", Description: "短い五本針が美しい高級樹種", CareNotes: "水はけを良くする"},
		{Name: "真柏", ScientificName: "Juniperus chinensis", Category: "針葉樹", Description: "造形しやすく初心者にも人気", CareNotes: "強健で育てやすい"},
		{Name: "欅", ScientificName: "Zelkova serrata", Category: "広葉樹", Description: "ほうき立ちの美しい樹形", CareNotes: "水を好む"},
		{Name: "楓", ScientificName: "Acer palmatum", Category: "広葉樹", Description: "紅葉の美しさで人気", CareNotes: "半日陰を好む"},
		{Name: "梅", ScientificName: "Prunus mume", Category: "花木", Description: "早春の花が美しい", CareNotes: "花後の剪定が重要"},
		{Name: "桜", ScientificName: "Prunus × yedoensis", Category: "花木", Description: "春の代表的な花木", CareNotes: "病気に注意"},
		{Name: "カリン", ScientificName: "Chaenomeles sinensis", Category: "果樹", Description: "実成りが楽しめる", CareNotes: "日当たりを好む"},
		{Name: "金柑", ScientificName: "Citrus japonica", Category: "果樹", Description: "小さな果実が可愛い", CareNotes: "寒さに注意"},
		{Name: "ガジュマル", ScientificName: "Ficus microcarpa", Category: "その他", Description: "気根が特徴的な観葉植物", CareNotes: "温暖な環境を好む"},
	}
	pesticideRows := []entities.PesticideMaster{
		{Name: "オルトラン", Type: "insecticide", IntervalDays: 14, ActiveIngredient: "アセフェート", Description: "汎用殺虫剤"},
		{Name: "スミチオン", Type: "insecticide", IntervalDays: 10, ActiveIngredient: "フェニトロチオン", Description: "速効性殺虫剤"},
		{Name: "マラソン", Type: "insecticide", IntervalDays: 12, ActiveIngredient: "マラチオン", Description: "広範囲殺虫剤"},
		{Name: "ベニカ", Type: "insecticide", IntervalDays: 7, ActiveIngredient: "クロチアニジン", Description: "浸透移行性殺虫剤"},
		{Name: "カダン", Type: "insecticide", IntervalDays: 15, ActiveIngredient: "イミダクロプリド", Description: "持続性殺虫剤"},
		{Name: "トップジンM", Type: "fungicide", IntervalDays: 21, ActiveIngredient: "チオファネートメチル", Description: "系統殺菌剤"},
		{Name: "ダコニール", Type: "fungicide", IntervalDays: 18, ActiveIngredient: "クロロタロニル", Description: "保護殺菌剤"},
		{Name: "石灰硫黄合剤", Type: "fungicide", IntervalDays: 30, ActiveIngredient: "多硫化カルシウム", Description: "冬季殺菌剤"},
	}
	m := func(v int) *int { return &v }
	pestDiseaseRows := []entities.PestDiseaseMaster{
		{Name: "アブラムシ", Type: "pest", Description: "アブラムシ科の害虫", StartMonth: m(4), EndMonth: m(10)},
		{Name: "ハダニ", Type: "pest", Description: "ハダニ科の害虫", StartMonth: m(6), EndMonth: m(9)},
		{Name: "カイガラムシ", Type: "pest", Description: "カイガラムシ科の害虫", StartMonth: m(1), EndMonth: m(12)},
		{Name: "アザミウマ", Type: "pest", Description: "アザミウマ科の害虫", StartMonth: m(3), EndMonth: m(6)},
		{Name: "うどんこ病", Type: "disease", Description: "糸状菌による病気", StartMonth: m(4), EndMonth: m(6)},
		{Name: "黒星病", Type: "disease", Description: "糸状菌による病気", StartMonth: m(5), EndMonth: m(7)},
		{Name: "炭疽病", Type: "disease", Description: "糸状菌による病気", StartMonth: m(6), EndMonth: m(8)},
		{Name: "すす病", Type: "disease", Description: "糸状菌による病気", StartMonth: m(1), EndMonth: m(12)},
	}

	if err := db.Create(&speciesRows).Error; err != nil {
		log.Fatalf("seed species: %v", err)
	}
	if err := db.Create(&pesticideRows).Error; err != nil {
		log.Fatalf("seed pesticides: %v", err)
	}
	if err := db.Create(&pestDiseaseRows).Error; err != nil {
		log.Fatalf("seed pest/diseases: %v", err)
	}
	log.Printf("[seed] master data initialized (%d species, %d pesticides, %d pests/diseases)",
		len(speciesRows), len(pesticideRows), len(pestDiseaseRows))
}
