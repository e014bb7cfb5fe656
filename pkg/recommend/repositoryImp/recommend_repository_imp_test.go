package repositoryImp

import (
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"bonsai/entities"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&entities.PesticideMaster{},
		&entities.PestDiseaseMaster{},
		&entities.PesticideEffectiveness{},
		&entities.SpeciesPestDisease{},
		&entities.SpeciesProhibitedPesticide{},
		&entities.PesticideLog{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestEffectiveForTargetsAggregation(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	pesticide := entities.PesticideMaster{Name: "オルトラン", Type: "insecticide", IntervalDays: 14, ActiveIngredient: "アセフェート"}
	other := entities.PesticideMaster{Name: "ベニカ", Type: "insecticide", IntervalDays: 7}
	fungicide := entities.PesticideMaster{Name: "トップジンM", Type: "fungicide", IntervalDays: 21}
	for _, p := range []*entities.PesticideMaster{&pesticide, &other, &fungicide} {
		if err := db.Create(p).Error; err != nil {
			t.Fatal(err)
		}
	}
	rows := []entities.PesticideEffectiveness{
		{PesticideID: pesticide.PesticideID, PestDiseaseID: 1, EffectivenessLevel: 5},
		{PesticideID: pesticide.PesticideID, PestDiseaseID: 2, EffectivenessLevel: 3},
		{PesticideID: other.PesticideID, PestDiseaseID: 1, EffectivenessLevel: 4},
		{PesticideID: fungicide.PesticideID, PestDiseaseID: 2, EffectivenessLevel: 5},
	}
	if err := db.Create(&rows).Error; err != nil {
		t.Fatal(err)
	}

	got, err := repo.EffectiveForTargets([]uint{1, 2}, "insecticide")
	if err != nil {
		t.Fatalf("EffectiveForTargets: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2 (fungicide excluded)", len(got))
	}
	// mean of [5,3] is 4.0; ties on the mean sort by shorter interval
	if got[0].Name != "オルトラン" && got[0].Name != "ベニカ" {
		t.Fatalf("unexpected candidate %q", got[0].Name)
	}
	for _, c := range got {
		if c.Name == "オルトラン" && c.AvgEffectiveness != 4.0 {
			t.Errorf("mean effectiveness = %v, want 4.0", c.AvgEffectiveness)
		}
	}
	// equal means: 7-day interval ranks before 14-day
	if got[0].Name != "ベニカ" {
		t.Errorf("tie-break order = [%s %s], want ベニカ first", got[0].Name, got[1].Name)
	}

	empty, err := repo.EffectiveForTargets(nil, "insecticide")
	if err != nil || len(empty) != 0 {
		t.Errorf("empty input: got %v, %v; want empty, nil", empty, err)
	}
}

func TestRisksBySpeciesJoin(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	m := func(v int) *int { return &v }
	pd := entities.PestDiseaseMaster{Name: "アブラムシ", Type: "pest", StartMonth: m(4), EndMonth: m(10)}
	if err := db.Create(&pd).Error; err != nil {
		t.Fatal(err)
	}
	link := entities.SpeciesPestDisease{SpeciesID: 3, PestDiseaseID: pd.PestDiseaseID,
		OccurrenceProbability: 5, StartMonth: m(5), EndMonth: m(9)}
	if err := db.Create(&link).Error; err != nil {
		t.Fatal(err)
	}

	got, err := repo.RisksBySpecies(3)
	if err != nil {
		t.Fatalf("RisksBySpecies: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d rows, want 1", len(got))
	}
	r := got[0]
	if r.Name != "アブラムシ" || r.Kind != "pest" || r.Probability != 5 {
		t.Errorf("row = %+v", r)
	}
	if r.OverrideStart == nil || *r.OverrideStart != 5 || r.MasterStart == nil || *r.MasterStart != 4 {
		t.Errorf("month ranges not carried: %+v", r)
	}

	none, err := repo.RisksBySpecies(99)
	if err != nil || len(none) != 0 {
		t.Errorf("unknown species: got %v, %v", none, err)
	}
}

func TestLatestLogAndLogsSince(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	logs := []entities.PesticideLog{
		{BonsaiID: 1, UserID: 1, Date: "2024-05-01", PesticideName: "オルトラン"},
		{BonsaiID: 1, UserID: 1, Date: "2024-06-10", PesticideName: "スミチオン"},
		{BonsaiID: 2, UserID: 1, Date: "2024-06-12", PesticideName: "ベニカ"},
	}
	if err := db.Create(&logs).Error; err != nil {
		t.Fatal(err)
	}

	latest, err := repo.LatestLog(1)
	if err != nil {
		t.Fatalf("LatestLog: %v", err)
	}
	if latest == nil || latest.PesticideName != "スミチオン" {
		t.Errorf("latest = %+v, want スミチオン", latest)
	}

	got, err := repo.LogsSince(1, "2024-06-01")
	if err != nil {
		t.Fatalf("LogsSince: %v", err)
	}
	if len(got) != 1 || got[0].PesticideName != "スミチオン" {
		t.Errorf("window = %+v, want only the June log", got)
	}

	missing, err := repo.LatestLog(42)
	if err != nil || missing != nil {
		t.Errorf("no history: got %+v, %v; want nil, nil", missing, err)
	}
}

func TestPesticideClassByName(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	if err := db.Create(&entities.PesticideMaster{Name: "ダコニール", Type: "fungicide", IntervalDays: 18}).Error; err != nil {
		t.Fatal(err)
	}
	class, err := repo.PesticideClassByName("ダコニール")
	if err != nil || class != "fungicide" {
		t.Errorf("class = %q, %v; want fungicide", class, err)
	}
	class, err = repo.PesticideClassByName("知らない薬")
	if err != nil || class != "" {
		t.Errorf("unknown product: %q, %v; want empty, nil", class, err)
	}
}
