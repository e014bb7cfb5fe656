package repositoryImp

import (
	"testing"
	"time"

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
		&entities.Bonsai{},
		&entities.BonsaiImage{},
		&entities.PesticideLog{},
		&entities.WorkLog{},
		&entities.SpeciesMaster{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func TestDeleteCascade(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	tree := entities.Bonsai{UserID: 1, Name: "老黒松", Species: "黒松", SpeciesID: 1}
	if err := db.Create(&tree).Error; err != nil {
		t.Fatal(err)
	}
	other := entities.Bonsai{UserID: 1, Name: "別の木", Species: "もみじ", SpeciesID: 2}
	if err := db.Create(&other).Error; err != nil {
		t.Fatal(err)
	}
	fixtures := []any{
		&entities.BonsaiImage{BonsaiID: tree.BonsaiID, UserID: 1, Filename: "a.jpg"},
		&entities.BonsaiImage{BonsaiID: tree.BonsaiID, UserID: 1, Filename: "b.jpg"},
		&entities.PesticideLog{BonsaiID: tree.BonsaiID, UserID: 1, Date: "2024-06-01", PesticideName: "オルトラン"},
		&entities.WorkLog{BonsaiID: tree.BonsaiID, UserID: 1, Date: "2024-06-02", WorkType: "剪定"},
		&entities.PesticideLog{BonsaiID: other.BonsaiID, UserID: 1, Date: "2024-06-03", PesticideName: "ベニカ"},
	}
	for _, f := range fixtures {
		if err := db.Create(f).Error; err != nil {
			t.Fatal(err)
		}
	}

	images, err := repo.DeleteCascade(tree.BonsaiID)
	if err != nil {
		t.Fatalf("DeleteCascade: %v", err)
	}
	if len(images) != 2 {
		t.Errorf("returned %d image rows, want 2", len(images))
	}

	counts := map[string]int64{}
	for name, q := range map[string]*gorm.DB{
		"bonsais":        db.Model(&entities.Bonsai{}),
		"images":         db.Model(&entities.BonsaiImage{}),
		"pesticide_logs": db.Model(&entities.PesticideLog{}),
		"work_logs":      db.Model(&entities.WorkLog{}),
	} {
		var n int64
		if err := q.Count(&n).Error; err != nil {
			t.Fatal(err)
		}
		counts[name] = n
	}
	if counts["bonsais"] != 1 || counts["images"] != 0 || counts["work_logs"] != 0 {
		t.Errorf("leftovers after cascade: %v", counts)
	}
	// the other tree's log survives
	if counts["pesticide_logs"] != 1 {
		t.Errorf("pesticide_logs = %d, want 1 (other tree untouched)", counts["pesticide_logs"])
	}
}

func TestLatestImage(t *testing.T) {
	db := openTestDB(t)
	repo := New(db)

	old := entities.BonsaiImage{BonsaiID: 1, UserID: 1, Filename: "old.jpg",
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)}
	fresh := entities.BonsaiImage{BonsaiID: 1, UserID: 1, Filename: "fresh.jpg",
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	for _, img := range []*entities.BonsaiImage{&old, &fresh} {
		if err := db.Create(img).Error; err != nil {
			t.Fatal(err)
		}
	}

	got, err := repo.LatestImage(1)
	if err != nil {
		t.Fatalf("LatestImage: %v", err)
	}
	if got == nil || got.Filename != "fresh.jpg" {
		t.Errorf("latest = %+v, want fresh.jpg", got)
	}

	none, err := repo.LatestImage(42)
	if err != nil || none != nil {
		t.Errorf("no images: got %+v, %v; want nil, nil", none, err)
	}
}
