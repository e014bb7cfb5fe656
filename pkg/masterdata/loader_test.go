package masterdata

import (
	"os"
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/xuri/excelize/v2"
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
		&entities.SpeciesMaster{},
		&entities.PesticideMaster{},
		&entities.PestDiseaseMaster{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestImportPesticidesCSV(t *testing.T) {
	db := openTestDB(t)
	l := New(db)

	csv := "Name,Type,Interval_Days,Active-Ingredient\n" +
		"オルトラン,insecticide,14,アセフェート\n" +
		"トップジンM,fungicide,21,チオファネートメチル\n" +
		",insecticide,7,\n" + // empty name skipped
		"変な薬,herbicide,7,\n" // unknown class skipped

	path := writeFile(t, t.TempDir(), "pesticides.csv", csv)
	n, err := l.ImportPesticidesCSV(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}

	var row entities.PesticideMaster
	if err := db.Where("name = ?", "オルトラン").First(&row).Error; err != nil {
		t.Fatalf("row not stored: %v", err)
	}
	if row.Type != "insecticide" || row.IntervalDays != 14 || row.ActiveIngredient != "アセフェート" {
		t.Errorf("row = %+v", row)
	}
}

func TestImportPesticidesCSVUpsert(t *testing.T) {
	db := openTestDB(t)
	l := New(db)
	dir := t.TempDir()

	first := writeFile(t, dir, "v1.csv", "name,type,interval_days\nオルトラン,insecticide,14\n")
	if _, err := l.ImportPesticidesCSV(first); err != nil {
		t.Fatal(err)
	}
	second := writeFile(t, dir, "v2.csv", "name,type,interval_days\nオルトラン,insecticide,10\n")
	if _, err := l.ImportPesticidesCSV(second); err != nil {
		t.Fatal(err)
	}

	var count int64
	db.Model(&entities.PesticideMaster{}).Count(&count)
	if count != 1 {
		t.Fatalf("re-import duplicated the row: count = %d", count)
	}
	var row entities.PesticideMaster
	db.Where("name = ?", "オルトラン").First(&row)
	if row.IntervalDays != 10 {
		t.Errorf("interval = %d, want updated 10", row.IntervalDays)
	}
}

func TestImportPestDiseasesCSV(t *testing.T) {
	db := openTestDB(t)
	l := New(db)

	csv := "name,type,season,start_month,end_month\n" +
		"アブラムシ,pest,春,4,10\n" +
		"うどんこ病,disease,梅雨,,\n"
	path := writeFile(t, t.TempDir(), "pests.csv", csv)

	n, err := l.ImportPestDiseasesCSV(path)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}

	var aphid entities.PestDiseaseMaster
	db.Where("name = ?", "アブラムシ").First(&aphid)
	if aphid.StartMonth == nil || *aphid.StartMonth != 4 || aphid.EndMonth == nil || *aphid.EndMonth != 10 {
		t.Errorf("month range = %+v", aphid)
	}
	var mildew entities.PestDiseaseMaster
	db.Where("name = ?", "うどんこ病").First(&mildew)
	if mildew.StartMonth != nil || mildew.Season != "梅雨" {
		t.Errorf("blank months must stay nil, season kept: %+v", mildew)
	}
}

func TestImportSpeciesXLSX(t *testing.T) {
	db := openTestDB(t)
	l := New(db)

	x := excelize.NewFile()
	sheet := x.GetSheetName(0)
	rows := [][]any{
		{"Name", "Scientific Name", "Category", "Care Notes"},
		{"黒松", "Pinus thunbergii", "針葉樹", "日当たりを好む"},
		{"もみじ", "Acer palmatum", "広葉樹", ""},
		{"", "skip", "", ""},
	}
	for i, r := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := x.SetSheetRow(sheet, cellRef, &r); err != nil {
			t.Fatal(err)
		}
	}
	path := filepath.Join(t.TempDir(), "species.xlsx")
	if err := x.SaveAs(path); err != nil {
		t.Fatal(err)
	}

	n, err := l.ImportSpeciesXLSX(path, "")
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported = %d, want 2", n)
	}
	var row entities.SpeciesMaster
	if err := db.Where("name = ?", "黒松").First(&row).Error; err != nil {
		t.Fatalf("row not stored: %v", err)
	}
	if row.ScientificName != "Pinus thunbergii" || row.Category != "針葉樹" {
		t.Errorf("row = %+v", row)
	}
}
