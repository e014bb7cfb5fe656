package serviceImp

import (
	"testing"
	"time"

	"bonsai/entities"
	"bonsai/pkg/recommend/types"
)

var testToday = time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

func classOfFixed(m map[string]string) func(string) (string, error) {
	return func(name string) (string, error) { return m[name], nil }
}

func TestAnalyzeHistoryEmpty(t *testing.T) {
	got := analyzeHistory(nil, testToday, classOfFixed(nil))
	if got.TotalApplications != 0 {
		t.Errorf("TotalApplications = %d, want 0", got.TotalApplications)
	}
	if got.LastPesticideType != nil || got.DaysSinceFungicide != nil || got.DaysSinceInsecticide != nil {
		t.Error("recency fields must be nil with no history")
	}
	if len(got.RecentPesticides) != 0 {
		t.Errorf("RecentPesticides = %v, want empty", got.RecentPesticides)
	}
}

func TestAnalyzeHistory(t *testing.T) {
	logs := []entities.PesticideLog{ // newest first
		{PesticideName: "オルトラン", Date: "2024-06-10"},
		{PesticideName: "スミチオン", Date: "2024-06-01"},
		{PesticideName: "オルトラン", Date: "2024-05-20"},
		{PesticideName: "トップジンM", Date: "2024-05-01"},
		{PesticideName: "ベニカ", Date: "2024-04-15"},
	}
	classes := map[string]string{
		"オルトラン": "insecticide", "スミチオン": "insecticide",
		"トップジンM": "fungicide", "ベニカ": "insecticide",
	}
	got := analyzeHistory(logs, testToday, classOfFixed(classes))

	if got.TotalApplications != 5 {
		t.Errorf("TotalApplications = %d, want 5", got.TotalApplications)
	}
	if got.PesticideFrequency["オルトラン"] != 2 {
		t.Errorf("frequency[オルトラン] = %d, want 2", got.PesticideFrequency["オルトラン"])
	}
	// distinct, capped at 3, newest first
	want := []string{"オルトラン", "スミチオン", "トップジンM"}
	if len(got.RecentPesticides) != 3 {
		t.Fatalf("RecentPesticides = %v, want 3 entries", got.RecentPesticides)
	}
	for i, name := range want {
		if got.RecentPesticides[i] != name {
			t.Errorf("RecentPesticides[%d] = %q, want %q", i, got.RecentPesticides[i], name)
		}
	}
	// only the newest application sets the recency fields
	if got.LastPesticideType == nil || *got.LastPesticideType != "insecticide" {
		t.Fatalf("LastPesticideType = %v, want insecticide", got.LastPesticideType)
	}
	if got.DaysSinceInsecticide == nil || *got.DaysSinceInsecticide != 5 {
		t.Errorf("DaysSinceInsecticide = %v, want 5", got.DaysSinceInsecticide)
	}
	if got.DaysSinceFungicide != nil {
		t.Errorf("DaysSinceFungicide = %v, want nil", got.DaysSinceFungicide)
	}
}

func TestAnalyzeHistoryMalformedDate(t *testing.T) {
	logs := []entities.PesticideLog{
		{PesticideName: "オルトラン", Date: "not-a-date"},
		{PesticideName: "トップジンM", Date: "2024-06-01"},
	}
	classes := map[string]string{"オルトラン": "insecticide", "トップジンM": "fungicide"}
	got := analyzeHistory(logs, testToday, classOfFixed(classes))

	// the malformed row still counts but loses its recency contribution
	if got.TotalApplications != 2 {
		t.Errorf("TotalApplications = %d, want 2", got.TotalApplications)
	}
	if got.LastPesticideType == nil || *got.LastPesticideType != "insecticide" {
		t.Fatalf("LastPesticideType = %v, want insecticide", got.LastPesticideType)
	}
	if got.DaysSinceInsecticide != nil {
		t.Errorf("DaysSinceInsecticide = %v, want nil for malformed date", got.DaysSinceInsecticide)
	}
}

func TestDaysSinceLast(t *testing.T) {
	if got := daysSinceLast(nil, testToday); got != 999 {
		t.Errorf("no log: %d, want 999", got)
	}
	if got := daysSinceLast(&types.LatestLog{Date: "garbage"}, testToday); got != 999 {
		t.Errorf("malformed date: %d, want 999", got)
	}
	if got := daysSinceLast(&types.LatestLog{Date: "2024-06-13"}, testToday); got != 2 {
		t.Errorf("two days ago: %d, want 2", got)
	}
}
