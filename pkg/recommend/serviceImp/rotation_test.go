package serviceImp

import (
	"testing"

	"bonsai/pkg/recommend/types"
)

func TestFilterProhibited(t *testing.T) {
	cands := []types.Candidate{
		{Name: "オルトラン", AvgEffectiveness: 5},
		{Name: "スミチオン", AvgEffectiveness: 4},
		{Name: "マラソン", AvgEffectiveness: 3},
	}
	prohibitions := []types.Prohibition{
		{PesticideName: "オルトラン", Severity: "prohibited", Reason: "薬害の報告あり"},
		{PesticideName: "スミチオン", Severity: "warning", Reason: "新芽の時期は薄めて使用"},
	}
	got := filterProhibited(cands, prohibitions)
	if len(got) != 2 {
		t.Fatalf("got %d candidates, want 2", len(got))
	}
	if got[0].Name != "スミチオン" || got[0].Warning != "新芽の時期は薄めて使用" {
		t.Errorf("warned candidate = %+v, want warning annotation kept", got[0])
	}
	if got[1].Name != "マラソン" || got[1].Warning != "" {
		t.Errorf("clean candidate = %+v, want no warning", got[1])
	}
}

func TestApplyRotationRecentPenalty(t *testing.T) {
	// equal effectiveness: the recently used product must rank strictly lower
	cands := []types.Candidate{
		{Name: "オルトラン", AvgEffectiveness: 4},
		{Name: "スミチオン", AvgEffectiveness: 4},
	}
	hist := types.HistorySummary{
		PesticideFrequency: map[string]int{},
		RecentPesticides:   []string{"オルトラン"},
	}
	got := applyRotation(cands, hist, nil, DefaultTuning())
	if got[0].Name != "スミチオン" {
		t.Fatalf("ranked first = %s, want スミチオン", got[0].Name)
	}
	if got[1].RotationScore != 2.0 {
		t.Errorf("recent product score = %v, want 2.0 (4 - 2)", got[1].RotationScore)
	}
}

func TestApplyRotationNoRepeat(t *testing.T) {
	cands := []types.Candidate{
		{Name: "オルトラン", AvgEffectiveness: 5},
		{Name: "スミチオン", AvgEffectiveness: 4},
	}
	hist := types.HistorySummary{PesticideFrequency: map[string]int{}}
	latest := &types.LatestLog{Date: "2024-06-10", PesticideName: "オルトラン"}

	got := applyRotation(cands, hist, latest, DefaultTuning())
	// exactly -3.0 for repeating the last product
	for _, c := range got {
		if c.Name == "オルトラン" && c.RotationScore != 2.0 {
			t.Errorf("repeat score = %v, want 2.0 (5 - 3)", c.RotationScore)
		}
	}
	// the higher-scoring alternative must be selected
	if got[0].Name != "スミチオン" {
		t.Errorf("ranked first = %s, want スミチオン", got[0].Name)
	}
}

func TestApplyRotationFrequencyPenalty(t *testing.T) {
	cands := []types.Candidate{{Name: "ベニカ", AvgEffectiveness: 5}}
	hist := types.HistorySummary{PesticideFrequency: map[string]int{"ベニカ": 4}}
	got := applyRotation(cands, hist, nil, DefaultTuning())
	if got[0].RotationScore != 3.0 {
		t.Errorf("score = %v, want 3.0 (5 - 4*0.5)", got[0].RotationScore)
	}
}

func TestApplyRotationStableOnTies(t *testing.T) {
	cands := []types.Candidate{
		{Name: "A", AvgEffectiveness: 4},
		{Name: "B", AvgEffectiveness: 4},
		{Name: "C", AvgEffectiveness: 4},
	}
	hist := types.HistorySummary{PesticideFrequency: map[string]int{}}
	got := applyRotation(cands, hist, nil, DefaultTuning())
	for i, name := range []string{"A", "B", "C"} {
		if got[i].Name != name {
			t.Fatalf("tie order changed: %+v", got)
		}
	}
}
