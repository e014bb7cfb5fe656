package serviceImp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuning(t *testing.T) {
	d := DefaultTuning()
	if d.RecentPenalty != 2.0 || d.FrequencyPenalty != 0.5 || d.RepeatPenalty != 3.0 {
		t.Errorf("penalties = %+v, want 2.0/0.5/3.0", d)
	}
	if d.HighProbability != 4 || d.TopRisks != 3 || d.LookbackDays != 90 {
		t.Errorf("pool settings = %+v, want 4/3/90", d)
	}
}

func TestLoadTuningOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.yaml")
	content := "repeat_penalty: 5.0\nlookback_days: 30\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if got.RepeatPenalty != 5.0 || got.LookbackDays != 30 {
		t.Errorf("overrides not applied: %+v", got)
	}
	// untouched fields keep defaults
	if got.RecentPenalty != 2.0 || got.HighProbability != 4 {
		t.Errorf("defaults lost: %+v", got)
	}
}

func TestLoadTuningMissingFile(t *testing.T) {
	got, err := LoadTuning(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if got != DefaultTuning() {
		t.Errorf("missing file must return defaults, got %+v", got)
	}
}
