package serviceImp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Tuning holds the rotation-scoring knobs. The defaults are the empirically
// chosen production values; a YAML file can override them without a rebuild.
type Tuning struct {
	RecentPenalty    float64 `yaml:"recent_penalty"`    // flat penalty for the 3 most recent products
	FrequencyPenalty float64 `yaml:"frequency_penalty"` // per use in the lookback window
	RepeatPenalty    float64 `yaml:"repeat_penalty"`    // flat penalty for repeating the last product
	HighProbability  int     `yaml:"high_probability"`  // risk probability threshold for the priority pool
	TopRisks         int     `yaml:"top_risks"`         // pool size when nothing reaches the threshold
	LookbackDays     int     `yaml:"lookback_days"`
}

func DefaultTuning() Tuning {
	return Tuning{
		RecentPenalty:    2.0,
		FrequencyPenalty: 0.5,
		RepeatPenalty:    3.0,
		HighProbability:  4,
		TopRisks:         3,
		LookbackDays:     90,
	}
}

// LoadTuning reads overrides from a YAML file; fields left at zero keep
// their defaults.
func LoadTuning(path string) (Tuning, error) {
	t := DefaultTuning()
	raw, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("read tuning: %w", err)
	}
	var in Tuning
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return t, fmt.Errorf("parse tuning: %w", err)
	}
	if in.RecentPenalty != 0 {
		t.RecentPenalty = in.RecentPenalty
	}
	if in.FrequencyPenalty != 0 {
		t.FrequencyPenalty = in.FrequencyPenalty
	}
	if in.RepeatPenalty != 0 {
		t.RepeatPenalty = in.RepeatPenalty
	}
	if in.HighProbability != 0 {
		t.HighProbability = in.HighProbability
	}
	if in.TopRisks != 0 {
		t.TopRisks = in.TopRisks
	}
	if in.LookbackDays != 0 {
		t.LookbackDays = in.LookbackDays
	}
	return t, nil
}
