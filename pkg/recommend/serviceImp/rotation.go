package serviceImp

import (
	"sort"

	"bonsai/pkg/recommend/types"
)

// filterProhibited drops candidates banned for the species and annotates
// warned ones with the restriction reason.
func filterProhibited(cands []types.Candidate, prohibitions []types.Prohibition) []types.Candidate {
	byName := make(map[string]types.Prohibition, len(prohibitions))
	for _, p := range prohibitions {
		byName[p.PesticideName] = p
	}

	out := make([]types.Candidate, 0, len(cands))
	for _, c := range cands {
		if p, ok := byName[c.Name]; ok {
			if p.Severity == "prohibited" {
				continue
			}
			if p.Severity == "warning" {
				c.Warning = p.Reason
			}
		}
		out = append(out, c)
	}
	return out
}

// applyRotation scores each candidate starting from its mean effectiveness
// and penalizes recent or repeated use, then ranks by score. The sort is
// stable so ties keep the effectiveness ordering.
func applyRotation(cands []types.Candidate, hist types.HistorySummary, latest *types.LatestLog, t Tuning) []types.Candidate {
	if len(cands) == 0 {
		return nil
	}
	recent := make(map[string]struct{}, len(hist.RecentPesticides))
	for _, name := range hist.RecentPesticides {
		recent[name] = struct{}{}
	}

	out := make([]types.Candidate, len(cands))
	copy(out, cands)
	for i := range out {
		score := out[i].AvgEffectiveness
		if _, ok := recent[out[i].Name]; ok {
			score -= t.RecentPenalty
		}
		score -= float64(hist.PesticideFrequency[out[i].Name]) * t.FrequencyPenalty
		if latest != nil && latest.PesticideName == out[i].Name {
			score -= t.RepeatPenalty
		}
		out[i].RotationScore = score
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].RotationScore > out[j].RotationScore })
	return out
}
