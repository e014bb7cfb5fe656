package serviceImp

import (
	"sort"

	"bonsai/pkg/recommend/types"
	"bonsai/pkg/season"
)

// monthInRange reports whether target falls inside [start, end]. A range
// with start > end wraps the year boundary (e.g. 11→2 covers Nov–Feb).
func monthInRange(target, start, end int) bool {
	if start <= end {
		return start <= target && target <= end
	}
	return target >= start || target <= end
}

// resolveRisks keeps the rows active in targetMonth. The effective range is
// the species-level override when both bounds are set, else the master
// range, else the legacy season label. Rows with none of the three are
// dropped. Output is sorted by probability descending, pests before
// diseases, stable.
func resolveRisks(rows []types.RiskRow, targetMonth int) []types.Risk {
	out := make([]types.Risk, 0, len(rows))
	for _, row := range rows {
		start, end, ok := effectiveRange(row)
		if !ok || !monthInRange(targetMonth, start, end) {
			continue
		}
		out = append(out, types.Risk{
			PestDiseaseID: row.PestDiseaseID,
			Name:          row.Name,
			Kind:          row.Kind,
			Probability:   row.Probability,
			StartMonth:    start,
			EndMonth:      end,
			Notes:         row.Notes,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		// "pest" sorts above "disease"
		return out[i].Kind > out[j].Kind
	})
	return out
}

func effectiveRange(row types.RiskRow) (int, int, bool) {
	if row.OverrideStart != nil && row.OverrideEnd != nil {
		return *row.OverrideStart, *row.OverrideEnd, true
	}
	if row.MasterStart != nil && row.MasterEnd != nil {
		return *row.MasterStart, *row.MasterEnd, true
	}
	label := row.OverrideSeason
	if label == "" {
		label = row.MasterSeason
	}
	if r, ok := season.Months(label); ok {
		return r.Start, r.End, true
	}
	return 0, 0, false
}

// highPriority selects rows with probability at or above the threshold; if
// none qualify it falls back to the top n, so an active risk list never
// yields an empty pool on its own.
func highPriority(risks []types.Risk, threshold, n int) []types.Risk {
	high := make([]types.Risk, 0, len(risks))
	for _, r := range risks {
		if r.Probability >= threshold {
			high = append(high, r)
		}
	}
	if len(high) > 0 {
		return high
	}
	if len(risks) > n {
		return risks[:n]
	}
	return risks
}

func splitByKind(risks []types.Risk) (pests, diseases []types.Risk) {
	for _, r := range risks {
		if r.Kind == types.KindDisease {
			diseases = append(diseases, r)
		} else {
			pests = append(pests, r)
		}
	}
	return pests, diseases
}
