package serviceImp

import (
	"time"

	"bonsai/entities"
	"bonsai/pkg/recommend/types"
)

const dateLayout = "2006-01-02"

// analyzeHistory summarizes a tree's applications inside the lookback
// window. logs must arrive newest first. Only the most recent application
// decides the "days since last fungicide/insecticide" fields; older rows
// contribute to frequency and the recent-products list only. A log whose
// date does not parse loses its recency contribution but still counts.
func analyzeHistory(logs []entities.PesticideLog, today time.Time, classOf func(name string) (string, error)) types.HistorySummary {
	summary := types.HistorySummary{
		TotalApplications:  len(logs),
		PesticideFrequency: map[string]int{},
		RecentPesticides:   []string{},
	}

	for _, l := range logs {
		summary.PesticideFrequency[l.PesticideName]++

		if len(summary.RecentPesticides) < 3 && !contains(summary.RecentPesticides, l.PesticideName) {
			summary.RecentPesticides = append(summary.RecentPesticides, l.PesticideName)
		}

		if summary.LastPesticideType != nil {
			continue
		}
		class, err := classOf(l.PesticideName)
		if err != nil || class == "" {
			continue
		}
		c := class
		summary.LastPesticideType = &c
		if d, perr := time.Parse(dateLayout, l.Date); perr == nil {
			days := int(today.Sub(d).Hours() / 24)
			if class == types.ClassFungicide {
				summary.DaysSinceFungicide = &days
			} else {
				summary.DaysSinceInsecticide = &days
			}
		}
	}
	return summary
}

// daysSinceLast computes the interval-gate input. No log at all reads as
// 999 (first application); a malformed date degrades the same way instead
// of aborting the computation.
func daysSinceLast(latest *types.LatestLog, today time.Time) int {
	if latest == nil {
		return 999
	}
	d, err := time.Parse(dateLayout, latest.Date)
	if err != nil {
		return 999
	}
	return int(today.Sub(d).Hours() / 24)
}

func contains(xs []string, s string) bool {
	for _, x := range xs {
		if x == s {
			return true
		}
	}
	return false
}
