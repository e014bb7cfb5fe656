package serviceImp

import (
	"fmt"
	"math"
	"strings"
	"time"

	"bonsai/entities"
	"bonsai/pkg/recommend/repository"
	"bonsai/pkg/recommend/types"
	"bonsai/pkg/season"
)

// Engine computes pesticide recommendations from the master tables and a
// tree's application history. It only reads; every call is a pure
// fetch-then-compute cycle with "now" passed in by the caller.
type Engine struct {
	repo      repository.RecommendRepository
	fallbacks types.FallbackCatalog
	tuning    Tuning
}

func NewEngine(repo repository.RecommendRepository, fallbacks types.FallbackCatalog, tuning Tuning) *Engine {
	return &Engine{repo: repo, fallbacks: fallbacks, tuning: tuning}
}

func (e *Engine) ForBonsai(b *entities.Bonsai, now time.Time) (*types.Recommendation, error) {
	month := int(now.Month())

	latest, err := e.latestLog(b.BonsaiID)
	if err != nil {
		return nil, err
	}
	hist, err := e.historySummary(b.BonsaiID, now)
	if err != nil {
		return nil, err
	}
	days := daysSinceLast(latest, now)

	general := types.GeneralInfo{
		SeasonAdvice:  fmt.Sprintf("現在は%s（%d月）です。", season.Label(month), month),
		Analysis:      hist,
		DaysSinceLast: days,
	}

	rows, err := e.repo.RisksBySpecies(b.SpeciesID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		// No master data for the species at all.
		return &types.Recommendation{
			Insecticide: e.fallbackResult(types.ClassInsecticide),
			Fungicide:   e.fallbackResult(types.ClassFungicide),
			GeneralInfo: general,
		}, nil
	}

	pests, diseases := splitByKind(resolveRisks(rows, month))

	ins, err := e.classResult(types.ClassInsecticide, b.SpeciesID,
		highPriority(pests, e.tuning.HighProbability, e.tuning.TopRisks), hist, latest, days)
	if err != nil {
		return nil, err
	}
	fun, err := e.classResult(types.ClassFungicide, b.SpeciesID,
		highPriority(diseases, e.tuning.HighProbability, e.tuning.TopRisks), hist, latest, days)
	if err != nil {
		return nil, err
	}

	return &types.Recommendation{Insecticide: ins, Fungicide: fun, GeneralInfo: general}, nil
}

// classResult walks the resolver chain for one pesticide class and ends in
// exactly one terminal status.
func (e *Engine) classResult(class string, speciesID uint, targets []types.Risk,
	hist types.HistorySummary, latest *types.LatestLog, days int) (types.ClassResult, error) {

	if len(targets) == 0 {
		return e.noNeedResult(class), nil
	}

	ids := make([]uint, len(targets))
	for i, r := range targets {
		ids[i] = r.PestDiseaseID
	}
	cands, err := e.repo.EffectiveForTargets(ids, class)
	if err != nil {
		return types.ClassResult{}, err
	}
	if len(cands) == 0 {
		return e.fallbackResult(class), nil
	}

	prohibitions, err := e.repo.ProhibitionsBySpecies(speciesID)
	if err != nil {
		return types.ClassResult{}, err
	}
	filtered := filterProhibited(cands, prohibitions)
	if len(filtered) == 0 {
		return e.fallbackResult(class), nil
	}

	ranked := applyRotation(filtered, hist, latest, e.tuning)
	top := ranked[0]

	// Interval gate on the winner only.
	if latest != nil && days < top.IntervalDays {
		if lastDate, perr := time.Parse(dateLayout, latest.Date); perr == nil {
			return types.ClassResult{
				Recommendation:      "散布間隔を空けてください",
				Reason:              fmt.Sprintf("前回散布から%d日経過（推奨間隔: %d日）", days, top.IntervalDays),
				IntervalDays:        top.IntervalDays,
				NextApplicationDate: lastDate.AddDate(0, 0, top.IntervalDays).Format(dateLayout),
				Confidence:          "高",
				Class:               class,
				Status:              types.StatusWait,
			}, nil
		}
	}

	names := make([]string, len(targets))
	for i, r := range targets {
		names[i] = r.Name
	}
	primary := names
	if len(primary) > 2 {
		primary = primary[:2]
	}
	result := types.ClassResult{
		Recommendation:   top.Name,
		Reason:           fmt.Sprintf("%s推奨（対象: %s）", classLabel(class), strings.Join(primary, ", ")),
		IntervalDays:     top.IntervalDays,
		Class:            class,
		Effectiveness:    math.Round(top.AvgEffectiveness*10) / 10,
		ActiveIngredient: top.ActiveIngredient,
		Confidence:       "高",
		TargetPests:      names,
		Status:           types.StatusRecommend,
		Warning:          top.Warning,
	}
	return result, nil
}

func (e *Engine) MonthlyRisks(b *entities.Bonsai, now time.Time) (*types.MonthlyRisks, error) {
	month := int(now.Month())
	next := (month % 12) + 1

	rows, err := e.repo.RisksBySpecies(b.SpeciesID)
	if err != nil {
		return nil, err
	}
	hist, err := e.historySummary(b.BonsaiID, now)
	if err != nil {
		return nil, err
	}
	latest, err := e.latestLog(b.BonsaiID)
	if err != nil {
		return nil, err
	}
	prohibitions, err := e.repo.ProhibitionsBySpecies(b.SpeciesID)
	if err != nil {
		return nil, err
	}

	outlook := func(m int) (types.MonthOutlook, error) {
		risks := resolveRisks(rows, m)
		o := types.MonthOutlook{Month: m, Season: season.Label(m), Risks: risks, Recommendations: []types.Candidate{}}
		if len(risks) == 0 {
			return o, nil
		}
		ids := make([]uint, len(risks))
		for i, r := range risks {
			ids[i] = r.PestDiseaseID
		}
		cands, err := e.repo.EffectiveForTargets(ids, "")
		if err != nil {
			return o, err
		}
		ranked := applyRotation(filterProhibited(cands, prohibitions), hist, latest, e.tuning)
		if len(ranked) > 5 {
			ranked = ranked[:5]
		}
		o.Recommendations = ranked
		return o, nil
	}

	cur, err := outlook(month)
	if err != nil {
		return nil, err
	}
	nxt, err := outlook(next)
	if err != nil {
		return nil, err
	}

	return &types.MonthlyRisks{
		Bonsai:          types.BonsaiInfo{ID: b.BonsaiID, Name: b.Name, Species: b.Species, SpeciesID: b.SpeciesID},
		CurrentMonth:    cur,
		NextMonth:       nxt,
		HistoryAnalysis: hist,
		Disclaimer: map[string]string{
			"combination_warning":   "この組み合わせは参考であり、科学的な正しさに裏付けされたものではありません。",
			"concentration_warning": "希釈濃度はメーカーの説明書をよく読んで、ご自身で判断してください。",
		},
	}, nil
}

func (e *Engine) SpeciesPesticides(speciesID uint, now time.Time) (*types.SpeciesPesticides, error) {
	label := season.Label(int(now.Month()))

	rows, err := e.repo.RisksBySpecies(speciesID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return &types.SpeciesPesticides{
			SpeciesID:         speciesID,
			PrimaryPesticides: []types.Candidate{},
			Fungicides:        []types.Candidate{},
			CurrentSeason:     label,
			Message:           "この樹種のデータが見つかりません",
		}, nil
	}

	ids := make([]uint, len(rows))
	risks := make([]types.RiskSummary, len(rows))
	for i, r := range rows {
		ids[i] = r.PestDiseaseID
		risks[i] = types.RiskSummary{PestDiseaseID: r.PestDiseaseID, Name: r.Name, Kind: r.Kind, Probability: r.Probability}
	}
	cands, err := e.repo.EffectiveForTargets(ids, "")
	if err != nil {
		return nil, err
	}
	prohibitions, err := e.repo.ProhibitionsBySpecies(speciesID)
	if err != nil {
		return nil, err
	}

	var insecticides, fungicides []types.Candidate
	for _, c := range cands {
		if c.Class == types.ClassFungicide {
			fungicides = append(fungicides, c)
		} else {
			insecticides = append(insecticides, c)
		}
	}
	if len(insecticides) > 5 {
		insecticides = insecticides[:5]
	}
	if len(fungicides) > 5 {
		fungicides = fungicides[:5]
	}

	return &types.SpeciesPesticides{
		SpeciesID:            speciesID,
		PrimaryPesticides:    insecticides,
		Fungicides:           fungicides,
		ProhibitedPesticides: prohibitions,
		SpeciesRisks:         risks,
		CurrentSeason:        label,
	}, nil
}

func (e *Engine) historySummary(bonsaiID uint, now time.Time) (types.HistorySummary, error) {
	cutoff := now.AddDate(0, 0, -e.tuning.LookbackDays).Format(dateLayout)
	logs, err := e.repo.LogsSince(bonsaiID, cutoff)
	if err != nil {
		return types.HistorySummary{}, err
	}
	return analyzeHistory(logs, now, e.repo.PesticideClassByName), nil
}

func (e *Engine) latestLog(bonsaiID uint) (*types.LatestLog, error) {
	l, err := e.repo.LatestLog(bonsaiID)
	if err != nil || l == nil {
		return nil, err
	}
	return &types.LatestLog{Date: l.Date, PesticideName: l.PesticideName}, nil
}

func (e *Engine) noNeedResult(class string) types.ClassResult {
	return types.ClassResult{
		Recommendation: fmt.Sprintf("現在%sは不要です", classLabel(class)),
		Reason:         "現在の時期に対応する害虫・病気のリスクは低いです",
		Confidence:     "高",
		Class:          class,
		Status:         types.StatusNoNeed,
	}
}

func (e *Engine) fallbackResult(class string) types.ClassResult {
	product := e.fallbacks.Insecticide
	if class == types.ClassFungicide {
		product = e.fallbacks.Fungicide
	}
	return types.ClassResult{
		Recommendation: product.Name,
		Reason:         fmt.Sprintf("汎用%sを推奨（データ不足）", classLabel(class)),
		IntervalDays:   product.IntervalDays,
		Class:          class,
		Confidence:     "低",
		Status:         types.StatusFallback,
	}
}

func classLabel(class string) string {
	if class == types.ClassFungicide {
		return "殺菌剤"
	}
	return "殺虫剤"
}
