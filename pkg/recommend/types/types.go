package types

// Pesticide classes and pest/disease kinds as stored in the master tables.
const (
	ClassInsecticide = "insecticide"
	ClassFungicide   = "fungicide"

	KindPest    = "pest"
	KindDisease = "disease"
)

// Terminal statuses of a single-class recommendation. Exactly one per call.
const (
	StatusNoNeed    = "no_need"
	StatusFallback  = "fallback"
	StatusWait      = "wait"
	StatusRecommend = "recommend"
)

// RiskRow is the raw species-risk join row: the species-level month range
// (override) and the pest/disease master's own range both come along, plus
// the legacy season labels for rows that predate month ranges.
type RiskRow struct {
	PestDiseaseID  uint
	Name           string
	Kind           string
	Probability    int
	OverrideStart  *int
	OverrideEnd    *int
	OverrideSeason string
	MasterStart    *int
	MasterEnd      *int
	MasterSeason   string
	Notes          string
}

// Risk is a resolved, month-active risk.
type Risk struct {
	PestDiseaseID uint   `json:"pest_disease_id"`
	Name          string `json:"pest_disease_name"`
	Kind          string `json:"pest_disease_type"`
	Probability   int    `json:"occurrence_probability"`
	StartMonth    int    `json:"start_month"`
	EndMonth      int    `json:"end_month"`
	Notes         string `json:"notes,omitempty"`
}

// Candidate is a pesticide with its mean effectiveness against the chosen
// targets. RotationScore is filled in by the rotation pass.
type Candidate struct {
	PesticideID      uint    `json:"pesticide_id"`
	Name             string  `json:"pesticide_name"`
	Class            string  `json:"pesticide_type"`
	IntervalDays     int     `json:"interval_days"`
	ActiveIngredient string  `json:"active_ingredient"`
	Description      string  `json:"description,omitempty"`
	AvgEffectiveness float64 `json:"avg_effectiveness"`
	Warning          string  `json:"warning,omitempty"`
	RotationScore    float64 `json:"rotation_score"`
}

// Prohibition is a species-level restriction on one pesticide.
type Prohibition struct {
	PesticideID   uint   `json:"pesticide_id"`
	PesticideName string `json:"pesticide_name"`
	Severity      string `json:"severity"` // warning|prohibited
	Reason        string `json:"reason"`
}

// LatestLog is the most recent application, as plain data.
type LatestLog struct {
	Date          string `json:"date"` // YYYY-MM-DD
	PesticideName string `json:"pesticide_name"`
}

// HistorySummary mirrors the lookback-window analysis handed to clients.
type HistorySummary struct {
	TotalApplications    int            `json:"total_applications"`
	PesticideFrequency   map[string]int `json:"pesticide_frequency"`
	LastPesticideType    *string        `json:"last_pesticide_type"`
	DaysSinceFungicide   *int           `json:"days_since_fungicide"`
	DaysSinceInsecticide *int           `json:"days_since_insecticide"`
	RecentPesticides     []string       `json:"recent_pesticides"`
}

// ClassResult is one class's terminal recommendation.
type ClassResult struct {
	Recommendation      string   `json:"recommendation"`
	Reason              string   `json:"reason"`
	IntervalDays        int      `json:"interval_days,omitempty"`
	Class               string   `json:"pesticide_type"`
	Effectiveness       float64  `json:"effectiveness,omitempty"`
	ActiveIngredient    string   `json:"active_ingredient,omitempty"`
	Confidence          string   `json:"confidence"` // 高|中|低
	TargetPests         []string `json:"target_pests,omitempty"`
	Status              string   `json:"status"`
	Warning             string   `json:"warning,omitempty"`
	NextApplicationDate string   `json:"next_application_date,omitempty"`
}

type GeneralInfo struct {
	SeasonAdvice  string         `json:"season_advice"`
	Analysis      HistorySummary `json:"analysis"`
	DaysSinceLast int            `json:"days_since_last"`
}

// Recommendation is the whole-tree response: both classes plus shared context.
type Recommendation struct {
	Insecticide ClassResult `json:"insecticide"`
	Fungicide   ClassResult `json:"fungicide"`
	GeneralInfo GeneralInfo `json:"general_info"`
}

// FallbackProduct is the generic default recommended when master data runs
// out. Injected into the engine rather than kept as a package global.
type FallbackProduct struct {
	Name         string
	IntervalDays int
}

type FallbackCatalog struct {
	Insecticide FallbackProduct
	Fungicide   FallbackProduct
}

// DefaultFallbacks matches the catalog the original system shipped with.
func DefaultFallbacks() FallbackCatalog {
	return FallbackCatalog{
		Insecticide: FallbackProduct{Name: "オルトラン", IntervalDays: 14},
		Fungicide:   FallbackProduct{Name: "トップジンM", IntervalDays: 14},
	}
}

// MonthOutlook is one month's slice of the two-month-ahead view.
type MonthOutlook struct {
	Month           int         `json:"month"`
	Season          string      `json:"season"`
	Risks           []Risk      `json:"risks"`
	Recommendations []Candidate `json:"recommendations"`
}

type MonthlyRisks struct {
	Bonsai          BonsaiInfo        `json:"bonsai"`
	CurrentMonth    MonthOutlook      `json:"current_month"`
	NextMonth       MonthOutlook      `json:"next_month"`
	HistoryAnalysis HistorySummary    `json:"history_analysis"`
	Disclaimer      map[string]string `json:"disclaimer"`
}

type BonsaiInfo struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Species   string `json:"species"`
	SpeciesID uint   `json:"species_id"`
}

// SpeciesPesticides is the per-species catalog view.
type SpeciesPesticides struct {
	SpeciesID            uint          `json:"species_id"`
	PrimaryPesticides    []Candidate   `json:"primary_pesticides"`
	Fungicides           []Candidate   `json:"fungicides"`
	ProhibitedPesticides []Prohibition `json:"prohibited_pesticides,omitempty"`
	SpeciesRisks         []RiskSummary `json:"species_risks,omitempty"`
	CurrentSeason        string        `json:"current_season"`
	Message              string        `json:"message,omitempty"`
}

// RiskSummary is a species risk without month filtering applied.
type RiskSummary struct {
	PestDiseaseID uint   `json:"pest_disease_id"`
	Name          string `json:"pest_disease_name"`
	Kind          string `json:"pest_disease_type"`
	Probability   int    `json:"occurrence_probability"`
}
