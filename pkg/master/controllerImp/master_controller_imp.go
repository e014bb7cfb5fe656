package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bonsai/entities"
	"bonsai/pkg/master/repository"
)

type MasterCtrl struct{ repo repository.MasterRepository }

func New(repo repository.MasterRepository) *MasterCtrl { return &MasterCtrl{repo} }

// requireAdmin resolves the caller from the body-supplied id (mutations)
// or the user_id query param and rejects non-admins. It writes the
// rejection itself; ok reports whether the handler may proceed.
func (h *MasterCtrl) requireAdmin(c echo.Context, bodyUserID uint) (ok bool, err error) {
	userID := bodyUserID
	if userID == 0 {
		id, err := strconv.Atoi(c.QueryParam("user_id"))
		if err != nil {
			return false, c.JSON(http.StatusUnauthorized, map[string]string{"error": "ユーザーIDが必要です"})
		}
		userID = uint(id)
	}
	role, err := h.repo.UserRole(userID)
	if err != nil {
		return false, c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if role != "admin" {
		return false, c.JSON(http.StatusForbidden, map[string]string{"error": "管理者権限が必要です"})
	}
	return true, nil
}

// ---- pesticides ----

func (h *MasterCtrl) ListPesticides(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	out, err := h.repo.ListPesticides()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type pesticideReq struct {
	UserID           uint   `json:"user_id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	IntervalDays     int    `json:"interval_days"`
	ActiveIngredient string `json:"active_ingredient"`
	Description      string `json:"description"`
}

func (h *MasterCtrl) AddPesticide(c echo.Context) error {
	var req pesticideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	if req.Name == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "名前と種別は必須です"})
	}
	p := &entities.PesticideMaster{
		Name: req.Name, Type: req.Type, IntervalDays: req.IntervalDays,
		ActiveIngredient: req.ActiveIngredient, Description: req.Description,
	}
	if err := h.repo.CreatePesticide(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "追加に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "農薬を追加しました", "name": p.Name})
}

func (h *MasterCtrl) UpdatePesticide(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("pesticide_id"))
	var req pesticideReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	p := &entities.PesticideMaster{
		PesticideID: uint(id),
		Name:        req.Name, Type: req.Type, IntervalDays: req.IntervalDays,
		ActiveIngredient: req.ActiveIngredient, Description: req.Description,
	}
	if err := h.repo.UpdatePesticide(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "更新に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "農薬を更新しました"})
}

func (h *MasterCtrl) DeletePesticide(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	id, _ := strconv.Atoi(c.Param("pesticide_id"))
	refs, err := h.repo.PesticideRefs(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if refs > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "関連データが存在するため削除できません"})
	}
	if err := h.repo.DeletePesticide(uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "削除に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "農薬を削除しました"})
}

// ---- pests and diseases ----

func (h *MasterCtrl) ListPestDiseases(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	out, err := h.repo.ListPestDiseases()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type pestDiseaseReq struct {
	UserID      uint   `json:"user_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Season      string `json:"season"`
	StartMonth  *int   `json:"start_month"`
	EndMonth    *int   `json:"end_month"`
}

func (h *MasterCtrl) AddPestDisease(c echo.Context) error {
	var req pestDiseaseReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	if req.Name == "" || req.Type == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "名前と種別は必須です"})
	}
	season := req.Season
	if season == "" {
		season = "通年"
	}
	pd := &entities.PestDiseaseMaster{
		Name: req.Name, Type: req.Type, Description: req.Description,
		Season: season, StartMonth: req.StartMonth, EndMonth: req.EndMonth,
	}
	if err := h.repo.CreatePestDisease(pd); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "追加に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "害虫・病気を追加しました", "name": pd.Name})
}

func (h *MasterCtrl) DeletePestDisease(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	id, _ := strconv.Atoi(c.Param("pest_disease_id"))
	refs, err := h.repo.PestDiseaseRefs(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if refs > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "関連データが存在するため削除できません"})
	}
	if err := h.repo.DeletePestDisease(uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "削除に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "害虫・病気を削除しました"})
}

// ---- species ----

func (h *MasterCtrl) ListSpecies(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	out, err := h.repo.ListSpecies()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type speciesReq struct {
	UserID         uint   `json:"user_id"`
	Name           string `json:"name"`
	ScientificName string `json:"scientific_name"`
	Category       string `json:"category"`
	Description    string `json:"description"`
	CareNotes      string `json:"care_notes"`
}

func (h *MasterCtrl) AddSpecies(c echo.Context) error {
	var req speciesReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "名前は必須です"})
	}
	category := req.Category
	if category == "" {
		category = "針葉樹"
	}
	s := &entities.SpeciesMaster{
		Name: req.Name, ScientificName: req.ScientificName, Category: category,
		Description: req.Description, CareNotes: req.CareNotes,
	}
	if err := h.repo.CreateSpecies(s); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "追加に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]any{"message": "樹種を追加しました", "name": s.Name})
}

func (h *MasterCtrl) DeleteSpecies(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	id, _ := strconv.Atoi(c.Param("species_id"))
	refs, err := h.repo.SpeciesRefs(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if refs > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "関連データが存在するため削除できません"})
	}
	if err := h.repo.DeleteSpecies(uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "削除に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "樹種を削除しました"})
}

// ---- effectiveness ----

func (h *MasterCtrl) ListEffectiveness(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	out, err := h.repo.ListEffectiveness()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type effectivenessReq struct {
	UserID             uint   `json:"user_id"`
	PesticideID        uint   `json:"pesticide_id"`
	PestDiseaseID      uint   `json:"pest_disease_id"`
	EffectivenessLevel int    `json:"effectiveness_level"`
	Notes              string `json:"notes"`
}

func (h *MasterCtrl) UpsertEffectiveness(c echo.Context) error {
	var req effectivenessReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	if req.PesticideID == 0 || req.PestDiseaseID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "農薬IDと害虫・病気IDは必須です"})
	}
	if req.EffectivenessLevel < 1 || req.EffectivenessLevel > 5 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "効果レベルは1〜5で指定してください"})
	}
	e := &entities.PesticideEffectiveness{
		PesticideID: req.PesticideID, PestDiseaseID: req.PestDiseaseID,
		EffectivenessLevel: req.EffectivenessLevel, Notes: req.Notes,
	}
	if err := h.repo.UpsertEffectiveness(e); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "追加に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "農薬効果を追加しました"})
}

func (h *MasterCtrl) DeleteEffectiveness(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	id, _ := strconv.Atoi(c.Param("effectiveness_id"))
	if err := h.repo.DeleteEffectiveness(uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "削除に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "農薬効果を削除しました"})
}

// ---- species risks ----

func (h *MasterCtrl) ListSpeciesRisks(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	out, err := h.repo.ListSpeciesRisks()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type speciesRiskReq struct {
	UserID                uint   `json:"user_id"`
	SpeciesID             uint   `json:"species_id"`
	PestDiseaseID         uint   `json:"pest_disease_id"`
	OccurrenceProbability int    `json:"occurrence_probability"`
	Season                string `json:"season"`
	StartMonth            *int   `json:"start_month"`
	EndMonth              *int   `json:"end_month"`
	Notes                 string `json:"notes"`
}

func (h *MasterCtrl) UpsertSpeciesRisk(c echo.Context) error {
	var req speciesRiskReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	if req.SpeciesID == 0 || req.PestDiseaseID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "樹種IDと害虫・病気IDは必須です"})
	}
	if req.OccurrenceProbability < 1 || req.OccurrenceProbability > 5 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "発生確率は1〜5で指定してください"})
	}
	season := req.Season
	if season == "" {
		season = "通年"
	}
	sr := &entities.SpeciesPestDisease{
		SpeciesID: req.SpeciesID, PestDiseaseID: req.PestDiseaseID,
		OccurrenceProbability: req.OccurrenceProbability,
		Season:                season, StartMonth: req.StartMonth, EndMonth: req.EndMonth,
		Notes: req.Notes,
	}
	if err := h.repo.UpsertSpeciesRisk(sr); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "追加に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "樹種別リスクを追加しました"})
}

func (h *MasterCtrl) DeleteSpeciesRisk(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	id, _ := strconv.Atoi(c.Param("species_risk_id"))
	if err := h.repo.DeleteSpeciesRisk(uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "削除に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "樹種別リスクを削除しました"})
}

// ---- prohibited pesticides ----

func (h *MasterCtrl) ListProhibited(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	out, err := h.repo.ListProhibited()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

type prohibitedReq struct {
	UserID      uint   `json:"user_id"`
	SpeciesID   uint   `json:"species_id"`
	PesticideID uint   `json:"pesticide_id"`
	Reason      string `json:"reason"`
	Severity    string `json:"severity"`
	Notes       string `json:"notes"`
}

func (h *MasterCtrl) UpsertProhibited(c echo.Context) error {
	var req prohibitedReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if ok, err := h.requireAdmin(c, req.UserID); !ok {
		return err
	}
	if req.SpeciesID == 0 || req.PesticideID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "樹種IDと農薬IDは必須です"})
	}
	severity := req.Severity
	if severity != "prohibited" && severity != "warning" {
		severity = "warning"
	}
	p := &entities.SpeciesProhibitedPesticide{
		SpeciesID: req.SpeciesID, PesticideID: req.PesticideID,
		Reason: req.Reason, Severity: severity, Notes: req.Notes,
	}
	if err := h.repo.UpsertProhibited(p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "追加に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "樹種別NG薬剤を追加しました"})
}

func (h *MasterCtrl) DeleteProhibited(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	id, _ := strconv.Atoi(c.Param("prohibited_id"))
	if err := h.repo.DeleteProhibited(uint(id)); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "削除に失敗しました: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "樹種別NG薬剤を削除しました"})
}

// ---- summary ----

func (h *MasterCtrl) Summary(c echo.Context) error {
	if ok, err := h.requireAdmin(c, 0); !ok {
		return err
	}
	summary, err := h.repo.Summary()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, summary)
}
