package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bonsai/entities"
	"bonsai/pkg/pesticidelog/repository"
)

type PesticideLogCtrl struct{ repo repository.PesticideLogRepository }

func New(repo repository.PesticideLogRepository) *PesticideLogCtrl {
	return &PesticideLogCtrl{repo}
}

// CatalogEntry is the fixed product reference shown in the log form.
type CatalogEntry struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	DefaultDosage string `json:"default_dosage"`
	Type          string `json:"type"`
}

var pesticideCatalog = []CatalogEntry{
	{1, "オルトラン", "浸透移行性の殺虫剤", "1g/L", "殺虫剤"},
	{2, "スミチオン", "有機リン系殺虫剤", "2ml/L", "殺虫剤"},
	{3, "ベニカ", "殺虫殺菌剤", "3ml/L", "殺虫殺菌剤"},
	{4, "マラソン", "有機リン系殺虫剤", "2ml/L", "殺虫剤"},
	{5, "カダン", "浸透移行性の殺虫剤", "5ml/L", "殺虫剤"},
	{6, "トップジンM", "殺菌剤", "1g/L", "殺菌剤"},
	{7, "石灰硫黄合剤", "殺菌・殺虫剤", "20ml/L", "殺菌殺虫剤"},
	{8, "ダコニール", "殺菌剤", "2ml/L", "殺菌剤"},
	{9, "バロック", "殺虫剤", "1ml/L", "殺虫剤"},
	{10, "ダニ太郎", "殺虫剤", "1ml/L", "殺虫剤"},
}

func (h *PesticideLogCtrl) Catalog(c echo.Context) error {
	return c.JSON(http.StatusOK, pesticideCatalog)
}

// Recommended merges the master table with catalog details where known.
func (h *PesticideLogCtrl) Recommended(c echo.Context) error {
	masters, err := h.repo.ListCatalog()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	out := make([]map[string]any, 0, len(masters))
	for _, m := range masters {
		entry := map[string]any{
			"name":              m.Name,
			"description":       m.Description,
			"default_dosage":    "使用量は製品ラベルを参照",
			"type":              m.Type,
			"interval_days":     m.IntervalDays,
			"pesticide_type":    m.Type,
			"active_ingredient": m.ActiveIngredient,
		}
		for _, known := range pesticideCatalog {
			if known.Name == m.Name {
				entry["id"] = known.ID
				entry["description"] = known.Description
				entry["default_dosage"] = known.DefaultDosage
				entry["type"] = known.Type
				break
			}
		}
		if entry["description"] == "" {
			entry["description"] = "農薬"
		}
		out = append(out, entry)
	}
	return c.JSON(http.StatusOK, out)
}

// ownedBonsai resolves the tree and enforces the optional user_id check.
func (h *PesticideLogCtrl) ownedBonsai(c echo.Context, bonsaiID uint) (*entities.Bonsai, int, string) {
	b, err := h.repo.FindBonsai(bonsaiID)
	if err != nil {
		return nil, http.StatusInternalServerError, err.Error()
	}
	if b == nil {
		return nil, http.StatusNotFound, "指定された盆栽が見つかりません"
	}
	if q := c.QueryParam("user_id"); q != "" {
		uid, _ := strconv.Atoi(q)
		if b.UserID != uint(uid) {
			return nil, http.StatusForbidden, "この盆栽の記録にアクセスする権限がありません"
		}
	}
	return b, 0, ""
}

func (h *PesticideLogCtrl) ListByBonsai(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	if _, status, msg := h.ownedBonsai(c, uint(id)); status != 0 {
		return c.JSON(status, map[string]string{"error": msg})
	}
	logs, err := h.repo.ListByBonsai(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, logs)
}

type userLogItem struct {
	repository.UserLogRow
	UsageDate string `json:"usage_date"`
}

func (h *PesticideLogCtrl) ListByUser(c echo.Context) error {
	uid, _ := strconv.Atoi(c.Param("user_id"))
	rows, err := h.repo.ListByUser(uint(uid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	out := make([]userLogItem, 0, len(rows))
	for _, r := range rows {
		out = append(out, userLogItem{UserLogRow: r, UsageDate: r.Date})
	}
	return c.JSON(http.StatusOK, out)
}

type addLogReq struct {
	PesticideName     string `json:"pesticide_name"`
	UsageDate         string `json:"usage_date"`
	Dosage            string `json:"dosage"`
	Notes             string `json:"notes"`
	WaterAmount       string `json:"water_amount"`
	DilutionRatio     string `json:"dilution_ratio"`
	ActualUsageAmount string `json:"actual_usage_amount"`
}

func (h *PesticideLogCtrl) Add(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	b, status, msg := h.ownedBonsai(c, uint(id))
	if status != 0 {
		return c.JSON(status, map[string]string{"error": msg})
	}
	var req addLogReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.PesticideName == "" || req.UsageDate == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "農薬名と散布日は必須です"})
	}
	l := &entities.PesticideLog{
		BonsaiID:          uint(id),
		UserID:            b.UserID,
		Date:              req.UsageDate,
		PesticideName:     req.PesticideName,
		Dosage:            req.Dosage,
		Notes:             req.Notes,
		WaterAmount:       req.WaterAmount,
		DilutionRatio:     req.DilutionRatio,
		ActualUsageAmount: req.ActualUsageAmount,
	}
	if err := h.repo.Create(l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "農薬記録を追加しました", "id": l.LogID})
}

func (h *PesticideLogCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("log_id"))
	l, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if l == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "指定された記録が見つかりません"})
	}
	b, err := h.repo.FindBonsai(l.BonsaiID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if q := c.QueryParam("user_id"); q != "" && b != nil {
		uid, _ := strconv.Atoi(q)
		if b.UserID != uint(uid) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "この記録を削除する権限がありません"})
		}
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "農薬記録を削除しました", "id": id})
}
