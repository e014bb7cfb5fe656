package controllerImp

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"bonsai/entities"
	bonsaiRepo "bonsai/pkg/bonsai/repository"
	"bonsai/pkg/metrics"
	"bonsai/pkg/recommend/service"
	"bonsai/pkg/recommend/types"
	"bonsai/pkg/season"
)

type RecommendCtrl struct {
	svc   service.RecommendService
	trees bonsaiRepo.BonsaiRepository
	loc   *time.Location
}

func New(svc service.RecommendService, trees bonsaiRepo.BonsaiRepository, loc *time.Location) *RecommendCtrl {
	if loc == nil {
		loc = time.UTC
	}
	return &RecommendCtrl{svc: svc, trees: trees, loc: loc}
}

func (h *RecommendCtrl) now() time.Time { return time.Now().In(h.loc) }

func countResults(r *types.Recommendation) {
	metrics.RecommendationsTotal.WithLabelValues("insecticide", r.Insecticide.Status).Inc()
	metrics.RecommendationsTotal.WithLabelValues("fungicide", r.Fungicide.Status).Inc()
}

// ForBonsai serves the per-tree recommendation. The optional user_id
// query param turns on the ownership check.
func (h *RecommendCtrl) ForBonsai(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	b, err := h.trees.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "指定された盆栽が見つかりません"})
	}
	if q := c.QueryParam("user_id"); q != "" {
		uid, _ := strconv.Atoi(q)
		if b.UserID != uint(uid) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "この盆栽の情報にアクセスする権限がありません"})
		}
	}
	rec, err := h.svc.ForBonsai(b, h.now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	countResults(rec)
	return c.JSON(http.StatusOK, rec)
}

type userRecommendation struct {
	BonsaiID    uint              `json:"bonsai_id"`
	BonsaiName  string            `json:"bonsai_name"`
	Species     string            `json:"species"`
	SpeciesID   uint              `json:"species_id"`
	Insecticide types.ClassResult `json:"insecticide"`
	Fungicide   types.ClassResult `json:"fungicide"`
	GeneralInfo types.GeneralInfo `json:"general_info"`
}

// ForUser computes the recommendation for every tree the user owns.
func (h *RecommendCtrl) ForUser(c echo.Context) error {
	uid, _ := strconv.Atoi(c.Param("user_id"))
	trees, err := h.trees.ListByUser(uint(uid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	out := make([]userRecommendation, 0, len(trees))
	now := h.now()
	for i := range trees {
		b := &trees[i]
		rec, err := h.svc.ForBonsai(b, now)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		countResults(rec)
		out = append(out, userRecommendation{
			BonsaiID:    b.BonsaiID,
			BonsaiName:  b.Name,
			Species:     b.Species,
			SpeciesID:   b.SpeciesID,
			Insecticide: rec.Insecticide,
			Fungicide:   rec.Fungicide,
			GeneralInfo: rec.GeneralInfo,
		})
	}
	return c.JSON(http.StatusOK, out)
}

func (h *RecommendCtrl) SpeciesPesticides(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("species_id"))
	out, err := h.svc.SpeciesPesticides(uint(id), h.now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// MonthlyRisks requires the caller to identify itself; the view leaks
// treatment history, so only the owner may see it.
func (h *RecommendCtrl) MonthlyRisks(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	uidParam := c.QueryParam("user_id")
	if uidParam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	uid, _ := strconv.Atoi(uidParam)

	b, err := h.trees.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil || b.UserID != uint(uid) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "盆栽が見つからないか、アクセス権限がありません"})
	}
	out, err := h.svc.MonthlyRisks(b, h.now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, out)
}

// TestRecommendation runs the engine against a synthetic tree so a new
// species can be checked without registering anything.
func (h *RecommendCtrl) TestRecommendation(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("species_id"))
	fake := &entities.Bonsai{BonsaiID: 999, SpeciesID: uint(id), Name: "テスト盆栽"}
	rec, err := h.svc.ForBonsai(fake, h.now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rec)
}

func (h *RecommendCtrl) APIInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"title":       "盆栽農薬推奨システム API v4.0",
		"description": "月ベース管理対応の高度な農薬推奨システム",
		"features": []string{
			"SQLiteマスタテーブルベース",
			"月別害虫・病気リスク評価",
			"農薬効果レベル判定",
			"樹種別禁止薬剤管理",
			"インテリジェントローテーション",
			"使用履歴分析",
			"月範囲による精密管理",
		},
		"endpoints": map[string]string{
			"個別推奨":     "/api/pesticides/recommendation/{bonsai_id}?user_id={user_id}",
			"ユーザー全体推奨": "/api/pesticides/recommendations/user/{user_id}",
			"樹種別農薬情報":  "/api/pesticides/species/{species_id}/pesticides",
			"月次リスク分析":  "/api/pesticides/monthly-risks/{bonsai_id}?user_id={user_id}",
		},
		"current_season": season.Label(int(h.now().Month())),
	})
}
