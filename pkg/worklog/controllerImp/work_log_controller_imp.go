package controllerImp

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"bonsai/entities"
	"bonsai/pkg/worklog/repository"
)

type WorkLogCtrl struct{ repo repository.WorkLogRepository }

func New(repo repository.WorkLogRepository) *WorkLogCtrl { return &WorkLogCtrl{repo} }

// WorkTypes is the closed vocabulary accepted by Add.
var WorkTypes = []string{
	"剪定",
	"植え替え",
	"針金掛け",
	"針金外し",
	"水やり",
	"肥料",
	"植え替え準備",
	"その他",
}

func validWorkType(t string) bool {
	for _, w := range WorkTypes {
		if w == t {
			return true
		}
	}
	return false
}

func (h *WorkLogCtrl) ListWorkTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, WorkTypes)
}

func (h *WorkLogCtrl) ListByBonsai(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	b, err := h.repo.FindBonsai(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "指定された盆栽が見つかりません"})
	}
	if q := c.QueryParam("user_id"); q != "" {
		uid, _ := strconv.Atoi(q)
		if b.UserID != uint(uid) {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "この盆栽の記録にアクセスする権限がありません"})
		}
	}
	logs, err := h.repo.ListByBonsai(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, logs)
}

func (h *WorkLogCtrl) ListByUser(c echo.Context) error {
	uid, _ := strconv.Atoi(c.Param("user_id"))
	rows, err := h.repo.ListByUser(uint(uid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, rows)
}

type addReq struct {
	UserID      uint   `json:"user_id"`
	Date        string `json:"date"`
	WorkType    string `json:"work_type"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
	Duration    *int   `json:"duration"`
}

func (h *WorkLogCtrl) Add(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	var req addReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.Date == "" || req.WorkType == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "日付と作業種別は必須です"})
	}
	if !validWorkType(req.WorkType) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "無効な作業種別です"})
	}
	b, err := h.repo.FindBonsai(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "指定された盆栽が見つかりません"})
	}
	if req.UserID == 0 || req.UserID != b.UserID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "この盆栽に記録を追加する権限がありません"})
	}
	l := &entities.WorkLog{
		BonsaiID:    uint(id),
		UserID:      req.UserID,
		Date:        req.Date,
		WorkType:    req.WorkType,
		Description: req.Description,
		Notes:       req.Notes,
		Duration:    req.Duration,
	}
	if err := h.repo.Create(l); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "作業記録の追加に失敗しました"})
	}
	return c.JSON(http.StatusCreated, map[string]any{
		"success": true,
		"message": "作業記録が追加されました",
		"log":     l,
	})
}

func (h *WorkLogCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("log_id"))
	l, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if l == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "指定された作業記録が見つかりません"})
	}
	uid, err := strconv.Atoi(c.QueryParam("user_id"))
	if err != nil || uint(uid) != l.UserID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "この作業記録を削除する権限がありません"})
	}
	if err := h.repo.Delete(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "作業記録の削除に失敗しました"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "作業記録が削除されました"})
}
