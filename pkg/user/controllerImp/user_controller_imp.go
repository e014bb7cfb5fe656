package controllerImp

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"

	"bonsai/entities"
	"bonsai/pkg/metrics"
	"bonsai/pkg/user/repository"
)

type UserCtrl struct{ repo repository.UserRepository }

func New(repo repository.UserRepository) *UserCtrl { return &UserCtrl{repo} }

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (h *UserCtrl) Login(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false})
	}
	u, err := h.repo.FindByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false})
	}
	if u == nil || bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)) != nil {
		metrics.LoginsTotal.WithLabelValues("rejected").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false})
	}
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": u.Username, "id": u.UserID})
}

func (h *UserCtrl) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{"success": true})
}

func (h *UserCtrl) Register(c echo.Context) error {
	var req credentials
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "bad json"})
	}
	if len([]rune(strings.TrimSpace(req.Username))) < 3 {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "ユーザー名は3文字以上必要です"})
	}
	if len([]rune(req.Password)) < 6 {
		return c.JSON(http.StatusBadRequest, map[string]any{"success": false, "message": "パスワードは6文字以上必要です"})
	}
	role := req.Role
	if role != "user" && role != "admin" {
		role = "user"
	}
	existing, err := h.repo.FindByUsername(req.Username)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
	}
	if existing != nil {
		return c.JSON(http.StatusConflict, map[string]any{"success": false, "message": "このユーザー名は既に使用されています"})
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
	}
	u := &entities.User{Username: strings.TrimSpace(req.Username), PasswordHash: string(hash), Role: role}
	if err := h.repo.Create(u); err != nil {
		return c.JSON(http.StatusConflict, map[string]any{"success": false, "message": "このユーザー名は既に使用されています"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"user":    map[string]string{"username": u.Username, "role": u.Role},
		"id":      u.UserID,
		"message": "ユーザー '" + u.Username + "' を " + u.Role + " 権限で登録しました",
	})
}

// List is admin-only; the caller identifies itself with a user_id query param.
func (h *UserCtrl) List(c echo.Context) error {
	callerID, err := strconv.Atoi(c.QueryParam("user_id"))
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{"success": false, "message": "ログインが必要です"})
	}
	caller, err := h.repo.FindByID(uint(callerID))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
	}
	if caller == nil || caller.Role != "admin" {
		return c.JSON(http.StatusForbidden, map[string]any{"success": false, "message": "管理者権限が必要です"})
	}
	users, err := h.repo.List()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "users": users})
}

func (h *UserCtrl) IsAdmin(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("user_id"))
	u, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "is_admin": u != nil && u.Role == "admin"})
}

func (h *UserCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("user_id"))
	u, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]any{"success": false, "message": err.Error()})
	}
	if u == nil {
		return c.JSON(http.StatusNotFound, map[string]any{"success": false, "message": "ユーザーが見つかりません"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "user": u})
}
