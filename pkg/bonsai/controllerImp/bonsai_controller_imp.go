package controllerImp

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"bonsai/entities"
	"bonsai/pkg/bonsai/repository"
)

type BonsaiCtrl struct {
	repo      repository.BonsaiRepository
	uploadDir string
}

func New(repo repository.BonsaiRepository, uploadDir string) *BonsaiCtrl {
	return &BonsaiCtrl{repo: repo, uploadDir: uploadDir}
}

var allowedImageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}

type listItem struct {
	entities.Bonsai
	HasImage bool  `json:"has_image"`
	ImageID  *uint `json:"image_id,omitempty"`
}

func (h *BonsaiCtrl) withImages(trees []entities.Bonsai) ([]listItem, error) {
	out := make([]listItem, 0, len(trees))
	for _, b := range trees {
		item := listItem{Bonsai: b}
		img, err := h.repo.LatestImage(b.BonsaiID)
		if err != nil {
			return nil, err
		}
		if img != nil {
			item.HasImage = true
			item.ImageID = &img.ImageID
		}
		out = append(out, item)
	}
	return out, nil
}

// List returns every tree, or only the caller's when user_id is given.
func (h *BonsaiCtrl) List(c echo.Context) error {
	var (
		trees []entities.Bonsai
		err   error
	)
	if q := c.QueryParam("user_id"); q != "" {
		uid, convErr := strconv.Atoi(q)
		if convErr != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが不正です"})
		}
		trees, err = h.repo.ListByUser(uint(uid))
	} else {
		trees, err = h.repo.ListAll()
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	items, err := h.withImages(trees)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

func (h *BonsaiCtrl) ListByUser(c echo.Context) error {
	uid, _ := strconv.Atoi(c.Param("user_id"))
	trees, err := h.repo.ListByUser(uint(uid))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	items, err := h.withImages(trees)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items)
}

type createReq struct {
	UserID    uint   `json:"user_id"`
	Name      string `json:"name"`
	SpeciesID uint   `json:"species_id"`
	Notes     string `json:"notes"`
}

func (h *BonsaiCtrl) Create(c echo.Context) error {
	var req createReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	if req.UserID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	if req.SpeciesID == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "樹種IDが必要です"})
	}
	species, err := h.repo.SpeciesByID(req.SpeciesID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if species == nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "無効な樹種IDです"})
	}
	b := &entities.Bonsai{
		UserID:    req.UserID,
		Name:      req.Name,
		SpeciesID: req.SpeciesID,
		Species:   species.Name,
		Notes:     req.Notes,
	}
	if err := h.repo.Create(b); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "盆栽を登録しました", "id": b.BonsaiID})
}

func (h *BonsaiCtrl) Get(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	b, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "盆栽が見つかりません"})
	}
	items, err := h.withImages([]entities.Bonsai{*b})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, items[0])
}

func (h *BonsaiCtrl) Delete(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	uidParam := c.QueryParam("user_id")
	if uidParam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	uid, _ := strconv.Atoi(uidParam)

	b, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil || b.UserID != uint(uid) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "盆栽が見つからないか、削除権限がありません"})
	}

	images, err := h.repo.DeleteCascade(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "削除中にエラーが発生しました: " + err.Error()})
	}
	for _, img := range images {
		os.Remove(filepath.Join(h.uploadDir, img.Filename))
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":           true,
		"message":           "盆栽と関連するデータを削除しました",
		"deleted_bonsai_id": id,
	})
}

func (h *BonsaiCtrl) ListSpecies(c echo.Context) error {
	species, err := h.repo.ListSpecies()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, species)
}

func (h *BonsaiCtrl) UploadImage(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	uidParam := c.QueryParam("user_id")
	if uidParam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	uid, _ := strconv.Atoi(uidParam)

	b, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil || b.UserID != uint(uid) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "盆栽が見つからないか、アクセス権限がありません"})
	}

	fh, err := c.FormFile("image")
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "画像ファイルが必要です"})
	}
	if fh.Filename == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ファイルが選択されていません"})
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExt[ext] {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "許可されていないファイル形式です"})
	}

	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	defer src.Close()

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	unique := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	dstPath := filepath.Join(h.uploadDir, unique)
	dst, err := os.Create(dstPath)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	dst.Close()

	img := &entities.BonsaiImage{
		BonsaiID:         uint(id),
		UserID:           uint(uid),
		Filename:         unique,
		OriginalFilename: filepath.Base(fh.Filename),
	}
	if err := h.repo.CreateImage(img); err != nil {
		os.Remove(dstPath)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "データベースエラー: " + err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"success":  true,
		"message":  "画像がアップロードされました",
		"image_id": img.ImageID,
	})
}

func (h *BonsaiCtrl) GetImage(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("image_id"))
	img, err := h.repo.FindImage(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if img == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "画像が見つかりません"})
	}
	if q := c.QueryParam("user_id"); q != "" {
		uid, _ := strconv.Atoi(q)
		if img.UserID != uint(uid) {
			b, err := h.repo.FindByID(img.BonsaiID)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
			}
			if b == nil || b.UserID != uint(uid) {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "アクセス権限がありません"})
			}
		}
	}
	return c.File(filepath.Join(h.uploadDir, img.Filename))
}

func (h *BonsaiCtrl) DeleteImage(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("image_id"))
	uidParam := c.QueryParam("user_id")
	if uidParam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	uid, _ := strconv.Atoi(uidParam)

	img, err := h.repo.FindImage(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if img == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "画像が見つかりません"})
	}
	if img.UserID != uint(uid) {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "アクセス権限がありません"})
	}
	os.Remove(filepath.Join(h.uploadDir, img.Filename))
	if err := h.repo.DeleteImage(uint(id)); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "画像が削除されました"})
}

func (h *BonsaiCtrl) ListImages(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("bonsai_id"))
	uidParam := c.QueryParam("user_id")
	if uidParam == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "ユーザーIDが必要です"})
	}
	uid, _ := strconv.Atoi(uidParam)

	b, err := h.repo.FindByID(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if b == nil || b.UserID != uint(uid) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "盆栽が見つからないか、アクセス権限がありません"})
	}
	images, err := h.repo.ListImages(uint(id))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"bonsai_id":   id,
		"bonsai_name": b.Name,
		"images":      images,
	})
}
