package controllerImp

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var appStart = time.Now()

type HealthCtrl struct {
	db        *gorm.DB
	uploadDir string
}

func NewHealthCtrl(db *gorm.DB, uploadDir string) *HealthCtrl {
	return &HealthCtrl{db: db, uploadDir: uploadDir}
}

type sub struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	dbCheck := sub{OK: true}
	if h.db == nil {
		dbCheck = sub{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		dbCheck = sub{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbCheck = sub{Err: "ping: " + err.Error()}
	}

	uploadCheck := sub{OK: true}
	if h.uploadDir != "" {
		if info, err := os.Stat(h.uploadDir); err != nil {
			uploadCheck = sub{Err: err.Error()}
		} else if !info.IsDir() {
			uploadCheck = sub{Err: h.uploadDir + " is not a directory"}
		}
	}

	allOK := dbCheck.OK && uploadCheck.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database": dbCheck,
			"uploads":  uploadCheck,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
