package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"bonsai/config"
	"bonsai/database"
	"bonsai/pkg/masterdata"
	"bonsai/router"

	bonsaiCtrlImp "bonsai/pkg/bonsai/controllerImp"
	bonsaiRepoImp "bonsai/pkg/bonsai/repositoryImp"

	userCtrlImp "bonsai/pkg/user/controllerImp"
	userRepoImp "bonsai/pkg/user/repositoryImp"

	plogCtrlImp "bonsai/pkg/pesticidelog/controllerImp"
	plogRepoImp "bonsai/pkg/pesticidelog/repositoryImp"

	worklogCtrlImp "bonsai/pkg/worklog/controllerImp"
	worklogRepoImp "bonsai/pkg/worklog/repositoryImp"

	masterCtrlImp "bonsai/pkg/master/controllerImp"
	masterRepoImp "bonsai/pkg/master/repositoryImp"

	recCtrlImp "bonsai/pkg/recommend/controllerImp"
	recRepoImp "bonsai/pkg/recommend/repositoryImp"
	recSvcImp "bonsai/pkg/recommend/serviceImp"
	recTypes "bonsai/pkg/recommend/types"

	healthCtrlImp "bonsai/pkg/health/controllerImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Printf("[main] timezone %q: %v, falling back to UTC", cfg.Timezone, err)
		loc = time.UTC
	}

	// 2) DB (sqlite) + automigrate + seed
	db := database.OpenSQLite(cfg.DBPath)
	database.SeedMasterData(db)

	// 3) Optional catalog imports
	loader := masterdata.New(db)
	if cfg.PesticideCatalogCSV != "" {
		if n, err := loader.ImportPesticidesCSV(cfg.PesticideCatalogCSV); err != nil {
			log.Printf("[main] pesticide catalog: %v", err)
		} else {
			log.Printf("[main] imported %d pesticide rows", n)
		}
	}
	if cfg.PestDiseaseCatalogCSV != "" {
		if n, err := loader.ImportPestDiseasesCSV(cfg.PestDiseaseCatalogCSV); err != nil {
			log.Printf("[main] pest/disease catalog: %v", err)
		} else {
			log.Printf("[main] imported %d pest/disease rows", n)
		}
	}
	if cfg.SpeciesCatalogXLSX != "" {
		if n, err := loader.ImportSpeciesXLSX(cfg.SpeciesCatalogXLSX, ""); err != nil {
			log.Printf("[main] species catalog: %v", err)
		} else {
			log.Printf("[main] imported %d species rows", n)
		}
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatalf("upload dir: %v", err)
	}

	// 4) Rotation tuning
	tuning := recSvcImp.DefaultTuning()
	if cfg.TuningPath != "" {
		if t, err := recSvcImp.LoadTuning(cfg.TuningPath); err != nil {
			log.Printf("[main] tuning: %v", err)
		} else {
			tuning = t
		}
	}

	// 5) Repos / services / controllers
	treeRepo := bonsaiRepoImp.New(db)
	engine := recSvcImp.NewEngine(recRepoImp.New(db), recTypes.DefaultFallbacks(), tuning)

	ctrls := router.Controllers{
		User:         userCtrlImp.New(userRepoImp.New(db)),
		Bonsai:       bonsaiCtrlImp.New(treeRepo, cfg.UploadDir),
		PesticideLog: plogCtrlImp.New(plogRepoImp.New(db)),
		WorkLog:      worklogCtrlImp.New(worklogRepoImp.New(db)),
		Recommend:    recCtrlImp.New(engine, treeRepo, loc),
		Master:       masterCtrlImp.New(masterRepoImp.New(db)),
		Health:       healthCtrlImp.NewHealthCtrl(db, cfg.UploadDir),
	}

	// 6) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())

	var origins []string
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		origins = strings.Split(v, ",")
	}
	r := router.New(e, origins, ctrls)

	// 7) Start
	log.Printf("listening on :%s", cfg.Port)
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
