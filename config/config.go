package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port       string
	Timezone   string
	DBPath     string
	UploadDir  string
	TuningPath string

	// Optional catalog files imported into the master tables at startup.
	PesticideCatalogCSV   string
	PestDiseaseCatalogCSV string
	SpeciesCatalogXLSX    string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:       get("PORT", "8080"),
		Timezone:   get("TZ", "Asia/Tokyo"),
		DBPath:     get("DB_PATH", "bonsai.db"),
		UploadDir:  get("UPLOAD_DIR", "uploads"),
		TuningPath: get("ROTATION_TUNING_PATH", ""),

		PesticideCatalogCSV:   get("PESTICIDE_CATALOG_CSV", ""),
		PestDiseaseCatalogCSV: get("PEST_DISEASE_CATALOG_CSV", ""),
		SpeciesCatalogXLSX:    get("SPECIES_CATALOG_XLSX", ""),
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
