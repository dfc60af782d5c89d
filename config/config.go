package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

type AppConfig struct {
	Port       string
	Timezone   string
	DataDir    string
	DBPath     string
	UploadDir  string
	Source     string
	AdminToken string
}

// String keeps the admin token out of the startup log.
func (c AppConfig) String() string {
	masked := ""
	if c.AdminToken != "" {
		masked = "***"
	}
	return fmt.Sprintf("{Port:%s Timezone:%s DataDir:%s DBPath:%s UploadDir:%s Source:%s AdminToken:%s}",
		c.Port, c.Timezone, c.DataDir, c.DBPath, c.UploadDir, c.Source, masked)
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
		Timezone:   get("TZ", "America/Sao_Paulo"),
		DataDir:    get("DATA_DIR", "."),
		DBPath:     get("DB_PATH", "horta.db"),
		UploadDir:  get("UPLOAD_DIR", "uploads"),
		Source:     strings.ToLower(get("SOURCE", SourceCSV)),
		AdminToken: get("ADMIN_TOKEN", ""),
	}
	if cfg.Source != SourceCSV && cfg.Source != SourceSQLite {
		log.Printf("[cfg] unknown SOURCE %q, using %s", cfg.Source, SourceCSV)
		cfg.Source = SourceCSV
	}
	log.Printf("[cfg] %v", cfg)
	return cfg
}
