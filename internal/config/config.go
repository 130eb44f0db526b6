package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr string

	DBDriver string // sqlite|postgres|memory
	DBDSN    string

	DataCSV string // dataset loaded at startup when the store is empty

	EnableAuth    bool
	AuthSecret    string
	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOrigins []string

	// Optional TTF for scripts the core PDF fonts can't render.
	PDFFontPath string

	SearchLimit int // default page size for /questions
}

func FromEnv() Config {
	return Config{
		HTTPAddr:      envOr("HTTP_ADDR", ":8080"),
		DBDriver:      envOr("DB_DRIVER", "sqlite"),
		DBDSN:         envOr("DB_DSN", ""),
		DataCSV:       envOr("DATA_CSV", "./data/questions.csv"),
		EnableAuth:    envBool("ENABLE_AUTH", false),
		AuthSecret:    envOr("AUTH_HMAC_SECRET", "examdb-dev-key"),
		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", ""),
		CORSOrigins:   []string{envOr("CORS_ORIGIN", "http://localhost:3000")},
		PDFFontPath:   os.Getenv("PDF_FONT_PATH"),
		SearchLimit:   envInt("SEARCH_LIMIT", 50),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envInt(k string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(k)); err == nil && v > 0 {
		return v
	}
	return def
}
