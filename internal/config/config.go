package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config agrupa la configuración de la aplicación leída del entorno
type Config struct {
	Port               string
	GinMode            string
	LogLevel           string
	LogPretty          bool
	CORSAllowedOrigins []string
	DefaultPageSize    int
	MaxUploadSizeBytes int64
	DashboardCacheTTL  time.Duration
	Database           DatabaseConfig
}

// DatabaseConfig indica el driver y la cadena de conexión
type DatabaseConfig struct {
	Driver string // sqlite3 | postgres
	URL    string
}

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// Load carga el archivo .env (si existe) y construye la configuración
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("No se pudo cargar el archivo .env: %v", err)
	}

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		GinMode:            getEnv("GIN_MODE", "debug"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogPretty:          getBool("LOG_PRETTY", false),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000")),
		DefaultPageSize:    getInt("DEFAULT_PAGE_SIZE", 10),
		MaxUploadSizeBytes: int64(getInt("MAX_UPLOAD_SIZE_BYTES", 10<<20)),
		DashboardCacheTTL:  getDuration("DASHBOARD_CACHE_TTL", 30*time.Second),
		Database: DatabaseConfig{
			Driver: strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)),
			URL:    getEnv("DATABASE_URL", "database/transactions.db"),
		},
	}

	if cfg.Database.Driver != DriverSQLite && cfg.Database.Driver != DriverPostgres {
		log.Printf("DB_DRIVER inválido %q, usando %s", cfg.Database.Driver, DriverSQLite)
		cfg.Database.Driver = DriverSQLite
	}
	// Con postgres puede haber varias instancias sobre la misma base; la caché local sólo se activa a pedido
	if cfg.Database.Driver == DriverPostgres && os.Getenv("DASHBOARD_CACHE_TTL") == "" {
		cfg.DashboardCacheTTL = 0
	}
	if cfg.DefaultPageSize <= 0 {
		log.Printf("DEFAULT_PAGE_SIZE debe ser positivo, usando 10")
		cfg.DefaultPageSize = 10
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Valor entero inválido para %s, usando %d", key, defaultValue)
		return defaultValue
	}
	return parsed
}

func getBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Valor booleano inválido para %s, usando %t", key, defaultValue)
		return defaultValue
	}
	return parsed
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Duración inválida para %s (%q), usando %s", key, value, defaultValue)
		return defaultValue
	}
	return parsed
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
