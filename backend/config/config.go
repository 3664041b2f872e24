package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string
	JWTSecret  string
	ServerPort string

	// ConverterURL is the ingestion endpoint of the rendering worker.
	ConverterURL string
	// AnonymousUserID is the principal used for requests without a token.
	AnonymousUserID string

	CORSOrigins string
	LogFormat   string
	LogLevel    string
	CatalogFile string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{
		DBDriver:        strings.ToLower(getEnv("DB_DRIVER", DriverPostgres)),
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "5432"),
		DBUser:          getEnv("DB_USER", "postgres"),
		DBPassword:      getEnv("DB_PASSWORD", "postgres"),
		DBName:          getEnv("DB_NAME", "practice_progress"),
		DBSSLMode:       getEnv("DB_SSLMODE", "disable"),
		DBPath:          getEnv("DB_PATH", "progress.db"),
		JWTSecret:       getEnv("JWT_SECRET", "secret"),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		ConverterURL:    getEnv("CONVERTER_URL", "http://localhost:8000/convert"),
		AnonymousUserID: getEnv("ANONYMOUS_USER_ID", "default"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
		LogFormat:       getEnv("LOG_FORMAT", "console"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		CatalogFile:     getEnv("CATALOG_FILE", "catalog.yaml"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q: must be %q or %q", c.DBDriver, DriverPostgres, DriverSQLite)
	}
	if strings.TrimSpace(c.AnonymousUserID) == "" {
		return fmt.Errorf("ANONYMOUS_USER_ID must not be empty")
	}
	if c.ConverterURL == "" {
		return fmt.Errorf("CONVERTER_URL must not be empty")
	}
	return nil
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
