package config

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/farellandr/skatefund/internal/logger"
	"github.com/farellandr/skatefund/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	Port      string
	JWTSecret string
	LogMode   string

	CORSAllowedOrigins        []string
	ContributionRatePerMinute int
	ContributionBurst         int
	DomainInvariantStatus     int
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		Port:      getEnv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		LogMode:   getEnv("LOG_MODE", "dev"),

		CORSAllowedOrigins:        splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ContributionRatePerMinute: getEnvInt("CONTRIBUTION_RATE_PER_MINUTE", 60),
		ContributionBurst:         getEnvInt("CONTRIBUTION_BURST", 10),
	}

	switch strings.ToLower(getEnv("DOMAIN_INVARIANT_STATUS", "server_error")) {
	case "bad_request":
		cfg.DomainInvariantStatus = http.StatusBadRequest
	case "server_error":
		cfg.DomainInvariantStatus = http.StatusInternalServerError
	default:
		return nil, fmt.Errorf("DOMAIN_INVARIANT_STATUS must be bad_request or server_error")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.ContributionRatePerMinute <= 0 || cfg.ContributionBurst <= 0 {
		return nil, fmt.Errorf("contribution rate and burst must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, p := range strings.Split(raw, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

// GormConfig is shared by the production and test databases. Foreign keys are
// not created: links behave like document references and deletes never cascade.
// gorm writes through log, tagged with component=gorm.
func GormConfig(log *logger.Logger, logLevel gormLogger.LogLevel) *gorm.Config {
	return &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger: gormLogger.New(log.With("component", "gorm"), gormLogger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logLevel,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		}),
	}
}

func InitDatabase(cfg *Config, log *logger.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	level := gormLogger.Warn
	if cfg.LogMode == "dev" {
		level = gormLogger.Info
	}

	db, err := gorm.Open(postgres.Open(dsn), GormConfig(log, level))
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}
