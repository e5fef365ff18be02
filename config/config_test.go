package config

import (
	"net/http"
	"strings"
	"testing"

	"github.com/farellandr/skatefund/internal/logger"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "")
	t.Setenv("DOMAIN_INVARIANT_STATUS", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CONTRIBUTION_RATE_PER_MINUTE", "not-a-number")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port: want=8080 got=%s", cfg.Port)
	}
	if cfg.DomainInvariantStatus != http.StatusInternalServerError {
		t.Fatalf("DomainInvariantStatus: want=500 got=%d", cfg.DomainInvariantStatus)
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("CORSAllowedOrigins: got=%v", cfg.CORSAllowedOrigins)
	}
	if cfg.ContributionRatePerMinute != 60 {
		t.Fatalf("ContributionRatePerMinute: want=60 got=%d", cfg.ContributionRatePerMinute)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig: expected error for empty JWT_SECRET")
	}

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DOMAIN_INVARIANT_STATUS", "teapot")
	if _, err := LoadConfig(); err == nil {
		t.Fatalf("LoadConfig: expected error for unknown DOMAIN_INVARIANT_STATUS")
	}

	t.Setenv("DOMAIN_INVARIANT_STATUS", "bad_request")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DomainInvariantStatus != http.StatusBadRequest {
		t.Fatalf("DomainInvariantStatus: want=400 got=%d", cfg.DomainInvariantStatus)
	}
}

func TestGormConfigLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	log := &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	db, err := gorm.Open(sqlite.Open("file::memory:"), GormConfig(log, gormLogger.Info))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := db.Exec("SELECT 42").Error; err != nil {
		t.Fatalf("exec: %v", err)
	}

	var found bool
	for _, entry := range logs.All() {
		if !strings.Contains(entry.Message, "SELECT 42") {
			continue
		}
		found = true
		if entry.ContextMap()["component"] != "gorm" {
			t.Fatalf("component: want=gorm got=%v", entry.ContextMap()["component"])
		}
	}
	if !found {
		t.Fatalf("gorm statement not logged, entries=%d", logs.Len())
	}
}
