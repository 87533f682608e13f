package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/alperendogan/devboard/internal/config"
	"github.com/alperendogan/devboard/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test and migrates
// the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.EmailOTP{},
		&models.OAuthState{},
		&models.Project{},
		&models.Like{},
		&models.CreditTransaction{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		JWTSecret:         "test-secret",
		JWTAccessExpiry:   15 * time.Minute,
		SessionExpiry:     time.Hour,
		OTPExpiry:         10 * time.Minute,
		OTPDigits:         6,
		GoogleClientID:    "test-client",
		GoogleRedirectURL: "http://localhost:8080/api/auth/google/callback",
		GoogleScopes:      "openid email profile",
		OAuthStateExpiry:  10 * time.Minute,
		AppURL:            "http://localhost:3000",
	}
}

// captureMailer records issued codes instead of delivering them.
type captureMailer struct {
	emails   []string
	codes    []string
	purposes []string
}

func (m *captureMailer) SendOTP(email, code, purpose string) error {
	m.emails = append(m.emails, email)
	m.codes = append(m.codes, code)
	m.purposes = append(m.purposes, purpose)
	return nil
}

func (m *captureMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.codes) == 0 {
		t.Fatal("no otp was sent")
	}
	return m.codes[len(m.codes)-1]
}
