package handlers

import (
	"errors"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/auth"
	"github.com/eventdesk/eventdesk-api/internal/config"
	"github.com/eventdesk/eventdesk-api/internal/database"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTest(t *testing.T) (*gorm.DB, *auth.AuthHandler) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to auto migrate: %v", err)
	}
	cfg := &config.Config{JWTSecret: "test-secret", TokenExpiryMinutes: 30}
	return db, auth.NewAuthHandler(cfg, db)
}

// createUser seeds a user and returns it with a ready-to-use bearer header.
func createUser(t *testing.T, db *gorm.DB, authHandler *auth.AuthHandler, email string, role models.Role) (models.User, string) {
	t.Helper()
	hash, err := auth.HashPassword("password1")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := models.User{Name: "User " + email, Email: email, PasswordHash: hash, Role: role}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	token, err := authHandler.GenerateToken(&user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return user, "Bearer " + token
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var se huma.StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected a status error, got %v", err)
	}
	return se.GetStatus()
}
