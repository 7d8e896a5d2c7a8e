package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/eventdesk/eventdesk-api/internal/config"
	"github.com/eventdesk/eventdesk-api/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	cfg *config.Config
	db  *gorm.DB
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{cfg: cfg, db: db}
}

// AuthInput is embedded by request structs of routes that read the bearer
// token. Optional-auth routes embed it too and call AuthorizeOptional.
type AuthInput struct {
	Authorization string `header:"Authorization" doc:"Bearer token" required:"false"`
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (h *AuthHandler) tokenDuration() time.Duration {
	return time.Duration(h.cfg.TokenExpiryMinutes) * time.Minute
}

// GenerateToken issues an HS256 JWT carrying the user's email as subject and
// their role as a claim.
func (h *AuthHandler) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"role": string(user.Role),
		"exp":  time.Now().Add(h.tokenDuration()).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// Unauthenticated wraps msg into a 401 carrying the bearer challenge header.
func Unauthenticated(msg string) error {
	return huma.ErrorWithHeaders(
		huma.Error401Unauthorized(msg),
		http.Header{"WWW-Authenticate": []string{"Bearer"}},
	)
}

// Authorize resolves a bearer Authorization header to the user it names. The
// role is read from the stored record, not the token, so demotions take
// effect immediately.
func (h *AuthHandler) Authorize(ctx context.Context, authorization string) (*models.User, error) {
	tokenString, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || tokenString == "" {
		return nil, Unauthenticated("Missing bearer token")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, Unauthenticated("Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, Unauthenticated("Invalid token claims")
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return nil, Unauthenticated("Invalid token claims")
	}

	var user models.User
	if err := h.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, Unauthenticated("Unknown user")
	}
	return &user, nil
}

// AuthorizeOptional treats a missing or invalid credential as anonymous.
func (h *AuthHandler) AuthorizeOptional(ctx context.Context, authorization string) *models.User {
	user, err := h.Authorize(ctx, authorization)
	if err != nil {
		return nil
	}
	return user
}

// HandleToken is the credential exchange: an OAuth2 password form where
// username is the account email. Registered as a plain route because the
// body is form-encoded, not JSON.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form body", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	var user models.User
	err := h.db.Where("email = ?", email).First(&user).Error
	if err != nil || !CheckPassword(user.PasswordHash, password) {
		w.Header().Set("WWW-Authenticate", "Bearer")
		http.Error(w, "Incorrect email or password", http.StatusUnauthorized)
		return
	}

	token, err := h.GenerateToken(&user)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
