package utils

import (
	"strings"
	"time"

	"github.com/rodrigoanasco/nwHacks/backend/config"
	"github.com/rodrigoanasco/nwHacks/backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// IdentityClaims mirrors the profile fields the identity provider puts in
// its tokens.
type IdentityClaims struct {
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Email      string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// GenerateJWTToken signs a token for userID. It backs the token CLI command
// and tests; production tokens come from the identity provider.
func GenerateJWTToken(userID string, profile IdentityClaims, ttl time.Duration, cfg *config.Config) (string, error) {
	claims := profile
	claims.Subject = userID
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(ttl))
	claims.IssuedAt = jwt.NewNumericDate(time.Now())

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ParsePrincipal validates tokenString (with or without a Bearer prefix)
// and returns the authenticated principal it names.
func ParsePrincipal(tokenString string, cfg *config.Config) (*models.Principal, error) {
	tokenString = strings.TrimSpace(tokenString)
	if len(tokenString) > 7 && strings.EqualFold(tokenString[:7], "Bearer ") {
		tokenString = strings.TrimSpace(tokenString[7:])
	}
	if tokenString == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}

	var claims IdentityClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid user ID in token")
	}

	return &models.Principal{
		Authenticated: true,
		UserID:        claims.Subject,
		Name:          DisplayName(claims.GivenName, claims.FamilyName, claims.Email),
		Email:         claims.Email,
	}, nil
}

// DisplayName picks the first non-empty of given name, family name and
// email, falling back to "User".
func DisplayName(givenName, familyName, email string) string {
	for _, s := range []string{givenName, familyName, email} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return "User"
}
