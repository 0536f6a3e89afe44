package utils

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
)

var ErrInvalidToken = errors.New("invalid token")

// Load the secret from an environment variable. Fallback to a default (not recommended in production).
var secretKey = []byte(getSecret())

func getSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "barbershop-dev-secret"
	}
	return secret
}

// SetJWTSecret replaces the signing secret, e.g. with the value loaded by viper.
func SetJWTSecret(secret string) {
	if secret != "" {
		secretKey = []byte(secret)
	}
}

// OwnerClaims is what an owner token carries.
type OwnerClaims struct {
	OwnerID string
	ShopID  string
}

// GenerateToken creates a signed JWT for an owner, scoped to their shop.
// The token expires after the specified duration.
func GenerateToken(ownerID, shopID string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  ownerID,
		"shop": shopID,
		"iat":  now.Unix(),
		"exp":  now.Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey, nil
	})
}

// ExtractClaims validates the token and returns its owner and shop.
func ExtractClaims(tokenString string) (*OwnerClaims, error) {
	token, err := ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	shop, _ := claims["shop"].(string)
	if sub == "" || shop == "" {
		return nil, errors.New("token does not carry 'sub' and 'shop' claims")
	}
	return &OwnerClaims{OwnerID: sub, ShopID: shop}, nil
}
