package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	refreshTokenTTL = 7 * 24 * time.Hour
)

var ErrInvalidToken = fmt.Errorf("invalid or expired token")

// TokenService signs and verifies HS256 tokens carrying the user id as
// subject and an access/refresh type discriminator.
type TokenService struct {
	secret    []byte
	accessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), accessTTL: accessTTL}
}

func (t *TokenService) IssueAccessToken(userID uint) (string, error) {
	return t.issue(userID, TokenTypeAccess, t.accessTTL)
}

func (t *TokenService) IssueRefreshToken(userID uint) (string, error) {
	return t.issue(userID, TokenTypeRefresh, refreshTokenTTL)
}

func (t *TokenService) issue(userID uint, tokenType string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  float64(userID),
		"type": tokenType,
		"exp":  time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify checks the signature, expiry and type discriminator and returns
// the subject user id.
func (t *TokenService) Verify(tokenString, wantType string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return t.secret, nil
	})

	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, ErrInvalidToken
	}

	if tokenType, _ := claims["type"].(string); tokenType != wantType {
		return 0, ErrInvalidToken
	}

	sub, ok := claims["sub"].(float64)
	if !ok || sub <= 0 {
		return 0, ErrInvalidToken
	}

	return uint(sub), nil
}
