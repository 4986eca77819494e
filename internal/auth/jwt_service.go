package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"taskhub/internal/config"
	"taskhub/internal/errors"
	"taskhub/internal/model"
)

// TokenType is the scheme reported alongside every issued token.
const TokenType = "bearer"

// Claims is the signed identity assertion embedded in access tokens.
type Claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	UserUUID string `json:"user_uuid"`
	jwt.RegisteredClaims
}

// JWTService issues and decodes signed access tokens. The signing secret and
// token lifetime come from the config passed at construction; there is no
// ambient lookup.
type JWTService struct {
	secret   []byte
	lifetime time.Duration
}

// NewJWTService creates a JWT service from the process configuration.
func NewJWTService(cfg *config.Config) *JWTService {
	return &JWTService{
		secret:   []byte(cfg.JWTSecret),
		lifetime: time.Duration(cfg.TokenExpireMinutes) * time.Minute,
	}
}

// IssueToken signs an access token for the user. The expiration instant is
// embedded in the signed payload. Returns the token and its type ("bearer").
func (s *JWTService) IssueToken(user *model.User) (token string, tokenType string, err error) {
	now := time.Now()
	claims := &Claims{
		Username: user.Username,
		Role:     string(user.Role),
		UserUUID: user.ID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", "", err
	}
	return signed, TokenType, nil
}

// DecodeToken verifies signature and expiration and returns the claims.
// Every failure mode surfaces as an Authentication error; decoding never
// mutates state.
func (s *JWTService) DecodeToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, stderrors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, errors.NewAuthentication("token expired")
		}
		return nil, errors.NewAuthentication("invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.NewAuthentication("invalid token")
	}
	return claims, nil
}

// RemainingValidity returns how long the claims stay valid from now.
// Used to bound denylist entries to the token's natural expiry.
func (c *Claims) RemainingValidity() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	return time.Until(c.ExpiresAt.Time)
}
