package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"taskhub/internal/config"
	"taskhub/internal/errors"
	"taskhub/internal/model"
)

func testJWTService() *JWTService {
	return NewJWTService(&config.Config{
		JWTSecret:          "test-secret-key-for-testing",
		JWTAlgorithm:       "HS256",
		TokenExpireMinutes: 30,
	})
}

func testUser() *model.User {
	return &model.User{
		ID:       uuid.New(),
		Username: "testuser",
		Email:    "test@example.com",
		Role:     model.RoleUser,
	}
}

func TestIssueToken_ClaimsRoundTrip(t *testing.T) {
	svc := testJWTService()
	user := testUser()

	token, tokenType, err := svc.IssueToken(user)
	assert.NoError(t, err)
	assert.Equal(t, "bearer", tokenType)
	assert.NotEmpty(t, token)

	claims, err := svc.DecodeToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "testuser", claims.Username)
	assert.Equal(t, "user", claims.Role)
	assert.Equal(t, user.ID.String(), claims.UserUUID)
	assert.NotEmpty(t, claims.ID)

	// expiration is embedded in the signed payload
	assert.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), claims.ExpiresAt.Time, time.Minute)
}

func TestDecodeToken_Expired(t *testing.T) {
	svc := testJWTService()

	// sign an already-expired token with the service's secret
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Username: "testuser",
		Role:     "user",
		UserUUID: uuid.New().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	tokenString, err := expired.SignedString([]byte("test-secret-key-for-testing"))
	assert.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	assert.True(t, errors.IsAuthentication(err))
	assert.Contains(t, err.Error(), "expired")
}

func TestDecodeToken_TamperedSignature(t *testing.T) {
	svc := testJWTService()

	token, _, err := svc.IssueToken(testUser())
	assert.NoError(t, err)

	parts := strings.Split(token, ".")
	assert.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, err = svc.DecodeToken(tampered)
	assert.True(t, errors.IsAuthentication(err))
}

func TestDecodeToken_WrongSecret(t *testing.T) {
	other := NewJWTService(&config.Config{JWTSecret: "another-secret", TokenExpireMinutes: 30})
	token, _, err := other.IssueToken(testUser())
	assert.NoError(t, err)

	_, err = testJWTService().DecodeToken(token)
	assert.True(t, errors.IsAuthentication(err))
}

func TestDecodeToken_Malformed(t *testing.T) {
	svc := testJWTService()

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := svc.DecodeToken(garbage)
		assert.True(t, errors.IsAuthentication(err), "input %q", garbage)
	}
}

func TestDecodeToken_RejectsNonHMACMethod(t *testing.T) {
	svc := testJWTService()

	// alg=none style token must not pass the signing method check
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{Username: "testuser"})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = svc.DecodeToken(tokenString)
	assert.True(t, errors.IsAuthentication(err))
}
