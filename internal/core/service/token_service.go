package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/saasdash/dashboard-api/internal/core/domain"
)

// ResetTokenTTL is the fixed lifetime of password-reset tokens.
const ResetTokenTTL = time.Hour

// TokenService issues and verifies HS256 bearer tokens. The secret and the
// session TTL are fixed at construction; rotating the secret invalidates
// every outstanding token.
type TokenService struct {
	secret     []byte
	sessionTTL time.Duration
}

// NewTokenService builds a TokenService. A non-positive ttl falls back to 7 days.
func NewTokenService(secret string, sessionTTL time.Duration) *TokenService {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), sessionTTL: sessionTTL}
}

// Issue signs a session token for the given subject.
func (s *TokenService) Issue(subjectID string) (string, error) {
	return s.issue(subjectID, s.sessionTTL)
}

// IssueReset signs a short-lived token for the password-reset flow.
func (s *TokenService) IssueReset(subjectID string) (string, error) {
	return s.issue(subjectID, ResetTokenTTL)
}

func (s *TokenService) issue(subjectID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject identifier.
// Signature and expiry failures are collapsed into ErrInvalidToken so the
// boundary can answer a uniform 401.
func (s *TokenService) Verify(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
