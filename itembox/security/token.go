package security

import (
	"errors"
	"fmt"
	"itembox/itembox/utils/apperrors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTokenTTL = 15 * time.Minute

// Claims is the token payload: registered claims plus the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
}

type TokenPair struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenManager issues and verifies stateless HMAC-signed bearer tokens.
type TokenManager struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenManager(secret, algorithm string, ttl time.Duration) (*TokenManager, error) {
	if secret == "" {
		return nil, errors.New("token secret is empty")
	}
	method := jwt.GetSigningMethod(strings.ToUpper(algorithm))
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", algorithm)
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenManager{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (m *TokenManager) TTL() time.Duration {
	return m.ttl
}

// Issue signs claims with exp = now + ttl. A zero ttl yields a token that is
// already expired.
func (m *TokenManager) Issue(claims Claims, ttl time.Duration) (string, error) {
	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token subject is empty", apperrors.ErrValidation)
	}
	now := m.now()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	claims.ID = uuid.NewString()

	return jwt.NewWithClaims(m.method, claims).SignedString(m.secret)
}

// IssueAccess issues an access token for a user with the configured TTL.
func (m *TokenManager) IssueAccess(userID int, email string) (TokenPair, error) {
	token, err := m.Issue(Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: strconv.Itoa(userID)},
		Email:            email,
	}, m.ttl)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: token, TokenType: "bearer"}, nil
}

// Verify checks signature, algorithm and expiry. Every failure is reported as
// apperrors.ErrAuth.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrAuth, err)
	}
	if !token.Valid {
		return nil, apperrors.ErrAuth
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", apperrors.ErrAuth)
	}
	return claims, nil
}

// UserID returns the subject as a user id.
func (c *Claims) UserID() (int, error) {
	id, err := strconv.Atoi(c.Subject)
	if err != nil {
		return 0, fmt.Errorf("%w: malformed subject", apperrors.ErrAuth)
	}
	return id, nil
}
