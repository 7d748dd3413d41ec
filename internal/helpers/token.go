package helpers

import (
	"errors"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// TokenManager signs and verifies bearer tokens.
type TokenManager interface {
	IssueToken(userID, email string) (*IssuedToken, error)
	ValidateToken(token string) (*CustomClaims, error)
}

type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	TTL       time.Duration
}

type JWTOptions struct {
	KeyID  string
	Secret string
	// PreviousSecrets maps retired key ids to secrets that are still accepted.
	PreviousSecrets map[string]string
	Issuer          string
	TTL             time.Duration
}

// JWTManager issues HS256 tokens under the current key id and verifies tokens
// signed with the current or any previous key.
type JWTManager struct {
	keyID  string
	secret []byte
	issuer string
	ttl    time.Duration
	jwks   *keyfunc.JWKS
	now    func() time.Time
}

func NewJWTManager(opts JWTOptions) *JWTManager {
	given := make(map[string]keyfunc.GivenKey, len(opts.PreviousSecrets)+1)
	for kid, secret := range opts.PreviousSecrets {
		given[kid] = keyfunc.NewGivenHMAC([]byte(secret), keyfunc.GivenKeyOptions{Algorithm: jwt.SigningMethodHS256.Alg()})
	}
	given[opts.KeyID] = keyfunc.NewGivenHMAC([]byte(opts.Secret), keyfunc.GivenKeyOptions{Algorithm: jwt.SigningMethodHS256.Alg()})

	return &JWTManager{
		keyID:  opts.KeyID,
		secret: []byte(opts.Secret),
		issuer: opts.Issuer,
		ttl:    opts.TTL,
		jwks:   keyfunc.NewGiven(given),
		now:    time.Now,
	}
}

func (m *JWTManager) IssueToken(userID, email string) (*IssuedToken, error) {
	if userID == "" {
		return nil, errors.New("user id is required")
	}

	now := m.now()
	expiresAt := now.Add(m.ttl)
	claims := CustomClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    m.issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = m.keyID

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &IssuedToken{Token: signed, ExpiresAt: expiresAt, TTL: m.ttl}, nil
}

func (m *JWTManager) ValidateToken(tokenStr string) (*CustomClaims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)

	token, err := parser.ParseWithClaims(tokenStr, &CustomClaims{}, m.jwks.Keyfunc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*CustomClaims)
	if !ok || !token.Valid || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
