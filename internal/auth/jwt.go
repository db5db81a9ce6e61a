// Package auth resolves the calling user from a bearer token and carries it
// through the request context.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrUnauthenticated is returned when a request has no usable identity.
var ErrUnauthenticated = errors.New("unauthenticated")

// Config holds the HS256 signing settings.
type Config struct {
	Secret     string        `yaml:"secret" mapstructure:"secret"`
	Issuer     string        `yaml:"issuer" mapstructure:"issuer"`
	Expiration time.Duration `yaml:"expiration" mapstructure:"expiration"`
}

// Claims are the token claims for a portal user. The subject is the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Identity is the authenticated user a request acts for.
type Identity struct {
	UserID uuid.UUID
	Email  string
	Name   string
}

// Verifier validates bearer tokens.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier returns a verifier for tokens signed with cfg.Secret.
func NewVerifier(cfg Config) (*Verifier, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt configuration requires a secret")
	}
	return &Verifier{secret: []byte(cfg.Secret), issuer: cfg.Issuer}, nil
}

// Verify parses the token and returns the identity in it.
func (v *Verifier) Verify(tokenString string) (Identity, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, fmt.Errorf("%w: failed to parse token: %v", ErrUnauthenticated, err)
	}
	if !token.Valid {
		return Identity{}, fmt.Errorf("%w: invalid token", ErrUnauthenticated)
	}
	if v.issuer != "" && claims.Issuer != v.issuer {
		return Identity{}, fmt.Errorf("%w: invalid issuer: got %q, want %q", ErrUnauthenticated, claims.Issuer, v.issuer)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject is not a user id: %v", ErrUnauthenticated, err)
	}
	return Identity{UserID: userID, Email: claims.Email, Name: claims.Name}, nil
}

// Issuer signs tokens. The server only verifies them; tokens come from the
// identity provider sharing the secret.
type Issuer struct {
	cfg Config
}

// NewIssuer returns an issuer signing with cfg.Secret. A zero expiration means
// one hour.
func NewIssuer(cfg Config) (*Issuer, error) {
	if cfg.Secret == "" {
		return nil, fmt.Errorf("jwt configuration requires a secret")
	}
	if cfg.Expiration == 0 {
		cfg.Expiration = time.Hour
	}
	return &Issuer{cfg: cfg}, nil
}

// Issue signs a token for id.
func (i *Issuer) Issue(id Identity, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    i.cfg.Issuer,
			Subject:   id.UserID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.cfg.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        uuid.New().String(),
		},
		Email: id.Email,
		Name:  id.Name,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(i.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
