/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package passport

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/trustbloc/logutil-go/pkg/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
)

var logger = log.New("passport-service")

const (
	hashCost = 10

	defaultExpiration = time.Hour
)

var (
	// ErrPassportNotFound is returned by a passport store when no passport exists for the email.
	ErrPassportNotFound = errors.New("passport not found")
	// ErrUnauthorized is returned when credentials or a token cannot be accepted.
	ErrUnauthorized = errors.New("unauthorized")
)

// Passport is a local login credential linked 1:1 to a ledger identity by email.
type Passport struct {
	Email     string    `json:"email" bson:"email"`
	FirstName string    `json:"firstName" bson:"firstName"`
	LastName  string    `json:"lastName" bson:"lastName"`
	Password  string    `json:"-" bson:"password"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Token is returned on successful login.
type Token struct {
	Token     string `json:"token"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

type passportStore interface {
	Find(ctx context.Context, email string) (*Passport, error)
	Create(ctx context.Context, p *Passport) error
	Delete(ctx context.Context, email string) error
}

type ServiceInterface interface {
	Upsert(ctx context.Context, email, firstName, lastName, password string) (*Passport, error)
	Delete(ctx context.Context, email string) error
	Get(ctx context.Context, email string) (*Passport, error)
	Login(ctx context.Context, email, password string) (*Token, error)
	ValidateToken(ctx context.Context, rawToken string) (string, error)
}

var _ ServiceInterface = (*Service)(nil)

// JWTConfig configures issued tokens.
type JWTConfig struct {
	Secret     string
	Expiration time.Duration
	Algorithm  string
	Issuer     string
	Audience   string
}

// Config holds the dependencies of the passport service.
type Config struct {
	Store passportStore
	JWT   JWTConfig
}

// Service manages passports and the tokens issued for them.
type Service struct {
	store     passportStore
	jwt       JWTConfig
	algorithm jose.SignatureAlgorithm
	now       func() time.Time
}

// New returns a new passport service.
func New(cfg *Config) (*Service, error) {
	alg := jose.SignatureAlgorithm(strings.ToUpper(cfg.JWT.Algorithm))

	switch alg {
	case "":
		alg = jose.HS256
	case jose.HS256, jose.HS384, jose.HS512:
	default:
		return nil, fmt.Errorf("unsupported JWT algorithm: %s", cfg.JWT.Algorithm)
	}

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT secret is required")
	}

	jwtCfg := cfg.JWT

	if jwtCfg.Expiration <= 0 {
		jwtCfg.Expiration = defaultExpiration
	}

	return &Service{
		store:     cfg.Store,
		jwt:       jwtCfg,
		algorithm: alg,
		now:       time.Now,
	}, nil
}

// Upsert removes any passport stored for the email and stores a fresh one with the given password.
func (s *Service) Upsert(ctx context.Context, email, firstName, lastName, password string) (*Passport, error) {
	if err := s.Delete(ctx, email); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := s.now().UTC()

	p := &Passport{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		Password:  string(hash),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err = s.store.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create passport: %w", err)
	}

	logger.Debugc(ctx, "Passport stored", logfields.WithEmail(email))

	return p, nil
}

// Delete removes the passport for the email. Deleting a missing passport is not an error.
func (s *Service) Delete(ctx context.Context, email string) error {
	if err := s.store.Delete(ctx, email); err != nil && !errors.Is(err, ErrPassportNotFound) {
		return fmt.Errorf("delete passport: %w", err)
	}

	return nil
}

// Get returns the passport for the email.
func (s *Service) Get(ctx context.Context, email string) (*Passport, error) {
	p, err := s.store.Find(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("find passport: %w", err)
	}

	return p, nil
}

// Login checks the password and issues a token for the passport.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	logger.Infoc(ctx, "Retrieving token for passport", logfields.WithEmail(email))

	p, err := s.store.Find(ctx, email)
	if err != nil {
		if errors.Is(err, ErrPassportNotFound) {
			return nil, fmt.Errorf("passport does not exist: %w", ErrUnauthorized)
		}

		return nil, fmt.Errorf("find passport: %w", err)
	}

	if err = bcrypt.CompareHashAndPassword([]byte(p.Password), []byte(password)); err != nil {
		return nil, fmt.Errorf("passport password is invalid: %w", ErrUnauthorized)
	}

	token, err := s.IssueToken(p)
	if err != nil {
		return nil, err
	}

	return &Token{
		Token:     token,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Email:     p.Email,
	}, nil
}

type privateClaims struct {
	ID string `json:"id"`
}

// IssueToken signs a JWT for the passport. The id claim carries the email, which is also the name of
// the ledger identity the holder connects as.
func (s *Service) IssueToken(p *Passport) (string, error) {
	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: s.algorithm, Key: []byte(s.jwt.Secret)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("create signer: %w", err)
	}

	now := s.now()

	claims := jwt.Claims{
		Subject:  p.Email,
		Issuer:   s.jwt.Issuer,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
	}

	if s.jwt.Audience != "" {
		claims.Audience = jwt.Audience{s.jwt.Audience}
	}

	token, err := jwt.Signed(signer).Claims(claims).Claims(privateClaims{ID: p.Email}).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return token, nil
}

// ValidateToken verifies the token and returns the identity name it was issued for. The token is only
// accepted while a passport for that identity still exists.
func (s *Service) ValidateToken(ctx context.Context, rawToken string) (string, error) {
	token, err := jwt.ParseSigned(rawToken)
	if err != nil {
		return "", fmt.Errorf("parse token: %w", ErrUnauthorized)
	}

	if len(token.Headers) != 1 || token.Headers[0].Algorithm != string(s.algorithm) {
		return "", fmt.Errorf("unexpected token algorithm: %w", ErrUnauthorized)
	}

	var (
		claims  jwt.Claims
		private privateClaims
	)

	if err = token.Claims([]byte(s.jwt.Secret), &claims, &private); err != nil {
		return "", fmt.Errorf("verify token: %w", ErrUnauthorized)
	}

	expected := jwt.Expected{
		Issuer: s.jwt.Issuer,
		Time:   s.now(),
	}

	if s.jwt.Audience != "" {
		expected.Audience = jwt.Audience{s.jwt.Audience}
	}

	if err = claims.ValidateWithLeeway(expected, 0); err != nil {
		return "", fmt.Errorf("validate token claims: %v: %w", err, ErrUnauthorized)
	}

	if private.ID == "" {
		return "", fmt.Errorf("token has no id claim: %w", ErrUnauthorized)
	}

	if _, err = s.store.Find(ctx, private.ID); err != nil {
		if errors.Is(err, ErrPassportNotFound) {
			return "", fmt.Errorf("passport does not exist: %w", ErrUnauthorized)
		}

		return "", fmt.Errorf("find passport: %w", err)
	}

	return private.ID, nil
}
