/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package passport

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-jose/go-jose/v3"
	"github.com/go-jose/go-jose/v3/jwt"
	"github.com/stretchr/testify/require"
)

const (
	testSecret  = "0f6a3cbb8e1d4e52a7c1b9d0e2f34a5b6c7d8e9f0a1b2c3d4e5f60718293a4b5"
	otherSecret = "a4b5c6d7e8f90a1b2c3d4e5f60718293a4b5c6d7e8f90a1b2c3d4e5f6071829"
	testEmail   = "alice@example.com"
)

func TestNew(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		s, err := New(&Config{Store: newMockStore(), JWT: JWTConfig{Secret: testSecret}})
		require.NoError(t, err)
		require.Equal(t, jose.HS256, s.algorithm)
		require.Equal(t, time.Hour, s.jwt.Expiration)
	})

	t.Run("lower case algorithm", func(t *testing.T) {
		s, err := New(&Config{Store: newMockStore(), JWT: JWTConfig{Secret: testSecret, Algorithm: "hs512"}})
		require.NoError(t, err)
		require.Equal(t, jose.HS512, s.algorithm)
	})

	t.Run("unsupported algorithm", func(t *testing.T) {
		_, err := New(&Config{Store: newMockStore(), JWT: JWTConfig{Secret: testSecret, Algorithm: "RS256"}})
		require.ErrorContains(t, err, "unsupported JWT algorithm: RS256")
	})

	t.Run("missing secret", func(t *testing.T) {
		_, err := New(&Config{Store: newMockStore()})
		require.ErrorContains(t, err, "JWT secret is required")
	})
}

func TestService_Upsert(t *testing.T) {
	store := newMockStore()
	s := newService(t, store)

	p, err := s.Upsert(context.Background(), testEmail, "Alice", "Smith", "test")
	require.NoError(t, err)
	require.NotEqual(t, "test", p.Password)
	require.False(t, p.CreatedAt.IsZero())

	p2, err := s.Upsert(context.Background(), testEmail, "Alicia", "Smith", "other")
	require.NoError(t, err)
	require.Equal(t, "Alicia", p2.FirstName)

	require.Len(t, store.passports, 1)
	require.Equal(t, "Alicia", store.passports[testEmail].FirstName)

	t.Run("create error", func(t *testing.T) {
		store.createErr = errors.New("create error")
		defer func() { store.createErr = nil }()

		_, err := s.Upsert(context.Background(), "bob@example.com", "Bob", "Smith", "test")
		require.ErrorContains(t, err, "create passport: create error")
	})

	t.Run("delete error", func(t *testing.T) {
		store.deleteErr = errors.New("delete error")
		defer func() { store.deleteErr = nil }()

		_, err := s.Upsert(context.Background(), testEmail, "Alice", "Smith", "test")
		require.ErrorContains(t, err, "delete passport: delete error")
	})
}

func TestService_Delete(t *testing.T) {
	store := newMockStore()
	s := newService(t, store)

	_, err := s.Upsert(context.Background(), testEmail, "Alice", "Smith", "test")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), testEmail))
	require.Empty(t, store.passports)

	require.NoError(t, s.Delete(context.Background(), testEmail))

	_, err = s.Get(context.Background(), testEmail)
	require.ErrorIs(t, err, ErrPassportNotFound)
}

func TestService_Login(t *testing.T) {
	store := newMockStore()
	s := newService(t, store)

	_, err := s.Upsert(context.Background(), testEmail, "Alice", "Smith", "test")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		token, err := s.Login(context.Background(), testEmail, "test")
		require.NoError(t, err)
		require.Equal(t, "Alice", token.FirstName)
		require.Equal(t, "Smith", token.LastName)
		require.Equal(t, testEmail, token.Email)

		parsed, err := jwt.ParseSigned(token.Token)
		require.NoError(t, err)

		var (
			claims  jwt.Claims
			private privateClaims
		)

		require.NoError(t, parsed.Claims([]byte(testSecret), &claims, &private))
		require.Equal(t, testEmail, claims.Subject)
		require.Equal(t, testEmail, private.ID)
		require.Equal(t, "cargo-gateway", claims.Issuer)
		require.True(t, claims.Audience.Contains("cargo-clients"))
	})

	t.Run("passport does not exist", func(t *testing.T) {
		_, err := s.Login(context.Background(), "bob@example.com", "test")
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "passport does not exist")
	})

	t.Run("invalid password", func(t *testing.T) {
		_, err := s.Login(context.Background(), testEmail, "wrong")
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "passport password is invalid")
	})

	t.Run("store error", func(t *testing.T) {
		store.findErr = errors.New("find error")
		defer func() { store.findErr = nil }()

		_, err := s.Login(context.Background(), testEmail, "test")
		require.ErrorContains(t, err, "find passport: find error")
		require.NotErrorIs(t, err, ErrUnauthorized)
	})
}

func TestService_ValidateToken(t *testing.T) {
	store := newMockStore()
	s := newService(t, store)

	p, err := s.Upsert(context.Background(), testEmail, "Alice", "Smith", "test")
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		token, err := s.IssueToken(p)
		require.NoError(t, err)

		id, err := s.ValidateToken(context.Background(), token)
		require.NoError(t, err)
		require.Equal(t, testEmail, id)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := s.ValidateToken(context.Background(), "not-a-token")
		require.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other, err := New(&Config{Store: store, JWT: JWTConfig{
			Secret: otherSecret, Issuer: "cargo-gateway", Audience: "cargo-clients",
		}})
		require.NoError(t, err)

		token, err := other.IssueToken(p)
		require.NoError(t, err)

		_, err = s.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "verify token")
	})

	t.Run("wrong algorithm", func(t *testing.T) {
		other, err := New(&Config{Store: store, JWT: JWTConfig{
			Secret: testSecret, Algorithm: "HS384", Issuer: "cargo-gateway", Audience: "cargo-clients",
		}})
		require.NoError(t, err)

		token, err := other.IssueToken(p)
		require.NoError(t, err)

		_, err = s.ValidateToken(context.Background(), token)
		require.ErrorContains(t, err, "unexpected token algorithm")
	})

	t.Run("wrong audience", func(t *testing.T) {
		other, err := New(&Config{Store: store, JWT: JWTConfig{
			Secret: testSecret, Issuer: "cargo-gateway", Audience: "someone-else",
		}})
		require.NoError(t, err)

		token, err := other.IssueToken(p)
		require.NoError(t, err)

		_, err = s.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "validate token claims")
	})

	t.Run("expired", func(t *testing.T) {
		token, err := s.IssueToken(p)
		require.NoError(t, err)

		s.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
		defer func() { s.now = time.Now }()

		_, err = s.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "validate token claims")
	})

	t.Run("passport removed", func(t *testing.T) {
		token, err := s.IssueToken(&Passport{Email: "bob@example.com"})
		require.NoError(t, err)

		_, err = s.ValidateToken(context.Background(), token)
		require.ErrorIs(t, err, ErrUnauthorized)
		require.ErrorContains(t, err, "passport does not exist")
	})

	t.Run("store error", func(t *testing.T) {
		token, err := s.IssueToken(p)
		require.NoError(t, err)

		store.findErr = errors.New("find error")
		defer func() { store.findErr = nil }()

		_, err = s.ValidateToken(context.Background(), token)
		require.ErrorContains(t, err, "find passport: find error")
	})
}

func newService(t *testing.T, store passportStore) *Service {
	t.Helper()

	s, err := New(&Config{
		Store: store,
		JWT: JWTConfig{
			Secret:     testSecret,
			Expiration: time.Hour,
			Algorithm:  "HS256",
			Issuer:     "cargo-gateway",
			Audience:   "cargo-clients",
		},
	})
	require.NoError(t, err)

	return s
}

type mockStore struct {
	mutex     sync.Mutex
	passports map[string]*Passport
	findErr   error
	createErr error
	deleteErr error
}

func newMockStore() *mockStore {
	return &mockStore{passports: make(map[string]*Passport)}
}

func (m *mockStore) Find(_ context.Context, email string) (*Passport, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.findErr != nil {
		return nil, m.findErr
	}

	p, ok := m.passports[email]
	if !ok {
		return nil, ErrPassportNotFound
	}

	return p, nil
}

func (m *mockStore) Create(_ context.Context, p *Passport) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.createErr != nil {
		return m.createErr
	}

	m.passports[p.Email] = p

	return nil
}

func (m *mockStore) Delete(_ context.Context, email string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.deleteErr != nil {
		return m.deleteErr
	}

	if _, ok := m.passports[email]; !ok {
		return ErrPassportNotFound
	}

	delete(m.passports, email)

	return nil
}
