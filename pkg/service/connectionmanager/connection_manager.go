/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package connectionmanager

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics/noop"
)

var logger = log.New("connection-manager")

const (
	// DefaultRetryAttempts is the number of bootstrap connection attempts.
	DefaultRetryAttempts = 5
	// DefaultRetryDelay is the delay between bootstrap connection attempts.
	DefaultRetryDelay = 30 * time.Second
)

// Config holds the configuration of the connection manager.
type Config struct {
	CardStore card.Store
	Network   ledger.Network
	// BusinessNetwork is the name of the business network written into imported cards.
	BusinessNetwork string
	// ConnectionProfile is the network-wide profile written into imported cards.
	ConnectionProfile *card.ConnectionProfile
	Metrics           metrics.Metrics
	RetryAttempts     int
	RetryDelay        time.Duration
}

// Manager opens identity-scoped ledger connections and imports identity cards.
type Manager struct {
	store           card.Store
	network         ledger.Network
	businessNetwork string
	profile         *card.ConnectionProfile
	metrics         metrics.Metrics
	retryAttempts   int
	retryDelay      time.Duration
}

// Connection is a ledger session opened for the duration of a single request.
type Connection struct {
	Session    ledger.Session
	Definition ledger.NetworkDefinition
	Factory    *ledger.Factory
	Identity   string
}

// Close disconnects the underlying session.
func (c *Connection) Close(ctx context.Context) error {
	if err := c.Session.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect %q: %w", c.Identity, err)
	}

	return nil
}

// New returns a new connection manager.
func New(cfg *Config) (*Manager, error) {
	if cfg.CardStore == nil {
		return nil, errors.New("card store is required")
	}

	if cfg.Network == nil {
		return nil, errors.New("ledger network is required")
	}

	if cfg.BusinessNetwork == "" {
		return nil, errors.New("business network name is required")
	}

	m := &Manager{
		store:           cfg.CardStore,
		network:         cfg.Network,
		businessNetwork: cfg.BusinessNetwork,
		profile:         cfg.ConnectionProfile,
		metrics:         cfg.Metrics,
		retryAttempts:   cfg.RetryAttempts,
		retryDelay:      cfg.RetryDelay,
	}

	if m.profile == nil {
		m.profile = card.DefaultConnectionProfile()
	}

	if m.metrics == nil {
		m.metrics = noop.GetMetrics()
	}

	if m.retryAttempts <= 0 {
		m.retryAttempts = DefaultRetryAttempts
	}

	if m.retryDelay <= 0 {
		m.retryDelay = DefaultRetryDelay
	}

	return m, nil
}

// CreateConnection opens a new session authenticated with the card of the given identity.
// It never falls back to another identity.
func (m *Manager) CreateConnection(ctx context.Context, identityName string) (*Connection, error) {
	name := strings.TrimSpace(identityName)

	c, err := m.store.Get(ctx, name)
	if err != nil {
		m.metrics.ConnectionFailed()

		return nil, fmt.Errorf("%w: card %q: %w", ledger.ErrConnection, name, err)
	}

	start := time.Now()

	session, err := m.network.Connect(ctx, c)
	if err != nil {
		m.metrics.ConnectionFailed()

		if errors.Is(err, ledger.ErrConnection) {
			return nil, err
		}

		return nil, fmt.Errorf("%w: connect %q: %w", ledger.ErrConnection, name, err)
	}

	m.metrics.LedgerOperationTime("connect", time.Since(start))

	def := session.Definition()

	factory, err := ledger.NewFactory(def)
	if err != nil {
		_ = session.Disconnect(ctx) //nolint:errcheck

		m.metrics.ConnectionFailed()

		return nil, fmt.Errorf("%w: business network %s: %w", ledger.ErrConnection, def.Name, err)
	}

	m.metrics.ConnectionOpened()

	logger.Debugc(ctx, "Connection opened", logfields.WithIdentity(name), logfields.WithBusinessNetwork(def.Name))

	return &Connection{
		Session:    session,
		Definition: def,
		Factory:    factory,
		Identity:   name,
	}, nil
}

// ImportNewCard builds a card for a freshly issued identity and stores it under the trimmed user id.
func (m *Manager) ImportNewCard(ctx context.Context, userID, enrollmentSecret string) error {
	c := card.New(userID, m.businessNetwork, enrollmentSecret, m.profile.Clone())

	return m.ImportCard(ctx, userID, c)
}

// ImportCard stores a pre-built card under the trimmed user id, replacing any previous card.
func (m *Manager) ImportCard(ctx context.Context, userID string, c *card.Card) error {
	name := strings.TrimSpace(userID)
	if name == "" {
		return fmt.Errorf("%w: user id is required", ledger.ErrInvalidArgument)
	}

	if c == nil {
		return fmt.Errorf("%w: card is required", ledger.ErrInvalidArgument)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("%w: card %q: %w", ledger.ErrInvalidArgument, name, err)
	}

	if err := m.store.Put(ctx, name, c); err != nil {
		return fmt.Errorf("put card %q: %w", name, err)
	}

	logger.Infoc(ctx, "Card imported", logfields.WithCardName(name), logfields.WithBusinessNetwork(c.Metadata.BusinessNetwork))

	return nil
}

// ConnectWithRetry opens the bootstrap connection, retrying with a constant delay.
// The last error is returned once every attempt has failed.
func (m *Manager) ConnectWithRetry(ctx context.Context, identityName string) (*Connection, error) {
	var (
		conn    *Connection
		attempt int
	)

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(m.retryDelay), uint64(m.retryAttempts-1)),
		ctx,
	)

	err := backoff.RetryNotify(
		func() error {
			attempt++

			m.metrics.BootstrapAttempt()

			var err error

			conn, err = m.CreateConnection(ctx, identityName)

			return err
		},
		b,
		func(retryErr error, sleep time.Duration) {
			logger.Warnc(ctx, "Failed to connect to ledger network, will sleep before trying again.",
				logfields.WithIdentity(identityName),
				logfields.WithAttempt(attempt),
				logfields.WithSleep(sleep),
				log.WithError(retryErr))
		},
	)
	if err != nil {
		return nil, fmt.Errorf("connect %q after %d attempts: %w", identityName, attempt, err)
	}

	logger.Infoc(ctx, "Bootstrap connection established",
		logfields.WithIdentity(identityName), logfields.WithAttempt(attempt))

	return conn, nil
}
