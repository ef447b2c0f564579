/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memledger

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/event/spi"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
)

var logger = log.New("memledger")

const (
	// DefaultNetworkName is the name of the business network deployed by default.
	DefaultNetworkName = "cargo-network"
	// DefaultVersion is the business network version reported by default.
	DefaultVersion = "0.0.1"

	networkAdminParticipant = "resource:org.hyperledger.composer.system.NetworkAdmin#"
	secretLength            = 12
)

type eventPublisher interface {
	Publish(ctx context.Context, topic string, messages ...*spi.Event) error
}

type identityRecord struct {
	ledger.Identity
	secret      string
	certificate string
}

// Network is an in-process ledger network holding the cargo business network world state
// and its identity registry. State transitions are serialized.
type Network struct {
	mu         sync.Mutex
	definition ledger.NetworkDefinition
	registries map[ledger.Kind]map[string]ledger.Resource
	identities map[string]*identityRecord
	publisher  eventPublisher
	now        func() time.Time
}

// Opt configures the network.
type Opt func(n *Network)

// WithNetworkName sets the business network name cards must target.
func WithNetworkName(name string) Opt {
	return func(n *Network) {
		n.definition.Name = name
	}
}

// WithVersion sets the business network version.
func WithVersion(version string) Opt {
	return func(n *Network) {
		n.definition.Version = version
	}
}

// WithPublisher sets the publisher of events emitted by transactions.
func WithPublisher(p eventPublisher) Opt {
	return func(n *Network) {
		n.publisher = p
	}
}

// WithBootstrapIdentity registers a network admin identity enrolled with the given secret.
func WithBootstrapIdentity(name, secret string) Opt {
	return func(n *Network) {
		n.addIdentity(&identityRecord{
			Identity: ledger.Identity{
				IdentityID:  uuid.NewString(),
				Name:        name,
				Issuer:      name,
				State:       ledger.IdentityIssued,
				Participant: networkAdminParticipant + name,
				IssuedAt:    n.now(),
			},
			secret: secret,
		})
	}
}

// New returns a new in-process network.
func New(opts ...Opt) *Network {
	n := &Network{
		definition: ledger.NetworkDefinition{
			Name:      DefaultNetworkName,
			Version:   DefaultVersion,
			Namespace: ledger.Namespace,
			Queries:   ledger.DefaultQueries(),
		},
		registries: make(map[ledger.Kind]map[string]ledger.Resource),
		identities: make(map[string]*identityRecord),
		now:        time.Now,
	}

	for _, k := range ledger.Kinds {
		n.registries[k] = make(map[string]ledger.Resource)
	}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// Definition returns the deployed business network definition.
func (n *Network) Definition() ledger.NetworkDefinition {
	return n.definition
}

// Connect opens a session authenticated by the identity of the given card.
func (n *Network) Connect(ctx context.Context, c *card.Card) (ledger.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ledger.ErrConnection, err)
	}

	if c == nil {
		return nil, fmt.Errorf("%w: card is required", ledger.ErrConnection)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: invalid card: %v", ledger.ErrConnection, err)
	}

	if c.Metadata.BusinessNetwork != n.definition.Name {
		return nil, fmt.Errorf("%w: business network %q is not deployed",
			ledger.ErrConnection, c.Metadata.BusinessNetwork)
	}

	n.mu.Lock()
	defer n.mu.Unlock()

	rec := n.activeIdentity(c.Metadata.UserName)
	if rec == nil {
		return nil, fmt.Errorf("%w: identity %q is not registered or has been revoked",
			ledger.ErrConnection, c.Metadata.UserName)
	}

	switch {
	case c.Credentials != nil && c.Credentials.Certificate != "" && c.Credentials.Certificate == rec.certificate:
	case c.Metadata.EnrollmentSecret != "" && c.Metadata.EnrollmentSecret == rec.secret:
		if rec.State == ledger.IdentityIssued {
			rec.State = ledger.IdentityActivated
		}
	default:
		return nil, fmt.Errorf("%w: identity %q failed to authenticate", ledger.ErrConnection, c.Metadata.UserName)
	}

	logger.Debugc(ctx, "Session opened",
		logfields.WithIdentity(rec.Name), logfields.WithBusinessNetwork(n.definition.Name))

	return &session{network: n, identity: rec.IdentityID}, nil
}

func (n *Network) addIdentity(rec *identityRecord) {
	n.identities[rec.IdentityID] = rec
}

func (n *Network) activeIdentity(name string) *identityRecord {
	for _, rec := range n.identities {
		if rec.Name == name && rec.State != ledger.IdentityRevoked {
			return rec
		}
	}

	return nil
}

func newSecret() (string, error) {
	b := make([]byte, secretLength)

	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate enrollment secret: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(b), nil
}
