/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memledger

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/event/spi"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
)

const eventSource = "ledger://"

type changeNotification struct {
	Class string        `json:"$class"`
	Truck *ledger.Truck `json:"truck"`
}

type session struct {
	network  *Network
	identity string
	closed   atomic.Bool
}

func (s *session) Definition() ledger.NetworkDefinition {
	return s.network.definition
}

func (s *session) Registry(_ context.Context, kind ledger.Kind) (ledger.Registry, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	if _, ok := s.network.registries[kind]; !ok {
		return nil, fmt.Errorf("%w: unknown registry %q", ledger.ErrInvalidArgument, kind)
	}

	return &registry{session: s, kind: kind}, nil
}

func (s *session) Query(ctx context.Context, name string, params map[string]interface{}) ([]ledger.Resource, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	q, ok := s.network.definition.Queries[name]
	if !ok {
		return nil, fmt.Errorf("query %q: %w", name, ledger.ErrNotFound)
	}

	logger.Debugc(ctx, "Executing query", logfields.WithQueryName(name))

	n := s.network

	n.mu.Lock()
	defer n.mu.Unlock()

	all := n.sorted(q.Resource)

	switch name {
	case ledger.QuerySelectAllTrucksForDriver:
		driver, ok := params["driver"].(string)
		if !ok || driver == "" {
			return nil, fmt.Errorf("%w: query %s requires parameter \"driver\"", ledger.ErrInvalidArgument, name)
		}

		return lo.Filter(all, func(r ledger.Resource, _ int) bool {
			t := r.(*ledger.Truck) //nolint:errcheck

			return t.Driver != nil && t.Driver.URI() == driver
		}), nil
	default:
		return all, nil
	}
}

func (s *session) SubmitTransaction(ctx context.Context, tx ledger.Transaction) (*ledger.TransactionResult, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	switch t := tx.(type) {
	case *ledger.ChangeTruckDriver:
		return s.network.changeTruckDriver(ctx, t)
	default:
		return nil, fmt.Errorf("%w: unsupported transaction %s", ledger.ErrInvalidArgument, tx.Class())
	}
}

func (n *Network) changeTruckDriver(ctx context.Context, tx *ledger.ChangeTruckDriver) (*ledger.TransactionResult, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	r, ok := n.registries[ledger.KindTruck][tx.Truck.ID]
	if !ok {
		return nil, fmt.Errorf("truck %q: %w", tx.Truck.ID, ledger.ErrNotFound)
	}

	if _, ok = n.registries[ledger.KindDriver][tx.Driver.ID]; !ok {
		return nil, fmt.Errorf("driver %q: %w", tx.Driver.ID, ledger.ErrNotFound)
	}

	previous := r.(*ledger.Truck) //nolint:errcheck

	truck := previous.Clone()
	driver := tx.Driver
	truck.Driver = &driver

	n.registries[ledger.KindTruck][truck.ID] = truck

	result := &ledger.TransactionResult{
		TransactionID: uuid.NewString(),
		Timestamp:     n.now().UTC(),
	}

	if err := n.emit(ctx, result.TransactionID, truck); err != nil {
		n.registries[ledger.KindTruck][truck.ID] = previous

		return nil, fmt.Errorf("emit change notification: %w", err)
	}

	logger.Infoc(ctx, "Truck driver changed",
		logfields.WithTransactionID(result.TransactionID),
		logfields.WithEntityID(truck.ID),
		log.WithID(driver.ID))

	return result, nil
}

func (n *Network) emit(ctx context.Context, txID string, truck *ledger.Truck) error {
	if n.publisher == nil {
		return nil
	}

	payload, err := json.Marshal(&changeNotification{
		Class: ledger.ChangeNotificationClass,
		Truck: truck,
	})
	if err != nil {
		return err
	}

	event := spi.NewEventWithPayload(txID+"#0", eventSource+n.definition.Name, spi.ChangeNotification, payload)
	event.TransactionID = txID
	event.Subject = ledger.NewRelationship(ledger.KindTruck, truck.ID).URI()

	return n.publisher.Publish(ctx, spi.LedgerEventTopic, event)
}

func (s *session) IssueIdentity(
	ctx context.Context,
	participant ledger.Relationship,
	userID string,
) (*ledger.IssuedIdentity, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ledger.ErrInvalidArgument)
	}

	n := s.network

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.registries[participant.Kind][participant.ID]; !ok || !participant.Kind.IsParticipant() {
		return nil, fmt.Errorf("participant %s: %w", participant.URI(), ledger.ErrNotFound)
	}

	if n.activeIdentity(userID) != nil {
		return nil, fmt.Errorf("identity %q: %w", userID, ledger.ErrAlreadyExists)
	}

	secret, err := newSecret()
	if err != nil {
		return nil, err
	}

	issuer := n.identities[s.identity]

	n.addIdentity(&identityRecord{
		Identity: ledger.Identity{
			IdentityID:  uuid.NewString(),
			Name:        userID,
			Issuer:      issuer.Name,
			State:       ledger.IdentityIssued,
			Participant: participant.URI(),
			IssuedAt:    n.now().UTC(),
		},
		secret: secret,
	})

	logger.Infoc(ctx, "Identity issued", logfields.WithIdentity(userID), log.WithID(participant.URI()))

	return &ledger.IssuedIdentity{UserID: userID, UserSecret: secret}, nil
}

func (s *session) GetIdentity(_ context.Context, name string) (*ledger.Identity, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	n := s.network

	n.mu.Lock()
	defer n.mu.Unlock()

	if rec := n.activeIdentity(name); rec != nil {
		identity := rec.Identity

		return &identity, nil
	}

	for _, rec := range n.identities {
		if rec.Name == name {
			identity := rec.Identity

			return &identity, nil
		}
	}

	return nil, fmt.Errorf("identity %q: %w", name, ledger.ErrNotFound)
}

func (s *session) RevokeIdentity(ctx context.Context, identityID string) error {
	if err := s.check(); err != nil {
		return err
	}

	n := s.network

	n.mu.Lock()
	defer n.mu.Unlock()

	rec, ok := n.identities[identityID]
	if !ok {
		return fmt.Errorf("identity %q: %w", identityID, ledger.ErrNotFound)
	}

	if rec.State == ledger.IdentityRevoked {
		return fmt.Errorf("%w: identity %q is already revoked", ledger.ErrInvalidArgument, identityID)
	}

	rec.State = ledger.IdentityRevoked

	logger.Infoc(ctx, "Identity revoked", logfields.WithIdentity(rec.Name), log.WithID(identityID))

	return nil
}

func (s *session) Disconnect(_ context.Context) error {
	s.closed.Store(true)

	return nil
}

func (s *session) check() error {
	if s.closed.Load() {
		return fmt.Errorf("%w: session is closed", ledger.ErrConnection)
	}

	n := s.network

	n.mu.Lock()
	defer n.mu.Unlock()

	if rec, ok := n.identities[s.identity]; !ok || rec.State == ledger.IdentityRevoked {
		return fmt.Errorf("%w: identity has been revoked", ledger.ErrConnection)
	}

	return nil
}

// sorted returns copies of all resources of a kind ordered by identifier. The caller holds the lock.
func (n *Network) sorted(kind ledger.Kind) []ledger.Resource {
	ids := lo.Keys(n.registries[kind])
	sort.Strings(ids)

	return lo.Map(ids, func(id string, _ int) ledger.Resource {
		return ledger.CloneResource(n.registries[kind][id])
	})
}
