/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package memledger

import (
	"context"
	"fmt"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
)

type registry struct {
	session *session
	kind    ledger.Kind
}

func (r *registry) Kind() ledger.Kind {
	return r.kind
}

func (r *registry) GetAll(_ context.Context) ([]ledger.Resource, error) {
	if err := r.session.check(); err != nil {
		return nil, err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	return n.sorted(r.kind), nil
}

func (r *registry) Get(_ context.Context, id string) (ledger.Resource, error) {
	if err := r.session.check(); err != nil {
		return nil, err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	res, ok := n.registries[r.kind][id]
	if !ok {
		return nil, r.notFound(id)
	}

	return ledger.CloneResource(res), nil
}

func (r *registry) Exists(_ context.Context, id string) (bool, error) {
	if err := r.session.check(); err != nil {
		return false, err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	_, ok := n.registries[r.kind][id]

	return ok, nil
}

func (r *registry) Add(ctx context.Context, res ledger.Resource) error {
	if err := r.session.check(); err != nil {
		return err
	}

	if err := r.validate(res); err != nil {
		return err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.registries[r.kind][res.Identifier()]; ok {
		return fmt.Errorf("%s %q: %w", r.kind, res.Identifier(), ledger.ErrAlreadyExists)
	}

	n.registries[r.kind][res.Identifier()] = ledger.CloneResource(res)

	logger.Debugc(ctx, "Resource added", logfields.WithKind(string(r.kind)), logfields.WithEntityID(res.Identifier()))

	return nil
}

func (r *registry) Update(ctx context.Context, res ledger.Resource) error {
	if err := r.session.check(); err != nil {
		return err
	}

	if err := r.validate(res); err != nil {
		return err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.registries[r.kind][res.Identifier()]; !ok {
		return r.notFound(res.Identifier())
	}

	n.registries[r.kind][res.Identifier()] = ledger.CloneResource(res)

	logger.Debugc(ctx, "Resource updated", logfields.WithKind(string(r.kind)), logfields.WithEntityID(res.Identifier()))

	return nil
}

func (r *registry) Remove(ctx context.Context, id string) error {
	if err := r.session.check(); err != nil {
		return err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	if _, ok := n.registries[r.kind][id]; !ok {
		return r.notFound(id)
	}

	delete(n.registries[r.kind], id)

	logger.Debugc(ctx, "Resource removed", logfields.WithKind(string(r.kind)), logfields.WithEntityID(id))

	return nil
}

func (r *registry) ResolveAll(_ context.Context) ([]interface{}, error) {
	if err := r.session.check(); err != nil {
		return nil, err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	all := n.sorted(r.kind)
	result := make([]interface{}, 0, len(all))

	for _, res := range all {
		resolved, err := n.resolve(res)
		if err != nil {
			return nil, err
		}

		result = append(result, resolved)
	}

	return result, nil
}

func (r *registry) Resolve(_ context.Context, id string) (interface{}, error) {
	if err := r.session.check(); err != nil {
		return nil, err
	}

	n := r.session.network

	n.mu.Lock()
	defer n.mu.Unlock()

	res, ok := n.registries[r.kind][id]
	if !ok {
		return nil, r.notFound(id)
	}

	return n.resolve(ledger.CloneResource(res))
}

func (r *registry) validate(res ledger.Resource) error {
	if res == nil || res.Kind() != r.kind {
		return fmt.Errorf("%w: registry %s cannot hold %T", ledger.ErrInvalidArgument, r.kind, res)
	}

	if res.Identifier() == "" {
		return fmt.Errorf("%w: %s identifier is required", ledger.ErrInvalidArgument, r.kind)
	}

	return nil
}

func (r *registry) notFound(id string) error {
	return fmt.Errorf("%s %q: %w", r.kind, id, ledger.ErrNotFound)
}

// resolve replaces the relationships of a resource with copies of the referenced resources.
// The caller holds the lock.
func (n *Network) resolve(res ledger.Resource) (interface{}, error) {
	t, ok := res.(*ledger.Truck)
	if !ok {
		return res, nil
	}

	resolved := &ledger.ResolvedTruck{
		ID:    t.ID,
		Code:  t.Code,
		Cargo: make([]*ledger.Cargo, 0, len(t.Cargo)),
	}

	if t.Driver != nil {
		d, err := n.lookup(*t.Driver)
		if err != nil {
			return nil, err
		}

		resolved.Driver = d.(*ledger.Driver) //nolint:errcheck
	}

	for _, rel := range t.Cargo {
		c, err := n.lookup(rel)
		if err != nil {
			return nil, err
		}

		resolved.Cargo = append(resolved.Cargo, c.(*ledger.Cargo)) //nolint:errcheck
	}

	return resolved, nil
}

func (n *Network) lookup(rel ledger.Relationship) (ledger.Resource, error) {
	res, ok := n.registries[rel.Kind][rel.ID]
	if !ok {
		return nil, fmt.Errorf("resolve %s: %w", rel.URI(), ledger.ErrDanglingRelationship)
	}

	return ledger.CloneResource(res), nil
}
