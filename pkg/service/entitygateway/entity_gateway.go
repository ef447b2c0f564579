/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package entitygateway

import (
	"context"
	"fmt"
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics/noop"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
)

var logger = log.New("entity-gateway")

var _ ServiceInterface = (*Service)(nil)

type Config struct {
	ConnectionManager connectionCreator
	Metrics           metrics.Metrics
}

// Service performs CRUD operations, named queries and transactions on the cargo business network
// on behalf of an identity. Every call opens its own connection and closes it before returning.
type Service struct {
	connections connectionCreator
	metrics     metrics.Metrics
}

func New(cfg *Config) *Service {
	m := cfg.Metrics
	if m == nil {
		m = noop.GetMetrics()
	}

	return &Service{
		connections: cfg.ConnectionManager,
		metrics:     m,
	}
}

func (s *Service) List(ctx context.Context, identity string, kind ledger.Kind, resolve bool) ([]interface{}, error) {
	var result []interface{}

	err := s.withRegistry(ctx, identity, "List", kind, func(_ *connectionmanager.Connection, r ledger.Registry) error {
		if resolve {
			all, err := r.ResolveAll(ctx)
			if err != nil {
				return fmt.Errorf("resolve all %s: %w", kind, err)
			}

			result = all

			return nil
		}

		all, err := r.GetAll(ctx)
		if err != nil {
			return fmt.Errorf("get all %s: %w", kind, err)
		}

		result = make([]interface{}, 0, len(all))
		for _, res := range all {
			result = append(result, res)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *Service) Get(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	id string,
	resolve bool,
) (interface{}, error) {
	var result interface{}

	err := s.withRegistry(ctx, identity, "Get", kind, func(_ *connectionmanager.Connection, r ledger.Registry) error {
		var err error

		if resolve {
			result, err = r.Resolve(ctx, id)
		} else {
			result, err = r.Get(ctx, id)
		}

		if err != nil {
			return fmt.Errorf("get %s %q: %w", kind, id, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Create adds a new resource built from the payload. The existing resource is left untouched
// when the identifier is already taken.
func (s *Service) Create(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	payload []byte,
) (ledger.Resource, error) {
	var created ledger.Resource

	err := s.withRegistry(ctx, identity, "Create", kind, func(conn *connectionmanager.Connection, r ledger.Registry) error {
		res, err := conn.Factory.Create(kind, payload)
		if err != nil {
			return err
		}

		if err = ensureAbsent(ctx, r, res.Identifier()); err != nil {
			return err
		}

		if err = r.Add(ctx, res); err != nil {
			return fmt.Errorf("add %s %q: %w", kind, res.Identifier(), err)
		}

		logger.Infoc(ctx, "Resource created",
			logfields.WithKind(string(kind)), logfields.WithEntityID(res.Identifier()), logfields.WithIdentity(identity))

		created = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Update overwrites the fields of an existing resource with the payload. The identifier in the
// payload is ignored.
func (s *Service) Update(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	id string,
	payload []byte,
) (ledger.Resource, error) {
	var updated ledger.Resource

	err := s.withRegistry(ctx, identity, "Update", kind, func(conn *connectionmanager.Connection, r ledger.Registry) error {
		existing, err := r.Get(ctx, id)
		if err != nil {
			return fmt.Errorf("get %s %q: %w", kind, id, err)
		}

		res, err := conn.Factory.Edit(existing, payload)
		if err != nil {
			return err
		}

		if err = r.Update(ctx, res); err != nil {
			return fmt.Errorf("update %s %q: %w", kind, id, err)
		}

		logger.Infoc(ctx, "Resource updated",
			logfields.WithKind(string(kind)), logfields.WithEntityID(id), logfields.WithIdentity(identity))

		updated = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *Service) Delete(ctx context.Context, identity string, kind ledger.Kind, id string) (*Deleted, error) {
	err := s.withRegistry(ctx, identity, "Delete", kind, func(_ *connectionmanager.Connection, r ledger.Registry) error {
		if err := r.Remove(ctx, id); err != nil {
			return fmt.Errorf("remove %s %q: %w", kind, id, err)
		}

		logger.Infoc(ctx, "Resource removed",
			logfields.WithKind(string(kind)), logfields.WithEntityID(id), logfields.WithIdentity(identity))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Deleted{ID: id}, nil
}

// Query executes a named query declared by the business network. Entity-valued parameters may be
// given either as identifiers or as resource URIs.
func (s *Service) Query(
	ctx context.Context,
	identity, name string,
	params map[string]string,
) ([]ledger.Resource, error) {
	var result []ledger.Resource

	err := s.withConnection(ctx, identity, "Query", func(conn *connectionmanager.Connection) error {
		q, ok := conn.Definition.Queries[name]
		if !ok {
			return fmt.Errorf("query %q: %w", name, ledger.ErrNotFound)
		}

		bound, err := q.BindParams(params)
		if err != nil {
			return err
		}

		result, err = conn.Session.Query(ctx, name, bound)
		if err != nil {
			return fmt.Errorf("query %q: %w", name, err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ChangeDriver submits the ChangeTruckDriver transaction reassigning the driver of a truck.
func (s *Service) ChangeDriver(
	ctx context.Context,
	identity, truckID string,
	payload *ledger.ChangeDriverPayload,
) (*ledger.TransactionResult, error) {
	var result *ledger.TransactionResult

	err := s.withConnection(ctx, identity, "ChangeDriver", func(conn *connectionmanager.Connection) error {
		trucks, err := conn.Session.Registry(ctx, ledger.KindTruck)
		if err != nil {
			return err
		}

		exists, err := trucks.Exists(ctx, truckID)
		if err != nil {
			return fmt.Errorf("check truck %q: %w", truckID, err)
		}

		if !exists {
			return fmt.Errorf("truck %q: %w", truckID, ledger.ErrNotFound)
		}

		result, err = conn.Session.SubmitTransaction(ctx, conn.Factory.NewChangeTruckDriver(truckID, payload))
		if err != nil {
			return fmt.Errorf("submit %s: %w", ledger.ChangeTruckDriverClass, err)
		}

		s.metrics.ChangeDriverSubmitted()

		logger.Infoc(ctx, "Change truck driver submitted",
			logfields.WithTransactionID(result.TransactionID),
			logfields.WithEntityID(truckID),
			log.WithID(payload.DriverID))

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func ensureAbsent(ctx context.Context, r ledger.Registry, id string) error {
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("check %s %q: %w", r.Kind(), id, err)
	}

	if exists {
		return fmt.Errorf("%s %q: %w", r.Kind(), id, ledger.ErrAlreadyExists)
	}

	return nil
}

func (s *Service) withRegistry(
	ctx context.Context,
	identity, operation string,
	kind ledger.Kind,
	fn func(conn *connectionmanager.Connection, r ledger.Registry) error,
) error {
	return s.withConnection(ctx, identity, operation, func(conn *connectionmanager.Connection) error {
		r, err := conn.Session.Registry(ctx, kind)
		if err != nil {
			return err
		}

		return fn(conn, r)
	})
}

func (s *Service) withConnection(
	ctx context.Context,
	identity, operation string,
	fn func(conn *connectionmanager.Connection) error,
) error {
	start := time.Now()
	defer func() {
		s.metrics.LedgerOperationTime(operation, time.Since(start))
	}()

	conn, err := s.connections.CreateConnection(ctx, identity)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			logger.Warnc(ctx, "Failed to close connection", log.WithError(closeErr), logfields.WithIdentity(identity))
		}
	}()

	return fn(conn)
}
