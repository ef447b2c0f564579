/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package provisioning

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/entitygateway"
)

var logger = log.New("identity-provisioning")

// DefaultPassword is the password of passports created for new drivers.
const DefaultPassword = "test"

var _ ServiceInterface = (*Service)(nil)

type Config struct {
	ConnectionManager connectionManager
	PassportService   passportService
	// DefaultPassword overrides the password given to passports of new drivers.
	DefaultPassword string
}

// Service registers and removes drivers together with their passport, ledger identity and card.
// The steps are not transactional. A failure part way leaves the steps already done in place,
// and every step is logged with the correlation id of the sequence.
type Service struct {
	connections     connectionManager
	passports       passportService
	defaultPassword string
}

func New(cfg *Config) *Service {
	pw := cfg.DefaultPassword
	if pw == "" {
		pw = DefaultPassword
	}

	return &Service{
		connections:     cfg.ConnectionManager,
		passports:       cfg.PassportService,
		defaultPassword: pw,
	}
}

// CreateDriver adds the driver participant, creates its passport, issues a ledger identity bound
// to the participant and imports the card of that identity.
func (s *Service) CreateDriver(ctx context.Context, identity string, payload []byte) (*ledger.Driver, error) {
	correlationID := uuid.NewString()

	conn, err := s.connections.CreateConnection(ctx, identity)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			logger.Warnc(ctx, "Failed to close connection", log.WithError(closeErr),
				logfields.WithCorrelationID(correlationID))
		}
	}()

	res, err := conn.Factory.Create(ledger.KindDriver, payload)
	if err != nil {
		return nil, err
	}

	driver := res.(*ledger.Driver) //nolint:errcheck

	drivers, err := conn.Session.Registry(ctx, ledger.KindDriver)
	if err != nil {
		return nil, err
	}

	exists, err := drivers.Exists(ctx, driver.ID)
	if err != nil {
		return nil, fmt.Errorf("check driver %q: %w", driver.ID, err)
	}

	if exists {
		return nil, fmt.Errorf("driver %q: %w", driver.ID, ledger.ErrAlreadyExists)
	}

	fields := []zap.Field{logfields.WithCorrelationID(correlationID), logfields.WithEntityID(driver.ID)}

	if err = drivers.Add(ctx, driver); err != nil {
		return nil, fmt.Errorf("add driver %q: %w", driver.ID, err)
	}

	logger.Infoc(ctx, "Driver participant added", append(fields, logfields.WithStep("add-participant"))...)

	if _, err = s.passports.Upsert(ctx, driver.Email, driver.FirstName, driver.LastName, s.defaultPassword); err != nil {
		s.logPartial(ctx, "create-passport", err, fields)

		return nil, fmt.Errorf("create passport for %q: %w", driver.Email, err)
	}

	logger.Infoc(ctx, "Driver passport created",
		append(fields, logfields.WithStep("create-passport"), logfields.WithEmail(driver.Email))...)

	issued, err := conn.Session.IssueIdentity(ctx, ledger.NewRelationship(ledger.KindDriver, driver.ID), driver.Email)
	if err != nil {
		s.logPartial(ctx, "issue-identity", err, fields)

		return nil, fmt.Errorf("issue identity %q: %w", driver.Email, err)
	}

	logger.Infoc(ctx, "Driver identity issued",
		append(fields, logfields.WithStep("issue-identity"), logfields.WithIdentity(issued.UserID))...)

	if err = s.connections.ImportNewCard(ctx, issued.UserID, issued.UserSecret); err != nil {
		s.logPartial(ctx, "import-card", err, fields)

		return nil, fmt.Errorf("import card %q: %w", issued.UserID, err)
	}

	logger.Infoc(ctx, "Driver card imported",
		append(fields, logfields.WithStep("import-card"), logfields.WithCardName(issued.UserID))...)

	return driver, nil
}

// DeleteDriver removes the passport of the driver, revokes its ledger identity and removes the
// participant. The passport is removed even when the participant does not exist.
func (s *Service) DeleteDriver(ctx context.Context, identity, id string) (*entitygateway.Deleted, error) {
	correlationID := uuid.NewString()
	fields := []zap.Field{logfields.WithCorrelationID(correlationID), logfields.WithEntityID(id)}

	conn, err := s.connections.CreateConnection(ctx, identity)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			logger.Warnc(ctx, "Failed to close connection", append(fields, log.WithError(closeErr))...)
		}
	}()

	drivers, err := conn.Session.Registry(ctx, ledger.KindDriver)
	if err != nil {
		return nil, err
	}

	email := id

	res, err := drivers.Get(ctx, id)
	switch {
	case err == nil:
		if d, ok := res.(*ledger.Driver); ok && d.Email != "" {
			email = d.Email
		}
	case errors.Is(err, ledger.ErrNotFound):
	default:
		return nil, fmt.Errorf("get driver %q: %w", id, err)
	}

	if err = s.passports.Delete(ctx, email); err != nil {
		return nil, fmt.Errorf("delete passport %q: %w", email, err)
	}

	logger.Infoc(ctx, "Driver passport removed",
		append(fields, logfields.WithStep("remove-passport"), logfields.WithEmail(email))...)

	exists, err := drivers.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check driver %q: %w", id, err)
	}

	if !exists {
		return nil, fmt.Errorf("driver %q: %w", id, ledger.ErrNotFound)
	}

	if err = s.revokeIdentity(ctx, conn.Session, email, fields); err != nil {
		s.logPartial(ctx, "revoke-identity", err, fields)

		return nil, err
	}

	if err = drivers.Remove(ctx, id); err != nil {
		s.logPartial(ctx, "remove-participant", err, fields)

		return nil, fmt.Errorf("remove driver %q: %w", id, err)
	}

	logger.Infoc(ctx, "Driver participant removed", append(fields, logfields.WithStep("remove-participant"))...)

	return &entitygateway.Deleted{ID: id}, nil
}

func (s *Service) revokeIdentity(ctx context.Context, session ledger.Session, name string, fields []zap.Field) error {
	identity, err := session.GetIdentity(ctx, name)
	if err != nil {
		if errors.Is(err, ledger.ErrNotFound) {
			logger.Warnc(ctx, "Driver identity not found, skipping revocation",
				append(fields, logfields.WithIdentity(name))...)

			return nil
		}

		return fmt.Errorf("get identity %q: %w", name, err)
	}

	if identity.State == ledger.IdentityRevoked {
		logger.Warnc(ctx, "Driver identity already revoked", append(fields, logfields.WithIdentity(name))...)

		return nil
	}

	if err = session.RevokeIdentity(ctx, identity.IdentityID); err != nil {
		return fmt.Errorf("revoke identity %q: %w", name, err)
	}

	logger.Infoc(ctx, "Driver identity revoked",
		append(fields, logfields.WithStep("revoke-identity"), logfields.WithIdentity(name))...)

	return nil
}

func (s *Service) logPartial(ctx context.Context, step string, err error, fields []zap.Field) {
	logger.Errorc(ctx, "Provisioning step failed, earlier steps are not rolled back",
		append(fields, logfields.WithStep(step), log.WithError(err))...)
}
