/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

const (
	adminEmail     = "admin@cargo-network"
	adminPassword  = "adminpw" //nolint:gosec
	adminFirstName = "admin"
	adminLastName  = "admin"
	adminDriverID  = "1"

	adminDriver = `{"id":"` + adminDriverID + `","email":"` + adminEmail + `",` +
		`"firstName":"admin","lastName":"admin","address":{"country":"Japan","city":"Sapporo"}}`
)

type bootstrapConnections interface {
	ImportCard(ctx context.Context, userID string, c *card.Card) error
	ConnectWithRetry(ctx context.Context, identityName string) (*connectionmanager.Connection, error)
}

type passportUpserter interface {
	Upsert(ctx context.Context, email, firstName, lastName, password string) (*passport.Passport, error)
}

// loadAdminCard reads the admin card archive, or builds a card for the admin identity enrolled with
// the configured secret when no archive is given.
func loadAdminCard(params *ledgerParameters) (*card.Card, error) {
	if params.adminCardArchivePath == "" {
		profile, err := loadConnectionProfile(params)
		if err != nil {
			return nil, err
		}

		return card.New(params.adminCardName, params.businessNetwork, params.adminEnrollmentSecret, profile), nil
	}

	data, err := os.ReadFile(params.adminCardArchivePath)
	if err != nil {
		return nil, fmt.Errorf("read admin card archive: %w", err)
	}

	c, err := card.FromArchive(data)
	if err != nil {
		return nil, fmt.Errorf("parse admin card archive: %w", err)
	}

	if c.Metadata.EnrollmentSecret == "" {
		c.Metadata.EnrollmentSecret = params.adminEnrollmentSecret
	}

	return c, nil
}

func loadConnectionProfile(params *ledgerParameters) (*card.ConnectionProfile, error) {
	if params.connectionProfilePath == "" {
		return card.DefaultConnectionProfile(), nil
	}

	profile, err := card.LoadConnectionProfile(params.connectionProfilePath)
	if err != nil {
		return nil, fmt.Errorf("load connection profile: %w", err)
	}

	return profile, nil
}

// bootstrap imports the admin card, waits for the ledger network and makes sure the admin
// passport and the admin driver participant exist.
func bootstrap(
	ctx context.Context,
	connections bootstrapConnections,
	passports passportUpserter,
	adminCardName string,
	adminCard *card.Card,
) error {
	if err := connections.ImportCard(ctx, adminCardName, adminCard); err != nil {
		return fmt.Errorf("import admin card: %w", err)
	}

	conn, err := connections.ConnectWithRetry(ctx, adminCardName)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := conn.Close(ctx); closeErr != nil {
			logger.Warnc(ctx, "Failed to close bootstrap connection", log.WithError(closeErr))
		}
	}()

	if _, err = passports.Upsert(ctx, adminEmail, adminFirstName, adminLastName, adminPassword); err != nil {
		return fmt.Errorf("upsert admin passport: %w", err)
	}

	registry, err := conn.Session.Registry(ctx, ledger.KindDriver)
	if err != nil {
		return fmt.Errorf("driver registry: %w", err)
	}

	exists, err := registry.Exists(ctx, adminDriverID)
	if err != nil {
		return fmt.Errorf("check admin driver: %w", err)
	}

	if exists {
		logger.Debugc(ctx, "Admin driver already exists", logfields.WithEntityID(adminDriverID))

		return nil
	}

	driver, err := conn.Factory.Create(ledger.KindDriver, []byte(adminDriver))
	if err != nil {
		return fmt.Errorf("create admin driver: %w", err)
	}

	if err = registry.Add(ctx, driver); err != nil && !errors.Is(err, ledger.ErrAlreadyExists) {
		return fmt.Errorf("add admin driver: %w", err)
	}

	logger.Infoc(ctx, "Admin driver added", logfields.WithEntityID(adminDriverID), logfields.WithEmail(adminEmail))

	return nil
}
