/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package provisioning

import (
	"context"

	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
	"github.com/trustbloc/cargo-gateway/pkg/service/entitygateway"
	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

type connectionManager interface {
	CreateConnection(ctx context.Context, identityName string) (*connectionmanager.Connection, error)
	ImportNewCard(ctx context.Context, userID, enrollmentSecret string) error
}

type passportService interface {
	Upsert(ctx context.Context, email, firstName, lastName, password string) (*passport.Passport, error)
	Delete(ctx context.Context, email string) error
}

type ServiceInterface interface {
	CreateDriver(ctx context.Context, identity string, payload []byte) (*ledger.Driver, error)
	DeleteDriver(ctx context.Context, identity, id string) (*entitygateway.Deleted, error)
}
