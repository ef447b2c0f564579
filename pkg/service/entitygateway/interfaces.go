/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package entitygateway

import (
	"context"

	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
)

type connectionCreator interface {
	CreateConnection(ctx context.Context, identityName string) (*connectionmanager.Connection, error)
}

// Deleted is the result of a removal.
type Deleted struct {
	ID string `json:"id"`
}

type ServiceInterface interface {
	List(ctx context.Context, identity string, kind ledger.Kind, resolve bool) ([]interface{}, error)
	Get(ctx context.Context, identity string, kind ledger.Kind, id string, resolve bool) (interface{}, error)
	Create(ctx context.Context, identity string, kind ledger.Kind, payload []byte) (ledger.Resource, error)
	Update(ctx context.Context, identity string, kind ledger.Kind, id string, payload []byte) (ledger.Resource, error)
	Delete(ctx context.Context, identity string, kind ledger.Kind, id string) (*Deleted, error)
	Query(ctx context.Context, identity, name string, params map[string]string) ([]ledger.Resource, error)
	ChangeDriver(
		ctx context.Context,
		identity, truckID string,
		payload *ledger.ChangeDriverPayload,
	) (*ledger.TransactionResult, error)
}
