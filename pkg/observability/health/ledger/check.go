/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"context"
	"fmt"

	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
)

type connectionCreator interface {
	CreateConnection(ctx context.Context, identityName string) (*connectionmanager.Connection, error)
}

// New returns a health check that opens and closes a ledger connection as the given identity.
func New(connections connectionCreator, identityName string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		conn, err := connections.CreateConnection(ctx, identityName)
		if err != nil {
			return fmt.Errorf("failed to connect to ledger network: %w", err)
		}

		return conn.Close(ctx)
	}
}
