/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	ledgercheck "github.com/trustbloc/cargo-gateway/pkg/observability/health/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/ledger/memledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
	"github.com/trustbloc/cargo-gateway/pkg/storage/file/cardstore"
)

func TestCheck(t *testing.T) {
	ctx := context.Background()

	store, err := cardstore.New(t.TempDir())
	require.NoError(t, err)

	m, err := connectionmanager.New(&connectionmanager.Config{
		CardStore:       store,
		Network:         memledger.New(memledger.WithBootstrapIdentity("admin", "adminpw")),
		BusinessNetwork: memledger.DefaultNetworkName,
	})
	require.NoError(t, err)

	require.ErrorContains(t, ledgercheck.New(m, "admin")(ctx), "failed to connect to ledger network")

	require.NoError(t, m.ImportNewCard(ctx, "admin", "adminpw"))
	require.NoError(t, ledgercheck.New(m, "admin")(ctx))
}
