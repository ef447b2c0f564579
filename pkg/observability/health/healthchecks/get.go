/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthchecks

import (
	"context"

	"github.com/alexliesenfeld/health"

	"github.com/trustbloc/cargo-gateway/pkg/observability/health/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/health/mongo"
	"github.com/trustbloc/cargo-gateway/pkg/observability/health/redis"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type connectionCreator interface {
	CreateConnection(ctx context.Context, identityName string) (*connectionmanager.Connection, error)
}

type Config struct {
	MongoDB pinger
	// Redis is set when the redis card store is selected.
	Redis          pinger
	Ledger         connectionCreator
	LedgerIdentity string
}

func Get(config *Config) []health.Check {
	var checks []health.Check

	if config.MongoDB != nil {
		checks = append(checks, health.Check{
			Name:               "mongodb",
			Check:              mongo.New(config.MongoDB),
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	if config.Redis != nil {
		checks = append(checks, health.Check{
			Name:               "redis",
			Check:              redis.New(config.Redis),
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	if config.Ledger != nil {
		checks = append(checks, health.Check{
			Name:               "ledger",
			Check:              ledger.New(config.Ledger, config.LedgerIdentity),
			MaxTimeInError:     1,
			MaxContiguousFails: 1,
		})
	}

	return checks
}
