/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/cargo-gateway/pkg/ledger/memledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/tracing"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
)

func newParamsCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()

	cmd := &cobra.Command{Use: "start"}
	createFlags(cmd)

	require.NoError(t, cmd.ParseFlags(args))

	return cmd
}

func requiredArgs(extra ...string) []string {
	return append([]string{
		"--" + hostURLFlagName, "localhost:8080",
		"--database-url", "mongodb://localhost:27017",
		"--" + jwtSecretFlagName, "secret",
	}, extra...)
}

func TestGetStartupParameters(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		params, err := getStartupParameters(newParamsCmd(t, requiredArgs()...))
		require.NoError(t, err)

		require.Equal(t, "localhost:8080", params.hostURL)
		require.Empty(t, params.routePrefix)
		require.Equal(t, "cargo_gateway", params.dbParameters.DatabaseName())
		require.Equal(t, cardStoreMongoDB, params.cardStoreParams.storeType)
		require.Equal(t, memledger.DefaultNetworkName, params.ledgerParams.businessNetwork)
		require.Equal(t, memledger.DefaultVersion, params.ledgerParams.businessNetworkVersion)
		require.Equal(t, defaultAdminCardName, params.ledgerParams.adminCardName)
		require.Equal(t, defaultAdminEnrollmentSecret, params.ledgerParams.adminEnrollmentSecret)
		require.Equal(t, connectionmanager.DefaultRetryAttempts, params.ledgerParams.retryAttempts)
		require.Equal(t, connectionmanager.DefaultRetryDelay, params.ledgerParams.retryDelay)
		require.Equal(t, "secret", params.jwtParams.Secret)
		require.Equal(t, defaultJWTExpiration, params.jwtParams.Expiration)
		require.Nil(t, params.prometheusMetricsProviderParams)
		require.False(t, params.enableProfiler)
		require.Equal(t, tracing.None, params.tracingParams.exporter)
		require.Equal(t, defaultTracingServiceName, params.tracingParams.serviceName)
	})

	t.Run("all options", func(t *testing.T) {
		params, err := getStartupParameters(newParamsCmd(t, requiredArgs(
			"--"+routePrefixFlagName, "api/",
			"--"+cardStoreTypeFlagName, "REDIS",
			"--"+cardStoreRedisURLsFlagName, "redis:6379",
			"--"+cardStoreRedisDisableTLSFlagName, "true",
			"--"+businessNetworkFlagName, "other-network",
			"--"+bootstrapRetryAttemptsFlagName, "2",
			"--"+bootstrapRetryDelayFlagName, "1s",
			"--"+jwtExpirationFlagName, "1h",
			"--"+jwtAlgorithmFlagName, "HS512",
			"--"+metricsProviderFlagName, "prometheus",
			"--"+promHTTPURLFlagName, "localhost:48127",
			"--"+tracingProviderFlagName, "stdout",
			"--"+tlsSystemCertPoolFlagName, "true",
			"--"+enableProfilerFlagName, "true",
		)...))
		require.NoError(t, err)

		require.Equal(t, "/api", params.routePrefix)
		require.Equal(t, cardStoreRedis, params.cardStoreParams.storeType)
		require.Equal(t, []string{"redis:6379"}, params.cardStoreParams.redisURLs)
		require.True(t, params.cardStoreParams.redisDisableTLS)
		require.Equal(t, "other-network", params.ledgerParams.businessNetwork)
		require.Equal(t, 2, params.ledgerParams.retryAttempts)
		require.Equal(t, time.Second, params.ledgerParams.retryDelay)
		require.Equal(t, time.Hour, params.jwtParams.Expiration)
		require.Equal(t, "HS512", params.jwtParams.Algorithm)
		require.Equal(t, "localhost:48127", params.prometheusMetricsProviderParams.url)
		require.True(t, params.enableProfiler)
		require.Equal(t, tracing.Stdout, params.tracingParams.exporter)
		require.True(t, params.tlsParameters.systemCertPool)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv(hostURLEnvKey, "localhost:9090")
		t.Setenv("DATABASE_URL", "mongodb://mongo:27017")
		t.Setenv(jwtSecretEnvKey, "env-secret")
		t.Setenv(cardStoreTypeEnvKey, cardStoreFile)
		t.Setenv(cardStoreFileDirEnvKey, "/tmp/cards")

		params, err := getStartupParameters(newParamsCmd(t))
		require.NoError(t, err)

		require.Equal(t, "localhost:9090", params.hostURL)
		require.Equal(t, "env-secret", params.jwtParams.Secret)
		require.Equal(t, "/tmp/cards", params.cardStoreParams.fileDir)
	})

	t.Run("errors", func(t *testing.T) {
		tests := []struct {
			name string
			args []string
			err  string
		}{
			{
				name: "missing host url",
				args: []string{"--database-url", "mongodb://localhost:27017", "--" + jwtSecretFlagName, "s"},
				err:  hostURLFlagName,
			},
			{
				name: "missing database url",
				args: []string{"--" + hostURLFlagName, "localhost:8080", "--" + jwtSecretFlagName, "s"},
				err:  "dbURL",
			},
			{
				name: "missing jwt secret",
				args: []string{"--" + hostURLFlagName, "localhost:8080", "--database-url", "mongodb://localhost:27017"},
				err:  jwtSecretFlagName,
			},
			{
				name: "unsupported card store",
				args: requiredArgs("--"+cardStoreTypeFlagName, "couchdb"),
				err:  "unsupported card store type",
			},
			{
				name: "file store without directory",
				args: requiredArgs("--"+cardStoreTypeFlagName, cardStoreFile),
				err:  cardStoreFileDirFlagName,
			},
			{
				name: "redis store without urls",
				args: requiredArgs("--"+cardStoreTypeFlagName, cardStoreRedis),
				err:  cardStoreRedisURLsFlagName,
			},
			{
				name: "s3 store without bucket",
				args: requiredArgs("--"+cardStoreTypeFlagName, cardStoreS3, "--"+cardStoreS3RegionFlagName, "eu-west-1"),
				err:  cardStoreS3BucketFlagName,
			},
			{
				name: "invalid retry attempts",
				args: requiredArgs("--"+bootstrapRetryAttemptsFlagName, "0"),
				err:  bootstrapRetryAttemptsFlagName,
			},
			{
				name: "invalid retry delay",
				args: requiredArgs("--"+bootstrapRetryDelayFlagName, "soon"),
				err:  "invalid value",
			},
			{
				name: "invalid system cert pool flag",
				args: requiredArgs("--"+tlsSystemCertPoolFlagName, "maybe"),
				err:  tlsSystemCertPoolFlagName,
			},
			{
				name: "prometheus without url",
				args: requiredArgs("--"+metricsProviderFlagName, "prometheus"),
				err:  promHTTPURLFlagName,
			},
			{
				name: "invalid profiler flag",
				args: requiredArgs("--"+enableProfilerFlagName, "often"),
				err:  enableProfilerFlagName,
			},
			{
				name: "unsupported tracing provider",
				args: requiredArgs("--"+tracingProviderFlagName, "zipkin"),
				err:  "unsupported tracing provider",
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := getStartupParameters(newParamsCmd(t, tt.args...))
				require.ErrorContains(t, err, tt.err)
			})
		}
	})
}
