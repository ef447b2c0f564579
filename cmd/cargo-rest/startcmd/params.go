/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	cmdutils "github.com/trustbloc/cmdutil-go/pkg/utils/cmd"

	"github.com/trustbloc/cargo-gateway/cmd/common"
	"github.com/trustbloc/cargo-gateway/pkg/ledger/memledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/tracing"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

const (
	commonEnvVarUsageText = "Alternatively, this can be set with the following environment variable: "

	hostURLFlagName      = "host-url"
	hostURLFlagShorthand = "u"
	hostURLFlagUsage     = "URL to run the cargo-rest instance on. Format: HostName:Port. " +
		commonEnvVarUsageText + hostURLEnvKey
	hostURLEnvKey = "CARGO_REST_HOST_URL"

	routePrefixFlagName  = "route-prefix"
	routePrefixFlagUsage = "Optional path prefix of every REST endpoint, for example /api. " +
		commonEnvVarUsageText + routePrefixEnvKey
	routePrefixEnvKey = "CARGO_REST_ROUTE_PREFIX"

	tlsSystemCertPoolFlagName  = "tls-systemcertpool"
	tlsSystemCertPoolFlagUsage = "Use system certificate pool." +
		" Possible values [true] [false]. Defaults to false if not set. " + commonEnvVarUsageText + tlsSystemCertPoolEnvKey
	tlsSystemCertPoolEnvKey = "CARGO_REST_TLS_SYSTEMCERTPOOL"

	tlsCACertsFlagName  = "tls-cacerts"
	tlsCACertsFlagUsage = "Comma-Separated list of ca certs path. " + commonEnvVarUsageText + tlsCACertsEnvKey
	tlsCACertsEnvKey    = "CARGO_REST_TLS_CACERTS"

	tlsCertificateFlagName  = "tls-certificate"
	tlsCertificateFlagUsage = "TLS certificate for cargo-rest server. " + commonEnvVarUsageText + tlsCertificateEnvKey
	tlsCertificateEnvKey    = "CARGO_REST_TLS_CERTIFICATE"

	tlsKeyFlagName  = "tls-key"
	tlsKeyFlagUsage = "TLS key for cargo-rest server. " + commonEnvVarUsageText + tlsKeyEnvKey
	tlsKeyEnvKey    = "CARGO_REST_TLS_KEY"

	cardStoreTypeFlagName  = "card-store-type"
	cardStoreTypeFlagUsage = "Store type for identity cards. Supported: mongodb, file, redis, s3. Default: mongodb. " +
		commonEnvVarUsageText + cardStoreTypeEnvKey
	cardStoreTypeEnvKey = "CARGO_REST_CARD_STORE_TYPE"

	cardStoreFileDirFlagName  = "card-store-file-dir"
	cardStoreFileDirFlagUsage = "Directory of the file card store. " + commonEnvVarUsageText + cardStoreFileDirEnvKey
	cardStoreFileDirEnvKey    = "CARGO_REST_CARD_STORE_FILE_DIR"

	cardStoreRedisURLsFlagName  = "card-store-redis-urls"
	cardStoreRedisURLsFlagUsage = "Comma-Separated list of redis addresses of the redis card store. " +
		commonEnvVarUsageText + cardStoreRedisURLsEnvKey
	cardStoreRedisURLsEnvKey = "CARGO_REST_CARD_STORE_REDIS_URLS"

	cardStoreRedisMasterNameFlagName  = "card-store-redis-master-name"
	cardStoreRedisMasterNameFlagUsage = "Sentinel master name of the redis card store. " +
		commonEnvVarUsageText + cardStoreRedisMasterNameEnvKey
	cardStoreRedisMasterNameEnvKey = "CARGO_REST_CARD_STORE_REDIS_MASTER_NAME"

	cardStoreRedisPasswordFlagName  = "card-store-redis-password" //nolint:gosec
	cardStoreRedisPasswordFlagUsage = "Password of the redis card store. " +
		commonEnvVarUsageText + cardStoreRedisPasswordEnvKey
	cardStoreRedisPasswordEnvKey = "CARGO_REST_CARD_STORE_REDIS_PASSWORD" //nolint:gosec

	cardStoreRedisDisableTLSFlagName  = "card-store-redis-disable-tls"
	cardStoreRedisDisableTLSFlagUsage = "Disables TLS for the redis card store. Default: false. " +
		commonEnvVarUsageText + cardStoreRedisDisableTLSEnvKey
	cardStoreRedisDisableTLSEnvKey = "CARGO_REST_CARD_STORE_REDIS_DISABLE_TLS"

	cardStoreS3BucketFlagName  = "card-store-s3-bucket"
	cardStoreS3BucketFlagUsage = "S3 bucket of the s3 card store. " + commonEnvVarUsageText + cardStoreS3BucketEnvKey
	cardStoreS3BucketEnvKey    = "CARGO_REST_CARD_STORE_S3_BUCKET"

	cardStoreS3RegionFlagName  = "card-store-s3-region"
	cardStoreS3RegionFlagUsage = "S3 region of the s3 card store. " + commonEnvVarUsageText + cardStoreS3RegionEnvKey
	cardStoreS3RegionEnvKey    = "CARGO_REST_CARD_STORE_S3_REGION"

	cardStoreS3HostNameFlagName  = "card-store-s3-hostname"
	cardStoreS3HostNameFlagUsage = "Optional S3 endpoint of the s3 card store. " +
		commonEnvVarUsageText + cardStoreS3HostNameEnvKey
	cardStoreS3HostNameEnvKey = "CARGO_REST_CARD_STORE_S3_HOSTNAME"

	cardStoreS3PrefixFlagName  = "card-store-s3-prefix"
	cardStoreS3PrefixFlagUsage = "Optional object key prefix of the s3 card store. " +
		commonEnvVarUsageText + cardStoreS3PrefixEnvKey
	cardStoreS3PrefixEnvKey = "CARGO_REST_CARD_STORE_S3_PREFIX"

	businessNetworkFlagName  = "business-network"
	businessNetworkFlagUsage = "Name of the business network. Default: cargo-network. " +
		commonEnvVarUsageText + businessNetworkEnvKey
	businessNetworkEnvKey = "CARGO_REST_BUSINESS_NETWORK"

	businessNetworkVersionFlagName  = "business-network-version"
	businessNetworkVersionFlagUsage = "Version of the deployed business network. Default: 0.0.1. " +
		commonEnvVarUsageText + businessNetworkVersionEnvKey
	businessNetworkVersionEnvKey = "CARGO_REST_BUSINESS_NETWORK_VERSION"

	connectionProfileFlagName  = "connection-profile"
	connectionProfileFlagUsage = "Path to a JSON connection profile written into imported cards. " +
		"The default hlfv1 profile is used if not set. " + commonEnvVarUsageText + connectionProfileEnvKey
	connectionProfileEnvKey = "CARGO_REST_CONNECTION_PROFILE"

	adminCardArchiveFlagName  = "admin-card-archive"
	adminCardArchiveFlagUsage = "Path to the card archive of the network admin. If not set, the admin card is " +
		"created from the admin enrollment secret. " + commonEnvVarUsageText + adminCardArchiveEnvKey
	adminCardArchiveEnvKey = "CARGO_REST_ADMIN_CARD_ARCHIVE"

	adminCardNameFlagName  = "admin-card-name"
	adminCardNameFlagUsage = "Name the admin card is imported under. Default: admin@cargo-network. " +
		commonEnvVarUsageText + adminCardNameEnvKey
	adminCardNameEnvKey = "CARGO_REST_ADMIN_CARD_NAME"

	adminEnrollmentSecretFlagName  = "admin-enrollment-secret" //nolint:gosec
	adminEnrollmentSecretFlagUsage = "Enrollment secret of the network admin when no card archive is given. " +
		"Default: adminpw. " + commonEnvVarUsageText + adminEnrollmentSecretEnvKey
	adminEnrollmentSecretEnvKey = "CARGO_REST_ADMIN_ENROLLMENT_SECRET" //nolint:gosec

	bootstrapRetryAttemptsFlagName  = "bootstrap-retry-attempts"
	bootstrapRetryAttemptsFlagUsage = "Number of attempts to open the bootstrap ledger connection. Default: 5. " +
		commonEnvVarUsageText + bootstrapRetryAttemptsEnvKey
	bootstrapRetryAttemptsEnvKey = "CARGO_REST_BOOTSTRAP_RETRY_ATTEMPTS"

	bootstrapRetryDelayFlagName  = "bootstrap-retry-delay"
	bootstrapRetryDelayFlagUsage = "Delay between bootstrap connection attempts. Default: 30s. " +
		commonEnvVarUsageText + bootstrapRetryDelayEnvKey
	bootstrapRetryDelayEnvKey = "CARGO_REST_BOOTSTRAP_RETRY_DELAY"

	driverPasswordFlagName  = "driver-default-password" //nolint:gosec
	driverPasswordFlagUsage = "Password of passports created for new drivers. Default: test. " +
		commonEnvVarUsageText + driverPasswordEnvKey
	driverPasswordEnvKey = "CARGO_REST_DRIVER_DEFAULT_PASSWORD" //nolint:gosec

	jwtSecretFlagName  = "jwt-secret"
	jwtSecretFlagUsage = "Secret used to sign and verify passport tokens. " + commonEnvVarUsageText + jwtSecretEnvKey
	jwtSecretEnvKey    = "CARGO_REST_JWT_SECRET" //nolint:gosec

	jwtExpirationFlagName  = "jwt-expiration"
	jwtExpirationFlagUsage = "Lifetime of passport tokens. Default: 24h. " + commonEnvVarUsageText + jwtExpirationEnvKey
	jwtExpirationEnvKey    = "CARGO_REST_JWT_EXPIRATION"

	jwtAlgorithmFlagName  = "jwt-algorithm"
	jwtAlgorithmFlagUsage = "Signing algorithm of passport tokens (HS256, HS384, HS512). Default: HS256. " +
		commonEnvVarUsageText + jwtAlgorithmEnvKey
	jwtAlgorithmEnvKey = "CARGO_REST_JWT_ALGORITHM"

	jwtIssuerFlagName  = "jwt-issuer"
	jwtIssuerFlagUsage = "Issuer of passport tokens. " + commonEnvVarUsageText + jwtIssuerEnvKey
	jwtIssuerEnvKey    = "CARGO_REST_JWT_ISSUER"

	jwtAudienceFlagName  = "jwt-audience"
	jwtAudienceFlagUsage = "Audience of passport tokens. " + commonEnvVarUsageText + jwtAudienceEnvKey
	jwtAudienceEnvKey    = "CARGO_REST_JWT_AUDIENCE"

	metricsProviderFlagName         = "metrics-provider-name"
	metricsProviderEnvKey           = "CARGO_METRICS_PROVIDER_NAME"
	allowedMetricsProviderFlagUsage = "The metrics provider name (for example: 'prometheus' etc.). " +
		commonEnvVarUsageText + metricsProviderEnvKey

	promHTTPURLFlagName             = "prom-http-url"
	promHTTPURLEnvKey               = "CARGO_PROM_HTTP_URL"
	allowedPromHTTPURLFlagNameUsage = "URL that exposes the prometheus metrics endpoint. Format: HostName:Port. " +
		commonEnvVarUsageText + promHTTPURLEnvKey

	enableProfilerFlagName  = "enable-profiler"
	enableProfilerFlagUsage = "Serves pprof profiles under /debug/pprof on the internal server. Default: false. " +
		commonEnvVarUsageText + enableProfilerEnvKey
	enableProfilerEnvKey = "CARGO_REST_ENABLE_PROFILER"

	tracingProviderFlagName  = "tracing-provider"
	tracingProviderEnvKey    = "CARGO_REST_TRACING_PROVIDER"
	tracingProviderFlagUsage = "The tracing provider (DEFAULT, JAEGER or STDOUT). " +
		commonEnvVarUsageText + tracingProviderEnvKey

	tracingServiceNameFlagName  = "tracing-service-name"
	tracingServiceNameEnvKey    = "CARGO_REST_TRACING_SERVICE_NAME"
	tracingServiceNameFlagUsage = "The name of the tracing service. Default: cargo-rest. " +
		commonEnvVarUsageText + tracingServiceNameEnvKey

	cardStoreMongoDB = "mongodb"
	cardStoreFile    = "file"
	cardStoreRedis   = "redis"
	cardStoreS3      = "s3"

	defaultAdminCardName         = "admin@cargo-network"
	defaultAdminEnrollmentSecret = "adminpw" //nolint:gosec
	defaultJWTExpiration         = 24 * time.Hour
	defaultTracingServiceName    = "cargo-rest"
)

type startupParameters struct {
	hostURL                         string
	routePrefix                     string
	logLevel                        string
	tlsParameters                   *tlsParameters
	dbParameters                    *common.DBParameters
	cardStoreParams                 *cardStoreParameters
	ledgerParams                    *ledgerParameters
	jwtParams                       passport.JWTConfig
	driverDefaultPassword           string
	prometheusMetricsProviderParams *prometheusMetricsProviderParams
	enableProfiler                  bool
	tracingParams                   *tracingParams
}

type tlsParameters struct {
	systemCertPool bool
	caCerts        []string
	serveCertPath  string
	serveKeyPath   string
}

type cardStoreParameters struct {
	storeType       string
	fileDir         string
	redisURLs       []string
	redisMasterName string
	redisPassword   string
	redisDisableTLS bool
	s3Bucket        string
	s3Region        string
	s3HostName      string
	s3Prefix        string
}

type ledgerParameters struct {
	businessNetwork        string
	businessNetworkVersion string
	connectionProfilePath  string
	adminCardArchivePath   string
	adminCardName          string
	adminEnrollmentSecret  string
	retryAttempts          int
	retryDelay             time.Duration
}

type prometheusMetricsProviderParams struct {
	url string
}

type tracingParams struct {
	exporter    tracing.SpanExporterType
	serviceName string
}

func getStartupParameters(cmd *cobra.Command) (*startupParameters, error) {
	hostURL, err := cmdutils.GetUserSetVarFromString(cmd, hostURLFlagName, hostURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	routePrefix := strings.TrimSuffix(
		cmdutils.GetUserSetOptionalVarFromString(cmd, routePrefixFlagName, routePrefixEnvKey), "/")
	if routePrefix != "" && !strings.HasPrefix(routePrefix, "/") {
		routePrefix = "/" + routePrefix
	}

	tlsParams, err := getTLS(cmd)
	if err != nil {
		return nil, err
	}

	dbParams, err := common.DBParams(cmd)
	if err != nil {
		return nil, err
	}

	cardStoreParams, err := getCardStoreParameters(cmd)
	if err != nil {
		return nil, err
	}

	ledgerParams, err := getLedgerParameters(cmd)
	if err != nil {
		return nil, err
	}

	jwtParams, err := getJWTParameters(cmd)
	if err != nil {
		return nil, err
	}

	metricsProviderName := cmdutils.GetUserSetOptionalVarFromString(cmd, metricsProviderFlagName,
		metricsProviderEnvKey)

	var promParams *prometheusMetricsProviderParams

	if metricsProviderName == "prometheus" {
		promParams, err = getPrometheusMetricsProviderParams(cmd)
		if err != nil {
			return nil, err
		}
	}

	var enableProfiler bool

	if v := cmdutils.GetUserSetOptionalVarFromString(cmd, enableProfilerFlagName, enableProfilerEnvKey); v != "" {
		enableProfiler, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", enableProfilerFlagName, err)
		}
	}

	tracingParams, err := getTracingParams(cmd)
	if err != nil {
		return nil, err
	}

	return &startupParameters{
		hostURL:                         hostURL,
		routePrefix:                     routePrefix,
		logLevel:                        cmdutils.GetUserSetOptionalVarFromString(cmd, common.LogLevelFlagName, common.LogLevelEnvKey),
		tlsParameters:                   tlsParams,
		dbParameters:                    dbParams,
		cardStoreParams:                 cardStoreParams,
		ledgerParams:                    ledgerParams,
		jwtParams:                       *jwtParams,
		driverDefaultPassword:           cmdutils.GetUserSetOptionalVarFromString(cmd, driverPasswordFlagName, driverPasswordEnvKey),
		prometheusMetricsProviderParams: promParams,
		enableProfiler:                  enableProfiler,
		tracingParams:                   tracingParams,
	}, nil
}

func getTLS(cmd *cobra.Command) (*tlsParameters, error) {
	tlsSystemCertPoolString := cmdutils.GetUserSetOptionalVarFromString(cmd, tlsSystemCertPoolFlagName,
		tlsSystemCertPoolEnvKey)

	tlsSystemCertPool := false

	if tlsSystemCertPoolString != "" {
		var err error

		tlsSystemCertPool, err = strconv.ParseBool(tlsSystemCertPoolString)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", tlsSystemCertPoolFlagName, err)
		}
	}

	return &tlsParameters{
		systemCertPool: tlsSystemCertPool,
		caCerts:        cmdutils.GetUserSetOptionalVarFromArrayString(cmd, tlsCACertsFlagName, tlsCACertsEnvKey),
		serveCertPath:  cmdutils.GetUserSetOptionalVarFromString(cmd, tlsCertificateFlagName, tlsCertificateEnvKey),
		serveKeyPath:   cmdutils.GetUserSetOptionalVarFromString(cmd, tlsKeyFlagName, tlsKeyEnvKey),
	}, nil
}

func getCardStoreParameters(cmd *cobra.Command) (*cardStoreParameters, error) {
	params := &cardStoreParameters{
		storeType: strings.ToLower(
			cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreTypeFlagName, cardStoreTypeEnvKey)),
		fileDir:         cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreFileDirFlagName, cardStoreFileDirEnvKey),
		redisURLs:       cmdutils.GetUserSetOptionalVarFromArrayString(cmd, cardStoreRedisURLsFlagName, cardStoreRedisURLsEnvKey),
		redisMasterName: cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreRedisMasterNameFlagName, cardStoreRedisMasterNameEnvKey),
		redisPassword:   cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreRedisPasswordFlagName, cardStoreRedisPasswordEnvKey),
		s3Bucket:        cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreS3BucketFlagName, cardStoreS3BucketEnvKey),
		s3Region:        cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreS3RegionFlagName, cardStoreS3RegionEnvKey),
		s3HostName:      cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreS3HostNameFlagName, cardStoreS3HostNameEnvKey),
		s3Prefix:        cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreS3PrefixFlagName, cardStoreS3PrefixEnvKey),
	}

	if params.storeType == "" {
		params.storeType = cardStoreMongoDB
	}

	if v := cmdutils.GetUserSetOptionalVarFromString(cmd, cardStoreRedisDisableTLSFlagName,
		cardStoreRedisDisableTLSEnvKey); v != "" {
		disableTLS, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", cardStoreRedisDisableTLSFlagName, err)
		}

		params.redisDisableTLS = disableTLS
	}

	switch params.storeType {
	case cardStoreMongoDB:
	case cardStoreFile:
		if params.fileDir == "" {
			return nil, fmt.Errorf("%s is required for card store type %s", cardStoreFileDirFlagName, cardStoreFile)
		}
	case cardStoreRedis:
		if len(params.redisURLs) == 0 {
			return nil, fmt.Errorf("%s is required for card store type %s", cardStoreRedisURLsFlagName, cardStoreRedis)
		}
	case cardStoreS3:
		if params.s3Bucket == "" || params.s3Region == "" {
			return nil, fmt.Errorf("%s and %s are required for card store type %s",
				cardStoreS3BucketFlagName, cardStoreS3RegionFlagName, cardStoreS3)
		}
	default:
		return nil, fmt.Errorf("unsupported card store type: %s", params.storeType)
	}

	return params, nil
}

func getLedgerParameters(cmd *cobra.Command) (*ledgerParameters, error) {
	params := &ledgerParameters{
		businessNetwork: cmdutils.GetUserSetOptionalVarFromString(cmd, businessNetworkFlagName,
			businessNetworkEnvKey),
		businessNetworkVersion: cmdutils.GetUserSetOptionalVarFromString(cmd, businessNetworkVersionFlagName,
			businessNetworkVersionEnvKey),
		connectionProfilePath: cmdutils.GetUserSetOptionalVarFromString(cmd, connectionProfileFlagName,
			connectionProfileEnvKey),
		adminCardArchivePath: cmdutils.GetUserSetOptionalVarFromString(cmd, adminCardArchiveFlagName,
			adminCardArchiveEnvKey),
		adminCardName: cmdutils.GetUserSetOptionalVarFromString(cmd, adminCardNameFlagName, adminCardNameEnvKey),
		adminEnrollmentSecret: cmdutils.GetUserSetOptionalVarFromString(cmd, adminEnrollmentSecretFlagName,
			adminEnrollmentSecretEnvKey),
	}

	if params.businessNetwork == "" {
		params.businessNetwork = memledger.DefaultNetworkName
	}

	if params.businessNetworkVersion == "" {
		params.businessNetworkVersion = memledger.DefaultVersion
	}

	if params.adminCardName == "" {
		params.adminCardName = defaultAdminCardName
	}

	if params.adminEnrollmentSecret == "" {
		params.adminEnrollmentSecret = defaultAdminEnrollmentSecret
	}

	params.retryAttempts = connectionmanager.DefaultRetryAttempts

	if v := cmdutils.GetUserSetOptionalVarFromString(cmd, bootstrapRetryAttemptsFlagName,
		bootstrapRetryAttemptsEnvKey); v != "" {
		attempts, err := strconv.Atoi(v)
		if err != nil || attempts <= 0 {
			return nil, fmt.Errorf("invalid value for %s: %s", bootstrapRetryAttemptsFlagName, v)
		}

		params.retryAttempts = attempts
	}

	var err error

	params.retryDelay, err = getDuration(cmd, bootstrapRetryDelayFlagName, bootstrapRetryDelayEnvKey,
		connectionmanager.DefaultRetryDelay)
	if err != nil {
		return nil, err
	}

	return params, nil
}

func getJWTParameters(cmd *cobra.Command) (*passport.JWTConfig, error) {
	secret, err := cmdutils.GetUserSetVarFromString(cmd, jwtSecretFlagName, jwtSecretEnvKey, false)
	if err != nil {
		return nil, err
	}

	expiration, err := getDuration(cmd, jwtExpirationFlagName, jwtExpirationEnvKey, defaultJWTExpiration)
	if err != nil {
		return nil, err
	}

	return &passport.JWTConfig{
		Secret:     secret,
		Expiration: expiration,
		Algorithm:  cmdutils.GetUserSetOptionalVarFromString(cmd, jwtAlgorithmFlagName, jwtAlgorithmEnvKey),
		Issuer:     cmdutils.GetUserSetOptionalVarFromString(cmd, jwtIssuerFlagName, jwtIssuerEnvKey),
		Audience:   cmdutils.GetUserSetOptionalVarFromString(cmd, jwtAudienceFlagName, jwtAudienceEnvKey),
	}, nil
}

func getPrometheusMetricsProviderParams(cmd *cobra.Command) (*prometheusMetricsProviderParams, error) {
	promMetricsURL, err := cmdutils.GetUserSetVarFromString(cmd, promHTTPURLFlagName, promHTTPURLEnvKey, false)
	if err != nil {
		return nil, err
	}

	return &prometheusMetricsProviderParams{url: promMetricsURL}, nil
}

func getTracingParams(cmd *cobra.Command) (*tracingParams, error) {
	serviceName := cmdutils.GetUserSetOptionalVarFromString(cmd, tracingServiceNameFlagName, tracingServiceNameEnvKey)
	if serviceName == "" {
		serviceName = defaultTracingServiceName
	}

	params := &tracingParams{
		exporter:    strings.ToUpper(cmdutils.GetUserSetOptionalVarFromString(cmd, tracingProviderFlagName, tracingProviderEnvKey)),
		serviceName: serviceName,
	}

	if params.exporter != tracing.None && !tracing.IsExportedSupported(params.exporter) {
		return nil, fmt.Errorf("unsupported tracing provider: %s", params.exporter)
	}

	return params, nil
}

func getDuration(cmd *cobra.Command, flagName, envKey string,
	defaultDuration time.Duration) (time.Duration, error) {
	timeoutStr := cmdutils.GetUserSetOptionalVarFromString(cmd, flagName, envKey)
	if timeoutStr == "" {
		return defaultDuration, nil
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return -1, fmt.Errorf("invalid value [%s]: %w", timeoutStr, err)
	}

	return timeout, nil
}

func createFlags(startCmd *cobra.Command) {
	common.Flags(startCmd)

	startCmd.Flags().StringP(hostURLFlagName, hostURLFlagShorthand, "", hostURLFlagUsage)
	startCmd.Flags().StringP(routePrefixFlagName, "", "", routePrefixFlagUsage)
	startCmd.Flags().StringP(tlsSystemCertPoolFlagName, "", "", tlsSystemCertPoolFlagUsage)
	startCmd.Flags().StringArrayP(tlsCACertsFlagName, "", []string{}, tlsCACertsFlagUsage)
	startCmd.Flags().StringP(tlsCertificateFlagName, "", "", tlsCertificateFlagUsage)
	startCmd.Flags().StringP(tlsKeyFlagName, "", "", tlsKeyFlagUsage)
	startCmd.Flags().StringP(cardStoreTypeFlagName, "", "", cardStoreTypeFlagUsage)
	startCmd.Flags().StringP(cardStoreFileDirFlagName, "", "", cardStoreFileDirFlagUsage)
	startCmd.Flags().StringArrayP(cardStoreRedisURLsFlagName, "", []string{}, cardStoreRedisURLsFlagUsage)
	startCmd.Flags().StringP(cardStoreRedisMasterNameFlagName, "", "", cardStoreRedisMasterNameFlagUsage)
	startCmd.Flags().StringP(cardStoreRedisPasswordFlagName, "", "", cardStoreRedisPasswordFlagUsage)
	startCmd.Flags().StringP(cardStoreRedisDisableTLSFlagName, "", "", cardStoreRedisDisableTLSFlagUsage)
	startCmd.Flags().StringP(cardStoreS3BucketFlagName, "", "", cardStoreS3BucketFlagUsage)
	startCmd.Flags().StringP(cardStoreS3RegionFlagName, "", "", cardStoreS3RegionFlagUsage)
	startCmd.Flags().StringP(cardStoreS3HostNameFlagName, "", "", cardStoreS3HostNameFlagUsage)
	startCmd.Flags().StringP(cardStoreS3PrefixFlagName, "", "", cardStoreS3PrefixFlagUsage)
	startCmd.Flags().StringP(businessNetworkFlagName, "", "", businessNetworkFlagUsage)
	startCmd.Flags().StringP(businessNetworkVersionFlagName, "", "", businessNetworkVersionFlagUsage)
	startCmd.Flags().StringP(connectionProfileFlagName, "", "", connectionProfileFlagUsage)
	startCmd.Flags().StringP(adminCardArchiveFlagName, "", "", adminCardArchiveFlagUsage)
	startCmd.Flags().StringP(adminCardNameFlagName, "", "", adminCardNameFlagUsage)
	startCmd.Flags().StringP(adminEnrollmentSecretFlagName, "", "", adminEnrollmentSecretFlagUsage)
	startCmd.Flags().StringP(bootstrapRetryAttemptsFlagName, "", "", bootstrapRetryAttemptsFlagUsage)
	startCmd.Flags().StringP(bootstrapRetryDelayFlagName, "", "", bootstrapRetryDelayFlagUsage)
	startCmd.Flags().StringP(driverPasswordFlagName, "", "", driverPasswordFlagUsage)
	startCmd.Flags().StringP(enableProfilerFlagName, "", "", enableProfilerFlagUsage)
	startCmd.Flags().StringP(jwtSecretFlagName, "", "", jwtSecretFlagUsage)
	startCmd.Flags().StringP(jwtExpirationFlagName, "", "", jwtExpirationFlagUsage)
	startCmd.Flags().StringP(jwtAlgorithmFlagName, "", "", jwtAlgorithmFlagUsage)
	startCmd.Flags().StringP(jwtIssuerFlagName, "", "", jwtIssuerFlagUsage)
	startCmd.Flags().StringP(jwtAudienceFlagName, "", "", jwtAudienceFlagUsage)
	startCmd.Flags().StringP(metricsProviderFlagName, "", "", allowedMetricsProviderFlagUsage)
	startCmd.Flags().StringP(promHTTPURLFlagName, "", "", allowedPromHTTPURLFlagNameUsage)
	startCmd.Flags().StringP(tracingProviderFlagName, "", "", tracingProviderFlagUsage)
	startCmd.Flags().StringP(tracingServiceNameFlagName, "", "", tracingServiceNameFlagUsage)
	startCmd.Flags().StringP(common.LogLevelFlagName, common.LogLevelFlagShorthand, "",
		common.LogLevelPrefixFlagUsage)
}
