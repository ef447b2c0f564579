/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echopprof "github.com/sevenNt/echo-pprof"
	"github.com/spf13/cobra"
	"github.com/trustbloc/logutil-go/pkg/log"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/trustbloc/cargo-gateway/cmd/common"
	"github.com/trustbloc/cargo-gateway/pkg/doc/validator/jsonschema"
	"github.com/trustbloc/cargo-gateway/pkg/event/bus"
	"github.com/trustbloc/cargo-gateway/pkg/ledger/memledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/health/healthchecks"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics/noop"
	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics/prometheus"
	"github.com/trustbloc/cargo-gateway/pkg/observability/tracing"
	entitygatewaytracing "github.com/trustbloc/cargo-gateway/pkg/observability/tracing/wrappers/entitygateway"
	passporttracing "github.com/trustbloc/cargo-gateway/pkg/observability/tracing/wrappers/passport"
	provisioningtracing "github.com/trustbloc/cargo-gateway/pkg/observability/tracing/wrappers/provisioning"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/resterr"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/entity"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/healthcheck"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/logapi"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/mw"
	passportrest "github.com/trustbloc/cargo-gateway/pkg/restapi/v1/passport"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/version"
	"github.com/trustbloc/cargo-gateway/pkg/service/connectionmanager"
	"github.com/trustbloc/cargo-gateway/pkg/service/entitygateway"
	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
	"github.com/trustbloc/cargo-gateway/pkg/service/provisioning"
	"github.com/trustbloc/cargo-gateway/pkg/storage/mongodb"
	"github.com/trustbloc/cargo-gateway/pkg/storage/mongodb/passportstore"
)

var logger = log.New("cargo-rest")

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 10 * time.Second

	internalServerName = "cargo-rest-internal"
)

type server interface {
	ListenAndServe(ctx context.Context, host, certFile, keyFile string, handler http.Handler) error
}

// HTTPServer represents an actual HTTP server implementation.
type HTTPServer struct{}

// ListenAndServe serves the handler until the context is done, then shuts the server down gracefully.
// TLS is used when both a certificate and a key file are given.
func (s *HTTPServer) ListenAndServe(ctx context.Context, host, certFile, keyFile string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              host,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	stopped := make(chan struct{})
	defer close(stopped)

	go func() {
		select {
		case <-stopped:
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Warn("Failed to shut down HTTP server", log.WithError(err))
			}
		}
	}()

	var err error

	if certFile != "" && keyFile != "" {
		err = srv.ListenAndServeTLS(certFile, keyFile)
	} else {
		err = srv.ListenAndServe()
	}

	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}

	return err
}

type startOpts struct {
	version       string
	serverVersion string
	server        server
}

// StartOpts configures the start command.
type StartOpts func(opts *startOpts)

// WithVersion sets the version reported by /version.
func WithVersion(version string) StartOpts {
	return func(opts *startOpts) {
		opts.version = version
	}
}

// WithServerVersion sets the version reported by /version/system.
func WithServerVersion(version string) StartOpts {
	return func(opts *startOpts) {
		opts.serverVersion = version
	}
}

// WithHTTPServer sets the server used to serve the REST API.
func WithHTTPServer(srv server) StartOpts {
	return func(opts *startOpts) {
		opts.server = srv
	}
}

// GetStartCmd returns the Cobra start command.
func GetStartCmd(opts ...StartOpts) *cobra.Command {
	startCmd := createStartCmd(opts...)

	createFlags(startCmd)

	return startCmd
}

func createStartCmd(opts ...StartOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start cargo-rest",
		Long:  "Start the cargo-rest gateway to the cargo business network",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := getStartupParameters(cmd)
			if err != nil {
				return fmt.Errorf("failed to get startup parameters: %w", err)
			}

			o := &startOpts{server: &HTTPServer{}}

			for _, opt := range opts {
				opt(o)
			}

			return startService(cmd.Context(), params, o)
		},
	}
}

// services are the components the REST API is built from.
type services struct {
	connections *connectionmanager.Manager
	passports   passport.ServiceInterface
	metrics     metrics.Metrics
	mongoDB     pinger
	redis       pinger
}

type pinger interface {
	Ping(ctx context.Context) error
}

func startService(ctx context.Context, parameters *startupParameters, opts *startOpts) error { //nolint:funlen
	if ctx == nil {
		ctx = context.Background()
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	common.SetDefaultLogLevel(logger, parameters.logLevel)

	shutdownTracing, tracer, err := tracing.Initialize(parameters.tracingParams.exporter,
		parameters.tracingParams.serviceName)
	if err != nil {
		return fmt.Errorf("initialize tracing: %w", err)
	}

	defer shutdownTracing()

	conf, err := prepareConfiguration(parameters, tracer)
	if err != nil {
		return err
	}

	var mongoOpts []mongodb.ClientOpt

	if conf.IsTraceEnabled {
		mongoOpts = append(mongoOpts, mongodb.WithTraceProvider(otel.GetTracerProvider()))
	}

	mongoClient, err := common.InitMongoDB(parameters.dbParameters, logger, mongoOpts...)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := mongoClient.Close(); closeErr != nil {
			logger.Warn("Failed to close MongoDB client", log.WithError(closeErr))
		}
	}()

	internalEcho := echo.New()
	internalEcho.HideBanner = true

	ready := newReadinessController(internalEcho)
	logapi.NewController(internalEcho)

	metricsCollector := noop.GetMetrics()

	if parameters.prometheusMetricsProviderParams != nil {
		h := prometheus.NewHandler()
		internalEcho.Add(h.Method(), h.Path(), h.Handler())

		provider := prometheus.NewPrometheusProvider(&http.Server{
			Addr:              parameters.prometheusMetricsProviderParams.url,
			Handler:           buildInternalHandler(internalEcho, parameters.enableProfiler, conf.IsTraceEnabled),
			ReadHeaderTimeout: readHeaderTimeout,
		})

		go func() {
			if createErr := provider.Create(); createErr != nil {
				logger.Error("Metrics server stopped", log.WithError(createErr))
			}
		}()

		defer func() {
			if destroyErr := provider.Destroy(); destroyErr != nil {
				logger.Warn("Failed to stop metrics server", log.WithError(destroyErr))
			}
		}()

		metricsCollector = provider.Metrics()
	}

	eventBus := bus.New(bus.DefaultConfig())

	defer func() {
		if closeErr := eventBus.Close(); closeErr != nil {
			logger.Warn("Failed to close event bus", log.WithError(closeErr))
		}
	}()

	if _, err = logLedgerEvents(ctx, eventBus); err != nil {
		return fmt.Errorf("subscribe to ledger events: %w", err)
	}

	ledgerParams := parameters.ledgerParams

	adminCard, err := loadAdminCard(ledgerParams)
	if err != nil {
		return err
	}

	profile, err := loadConnectionProfile(ledgerParams)
	if err != nil {
		return err
	}

	network := memledger.New(
		memledger.WithNetworkName(ledgerParams.businessNetwork),
		memledger.WithVersion(ledgerParams.businessNetworkVersion),
		memledger.WithPublisher(eventBus),
		memledger.WithBootstrapIdentity(adminCard.Metadata.UserName, adminCard.Metadata.EnrollmentSecret),
	)

	cards, err := createCardStore(ctx, parameters.cardStoreParams, mongoClient, conf)
	if err != nil {
		return err
	}

	defer func() {
		if closeErr := cards.Close(); closeErr != nil {
			logger.Warn("Failed to close card store", log.WithError(closeErr))
		}
	}()

	manager, err := connectionmanager.New(&connectionmanager.Config{
		CardStore:         cards,
		Network:           network,
		BusinessNetwork:   ledgerParams.businessNetwork,
		ConnectionProfile: profile,
		Metrics:           metricsCollector,
		RetryAttempts:     ledgerParams.retryAttempts,
		RetryDelay:        ledgerParams.retryDelay,
	})
	if err != nil {
		return err
	}

	passports, err := passportstore.New(mongoClient)
	if err != nil {
		return fmt.Errorf("create passport store: %w", err)
	}

	passportSvc, err := passport.New(&passport.Config{Store: passports, JWT: parameters.jwtParams})
	if err != nil {
		return fmt.Errorf("create passport service: %w", err)
	}

	if err = bootstrap(ctx, manager, passportSvc, ledgerParams.adminCardName, adminCard); err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}

	svc := &services{
		connections: manager,
		passports:   passportSvc,
		metrics:     metricsCollector,
		mongoDB:     mongoClient,
	}

	if cards.redisClient != nil {
		svc.redis = cards.redisClient
	}

	e, stopHealthChecks := buildEchoHandler(conf, opts, svc)
	defer stopHealthChecks()

	ready.Ready(true)
	defer ready.Ready(false)

	logger.Info("Starting cargo-rest server", log.WithURL(parameters.hostURL))

	return opts.server.ListenAndServe(ctx, parameters.hostURL,
		parameters.tlsParameters.serveCertPath, parameters.tlsParameters.serveKeyPath, e)
}

// buildInternalHandler serves the internal echo instance, with pprof routes when the profiler is enabled.
func buildInternalHandler(internalEcho *echo.Echo, enableProfiler, traced bool) http.Handler {
	if enableProfiler {
		echopprof.Wrap(internalEcho)
	}

	if traced {
		return otelhttp.NewHandler(internalEcho, internalServerName)
	}

	return internalEcho
}

func buildEchoHandler(conf *Configuration, opts *startOpts, svc *services) (*echo.Echo, func()) {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = resterr.HTTPErrorHandler(conf.Tracer)

	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodHead, http.MethodOptions,
		},
		AllowHeaders: []string{
			echo.HeaderOrigin, echo.HeaderAccept, echo.HeaderContentType, "X-Requested-With", echo.HeaderAuthorization,
		},
	}))

	params := conf.StartupParameters

	if conf.IsTraceEnabled {
		e.Use(otelecho.Middleware(params.tracingParams.serviceName, otelecho.WithSkipper(TracingSkipper)))
	}

	var (
		passportSvc  = svc.passports
		gateway      entitygateway.ServiceInterface
		provisioner  provisioning.ServiceInterface
		payloadCheck = jsonschema.NewPayloadValidator()
	)

	if conf.IsTraceEnabled {
		passportSvc = passporttracing.Wrap(passportSvc, conf.Tracer)
	}

	gateway = entitygateway.New(&entitygateway.Config{
		ConnectionManager: svc.connections,
		Metrics:           svc.metrics,
	})

	provisioner = provisioning.New(&provisioning.Config{
		ConnectionManager: svc.connections,
		PassportService:   passportSvc,
		DefaultPassword:   params.driverDefaultPassword,
	})

	if conf.IsTraceEnabled {
		gateway = entitygatewaytracing.Wrap(gateway, conf.Tracer)
		provisioner = provisioningtracing.Wrap(provisioner, conf.Tracer)
	}

	e.Use(mw.JWTAuth(passportSvc, params.routePrefix))

	g := e.Group(params.routePrefix)

	entity.NewController(g, &entity.Config{
		EntityGateway: gateway,
		Provisioning:  provisioner,
		Validator:     payloadCheck,
	})

	passportrest.NewController(g, &passportrest.Config{
		PassportService: passportSvc,
		Validator:       payloadCheck,
	})

	checks := &healthchecks.Config{
		MongoDB:        svc.mongoDB,
		Redis:          svc.redis,
		LedgerIdentity: params.ledgerParams.adminCardName,
	}

	if svc.connections != nil {
		checks.Ledger = svc.connections
	}

	health := healthcheck.NewController(g, &healthcheck.Config{Checks: healthchecks.Get(checks)})

	version.NewController(g, version.Config{
		Version:                opts.version,
		ServerVersion:          opts.serverVersion,
		BusinessNetwork:        params.ledgerParams.businessNetwork,
		BusinessNetworkVersion: params.ledgerParams.businessNetworkVersion,
	})

	return e, health.Stop
}
