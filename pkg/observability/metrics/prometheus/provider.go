/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package prometheus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics"
)

var logger = metrics.Logger

var (
	createOnce sync.Once       //nolint:gochecknoglobals
	instance   metrics.Metrics //nolint:gochecknoglobals
)

type promProvider struct {
	httpServer *http.Server
}

// NewPrometheusProvider creates new instance of Prometheus Metrics Provider.
func NewPrometheusProvider(httpServer *http.Server) metrics.Provider {
	return &promProvider{httpServer: httpServer}
}

// Create starts the metrics HTTP server, when one is configured. It blocks until the server stops.
func (pp *promProvider) Create() error {
	if pp.httpServer == nil {
		return nil
	}

	if err := pp.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("start metrics HTTP server: %w", err)
	}

	return nil
}

// Metrics returns supported metrics.
func (pp *promProvider) Metrics() metrics.Metrics {
	return GetMetrics()
}

// Destroy destroys the prometheus metrics provider.
func (pp *promProvider) Destroy() error {
	if pp.httpServer != nil {
		return pp.httpServer.Shutdown(context.Background())
	}

	return nil
}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	createOnce.Do(func() {
		instance = NewMetrics()
	})

	return instance
}

// PromMetrics manages the metrics of the cargo gateway.
type PromMetrics struct {
	connectionOpened      prometheus.Counter
	connectionFailed      prometheus.Counter
	bootstrapAttempts     prometheus.Counter
	ledgerOperationTime   *prometheus.HistogramVec
	changeDriverSubmitted prometheus.Counter
}

// NewMetrics creates instance of prometheus metrics.
func NewMetrics() metrics.Metrics {
	pm := &PromMetrics{
		connectionOpened: newCounter(
			metrics.Connection, metrics.ConnectionOpenedMetric,
			"The number of identity-scoped ledger connections opened.",
			nil,
		),
		connectionFailed: newCounter(
			metrics.Connection, metrics.ConnectionFailedMetric,
			"The number of ledger connections that could not be opened.",
			nil,
		),
		bootstrapAttempts: newCounter(
			metrics.Connection, metrics.ConnectionBootstrapAttempts,
			"The number of bootstrap connection attempts.",
			nil,
		),
		ledgerOperationTime: newHistogramVec(
			metrics.Ledger, metrics.LedgerOperationTimeMetric,
			"The time (in seconds) it takes to execute a ledger operation.",
			[]string{metrics.OperationLabel},
		),
		changeDriverSubmitted: newCounter(
			metrics.Ledger, metrics.LedgerChangeDriverSubmitted,
			"The number of ChangeTruckDriver transactions submitted.",
			nil,
		),
	}

	registerMetrics(pm)

	return pm
}

// ConnectionOpened increments the number of opened connections.
func (pm *PromMetrics) ConnectionOpened() {
	pm.connectionOpened.Inc()
}

// ConnectionFailed increments the number of failed connections.
func (pm *PromMetrics) ConnectionFailed() {
	pm.connectionFailed.Inc()
}

// BootstrapAttempt increments the number of bootstrap connection attempts.
func (pm *PromMetrics) BootstrapAttempt() {
	pm.bootstrapAttempts.Inc()
}

// LedgerOperationTime records the time of a ledger operation.
func (pm *PromMetrics) LedgerOperationTime(operation string, value time.Duration) {
	pm.ledgerOperationTime.WithLabelValues(operation).Observe(value.Seconds())

	logger.Debug("ledger operation time", log.WithDuration(value))
}

func (pm *PromMetrics) ChangeDriverSubmitted() {
	pm.changeDriverSubmitted.Inc()
}

func registerMetrics(pm *PromMetrics) {
	prometheus.MustRegister(
		pm.connectionOpened, pm.connectionFailed, pm.bootstrapAttempts,
		pm.ledgerOperationTime, pm.changeDriverSubmitted,
	)
}

func newCounter(subsystem, name, help string, labels prometheus.Labels) prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Namespace:   metrics.Namespace,
		Subsystem:   subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: labels,
	})
}

func newHistogramVec(subsystem, name, help string, labelNames []string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metrics.Namespace,
		Subsystem: subsystem,
		Name:      name,
		Help:      help,
	}, labelNames)
}
