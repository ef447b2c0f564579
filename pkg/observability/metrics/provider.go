/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"time"

	"github.com/trustbloc/logutil-go/pkg/log"
)

// Logger used by different metrics provider.
var Logger = log.New("metrics-provider")

// Constants used by different metrics provider.
const (
	// Namespace Organization namespace.
	Namespace = "cargo"

	// Connection identity-scoped ledger connections.
	Connection                  = "connection"
	ConnectionOpenedMetric      = "opened_total"
	ConnectionFailedMetric      = "failed_total"
	ConnectionBootstrapAttempts = "bootstrap_attempts_total"

	// Ledger operations performed over a connection.
	Ledger                      = "ledger"
	LedgerOperationTimeMetric   = "operation_seconds"
	LedgerChangeDriverSubmitted = "change_driver_submitted_total"

	// OperationLabel is the label holding the ledger operation name.
	OperationLabel = "operation"
)

// Provider is an interface for metrics provider.
type Provider interface {
	// Create creates a metrics provider instance
	Create() error
	// Destroy destroys the metrics provider instance
	Destroy() error
	// Metrics providers metrics
	Metrics() Metrics
}

// Metrics is an interface for the metrics to be supported by the provider.
type Metrics interface {
	ConnectionOpened()
	ConnectionFailed()
	BootstrapAttempt()
	LedgerOperationTime(operation string, value time.Duration)
	ChangeDriverSubmitted()
}
