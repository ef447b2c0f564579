/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package noop

import (
	"time"

	"github.com/trustbloc/cargo-gateway/pkg/observability/metrics"
)

// NoMetrics provides default no operation implementation for the NoMetrics interface.
type NoMetrics struct{}

// GetMetrics returns metrics implementation.
func GetMetrics() metrics.Metrics {
	return &NoMetrics{}
}

func (n *NoMetrics) ConnectionOpened()                             {}
func (n *NoMetrics) ConnectionFailed()                             {}
func (n *NoMetrics) BootstrapAttempt()                             {}
func (n *NoMetrics) LedgerOperationTime(_ string, _ time.Duration) {}
func (n *NoMetrics) ChangeDriverSubmitted()                        {}
