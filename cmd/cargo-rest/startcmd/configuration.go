/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"crypto/tls"
	"crypto/x509"

	tlsutils "github.com/trustbloc/cmdutil-go/pkg/utils/tls"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/cargo-gateway/pkg/observability/tracing"
)

// Configuration for the cargo-rest API server.
type Configuration struct {
	RootCAs           *x509.CertPool
	Tracer            trace.Tracer
	IsTraceEnabled    bool
	StartupParameters *startupParameters
}

func prepareConfiguration(parameters *startupParameters, tracer trace.Tracer) (*Configuration, error) {
	rootCAs, err := tlsutils.GetCertPool(parameters.tlsParameters.systemCertPool, parameters.tlsParameters.caCerts)
	if err != nil {
		return nil, err
	}

	return &Configuration{
		RootCAs:           rootCAs,
		Tracer:            tracer,
		IsTraceEnabled:    parameters.tracingParams.exporter != tracing.None,
		StartupParameters: parameters,
	}, nil
}

func (c *Configuration) tlsConfig() *tls.Config {
	return &tls.Config{RootCAs: c.RootCAs, MinVersion: tls.VersionTLS12}
}
