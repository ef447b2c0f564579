/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package provisioning . Service

package provisioning

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/cargo-gateway/pkg/service/entitygateway"
	"github.com/trustbloc/cargo-gateway/pkg/service/provisioning"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements provisioning.ServiceInterface

type Service provisioning.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) CreateDriver(ctx context.Context, identity string, payload []byte) (*ledger.Driver, error) {
	ctx, span := w.tracer.Start(ctx, "provisioning.CreateDriver")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attributeutil.RawJSON("payload", payload, attributeutil.WithRedacted("address")))

	driver, err := w.svc.CreateDriver(ctx, identity, payload)
	if err != nil {
		return nil, err
	}

	return driver, nil
}

func (w *Wrapper) DeleteDriver(ctx context.Context, identity, id string) (*entitygateway.Deleted, error) {
	ctx, span := w.tracer.Start(ctx, "provisioning.DeleteDriver")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("id", id))

	res, err := w.svc.DeleteDriver(ctx, identity, id)
	if err != nil {
		return nil, err
	}

	return res, nil
}
