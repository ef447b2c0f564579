/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package entitygateway . Service

package entitygateway

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/observability/tracing/attributeutil"
	"github.com/trustbloc/cargo-gateway/pkg/service/entitygateway"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements entitygateway.ServiceInterface

type Service entitygateway.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) List(ctx context.Context, identity string, kind ledger.Kind, resolve bool) ([]interface{}, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.List")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("kind", string(kind)))
	span.SetAttributes(attribute.Bool("resolve", resolve))

	res, err := w.svc.List(ctx, identity, kind, resolve)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(res)))

	return res, nil
}

func (w *Wrapper) Get(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	id string,
	resolve bool,
) (interface{}, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.Get")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("kind", string(kind)))
	span.SetAttributes(attribute.String("id", id))
	span.SetAttributes(attribute.Bool("resolve", resolve))

	res, err := w.svc.Get(ctx, identity, kind, id, resolve)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (w *Wrapper) Create(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	payload []byte,
) (ledger.Resource, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.Create")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("kind", string(kind)))
	span.SetAttributes(attributeutil.RawJSON("payload", payload))

	res, err := w.svc.Create(ctx, identity, kind, payload)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (w *Wrapper) Update(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	id string,
	payload []byte,
) (ledger.Resource, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.Update")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("kind", string(kind)))
	span.SetAttributes(attribute.String("id", id))
	span.SetAttributes(attributeutil.RawJSON("payload", payload))

	res, err := w.svc.Update(ctx, identity, kind, id, payload)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (w *Wrapper) Delete(
	ctx context.Context,
	identity string,
	kind ledger.Kind,
	id string,
) (*entitygateway.Deleted, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("kind", string(kind)))
	span.SetAttributes(attribute.String("id", id))

	res, err := w.svc.Delete(ctx, identity, kind, id)
	if err != nil {
		return nil, err
	}

	return res, nil
}

func (w *Wrapper) Query(
	ctx context.Context,
	identity, name string,
	params map[string]string,
) ([]ledger.Resource, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.Query")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("query", name))
	span.SetAttributes(attributeutil.JSON("params", params))

	res, err := w.svc.Query(ctx, identity, name, params)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.Int("count", len(res)))

	return res, nil
}

func (w *Wrapper) ChangeDriver(
	ctx context.Context,
	identity, truckID string,
	payload *ledger.ChangeDriverPayload,
) (*ledger.TransactionResult, error) {
	ctx, span := w.tracer.Start(ctx, "entitygateway.ChangeDriver")
	defer span.End()

	span.SetAttributes(attribute.String("identity", identity))
	span.SetAttributes(attribute.String("truck_id", truckID))
	span.SetAttributes(attributeutil.JSON("payload", payload))

	res, err := w.svc.ChangeDriver(ctx, identity, truckID, payload)
	if err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("transaction_id", res.TransactionID))

	return res, nil
}
