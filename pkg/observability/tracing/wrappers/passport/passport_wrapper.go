/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination gomocks_test.go -package passport . Service

package passport

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

var _ Service = (*Wrapper)(nil) // make sure Wrapper implements passport.ServiceInterface

type Service passport.ServiceInterface

type Wrapper struct {
	svc    Service
	tracer trace.Tracer
}

func Wrap(svc Service, tracer trace.Tracer) *Wrapper {
	return &Wrapper{svc: svc, tracer: tracer}
}

func (w *Wrapper) Upsert(ctx context.Context, email, firstName, lastName, password string) (*passport.Passport, error) {
	ctx, span := w.tracer.Start(ctx, "passport.Upsert")
	defer span.End()

	span.SetAttributes(attribute.String("email", email))

	p, err := w.svc.Upsert(ctx, email, firstName, lastName, password)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (w *Wrapper) Delete(ctx context.Context, email string) error {
	ctx, span := w.tracer.Start(ctx, "passport.Delete")
	defer span.End()

	span.SetAttributes(attribute.String("email", email))

	return w.svc.Delete(ctx, email)
}

func (w *Wrapper) Get(ctx context.Context, email string) (*passport.Passport, error) {
	ctx, span := w.tracer.Start(ctx, "passport.Get")
	defer span.End()

	span.SetAttributes(attribute.String("email", email))

	p, err := w.svc.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (w *Wrapper) Login(ctx context.Context, email, password string) (*passport.Token, error) {
	ctx, span := w.tracer.Start(ctx, "passport.Login")
	defer span.End()

	span.SetAttributes(attribute.String("email", email))

	token, err := w.svc.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}

	return token, nil
}

func (w *Wrapper) ValidateToken(ctx context.Context, rawToken string) (string, error) {
	ctx, span := w.tracer.Start(ctx, "passport.ValidateToken")
	defer span.End()

	email, err := w.svc.ValidateToken(ctx, rawToken)
	if err != nil {
		return "", err
	}

	span.SetAttributes(attribute.String("email", email))

	return email, nil
}
