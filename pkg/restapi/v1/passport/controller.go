/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package passport

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/trustbloc/cargo-gateway/pkg/doc/validator/jsonschema"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/resterr"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/mw"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/util"
	passportsvc "github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

type router interface {
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type passportService interface {
	Get(ctx context.Context, email string) (*passportsvc.Passport, error)
	Login(ctx context.Context, email, password string) (*passportsvc.Token, error)
}

type payloadValidator interface {
	Validate(schemaID string, payload []byte) ([]byte, error)
}

type Config struct {
	PassportService passportService
	Validator       payloadValidator
}

type Controller struct {
	passports passportService
	validator payloadValidator
}

type tokenRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	Passport *passportsvc.Passport `json:"passport"`
}

func NewController(r router, cfg *Config) *Controller {
	c := &Controller{
		passports: cfg.PassportService,
		validator: cfg.Validator,
	}

	r.POST("/passports/token", c.Token)
	r.POST("/passports/user", c.User)

	return c
}

// Token exchanges email and password for a signed token.
// POST /passports/token.
func (c *Controller) Token(ctx echo.Context) error {
	var req tokenRequest

	if err := util.DecodeBody(ctx, c.validator, jsonschema.TokenRequestSchemaID, &req); err != nil {
		return err
	}

	token, err := c.passports.Login(ctx.Request().Context(), req.Email, req.Password)
	if err != nil {
		return resterr.FromError(resterr.PassportSvcComponent, "Login", err)
	}

	return util.WriteOutput(ctx)(token, nil)
}

// User returns the passport of the authenticated caller.
// POST /passports/user.
func (c *Controller) User(ctx echo.Context) error {
	identity, err := mw.Identity(ctx)
	if err != nil {
		return err
	}

	p, err := c.passports.Get(ctx.Request().Context(), identity)
	if err != nil {
		return resterr.FromError(resterr.PassportSvcComponent, "Get", err)
	}

	return util.WriteOutput(ctx)(&userResponse{Passport: p}, nil)
}
