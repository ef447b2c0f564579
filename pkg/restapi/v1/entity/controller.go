/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package entity

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/trustbloc/cargo-gateway/pkg/doc/validator/jsonschema"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/resterr"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/mw"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/v1/util"
	"github.com/trustbloc/cargo-gateway/pkg/service/entitygateway"
	"github.com/trustbloc/cargo-gateway/pkg/service/provisioning"
)

const (
	idParam      = "id"
	resolveParam = "resolve"
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	PUT(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type payloadValidator interface {
	Validate(schemaID string, payload []byte) ([]byte, error)
}

type Config struct {
	EntityGateway entitygateway.ServiceInterface
	Provisioning  provisioning.ServiceInterface
	Validator     payloadValidator
}

// Controller serves the driver, truck and cargo endpoints.
type Controller struct {
	gateway      entitygateway.ServiceInterface
	provisioning provisioning.ServiceInterface
	validator    payloadValidator
}

type collection struct {
	path     string
	kind     ledger.Kind
	schemaID string
}

var collections = []collection{ //nolint:gochecknoglobals
	{path: "/drivers", kind: ledger.KindDriver, schemaID: jsonschema.DriverSchemaID},
	{path: "/trucks", kind: ledger.KindTruck, schemaID: jsonschema.TruckSchemaID},
	{path: "/cargo", kind: ledger.KindCargo, schemaID: jsonschema.CargoSchemaID},
}

func NewController(r router, cfg *Config) *Controller {
	c := &Controller{
		gateway:      cfg.EntityGateway,
		provisioning: cfg.Provisioning,
		validator:    cfg.Validator,
	}

	r.GET("/drivers/query", c.QueryDrivers)
	r.GET("/drivers/:id/trucks", c.ListDriverTrucks)
	r.PUT("/trucks/:id/change-driver", c.ChangeTruckDriver)

	for _, col := range collections {
		r.GET(col.path, c.list(col))
		r.GET(col.path+"/:id", c.get(col))
		r.PUT(col.path+"/:id", c.update(col))

		if col.kind == ledger.KindDriver {
			r.POST(col.path, c.CreateDriver)
			r.DELETE(col.path+"/:id", c.DeleteDriver)

			continue
		}

		r.POST(col.path, c.create(col))
		r.DELETE(col.path+"/:id", c.remove(col))
	}

	return c
}

func (c *Controller) list(col collection) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		identity, err := mw.Identity(ctx)
		if err != nil {
			return err
		}

		resolve, err := resolveFlag(ctx)
		if err != nil {
			return err
		}

		res, err := c.gateway.List(ctx.Request().Context(), identity, col.kind, resolve)
		if err != nil {
			return resterr.FromError(resterr.EntityGatewayComponent, "List", err)
		}

		return util.WriteOutput(ctx)(res, nil)
	}
}

func (c *Controller) get(col collection) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		identity, err := mw.Identity(ctx)
		if err != nil {
			return err
		}

		resolve, err := resolveFlag(ctx)
		if err != nil {
			return err
		}

		res, err := c.gateway.Get(ctx.Request().Context(), identity, col.kind, ctx.Param(idParam), resolve)
		if err != nil {
			return resterr.FromError(resterr.EntityGatewayComponent, "Get", err)
		}

		return util.WriteOutput(ctx)(res, nil)
	}
}

func (c *Controller) create(col collection) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		identity, err := mw.Identity(ctx)
		if err != nil {
			return err
		}

		payload, err := util.ReadBody(ctx, c.validator, col.schemaID)
		if err != nil {
			return err
		}

		res, err := c.gateway.Create(ctx.Request().Context(), identity, col.kind, payload)
		if err != nil {
			return resterr.FromError(resterr.EntityGatewayComponent, "Create", err)
		}

		return util.WriteOutputWithCode(http.StatusCreated, ctx)(res, nil)
	}
}

func (c *Controller) update(col collection) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		identity, err := mw.Identity(ctx)
		if err != nil {
			return err
		}

		payload, err := util.ReadBody(ctx, c.validator, col.schemaID)
		if err != nil {
			return err
		}

		res, err := c.gateway.Update(ctx.Request().Context(), identity, col.kind, ctx.Param(idParam), payload)
		if err != nil {
			return resterr.FromError(resterr.EntityGatewayComponent, "Update", err)
		}

		return util.WriteOutput(ctx)(res, nil)
	}
}

func (c *Controller) remove(col collection) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		identity, err := mw.Identity(ctx)
		if err != nil {
			return err
		}

		res, err := c.gateway.Delete(ctx.Request().Context(), identity, col.kind, ctx.Param(idParam))
		if err != nil {
			return resterr.FromError(resterr.EntityGatewayComponent, "Delete", err)
		}

		return util.WriteOutput(ctx)(res, nil)
	}
}

// CreateDriver registers a driver together with its passport, identity and card.
// POST /drivers.
func (c *Controller) CreateDriver(ctx echo.Context) error {
	identity, err := mw.Identity(ctx)
	if err != nil {
		return err
	}

	payload, err := util.ReadBody(ctx, c.validator, jsonschema.DriverSchemaID)
	if err != nil {
		return err
	}

	driver, err := c.provisioning.CreateDriver(ctx.Request().Context(), identity, payload)
	if err != nil {
		return resterr.FromError(resterr.ProvisioningComponent, "CreateDriver", err)
	}

	return util.WriteOutputWithCode(http.StatusCreated, ctx)(driver, nil)
}

// DeleteDriver removes a driver together with its passport and identity.
// DELETE /drivers/{id}.
func (c *Controller) DeleteDriver(ctx echo.Context) error {
	identity, err := mw.Identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.provisioning.DeleteDriver(ctx.Request().Context(), identity, ctx.Param(idParam))
	if err != nil {
		return resterr.FromError(resterr.ProvisioningComponent, "DeleteDriver", err)
	}

	return util.WriteOutput(ctx)(res, nil)
}

// QueryDrivers returns all drivers through the selectAllDrivers query.
// GET /drivers/query.
func (c *Controller) QueryDrivers(ctx echo.Context) error {
	identity, err := mw.Identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.gateway.Query(ctx.Request().Context(), identity, ledger.QuerySelectAllDrivers, nil)
	if err != nil {
		return resterr.FromError(resterr.EntityGatewayComponent, "Query", err)
	}

	return util.WriteOutput(ctx)(res, nil)
}

// ListDriverTrucks returns the trucks driven by a driver.
// GET /drivers/{id}/trucks.
func (c *Controller) ListDriverTrucks(ctx echo.Context) error {
	identity, err := mw.Identity(ctx)
	if err != nil {
		return err
	}

	res, err := c.gateway.Query(ctx.Request().Context(), identity, ledger.QuerySelectAllTrucksForDriver,
		map[string]string{"driver": ctx.Param(idParam)})
	if err != nil {
		return resterr.FromError(resterr.EntityGatewayComponent, "Query", err)
	}

	return util.WriteOutput(ctx)(res, nil)
}

// ChangeTruckDriver submits the transaction assigning a new driver to a truck.
// PUT /trucks/{id}/change-driver.
func (c *Controller) ChangeTruckDriver(ctx echo.Context) error {
	identity, err := mw.Identity(ctx)
	if err != nil {
		return err
	}

	var body ledger.ChangeDriverPayload

	if err = util.DecodeBody(ctx, c.validator, jsonschema.ChangeDriverSchemaID, &body); err != nil {
		return err
	}

	res, err := c.gateway.ChangeDriver(ctx.Request().Context(), identity, ctx.Param(idParam), &body)
	if err != nil {
		return resterr.FromError(resterr.EntityGatewayComponent, "ChangeDriver", err)
	}

	return util.WriteOutput(ctx)(res, nil)
}

func resolveFlag(ctx echo.Context) (bool, error) {
	v := ctx.QueryParam(resolveParam)
	if v == "" {
		return false, nil
	}

	resolve, err := strconv.ParseBool(v)
	if err != nil {
		return false, resterr.NewValidationError(resolveParam, fmt.Errorf("invalid resolve flag %q", v))
	}

	return resolve, nil
}
