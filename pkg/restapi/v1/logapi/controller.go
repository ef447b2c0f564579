/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logapi

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/restapi/resterr"
)

var logger = log.New("logapi")

type router interface {
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// Controller changes the log levels of a running gateway.
type Controller struct{}

func NewController(r router) *Controller {
	c := &Controller{}

	r.POST("/loglevels", c.PostLogLevels)

	return c
}

// PostLogLevels updates log levels. The body is a log spec, for example
// "entity-gateway=DEBUG:memledger=DEBUG:INFO".
// (POST /loglevels).
func (c *Controller) PostLogLevels(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return fmt.Errorf("failed to read body: %w", err)
	}

	spec := strings.TrimSpace(string(body))

	if err = log.SetSpec(spec); err != nil {
		return resterr.NewValidationError("log spec", err)
	}

	logger.Infoc(ctx.Request().Context(), "Log levels modified", logfields.WithUserLogLevel(spec))

	return ctx.NoContent(http.StatusOK)
}
