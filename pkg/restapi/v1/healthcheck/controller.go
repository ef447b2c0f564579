/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthcheck

import (
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/labstack/echo/v4"

	"github.com/trustbloc/cargo-gateway/pkg/observability/health/healthutil"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultCacheDuration = time.Second
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Config struct {
	Checks        []health.Check
	Timeout       time.Duration
	CacheDuration time.Duration
}

// Controller for health check API.
type Controller struct {
	checker health.Checker
	handler echo.HandlerFunc
}

func NewController(r router, cfg *Config) *Controller {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	cacheDuration := cfg.CacheDuration
	if cacheDuration <= 0 {
		cacheDuration = defaultCacheDuration
	}

	rt := healthutil.NewResponseTimes()

	opts := []health.CheckerOption{
		health.WithTimeout(timeout),
		health.WithCacheDuration(cacheDuration),
		health.WithInterceptors(rt.Interceptor()),
	}

	for _, check := range cfg.Checks {
		opts = append(opts, health.WithCheck(check))
	}

	checker := health.NewChecker(opts...)

	c := &Controller{
		checker: checker,
		handler: echo.WrapHandler(health.NewHandler(checker,
			health.WithResultWriter(healthutil.NewJSONResultWriter(rt)))),
	}

	r.GET("/healthcheck", c.GetHealthcheck)

	return c
}

// GetHealthcheck returns the health check status.
// GET /healthcheck.
func (c *Controller) GetHealthcheck(ctx echo.Context) error {
	return c.handler(ctx)
}

// Stop stops the health checker.
func (c *Controller) Stop() {
	c.checker.Stop()
}
