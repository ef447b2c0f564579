/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package mw

import (
	"context"
	"errors"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/pkg/restapi/resterr"
)

var logger = log.New("rest-auth")

const (
	bearerPrefix = "Bearer "
	identityKey  = "cargo-identity"
)

var publicPaths = []string{ //nolint:gochecknoglobals
	"/healthcheck",
	"/version",
	"/version/system",
	"/passports/token",
}

type tokenValidator interface {
	ValidateToken(ctx context.Context, rawToken string) (string, error)
}

// JWTAuth returns a middleware that authenticates requests using the bearer token from the
// Authorization header. The id claim of the token becomes the identity of the request.
// Public routes are matched exactly under basePath.
func JWTAuth(validator tokenValidator, basePath string) echo.MiddlewareFunc {
	public := make(map[string]struct{}, len(publicPaths))

	for _, p := range publicPaths {
		public[strings.TrimSuffix(basePath, "/")+p] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := public[strings.TrimSuffix(c.Request().URL.Path, "/")]; ok {
				return next(c)
			}

			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				return resterr.NewUnauthorizedError(errors.New("missing bearer token"))
			}

			identity, err := validator.ValidateToken(c.Request().Context(),
				strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)))
			if err != nil {
				logger.Debugc(c.Request().Context(), "Token rejected", log.WithError(err))

				return resterr.NewUnauthorizedError(errors.New("invalid token"))
			}

			c.Set(identityKey, identity)

			return next(c)
		}
	}
}

// Identity returns the identity authenticated by JWTAuth.
func Identity(c echo.Context) (string, error) {
	identity, ok := c.Get(identityKey).(string)
	if !ok || identity == "" {
		return "", resterr.NewUnauthorizedError(errors.New("missing identity"))
	}

	return identity, nil
}
