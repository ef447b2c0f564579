/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"strings"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const (
	healthCheckEndpoint   = "/healthcheck"
	versionEndpoint       = "/version"
	versionSystemEndpoint = "/version/system"
)

// TracingSkipper excludes the health and version endpoints from request tracing.
func TracingSkipper(c echo.Context) bool {
	for _, endpoint := range []string{healthCheckEndpoint, versionEndpoint, versionSystemEndpoint} {
		if strings.HasSuffix(c.Path(), endpoint) {
			return true
		}
	}

	return echomw.DefaultSkipper(c)
}
