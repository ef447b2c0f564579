/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package version

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type router interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

type Config struct {
	Version                string
	ServerVersion          string
	BusinessNetwork        string
	BusinessNetworkVersion string
}

type Controller struct {
	version       string
	serverVersion string
	network       string
	networkVer    string
}

type versionResponse struct {
	Version string `json:"version"`
}

type serverVersionResponse struct {
	Version                string `json:"version"`
	BusinessNetwork        string `json:"businessNetwork,omitempty"`
	BusinessNetworkVersion string `json:"businessNetworkVersion,omitempty"`
}

func NewController(router router, cfg Config) *Controller {
	c := &Controller{
		version:       cfg.Version,
		serverVersion: cfg.ServerVersion,
		network:       cfg.BusinessNetwork,
		networkVer:    cfg.BusinessNetworkVersion,
	}

	router.GET("/version", c.Version)
	router.GET("/version/system", c.ServerVersion)

	return c
}

func (c *Controller) Version(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, versionResponse{Version: c.version})
}

// ServerVersion reports the gateway build together with the deployed business network.
func (c *Controller) ServerVersion(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, serverVersionResponse{
		Version:                c.serverVersion,
		BusinessNetwork:        c.network,
		BusinessNetworkVersion: c.networkVer,
	})
}
