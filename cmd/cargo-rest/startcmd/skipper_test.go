/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestTracingSkipper(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		result bool
	}{
		{
			name:   "version endpoint",
			path:   "/version",
			result: true,
		},
		{
			name:   "versionSystem endpoint",
			path:   "/version/system",
			result: true,
		},
		{
			name:   "healthcheck endpoint with prefix",
			path:   "/api/healthcheck",
			result: true,
		},
		{
			name:   "drivers endpoint",
			path:   "/drivers/:id",
			result: false,
		},
		{
			name:   "other endpoint",
			path:   "/some/other/path",
			result: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			ctx := echo.New().NewContext(req, httptest.NewRecorder())
			ctx.SetPath(tt.path)

			if got := TracingSkipper(ctx); got != tt.result {
				t.Errorf("TracingSkipper() = %v, want %v", got, tt.result)
			}
		})
	}
}
