/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexliesenfeld/health"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/trustbloc/cargo-gateway/pkg/observability/health/healthutil"
)

func TestResultWriter_Write(t *testing.T) {
	rt := healthutil.NewResponseTimes()

	interceptor := rt.Interceptor()
	interceptor(func(context.Context, string, health.CheckState) health.CheckState {
		return health.CheckState{}
	})(context.Background(), "mongodb", health.CheckState{})

	writer := healthutil.NewJSONResultWriter(rt)

	rw := httptest.NewRecorder()
	now := time.Now()

	err := writer.Write(&health.CheckerResult{
		Status: health.StatusDown,
		Details: map[string]health.CheckResult{
			"mongodb": {
				Status:    health.StatusUp,
				Timestamp: now,
			},
			"ledger": {
				Status:    health.StatusDown,
				Timestamp: now,
				Error:     errors.New("failed to connect to ledger network"),
			},
		},
	}, http.StatusServiceUnavailable, rw, nil)
	require.NoError(t, err)

	require.Equal(t, http.StatusServiceUnavailable, rw.Code)
	require.Equal(t, "application/json", rw.Header().Get("Content-Type"))

	body := rw.Body.Bytes()
	require.Equal(t, "down", gjson.GetBytes(body, "status").String())
	require.Equal(t, "up", gjson.GetBytes(body, "components.mongodb.status").String())
	require.True(t, gjson.GetBytes(body, "components.mongodb.last_response_time").Exists())
	require.False(t, gjson.GetBytes(body, "components.ledger.last_response_time").Exists())
	require.Equal(t, "failed to connect to ledger network", gjson.GetBytes(body, "components.ledger.error").String())
}
