/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/alexliesenfeld/health"
)

type healthStatus struct {
	Status     health.AvailabilityStatus `json:"status"`
	Components map[string]checkResult    `json:"components,omitempty"`
}

type checkResult struct {
	Status              health.AvailabilityStatus `json:"status"`
	Timestamp           *time.Time                `json:"timestamp,omitempty"`
	Error               string                    `json:"error,omitempty"`
	LastResponseTime    string                    `json:"last_response_time,omitempty"`
	AverageResponseTime string                    `json:"avg_response_time,omitempty"`
}

// JSONResultWriter writes the checker result as JSON together with the recorded response times
// of each component.
type JSONResultWriter struct {
	responseTimes *ResponseTimes
}

func NewJSONResultWriter(rt *ResponseTimes) *JSONResultWriter {
	return &JSONResultWriter{
		responseTimes: rt,
	}
}

func (rw *JSONResultWriter) Write(result *health.CheckerResult, status int, w http.ResponseWriter, _ *http.Request) error { //nolint:lll
	r := &healthStatus{Status: result.Status}

	if len(result.Details) > 0 {
		r.Components = map[string]checkResult{}

		for name, cr := range result.Details {
			res := checkResult{Status: cr.Status}

			if !cr.Timestamp.IsZero() {
				ts := cr.Timestamp
				res.Timestamp = &ts
			}

			if cr.Error != nil {
				res.Error = cr.Error.Error()
			}

			if t, ok := rw.responseTimes.Get(name); ok {
				res.LastResponseTime = t.LastResponseTime.String()
				res.AverageResponseTime = t.AverageResponseTime.String()
			}

			r.Components[name] = res
		}
	}

	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("cannot marshal response: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_, err = w.Write(b)
	return err
}
