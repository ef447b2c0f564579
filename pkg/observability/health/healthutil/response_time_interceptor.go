/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package healthutil

import (
	"context"
	"sync"
	"time"

	"github.com/alexliesenfeld/health"
)

type ResponseTimeState struct {
	LastResponseTime    time.Duration
	AverageResponseTime time.Duration
}

// ResponseTimes records the response times of health checks. It is shared by the interceptor
// that measures the checks and the result writer that reports them.
type ResponseTimes struct {
	mu     sync.Mutex
	states map[string]ResponseTimeState
}

func NewResponseTimes() *ResponseTimes {
	return &ResponseTimes{states: map[string]ResponseTimeState{}}
}

func (rt *ResponseTimes) Get(name string) (ResponseTimeState, bool) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	s, ok := rt.states[name]

	return s, ok
}

func (rt *ResponseTimes) record(name string, elapsed time.Duration) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	s, ok := rt.states[name]
	if !ok {
		rt.states[name] = ResponseTimeState{
			LastResponseTime:    elapsed,
			AverageResponseTime: elapsed,
		}

		return
	}

	rt.states[name] = ResponseTimeState{
		LastResponseTime:    elapsed,
		AverageResponseTime: (s.AverageResponseTime + elapsed) / 2, //nolint:mnd
	}
}

// Interceptor returns a health check interceptor recording the duration of every check run.
func (rt *ResponseTimes) Interceptor() health.Interceptor {
	return func(next health.InterceptorFunc) health.InterceptorFunc {
		return func(ctx context.Context, name string, state health.CheckState) health.CheckState {
			now := time.Now()
			result := next(ctx, name, state)

			rt.record(name, time.Since(now))

			return result
		}
	}
}
