/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package lifecycle

import (
	"errors"
	"sync/atomic"

	"github.com/trustbloc/logutil-go/pkg/log"
	"go.uber.org/zap"
)

var logger = log.New("lifecycle")

// ErrNotStarted indicates that an attempt was made to invoke a service that has not been started,
// is still starting or has already been stopped.
var ErrNotStarted = errors.New("service has not started")

// State is the state of the service.
type State uint32

const (
	// StateNotStarted indicates that the service has not been started.
	StateNotStarted State = iota
	// StateStarting indicates that the service is in the process of starting.
	StateStarting
	// StateStarted indicates that the service has been started.
	StateStarted
	// StateStopped indicates that the service has been stopped.
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNotStarted:
		return "not-started"
	case StateStarting:
		return "starting"
	case StateStarted:
		return "started"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

type options struct {
	start func()
	stop  func()
}

// Lifecycle implements the Start/Stop lifecycle of a long running component.
type Lifecycle struct {
	*options
	name  string
	state atomic.Uint32
}

// Opt sets a Lifecycle option.
type Opt func(opts *options)

// WithStart sets the function invoked when Start() is called.
func WithStart(start func()) Opt {
	return func(opts *options) {
		opts.start = start
	}
}

// WithStop sets the function invoked when Stop() is called.
func WithStop(stop func()) Opt {
	return func(opts *options) {
		opts.stop = stop
	}
}

// New returns a new Lifecycle.
func New(name string, opts ...Opt) *Lifecycle {
	o := &options{
		start: func() {},
		stop:  func() {},
	}

	for _, opt := range opts {
		opt(o)
	}

	return &Lifecycle{
		options: o,
		name:    name,
	}
}

// Start starts the service. Calling Start on a service that is not in the not-started state is a no-op.
func (h *Lifecycle) Start() {
	if !h.state.CompareAndSwap(uint32(StateNotStarted), uint32(StateStarting)) {
		logger.Debug("Service already started", zap.String("service", h.name), zap.Stringer("state", h.State()))

		return
	}

	h.start()

	h.state.Store(uint32(StateStarted))

	logger.Debug("Service started", zap.String("service", h.name))
}

// Stop stops the service. Calling Stop on a service that is not started is a no-op.
func (h *Lifecycle) Stop() {
	if !h.state.CompareAndSwap(uint32(StateStarted), uint32(StateStopped)) {
		logger.Debug("Service not running", zap.String("service", h.name), zap.Stringer("state", h.State()))

		return
	}

	h.stop()

	logger.Debug("Service stopped", zap.String("service", h.name))
}

// State returns the state of the service.
func (h *Lifecycle) State() State {
	return State(h.state.Load())
}

// Started returns nil if the service is started, ErrNotStarted otherwise.
func (h *Lifecycle) Started() error {
	if h.State() != StateStarted {
		return ErrNotStarted
	}

	return nil
}
