/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

func TestCustomError_Error(t *testing.T) {
	err := NewSystemError("testComp", "TestOp", errors.New("some error"))
	require.Equal(t, "implementation-error[testComp, TestOp]: some error", err.Error())

	err = NewValidationError("email", errors.New("invalid email"))
	require.Equal(t, "validation-error[email]: invalid email", err.Error())

	err = NewUnauthorizedError(errors.New("unauthorized"))
	require.Equal(t, "unauthorized: unauthorized", err.Error())

	err = NewCustomError(Conflict, errors.New("duplicate"))
	require.Equal(t, "conflict: duplicate", err.Error())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		code   ErrorCode
		status int
	}{
		{"not found", fmt.Errorf("driver %q: %w", "1", ledger.ErrNotFound), NotFound, http.StatusNotFound},
		{"card not found", card.ErrCardNotFound, NotFound, http.StatusNotFound},
		{"passport not found", passport.ErrPassportNotFound, NotFound, http.StatusNotFound},
		{"conflict", ledger.ErrAlreadyExists, Conflict, http.StatusConflict},
		{"connection", fmt.Errorf("%w: identity revoked", ledger.ErrConnection), ConnectionError,
			http.StatusServiceUnavailable},
		{"unauthorized", passport.ErrUnauthorized, Unauthorized, http.StatusUnauthorized},
		{"invalid argument", ledger.ErrInvalidArgument, ValidationError, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), SystemError, http.StatusInternalServerError},
		{"dangling relationship", fmt.Errorf("resolve truck: %w", ledger.ErrDanglingRelationship), SystemError,
			http.StatusInternalServerError},
		{"oversized card archive entry", fmt.Errorf("%w: archive entry metadata.json exceeds 10485760 bytes",
			card.ErrInvalidArgument), ValidationError, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromError(EntityGatewayComponent, "Op", tt.err)
			require.Equal(t, tt.code, err.Code)
			require.ErrorIs(t, err, tt.err)

			status, _ := err.HTTPCodeMsg()
			require.Equal(t, tt.status, status)
		})
	}

	t.Run("custom error is kept", func(t *testing.T) {
		orig := NewValidationError("id", errors.New("id is required"))
		require.Same(t, orig, FromError(EntityGatewayComponent, "Op", fmt.Errorf("wrap: %w", orig)))
	})
}

func TestGetErrorDetails(t *testing.T) {
	msg, code, comp := GetErrorDetails(NewSystemError(ProvisioningComponent, "CreateDriver", errors.New("failed")))
	require.Equal(t, "failed", msg)
	require.Equal(t, SystemError.Name(), code)
	require.Equal(t, ProvisioningComponent, comp)

	msg, code, comp = GetErrorDetails(errors.New("plain"))
	require.Equal(t, "plain", msg)
	require.Empty(t, code)
	require.Empty(t, comp)
}
