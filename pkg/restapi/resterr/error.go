/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package resterr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/ledger"
	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
)

// ImplementationErrorMessage is the opaque message returned for unexpected errors.
const ImplementationErrorMessage = "implementation error"

type ErrorCode string

const (
	SystemError     ErrorCode = "implementation-error"
	ValidationError ErrorCode = "validation-error"
	NotFound        ErrorCode = "not-found"
	Conflict        ErrorCode = "conflict"
	Unauthorized    ErrorCode = "unauthorized"
	ConnectionError ErrorCode = "connection-error"
)

func (c ErrorCode) Name() string {
	return string(c)
}

// HTTPStatus returns the status code the error code is answered with.
func (c ErrorCode) HTTPStatus() int {
	switch c {
	case ValidationError:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case ConnectionError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type CustomError struct {
	Code           ErrorCode
	IncorrectValue string
	Component      Component
	Operation      string
	Err            error
}

func NewSystemError(component Component, operation string, err error) *CustomError {
	return &CustomError{
		Code:      SystemError,
		Component: component,
		Operation: operation,
		Err:       err,
	}
}

func NewValidationError(incorrectValue string, err error) *CustomError {
	return &CustomError{
		Code:           ValidationError,
		IncorrectValue: incorrectValue,
		Err:            err,
	}
}

func NewUnauthorizedError(err error) *CustomError {
	return &CustomError{
		Code: Unauthorized,
		Err:  err,
	}
}

func NewCustomError(code ErrorCode, err error) *CustomError {
	return &CustomError{
		Code: code,
		Err:  err,
	}
}

// FromError classifies a service error by the sentinel it wraps.
func FromError(component Component, operation string, err error) *CustomError {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr
	}

	code := SystemError

	switch {
	case errors.Is(err, ledger.ErrConnection):
		code = ConnectionError
	case errors.Is(err, ledger.ErrNotFound),
		errors.Is(err, card.ErrCardNotFound),
		errors.Is(err, passport.ErrPassportNotFound):
		code = NotFound
	case errors.Is(err, ledger.ErrAlreadyExists):
		code = Conflict
	case errors.Is(err, passport.ErrUnauthorized):
		code = Unauthorized
	case errors.Is(err, ledger.ErrInvalidArgument):
		code = ValidationError
	}

	return &CustomError{
		Code:      code,
		Component: component,
		Operation: operation,
		Err:       err,
	}
}

func (e *CustomError) Error() string {
	if e.IncorrectValue != "" {
		return fmt.Sprintf("%s[%s]: %v", e.Code, e.IncorrectValue, e.Err)
	}

	if e.Component != "" {
		return fmt.Sprintf("%s[%s, %s]: %v", e.Code, e.Component, e.Operation, e.Err)
	}

	return fmt.Sprintf("%s: %v", e.Code, e.Err)
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// HTTPCodeMsg returns the status code and the body of the error response. Unexpected errors
// are answered with an opaque message.
func (e *CustomError) HTTPCodeMsg() (int, interface{}) {
	message := ImplementationErrorMessage
	if e.Code != SystemError {
		message = e.Err.Error()
	}

	return e.Code.HTTPStatus(), map[string]interface{}{
		"code":    e.Code.Name(),
		"message": message,
	}
}

// GetErrorDetails returns the message, code and component of a wrapped CustomError.
func GetErrorDetails(err error) (string, string, Component) {
	var customErr *CustomError
	if errors.As(err, &customErr) {
		return customErr.Err.Error(), string(customErr.Code), customErr.Component
	}

	return err.Error(), "", ""
}
