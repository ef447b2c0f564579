/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package util

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/trustbloc/cargo-gateway/pkg/restapi/resterr"
)

const (
	requestBody = "requestBody"

	maxBodySize = 1 << 20
)

type payloadValidator interface {
	Validate(schemaID string, payload []byte) ([]byte, error)
}

// ReadBody reads the request body and validates it against the given schema. The normalized
// payload is returned.
func ReadBody(ctx echo.Context, validator payloadValidator, schemaID string) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(ctx.Request().Body, maxBodySize))
	if err != nil {
		return nil, resterr.NewValidationError(requestBody, fmt.Errorf("read body: %w", err))
	}

	payload, err := validator.Validate(schemaID, body)
	if err != nil {
		return nil, resterr.NewValidationError(requestBody, err)
	}

	return payload, nil
}

// DecodeBody reads and validates the request body and decodes the normalized payload into v.
func DecodeBody(ctx echo.Context, validator payloadValidator, schemaID string, v interface{}) error {
	payload, err := ReadBody(ctx, validator, schemaID)
	if err != nil {
		return err
	}

	if err = json.Unmarshal(payload, v); err != nil {
		return resterr.NewValidationError(requestBody, err)
	}

	return nil
}

func WriteOutput(ctx echo.Context) func(output interface{}, err error) error {
	return WriteOutputWithCode(http.StatusOK, ctx)
}

func WriteOutputWithCode(code int, ctx echo.Context) func(output interface{}, err error) error {
	return func(output interface{}, err error) error {
		if err != nil {
			return err
		}

		b, err := json.Marshal(output)
		if err != nil {
			return err
		}

		return ctx.JSONBlob(code, b)
	}
}
