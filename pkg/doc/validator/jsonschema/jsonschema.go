/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package jsonschema

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"
	"github.com/trustbloc/logutil-go/pkg/log"
	"github.com/xeipuuv/gojsonschema"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
)

var logger = log.New("jsonschema")

const schemaBaseURL = "https://cargo.peckstadt.org/schemas/"

// Schema IDs of the request payloads accepted by the REST API.
const (
	DriverSchemaID       = schemaBaseURL + "driver.schema.json"
	TruckSchemaID        = schemaBaseURL + "truck.schema.json"
	CargoSchemaID        = schemaBaseURL + "cargo.schema.json"
	ChangeDriverSchemaID = schemaBaseURL + "change-driver.schema.json"
	TokenRequestSchemaID = schemaBaseURL + "token-request.schema.json"
)

// ErrInvalidPayload is returned when a payload is not JSON or does not conform to its schema.
var ErrInvalidPayload = errors.New("invalid payload")

//go:embed schemas/*.json
var schemaFS embed.FS

type schemaLoader func(schemaID string) ([]byte, error)

// PayloadValidator validates request payloads against the embedded schemas. A schema is compiled
// on first use and reused afterwards.
type PayloadValidator struct {
	mu      sync.RWMutex
	schemas map[string]*gojsonschema.Schema
	load    schemaLoader
}

// NewPayloadValidator returns a validator for the embedded payload schemas.
func NewPayloadValidator() *PayloadValidator {
	return &PayloadValidator{
		schemas: make(map[string]*gojsonschema.Schema),
		load:    embeddedSchema,
	}
}

// Validate trims the string values of the payload, validates the result against the schema and
// returns the normalized payload.
func (v *PayloadValidator) Validate(schemaID string, payload []byte) ([]byte, error) {
	schema, err := v.schema(schemaID)
	if err != nil {
		return nil, err
	}

	var doc interface{}

	if err = json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	doc = trimStrings(doc)

	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if !result.Valid() {
		return nil, fmt.Errorf("%w: [%s]", ErrInvalidPayload, describe(result.Errors()))
	}

	normalized, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return normalized, nil
}

func (v *PayloadValidator) schema(schemaID string) (*gojsonschema.Schema, error) {
	v.mu.RLock()
	s, ok := v.schemas[schemaID]
	v.mu.RUnlock()

	if ok {
		return s, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if s, ok = v.schemas[schemaID]; ok {
		return s, nil
	}

	raw, err := v.load(schemaID)
	if err != nil {
		return nil, err
	}

	if id := gjson.GetBytes(raw, "$id").String(); id != schemaID {
		return nil, fmt.Errorf("schema %s declares $id %q", schemaID, id)
	}

	s, err = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", schemaID, err)
	}

	v.schemas[schemaID] = s

	logger.Debug("Compiled JSON schema", logfields.WithJSONSchemaID(schemaID),
		logfields.WithJSONSchema(string(raw)))

	return s, nil
}

func embeddedSchema(schemaID string) ([]byte, error) {
	name, ok := strings.CutPrefix(schemaID, schemaBaseURL)
	if !ok {
		return nil, fmt.Errorf("unknown schema %s", schemaID)
	}

	raw, err := schemaFS.ReadFile("schemas/" + name)
	if err != nil {
		return nil, fmt.Errorf("unknown schema %s: %w", schemaID, err)
	}

	return raw, nil
}

func describe(errs []gojsonschema.ResultError) string {
	return strings.Join(lo.Map(errs, func(e gojsonschema.ResultError, _ int) string {
		return e.String()
	}), "; ")
}

func trimStrings(v interface{}) interface{} {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case map[string]interface{}:
		for k, e := range t {
			t[k] = trimStrings(e)
		}

		return t
	case []interface{}:
		for i, e := range t {
			t[i] = trimStrings(e)
		}

		return t
	default:
		return v
	}
}
