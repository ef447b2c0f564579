/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log Fields.
const (
	FieldAdditionalMessage = "additionalMessage"
	FieldAttempt           = "attempt"
	FieldBusinessNetwork   = "businessNetwork"
	FieldCardName          = "cardName"
	FieldCardStoreType     = "cardStoreType"
	FieldCorrelationID     = "correlationID"
	FieldEmail             = "email"
	FieldEntityID          = "entityID"
	FieldEvent             = "event"
	FieldIdentity          = "identity"
	FieldJSONSchema        = "JSONSchema"
	FieldJSONSchemaID      = "JSONSchemaID"
	FieldKind              = "kind"
	FieldQueryName         = "queryName"
	FieldSleep             = "sleep"
	FieldStep              = "step"
	FieldTransactionID     = "transactionID"
	FieldUserLogLevel      = "userLogLevel"
)

// WithAdditionalMessage sets the AdditionalMessage field.
func WithAdditionalMessage(value string) zap.Field {
	return zap.Any(FieldAdditionalMessage, value)
}

// WithAttempt sets the attempt field.
func WithAttempt(attempt int) zap.Field {
	return zap.Int(FieldAttempt, attempt)
}

// WithBusinessNetwork sets the business network field.
func WithBusinessNetwork(value string) zap.Field {
	return zap.String(FieldBusinessNetwork, value)
}

// WithCardName sets the card name field.
func WithCardName(value string) zap.Field {
	return zap.String(FieldCardName, value)
}

// WithCardStoreType sets the card store type field.
func WithCardStoreType(value string) zap.Field {
	return zap.String(FieldCardStoreType, value)
}

// WithCorrelationID sets the correlation ID field. The same ID is logged on every step of
// a multi-step sequence.
func WithCorrelationID(value string) zap.Field {
	return zap.String(FieldCorrelationID, value)
}

// WithEmail sets the email field.
func WithEmail(value string) zap.Field {
	return zap.String(FieldEmail, value)
}

// WithEntityID sets the ledger entity ID field.
func WithEntityID(value string) zap.Field {
	return zap.String(FieldEntityID, value)
}

// WithEvent sets the Event field.
func WithEvent(event interface{}) zap.Field {
	return zap.Inline(NewObjectMarshaller(FieldEvent, event))
}

// WithIdentity sets the ledger identity field.
func WithIdentity(value string) zap.Field {
	return zap.String(FieldIdentity, value)
}

// WithJSONSchema sets the JSON schema field.
func WithJSONSchema(value string) zap.Field {
	return zap.String(FieldJSONSchema, value)
}

// WithJSONSchemaID sets the JSON schema ID field.
func WithJSONSchemaID(value string) zap.Field {
	return zap.String(FieldJSONSchemaID, value)
}

// WithKind sets the ledger entity kind field.
func WithKind(value string) zap.Field {
	return zap.String(FieldKind, value)
}

// WithQueryName sets the named query field.
func WithQueryName(value string) zap.Field {
	return zap.String(FieldQueryName, value)
}

// WithSleep sets the sleep field.
func WithSleep(sleep time.Duration) zap.Field {
	return zap.Duration(FieldSleep, sleep)
}

// WithStep sets the step field.
func WithStep(value string) zap.Field {
	return zap.String(FieldStep, value)
}

// WithTransactionID sets the transaction ID field.
func WithTransactionID(value string) zap.Field {
	return zap.String(FieldTransactionID, value)
}

// WithUserLogLevel sets the UserLogLevel field.
func WithUserLogLevel(logLevel string) zap.Field {
	return zap.String(FieldUserLogLevel, logLevel)
}

// ObjectMarshaller uses reflection to marshal an object's fields.
type ObjectMarshaller struct {
	key string
	obj interface{}
}

// NewObjectMarshaller returns a new ObjectMarshaller.
func NewObjectMarshaller(key string, obj interface{}) *ObjectMarshaller {
	return &ObjectMarshaller{key: key, obj: obj}
}

// MarshalLogObject marshals the object's fields.
func (m *ObjectMarshaller) MarshalLogObject(e zapcore.ObjectEncoder) error {
	return e.AddReflected(m.key, m.obj)
}
