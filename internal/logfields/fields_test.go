/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logfields

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/trustbloc/logutil-go/pkg/log"
)

func TestStandardFields(t *testing.T) {
	const (
		module = "test_module"
	)

	t.Run("json fields", func(t *testing.T) {
		stdOut := newMockWriter()

		logger := log.New(module, log.WithStdOut(stdOut), log.WithEncoding(log.JSON))

		additionalMessage := "some additional message"
		attempt := 3
		businessNetwork := "cargo-network"
		cardName := "admin@cargo-network"
		cardStoreType := "mongodb"
		correlationID := "someCorrelationID"
		email := "a@x.com"
		entityID := "1"
		event := &mockObject{
			Field1: "event1",
			Field2: 123,
		}
		identity := "driver@cargo-network"
		jsonSchemaID := "someSchemaID"
		jsonSchema := "someSchema"
		kind := "Truck"
		queryName := "selectAllDrivers"
		sleep := time.Second * 10
		step := "issue-identity"
		transactionID := "someTransactionID"
		userLoglevel := "INFO"

		logger.Info(
			"Some message",
			WithAdditionalMessage(additionalMessage),
			WithAttempt(attempt),
			WithBusinessNetwork(businessNetwork),
			WithCardName(cardName),
			WithCardStoreType(cardStoreType),
			WithCorrelationID(correlationID),
			WithEmail(email),
			WithEntityID(entityID),
			WithEvent(event),
			WithIdentity(identity),
			WithJSONSchemaID(jsonSchemaID),
			WithJSONSchema(jsonSchema),
			WithKind(kind),
			WithQueryName(queryName),
			WithSleep(sleep),
			WithStep(step),
			WithTransactionID(transactionID),
			WithUserLogLevel(userLoglevel),
		)

		l := unmarshalLogData(t, stdOut.Bytes())

		require.Equal(t, additionalMessage, l.AdditionalMessage)
		require.Equal(t, attempt, l.Attempt)
		require.Equal(t, businessNetwork, l.BusinessNetwork)
		require.Equal(t, cardName, l.CardName)
		require.Equal(t, cardStoreType, l.CardStoreType)
		require.Equal(t, correlationID, l.CorrelationID)
		require.Equal(t, email, l.Email)
		require.Equal(t, entityID, l.EntityID)
		require.Equal(t, event, l.Event)
		require.Equal(t, identity, l.Identity)
		require.Equal(t, jsonSchemaID, l.JSONSchemaID)
		require.Equal(t, jsonSchema, l.JSONSchema)
		require.Equal(t, kind, l.Kind)
		require.Equal(t, queryName, l.QueryName)
		require.Equal(t, sleep.String(), l.Sleep)
		require.Equal(t, step, l.Step)
		require.Equal(t, transactionID, l.TransactionID)
		require.Equal(t, userLoglevel, l.UserLogLevel)
	})
}

type mockObject struct {
	Field1 string
	Field2 int
}

type logData struct {
	Level  string `json:"level"`
	Time   string `json:"time"`
	Logger string `json:"logger"`
	Caller string `json:"caller"`
	Msg    string `json:"msg"`
	Error  string `json:"error"`

	AdditionalMessage string      `json:"additionalMessage"`
	Attempt           int         `json:"attempt"`
	BusinessNetwork   string      `json:"businessNetwork"`
	CardName          string      `json:"cardName"`
	CardStoreType     string      `json:"cardStoreType"`
	CorrelationID     string      `json:"correlationID"`
	Email             string      `json:"email"`
	EntityID          string      `json:"entityID"`
	Event             *mockObject `json:"event"`
	Identity          string      `json:"identity"`
	JSONSchemaID      string      `json:"JSONSchemaID"`
	JSONSchema        string      `json:"JSONSchema"`
	Kind              string      `json:"kind"`
	QueryName         string      `json:"queryName"`
	Sleep             string      `json:"sleep"`
	Step              string      `json:"step"`
	TransactionID     string      `json:"transactionID"`
	UserLogLevel      string      `json:"userLogLevel"`
}

func unmarshalLogData(t *testing.T, b []byte) *logData {
	t.Helper()

	l := &logData{}

	require.NoError(t, json.Unmarshal(b, l))

	return l
}

type mockWriter struct {
	*bytes.Buffer
}

func (m *mockWriter) Sync() error {
	return nil
}

func newMockWriter() *mockWriter {
	return &mockWriter{Buffer: bytes.NewBuffer(nil)}
}
