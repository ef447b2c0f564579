/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package spi

import (
	"time"
)

const (
	// LedgerEventTopic is the topic on which events emitted by ledger transactions are published.
	LedgerEventTopic = "cargo-ledger"
)

// EventType event type.
type EventType string

const (
	// ChangeNotification is emitted by the ChangeTruckDriver transaction.
	ChangeNotification = EventType("org.peckstadt.cargo.ChangeNotification")
)

type Payload []byte

type Event struct {
	// SpecVersion is spec version(required).
	SpecVersion string `json:"specVersion"`

	// ID identifies the event(required).
	ID string `json:"id"`

	// Source is URI for producer(required).
	Source string `json:"source"`

	// Type defines event type(required).
	Type EventType `json:"type"`

	// Time defines time of occurrence(required).
	Time time.Time `json:"time"`

	// DataContentType is data content type(optional).
	DataContentType string `json:"dataContentType,omitempty"`

	// Data defines message(optional).
	Data []byte `json:"data,omitempty"`

	// TransactionID defines transaction ID(optional).
	TransactionID string `json:"txnId,omitempty"`

	// Subject defines subject(optional).
	Subject string `json:"subject,omitempty"`
}

// Copy an event.
func (m *Event) Copy() *Event {
	data := make([]byte, len(m.Data))
	copy(data, m.Data)

	return &Event{
		SpecVersion:     m.SpecVersion,
		ID:              m.ID,
		Source:          m.Source,
		Type:            m.Type,
		Time:            m.Time,
		DataContentType: m.DataContentType,
		Data:            data,
		TransactionID:   m.TransactionID,
		Subject:         m.Subject,
	}
}

// NewEventWithPayload creates a new Event with a JSON payload.
func NewEventWithPayload(id string, source string, eventType EventType, payload Payload) *Event {
	event := NewEvent(id, source, eventType)

	event.Data = payload
	event.DataContentType = "application/json"

	return event
}

// NewEvent creates a new Event and sets all required fields.
func NewEvent(id string, source string, eventType EventType) *Event {
	return &Event{
		SpecVersion: "1.0",
		ID:          id,
		Source:      source,
		Type:        eventType,
		Time:        time.Now().UTC(),
	}
}
