/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/trustbloc/cargo-gateway/pkg/card"
)

// Namespace is the namespace of the cargo business network model.
const Namespace = "org.peckstadt.cargo"

const (
	// ChangeTruckDriverClass is the class of the change-driver transaction.
	ChangeTruckDriverClass = Namespace + ".ChangeTruckDriver"
	// ChangeNotificationClass is the class of the event emitted by ChangeTruckDriver.
	ChangeNotificationClass = Namespace + ".ChangeNotification"
	// AddressClass is the class of the Address concept.
	AddressClass = Namespace + ".Address"
)

var (
	// ErrNotFound is returned when a resource, identity or query does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource with the same identifier already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrConnection is returned when the ledger network cannot be reached or the card is not usable.
	ErrConnection = errors.New("connection error")
	// ErrInvalidArgument is returned for malformed resources, payloads and query parameters.
	// It is the same error as card.ErrInvalidArgument.
	ErrInvalidArgument = card.ErrInvalidArgument
	// ErrDanglingRelationship is returned when a stored relationship references a resource that
	// no longer exists.
	ErrDanglingRelationship = errors.New("dangling relationship")
)

// IdentityState is the state of an issued ledger identity.
type IdentityState string

const (
	IdentityIssued    IdentityState = "ISSUED"
	IdentityActivated IdentityState = "ACTIVATED"
	IdentityRevoked   IdentityState = "REVOKED"
)

// Identity is an entry of the ledger identity registry.
type Identity struct {
	IdentityID  string        `json:"identityId"`
	Name        string        `json:"name"`
	Issuer      string        `json:"issuer"`
	State       IdentityState `json:"state"`
	Participant string        `json:"participant"`
	IssuedAt    time.Time     `json:"issuedAt"`
}

// IssuedIdentity holds the one-time enrollment secret of a freshly issued identity.
type IssuedIdentity struct {
	UserID     string
	UserSecret string
}

// TransactionResult describes a committed transaction.
type TransactionResult struct {
	TransactionID string    `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

// Transaction is a ledger-side transaction submitted by the gateway.
type Transaction interface {
	Class() string
}

// ChangeTruckDriver reassigns the driver of a truck.
type ChangeTruckDriver struct {
	Truck  Relationship
	Driver Relationship
}

// Class returns the transaction class.
func (t *ChangeTruckDriver) Class() string {
	return ChangeTruckDriverClass
}

// NetworkDefinition describes the deployed business network.
type NetworkDefinition struct {
	Name      string
	Version   string
	Namespace string
	Queries   map[string]Query
}

// Registry is a participant or asset registry scoped to one session.
type Registry interface {
	Kind() Kind
	GetAll(ctx context.Context) ([]Resource, error)
	Get(ctx context.Context, id string) (Resource, error)
	Exists(ctx context.Context, id string) (bool, error)
	Add(ctx context.Context, r Resource) error
	Update(ctx context.Context, r Resource) error
	Remove(ctx context.Context, id string) error
	ResolveAll(ctx context.Context) ([]interface{}, error)
	Resolve(ctx context.Context, id string) (interface{}, error)
}

// Session is a connection to the ledger network authenticated as a single identity.
type Session interface {
	Definition() NetworkDefinition
	Registry(ctx context.Context, kind Kind) (Registry, error)
	Query(ctx context.Context, name string, params map[string]interface{}) ([]Resource, error)
	SubmitTransaction(ctx context.Context, tx Transaction) (*TransactionResult, error)
	IssueIdentity(ctx context.Context, participant Relationship, userID string) (*IssuedIdentity, error)
	GetIdentity(ctx context.Context, name string) (*Identity, error)
	RevokeIdentity(ctx context.Context, identityID string) error
	Disconnect(ctx context.Context) error
}

// Network opens identity-scoped sessions to the ledger network.
type Network interface {
	Connect(ctx context.Context, c *card.Card) (Session, error)
}
