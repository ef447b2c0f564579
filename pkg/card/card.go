/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package card

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCardNotFound is returned when a card is requested that does not exist in the store.
	ErrCardNotFound = errors.New("card not found")
	// ErrInvalidArgument is returned for malformed cards and card archives.
	ErrInvalidArgument = errors.New("invalid argument")
)

// CurrentVersion is the card metadata version written by this gateway.
const CurrentVersion = 1

// Store persists identity cards keyed by card name.
type Store interface {
	Get(ctx context.Context, cardName string) (*Card, error)
	Put(ctx context.Context, cardName string, c *Card) error
	GetAll(ctx context.Context) (map[string]*Card, error)
	Delete(ctx context.Context, cardName string) error
	Has(ctx context.Context, cardName string) (bool, error)
}

// Metadata describes the principal a card belongs to.
type Metadata struct {
	Version          int      `json:"version"`
	UserName         string   `json:"userName"`
	Description      string   `json:"description,omitempty"`
	BusinessNetwork  string   `json:"businessNetwork,omitempty"`
	EnrollmentSecret string   `json:"enrollmentSecret,omitempty"`
	Roles            []string `json:"roles,omitempty"`
}

// Credentials hold the enrolled certificate and private key (PEM), when the identity has been enrolled.
type Credentials struct {
	Certificate string
	PrivateKey  string
}

// Card bundles a connection profile and the credentials of a single ledger identity.
type Card struct {
	Metadata          Metadata
	ConnectionProfile *ConnectionProfile
	Credentials       *Credentials
}

// New returns a card for the given user on the given business network.
func New(userName, businessNetwork, enrollmentSecret string, profile *ConnectionProfile) *Card {
	return &Card{
		Metadata: Metadata{
			Version:          CurrentVersion,
			UserName:         userName,
			BusinessNetwork:  businessNetwork,
			EnrollmentSecret: enrollmentSecret,
		},
		ConnectionProfile: profile,
	}
}

// Name returns the conventional name of the card: <userName>@<businessNetwork>, or the user name alone
// for a card which is not bound to a business network.
func (c *Card) Name() string {
	if c.Metadata.BusinessNetwork == "" {
		return c.Metadata.UserName
	}

	return c.Metadata.UserName + "@" + c.Metadata.BusinessNetwork
}

// Validate checks that the card carries enough information to connect.
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Metadata.UserName) == "" {
		return fmt.Errorf("card: user name is required")
	}

	if c.ConnectionProfile == nil {
		return fmt.Errorf("card %s: connection profile is required", c.Metadata.UserName)
	}

	if c.Metadata.EnrollmentSecret == "" && (c.Credentials == nil || c.Credentials.Certificate == "") {
		return fmt.Errorf("card %s: either an enrollment secret or credentials are required",
			c.Metadata.UserName)
	}

	return nil
}

// Clone returns a deep copy of the card.
func (c *Card) Clone() *Card {
	cp := &Card{
		Metadata: c.Metadata,
	}

	if c.Metadata.Roles != nil {
		cp.Metadata.Roles = append([]string{}, c.Metadata.Roles...)
	}

	if c.ConnectionProfile != nil {
		cp.ConnectionProfile = c.ConnectionProfile.Clone()
	}

	if c.Credentials != nil {
		creds := *c.Credentials
		cp.Credentials = &creds
	}

	return cp
}
