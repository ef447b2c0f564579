/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package card

import (
	"encoding/json"
	"fmt"
)

// Record is the flat storage form of a card used by the document and key-value stores.
type Record struct {
	CardName          string   `json:"cardName" bson:"cardName"`
	Version           int      `json:"version" bson:"version"`
	UserName          string   `json:"userName" bson:"userName"`
	Description       string   `json:"description,omitempty" bson:"description,omitempty"`
	BusinessNetwork   string   `json:"businessNetwork,omitempty" bson:"businessNetwork,omitempty"`
	EnrollmentSecret  string   `json:"enrollmentSecret,omitempty" bson:"enrollmentSecret,omitempty"`
	Roles             []string `json:"roles,omitempty" bson:"roles,omitempty"`
	ConnectionProfile string   `json:"connectionProfile" bson:"connectionProfile"`
	Certificate       string   `json:"certificate,omitempty" bson:"certificate,omitempty"`
	PrivateKey        string   `json:"privateKey,omitempty" bson:"privateKey,omitempty"`
}

// ToRecord converts the card into its storage record.
func ToRecord(cardName string, c *Card) (*Record, error) {
	if c == nil {
		return nil, fmt.Errorf("card %s is nil", cardName)
	}

	profile, err := json.Marshal(c.ConnectionProfile)
	if err != nil {
		return nil, fmt.Errorf("marshal connection profile: %w", err)
	}

	r := &Record{
		CardName:          cardName,
		Version:           c.Metadata.Version,
		UserName:          c.Metadata.UserName,
		Description:       c.Metadata.Description,
		BusinessNetwork:   c.Metadata.BusinessNetwork,
		EnrollmentSecret:  c.Metadata.EnrollmentSecret,
		Roles:             c.Metadata.Roles,
		ConnectionProfile: string(profile),
	}

	if c.Credentials != nil {
		r.Certificate = c.Credentials.Certificate
		r.PrivateKey = c.Credentials.PrivateKey
	}

	return r, nil
}

// ToCard converts the storage record back into a card.
func (r *Record) ToCard() (*Card, error) {
	c := &Card{
		Metadata: Metadata{
			Version:          r.Version,
			UserName:         r.UserName,
			Description:      r.Description,
			BusinessNetwork:  r.BusinessNetwork,
			EnrollmentSecret: r.EnrollmentSecret,
			Roles:            r.Roles,
		},
	}

	if r.ConnectionProfile != "" && r.ConnectionProfile != "null" {
		profile, err := ParseConnectionProfile([]byte(r.ConnectionProfile))
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", r.CardName, err)
		}

		c.ConnectionProfile = profile
	}

	if r.Certificate != "" || r.PrivateKey != "" {
		c.Credentials = &Credentials{
			Certificate: r.Certificate,
			PrivateKey:  r.PrivateKey,
		}
	}

	return c, nil
}
