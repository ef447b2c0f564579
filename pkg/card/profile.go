/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package card

import (
	"encoding/json"
	"fmt"
	"os"
)

// ConnectionProfile describes the topology of the ledger network: channel, organizations and the
// addresses of the orderers, peers and certificate authorities.
type ConnectionProfile struct {
	Name                   string                          `json:"name"`
	Type                   string                          `json:"x-type"`
	CommitTimeout          int                             `json:"x-commitTimeout,omitempty"`
	Version                string                          `json:"version"`
	Client                 ClientConfig                    `json:"client"`
	Channels               map[string]ChannelConfig        `json:"channels,omitempty"`
	Organizations          map[string]OrganizationConfig   `json:"organizations,omitempty"`
	Orderers               map[string]EndpointConfig       `json:"orderers,omitempty"`
	Peers                  map[string]EndpointConfig       `json:"peers,omitempty"`
	CertificateAuthorities map[string]CertificateAuthority `json:"certificateAuthorities,omitempty"`
}

type ClientConfig struct {
	Organization string           `json:"organization"`
	Connection   ConnectionConfig `json:"connection"`
}

type ConnectionConfig struct {
	Timeout TimeoutConfig `json:"timeout"`
}

// TimeoutConfig holds timeouts in seconds.
type TimeoutConfig struct {
	Peer    PeerTimeoutConfig `json:"peer"`
	Orderer string            `json:"orderer"`
}

type PeerTimeoutConfig struct {
	Endorser string `json:"endorser"`
	EventHub string `json:"eventHub"`
	EventReg string `json:"eventReg"`
}

type ChannelConfig struct {
	Orderers []string                  `json:"orderers"`
	Peers    map[string]json.RawMessage `json:"peers"`
}

type OrganizationConfig struct {
	MSPID                  string   `json:"mspid"`
	Peers                  []string `json:"peers"`
	CertificateAuthorities []string `json:"certificateAuthorities"`
}

type EndpointConfig struct {
	URL      string `json:"url"`
	EventURL string `json:"eventUrl,omitempty"`
}

type CertificateAuthority struct {
	URL    string `json:"url"`
	CAName string `json:"caName"`
}

const defaultTimeout = "300"

// DefaultConnectionProfile returns the profile of a single-organization development network
// running on localhost.
func DefaultConnectionProfile() *ConnectionProfile {
	return &ConnectionProfile{
		Name:          "hlfv1",
		Type:          "hlfv1",
		CommitTimeout: 300,
		Version:       "1.0.0",
		Client: ClientConfig{
			Organization: "Org1",
			Connection: ConnectionConfig{
				Timeout: TimeoutConfig{
					Peer: PeerTimeoutConfig{
						Endorser: defaultTimeout,
						EventHub: defaultTimeout,
						EventReg: defaultTimeout,
					},
					Orderer: defaultTimeout,
				},
			},
		},
		Channels: map[string]ChannelConfig{
			"composerchannel": {
				Orderers: []string{"orderer.example.com"},
				Peers: map[string]json.RawMessage{
					"peer0.org1.example.com": json.RawMessage(`{}`),
				},
			},
		},
		Organizations: map[string]OrganizationConfig{
			"Org1": {
				MSPID:                  "Org1MSP",
				Peers:                  []string{"peer0.org1.example.com"},
				CertificateAuthorities: []string{"ca.org1.example.com"},
			},
		},
		Orderers: map[string]EndpointConfig{
			"orderer.example.com": {URL: "grpc://localhost:7050"},
		},
		Peers: map[string]EndpointConfig{
			"peer0.org1.example.com": {
				URL:      "grpc://localhost:7051",
				EventURL: "grpc://localhost:7053",
			},
		},
		CertificateAuthorities: map[string]CertificateAuthority{
			"ca.org1.example.com": {
				URL:    "http://localhost:7054",
				CAName: "ca.org1.example.com",
			},
		},
	}
}

// ParseConnectionProfile parses a JSON connection profile.
func ParseConnectionProfile(data []byte) (*ConnectionProfile, error) {
	profile := &ConnectionProfile{}

	if err := json.Unmarshal(data, profile); err != nil {
		return nil, fmt.Errorf("unmarshal connection profile: %w", err)
	}

	if profile.Name == "" {
		return nil, fmt.Errorf("connection profile: name is required")
	}

	return profile, nil
}

// LoadConnectionProfile reads a JSON connection profile from a file.
func LoadConnectionProfile(path string) (*ConnectionProfile, error) {
	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("read connection profile %s: %w", path, err)
	}

	return ParseConnectionProfile(data)
}

// Clone returns a deep copy of the profile.
func (p *ConnectionProfile) Clone() *ConnectionProfile {
	data, err := json.Marshal(p)
	if err != nil {
		// ConnectionProfile only holds JSON-safe types.
		panic(err)
	}

	cp := &ConnectionProfile{}

	if err := json.Unmarshal(data, cp); err != nil {
		panic(err)
	}

	return cp
}
