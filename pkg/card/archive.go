/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package card

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/klauspost/compress/zip"
)

const (
	metadataFile    = "metadata.json"
	connectionFile  = "connection.json"
	certificateFile = "credentials/certificate"
	privateKeyFile  = "credentials/privateKey"

	maxEntrySize = 10 << 20
)

type archiveEntry struct {
	name string
	data []byte
}

// ToArchive writes the card as a zip archive in the layout used by the ledger card tooling.
func (c *Card) ToArchive() ([]byte, error) {
	if c.ConnectionProfile == nil {
		return nil, fmt.Errorf("card %s: connection profile is required", c.Metadata.UserName)
	}

	metadata, err := json.Marshal(c.Metadata)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	profile, err := json.Marshal(c.ConnectionProfile)
	if err != nil {
		return nil, fmt.Errorf("marshal connection profile: %w", err)
	}

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)

	entries := []archiveEntry{
		{metadataFile, metadata},
		{connectionFile, profile},
	}

	if c.Credentials != nil {
		if c.Credentials.Certificate != "" {
			entries = append(entries, archiveEntry{certificateFile, []byte(c.Credentials.Certificate)})
		}

		if c.Credentials.PrivateKey != "" {
			entries = append(entries, archiveEntry{privateKeyFile, []byte(c.Credentials.PrivateKey)})
		}
	}

	for _, e := range entries {
		fw, createErr := w.Create(e.name)
		if createErr != nil {
			return nil, fmt.Errorf("create archive entry %s: %w", e.name, createErr)
		}

		if _, err = fw.Write(e.data); err != nil {
			return nil, fmt.Errorf("write archive entry %s: %w", e.name, err)
		}
	}

	if err = w.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}

	return buf.Bytes(), nil
}

// FromArchive reads a card from a zip archive.
func FromArchive(data []byte) (*Card, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("open card archive: %w", err)
	}

	entries := make(map[string][]byte, len(r.File))

	for _, f := range r.File {
		content, readErr := readEntry(f)
		if readErr != nil {
			return nil, readErr
		}

		entries[f.Name] = content
	}

	metadata, ok := entries[metadataFile]
	if !ok {
		return nil, fmt.Errorf("card archive: missing %s", metadataFile)
	}

	c := &Card{}

	if err = json.Unmarshal(metadata, &c.Metadata); err != nil {
		return nil, fmt.Errorf("unmarshal card metadata: %w", err)
	}

	if c.Metadata.Version == 0 {
		c.Metadata.Version = CurrentVersion
	}

	if profile, exists := entries[connectionFile]; exists {
		c.ConnectionProfile, err = ParseConnectionProfile(profile)
		if err != nil {
			return nil, err
		}
	}

	cert, hasCert := entries[certificateFile]
	key, hasKey := entries[privateKeyFile]

	if hasCert || hasKey {
		c.Credentials = &Credentials{
			Certificate: string(cert),
			PrivateKey:  string(key),
		}
	}

	return c, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}

	defer func() {
		_ = rc.Close()
	}()

	content, err := io.ReadAll(io.LimitReader(rc, maxEntrySize+1))
	if err != nil {
		return nil, fmt.Errorf("read archive entry %s: %w", f.Name, err)
	}

	if len(content) > maxEntrySize {
		return nil, fmt.Errorf("%w: archive entry %s exceeds %d bytes", ErrInvalidArgument, f.Name, maxEntrySize)
	}

	return content, nil
}
