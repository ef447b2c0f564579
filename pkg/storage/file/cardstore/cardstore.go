/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cardstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/samber/lo"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
)

const (
	cardSuffix = ".card"
	dirPerm    = 0o700
	filePerm   = 0o600
)

var logger = log.New("file-card-store")

var _ card.Store = (*Store)(nil)

// Store keeps one card archive file per card in a directory.
type Store struct {
	dir string
}

// New returns a file card store rooted at dir. The directory is created if missing.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("create card directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Get returns the card stored under the given name.
func (s *Store) Get(ctx context.Context, cardName string) (*card.Card, error) {
	logger.Debugc(ctx, "Retrieving card", logfields.WithCardName(cardName))

	path, err := s.path(cardName)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
		}

		return nil, fmt.Errorf("read card file: %w", err)
	}

	return card.FromArchive(data)
}

// Put writes the card archive, replacing any previous file for the card.
func (s *Store) Put(ctx context.Context, cardName string, c *card.Card) error {
	logger.Debugc(ctx, "Putting card", logfields.WithCardName(cardName))

	path, err := s.path(cardName)
	if err != nil {
		return err
	}

	if c == nil {
		return fmt.Errorf("card %s is nil", cardName)
	}

	data, err := c.ToArchive()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("write card file: %w", err)
	}

	if err = tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()

		return fmt.Errorf("chmod card file: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close card file: %w", err)
	}

	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename card file: %w", err)
	}

	return nil
}

// GetAll returns all cards keyed by card name.
func (s *Store) GetAll(ctx context.Context) (map[string]*card.Card, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read card directory: %w", err)
	}

	names := lo.FilterMap(entries, func(e os.DirEntry, _ int) (string, bool) {
		if e.IsDir() || !strings.HasSuffix(e.Name(), cardSuffix) {
			return "", false
		}

		return strings.TrimSuffix(e.Name(), cardSuffix), true
	})

	result := make(map[string]*card.Card, len(names))

	for _, name := range names {
		c, getErr := s.Get(ctx, name)
		if getErr != nil {
			return nil, getErr
		}

		result[name] = c
	}

	return result, nil
}

// Delete removes the card file.
func (s *Store) Delete(ctx context.Context, cardName string) error {
	logger.Debugc(ctx, "Deleting card", logfields.WithCardName(cardName))

	path, err := s.path(cardName)
	if err != nil {
		return err
	}

	if err = os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
		}

		return fmt.Errorf("remove card file: %w", err)
	}

	return nil
}

// Has returns true if a card file exists for the given name.
func (s *Store) Has(_ context.Context, cardName string) (bool, error) {
	path, err := s.path(cardName)
	if err != nil {
		return false, err
	}

	if _, err = os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}

		return false, fmt.Errorf("stat card file: %w", err)
	}

	return true, nil
}

func (s *Store) path(cardName string) (string, error) {
	if cardName == "" || strings.ContainsAny(cardName, `/\`) || cardName == "." || cardName == ".." {
		return "", fmt.Errorf("invalid card name %q", cardName)
	}

	return filepath.Join(s.dir, cardName+cardSuffix), nil
}
