/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cardstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	redisapi "github.com/redis/go-redis/v9"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/storage/redis"
)

const (
	keyPrefix = "cargo:card"
	indexKey  = "cargo:cards"
)

var logger = log.New("redis-card-store")

var _ card.Store = (*Store)(nil)

// Store keeps each card as a JSON record under its own key. The set of card names is kept in a
// separate index set so that GetAll works without SCAN.
type Store struct {
	redisClient *redis.Client
}

// New returns a new Redis card store.
func New(redisClient *redis.Client) *Store {
	return &Store{
		redisClient: redisClient,
	}
}

// Get returns the card stored under the given name.
func (s *Store) Get(ctx context.Context, cardName string) (*card.Card, error) {
	logger.Debugc(ctx, "Retrieving card", logfields.WithCardName(cardName))

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.redisClient.Timeout())
	defer cancel()

	return s.get(ctxWithTimeout, cardName)
}

func (s *Store) get(ctx context.Context, cardName string) (*card.Card, error) {
	b, err := s.redisClient.API().Get(ctx, resolveRedisKey(cardName)).Bytes()
	if err != nil {
		if errors.Is(err, redisapi.Nil) {
			return nil, fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
		}

		return nil, fmt.Errorf("card get: %w", err)
	}

	rec := &card.Record{}

	if err = json.Unmarshal(b, rec); err != nil {
		return nil, fmt.Errorf("card decode: %w", err)
	}

	return rec.ToCard()
}

// Put replaces any card stored under the given name.
func (s *Store) Put(ctx context.Context, cardName string, c *card.Card) error {
	logger.Debugc(ctx, "Putting card", logfields.WithCardName(cardName))

	rec, err := card.ToRecord(cardName, c)
	if err != nil {
		return err
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("card encode: %w", err)
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.redisClient.Timeout())
	defer cancel()

	key := resolveRedisKey(cardName)

	_, err = s.redisClient.API().TxPipelined(ctxWithTimeout, func(pipe redisapi.Pipeliner) error {
		pipe.Del(ctxWithTimeout, key)
		pipe.Set(ctxWithTimeout, key, b, 0)
		pipe.SAdd(ctxWithTimeout, indexKey, cardName)

		return nil
	})
	if err != nil {
		return fmt.Errorf("card set: %w", err)
	}

	return nil
}

// GetAll returns all cards keyed by card name.
func (s *Store) GetAll(ctx context.Context) (map[string]*card.Card, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.redisClient.Timeout())
	defer cancel()

	names, err := s.redisClient.API().SMembers(ctxWithTimeout, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("card index: %w", err)
	}

	result := make(map[string]*card.Card, len(names))

	for _, name := range names {
		c, getErr := s.get(ctxWithTimeout, name)
		if getErr != nil {
			if errors.Is(getErr, card.ErrCardNotFound) {
				logger.Warnc(ctx, "Card listed in index but not stored", logfields.WithCardName(name))

				continue
			}

			return nil, getErr
		}

		result[name] = c
	}

	return result, nil
}

// Delete removes the card stored under the given name.
func (s *Store) Delete(ctx context.Context, cardName string) error {
	logger.Debugc(ctx, "Deleting card", logfields.WithCardName(cardName))

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.redisClient.Timeout())
	defer cancel()

	var del *redisapi.IntCmd

	_, err := s.redisClient.API().TxPipelined(ctxWithTimeout, func(pipe redisapi.Pipeliner) error {
		del = pipe.Del(ctxWithTimeout, resolveRedisKey(cardName))
		pipe.SRem(ctxWithTimeout, indexKey, cardName)

		return nil
	})
	if err != nil {
		return fmt.Errorf("card delete: %w", err)
	}

	if del.Val() == 0 {
		return fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
	}

	return nil
}

// Has returns true if a card is stored under the given name.
func (s *Store) Has(ctx context.Context, cardName string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.redisClient.Timeout())
	defer cancel()

	n, err := s.redisClient.API().Exists(ctxWithTimeout, resolveRedisKey(cardName)).Result()
	if err != nil {
		return false, fmt.Errorf("card exists: %w", err)
	}

	return n > 0, nil
}

func resolveRedisKey(cardName string) string {
	return fmt.Sprintf("%s:%s", keyPrefix, cardName)
}
