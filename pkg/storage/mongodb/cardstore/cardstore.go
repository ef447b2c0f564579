/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cardstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/trustbloc/logutil-go/pkg/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/storage/mongodb"
)

const (
	collectionName = "identity_card"
	cardNameField  = "cardName"
)

var logger = log.New("mongodb-card-store")

var _ card.Store = (*Store)(nil)

// Store is the MongoDB implementation of the identity card store. Each card is kept as one flat
// document in the identity_card collection.
type Store struct {
	mongoClient *mongodb.Client
}

// New returns a new MongoDB card store. The unique index on the card name is created if missing.
func New(mongoClient *mongodb.Client) (*Store, error) {
	s := &Store{
		mongoClient: mongoClient,
	}

	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *Store) migrate() error {
	ctxWithTimeout, cancel := s.mongoClient.ContextWithTimeout()
	defer cancel()

	if _, err := s.collection().Indexes().
		CreateOne(ctxWithTimeout,
			mongo.IndexModel{
				Keys: bson.D{
					{
						Key:   cardNameField,
						Value: 1,
					},
				},
				Options: options.Index().SetUnique(true),
			},
		); err != nil {
		return err
	}

	return nil
}

// Get returns the card stored under the given name.
func (s *Store) Get(ctx context.Context, cardName string) (*card.Card, error) {
	logger.Debugc(ctx, "Retrieving card", logfields.WithCardName(cardName))

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	var rec card.Record

	if err := s.collection().FindOne(ctxWithTimeout, byName(cardName)).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
		}

		return nil, fmt.Errorf("find document: %w", err)
	}

	return rec.ToCard()
}

// Put replaces any card stored under the given name with the given card.
func (s *Store) Put(ctx context.Context, cardName string, c *card.Card) error {
	logger.Debugc(ctx, "Putting card", logfields.WithCardName(cardName))

	rec, err := card.ToRecord(cardName, c)
	if err != nil {
		return err
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	collection := s.collection()

	if _, err = collection.DeleteOne(ctxWithTimeout, byName(cardName)); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if _, err = collection.InsertOne(ctxWithTimeout, rec); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// GetAll returns all cards keyed by card name.
func (s *Store) GetAll(ctx context.Context) (map[string]*card.Card, error) {
	logger.Debugc(ctx, "Getting all cards from store")

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	cursor, err := s.collection().Find(ctxWithTimeout, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var records []*card.Record

	if err = cursor.All(ctxWithTimeout, &records); err != nil {
		return nil, fmt.Errorf("decode documents: %w", err)
	}

	result := make(map[string]*card.Card, len(records))

	for _, rec := range records {
		c, convErr := rec.ToCard()
		if convErr != nil {
			return nil, convErr
		}

		result[rec.CardName] = c
	}

	return result, nil
}

// Delete removes the card stored under the given name.
func (s *Store) Delete(ctx context.Context, cardName string) error {
	logger.Debugc(ctx, "Deleting card", logfields.WithCardName(cardName))

	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	res, err := s.collection().DeleteOne(ctxWithTimeout, byName(cardName))
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if res.DeletedCount == 0 {
		return fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
	}

	return nil
}

// Has returns true if a card is stored under the given name.
func (s *Store) Has(ctx context.Context, cardName string) (bool, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	count, err := s.collection().CountDocuments(ctxWithTimeout, byName(cardName), options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count documents: %w", err)
	}

	return count > 0, nil
}

func (s *Store) collection() *mongo.Collection {
	return s.mongoClient.Database().Collection(collectionName)
}

func byName(cardName string) bson.D {
	return bson.D{
		{
			Key:   cardNameField,
			Value: cardName,
		},
	}
}
