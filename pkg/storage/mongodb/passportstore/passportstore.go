/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package passportstore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/trustbloc/cargo-gateway/pkg/service/passport"
	"github.com/trustbloc/cargo-gateway/pkg/storage/mongodb"
)

const (
	collectionName = "passports"
	emailField     = "email"
)

// Store is the MongoDB implementation of the passport store.
type Store struct {
	mongoClient *mongodb.Client
}

// New returns a new passport store. The unique index on the email is created if missing.
func New(mongoClient *mongodb.Client) (*Store, error) {
	s := &Store{
		mongoClient: mongoClient,
	}

	ctxWithTimeout, cancel := mongoClient.ContextWithTimeout()
	defer cancel()

	if _, err := s.collection().Indexes().
		CreateOne(ctxWithTimeout,
			mongo.IndexModel{
				Keys:    bson.D{{Key: emailField, Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		); err != nil {
		return nil, fmt.Errorf("create index: %w", err)
	}

	return s, nil
}

// Find returns the passport for the given email.
func (s *Store) Find(ctx context.Context, email string) (*passport.Passport, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	p := &passport.Passport{}

	if err := s.collection().FindOne(ctxWithTimeout, bson.D{{Key: emailField, Value: email}}).Decode(p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, passport.ErrPassportNotFound
		}

		return nil, fmt.Errorf("find document: %w", err)
	}

	return p, nil
}

// Create inserts a new passport. It fails if a passport with the same email exists.
func (s *Store) Create(ctx context.Context, p *passport.Passport) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	if _, err := s.collection().InsertOne(ctxWithTimeout, p); err != nil {
		return fmt.Errorf("insert document: %w", err)
	}

	return nil
}

// Delete removes the passport for the given email.
func (s *Store) Delete(ctx context.Context, email string) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, s.mongoClient.Timeout())
	defer cancel()

	res, err := s.collection().DeleteOne(ctxWithTimeout, bson.D{{Key: emailField, Value: email}})
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}

	if res.DeletedCount == 0 {
		return passport.ErrPassportNotFound
	}

	return nil
}

func (s *Store) collection() *mongo.Collection {
	return s.mongoClient.Database().Collection(collectionName)
}
