/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

//go:generate mockgen -destination cardstore_mocks_test.go -package cardstore_test -source=cardstore.go -mock_names s3Client=MockS3Client

package cardstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/trustbloc/logutil-go/pkg/log"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
)

const (
	contentType = "application/zip"
	cardSuffix  = ".card"
)

var logger = log.New("s3-card-store")

var _ card.Store = (*Store)(nil)

type s3Client interface {
	PutObject(
		ctx context.Context,
		input *s3.PutObjectInput,
		opts ...func(*s3.Options),
	) (*s3.PutObjectOutput, error)

	GetObject(
		ctx context.Context,
		input *s3.GetObjectInput,
		opts ...func(*s3.Options),
	) (*s3.GetObjectOutput, error)

	HeadObject(
		ctx context.Context,
		input *s3.HeadObjectInput,
		opts ...func(*s3.Options),
	) (*s3.HeadObjectOutput, error)

	DeleteObject(
		ctx context.Context,
		input *s3.DeleteObjectInput,
		opts ...func(*s3.Options),
	) (*s3.DeleteObjectOutput, error)

	ListObjectsV2(
		ctx context.Context,
		input *s3.ListObjectsV2Input,
		opts ...func(*s3.Options),
	) (*s3.ListObjectsV2Output, error)
}

// Store keeps each card as a card archive object named <prefix><cardName>.card.
type Store struct {
	client s3Client
	bucket string
	prefix string
}

// New returns a new S3 card store.
func New(client s3Client, bucket, prefix string) *Store {
	return &Store{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}
}

// Get returns the card stored under the given name.
func (s *Store) Get(ctx context.Context, cardName string) (*card.Card, error) {
	logger.Debugc(ctx, "Retrieving card", logfields.WithCardName(cardName))

	res, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(cardName)),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
		}

		return nil, fmt.Errorf("get object: %w", err)
	}

	defer func() {
		_ = res.Body.Close()
	}()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	return card.FromArchive(data)
}

// Put writes the card archive, replacing any previous object for the card.
func (s *Store) Put(ctx context.Context, cardName string, c *card.Card) error {
	logger.Debugc(ctx, "Putting card", logfields.WithCardName(cardName))

	if c == nil {
		return fmt.Errorf("card %s is nil", cardName)
	}

	data, err := c.ToArchive()
	if err != nil {
		return err
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Body:        bytes.NewReader(data),
		Key:         aws.String(s.key(cardName)),
		Bucket:      aws.String(s.bucket),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}

	return nil
}

// GetAll returns all cards keyed by card name.
func (s *Store) GetAll(ctx context.Context) (map[string]*card.Card, error) {
	result := make(map[string]*card.Card)

	paginator := s3.NewListObjectsV2Paginator(s.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(s.bucket),
		Prefix: aws.String(s.prefix),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}

		for _, obj := range page.Contents {
			key := aws.ToString(obj.Key)
			if !strings.HasSuffix(key, cardSuffix) {
				continue
			}

			name := strings.TrimSuffix(strings.TrimPrefix(key, s.prefix), cardSuffix)

			c, err := s.Get(ctx, name)
			if err != nil {
				return nil, err
			}

			result[name] = c
		}
	}

	return result, nil
}

// Delete removes the card stored under the given name.
func (s *Store) Delete(ctx context.Context, cardName string) error {
	logger.Debugc(ctx, "Deleting card", logfields.WithCardName(cardName))

	exists, err := s.Has(ctx, cardName)
	if err != nil {
		return err
	}

	if !exists {
		return fmt.Errorf("business network card %q: %w", cardName, card.ErrCardNotFound)
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(cardName)),
	})
	if err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	return nil
}

// Has returns true if a card is stored under the given name.
func (s *Store) Has(ctx context.Context, cardName string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(cardName)),
	})
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, fmt.Errorf("head object: %w", err)
	}

	return true, nil
}

func (s *Store) key(cardName string) string {
	return s.prefix + cardName + cardSuffix
}

func isNotFound(err error) bool {
	var (
		noSuchKey *types.NoSuchKey
		notFound  *types.NotFound
	)

	return errors.As(err, &noSuchKey) || errors.As(err, &notFound)
}
