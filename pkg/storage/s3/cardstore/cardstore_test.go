/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cardstore_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/storage/s3/cardstore"
)

const (
	bucket = "cargo-cards"
	prefix = "cards/"
)

func TestPut(t *testing.T) {
	c := card.New("alice@example.com", "cargo-network", "secret", card.DefaultConnectionProfile())

	t.Run("success", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().PutObject(gomock.Any(), gomock.Any()).
			DoAndReturn(func(
				ctx context.Context,
				input *s3.PutObjectInput,
				opts ...func(*s3.Options),
			) (*s3.PutObjectOutput, error) {
				assert.Equal(t, "application/zip", *input.ContentType)
				assert.Equal(t, "cards/alice@example.com.card", *input.Key)
				assert.Equal(t, bucket, *input.Bucket)

				data, err := io.ReadAll(input.Body)
				assert.NoError(t, err)

				restored, err := card.FromArchive(data)
				assert.NoError(t, err)
				assert.Equal(t, c, restored)

				return &s3.PutObjectOutput{}, nil
			})

		require.NoError(t, cardstore.New(client, bucket, prefix).Put(context.Background(), "alice@example.com", c))
	})

	t.Run("s3 error", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().PutObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("s3 error"))

		err := cardstore.New(client, bucket, prefix).Put(context.Background(), "alice@example.com", c)
		require.ErrorContains(t, err, "put object: s3 error")
	})

	t.Run("nil card", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))

		err := cardstore.New(client, bucket, prefix).Put(context.Background(), "alice@example.com", nil)
		require.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	c := card.New("alice@example.com", "cargo-network", "secret", card.DefaultConnectionProfile())

	archive, err := c.ToArchive()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().GetObject(gomock.Any(), gomock.Any()).
			DoAndReturn(func(
				ctx context.Context,
				input *s3.GetObjectInput,
				opts ...func(*s3.Options),
			) (*s3.GetObjectOutput, error) {
				assert.Equal(t, "cards/alice@example.com.card", *input.Key)

				return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(archive))}, nil
			})

		got, err := cardstore.New(client, bucket, prefix).Get(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, c, got)
	})

	t.Run("not found", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().GetObject(gomock.Any(), gomock.Any()).Return(nil, &types.NoSuchKey{})

		_, err := cardstore.New(client, bucket, prefix).Get(context.Background(), "alice@example.com")
		require.ErrorIs(t, err, card.ErrCardNotFound)
	})

	t.Run("s3 error", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().GetObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("s3 error"))

		_, err := cardstore.New(client, bucket, prefix).Get(context.Background(), "alice@example.com")
		require.ErrorContains(t, err, "get object: s3 error")
	})

	t.Run("invalid archive", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().GetObject(gomock.Any(), gomock.Any()).
			Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader([]byte("invalid")))}, nil)

		_, err := cardstore.New(client, bucket, prefix).Get(context.Background(), "alice@example.com")
		require.ErrorContains(t, err, "open card archive")
	})
}

func TestGetAll(t *testing.T) {
	alice := card.New("alice@example.com", "cargo-network", "secret", card.DefaultConnectionProfile())

	archive, err := alice.ToArchive()
	require.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&s3.ListObjectsV2Output{
				Contents: []types.Object{
					{Key: aws.String("cards/alice@example.com.card")},
					{Key: aws.String("cards/readme.txt")},
				},
				IsTruncated: aws.Bool(false),
			}, nil)
		client.EXPECT().GetObject(gomock.Any(), gomock.Any()).
			Return(&s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(archive))}, nil)

		all, err := cardstore.New(client, bucket, prefix).GetAll(context.Background())
		require.NoError(t, err)
		require.Len(t, all, 1)
		require.Equal(t, alice, all["alice@example.com"])
	})

	t.Run("list error", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().ListObjectsV2(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, errors.New("s3 error"))

		_, err := cardstore.New(client, bucket, prefix).GetAll(context.Background())
		require.ErrorContains(t, err, "list objects")
	})
}

func TestDelete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(&s3.HeadObjectOutput{}, nil)
		client.EXPECT().DeleteObject(gomock.Any(), gomock.Any()).
			DoAndReturn(func(
				ctx context.Context,
				input *s3.DeleteObjectInput,
				opts ...func(*s3.Options),
			) (*s3.DeleteObjectOutput, error) {
				assert.Equal(t, "cards/alice@example.com.card", *input.Key)

				return &s3.DeleteObjectOutput{}, nil
			})

		require.NoError(t, cardstore.New(client, bucket, prefix).Delete(context.Background(), "alice@example.com"))
	})

	t.Run("not found", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(nil, &types.NotFound{})

		err := cardstore.New(client, bucket, prefix).Delete(context.Background(), "alice@example.com")
		require.ErrorIs(t, err, card.ErrCardNotFound)
	})

	t.Run("head error", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("s3 error"))

		err := cardstore.New(client, bucket, prefix).Delete(context.Background(), "alice@example.com")
		require.ErrorContains(t, err, "head object: s3 error")
	})

	t.Run("delete error", func(t *testing.T) {
		client := NewMockS3Client(gomock.NewController(t))
		client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(&s3.HeadObjectOutput{}, nil)
		client.EXPECT().DeleteObject(gomock.Any(), gomock.Any()).Return(nil, errors.New("s3 error"))

		err := cardstore.New(client, bucket, prefix).Delete(context.Background(), "alice@example.com")
		require.ErrorContains(t, err, "delete object: s3 error")
	})
}

func TestHas(t *testing.T) {
	client := NewMockS3Client(gomock.NewController(t))
	client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(&s3.HeadObjectOutput{}, nil)
	client.EXPECT().HeadObject(gomock.Any(), gomock.Any()).Return(nil, &types.NotFound{})

	store := cardstore.New(client, bucket, prefix)

	ok, err := store.Has(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Has(context.Background(), "bob@example.com")
	require.NoError(t, err)
	require.False(t, ok)
}
