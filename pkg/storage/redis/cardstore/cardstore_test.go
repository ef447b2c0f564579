/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package cardstore

import (
	"context"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	dctest "github.com/ory/dockertest/v3"
	dc "github.com/ory/dockertest/v3/docker"
	redisapi "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/storage/redis"
)

const (
	redisConnString  = "localhost:6381"
	dockerRedisImage = "redis"
	dockerRedisTag   = "alpine3.17"
)

func TestStore(t *testing.T) {
	pool, redisResource := startRedisContainer(t)

	t.Cleanup(func() {
		require.NoError(t, pool.Purge(redisResource), "failed to purge Redis resource")
	})

	client, err := redis.New([]string{redisConnString})
	require.NoError(t, err)

	t.Cleanup(func() {
		require.NoError(t, client.Close())
	})

	store := New(client)
	ctx := context.Background()

	t.Run("put then get", func(t *testing.T) {
		c := card.New("alice@example.com", "cargo-network", "secret1", card.DefaultConnectionProfile())

		require.NoError(t, store.Put(ctx, "alice@example.com", c))

		got, err := store.Get(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, c, got)

		ok, err := store.Has(ctx, "alice@example.com")
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("put replaces existing card", func(t *testing.T) {
		require.NoError(t, store.Put(ctx, "bob@example.com",
			card.New("bob@example.com", "cargo-network", "secret1", card.DefaultConnectionProfile())))

		replacement := card.New("bob@example.com", "cargo-network", "secret2", card.DefaultConnectionProfile())
		require.NoError(t, store.Put(ctx, "bob@example.com", replacement))

		got, err := store.Get(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, "secret2", got.Metadata.EnrollmentSecret)
	})

	t.Run("get all", func(t *testing.T) {
		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "secret1", all["alice@example.com"].Metadata.EnrollmentSecret)
	})

	t.Run("get all skips stale index entries", func(t *testing.T) {
		require.NoError(t, client.API().SAdd(ctx, indexKey, "stale@example.com").Err())

		all, err := store.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("delete then get", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "alice@example.com"))

		_, err := store.Get(ctx, "alice@example.com")
		require.ErrorIs(t, err, card.ErrCardNotFound)

		ok, err := store.Has(ctx, "alice@example.com")
		require.NoError(t, err)
		require.False(t, ok)

		isMember, err := client.API().SIsMember(ctx, indexKey, "alice@example.com").Result()
		require.NoError(t, err)
		require.False(t, isMember)
	})

	t.Run("delete missing card", func(t *testing.T) {
		require.ErrorIs(t, store.Delete(ctx, "missing@example.com"), card.ErrCardNotFound)
	})

	t.Run("corrupted record", func(t *testing.T) {
		require.NoError(t, client.API().Set(ctx, resolveRedisKey("broken"), "{", 0).Err())

		_, err := store.Get(ctx, "broken")
		require.ErrorContains(t, err, "card decode")
	})
}

func waitForRedisToBeUp() error {
	return backoff.Retry(pingRedis, backoff.WithMaxRetries(backoff.NewConstantBackOff(time.Second), 30))
}

func pingRedis() error {
	rdb := redisapi.NewClient(&redisapi.Options{
		Addr: redisConnString,
	})

	defer func() {
		_ = rdb.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	return rdb.Ping(ctx).Err()
}

func startRedisContainer(t *testing.T) (*dctest.Pool, *dctest.Resource) {
	t.Helper()

	pool, err := dctest.NewPool("")
	require.NoError(t, err)

	redisResource, err := pool.RunWithOptions(&dctest.RunOptions{
		Repository: dockerRedisImage,
		Tag:        dockerRedisTag,
		PortBindings: map[dc.Port][]dc.PortBinding{
			"6379/tcp": {{HostIP: "", HostPort: "6381"}},
		},
	})
	require.NoError(t, err)

	require.NoError(t, waitForRedisToBeUp())

	return pool, redisResource
}
