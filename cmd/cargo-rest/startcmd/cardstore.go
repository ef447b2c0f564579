/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package startcmd

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel"

	"github.com/trustbloc/cargo-gateway/internal/logfields"
	"github.com/trustbloc/cargo-gateway/pkg/card"
	"github.com/trustbloc/cargo-gateway/pkg/storage/file/cardstore"
	"github.com/trustbloc/cargo-gateway/pkg/storage/mongodb"
	mongocardstore "github.com/trustbloc/cargo-gateway/pkg/storage/mongodb/cardstore"
	"github.com/trustbloc/cargo-gateway/pkg/storage/redis"
	rediscardstore "github.com/trustbloc/cargo-gateway/pkg/storage/redis/cardstore"
	s3cardstore "github.com/trustbloc/cargo-gateway/pkg/storage/s3/cardstore"
)

// cardStore is the card store selected by --card-store-type. redisClient is set for the redis
// store so that it can be health checked and closed.
type cardStore struct {
	card.Store
	redisClient *redis.Client
}

func createCardStore(
	ctx context.Context,
	params *cardStoreParameters,
	mongoClient *mongodb.Client,
	conf *Configuration,
) (*cardStore, error) {
	logger.Info("Creating card store", logfields.WithCardStoreType(params.storeType))

	switch params.storeType {
	case cardStoreMongoDB:
		store, err := mongocardstore.New(mongoClient)
		if err != nil {
			return nil, fmt.Errorf("create mongodb card store: %w", err)
		}

		return &cardStore{Store: store}, nil
	case cardStoreFile:
		store, err := cardstore.New(params.fileDir)
		if err != nil {
			return nil, fmt.Errorf("create file card store: %w", err)
		}

		return &cardStore{Store: store}, nil
	case cardStoreRedis:
		opts := []redis.ClientOpt{
			redis.WithMasterName(params.redisMasterName),
			redis.WithPassword(params.redisPassword),
		}

		if !params.redisDisableTLS {
			opts = append(opts, redis.WithTLSConfig(conf.tlsConfig()))
		}

		if conf.IsTraceEnabled {
			opts = append(opts, redis.WithTraceProvider(otel.GetTracerProvider()))
		}

		client, err := redis.New(params.redisURLs, opts...)
		if err != nil {
			return nil, fmt.Errorf("create redis client: %w", err)
		}

		return &cardStore{Store: rediscardstore.New(client), redisClient: client}, nil
	case cardStoreS3:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(params.s3Region))
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		if conf.IsTraceEnabled {
			otelaws.AppendMiddlewares(&awsCfg.APIOptions, otelaws.WithTracerProvider(otel.GetTracerProvider()))
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if params.s3HostName != "" {
				o.BaseEndpoint = aws.String(params.s3HostName)
				o.UsePathStyle = true
			}
		})

		return &cardStore{Store: s3cardstore.New(client, params.s3Bucket, params.s3Prefix)}, nil
	default:
		return nil, fmt.Errorf("unsupported card store type: %s", params.storeType)
	}
}

func (s *cardStore) Close() error {
	if s.redisClient == nil {
		return nil
	}

	return s.redisClient.Close()
}
