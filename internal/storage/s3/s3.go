// Package s3 implements the image store against an S3-compatible object
// store, used in production.
package s3

import (
	"bytes"
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/config"
	"github.com/Oatmeal4Breakfast/photography-portfolio/internal/storage/core"
)

const backend = "s3"

const (
	opTimeout   = 30 * time.Second
	maxAttempts = 3
	retryBase   = 500 * time.Millisecond
)

// Renditions are always re-encoded to JPEG before they reach the store.
const contentType = "image/jpeg"

type Store struct {
	client *awss3.Client
	bucket string
}

// New builds an S3 client for the configured bucket. A custom endpoint
// switches the client to path-style addressing for S3-compatible services.
func New(ctx context.Context, cfg config.S3Config) (*Store, error) {
	region := cfg.Region
	if region == "" {
		region = "auto"
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(region),
	}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
				return aws.Credentials{
					AccessKeyID:     cfg.AccessKeyID,
					SecretAccessKey: cfg.SecretAccessKey,
				}, nil
			}),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, &core.StoreError{Backend: backend, Op: "init", Err: err}
	}

	client := awss3.NewFromConfig(awsCfg, func(o *awss3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Upload puts data under key, retrying transient failures with a doubling
// backoff and a hard per-call timeout.
func (s *Store) Upload(ctx context.Context, data []byte, key string) error {
	var lastErr error
	backoff := retryBase
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return &core.StoreError{Backend: backend, Op: "upload", Err: ctx.Err()}
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		opCtx, cancel := context.WithTimeout(ctx, opTimeout)
		_, err := s.client.PutObject(opCtx, &awss3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(data),
			ContentType: aws.String(contentType),
		})
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return &core.StoreError{Backend: backend, Op: "upload", Err: lastErr}
}

// DeleteMany issues one bulk delete for all keys and relays the service's
// partition of deleted vs failed keys. Only a failed request as a whole
// returns an error.
func (s *Store) DeleteMany(ctx context.Context, keys []string) (deleted, failed []string, err error) {
	if len(keys) == 0 {
		return nil, nil, nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(keys))
	for _, key := range keys {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(key)})
	}

	opCtx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	out, derr := s.client.DeleteObjects(opCtx, &awss3.DeleteObjectsInput{
		Bucket: aws.String(s.bucket),
		Delete: &types.Delete{Objects: objects},
	})
	if derr != nil {
		return nil, nil, &core.StoreError{Backend: backend, Op: "delete", Err: derr}
	}

	for _, obj := range out.Deleted {
		deleted = append(deleted, aws.ToString(obj.Key))
	}
	for _, objErr := range out.Errors {
		failed = append(failed, aws.ToString(objErr.Key))
	}
	return deleted, failed, nil
}
