// Package storage uploads catalog assets (pictures, album art, tab files) to an
// S3-compatible bucket store such as Backblaze B2.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/afras-tabs/catalog-backend/config"
	"github.com/afras-tabs/catalog-backend/models"
)

// AssetStore writes one object at a derived asset location.
type AssetStore interface {
	Put(ctx context.Context, loc models.AssetLocation, body io.Reader, size int64, contentType string) error
}

// Config holds the S3 endpoint and application key of the asset store.
type Config struct {
	Endpoint       string
	Region         string
	KeyID          string
	ApplicationKey string
}

// ConfigFromEnv reads the B2_* settings.
func ConfigFromEnv(env map[string]string) Config {
	return Config{
		Endpoint:       config.GetString(env, "B2_ENDPOINT", ""),
		Region:         config.GetString(env, "B2_REGION", "us-east-005"),
		KeyID:          config.GetString(env, "B2_KEY_ID", ""),
		ApplicationKey: config.GetString(env, "B2_APPLICATION_KEY", ""),
	}
}

// Enabled reports whether any storage setting was provided.
func (c Config) Enabled() bool {
	return c.Endpoint != "" || c.KeyID != "" || c.ApplicationKey != ""
}

func (c Config) Validate() error {
	var missing []error
	if c.Endpoint == "" {
		missing = append(missing, errors.New("B2_ENDPOINT is required"))
	}
	if c.Region == "" {
		missing = append(missing, errors.New("B2_REGION is required"))
	}
	if c.KeyID == "" {
		missing = append(missing, errors.New("B2_KEY_ID is required"))
	}
	if c.ApplicationKey == "" {
		missing = append(missing, errors.New("B2_APPLICATION_KEY is required"))
	}
	return errors.Join(missing...)
}

// S3Store is an AssetStore backed by the S3 API.
type S3Store struct {
	client *s3.Client
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid storage config: %w", err)
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.KeyID, cfg.ApplicationKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("loading storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})
	return &S3Store{client: client}, nil
}

// Put uploads body to loc, replacing any object already stored there.
func (s *S3Store) Put(ctx context.Context, loc models.AssetLocation, body io.Reader, size int64, contentType string) error {
	input := &s3.PutObjectInput{
		Bucket: aws.String(loc.Bucket),
		Key:    aws.String(loc.Key),
		Body:   body,
	}
	if size > 0 {
		input.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("uploading %s/%s: %w", loc.Bucket, loc.Key, err)
	}
	log.Info().Str("bucket", loc.Bucket).Str("key", loc.Key).Int64("size", size).Msg("asset uploaded")
	return nil
}
