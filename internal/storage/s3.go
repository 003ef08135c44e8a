package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/abitareitalia/leads-backend/internal/config"
)

// S3Store implements DocumentStore against S3-compatible storage (AWS S3,
// Supabase storage, R2, DO Spaces via the endpoint override)
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
}

// NewS3Store creates a new S3-backed document store
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	var client *s3.Client
	if cfg.Endpoint != "" {
		client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		})
	} else {
		client = s3.NewFromConfig(awsCfg)
	}

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
	}, nil
}

// Upload writes one object with the given content type. IfNoneMatch guards
// against overwriting an existing path.
func (s *S3Store) Upload(ctx context.Context, bucket, path string, data io.Reader, contentType string) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(bucket),
		Key:         aws.String(path),
		Body:        data,
		ContentType: aws.String(contentType),
		IfNoneMatch: aws.String("*"),
	})
	if err != nil {
		return fmt.Errorf("put object %s/%s: %w", bucket, path, err)
	}
	return nil
}

// SignedURL returns a presigned GET URL valid for ttl
func (s *S3Store) SignedURL(ctx context.Context, bucket, path string, ttl time.Duration) (string, error) {
	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(path),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign object %s/%s: %w", bucket, path, err)
	}
	return req.URL, nil
}
