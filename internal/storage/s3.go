package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

// S3Storage holds generated sticker images in an S3-compatible bucket and
// serves them through a CDN URL when one is configured.
type S3Storage struct {
	client   *s3.Client
	bucket   string
	cdnURL   string
	endpoint string
}

type Config struct {
	Endpoint        string
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	CDNURL          string // Optional, defaults to endpoint/bucket
}

func NewS3Storage(cfg Config) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket is required")
	}

	client := s3.New(s3.Options{
		Region:       cfg.Region,
		BaseEndpoint: aws.String(cfg.Endpoint),
		Credentials:  credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		UsePathStyle: true, // Required for most S3-compatible services
	})

	cdnURL := cfg.CDNURL
	if cdnURL == "" {
		cdnURL = fmt.Sprintf("%s/%s", cfg.Endpoint, cfg.Bucket)
	}

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		cdnURL:   cdnURL,
		endpoint: cfg.Endpoint,
	}, nil
}

// UploadPNG stores rendered image bytes under the folder with a generated
// name. Returns the media name, the raw object URL, and the CDN-backed
// display URL.
func (s *S3Storage) UploadPNG(ctx context.Context, folder string, data []byte) (string, string, string, error) {
	name := uuid.New().String() + ".png"
	key := fmt.Sprintf("%s/%s", strings.Trim(folder, "/"), name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("image/png"),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", "", "", fmt.Errorf("failed to upload image: %w", err)
	}

	objectURL := fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(s.endpoint, "/"), s.bucket, key)
	displayURL := fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cdnURL, "/"), key)
	return name, objectURL, displayURL, nil
}
