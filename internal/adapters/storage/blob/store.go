// Package blob stores rendered ritual PDFs in S3.
package blob

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jsamuelsen/ritual-service/internal/domain"
)

const serviceName = "s3"

// API is the subset of *s3.Client the store uses.
type API interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
}

// NewClient builds an S3 client. An endpoint override implies path-style
// addressing, which local emulators need.
func NewClient(cfg aws.Config, endpoint *string) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != nil {
			o.BaseEndpoint = endpoint
			o.UsePathStyle = true
		}
	})
}

// Store implements ports.ArtifactStore.
type Store struct {
	api     API
	bucket  string
	baseURL string
}

// NewStore keeps objects in bucket. Public URLs are built from publicBaseURL,
// or from the bucket's virtual-hosted S3 address in region when it is empty.
func NewStore(api API, bucket, region, publicBaseURL string) *Store {
	base := strings.TrimRight(publicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &Store{
		api:     api,
		bucket:  bucket,
		baseURL: base,
	}
}

// Put uploads body under key and returns its public URL.
func (s *Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if key == "" {
		return "", domain.NewValidationError("key", "cannot be empty")
	}

	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(body))),
		CacheControl:  aws.String("private, max-age=31536000, immutable"),
	})
	if err != nil {
		return "", translateError(err, "put "+key)
	}

	return s.URL(key), nil
}

// Delete removes key. S3 reports success for missing keys.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return translateError(err, "delete "+key)
	}

	return nil
}

// URL returns the public address of key. Path segments are escaped individually.
func (s *Store) URL(key string) string {
	segments := strings.Split(key, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}

	return s.baseURL + "/" + strings.Join(segments, "/")
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return serviceName }

// Check verifies the bucket exists and is accessible.
func (s *Store) Check(ctx context.Context) error {
	if _, err := s.api.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return translateError(err, "head bucket")
	}

	return nil
}

func translateError(err error, operation string) error {
	var (
		noBucket *types.NoSuchBucket
		notFound *types.NotFound
	)

	if errors.As(err, &noBucket) || errors.As(err, &notFound) {
		return domain.NewUnavailableError(serviceName, operation+": bucket not found")
	}

	return fmt.Errorf("s3 %s: %w", operation, err)
}
