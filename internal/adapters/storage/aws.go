// Package storage holds the AWS-backed persistence adapters.
// The dynamo and blob subpackages share the SDK configuration built here.
package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/jsamuelsen/ritual-service/internal/platform/config"
)

// LoadAWSConfig resolves region and credentials for the AWS clients.
// Static keys, when configured, replace the default credential chain.
func LoadAWSConfig(ctx context.Context, cfg config.StorageConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}

	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("loading AWS config: %w", err)
	}

	return awsCfg, nil
}

// Endpoint returns the override endpoint for SDK clients, or nil for the AWS default.
func Endpoint(cfg config.StorageConfig) *string {
	if cfg.Endpoint == "" {
		return nil
	}

	return aws.String(cfg.Endpoint)
}
