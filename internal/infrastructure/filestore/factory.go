package filestore

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"labelprint/internal/config"
	"labelprint/pkg/logger"
)

// NewDriver builds the driver named by cfg.Driver.
func NewDriver(ctx context.Context, cfg config.StorageConfig) (Driver, error) {
	switch cfg.Driver {
	case "local":
		logger.Info(ctx, "initializing local file storage", "dir", cfg.Local.BaseDir)
		return NewLocalDriver(cfg.Local.BaseDir, cfg.Local.PublicURL)

	case "s3":
		logger.Info(ctx, "initializing s3 file storage", "endpoint", cfg.S3.Endpoint, "bucket", cfg.S3.Bucket)

		opts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.S3.Region),
		}
		if cfg.S3.AccessKeyID != "" && cfg.S3.SecretAccessKey != "" {
			creds := credentials.NewStaticCredentialsProvider(cfg.S3.AccessKeyID, cfg.S3.SecretAccessKey, "")
			opts = append(opts, awsconfig.WithCredentialsProvider(creds))
		}

		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
		if err != nil {
			return nil, fmt.Errorf("load aws config: %w", err)
		}

		client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			if cfg.S3.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.S3.Endpoint)
			}
			o.UsePathStyle = cfg.S3.UsePathStyle
		})
		return NewS3Driver(client, cfg.S3.Bucket, cfg.S3.PublicURL), nil

	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Driver)
	}
}

// New builds a Store from configuration.
func New(ctx context.Context, cfg config.StorageConfig) (*Store, error) {
	driver, err := NewDriver(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewStore(driver, cfg.CompressThreshold, cfg.URLExpiry)
}
