// Package storage uploads generated export files to S3 so they outlive
// the local disk of a single API instance.
package storage

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Uploader pushes local files to an S3 bucket under the exports/ prefix.
type Uploader struct {
	client *s3.Client
	bucket string
}

// Config holds S3 connection settings. Access keys are optional; when
// empty the default AWS credential chain is used.
type Config struct {
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	AWSRegion          string
	Bucket             string
}

// NewUploader creates an S3 uploader.
func NewUploader(ctx context.Context, cfg Config) (*Uploader, error) {
	opts := []func(*config.LoadOptions) error{
		config.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AWSAccessKeyID,
			cfg.AWSSecretAccessKey,
			"",
		)))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &Uploader{
		client: s3.NewFromConfig(awsCfg),
		bucket: cfg.Bucket,
	}, nil
}

// Upload pushes a local file to the bucket and returns the object key.
func (u *Uploader) Upload(ctx context.Context, localPath string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	key := fmt.Sprintf("exports/%s", filepath.Base(localPath))
	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   file,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	log.Printf("✅ Export uploaded to S3: s3://%s/%s", u.bucket, key)
	return key, nil
}

// ExportInfo describes a stored export object.
type ExportInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ListExports lists all export objects in the bucket.
func (u *Uploader) ListExports(ctx context.Context) ([]ExportInfo, error) {
	result, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(u.bucket),
		Prefix: aws.String("exports/"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 objects: %w", err)
	}

	exports := make([]ExportInfo, 0, len(result.Contents))
	for _, obj := range result.Contents {
		exports = append(exports, ExportInfo{
			Key:          *obj.Key,
			Size:         *obj.Size,
			LastModified: *obj.LastModified,
		})
	}
	return exports, nil
}

// CleanupOldExports deletes export objects older than retentionDays.
func (u *Uploader) CleanupOldExports(ctx context.Context, retentionDays int) error {
	if retentionDays <= 0 {
		return nil
	}

	cutoff := time.Now().UTC().AddDate(0, 0, -retentionDays)

	result, err := u.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(u.bucket),
		Prefix: aws.String("exports/"),
	})
	if err != nil {
		return fmt.Errorf("failed to list S3 objects: %w", err)
	}

	var deleted int
	for _, obj := range result.Contents {
		if obj.LastModified.Before(cutoff) {
			_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
				Bucket: aws.String(u.bucket),
				Key:    obj.Key,
			})
			if err != nil {
				log.Printf("⚠️  Failed to delete old export %s: %v", *obj.Key, err)
				continue
			}
			deleted++
		}
	}

	if deleted > 0 {
		log.Printf("🗑️  Cleaned up %d old exports (retention: %d days)", deleted, retentionDays)
	}
	return nil
}
