// Package storage archives generated reports to object storage.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pratik-mahalle/cloudcost/internal/config"
	"github.com/pratik-mahalle/cloudcost/internal/domain/export"
	"github.com/pratik-mahalle/cloudcost/internal/pkg/logger"
)

const csvContentType = "text/csv"

// Compile-time checks
var (
	_ export.Archiver = (*S3Archiver)(nil)
	_ export.Archiver = (*GCSArchiver)(nil)
)

// ObjectKey builds <prefix>/<userID>/<timestamp>-<filename>
func ObjectKey(prefix, userID string, ts time.Time, filename string) string {
	name := ts.UTC().Format("20060102T150405Z") + "-" + filename
	return path.Join(prefix, userID, name)
}

// New returns the archiver selected by cfg, or nil when archiving is off
func New(ctx context.Context, cfg config.ExportConfig, log *logger.Logger) (export.Archiver, error) {
	switch {
	case cfg.S3Bucket != "":
		a, err := NewS3Archiver(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.WithFields(map[string]interface{}{
			"bucket": cfg.S3Bucket,
			"prefix": cfg.Prefix,
		}).Info("Archiving exports to S3")
		return a, nil
	case cfg.GCSBucket != "":
		a, err := NewGCSArchiver(ctx, cfg)
		if err != nil {
			return nil, err
		}
		log.WithFields(map[string]interface{}{
			"bucket": cfg.GCSBucket,
			"prefix": cfg.Prefix,
		}).Info("Archiving exports to GCS")
		return a, nil
	default:
		return nil, nil
	}
}

// objectPutter is the subset of the S3 client used for archiving
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes reports to an S3 bucket
type S3Archiver struct {
	client objectPutter
	bucket string
	prefix string
	now    func() time.Time
}

// NewS3Archiver creates an archiver using the default AWS credential chain.
// A custom endpoint switches to path-style addressing.
func NewS3Archiver(ctx context.Context, cfg config.ExportConfig) (*S3Archiver, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.S3Region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			o.UsePathStyle = true
		}
	})
	return newS3Archiver(client, cfg.S3Bucket, cfg.Prefix), nil
}

func newS3Archiver(client objectPutter, bucket, prefix string) *S3Archiver {
	return &S3Archiver{client: client, bucket: bucket, prefix: prefix, now: time.Now}
}

// Archive uploads the report
func (a *S3Archiver) Archive(ctx context.Context, userID string, report *export.Report) error {
	key := ObjectKey(a.prefix, userID, a.now(), report.Filename)
	_, err := a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(report.Content),
		ContentType: aws.String(csvContentType),
		Metadata: map[string]string{
			"report":  report.Name,
			"user-id": userID,
		},
	})
	if err != nil {
		return fmt.Errorf("put s3://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// GCSArchiver writes reports to a Google Cloud Storage bucket
type GCSArchiver struct {
	client *storage.Client
	bucket string
	prefix string
	now    func() time.Time
}

// NewGCSArchiver creates an archiver using application default credentials
func NewGCSArchiver(ctx context.Context, cfg config.ExportConfig) (*GCSArchiver, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create GCS client: %w", err)
	}
	return &GCSArchiver{client: client, bucket: cfg.GCSBucket, prefix: cfg.Prefix, now: time.Now}, nil
}

// Archive uploads the report
func (a *GCSArchiver) Archive(ctx context.Context, userID string, report *export.Report) error {
	key := ObjectKey(a.prefix, userID, a.now(), report.Filename)
	w := a.client.Bucket(a.bucket).Object(key).NewWriter(ctx)
	w.ContentType = csvContentType
	w.Metadata = map[string]string{
		"report":  report.Name,
		"user-id": userID,
	}

	if _, err := w.Write(report.Content); err != nil {
		_ = w.Close()
		return fmt.Errorf("write gs://%s/%s: %w", a.bucket, key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close gs://%s/%s: %w", a.bucket, key, err)
	}
	return nil
}

// Close releases the GCS client
func (a *GCSArchiver) Close() error {
	return a.client.Close()
}
