package storage

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-summarizer/pkg/config"
)

const reportPrefix = "reports/"

// ReportArchive stores rendered extraction results in a MinIO bucket
type ReportArchive struct {
	client *minio.Client
	bucket string
}

// NewReportArchive creates a MinIO backed archive and makes sure the bucket exists
func NewReportArchive(ctx context.Context, cfg *config.StorageConfig) (*ReportArchive, error) {
	minioClient, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	archive := &ReportArchive{
		client: minioClient,
		bucket: cfg.BucketName,
	}
	if err := archive.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize bucket: %w", err)
	}
	return archive, nil
}

func (a *ReportArchive) ensureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}
	if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// ReportKey is the object name of a classification's report
func ReportKey(classificationID uuid.UUID) string {
	return reportPrefix + classificationID.String() + ".json"
}

// SaveReport uploads the JSON render input and returns its object key.
// A retried extraction overwrites the previous report.
func (a *ReportArchive) SaveReport(ctx context.Context, classificationID uuid.UUID, report []byte) (string, error) {
	key := ReportKey(classificationID)
	_, err := a.client.PutObject(ctx, a.bucket, key, bytes.NewReader(report), int64(len(report)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	return key, nil
}

// ReportURL returns a presigned download URL for a stored report
func (a *ReportArchive) ReportURL(ctx context.Context, classificationID uuid.UUID, expiry time.Duration) (string, error) {
	url, err := a.client.PresignedGetObject(ctx, a.bucket, ReportKey(classificationID), expiry, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url.String(), nil
}
