package s3

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/communitybook/listing-service/internal/listing/domain"
	"github.com/communitybook/listing-service/internal/platform/logger"
)

// PhotoArchive mirrors listing photo bytes into a MinIO bucket. The embedded
// copy in the listing record stays canonical; this is an off-database backup.
type PhotoArchive struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

func NewPhotoArchive(endpoint, accessKey, secretKey, bucket string, useSSL bool, log *logger.Logger) (*PhotoArchive, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucket, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucket)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists check: %v)", bucket, err, errBucketExists)
		}
	}

	log.Info("PhotoArchive: initialized", "endpoint", endpoint, "bucket", bucket, "use_ssl", useSSL)
	return &PhotoArchive{client: client, bucket: bucket, logger: log}, nil
}

func (a *PhotoArchive) Store(ctx context.Context, listingID string, data []byte) (string, error) {
	objectKey := fmt.Sprintf("photos/%s/%s", listingID, uuid.New().String())

	_, err := a.client.PutObject(ctx, a.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: domain.DetectPhotoContentType(data),
	})
	if err != nil {
		a.logger.Error("PhotoArchive.Store: PutObject failed", "bucket", a.bucket, "key", objectKey, "error", err.Error())
		return "", fmt.Errorf("failed to archive photo for listing %s: %w", listingID, err)
	}

	url := fmt.Sprintf("%s/%s/%s", a.client.EndpointURL().String(), a.bucket, objectKey)
	a.logger.Info("PhotoArchive.Store: photo archived", "listing_id", listingID, "key", objectKey, "size_bytes", len(data))
	return url, nil
}

var _ domain.PhotoArchive = (*PhotoArchive)(nil)
