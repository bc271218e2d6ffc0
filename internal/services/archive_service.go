package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// ArchiveService stores every accepted ingest payload verbatim in object
// storage so a bad classifier export can be audited or replayed later.
type ArchiveService struct {
	Minio      *minio.Client
	BucketName string
}

// NewArchiveService creates a new ArchiveService with the given storage client.
func NewArchiveService(minioClient *minio.Client, bucketName string) *ArchiveService {
	return &ArchiveService{
		Minio:      minioClient,
		BucketName: bucketName,
	}
}

// StorePayload archives one raw CSV payload and returns its object key.
func (s *ArchiveService) StorePayload(ctx context.Context, payload []byte) (string, error) {
	key := fmt.Sprintf("ingest/%s_%s.csv",
		time.Now().UTC().Format("20060102T150405"), uuid.NewString())

	_, err := s.Minio.PutObject(ctx, s.BucketName, key,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		return "", errors.Wrap(err, "could not archive ingest payload")
	}
	return key, nil
}
