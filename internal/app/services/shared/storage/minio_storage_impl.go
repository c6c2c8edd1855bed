package storage

import (
	"context"
	"io"
	"net/url"
	"referral-portal-service/internal/app/contracts"
	"referral-portal-service/internal/app/models"
	"referral-portal-service/internal/pkg/constvars"
	"referral-portal-service/internal/pkg/exceptions"
	"time"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioStorage struct {
	MinioClient *minio.Client
	Log         *zap.Logger
}

func NewMinioStorage(minioClient *minio.Client, logger *zap.Logger) contracts.Storage {
	return &minioStorage{
		MinioClient: minioClient,
		Log:         logger,
	}
}

// UploadObject streams file into object.Bucket under object.Name. A size of
// zero or less lets minio use a multipart upload of unknown length.
func (m *minioStorage) UploadObject(ctx context.Context, file io.Reader, object models.StoredObject) (*models.StoredObject, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	m.Log.Debug("minioStorage.UploadObject called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, object.Bucket),
		zap.String(constvars.LoggingObjectKey, object.Name),
	)

	size := object.Size
	if size <= 0 {
		size = -1
	}

	info, err := m.MinioClient.PutObject(ctx, object.Bucket, object.Name, file, size, minio.PutObjectOptions{
		ContentType: object.ContentType,
		UserMetadata: map[string]string{
			"original-name": object.FileName,
		},
	})
	if err != nil {
		m.Log.Error("minioStorage.UploadObject error calling PutObject",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, object.Bucket),
			zap.Error(err),
		)
		return nil, exceptions.ErrMinioCreateObject(err, object.Bucket)
	}

	object.Size = info.Size
	m.Log.Info("minioStorage.UploadObject succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, object.Name),
	)
	return &object, nil
}

func (m *minioStorage) RemoveObject(ctx context.Context, bucketName, objectName string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	err := m.MinioClient.RemoveObject(ctx, bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		m.Log.Error("minioStorage.RemoveObject error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingBucketKey, bucketName),
			zap.String(constvars.LoggingObjectKey, objectName),
			zap.Error(err),
		)
		return exceptions.ErrMinioRemoveObject(err, bucketName)
	}
	return nil
}

func (m *minioStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	presigned, err := m.MinioClient.PresignedGetObject(ctx, bucketName, objectName, expiryTime, url.Values{})
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, bucketName)
	}
	return presigned.String(), nil
}
