package contracts

import (
	"context"
	"io"
	"referral-portal-service/internal/app/models"
	"time"
)

type Storage interface {
	UploadObject(ctx context.Context, file io.Reader, object models.StoredObject) (*models.StoredObject, error)
	RemoveObject(ctx context.Context, bucketName, objectName string) error
	GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error)
}
