package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/jenny-yujl/marketingTrain/internal/config"
)

// UploadedObject is where an uploaded image ended up.
type UploadedObject struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

type s3Uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// S3ImageUploader stores product images under products/<uuid><ext>.
type S3ImageUploader struct {
	uploader  s3Uploader
	bucket    string
	objectURL func(key string) string
	newID     func() string
}

func NewS3ImageUploader(cfg *config.S3Config) *S3ImageUploader {
	return &S3ImageUploader{
		uploader:  manager.NewUploader(cfg.Client),
		bucket:    cfg.Bucket,
		objectURL: cfg.Settings.ObjectURL,
		newID:     func() string { return uuid.New().String() },
	}
}

func (u *S3ImageUploader) Upload(ctx context.Context, filename, contentType string, body io.Reader) (*UploadedObject, error) {
	key := "products/" + u.newID() + strings.ToLower(path.Ext(filename))

	_, err := u.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload %s to S3: %w", filename, err)
	}

	return &UploadedObject{Key: key, URL: u.objectURL(key)}, nil
}
