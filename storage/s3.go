// Package storage uploads product images to S3.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type uploader interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

type ImageStore struct {
	bucket   string
	uploader uploader
	now      func() time.Time
}

func NewImageStore(ctx context.Context, bucket string) (*ImageStore, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &ImageStore{bucket: bucket, uploader: manager.NewUploader(client), now: time.Now}, nil
}

// Upload stores an image under a unique key for the product and returns its
// public URL.
func (s *ImageStore) Upload(ctx context.Context, productID uint, filename, contentType string, body io.Reader) (string, error) {
	key := fmt.Sprintf("products/%d-%s-%s", productID, s.now().Format("20060102150405"), path.Base(filename))

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ACL:         types.ObjectCannedACLPublicRead,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("uploading %s: %w", filename, err)
	}
	return result.Location, nil
}
