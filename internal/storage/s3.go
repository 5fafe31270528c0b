package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// objectPutter is the subset of the S3 client used by the uploader,
// extracted so tests can substitute a mock.
type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Uploader stores images in an S3-compatible bucket.  Object keys are
// "<folder>/<uuid><ext>" so concurrent uploads can never collide, and the
// public URL is built from a configured base so the bucket can sit behind
// a CDN or a custom domain.
type S3Uploader struct {
	client        objectPutter
	bucket        string
	publicBaseURL string
}

// S3Config holds the settings needed to reach the bucket.  Endpoint is
// optional and enables S3-compatible stores (MinIO, R2) that require
// path-style addressing.
type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // optional custom endpoint
	PublicBaseURL   string // base of returned URLs, e.g. https://media.example.com
}

// NewS3Uploader builds an uploader from static credentials.  When no public
// base URL is configured the standard virtual-hosted S3 URL is used.
func NewS3Uploader(cfg S3Config) (*S3Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: bucket name is required")
	}
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return nil, fmt.Errorf("storage: access credentials are required")
	}

	opts := s3.Options{
		Region: cfg.Region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	}
	if cfg.Endpoint != "" {
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true // compatible stores require path-style addressing
	}

	base := strings.TrimSuffix(cfg.PublicBaseURL, "/")
	if base == "" {
		base = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:        s3.New(opts),
		bucket:        cfg.Bucket,
		publicBaseURL: base,
	}, nil
}

// Upload writes the object and returns its public URL.  A single failed
// attempt is returned to the caller as-is; nothing is cleaned up because
// nothing was persisted elsewhere yet.
func (u *S3Uploader) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	key := objectKey(contentType, folder)

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("storage: put object %q: %w", key, err)
	}

	return u.publicBaseURL + "/" + key, nil
}

// extByContentType maps the image types we expect to their file extension.
// Unknown types get no extension; the bytes are stored regardless.
var extByContentType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// objectKey builds a collision-free key under the folder hint.
func objectKey(contentType, folder string) string {
	folder = strings.Trim(folder, "/")
	if folder == "" {
		folder = "uploads"
	}
	return folder + "/" + uuid.New().String() + extByContentType[contentType]
}
