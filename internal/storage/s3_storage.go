package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"github.com/ikkim/brandsite-backend/config"
	"github.com/ikkim/brandsite-backend/pkg/logger"
)

var (
	ErrFileTooLarge           = errors.New("file exceeds maximum upload size")
	ErrUnsupportedContentType = errors.New("content type is not allowed")
	ErrEmptyFile              = errors.New("file is empty")
)

// ImageContentTypes are the uploads accepted by the relay.
var ImageContentTypes = []string{
	"image/jpeg",
	"image/png",
	"image/webp",
	"image/gif",
	"image/avif",
}

// BlobStore persists one object and returns its public URL.
type BlobStore interface {
	Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error)
}

type S3Storage struct {
	client   *s3.Client
	bucket   string
	baseURL  string
	endpoint string
}

func NewS3Storage(ctx context.Context, cfg config.StorageConfig) (*S3Storage, error) {
	var awsCfg aws.Config
	var err error

	// Static credentials when configured, otherwise the default chain (env, shared file, IAM role)
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		awsCfg = aws.Config{
			Region: cfg.Region,
			Credentials: credentials.NewStaticCredentialsProvider(
				cfg.AccessKeyID,
				cfg.SecretAccessKey,
				"",
			),
		}
	} else {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %w", err)
		}
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	logger.Info("Object storage configured", map[string]interface{}{
		"bucket":   cfg.Bucket,
		"region":   cfg.Region,
		"endpoint": cfg.Endpoint,
	})

	return &S3Storage{
		client:   client,
		bucket:   cfg.Bucket,
		baseURL:  cfg.BaseURL,
		endpoint: strings.TrimRight(cfg.Endpoint, "/"),
	}, nil
}

func (s *S3Storage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return "", fmt.Errorf("failed to put object %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL is the public address of key.
func (s *S3Storage) URL(key string) string {
	switch {
	case s.baseURL != "":
		// CloudFront or custom domain
		return fmt.Sprintf("%s/%s", s.baseURL, key)
	case s.endpoint != "":
		return fmt.Sprintf("%s/%s/%s", s.endpoint, s.bucket, key)
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.client.Options().Region, key)
	}
}

// NewObjectKey places a random name with the original extension under folder.
func NewObjectKey(folder, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if folder == "" {
		return uuid.New().String() + ext
	}
	return fmt.Sprintf("%s/%s%s", strings.Trim(folder, "/"), uuid.New().String(), ext)
}

// ValidateFileSize rejects empty files and files over maxSize.
func ValidateFileSize(size int64, maxSize int64) error {
	if size <= 0 {
		return ErrEmptyFile
	}
	if maxSize > 0 && size > maxSize {
		return fmt.Errorf("%w: %d bytes allowed", ErrFileTooLarge, maxSize)
	}
	return nil
}

// ValidateContentType validates the content type
func ValidateContentType(contentType string, allowedTypes []string) error {
	mediaType := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
	for _, allowed := range allowedTypes {
		if strings.EqualFold(mediaType, allowed) {
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnsupportedContentType, contentType)
}
