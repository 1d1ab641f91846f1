package s3

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
	"time"

	"prime_estate/internal/metrics"
	"prime_estate/internal/storage"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Config options for the S3 blob storage
type Config struct {
	Region          string // AWS region
	Bucket          string // S3 bucket name
	AccessKeyID     string // AWS access key ID
	SecretAccessKey string // AWS secret access key
	Endpoint        string // Optional custom endpoint for S3-compatible services
	UsePathStyle    bool   // Use path-style addressing (MinIO)
	PublicBaseURL   string // Optional base URL for public object links (CDN, MinIO)
	KeyPrefix       string // Key prefix for uploads (default: "projects")
}

// BlobStorage is an AWS S3 implementation of the storage.BlobStorage
// interface. Object keys are prefixed with the upload timestamp so concurrent
// uploads of the same filename never overwrite each other.
type BlobStorage struct {
	client        *s3.Client
	bucket        string
	region        string
	keyPrefix     string
	publicBaseURL string
	usePathStyle  bool
}

func New(config Config) (*BlobStorage, error) {
	if config.Bucket == "" {
		return nil, errors.New("bucket name is required")
	}

	if config.Region == "" {
		config.Region = "us-east-1"
	}

	if config.KeyPrefix == "" {
		config.KeyPrefix = "projects"
	}

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(config.Region),
	}

	if config.AccessKeyID != "" && config.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				config.AccessKeyID,
				config.SecretAccessKey,
				"",
			),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if config.Endpoint != "" {
			o.BaseEndpoint = aws.String(config.Endpoint)
		}
		if config.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return &BlobStorage{
		client:        client,
		bucket:        config.Bucket,
		region:        config.Region,
		keyPrefix:     config.KeyPrefix,
		publicBaseURL: strings.TrimSuffix(config.PublicBaseURL, "/"),
		usePathStyle:  config.UsePathStyle,
	}, nil
}

// Upload stores the file under a timestamped key and returns its public URL.
func (b *BlobStorage) Upload(ctx context.Context, file storage.FileUpload) (string, error) {
	key := b.objectKey(file.Name)

	uploader := manager.NewUploader(b.client)

	input := &s3.PutObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
		Body:   file.Content,
	}
	if file.ContentType != "" {
		input.ContentType = aws.String(file.ContentType)
	}

	if _, err := uploader.Upload(ctx, input); err != nil {
		return "", fmt.Errorf("failed to upload object: %w", err)
	}

	metrics.ImageUploadsTotal.Inc()

	return b.PublicURL(key), nil
}

// Delete removes the object. Deleting an absent key is not an error.
func (b *BlobStorage) Delete(ctx context.Context, key string) error {
	input := &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}

	if _, err := b.client.DeleteObject(ctx, input); err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) {
			switch apiErr.ErrorCode() {
			case "NoSuchKey", "NotFound":
				return nil
			}
		}

		metrics.BlobDeleteFailuresTotal.Inc()

		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// PublicURL returns the percent-encoded public URL of an object key.
func (b *BlobStorage) PublicURL(key string) string {
	if b.publicBaseURL != "" {
		return b.publicBaseURL + escapePath(key)
	}

	u := url.URL{
		Scheme: "https",
		Host:   fmt.Sprintf("%s.s3.%s.amazonaws.com", b.bucket, b.region),
		Path:   "/" + key,
	}

	return u.String()
}

// KeyFromURL recovers the object key from a URL produced by Upload: scheme
// and host are stripped, the path is kept and decoded.
func (b *BlobStorage) KeyFromURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse object URL: %w", err)
	}

	key := strings.TrimPrefix(u.Path, "/")

	// Path-style URLs carry the bucket as the first path segment.
	if b.usePathStyle {
		key = strings.TrimPrefix(key, b.bucket+"/")
	}

	if key == "" {
		return "", fmt.Errorf("object URL %q has no key", rawURL)
	}

	return key, nil
}

func (b *BlobStorage) objectKey(fileName string) string {
	name := path.Base(strings.ReplaceAll(fileName, "\\", "/"))

	return fmt.Sprintf("%s/%d-%s", b.keyPrefix, time.Now().UnixMilli(), name)
}

func escapePath(key string) string {
	segments := strings.Split(key, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}

	return "/" + strings.Join(segments, "/")
}
