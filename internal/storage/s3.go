package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"example.com/fresh-pantry/backend/internal/config"
)

// Uploader кладет снимки сканирований в S3-совместимое хранилище.
type Uploader struct {
	client        *s3.Client
	bucket        string
	region        string
	publicBaseURL string
}

// NewUploader создает загрузчик. Endpoint в конфиге переключает клиент на
// S3-совместимое хранилище с path-style адресацией (MinIO и подобные).
func NewUploader(ctx context.Context, cfg config.StorageConfig) (*Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Uploader{
		client:        client,
		bucket:        cfg.Bucket,
		region:        cfg.Region,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
	}, nil
}

// UploadImage сохраняет снимок и возвращает его публичный URL.
func (u *Uploader) UploadImage(ctx context.Context, userID uuid.UUID, data []byte, mimeType string) (string, error) {
	key := fmt.Sprintf("scans/%s/%d-%s.jpg", userID, time.Now().UTC().Unix(), shortID())

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(mimeType),
	})
	if err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	return u.objectURL(key), nil
}

// DeleteObject удаляет объект по ключу.
func (u *Uploader) DeleteObject(ctx context.Context, key string) error {
	_, err := u.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
	})

	return err
}

func (u *Uploader) objectURL(key string) string {
	if u.publicBaseURL != "" {
		return fmt.Sprintf("%s/%s", u.publicBaseURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
}

func shortID() string {
	return strings.Split(uuid.New().String(), "-")[0]
}
