package media

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-de-belleza/internal/config"
)

// Store grava um objeto e devolve a URL pública.
type Store interface {
	Upload(ctx context.Context, key, contentType string, body []byte) (string, error)
}

type S3Uploader struct {
	client    *s3.Client
	bucket    string
	publicURL string
	log       *slog.Logger
}

// NewS3Uploader devolve nil quando o bucket não está configurado.
func NewS3Uploader(cfg config.S3Config, logger *slog.Logger) *S3Uploader {
	if !cfg.Enabled() {
		return nil
	}

	opts := s3.Options{
		Region: cfg.Region,
	}
	if cfg.AccessKeyID != "" {
		opts.Credentials = credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)
	}
	if cfg.Endpoint != "" {
		// MinIO e similares
		opts.BaseEndpoint = aws.String(cfg.Endpoint)
		opts.UsePathStyle = true
	}

	publicURL := cfg.PublicBaseURL
	if publicURL == "" {
		publicURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}

	return &S3Uploader{
		client:    s3.New(opts),
		bucket:    cfg.Bucket,
		publicURL: publicURL,
		log:       logger.With("component", "s3"),
	}
}

func (u *S3Uploader) Upload(
	ctx context.Context,
	key string,
	contentType string,
	body []byte,
) (string, error) {

	_, err := u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:       aws.String(u.bucket),
		Key:          aws.String(key),
		Body:         bytes.NewReader(body),
		ContentType:  aws.String(contentType),
		CacheControl: aws.String("public, max-age=31536000"),
	})
	if err != nil {
		u.log.Error("upload failed", "key", key, "error", err)
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	return u.publicURL + "/" + key, nil
}

// ServiceImageKey gera services/<data>-<uuid>.webp.
func ServiceImageKey(now time.Time) string {
	return fmt.Sprintf("services/%s-%s.webp", now.Format("20060102"), uuid.NewString())
}

var _ Store = (*S3Uploader)(nil)
