// internal/config/s3.go
package config

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Settings are the raw AWS_* / S3_* variables.
type S3Settings struct {
	Bucket        string
	Region        string
	AccessKeyID   string
	SecretKey     string
	PublicBaseURL string
}

func (s S3Settings) Enabled() bool {
	return s.Bucket != ""
}

// ObjectURL is the public URL for key. Without S3_PUBLIC_BASE_URL it uses
// the virtual-hosted bucket address.
func (s S3Settings) ObjectURL(key string) string {
	if s.PublicBaseURL != "" {
		return strings.TrimRight(s.PublicBaseURL, "/") + "/" + key
	}
	if s.Region == "" {
		return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.Bucket, s.Region, key)
}

// S3Config holds S3 configuration
type S3Config struct {
	Client   *s3.Client
	Bucket   string
	Settings S3Settings
}

// NewS3Config creates a new S3 configuration. It returns nil, nil when no
// bucket is configured.
func NewS3Config(ctx context.Context, settings S3Settings) (*S3Config, error) {
	if !settings.Enabled() {
		return nil, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{}
	if settings.Region != "" {
		opts = append(opts, awsconfig.WithRegion(settings.Region))
	}
	// Static keys win when given; otherwise the default chain (env, profile,
	// instance role) applies.
	if settings.AccessKeyID != "" && settings.SecretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			settings.AccessKeyID,
			settings.SecretKey,
			"",
		)))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &S3Config{
		Client:   s3.NewFromConfig(cfg),
		Bucket:   settings.Bucket,
		Settings: settings,
	}, nil
}
