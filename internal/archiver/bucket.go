package archiver

//go:generate mockgen -source=bucket.go -destination=mocks/mock_bucket.go -package=mocks

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"GestorChoferes/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BucketMirror copies backup artifacts to an S3 compatible bucket.
type BucketMirror struct {
	bucket string
	prefix string
	client S3Client
}

func NewS3Client(ctx context.Context, cfg config.BucketConfig) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint == "" {
		return s3.NewFromConfig(awsCfg), nil
	}
	// MinIO / LocalStack
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

func NewBucketMirror(bucket, prefix string, client S3Client) *BucketMirror {
	return &BucketMirror{bucket: bucket, prefix: prefix, client: client}
}

// Upload puts localPath under <prefix>/<file name> and returns the object key.
func (m *BucketMirror) Upload(ctx context.Context, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("BucketMirror.Upload(): %w", err)
	}
	defer f.Close()

	key := path.Join(m.prefix, filepath.Base(localPath))
	_, err = m.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(m.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(localPath)),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}
	return key, nil
}

func contentType(p string) string {
	switch filepath.Ext(p) {
	case ".csv":
		return "text/csv"
	case ".json":
		return "application/json"
	default:
		return "application/octet-stream"
	}
}
