package photos

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

type objectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Options configures an S3 (or MinIO) bucket. With BaseEndpoint set the
// client switches to path-style addressing, as MinIO expects.
type S3Options struct {
	User         string
	Password     string
	Bucket       string
	Region       string
	BaseEndpoint string
}

// S3Store uploads photos to a bucket; the bucket is expected to allow
// anonymous reads of the users/ prefix.
type S3Store struct {
	client  objectPutter
	bucket  string
	baseURL string
}

func NewS3Store(ctx context.Context, o S3Options) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.User, o.Password, "")))
	if err != nil {
		return nil, fmt.Errorf("aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(opts *s3.Options) {
		if o.BaseEndpoint != "" {
			opts.BaseEndpoint = aws.String(o.BaseEndpoint)
			opts.UsePathStyle = true
		}
	})

	return &S3Store{client: client, bucket: o.Bucket, baseURL: publicBase(o)}, nil
}

func publicBase(o S3Options) string {
	if o.BaseEndpoint != "" {
		return strings.TrimRight(o.BaseEndpoint, "/") + "/" + o.Bucket
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com", o.Bucket, o.Region)
}

func (s *S3Store) Put(ctx context.Context, userID string, contentType string, data []byte) (string, error) {
	name, err := objectName(contentType)
	if err != nil {
		return "", err
	}
	key := "users/" + userID + "/" + name

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}
