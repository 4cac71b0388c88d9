package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/ratelimit"
)

type S3Store struct {
	client        *s3.Client
	uploader      *manager.Uploader
	bucket        string
	publicBaseURL string
	limiter       ratelimit.Limiter
}

type S3Options struct {
	Region string
	Bucket string
	// PublicBaseURL replaces the S3 location in returned URLs, e.g. a CDN host.
	PublicBaseURL string
	// UploadsPerSecond paces Put calls; 0 disables pacing.
	UploadsPerSecond int
}

// NewS3Store builds a store from the default AWS credential chain.
func NewS3Store(ctx context.Context, opts S3Options) (*S3Store, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(opts.Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)

	limiter := ratelimit.NewUnlimited()
	if opts.UploadsPerSecond > 0 {
		limiter = ratelimit.New(opts.UploadsPerSecond)
	}

	return &S3Store{
		client:        client,
		uploader:      manager.NewUploader(client),
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(opts.PublicBaseURL, "/"),
		limiter:       limiter,
	}, nil
}

func (s *S3Store) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	s.limiter.Take()

	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", err
	}

	if s.publicBaseURL != "" {
		return s.publicBaseURL + "/" + key, nil
	}
	return result.Location, nil
}

func (s *S3Store) Get(ctx context.Context, key string) (Object, error) {
	output, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var nsk *types.NoSuchKey
		if errors.As(err, &nsk) {
			return Object{}, ErrNotFound
		}
		return Object{}, err
	}

	contentType := "application/octet-stream"
	if output.ContentType != nil {
		contentType = *output.ContentType
	}

	return Object{Body: output.Body, ContentType: contentType}, nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err
}
