// Package storage wraps the S3 object store that keeps uploaded photos.
// Objects are written public-read and addressed by a timestamp-derived key,
// so the returned URL is directly renderable by the client.
package storage

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// ObjectStore uploads byte payloads to a single S3 bucket and hands back
// publicly retrievable URLs.
type ObjectStore struct {
	client     *s3.Client
	bucket     string
	publicBase string
}

// Options carries the credentials and addressing for the media bucket.
// AccessKey may be empty, in which case the SDK's default credential chain
// applies.  Endpoint is only set for MinIO-style deployments.
type Options struct {
	Region     string
	Bucket     string
	AccessKey  string
	SecretKey  string
	Endpoint   string
	PublicBase string // overrides the default https://<bucket>.s3.amazonaws.com base
}

// New builds the S3 client once at startup; the client is safe for
// concurrent use by the upload handlers.
func New(ctx context.Context, opts Options) (*ObjectStore, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(opts.Region)}
	if opts.AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("storage: load aws config: %w", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &ObjectStore{client: client, bucket: opts.Bucket, publicBase: opts.PublicBase}, nil
}

// Put uploads one object and returns its public URL.
func (s *ObjectStore) Put(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
		ACL:         types.ObjectCannedACLPublicRead,
	})
	if err != nil {
		return "", fmt.Errorf("storage: put %s: %w", key, err)
	}
	return s.URL(key), nil
}

// URL returns the public address of a stored object.
func (s *ObjectStore) URL(key string) string {
	if s.publicBase != "" {
		return strings.TrimRight(s.publicBase, "/") + "/" + key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
}

// Key derives a storage key from the ingest timestamp plus the original
// filename's extension.  Distinct under normal request rates; concurrent
// uploads within the same millisecond can still collide.
func Key(originalName string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(originalName), "."))
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%d.%s", time.Now().UnixMilli(), ext)
}
