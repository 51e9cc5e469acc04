package app

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type ClientMinio interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (info minio.UploadInfo, err error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// MinioS3Client stores uploads in an S3 compatible bucket.
type MinioS3Client struct {
	endpoint   string
	useSSL     bool
	bucketName string
	client     ClientMinio
}

const defaultContentType = "application/octet-stream"

// NewMinioS3Client creates a new MinioS3Client instance.
func NewMinioS3Client(endpoint, accessKeyID, secretAccessKey, bucketName string, useSSL bool) (*MinioS3Client, error) {
	minioClient, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKeyID, secretAccessKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for %s: %w", endpoint, err)
	}
	return newMinioS3Client(endpoint, bucketName, useSSL, minioClient), nil
}

func newMinioS3Client(endpoint, bucketName string, useSSL bool, client ClientMinio) *MinioS3Client {
	return &MinioS3Client{
		endpoint:   endpoint,
		useSSL:     useSSL,
		bucketName: bucketName,
		client:     client,
	}
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s3 *MinioS3Client) EnsureBucket(ctx context.Context) error {
	exists, err := s3.client.BucketExists(ctx, s3.bucketName)
	if err != nil {
		return fmt.Errorf("can not check bucket %s: %w", s3.bucketName, err)
	}
	if exists {
		return nil
	}
	if err := s3.client.MakeBucket(ctx, s3.bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("can not create bucket %s: %w", s3.bucketName, err)
	}
	return nil
}

func (s3 *MinioS3Client) Save(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	if !isPlainName(name) {
		return "", fmt.Errorf("save %q: %w", name, ErrInvalidName)
	}
	_, err := s3.client.PutObject(ctx,
		s3.bucketName,
		name,
		r,
		size,
		minio.PutObjectOptions{ContentType: ContentTypeOf(name)})
	if err != nil {
		return "", fmt.Errorf("can not upload %s to bucket %s: %w", name, s3.bucketName, err)
	}
	return s3.bucketName + "/" + name, nil
}

func (s3 *MinioS3Client) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if !isPlainName(name) {
		return nil, 0, fmt.Errorf("open %q: %w", name, ErrInvalidName)
	}
	info, err := s3.client.StatObject(ctx, s3.bucketName, name, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, fmt.Errorf("open %q: %w", name, ErrNotFound)
		}
		return nil, 0, fmt.Errorf("can not stat %s: %w", name, err)
	}
	object, err := s3.client.GetObject(ctx, s3.bucketName, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("can not fetch %s: %w", name, err)
	}
	return object, info.Size, nil
}

// ContentTypeOf guesses a MIME type from the file extension.
func ContentTypeOf(name string) string {
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		return ct
	}
	return defaultContentType
}
