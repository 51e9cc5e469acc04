package app

import (
	"context"
	"errors"
	"strings"
	"testing"

	mocking "woodland/src/app/mock"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestMinioS3Client(t *testing.T) {
	ctx := context.Background()

	t.Run("Save", func(t *testing.T) {
		client := new(mocking.MockClient)
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, client)
		body := strings.NewReader("antlers")
		client.On("PutObject", ctx, "mockBucket", "1-2-deer.jpg", body, int64(7),
			minio.PutObjectOptions{ContentType: "image/jpeg"}).
			Return(minio.UploadInfo{Key: "1-2-deer.jpg"}, nil)

		path, err := s3.Save(ctx, "1-2-deer.jpg", body, 7)
		require.NoError(t, err)
		assert.Equal(t, "mockBucket/1-2-deer.jpg", path)
		assert.Equal(t, "1-2-deer.jpg", BaseName(path))
		client.AssertExpectations(t)
	})

	t.Run("Save error", func(t *testing.T) {
		client := new(mocking.MockClient)
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, client)
		client.On("PutObject", mock.Anything, "mockBucket", "x.bin", mock.Anything, int64(1), mock.Anything).
			Return(minio.UploadInfo{}, errors.New("bucket offline"))

		_, err := s3.Save(ctx, "x.bin", strings.NewReader("x"), 1)
		assert.ErrorContains(t, err, "bucket offline")
	})

	t.Run("Save rejects nested names", func(t *testing.T) {
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, new(mocking.MockClient))
		_, err := s3.Save(ctx, "a/b.jpg", strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, ErrInvalidName)
	})

	t.Run("Open missing", func(t *testing.T) {
		client := new(mocking.MockClient)
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, client)
		client.On("StatObject", ctx, "mockBucket", "gone.jpg", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{}, minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404})

		_, _, err := s3.Open(ctx, "gone.jpg")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("Open get error", func(t *testing.T) {
		client := new(mocking.MockClient)
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, client)
		client.On("StatObject", ctx, "mockBucket", "owl.jpg", minio.StatObjectOptions{}).
			Return(minio.ObjectInfo{Size: 3}, nil)
		client.On("GetObject", ctx, "mockBucket", "owl.jpg", minio.GetObjectOptions{}).
			Return(nil, errors.New("reset"))

		_, _, err := s3.Open(ctx, "owl.jpg")
		assert.ErrorContains(t, err, "reset")
	})

	t.Run("EnsureBucket creates missing bucket", func(t *testing.T) {
		client := new(mocking.MockClient)
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, client)
		client.On("BucketExists", ctx, "mockBucket").Return(false, nil)
		client.On("MakeBucket", ctx, "mockBucket", minio.MakeBucketOptions{}).Return(nil)

		require.NoError(t, s3.EnsureBucket(ctx))
		client.AssertExpectations(t)
	})

	t.Run("EnsureBucket existing", func(t *testing.T) {
		client := new(mocking.MockClient)
		s3 := newMinioS3Client("mockEndpoint", "mockBucket", true, client)
		client.On("BucketExists", ctx, "mockBucket").Return(true, nil)

		require.NoError(t, s3.EnsureBucket(ctx))
		client.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ContentTypeOf", func(t *testing.T) {
		assert.Equal(t, "image/png", ContentTypeOf("a.png"))
		assert.Equal(t, defaultContentType, ContentTypeOf("a.unknownext"))
	})
}
