package storage

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Client is the object storage surface the snapshot archive needs.
// The live implementation wraps the MinIO client (which also speaks
// plain S3); tests substitute the mock in core/storage/mocks.
type Client interface {
	// BucketExists checks if a bucket exists.
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	// MakeBucket creates a new bucket.
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	// PutObject uploads an object.
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	// GetObject downloads an object.
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	// ListObjects lists objects in a bucket.
	ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo
	// RemoveObject deletes one object from a bucket.
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	// RemoveObjects deletes a stream of objects from a bucket.
	RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError
}

// NewClient connects to the configured object storage endpoint.
//
// The connection itself is lazy; what must not be lazy are the timeouts,
// so the HTTP transport is pinned down tight enough that a dead endpoint
// cannot stall a sync run waiting on a snapshot upload.
func NewClient(cfg Config) (Client, error) {
	timeout := time.Duration(cfg.Timeout()) * time.Second

	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   timeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   timeout,
		ExpectContinueTimeout: 1 * time.Second,
		ResponseHeaderTimeout: timeout,
	}

	inner, err := minio.New(cfg.Host(), &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: transport,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	return &minioClient{inner: inner}, nil
}

// minioClient adapts *minio.Client to the Client interface. Delegation
// is explicit so the exposed surface stays exactly the interface; the
// only real adaptation is GetObject, whose concrete *minio.Object return
// narrows to io.ReadCloser.
type minioClient struct {
	inner *minio.Client
}

var _ Client = (*minioClient)(nil)

func (c *minioClient) BucketExists(ctx context.Context, bucketName string) (bool, error) {
	return c.inner.BucketExists(ctx, bucketName)
}

func (c *minioClient) MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error {
	return c.inner.MakeBucket(ctx, bucketName, opts)
}

func (c *minioClient) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error) {
	return c.inner.PutObject(ctx, bucketName, objectName, reader, objectSize, opts)
}

func (c *minioClient) GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (io.ReadCloser, error) {
	return c.inner.GetObject(ctx, bucketName, objectName, opts)
}

func (c *minioClient) ListObjects(ctx context.Context, bucketName string, opts minio.ListObjectsOptions) <-chan minio.ObjectInfo {
	return c.inner.ListObjects(ctx, bucketName, opts)
}

func (c *minioClient) RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error {
	return c.inner.RemoveObject(ctx, bucketName, objectName, opts)
}

func (c *minioClient) RemoveObjects(ctx context.Context, bucketName string, objectsCh <-chan minio.ObjectInfo, opts minio.RemoveObjectsOptions) <-chan minio.RemoveObjectError {
	return c.inner.RemoveObjects(ctx, bucketName, objectsCh, opts)
}
