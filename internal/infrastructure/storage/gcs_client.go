package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// CloudStorageClient uploads listing images and avatars to their buckets.
// Both buckets are public-read; writes always require an authenticated
// caller (enforced at the handler).
type CloudStorageClient struct {
	client           *storage.Client
	bookImagesBucket string
	avatarsBucket    string
}

func NewCloudStorageClient(ctx context.Context, bookImagesBucket, avatarsBucket, credentialsPath string) (*CloudStorageClient, error) {
	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	return &CloudStorageClient{
		client:           client,
		bookImagesBucket: bookImagesBucket,
		avatarsBucket:    avatarsBucket,
	}, nil
}

// UploadFunc is the shape shared by the per-bucket upload methods.
type UploadFunc func(ctx context.Context, file io.Reader, contentType string) (string, error)

func (c *CloudStorageClient) UploadBookImage(ctx context.Context, file io.Reader, contentType string) (string, error) {
	return c.upload(ctx, c.bookImagesBucket, file, contentType)
}

func (c *CloudStorageClient) UploadAvatar(ctx context.Context, file io.Reader, contentType string) (string, error) {
	return c.upload(ctx, c.avatarsBucket, file, contentType)
}

func (c *CloudStorageClient) upload(ctx context.Context, bucket string, file io.Reader, contentType string) (string, error) {
	filename := fmt.Sprintf("%s-%s%s", uuid.New().String(), time.Now().Format("20060102150405"), extensionFor(contentType))

	obj := c.client.Bucket(bucket).Object(filename)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bucket, filename), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}

// DeleteFile removes an object previously uploaded by this client, given
// its public URL. Only the two managed buckets are accepted.
func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	const prefix = "https://storage.googleapis.com/"
	if !strings.HasPrefix(fileURL, prefix) {
		return fmt.Errorf("invalid GCS URL format")
	}

	path := fileURL[len(prefix):]
	parts := strings.SplitN(path, "/", 2)
	if len(parts) != 2 {
		return fmt.Errorf("invalid GCS URL format")
	}
	if parts[0] != c.bookImagesBucket && parts[0] != c.avatarsBucket {
		return fmt.Errorf("bucket mismatch")
	}

	obj := c.client.Bucket(parts[0]).Object(parts[1])
	if err := obj.Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}

	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
