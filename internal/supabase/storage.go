package supabase

import (
	"context"
	"fmt"

	"github.com/tineo1298-dev/my-trade-journal/internal/config"
	"go.uber.org/zap"
)

// StorageClient uploads trade screenshots to a Supabase storage bucket and
// hands back their public URLs.
type StorageClient struct {
	*client
	bucket string
}

// NewStorageClient creates a storage client for the configured bucket.
func NewStorageClient(cfg *config.Supabase, logger *zap.Logger) *StorageClient {
	return &StorageClient{
		client: newClient(cfg, logger),
		bucket: cfg.Bucket,
	}
}

// Upload stores a JPEG object under the given path and returns its public
// URL. The path convention is {userID}/{prefix}_{coin}_{timestamp}.jpg so a
// user's screenshots stay grouped in the bucket.
func (c *StorageClient) Upload(ctx context.Context, data []byte, path string) (string, error) {
	req := c.rest.R().
		SetHeader("Authorization", "Bearer "+c.anonKey).
		SetHeader("Content-Type", "image/jpeg").
		SetBody(data)

	url := fmt.Sprintf("/storage/v1/object/%s/%s", c.bucket, path)
	if _, err := c.doRequest(ctx, "POST", url, req); err != nil {
		c.logger.Error("Failed to upload image", zap.String("path", path), zap.Error(err))
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", c.rest.BaseURL, c.bucket, path)
	c.logger.Info("Image uploaded", zap.String("url", publicURL))
	return publicURL, nil
}
