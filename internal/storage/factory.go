package storage

import (
	"context"
	"fmt"

	"applicantpool/internal/config"
)

// New selects the archive backend named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(cfg.UploadDir)
	case "minio":
		return NewMinIO(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
