package storage

import (
	"context"
	"fmt"
	"os"
)

type FactoryResult struct {
	Driver  string
	Storage Storage
}

// FromEnv picks the blob driver for design-file uploads. Local is the
// default so a dev box works with no S3 credentials.
func FromEnv(ctx context.Context) (FactoryResult, error) {
	driver := os.Getenv("STORAGE_DRIVER")
	if driver == "" {
		driver = "local"
	}

	switch driver {
	case "local":
		return FactoryResult{Driver: "local", Storage: localFromEnv()}, nil
	case "s3":
		s, err := s3FromEnv(ctx)
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil
	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", driver)
	}
}

func localFromEnv() *Local {
	baseDir := envOr("DESIGN_FILES_DIR", "./storage/designs")
	urlPrefix := envOr("DESIGN_FILES_URL_PREFIX", "/files/designs")
	return NewLocal(baseDir, urlPrefix)
}

func s3FromEnv(ctx context.Context) (*S3, error) {
	region := os.Getenv("S3_REGION")
	bucket := os.Getenv("S3_BUCKET")
	publicBase := os.Getenv("S3_PUBLIC_BASE_URL")
	if region == "" || bucket == "" || publicBase == "" {
		return nil, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
	}
	return NewS3(ctx, S3Config{
		Region:        region,
		Bucket:        bucket,
		Prefix:        envOr("S3_PREFIX", "designs"),
		PublicBaseURL: publicBase,
	})
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
