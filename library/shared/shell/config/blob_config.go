package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	// BlobBackendMemory keeps exported reports in process memory.
	BlobBackendMemory = "memory"

	// BlobBackendS3 uploads exported reports to an S3 compatible bucket.
	BlobBackendS3 = "s3"
)

// LookupFunc resolves an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// BlobConfig selects the storage the fines report is exported to.
type BlobConfig struct {
	Backend      string `yaml:"backend"`
	Bucket       string `yaml:"bucket"`
	Region       string `yaml:"region"`
	Endpoint     string `yaml:"endpoint"`
	Prefix       string `yaml:"prefix"`
	UsePathStyle bool   `yaml:"use_path_style"`
}

// DefaultBlobConfig keeps reports in memory.
func DefaultBlobConfig() BlobConfig {
	return BlobConfig{
		Backend: BlobBackendMemory,
		Region:  "us-east-1",
		Prefix:  "reports/",
	}
}

// BlobConfigFromEnv starts from DefaultBlobConfig and applies the LIBRARY_BLOB_* variables.
func BlobConfigFromEnv() (BlobConfig, error) {
	cfg := DefaultBlobConfig()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return BlobConfig{}, err
	}

	return cfg, cfg.Validate()
}

// Validate checks that the backend is known and that S3 has a bucket.
func (c BlobConfig) Validate() error {
	switch c.Backend {
	case BlobBackendMemory:
		return nil
	case BlobBackendS3:
		if c.Bucket == "" {
			return fmt.Errorf("%w: blob bucket is required for the s3 backend", ErrInvalidConfigValue)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown blob backend %q", ErrInvalidConfigValue, c.Backend)
	}
}

func (c *BlobConfig) applyEnv(lookup LookupFunc) error {
	overrideString(lookup, "LIBRARY_BLOB_BACKEND", &c.Backend)
	overrideString(lookup, "LIBRARY_BLOB_BUCKET", &c.Bucket)
	overrideString(lookup, "LIBRARY_BLOB_REGION", &c.Region)
	overrideString(lookup, "LIBRARY_BLOB_ENDPOINT", &c.Endpoint)
	overrideString(lookup, "LIBRARY_BLOB_PREFIX", &c.Prefix)

	if raw, ok := lookup("LIBRARY_BLOB_USE_PATH_STYLE"); ok {
		value, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: LIBRARY_BLOB_USE_PATH_STYLE=%q", ErrInvalidConfigValue, raw)
		}
		c.UsePathStyle = value
	}

	return nil
}

func overrideString(lookup LookupFunc, key string, target *string) {
	if value, ok := lookup(key); ok && value != "" {
		*target = value
	}
}
