package blob

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

// ErrNotFound is returned when no object exists under a key.
var ErrNotFound = errors.New("blob not found")

// ErrEmptyKey is returned when an object key is empty.
var ErrEmptyKey = errors.New("blob key must not be empty")

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown blob backend")

// Info describes a stored object.
type Info struct {
	Key          string
	Location     string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// Store persists report objects under string keys.
type Store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) (Info, error)
	Get(ctx context.Context, key string) (Info, []byte, error)
	List(ctx context.Context, prefix string) ([]Info, error)
}

// Open builds the Store selected by cfg.Backend.
func Open(ctx context.Context, cfg config.BlobConfig, options ...S3Option) (Store, error) {
	switch cfg.Backend {
	case config.BlobBackendMemory, "":
		return NewMemoryStore(), nil
	case config.BlobBackendS3:
		return NewS3Store(ctx, cfg, options...)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}
