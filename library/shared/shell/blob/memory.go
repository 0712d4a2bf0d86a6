package blob

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore keeps objects in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
	now     func() time.Time
}

type memoryObject struct {
	body []byte
	info Info
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		objects: make(map[string]memoryObject),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// Put stores a copy of body under key, replacing an existing object.
func (s *MemoryStore) Put(ctx context.Context, key string, body []byte, contentType string) (Info, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, err
	}

	if key == "" {
		return Info{}, ErrEmptyKey
	}

	info := Info{
		Key:          key,
		Location:     "memory://" + key,
		Size:         int64(len(body)),
		ContentType:  contentType,
		LastModified: s.now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects[key] = memoryObject{body: append([]byte(nil), body...), info: info}

	return info, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Info, []byte, error) {
	if err := ctx.Err(); err != nil {
		return Info{}, nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	object, ok := s.objects[key]
	if !ok {
		return Info{}, nil, ErrNotFound
	}

	return object.info, append([]byte(nil), object.body...), nil
}

// List returns the objects whose key starts with prefix, sorted by key.
func (s *MemoryStore) List(ctx context.Context, prefix string) ([]Info, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]Info, 0, len(s.objects))
	for key, object := range s.objects {
		if strings.HasPrefix(key, prefix) {
			infos = append(infos, object.info)
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })

	return infos, nil
}

var _ Store = (*MemoryStore)(nil)
