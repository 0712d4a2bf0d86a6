package blob_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/blob"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

func Test_MemoryStore_PutThenGet_ReturnsCopy(t *testing.T) {
	// arrange
	store := blob.NewMemoryStore()
	body := []byte(`{"fines":[]}`)

	// act
	info, err := store.Put(t.Context(), "reports/a.json", body, "application/json")
	require.NoError(t, err)
	body[0] = 'X'
	gotInfo, gotBody, err := store.Get(t.Context(), "reports/a.json")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "memory://reports/a.json", info.Location)
	assert.Equal(t, int64(12), gotInfo.Size)
	assert.Equal(t, "application/json", gotInfo.ContentType)
	assert.Equal(t, `{"fines":[]}`, string(gotBody))
}

func Test_MemoryStore_Get_Missing_ReturnsNotFound(t *testing.T) {
	// act
	_, _, err := blob.NewMemoryStore().Get(t.Context(), "nope")

	// assert
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func Test_MemoryStore_Put_EmptyKey_Fails(t *testing.T) {
	// act
	_, err := blob.NewMemoryStore().Put(t.Context(), "", nil, "")

	// assert
	assert.ErrorIs(t, err, blob.ErrEmptyKey)
}

func Test_MemoryStore_Put_CanceledContext_Fails(t *testing.T) {
	// arrange
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	// act
	_, err := blob.NewMemoryStore().Put(ctx, "k", nil, "")

	// assert
	assert.ErrorIs(t, err, context.Canceled)
}

func Test_MemoryStore_List_FiltersByPrefixSorted(t *testing.T) {
	// arrange
	store := blob.NewMemoryStore()
	for _, key := range []string{"reports/b", "other/x", "reports/a"} {
		_, err := store.Put(t.Context(), key, []byte("1"), "")
		require.NoError(t, err, "error in arranging test data")
	}

	// act
	infos, err := store.List(t.Context(), "reports/")

	// assert
	require.NoError(t, err)
	require.Len(t, infos, 2)
	assert.Equal(t, "reports/a", infos[0].Key)
	assert.Equal(t, "reports/b", infos[1].Key)
}

func Test_Open_SelectsBackend(t *testing.T) {
	// act
	memoryStore, memoryErr := blob.Open(t.Context(), config.DefaultBlobConfig())
	_, unknownErr := blob.Open(t.Context(), config.BlobConfig{Backend: "ftp"})
	_, missingBucketErr := blob.Open(t.Context(), config.BlobConfig{Backend: config.BlobBackendS3})

	// assert
	assert.NoError(t, memoryErr)
	assert.IsType(t, &blob.MemoryStore{}, memoryStore)
	assert.ErrorIs(t, unknownErr, blob.ErrUnknownBackend)
	assert.ErrorIs(t, missingBucketErr, blob.ErrMissingBucket)
}
