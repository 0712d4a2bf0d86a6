package blob_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/blob"
	"github.com/AntonStoeckl/library-lending-go/library/shared/shell/config"
)

func Test_S3Store_PutThenGet(t *testing.T) {
	// arrange
	store, fake := givenS3Store(t)

	// act
	info, err := store.Put(t.Context(), "reports/fines.json", []byte(`{"total":"30.00"}`), "application/json")
	require.NoError(t, err)
	gotInfo, body, err := store.Get(t.Context(), "reports/fines.json")

	// assert
	require.NoError(t, err)
	assert.Equal(t, "s3://library-reports/reports/fines.json", info.Location)
	assert.Equal(t, `{"total":"30.00"}`, string(body))
	assert.Equal(t, "application/json", gotInfo.ContentType)
	assert.Equal(t, "application/json", fake.object("reports/fines.json").contentType)
}

func Test_S3Store_Get_MissingKey_ReturnsNotFound(t *testing.T) {
	// arrange
	store, _ := givenS3Store(t)

	// act
	_, _, err := store.Get(t.Context(), "reports/missing.json")

	// assert
	assert.ErrorIs(t, err, blob.ErrNotFound)
}

func Test_S3Store_List_FollowsContinuationTokens(t *testing.T) {
	// arrange
	store, _ := givenS3Store(t)
	for _, key := range []string{"reports/2", "reports/1", "reports/3", "archive/0"} {
		_, err := store.Put(t.Context(), key, []byte(key), "text/plain")
		require.NoError(t, err, "error in arranging test data")
	}

	// act
	infos, err := store.List(t.Context(), "reports/")

	// assert
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "reports/1", infos[0].Key)
	assert.Equal(t, "reports/3", infos[2].Key)
	assert.Equal(t, int64(len("reports/1")), infos[0].Size)
}

func Test_S3Store_Put_ServerError_IsReturned(t *testing.T) {
	// arrange
	store, fake := givenS3Store(t)
	fake.failPuts = true

	// act
	_, err := store.Put(t.Context(), "reports/x", []byte("x"), "")

	// assert
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "put s3://library-reports/reports/x")
}

func givenS3Store(t *testing.T) (*blob.S3Store, *fakeS3) {
	t.Helper()

	t.Setenv("AWS_CONFIG_FILE", "/dev/null")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", "/dev/null")

	fake := &fakeS3{objects: make(map[string]fakeObject)}
	store, err := blob.NewS3Store(
		t.Context(),
		config.BlobConfig{
			Backend:      config.BlobBackendS3,
			Bucket:       "library-reports",
			Region:       "eu-central-1",
			Endpoint:     "http://s3.fake.local",
			UsePathStyle: true,
		},
		blob.WithHTTPClient(&http.Client{Transport: fake}),
		blob.WithStaticCredentials("AKIATEST", "SECRET"),
	)
	require.NoError(t, err, "error in arranging test data")

	return store, fake
}

type fakeObject struct {
	body        []byte
	contentType string
}

// fakeS3 answers the path-style PutObject, GetObject and ListObjectsV2 requests of one bucket.
// Listing returns one key per page to exercise pagination.
type fakeS3 struct {
	mu       sync.Mutex
	objects  map[string]fakeObject
	failPuts bool
}

func (f *fakeS3) object(key string) fakeObject {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.objects[key]
}

func (f *fakeS3) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	switch {
	case req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2":
		return f.list(req.URL.Query().Get("prefix"), req.URL.Query().Get("continuation-token")), nil

	case req.Method == http.MethodPut:
		if f.failPuts {
			return xmlResponse(http.StatusInternalServerError,
				"<Error><Code>InternalError</Code><Message>boom</Message></Error>"), nil
		}
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return nil, err
		}
		f.objects[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type")}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Etag": {`"etag"`}},
			Body:       io.NopCloser(bytes.NewReader(nil)),
		}, nil

	case req.Method == http.MethodGet:
		object, ok := f.objects[key]
		if !ok {
			return xmlResponse(http.StatusNotFound,
				"<Error><Code>NoSuchKey</Code><Message>The specified key does not exist.</Message></Error>"), nil
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header: http.Header{
				"Content-Type":   {object.contentType},
				"Content-Length": {fmt.Sprintf("%d", len(object.body))},
				"Last-Modified":  {"Mon, 01 Jan 2024 00:00:00 GMT"},
			},
			ContentLength: int64(len(object.body)),
			Body:          io.NopCloser(bytes.NewReader(object.body)),
		}, nil
	}

	return xmlResponse(http.StatusMethodNotAllowed, "<Error><Code>MethodNotAllowed</Code></Error>"), nil
}

func (f *fakeS3) list(prefix, token string) *http.Response {
	var keys []string
	for key := range f.objects {
		if strings.HasPrefix(key, prefix) && key > token {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?><ListBucketResult>`)
	if len(keys) > 1 {
		keys = keys[:1]
		fmt.Fprintf(&b, "<IsTruncated>true</IsTruncated><NextContinuationToken>%s</NextContinuationToken>", keys[0])
	} else {
		b.WriteString("<IsTruncated>false</IsTruncated>")
	}
	for _, key := range keys {
		fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2024-01-01T00:00:00Z</LastModified></Contents>",
			key, len(f.objects[key].body))
	}
	b.WriteString("</ListBucketResult>")

	return xmlResponse(http.StatusOK, b.String())
}

func xmlResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode:    status,
		Header:        http.Header{"Content-Type": {"application/xml"}},
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(strings.NewReader(body)),
	}
}
