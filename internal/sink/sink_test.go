package sink

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alanpramil7/ytetl/internal/yt"
)

type putCall struct {
	bucket, key, contentType string
	data                     []byte
}

type fakeObjectStore struct {
	mu   sync.Mutex
	puts []putCall
	err  error
}

func (f *fakeObjectStore) PutObject(_ context.Context, bucket, key string, data []byte, contentType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.puts = append(f.puts, putCall{bucket: bucket, key: key, data: data, contentType: contentType})
	return nil
}

type fakeDocumentStore struct {
	mu      sync.Mutex
	inserts map[string][]any
	err     error
}

func (f *fakeDocumentStore) InsertMany(_ context.Context, collection string, docs []any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if f.inserts == nil {
		f.inserts = map[string][]any{}
	}
	f.inserts[collection] = append(f.inserts[collection], docs...)
	return nil
}

func int64p(v int64) *int64 { return &v }

func sampleResult() yt.ExtractionResult {
	return yt.ExtractionResult{
		"Machine Learning": {
			{
				Keyword:          "Machine Learning",
				VideoID:          "abc",
				Title:            "Intro, part 1",
				LikeCount:        50,
				CommentCount:     2,
				ViewCount:        1000,
				DurationSeconds:  int64p(330),
				CaptionAvailable: true,
				Tags:             []string{"ml", "ai"},
				URL:              yt.VideoURL("abc"),
			},
			{
				Keyword: "Machine Learning",
				VideoID: "def",
				Tags:    []string{},
				URL:     yt.VideoURL("def"),
			},
		},
		"Data Science": {},
	}
}

func TestNormalizeKeyword(t *testing.T) {
	tests := map[string]string{
		"Machine Learning":        "machine_learning",
		"Devops":                  "devops",
		"Artificial Intelligence": "artificial_intelligence",
		"a  b":                    "a__b",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeKeyword(in), in)
	}
}

func TestEncodeCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeCSV(&buf, sampleResult()["Machine Learning"]))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Columns, rows[0])

	col := func(name string) int {
		for i, c := range Columns {
			if c == name {
				return i
			}
		}
		t.Fatalf("no column %s", name)
		return -1
	}

	first := rows[1]
	assert.Equal(t, "abc", first[col("video_id")])
	assert.Equal(t, "Intro, part 1", first[col("title")])
	assert.Equal(t, "50", first[col("like_count")])
	assert.Equal(t, "330", first[col("duration_seconds")])
	assert.Equal(t, "True", first[col("caption_available")])
	assert.Equal(t, `["ml","ai"]`, first[col("tags")])
	assert.Equal(t, "https://www.youtube.com/watch?v=abc", first[col("url")])

	second := rows[2]
	assert.Equal(t, "", second[col("duration_seconds")])
	assert.Equal(t, "False", second[col("caption_available")])
	assert.Equal(t, "0", second[col("like_count")])
	assert.Equal(t, "[]", second[col("tags")])
}

func TestObjectStoreSink_WritesNonEmptyKeywords(t *testing.T) {
	store := &fakeObjectStore{}
	s := NewObjectStoreSink(store, "youtube-data-krc", "youtube", nil)

	require.NoError(t, s.Write(context.Background(), sampleResult()))

	require.Len(t, store.puts, 1)
	put := store.puts[0]
	assert.Equal(t, "youtube-data-krc", put.bucket)
	assert.Equal(t, "youtube_machine_learning_videos.csv", put.key)
	assert.Equal(t, "text/csv", put.contentType)

	rows, err := csv.NewReader(bytes.NewReader(put.data)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestObjectStoreSink_PropagatesError(t *testing.T) {
	store := &fakeObjectStore{err: errors.New("access denied")}
	s := NewObjectStoreSink(store, "bucket", "youtube", nil)

	err := s.Write(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "youtube_machine_learning_videos.csv")
}

func TestObjectStoreSink_EmptyResult(t *testing.T) {
	store := &fakeObjectStore{}
	s := NewObjectStoreSink(store, "bucket", "youtube", nil)

	require.NoError(t, s.Write(context.Background(), yt.ExtractionResult{"Devops": {}}))
	assert.Empty(t, store.puts)
}

func TestDocumentStoreSink_InsertsPerCollection(t *testing.T) {
	store := &fakeDocumentStore{}
	s := NewDocumentStoreSink(store, nil)

	require.NoError(t, s.Write(context.Background(), sampleResult()))

	require.Len(t, store.inserts, 1)
	docs := store.inserts["machine_learning"]
	require.Len(t, docs, 2)
	first, ok := docs[0].(yt.VideoRecord)
	require.True(t, ok)
	assert.Equal(t, "abc", first.VideoID)
	_, present := store.inserts["data_science"]
	assert.False(t, present)
}

func TestDocumentStoreSink_AppendsOnRepeatedRuns(t *testing.T) {
	store := &fakeDocumentStore{}
	s := NewDocumentStoreSink(store, nil)

	require.NoError(t, s.Write(context.Background(), sampleResult()))
	require.NoError(t, s.Write(context.Background(), sampleResult()))

	assert.Len(t, store.inserts["machine_learning"], 4)
}

func TestDocumentStoreSink_PropagatesError(t *testing.T) {
	store := &fakeDocumentStore{err: errors.New("not primary")}
	s := NewDocumentStoreSink(store, nil)

	err := s.Write(context.Background(), sampleResult())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "machine_learning")
}

func TestWriterSink(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := NewWriterSink(&buf, FormatCSV)
		require.NoError(t, err)
		require.NoError(t, s.Write(context.Background(), sampleResult()))

		rows, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Len(t, rows, 3)
	})

	t.Run("json keeps empty keywords", func(t *testing.T) {
		var buf bytes.Buffer
		s, err := NewWriterSink(&buf, FormatJSON)
		require.NoError(t, err)
		require.NoError(t, s.Write(context.Background(), sampleResult()))

		var decoded map[string][]map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
		assert.Contains(t, decoded, "Data Science")
		assert.Empty(t, decoded["Data Science"])
		require.Len(t, decoded["Machine Learning"], 2)
		assert.Nil(t, decoded["Machine Learning"][1]["duration_seconds"])
	})

	t.Run("unknown format", func(t *testing.T) {
		_, err := NewWriterSink(&bytes.Buffer{}, "xml")
		assert.Error(t, err)
	})
}

func TestNewMinioStore_Validation(t *testing.T) {
	_, err := NewMinioStore(MinioConfig{AccessKeyID: "a", SecretAccessKey: "b"})
	assert.Error(t, err)

	_, err = NewMinioStore(MinioConfig{Endpoint: "localhost:9000"})
	assert.Error(t, err)

	store, err := NewMinioStore(MinioConfig{Endpoint: "http://localhost:9000", AccessKeyID: "a", SecretAccessKey: "b"})
	require.NoError(t, err)
	assert.NotNil(t, store)
}
