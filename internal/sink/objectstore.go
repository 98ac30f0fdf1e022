package sink

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/alanpramil7/ytetl/internal/yt"
)

const csvContentType = "text/csv"

// ObjectStore is the blob write capability the object-store sink needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, data []byte, contentType string) error
}

// ObjectStoreSink writes one CSV blob per non-empty keyword.
type ObjectStoreSink struct {
	store  ObjectStore
	bucket string
	prefix string
	logger *slog.Logger
}

// NewObjectStoreSink creates a sink writing to bucket with keys
// "<prefix>_<normalized keyword>_videos.csv".
func NewObjectStoreSink(store ObjectStore, bucket, prefix string, logger *slog.Logger) *ObjectStoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &ObjectStoreSink{
		store:  store,
		bucket: bucket,
		prefix: prefix,
		logger: logger,
	}
}

func (s *ObjectStoreSink) Name() string { return "object-store" }

// ObjectKey returns the blob key for keyword.
func (s *ObjectStoreSink) ObjectKey(keyword string) string {
	return fmt.Sprintf("%s_%s_videos.csv", s.prefix, NormalizeKeyword(keyword))
}

// Write uploads each keyword's records as CSV.
func (s *ObjectStoreSink) Write(ctx context.Context, result yt.ExtractionResult) error {
	for _, keyword := range result.Keywords() {
		videos := result[keyword]
		if len(videos) == 0 {
			continue
		}

		var buf bytes.Buffer
		if err := EncodeCSV(&buf, videos); err != nil {
			return fmt.Errorf("encode %q: %w", keyword, err)
		}

		key := s.ObjectKey(keyword)
		if err := s.store.PutObject(ctx, s.bucket, key, buf.Bytes(), csvContentType); err != nil {
			return fmt.Errorf("put %s/%s: %w", s.bucket, key, err)
		}
		s.logger.Info("object written", "bucket", s.bucket, "key", key, "records", len(videos), "bytes", buf.Len())
	}
	return nil
}
