package sink

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alanpramil7/ytetl/internal/yt"
)

// DocumentStore is the bulk insert capability the document-store sink needs.
type DocumentStore interface {
	InsertMany(ctx context.Context, collection string, docs []any) error
}

// DocumentStoreSink inserts each non-empty keyword's records into a collection
// named after the normalized keyword. Inserts are append-only: repeated runs
// add new documents for videos already stored.
type DocumentStoreSink struct {
	store  DocumentStore
	logger *slog.Logger
}

func NewDocumentStoreSink(store DocumentStore, logger *slog.Logger) *DocumentStoreSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &DocumentStoreSink{store: store, logger: logger}
}

func (s *DocumentStoreSink) Name() string { return "document-store" }

func (s *DocumentStoreSink) Write(ctx context.Context, result yt.ExtractionResult) error {
	for _, keyword := range result.Keywords() {
		videos := result[keyword]
		if len(videos) == 0 {
			continue
		}

		docs := make([]any, len(videos))
		for i := range videos {
			docs[i] = videos[i]
		}

		collection := NormalizeKeyword(keyword)
		if err := s.store.InsertMany(ctx, collection, docs); err != nil {
			return fmt.Errorf("insert into %s: %w", collection, err)
		}
		s.logger.Info("documents inserted", "collection", collection, "records", len(docs))
	}
	return nil
}
