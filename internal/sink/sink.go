// Package sink writes extraction results to their destinations.
//
// Every sink skips keywords whose result list is empty: nothing is written and
// nothing previously written is removed.
package sink

import (
	"context"
	"strings"

	"github.com/alanpramil7/ytetl/internal/yt"
)

// Sink persists one extraction result.
type Sink interface {
	Name() string
	Write(ctx context.Context, result yt.ExtractionResult) error
}

// NormalizeKeyword lowercases keyword and replaces spaces with underscores.
func NormalizeKeyword(keyword string) string {
	return strings.ReplaceAll(strings.ToLower(keyword), " ", "_")
}
