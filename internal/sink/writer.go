package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/alanpramil7/ytetl/internal/yt"
)

// Output formats for WriterSink.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// WriterSink encodes a whole result to an io.Writer. CSV output is one header
// followed by the rows of every non-empty keyword; JSON output is the result map
// itself, empty keywords included.
type WriterSink struct {
	w      io.Writer
	format string
}

func NewWriterSink(w io.Writer, format string) (*WriterSink, error) {
	switch format {
	case FormatCSV, FormatJSON:
	default:
		return nil, fmt.Errorf("unsupported format %q (want %s or %s)", format, FormatCSV, FormatJSON)
	}
	return &WriterSink{w: w, format: format}, nil
}

func (s *WriterSink) Name() string { return "writer" }

func (s *WriterSink) Write(_ context.Context, result yt.ExtractionResult) error {
	if s.format == FormatJSON {
		enc := json.NewEncoder(s.w)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	var rows []yt.VideoRecord
	for _, keyword := range result.Keywords() {
		rows = append(rows, result[keyword]...)
	}
	return EncodeCSV(s.w, rows)
}
