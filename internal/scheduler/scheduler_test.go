package scheduler

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context) error { return nil }

func TestNew_InvalidSpec(t *testing.T) {
	_, err := New("every tuesday", noop, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "every tuesday")
}

func TestNext(t *testing.T) {
	tests := []struct {
		spec string
		from time.Time
		want time.Time
	}{
		{
			spec: "@daily",
			from: time.Date(2025, 4, 29, 10, 30, 0, 0, time.Local),
			want: time.Date(2025, 4, 30, 0, 0, 0, 0, time.Local),
		},
		{
			spec: "*/15 * * * *",
			from: time.Date(2025, 4, 29, 10, 31, 0, 0, time.Local),
			want: time.Date(2025, 4, 29, 10, 45, 0, 0, time.Local),
		},
	}
	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			s, err := New(tt.spec, noop, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Next(tt.from))
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	s, err := New("@hourly", noop, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	a := slogAdapter{logger: slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))}

	a.Info("wake", "now", "x")
	a.Error(errors.New("panic in job"), "panic", "entry", 1)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"level":"DEBUG"`)
	assert.Contains(t, lines[1], `"error":"panic in job"`)
	assert.Contains(t, lines[1], `"entry":1`)
}
