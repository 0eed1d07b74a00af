package claude

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/llm"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"answer", `{"content":[{"type":"text","text":"ok"}]}`, "ok", false},
		{"empty content", `{"content":[]}`, "", true},
		{"missing text", `{"content":[{"type":"tool_use"}]}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New().ParseResponse([]byte(tt.body))
			if tt.wantErr {
				if !errors.Is(err, llm.ErrUnexpectedShape) {
					t.Errorf("expected ErrUnexpectedShape, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("got (%q, %v), want %q", got, err, tt.want)
			}
		})
	}
}

func TestAdapter_RateLimitedThenOK(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.Header().Set("Retry-After", "2")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte("rate limited"))
			return
		}
		w.Write([]byte(`{"content":[{"text":"ok"}]}`))
	}))
	defer srv.Close()

	var delays []time.Duration
	retry := httpclient.DefaultRetryConfig()
	retry.Sleep = func(ctx context.Context, d time.Duration) error {
		delays = append(delays, d)
		return nil
	}

	a, err := llm.NewWithDialect(New(), llm.Config{BaseURL: srv.URL, Retry: retry})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := a.Query(context.Background(), "hi", "claude-3-5-haiku-latest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Errorf("expected 'ok', got %q", got)
	}
	if calls.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", calls.Load())
	}
	if len(delays) != 2 || delays[0] != 2000*time.Millisecond || delays[1] != 2000*time.Millisecond {
		t.Errorf("expected two 2000ms waits, got %v", delays)
	}
}
