package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/llm"
)

func TestParseResponse(t *testing.T) {
	body := `{"candidates":[{"content":{"parts":[{"text":"Paris"}],"role":"model"}}]}`
	got, err := New().ParseResponse([]byte(body))
	if err != nil || got != "Paris" {
		t.Errorf("got (%q, %v)", got, err)
	}

	for _, bad := range []string{`{"candidates":[]}`, `{"candidates":[{"content":{"parts":[]}}]}`, `{"candidates":[{"content":{"parts":[{}]}}]}`} {
		if _, err := New().ParseResponse([]byte(bad)); !errors.Is(err, llm.ErrUnexpectedShape) {
			t.Errorf("expected ErrUnexpectedShape for %s, got %v", bad, err)
		}
	}
}

func TestNewRequest(t *testing.T) {
	data, err := json.Marshal(NewRequest("hello", 0.7))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"contents":[{"parts":[{"text":"hello"}]}],"generationConfig":{"temperature":0.7}}`
	if string(data) != want {
		t.Errorf("expected %s, got %s", want, data)
	}
	if GenerateContentPath("gemini-2.0-flash") != "/v1beta/models/gemini-2.0-flash:generateContent" {
		t.Errorf("unexpected path %q", GenerateContentPath("gemini-2.0-flash"))
	}
}

func TestAdapter_BadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer srv.Close()

	retry := httpclient.DefaultRetryConfig()
	retry.Sleep = func(context.Context, time.Duration) error {
		t.Error("terminal failures must not wait")
		return nil
	}

	a, _ := llm.NewWithDialect(New(), llm.Config{BaseURL: srv.URL, Retry: retry})
	_, err := a.Query(context.Background(), "q", "gemini-2.0-flash-lite")
	if err == nil || !strings.Contains(err.Error(), "bad request") {
		t.Fatalf("expected error containing 'bad request', got %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("expected 1 call, got %d", calls.Load())
	}
}
