package dispatch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	apperrors "github.com/kbukum/llmcouncil/errors"
	"github.com/kbukum/llmcouncil/httpclient"
	"github.com/kbukum/llmcouncil/llm"
	"github.com/kbukum/llmcouncil/llm/openai"
)

// fakeQuerier answers from a function and can be held until released.
type fakeQuerier struct {
	name   string
	models []string
	answer func(ctx context.Context, text, model string) (string, error)
	calls  atomic.Int32
}

func (f *fakeQuerier) Name() string         { return f.name }
func (f *fakeQuerier) DefaultModel() string { return f.models[0] }

func (f *fakeQuerier) Supports(model string) bool {
	for _, m := range f.models {
		if m == model {
			return true
		}
	}
	return false
}

func (f *fakeQuerier) Query(ctx context.Context, text, model string) (string, error) {
	f.calls.Add(1)
	return f.answer(ctx, text, model)
}

func answering(name, text string) *fakeQuerier {
	return &fakeQuerier{name: name, models: []string{name + "-1", name + "-2"}, answer: func(context.Context, string, string) (string, error) {
		return text, nil
	}}
}

func failing(name string, err error) *fakeQuerier {
	return &fakeQuerier{name: name, models: []string{name + "-1"}, answer: func(context.Context, string, string) (string, error) {
		return "", err
	}}
}

// gated blocks every call until the returned channel receives an answer.
func gated(name string) (*fakeQuerier, chan string) {
	gate := make(chan string)
	return &fakeQuerier{name: name, models: []string{name + "-1"}, answer: func(ctx context.Context, _, _ string) (string, error) {
		select {
		case s := <-gate:
			return s, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}}, gate
}

func newOrchestrator(t *testing.T, qs ...Querier) *Orchestrator {
	t.Helper()
	o, err := New(qs)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return o
}

func waitAll(t *testing.T, sub *Submission) []Outcome {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := sub.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	return out
}

func TestDispatch_IsolatesFailures(t *testing.T) {
	o := newOrchestrator(t,
		answering("openai", "4"),
		failing("gemini", &httpclient.Error{StatusCode: 400, Message: `{"error":"bad request"}`}),
	)
	sub, err := o.Dispatch(context.Background(), "What is 2+2?", []Selection{{Provider: "openai"}, {Provider: "gemini"}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	waitAll(t, sub)

	ok, _ := o.Board().Get("openai")
	if ok.State != Success || ok.Text != "4" || ok.Model != "openai-1" {
		t.Errorf("unexpected openai outcome %+v", ok)
	}
	bad, _ := o.Board().Get("gemini")
	if bad.State != Failure {
		t.Fatalf("expected gemini failure, got %+v", bad)
	}
	if bad.Message != `{"error":"bad request"}` || bad.Status != 400 {
		t.Errorf("unexpected gemini outcome %+v", bad)
	}
	if o.Board().Busy() {
		t.Error("board still busy after all outcomes resolved")
	}
}

func TestDispatch_ResolutionOrder(t *testing.T) {
	slow, release := gated("claude")
	o := newOrchestrator(t, slow, answering("deepseek", "fast"))

	sub, err := o.Dispatch(context.Background(), "q", []Selection{{Provider: "claude"}, {Provider: "deepseek"}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	first := <-sub.Updates()
	if first.Provider != "deepseek" {
		t.Fatalf("expected deepseek first, got %s", first.Provider)
	}
	release <- "slow"

	out := waitAll(t, sub)
	if len(out) != 2 || out[0].Provider != "deepseek" || out[1].Provider != "claude" {
		t.Errorf("unexpected resolution order %+v", out)
	}
}

func TestDispatch_ResetsToPending(t *testing.T) {
	q, release := gated("openai")
	o := newOrchestrator(t, q)

	sub, _ := o.Dispatch(context.Background(), "first", []Selection{{Provider: "openai"}})
	release <- "one"
	waitAll(t, sub)

	sub, _ = o.Dispatch(context.Background(), "second", []Selection{{Provider: "openai"}})
	cell, _ := o.Board().Get("openai")
	if !cell.IsPending() || cell.Text != "" || cell.Submission != sub.ID {
		t.Errorf("expected a fresh pending cell, got %+v", cell)
	}
	if !o.Board().Busy() {
		t.Error("expected board busy while a provider is pending")
	}
	release <- "two"
	waitAll(t, sub)
	if cell, _ = o.Board().Get("openai"); cell.Text != "two" {
		t.Errorf("expected second answer, got %+v", cell)
	}
}

// byQuery holds each call until the gate for its query text is released.
func byQuery(name string, queries ...string) (*fakeQuerier, map[string]chan string) {
	gates := make(map[string]chan string, len(queries))
	for _, q := range queries {
		gates[q] = make(chan string, 1)
	}
	return &fakeQuerier{name: name, models: []string{name + "-1"}, answer: func(ctx context.Context, text, _ string) (string, error) {
		select {
		case s := <-gates[text]:
			return s, nil
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}}, gates
}

func TestDispatch_StaleOutcomeDropped(t *testing.T) {
	q, gates := byQuery("openai", "first", "second")
	o := newOrchestrator(t, q)

	old, _ := o.Dispatch(context.Background(), "first", []Selection{{Provider: "openai"}})
	cur, _ := o.Dispatch(context.Background(), "second", []Selection{{Provider: "openai"}})

	gates["second"] <- "answer to second"
	waitAll(t, cur)
	if cell, _ := o.Board().Get("openai"); cell.Text != "answer to second" {
		t.Fatalf("expected the current answer, got %+v", cell)
	}

	// The older call resolves after the newer one has committed.
	gates["first"] <- "answer to first"
	late := waitAll(t, old)
	if len(late) != 1 || late[0].Text != "answer to first" {
		t.Errorf("stale outcome should still reach its own submission, got %+v", late)
	}

	cell, _ := o.Board().Get("openai")
	if cell.Submission != cur.ID || cell.State != Success || cell.Text != "answer to second" {
		t.Errorf("board overwritten by a stale outcome: %+v", cell)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		code       apperrors.ErrorCode
		wantStatus int
	}{
		{"upstream status", httpclient.NewStatusError(http.StatusBadRequest, []byte("bad request")), apperrors.ErrCodeExternalService, http.StatusBadRequest},
		{"connection", httpclient.NewConnectionError(errors.New("dial tcp: refused")), apperrors.ErrCodeConnectionFailed, 0},
		{"canceled", httpclient.NewCanceledError(context.Canceled), apperrors.ErrCodeTimeout, 0},
		{"encode failure", httpclient.NewValidationError("encode body"), apperrors.ErrCodeInternal, 0},
		{"shape", llm.MissingField("choices[0].message.content"), apperrors.ErrCodeUnexpectedResponse, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr, status := classify("openai", tt.err)
			if appErr.Code != tt.code || status != tt.wantStatus {
				t.Errorf("classify = %s/%d, want %s/%d", appErr.Code, status, tt.code, tt.wantStatus)
			}
		})
	}
}

func TestBoard_CommitGuard(t *testing.T) {
	b := NewBoard()
	sel := Selection{Provider: "openai", Model: "gpt-4o-mini"}
	b.reset(2, []Selection{sel})

	if b.commit(pendingOutcome(sel, 1).succeed("old")) {
		t.Error("outcome of an older submission must not commit")
	}
	if !b.commit(pendingOutcome(sel, 2).succeed("new")) {
		t.Fatal("current outcome should commit")
	}
	if b.commit(pendingOutcome(sel, 2).succeed("again")) {
		t.Error("a resolved cell must not change again")
	}
	if got, _ := b.Get("openai"); got.Text != "new" {
		t.Errorf("unexpected cell %+v", got)
	}
	if b.commit(pendingOutcome(Selection{Provider: "claude"}, 2).succeed("x")) {
		t.Error("unselected provider must not commit")
	}
}

func TestDispatch_PanicIsScopedToProvider(t *testing.T) {
	boom := &fakeQuerier{name: "claude", models: []string{"claude-1"}, answer: func(context.Context, string, string) (string, error) {
		panic("kaboom")
	}}
	o := newOrchestrator(t, boom, answering("openai", "fine"))

	sub, _ := o.Dispatch(context.Background(), "q", []Selection{{Provider: "claude"}, {Provider: "openai"}})
	waitAll(t, sub)

	got, _ := o.Board().Get("claude")
	if got.State != Failure || got.Code != apperrors.ErrCodeInternal {
		t.Errorf("expected internal failure, got %+v", got)
	}
	if ok, _ := o.Board().Get("openai"); ok.State != Success {
		t.Errorf("sibling should succeed, got %+v", ok)
	}
}

func TestDispatch_FallbackMessage(t *testing.T) {
	o := newOrchestrator(t, failing("openai", &httpclient.Error{StatusCode: 500, Message: "  "}))
	sub, _ := o.Dispatch(context.Background(), "q", []Selection{{Provider: "openai"}})
	out := waitAll(t, sub)
	if out[0].Message != FallbackMessage {
		t.Errorf("expected fallback message, got %q", out[0].Message)
	}
}

func TestDispatch_ExhaustedRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Retry-After", "1")
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("overloaded"))
	}))
	defer srv.Close()

	retry := httpclient.DefaultRetryConfig()
	retry.Sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	a, err := llm.NewWithDialect(openai.New(), llm.Config{BaseURL: srv.URL, Retry: retry})
	if err != nil {
		t.Fatalf("adapter: %v", err)
	}
	o := newOrchestrator(t, a)

	sub, err := o.Dispatch(context.Background(), "q", []Selection{{Provider: "openai"}})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	out := waitAll(t, sub)
	if calls.Load() != 3 {
		t.Errorf("expected 3 calls, got %d", calls.Load())
	}
	if out[0].State != Failure || out[0].Status != 503 || out[0].Message != "overloaded" {
		t.Errorf("unexpected outcome %+v", out[0])
	}
	if out[0].Code != apperrors.ErrCodeServiceUnavailable {
		t.Errorf("expected SERVICE_UNAVAILABLE, got %s", out[0].Code)
	}
}

func TestDispatch_Validation(t *testing.T) {
	o := newOrchestrator(t, answering("openai", "x"), answering("claude", "y"))
	tests := []struct {
		name  string
		query string
		sels  []Selection
		want  error
	}{
		{"blank query", "   ", []Selection{{Provider: "openai"}}, ErrEmptyQuery},
		{"no selections", "q", nil, ErrNoSelections},
		{"unknown provider", "q", []Selection{{Provider: "grok"}}, ErrUnknownProvider},
		{"unsupported model", "q", []Selection{{Provider: "openai", Model: "claude-1"}}, ErrUnsupportedModel},
		{"duplicate", "q", []Selection{{Provider: "openai"}, {Provider: "openai"}}, ErrDuplicateProvider},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub, err := o.Dispatch(context.Background(), tt.query, tt.sels)
			if sub != nil {
				t.Fatal("expected no submission")
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
			if !apperrors.IsAppError(err) {
				t.Errorf("expected an AppError, got %T", err)
			}
		})
	}
	if len(o.Board().Snapshot()) != 0 {
		t.Error("rejected submissions must not touch the board")
	}
}

func TestDispatch_ExplicitModel(t *testing.T) {
	var seen string
	q := answering("openai", "x")
	q.answer = func(_ context.Context, _, model string) (string, error) {
		seen = model
		return "x", nil
	}
	o := newOrchestrator(t, q)
	sub, _ := o.Dispatch(context.Background(), "q", []Selection{{Provider: "openai", Model: "openai-2"}})
	waitAll(t, sub)
	if seen != "openai-2" {
		t.Errorf("expected openai-2, got %q", seen)
	}
}

func TestDispatch_WaitHonorsContext(t *testing.T) {
	q, release := gated("openai")
	o := newOrchestrator(t, q)
	sub, _ := o.Dispatch(context.Background(), "q", []Selection{{Provider: "openai"}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := sub.Wait(ctx)
	if !errors.Is(err, context.Canceled) || len(out) != 0 {
		t.Errorf("expected canceled with no results, got %v %+v", err, out)
	}
	release <- "done"
	waitAll(t, sub)
}

func TestNew_DuplicateQuerier(t *testing.T) {
	if _, err := New([]Querier{answering("openai", "a"), answering("openai", "b")}); !errors.Is(err, ErrDuplicateProvider) {
		t.Errorf("expected ErrDuplicateProvider, got %v", err)
	}
}

func TestProviders(t *testing.T) {
	o := newOrchestrator(t, answering("openai", ""), answering("claude", ""), answering("gemini", ""))
	got := o.Providers()
	want := []string{"claude", "gemini", "openai"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestStateString(t *testing.T) {
	for s, want := range map[State]string{Pending: "pending", Success: "success", Failure: "failure", State(9): "unknown"} {
		if s.String() != want {
			t.Errorf("State(%d) = %q, want %q", s, s.String(), want)
		}
	}
}
