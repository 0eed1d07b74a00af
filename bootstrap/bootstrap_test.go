package bootstrap

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/kbukum/llmcouncil/config"
	"github.com/kbukum/llmcouncil/logger"
	"github.com/kbukum/llmcouncil/observability"
)

type testConfig struct {
	config.ServiceConfig
}

type staticChecker observability.Health

func (s staticChecker) CheckHealth(context.Context) observability.Health {
	return observability.Health(s)
}

func newTestApp(t *testing.T, opts ...Option) (*App[*testConfig], *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	cfg := &testConfig{ServiceConfig: config.ServiceConfig{Name: "test-svc", Version: "1.0.0"}}
	opts = append([]Option{WithLogger(logger.NewNop()), WithOutput(&out)}, opts...)
	app, err := NewApp(cfg, opts...)
	if err != nil {
		t.Fatalf("NewApp failed: %v", err)
	}
	return app, &out
}

func TestNewApp(t *testing.T) {
	app, _ := newTestApp(t)
	if app.Name != "test-svc" || app.Version != "1.0.0" {
		t.Errorf("unexpected identity %q %q", app.Name, app.Version)
	}
	if app.Cfg.Environment != "development" {
		t.Errorf("defaults not applied: %q", app.Cfg.Environment)
	}
	if app.Logger == nil || app.Summary == nil {
		t.Error("expected logger and summary")
	}
}

func TestNewApp_ValidationFails(t *testing.T) {
	_, err := NewApp(&testConfig{}, WithLogger(logger.NewNop()))
	if err == nil || !strings.Contains(err.Error(), "config validation") {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRunTask_HookOrder(t *testing.T) {
	app, _ := newTestApp(t)
	var order []string
	app.OnStart(func(context.Context) error { order = append(order, "start"); return nil })
	app.OnReady(func(context.Context) error { order = append(order, "ready"); return nil })
	app.OnStop(
		func(context.Context) error { order = append(order, "stop1"); return nil },
		func(context.Context) error { order = append(order, "stop2"); return nil },
	)

	err := app.RunTask(context.Background(), func(context.Context) error {
		order = append(order, "task")
		return nil
	})
	if err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	want := "start,ready,task,stop2,stop1"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("order = %s, want %s", got, want)
	}
}

func TestRunTask_TaskErrorWins(t *testing.T) {
	app, _ := newTestApp(t)
	taskErr := errors.New("task failed")
	app.OnStop(func(context.Context) error { return errors.New("stop failed") })

	if err := app.RunTask(context.Background(), func(context.Context) error { return taskErr }); !errors.Is(err, taskErr) {
		t.Errorf("expected task error, got %v", err)
	}
}

func TestRunTask_StartFailureStops(t *testing.T) {
	app, _ := newTestApp(t)
	stopped := false
	app.OnStart(func(context.Context) error { return errors.New("bind failed") })
	app.OnStop(func(context.Context) error { stopped = true; return nil })

	ran := false
	err := app.RunTask(context.Background(), func(context.Context) error { ran = true; return nil })
	if err == nil || !strings.Contains(err.Error(), "onStart hook failed") {
		t.Errorf("expected start error, got %v", err)
	}
	if ran {
		t.Error("task must not run after a failed start")
	}
	if !stopped {
		t.Error("stop hooks should run after a failed start")
	}
}

func TestRun_ReturnsOnContextCancel(t *testing.T) {
	app, _ := newTestApp(t, WithGracefulTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	app.OnStop(func(context.Context) error { close(stopped); return nil })

	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	select {
	case <-stopped:
	default:
		t.Error("stop hook did not run")
	}
}

func TestReadyCheck(t *testing.T) {
	up := staticChecker{Name: "openai", Status: observability.HealthStatusUp}
	degraded := staticChecker{Name: "gemini", Status: observability.HealthStatusDegraded, Message: "GOOGLE_API_KEY environment variable is not set"}

	app, _ := newTestApp(t, WithHealthCheckers(up))
	if err := app.ReadyCheck(context.Background()); err != nil {
		t.Errorf("expected ready, got %v", err)
	}

	app, _ = newTestApp(t, WithHealthCheckers(up, degraded))
	err := app.ReadyCheck(context.Background())
	if err == nil || !strings.Contains(err.Error(), "gemini=degraded") {
		t.Errorf("expected gemini to be reported, got %v", err)
	}
}

func TestSummaryDisplay(t *testing.T) {
	app, out := newTestApp(t, WithHealthCheckers(staticChecker{Name: "claude", Status: observability.HealthStatusUp}))
	app.Summary.SetListen("127.0.0.1:3000")
	app.Summary.TrackProvider("openai", "gpt-4o-mini", "http://localhost:3000", true)
	app.Summary.TrackProvider("deepseek", "deepseek-chat", "http://localhost:3000", false)
	app.Summary.TrackRoute("POST", "/api/:provider", "proxy.Query")

	if err := app.RunTask(context.Background(), func(context.Context) error { return nil }); err != nil {
		t.Fatalf("RunTask: %v", err)
	}
	text := out.String()
	for _, want := range []string{"test-svc 1.0.0", "listening on 127.0.0.1:3000", "openai: gpt-4o-mini", "⏸️ deepseek", "/api/:provider", "claude: up"} {
		if !strings.Contains(text, want) {
			t.Errorf("summary missing %q:\n%s", want, text)
		}
	}
	if len(app.Summary.Providers()) != 2 || len(app.Summary.Routes()) != 1 {
		t.Error("summary accessors out of sync")
	}
}
