package bootstrap

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/kbukum/llmcouncil/observability"
)

// ProviderInfo describes one configured provider.
type ProviderInfo struct {
	Name     string
	Model    string
	Endpoint string
	Enabled  bool
}

// RouteInfo represents a registered HTTP route.
type RouteInfo struct {
	Method  string
	Path    string
	Handler string
}

// Summary tracks and displays the application startup.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
	listen          string
	providers       []ProviderInfo
	routes          []RouteInfo
}

// NewSummary creates a new startup summary tracker.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{
		serviceName: serviceName,
		version:     version,
	}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// SetListen records the address a server is bound to.
func (s *Summary) SetListen(addr string) {
	s.listen = addr
}

// TrackProvider records a configured provider.
func (s *Summary) TrackProvider(name, model, endpoint string, enabled bool) {
	s.providers = append(s.providers, ProviderInfo{
		Name:     name,
		Model:    model,
		Endpoint: endpoint,
		Enabled:  enabled,
	})
}

// TrackRoute records an HTTP route.
func (s *Summary) TrackRoute(method, path, handler string) {
	s.routes = append(s.routes, RouteInfo{
		Method:  method,
		Path:    path,
		Handler: handler,
	})
}

// Providers returns the tracked providers.
func (s *Summary) Providers() []ProviderInfo { return s.providers }

// Routes returns the tracked routes.
func (s *Summary) Routes() []RouteInfo { return s.routes }

// Display writes the summary to w, including a live health check.
func (s *Summary) Display(ctx context.Context, w io.Writer, checkers ...observability.HealthChecker) {
	fmt.Fprintf(w, "\n🚀 %s %s started in %.2fs\n", s.serviceName, s.version, s.startupDuration.Seconds())
	if s.listen != "" {
		fmt.Fprintf(w, "   listening on %s\n", s.listen)
	}

	if len(s.providers) > 0 {
		fmt.Fprintf(w, "\n🤖 Providers\n")
		for i, p := range s.providers {
			icon := "✅"
			if !p.Enabled {
				icon = "⏸️"
			}
			fmt.Fprintf(w, "   %s %s %s: %s → %s\n", branch(i, len(s.providers)), icon, p.Name, p.Model, p.Endpoint)
		}
	}

	if len(s.routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(s.routes))
		for i, r := range s.routes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", branch(i, len(s.routes)), r.Method, r.Path, r.Handler)
		}
	}

	if len(checkers) > 0 {
		fmt.Fprintf(w, "\n🏥 Health Check\n")
		for i, c := range checkers {
			h := c.CheckHealth(ctx)
			msg := ""
			if h.Message != "" {
				msg = " (" + h.Message + ")"
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", branch(i, len(checkers)), healthStatusIcon(h.Status), h.Name, h.Status, msg)
		}
	}

	fmt.Fprintln(w)
}

func branch(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status observability.HealthStatus) string {
	switch status {
	case observability.HealthStatusUp:
		return "✅"
	case observability.HealthStatusDegraded:
		return "⚠️"
	case observability.HealthStatusDown:
		return "❌"
	default:
		return "❓"
	}
}
