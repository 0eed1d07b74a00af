package proxy

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/llmcouncil/errors"
	"github.com/kbukum/llmcouncil/llm"
	"github.com/kbukum/llmcouncil/logger"
	"github.com/kbukum/llmcouncil/observability"
	"github.com/kbukum/llmcouncil/resilience"
	"github.com/kbukum/llmcouncil/server"
)

// Handler serves POST /api/:provider for every registered forwarder.
type Handler struct {
	forwarders map[string]Forwarder
	bulkheads  map[string]*resilience.Bulkhead
	limiters   map[string]*resilience.RateLimiter
	lookup     func(string) (string, bool)
	log        *logger.Logger
}

// Option configures a Handler.
type Option func(*Handler)

// WithLogger sets the handler logger.
func WithLogger(l *logger.Logger) Option {
	return func(h *Handler) {
		if l != nil {
			h.log = l
		}
	}
}

// WithLookup replaces os.LookupEnv as the API key source.
func WithLookup(fn func(string) (string, bool)) Option {
	return func(h *Handler) {
		if fn != nil {
			h.lookup = fn
		}
	}
}

// WithForwarder registers f, replacing any forwarder with the same provider.
func WithForwarder(f Forwarder) Option {
	return func(h *Handler) {
		h.forwarders[f.Provider()] = f
	}
}

// NewHandler builds a handler for openai, deepseek, claude and gemini.
func NewHandler(cfg Config, opts ...Option) (*Handler, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	gem, err := NewGemini(cfg)
	if err != nil {
		return nil, err
	}

	h := &Handler{
		forwarders: make(map[string]Forwarder),
		bulkheads:  make(map[string]*resilience.Bulkhead),
		limiters:   make(map[string]*resilience.RateLimiter),
		lookup:     os.LookupEnv,
		log:        logger.NewNop(),
	}
	for _, f := range []Forwarder{NewOpenAI(cfg), NewDeepSeek(cfg), NewClaude(cfg), gem} {
		h.forwarders[f.Provider()] = f
	}
	for _, opt := range opts {
		opt(h)
	}
	for id := range h.forwarders {
		h.bulkheads[id] = resilience.NewBulkhead(resilience.BulkheadConfig{
			Name: id, MaxConcurrent: cfg.MaxConcurrent, MaxWait: cfg.QueueWait,
		})
		h.limiters[id] = resilience.NewRateLimiter(resilience.RateLimiterConfig{
			Name: id, Rate: cfg.RateLimit, Burst: cfg.RateBurst,
		})
	}
	h.log = h.log.WithComponent("proxy")
	return h, nil
}

// Register mounts the query route on r.
func (h *Handler) Register(r gin.IRoutes) {
	r.POST("/api/:provider", h.Query)
}

// Providers returns the registered provider ids, sorted.
func (h *Handler) Providers() []string {
	ids := make([]string, 0, len(h.forwarders))
	for id := range h.forwarders {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Query forwards one {query, model} request upstream.
func (h *Handler) Query(c *gin.Context) {
	provider := c.Param("provider")
	f, ok := h.forwarders[provider]
	if !ok {
		server.RespondWithError(c, apperrors.NotFound("provider", provider))
		return
	}

	var req llm.ProxyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, apperrors.MissingParameters().WithCause(err))
		return
	}

	key, ok := h.lookup(f.EnvVar())
	if !ok || strings.TrimSpace(key) == "" {
		h.log.Warn("API key not configured", logger.Fields("provider", provider, "env", f.EnvVar()))
		server.RespondWithError(c, apperrors.NotConfigured(f.EnvVar()))
		return
	}

	log := h.log.WithContext(c.Request.Context())
	if wait, ok := h.limiters[provider].Allow(); !ok {
		log.Warn("rate limit reached", logger.Fields("provider", provider, "wait", wait.String()))
		server.RespondWithError(c, apperrors.RateLimited(f.Display()+" rate limit reached, try again shortly").
			WithRetryAfter(resilience.RetryAfterSeconds(wait)))
		return
	}

	release, err := h.bulkheads[provider].Acquire(c.Request.Context())
	if err != nil {
		log.Warn("upstream busy", logger.MergeWithError(logger.Fields("provider", provider), err))
		if resilience.IsRejection(err) {
			server.RespondWithError(c, apperrors.New(apperrors.ErrCodeServiceUnavailable,
				f.Display()+" is busy, try again shortly", http.StatusServiceUnavailable).WithRetryAfter(1))
			return
		}
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	defer release()

	up, err := f.Forward(c.Request.Context(), key, req.Query, req.Model)
	if err != nil {
		log.Error("upstream call failed", logger.MergeWithError(logger.Fields("provider", provider, "model", req.Model), err))
		server.RespondWithError(c, apperrors.Internal(err))
		return
	}
	if up.OK() {
		server.RespondRaw(c, up.Status, up.Body)
		return
	}

	log.Warn("upstream rejected request", logger.Fields("provider", provider, "model", req.Model, "status", up.Status))
	msg := fmt.Sprintf("%s API request failed: %s - %s", f.Display(), http.StatusText(up.Status), strings.TrimSpace(string(up.Body)))
	if up.RetryAfter != "" {
		c.Header("Retry-After", up.RetryAfter)
	}
	server.RespondWithError(c, apperrors.FromStatus(up.Status, msg))
}

// Checkers reports each provider's credential as a health component.
func (h *Handler) Checkers() []observability.HealthChecker {
	checkers := make([]observability.HealthChecker, 0, len(h.forwarders))
	for _, id := range h.Providers() {
		checkers = append(checkers, credentialCheck{forwarder: h.forwarders[id], lookup: h.lookup})
	}
	return checkers
}

type credentialCheck struct {
	forwarder Forwarder
	lookup    func(string) (string, bool)
}

func (c credentialCheck) CheckHealth(context.Context) observability.Health {
	key, ok := c.lookup(c.forwarder.EnvVar())
	return observability.CredentialHealth(c.forwarder.Provider(), c.forwarder.EnvVar(), ok && strings.TrimSpace(key) != "")
}
