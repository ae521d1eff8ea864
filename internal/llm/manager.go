package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/ppiankov/maarifplan/internal/logger"
)

// Manager owns the provider configuration and a fixed set of
// request-scoped provider handles. A handle serves one request at a
// time; credentials are resolved once when the manager is built.
type Manager struct {
	config  Config
	name    string
	handles chan Provider
	log     *logger.Logger
}

// NewManager builds config.Handles provider handles
func NewManager(config Config, log *logger.Logger) (*Manager, error) {
	if log == nil {
		log = logger.Nop()
	}
	n := config.Handles
	if n <= 0 {
		n = 1
	}

	providers := make([]Provider, 0, n)
	for i := 0; i < n; i++ {
		p, err := NewProvider(config)
		if err != nil {
			return nil, fmt.Errorf("create provider handle: %w", err)
		}
		providers = append(providers, p)
	}
	return NewManagerWithProviders(config, log, providers...)
}

// NewManagerWithProviders wraps prebuilt handles
func NewManagerWithProviders(config Config, log *logger.Logger, providers ...Provider) (*Manager, error) {
	if len(providers) == 0 {
		return nil, ErrNoProvider
	}
	if log == nil {
		log = logger.Nop()
	}

	m := &Manager{
		config:  config,
		name:    providers[0].Name(),
		handles: make(chan Provider, len(providers)),
		log:     log.With("provider", providers[0].Name()),
	}
	for _, p := range providers {
		m.handles <- p
	}
	return m, nil
}

// Name returns the provider name behind the handles
func (m *Manager) Name() string {
	return m.name
}

// Model returns the configured model
func (m *Manager) Model() string {
	return m.config.Model
}

// Acquire blocks until a handle is free or ctx is done
func (m *Manager) Acquire(ctx context.Context) (Provider, error) {
	select {
	case p := <-m.handles:
		return p, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("acquire provider handle: %w", ctx.Err())
	}
}

// Release returns a handle obtained from Acquire
func (m *Manager) Release(p Provider) {
	if p == nil {
		return
	}
	m.handles <- p
}

// Generate sends prompt through one handle, bounded by the configured timeout
func (m *Manager) Generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	p, err := m.Acquire(ctx)
	if err != nil {
		return "", err
	}
	defer m.Release(p)

	ctx, cancel := context.WithTimeout(ctx, m.config.timeout())
	defer cancel()

	start := time.Now()
	resp, err := p.Generate(ctx, GenerateRequest{
		Prompt:      prompt,
		JSONMode:    jsonMode,
		Model:       m.config.Model,
		MaxTokens:   m.config.MaxTokens,
		Temperature: m.config.Temperature,
		TopP:        m.config.TopP,
	})
	if err != nil {
		m.log.Warn("generation failed", "error", err, "elapsed", time.Since(start))
		return "", err
	}

	m.log.Debug("generation complete",
		"model", resp.Model,
		"tokens_used", resp.TokensUsed,
		"json_mode", jsonMode,
		"elapsed", time.Since(start),
	)
	if resp.Truncated {
		m.log.Warn("response hit the token limit", "model", resp.Model, "limit", m.config.MaxTokens)
	}
	return resp.Text, nil
}
