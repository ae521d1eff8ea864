package llm

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/maarifplan/internal/cache"
	"github.com/ppiankov/maarifplan/internal/model"
)

type fakeProvider struct {
	text     string
	err      error
	delay    time.Duration
	calls    atomic.Int32
	inFlight atomic.Int32
	maxSeen  atomic.Int32
	lastReq  GenerateRequest
	mu       sync.Mutex
}

func (f *fakeProvider) Name() string                     { return "fake" }
func (f *fakeProvider) IsAvailable(context.Context) bool { return true }

func (f *fakeProvider) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	f.calls.Add(1)
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		seen := f.maxSeen.Load()
		if n <= seen || f.maxSeen.CompareAndSwap(seen, n) {
			break
		}
	}

	f.mu.Lock()
	f.lastReq = req
	f.mu.Unlock()

	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return &GenerateResponse{Text: f.text, Model: req.Model}, nil
}

func TestManager_Generate(t *testing.T) {
	fake := &fakeProvider{text: "{}"}
	m, err := NewManagerWithProviders(Config{Model: "m1", MaxTokens: 100, Temperature: 0.5, TopP: 0.8}, nil, fake)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	out, err := m.Generate(context.Background(), "prompt", true)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "{}" {
		t.Errorf("Unexpected text: %s", out)
	}

	req := fake.lastReq
	if req.Prompt != "prompt" || !req.JSONMode || req.Model != "m1" || req.MaxTokens != 100 {
		t.Errorf("Unexpected request: %+v", req)
	}
	if m.Name() != "fake" || m.Model() != "m1" {
		t.Errorf("Unexpected identity: %s/%s", m.Name(), m.Model())
	}
}

func TestManager_HandlesAreRequestScoped(t *testing.T) {
	fake := &fakeProvider{text: "ok", delay: 20 * time.Millisecond}
	m, err := NewManagerWithProviders(Config{}, nil, fake, fake)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Generate(context.Background(), "p", false); err != nil {
				t.Errorf("Generate failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := fake.calls.Load(); got != 6 {
		t.Errorf("Expected 6 calls, got %d", got)
	}
	if got := fake.maxSeen.Load(); got > 2 {
		t.Errorf("Expected at most 2 concurrent requests, saw %d", got)
	}
}

func TestManager_AcquireRespectsContext(t *testing.T) {
	m, err := NewManagerWithProviders(Config{}, nil, &fakeProvider{})
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	held, err := m.Acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer m.Release(held)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := m.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}
}

func TestManager_Timeout(t *testing.T) {
	fake := &fakeProvider{text: "late", delay: time.Second}
	m, err := NewManagerWithProviders(Config{Timeout: 20 * time.Millisecond}, nil, fake)
	if err != nil {
		t.Fatalf("new manager: %v", err)
	}

	if _, err := m.Generate(context.Background(), "p", false); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("Expected deadline exceeded, got %v", err)
	}

	// The handle is returned after a failed call
	fake.delay = 0
	if _, err := m.Generate(context.Background(), "p", false); err != nil {
		t.Fatalf("Expected handle to be released, got %v", err)
	}
}

func TestNewManager_NoProvider(t *testing.T) {
	if _, err := NewManager(Config{}, nil); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("Expected ErrNoProvider, got %v", err)
	}
	if _, err := NewManagerWithProviders(Config{}, nil); !errors.Is(err, ErrNoProvider) {
		t.Fatalf("Expected ErrNoProvider, got %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		want     string
		wantErr  bool
	}{
		{"openai", "openai", false},
		{"Anthropic", "anthropic", false},
		{"claude", "anthropic", false},
		{"ollama", "ollama", false},
		{"bard", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			p, err := NewProvider(Config{Provider: tt.provider, APIKey: "k"})
			if tt.wantErr {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewProvider: %v", err)
			}
			if p.Name() != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, p.Name())
			}
		})
	}
}

func TestConfigFromModel(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "env-key")

	cfg := ConfigFromModel(model.LLMConfig{
		Provider: "anthropic",
		Model:    "claude-3-5-sonnet-20241022",
		Timeout:  30 * time.Second,
		Handles:  3,
	})
	if cfg.APIKey != "env-key" {
		t.Errorf("Expected API key from environment, got %q", cfg.APIKey)
	}
	if cfg.Timeout != 30*time.Second || cfg.Handles != 3 {
		t.Errorf("Unexpected config: %+v", cfg)
	}

	explicit := ConfigFromModel(model.LLMConfig{Provider: "anthropic", APIKey: "file-key"})
	if explicit.APIKey != "file-key" {
		t.Errorf("Expected explicit key to win, got %q", explicit.APIKey)
	}
}

type countingGenerator struct {
	calls int
	err   error
}

func (g *countingGenerator) Generate(_ context.Context, prompt string, jsonMode bool) (string, error) {
	g.calls++
	if g.err != nil {
		return "", g.err
	}
	if jsonMode {
		return "json:" + prompt, nil
	}
	return "text:" + prompt, nil
}

func TestCachedGenerator(t *testing.T) {
	next := &countingGenerator{}
	g := NewCachedGenerator(next, cache.NewMemoryCache(time.Minute, time.Minute), "openai", "gpt-4o-mini", time.Minute, nil)
	ctx := context.Background()

	first, _ := g.Generate(ctx, "p", true)
	second, _ := g.Generate(ctx, "p", true)
	text, _ := g.Generate(ctx, "p", false)

	if first != "json:p" || second != "json:p" {
		t.Errorf("Unexpected cached text: %q %q", first, second)
	}
	if text != "text:p" {
		t.Errorf("Expected mode to be part of the key, got %q", text)
	}
	if next.calls != 2 {
		t.Errorf("Expected 2 upstream calls, got %d", next.calls)
	}
}

func TestCachedGenerator_ErrorsAreNotCached(t *testing.T) {
	next := &countingGenerator{err: ErrEmptyResponse}
	g := NewCachedGenerator(next, cache.NewMemoryCache(time.Minute, time.Minute), "openai", "m", time.Minute, nil)

	for i := 0; i < 2; i++ {
		if _, err := g.Generate(context.Background(), "p", true); !errors.Is(err, ErrEmptyResponse) {
			t.Fatalf("Expected ErrEmptyResponse, got %v", err)
		}
	}
	if next.calls != 2 {
		t.Errorf("Expected every failure to reach upstream, got %d calls", next.calls)
	}
}

func TestCachedGenerator_LayeredCache(t *testing.T) {
	next := &countingGenerator{}
	store := cache.NewLayeredCache(time.Minute, t.TempDir(), time.Hour)
	g := NewCachedGenerator(next, store, "ollama", "llama3", time.Hour, nil)

	for i := 0; i < 3; i++ {
		if text, err := g.Generate(context.Background(), "p", false); err != nil || text != "text:p" {
			t.Fatalf("Generate() = %q, %v", text, err)
		}
	}
	if next.calls != 1 {
		t.Errorf("Expected 1 upstream call, got %d", next.calls)
	}
	if stats := store.Stats(); stats.Hits != 2 {
		t.Errorf("Expected 2 cache hits, got %+v", stats)
	}
}
