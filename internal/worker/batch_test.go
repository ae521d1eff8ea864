package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/ppiankov/maarifplan/internal/planner"
	"github.com/ppiankov/maarifplan/internal/prompt"
)

// mockRunner records requests and fails those named "fail"
type mockRunner struct {
	mu    sync.Mutex
	names []string
	delay time.Duration
}

func (m *mockRunner) Run(ctx context.Context, req *planner.Request) (*planner.Result, error) {
	m.mu.Lock()
	m.names = append(m.names, req.Name)
	m.mu.Unlock()

	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	if req.Name == "fail" {
		return nil, errors.New("generation error")
	}
	return &planner.Result{ID: "id-" + req.Name, Kind: req.Kind}, nil
}

func items(names ...string) []BatchItem {
	out := make([]BatchItem, len(names))
	for i, name := range names {
		out[i] = BatchItem{Source: name + ".yaml", Request: &planner.Request{Kind: prompt.KindActivity, Name: name}}
	}
	return out
}

func TestBatchProcessor_Process(t *testing.T) {
	runner := &mockRunner{delay: 5 * time.Millisecond}
	processor := NewBatchProcessor(runner, 3, nil, "")

	names := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n", "o", "p"}
	results := processor.Process(context.Background(), items(names...))

	if len(results) != len(names) {
		t.Fatalf("expected %d results, got %d", len(names), len(results))
	}
	for i, res := range results {
		if res.Index != i {
			t.Errorf("expected results in input order, got index %d at %d", res.Index, i)
		}
		if res.Source != names[i]+".yaml" {
			t.Errorf("unexpected source %s", res.Source)
		}
		if res.Result == nil || res.Result.ID != "id-"+names[i] {
			t.Errorf("unexpected result for %s: %+v", names[i], res.Result)
		}
	}
}

func TestBatchProcessor_Process_ErrorsAreIsolated(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2, nil, "")

	results := processor.Process(context.Background(), items("ok", "fail", "ok2"))
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	if results[0].GetError() != nil || results[2].GetError() != nil {
		t.Errorf("expected independent requests to succeed: %v, %v", results[0].Error, results[2].Error)
	}
	if results[1].GetError() == nil {
		t.Error("expected failure for the second request")
	}
}

func TestBatchProcessor_Process_LoadErrorSkipsRunner(t *testing.T) {
	runner := &mockRunner{}
	processor := NewBatchProcessor(runner, 1, nil, "")

	loadErr := errors.New("parse request: bad yaml")
	results := processor.Process(context.Background(), []BatchItem{{Source: "bad.yaml", Err: loadErr}})

	if len(results) != 1 || !errors.Is(results[0].Error, loadErr) {
		t.Fatalf("expected load error to be reported, got %+v", results)
	}
	if len(runner.names) != 0 {
		t.Errorf("expected runner not to be called, got %v", runner.names)
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockRunner{}, 2, nil, "")

	results := processor.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected 0 results, got %d", len(results))
	}
}

func TestBatchProcessor_Process_RateLimited(t *testing.T) {
	limiter := NewLimiter(0.01, 1)
	processor := NewBatchProcessor(&mockRunner{}, 2, limiter, "openai")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	results := processor.Process(ctx, items("first", "second"))

	var ok, limited int
	for _, res := range results {
		if res.Error == nil {
			ok++
		} else {
			limited++
		}
	}
	if ok != 1 || limited != 1 {
		t.Errorf("expected one request through and one rate limited, got ok=%d limited=%d", ok, limited)
	}
}

func writeRequest(t *testing.T, dir, file, body string) string {
	t.Helper()
	path := filepath.Join(dir, file)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write %s: %v", file, err)
	}
	return path
}

func TestBatchProcessor_ProcessFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeRequest(t, dir, "good.yaml", "kind: activity\nname: good\noutcomes:\n  - ders: MATEMATİK\n")
	bad := writeRequest(t, dir, "bad.yaml", "kind: weekly\n")

	runner := &mockRunner{}
	results := NewBatchProcessor(runner, 2, nil, "").ProcessFiles(context.Background(), []string{good, bad, filepath.Join(dir, "missing.yaml")})

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Error != nil || results[0].Result.ID != "id-good" {
		t.Errorf("unexpected first result: %+v", results[0])
	}
	if results[1].Error == nil || results[2].Error == nil {
		t.Error("expected errors for invalid and missing request files")
	}
	if len(runner.names) != 1 {
		t.Errorf("expected only the valid request to run, got %v", runner.names)
	}
}

func TestExpandPaths(t *testing.T) {
	dir := t.TempDir()
	b := writeRequest(t, dir, "b.yaml", "")
	a := writeRequest(t, dir, "a.yml", "")
	_ = writeRequest(t, dir, "notes.md", "")

	paths, err := ExpandPaths(dir)
	if err != nil {
		t.Fatalf("ExpandPaths failed: %v", err)
	}
	if len(paths) != 2 || paths[0] != a || paths[1] != b {
		t.Errorf("expected [%s %s], got %v", a, b, paths)
	}

	single, err := ExpandPaths(b)
	if err != nil || len(single) != 1 || single[0] != b {
		t.Errorf("expected single file, got %v (%v)", single, err)
	}

	if _, err := ExpandPaths(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error for missing path")
	}
}

func TestReadPathsFromFile(t *testing.T) {
	dir := t.TempDir()
	content := `# Ekim istekleri
daily.yaml

monthly.yaml
daily.yaml
/abs/activity.yaml
`
	list := writeRequest(t, dir, "list.txt", content)

	paths, err := ReadPathsFromFile(list)
	if err != nil {
		t.Fatalf("ReadPathsFromFile failed: %v", err)
	}

	expected := []string{
		filepath.Join(dir, "daily.yaml"),
		filepath.Join(dir, "monthly.yaml"),
		"/abs/activity.yaml",
	}
	if len(paths) != len(expected) {
		t.Fatalf("expected %d paths, got %d: %v", len(expected), len(paths), paths)
	}
	for i, p := range paths {
		if p != expected[i] {
			t.Errorf("path %d: expected %s, got %s", i, expected[i], p)
		}
	}

	viaExpand, err := ExpandPaths(list)
	if err != nil || len(viaExpand) != 3 {
		t.Errorf("expected list expansion, got %v (%v)", viaExpand, err)
	}
}

func TestReadPathsFromFile_NonExistent(t *testing.T) {
	if _, err := ReadPathsFromFile("/non/existent/list.txt"); err == nil {
		t.Error("expected error for non-existent file")
	}
}
