package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ppiankov/maarifplan/internal/planner"
)

// Runner runs one generation request
type Runner interface {
	Run(ctx context.Context, req *planner.Request) (*planner.Result, error)
}

// BatchItem is one request of a batch and where it came from
type BatchItem struct {
	Source  string
	Request *planner.Request
	Err     error // load failure; the request is skipped
}

// GenerationJob represents one queued generation
type GenerationJob struct {
	Index    int
	Item     BatchItem
	Runner   Runner
	Limiter  *Limiter
	LimitKey string
}

// Execute waits for the provider rate limit, then runs the request
func (j *GenerationJob) Execute(ctx context.Context) Result {
	out := &GenerationResult{Index: j.Index, Source: j.Item.Source}
	if j.Item.Err != nil {
		out.Error = j.Item.Err
		return out
	}

	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.LimitKey); err != nil {
			out.Error = fmt.Errorf("rate limit: %w", err)
			return out
		}
	}

	res, err := j.Runner.Run(ctx, j.Item.Request)
	if err != nil {
		out.Error = err
		return out
	}
	out.Result = res
	return out
}

// GenerationResult represents the result of a generation job
type GenerationResult struct {
	Index  int
	Source string
	Result *planner.Result
	Error  error
}

// GetError returns the error from the generation result
func (r *GenerationResult) GetError() error {
	return r.Error
}

// BatchProcessor runs many generation requests concurrently. Requests
// are independent; one failure never affects another.
type BatchProcessor struct {
	runner      Runner
	concurrency int
	limiter     *Limiter
	limitKey    string
}

// NewBatchProcessor creates a new batch processor. limiter may be nil.
func NewBatchProcessor(runner Runner, concurrency int, limiter *Limiter, limitKey string) *BatchProcessor {
	return &BatchProcessor{
		runner:      runner,
		concurrency: concurrency,
		limiter:     limiter,
		limitKey:    limitKey,
	}
}

// Process runs items concurrently and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, items []BatchItem) []*GenerationResult {
	if len(items) == 0 {
		return []*GenerationResult{}
	}

	pool := NewPoolWithContext(ctx, b.concurrency)
	pool.Start()

	jobs := make([]Job, len(items))
	for i, item := range items {
		jobs[i] = &GenerationJob{
			Index:    i,
			Item:     item,
			Runner:   b.runner,
			Limiter:  b.limiter,
			LimitKey: b.limitKey,
		}
	}

	results := pool.Run(jobs)

	out := make([]*GenerationResult, 0, len(results))
	for _, result := range results {
		out = append(out, result.(*GenerationResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })

	return out
}

// ProcessFiles loads request files and processes them concurrently
func (b *BatchProcessor) ProcessFiles(ctx context.Context, paths []string) []*GenerationResult {
	items := make([]BatchItem, len(paths))
	for i, path := range paths {
		req, err := planner.LoadRequest(path)
		items[i] = BatchItem{Source: path, Request: req, Err: err}
	}
	return b.Process(ctx, items)
}

// ExpandPaths resolves a batch argument: a directory yields its YAML
// files, a .txt file is read as a list of paths, anything else is
// taken as a single request file
func ExpandPaths(arg string) ([]string, error) {
	info, err := os.Stat(arg)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", arg, err)
	}

	if info.IsDir() {
		var paths []string
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(arg, pattern))
			if err != nil {
				return nil, fmt.Errorf("glob: %w", err)
			}
			paths = append(paths, matches...)
		}
		sort.Strings(paths)
		return paths, nil
	}

	if strings.EqualFold(filepath.Ext(arg), ".txt") {
		return ReadPathsFromFile(arg)
	}
	return []string{arg}, nil
}

// ReadPathsFromFile reads request paths from a file (one per line).
// Relative paths are resolved against the list file's directory.
func ReadPathsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	base := filepath.Dir(filePath)
	var paths []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !filepath.IsAbs(line) {
			line = filepath.Join(base, line)
		}

		if !seen[line] {
			seen[line] = true
			paths = append(paths, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return paths, nil
}
