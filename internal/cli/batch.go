package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/maarifplan/internal/planner"
	"github.com/ppiankov/maarifplan/internal/worker"
)

var (
	concurrency  int
	batchTimeout time.Duration
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <dir|list.txt|request.yaml>",
	Short: "Generate many documents from request files in parallel",
	Long: `Batch processes many generation requests concurrently:
- Read every *.yaml request in a directory, or the paths listed in a .txt file
- Run requests in parallel with a configurable worker count
- Throttle calls per provider with the configured rate limit
- Write one JSON document per request

A failing request never stops the others.

Example:
  maarifplan batch requests/
  maarifplan batch week.txt --concurrency 2 --output-dir ./hafta
  maarifplan batch requests/ --timeout 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 30*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache (force fresh generations)")
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := worker.ExpandPaths(args[0])
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no request files found in %s", args[0])
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.log.Sync()

	workers := concurrency
	if workers <= 0 {
		workers = env.cfg.Concurrency.Workers
	}
	outputDir := env.cfg.Output.Dir

	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Maarifplan Batch\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input:        %s (%d requests)\n", args[0], len(paths))
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", workers)
	fmt.Fprintf(os.Stderr, "  Provider:     %s\n", env.providerLabel())
	fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	// One bucket per provider; without a provider nothing is throttled
	var limiter *worker.Limiter
	limitKey := ""
	if env.manager != nil {
		limiter = worker.NewLimiter(env.cfg.RateLimiting.RequestsPerSecond, env.cfg.RateLimiting.BurstSize)
		limitKey = env.manager.Name()
	}

	processor := worker.NewBatchProcessor(env.planner, workers, limiter, limitKey)
	results := processor.ProcessFiles(ctx, paths)

	successCount := 0
	failureCount := 0
	degradedCount := 0

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		jsonPath := filepath.Join(outputDir, planner.FileName(result.Result))
		if err := planner.RenderJSON(result.Result, jsonPath); err != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, err)
			continue
		}

		successCount++
		mark := "✓"
		if result.Result.Degraded() {
			degradedCount++
			mark = "⚠"
		}
		fmt.Fprintf(os.Stderr, "%s %s → %s\n", mark, result.Source, jsonPath)
	}

	// Requests never started when the batch timed out
	skipped := len(paths) - len(results)

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d requests\n", len(paths))
	fmt.Fprintf(os.Stderr, "  Success:   %d (%d degraded)\n", successCount, degradedCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if skipped > 0 {
		fmt.Fprintf(os.Stderr, "  Skipped:   %d\n", skipped)
	}
	if summary := env.cacheSummary(); summary != "" {
		fmt.Fprintf(os.Stderr, "  Cache:     %s\n", summary)
	}
	fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	fmt.Fprintf(os.Stderr, "\n")

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("batch interrupted: %w", ctxErr)
	}
	return nil
}
