package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/maarifplan/internal/cache"
	"github.com/ppiankov/maarifplan/internal/llm"
	"github.com/ppiankov/maarifplan/internal/logger"
	"github.com/ppiankov/maarifplan/internal/model"
	"github.com/ppiankov/maarifplan/internal/planner"
	"github.com/ppiankov/maarifplan/internal/prompt"
)

var (
	timeout time.Duration
	noCache bool
	outJSON string
)

func newGenerateCmd(kind prompt.Kind, short, example string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   string(kind) + " <request.yaml>",
		Short: short,
		Long: short + `.

The request file lists the learning outcomes, the saved activities and
the teacher's curriculum overrides. The reconciled document is written as
JSON to the output directory and a short summary is printed to stderr.

Example:
` + example,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(kind, args[0])
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "overall generation timeout")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache (force a fresh generation)")
	cmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: <output-dir>/<kind>-<id>.json)")
	return cmd
}

func init() {
	rootCmd.AddCommand(newGenerateCmd(prompt.KindActivity,
		"Generate one activity from learning outcomes",
		"  maarifplan activity requests/renkler.yaml\n  maarifplan activity requests/renkler.yaml --provider anthropic --model claude-3-5-haiku-latest"))
	rootCmd.AddCommand(newGenerateCmd(prompt.KindDaily,
		"Generate a daily plan over saved activities",
		"  maarifplan daily requests/pazartesi.yaml --json plan.json"))
	rootCmd.AddCommand(newGenerateCmd(prompt.KindMonthly,
		"Generate a monthly plan from outcomes and saved activities",
		"  maarifplan monthly requests/ekim.yaml --timeout 10m"))
}

func runGenerate(kind prompt.Kind, path string) error {
	req, err := planner.LoadRequest(path)
	if err != nil {
		return err
	}
	if req.Kind != kind {
		return fmt.Errorf("%s: request kind %q does not match command %q", path, req.Kind, kind)
	}

	env, err := newEnvironment()
	if err != nil {
		return err
	}
	defer env.log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if env.cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Request:  %s\n", path)
		fmt.Fprintf(os.Stderr, "Provider: %s\n", env.providerLabel())
		fmt.Fprintf(os.Stderr, "Timeout:  %v\n\n", timeout)
	}

	res, err := env.planner.Run(ctx, req)
	if err != nil {
		return err
	}

	target := outJSON
	if target == "" {
		target = filepath.Join(env.cfg.Output.Dir, planner.FileName(res))
	}
	if err := planner.RenderJSON(res, target); err != nil {
		return err
	}

	planner.RenderSummary(os.Stderr, res)
	fmt.Fprintf(os.Stderr, "\n✓ Wrote %s\n", target)
	return nil
}

// environment is the wiring shared by every generating command
type environment struct {
	cfg     *model.Config
	log     *logger.Logger
	manager *llm.Manager
	cache   cache.Cache
	planner *planner.Planner
}

// newEnvironment loads the configuration and builds the logger, the
// provider handles, the response cache and the planner. A missing
// provider is not an error: every document then takes its defaults.
func newEnvironment() (*environment, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if noCache {
		cfg.Cache.Enabled = false
	}

	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}

	env := &environment{cfg: cfg, log: log}

	manager, err := llm.NewManager(llm.ConfigFromModel(cfg.LLM), log)
	switch {
	case errors.Is(err, llm.ErrNoProvider):
		log.Warn("no LLM provider configured, documents will use defaults")
		env.planner = planner.New(nil, planner.WithLogger(log))
		return env, nil
	case err != nil:
		return nil, fmt.Errorf("configure LLM provider: %w", err)
	}
	env.manager = manager

	var gen llm.Generator = manager
	if c := cache.FromConfig(cfg.Cache); c != nil {
		env.cache = c
		gen = llm.NewCachedGenerator(manager, c, manager.Name(), manager.Model(), cfg.Cache.DiskTTL, log)
	}

	env.planner = planner.New(gen,
		planner.WithModel(manager.Name()+"/"+manager.Model()),
		planner.WithLogger(log),
	)
	return env, nil
}

func (e *environment) providerLabel() string {
	if e.manager == nil {
		return "none (defaults only)"
	}
	return e.manager.Name() + "/" + e.manager.Model()
}

// cacheSummary describes response cache use, or "" without a cache
func (e *environment) cacheSummary() string {
	reporter, ok := e.cache.(cache.StatsReporter)
	if !ok {
		return ""
	}
	stats := reporter.Stats()
	return fmt.Sprintf("%d hits, %d misses, %d in memory", stats.Hits, stats.Misses, stats.Entries)
}
