package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/maarifplan/internal/logger"
	"github.com/ppiankov/maarifplan/internal/planner"
	"github.com/ppiankov/maarifplan/internal/prompt"
	"github.com/ppiankov/maarifplan/internal/response"
)

var (
	parseMode    string
	parseRequest string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <response-file|->",
	Short: "Repair and parse a saved model response",
	Long: `Parse runs the response repair pipeline on a model response saved to a
file (or read from stdin with "-") without calling any provider.

Modes:
  activity   JSON activity document
  json       JSON daily plan (alias: daily)
  sections   sectioned monthly plan text (alias: monthly)
  video      video script, JSON or labelled Markdown

With --request the parsed document is also reconciled against the request
outcomes and overrides, exactly as a live generation would be.

Example:
  maarifplan parse raw.txt --mode sections
  maarifplan parse raw.json --mode activity --request requests/renkler.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parseMode, "mode", "json", "response mode: activity, json, sections or video")
	parseCmd.Flags().StringVar(&parseRequest, "request", "", "request file to reconcile against")
	parseCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path (default: stdout)")
}

// parseKinds maps --mode values to document kinds
var parseKinds = map[string]prompt.Kind{
	"activity": prompt.KindActivity,
	"json":     prompt.KindDaily,
	"daily":    prompt.KindDaily,
	"sections": prompt.KindMonthly,
	"monthly":  prompt.KindMonthly,
	"video":    prompt.KindVideo,
}

// parsed is the output of a parse without a request
type parsed struct {
	Kind     prompt.Kind     `json:"kind"`
	Document interface{}     `json:"document"`
	Report   response.Report `json:"repair"`
}

func runParse(cmd *cobra.Command, args []string) error {
	kind, ok := parseKinds[strings.ToLower(parseMode)]
	if !ok {
		return fmt.Errorf("unknown mode %q (supported: activity, json, sections, video)", parseMode)
	}

	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	var data []byte
	if parseRequest == "" {
		data, err = encodeIndented(parseOnly(kind, raw))
	} else {
		data, err = reconcileSaved(kind, raw)
	}
	if err != nil {
		return err
	}

	if outJSON == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(outJSON, data, 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outJSON)
	return nil
}

func parseOnly(kind prompt.Kind, raw string) parsed {
	out := parsed{Kind: kind}
	switch kind {
	case prompt.KindActivity:
		out.Document, out.Report = response.ParseActivity(raw)
	case prompt.KindDaily:
		out.Document, out.Report = response.ParseDailyPlan(raw)
	case prompt.KindMonthly:
		out.Document, out.Report = response.ParseMonthlyPlan(raw, "", "")
	case prompt.KindVideo:
		out.Document, out.Report = response.ParseVideoScript(raw)
	}
	return out
}

// reconcileSaved replays raw through the planner as if a provider had
// returned it for the request
func reconcileSaved(kind prompt.Kind, raw string) ([]byte, error) {
	req, err := planner.LoadRequest(parseRequest)
	if err != nil {
		return nil, err
	}
	if req.Kind != kind {
		return nil, fmt.Errorf("%s: request kind %q does not match mode %q", parseRequest, req.Kind, parseMode)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.Log.Mode)
	if err != nil {
		return nil, err
	}
	defer log.Sync()

	p := planner.New(savedResponse(raw), planner.WithModel("saved"), planner.WithLogger(log))
	res, err := p.Run(context.Background(), req)
	if err != nil {
		return nil, err
	}
	planner.RenderSummary(os.Stderr, res)
	return planner.EncodeJSON(res)
}

// savedResponse is a generator that always answers with the same text
type savedResponse string

func (s savedResponse) Generate(ctx context.Context, text string, jsonMode bool) (string, error) {
	return string(s), nil
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(data), nil
}

func encodeIndented(v interface{}) ([]byte, error) {
	var b strings.Builder
	enc := json.NewEncoder(&b)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("encode output: %w", err)
	}
	return []byte(b.String()), nil
}
