// Package planner runs the generation pipeline for activities, daily
// plans, monthly plans and topic videos: extract the curriculum, build the prompt,
// call the generator, repair the response and reconcile it against the
// extracted data and the teacher's overrides.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/maarifplan/internal/curriculum"
	"github.com/ppiankov/maarifplan/internal/llm"
	"github.com/ppiankov/maarifplan/internal/logger"
	"github.com/ppiankov/maarifplan/internal/model"
	"github.com/ppiankov/maarifplan/internal/prompt"
	"github.com/ppiankov/maarifplan/internal/reconcile"
	"github.com/ppiankov/maarifplan/internal/response"
)

// promptPreview bounds the prompt text stored with a result
const promptPreview = 1000

// Request describes one generation. Activities are the saved activities
// of a daily or monthly plan.
type Request struct {
	Kind               prompt.Kind             `yaml:"kind" json:"kind"`
	Name               string                  `yaml:"name,omitempty" json:"name,omitempty"`
	AgeGroup           string                  `yaml:"age_group,omitempty" json:"age_group,omitempty"`
	Month              string                  `yaml:"month,omitempty" json:"month,omitempty"`
	Year               int                     `yaml:"year,omitempty" json:"year,omitempty"`
	Outcomes           []model.LearningOutcome `yaml:"outcomes,omitempty" json:"outcomes,omitempty"`
	Overrides          *model.Snapshot         `yaml:"overrides,omitempty" json:"overrides,omitempty"`
	CustomInstructions string                  `yaml:"custom_instructions,omitempty" json:"custom_instructions,omitempty"`
	Activities         []model.Activity        `yaml:"activities,omitempty" json:"activities,omitempty"`
	Video              *model.VideoBrief       `yaml:"video,omitempty" json:"video,omitempty"`
}

// Result is the reconciled output of one generation. Exactly one of
// Activity, Daily, Monthly and Video is set.
type Result struct {
	ID          string             `json:"id"`
	Kind        prompt.Kind        `json:"kind"`
	GeneratedAt time.Time          `json:"generated_at"`
	Model       string             `json:"model,omitempty"`
	Activity    *model.Activity    `json:"activity,omitempty"`
	Daily       *model.DailyPlan   `json:"daily_plan,omitempty"`
	Monthly     *model.MonthlyPlan `json:"monthly_plan,omitempty"`
	Video       *model.VideoScript `json:"video_script,omitempty"`
	Report      response.Report    `json:"repair"`
	Sources     reconcile.Sources  `json:"sources,omitempty"`

	// GenerationError is set when the generator failed and every
	// field came from defaults
	GenerationError string `json:"generation_error,omitempty"`

	PromptUsed string `json:"prompt_used,omitempty"`
	Raw        string `json:"-"`
}

// Degraded reports whether any part of the result came from repair or defaults
func (r *Result) Degraded() bool {
	return r.GenerationError != "" || r.Report.Degraded()
}

// Planner orchestrates the complete generation process
type Planner struct {
	gen   llm.Generator
	model string
	log   *logger.Logger
	now   func() time.Time
}

// Option configures a Planner
type Option func(*Planner)

// WithModel records the model name on results
func WithModel(name string) Option {
	return func(p *Planner) { p.model = name }
}

// WithLogger sets the planner logger
func WithLogger(log *logger.Logger) Option {
	return func(p *Planner) {
		if log != nil {
			p.log = log
		}
	}
}

// New creates a planner around gen
func New(gen llm.Generator, opts ...Option) *Planner {
	p := &Planner{
		gen: gen,
		log: logger.Nop(),
		now: func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run dispatches req on its kind
func (p *Planner) Run(ctx context.Context, req *Request) (*Result, error) {
	switch req.Kind {
	case prompt.KindActivity:
		return p.GenerateActivity(ctx, req)
	case prompt.KindDaily:
		return p.GenerateDaily(ctx, req)
	case prompt.KindMonthly:
		return p.GenerateMonthly(ctx, req)
	case prompt.KindVideo:
		return p.GenerateVideo(ctx, req)
	}
	return nil, fmt.Errorf("unknown request kind %q (supported: activity, daily, monthly, video)", req.Kind)
}

// GenerateActivity generates one activity from the request outcomes
func (p *Planner) GenerateActivity(ctx context.Context, req *Request) (*Result, error) {
	// 1. Extract curriculum
	extracted := curriculum.Extract(req.Outcomes)

	// 2. Build prompt
	text := prompt.Build(prompt.Context{
		Kind:               prompt.KindActivity,
		AgeGroup:           req.AgeGroup,
		Outcomes:           req.Outcomes,
		Snapshot:           extracted,
		Overrides:          req.Overrides,
		CustomInstructions: req.CustomInstructions,
	})

	// 3. Generate
	res := p.newResult(prompt.KindActivity, text)
	raw, err := p.generate(ctx, res, text)
	if err != nil {
		return nil, err
	}

	// 4. Parse and repair
	act, report := response.ParseActivity(raw)
	res.Report = report

	// 5. Attach source outcomes and reconcile curriculum
	act.Outcomes = req.Outcomes
	for _, o := range req.Outcomes {
		if o.ID != 0 {
			act.OutcomeIDs = append(act.OutcomeIDs, o.ID)
		}
		act.OutcomeTexts = append(act.OutcomeTexts, o.Summary())
	}
	act = reconcile.Activity(act, req.Overrides)
	res.Sources = reconcile.Trace(nil, extracted, req.Overrides)
	res.Activity = &act

	p.logResult(res, "name", act.Name)
	return res, nil
}

// GenerateDaily generates a daily plan over the request activities
func (p *Planner) GenerateDaily(ctx context.Context, req *Request) (*Result, error) {
	// 1. Aggregate the curriculum of the day's activities
	extracted := curriculum.AggregateActivities(req.Activities)
	if len(req.Outcomes) > 0 {
		extracted.Merge(curriculum.Extract(req.Outcomes))
	}

	// 2. Build prompt
	text := prompt.Build(prompt.Context{
		Kind:               prompt.KindDaily,
		AgeGroup:           req.AgeGroup,
		PlanName:           req.Name,
		Outcomes:           req.Outcomes,
		Snapshot:           extracted,
		Overrides:          req.Overrides,
		CustomInstructions: req.CustomInstructions,
		Activities:         req.Activities,
	})

	// 3. Generate
	res := p.newResult(prompt.KindDaily, text)
	raw, err := p.generate(ctx, res, text)
	if err != nil {
		return nil, err
	}

	// 4. Parse and repair
	parsed, report := response.ParseDailyPlan(raw)
	res.Report = report

	// 5. Reconcile
	defaults := response.DefaultDailyPlan()
	if len(req.Activities) > 0 {
		defaults.Experiences.Activities = curriculum.FormatActivities(req.Activities)
	}
	plan := reconcile.Daily(parsed, extracted, req.Overrides, reconcile.DailyOptions{
		Defaults:   defaults,
		Activities: req.Activities,
	})
	res.Sources = reconcile.Trace(parsed.Snapshot(), extracted, req.Overrides)
	res.Daily = &plan

	p.logResult(res, "name", req.Name, "activities", len(req.Activities))
	return res, nil
}

// GenerateMonthly generates a monthly plan from the request outcomes
// and any saved activities
func (p *Planner) GenerateMonthly(ctx context.Context, req *Request) (*Result, error) {
	// 1. Extract curriculum
	extracted := curriculum.Extract(req.Outcomes)
	if len(req.Activities) > 0 {
		extracted.Merge(curriculum.AggregateActivities(req.Activities))
	}

	// 2. Build prompt
	text := prompt.Build(prompt.Context{
		Kind:               prompt.KindMonthly,
		AgeGroup:           req.AgeGroup,
		Period:             req.Month,
		PlanName:           req.Name,
		Outcomes:           req.Outcomes,
		Snapshot:           extracted,
		Overrides:          req.Overrides,
		CustomInstructions: req.CustomInstructions,
		Activities:         req.Activities,
	})

	// 3. Generate
	res := p.newResult(prompt.KindMonthly, text)
	raw, err := p.generate(ctx, res, text)
	if err != nil {
		return nil, err
	}

	// 4. Parse the sectioned text
	parsed, report := response.ParseMonthlyPlan(raw, req.AgeGroup, req.Month)
	res.Report = report

	// 5. Reconcile
	plan := reconcile.Monthly(parsed, extracted, req.Overrides, reconcile.MonthlyOptions{
		Defaults: response.DefaultMonthlyPlan(req.AgeGroup, req.Month),
	})
	if req.Name != "" {
		plan.Name = req.Name
	}
	plan.Year = req.Year
	res.Sources = reconcile.Trace(parsed.Snapshot(), extracted, req.Overrides)
	res.Monthly = &plan

	p.logResult(res, "name", plan.Name)
	return res, nil
}

// GenerateVideo writes a narrated topic video script for the request
// brief. Header fields the script leaves blank come from the request.
func (p *Planner) GenerateVideo(ctx context.Context, req *Request) (*Result, error) {
	brief := req.Video
	if brief == nil {
		brief = &model.VideoBrief{}
	}

	text := prompt.Build(prompt.Context{
		Kind:               prompt.KindVideo,
		AgeGroup:           req.AgeGroup,
		Outcomes:           req.Outcomes,
		CustomInstructions: req.CustomInstructions,
		Video:              brief,
	})

	res := p.newResult(prompt.KindVideo, text)
	raw, err := p.generate(ctx, res, text)
	if err != nil {
		return nil, err
	}

	script, report := response.ParseVideoScript(raw)
	res.Report = report

	if script.Title == "" {
		script.Title = req.Name
	}
	if script.Title == "" {
		script.Title = brief.Topic
	}
	if script.Subject == "" {
		script.Subject = prompt.VideoSubject(brief, req.Outcomes)
	}
	if script.AgeGroup == "" {
		script.AgeGroup = req.AgeGroup
	}
	res.Video = &script

	p.logResult(res, "title", script.Title, "sections", len(script.Sections))
	return res, nil
}

func (p *Planner) newResult(kind prompt.Kind, text string) *Result {
	preview := []rune(text)
	if len(preview) > promptPreview {
		preview = preview[:promptPreview]
	}
	return &Result{
		ID:          uuid.NewString(),
		Kind:        kind,
		GeneratedAt: p.now(),
		Model:       p.model,
		PromptUsed:  string(preview),
	}
}

// generate calls the generator. Provider failures are recorded on res
// and yield an empty response so that every field takes its default;
// only cancellation of ctx is returned.
func (p *Planner) generate(ctx context.Context, res *Result, text string) (string, error) {
	if p.gen == nil {
		res.GenerationError = llm.ErrNoProvider.Error()
		p.log.Warn("no generator configured, using defaults", "kind", res.Kind, "id", res.ID)
		return "", nil
	}

	start := time.Now()
	raw, err := p.gen.Generate(ctx, text, res.Kind.JSONMode())
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("generate %s: %w", res.Kind, ctxErr)
		}
		res.GenerationError = err.Error()
		level := p.log.Warn
		if errors.Is(err, llm.ErrEmptyResponse) {
			level = p.log.Info
		}
		level("generation failed, using defaults", "kind", res.Kind, "id", res.ID, "error", err)
		return "", nil
	}

	p.log.Debug("generated", "kind", res.Kind, "id", res.ID, "elapsed", time.Since(start), "response", raw)
	res.Raw = raw
	return raw, nil
}

func (p *Planner) logResult(res *Result, kv ...interface{}) {
	fields := append([]interface{}{
		"kind", res.Kind,
		"id", res.ID,
		"stage", res.Report.Stage,
	}, kv...)
	if res.Degraded() {
		fields = append(fields, "salvaged", res.Report.Salvaged, "defaulted", res.Report.Defaulted)
		p.log.Warn("result degraded", fields...)
		return
	}
	p.log.Info("result ready", fields...)
}
