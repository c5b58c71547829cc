package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"slices"
	"strings"

	"github.com/goliatone/go-formcodec/pkg/attachments"
	"github.com/goliatone/go-formcodec/pkg/catalog"
	"github.com/goliatone/go-formcodec/pkg/expressions"
	"github.com/goliatone/go-formcodec/pkg/layout"
	"github.com/goliatone/go-formcodec/pkg/optionsource"
	"github.com/goliatone/go-formcodec/pkg/report"
	"github.com/goliatone/go-formcodec/pkg/visibility"
	"github.com/goliatone/go-formcodec/pkg/visibility/expr"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithCatalog injects a prepared catalog store.
func WithCatalog(store *catalog.Store) Option {
	return func(o *Orchestrator) {
		o.catalog = store
	}
}

// WithCatalogFS supplies an fs.FS holding catalog documents. Pass nil to
// disable the embedded defaults. Ignored when WithCatalog is used.
func WithCatalogFS(fsys fs.FS) Option {
	return func(o *Orchestrator) {
		o.catalogFS = fsys
		o.catalogFSSpecified = true
	}
}

// WithEvaluator overrides the expression evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = evaluator
	}
}

// WithReportEngine overrides the report engine.
func WithReportEngine(engine *report.Engine) Option {
	return func(o *Orchestrator) {
		o.reports = engine
	}
}

// WithOrgName sets the organisation owning published code lists.
func WithOrgName(org string) Option {
	return func(o *Orchestrator) {
		o.options.OrgName = strings.TrimSpace(org)
	}
}

// WithLibraryIDs sets the code list ids available in the organisation's
// library.
func WithLibraryIDs(ids ...string) Option {
	return func(o *Orchestrator) {
		o.options.IDsFromLibrary = append(o.options.IDsFromLibrary, ids...)
	}
}

// WithTasks sets the process tasks, in visit order, used to scope
// attachment data types.
func WithTasks(tasks ...attachments.Task) Option {
	return func(o *Orchestrator) {
		o.tasks = append(o.tasks, tasks...)
	}
}

// WithTransformer registers a transformer applied to the layout set before
// linting. Transformers run in registration order.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		if t != nil {
			o.transformers = append(o.transformers, t)
		}
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates loading, linting and reporting of layout sets.
type Orchestrator struct {
	catalog            *catalog.Store
	catalogFS          fs.FS
	catalogFSSpecified bool
	evaluator          visibility.Evaluator
	reports            *report.Engine
	options            optionsource.Context
	tasks              []attachments.Task
	transformers       []Transformer
	logger             *slog.Logger
	initialiseErr      error
}

// New constructs an Orchestrator applying any provided options. Missing
// dependencies fall back to the built-in implementations.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes one lint run.
type Request struct {
	// Source holds the layout documents. Optional when Set is supplied.
	Source fs.FS

	// Set bypasses loading when the caller already has parsed documents.
	Set *layout.Set

	// Task names the process task the layout set belongs to. Overrides
	// Set.Task when non-empty.
	Task string

	// Title heads the rendered report.
	Title string

	// Format selects the report template. Empty skips rendering.
	Format report.Format

	// Values and Extras feed expression evaluation. Evaluation is skipped
	// when both are nil.
	Values map[string]any
	Extras map[string]any
}

// Result carries the outcome of a lint run.
type Result struct {
	Set      layout.Set
	Findings []layout.Finding

	// States maps component id to the evaluated state of each set
	// expression address.
	States map[string]map[string]bool

	// Hidden lists the ids of components whose hidden expression evaluated
	// to true, in document order.
	Hidden []string

	Report string
}

// HasErrors reports whether any finding has error severity.
func (r Result) HasErrors() bool {
	for _, finding := range r.Findings {
		if finding.Severity == layout.SeverityError {
			return true
		}
	}
	return false
}

// Lint executes the load → transform → lint → evaluate → report sequence.
// The context is checked between documents.
func (o *Orchestrator) Lint(ctx context.Context, req Request, out ...io.Writer) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Result{}, err
	}

	set, err := o.resolveSet(req)
	if err != nil {
		return Result{}, err
	}
	if req.Task != "" {
		set.Task = req.Task
	}
	o.logger.Debug("layout set loaded", "documents", len(set.Documents), "task", set.Task)

	for _, t := range o.transformers {
		if err := t.Transform(ctx, &set); err != nil {
			return Result{}, fmt.Errorf("orchestrator: transform layout set: %w", err)
		}
	}

	lintCtx := layout.LintContext{
		Catalog:     o.catalog,
		Options:     o.options,
		Attachments: attachments.ScopeFor(o.tasks, set.Task),
	}
	if len(o.tasks) == 0 {
		lintCtx.Attachments = attachments.Available{}
	}

	result := Result{Set: set, States: make(map[string]map[string]bool)}
	evaluate := req.Values != nil || req.Extras != nil
	visCtx := visibility.Context{Values: req.Values, Extras: req.Extras}

	for _, doc := range set.Documents {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		findings := layout.Lint(doc, lintCtx)
		o.logger.Debug("document linted", "document", doc.Name, "components", len(doc.Components), "findings", len(findings))
		result.Findings = append(result.Findings, findings...)
		if evaluate {
			result.Findings = append(result.Findings, o.evaluateDocument(doc, visCtx, &result)...)
		}
	}
	layout.SortFindings(result.Findings)

	if req.Format != "" {
		title := req.Title
		if title == "" {
			title = "layout lint"
		}
		rendered, err := o.reports.Render(req.Format, report.Summarize(title, set, result.Findings), out...)
		if err != nil {
			return Result{}, fmt.Errorf("orchestrator: render report: %w", err)
		}
		result.Report = rendered
	}

	o.logger.Info("lint complete", "documents", len(set.Documents), "findings", len(result.Findings), "hidden", len(result.Hidden))
	return result, nil
}

func (o *Orchestrator) evaluateDocument(doc layout.Document, ctx visibility.Context, result *Result) []layout.Finding {
	var findings []layout.Finding
	for _, c := range doc.Components {
		defined, _ := expressions.Partition(c, o.catalog.Applicable(c))
		for _, addr := range defined {
			states, err := visibility.Resolve(c, []expressions.Address{addr}, o.evaluator, ctx)
			if err != nil {
				findings = append(findings, layout.Finding{
					Document:  doc.Name,
					Component: c.ID,
					Kind:      c.Type,
					Code:      layout.CodeExpressionEvaluation,
					Severity:  layout.SeverityError,
					Message:   err.Error(),
				})
				continue
			}
			if result.States[c.ID] == nil {
				result.States[c.ID] = make(map[string]bool)
			}
			for key, value := range states {
				result.States[c.ID][key] = value
			}
			if addr == visibility.HiddenAddress && states[addr.String()] {
				result.Hidden = append(result.Hidden, c.ID)
			}
		}
	}
	return findings
}

func (o *Orchestrator) resolveSet(req Request) (layout.Set, error) {
	if req.Set != nil {
		set := *req.Set
		set.Documents = slices.Clone(set.Documents)
		return set, nil
	}
	if req.Source == nil {
		return layout.Set{}, errors.New("orchestrator: source or set is required")
	}
	set, err := layout.LoadFS(req.Source)
	if err != nil {
		return layout.Set{}, fmt.Errorf("orchestrator: load layout set: %w", err)
	}
	return set, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.evaluator == nil {
		o.evaluator = expr.New()
	}
	if o.reports == nil {
		engine, err := report.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default report engine: %w", err)
			return
		}
		o.reports = engine
	}
	if o.catalog != nil {
		return
	}
	if !o.catalogFSSpecified && o.catalogFS == nil {
		o.catalogFS = catalog.EmbeddedFS()
	}
	store, err := catalog.LoadFS(o.catalogFS)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: load catalog: %w", err)
		return
	}
	o.catalog = store
}
