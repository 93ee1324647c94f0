package behavior

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	canonerrors "github.com/canonui/canon/internal/errors"
	"github.com/canonui/canon/pkg/bus"
	"github.com/canonui/canon/pkg/vdom"
)

const (
	defaultRootSelector = "body"
	tracerName          = "github.com/canonui/canon/pkg/behavior"
)

// Middleware wraps a single attach. It must call next to run the
// behaviour, and may inspect or replace the returned error.
type Middleware func(ctx AttachContext, next func() error) error

// ScanReport summarises one scan.
type ScanReport struct {
	// Matched counts elements carrying a registered attribute, once per
	// (attribute, element) pair.
	Matched int `json:"matched"`

	// Attached counts behaviours that ran without error.
	Attached int `json:"attached"`

	// Skipped counts matched elements without an id or already marked.
	Skipped int `json:"skipped"`

	// Failed counts behaviours that returned an error or panicked.
	Failed int `json:"failed"`

	Errors []error `json:"-"`
}

func (r *ScanReport) add(o ScanReport) {
	r.Matched += o.Matched
	r.Attached += o.Attached
	r.Skipped += o.Skipped
	r.Failed += o.Failed
	r.Errors = append(r.Errors, o.Errors...)
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithRootSelector sets the container the scanner observes. The default
// is the document body.
func WithRootSelector(selector string) ScannerOption {
	return func(s *Scanner) {
		s.rootSelector = selector
	}
}

// WithBus sets the bus passed to behaviours. The default is a bus over
// the document.
func WithBus(b *bus.Bus) ScannerOption {
	return func(s *Scanner) {
		s.bus = b
	}
}

// WithTelemetry records attach outcomes into t.
func WithTelemetry(t *Telemetry) ScannerOption {
	return func(s *Scanner) {
		s.telemetry = t
	}
}

// WithTracerProvider sets the provider for scan spans. The default is the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) ScannerOption {
	return func(s *Scanner) {
		if tp != nil {
			s.tracer = tp.Tracer(tracerName)
		}
	}
}

// WithScanHook runs fn after every scan with that scan's report.
func WithScanHook(fn func(ScanReport)) ScannerOption {
	return func(s *Scanner) {
		s.onScan = fn
	}
}

// WithMiddleware appends attach middleware.
func WithMiddleware(mw ...Middleware) ScannerOption {
	return func(s *Scanner) {
		s.middleware = append(s.middleware, mw...)
	}
}

// Scanner attaches registered behaviours to matching elements and rescans
// whenever elements are inserted under its root.
type Scanner struct {
	reg          *Registry
	doc          *vdom.Document
	bus          *bus.Bus
	logger       *slog.Logger
	tracer       trace.Tracer
	telemetry    *Telemetry
	rootSelector string
	middleware   []Middleware
	onScan       func(ScanReport)

	mu       sync.Mutex
	ctx      context.Context
	root     *vdom.VNode
	observer *vdom.MutationObserver
	started  bool
	disposed bool
	total    ScanReport
	scans    int
}

// NewScanner creates a scanner over doc. Nothing happens until Start or
// Scan is called.
func NewScanner(reg *Registry, doc *vdom.Document, opts ...ScannerOption) *Scanner {
	s := &Scanner{
		reg:          reg,
		doc:          doc,
		logger:       reg.Logger(),
		tracer:       otel.Tracer(tracerName),
		rootSelector: defaultRootSelector,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.bus == nil && doc != nil {
		s.bus = bus.New(doc)
	}
	return s
}

// Use appends attach middleware. Middleware runs in the order added, the
// first added being outermost.
func (s *Scanner) Use(mw ...Middleware) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.middleware = append(s.middleware, mw...)
}

// Bus returns the bus handed to behaviours.
func (s *Scanner) Bus() *bus.Bus {
	return s.bus
}

// Telemetry returns the configured telemetry, or nil.
func (s *Scanner) Telemetry() *Telemetry {
	return s.telemetry
}

// Start locates the root, runs the initial scan and installs a mutation
// observer on the root so inserted elements are attached when the
// document flushes. Cancelling ctx stops later rescans.
//
// Start returns a JsError when there is no document, ElementNotFound when
// the root is missing and ObserverFailed when the observer cannot be
// installed or Start was already called.
func (s *Scanner) Start(ctx context.Context) error {
	if s.doc == nil {
		return canonerrors.JsError("document not available")
	}

	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return canonerrors.ObserverFailed("already started")
	}
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}
	root, err := s.resolveRoot()
	if err != nil {
		return err
	}

	// The observer goes in first so elements inserted by handlers during
	// the initial scan are rescanned on the next flush.
	obs, err := vdom.NewMutationObserver(s.onMutations)
	if err != nil {
		return canonerrors.ObserverFailed("failed to create mutation observer").Wrap(err)
	}
	if err := obs.Observe(root, vdom.ObserveOptions{ChildList: true, Subtree: true}); err != nil {
		return canonerrors.ObserverFailed("failed to observe root").Wrap(err)
	}

	s.mu.Lock()
	s.ctx = ctx
	s.root = root
	s.observer = obs
	s.started = true
	s.mu.Unlock()

	report := s.Scan(ctx)
	s.logger.Debug("initial scan complete",
		"matched", report.Matched,
		"attached", report.Attached,
		"failed", report.Failed)
	return nil
}

// Dispose disconnects the mutation observer. It is safe to call more than
// once. Attached behaviours and component state are left alone.
func (s *Scanner) Dispose() {
	s.mu.Lock()
	obs := s.observer
	s.observer = nil
	s.disposed = true
	s.mu.Unlock()
	if obs != nil {
		obs.Disconnect()
	}
}

// Started reports whether Start succeeded and Dispose has not been called.
func (s *Scanner) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.disposed
}

// Totals returns the cumulative report over every scan and the number of
// scans run.
func (s *Scanner) Totals() (ScanReport, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := s.total
	t.Errors = append([]error(nil), s.total.Errors...)
	return t, s.scans
}

func (s *Scanner) onMutations(records []vdom.Mutation, _ *vdom.MutationObserver) {
	s.mu.Lock()
	ctx, disposed := s.ctx, s.disposed
	s.mu.Unlock()
	if disposed || ctx.Err() != nil {
		return
	}
	s.logger.Debug("rescanning after mutations", "records", len(records))
	s.Scan(ctx)
}

func (s *Scanner) resolveRoot() (*vdom.VNode, error) {
	if s.rootSelector == "" || s.rootSelector == defaultRootSelector {
		if body := s.doc.Body(); body != nil {
			return body, nil
		}
		return nil, canonerrors.ElementNotFound(defaultRootSelector).
			WithSuggestion("Render a <body> element or configure a root selector.")
	}
	root, err := s.doc.QuerySelector(s.rootSelector)
	if err != nil {
		return nil, canonerrors.InvalidSelector(s.rootSelector, err)
	}
	if root == nil {
		return nil, canonerrors.ElementNotFound(s.rootSelector)
	}
	return root, nil
}

// Scan attaches every registered behaviour to matching elements under the
// root that have not been attached yet. Attributes are visited in order of
// first registration, elements in document order, and the behaviours of
// one attribute in registration order. Scan may be called without Start;
// it then resolves the root itself and reports a root failure in Errors.
func (s *Scanner) Scan(ctx context.Context) ScanReport {
	if ctx == nil {
		ctx = context.Background()
	}
	var report ScanReport

	s.mu.Lock()
	root := s.root
	s.mu.Unlock()
	if root == nil {
		if s.doc == nil {
			report.Errors = append(report.Errors, canonerrors.JsError("document not available"))
			return report
		}
		r, err := s.resolveRoot()
		if err != nil {
			report.Errors = append(report.Errors, err)
			return report
		}
		root = r
	}

	ctx, span := s.tracer.Start(ctx, "canon.scan")
	defer span.End()

	for _, group := range groupByAttribute(s.reg.snapshot()) {
		report.add(s.scanAttribute(ctx, root, group))
	}

	span.SetAttributes(
		attribute.Int("canon.matched", report.Matched),
		attribute.Int("canon.attached", report.Attached),
		attribute.Int("canon.skipped", report.Skipped),
		attribute.Int("canon.failed", report.Failed),
	)

	s.mu.Lock()
	s.total.add(report)
	s.scans++
	s.mu.Unlock()

	if s.onScan != nil {
		s.onScan(report)
	}
	return report
}

// groupByAttribute groups entries by attribute, ordered by each
// attribute's first registration.
func groupByAttribute(entries []*entry) [][]*entry {
	index := make(map[string]int, len(entries))
	var groups [][]*entry
	for _, e := range entries {
		attr := e.behavior.Attribute()
		i, ok := index[attr]
		if !ok {
			i = len(groups)
			index[attr] = i
			groups = append(groups, nil)
		}
		groups[i] = append(groups[i], e)
	}
	return groups
}

// scanAttribute attaches every behaviour in group to each unmarked element
// carrying the group's attribute.
func (s *Scanner) scanAttribute(ctx context.Context, root *vdom.VNode, group []*entry) ScanReport {
	var report ScanReport
	first := group[0]
	attr := first.behavior.Attribute()

	elements := root.Query(first.selector)
	if first.selector.Matches(root) {
		elements = append([]*vdom.VNode{root}, elements...)
	}

	for _, el := range elements {
		report.Matched++
		id := el.ID()
		if id == "" || el.HasAttr(first.marker) {
			report.Skipped++
			continue
		}
		el.SetAttr(first.marker, "1")
		state := s.reg.GetOrCreate(id)
		logger := s.logger.With("element_id", id, "attribute", attr)

		for _, e := range group {
			actx := AttachContext{
				Context:   ctx,
				ElementID: id,
				Attribute: attr,
				Kind:      e.behavior.Kind(),
				State:     state,
				Element:   el,
				Document:  s.doc,
				Bus:       s.bus,
				Logger:    logger,
			}
			s.attachOne(actx, e.behavior, &report)
		}
	}
	return report
}

func (s *Scanner) attachOne(actx AttachContext, b Behavior, report *ScanReport) {
	rec := TelemetryRecord{
		Kind:      TelemetryAttached,
		Behavior:  actx.Kind.String(),
		Attribute: actx.Attribute,
		ElementID: actx.ElementID,
	}
	if err := s.attach(actx, b); err != nil {
		report.Failed++
		report.Errors = append(report.Errors, err)
		s.logger.Error("behavior failed",
			"element_id", actx.ElementID,
			"attribute", actx.Attribute,
			"kind", actx.Kind.String(),
			"error", err)
		rec.Kind = TelemetryError
		rec.Error = err.Error()
		s.telemetry.Record(rec)
		return
	}
	report.Attached++
	s.telemetry.Record(rec)
}

// attach runs b through the middleware chain, converting errors and
// panics into BehaviorFailed errors.
func (s *Scanner) attach(actx AttachContext, b Behavior) (err error) {
	defer func() {
		if r := recover(); r != nil {
			be := canonerrors.New(canonerrors.CodeBehaviorPanic)
			be.Attribute = actx.Attribute
			be.ElementID = actx.ElementID
			be.Wrapped = fmt.Errorf("panic: %v", r)
			err = be
		}
	}()

	s.mu.Lock()
	chain := make([]Middleware, len(s.middleware))
	copy(chain, s.middleware)
	s.mu.Unlock()

	next := func() error { return b.Attach(actx) }
	for i := len(chain) - 1; i >= 0; i-- {
		mw, inner := chain[i], next
		next = func() error { return mw(actx, inner) }
	}

	if err := next(); err != nil {
		return canonerrors.BehaviorFailed(actx.Attribute, actx.ElementID, err)
	}
	return nil
}
