package peg

// TraceEvent describes one frame enter/exit observed by a
// TracingParseRunner, carrying enough of the frame's own state for a
// sink to render a useful trace line without reaching back into the
// parser's internals.
type TraceEvent struct {
	Matcher    Matcher
	Label      string
	StartIndex int
	EndIndex   int
	Success    bool
	// Phase is "enter", "success" or "failure".
	Phase string
}

// TraceSink receives trace events as they happen, in frame order.
// Implementations must not retain ctx state beyond the call, since
// frames are reused/cleared aggressively by the backtracking
// contract.
type TraceSink interface {
	Trace(ev TraceEvent)
}

// tracingObserver adapts the coreHandler's frameObserver hook to a
// TraceSink.
type tracingObserver struct {
	sink TraceSink
}

func (o *tracingObserver) onEnter(ctx *Context) {
	o.sink.Trace(TraceEvent{
		Matcher: ctx.matcher, Label: ctx.matcher.base().label,
		StartIndex: ctx.startIndex, Phase: "enter",
	})
}

func (o *tracingObserver) onSuccess(ctx *Context) {
	o.sink.Trace(TraceEvent{
		Matcher: ctx.matcher, Label: ctx.matcher.base().label,
		StartIndex: ctx.startIndex, EndIndex: ctx.currentIndex,
		Success: true, Phase: "success",
	})
}

func (o *tracingObserver) onFailure(ctx *Context) {
	o.sink.Trace(TraceEvent{
		Matcher: ctx.matcher, Label: ctx.matcher.base().label,
		StartIndex: ctx.startIndex, Success: false, Phase: "failure",
	})
}

// TracingParseRunner behaves exactly like BasicParseRunner but routes
// every frame transition through a TraceSink, for diagnosing a
// grammar interactively without changing match semantics.
type TracingParseRunner struct {
	Sink TraceSink
}

// NewTracingParseRunner builds a TracingParseRunner backed by sink.
func NewTracingParseRunner(sink TraceSink) *TracingParseRunner {
	return &TracingParseRunner{Sink: sink}
}

// Run executes root against buf, emitting one TraceEvent per frame
// transition to r.Sink.
func (r *TracingParseRunner) Run(root Matcher, buf InputBuffer) *ParsingResult {
	ctx, state := newRootContext(root, buf)
	state.handler = &coreHandler{obs: &tracingObserver{sink: r.Sink}}
	matched := state.handler.MatchRoot(ctx)
	result := &ParsingResult{
		Matched:     matched,
		ValueStack:  state.stack,
		InputBuffer: buf,
		ParseErrors: state.errors,
	}
	if matched {
		result.ParseTreeRoot = ctx.buildRootNode()
		result.ResultValue = ctx.value
	}
	return result
}
