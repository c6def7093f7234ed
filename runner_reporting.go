package peg

import "fmt"

// recordingObserver implements pass 1 of the ReportingParseRunner: a
// plain match with an observer that notes, for every failed frame,
// the farthest start index reached. It does no path bookkeeping --
// that is deferred to pass 2, and only for the frames that turn out
// to matter, since building a MatcherPath for every backtracked
// frame during a deep grammar would be wasted work.
//
// The farthest index tracked here is each frame's startIndex, not
// the farthest cursor position the frame's own matchSelf reached
// before failing. A multi-rune leaf like stringMatcher or
// firstOfStringsMatcher can fail partway through its literal, and
// that partial advance is invisible to this observer -- the reported
// error still points at the leaf's start, one or more runes earlier
// than where the mismatch actually occurred.
type recordingObserver struct {
	farthest int
}

func (o *recordingObserver) onEnter(ctx *Context)   {}
func (o *recordingObserver) onSuccess(ctx *Context) {}
func (o *recordingObserver) onFailure(ctx *Context) {
	if ctx.startIndex > o.farthest {
		o.farthest = ctx.startIndex
	}
}

// reportingObserver implements pass 2: a fresh match over the same
// grammar and input, this time watching for the first frame whose
// start index equals the farthest index located in pass 1. That
// frame's MatcherPath is used to pick the "expected" label and build
// a single InvalidInputError.
type reportingObserver struct {
	farthest int
	buffer   InputBuffer
	errors   *[]ParseError
	emitted  bool
}

func (o *reportingObserver) onEnter(ctx *Context)   {}
func (o *reportingObserver) onSuccess(ctx *Context) {}
func (o *reportingObserver) onFailure(ctx *Context) {
	if o.emitted || ctx.startIndex != o.farthest {
		return
	}
	o.emitted = true
	path := ctx.path()
	label := expectedLabel(path, o.farthest)
	end := o.farthest
	if o.buffer.CharAt(o.farthest) != EOI {
		end = o.farthest + 1
	}
	*o.errors = append(*o.errors, ParseError{
		Kind:    InvalidInput,
		Start:   o.farthest,
		End:     end,
		Span:    NewSpan(o.buffer.GetPosition(o.farthest), o.buffer.GetPosition(end)),
		Message: fmt.Sprintf("Expected %s", label),
		Path:    path,
	})
}

// ReportingParseRunner performs a basic match; if it fails, it
// relocates the deepest-reaching failure and re-runs the parse once
// more to emit exactly one InvalidInputError describing it.
type ReportingParseRunner struct{}

// NewReportingParseRunner builds a ReportingParseRunner.
func NewReportingParseRunner() *ReportingParseRunner { return &ReportingParseRunner{} }

// Run executes root against buf.
func (r *ReportingParseRunner) Run(root Matcher, buf InputBuffer) *ParsingResult {
	ctx, state := newRootContext(root, buf)
	rec := &recordingObserver{}
	state.handler = &coreHandler{obs: rec}
	if state.handler.MatchRoot(ctx) {
		return &ParsingResult{
			Matched:       true,
			ResultValue:   ctx.value,
			ParseTreeRoot: ctx.buildRootNode(),
			ValueStack:    state.stack,
			InputBuffer:   buf,
		}
	}

	ctx2, state2 := newRootContext(root, buf)
	rep := &reportingObserver{farthest: rec.farthest, buffer: buf, errors: &state2.errors}
	state2.handler = &coreHandler{obs: rep}
	matched := state2.handler.MatchRoot(ctx2)

	return &ParsingResult{
		Matched:     matched,
		ValueStack:  state2.stack,
		InputBuffer: buf,
		ParseErrors: state2.errors,
	}
}
