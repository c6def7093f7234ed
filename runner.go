package peg

// Handler is a MatchHandler in parboiled's sense (see
// original_source/MatchHandler.java): it is responsible for actually
// running the match of a given Context, usually wrapping the call
// with some custom logic such as error recording or tracing. Every
// runner variant plugs in a different Handler; the generic frame
// contract (snapshot/restore/node-attachment) lives in coreHandler
// and is reused by all of them.
type Handler interface {
	// MatchRoot runs the root Context.
	MatchRoot(root *Context) bool
	// Match runs the given Context.
	Match(ctx *Context) bool
}

// frameObserver is notified of every frame a coreHandler drives,
// before the variant-specific logic runs and after it succeeds or
// fails. Reporting, recovering and tracing handlers each supply one.
type frameObserver interface {
	onEnter(ctx *Context)
	onSuccess(ctx *Context)
	onFailure(ctx *Context)
}

// coreHandler implements the generic match protocol: record the
// frame's start index and value-stack snapshot, run the
// variant-specific logic, and on failure restore the cursor, drop any
// accumulated subNodes, and truncate the value stack -- once, here,
// rather than duplicated in every matcher variant.
type coreHandler struct {
	obs frameObserver
}

func (h *coreHandler) MatchRoot(root *Context) bool {
	return h.Match(root)
}

func (h *coreHandler) Match(ctx *Context) bool {
	ctx.startIndex = ctx.currentIndex
	snapshot := ctx.state.stack.snapshot()

	if h.obs != nil {
		h.obs.onEnter(ctx)
	}

	var ok bool
	if action, applies := lookupRepair(ctx); applies {
		ok = applyRepair(ctx, action)
	} else {
		ok = runMatchSelf(ctx)
	}

	if !ok {
		ctx.currentIndex = ctx.startIndex
		ctx.subNodes = nil
		ctx.state.stack.restore(snapshot)
		if h.obs != nil {
			h.obs.onFailure(ctx)
		}
		return false
	}
	if h.obs != nil {
		h.obs.onSuccess(ctx)
	}
	return true
}

// runMatchSelf invokes the matcher's variant-specific logic, catching
// a panicking action predicate and turning it into an ActionException
// recorded on the context and in the parse's error list rather than
// letting it escape the parse.
// Matchers never raise for ordinary match failures -- they just
// return false -- but a user action may raise, and the engine catches
// that at the frame boundary.
func runMatchSelf(ctx *Context) (ok bool) {
	if ctx.matcher.Kind() != KindAction {
		return ctx.matcher.matchSelf(ctx)
	}
	defer func() {
		if r := recover(); r != nil {
			ctx.actionErr = actionFault(r)
			buf := ctx.state.buffer
			ctx.state.errors = append(ctx.state.errors, ParseError{
				Kind:    ActionException,
				Start:   ctx.startIndex,
				End:     ctx.currentIndex,
				Span:    NewSpan(buf.GetPosition(ctx.startIndex), buf.GetPosition(ctx.currentIndex)),
				Message: ctx.actionErr.Error(),
				Path:    ctx.path(),
			})
			ok = false
		}
	}()
	return ctx.matcher.matchSelf(ctx)
}

// ParsingResult is what every runner returns.
type ParsingResult struct {
	Matched       bool
	ResultValue   any
	ParseTreeRoot *Node
	ValueStack    *ValueStack
	ParseErrors   []ParseError
	InputBuffer   InputBuffer
}

// BasicParseRunner performs exactly one pass and reports only
// success/failure; it emits no InvalidInput diagnostic, and its
// ParseErrors holds only ActionException errors from panicking
// actions.
type BasicParseRunner struct{}

// NewBasicParseRunner builds a BasicParseRunner.
func NewBasicParseRunner() *BasicParseRunner { return &BasicParseRunner{} }

// Run executes root against buf.
func (r *BasicParseRunner) Run(root Matcher, buf InputBuffer) *ParsingResult {
	ctx, state := newRootContext(root, buf)
	state.handler = &coreHandler{}
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
