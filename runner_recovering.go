package peg

import "fmt"

type repairKind int

const (
	repairResync repairKind = iota
	repairDelete
	repairInsert
)

// repairAction describes one accepted local repair, keyed by the
// exact (matcher, startIndex) pair it patches on every subsequent
// re-run of the grammar. Indices only ever grow across accepted
// repairs, so the same matcher is guaranteed to be reached at the
// same startIndex on the next full re-run, as long as no earlier
// repair shifted the cursor trajectory leading up to it -- which
// holds because repairs are always targeted at indices at or beyond
// the previous farthest failure.
type repairAction struct {
	kind            repairKind
	insertChar      rune
	followSet       CharSet
	failedChildIdx  int
}

type repairKey struct {
	m   Matcher
	idx int
}

// locatedFailure is what recovering and reporting share: the farthest
// index a parse reached, and the MatcherPath of the frame that failed
// there.
type locatedFailure struct {
	index int
	path  *MatcherPath
}

// locatingObserver is like reportingObserver but keeps the path
// object itself (rather than immediately turning it into an error),
// since the recovering runner needs to inspect the path's structure
// to propose repairs.
type locatingObserver struct {
	target  int
	found   *MatcherPath
	located bool
}

func (o *locatingObserver) onEnter(ctx *Context)   {}
func (o *locatingObserver) onSuccess(ctx *Context) {}
func (o *locatingObserver) onFailure(ctx *Context) {
	if o.located || ctx.startIndex != o.target {
		return
	}
	o.located = true
	o.found = ctx.path()
}

// locate runs two passes (recording the farthest index, then pinning
// down the exact path reaching it) under the given repair set.
func locate(root Matcher, buf InputBuffer, repairs map[repairKey]repairAction) (matched bool, lf locatedFailure, errs []ParseError) {
	ctx, state := newRootContext(root, buf)
	state.repairs = repairs
	rec := &recordingObserver{}
	state.handler = &coreHandler{obs: rec}
	if state.handler.MatchRoot(ctx) {
		return true, locatedFailure{}, state.errors
	}

	ctx2, state2 := newRootContext(root, buf)
	state2.repairs = repairs
	loc := &locatingObserver{target: rec.farthest}
	state2.handler = &coreHandler{obs: loc}
	state2.handler.MatchRoot(ctx2)

	return false, locatedFailure{index: rec.farthest, path: loc.found}, nil
}

// RecoveringParseRunner builds on ReportingParseRunner: whenever it
// locates a deepest failure, it attempts resynchronization, then
// single-character deletion, then single-character insertion, in
// that order, accepting the first repair that lets the parse consume
// strictly more input than the failing baseline. It alternates
// between trying a repair and re-locating the next failure until the
// parse succeeds or no repair makes progress (GIVE_UP).
type RecoveringParseRunner struct {
	// MaxRepairs bounds how many local repairs a single parse may
	// accumulate before giving up, guarding against a pathological
	// grammar/input pair that could otherwise loop forever trading
	// one recovered error for another. Zero selects a default of
	// 64.
	MaxRepairs int
}

// NewRecoveringParseRunner builds a RecoveringParseRunner.
func NewRecoveringParseRunner() *RecoveringParseRunner { return &RecoveringParseRunner{} }

// Run executes root against buf, accumulating local repairs until
// the parse succeeds or no further repair makes progress.
func (r *RecoveringParseRunner) Run(root Matcher, buf InputBuffer) *ParsingResult {
	maxRepairs := r.MaxRepairs
	if maxRepairs == 0 {
		maxRepairs = 64
	}

	repairs := map[repairKey]repairAction{}
	var errors []ParseError

	for i := 0; i < maxRepairs; i++ {
		matched, lf, _ := locate(root, buf, repairs)
		if matched {
			ctx, state := newRootContext(root, buf)
			state.repairs = repairs
			state.handler = &coreHandler{}
			state.handler.MatchRoot(ctx)
			return &ParsingResult{
				Matched:       true,
				ResultValue:   ctx.value,
				ParseTreeRoot: ctx.buildRootNode(),
				ValueStack:    state.stack,
				InputBuffer:   buf,
				ParseErrors:   errors,
			}
		}
		if lf.path == nil {
			break // GIVE_UP: couldn't even locate a failure to repair
		}

		key, action, perr, ok := r.proposeRepair(root, buf, repairs, lf)
		if !ok {
			break // GIVE_UP: resync, delete and insert all exhausted
		}
		repairs[key] = action
		errors = append(errors, perr)
	}

	// final fatal GIVE_UP: one last located failure as InvalidInput
	_, lf, _ := locate(root, buf, repairs)
	if lf.path != nil {
		label := expectedLabel(lf.path, lf.index)
		end := lf.index
		if buf.CharAt(lf.index) != EOI {
			end = lf.index + 1
		}
		errors = append(errors, ParseError{
			Kind:    InvalidInput,
			Start:   lf.index,
			End:     end,
			Span:    NewSpan(buf.GetPosition(lf.index), buf.GetPosition(end)),
			Message: fmt.Sprintf("Expected %s", label),
			Path:    lf.path,
		})
	}
	return &ParsingResult{Matched: false, ParseErrors: errors, InputBuffer: buf}
}

// proposeRepair tries resync, delete and insert in order, accepting
// the first one that lets a fresh locate() pass either succeed
// outright or reach farther than lf.index.
func (r *RecoveringParseRunner) proposeRepair(
	root Matcher, buf InputBuffer, repairs map[repairKey]repairAction, lf locatedFailure,
) (repairKey, repairAction, ParseError, bool) {
	elems := lf.path.Elements()
	if len(elems) == 0 {
		return repairKey{}, repairAction{}, ParseError{}, false
	}
	leaf := elems[len(elems)-1]
	key := repairKey{m: leaf.Matcher, idx: leaf.StartIndex}

	candidates := []repairAction{}
	var resyncKey repairKey
	if follow, failedIdx, seqElem, ok := enclosingFollowSet(elems); ok && !follow.Has(buf.CharAt(lf.index)) {
		// Resync is only meaningful when there is actually invalid
		// input to skip past; if the follow-set character is
		// already sitting at the error index, nothing needs
		// discarding and the real defect is a single wrong or
		// missing character -- leave it to delete/insert.
		candidates = append(candidates, repairAction{kind: repairResync, followSet: follow, failedChildIdx: failedIdx})
		resyncKey = repairKey{m: seqElem.Matcher, idx: seqElem.StartIndex}
	}
	candidates = append(candidates, repairAction{kind: repairDelete})
	if c, ok := insertionChar(leaf.Matcher); ok {
		candidates = append(candidates, repairAction{kind: repairInsert, insertChar: c})
	}

	for _, cand := range candidates {
		// resync is keyed on the enclosing Sequence frame, not
		// the leaf, since it replaces the whole remainder of
		// that sequence rather than retrying the leaf.
		candKey := key
		if cand.kind == repairResync {
			candKey = resyncKey
		}

		trial := make(map[repairKey]repairAction, len(repairs)+1)
		for k, v := range repairs {
			trial[k] = v
		}
		trial[candKey] = cand

		matched, newLF, _ := locate(root, buf, trial)
		if matched || newLF.index > lf.index {
			return candKey, cand, r.describeRepair(cand, lf, buf), true
		}
	}
	return repairKey{}, repairAction{}, ParseError{}, false
}

func (r *RecoveringParseRunner) describeRepair(action repairAction, lf locatedFailure, buf InputBuffer) ParseError {
	label := expectedLabel(lf.path, lf.index)
	switch action.kind {
	case repairResync:
		return ParseError{
			Kind: InvalidInput, Start: lf.index, End: lf.index,
			Span:    NewSpan(buf.GetPosition(lf.index), buf.GetPosition(lf.index)),
			Message: fmt.Sprintf("Skipped invalid input before %s", label),
			Path: lf.path, Repaired: "resync",
		}
	case repairDelete:
		return ParseError{
			Kind: InvalidInput, Start: lf.index, End: lf.index + 1,
			Span:    NewSpan(buf.GetPosition(lf.index), buf.GetPosition(lf.index+1)),
			Message: fmt.Sprintf("Unexpected character, expected %s", label),
			Path: lf.path, Repaired: "deleted",
		}
	default: // repairInsert
		return ParseError{
			Kind: InvalidInput, Start: lf.index, End: lf.index,
			Span:    NewSpan(buf.GetPosition(lf.index), buf.GetPosition(lf.index)),
			Message: fmt.Sprintf("Missing %s", label),
			Path: lf.path, Repaired: "inserted",
		}
	}
}

// enclosingFollowSet finds the nearest ancestor Sequence frame on
// elems and, if the failing step isn't its last child, returns the
// predictive first-set of whatever comes right after it, the failing
// child's index, and that Sequence's own path element.
func enclosingFollowSet(elems []*MatcherPath) (CharSet, int, *MatcherPath, bool) {
	for i := len(elems) - 2; i >= 0; i-- {
		seq, ok := asSequence(elems[i].Matcher)
		if !ok {
			continue
		}
		children := seq.children
		failedIdx := -1
		for idx, c := range children {
			if c == elems[i+1].Matcher {
				failedIdx = idx
				break
			}
		}
		if failedIdx < 0 || failedIdx+1 >= len(children) {
			return CharSet{}, 0, nil, false
		}
		set, ok := firstSet(children[failedIdx+1])
		if !ok {
			return CharSet{}, 0, nil, false
		}
		return set, failedIdx, elems[i], true
	}
	return CharSet{}, 0, nil, false
}

// firstSet computes a small predictive set of characters a matcher
// can start with, when that's cheap and unambiguous. It is used only
// to guide resynchronization; matchers outside this short list make
// resync simply unavailable for that failure, falling through to
// deletion/insertion.
func firstSet(m Matcher) (CharSet, bool) {
	switch t := m.(type) {
	case *charMatcher:
		return NewCharSet(t.c), true
	case *charIgnoreCaseMatcher:
		return NewCharSet(t.lower, t.upper), true
	case *charRangeMatcher:
		return NewCharSetRanges([2]rune{t.lo, t.hi}), true
	case *anyOfMatcher:
		return t.set, true
	case *stringMatcher:
		if len(t.s) > 0 {
			return NewCharSet(t.s[0]), true
		}
	}
	return CharSet{}, false
}

// lookupRepair checks whether an active repair plan patches the
// exact (matcher, startIndex) pair this frame is about to attempt.
func lookupRepair(ctx *Context) (repairAction, bool) {
	if ctx.state.repairs == nil {
		return repairAction{}, false
	}
	action, ok := ctx.state.repairs[repairKey{m: ctx.matcher, idx: ctx.startIndex}]
	return action, ok
}

// applyRepair runs the variant-specific logic with one local patch
// substituted for the matcher's ordinary behavior at this frame.
func applyRepair(ctx *Context, action repairAction) bool {
	switch action.kind {
	case repairInsert:
		// Virtually matched: the frame consumes nothing and its
		// node (if any) covers a zero-width span at startIndex.
		return true
	case repairDelete:
		ctx.currentIndex = ctx.startIndex + 1
		return runMatchSelf(ctx)
	case repairResync:
		seq, ok := asSequence(ctx.matcher)
		if !ok {
			return runMatchSelf(ctx)
		}
		return seq.matchWithResync(ctx, action.followSet, action.failedChildIdx)
	default:
		return runMatchSelf(ctx)
	}
}

// insertionChar picks the single character to virtually insert for a
// failing leaf matcher, when one can be read off its label
// unambiguously.
func insertionChar(m Matcher) (rune, bool) {
	switch t := m.(type) {
	case *charMatcher:
		return t.c, true
	case *charIgnoreCaseMatcher:
		return t.lower, true
	case *stringMatcher:
		if len(t.s) > 0 {
			return t.s[0], true
		}
	}
	return 0, false
}
