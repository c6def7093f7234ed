package peg

// parseState is shared by every Context spawned during one parse: the
// input buffer, the value stack, and the handler driving the whole
// recursion. It is owned by the runner and accessed by contexts in
// strict recursive order, so it needs no locking.
type parseState struct {
	buffer  InputBuffer
	stack   *ValueStack
	handler Handler
	errors  []ParseError

	// repairs is consulted by coreHandler.Match on every frame when
	// non-nil; it is how RecoveringParseRunner patches specific
	// (matcher, startIndex) pairs across a full grammar re-run
	// without touching any matcher's own matchSelf logic.
	repairs map[repairKey]repairAction
}

// Context is the per-invocation frame: a parent back-reference, the
// matcher under execution, the cursor range it covers, the tree nodes
// its children produced, an optional semantic value, and per-frame
// scratch state used by the repetition matchers.
type Context struct {
	state  *parseState
	parent *Context
	matcher Matcher

	startIndex   int
	currentIndex int
	subNodes     []*Node
	value        any
	intTag       int

	// insidePredicate is true for every frame spawned underneath a
	// Test or TestNot matcher; it is propagated to descendants and
	// lets nodeSuppressedInPredicate matchers skip node
	// construction for work that is guaranteed to be discarded.
	insidePredicate bool

	// actionErr carries an ActionException recovered from a
	// panicking action predicate, for the driver to turn into a
	// recorded ParseError.
	actionErr error
}

func newRootContext(m Matcher, buf InputBuffer) (*Context, *parseState) {
	state := &parseState{buffer: buf, stack: newValueStack()}
	ctx := &Context{state: state, matcher: m}
	return ctx, state
}

// Buffer returns the input buffer for this parse.
func (c *Context) Buffer() InputBuffer { return c.state.buffer }

// Stack returns the value stack for this parse.
func (c *Context) Stack() *ValueStack { return c.state.stack }

// StartIndex is the cursor position when this frame began.
func (c *Context) StartIndex() int { return c.startIndex }

// CurrentIndex is the live cursor, advanced as subrules succeed.
func (c *Context) CurrentIndex() int { return c.currentIndex }

// Matcher returns the matcher this frame is executing.
func (c *Context) Matcher() Matcher { return c.matcher }

// Parent returns the calling frame, or nil at the root.
func (c *Context) Parent() *Context { return c.parent }

// SetValue binds a semantic value to this frame, later captured onto
// its Node.
func (c *Context) SetValue(v any) { c.value = v }

// Value returns the value currently bound to this frame.
func (c *Context) Value() any { return c.value }

// path builds this frame's MatcherPath by walking parent references
// out to the root.
func (c *Context) path() *MatcherPath {
	if c == nil {
		return nil
	}
	return &MatcherPath{
		Parent:     c.parent.path(),
		Matcher:    c.matcher,
		StartIndex: c.startIndex,
	}
}

// runSub is how every composite matcher invokes a subrule: it spawns
// a child frame at the current cursor, drives it through the shared
// handler (so tracing/reporting observers see every nested frame,
// not just the root), and on success integrates the child's node and
// cursor advance into this frame.
func (c *Context) runSub(m Matcher) bool {
	child := &Context{
		state:           c.state,
		parent:          c,
		matcher:         m,
		startIndex:      c.currentIndex,
		currentIndex:    c.currentIndex,
		insidePredicate: c.insidePredicate,
	}
	ok := c.state.handler.Match(child)
	if ok {
		c.integrate(child)
	}
	return ok
}

// runPredicate drives a Test/TestNot subrule: it runs m on a child
// frame marked insidePredicate, then discards that frame entirely --
// no integrate call, so the parent's cursor and subNodes are left
// exactly as they were, regardless of what the subrule matched.
func (c *Context) runPredicate(m Matcher) bool {
	child := &Context{
		state:           c.state,
		parent:          c,
		matcher:         m,
		startIndex:      c.currentIndex,
		currentIndex:    c.currentIndex,
		insidePredicate: true,
	}
	return c.state.handler.Match(child)
}

// runSubAt is like runSub but first moves this frame's cursor to at,
// so the child frame starts there.
func (c *Context) runSubAt(m Matcher, at int) bool {
	c.currentIndex = at
	return c.runSub(m)
}

// integrate folds a successfully-matched child frame into its
// parent: it always advances the parent's cursor, and attaches a
// node according to the child matcher's suppressNode/skipNode/
// suppressSubnodes flags.
func (c *Context) integrate(child *Context) {
	c.currentIndex = child.currentIndex
	b := child.matcher.base()
	if b.suppressNode {
		return
	}
	if c.insidePredicate && b.nodeSuppressedInPredicate {
		return
	}
	if b.skipNode {
		c.subNodes = append(c.subNodes, child.subNodes...)
		return
	}
	buf := c.state.buffer
	node := &Node{
		Label: b.label,
		Start: child.startIndex,
		End:   child.currentIndex,
		Span:  NewSpan(buf.GetPosition(child.startIndex), buf.GetPosition(child.currentIndex)),
		Value: child.value,
	}
	if !b.suppressSubnodes {
		node.Children = child.subNodes
	}
	c.subNodes = append(c.subNodes, node)
}

// buildRootNode turns a successfully-matched root frame into its
// Node, applying the same construction rules integrate uses for
// non-root frames (the root has no parent to splice/suppress into,
// so it always gets its own node unless suppressNode is set, in
// which case it returns nil and a ParsingResult has no
// ParseTreeRoot).
func (c *Context) buildRootNode() *Node {
	b := c.matcher.base()
	if b.suppressNode {
		return nil
	}
	buf := c.state.buffer
	node := &Node{
		Label: b.label,
		Start: c.startIndex,
		End:   c.currentIndex,
		Span:  NewSpan(buf.GetPosition(c.startIndex), buf.GetPosition(c.currentIndex)),
		Value: c.value,
	}
	if !b.suppressSubnodes {
		node.Children = c.subNodes
	}
	return node
}
