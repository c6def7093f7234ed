package peg

import "fmt"

// ActionFn is a user-defined side-effecting predicate. It receives a
// read-only view of the frame it runs in and returns whether the
// frame should succeed. It consumes no input: a true return succeeds
// without advancing the cursor, false fails the frame.
//
// An action may raise a fault by panicking; the engine recovers it
// at the frame boundary and converts it into an ActionException,
// rather than letting it unwind the whole parse.
type ActionFn func(ActionContext) bool

// ActionContext is the read-only view an ActionFn receives: the
// current index, the enclosing frame's start index, the shared value
// stack and input buffer, the sibling nodes already built in the
// enclosing frame, and the matcher path leading to this action.
type ActionContext struct {
	ctx *Context
}

// CurrentIndex is the cursor position the action runs at.
func (a ActionContext) CurrentIndex() int { return a.ctx.currentIndex }

// StartIndex is the start index of the node-under-construction, i.e.
// the enclosing (parent) frame's start index.
func (a ActionContext) StartIndex() int {
	if a.ctx.parent != nil {
		return a.ctx.parent.startIndex
	}
	return a.ctx.startIndex
}

// ValueStack exposes the shared, process-private value stack.
func (a ActionContext) ValueStack() *ValueStack { return a.ctx.state.stack }

// Buffer exposes the input buffer being parsed.
func (a ActionContext) Buffer() InputBuffer { return a.ctx.state.buffer }

// Siblings returns the nodes already built by the enclosing frame
// before this action ran.
func (a ActionContext) Siblings() []*Node {
	if a.ctx.parent != nil {
		return a.ctx.parent.subNodes
	}
	return nil
}

// Text extracts the raw input text in [start, end).
func (a ActionContext) Text(start, end int) string {
	return a.ctx.state.buffer.Extract(start, end)
}

// Path returns the matcher path leading to this action's frame.
func (a ActionContext) Path() *MatcherPath { return a.ctx.path() }

type actionMatcher struct {
	matcherBase
	fn ActionFn
}

func (m *actionMatcher) matchSelf(ctx *Context) bool {
	return m.fn(ActionContext{ctx: ctx})
}

// actionFault turns a recovered panic value from an action predicate
// into an error, preserving an existing error value untouched.
func actionFault(r any) error {
	if err, ok := r.(error); ok {
		return err
	}
	return fmt.Errorf("%v", r)
}
