package peg

// ruleMatcher names a subrule for the parse tree and for error
// labels without adding an extra frame of its own: its matchSelf
// runs target's variant-specific logic directly against the same
// context, so target's own children attach straight to ruleMatcher's
// node rather than nesting inside an intermediate one labeled by
// target's combinator kind (e.g. "Sequence").
//
// This is the explicit stand-in for what the original parboiled gets
// from bytecode rewriting: every @Cached Rule-returning method has
// its return value's label silently overwritten with the method
// name. Grammar-authoring ergonomics are otherwise out of scope here,
// but naming a rule for its own tree node is a matching-core concern
// in its own right -- it is what lets a recursive grammar refer to
// itself before its body is built.
type ruleMatcher struct {
	matcherBase
	target Matcher
}

func (m *ruleMatcher) matchSelf(ctx *Context) bool {
	return m.target.matchSelf(ctx)
}

// Rule names a subrule, returning the same cached matcher on every
// later call with the same name. The builder function is called at
// most once; a recursive reference to the same name from within
// build is satisfied immediately, before build returns, because the
// wrapper is registered in the cache before build runs.
func (b *Builder) Rule(name string, build func() Matcher) Matcher {
	key := cacheKey("Rule", name)
	if m, ok := b.cache[key]; ok {
		return m
	}
	rm := &ruleMatcher{matcherBase: matcherBase{kind: KindRule, label: name, custom: true}}
	b.cache[key] = rm
	target := build()
	rm.target = target
	rm.children = target.Children()
	return rm
}

// asSequence unwraps a named rule to inspect its target, since the
// recovering runner's resynchronization heuristic needs to see past
// Rule's relabeling to find the enclosing Sequence.
func asSequence(m Matcher) (*sequenceMatcher, bool) {
	if rm, ok := m.(*ruleMatcher); ok {
		return asSequence(rm.target)
	}
	sm, ok := m.(*sequenceMatcher)
	return sm, ok
}
