package peg

// ---- Sequence ----

type sequenceMatcher struct{ matcherBase }

func (m *sequenceMatcher) matchSelf(ctx *Context) bool {
	for _, c := range m.children {
		if !ctx.runSub(c) {
			return false
		}
	}
	return true
}

// matchWithResync is only invoked by an active repair plan (see
// runner_recovering.go): it runs children up to the one that
// originally failed as usual, then skips the remainder of the
// sequence entirely, advancing the cursor past any input that isn't
// in follow until one that is (or EOI) is reached. The sequence is
// accepted as matched up to that point; parsing continues with
// whatever comes after the sequence in the outer grammar.
func (m *sequenceMatcher) matchWithResync(ctx *Context, follow CharSet, failedChildIdx int) bool {
	for i := 0; i < failedChildIdx; i++ {
		if !ctx.runSub(m.children[i]) {
			return false
		}
	}
	buf := ctx.Buffer()
	idx := ctx.currentIndex
	for {
		c := buf.CharAt(idx)
		if c == EOI || follow.Has(c) {
			break
		}
		idx++
	}
	ctx.currentIndex = idx
	return true
}

// Sequence succeeds iff every subrule succeeds in order, consuming
// contiguously. Applied to a single rule it returns that rule
// unmodified.
func (b *Builder) Sequence(rules ...Matcher) Matcher {
	if len(rules) == 1 {
		return rules[0]
	}
	key := cacheKey(append([]string{"Sequence"}, matcherKeys(rules)...)...)
	return b.intern(key, func() Matcher {
		return &sequenceMatcher{matcherBase{
			kind: KindSequence, label: "Sequence", children: rules,
			nodeSuppressedInPredicate: true,
		}}
	})
}

// ---- FirstOf ----

type firstOfMatcher struct{ matcherBase }

func (m *firstOfMatcher) matchSelf(ctx *Context) bool {
	for _, c := range m.children {
		if ctx.runSub(c) {
			return true
		}
	}
	return false
}

// FirstOf tries each subrule left to right from the same start
// index and commits to the first success (ordered choice). Applied
// to a single rule it returns that rule unmodified; applied to only
// string literals it folds to the shared-trie FirstOfStrings
// variant.
func (b *Builder) FirstOf(rules ...Matcher) Matcher {
	if len(rules) == 1 {
		return rules[0]
	}
	if literals, ok := allStringLiterals(rules); ok {
		return b.FirstOfStrings(literals...)
	}
	key := cacheKey(append([]string{"FirstOf"}, matcherKeys(rules)...)...)
	return b.intern(key, func() Matcher {
		return &firstOfMatcher{matcherBase{
			kind: KindFirstOf, label: "FirstOf", children: rules,
			nodeSuppressedInPredicate: true,
		}}
	})
}

func allStringLiterals(rules []Matcher) ([]string, bool) {
	out := make([]string, 0, len(rules))
	for _, r := range rules {
		sm, ok := r.(*stringMatcher)
		if !ok {
			return nil, false
		}
		out = append(out, string(sm.s))
	}
	return out, true
}

func matcherKeys(rules []Matcher) []string {
	out := make([]string, len(rules))
	for i, r := range rules {
		out[i] = matcherKey(r)
	}
	return out
}

// ---- Optional ----

type optionalMatcher struct{ matcherBase }

func (m *optionalMatcher) matchSelf(ctx *Context) bool {
	ctx.runSub(m.children[0])
	return true
}

// Optional always succeeds: it tries r once and keeps its effect iff
// it matched.
func (b *Builder) Optional(r Matcher) Matcher {
	key := cacheKey("Optional", matcherKey(r))
	return b.intern(key, func() Matcher {
		return &optionalMatcher{matcherBase{
			kind: KindOptional, label: "Optional", children: []Matcher{r},
			nodeSuppressedInPredicate: true,
		}}
	})
}

// ---- ZeroOrMore ----

type zeroOrMoreMatcher struct{ matcherBase }

func (m *zeroOrMoreMatcher) matchSelf(ctx *Context) bool {
	ctx.intTag = 0
	for {
		before := ctx.currentIndex
		if !ctx.runSub(m.children[0]) {
			break
		}
		ctx.intTag++
		if ctx.currentIndex == before {
			// zero-width iteration guard: the body matched
			// without consuming input, so looping again
			// would never terminate.
			break
		}
	}
	return true
}

// ZeroOrMore is the greedy star: it always succeeds, repeating the
// subrule until it fails or an iteration matches without advancing
// the cursor.
func (b *Builder) ZeroOrMore(r Matcher) Matcher {
	key := cacheKey("ZeroOrMore", matcherKey(r))
	return b.intern(key, func() Matcher {
		return &zeroOrMoreMatcher{matcherBase{
			kind: KindZeroOrMore, label: "ZeroOrMore", children: []Matcher{r},
			nodeSuppressedInPredicate: true,
		}}
	})
}

// ---- OneOrMore ----

type oneOrMoreMatcher struct{ matcherBase }

func (m *oneOrMoreMatcher) matchSelf(ctx *Context) bool {
	first := ctx.currentIndex
	if !ctx.runSub(m.children[0]) {
		return false
	}
	ctx.intTag = 1
	if ctx.currentIndex == first {
		return true
	}
	for {
		before := ctx.currentIndex
		if !ctx.runSub(m.children[0]) {
			break
		}
		ctx.intTag++
		if ctx.currentIndex == before {
			break
		}
	}
	return true
}

// OneOrMore is the greedy plus: it fails only if the first iteration
// fails, otherwise behaving like ZeroOrMore after that.
func (b *Builder) OneOrMore(r Matcher) Matcher {
	key := cacheKey("OneOrMore", matcherKey(r))
	return b.intern(key, func() Matcher {
		return &oneOrMoreMatcher{matcherBase{
			kind: KindOneOrMore, label: "OneOrMore", children: []Matcher{r},
			nodeSuppressedInPredicate: true,
		}}
	})
}

// ---- Test ----

type testMatcher struct{ matcherBase }

func (m *testMatcher) matchSelf(ctx *Context) bool {
	return ctx.runPredicate(m.children[0])
}

// Test is a zero-width lookahead: it succeeds iff r would succeed,
// never consumes input and never emits nodes.
func (b *Builder) Test(r Matcher) Matcher {
	key := cacheKey("Test", matcherKey(r))
	return b.intern(key, func() Matcher {
		return &testMatcher{matcherBase{
			kind: KindTest, label: "Test", children: []Matcher{r}, suppressNode: true,
		}}
	})
}

// ---- TestNot ----

type testNotMatcher struct{ matcherBase }

func (m *testNotMatcher) matchSelf(ctx *Context) bool {
	return !ctx.runPredicate(m.children[0])
}

// TestNot is the negative form of Test.
func (b *Builder) TestNot(r Matcher) Matcher {
	key := cacheKey("TestNot", matcherKey(r))
	return b.intern(key, func() Matcher {
		return &testNotMatcher{matcherBase{
			kind: KindTestNot, label: "TestNot", children: []Matcher{r}, suppressNode: true,
		}}
	})
}

// Action wraps a user predicate as a matcher. It consumes no input
// and is always tree-node-suppressed: a true return succeeds, a
// false return fails the frame, and a panic inside fn is caught at
// the frame boundary and recorded as an ActionException.
//
// Action matchers are not interned: distinct closures have no
// structural identity to cache on (two func values are never == in
// Go unless both are nil), and grammars typically build each action
// call site once anyway.
func (b *Builder) Action(fn ActionFn) Matcher {
	return &actionMatcher{
		matcherBase: matcherBase{kind: KindAction, label: "Action", suppressNode: true},
		fn:          fn,
	}
}
