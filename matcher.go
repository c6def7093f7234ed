package peg

// MatcherKind identifies which of the closed set of matcher variants
// a Matcher value is. The set is fixed; there is no open subclass
// hierarchy to extend.
type MatcherKind int

const (
	KindChar MatcherKind = iota
	KindCharIgnoreCase
	KindCharRange
	KindAnyOf
	KindAny
	KindEmpty
	KindNothing
	KindSequence
	KindFirstOf
	KindOptional
	KindZeroOrMore
	KindOneOrMore
	KindTest
	KindTestNot
	KindAction
	KindString
	KindFirstOfStrings
	KindEOI
	KindRule
)

// Matcher is the interface every grammar node implements. Matchers
// are built once by the Builder's combinator methods (in
// matchers_primitive.go, matchers_composite.go, trie.go and rule.go),
// cached by argument identity, and are immutable once exposed to a
// parse: nothing mutates a matcher's fields after construction, which
// is what lets matcher graphs be shared safely across concurrent
// parses and across cycles in recursive grammars.
type Matcher interface {
	// Kind reports which closed variant this matcher is.
	Kind() MatcherKind

	// Label returns the matcher's human-readable label, used in
	// error messages and as the parse-tree node name.
	Label() string

	// Children returns the matcher's subrules, or nil for a leaf
	// matcher.
	Children() []Matcher

	// matchSelf performs the variant-specific matching logic for
	// ctx; it may recurse into subrules via ctx.runSub. The
	// generic frame contract (snapshot, restore-on-failure,
	// node attachment) is implemented once in the driver
	// (coreHandler.Match in runner.go, plus Context.integrate in
	// context.go) and never duplicated here.
	matchSelf(ctx *Context) bool

	// base returns the shared flags/label bookkeeping struct
	// embedded by every concrete matcher type.
	base() *matcherBase
}

// matcherBase holds the bookkeeping shared by every matcher variant:
// its label (and whether it was user-assigned), its flags, and its
// subrules. Concrete matcher types embed this and implement Kind and
// matchSelf themselves.
type matcherBase struct {
	kind     MatcherKind
	label    string
	custom   bool
	children []Matcher

	suppressNode              bool
	suppressSubnodes          bool
	skipNode                  bool

	// nodeSuppressedInPredicate is set on the composite combinators
	// (Sequence, FirstOf, Optional, ZeroOrMore, OneOrMore) so that a
	// composite nested under Test/TestNot skips building its own
	// node even though runPredicate's top frame already discards the
	// whole subtree -- nested composites still reach integrate via
	// ordinary runSub, and would otherwise build nodes only to throw
	// them away.
	nodeSuppressedInPredicate bool
}

func (b *matcherBase) Kind() MatcherKind     { return b.kind }
func (b *matcherBase) Label() string         { return b.label }
func (b *matcherBase) Children() []Matcher   { return b.children }
func (b *matcherBase) base() *matcherBase    { return b }

// Walk performs a cycle-safe depth-first traversal of the matcher
// graph rooted at m, calling fn for every matcher reached. A matcher
// is visited at most once, identified by its interface value's
// pointer identity -- the same discipline the combinator cache relies
// on: equality compares instances, not a deep structural walk.
// Returning false from fn skips that matcher's children.
func Walk(m Matcher, fn func(Matcher) bool) {
	seen := make(map[Matcher]bool)
	var walk func(Matcher)
	walk = func(m Matcher) {
		if m == nil || seen[m] {
			return
		}
		seen[m] = true
		if !fn(m) {
			return
		}
		for _, c := range m.Children() {
			walk(c)
		}
	}
	walk(m)
}

// Label wraps m so that, on a path walk, it contributes a
// user-assigned label for "expected" message selection instead of m's
// own derived default. It adds no tree-node layer of its own: it is
// a skipNode matcher, so its single child's node (or, if that child
// itself skips, the child's spliced children) is what ends up
// attached to the parent.
func Label(name string, m Matcher) Matcher {
	return &labelMatcher{
		matcherBase: matcherBase{
			kind:     KindSequence, // behaves exactly like a 1-subrule sequence
			label:    name,
			custom:   true,
			children: []Matcher{m},
			skipNode: true,
		},
	}
}

type labelMatcher struct{ matcherBase }

func (m *labelMatcher) matchSelf(ctx *Context) bool {
	return ctx.runSub(m.children[0])
}
