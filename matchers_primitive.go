package peg

import (
	"fmt"
	"unicode"
)

// ---- Char ----

type charMatcher struct {
	matcherBase
	c rune
}

func (m *charMatcher) matchSelf(ctx *Context) bool {
	if ctx.Buffer().CharAt(ctx.currentIndex) != m.c {
		return false
	}
	ctx.currentIndex++
	return true
}

// Char builds (or returns the cached instance of) a matcher for the
// exact rune c.
func (b *Builder) Char(c rune) Matcher {
	key := cacheKey("Char", string(c))
	return b.intern(key, func() Matcher {
		return &charMatcher{
			matcherBase: matcherBase{kind: KindChar, label: fmt.Sprintf("'%c'", c)},
			c:           c,
		}
	})
}

// ---- CharIgnoreCase ----

type charIgnoreCaseMatcher struct {
	matcherBase
	lower, upper rune
}

func (m *charIgnoreCaseMatcher) matchSelf(ctx *Context) bool {
	c := ctx.Buffer().CharAt(ctx.currentIndex)
	if c != m.lower && c != m.upper {
		return false
	}
	ctx.currentIndex++
	return true
}

// IgnoreCase builds a matcher for the upper- or lower-case form of c.
// When c has no case distinction it folds to Char(c).
func (b *Builder) IgnoreCase(c rune) Matcher {
	lower, upper := unicode.ToLower(c), unicode.ToUpper(c)
	if lower == upper {
		return b.Char(c)
	}
	key := cacheKey("IgnoreCase", string(lower), string(upper))
	return b.intern(key, func() Matcher {
		return &charIgnoreCaseMatcher{
			matcherBase: matcherBase{
				kind:  KindCharIgnoreCase,
				label: fmt.Sprintf("'%c/%c'", lower, upper),
			},
			lower: lower,
			upper: upper,
		}
	})
}

// ---- CharRange ----

type charRangeMatcher struct {
	matcherBase
	lo, hi rune
}

func (m *charRangeMatcher) matchSelf(ctx *Context) bool {
	c := ctx.Buffer().CharAt(ctx.currentIndex)
	if c < m.lo || c > m.hi {
		return false
	}
	ctx.currentIndex++
	return true
}

// CharRange builds a matcher for any rune in [lo, hi] inclusive.
func (b *Builder) CharRange(lo, hi rune) Matcher {
	if lo > hi {
		panicGrammar("CharRange: lo %q is greater than hi %q", lo, hi)
	}
	key := cacheKey("CharRange", string(lo), string(hi))
	return b.intern(key, func() Matcher {
		return &charRangeMatcher{
			matcherBase: matcherBase{kind: KindCharRange, label: fmt.Sprintf("'%c'..'%c'", lo, hi)},
			lo:          lo,
			hi:          hi,
		}
	})
}

// ---- AnyOf ----

type anyOfMatcher struct {
	matcherBase
	set CharSet
}

func (m *anyOfMatcher) matchSelf(ctx *Context) bool {
	c := ctx.Buffer().CharAt(ctx.currentIndex)
	if c == EOI || !m.set.Has(c) {
		return false
	}
	ctx.currentIndex++
	return true
}

// AnyOf builds a matcher for any rune belonging to set. A set
// describing exactly one non-negated rune folds to Char.
func (b *Builder) AnyOf(set CharSet) Matcher {
	if r, ok := set.singleton(); ok {
		return b.Char(r)
	}
	key := cacheKey("AnyOf", set.String())
	return b.intern(key, func() Matcher {
		return &anyOfMatcher{
			matcherBase: matcherBase{kind: KindAnyOf, label: set.String()},
			set:         set,
		}
	})
}

// ---- Any ----

type anyMatcher struct{ matcherBase }

func (m *anyMatcher) matchSelf(ctx *Context) bool {
	if ctx.Buffer().CharAt(ctx.currentIndex) == EOI {
		return false
	}
	ctx.currentIndex++
	return true
}

var anySingleton = &anyMatcher{matcherBase: matcherBase{kind: KindAny, label: "ANY"}}

// Any matches any character except EOI.
func (b *Builder) Any() Matcher { return anySingleton }

// ---- Empty ----

type emptyMatcher struct{ matcherBase }

func (m *emptyMatcher) matchSelf(ctx *Context) bool { return true }

var emptySingleton = &emptyMatcher{matcherBase: matcherBase{kind: KindEmpty, label: "EMPTY", suppressNode: true}}

// Empty consumes nothing and always succeeds.
func (b *Builder) Empty() Matcher { return emptySingleton }

// ---- Nothing ----

type nothingMatcher struct{ matcherBase }

func (m *nothingMatcher) matchSelf(ctx *Context) bool { return false }

var nothingSingleton = &nothingMatcher{matcherBase: matcherBase{kind: KindNothing, label: "NOTHING"}}

// Nothing always fails.
func (b *Builder) Nothing() Matcher { return nothingSingleton }

// ---- EOI ----

type eoiMatcher struct{ matcherBase }

func (m *eoiMatcher) matchSelf(ctx *Context) bool {
	return ctx.Buffer().CharAt(ctx.currentIndex) == EOI
}

var eoiSingleton = &eoiMatcher{matcherBase: matcherBase{kind: KindEOI, label: "EOI"}}

// EOI matches only the virtual end-of-input sentinel.
func (b *Builder) EOI() Matcher { return eoiSingleton }

// ---- String ----

type stringMatcher struct {
	matcherBase
	s []rune
}

func (m *stringMatcher) matchSelf(ctx *Context) bool {
	buf := ctx.Buffer()
	for i, want := range m.s {
		if buf.CharAt(ctx.currentIndex+i) != want {
			return false
		}
	}
	ctx.currentIndex += len(m.s)
	return true
}

// String is sugar for a char sequence, optimized to scan the whole
// literal in one frame rather than recursing through a Sequence of
// single Char matchers. A one-character literal folds to Char.
func (b *Builder) String(s string) Matcher {
	runes := []rune(s)
	if len(runes) == 1 {
		return b.Char(runes[0])
	}
	key := cacheKey("String", s)
	return b.intern(key, func() Matcher {
		return &stringMatcher{
			matcherBase: matcherBase{kind: KindString, label: fmt.Sprintf("%q", s)},
			s:           runes,
		}
	})
}
