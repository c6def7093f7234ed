package peg

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Builder owns the per-grammar combinator cache: two calls to a
// rule-creating combinator with structurally equal arguments must
// return the same Matcher instance, so that sharing subrule graphs
// keeps recursive grammars finite. The cache is populated only
// during grammar construction and must be treated as frozen once a
// parse begins. Apart from Rule, which caches its wrapper before its
// build function runs and sets the wrapper's target once build
// returns, nothing here mutates a cached Matcher's fields after it is
// returned.
//
// Cache keys are hashed with xxhash (grounded on
// open-policy-agent/opa, which uses the same library for its own
// content-addressed caches) rather than kept as a general hashing
// framework: a combinator's descriptor string is small, stable and
// fully determined by its arguments, so a single fast 64-bit hash is
// enough and avoids pulling in an LRU/eviction policy that would
// break the "same instance forever" guarantee.
type Builder struct {
	cache map[uint64]Matcher
}

// NewBuilder creates an empty combinator cache for one grammar.
func NewBuilder() *Builder {
	return &Builder{cache: make(map[uint64]Matcher)}
}

func cacheKey(parts ...string) uint64 {
	return xxhash.Sum64String(strings.Join(parts, "\x1f"))
}

func matcherKey(m Matcher) string {
	return fmt.Sprintf("%p", m)
}

// intern returns the cached matcher for key, calling build to
// construct it on the first request.
func (b *Builder) intern(key uint64, build func() Matcher) Matcher {
	if m, ok := b.cache[key]; ok {
		return m
	}
	m := build()
	b.cache[key] = m
	return m
}
