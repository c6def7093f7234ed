package peg

import (
	"unicode/utf8"

	patricia "github.com/tchap/go-patricia/v2/patricia"
)

// firstOfStringsMatcher is the FirstOfStrings variant: an ordered
// choice over string literals, optimized with a shared PATRICIA trie
// for common-prefix factoring (grounded on open-policy-agent/opa,
// which vendors github.com/tchap/go-patricia/v2 for its own
// prefix-trie needs). The trie only answers "could any literal still
// match beyond what's been read so far" (MatchSubtree); ordered-choice
// still requires checking literals in their original order once the
// maximum feasible length is known, since a shorter, earlier-listed
// literal must win over a longer, later-listed one that happens to
// share its prefix -- FirstOf("foo", "foobar") on "foobar" commits to
// "foo".
type firstOfStringsMatcher struct {
	matcherBase
	literals [][]rune
	trie     *patricia.Trie
}

func (m *firstOfStringsMatcher) matchSelf(ctx *Context) bool {
	buf := ctx.Buffer()
	cursor := ctx.currentIndex

	maxLen := 0
	for _, lit := range m.literals {
		if len(lit) > maxLen {
			maxLen = len(lit)
		}
	}

	probe := make([]byte, 0, maxLen*utf8.UTFMax)
	feasible := 0
	for i := 0; i < maxLen; i++ {
		c := buf.CharAt(cursor + i)
		if c == EOI {
			break
		}
		var enc [utf8.UTFMax]byte
		n := utf8.EncodeRune(enc[:], c)
		probe = append(probe, enc[:n]...)
		if !m.trie.MatchSubtree(patricia.Prefix(probe)) {
			break
		}
		feasible = i + 1
	}

	for _, lit := range m.literals {
		if len(lit) > feasible {
			continue
		}
		matched := true
		for i, want := range lit {
			if buf.CharAt(cursor+i) != want {
				matched = false
				break
			}
		}
		if matched {
			ctx.currentIndex = cursor + len(lit)
			return true
		}
	}
	return false
}

// FirstOfStrings builds an ordered choice over string literals,
// folding the trie-sharing optimization in directly. It is what
// FirstOf itself folds to when every subrule is a string literal.
func (b *Builder) FirstOfStrings(literals ...string) Matcher {
	key := cacheKey(append([]string{"FirstOfStrings"}, literals...)...)
	return b.intern(key, func() Matcher {
		t := patricia.NewTrie()
		runeLits := make([][]rune, len(literals))
		for i, s := range literals {
			runeLits[i] = []rune(s)
			t.Insert(patricia.Prefix(s), i)
		}
		return &firstOfStringsMatcher{
			matcherBase: matcherBase{kind: KindFirstOfStrings, label: "FirstOfStrings"},
			literals:    runeLits,
			trie:        t,
		}
	})
}
