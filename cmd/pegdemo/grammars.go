package main

import (
	"github.com/clarete/peg"
)

// lotsOfAs builds a directly self-referential grammar: LotsOfAs =
// Sequence(IgnoreCase('a'), Optional(LotsOfAs)), demonstrating the
// matcher cache resolving a rule that refers to itself.
func lotsOfAs(b *peg.Builder) peg.Matcher {
	return b.Rule("LotsOfAs", func() peg.Matcher {
		return b.Sequence(b.IgnoreCase('a'), b.Optional(lotsOfAs(b)))
	})
}

// splitClause builds a top clause rule reusing smaller named rules
// the way one parser in a grammar pack reuses another's subrules.
func splitClause(b *peg.Builder) peg.Matcher {
	digit := b.Rule("Digit", func() peg.Matcher { return b.CharRange('0', '9') })
	operator := b.Rule("Operator", func() peg.Matcher { return b.FirstOf(b.Char('+'), b.Char('-')) })
	return b.Rule("Clause", func() peg.Matcher {
		return b.Sequence(digit, operator, digit, b.EOI())
	})
}

// arithmetic builds a small left-recursion-free expression grammar
// (Expr = Term ('+' Term)*; Term = Digit+) exercising actions and the
// value stack end to end.
func arithmetic(b *peg.Builder) peg.Matcher {
	digit := b.Rule("Digit", func() peg.Matcher { return b.CharRange('0', '9') })

	term := b.Rule("Term", func() peg.Matcher {
		return b.Sequence(
			b.OneOrMore(digit),
			b.Action(func(a peg.ActionContext) bool {
				n := 0
				for _, r := range a.Text(a.StartIndex(), a.CurrentIndex()) {
					n = n*10 + int(r-'0')
				}
				a.ValueStack().Push(n)
				return true
			}),
		)
	})

	return b.Rule("Expr", func() peg.Matcher {
		return b.Sequence(
			term,
			b.ZeroOrMore(b.Sequence(
				b.Char('+'),
				term,
				b.Action(func(a peg.ActionContext) bool {
					rhs := a.ValueStack().Pop().(int)
					lhs := a.ValueStack().Pop().(int)
					a.ValueStack().Push(lhs + rhs)
					return true
				}),
			)),
		)
	})
}
