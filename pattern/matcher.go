// Package pattern implements the combinator DSL that peephole passes use
// to find rewritable spans in a record.Stream.
//
// The original template-based matcher composition (Is<T>, Or<A,B>,
// Not<X>, Greedy<X>, tuple Pattern<P1,P2,...>) doesn't translate literally
// into Go, which has no type-level composition of that shape. Instead each
// combinator is a small value implementing Matcher, and Seq threads
// per-slot captures through a positional, type-erased slice that typed
// accessors narrow back down via generics.
package pattern

import "github.com/recopt/recopt/record"

// Matcher attempts to match a span of a Stream starting exactly at
// position at (no internal scanning — scanning across positions is
// Search's job). On success it reports how many records it consumed and a capture
// value recording what it matched, for later retrieval by typed
// accessors. A Matcher that always consumes a single record reports its
// capture as the record.Command itself; Greedy reports a []record.Command;
// Seq reports a []any of its sub-matchers' captures, in order.
type Matcher interface {
	matchAt(s *record.Stream, at int) (length int, capture any, ok bool)
}

type matcherFunc func(s *record.Stream, at int) (int, any, bool)

func (f matcherFunc) matchAt(s *record.Stream, at int) (int, any, bool) { return f(s, at) }

// Is matches a single command whose concrete type is exactly T.
func Is[T record.Command]() Matcher {
	return matcherFunc(func(s *record.Stream, at int) (int, any, bool) {
		if at >= s.Count() {
			return 0, nil, false
		}
		c, ok := s.At(at).(T)
		if !ok {
			return 0, nil, false
		}
		return 1, c, true
	})
}

// IsDraw matches any single paint-carrying draw command.
func IsDraw() Matcher {
	return matcherFunc(func(s *record.Stream, at int) (int, any, bool) {
		if at >= s.Count() {
			return 0, nil, false
		}
		c := s.At(at)
		if !record.IsDraw(c) {
			return 0, nil, false
		}
		return 1, c, true
	})
}

// Or matches a single command against each alternative in turn, returning
// the first that matches. Alternatives must themselves be single-record
// matchers.
func Or(alts ...Matcher) Matcher {
	return matcherFunc(func(s *record.Stream, at int) (int, any, bool) {
		for _, alt := range alts {
			if length, capture, ok := alt.matchAt(s, at); ok {
				return length, capture, true
			}
		}
		return 0, nil, false
	})
}

// Not matches a single command that does NOT match x. x must itself be a
// single-record matcher; Not always consumes exactly one record when one
// is available.
func Not(x Matcher) Matcher {
	return matcherFunc(func(s *record.Stream, at int) (int, any, bool) {
		if at >= s.Count() {
			return 0, nil, false
		}
		if _, _, ok := x.matchAt(s, at); ok {
			return 0, nil, false
		}
		return 1, s.At(at), true
	})
}

// Greedy matches zero or more consecutive records each matching x,
// maximally. It always succeeds (a zero-length match is valid); the
// captured value is the slice of matched commands, in order.
func Greedy(x Matcher) Matcher {
	return matcherFunc(func(s *record.Stream, at int) (int, any, bool) {
		matched := make([]record.Command, 0)
		i := at
		for i < s.Count() {
			length, capture, ok := x.matchAt(s, i)
			if !ok || length != 1 {
				break
			}
			matched = append(matched, capture.(record.Command))
			i++
		}
		return i - at, matched, true
	})
}

// Seq concatenates matchers: the overall span is the concatenation of
// sub-spans, each starting where the previous left off. The capture is a
// []any holding each sub-matcher's capture, in the order given.
func Seq(parts ...Matcher) Matcher {
	return matcherFunc(func(s *record.Stream, at int) (int, any, bool) {
		total := 0
		captures := make([]any, len(parts))
		for i, part := range parts {
			length, capture, ok := part.matchAt(s, at+total)
			if !ok {
				return 0, nil, false
			}
			captures[i] = capture
			total += length
		}
		return total, captures, true
	})
}
