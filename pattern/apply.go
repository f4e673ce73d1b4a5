package pattern

import "github.com/recopt/recopt/record"

// Pass pairs a Matcher with the rewrite to run on each match. OnMatch
// reports whether it actually changed the stream; Apply uses that bit to
// tell callers (and fixpoint loops) whether anything happened.
type Pass interface {
	Pattern() Matcher
	OnMatch(s *record.Stream, caps Captures, begin, end int) bool
}

// PassFunc adapts a pattern and a rewrite function into a Pass.
type PassFunc struct {
	Match   Matcher
	Rewrite func(s *record.Stream, caps Captures, begin, end int) bool
}

func (p PassFunc) Pattern() Matcher { return p.Match }
func (p PassFunc) OnMatch(s *record.Stream, caps Captures, begin, end int) bool {
	return p.Rewrite(s, caps, begin, end)
}

// Search scans s starting at cursor for the next position where m
// matches, returning [begin, end) and the resulting Captures. It does not
// mutate s.
func Search(m Matcher, s *record.Stream, cursor int) (begin, end int, caps Captures, ok bool) {
	for at := cursor; at <= s.Count(); at++ {
		length, capture, matched := m.matchAt(s, at)
		if matched {
			return at, at + length, Captures{items: toItems(capture)}, true
		}
	}
	return 0, 0, Captures{}, false
}

// Apply runs pass once over the whole stream: it repeatedly searches from
// the current cursor, invokes OnMatch on every match, and resumes the next
// search at end (not begin+1) — per the pattern contract, a rewrite must
// not create a new overlapping match with the region it just rewrote.
// Apply returns true if any invocation of OnMatch reported a change.
func Apply(pass Pass, s *record.Stream) bool {
	changed := false
	cursor := 0
	for {
		begin, end, caps, ok := Search(pass.Pattern(), s, cursor)
		if !ok {
			break
		}
		if pass.OnMatch(s, caps, begin, end) {
			changed = true
		}
		if end <= cursor {
			cursor++
		} else {
			cursor = end
		}
		if cursor > s.Count() {
			break
		}
	}
	return changed
}

// ApplyToFixpoint runs pass repeatedly until a full pass over the stream
// makes no further change.
func ApplyToFixpoint(pass Pass, s *record.Stream) {
	for Apply(pass, s) {
	}
}
