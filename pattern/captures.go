package pattern

import "github.com/recopt/recopt/record"

// Captures gives positional, typed access to what a successful match
// recorded. Positions correspond to the Matcher's slots in the order they
// were given to Seq (or, for a bare single-record pattern with no Seq
// wrapper, position 0).
type Captures struct {
	items []any
}

// At narrows the capture at position i to T. It panics if the slot was not
// a single-record capture of that concrete type — e.g. calling At on a
// Greedy slot.
func At[T record.Command](c Captures, i int) T {
	return c.items[i].(T)
}

// Slice returns the []record.Command captured by a Greedy slot at
// position i.
func Slice(c Captures, i int) []record.Command {
	return c.items[i].([]record.Command)
}

func toItems(capture any) []any {
	if items, ok := capture.([]any); ok {
		return items
	}
	return []any{capture}
}
