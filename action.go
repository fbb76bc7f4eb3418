package rewind

import "fmt"

// Action represents a reversible unit of work.
//
// An Action takes no arguments at invocation time; everything Perform and
// Reverse need must be captured when the action is built. Perform is used
// only by redo: it must reproduce the forward effect given the state left
// behind by the previous Reverse.
type Action interface {
	// Perform applies (or re-applies) the forward effect.
	Perform() error

	// Reverse undoes exactly the effect of the last Perform.
	Reverse() error

	// Text returns a human-readable description of the action.
	Text() string
}

// Call carries per-invocation state between the forward and reverse phases
// of an adapter-built action.
type Call struct {
	// Args holds the arguments the factory was invoked with.
	Args []any

	// State holds values the forward phase stores for the reverse phase.
	// The forward phase writes it; the reverse phase should only read it.
	State map[string]any

	text     string
	textSets int
	result   any
}

// SetText records the action's description. The forward phase must call it
// exactly once per execution; the text may embed values known only at run
// time.
func (c *Call) SetText(format string, args ...any) {
	c.textSets++
	c.text = fmt.Sprintf(format, args...)
}

// Return sets the value handed back to the factory's caller. Optional;
// the zero value is nil.
func (c *Call) Return(v any) {
	c.result = v
}
