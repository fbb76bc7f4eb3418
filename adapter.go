package rewind

// PhaseFunc is one half of a forward/reverse pair. The same Call is passed
// to both halves, and to every forward re-execution during redo.
type PhaseFunc func(c *Call) error

// Factory runs the forward phase with the given arguments, records the
// resulting action, and returns the value the forward phase set via
// Call.Return.
type Factory func(args ...any) (any, error)

// Undoable adapts a forward/reverse pair into a Factory bound to the
// default stack. The stack is resolved at call time, so SetCurrent
// affects factories built earlier.
func Undoable(forward, reverse PhaseFunc) Factory {
	return func(args ...any) (any, error) {
		return apply(Current(), forward, reverse, args)
	}
}

// Undoable adapts a forward/reverse pair into a Factory bound to this stack.
func (s *Stack) Undoable(forward, reverse PhaseFunc) Factory {
	return func(args ...any) (any, error) {
		return apply(s, forward, reverse, args)
	}
}

// apply executes the forward phase and, if this is a top-level call,
// records the action. A failed forward phase leaves the stack untouched;
// partial side effects it already performed are the caller's concern.
func apply(s *Stack, forward, reverse PhaseFunc, args []any) (any, error) {
	if forward == nil || reverse == nil {
		return nil, ErrPhaseMissing
	}

	call := &Call{
		Args:  args,
		State: make(map[string]any),
	}
	act := &funcAction{
		call:    call,
		forward: forward,
		reverse: reverse,
	}

	s.enter()
	defer s.leave()

	if err := act.runForward(); err != nil {
		return nil, err
	}

	// Only the outermost call records; nested calls are absorbed by the
	// enclosing action's own forward/reverse logic.
	if s.topLevel() {
		s.record(act)
	}

	return call.result, nil
}

// funcAction is an Action built from a forward/reverse pair.
type funcAction struct {
	call    *Call
	forward PhaseFunc
	reverse PhaseFunc
}

// runForward executes the entire forward phase and validates that it set
// the text exactly once.
func (a *funcAction) runForward() error {
	a.call.textSets = 0
	if err := a.forward(a.call); err != nil {
		return err
	}
	switch {
	case a.call.textSets == 0:
		return ErrNoText
	case a.call.textSets > 1:
		return ErrTextRedefined
	}
	return nil
}

// Perform re-executes the forward phase from scratch. Used by redo.
func (a *funcAction) Perform() error {
	return a.runForward()
}

// Reverse executes the reverse phase.
func (a *funcAction) Reverse() error {
	return a.reverse(a.call)
}

// Text returns the description captured by the most recent forward run.
func (a *funcAction) Text() string {
	return a.call.text
}
