package rewind

// current is the package default stack. It exists for callers that want the
// original's ambient convenience; everything also works with explicitly
// owned Stack instances.
var current = New()

// Current returns the default stack.
func Current() *Stack {
	return current
}

// SetCurrent replaces the default stack and returns the previous one, so
// tests can isolate themselves:
//
//	prev := rewind.SetCurrent(rewind.New())
//	defer rewind.SetCurrent(prev)
func SetCurrent(s *Stack) *Stack {
	prev := current
	current = s
	return prev
}
