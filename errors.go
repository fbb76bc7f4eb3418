package rewind

import "errors"

// Common errors for history operations.
var (
	// ErrNothingToUndo is returned by Undo when the position is at the
	// start of the history.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo when the position is at the
	// end of the history.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Construction errors. These signal a malformed forward/reverse pair and are
// distinct from an error returned by the forward phase itself. No action is
// recorded when one of them is returned.
var (
	// ErrPhaseMissing is returned when a factory is built without both a
	// forward and a reverse phase.
	ErrPhaseMissing = errors.New("forward and reverse must both be defined")

	// ErrNoText is returned when a forward phase completes without
	// calling SetText.
	ErrNoText = errors.New("forward phase set no text")

	// ErrTextRedefined is returned when a forward phase calls SetText
	// more than once.
	ErrTextRedefined = errors.New("forward phase set text more than once")
)
