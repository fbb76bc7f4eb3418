package rewind

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// entry wraps a recorded action with metadata.
type entry struct {
	action Action
	id     uuid.UUID
	at     time.Time
}

// ActionInfo provides read-only info about a recorded action, for
// presenting undo/redo history to users.
type ActionInfo struct {
	ID   uuid.UUID // Stable identity of the history entry
	Text string    // Human-readable description
	At   time.Time // When the entry was recorded
}

// Stack is an ordered history of actions with a position pointer separating
// done entries from the redo tail.
//
// A Stack is not safe for concurrent use; see the package documentation.
type Stack struct {
	history  []*entry
	position int

	// depth counts nested forward/reverse executions. Only the outermost
	// adapter call (depth transitioning 0 to 1) records an action.
	depth int

	// groups is the chain of open group scopes, innermost last.
	groups []*Group

	// savepoint is a recorded position, -1 when unset.
	savepoint int

	// limit bounds the history length, 0 meaning unbounded.
	limit int
}

// New creates an empty, unbounded stack.
func New() *Stack {
	return &Stack{savepoint: -1}
}

// Append records a manually-constructed action, honoring the nesting rule:
// inside another action's forward or reverse phase the call is a no-op (the
// enclosing action absorbs it), and while a group scope is open the action
// joins the group instead of the top-level history.
func (s *Stack) Append(a Action) {
	if s.depth > 0 {
		return
	}
	s.record(a)
}

// Undo reverses the last done action and moves the position back.
// Returns ErrNothingToUndo when the position is at the start. If the
// action's Reverse fails the stack is cleared and the error propagates:
// a failed reverse means the history is no longer trustworthy.
func (s *Stack) Undo() error {
	if s.position == 0 {
		return ErrNothingToUndo
	}
	e := s.history[s.position-1]

	// Raise the depth so factories invoked by the reverse phase are
	// absorbed instead of recorded.
	err := func() error {
		s.enter()
		defer s.leave()
		return e.action.Reverse()
	}()
	if err != nil {
		s.Clear()
		return err
	}

	s.position--
	return nil
}

// Redo re-performs the next undone action and moves the position forward.
// Returns ErrNothingToRedo when the redo tail is empty. Failure clears the
// stack, as with Undo.
func (s *Stack) Redo() error {
	if s.position == len(s.history) {
		return ErrNothingToRedo
	}
	e := s.history[s.position]

	err := func() error {
		s.enter()
		defer s.leave()
		return e.action.Perform()
	}()
	if err != nil {
		s.Clear()
		return err
	}

	s.position++
	return nil
}

// CanUndo reports whether Undo would succeed.
func (s *Stack) CanUndo() bool {
	return s.position > 0
}

// CanRedo reports whether Redo would succeed.
func (s *Stack) CanRedo() bool {
	return s.position < len(s.history)
}

// UndoCount returns the number of done entries.
func (s *Stack) UndoCount() int {
	return s.position
}

// RedoCount returns the length of the redo tail.
func (s *Stack) RedoCount() int {
	return len(s.history) - s.position
}

// UndoText returns "Undo <text>" for the next undoable entry, or "" when
// there is nothing to undo.
func (s *Stack) UndoText() string {
	if s.position == 0 {
		return ""
	}
	return strings.TrimSpace("Undo " + s.history[s.position-1].action.Text())
}

// RedoText returns "Redo <text>" for the next redoable entry, or "" when
// there is nothing to redo.
func (s *Stack) RedoText() string {
	if s.position == len(s.history) {
		return ""
	}
	return strings.TrimSpace("Redo " + s.history[s.position].action.Text())
}

// Savepoint records the current position. HasChanged reports false until
// the position moves away from it.
func (s *Stack) Savepoint() {
	s.savepoint = s.position
}

// HasChanged reports whether the position differs from the last savepoint.
// It is true when no savepoint was ever recorded.
func (s *Stack) HasChanged() bool {
	return s.savepoint < 0 || s.savepoint != s.position
}

// Clear resets the stack: history emptied, position and nesting reset,
// savepoint and open groups discarded.
func (s *Stack) Clear() {
	s.history = nil
	s.position = 0
	s.depth = 0
	s.groups = nil
	s.savepoint = -1
}

// SetLimit bounds the history length, dropping oldest entries when
// exceeded. A limit of 0 (the default) means unbounded.
func (s *Stack) SetLimit(n int) {
	if n < 0 {
		n = 0
	}
	s.limit = n
	s.trim()
}

// Limit returns the current history bound, 0 meaning unbounded.
func (s *Stack) Limit() int {
	return s.limit
}

// Grouping reports whether a group scope is currently open.
func (s *Stack) Grouping() bool {
	return len(s.groups) > 0
}

// UndoInfo returns info about the done entries, oldest first.
func (s *Stack) UndoInfo() []ActionInfo {
	return infoSlice(s.history[:s.position])
}

// RedoInfo returns info about the redo tail in the order Redo would
// replay it.
func (s *Stack) RedoInfo() []ActionInfo {
	return infoSlice(s.history[s.position:])
}

// PeekUndo returns info about the next undoable entry without undoing it.
func (s *Stack) PeekUndo() (ActionInfo, bool) {
	if s.position == 0 {
		return ActionInfo{}, false
	}
	return infoOf(s.history[s.position-1]), true
}

// PeekRedo returns info about the next redoable entry without redoing it.
func (s *Stack) PeekRedo() (ActionInfo, bool) {
	if s.position == len(s.history) {
		return ActionInfo{}, false
	}
	return infoOf(s.history[s.position]), true
}

// enter raises the nesting depth around a forward or reverse execution.
func (s *Stack) enter() {
	s.depth++
}

// leave lowers the nesting depth; always paired with enter via defer so a
// failing phase cannot leave the counter raised.
func (s *Stack) leave() {
	if s.depth > 0 {
		s.depth--
	}
}

// topLevel reports whether the currently executing forward phase is the
// outermost one.
func (s *Stack) topLevel() bool {
	return s.depth == 1
}

// record routes a new action to the innermost open group, or pushes it as a
// top-level history entry.
func (s *Stack) record(a Action) {
	if n := len(s.groups); n > 0 {
		s.groups[n-1].Add(a)
		return
	}
	s.push(a)
}

// push truncates the redo tail and appends a new entry. The stale branch of
// the timeline becomes unreachable; a savepoint inside it is invalidated.
func (s *Stack) push(a Action) {
	if s.position < len(s.history) {
		s.history = s.history[:s.position]
		if s.savepoint > s.position {
			s.savepoint = -1
		}
	}
	s.history = append(s.history, &entry{
		action: a,
		id:     uuid.New(),
		at:     time.Now(),
	})
	s.position = len(s.history)
	s.trim()
}

// closeGroup pops scopes down to and including g. Scopes opened inside g
// that were never closed are folded into their parent on the way, keeping
// the bookkeeping deterministic even when an inner Close was skipped.
// A non-empty group records as a single action; discard drops g instead.
func (s *Stack) closeGroup(g *Group, discard bool) {
	for i := len(s.groups) - 1; i >= 0; i-- {
		open := s.groups[i]
		s.groups = s.groups[:i]
		if open == g {
			if !discard && !open.IsEmpty() {
				s.record(open)
			}
			return
		}
		if !open.IsEmpty() {
			s.record(open)
		}
	}
}

// trim enforces the history bound, adjusting position and savepoint.
func (s *Stack) trim() {
	if s.limit <= 0 || len(s.history) <= s.limit {
		return
	}
	excess := len(s.history) - s.limit
	s.history = s.history[excess:]
	s.position -= excess
	if s.position < 0 {
		s.position = 0
	}
	if s.savepoint >= 0 {
		s.savepoint -= excess
		if s.savepoint < 0 {
			// The saved position was trimmed away and can never be
			// reached again.
			s.savepoint = -1
		}
	}
}

func infoSlice(entries []*entry) []ActionInfo {
	result := make([]ActionInfo, len(entries))
	for i, e := range entries {
		result[i] = infoOf(e)
	}
	return result
}

func infoOf(e *entry) ActionInfo {
	return ActionInfo{
		ID:   e.id,
		Text: e.action.Text(),
		At:   e.at,
	}
}
