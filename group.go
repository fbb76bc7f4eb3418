package rewind

// Group is a composite Action bundling an ordered list of children as one
// undo/redo unit. Reverse applies the children's reverses in strict reverse
// insertion order; Perform applies their forwards in insertion order.
type Group struct {
	text     string
	children []Action
}

// NewGroup creates an empty group with the given description.
func NewGroup(text string) *Group {
	return &Group{text: text}
}

// Perform re-applies all children in forward order.
func (g *Group) Perform() error {
	for _, child := range g.children {
		if err := child.Perform(); err != nil {
			return err
		}
	}
	return nil
}

// Reverse undoes all children in reverse order.
func (g *Group) Reverse() error {
	for i := len(g.children) - 1; i >= 0; i-- {
		if err := g.children[i].Reverse(); err != nil {
			return err
		}
	}
	return nil
}

// Text returns the group's description.
func (g *Group) Text() string {
	return g.text
}

// Add appends a child action.
func (g *Group) Add(a Action) {
	g.children = append(g.children, a)
}

// Len returns the number of children.
func (g *Group) Len() int {
	return len(g.children)
}

// IsEmpty reports whether the group has no children.
func (g *Group) IsEmpty() bool {
	return len(g.children) == 0
}

// GroupScope is a guard over an open group. While the scope is open, every
// action recorded at top level lands in the group's children instead of the
// stack's history. Scopes nest; an inner group closes into its enclosing
// group rather than onto the stack.
//
// Usage:
//
//	g := stk.OpenGroup("Add many")
//	defer g.Close()
//	// ... several factory calls ...
//
// Close under defer runs on normal and abnormal exit alike, so the grouping
// bookkeeping is never left open.
type GroupScope struct {
	stack  *Stack
	group  *Group
	active bool
}

// OpenGroup opens a new group and makes it the active aggregation target.
func (s *Stack) OpenGroup(text string) *GroupScope {
	g := NewGroup(text)
	s.groups = append(s.groups, g)
	return &GroupScope{stack: s, group: g, active: true}
}

// Close closes the scope. If the group collected at least one child it is
// recorded as a single entry (on the enclosing group if one is open,
// otherwise on the stack); an empty group is dropped. Safe to call multiple
// times; only the first call has effect.
func (g *GroupScope) Close() {
	if !g.active {
		return
	}
	g.active = false
	g.stack.closeGroup(g.group, false)
}

// Cancel closes the scope without recording the group. Effects of children
// already executed remain applied; they simply become non-undoable.
func (g *GroupScope) Cancel() {
	if !g.active {
		return
	}
	g.active = false
	g.stack.closeGroup(g.group, true)
}

// Grouped runs fn inside a group scope and closes it afterwards, recording
// whatever children were collected even if fn fails.
func (s *Stack) Grouped(text string, fn func() error) error {
	g := s.OpenGroup(text)
	defer g.Close()
	return fn()
}
