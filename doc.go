// Package rewind provides an undo/redo history stack for reversible actions.
//
// Arbitrary operations register themselves on a shared history so the host
// application gets undo/redo without hand-writing inverse bookkeeping at
// every call site. Key concepts:
//
// # Actions
//
// An Action is a reversible unit of work exposing Perform, Reverse and Text.
// Most actions are built through the adapter rather than implemented by hand:
//
//	add := rewind.Undoable(
//	    func(c *rewind.Call) error {
//	        seq = append(seq, c.Args[0].(int))
//	        c.SetText("Add '%v'", c.Args[0])
//	        return nil
//	    },
//	    func(c *rewind.Call) error {
//	        seq = seq[:len(seq)-1]
//	        return nil
//	    })
//
//	add(5) // runs the forward phase now, records the action
//
// The forward phase executes immediately and synchronously when the factory
// is called. It must set the action's text exactly once. Values the reverse
// phase needs later travel through the Call's State map or through variables
// both closures capture.
//
// # Groups
//
// Several actions can be collapsed into one undo unit:
//
//	g := stk.OpenGroup("Add many")
//	defer g.Close()
//	for _, item := range items {
//	    add(item)
//	}
//
// Close is idempotent and safe under defer, so a panic or early return still
// flushes the collected children as a single (possibly partial) entry.
//
// # The stack
//
// A Stack keeps the ordered history with a position pointer separating done
// entries from the redo tail. Recording a new action while the redo tail is
// non-empty discards the tail. Actions whose forward phase runs inside
// another action's forward phase are absorbed by the outer action rather
// than recorded separately.
//
// If a stored action's Reverse or Perform fails during Undo/Redo the stack
// is cleared: a failed replay means the history can no longer be trusted.
//
// # Concurrency
//
// A Stack is not safe for concurrent use. Own it from a single goroutine,
// one stack per logical document or session, or serialize access externally.
package rewind
