// Package script exposes a rewind stack to Lua code.
//
// The module installs a global `undo` table into a Lua state. Lua code
// defines reversible actions as forward/reverse function pairs; the forward
// function returns the action's text (and optionally a result value):
//
//	undo.apply(
//	    function() table.insert(items, v); return "Add " .. v end,
//	    function() table.remove(items) end)
//
//	undo.group("Add many", function()
//	    for _, v in ipairs(batch) do add(v) end
//	end)
//
// Stack semantics are identical to the Go surface: the forward function runs
// immediately, nested applies are absorbed by the outermost one, and a
// failed undo or redo clears the stack.
//
// gopher-lua's LState is not goroutine-safe; use the module from the single
// goroutine that owns both the state and the stack.
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/rewind"
)

// Module binds a stack into a Lua state under the global `undo` table.
type Module struct {
	stack *rewind.Stack
}

// NewModule creates a module over the given stack.
func NewModule(stack *rewind.Stack) *Module {
	return &Module{stack: stack}
}

// Stack returns the bound stack.
func (m *Module) Stack() *rewind.Stack {
	return m.stack
}

// NewState creates a Lua state with only safe standard libraries opened.
func NewState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	// Base plus the side-effect-free libraries. io, os, debug and package
	// stay closed.
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	return L
}

// Register installs the undo table into the Lua state.
func (m *Module) Register(L *lua.LState) error {
	mod := L.NewTable()

	L.SetField(mod, "apply", L.NewFunction(m.apply))
	L.SetField(mod, "group", L.NewFunction(m.group))
	L.SetField(mod, "undo", L.NewFunction(m.undo))
	L.SetField(mod, "redo", L.NewFunction(m.redo))
	L.SetField(mod, "canundo", L.NewFunction(m.canUndo))
	L.SetField(mod, "canredo", L.NewFunction(m.canRedo))
	L.SetField(mod, "undotext", L.NewFunction(m.undoText))
	L.SetField(mod, "redotext", L.NewFunction(m.redoText))
	L.SetField(mod, "undocount", L.NewFunction(m.undoCount))
	L.SetField(mod, "redocount", L.NewFunction(m.redoCount))
	L.SetField(mod, "savepoint", L.NewFunction(m.savepoint))
	L.SetField(mod, "haschanged", L.NewFunction(m.hasChanged))
	L.SetField(mod, "clear", L.NewFunction(m.clear))

	L.SetGlobal("undo", mod)
	return nil
}

// apply(forward, reverse) -> any
// Runs forward now and records the pair as an action. forward must return
// the action text as its first value; a second value, if any, becomes
// apply's return value.
func (m *Module) apply(L *lua.LState) int {
	forward := L.CheckFunction(1)
	reverse := L.CheckFunction(2)

	factory := m.stack.Undoable(
		func(c *rewind.Call) error {
			L.Push(forward)
			if err := L.PCall(0, 2, nil); err != nil {
				return err
			}
			result := L.Get(-1)
			text := L.Get(-2)
			L.Pop(2)

			if s, ok := text.(lua.LString); ok {
				c.SetText("%s", string(s))
			}
			if result != lua.LNil {
				c.Return(result)
			}
			return nil
		},
		func(c *rewind.Call) error {
			L.Push(reverse)
			return L.PCall(0, 0, nil)
		})

	result, err := factory()
	if err != nil {
		L.RaiseError("apply: %v", err)
		return 0
	}
	if lv, ok := result.(lua.LValue); ok {
		L.Push(lv)
		return 1
	}
	return 0
}

// group(text, fn)
// Runs fn inside a group scope. Children collected before a failure are
// still flushed as one partial entry.
func (m *Module) group(L *lua.LState) int {
	text := L.CheckString(1)
	fn := L.CheckFunction(2)

	g := m.stack.OpenGroup(text)
	defer g.Close()

	L.Push(fn)
	if err := L.PCall(0, 0, nil); err != nil {
		L.RaiseError("group %q: %v", text, err)
	}
	return 0
}

// undo()
// Reverses the last done action. Raises when there is nothing to undo or
// the reverse fails (which clears the stack).
func (m *Module) undo(L *lua.LState) int {
	if err := m.stack.Undo(); err != nil {
		L.RaiseError("undo: %v", err)
	}
	return 0
}

// redo()
func (m *Module) redo(L *lua.LState) int {
	if err := m.stack.Redo(); err != nil {
		L.RaiseError("redo: %v", err)
	}
	return 0
}

// canundo() -> bool
func (m *Module) canUndo(L *lua.LState) int {
	L.Push(lua.LBool(m.stack.CanUndo()))
	return 1
}

// canredo() -> bool
func (m *Module) canRedo(L *lua.LState) int {
	L.Push(lua.LBool(m.stack.CanRedo()))
	return 1
}

// undotext() -> string
func (m *Module) undoText(L *lua.LState) int {
	L.Push(lua.LString(m.stack.UndoText()))
	return 1
}

// redotext() -> string
func (m *Module) redoText(L *lua.LState) int {
	L.Push(lua.LString(m.stack.RedoText()))
	return 1
}

// undocount() -> number
func (m *Module) undoCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.stack.UndoCount()))
	return 1
}

// redocount() -> number
func (m *Module) redoCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.stack.RedoCount()))
	return 1
}

// savepoint()
func (m *Module) savepoint(L *lua.LState) int {
	m.stack.Savepoint()
	return 0
}

// haschanged() -> bool
func (m *Module) hasChanged(L *lua.LState) int {
	L.Push(lua.LBool(m.stack.HasChanged()))
	return 1
}

// clear()
func (m *Module) clear(L *lua.LState) int {
	m.stack.Clear()
	return 0
}
