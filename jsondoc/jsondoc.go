// Package jsondoc provides reversible path-based editing of a JSON
// document on a rewind stack.
//
// Every mutation captures the prior value at the path so its reverse can
// restore it exactly. Edits participate in grouping, nesting and savepoints
// like any other action on the stack.
package jsondoc

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/dshills/rewind"
)

// ErrPathMissing is returned by Delete when there is no value at the path.
var ErrPathMissing = errors.New("no value at path")

// ErrInvalidJSON is returned by New when the initial document does not
// parse.
var ErrInvalidJSON = errors.New("invalid json document")

// Document is a JSON document whose edits are recorded on a stack.
type Document struct {
	stack *rewind.Stack
	raw   string
}

// New creates a document over the given JSON text. An empty string is
// treated as an empty object.
func New(stack *rewind.Stack, raw string) (*Document, error) {
	if raw == "" {
		raw = "{}"
	}
	if !gjson.Valid(raw) {
		return nil, ErrInvalidJSON
	}
	return &Document{stack: stack, raw: raw}, nil
}

// Raw returns the current JSON text.
func (d *Document) Raw() string {
	return d.raw
}

// Get returns the value at the path.
func (d *Document) Get(path string) gjson.Result {
	return gjson.Get(d.raw, path)
}

// Stack returns the stack the document records on.
func (d *Document) Stack() *rewind.Stack {
	return d.stack
}

// Set assigns a value at the path, creating intermediate objects as needed.
// The reverse restores the prior value, or deletes the path if it did not
// exist before.
func (d *Document) Set(path string, value any) error {
	prev := gjson.Get(d.raw, path)
	existed := prev.Exists()
	prevRaw := prev.Raw

	_, err := d.stack.Undoable(
		func(c *rewind.Call) error {
			next, err := sjson.Set(d.raw, path, value)
			if err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
			d.raw = next
			c.SetText("Set %s", path)
			return nil
		},
		func(c *rewind.Call) error {
			var next string
			var err error
			if existed {
				next, err = sjson.SetRaw(d.raw, path, prevRaw)
			} else {
				next, err = sjson.Delete(d.raw, path)
			}
			if err != nil {
				return fmt.Errorf("unset %s: %w", path, err)
			}
			d.raw = next
			return nil
		})()
	return err
}

// Delete removes the value at the path. The reverse restores it.
// Returns ErrPathMissing if the path has no value; nothing is recorded.
func (d *Document) Delete(path string) error {
	prev := gjson.Get(d.raw, path)
	if !prev.Exists() {
		return fmt.Errorf("%w: %s", ErrPathMissing, path)
	}
	prevRaw := prev.Raw

	_, err := d.stack.Undoable(
		func(c *rewind.Call) error {
			next, err := sjson.Delete(d.raw, path)
			if err != nil {
				return fmt.Errorf("delete %s: %w", path, err)
			}
			d.raw = next
			c.SetText("Delete %s", path)
			return nil
		},
		func(c *rewind.Call) error {
			next, err := sjson.SetRaw(d.raw, path, prevRaw)
			if err != nil {
				return fmt.Errorf("restore %s: %w", path, err)
			}
			d.raw = next
			return nil
		})()
	return err
}
