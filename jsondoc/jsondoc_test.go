package jsondoc

import (
	"errors"
	"testing"

	"github.com/dshills/rewind"
)

func mustNew(t *testing.T, stk *rewind.Stack, raw string) *Document {
	t.Helper()
	doc, err := New(stk, raw)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return doc
}

func TestNewValidatesDocument(t *testing.T) {
	stk := rewind.New()

	if _, err := New(stk, `{"a": 1`); !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("New() = %v, want ErrInvalidJSON", err)
	}

	doc := mustNew(t, stk, "")
	if doc.Raw() != "{}" {
		t.Errorf("Raw() = %q, want empty object", doc.Raw())
	}
}

func TestSetUndoRedo(t *testing.T) {
	stk := rewind.New()
	doc := mustNew(t, stk, `{"user":{"name":"ada"}}`)

	if err := doc.Set("user.name", "grace"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := doc.Get("user.name").String(); got != "grace" {
		t.Errorf("name = %q, want grace", got)
	}
	if got := stk.UndoText(); got != "Undo Set user.name" {
		t.Errorf("UndoText() = %q, want %q", got, "Undo Set user.name")
	}

	if err := stk.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := doc.Get("user.name").String(); got != "ada" {
		t.Errorf("name = %q after undo, want ada", got)
	}

	if err := stk.Redo(); err != nil {
		t.Fatalf("Redo failed: %v", err)
	}
	if got := doc.Get("user.name").String(); got != "grace" {
		t.Errorf("name = %q after redo, want grace", got)
	}
}

func TestSetNewPathUndoRemovesIt(t *testing.T) {
	stk := rewind.New()
	doc := mustNew(t, stk, `{}`)

	if err := doc.Set("user.age", 36); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got := doc.Get("user.age").Int(); got != 36 {
		t.Errorf("age = %d, want 36", got)
	}

	if err := stk.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if doc.Get("user.age").Exists() {
		t.Error("path should not exist after undoing its creation")
	}
}

func TestDeleteUndoRestoresValue(t *testing.T) {
	stk := rewind.New()
	doc := mustNew(t, stk, `{"user":{"name":"ada","langs":["asm"]}}`)

	if err := doc.Delete("user.langs"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if doc.Get("user.langs").Exists() {
		t.Error("path should be gone after Delete")
	}
	if got := stk.UndoText(); got != "Undo Delete user.langs" {
		t.Errorf("UndoText() = %q, want %q", got, "Undo Delete user.langs")
	}

	if err := stk.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if got := doc.Get("user.langs.0").String(); got != "asm" {
		t.Errorf("langs[0] = %q after undo, want asm", got)
	}
}

func TestDeleteMissingPath(t *testing.T) {
	stk := rewind.New()
	doc := mustNew(t, stk, `{"a":1}`)

	if err := doc.Delete("b"); !errors.Is(err, ErrPathMissing) {
		t.Errorf("Delete() = %v, want ErrPathMissing", err)
	}
	if stk.UndoCount() != 0 {
		t.Errorf("UndoCount() = %d, want 0", stk.UndoCount())
	}
}

func TestGroupedEdits(t *testing.T) {
	stk := rewind.New()
	doc := mustNew(t, stk, `{}`)

	err := stk.Grouped("Create user", func() error {
		if err := doc.Set("user.name", "ada"); err != nil {
			return err
		}
		return doc.Set("user.age", 36)
	})
	if err != nil {
		t.Fatalf("Grouped failed: %v", err)
	}

	if stk.UndoCount() != 1 {
		t.Fatalf("UndoCount() = %d, want 1", stk.UndoCount())
	}
	if err := stk.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if doc.Get("user.name").Exists() || doc.Get("user.age").Exists() {
		t.Errorf("doc = %s after undo, want both fields gone", doc.Raw())
	}
}

func TestSavepointOverEdits(t *testing.T) {
	stk := rewind.New()
	doc := mustNew(t, stk, `{"n":1}`)

	if err := doc.Set("n", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	stk.Savepoint()
	if stk.HasChanged() {
		t.Error("HasChanged() should be false at the savepoint")
	}

	if err := doc.Set("n", 3); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if !stk.HasChanged() {
		t.Error("HasChanged() should be true after another edit")
	}

	if err := stk.Undo(); err != nil {
		t.Fatalf("Undo failed: %v", err)
	}
	if stk.HasChanged() {
		t.Error("HasChanged() should be false back at the savepoint")
	}
	if got := doc.Get("n").Int(); got != 2 {
		t.Errorf("n = %d, want 2", got)
	}
}
