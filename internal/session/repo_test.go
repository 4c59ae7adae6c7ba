package session

import (
	"testing"

	"github.com/tomasvidal/escriba/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	st, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func TestRepoEmptyOnFreshStore(t *testing.T) {
	r := NewRepo(newTestStore(t))
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0", r.Len())
	}
	if len(r.List()) != 0 {
		t.Error("list should be empty")
	}
}

func TestRepoCreateOrders(t *testing.T) {
	r := NewRepo(newTestStore(t))

	first := New("Primera", "", nil, nil, nil)
	second := New("Segunda", "", nil, nil, nil)
	r.Create(first)
	r.Create(second)

	list := r.List()
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[0].ID != second.ID {
		t.Error("most recently created session should come first")
	}
	if list[1].ID != first.ID {
		t.Error("older session should come last")
	}
}

func TestRepoPersistsAcrossReopen(t *testing.T) {
	st := newTestStore(t)

	r := NewRepo(st)
	s := New("Persistida", "resumen", []string{"Ana"},
		[]Segment{{Speaker: "Ana", Text: "hola"}}, []string{"a.mp3"})
	s, _ = s.WithNoteAdded("nota")
	r.Create(s)

	reloaded := NewRepo(st)
	got, ok := reloaded.Get(s.ID)
	if !ok {
		t.Fatal("session should survive a reload")
	}
	if got.Title != "Persistida" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Notes) != 1 || got.Notes[0].Content != "nota" {
		t.Error("notes should survive a reload")
	}
	if len(got.Transcript) != 1 {
		t.Error("transcript should survive a reload")
	}
}

func TestRepoCorruptSlotStartsEmpty(t *testing.T) {
	st := newTestStore(t)
	if err := st.Save(SlotKey, "{not json"); err != nil {
		t.Fatalf("save: %v", err)
	}

	r := NewRepo(st)
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0 for corrupt slot", r.Len())
	}

	// The repo must still be usable after recovering.
	r.Create(New("Nueva", "", nil, nil, nil))
	if NewRepo(st).Len() != 1 {
		t.Error("repo should persist after recovering from corruption")
	}
}

func TestRepoUpdateKeepsPosition(t *testing.T) {
	r := NewRepo(newTestStore(t))
	a := New("A", "", nil, nil, nil)
	b := New("B", "", nil, nil, nil)
	r.Create(a)
	r.Create(b)

	updated, _ := a.WithQA("p", "r")
	r.Update(updated)

	list := r.List()
	if list[1].ID != a.ID {
		t.Error("update should not move the session")
	}
	if len(list[1].QAHistory) != 1 {
		t.Error("update should replace the stored session")
	}
}

func TestRepoUpdateUnknownIsNoop(t *testing.T) {
	r := NewRepo(newTestStore(t))
	r.Create(New("A", "", nil, nil, nil))

	ghost := New("Fantasma", "", nil, nil, nil)
	r.Update(ghost)

	if r.Len() != 1 {
		t.Errorf("len = %d, want 1", r.Len())
	}
	if _, ok := r.Get(ghost.ID); ok {
		t.Error("updating an unknown id should not insert it")
	}
}

func TestRepoDeleteIdempotent(t *testing.T) {
	r := NewRepo(newTestStore(t))
	s := New("A", "", nil, nil, nil)
	r.Create(s)

	r.Delete(s.ID)
	if r.Len() != 0 {
		t.Errorf("len = %d, want 0", r.Len())
	}
	r.Delete(s.ID)
	if r.Len() != 0 {
		t.Error("deleting twice should be a no-op")
	}
}

func TestRepoListReturnsCopies(t *testing.T) {
	r := NewRepo(newTestStore(t))
	s := New("A", "", []string{"Ana"}, nil, nil)
	r.Create(s)

	list := r.List()
	list[0].Speakers[0] = "changed"
	list[0].Title = "changed"

	got, _ := r.Get(s.ID)
	if got.Speakers[0] != "Ana" || got.Title != "A" {
		t.Error("mutating a listed session should not affect the repo")
	}
}
