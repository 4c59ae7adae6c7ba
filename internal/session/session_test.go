package session

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestNewSession(t *testing.T) {
	s := New("Reunión", "Resumen", []string{"Ana", "Luis"},
		[]Segment{{Speaker: "Ana", Text: "Hola"}},
		[]string{"a.mp3", "b.wav"})

	if s.ID == "" {
		t.Error("new session should have an id")
	}
	if s.CreatedAt.IsZero() {
		t.Error("new session should have a creation time")
	}
	if s.QAHistory == nil || len(s.QAHistory) != 0 {
		t.Error("new session should have an empty Q&A history")
	}
	if s.Notes == nil || len(s.Notes) != 0 {
		t.Error("new session should have an empty notes list")
	}
	if len(s.AudioFileNames) != 2 {
		t.Errorf("audioFileNames = %d, want 2", len(s.AudioFileNames))
	}
}

func TestCloneIsolation(t *testing.T) {
	s := New("T", "S", []string{"Ana"}, []Segment{{Speaker: "Ana", Text: "x"}}, nil)
	s, _ = s.WithNoteAdded("original")

	c := s.Clone()
	c.Notes[0].Content = "changed"
	c.Speakers[0] = "changed"
	c.Transcript[0].Text = "changed"

	if s.Notes[0].Content != "original" {
		t.Error("clone should not alias notes")
	}
	if s.Speakers[0] != "Ana" {
		t.Error("clone should not alias speakers")
	}
	if s.Transcript[0].Text != "x" {
		t.Error("clone should not alias transcript")
	}
}

func TestWithNoteAdded(t *testing.T) {
	s := New("T", "S", nil, nil, nil)

	updated, n := s.WithNoteAdded("primera nota")
	if n.ID == "" {
		t.Error("note should have an id")
	}
	if len(updated.Notes) != 1 {
		t.Fatalf("notes = %d, want 1", len(updated.Notes))
	}
	if len(s.Notes) != 0 {
		t.Error("original session should be unchanged")
	}

	updated, _ = updated.WithNoteAdded("segunda nota")
	if updated.Notes[0].Content != "primera nota" || updated.Notes[1].Content != "segunda nota" {
		t.Error("notes should append in order")
	}
}

func TestWithNoteEdited(t *testing.T) {
	s := New("T", "S", nil, nil, nil)
	s, first := s.WithNoteAdded("uno")
	s, _ = s.WithNoteAdded("dos")

	updated := s.WithNoteEdited(first.ID, "uno editado")
	if updated.Notes[0].ID != first.ID {
		t.Error("editing should keep the note id")
	}
	if updated.Notes[0].Content != "uno editado" {
		t.Errorf("content = %q", updated.Notes[0].Content)
	}
	if updated.Notes[1].Content != "dos" {
		t.Error("other notes should be untouched")
	}

	same := s.WithNoteEdited("missing", "x")
	if same.Notes[0].Content != "uno" {
		t.Error("editing an unknown id should change nothing")
	}
}

func TestWithNoteRemoved(t *testing.T) {
	s := New("T", "S", nil, nil, nil)
	s, a := s.WithNoteAdded("a")
	s, _ = s.WithNoteAdded("b")
	s, _ = s.WithNoteAdded("c")

	updated := s.WithNoteRemoved(a.ID)
	if len(updated.Notes) != 2 {
		t.Fatalf("notes = %d, want 2", len(updated.Notes))
	}
	if updated.Notes[0].Content != "b" || updated.Notes[1].Content != "c" {
		t.Error("remaining notes should keep their order")
	}

	same := updated.WithNoteRemoved("missing")
	if len(same.Notes) != 2 {
		t.Error("removing an unknown id should change nothing")
	}
}

func TestWithQA(t *testing.T) {
	s := New("T", "S", nil, nil, nil)

	updated, qa := s.WithQA("¿Qué se decidió?", "Nada.")
	if qa.ID == "" {
		t.Error("qa entry should have an id")
	}
	if len(updated.QAHistory) != 1 {
		t.Fatalf("qaHistory = %d, want 1", len(updated.QAHistory))
	}
	if len(s.QAHistory) != 0 {
		t.Error("original session should be unchanged")
	}

	updated, _ = updated.WithQA("¿Y luego?", "Tampoco.")
	if updated.QAHistory[0].Question != "¿Qué se decidió?" {
		t.Error("qa history should append in order")
	}
}

func TestFlatTranscript(t *testing.T) {
	s := New("T", "S", nil, []Segment{
		{Speaker: "Ana", Text: "Hola"},
		{Speaker: "Luis", Text: "Buenos días"},
	}, nil)

	got := s.FlatTranscript()
	want := "Ana: Hola\nLuis: Buenos días"
	if got != want {
		t.Errorf("flat transcript = %q, want %q", got, want)
	}
}

func TestSessionJSONShape(t *testing.T) {
	s := New("T", "S", []string{"Ana"}, []Segment{{Speaker: "Ana", Text: "x"}}, []string{"a.mp3"})
	s, _ = s.WithNoteAdded("nota")
	s, _ = s.WithQA("p", "r")

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{
		`"id"`, `"title"`, `"summary"`, `"speakers"`, `"transcript"`,
		`"createdAt"`, `"audioFileNames"`, `"qaHistory"`, `"notes"`,
		`"speaker"`, `"text"`, `"question"`, `"answer"`, `"content"`,
	} {
		if !strings.Contains(string(data), field) {
			t.Errorf("serialized session missing %s", field)
		}
	}
}
