package app

import (
	"testing"

	"github.com/tomasvidal/escriba/internal/session"
)

func TestWrapText(t *testing.T) {
	lines := wrapText("una frase algo larga que no cabe", 12)
	if len(lines) < 2 {
		t.Fatalf("lines = %d, want wrapping", len(lines))
	}
	for _, l := range lines {
		if len(l) > 12 {
			t.Errorf("line %q exceeds width", l)
		}
	}

	if got := wrapText("", 10); len(got) != 1 || got[0] != "" {
		t.Errorf("empty text = %v", got)
	}

	// Paragraph breaks survive.
	lines = wrapText("uno\ndos", 20)
	if len(lines) != 2 || lines[0] != "uno" || lines[1] != "dos" {
		t.Errorf("paragraphs = %v", lines)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 6); got != "abc   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("abcdef", 3); got != "abcdef" {
		t.Errorf("padRight should not truncate, got %q", got)
	}
}

func TestTruncateToWidth(t *testing.T) {
	if got := truncateToWidth("corto", 10); got != "corto" {
		t.Errorf("truncate = %q", got)
	}
	got := truncateToWidth("una cadena bastante larga", 10)
	if len([]rune(got)) > 10 {
		t.Errorf("truncate = %q, exceeds width", got)
	}
}

func TestQAScrollLiveToggle(t *testing.T) {
	m := newTestModel(t)
	s := session.New("T", "", nil, []session.Segment{{Speaker: "Ana", Text: "hola"}}, nil)
	for i := 0; i < 30; i++ {
		s, _ = s.WithQA("¿pregunta?", "respuesta")
	}
	m.repo.Create(s)
	m.refreshSessions()
	m.openDetail(s.ID)
	m.height = 20

	if !m.qaLive {
		t.Fatal("detail should open following the latest exchange")
	}

	// Scrolling up leaves live mode.
	updated, _ := m.handleQAKey(keyMsg("up"))
	m = updated.(Model)
	if m.qaLive {
		t.Error("scrolling up should leave live mode")
	}

	// Scrolling back to the bottom re-enters it.
	for i := 0; i < len(m.qaLines())+5; i++ {
		updated, _ = m.handleQAKey(keyMsg("down"))
		m = updated.(Model)
	}
	if !m.qaLive {
		t.Error("reaching the bottom should re-enter live mode")
	}
}
