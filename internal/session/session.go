// Package session defines the transcription session model and the repository
// that persists the session collection.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Segment is one diarized transcript line.
type Segment struct {
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

// Note is a user-authored annotation on a session.
type Note struct {
	ID      string `json:"id"`
	Content string `json:"content"`
}

// QA is one question/answer exchange about a session's transcript.
type QA struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Session is one transcription record plus its notes and Q&A history.
// Title, Summary, Speakers and Transcript come from the AI boundary verbatim;
// Speakers keeps the order first reported and Transcript keeps conversational
// order. The JSON shape matches the stored collection format.
type Session struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Summary        string    `json:"summary"`
	Speakers       []string  `json:"speakers"`
	Transcript     []Segment `json:"transcript"`
	CreatedAt      time.Time `json:"createdAt"`
	AudioFileNames []string  `json:"audioFileNames"`
	QAHistory      []QA      `json:"qaHistory"`
	Notes          []Note    `json:"notes"`
}

// New builds a session from an ingestion result. ID and CreatedAt are fixed
// here and never change afterwards.
func New(title, summary string, speakers []string, transcript []Segment, fileNames []string) Session {
	return Session{
		ID:             uuid.NewString(),
		Title:          title,
		Summary:        summary,
		Speakers:       append([]string(nil), speakers...),
		Transcript:     append([]Segment(nil), transcript...),
		CreatedAt:      time.Now().UTC(),
		AudioFileNames: append([]string(nil), fileNames...),
		QAHistory:      []QA{},
		Notes:          []Note{},
	}
}

// Clone returns a deep copy. Mutators operate on clones so a stored session
// is never aliased by callers.
func (s Session) Clone() Session {
	c := s
	c.Speakers = append([]string(nil), s.Speakers...)
	c.Transcript = append([]Segment(nil), s.Transcript...)
	c.AudioFileNames = append([]string(nil), s.AudioFileNames...)
	c.QAHistory = append([]QA(nil), s.QAHistory...)
	c.Notes = append([]Note(nil), s.Notes...)
	return c
}

// WithNoteAdded appends a new note and returns the updated copy along with
// the created note.
func (s Session) WithNoteAdded(content string) (Session, Note) {
	c := s.Clone()
	n := Note{ID: uuid.NewString(), Content: content}
	c.Notes = append(c.Notes, n)
	return c, n
}

// WithNoteEdited replaces the content of the note with the given id, keeping
// its id and position. Unknown ids leave the session unchanged.
func (s Session) WithNoteEdited(id, content string) Session {
	c := s.Clone()
	for i := range c.Notes {
		if c.Notes[i].ID == id {
			c.Notes[i].Content = content
			break
		}
	}
	return c
}

// WithNoteRemoved removes the note with the given id, preserving the order of
// the remaining notes.
func (s Session) WithNoteRemoved(id string) Session {
	c := s.Clone()
	notes := c.Notes[:0]
	for _, n := range c.Notes {
		if n.ID != id {
			notes = append(notes, n)
		}
	}
	c.Notes = notes
	return c
}

// WithQA appends a question/answer pair and returns the updated copy along
// with the created entry.
func (s Session) WithQA(question, answer string) (Session, QA) {
	c := s.Clone()
	qa := QA{ID: uuid.NewString(), Question: question, Answer: answer}
	c.QAHistory = append(c.QAHistory, qa)
	return c, qa
}

// FlatTranscript renders the transcript as "speaker: text" lines, the form
// the question-answering boundary expects.
func (s Session) FlatTranscript() string {
	var b []byte
	for i, seg := range s.Transcript {
		if i > 0 {
			b = append(b, '\n')
		}
		b = append(b, seg.Speaker...)
		b = append(b, ": "...)
		b = append(b, seg.Text...)
	}
	return string(b)
}
