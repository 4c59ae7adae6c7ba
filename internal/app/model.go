// Package app implements the escriba terminal UI: an intake view for
// submitting audio files to the AI boundary and a detail view over the
// resulting transcription sessions.
package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomasvidal/escriba/internal/ai"
	"github.com/tomasvidal/escriba/internal/log"
	"github.com/tomasvidal/escriba/internal/session"
	"github.com/tomasvidal/escriba/internal/ui"
)

// analyzer is the external AI boundary as the controller sees it.
type analyzer interface {
	Analyze(ctx context.Context, files []ai.AudioFile) (*ai.Result, error)
	Ask(ctx context.Context, transcript, question string) string
}

// mode is the controller's top-level state: intake (no active session) or
// detail (exactly one active session).
type mode int

const (
	modeIntake mode = iota
	modeDetail
)

// tab selects a detail sub-view.
type tab int

const (
	tabTranscript tab = iota
	tabNotes
	tabQA
)

// intakeFocus tracks which intake panel has keyboard focus.
type intakeFocus int

const (
	focusPath intakeFocus = iota
	focusPending
	focusSessions
)

// pendingFile is one audio input queued for ingestion.
type pendingFile struct {
	path string
	name string
	mime string
}

// Model is the root bubbletea model.
type Model struct {
	repo *session.Repo
	ai   analyzer

	// Controller state
	mode     mode
	activeID string

	// Cached repository listing, most-recent-first
	sessions        []session.Session
	selectedSession int

	// Intake state
	pathInput       textinput.Model
	pending         []pendingFile
	selectedPending int
	intakeFocus     intakeFocus
	processing      bool

	// Detail state
	activeTab     tab
	contentScroll int
	noteArea      textarea.Model
	noteFocused   bool
	selectedNote  int
	editingNoteID string
	questionInput textinput.Model
	asking        bool
	qaScroll      int
	qaLive        bool

	// Shared UI state
	spin           spinner.Model
	width          int
	height         int
	errorMessage   string
	errorTransient bool
	statusText     string

	// Where exported reports are written
	exportDir string
}

// New creates the root model. initialFiles (from the command line) seed the
// pending set through the same bounded append as interactive picks.
func New(repo *session.Repo, client *ai.Client, initialFiles []string) Model {
	pathInput := textinput.New()
	pathInput.Placeholder = "Ruta de un archivo de audio..."
	pathInput.Focus()

	questionInput := textinput.New()
	questionInput.Placeholder = "Haz una pregunta sobre la transcripción..."

	noteArea := textarea.New()
	noteArea.Placeholder = "Añadir nueva nota..."
	noteArea.SetHeight(3)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = ui.SpinnerStyle

	m := Model{
		repo:          repo,
		ai:            client,
		pathInput:     pathInput,
		questionInput: questionInput,
		noteArea:      noteArea,
		spin:          sp,
		qaLive:        true,
		exportDir:     ".",
	}
	m.refreshSessions()

	for _, path := range initialFiles {
		m.addPendingPath(path)
	}
	m.errorMessage = ""
	m.errorTransient = false

	return m
}

// Init starts cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update processes messages and returns the updated model and any commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.pathInput.Width = max(20, m.intakePanelWidth()-6)
		m.questionInput.Width = max(20, m.width-8)
		m.noteArea.SetWidth(max(20, m.width-6))
		return m, nil

	case spinner.TickMsg:
		if m.processing || m.asking {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case ingestDoneMsg:
		// A completion for an attempt the UI no longer has in flight is stale.
		if !m.processing {
			return m, nil
		}
		m.processing = false
		m.repo.Create(msg.Session)
		m.refreshSessions()
		m.pending = nil
		m.selectedPending = 0
		m.pathInput.Reset()
		m.errorMessage = ""
		m.errorTransient = false
		m.openDetail(msg.Session.ID)
		return m, nil

	case ingestFailedMsg:
		if !m.processing {
			return m, nil
		}
		m.processing = false
		// Shown until the next ingestion attempt clears it.
		m.errorMessage = msg.Message
		m.errorTransient = false
		return m, nil

	case answerMsg:
		m.asking = false
		s, ok := m.repo.Get(msg.SessionID)
		if !ok {
			// Session deleted while the question was in flight.
			return m, nil
		}
		updated, _ := s.WithQA(msg.Question, msg.Answer)
		m.repo.Update(updated)
		m.refreshSessions()
		if m.mode == modeDetail && m.activeID == msg.SessionID {
			m.qaLive = true
		}
		return m, nil

	case exportDoneMsg:
		m.statusText = "Informe guardado: " + msg.Path
		return m, nil

	case exportFailedMsg:
		log.Error().Err(msg.Err).Msg("pdf export failed")
		return m, m.transientError("No se pudo exportar el PDF.")

	case clearTransientErrorMsg:
		if m.errorTransient {
			m.errorMessage = ""
			m.errorTransient = false
		}
		return m, nil
	}

	return m, nil
}

// handleKey dispatches key presses by mode.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == KeyQuit {
		return m, tea.Quit
	}
	if m.mode == modeIntake {
		return m.handleIntakeKey(msg)
	}
	return m.handleDetailKey(msg)
}

// --- Intake flow ---

func (m Model) handleIntakeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == KeyTab {
		m.cycleIntakeFocus()
		return m, nil
	}

	if m.intakeFocus == focusPath {
		switch key {
		case KeyEnter:
			path := strings.TrimSpace(m.pathInput.Value())
			if path == "" {
				return m.submitIngestion()
			}
			cmd := m.addPendingPath(path)
			m.pathInput.Reset()
			return m, cmd
		default:
			var cmd tea.Cmd
			m.pathInput, cmd = m.pathInput.Update(msg)
			return m, cmd
		}
	}

	switch key {
	case KeyJ, KeyDown:
		if m.intakeFocus == focusPending && m.selectedPending < len(m.pending)-1 {
			m.selectedPending++
		}
		if m.intakeFocus == focusSessions && m.selectedSession < len(m.sessions)-1 {
			m.selectedSession++
		}
	case KeyK, KeyUp:
		if m.intakeFocus == focusPending && m.selectedPending > 0 {
			m.selectedPending--
		}
		if m.intakeFocus == focusSessions && m.selectedSession > 0 {
			m.selectedSession--
		}
	case KeyDelete:
		if m.intakeFocus == focusPending {
			m.removePending(m.selectedPending)
		}
		if m.intakeFocus == focusSessions && m.selectedSession < len(m.sessions) {
			m.deleteSession(m.sessions[m.selectedSession].ID)
		}
	case KeyEnter:
		if m.intakeFocus == focusPending {
			return m.submitIngestion()
		}
		if m.intakeFocus == focusSessions && m.selectedSession < len(m.sessions) {
			m.selectSession(m.sessions[m.selectedSession].ID)
		}
	case KeyNew:
		m.newSession()
	}

	return m, nil
}

func (m *Model) cycleIntakeFocus() {
	switch m.intakeFocus {
	case focusPath:
		m.intakeFocus = focusPending
		m.pathInput.Blur()
	case focusPending:
		m.intakeFocus = focusSessions
	case focusSessions:
		m.intakeFocus = focusPath
		m.pathInput.Focus()
	}
}

// addPendingPath validates and appends one audio input, truncating the
// pending set at the maximum.
func (m *Model) addPendingPath(path string) tea.Cmd {
	if m.processing {
		return nil
	}
	mimeType, ok := audioMIME(path)
	if !ok {
		return m.transientError("El archivo no parece ser de audio: " + filepath.Base(path))
	}
	if _, err := os.Stat(path); err != nil {
		return m.transientError("No se encontró el archivo: " + path)
	}
	m.pending = append(m.pending, pendingFile{
		path: path,
		name: filepath.Base(path),
		mime: mimeType,
	})
	if len(m.pending) > ai.MaxAudioFiles {
		m.pending = m.pending[:ai.MaxAudioFiles]
	}
	return nil
}

func (m *Model) removePending(i int) {
	if m.processing || i < 0 || i >= len(m.pending) {
		return
	}
	m.pending = append(m.pending[:i], m.pending[i+1:]...)
	if m.selectedPending >= len(m.pending) {
		m.selectedPending = max(0, len(m.pending)-1)
	}
}

// submitIngestion starts one ingestion over the full pending set. Zero files
// or an ingestion already in flight is a no-op; a new attempt clears any
// error from the previous one.
func (m Model) submitIngestion() (tea.Model, tea.Cmd) {
	if m.processing || len(m.pending) == 0 {
		return m, nil
	}
	m.processing = true
	m.errorMessage = ""
	m.errorTransient = false
	m.statusText = ""
	return m, tea.Batch(m.spin.Tick, ingestCmd(m.ai, m.pending))
}

// --- Detail flow ---

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case KeyExport:
		return m.exportActive()
	case KeyDeleteSess:
		m.deleteSession(m.activeID)
		return m, nil
	case KeyTab:
		m.switchTab((m.activeTab + 1) % 3)
		return m, nil
	}

	switch m.activeTab {
	case tabTranscript:
		return m.handleTranscriptKey(key)
	case tabNotes:
		return m.handleNotesKey(msg)
	case tabQA:
		return m.handleQAKey(msg)
	}
	return m, nil
}

func (m *Model) switchTab(t tab) {
	m.activeTab = t
	m.contentScroll = 0
	switch t {
	case tabNotes:
		m.noteFocused = true
		m.noteArea.Focus()
		m.questionInput.Blur()
	case tabQA:
		m.qaLive = true
		m.questionInput.Focus()
		m.noteArea.Blur()
	default:
		m.noteArea.Blur()
		m.questionInput.Blur()
	}
}

func (m Model) handleTranscriptKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyEsc:
		m.newSession()
	case KeyNew:
		m.newSession()
	case KeyDown, KeyJ:
		m.contentScroll = min(m.contentScroll+1, m.maxContentScroll(m.transcriptLines()))
	case KeyUp, KeyK:
		m.contentScroll = max(0, m.contentScroll-1)
	case KeyTab1:
		m.switchTab(tabTranscript)
	case KeyTab2:
		m.switchTab(tabNotes)
	case KeyTab3:
		m.switchTab(tabQA)
	}
	return m, nil
}

func (m Model) handleNotesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.noteFocused {
		switch key {
		case KeySaveNote:
			m.saveNote()
			return m, nil
		case KeyEsc:
			// Discard the edit buffer and drop to the list.
			m.editingNoteID = ""
			m.noteArea.Reset()
			m.noteFocused = false
			m.noteArea.Blur()
			return m, nil
		default:
			var cmd tea.Cmd
			m.noteArea, cmd = m.noteArea.Update(msg)
			return m, cmd
		}
	}

	active, ok := m.active()
	switch key {
	case KeyEsc:
		m.newSession()
	case KeyJ, KeyDown:
		if ok && m.selectedNote < len(active.Notes)-1 {
			m.selectedNote++
		}
	case KeyK, KeyUp:
		if m.selectedNote > 0 {
			m.selectedNote--
		}
	case KeyEdit:
		if ok && m.selectedNote < len(active.Notes) {
			m.startEditingNote(active.Notes[m.selectedNote])
		}
	case KeyDelete:
		if ok && m.selectedNote < len(active.Notes) {
			m.deleteNote(active.Notes[m.selectedNote].ID)
		}
	case KeyEnter:
		// Fresh note buffer.
		m.editingNoteID = ""
		m.noteArea.Reset()
		m.noteFocused = true
		m.noteArea.Focus()
	}
	return m, nil
}

func (m Model) handleQAKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyEsc:
		m.newSession()
		return m, nil
	case KeyEnter:
		return m.submitQuestion()
	case KeyDown:
		m.qaScroll++
		if m.qaScroll >= m.maxContentScroll(m.qaLines()) {
			m.qaScroll = m.maxContentScroll(m.qaLines())
			m.qaLive = true
		}
		return m, nil
	case KeyUp:
		if m.qaLive {
			m.qaScroll = m.maxContentScroll(m.qaLines())
		}
		m.qaLive = false
		if m.qaScroll > 0 {
			m.qaScroll--
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.questionInput, cmd = m.questionInput.Update(msg)
		return m, cmd
	}
}

// startEditingNote loads the note into the edit buffer. Any unsaved buffer
// for another note is discarded.
func (m *Model) startEditingNote(n session.Note) {
	m.editingNoteID = n.ID
	m.noteArea.SetValue(n.Content)
	m.noteFocused = true
	m.noteArea.Focus()
}

// saveNote commits the edit buffer: an append for a fresh buffer, an in-place
// content replacement when editing. Empty content is a no-op.
func (m *Model) saveNote() {
	s, ok := m.repo.Get(m.activeID)
	if !ok {
		return
	}
	content := strings.TrimSpace(m.noteArea.Value())
	if content == "" {
		return
	}
	if m.editingNoteID != "" {
		m.repo.Update(s.WithNoteEdited(m.editingNoteID, content))
		m.editingNoteID = ""
	} else {
		updated, _ := s.WithNoteAdded(content)
		m.repo.Update(updated)
	}
	m.noteArea.Reset()
	m.refreshSessions()
}

func (m *Model) deleteNote(id string) {
	s, ok := m.repo.Get(m.activeID)
	if !ok {
		return
	}
	m.repo.Update(s.WithNoteRemoved(id))
	if m.editingNoteID == id {
		m.editingNoteID = ""
		m.noteArea.Reset()
	}
	m.refreshSessions()
	if active, ok := m.active(); ok && m.selectedNote >= len(active.Notes) {
		m.selectedNote = max(0, len(active.Notes)-1)
	}
}

// submitQuestion sends the question against the active session's transcript.
// Rejected while a previous question is outstanding.
func (m Model) submitQuestion() (tea.Model, tea.Cmd) {
	if m.asking {
		return m, nil
	}
	question := strings.TrimSpace(m.questionInput.Value())
	if question == "" {
		return m, nil
	}
	s, ok := m.repo.Get(m.activeID)
	if !ok {
		return m, nil
	}
	m.asking = true
	m.qaLive = true
	m.questionInput.Reset()
	return m, tea.Batch(m.spin.Tick, askCmd(m.ai, s.ID, s.FlatTranscript(), question))
}

func (m Model) exportActive() (tea.Model, tea.Cmd) {
	s, ok := m.repo.Get(m.activeID)
	if !ok {
		return m, nil
	}
	return m, exportCmd(s, m.exportDir)
}

// --- Controller transitions ---

// newSession returns to intake with no active session.
func (m *Model) newSession() {
	m.mode = modeIntake
	m.activeID = ""
	m.intakeFocus = focusPath
	m.pathInput.Focus()
	m.noteArea.Blur()
	m.questionInput.Blur()
}

// selectSession activates an existing session. Unknown ids are a defensive
// no-op.
func (m *Model) selectSession(id string) {
	if _, ok := m.repo.Get(id); !ok {
		return
	}
	m.openDetail(id)
}

// deleteSession removes a session; deleting the active one falls back to
// intake.
func (m *Model) deleteSession(id string) {
	m.repo.Delete(id)
	m.refreshSessions()
	if m.selectedSession >= len(m.sessions) {
		m.selectedSession = max(0, len(m.sessions)-1)
	}
	if id == m.activeID {
		m.newSession()
	}
}

func (m *Model) openDetail(id string) {
	m.mode = modeDetail
	m.activeID = id
	m.activeTab = tabTranscript
	m.contentScroll = 0
	m.selectedNote = 0
	m.editingNoteID = ""
	m.noteArea.Reset()
	m.noteFocused = false
	m.questionInput.Reset()
	m.qaScroll = 0
	m.qaLive = true
	m.pathInput.Blur()
}

func (m *Model) refreshSessions() {
	m.sessions = m.repo.List()
	if m.selectedSession >= len(m.sessions) {
		m.selectedSession = max(0, len(m.sessions)-1)
	}
}

// active returns the session currently shown in detail mode.
func (m Model) active() (session.Session, bool) {
	if m.activeID == "" {
		return session.Session{}, false
	}
	return m.repo.Get(m.activeID)
}

func (m *Model) transientError(text string) tea.Cmd {
	m.errorMessage = text
	m.errorTransient = true
	return clearTransientErrorCmd()
}
