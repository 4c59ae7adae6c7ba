package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomasvidal/escriba/internal/ui"
)

// View renders the full TUI.
func (m Model) View() string {
	if m.width == 0 {
		return "Inicializando..."
	}

	var sections []string

	sections = append(sections, m.renderHeader())
	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))

	if m.mode == modeIntake {
		sections = append(sections, m.renderIntake())
	} else {
		sections = append(sections, m.renderDetail())
	}

	sections = append(sections, ui.DividerStyle.Render(strings.Repeat("─", m.width)))
	sections = append(sections, m.renderStatusBar())
	sections = append(sections, m.renderFooter())

	return strings.Join(sections, "\n")
}

func (m Model) renderHeader() string {
	title := ui.TitleStyle.Render("ESCRIBA")
	subtitle := ui.DimStyle.Render(" — Analizador de Audio IA")
	return title + subtitle
}

func (m Model) renderStatusBar() string {
	if m.errorMessage != "" {
		return ui.ErrorStyle.Render("Error: ") + ui.ErrorTextStyle.Render(m.errorMessage)
	}
	if m.statusText != "" {
		return ui.DimStyle.Render(m.statusText)
	}
	return ""
}

// contentHeight is the number of rows available for the main content area.
func (m Model) contentHeight() int {
	if m.height == 0 {
		return 20
	}
	// Reserve: header(1) + dividers(2) + status(1) + footer(1) + padding
	reserved := 7
	return max(5, m.height-reserved)
}

func (m Model) sessionsPanelWidth() int {
	if m.width == 0 {
		return 30
	}
	return max(24, m.width*30/100)
}

func (m Model) intakePanelWidth() int {
	if m.width == 0 {
		return 60
	}
	return max(30, m.width-m.sessionsPanelWidth()-3)
}

// --- Intake rendering ---

func (m Model) renderIntake() string {
	height := m.contentHeight()
	sessionsW := m.sessionsPanelWidth()
	intakeW := m.intakePanelWidth()

	left := strings.Split(m.renderSessionsPanel(sessionsW, height), "\n")
	right := strings.Split(m.renderIntakePanel(intakeW, height), "\n")
	divider := ui.DividerStyle.Render("│")

	var rows []string
	for i := 0; i < height; i++ {
		l := strings.Repeat(" ", sessionsW)
		if i < len(left) {
			l = padRight(left[i], sessionsW)
		}
		r := ""
		if i < len(right) {
			r = right[i]
		}
		rows = append(rows, l+divider+" "+r)
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderSessionsPanel(width, height int) string {
	var header string
	if m.intakeFocus == focusSessions {
		header = ui.PanelTitleActiveStyle.Render(fmt.Sprintf("RECIENTES (%d)", len(m.sessions)))
	} else {
		header = ui.PanelTitleStyle.Render(fmt.Sprintf("RECIENTES (%d)", len(m.sessions)))
	}

	lines := []string{header}
	if len(m.sessions) == 0 {
		lines = append(lines, ui.DimStyle.Render("  Aún no hay transcripciones."))
	} else {
		for i, s := range m.sessions {
			var line string
			if i == m.selectedSession && m.intakeFocus == focusSessions {
				line = ui.SelectedStyle.Render("> " + s.Title)
			} else {
				line = "  " + s.Title
			}
			lines = append(lines, truncateToWidth(line, width))
			lines = append(lines, ui.DimStyle.Render("    "+s.CreatedAt.Local().Format("02/01/2006 15:04")))
		}
	}

	return fitToHeight(lines, width, height)
}

func (m Model) renderIntakePanel(width, height int) string {
	var header string
	if m.intakeFocus != focusSessions {
		header = ui.PanelTitleActiveStyle.Render("NUEVA TRANSCRIPCIÓN")
	} else {
		header = ui.PanelTitleStyle.Render("NUEVA TRANSCRIPCIÓN")
	}

	lines := []string{header, ""}
	for _, wl := range wrapText("Elige hasta 3 archivos de audio para transcribir, resumir y analizar.", width-2) {
		lines = append(lines, ui.DimStyle.Render(wl))
	}
	lines = append(lines, "")
	lines = append(lines, m.pathInput.View())
	lines = append(lines, "")

	if len(m.pending) > 0 {
		lines = append(lines, ui.PanelTitleStyle.Render("Archivos seleccionados:"))
		for i, f := range m.pending {
			if i == m.selectedPending && m.intakeFocus == focusPending {
				lines = append(lines, ui.SelectedStyle.Render("> "+f.name))
			} else {
				lines = append(lines, "  "+f.name)
			}
		}
		lines = append(lines, "")
	}

	if m.processing {
		lines = append(lines, m.spin.View()+ui.DimStyle.Render(" Procesando audio..."))
	} else if len(m.pending) > 0 {
		lines = append(lines, ui.DimStyle.Render("Enter con la ruta vacía envía los archivos."))
	}

	return fitToHeight(lines, width, height)
}

// --- Detail rendering ---

var tabTitles = [...]string{"Transcripción", "Notas", "Preguntas y Respuestas"}

func (m Model) renderDetail() string {
	lines := []string{m.renderTabs()}

	body := m.contentHeight() - 1
	switch m.activeTab {
	case tabTranscript:
		lines = append(lines, m.renderTranscriptTab(body)...)
	case tabNotes:
		lines = append(lines, m.renderNotesTab(body)...)
	case tabQA:
		lines = append(lines, m.renderQATab(body)...)
	}

	for len(lines) < m.contentHeight() {
		lines = append(lines, "")
	}
	return strings.Join(lines[:m.contentHeight()], "\n")
}

func (m Model) renderTabs() string {
	var parts []string
	for i, title := range tabTitles {
		if tab(i) == m.activeTab {
			parts = append(parts, ui.TabActiveStyle.Render("["+title+"]"))
		} else {
			parts = append(parts, ui.TabStyle.Render(" "+title+" "))
		}
	}
	return strings.Join(parts, " ")
}

// transcriptLines builds the scrollable transcript view content.
func (m Model) transcriptLines() []string {
	s, ok := m.active()
	if !ok {
		return nil
	}
	width := max(20, m.width-4)

	var lines []string
	lines = append(lines, ui.TitleStyle.Render(truncateToWidth(s.Title, width)))
	lines = append(lines, "")
	lines = append(lines, ui.PanelTitleStyle.Render("Resumen Automático"))
	lines = append(lines, wrapText(s.Summary, width)...)
	lines = append(lines, "")
	lines = append(lines, ui.PanelTitleStyle.Render("Interlocutores Detectados"))
	lines = append(lines, wrapText(strings.Join(s.Speakers, " · "), width)...)
	lines = append(lines, "")
	for _, seg := range s.Transcript {
		lines = append(lines, ui.SpeakerStyle.Render(seg.Speaker))
		lines = append(lines, wrapText(seg.Text, width)...)
	}
	return lines
}

func (m Model) renderTranscriptTab(height int) []string {
	lines := m.transcriptLines()
	start := min(m.contentScroll, max(0, len(lines)-height))
	end := min(len(lines), start+height)
	return lines[start:end]
}

func (m Model) renderNotesTab(height int) []string {
	s, ok := m.active()
	if !ok {
		return nil
	}
	width := max(20, m.width-4)

	var lines []string
	if len(s.Notes) == 0 {
		lines = append(lines, ui.DimStyle.Render("Aún no hay notas."))
	} else {
		for i, n := range s.Notes {
			marker := "  "
			if i == m.selectedNote && !m.noteFocused {
				marker = ui.SelectedStyle.Render("> ")
			}
			if n.ID == m.editingNoteID {
				marker = ui.ScrollBadgeStyle.Render("✎ ")
			}
			wrapped := wrapText(n.Content, width-2)
			lines = append(lines, marker+wrapped[0])
			for _, wl := range wrapped[1:] {
				lines = append(lines, "  "+wl)
			}
		}
	}
	lines = append(lines, "")

	editorHeight := m.noteArea.Height() + 2
	if len(lines) > height-editorHeight {
		lines = lines[:max(0, height-editorHeight)]
	}
	lines = append(lines, strings.Split(m.noteArea.View(), "\n")...)
	if m.editingNoteID != "" {
		lines = append(lines, ui.DimStyle.Render("Editando nota. Ctrl+S guarda, Esc descarta."))
	}
	return lines
}

// qaLines builds the scrollable Q&A history content.
func (m Model) qaLines() []string {
	s, ok := m.active()
	if !ok {
		return nil
	}
	width := max(20, m.width-4)

	var lines []string
	for _, qa := range s.QAHistory {
		for _, wl := range wrapText("P: "+qa.Question, width) {
			lines = append(lines, ui.QuestionStyle.Render(wl))
		}
		lines = append(lines, wrapText("R: "+qa.Answer, width)...)
		lines = append(lines, "")
	}
	if m.asking {
		lines = append(lines, m.spin.View()+ui.DimStyle.Render(" Pensando..."))
	}
	return lines
}

func (m Model) renderQATab(height int) []string {
	historyHeight := max(1, height-2)
	lines := m.qaLines()

	start := 0
	if m.qaLive {
		if len(lines) > historyHeight {
			start = len(lines) - historyHeight
		}
	} else {
		start = min(m.qaScroll, max(0, len(lines)-historyHeight))
	}
	end := min(len(lines), start+historyHeight)

	badge := ui.LiveBadgeStyle.Render("● EN VIVO")
	if !m.qaLive {
		badge = ui.ScrollBadgeStyle.Render("● HISTORIAL (↓ vuelve al final)")
	}

	out := make([]string, 0, height)
	out = append(out, lines[start:end]...)
	for len(out) < historyHeight {
		out = append(out, "")
	}
	out = append(out, badge)
	out = append(out, m.questionInput.View())
	return out
}

func (m Model) maxContentScroll(lines []string) int {
	visible := m.contentHeight() - 1
	if len(lines) <= visible {
		return 0
	}
	return len(lines) - visible
}

func (m Model) renderFooter() string {
	key := func(k, desc string) string {
		return ui.FooterKeyStyle.Render(k) + ui.FooterDescStyle.Render(" "+desc)
	}

	var parts []string
	if m.mode == modeIntake {
		parts = append(parts,
			key("Tab", "Foco"),
			key("Enter", "Añadir/Enviar"),
			key("j/k", "Navegar"),
			key("x", "Quitar"),
		)
	} else {
		parts = append(parts, key("Tab", "Pestaña"))
		switch m.activeTab {
		case tabNotes:
			if m.noteFocused {
				parts = append(parts, key("Ctrl+S", "Guardar"), key("Esc", "Cancelar"))
			} else {
				parts = append(parts, key("Enter", "Nueva nota"), key("e", "Editar"), key("x", "Borrar"))
			}
		case tabQA:
			parts = append(parts, key("Enter", "Preguntar"), key("↑↓", "Historial"))
		default:
			parts = append(parts, key("↑↓", "Desplazar"))
		}
		parts = append(parts, key("Ctrl+E", "Exportar PDF"), key("Ctrl+X", "Eliminar"), key("Esc", "Volver"))
	}
	parts = append(parts, key("Ctrl+C", "Salir"))

	return strings.Join(parts, "  ")
}

// --- Helpers ---

func fitToHeight(lines []string, width, height int) string {
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = padRight(l, width)
	}
	return strings.Join(lines, "\n")
}

func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

func truncateToWidth(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible <= width {
		return s
	}
	runes := []rune(s)
	if len(runes) > width-1 {
		return string(runes[:max(0, width-1)]) + "…"
	}
	return s
}

func wrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		var current string
		for _, word := range strings.Fields(paragraph) {
			if current == "" {
				current = word
			} else if len(current)+1+len(word) <= width {
				current += " " + word
			} else {
				lines = append(lines, current)
				current = word
			}
		}
		if current != "" {
			lines = append(lines, current)
		} else {
			lines = append(lines, "")
		}
	}
	if len(lines) == 0 {
		return []string{""}
	}
	return lines
}
