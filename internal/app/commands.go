package app

import (
	"context"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tomasvidal/escriba/internal/ai"
	"github.com/tomasvidal/escriba/internal/export"
	"github.com/tomasvidal/escriba/internal/session"
)

// ingestCmd reads the pending files and submits them as one ingestion. The
// result is exactly one ingestDoneMsg or one ingestFailedMsg.
func ingestCmd(client analyzer, files []pendingFile) tea.Cmd {
	return func() tea.Msg {
		inputs := make([]ai.AudioFile, 0, len(files))
		names := make([]string, 0, len(files))
		for _, f := range files {
			data, err := os.ReadFile(f.path)
			if err != nil {
				return ingestFailedMsg{Message: "No se pudo leer el archivo: " + f.name}
			}
			inputs = append(inputs, ai.AudioFile{Name: f.name, MIMEType: f.mime, Data: data})
			names = append(names, f.name)
		}
		res, err := client.Analyze(context.Background(), inputs)
		if err != nil {
			return ingestFailedMsg{Message: err.Error()}
		}
		return ingestDoneMsg{
			Session: session.New(res.Title, res.Summary, res.Speakers, res.Transcript, names),
		}
	}
}

// askCmd submits a question against a session's transcript. The boundary
// always produces displayable text, so this never fails.
func askCmd(client analyzer, sessionID, transcript, question string) tea.Cmd {
	return func() tea.Msg {
		return answerMsg{
			SessionID: sessionID,
			Question:  question,
			Answer:    client.Ask(context.Background(), transcript, question),
		}
	}
}

// exportCmd renders the session's PDF report into dir.
func exportCmd(s session.Session, dir string) tea.Cmd {
	return func() tea.Msg {
		data, err := export.Report(s)
		if err != nil {
			return exportFailedMsg{Err: err}
		}
		path := filepath.Join(dir, export.FileName(s.Title))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return exportFailedMsg{Err: err}
		}
		return exportDoneMsg{Path: path}
	}
}

// clearTransientErrorCmd fires after a delay to clear transient errors.
func clearTransientErrorCmd() tea.Cmd {
	return tea.Tick(5*time.Second, func(time.Time) tea.Msg {
		return clearTransientErrorMsg{}
	})
}
