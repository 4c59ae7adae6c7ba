package app

import "github.com/tomasvidal/escriba/internal/session"

// ingestDoneMsg carries the session built from a successful ingestion.
type ingestDoneMsg struct {
	Session session.Session
}

// ingestFailedMsg carries the user-facing reason an ingestion failed.
type ingestFailedMsg struct {
	Message string
}

// answerMsg carries the answer to a submitted question. SessionID identifies
// the session the question was asked against; if that session is gone by the
// time the answer arrives, the answer is dropped.
type answerMsg struct {
	SessionID string
	Question  string
	Answer    string
}

// exportDoneMsg reports where the PDF report was written.
type exportDoneMsg struct {
	Path string
}

// exportFailedMsg reports a failed PDF export.
type exportFailedMsg struct {
	Err error
}

// clearTransientErrorMsg clears a transient error after a timeout.
type clearTransientErrorMsg struct{}
