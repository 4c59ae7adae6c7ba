// Package ai wraps the external generative-AI service: audio ingestion
// (transcription, diarization, summary, title) and transcript
// question-answering. All failures leaving this package carry user-facing
// Spanish text; callers never see raw transport errors.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/tomasvidal/escriba/internal/config"
	"github.com/tomasvidal/escriba/internal/log"
	"github.com/tomasvidal/escriba/internal/session"
)

// MaxAudioFiles bounds one ingestion request.
const MaxAudioFiles = 3

// Apology is returned by Ask when the service fails; the conversation keeps
// flowing instead of surfacing a hard error.
const Apology = "Lo siento, no pude procesar tu pregunta en este momento."

// User-facing ingestion failure messages.
const (
	msgNoAPIKey     = "La clave de API no está configurada."
	msgInvalidKey   = "La clave de API no es válida. Por favor, verifica tu configuración."
	msgQuota        = "Has excedido tu cuota de uso. Por favor, revisa tu plan."
	msgInvalidAudio = "El formato de audio no es válido o está corrupto. Intenta con otro archivo."
	msgGeneric      = "Hubo un error al procesar el audio. Por favor, inténtalo de nuevo."
)

// AudioFile is one audio input to an ingestion request.
type AudioFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// Result is the structured analysis produced by one ingestion request.
type Result struct {
	Title      string            `json:"title"`
	Summary    string            `json:"summary"`
	Speakers   []string          `json:"speakers"`
	Transcript []session.Segment `json:"transcript"`
}

// Error is an ingestion failure. Error() is the displayable message; the
// underlying cause stays available through Unwrap for logging.
type Error struct {
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

// Client talks to an OpenAI-compatible endpoint. A nil Client (no API key
// configured) fails every ingestion with the missing-credential message.
type Client struct {
	api             *openai.Client
	chatModel       string
	transcribeModel string
}

// NewClient builds a client from configuration. Returns nil when no API key
// is configured.
func NewClient(cfg *config.Config) *Client {
	if cfg.OpenAIAPIKey == "" {
		return nil
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" && cfg.OpenAIBaseURL != "https://api.openai.com/v1" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}

	return &Client{
		api:             openai.NewClientWithConfig(clientConfig),
		chatModel:       cfg.ChatModel,
		transcribeModel: cfg.TranscribeModel,
	}
}

// Analyze submits the full input set as one ingestion and returns one
// structured result or one failure. It never returns a partial result: any
// error aborts the whole ingestion.
func (c *Client) Analyze(ctx context.Context, files []AudioFile) (*Result, error) {
	if c == nil {
		return nil, &Error{Message: msgNoAPIKey}
	}
	if len(files) == 0 || len(files) > MaxAudioFiles {
		return nil, &Error{Message: msgInvalidAudio}
	}

	// One raw transcription per file, then a single structured analysis over
	// all of them. The caller sees exactly one result or one failure.
	raw := make([]string, 0, len(files))
	for _, f := range files {
		resp, err := c.api.CreateTranscription(ctx, openai.AudioRequest{
			Model:    c.transcribeModel,
			Reader:   bytes.NewReader(f.Data),
			FilePath: f.Name,
		})
		if err != nil {
			log.Error().Err(err).Str("file", f.Name).Msg("transcription failed")
			return nil, categorize(err)
		}
		raw = append(raw, resp.Text)
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: analysisSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: analysisUserPrompt(files, raw)},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("analysis failed")
		return nil, categorize(err)
	}
	if len(resp.Choices) == 0 {
		return nil, &Error{Message: msgGeneric}
	}

	result, err := decodeResult(resp.Choices[0].Message.Content)
	if err != nil {
		log.Error().Err(err).Msg("analysis returned malformed JSON")
		return nil, &Error{Message: msgGeneric, cause: err}
	}
	return result, nil
}

// Ask answers a question strictly from the flattened transcript. It always
// returns displayable text: failures degrade to the fixed apology.
func (c *Client) Ask(ctx context.Context, transcript, question string) string {
	if c == nil {
		return Apology
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: qaSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: qaUserPrompt(transcript, question)},
		},
		Temperature: 0.2,
	})
	if err != nil {
		log.Error().Err(err).Msg("question answering failed")
		return Apology
	}
	if len(resp.Choices) == 0 {
		return Apology
	}
	return resp.Choices[0].Message.Content
}

// decodeResult parses the model's JSON, tolerating markdown code fences
// around it.
func decodeResult(content string) (*Result, error) {
	cleaned := strings.TrimSpace(content)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var r Result
	if err := json.Unmarshal([]byte(cleaned), &r); err != nil {
		return nil, fmt.Errorf("decode analysis: %w", err)
	}
	return &r, nil
}

// categorize maps a transport error to one of the fixed ingestion failure
// messages.
func categorize(err error) *Error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &Error{Message: msgInvalidKey, cause: err}
		case http.StatusTooManyRequests:
			return &Error{Message: msgQuota, cause: err}
		case http.StatusBadRequest, http.StatusUnsupportedMediaType, http.StatusUnprocessableEntity:
			return &Error{Message: msgInvalidAudio, cause: err}
		}
	}
	return &Error{Message: msgGeneric, cause: err}
}
