package models

import (
	"strings"
)

// AskRequest represents request for ask endpoint
type AskRequest struct {
	Prompt string `json:"prompt" validate:"required" example:"What is the capital of France?"`

	// Optional generation parameters
	Generation *GenerationParams `json:"generation"`
}

func (r AskRequest) Validate() error {
	if strings.TrimSpace(r.Prompt) == "" {
		return NewError(KindInvalidInput, "", "prompt is empty")
	}
	return r.Generation.Validate()
}

// GenerationParams holds optional generation parameters
type GenerationParams struct {
	Temperature *float64 `json:"temperature" example:"0.7" default:"0.7"`
	MaxTokens   *int     `json:"max_tokens" example:"512" default:"512"`
}

func (p *GenerationParams) Validate() error {
	if p == nil {
		return nil
	}
	if p.Temperature != nil && (*p.Temperature < 0 || *p.Temperature > 2) {
		return NewError(KindInvalidInput, "", "temperature must be within [0, 2]")
	}
	if p.MaxTokens != nil && *p.MaxTokens <= 0 {
		return NewError(KindInvalidInput, "", "max_tokens must be positive")
	}
	return nil
}

// CaptionRequest represents request for caption endpoint. Image is sent as
// base64 string in JSON.
type CaptionRequest struct {
	Prompt     string `json:"prompt" example:"Write a short caption for this image"`
	FileBase64 string `json:"file_base64" validate:"required" example:"iVBORw0KGgoAAAANSUhEUgAA..."`
	FileName   string `json:"file_name" example:"cat.png"`
	FileFormat string `json:"file_format" validate:"required" example:"png"`
}

func (r CaptionRequest) Validate() error {
	if r.FileBase64 == "" {
		return NewError(KindInvalidInput, "", "file_base64 is empty")
	}
	if r.FileFormat == "" {
		return NewError(KindInvalidInput, "", "file_format is empty")
	}
	return nil
}

// EmbedRequest represents request for embed endpoint
type EmbedRequest struct {
	Text string `json:"text" validate:"required" example:"cat"`
}

func (r EmbedRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return NewError(KindInvalidInput, "", "text is empty")
	}
	return nil
}

// ChatRequest represents request for chat endpoint. Empty SessionID starts a
// new session.
type ChatRequest struct {
	SessionID string `json:"session_id" example:"2f1c4a9e-4f7b-4c55-9d2e-0c1f1f0f6a11"`
	Message   string `json:"message" validate:"required" example:"Hello"`
}

func (r ChatRequest) Validate() error {
	if strings.TrimSpace(r.Message) == "" {
		return NewError(KindInvalidInput, "", "message is empty")
	}
	return nil
}
