package handler

import (
	"context"

	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/kdduha/gemini-studio/internal/service"
	"github.com/kdduha/gemini-studio/internal/session"
)

type modelService interface {
	LoadChatModel() *service.ChatModel
	TextResponse(ctx context.Context, prompt string, gen *models.GenerationParams) (string, error)
	TextResponseStream(ctx context.Context, prompt string, gen *models.GenerationParams) (<-chan models.StreamChunk, error)
	VisionResponse(ctx context.Context, prompt string, img models.Image) (string, error)
	EmbeddingResponse(ctx context.Context, text string) ([]float32, error)
}

type sessionStore interface {
	Get(id string) (*session.Session, bool)
	GetOrCreate(id string) (*session.Session, bool)
	Create() *session.Session
}
