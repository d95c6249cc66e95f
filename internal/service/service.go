package service

import (
	"context"
	"strings"
	"time"

	"github.com/kdduha/gemini-studio/internal/metrics"
	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// DefaultCaptionPrompt is used when an image is captioned without a prompt.
const DefaultCaptionPrompt = "Write a short caption for this image"

// Provider is the external model service. Implementations return
// *models.Error for failures they can classify.
type Provider interface {
	Name() string
	GenerateText(ctx context.Context, prompt string, gen *models.GenerationParams) (string, error)
	StreamText(ctx context.Context, prompt string, gen *models.GenerationParams, onDelta func(string) error) error
	GenerateVision(ctx context.Context, prompt string, img models.Image) (string, error)
	SendChat(ctx context.Context, history []models.Turn, message string) (string, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Service is the façade between the views and the model provider. Every
// operation makes exactly one provider call, never retries, and returns a
// *models.Error on failure.
type Service struct {
	logger   zerolog.Logger
	provider Provider
	limiter  *rate.Limiter
}

// NewService builds the façade. A nil provider yields a service that refuses
// every call with config_missing.
func NewService(logger zerolog.Logger, provider Provider) *Service {
	return &Service{
		logger:   logger,
		provider: provider,
	}
}

// SetRateLimiter makes every provider call wait for a token first.
func (s *Service) SetRateLimiter(limiter *rate.Limiter) {
	s.limiter = limiter
}

// LoadChatModel returns a handle for stateful conversations. It never fails;
// problems surface on Send.
func (s *Service) LoadChatModel() *ChatModel {
	return &ChatModel{svc: s}
}

func (s *Service) TextResponse(ctx context.Context, prompt string, gen *models.GenerationParams) (string, error) {
	const op = "text"
	if err := requireText(op, "prompt", prompt); err != nil {
		return "", err
	}

	var text string
	err := s.call(ctx, op, func(ctx context.Context, p Provider) (err error) {
		text, err = p.GenerateText(ctx, prompt, gen)
		return err
	})
	return text, err
}

func (s *Service) VisionResponse(ctx context.Context, prompt string, img models.Image) (string, error) {
	const op = "vision"
	if strings.TrimSpace(prompt) == "" {
		prompt = DefaultCaptionPrompt
	}
	if len(img.Data) == 0 {
		return "", models.NewError(models.KindInvalidInput, op, "image is empty")
	}

	var text string
	err := s.call(ctx, op, func(ctx context.Context, p Provider) (err error) {
		text, err = p.GenerateVision(ctx, prompt, img)
		return err
	})
	return text, err
}

func (s *Service) EmbeddingResponse(ctx context.Context, text string) ([]float32, error) {
	const op = "embedding"
	if err := requireText(op, "text", text); err != nil {
		return nil, err
	}

	var values []float32
	err := s.call(ctx, op, func(ctx context.Context, p Provider) (err error) {
		values, err = p.Embed(ctx, text)
		return err
	})
	return values, err
}

func (s *Service) call(ctx context.Context, op string, fn func(context.Context, Provider) error) error {
	if s.provider == nil {
		err := models.NewError(models.KindConfigMissing, op, "model provider is not configured")
		metrics.ModelRequest(op, string(err.Kind), 0)
		return err
	}

	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			cerr := models.WrapError(models.KindServiceUnavailable, op, err)
			metrics.ModelRequest(op, string(cerr.Kind), 0)
			return cerr
		}
	}

	start := time.Now()
	err := fn(ctx, s.provider)
	duration := time.Since(start)

	if err != nil {
		cerr := models.Classify(op, err)
		metrics.ModelRequest(op, string(cerr.Kind), duration)
		s.logger.Error().
			Str("op", op).
			Str("provider", s.provider.Name()).
			Str("kind", string(cerr.Kind)).
			Dur("duration", duration).
			Err(err).
			Msg("model call failed")
		return cerr
	}

	metrics.ModelRequest(op, "ok", duration)
	s.logger.Debug().
		Str("op", op).
		Str("provider", s.provider.Name()).
		Dur("duration", duration).
		Msg("model call finished")
	return nil
}

func requireText(op, field, value string) error {
	if strings.TrimSpace(value) == "" {
		return models.NewError(models.KindInvalidInput, op, field+" is empty")
	}
	return nil
}
