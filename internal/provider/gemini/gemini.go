// Package gemini implements the model provider on top of the Google AI
// Gemini SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/kdduha/gemini-studio/internal/config"
	"github.com/kdduha/gemini-studio/internal/models"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

type Provider struct {
	client         *genai.Client
	model          string
	embeddingModel string
}

func New(ctx context.Context, cfg config.GeminiConfig, opts ...option.ClientOption) (*Provider, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Provider{
		client:         client,
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
	}, nil
}

func (p *Provider) Name() string {
	return config.ProviderGemini
}

func (p *Provider) Close() error {
	return p.client.Close()
}

func (p *Provider) generativeModel(gen *models.GenerationParams) *genai.GenerativeModel {
	m := p.client.GenerativeModel(p.model)
	if gen != nil && gen.Temperature != nil {
		m.SetTemperature(float32(*gen.Temperature))
	}
	if gen != nil && gen.MaxTokens != nil {
		m.SetMaxOutputTokens(int32(*gen.MaxTokens))
	}
	return m
}

func (p *Provider) GenerateText(ctx context.Context, prompt string, gen *models.GenerationParams) (string, error) {
	resp, err := p.generativeModel(gen).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classify("text", err)
	}
	return responseText("text", resp)
}

func (p *Provider) StreamText(ctx context.Context, prompt string, gen *models.GenerationParams, onDelta func(string) error) error {
	iter := p.generativeModel(gen).GenerateContentStream(ctx, genai.Text(prompt))
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return nil
		}
		if err != nil {
			return classify("text_stream", err)
		}
		delta := joinText(resp)
		if delta == "" {
			continue
		}
		if err := onDelta(delta); err != nil {
			return err
		}
	}
}

func (p *Provider) GenerateVision(ctx context.Context, prompt string, img models.Image) (string, error) {
	resp, err := p.generativeModel(nil).GenerateContent(ctx,
		genai.Text(prompt),
		genai.ImageData(img.Format, img.Data),
	)
	if err != nil {
		return "", classify("vision", err)
	}
	return responseText("vision", resp)
}

func (p *Provider) SendChat(ctx context.Context, history []models.Turn, message string) (string, error) {
	cs := p.generativeModel(nil).StartChat()
	cs.History = toContents(history)

	resp, err := cs.SendMessage(ctx, genai.Text(message))
	if err != nil {
		return "", classify("chat", err)
	}
	return responseText("chat", resp)
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	em := p.client.EmbeddingModel(p.embeddingModel)
	em.TaskType = genai.TaskTypeRetrievalDocument

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, classify("embedding", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, models.NewError(models.KindUnknown, "embedding", "model returned an empty embedding")
	}
	return resp.Embedding.Values, nil
}

func toContents(turns []models.Turn) []*genai.Content {
	out := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		out = append(out, &genai.Content{
			Role:  string(t.Role),
			Parts: []genai.Part{genai.Text(t.Text)},
		})
	}
	return out
}

func responseText(op string, resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", models.NewError(models.KindUnknown, op, "model returned no candidates")
	}
	return joinText(resp), nil
}

func joinText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}

func classify(op string, err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return models.WrapError(models.KindInvalidInput, op, err)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return models.WrapError(models.KindFromStatus(apiErr.Code), op, err)
	}
	return models.Classify(op, err)
}
