// Package openai implements the model provider for OpenAI-compatible APIs.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/kdduha/gemini-studio/internal/config"
	"github.com/kdduha/gemini-studio/internal/imaging"
	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

type Provider struct {
	client         openai.Client
	model          string
	embeddingModel string
}

func New(cfg config.OpenAIConfig, opts ...option.RequestOption) *Provider {
	opts = append([]option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(cfg.BaseURL),
		option.WithMaxRetries(0),
	}, opts...)
	return &Provider{
		client:         openai.NewClient(opts...),
		model:          cfg.Model,
		embeddingModel: cfg.EmbeddingModel,
	}
}

func (p *Provider) Name() string {
	return config.ProviderOpenAI
}

func (p *Provider) params(messages []openai.ChatCompletionMessageParamUnion, gen *models.GenerationParams) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model:    shared.ChatModel(p.model),
		Messages: messages,
	}
	if gen != nil && gen.MaxTokens != nil {
		params.MaxCompletionTokens = openai.Int(int64(*gen.MaxTokens))
	}
	if gen != nil && gen.Temperature != nil {
		params.Temperature = openai.Float(*gen.Temperature)
	}
	return params
}

func (p *Provider) complete(ctx context.Context, op string, params openai.ChatCompletionNewParams) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(op, err)
	}
	if len(resp.Choices) == 0 {
		return "", models.NewError(models.KindUnknown, op, "model returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

func (p *Provider) GenerateText(ctx context.Context, prompt string, gen *models.GenerationParams) (string, error) {
	return p.complete(ctx, "text", p.params([]openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}, gen))
}

func (p *Provider) StreamText(ctx context.Context, prompt string, gen *models.GenerationParams, onDelta func(string) error) error {
	stream := p.client.Chat.Completions.NewStreaming(ctx, p.params([]openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(prompt),
	}, gen))
	defer stream.Close()

	for stream.Next() {
		chunk := stream.Current()
		if len(chunk.Choices) == 0 {
			continue
		}
		delta := chunk.Choices[0].Delta.Content
		if delta == "" {
			continue
		}
		if err := onDelta(delta); err != nil {
			return err
		}
	}
	if err := stream.Err(); err != nil {
		return classify("text_stream", err)
	}
	return nil
}

func (p *Provider) GenerateVision(ctx context.Context, prompt string, img models.Image) (string, error) {
	return p.complete(ctx, "vision", p.params([]openai.ChatCompletionMessageParamUnion{
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: imaging.DataURL(img),
			}),
		}),
	}, nil))
}

func (p *Provider) SendChat(ctx context.Context, history []models.Turn, message string) (string, error) {
	return p.complete(ctx, "chat", p.params(chatMessages(history, message), nil))
}

func (p *Provider) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := p.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.embeddingModel),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	})
	if err != nil {
		return nil, classify("embedding", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, models.NewError(models.KindUnknown, "embedding", "model returned an empty embedding")
	}

	values := make([]float32, len(resp.Data[0].Embedding))
	for i, v := range resp.Data[0].Embedding {
		values[i] = float32(v)
	}
	return values, nil
}

func chatMessages(history []models.Turn, message string) []openai.ChatCompletionMessageParamUnion {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, t := range history {
		switch t.Role {
		case models.RoleModel:
			messages = append(messages, openai.AssistantMessage(t.Text))
		default:
			messages = append(messages, openai.UserMessage(t.Text))
		}
	}
	return append(messages, openai.UserMessage(message))
}

func classify(op string, err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		detail := strings.TrimSpace(apiErr.Message)
		if detail == "" {
			detail = fmt.Sprintf("status %d", apiErr.StatusCode)
		}
		return &models.Error{
			Kind:   models.KindFromStatus(apiErr.StatusCode),
			Op:     op,
			Detail: detail,
			Err:    err,
		}
	}
	return models.Classify(op, err)
}
