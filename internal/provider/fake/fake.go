// Package fake provides an in-memory model provider for tests.
package fake

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kdduha/gemini-studio/internal/models"
)

// Provider answers deterministically and records the calls it receives. Set
// Err to make every call fail with it.
type Provider struct {
	Err       error
	Embedding []float32

	mu    sync.Mutex
	calls []string
}

func (p *Provider) Name() string {
	return "fake"
}

// Calls returns the operations invoked so far.
func (p *Provider) Calls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.calls...)
}

func (p *Provider) record(op string) error {
	p.mu.Lock()
	p.calls = append(p.calls, op)
	p.mu.Unlock()
	return p.Err
}

func (p *Provider) GenerateText(_ context.Context, prompt string, _ *models.GenerationParams) (string, error) {
	if err := p.record("text"); err != nil {
		return "", err
	}
	return "answer: " + prompt, nil
}

func (p *Provider) StreamText(ctx context.Context, prompt string, _ *models.GenerationParams, onDelta func(string) error) error {
	if err := p.record("text_stream"); err != nil {
		return err
	}
	for _, word := range strings.Fields("answer: " + prompt) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := onDelta(word + " "); err != nil {
			return err
		}
	}
	return nil
}

func (p *Provider) GenerateVision(_ context.Context, prompt string, img models.Image) (string, error) {
	if err := p.record("vision"); err != nil {
		return "", err
	}
	return fmt.Sprintf("caption (%s, %d bytes): %s", img.Format, len(img.Data), prompt), nil
}

func (p *Provider) SendChat(_ context.Context, history []models.Turn, message string) (string, error) {
	if err := p.record("chat"); err != nil {
		return "", err
	}
	return fmt.Sprintf("reply #%d to %s", len(history)/2+1, message), nil
}

func (p *Provider) Embed(_ context.Context, text string) ([]float32, error) {
	if err := p.record("embedding"); err != nil {
		return nil, err
	}
	if p.Embedding != nil {
		return p.Embedding, nil
	}
	return []float32{float32(len(text)), 0.5, -0.5}, nil
}
