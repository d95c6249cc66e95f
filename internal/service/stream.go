package service

import (
	"context"
	"errors"
	"strings"

	"github.com/kdduha/gemini-studio/internal/models"
)

var errStreamStopped = errors.New("stream consumer stopped")

// TextResponseStream is TextResponse delivered incrementally. The channel
// yields deltas, then either one chunk with Err set or a final chunk with
// Done and the full text. It is closed afterwards or when ctx is cancelled.
func (s *Service) TextResponseStream(ctx context.Context, prompt string, gen *models.GenerationParams) (<-chan models.StreamChunk, error) {
	const op = "text_stream"
	if err := requireText(op, "prompt", prompt); err != nil {
		return nil, err
	}
	if s.provider == nil {
		return nil, models.NewError(models.KindConfigMissing, op, "model provider is not configured")
	}

	ch := make(chan models.StreamChunk, 1)

	go func() {
		defer close(ch)

		sendOrStop := func(msg models.StreamChunk) bool {
			select {
			case ch <- msg:
				return true
			case <-ctx.Done():
				return false
			}
		}

		var builder strings.Builder
		err := s.call(ctx, op, func(ctx context.Context, p Provider) error {
			return p.StreamText(ctx, prompt, gen, func(delta string) error {
				builder.WriteString(delta)
				if !sendOrStop(models.StreamChunk{Delta: delta}) {
					return errStreamStopped
				}
				return nil
			})
		})
		if err != nil {
			if errors.Is(err, errStreamStopped) {
				return
			}
			sendOrStop(models.StreamChunk{Err: err})
			return
		}

		sendOrStop(models.StreamChunk{Text: builder.String(), Done: true})
	}()

	return ch, nil
}
