// Package session keeps chat transcripts in memory, one per browser or API
// client.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/kdduha/gemini-studio/internal/models"
)

// Session owns one chat transcript. Exchanges on the same session are
// serialised, so turns are appended in send/receive order.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	transcript []models.Turn
	lastSeen   time.Time
}

// ReplyFunc produces the model reply for message given the transcript so far.
type ReplyFunc func(ctx context.Context, history []models.Turn, message string) (string, error)

// Exchange sends message through reply and, only when a reply arrives,
// appends the user turn followed by the model turn. A failed exchange leaves
// the transcript untouched.
func (s *Session) Exchange(ctx context.Context, message string, reply ReplyFunc) (models.Turn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := make([]models.Turn, len(s.transcript))
	copy(history, s.transcript)

	text, err := reply(ctx, history, message)
	if err != nil {
		return models.Turn{}, err
	}

	answer := models.Turn{Role: models.RoleModel, Text: text}
	s.transcript = append(s.transcript,
		models.Turn{Role: models.RoleUser, Text: message},
		answer,
	)
	return answer, nil
}

// Transcript returns a copy of the turns in chronological order.
func (s *Session) Transcript() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Turn, len(s.transcript))
	copy(out, s.transcript)
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.transcript)
}
