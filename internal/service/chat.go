package service

import (
	"context"

	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/kdduha/gemini-studio/internal/session"
)

// ChatModel starts and continues conversations. The transcript lives in the
// session passed to Send, not in the model.
type ChatModel struct {
	svc *Service
}

// Send performs one exchange on sess and returns the model turn. On failure
// sess is left unchanged.
func (m *ChatModel) Send(ctx context.Context, sess *session.Session, message string) (models.Turn, error) {
	const op = "chat"
	if err := requireText(op, "message", message); err != nil {
		return models.Turn{}, err
	}

	return sess.Exchange(ctx, message, func(ctx context.Context, history []models.Turn, message string) (string, error) {
		var reply string
		err := m.svc.call(ctx, op, func(ctx context.Context, p Provider) (err error) {
			reply, err = p.SendChat(ctx, history, message)
			return err
		})
		return reply, err
	})
}
