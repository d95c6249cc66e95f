package openai

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kdduha/gemini-studio/internal/config"
	"github.com/kdduha/gemini-studio/internal/models"
)

type fakeAPI struct {
	t        *testing.T
	status   int
	lastBody map[string]any
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		f.t.Fatal(err)
	}
	f.lastBody = map[string]any{}
	if err := json.Unmarshal(b, &f.lastBody); err != nil {
		f.t.Fatal(err)
	}

	w.Header().Set("Content-Type", "application/json")
	if f.status != 0 {
		w.WriteHeader(f.status)
		io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit"}}`)
		return
	}

	switch r.URL.Path {
	case "/chat/completions":
		io.WriteString(w, `{"id":"1","object":"chat.completion","created":0,"model":"m",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"Hi there"}}]}`)
	case "/embeddings":
		io.WriteString(w, `{"object":"list","model":"e",
			"data":[{"object":"embedding","index":0,"embedding":[0.5,-0.25]}],
			"usage":{"prompt_tokens":1,"total_tokens":1}}`)
	default:
		http.NotFound(w, r)
	}
}

func newTestProvider(t *testing.T, api *fakeAPI) *Provider {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return New(config.OpenAIConfig{
		APIKey:         "test",
		BaseURL:        srv.URL,
		Model:          "chat-model",
		EmbeddingModel: "embed-model",
	})
}

func TestSendChatSendsHistory(t *testing.T) {
	api := &fakeAPI{t: t}
	p := newTestProvider(t, api)

	got, err := p.SendChat(context.Background(), []models.Turn{
		{Role: models.RoleUser, Text: "Hello"},
		{Role: models.RoleModel, Text: "Hi"},
	}, "How are you?")
	if err != nil {
		t.Fatal(err)
	}
	if got != "Hi there" {
		t.Errorf("reply = %q", got)
	}

	var roles []string
	for _, m := range api.lastBody["messages"].([]any) {
		roles = append(roles, m.(map[string]any)["role"].(string))
	}
	if diff := cmp.Diff([]string{"user", "assistant", "user"}, roles); diff != "" {
		t.Errorf("roles mismatch (-want +got):\n%s", diff)
	}
	if api.lastBody["model"] != "chat-model" {
		t.Errorf("model = %v", api.lastBody["model"])
	}
}

func TestEmbed(t *testing.T) {
	p := newTestProvider(t, &fakeAPI{t: t})

	got, err := p.Embed(context.Background(), "cat")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]float32{0.5, -0.25}, got); diff != "" {
		t.Errorf("embedding mismatch (-want +got):\n%s", diff)
	}
}

func TestQuotaError(t *testing.T) {
	p := newTestProvider(t, &fakeAPI{t: t, status: http.StatusTooManyRequests})

	_, err := p.GenerateText(context.Background(), "hi", nil)
	if got := models.KindOf(err); got != models.KindQuotaExceeded {
		t.Fatalf("kind = %q (%v), want quota_exceeded", got, err)
	}
}

func TestChatMessages(t *testing.T) {
	msgs := chatMessages(nil, "Hello")
	if len(msgs) != 1 {
		t.Fatalf("len = %d, want 1", len(msgs))
	}
}
