package handler

import (
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kdduha/gemini-studio/internal/provider/fake"
	"github.com/kdduha/gemini-studio/internal/service"
	"github.com/kdduha/gemini-studio/internal/session"
	"github.com/rs/zerolog"
)

const testCookie = "test_session"

type testEnv struct {
	provider *fake.Provider
	sessions *session.Store
	router   http.Handler
}

func newTestEnv(p *fake.Provider) *testEnv {
	var svc *service.Service
	if p == nil {
		svc = service.NewService(zerolog.Nop(), nil)
	} else {
		svc = service.NewService(zerolog.Nop(), p)
	}
	sessions := session.NewStore(time.Hour)

	r := chi.NewRouter()
	NewPageHandler(zerolog.Nop(), svc, sessions, PageOptions{
		CookieName:     testCookie,
		SessionTTL:     time.Hour,
		MaxUploadBytes: 1 << 20,
	}).Register(r)
	r.Route("/api/v1", NewAPIHandler(zerolog.Nop(), svc, sessions).Register)

	return &testEnv{provider: p, sessions: sessions, router: r}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}
