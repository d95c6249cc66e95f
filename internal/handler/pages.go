package handler

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/kdduha/gemini-studio/internal/imaging"
	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/kdduha/gemini-studio/internal/service"
	"github.com/kdduha/gemini-studio/internal/session"
	"github.com/rs/zerolog"
)

type PageOptions struct {
	CookieName     string
	SessionTTL     time.Duration
	MaxUploadBytes int64
}

// PageHandler serves the four HTML views.
type PageHandler struct {
	service  modelService
	sessions sessionStore
	chat     *service.ChatModel
	renderer *renderer
	logger   zerolog.Logger
	opts     PageOptions
}

func NewPageHandler(logger zerolog.Logger, svc modelService, sessions sessionStore, opts PageOptions) *PageHandler {
	return &PageHandler{
		service:  svc,
		sessions: sessions,
		chat:     svc.LoadChatModel(),
		renderer: newRenderer(logger),
		logger:   logger,
		opts:     opts,
	}
}

func (h *PageHandler) Register(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, views[0].Path, http.StatusFound)
	})
	r.Get(chatView.Path, h.ChatPage)
	r.Post(chatView.Path, h.ChatSend)
	r.Get(captionView.Path, h.CaptionPage)
	r.Post(captionView.Path, h.Caption)
	r.Get(embedView.Path, h.EmbedPage)
	r.Post(embedView.Path, h.Embed)
	r.Get(askView.Path, h.AskPage)
	r.Post(askView.Path, h.Ask)
}

// session returns the caller's chat session, starting one on first use.
func (h *PageHandler) session(w http.ResponseWriter, r *http.Request) *session.Session {
	var id string
	if c, err := r.Cookie(h.opts.CookieName); err == nil {
		id = c.Value
	}

	sess, created := h.sessions.GetOrCreate(id)
	if created {
		h.logger.Info().Str("session", sess.ID).Msg("chat session started")
	}
	http.SetCookie(w, &http.Cookie{
		Name:     h.opts.CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(h.opts.SessionTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

func (h *PageHandler) ChatPage(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.renderer.render(w, http.StatusOK, chatView, page{Transcript: sess.Transcript()})
}

func (h *PageHandler) ChatSend(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	message := r.PostFormValue("message")

	p := page{}
	if _, err := h.chat.Send(r.Context(), sess, message); err != nil {
		p.Error = models.Classify("chat", err)
		p.Input = message
	}
	p.Transcript = sess.Transcript()
	h.renderer.render(w, http.StatusOK, chatView, p)
}

func (h *PageHandler) CaptionPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, captionView, page{})
}

func (h *PageHandler) Caption(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.opts.MaxUploadBytes)
	p := page{}

	img, err := h.readUpload(r)
	if r.MultipartForm != nil {
		p.Prompt = r.PostFormValue("prompt")
	}
	if err != nil {
		p.Error = models.Classify("vision", err)
		h.renderer.render(w, http.StatusOK, captionView, p)
		return
	}
	p.ImageURL = template.URL(imaging.DataURL(img))

	caption, err := h.service.VisionResponse(r.Context(), p.Prompt, img)
	p.Result = resultOf("vision", models.TextResult(caption), err)
	p.Error = p.Result.Err
	h.renderer.render(w, http.StatusOK, captionView, p)
}

func (h *PageHandler) readUpload(r *http.Request) (models.Image, error) {
	if err := r.ParseMultipartForm(h.opts.MaxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return models.Image{}, models.NewError(models.KindInvalidInput, "vision",
				fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit))
		}
		return models.Image{}, models.NewError(models.KindInvalidInput, "vision",
			fmt.Sprintf("invalid upload: %s", err))
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return models.Image{}, models.NewError(models.KindInvalidInput, "vision", "please upload an image")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return models.Image{}, fmt.Errorf("read upload: %w", err)
	}
	return imaging.Decode(data, imaging.FormatFromName(header.Filename))
}

func (h *PageHandler) EmbedPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, embedView, page{})
}

func (h *PageHandler) Embed(w http.ResponseWriter, r *http.Request) {
	text := r.PostFormValue("text")

	values, err := h.service.EmbeddingResponse(r.Context(), text)
	res := resultOf("embedding", models.VectorResult(values), err)
	h.renderer.render(w, http.StatusOK, embedView, page{Input: text, Result: res, Error: res.Err})
}

func (h *PageHandler) AskPage(w http.ResponseWriter, r *http.Request) {
	h.renderer.render(w, http.StatusOK, askView, page{})
}

func (h *PageHandler) Ask(w http.ResponseWriter, r *http.Request) {
	prompt := r.PostFormValue("prompt")

	text, err := h.service.TextResponse(r.Context(), prompt, nil)
	res := resultOf("text", models.TextResult(text), err)
	h.renderer.render(w, http.StatusOK, askView, page{Input: prompt, Result: res, Error: res.Err})
}

func resultOf(op string, ok models.Result, err error) *models.Result {
	if err != nil {
		res := models.ErrorResult(op, err)
		return &res
	}
	return &ok
}
