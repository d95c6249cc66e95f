package handler

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/kdduha/gemini-studio/internal/imaging"
	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/kdduha/gemini-studio/internal/service"
	"github.com/rs/zerolog"
)

// APIHandler serves the JSON API.
type APIHandler struct {
	service  modelService
	sessions sessionStore
	chat     *service.ChatModel
	logger   zerolog.Logger
}

func NewAPIHandler(logger zerolog.Logger, svc modelService, sessions sessionStore) *APIHandler {
	return &APIHandler{
		service:  svc,
		sessions: sessions,
		chat:     svc.LoadChatModel(),
		logger:   logger,
	}
}

func (h *APIHandler) Register(r chi.Router) {
	r.Post("/ask", h.Ask)
	r.Post("/ask/stream", h.AskStream)
	r.Post("/caption", h.Caption)
	r.Post("/embed", h.Embed)
	r.Post("/chat", h.Chat)
	r.Get("/chat/{sessionID}", h.Transcript)
}

// Ask godoc
// @Summary Answer a prompt
// @Description Single-shot text generation.
// @Tags ask
// @Accept json
// @Produce json
// @Param request body models.AskRequest true "Ask request"
// @Success 200 {object} models.TextResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/ask [post]
func (h *APIHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "text", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, "text", err)
		return
	}

	text, err := h.service.TextResponse(r.Context(), req.Prompt, req.Generation)
	if err != nil {
		respondError(w, "text", err)
		return
	}
	respondJSON(w, http.StatusOK, models.TextResponse{Text: text})
}

// AskStream godoc
// @Summary Stream an answer
// @Description Stream text generation tokens as server-sent events.
// @Tags ask
// @Accept json
// @Produce text/event-stream
// @Param request body models.AskRequest true "Ask request"
// @Success 200 {object} models.StreamChunk "Stream of tokens (SSE)"
// @Failure 400 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /api/v1/ask/stream [post]
func (h *APIHandler) AskStream(w http.ResponseWriter, r *http.Request) {
	var req models.AskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "text_stream", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, "text_stream", err)
		return
	}

	stream, err := h.service.TextResponseStream(r.Context(), req.Prompt, req.Generation)
	if err != nil {
		respondError(w, "text_stream", err)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	flusher := http.NewResponseController(w)

	for chunk := range stream {
		if chunk.Err != nil {
			merr := models.Classify("text_stream", chunk.Err)
			data, _ := sonic.Marshal(models.ErrorResponse{Kind: merr.Kind, Error: merr.Error()})
			fmt.Fprintf(w, "event: error\ndata: %s\n\n", data)
			flusher.Flush()
			return
		}

		data, err := sonic.Marshal(chunk)
		if err != nil {
			fmt.Fprintf(w, "event: error\ndata: marshal error %v\n\n", err)
			flusher.Flush()
			return
		}

		fmt.Fprintf(w, "event: message\ndata: %s\n\n", data)
		flusher.Flush()

		if chunk.Done {
			fmt.Fprintf(w, "event: done\ndata: {}\n\n")
			flusher.Flush()
			return
		}
	}
}

// Caption godoc
// @Summary Caption an image
// @Description Describe an image, optionally steered by a prompt. Image is sent as base64 string in JSON.
// @Tags caption
// @Accept json
// @Produce json
// @Param request body models.CaptionRequest true "Caption request"
// @Success 200 {object} models.TextResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/caption [post]
func (h *APIHandler) Caption(w http.ResponseWriter, r *http.Request) {
	var req models.CaptionRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "vision", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, "vision", err)
		return
	}

	img, err := imaging.DecodeBase64(req.FileBase64, req.FileFormat)
	if err != nil {
		respondError(w, "vision", err)
		return
	}

	text, err := h.service.VisionResponse(r.Context(), req.Prompt, img)
	if err != nil {
		respondError(w, "vision", err)
		return
	}
	respondJSON(w, http.StatusOK, models.TextResponse{Text: text})
}

// Embed godoc
// @Summary Embed text
// @Description Compute a document embedding vector for the text.
// @Tags embed
// @Accept json
// @Produce json
// @Param request body models.EmbedRequest true "Embed request"
// @Success 200 {object} models.EmbedResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/embed [post]
func (h *APIHandler) Embed(w http.ResponseWriter, r *http.Request) {
	var req models.EmbedRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "embedding", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, "embedding", err)
		return
	}

	values, err := h.service.EmbeddingResponse(r.Context(), req.Text)
	if err != nil {
		respondError(w, "embedding", err)
		return
	}
	respondJSON(w, http.StatusOK, models.EmbedResponse{Embedding: values, Dimensions: len(values)})
}

// Chat godoc
// @Summary Send a chat message
// @Description Continue the conversation of session_id, or start one when it is empty.
// @Tags chat
// @Accept json
// @Produce json
// @Param request body models.ChatRequest true "Chat request"
// @Success 200 {object} models.ChatResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 429 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /api/v1/chat [post]
func (h *APIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, "chat", err)
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, "chat", err)
		return
	}

	sess, ok := h.sessions.Get(req.SessionID)
	if req.SessionID == "" {
		sess, ok = h.sessions.Create(), true
		h.logger.Info().Str("session", sess.ID).Msg("chat session started")
	}
	if !ok {
		respondNotFound(w, errSessionNotFound)
		return
	}

	reply, err := h.chat.Send(r.Context(), sess, req.Message)
	if err != nil {
		respondError(w, "chat", err)
		return
	}
	respondJSON(w, http.StatusOK, models.ChatResponse{
		SessionID:  sess.ID,
		Reply:      reply,
		Transcript: sess.Transcript(),
	})
}

// Transcript godoc
// @Summary Get a chat transcript
// @Tags chat
// @Produce json
// @Param sessionID path string true "Session ID"
// @Success 200 {object} models.TranscriptResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /api/v1/chat/{sessionID} [get]
func (h *APIHandler) Transcript(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.sessions.Get(chi.URLParam(r, "sessionID"))
	if !ok {
		respondNotFound(w, errSessionNotFound)
		return
	}
	respondJSON(w, http.StatusOK, models.TranscriptResponse{
		SessionID:  sess.ID,
		Transcript: sess.Transcript(),
	})
}
