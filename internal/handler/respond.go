package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/gemini-studio/internal/models"
)

func decodeJSON(r *http.Request, v any) error {
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(v); err != nil {
		return models.NewError(models.KindInvalidInput, "", fmt.Sprintf("invalid JSON: %s", err))
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func respondError(w http.ResponseWriter, op string, err error) {
	merr := models.Classify(op, err)
	respondJSON(w, merr.Kind.HTTPStatus(), models.ErrorResponse{
		Kind:  merr.Kind,
		Error: merr.Error(),
	})
}

var errSessionNotFound = errors.New("session not found")

func respondNotFound(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusNotFound, models.ErrorResponse{
		Kind:  models.KindInvalidInput,
		Error: err.Error(),
	})
}
