package handler

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/rs/zerolog"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"vector":       formatVector,
	"errorMessage": errorMessage,
}

type renderer struct {
	logger zerolog.Logger
	pages  map[string]*template.Template
}

func newRenderer(logger zerolog.Logger) *renderer {
	pages := make(map[string]*template.Template, len(views))
	for _, v := range views {
		pages[v.Key] = template.Must(template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+v.Key+".html"))
	}
	return &renderer{logger: logger, pages: pages}
}

// page is the data every view template receives.
type page struct {
	View view
	Nav  []navItem

	// Error is shown in the banner above the view content.
	Error *models.Error

	Input    string
	Prompt   string
	Result   *models.Result
	ImageURL template.URL

	Transcript []models.Turn
}

func (rd *renderer) render(w http.ResponseWriter, status int, v view, p page) {
	p.View = v
	p.Nav = navFor(v)

	var buf bytes.Buffer
	if err := rd.pages[v.Key].ExecuteTemplate(&buf, "layout.html", p); err != nil {
		rd.logger.Error().Err(err).Str("view", v.Key).Msg("render failed")
		http.Error(w, fmt.Sprintf("failed to render page: %s", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// errorMessage is the text shown to the user for a failed call. It always
// carries the failure reason.
func errorMessage(err *models.Error) string {
	if err == nil {
		return ""
	}
	switch err.Kind {
	case models.KindConfigMissing:
		return "Configuration error: " + err.Detail
	case models.KindServiceUnavailable:
		return "The model service is unavailable right now: " + err.Detail
	case models.KindInvalidInput:
		return "The request was rejected: " + err.Detail
	case models.KindQuotaExceeded:
		return "Quota exceeded, try again later: " + err.Detail
	}
	return "Error: " + err.Detail
}

func formatVector(values []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'g', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
