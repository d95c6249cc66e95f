// Package imaging turns uploaded files into images a vision model accepts.
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"strings"
	"time"

	"github.com/gen2brain/go-fitz"
	"github.com/kdduha/gemini-studio/internal/metrics"
	"github.com/kdduha/gemini-studio/internal/models"
)

const (
	PNG  = "png"
	JPEG = "jpeg"
	JPG  = "jpg"
	PDF  = "pdf"
)

const pdfJPEGQuality = 90

// Formats lists the accepted upload extensions.
var Formats = []string{JPG, JPEG, PNG, PDF}

// NormalizeFormat lowercases a file format or extension and strips the dot.
func NormalizeFormat(format string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(format), "."))
}

// FormatFromName returns the normalised extension of a file name.
func FormatFromName(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return ""
	}
	return NormalizeFormat(name[i+1:])
}

// DecodeBase64 is Decode for base64 payloads sent in JSON.
func DecodeBase64(data, format string) (models.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return models.Image{}, models.NewError(models.KindInvalidInput, "image", fmt.Sprintf("failed to decode base64: %s", err))
	}
	return Decode(raw, format)
}

// Decode validates raw bytes of the given format. PNG and JPEG pass through
// unchanged; the first page of a PDF is rendered to JPEG.
func Decode(data []byte, format string) (img models.Image, err error) {
	format = NormalizeFormat(format)
	start := time.Now()
	defer func() {
		status := "ok"
		if err != nil {
			status = "error"
		}
		metrics.ImagePreprocess(status, format, time.Since(start))
	}()

	if len(data) == 0 {
		return models.Image{}, models.NewError(models.KindInvalidInput, "image", "file is empty")
	}

	switch format {
	case PNG, JPEG, JPG:
		return decodeRaster(data)
	case PDF:
		return renderPDF(data)
	default:
		return models.Image{}, models.NewError(models.KindInvalidInput, "image",
			fmt.Sprintf("unsupported file format {%s}", format))
	}
}

func decodeRaster(data []byte) (models.Image, error) {
	_, kind, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return models.Image{}, models.NewError(models.KindInvalidInput, "image",
			fmt.Sprintf("failed to read image: %s", err))
	}
	switch kind {
	case PNG, JPEG:
	default:
		return models.Image{}, models.NewError(models.KindInvalidInput, "image",
			fmt.Sprintf("unsupported image encoding {%s}", kind))
	}
	return models.Image{Format: kind, MIMEType: "image/" + kind, Data: data}, nil
}

func renderPDF(data []byte) (models.Image, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return models.Image{}, models.NewError(models.KindInvalidInput, "image",
			fmt.Sprintf("failed to open pdf: %s", err))
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return models.Image{}, models.NewError(models.KindInvalidInput, "image", "pdf has no pages")
	}

	page, err := doc.Image(0)
	if err != nil {
		return models.Image{}, fmt.Errorf("render pdf page: %w", err)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, page, &jpeg.Options{Quality: pdfJPEGQuality}); err != nil {
		return models.Image{}, fmt.Errorf("encode pdf page: %w", err)
	}
	return models.Image{Format: JPEG, MIMEType: "image/jpeg", Data: buf.Bytes()}, nil
}

// DataURL encodes img for inline display in HTML.
func DataURL(img models.Image) string {
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, base64.StdEncoding.EncodeToString(img.Data))
}
