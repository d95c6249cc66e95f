package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/kdduha/gemini-studio/internal/models"
)

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestDecodePNG(t *testing.T) {
	data := samplePNG(t)
	for _, format := range []string{"png", ".PNG", " png "} {
		img, err := Decode(data, format)
		if err != nil {
			t.Fatalf("%q: %v", format, err)
		}
		if img.Format != PNG || img.MIMEType != "image/png" {
			t.Errorf("%q: got %s %s", format, img.Format, img.MIMEType)
		}
		if !bytes.Equal(img.Data, data) {
			t.Errorf("%q: data changed", format)
		}
	}
}

func TestDecodeUsesContentEncoding(t *testing.T) {
	// A PNG uploaded with a .jpg name is still sent as PNG.
	img, err := Decode(samplePNG(t), "jpg")
	if err != nil {
		t.Fatal(err)
	}
	if img.Format != PNG {
		t.Errorf("format = %q, want png", img.Format)
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := map[string]struct {
		data   []byte
		format string
	}{
		"empty":       {data: nil, format: "png"},
		"unsupported": {data: []byte("hello"), format: "gif"},
		"corrupt":     {data: []byte("not an image"), format: "png"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(tc.data, tc.format)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := models.KindOf(err); got != models.KindInvalidInput {
				t.Errorf("kind = %q, want invalid_input", got)
			}
		})
	}
}

func TestDecodeBase64(t *testing.T) {
	data := samplePNG(t)
	if _, err := DecodeBase64(base64.StdEncoding.EncodeToString(data), "png"); err != nil {
		t.Fatal(err)
	}
	_, err := DecodeBase64("%%%", "png")
	if models.KindOf(err) != models.KindInvalidInput {
		t.Errorf("err = %v, want invalid_input", err)
	}
}

func TestFormatFromName(t *testing.T) {
	cases := map[string]string{
		"cat.JPG":        "jpg",
		"doc.final.pdf":  "pdf",
		"noext":          "",
		"archive.tar.gz": "gz",
	}
	for name, want := range cases {
		if got := FormatFromName(name); got != want {
			t.Errorf("FormatFromName(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestDataURL(t *testing.T) {
	got := DataURL(models.Image{MIMEType: "image/png", Data: []byte("x")})
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("DataURL = %q", got)
	}
}
