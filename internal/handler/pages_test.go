package handler

import (
	"bytes"
	"errors"
	"html"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/kdduha/gemini-studio/internal/provider/fake"
)

func postForm(path string, values url.Values, cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func TestRootRedirectsToChat(t *testing.T) {
	env := newTestEnv(&fake.Provider{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusFound {
		t.Fatalf("code = %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/chat" {
		t.Errorf("location = %q", loc)
	}
}

func TestViewsRender(t *testing.T) {
	env := newTestEnv(&fake.Provider{})

	for _, v := range views {
		w := env.do(httptest.NewRequest(http.MethodGet, v.Path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: code = %d", v.Path, w.Code)
		}
		body := w.Body.String()
		if !strings.Contains(body, html.EscapeString(v.Heading)) && !strings.Contains(body, v.Heading) {
			t.Errorf("%s: heading %q missing", v.Path, v.Heading)
		}
		for _, other := range views {
			if !strings.Contains(body, `href="`+other.Path+`"`) {
				t.Errorf("%s: menu link %s missing", v.Path, other.Path)
			}
		}
	}
}

func TestChatPageStartsSession(t *testing.T) {
	env := newTestEnv(&fake.Provider{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/chat", nil))
	c := sessionCookie(t, w)
	if _, ok := env.sessions.Get(c.Value); !ok {
		t.Fatal("session from cookie is not live")
	}

	// The same cookie keeps the same session.
	r := httptest.NewRequest(http.MethodGet, "/chat", nil)
	r.AddCookie(c)
	w = env.do(r)
	if got := sessionCookie(t, w).Value; got != c.Value {
		t.Errorf("session changed: %q -> %q", c.Value, got)
	}
	if n := env.sessions.Len(); n != 1 {
		t.Errorf("sessions = %d, want 1", n)
	}
}

func TestChatExchangeScenario(t *testing.T) {
	env := newTestEnv(&fake.Provider{})

	c := sessionCookie(t, env.do(httptest.NewRequest(http.MethodGet, "/chat", nil)))

	w := env.do(postForm("/chat", url.Values{"message": {"Hello"}}, c))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "reply #1 to Hello") {
		t.Errorf("reply missing from page:\n%s", w.Body.String())
	}

	env.do(postForm("/chat", url.Values{"message": {"How are you?"}}, c))

	sess, _ := env.sessions.Get(c.Value)
	turns := sess.Transcript()
	want := []models.Turn{
		{Role: models.RoleUser, Text: "Hello"},
		{Role: models.RoleModel, Text: "reply #1 to Hello"},
		{Role: models.RoleUser, Text: "How are you?"},
		{Role: models.RoleModel, Text: "reply #2 to How are you?"},
	}
	if len(turns) != len(want) {
		t.Fatalf("len = %d, want %d", len(turns), len(want))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Errorf("turn %d = %+v, want %+v", i, turns[i], want[i])
		}
	}

	body := env.do(func() *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/chat", nil)
		r.AddCookie(c)
		return r
	}()).Body.String()
	first := strings.Index(body, "Hello")
	second := strings.Index(body, "How are you?")
	if first < 0 || second < 0 || first > second {
		t.Errorf("transcript not rendered in order")
	}
	if !strings.Contains(body, `class="role">assistant<`) {
		t.Errorf("model turns should be shown as assistant")
	}
}

func TestAskShowsTextUnchanged(t *testing.T) {
	env := newTestEnv(&fake.Provider{})

	w := env.do(postForm("/ask", url.Values{"prompt": {"What is 2 + 2?"}}))
	if w.Code != http.StatusOK {
		t.Fatalf("code = %d", w.Code)
	}
	want := `<div class="output" id="result">answer: What is 2 &#43; 2?</div>`
	if !strings.Contains(w.Body.String(), want) {
		t.Errorf("body does not contain %s:\n%s", want, w.Body.String())
	}
}

func TestEmbedRendersVector(t *testing.T) {
	env := newTestEnv(&fake.Provider{Embedding: []float32{0.25, -1, 3}})

	w := env.do(postForm("/embed", url.Values{"text": {"cat"}}))
	if !strings.Contains(w.Body.String(), "[0.25, -1, 3]") {
		t.Errorf("vector missing:\n%s", w.Body.String())
	}
}

func TestFailuresRenderInline(t *testing.T) {
	cases := map[string]struct {
		path   string
		values url.Values
	}{
		"chat":  {path: "/chat", values: url.Values{"message": {"Hello"}}},
		"ask":   {path: "/ask", values: url.Values{"prompt": {"hi"}}},
		"embed": {path: "/embed", values: url.Values{"text": {"cat"}}},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			env := newTestEnv(&fake.Provider{Err: errors.New("upstream exploded")})

			w := env.do(postForm(tc.path, tc.values))
			if w.Code != http.StatusOK {
				t.Fatalf("code = %d", w.Code)
			}
			body := w.Body.String()
			if !strings.Contains(body, `role="alert"`) || !strings.Contains(body, "upstream exploded") {
				t.Errorf("failure reason not shown:\n%s", body)
			}
		})
	}
}

func TestMissingCredentialShowsBanner(t *testing.T) {
	env := newTestEnv(nil)

	w := env.do(postForm("/ask", url.Values{"prompt": {"hi"}}))
	if !strings.Contains(w.Body.String(), "Configuration error") {
		t.Errorf("config banner missing:\n%s", w.Body.String())
	}
}

func TestChatFailureKeepsTranscriptAndInput(t *testing.T) {
	p := &fake.Provider{}
	env := newTestEnv(p)
	c := sessionCookie(t, env.do(httptest.NewRequest(http.MethodGet, "/chat", nil)))

	env.do(postForm("/chat", url.Values{"message": {"Hello"}}, c))
	p.Err = models.NewError(models.KindQuotaExceeded, "", "daily limit")

	w := env.do(postForm("/chat", url.Values{"message": {"again"}}, c))
	body := w.Body.String()
	if !strings.Contains(body, "Quota exceeded") || !strings.Contains(body, "daily limit") {
		t.Errorf("quota error not rendered:\n%s", body)
	}
	if !strings.Contains(body, `value="again"`) {
		t.Errorf("input not kept")
	}

	sess, _ := env.sessions.Get(c.Value)
	if sess.Len() != 2 {
		t.Errorf("len = %d, want 2", sess.Len())
	}
}

func uploadRequest(t *testing.T, filename string, data []byte, prompt string) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if prompt != "" {
		mw.WriteField("prompt", prompt)
	}
	if filename != "" {
		fw, err := mw.CreateFormFile("image", filename)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write(data)
	}
	mw.Close()

	r := httptest.NewRequest(http.MethodPost, "/caption", &body)
	r.Header.Set("Content-Type", mw.FormDataContentType())
	return r
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestCaption(t *testing.T) {
	env := newTestEnv(&fake.Provider{})

	w := env.do(uploadRequest(t, "cat.png", pngBytes(t), ""))
	body := w.Body.String()
	if !strings.Contains(body, "Write a short caption for this image") {
		t.Errorf("caption missing:\n%s", body)
	}
	if !strings.Contains(body, `src="data:image/png;base64,`) {
		t.Errorf("uploaded image not shown")
	}
}

func TestCaptionErrors(t *testing.T) {
	cases := map[string]struct {
		filename string
		data     []byte
		want     string
	}{
		"no_file":     {want: "please upload an image"},
		"unsupported": {filename: "cat.gif", data: []byte("GIF89a"), want: "unsupported file format"},
		"too_large":   {filename: "big.png", data: bytes.Repeat([]byte{1}, 2<<20), want: "exceeds"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			p := &fake.Provider{}
			env := newTestEnv(p)

			w := env.do(uploadRequest(t, tc.filename, tc.data, ""))
			if !strings.Contains(w.Body.String(), tc.want) {
				t.Errorf("body lacks %q:\n%s", tc.want, w.Body.String())
			}
			if calls := p.Calls(); len(calls) != 0 {
				t.Errorf("provider called: %v", calls)
			}
		})
	}
}
