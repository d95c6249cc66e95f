package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/kdduha/gemini-studio/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MODEL_PROVIDER", "GOOGLE_API_KEY", "OPENAI_API_KEY",
		"GEMINI_MODEL", "SESSION_TTL", "MODEL_RATE_LIMIT",
	} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GOOGLE_API_KEY", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatal(err)
	}

	want := GeminiConfig{
		APIKey:         "secret",
		Model:          "gemini-1.5-flash",
		EmbeddingModel: "embedding-001",
	}
	if diff := cmp.Diff(want, cfg.Gemini); diff != "" {
		t.Errorf("gemini config mismatch (-want +got):\n%s", diff)
	}
	if cfg.Provider != ProviderGemini {
		t.Errorf("provider = %q, want %q", cfg.Provider, ProviderGemini)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Errorf("session ttl = %v", cfg.Session.TTL)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("port = %q", cfg.Server.Port)
	}
}

func TestLoadMissingCredential(t *testing.T) {
	cases := map[string]string{
		"gemini": ProviderGemini,
		"openai": ProviderOpenAI,
	}
	for name, provider := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MODEL_PROVIDER", provider)

			_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := models.KindOf(err); got != models.KindConfigMissing {
				t.Errorf("kind = %q, want %q", got, models.KindConfigMissing)
			}
		})
	}
}

func TestLoadDotenv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "test.env")
	data := "GOOGLE_API_KEY=from-file\nGEMINI_MODEL=gemini-2.0-flash\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		os.Unsetenv("GOOGLE_API_KEY")
		os.Unsetenv("GEMINI_MODEL")
	})

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Gemini.APIKey != "from-file" {
		t.Errorf("api key = %q", cfg.Gemini.APIKey)
	}
	if cfg.Gemini.Model != "gemini-2.0-flash" {
		t.Errorf("model = %q", cfg.Gemini.Model)
	}
}

func TestLoadUnknownProvider(t *testing.T) {
	clearEnv(t)
	t.Setenv("MODEL_PROVIDER", "bard")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatal("expected error")
	}
}
