package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/caarlos0/env/v11"
	"github.com/kdduha/gemini-studio/internal/models"
	"github.com/rs/zerolog"
)

type benchConfig struct {
	BaseURL     string  `env:"BENCH_BASE_URL" envDefault:"http://localhost:8080"`
	DataDir     string  `env:"BENCH_DATA_DIR" envDefault:"./data"`
	Temperature float64 `env:"BENCH_TEMPERATURE" envDefault:"0.7"`
	MaxTokens   int     `env:"BENCH_MAX_TOKENS" envDefault:"512"`
}

var imageFormats = []string{"jpg", "jpeg", "png", "pdf"}

const promptFormat = "prompt"

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

func main() {
	ctx := context.Background()

	var cfg benchConfig
	if err := env.Parse(&cfg); err != nil {
		logger.Fatal().Err(err).Msg("config error")
	}

	var results []BenchResult
	for _, format := range imageFormats {
		dataPath := filepath.Join(cfg.DataDir, format)

		images, _ := os.ReadDir(dataPath)

		for _, img := range images {
			res := benchmarkCaption(ctx, cfg, filepath.Join(dataPath, img.Name()))
			logResult(res)
			results = append(results, res)
		}
	}

	prompts, err := readPrompts(filepath.Join(cfg.DataDir, "prompts.txt"))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		logger.Fatal().Err(err).Msg("read prompts")
	}
	for i, prompt := range prompts {
		res := benchmarkAsk(ctx, cfg, fmt.Sprintf("prompt-%d", i+1), prompt)
		logResult(res)
		results = append(results, res)
	}

	printMarkdown(results)
}

func logResult(res BenchResult) {
	if res.Err != nil {
		logger.Error().Str("file", res.File).Err(res.Err).Msg("request failed")
	} else {
		logger.Info().Str("file", res.File).Dur("duration", res.Duration).Msg("ok")
	}
}

func readPrompts(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var prompts []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			prompts = append(prompts, line)
		}
	}
	return prompts, sc.Err()
}

func benchmarkCaption(ctx context.Context, cfg benchConfig, filePath string) BenchResult {
	start := time.Now()
	format := strings.TrimPrefix(filepath.Ext(filePath), ".")

	fileRaw, err := os.ReadFile(filePath)
	if err != nil {
		return BenchResult{File: filePath, Format: format, Err: err}
	}

	req := models.CaptionRequest{
		Prompt:     "Write a short caption for this image",
		FileBase64: base64.StdEncoding.EncodeToString(fileRaw),
		FileName:   filepath.Base(filePath),
		FileFormat: format,
	}

	var resp models.TextResponse
	err = postJSON(ctx, cfg.BaseURL+"/api/v1/caption", req, &resp)

	return BenchResult{
		File:     filepath.Base(filePath),
		Format:   format,
		Duration: time.Since(start),
		Tokens:   len(resp.Text),
		Err:      err,
		Size:     int64(len(fileRaw)),
	}
}

func benchmarkAsk(ctx context.Context, cfg benchConfig, name, prompt string) BenchResult {
	start := time.Now()

	req := models.AskRequest{
		Prompt: prompt,
		Generation: &models.GenerationParams{
			Temperature: &cfg.Temperature,
			MaxTokens:   &cfg.MaxTokens,
		},
	}

	var full strings.Builder
	err := sendStream(ctx, cfg.BaseURL+"/api/v1/ask/stream", req, func(c models.StreamChunk) error {
		full.WriteString(c.Delta)
		return nil
	})

	return BenchResult{
		File:     name,
		Format:   promptFormat,
		Duration: time.Since(start),
		Tokens:   len(full.String()),
		Err:      err,
		Size:     int64(len(prompt)),
	}
}

func postJSON(ctx context.Context, endpoint string, req, resp any) error {
	body, err := sonic.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer httpResp.Body.Close()

	b, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return err
	}
	if httpResp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status %d: %s", httpResp.StatusCode, strings.TrimSpace(string(b)))
	}
	return sonic.Unmarshal(b, resp)
}

func sendStream[T any](ctx context.Context, endpoint string, req T, onChunk func(models.StreamChunk) error) error {
	body, err := sonic.Marshal(req)
	if err != nil {
		return fmt.Errorf("marshal req: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bad status %d: %s",
			resp.StatusCode,
			strings.TrimSpace(string(b)),
		)
	}

	return readEvents(resp.Body, onChunk)
}

func readEvents(r io.Reader, onChunk func(models.StreamChunk) error) error {
	reader := bufio.NewReader(r)

	var event string
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)

		if strings.HasPrefix(line, "event: ") {
			event = strings.TrimPrefix(line, "event: ")
			continue
		}
		if !strings.HasPrefix(line, "data: ") {
			continue
		}

		payload := strings.TrimPrefix(line, "data: ")
		switch event {
		case "done":
			return nil
		case "error":
			return fmt.Errorf("stream error: %s", payload)
		}

		if !strings.HasPrefix(payload, "{") {
			return fmt.Errorf("unexpected payload: %s", payload)
		}

		var c models.StreamChunk
		if err := sonic.UnmarshalString(payload, &c); err != nil {
			return err
		}

		if err := onChunk(c); err != nil {
			return err
		}
	}
}

func aggregate(results []BenchResult) map[string]Agg {
	m := map[string]Agg{}
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		a := m[r.Format]
		a.Count++
		a.TotalBytes += r.Size
		a.Total += r.Duration
		m[r.Format] = a
	}
	return m
}

func printMarkdown(results []BenchResult) {
	fmt.Println("\n## Benchmark Results")
	fmt.Println()
	fmt.Println("| Format | Requests | Avg Time | Total Time | Avg Input Size |")
	fmt.Println("|--------|----------|----------|------------|----------------|")

	agg := aggregate(results)

	formats := make([]string, 0, len(agg))
	for format := range agg {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	var (
		totalCount    int
		totalDuration time.Duration
		totalBytes    int64
	)

	for _, format := range formats {
		a := agg[format]
		avg := a.Total / time.Duration(a.Count)
		avgSize := a.TotalBytes / int64(a.Count)
		fmt.Printf("| %s | %d | %v | %v | %s |\n",
			format,
			a.Count,
			avg.Round(time.Millisecond),
			a.Total.Round(time.Millisecond),
			humanBytes(avgSize),
		)
		totalCount += a.Count
		totalDuration += a.Total
		totalBytes += a.TotalBytes
	}

	if totalCount > 0 {
		mean := totalDuration / time.Duration(totalCount)
		avgSize := totalBytes / int64(totalCount)
		fmt.Printf("| **ALL** | %d | %v | %v | %s |\n",
			totalCount,
			mean.Round(time.Millisecond),
			totalDuration.Round(time.Millisecond),
			humanBytes(avgSize),
		)
	}
}

func humanBytes(size int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case size >= GB:
		return fmt.Sprintf("%.2f GB", float64(size)/GB)
	case size >= MB:
		return fmt.Sprintf("%.2f MB", float64(size)/MB)
	case size >= KB:
		return fmt.Sprintf("%.2f KB", float64(size)/KB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
