package main

import (
	"strings"
	"testing"
	"time"

	"github.com/kdduha/gemini-studio/internal/models"
)

func TestReadEvents(t *testing.T) {
	stream := "event: message\ndata: {\"delta\":\"Hel\"}\n\n" +
		"event: message\ndata: {\"delta\":\"lo\"}\n\n" +
		"event: message\ndata: {\"text\":\"Hello\",\"done\":true}\n\n" +
		"event: done\ndata: {}\n\n"

	var got strings.Builder
	err := readEvents(strings.NewReader(stream), func(c models.StreamChunk) error {
		got.WriteString(c.Delta)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got.String() != "Hello" {
		t.Errorf("text = %q", got.String())
	}
}

func TestReadEventsError(t *testing.T) {
	stream := "event: error\ndata: {\"kind\":\"quota_exceeded\"}\n\n"
	err := readEvents(strings.NewReader(stream), func(models.StreamChunk) error { return nil })
	if err == nil || !strings.Contains(err.Error(), "quota_exceeded") {
		t.Errorf("err = %v", err)
	}
}

func TestAggregateSkipsErrors(t *testing.T) {
	agg := aggregate([]BenchResult{
		{Format: "png", Duration: time.Second, Size: 10},
		{Format: "png", Duration: 3 * time.Second, Size: 30},
		{Format: "png", Err: errTest},
		{Format: "prompt", Duration: time.Second, Size: 5},
	})
	if got := agg["png"]; got.Count != 2 || got.Total != 4*time.Second || got.TotalBytes != 40 {
		t.Errorf("png agg = %+v", got)
	}
	if got := agg["prompt"]; got.Count != 1 {
		t.Errorf("prompt agg = %+v", got)
	}
}

func TestHumanBytes(t *testing.T) {
	cases := map[int64]string{
		512:     "512 B",
		2048:    "2.00 KB",
		3 << 20: "3.00 MB",
		5 << 30: "5.00 GB",
	}
	for size, want := range cases {
		if got := humanBytes(size); got != want {
			t.Errorf("humanBytes(%d) = %q, want %q", size, got, want)
		}
	}
}

type testError string

func (e testError) Error() string { return string(e) }

const errTest = testError("boom")
