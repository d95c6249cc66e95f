package models

type TextResponse struct {
	Text string `json:"text"`
}

type EmbedResponse struct {
	Embedding  []float32 `json:"embedding"`
	Dimensions int       `json:"dimensions"`
}

type ChatResponse struct {
	SessionID  string `json:"session_id"`
	Reply      Turn   `json:"reply"`
	Transcript []Turn `json:"transcript"`
}

type TranscriptResponse struct {
	SessionID  string `json:"session_id"`
	Transcript []Turn `json:"transcript"`
}

type ErrorResponse struct {
	Kind  ErrorKind `json:"kind" example:"invalid_input"`
	Error string    `json:"error" example:"prompt is empty"`
}

type StreamChunk struct {
	Delta string `json:"delta,omitempty"`
	Text  string `json:"text,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Err   error  `json:"-"`
}
