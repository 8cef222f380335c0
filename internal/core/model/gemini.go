package model

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"ligo-assistent/config"
	"ligo-assistent/pkg/logger"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Audio is one recorded question: raw bytes plus the container format
// ("wav", "mp3", ...) the model should expect.
type Audio struct {
	Data   []byte
	Format string
}

type contentPart struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	InputAudio *inputAudio `json:"input_audio,omitempty"`
}

type inputAudio struct {
	Data   string `json:"data"`
	Format string `json:"format"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

// GeminiClient talks to Gemini through its OpenAI-compatible endpoint:
// one chat-completions call carrying the instruction text and the audio
// attachment as distinct content parts.
type GeminiClient struct {
	key     string
	model   string
	baseURL string
	timeout time.Duration
}

func NewGeminiClient() *GeminiClient {
	cfg := config.Cfg.Gemini
	return &GeminiClient{
		key:     cfg.Key,
		model:   cfg.Model,
		baseURL: cfg.BaseURL,
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Generate sends the instruction payload plus the audio attachment and
// returns the model's raw text response.
func (g *GeminiClient) Generate(ctx context.Context, prompt string, audio Audio) (string, error) {
	if g.key == "" {
		return "", errors.New("missing gemini key")
	}
	if len(audio.Data) == 0 {
		return "", errors.New("empty audio")
	}

	client := openai.NewClient(
		option.WithAPIKey(g.key),
		option.WithBaseURL(g.baseURL),
	)
	req := chatRequest{
		Model:       g.model,
		Temperature: 0.2,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "input_audio", InputAudio: &inputAudio{
						Data:   base64.StdEncoding.EncodeToString(audio.Data),
						Format: audio.Format,
					}},
				},
			},
		},
	}

	callCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	var out chatResponse
	if err := client.Post(callCtx, "/chat/completions", req, &out); err != nil {
		logger.Error(err, "%v: generate failed", config.ModuleGemini)
		return "", err
	}
	if len(out.Choices) == 0 {
		err := fmt.Errorf("no choices returned")
		logger.Error(err, "%v: empty response", config.ModuleGemini)
		return "", err
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
