package openai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/bryanwahyu/hairscan/internal/domain/ai"
	"github.com/bryanwahyu/hairscan/internal/infra/ai/prompt"
)

const maxTokens = 1024

// ChatCompleter is the part of *openai.Client the analyzer uses.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

type Client struct {
	api   ChatCompleter
	Model string
}

func NewClient(apiKey, model string) *Client {
	return &Client{api: openai.NewClient(apiKey), Model: model}
}

// NewClientWith wraps an existing completer, used by tests.
func NewClientWith(api ChatCompleter, model string) *Client {
	return &Client{api: api, Model: model}
}

// Analyze sends the photo as a data URL next to the analysis prompt and
// returns the raw answer text.
func (c *Client) Analyze(ctx context.Context, img domain.Image) (string, error) {
	model := c.Model
	if model == "" {
		model = "gpt-4o"
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}
	dataURL := fmt.Sprintf("data:%s;base64,%s", contentType, base64.StdEncoding.EncodeToString(img.Data))

	req := openai.ChatCompletionRequest{
		Model:       model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.GetSystemPrompt()},
			{
				Role: openai.ChatMessageRoleUser,
				MultiContent: []openai.ChatMessagePart{
					{
						Type:     openai.ChatMessagePartTypeImageURL,
						ImageURL: &openai.ChatMessageImageURL{URL: dataURL, Detail: openai.ImageURLDetailAuto},
					},
					{Type: openai.ChatMessagePartTypeText, Text: prompt.GetUserPrompt()},
				},
			},
		},
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = maxTokens
		req.Temperature = 0
	} else {
		req.MaxTokens = maxTokens
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		if isQuotaError(err) {
			return "", fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", domain.ErrEmptyCompletion
	}
	return resp.Choices[0].Message.Content, nil
}

func isQuotaError(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests
	}
	return false
}
