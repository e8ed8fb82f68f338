package anthropic

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	anthropic "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	domain "github.com/bryanwahyu/hairscan/internal/domain/ai"
	"github.com/bryanwahyu/hairscan/internal/infra/ai/prompt"
)

const maxTokens = 1024

// Messager is the part of the SDK client the analyzer uses.
type Messager interface {
	New(ctx context.Context, params anthropic.MessageNewParams, opts ...option.RequestOption) (*anthropic.Message, error)
}

type Client struct {
	messages Messager
	Model    string
}

func NewClient(apiKey, model string) *Client {
	c := anthropic.NewClient(option.WithAPIKey(apiKey))
	return &Client{messages: &c.Messages, Model: model}
}

// NewClientWith wraps an existing messager, used by tests.
func NewClientWith(m Messager, model string) *Client {
	return &Client{messages: m, Model: model}
}

// Analyze sends the photo as a base64 image block followed by the analysis
// prompt and returns the concatenated text blocks of the answer.
func (c *Client) Analyze(ctx context.Context, img domain.Image) (string, error) {
	model := c.Model
	if model == "" {
		model = string(anthropic.ModelClaudeSonnet4_20250514)
	}
	contentType := img.ContentType
	if contentType == "" {
		contentType = "image/jpeg"
	}

	resp, err := c.messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(model),
		MaxTokens:   maxTokens,
		Temperature: anthropic.Float(0.7),
		System:      []anthropic.TextBlockParam{{Text: prompt.GetSystemPrompt()}},
		Messages: []anthropic.MessageParam{anthropic.NewUserMessage(
			anthropic.NewImageBlockBase64(contentType, base64.StdEncoding.EncodeToString(img.Data)),
			anthropic.NewTextBlock(prompt.GetUserPrompt()),
		)},
	})
	if err != nil {
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", domain.ErrQuotaExceeded, err)
		}
		return "", fmt.Errorf("failed to create message: %w", err)
	}

	var sb strings.Builder
	for _, b := range resp.Content {
		if b.Type == "text" {
			sb.WriteString(b.Text)
		}
	}
	if sb.Len() == 0 {
		return "", domain.ErrEmptyCompletion
	}
	return sb.String(), nil
}
