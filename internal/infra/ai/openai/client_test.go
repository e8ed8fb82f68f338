package openai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/bryanwahyu/hairscan/internal/domain/ai"
)

type fakeCompleter struct {
	got  openai.ChatCompletionRequest
	resp openai.ChatCompletionResponse
	err  error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestAnalyze_SendsImageAndPrompt(t *testing.T) {
	fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "Timeline: Age 30"}}},
	}}
	c := NewClientWith(fake, "gpt-4o")

	out, err := c.Analyze(context.Background(), domain.Image{Data: []byte("img"), ContentType: "image/png"})
	require.NoError(t, err)
	assert.Equal(t, "Timeline: Age 30", out)

	require.Len(t, fake.got.Messages, 2)
	parts := fake.got.Messages[1].MultiContent
	require.Len(t, parts, 2)
	assert.Equal(t, "data:image/png;base64,aW1n", parts[0].ImageURL.URL)
	assert.True(t, strings.Contains(parts[1].Text, "Pattern Details:"))
	assert.Equal(t, maxTokens, fake.got.MaxTokens)
	assert.Zero(t, fake.got.MaxCompletionTokens)
}

func TestAnalyze_ReasoningModelUsesCompletionTokens(t *testing.T) {
	fake := &fakeCompleter{resp: openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "x"}}},
	}}
	_, err := NewClientWith(fake, "o3-mini").Analyze(context.Background(), domain.Image{Data: []byte("x")})
	require.NoError(t, err)
	assert.Equal(t, maxTokens, fake.got.MaxCompletionTokens)
	assert.Zero(t, fake.got.MaxTokens)
}

func TestAnalyze_Errors(t *testing.T) {
	_, err := NewClientWith(&fakeCompleter{}, "").Analyze(context.Background(), domain.Image{})
	assert.ErrorIs(t, err, domain.ErrEmptyCompletion)

	quota := &fakeCompleter{err: &openai.APIError{HTTPStatusCode: 429, Message: "slow down"}}
	_, err = NewClientWith(quota, "").Analyze(context.Background(), domain.Image{})
	assert.ErrorIs(t, err, domain.ErrQuotaExceeded)

	other := &fakeCompleter{err: errors.New("boom")}
	_, err = NewClientWith(other, "").Analyze(context.Background(), domain.Image{})
	assert.False(t, errors.Is(err, domain.ErrQuotaExceeded))
	assert.ErrorContains(t, err, "boom")
}
