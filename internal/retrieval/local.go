package retrieval

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const localSystemPrompt = "You are a knowledge-base assistant. Answer the user's question " +
	"concisely using only well-established facts. If you do not know, say so."

// LocalAnswerer generates answers from an OpenAI-compatible endpoint,
// typically a locally hosted model. It is an optional tier of the
// fallback chain, enabled only when a base URL is configured.
type LocalAnswerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// LocalGenerator talks to any OpenAI-compatible chat completion API.
type LocalGenerator struct {
	client *openai.Client
	model  string
}

func NewLocalGenerator(baseURL, model string) *LocalGenerator {
	cfg := openai.DefaultConfig("")
	cfg.BaseURL = baseURL
	return &LocalGenerator{client: openai.NewClientWithConfig(cfg), model: model}
}

func (g *LocalGenerator) Answer(ctx context.Context, question string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: localSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: question},
		},
	})
	if err != nil {
		return "", fmt.Errorf("local completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
