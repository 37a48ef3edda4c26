// internal/classifier/openai.go
package classifier

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"faq-service/internal/common/config"
)

const systemRole = "You are a precise classification engine. Follow the response protocol exactly."

// OpenAICompleter implements Completer over the OpenAI chat completion API.
type OpenAICompleter struct {
	client      *openai.Client
	model       string
	temperature float32
	timeout     int
}

func NewOpenAICompleter(cfg config.ClassifierConfig) *OpenAICompleter {
	return &OpenAICompleter{
		client:      openai.NewClient(cfg.APIKey),
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     cfg.Timeout,
	}
}

func (o *OpenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.GetDuration(o.timeout))
	defer cancel()

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       o.model,
		Temperature: o.temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemRole},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

var _ Completer = (*OpenAICompleter)(nil)
