// Package openai provides an ai.Responder backed by the OpenAI Chat
// Completions API. It adapts a single prompt/reply exchange; streaming and
// tool calling are out of scope for a synchronization endpoint.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
)

// Options configure the OpenAI responder. Fields mirror a minimal subset of
// Chat Completion parameters; extend via functional options without breaking
// callers.
type Options struct {
	Model               string
	Temperature         float64
	MaxCompletionTokens int64
}

// Responder wraps the OpenAI Chat Completions API behind the ai.Responder
// interface.
type Responder struct {
	client *openai.Client
	opts   Options
}

// NewResponder creates a responder using the official client, configured
// from the environment (OPENAI_API_KEY).
func NewResponder(optFns ...func(o *Options)) *Responder {
	client := openai.NewClient()
	return NewResponderFromClient(&client, optFns...)
}

// NewResponderFromClient creates a responder from an existing client.
func NewResponderFromClient(client *openai.Client, optFns ...func(o *Options)) *Responder {
	opts := Options{
		Model:               openai.ChatModelGPT4oMini,
		Temperature:         0.7,
		MaxCompletionTokens: 1024,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Responder{client: client, opts: opts}
}

// Reply implements ai.Responder via a non-streaming chat completion.
func (r *Responder) Reply(ctx context.Context, prompt string) (string, error) {
	params := openai.ChatCompletionNewParams{
		Messages:            []openai.ChatCompletionMessageParamUnion{openai.UserMessage(prompt)},
		Model:               r.opts.Model,
		Temperature:         openai.Float(r.opts.Temperature),
		MaxCompletionTokens: openai.Int(r.opts.MaxCompletionTokens),
	}

	resp, err := r.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("openai api error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
