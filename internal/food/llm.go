package food

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const llmSystemPrompt = "You are a nutrition assistant. Given a food name, " +
	"answer with the approximate energy density in kcal per 100 grams " +
	"as a single integer and nothing else."

var firstNumberRe = regexp.MustCompile(`\d+`)

// LLM estimates caloric density with a chat model when the nutrition
// database has no entry for the product.
type LLM struct {
	client openai.Client
	model  openai.ChatModel
}

// NewLLM builds the estimator from an API key.
func NewLLM(apiKey string, opts ...option.RequestOption) *LLM {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &LLM{
		client: openai.NewClient(reqOpts...),
		model:  openai.ChatModelGPT4oMini,
	}
}

// KcalPer100g asks the model for an estimate and parses the first
// integer in its reply.
func (l *LLM) KcalPer100g(ctx context.Context, product string) (int, error) {
	resp, err := l.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: l.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(llmSystemPrompt),
			openai.UserMessage(product),
		},
	})
	if err != nil {
		return 0, fmt.Errorf("food: llm: %w", err)
	}
	if len(resp.Choices) == 0 {
		return 0, fmt.Errorf("food: llm: empty response")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	match := firstNumberRe.FindString(content)
	if match == "" {
		return 0, fmt.Errorf("food: llm: no number in %q", content)
	}
	kcal, err := strconv.Atoi(match)
	if err != nil || kcal <= 0 {
		return 0, fmt.Errorf("food: llm: unusable estimate %q", match)
	}
	return kcal, nil
}
