package article

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ZaguanLabs/wortlex"
	"github.com/sashabaranov/go-openai"
)

// DefaultLLMBaseURL is an OpenAI-compatible endpoint serving many models.
const DefaultLLMBaseURL = "https://openrouter.ai/api/v1"

// LLMDetector asks a chat completion model for a word's article.
type LLMDetector struct {
	client *openai.Client
	model  string
}

// LLMConfig holds configuration for the LLM detector.
type LLMConfig struct {
	APIKey  string // Required
	Model   string // Default: "openai/gpt-4o-mini"
	BaseURL string // Default: OpenRouter
}

// NewLLMDetector creates a new LLM detector.
func NewLLMDetector(cfg LLMConfig) (*LLMDetector, error) {
	if cfg.APIKey == "" {
		return nil, &wortlex.ConfigurationError{Field: "llm_api_key", Message: "LLM API key is not set"}
	}

	config := openai.DefaultConfig(cfg.APIKey)
	config.BaseURL = DefaultLLMBaseURL
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = "openai/gpt-4o-mini"
	}

	return &LLMDetector{
		client: openai.NewClientWithConfig(config),
		model:  model,
	}, nil
}

const llmSystemPrompt = `You are a German grammar reference.
For the German word you are given, answer with a JSON object:
{"isNoun": true|false, "article": "der"|"die"|"das"|""}
Use an empty article when the word is not a noun or its gender is ambiguous.
Answer with the JSON object only.`

type llmAnswer struct {
	IsNoun  bool   `json:"isNoun"`
	Article string `json:"article"`
}

// DetectArticle implements Detector.
func (d *LLMDetector) DetectArticle(ctx context.Context, word string) (*wortlex.ArticleInfo, error) {
	word = stripArticle(word)
	if word == "" {
		return nil, nil
	}

	resp, err := d.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: d.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: word},
		},
		Temperature: 0,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("chat completion returned no choices")
	}

	return parseLLMAnswer(resp.Choices[0].Message.Content)
}

// parseLLMAnswer accepts the JSON object, optionally wrapped in a code fence.
func parseLLMAnswer(content string) (*wortlex.ArticleInfo, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var answer llmAnswer
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &answer); err != nil {
		return nil, fmt.Errorf("invalid model answer %q: %w", content, err)
	}

	if !answer.IsNoun {
		return &wortlex.ArticleInfo{IsNoun: false, Source: "llm"}, nil
	}
	article := strings.ToLower(strings.TrimSpace(answer.Article))
	if !wortlex.IsDefiniteArticle(article) {
		return &wortlex.ArticleInfo{IsNoun: true, Source: "llm"}, nil
	}
	return nounInfo(wortlex.GenderForArticle(article), "llm"), nil
}

// Verify LLMDetector implements Detector
var _ Detector = (*LLMDetector)(nil)
