package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider using the OpenAI SDK.
// It also backs OpenRouter and other OpenAI-compatible APIs via BaseURL.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

// NewOpenAIProvider creates a new OpenAI provider with a bounded per-attempt
// timeout.
func NewOpenAIProvider(cfg OpenAIConfig, timeout time.Duration) *OpenAIProvider {
	return newOpenAICompatible(cfg, &http.Client{Timeout: timeout})
}

// newOpenAICompatible builds a provider for any OpenAI-compatible API.
// The HTTP client is caller-supplied so variants can attach their own
// transport (OpenRouter adds attribution headers this way).
func newOpenAICompatible(cfg OpenAIConfig, client *http.Client) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}
	config.HTTPClient = client

	return &OpenAIProvider{
		client: openai.NewClientWithConfig(config),
		model:  cfg.Model,
	}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	messages := buildOpenAIMessages(req)

	chatReq := openai.ChatCompletionRequest{
		Model:               p.model,
		Messages:            messages,
		MaxCompletionTokens: req.MaxTokens,
		Temperature:         float32(req.Temperature),
	}

	// Constrain the model to emit a JSON object; the exact shape is
	// enforced locally by validateResponse.
	if req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return nil, mapOpenAIError(err)
	}

	content, err := extractOpenAIContent(resp)
	if err != nil {
		return nil, err
	}

	// A truncated response is reported as such before validation; the
	// clipped JSON would otherwise read as a parse failure.
	stopReason := mapOpenAIStopReason(resp.Choices[0].FinishReason)
	if stopReason == StopReasonMaxTokens {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}

	// Validate against schema if provided.
	if req.Schema != nil {
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}

	return &Response{
		Content: content,
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
		Model:      resp.Model,
		StopReason: stopReason,
	}, nil
}

func (p *OpenAIProvider) ModelID() string {
	return p.model
}

// extractOpenAIContent unwraps choices[0].message.content from the response
// envelope. An empty or absent choices array is a malformed envelope and is
// reported before any JSON parsing happens.
func extractOpenAIContent(resp openai.ChatCompletionResponse) ([]byte, error) {
	if len(resp.Choices) == 0 {
		return nil, &ErrMalformedEnvelope{
			Err: errors.New("no choices in response"),
		}
	}
	content := resp.Choices[0].Message.Content
	if content == "" {
		return nil, &ErrMalformedEnvelope{
			Err: errors.New("empty message content in first choice"),
		}
	}
	return []byte(content), nil
}

func buildOpenAIMessages(req Request) []openai.ChatCompletionMessage {
	var messages []openai.ChatCompletionMessage

	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, m := range req.Messages {
		role := openai.ChatMessageRoleUser
		if m.Role == RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: m.Content,
		})
	}

	return messages
}

func mapOpenAIStopReason(reason openai.FinishReason) string {
	switch reason {
	case openai.FinishReasonStop:
		return StopReasonEnd
	case openai.FinishReasonLength:
		return StopReasonMaxTokens
	default:
		return StopReasonEnd
	}
}

// mapOpenAIError classifies SDK errors: 429 is the only retryable status,
// everything else (including network failures) is a provider outage.
func mapOpenAIError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
