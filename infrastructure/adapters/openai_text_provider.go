package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/donovanhide/eventsource"

	"storyspark-api/application/ports/outbound"
	"storyspark-api/config"
	"storyspark-api/domain"
)

const doneSignal = "[DONE]"

type chatCompletionRequest struct {
	Stream    bool                    `json:"stream"`
	Model     string                  `json:"model"`
	MaxTokens int                     `json:"max_tokens,omitempty"`
	Messages  []chatCompletionMessage `json:"messages"`
}

type chatCompletionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// openAITextProvider consumes an OpenAI-compatible chat-completions endpoint
// as a server-sent event stream and assembles the tokens into the full
// completion. It carries no retry logic; classification of failures is done
// here, the backoff budget lives in the orchestrator.
type openAITextProvider struct {
	logger    outbound.LoggerPort
	llmConfig *config.LLMConfig
}

func NewOpenAITextProvider(llmConfig *config.LLMConfig, logger outbound.LoggerPort) outbound.TextProviderPort {
	return &openAITextProvider{
		logger:    logger,
		llmConfig: llmConfig,
	}
}

func (p *openAITextProvider) Generate(ctx context.Context, req outbound.GenerateTextRequest) (string, error) {
	const op = "text_generation"

	httpReq, err := p.createRequest(ctx, req)
	if err != nil {
		return "", domain.NewPermanentError(op, err)
	}

	stream, err := eventsource.SubscribeWithRequest("", httpReq)
	if err != nil {
		p.logger.Error(err, "Failed to subscribe to completion stream")
		return "", domain.NewTransientError(op, err)
	}
	defer stream.Close()

	var builder strings.Builder
	for {
		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				return "", domain.NewTransientError(op, ctx.Err())
			}
			return "", ctx.Err()
		case ev := <-stream.Events:
			if ev.Data() == doneSignal {
				return builder.String(), nil
			}
			token, extractErr := p.extractToken(ev)
			if extractErr != nil {
				return "", domain.NewPermanentError(op, extractErr)
			}
			builder.WriteString(token)
		case streamErr := <-stream.Errors:
			if streamErr == io.EOF {
				return builder.String(), nil
			}
			p.logger.Error(streamErr, "Error occurred during completion streaming")
			return "", domain.NewTransientError(op, streamErr)
		}
	}
}

func (p *openAITextProvider) extractToken(event eventsource.Event) (string, error) {
	var chunk chatCompletionChunk
	if err := json.Unmarshal([]byte(event.Data()), &chunk); err != nil {
		p.logger.Error(err, "Failed to unmarshal completion chunk")
		return "", err
	}
	if len(chunk.Choices) == 0 {
		return "", nil
	}
	return chunk.Choices[0].Delta.Content, nil
}

func (p *openAITextProvider) createRequest(ctx context.Context, req outbound.GenerateTextRequest) (*http.Request, error) {
	messages := make([]chatCompletionMessage, 0, 2)
	if req.SystemPrompt != "" {
		messages = append(messages, chatCompletionMessage{Role: "system", Content: req.SystemPrompt})
	}
	messages = append(messages, chatCompletionMessage{Role: "user", Content: req.Prompt})

	payload := chatCompletionRequest{
		Stream:    true,
		Model:     p.llmConfig.Model,
		MaxTokens: req.MaxTokens,
		Messages:  messages,
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal the request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.llmConfig.ApiUrl, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to create the HTTP request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+p.llmConfig.ApiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	return httpReq, nil
}
