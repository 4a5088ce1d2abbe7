package outbound

import "context"

type GenerateTextRequest struct {
	SystemPrompt string
	Prompt       string
	MaxTokens    int
}

// TextProviderPort wraps the language-model capability. Implementations do
// no retrying of their own; failures come back as *domain.ProviderError so
// the orchestrator can apply its backoff budget.
type TextProviderPort interface {
	Generate(ctx context.Context, req GenerateTextRequest) (string, error)
}
