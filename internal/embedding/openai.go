package embedding

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenAIEncoder implements Encoder for the OpenAI embeddings API and
// compatible servers reachable through a base URL.
type OpenAIEncoder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEncoder creates a new OpenAI-compatible encoder
func NewOpenAIEncoder(apiKey string, baseURL string, model string) (*OpenAIEncoder, error) {
	if apiKey == "" && baseURL == "" {
		return nil, &LoadError{Provider: ProviderOpenAI, Message: "API key or base URL is required"}
	}
	if model == "" {
		model = DefaultModel(ProviderOpenAI)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &OpenAIEncoder{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

// Encode embeds all texts in one request
func (o *OpenAIEncoder) Encode(ctx context.Context, texts []string) ([]Vector, error) {
	params := openai.EmbeddingNewParams{
		Input: openai.F[openai.EmbeddingNewParamsInputUnion](openai.EmbeddingNewParamsInputArrayOfStrings(texts)),
		Model: openai.F(openai.EmbeddingModel(o.model)),
	}

	resp, err := o.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create embeddings: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Data))
	}

	out := make([]Vector, len(texts))
	for _, d := range resp.Data {
		idx := int(d.Index)
		if idx < 0 || idx >= len(out) {
			return nil, fmt.Errorf("embedding index %d out of range", idx)
		}
		v := make(Vector, len(d.Embedding))
		for i, x := range d.Embedding {
			v[i] = float32(x)
		}
		out[idx] = v
	}
	for i, v := range out {
		if v == nil {
			return nil, fmt.Errorf("missing embedding for input %d", i)
		}
	}
	return out, nil
}

// OpenAILoader returns a Loader that creates an OpenAI-compatible encoder and
// verifies it with a one-text probe.
func OpenAILoader(apiKey string, baseURL string, model string) Loader {
	return func(ctx context.Context) (Encoder, error) {
		enc, err := NewOpenAIEncoder(apiKey, baseURL, model)
		if err != nil {
			return nil, err
		}
		if _, err := enc.Encode(ctx, []string{"probe"}); err != nil {
			return nil, &LoadError{Provider: ProviderOpenAI, Message: "probe request failed", Cause: err}
		}
		return enc, nil
	}
}

// NewLoader returns the Loader for the named provider, or nil for ProviderNone
// and unknown names.
func NewLoader(p ProviderName, apiKey string, baseURL string, model string) Loader {
	switch p {
	case ProviderGemini:
		return GeminiLoader(apiKey, model)
	case ProviderOpenAI:
		return OpenAILoader(apiKey, baseURL, model)
	default:
		return nil
	}
}
