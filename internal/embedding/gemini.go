package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// geminiBatchSize is the maximum number of contents per BatchEmbedContents request
const geminiBatchSize = 100

// GeminiEncoder implements Encoder for the Google Gemini embedding API
type GeminiEncoder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
}

// NewGeminiEncoder creates a new Gemini encoder for the given model
func NewGeminiEncoder(ctx context.Context, apiKey string, model string) (*GeminiEncoder, error) {
	if apiKey == "" {
		return nil, &LoadError{Provider: ProviderGemini, Message: "API key is required"}
	}
	if model == "" {
		model = DefaultModel(ProviderGemini)
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &LoadError{Provider: ProviderGemini, Message: "failed to create client", Cause: err}
	}

	return &GeminiEncoder{
		client: client,
		model:  client.EmbeddingModel(model),
	}, nil
}

// Encode embeds texts in batches
func (g *GeminiEncoder) Encode(ctx context.Context, texts []string) ([]Vector, error) {
	out := make([]Vector, 0, len(texts))
	for start := 0; start < len(texts); start += geminiBatchSize {
		end := min(start+geminiBatchSize, len(texts))

		batch := g.model.NewBatch()
		for _, text := range texts[start:end] {
			batch.AddContent(genai.Text(text))
		}

		res, err := g.model.BatchEmbedContents(ctx, batch)
		if err != nil {
			return nil, fmt.Errorf("failed to embed contents: %w", err)
		}
		if len(res.Embeddings) != end-start {
			return nil, fmt.Errorf("expected %d embeddings, got %d", end-start, len(res.Embeddings))
		}
		for _, e := range res.Embeddings {
			if e == nil {
				return nil, fmt.Errorf("missing embedding in response")
			}
			out = append(out, Vector(e.Values))
		}
	}
	return out, nil
}

// Close releases resources held by the client
func (g *GeminiEncoder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}

// GeminiLoader returns a Loader that creates a Gemini encoder and verifies it
// with a one-text probe, so a bad key or model fails at load time.
func GeminiLoader(apiKey string, model string) Loader {
	return func(ctx context.Context) (Encoder, error) {
		enc, err := NewGeminiEncoder(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		if _, err := enc.Encode(ctx, []string{"probe"}); err != nil {
			_ = enc.Close()
			return nil, &LoadError{Provider: ProviderGemini, Message: "probe request failed", Cause: err}
		}
		return enc, nil
	}
}
