package embedder

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"newswire/logger"
)

// EmbeddingClient abstracts the external embedding service.
type EmbeddingClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// GeminiEmbedding calls the Gemini embedding API.
type GeminiEmbedding struct {
	client *genai.Client
	model  string
}

func NewGeminiEmbedding(client *genai.Client, model string) *GeminiEmbedding {
	return &GeminiEmbedding{client: client, model: model}
}

func (g *GeminiEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := g.client.Models.EmbedContent(ctx, g.model, genai.Text(text), nil)
	if err != nil {
		return nil, err
	}
	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("embedding response contains no vectors")
	}
	return resp.Embeddings[0].Values, nil
}

// Embedder wraps an EmbeddingClient best-effort: any failure is
// logged and yields an empty vector. Embedding failure is never fatal
// to the pipeline; an article may be persisted without a vector.
type Embedder struct {
	client EmbeddingClient
}

func New(client EmbeddingClient) *Embedder {
	return &Embedder{client: client}
}

func (e *Embedder) Embed(ctx context.Context, text string) []float32 {
	vec, err := e.client.Embed(ctx, text)
	if err != nil {
		logger.Log.Errorf("embedding failed: %v", err)
		return nil
	}
	return vec
}
