package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements EmbeddingProvider on top of the OpenAI embeddings
// API. Dimensions are pinned to 768 so all providers produce vectors the
// document_chunks column can hold.
type OpenAIProvider struct {
	client *openai.Client
	model  openai.EmbeddingModel
}

func NewOpenAIProvider(apiKey string) EmbeddingProvider {
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  openai.SmallEmbedding3,
	}
}

func (p *OpenAIProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	// taskType has no OpenAI equivalent, kept for interface compatibility.

	resp, err := p.client.CreateEmbeddings(context.Background(), openai.EmbeddingRequest{
		Input:      []string{text},
		Model:      p.model,
		Dimensions: 768,
	})
	if err != nil {
		return nil, fmt.Errorf("openai embedding error: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, fmt.Errorf("openai embedding error: empty response")
	}

	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{
			Values: normalizeVector(resp.Data[0].Embedding),
		},
	}, nil
}
