// Package gemini implements the analysis client against Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/creatorops/sponsor-scout/internal/adapters/analysis"
	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/utils"
)

// Client analyzes emails through the Gemini generative API
type Client struct {
	client      *genai.Client
	model       *genai.GenerativeModel
	modelName   string
	maxBodySize int
	logger      *zap.Logger
}

// NewClient creates a Gemini analysis client
func NewClient(
	apiKey string,
	modelName string,
	maxTokens int,
	temperature float32,
	topP float32,
	maxBodySize int,
	logger *zap.Logger,
) (*Client, error) {
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(temperature)
	model.SetTopP(topP)
	model.SetMaxOutputTokens(int32(maxTokens))

	return &Client{
		client:      client,
		model:       model,
		modelName:   modelName,
		maxBodySize: maxBodySize,
		logger:      logger,
	}, nil
}

// Close closes the underlying API client
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// Analyze classifies an email through Gemini
func (c *Client) Analyze(ctx context.Context, record *core.EmailRecord) (*core.AnalysisResult, error) {
	body := utils.TruncateUTF8(record.Body, c.maxBodySize)
	prompt := fmt.Sprintf(analysis.PromptFormat, record.Sender, record.Subject, body)

	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content with Gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from Gemini")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])

	result, err := analysis.ParseProviderResponse(responseText, c.modelName)
	if err != nil {
		return nil, err
	}
	return result, nil
}
