package factory

import (
	"context"
	"fmt"
	"net/http"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/adapters/bedrock"
	"github.com/creatorops/sponsor-scout/internal/adapters/gemini"
	"github.com/creatorops/sponsor-scout/internal/adapters/openai"
	"github.com/creatorops/sponsor-scout/internal/adapters/remote"
	"github.com/creatorops/sponsor-scout/internal/config"
	"github.com/creatorops/sponsor-scout/internal/core"
)

// AnalysisFactory creates analysis clients based on configuration
type AnalysisFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalysisFactory creates a new analysis factory
func NewAnalysisFactory(cfg *config.Config, logger *zap.Logger) *AnalysisFactory {
	return &AnalysisFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateAnalysisClient creates an analysis client based on the configuration
func (f *AnalysisFactory) CreateAnalysisClient() (core.AnalysisClient, error) {
	analysisCfg := f.cfg.GetAnalysis()

	switch analysisCfg.Provider {
	case "remote":
		return f.createRemoteClient()
	case "openai":
		return f.createOpenAIClient(), nil
	case "gemini":
		return f.createGeminiClient()
	case "bedrock":
		return f.createBedrockClient()
	default:
		return nil, fmt.Errorf("unsupported analysis provider: %s", analysisCfg.Provider)
	}
}

func (f *AnalysisFactory) createRemoteClient() (core.AnalysisClient, error) {
	remoteCfg := f.cfg.GetRemote()
	timeout, err := time.ParseDuration(remoteCfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid remote timeout: %w", err)
	}

	httpClient := &http.Client{Timeout: timeout}
	return remote.NewClient(remoteCfg.Endpoint, remoteCfg.APIKey, httpClient, f.logger), nil
}

func (f *AnalysisFactory) createOpenAIClient() core.AnalysisClient {
	openaiCfg := f.cfg.GetOpenAI()
	return openai.NewClient(
		openaiCfg.APIKey,
		openaiCfg.ModelName,
		openaiCfg.MaxTokens,
		openaiCfg.Temperature,
		openaiCfg.TopP,
		openaiCfg.MaxBodySize,
		f.logger,
	)
}

func (f *AnalysisFactory) createGeminiClient() (core.AnalysisClient, error) {
	geminiCfg := f.cfg.GetGemini()
	return gemini.NewClient(
		geminiCfg.APIKey,
		geminiCfg.ModelName,
		geminiCfg.MaxTokens,
		geminiCfg.Temperature,
		geminiCfg.TopP,
		geminiCfg.MaxBodySize,
		f.logger,
	)
}

func (f *AnalysisFactory) createBedrockClient() (core.AnalysisClient, error) {
	bedrockCfg := f.cfg.GetBedrock()

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(bedrockCfg.Region),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	bedrockClient := bedrockruntime.NewFromConfig(awsCfg)
	return bedrock.NewClient(
		bedrockClient,
		bedrockCfg.ModelID,
		bedrockCfg.MaxTokens,
		bedrockCfg.Temperature,
		bedrockCfg.TopP,
		bedrockCfg.MaxBodySize,
		f.logger,
	), nil
}
