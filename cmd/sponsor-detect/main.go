package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/adapters/analysis"
	"github.com/creatorops/sponsor-scout/internal/config"
	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/extract"
	"github.com/creatorops/sponsor-scout/internal/factory"
	"github.com/creatorops/sponsor-scout/internal/logging"
	"github.com/creatorops/sponsor-scout/internal/prefilter"
	"github.com/creatorops/sponsor-scout/internal/utils"
	"github.com/creatorops/sponsor-scout/internal/whitelist"
)

var (
	// Analysis provider flags
	provider    = flag.String("provider", "remote", "Analysis provider (remote, openai, gemini, bedrock)")
	maxTokens   = flag.Int("max-tokens", 1000, "Maximum tokens for model response")
	temperature = flag.Float64("temperature", 0.1, "Temperature for model generation")
	topP        = flag.Float64("top-p", 0.9, "Top-p for model generation")
	maxBodySize = flag.Int("max-body-size", 4096, "Maximum email body size to send to the model")

	// Remote flags
	remoteEndpoint = flag.String("remote-endpoint", "http://localhost:3000/api/analyze", "Remote analysis endpoint")
	remoteAPIKey   = flag.String("remote-api-key", "", "API key for the remote analysis service")
	remoteTimeout  = flag.String("remote-timeout", "30s", "Timeout for the remote analysis call")

	// Bedrock flags
	bedrockRegion  = flag.String("bedrock-region", "us-east-1", "AWS region for Bedrock")
	bedrockModelID = flag.String("bedrock-model", "anthropic.claude-v2", "Bedrock model ID")

	// Gemini flags
	geminiAPIKey    = flag.String("gemini-api-key", "", "API key for Google Gemini")
	geminiModelName = flag.String("gemini-model", "gemini-pro", "Gemini model name")

	// OpenAI flags
	openaiAPIKey    = flag.String("openai-api-key", "", "API key for OpenAI")
	openaiModelName = flag.String("openai-model", "gpt-4", "OpenAI model name")

	// Detection flags
	keywordList    = flag.String("keywords", "", "Comma-separated prefilter keywords (defaults when empty)")
	ignoredSenders = flag.String("ignore", "", "Comma-separated list of ignored sender domains or addresses")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Initialize analysis client
	analysisFactory := factory.NewAnalysisFactory(cfg, logger)
	analyzer, err := analysisFactory.CreateAnalysisClient()
	if err != nil {
		logger.Fatal("Failed to create analysis client", zap.Error(err))
	}

	// Prefilter keywords
	keywords := splitList(*keywordList)
	if len(keywords) == 0 {
		keywords = cfg.GetStringSlice("prefilter.keywords")
	}
	gate := prefilter.New(keywords, logger)

	// Ignored senders
	ignores := splitList(*ignoredSenders)
	if len(ignores) == 0 {
		ignores = cfg.GetStringSlice("prefilter.ignored_senders")
	}
	if len(ignores) > 0 {
		logger.Info("Using ignored senders", zap.Strings("entries", ignores))
	}
	checker := whitelist.NewChecker(ignores, logger)

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	sender := msg.Header.Get("From")
	subject := msg.Header.Get("Subject")

	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}
	body := utils.CollapseWhitespace(utils.SanitizeUTF8(string(bodyBytes)))

	// The CLI has no page node, so the identity is the content
	// fingerprint of a synthetic one.
	node := &core.Node{
		Text:  subject + "\n" + body,
		Attrs: map[string]string{"data-message-id": msg.Header.Get("Message-Id")},
	}

	record := &core.EmailRecord{
		Identity:   extract.Identity(node),
		Subject:    utils.TruncateUTF8(subject, core.MaxSubjectLen),
		Sender:     utils.TruncateUTF8(sender, core.MaxSenderLen),
		Body:       utils.TruncateUTF8(body, core.MaxBodyLen),
		CapturedAt: time.Now(),
	}

	// Print email summary
	fmt.Printf("\n=== Email Summary ===\n")
	fmt.Printf("From: %s\n", sender)
	fmt.Printf("Subject: %s\n", subject)
	fmt.Printf("Body length: %d bytes\n", len(record.Body))
	fmt.Printf("Identity: %s\n", record.Identity)
	fmt.Printf("\n")

	fmt.Printf("=== Analysis ===\n")
	fmt.Printf("Provider: %s\n", cfg.GetString("analysis.provider"))

	startTime := time.Now()

	if checker.IsWhitelisted(sender) {
		fmt.Printf("\n=== Results ===\n")
		fmt.Printf("Is sponsor: false (sender is ignored)\n")
		fmt.Printf("Processing time: %v\n", time.Since(startTime))
		return
	}

	if !gate.IsCandidate(record) {
		fmt.Printf("\n=== Results ===\n")
		fmt.Printf("Is sponsor: false (no sponsorship keywords)\n")
		fmt.Printf("Processing time: %v\n", time.Since(startTime))
		return
	}

	result, err := analyzer.Analyze(context.Background(), record)
	if err != nil {
		logger.Warn("Analysis failed, using local fallback", zap.Error(err))
		result = analysis.NewFallback(gate, logger).Synthesize(record)
	}
	result.Normalize()
	duration := time.Since(startTime)

	verdict := core.Reconcile(record, result)

	// Print results
	fmt.Printf("\n=== Results ===\n")
	fmt.Printf("Is sponsor: %t\n", verdict.IsSponsor)
	fmt.Printf("Confidence: %s\n", verdict.ConfidenceTier)
	fmt.Printf("Risk score: %d\n", result.RiskScore)
	fmt.Printf("Status: %s\n", result.Status)
	if result.Info.CompanyName != "" {
		fmt.Printf("Company: %s\n", result.Info.CompanyName)
	}
	if result.Info.Website != "" {
		fmt.Printf("Website: %s\n", result.Info.Website)
	}
	if result.Info.ContactPerson != "" {
		fmt.Printf("Contact: %s\n", result.Info.ContactPerson)
	}
	if result.Info.Offer != "" {
		fmt.Printf("Offer: %s\n", result.Info.Offer)
	}
	for _, f := range result.Flags {
		fmt.Printf("Flag [%s]: %s\n", f.Kind, f.Message)
	}
	if result.Summary != "" {
		fmt.Printf("Summary: %s\n", result.Summary)
	}
	fmt.Printf("Model used: %s\n", result.ModelUsed)
	fmt.Printf("Processing time: %v\n", duration)

	// Close any resources that need closing
	if closer, ok := analyzer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close analysis client", zap.Error(err))
		}
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	v.Set("analysis.provider", *provider)

	switch *provider {
	case "remote":
		v.Set("remote.endpoint", *remoteEndpoint)
		v.Set("remote.api_key", *remoteAPIKey)
		v.Set("remote.timeout", *remoteTimeout)
	case "bedrock":
		v.Set("bedrock.region", *bedrockRegion)
		v.Set("bedrock.model_id", *bedrockModelID)
		v.Set("bedrock.max_tokens", *maxTokens)
		v.Set("bedrock.temperature", *temperature)
		v.Set("bedrock.top_p", *topP)
		v.Set("bedrock.max_body_size", *maxBodySize)
	case "gemini":
		v.Set("gemini.api_key", *geminiAPIKey)
		v.Set("gemini.model_name", *geminiModelName)
		v.Set("gemini.max_tokens", *maxTokens)
		v.Set("gemini.temperature", *temperature)
		v.Set("gemini.top_p", *topP)
		v.Set("gemini.max_body_size", *maxBodySize)
	case "openai":
		v.Set("openai.api_key", *openaiAPIKey)
		v.Set("openai.model_name", *openaiModelName)
		v.Set("openai.max_tokens", *maxTokens)
		v.Set("openai.temperature", *temperature)
		v.Set("openai.top_p", *topP)
		v.Set("openai.max_body_size", *maxBodySize)
	}

	return config.NewFromViper(v)
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}
