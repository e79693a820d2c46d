// Package remote implements the analysis client for the hosted
// classification endpoint. The endpoint is an opaque black box: one POST
// with the labeled email text in, one JSON result out.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/creatorops/sponsor-scout/internal/core"
	"go.uber.org/zap"
)

// defaultRisk is assumed when the endpoint omits the score entirely
const defaultRisk = 50

// Client posts email content to the remote classification endpoint
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a remote analysis client. A nil httpClient uses the
// default transport, including its default timeout behavior; no extra
// timeout is enforced here.
func NewClient(endpoint, apiKey string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: httpClient,
		logger:     logger,
	}
}

type analysisRequest struct {
	EmailContent string `json:"emailContent"`
}

type analysisResponse struct {
	RiskScore     *int   `json:"riskScore"`
	Status        string `json:"status"`
	IsSponsor     bool   `json:"isSponsor"`
	ExtractedInfo struct {
		CompanyName   string `json:"companyName"`
		Website       string `json:"website"`
		ContactPerson string `json:"contactPerson"`
		Offer         string `json:"offer"`
	} `json:"extractedInfo"`
	Flags []struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"flags"`
	Summary string `json:"summary"`
}

// PayloadText concatenates the record into the labeled wire text the
// endpoint expects
func PayloadText(record *core.EmailRecord) string {
	return fmt.Sprintf("Subject: %s\nFrom: %s\nBody:\n%s", record.Subject, record.Sender, record.Body)
}

// Analyze sends the record to the endpoint and maps the response onto
// the canonical result shape. Transport failures and non-success
// statuses are returned as errors for the caller to recover from.
func (c *Client) Analyze(ctx context.Context, record *core.EmailRecord) (*core.AnalysisResult, error) {
	payload, err := json.Marshal(analysisRequest{EmailContent: PayloadText(record)})
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("analysis request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analysis endpoint returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed analysisResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("failed to decode analysis response: %w", err)
	}

	return c.toResult(&parsed), nil
}

func (c *Client) toResult(parsed *analysisResponse) *core.AnalysisResult {
	risk := defaultRisk
	if parsed.RiskScore != nil {
		risk = core.ClampRisk(*parsed.RiskScore)
	}

	result := &core.AnalysisResult{
		RiskScore: risk,
		Status:    parseStatus(parsed.Status, risk),
		IsSponsor: parsed.IsSponsor,
		Info: core.ExtractedInfo{
			CompanyName:   parsed.ExtractedInfo.CompanyName,
			Website:       parsed.ExtractedInfo.Website,
			ContactPerson: parsed.ExtractedInfo.ContactPerson,
			Offer:         parsed.ExtractedInfo.Offer,
		},
		Summary:    parsed.Summary,
		AnalyzedAt: time.Now(),
		ModelUsed:  "remote",
	}

	for _, f := range parsed.Flags {
		result.Flags = append(result.Flags, core.Flag{
			Kind:    parseFlagKind(f.Kind),
			Message: f.Message,
		})
	}
	return result
}

// parseStatus falls back to the threshold mapping for unknown or absent
// status values
func parseStatus(s string, risk int) core.Status {
	switch core.Status(s) {
	case core.StatusSafe, core.StatusWarning, core.StatusDanger:
		return core.Status(s)
	default:
		return core.StatusForRisk(risk)
	}
}

func parseFlagKind(s string) core.FlagKind {
	switch core.FlagKind(s) {
	case core.FlagPositive, core.FlagNegative:
		return core.FlagKind(s)
	default:
		return core.FlagCaution
	}
}
