package analysis

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// PromptFormat is the instruction shared by all direct LLM providers.
// Arguments: sender, subject, body.
const PromptFormat = `You are a sponsorship detection system for creator inboxes. Analyze the following email and decide whether it is a genuine paid sponsorship or partnership offer, and how risky it looks.
Respond with a JSON object containing:
- risk_score: integer between 0 and 100 (higher means more suspicious)
- status: one of "safe", "warning", "danger"
- is_sponsor: boolean (true if this is a sponsorship or partnership offer)
- extracted_info: object with company_name, website, contact_person, offer (strings, empty when unknown)
- flags: array of objects with kind ("positive", "caution" or "negative") and message
- summary: one short sentence describing the email

Email:
From: %s
Subject: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// providerResponse is the structured JSON the providers are prompted to
// return
type providerResponse struct {
	RiskScore     int    `json:"risk_score"`
	Status        string `json:"status"`
	IsSponsor     bool   `json:"is_sponsor"`
	ExtractedInfo struct {
		CompanyName   string `json:"company_name"`
		Website       string `json:"website"`
		ContactPerson string `json:"contact_person"`
		Offer         string `json:"offer"`
	} `json:"extracted_info"`
	Flags []struct {
		Kind    string `json:"kind"`
		Message string `json:"message"`
	} `json:"flags"`
	Summary string `json:"summary"`
}

// ParseProviderResponse parses the model output into the canonical
// result shape. Models occasionally wrap the JSON in prose; the brace
// scan salvages those responses.
func ParseProviderResponse(responseText, modelUsed string) (*core.AnalysisResult, error) {
	var parsed providerResponse
	if err := json.Unmarshal([]byte(responseText), &parsed); err != nil {
		jsonStart := -1
		jsonEnd := -1

		for i := 0; i < len(responseText); i++ {
			if responseText[i] == '{' {
				jsonStart = i
				break
			}
		}
		for i := len(responseText) - 1; i >= 0; i-- {
			if responseText[i] == '}' {
				jsonEnd = i + 1
				break
			}
		}

		if jsonStart < 0 || jsonStart >= jsonEnd {
			return nil, fmt.Errorf("failed to extract JSON from model response: %w", err)
		}
		if err := json.Unmarshal([]byte(responseText[jsonStart:jsonEnd]), &parsed); err != nil {
			return nil, fmt.Errorf("failed to parse model response as JSON: %w", err)
		}
	}

	risk := core.ClampRisk(parsed.RiskScore)
	result := &core.AnalysisResult{
		RiskScore: risk,
		Status:    statusOrDerived(parsed.Status, risk),
		IsSponsor: parsed.IsSponsor,
		Info: core.ExtractedInfo{
			CompanyName:   parsed.ExtractedInfo.CompanyName,
			Website:       parsed.ExtractedInfo.Website,
			ContactPerson: parsed.ExtractedInfo.ContactPerson,
			Offer:         parsed.ExtractedInfo.Offer,
		},
		Summary:    parsed.Summary,
		AnalyzedAt: time.Now(),
		ModelUsed:  modelUsed,
	}

	for _, f := range parsed.Flags {
		kind := core.FlagKind(f.Kind)
		if kind != core.FlagPositive && kind != core.FlagNegative {
			kind = core.FlagCaution
		}
		result.Flags = append(result.Flags, core.Flag{Kind: kind, Message: f.Message})
	}
	return result, nil
}

func statusOrDerived(s string, risk int) core.Status {
	switch core.Status(s) {
	case core.StatusSafe, core.StatusWarning, core.StatusDanger:
		return core.Status(s)
	default:
		return core.StatusForRisk(risk)
	}
}
