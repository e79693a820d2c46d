package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/sponsor-scout/internal/core"
)

const cleanResponse = `{
	"risk_score": 20,
	"status": "safe",
	"is_sponsor": true,
	"extracted_info": {"company_name": "Acme Inc", "website": "https://acme.com", "contact_person": "Jane", "offer": "$500"},
	"flags": [{"kind": "positive", "message": "known brand"}],
	"summary": "Paid sponsorship offer from Acme"
}`

func TestParseProviderResponse(t *testing.T) {
	result, err := ParseProviderResponse(cleanResponse, "gpt-4")
	require.NoError(t, err)

	assert.Equal(t, 20, result.RiskScore)
	assert.Equal(t, core.StatusSafe, result.Status)
	assert.True(t, result.IsSponsor)
	assert.Equal(t, "Acme Inc", result.Info.CompanyName)
	assert.Equal(t, "Jane", result.Info.ContactPerson)
	require.Len(t, result.Flags, 1)
	assert.Equal(t, core.FlagPositive, result.Flags[0].Kind)
	assert.Equal(t, "gpt-4", result.ModelUsed)
}

func TestParseProviderResponseWrappedInProse(t *testing.T) {
	wrapped := "Here is my analysis:\n" + cleanResponse + "\nLet me know if you need more."

	result, err := ParseProviderResponse(wrapped, "claude")
	require.NoError(t, err)
	assert.Equal(t, 20, result.RiskScore)
	assert.True(t, result.IsSponsor)
}

func TestParseProviderResponseDerivesStatus(t *testing.T) {
	result, err := ParseProviderResponse(`{"risk_score": 85}`, "m")
	require.NoError(t, err)
	assert.Equal(t, core.StatusDanger, result.Status)

	result, err = ParseProviderResponse(`{"risk_score": 55, "status": "bogus"}`, "m")
	require.NoError(t, err)
	assert.Equal(t, core.StatusWarning, result.Status)
}

func TestParseProviderResponseClampsScore(t *testing.T) {
	result, err := ParseProviderResponse(`{"risk_score": -10}`, "m")
	require.NoError(t, err)
	assert.Equal(t, 0, result.RiskScore)
	assert.Equal(t, core.StatusSafe, result.Status)
}

func TestParseProviderResponseNoJSON(t *testing.T) {
	_, err := ParseProviderResponse("I cannot analyze this email.", "m")
	assert.Error(t, err)
}

func TestParseProviderResponseUnknownFlagKind(t *testing.T) {
	result, err := ParseProviderResponse(`{"risk_score": 10, "flags": [{"kind": "odd", "message": "m"}]}`, "m")
	require.NoError(t, err)
	require.Len(t, result.Flags, 1)
	assert.Equal(t, core.FlagCaution, result.Flags[0].Kind)
}
