package export

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

func TestJSONLExporterAppendsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "details.jsonl")

	e, err := NewJSONLExporter(path, zap.NewNop())
	require.NoError(t, err)
	defer e.Close()

	ctx := context.Background()
	require.NoError(t, e.Export(ctx, &core.SponsorDetail{
		CompanyName:  "Acme Inc",
		RiskScore:    20,
		MoneyOffered: "$500",
		EmailSubject: "Sponsorship",
	}))
	require.NoError(t, e.Export(ctx, &core.SponsorDetail{CompanyName: "Beta LLC", RiskScore: 45}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []jsonlDetail
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var d jsonlDetail
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &d))
		lines = append(lines, d)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, lines, 2)
	assert.Equal(t, "Acme Inc", lines[0].CompanyName)
	assert.Equal(t, "$500", lines[0].MoneyOffered)
	assert.False(t, lines[0].ExportedAt.IsZero())
	assert.Equal(t, "Beta LLC", lines[1].CompanyName)
}

func TestJSONLExporterReopensAndAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "details.jsonl")
	ctx := context.Background()

	e, err := NewJSONLExporter(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, e.Export(ctx, &core.SponsorDetail{CompanyName: "First Co"}))
	require.NoError(t, e.Close())

	e, err = NewJSONLExporter(path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, e.Export(ctx, &core.SponsorDetail{CompanyName: "Second Co"}))
	require.NoError(t, e.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "First Co")
	assert.Contains(t, string(data), "Second Co")
}
