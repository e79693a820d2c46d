package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// jsonlDetail is the line shape written to the export file
type jsonlDetail struct {
	CompanyName   string    `json:"companyName"`
	Website       string    `json:"website"`
	Agenda        string    `json:"agenda"`
	RiskScore     int       `json:"riskScore"`
	ContactPerson string    `json:"contactPerson"`
	MoneyOffered  string    `json:"moneyOffered"`
	EmailSubject  string    `json:"emailSubject"`
	CapturedAt    time.Time `json:"capturedAt"`
	ExportedAt    time.Time `json:"exportedAt"`
}

// JSONLExporter appends sponsor details to a newline-delimited JSON file
type JSONLExporter struct {
	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	logger *zap.Logger
}

// NewJSONLExporter opens the export file for appending
func NewJSONLExporter(path string, logger *zap.Logger) (*JSONLExporter, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open export file: %w", err)
	}
	return &JSONLExporter{
		file:   file,
		enc:    json.NewEncoder(file),
		logger: logger,
	}, nil
}

// Export appends one sponsor detail as a JSON line
func (e *JSONLExporter) Export(ctx context.Context, detail *core.SponsorDetail) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	line := jsonlDetail{
		CompanyName:   detail.CompanyName,
		Website:       detail.Website,
		Agenda:        detail.Agenda,
		RiskScore:     detail.RiskScore,
		ContactPerson: detail.ContactPerson,
		MoneyOffered:  detail.MoneyOffered,
		EmailSubject:  detail.EmailSubject,
		CapturedAt:    detail.CapturedAt,
		ExportedAt:    time.Now(),
	}
	if err := e.enc.Encode(line); err != nil {
		return fmt.Errorf("failed to write sponsor detail: %w", err)
	}
	return nil
}

// Close closes the export file
func (e *JSONLExporter) Close() error {
	return e.file.Close()
}
