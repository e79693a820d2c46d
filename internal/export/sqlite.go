// Package export archives sponsor details outside the pipeline. Only
// records with a sponsor verdict reach an exporter.
package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// SQLiteExporter appends sponsor details to a local SQLite table
type SQLiteExporter struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteExporter opens (and if needed initializes) the export database
func NewSQLiteExporter(dbPath string, logger *zap.Logger) (*SQLiteExporter, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS sponsor_details (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			company_name TEXT,
			website TEXT,
			agenda TEXT,
			risk_score INTEGER,
			contact_person TEXT,
			money_offered TEXT,
			email_subject TEXT,
			captured_at TIMESTAMP,
			exported_at TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteExporter{db: db, logger: logger}, nil
}

// Export appends one sponsor detail
func (e *SQLiteExporter) Export(ctx context.Context, detail *core.SponsorDetail) error {
	_, err := e.db.ExecContext(ctx, `
		INSERT INTO sponsor_details
			(company_name, website, agenda, risk_score, contact_person, money_offered, email_subject, captured_at, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		detail.CompanyName,
		detail.Website,
		detail.Agenda,
		detail.RiskScore,
		detail.ContactPerson,
		detail.MoneyOffered,
		detail.EmailSubject,
		detail.CapturedAt.Format(time.RFC3339),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert sponsor detail: %w", err)
	}

	e.logger.Debug("Sponsor detail exported",
		zap.String("company", detail.CompanyName),
		zap.String("subject", detail.EmailSubject))
	return nil
}

// Close closes the database connection
func (e *SQLiteExporter) Close() error {
	return e.db.Close()
}
