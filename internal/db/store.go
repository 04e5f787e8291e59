// Package db provides SQLite persistence for accident reports.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jkleczar/wypadek/internal/report"
)

// Store persists report records. The full record travels as a JSON
// document; a few columns are denormalized for listing.
type Store struct {
	db *sql.DB
}

// NewStore creates a store over an open database handle.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying database handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Summary is one row of the report listing.
type Summary struct {
	ID             string      `json:"id"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
	ReportType     report.Type `json:"reportType"`
	InjuredName    string      `json:"injuredName"`
	InjuredSurname string      `json:"injuredSurname"`
	NIP            string      `json:"nip"`
	AccidentDate   string      `json:"accidentDate"`
}

// SaveReport creates or updates the record and returns its id. A fresh
// record gets a generated id and createdAt; updates keep the original
// createdAt and only move updatedAt. The passed record's timestamps are
// set to what was persisted.
func (s *Store) SaveReport(ctx context.Context, rec *report.Record) (string, error) {
	now := time.Now().UTC().Truncate(time.Second)

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	createdAt := now
	row := s.db.QueryRowContext(ctx, `SELECT created_at FROM reports WHERE id=?`, rec.ID)
	var existing string
	switch err := row.Scan(&existing); {
	case err == nil:
		parsed, perr := time.Parse(time.RFC3339, existing)
		if perr != nil {
			return "", fmt.Errorf("parse stored created_at: %w", perr)
		}
		createdAt = parsed
	case err == sql.ErrNoRows:
		// first save
	default:
		return "", fmt.Errorf("read report created_at: %w", err)
	}

	rec.CreatedAt = createdAt
	rec.UpdatedAt = now

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `INSERT INTO reports(id, created_at, updated_at, report_type, injured_name, injured_surname, nip, accident_date, data_json)
		VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			updated_at=excluded.updated_at,
			report_type=excluded.report_type,
			injured_name=excluded.injured_name,
			injured_surname=excluded.injured_surname,
			nip=excluded.nip,
			accident_date=excluded.accident_date,
			data_json=excluded.data_json`,
		rec.ID,
		createdAt.Format(time.RFC3339),
		now.Format(time.RFC3339),
		string(rec.ReportType),
		rec.InjuredName,
		rec.InjuredSurname,
		rec.NIP,
		rec.AccidentDate,
		string(data),
	); err != nil {
		return "", fmt.Errorf("save report: %w", err)
	}
	return rec.ID, nil
}

// GetReport loads one record. Returns nil when the id is unknown.
func (s *Store) GetReport(ctx context.Context, id string) (*report.Record, error) {
	row := s.db.QueryRowContext(ctx, `SELECT data_json FROM reports WHERE id=?`, id)
	var data string
	if err := row.Scan(&data); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("read report: %w", err)
	}
	rec := report.New()
	if err := json.Unmarshal([]byte(data), rec); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return rec, nil
}

// ListReports returns summaries of all saved reports, newest change first.
func (s *Store) ListReports(ctx context.Context) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, created_at, updated_at, report_type, injured_name, injured_surname, nip, accident_date
		FROM reports ORDER BY updated_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var (
			sum                  Summary
			createdAt, updatedAt string
			reportType           string
		)
		if err := rows.Scan(&sum.ID, &createdAt, &updatedAt, &reportType, &sum.InjuredName, &sum.InjuredSurname, &sum.NIP, &sum.AccidentDate); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		if sum.UpdatedAt, err = time.Parse(time.RFC3339, updatedAt); err != nil {
			return nil, fmt.Errorf("parse updated_at: %w", err)
		}
		sum.ReportType = report.Type(reportType)
		out = append(out, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reports: %w", err)
	}
	return out, nil
}

// DeleteReport removes a record. Deleting an unknown id is a no-op.
func (s *Store) DeleteReport(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM reports WHERE id=?`, id); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
