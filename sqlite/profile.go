package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fwojciec/supplier"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ supplier.ProfileService = (*ProfileService)(nil)

// ProfileService implements supplier.ProfileService using SQLite.
// Profiles are stored as JSON documents.
type ProfileService struct {
	db *DB
}

// NewProfileService creates a new ProfileService.
func NewProfileService(db *DB) *ProfileService {
	return &ProfileService{db: db}
}

const profileColumns = "id, company_name, company_url, profile, corpus_hash, corpus_length, corpus_tokens, link_count, created_at"

// CreateProfileRecord stores a new record.
func (s *ProfileService) CreateProfileRecord(ctx context.Context, record *supplier.ProfileRecord) error {
	if err := record.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(record.Profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}

	record.ID = uuid.New().String()
	record.CreatedAt = time.Now().UTC()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO profiles (`+profileColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, record.ID, record.CompanyName, record.CompanyURL, string(data), record.CorpusHash,
		record.CorpusLength, record.CorpusTokens, record.LinkCount, formatTime(record.CreatedAt))

	return err
}

// FindProfileRecordByID retrieves a record by ID.
func (s *ProfileService) FindProfileRecordByID(ctx context.Context, id string) (*supplier.ProfileRecord, error) {
	record, err := scanProfileRecord(s.db.QueryRowContext(ctx,
		"SELECT "+profileColumns+" FROM profiles WHERE id = ?", id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, supplier.Errorf(supplier.ENOTFOUND, "profile not found")
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// FindProfileRecords retrieves records matching the filter, newest first.
func (s *ProfileService) FindProfileRecords(ctx context.Context, filter supplier.ProfileRecordFilter) ([]*supplier.ProfileRecord, error) {
	var w where
	if filter.ID != nil {
		w.add("id = ?", *filter.ID)
	}
	if filter.CompanyName != nil {
		w.add("company_name = ? COLLATE NOCASE", *filter.CompanyName)
	}
	if filter.CompanyURL != nil {
		w.add("company_url = ?", *filter.CompanyURL)
	}

	limit, pageArgs := page(filter.Limit, filter.Offset)
	query := "SELECT " + profileColumns + " FROM profiles" + w.String() +
		" ORDER BY created_at DESC, rowid DESC" + limit

	rows, err := s.db.QueryContext(ctx, query, append(w.args, pageArgs...)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*supplier.ProfileRecord
	for rows.Next() {
		record, err := scanProfileRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// DeleteProfileRecord permanently removes a record.
func (s *ProfileService) DeleteProfileRecord(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM profiles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return supplier.Errorf(supplier.ENOTFOUND, "profile not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanProfileRecord(row scanner) (*supplier.ProfileRecord, error) {
	var record supplier.ProfileRecord
	var data, createdAt string

	if err := row.Scan(&record.ID, &record.CompanyName, &record.CompanyURL, &data, &record.CorpusHash,
		&record.CorpusLength, &record.CorpusTokens, &record.LinkCount, &createdAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(data), &record.Profile); err != nil {
		return nil, fmt.Errorf("failed to decode profile %s: %w", record.ID, err)
	}

	var err error
	record.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}

	return &record, nil
}
