package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is one row of the store. Section and Rank together determine
// where the record lands in a sectioned fetch; Title and Body are the
// displayed content.
type Record struct {
	ID      string
	Section string
	Title   string
	Rank    int
	Body    string
}

// InsertRecord inserts a record, assigning a fresh UUID when r.ID is
// empty, and returns the stored record.
func (s *Store) InsertRecord(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, section, title, rank, body)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Section, r.Title, r.Rank, r.Body)
	if err != nil {
		return Record{}, fmt.Errorf("insert record: %w", err)
	}
	return r, nil
}

// UpdateRecord replaces the content fields (title, body) of the record
// with the given ID, leaving its position untouched.
func (s *Store) UpdateRecord(ctx context.Context, id, title, body string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE records SET title = ?, body = ? WHERE id = ?
	`, title, body, id)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	return requireRow(res, id)
}

// MoveRecord repositions the record with the given ID to a section and
// rank, leaving its content untouched.
func (s *Store) MoveRecord(ctx context.Context, id, section string, rank int) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE records SET section = ?, rank = ? WHERE id = ?
	`, section, rank, id)
	if err != nil {
		return fmt.Errorf("move record: %w", err)
	}
	return requireRow(res, id)
}

// DeleteRecord removes the record with the given ID.
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM records WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return requireRow(res, id)
}

// ListRecords returns all records ordered by section, rank, then title.
// The order is deterministic so successive fetches diff cleanly.
func (s *Store) ListRecords(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, section, title, rank, body
		FROM records
		ORDER BY section, rank, title
	`)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.Section, &r.Title, &r.Rank, &r.Body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// FindByTitle returns the first record with the given title, in fetch
// order. Scenario steps reference records by title rather than ID.
func (s *Store) FindByTitle(ctx context.Context, title string) (Record, error) {
	var r Record
	err := s.db.QueryRowContext(ctx, `
		SELECT id, section, title, rank, body
		FROM records
		WHERE title = ?
		ORDER BY section, rank
		LIMIT 1
	`, title).Scan(&r.ID, &r.Section, &r.Title, &r.Rank, &r.Body)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("record %q: %w", title, ErrNotFound)
	}
	if err != nil {
		return Record{}, fmt.Errorf("find record: %w", err)
	}
	return r, nil
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("record %s: %w", id, ErrNotFound)
	}
	return nil
}
