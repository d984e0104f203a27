package storage

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"vrm-crawler/models"
)

// PostgresWriter persists harvested property records to PostgreSQL.
// Optional secondary store next to the workbook report.
type PostgresWriter struct {
	db *sql.DB
}

// NewPostgresWriter opens a connection to PostgreSQL, runs schema
// migrations, and returns a ready-to-use PostgresWriter.
func NewPostgresWriter(dsn string) (*PostgresWriter, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	for i := 0; i < 10; i++ {
		if err = db.Ping(); err == nil {
			break
		}
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: ping failed after retries: %w", err)
	}

	pw := &PostgresWriter{db: db}
	if err := pw.migrate(); err != nil {
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return pw, nil
}

func (pw *PostgresWriter) migrate() error {
	_, err := pw.db.Exec(`
		CREATE TABLE IF NOT EXISTS properties (
			id         SERIAL PRIMARY KEY,
			state      VARCHAR(2) NOT NULL,
			name       TEXT       NOT NULL DEFAULT '',
			city       TEXT       NOT NULL DEFAULT '',
			address    TEXT       NOT NULL DEFAULT '',
			price      TEXT       NOT NULL DEFAULT '',
			bedrooms   TEXT       NOT NULL DEFAULT '',
			bathrooms  TEXT       NOT NULL DEFAULT '',
			url        TEXT       NOT NULL DEFAULT '',
			slug       TEXT       NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);

		CREATE INDEX IF NOT EXISTS idx_properties_state ON properties(state);
		CREATE INDEX IF NOT EXISTS idx_properties_city  ON properties(city);
		CREATE INDEX IF NOT EXISTS idx_properties_slug  ON properties(slug);
	`)
	return err
}

// Clear deletes all existing property rows.
func (pw *PostgresWriter) Clear() error {
	_, err := pw.db.Exec("DELETE FROM properties")
	if err != nil {
		return fmt.Errorf("postgres: clear: %w", err)
	}
	return nil
}

// WriteAll batch-inserts a run's records, clearing old data first.
func (pw *PostgresWriter) WriteAll(records []*models.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}

	if err := pw.Clear(); err != nil {
		return err
	}

	const batchSize = 50
	for i := 0; i < len(records); i += batchSize {
		end := i + batchSize
		if end > len(records) {
			end = len(records)
		}
		if err := pw.insertBatch(records[i:end]); err != nil {
			return err
		}
	}
	return nil
}

func (pw *PostgresWriter) insertBatch(batch []*models.PropertyRecord) error {
	const cols = 9
	valueStrings := make([]string, 0, len(batch))
	valueArgs := make([]interface{}, 0, len(batch)*cols)

	for idx, r := range batch {
		base := idx * cols
		valueStrings = append(valueStrings,
			fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8, base+9))
		valueArgs = append(valueArgs,
			r.State, r.Name, r.City, r.Address, r.Price, r.Bedrooms, r.Bathrooms, r.URL, r.Slug)
	}

	query := fmt.Sprintf(`
		INSERT INTO properties (state, name, city, address, price, bedrooms, bathrooms, url, slug)
		VALUES %s
	`, strings.Join(valueStrings, ","))

	_, err := pw.db.Exec(query, valueArgs...)
	return err
}

func (pw *PostgresWriter) Close() error {
	return pw.db.Close()
}

// FetchAll retrieves all stored records ordered by insertion.
func (pw *PostgresWriter) FetchAll() ([]*models.PropertyRecord, error) {
	rows, err := pw.db.Query(`
		SELECT state, name, city, address, price, bedrooms, bathrooms, url, slug
		FROM properties
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch all: %w", err)
	}
	defer rows.Close()

	var records []*models.PropertyRecord
	for rows.Next() {
		r := &models.PropertyRecord{}
		if err := rows.Scan(
			&r.State, &r.Name, &r.City, &r.Address,
			&r.Price, &r.Bedrooms, &r.Bathrooms, &r.URL, &r.Slug,
		); err != nil {
			return nil, fmt.Errorf("postgres: scan row: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
