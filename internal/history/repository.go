package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Record is one produced export artifact, fingerprinted for auditability.
type Record struct {
	ExportID  string    `json:"export_id"`
	ClienteID int       `json:"cliente_id"`
	Domain    string    `json:"domain"`
	Format    string    `json:"format"`
	Filename  string    `json:"filename"`
	RowCount  int       `json:"row_count"`
	Checksum  string    `json:"checksum"`
	CreatedAt time.Time `json:"created_at"`
}

// Repository logs every export in Postgres.
type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS export_history (
		export_id  TEXT PRIMARY KEY,
		cliente_id INTEGER NOT NULL,
		domain     TEXT NOT NULL,
		format     TEXT NOT NULL,
		filename   TEXT NOT NULL,
		row_count  INTEGER NOT NULL,
		checksum   TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("ensure export_history: %w", err)
	}
	return nil
}

// Insert records a produced artifact and returns its id.
func (r *Repository) Insert(ctx context.Context, rec Record) (string, error) {
	if rec.ExportID == "" {
		rec.ExportID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	_, err := r.pool.Exec(ctx,
		`INSERT INTO export_history (export_id, cliente_id, domain, format, filename, row_count, checksum, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ExportID, rec.ClienteID, rec.Domain, rec.Format, rec.Filename, rec.RowCount, rec.Checksum, rec.CreatedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert export record: %w", err)
	}
	return rec.ExportID, nil
}

// GetByID returns one of the client's export records. The cliente_id guard
// keeps one client from fetching another's artifacts.
func (r *Repository) GetByID(ctx context.Context, exportID string, clienteID int) (*Record, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT export_id, cliente_id, domain, format, filename, row_count, checksum, created_at
		 FROM export_history WHERE export_id = $1 AND cliente_id = $2`,
		exportID, clienteID,
	)
	var rec Record
	if err := row.Scan(&rec.ExportID, &rec.ClienteID, &rec.Domain, &rec.Format,
		&rec.Filename, &rec.RowCount, &rec.Checksum, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ListByClient returns a client's most recent exports, newest first.
func (r *Repository) ListByClient(ctx context.Context, clienteID, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx,
		`SELECT export_id, cliente_id, domain, format, filename, row_count, checksum, created_at
		 FROM export_history WHERE cliente_id = $1 ORDER BY created_at DESC LIMIT $2`,
		clienteID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query export history: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ExportID, &rec.ClienteID, &rec.Domain, &rec.Format,
			&rec.Filename, &rec.RowCount, &rec.Checksum, &rec.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
