package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/oflinehulk/showyours-core/models"
)

// DrawRecordRepository is the audit sink: every random draw that affects
// competitive fairness leaves a row here, keyed by its seed.
type DrawRecordRepository interface {
	Create(ctx context.Context, exec SQLExecutor, record *models.DrawRecord) error
	ListByTournament(ctx context.Context, tournamentID int) ([]*models.DrawRecord, error)
}

type postgresDrawRecordRepository struct {
	db *sql.DB
}

func NewPostgresDrawRecordRepository(db *sql.DB) DrawRecordRepository {
	return &postgresDrawRecordRepository{db: db}
}

func (r *postgresDrawRecordRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresDrawRecordRepository) Create(ctx context.Context, exec SQLExecutor, record *models.DrawRecord) error {
	executor := r.getExecutor(exec)
	query := `
		INSERT INTO draw_records (tournament_id, kind, seed, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	return executor.QueryRowContext(ctx, query,
		record.TournamentID, record.Kind, record.Seed, record.Payload, record.CreatedAt,
	).Scan(&record.ID)
}

func (r *postgresDrawRecordRepository) ListByTournament(ctx context.Context, tournamentID int) ([]*models.DrawRecord, error) {
	query := `
		SELECT id, tournament_id, kind, seed, payload, created_at
		FROM draw_records
		WHERE tournament_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*models.DrawRecord, 0)
	for rows.Next() {
		var rec models.DrawRecord
		if scanErr := rows.Scan(&rec.ID, &rec.TournamentID, &rec.Kind, &rec.Seed, &rec.Payload, &rec.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		records = append(records, &rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
