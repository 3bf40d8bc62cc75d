package repositories

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/oflinehulk/showyours-core/models"
)

type AvailabilityRepository interface {
	// ListByMatchIDs returns every submitted slot for the given matches,
	// keyed by match id, the scheduler's input shape.
	ListByMatchIDs(ctx context.Context, matchIDs []int) (map[int][]models.AvailabilitySlot, error)
}

type postgresAvailabilityRepository struct {
	db *sql.DB
}

func NewPostgresAvailabilityRepository(db *sql.DB) AvailabilityRepository {
	return &postgresAvailabilityRepository{db: db}
}

func (r *postgresAvailabilityRepository) ListByMatchIDs(ctx context.Context, matchIDs []int) (map[int][]models.AvailabilitySlot, error) {
	byMatch := make(map[int][]models.AvailabilitySlot)
	if len(matchIDs) == 0 {
		return byMatch, nil
	}

	query := `
		SELECT id, team_id, match_id, to_char(date, 'YYYY-MM-DD'), to_char(time, 'HH24:MI')
		FROM availability_slots
		WHERE match_id = ANY($1)
		ORDER BY match_id ASC, date ASC, time ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var slot models.AvailabilitySlot
		if scanErr := rows.Scan(&slot.ID, &slot.TeamID, &slot.MatchID, &slot.Date, &slot.Time); scanErr != nil {
			return nil, scanErr
		}
		byMatch[slot.MatchID] = append(byMatch[slot.MatchID], slot)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return byMatch, nil
}
