package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/oflinehulk/showyours-core/models"
)

var ErrTeamNotFound = errors.New("team not found")

type TeamRepository interface {
	// ListApprovedBySeed returns the approved teams of a tournament in seed
	// order, seed 1 first. Every generator and draw expects this shape.
	ListApprovedBySeed(ctx context.Context, tournamentID int) ([]*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
}

type postgresTeamRepository struct {
	db *sql.DB
}

func NewPostgresTeamRepository(db *sql.DB) TeamRepository {
	return &postgresTeamRepository{db: db}
}

func (r *postgresTeamRepository) ListApprovedBySeed(ctx context.Context, tournamentID int) ([]*models.Team, error) {
	query := `
		SELECT id, name, seed, created_at
		FROM teams
		WHERE tournament_id = $1 AND status = 'approved'
		ORDER BY seed ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	teams := make([]*models.Team, 0)
	for rows.Next() {
		var team models.Team
		if scanErr := rows.Scan(&team.ID, &team.Name, &team.Seed, &team.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		teams = append(teams, &team)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *postgresTeamRepository) GetByID(ctx context.Context, id int) (*models.Team, error) {
	query := `SELECT id, name, seed, created_at FROM teams WHERE id = $1`

	team := &models.Team{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&team.ID, &team.Name, &team.Seed, &team.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return team, nil
}
