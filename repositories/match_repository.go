package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/oflinehulk/showyours-core/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchTeamInvalid       = errors.New("match team conflict or invalid")
	ErrMatchWinnerInvalid     = errors.New("match winner conflict or invalid")
)

type MatchRepository interface {
	CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]*models.Match, error)
	ListCompletedByGroup(ctx context.Context, groupID int) ([]*models.Match, error)
	UpdateScheduledTime(ctx context.Context, exec SQLExecutor, id int, scheduledTime time.Time) error
	UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, id, scoreA, scoreB int, status models.MatchStatus, winnerID *int) error
	DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, round, match_number, bracket_type, team_a_id, team_b_id,
	winner_id, status, best_of, score_a, score_b, scheduled_time, group_id, stage_id, created_at`

// CreateBatch bulk-inserts a generated skeleton. Always called inside the
// service's transaction together with DeleteByTournament, so a re-run fully
// replaces the previous bracket.
func (r *postgresMatchRepository) CreateBatch(ctx context.Context, exec SQLExecutor, matches []*models.Match) error {
	if len(matches) == 0 {
		return nil
	}
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO matches
			(tournament_id, round, match_number, bracket_type, team_a_id, team_b_id,
			 winner_id, status, best_of, score_a, score_b, scheduled_time, group_id, stage_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id, created_at`

	for _, match := range matches {
		err := executor.QueryRowContext(ctx, query,
			match.TournamentID,
			match.Round,
			match.MatchNumber,
			match.Bracket,
			match.TeamAID,
			match.TeamBID,
			match.WinnerID,
			match.Status,
			match.BestOf,
			match.ScoreA,
			match.ScoreB,
			match.ScheduledTime,
			match.GroupID,
			match.StageID,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return fmt.Errorf("CreateBatch failed for round %d match %d: %w", match.Round, match.MatchNumber, r.handleMatchError(err))
		}
	}
	return nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`

	match := &models.Match{}
	err := scanMatch(r.db.QueryRowContext(ctx, query, id), match)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, statusFilter *models.MatchStatus) ([]*models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $")
		queryBuilder.WriteString(strconv.Itoa(len(args) + 1))
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY bracket_type ASC, round ASC, match_number ASC")

	return r.list(ctx, queryBuilder.String(), args...)
}

func (r *postgresMatchRepository) ListCompletedByGroup(ctx context.Context, groupID int) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + `
		FROM matches
		WHERE group_id = $1 AND status = $2
		ORDER BY round ASC, match_number ASC`
	return r.list(ctx, query, groupID, models.MatchStatusCompleted)
}

func (r *postgresMatchRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var match models.Match
		if scanErr := scanMatch(rows, &match); scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, &match)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateScheduledTime(ctx context.Context, exec SQLExecutor, id int, scheduledTime time.Time) error {
	executor := r.getExecutor(exec)
	query := `UPDATE matches SET scheduled_time = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, scheduledTime, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, id, scoreA, scoreB int, status models.MatchStatus, winnerID *int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches
		SET score_a = $1, score_b = $2, status = $3, winner_id = $4
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query, scoreA, scoreB, status, winnerID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) DeleteByTournament(ctx context.Context, exec SQLExecutor, tournamentID int) error {
	executor := r.getExecutor(exec)
	_, err := executor.ExecContext(ctx, `DELETE FROM matches WHERE tournament_id = $1`, tournamentID)
	return err
}

func scanMatch(scanner interface{ Scan(...interface{}) error }, match *models.Match) error {
	return scanner.Scan(
		&match.ID,
		&match.TournamentID,
		&match.Round,
		&match.MatchNumber,
		&match.Bracket,
		&match.TeamAID,
		&match.TeamBID,
		&match.WinnerID,
		&match.Status,
		&match.BestOf,
		&match.ScoreA,
		&match.ScoreB,
		&match.ScheduledTime,
		&match.GroupID,
		&match.StageID,
		&match.CreatedAt,
	)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		if pqErr.Code == "23503" { // foreign_key_violation
			switch pqErr.Constraint {
			case "matches_tournament_id_fkey":
				return ErrMatchTournamentInvalid
			case "matches_team_a_id_fkey", "matches_team_b_id_fkey":
				return ErrMatchTeamInvalid
			case "matches_winner_id_fkey":
				return ErrMatchWinnerInvalid
			}
		}
	}
	return err
}
