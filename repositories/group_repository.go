package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/oflinehulk/showyours-core/models"
)

var ErrGroupNotFound = errors.New("group not found")

type GroupRepository interface {
	// ReplaceForStage swaps a stage's groups wholesale and fills the new
	// group ids. Re-running a draw supersedes the previous one; no merging.
	// Must run inside the caller's transaction.
	ReplaceForStage(ctx context.Context, exec SQLExecutor, stageID int, groups []*models.Group) error
	CreateAssignments(ctx context.Context, exec SQLExecutor, assignments []*models.GroupAssignment) error
	GetByID(ctx context.Context, id int) (*models.Group, error)
	ListAssignments(ctx context.Context, groupID int) ([]*models.GroupAssignment, error)
	ListTeamSeeds(ctx context.Context, groupID int) (map[int]int, error)
}

type postgresGroupRepository struct {
	db *sql.DB
}

func NewPostgresGroupRepository(db *sql.DB) GroupRepository {
	return &postgresGroupRepository{db: db}
}

func (r *postgresGroupRepository) ReplaceForStage(ctx context.Context, exec SQLExecutor, stageID int, groups []*models.Group) error {
	if exec == nil {
		return errors.New("ReplaceForStage requires a transaction executor")
	}

	// Assignments cascade with their groups.
	if _, err := exec.ExecContext(ctx, `DELETE FROM groups WHERE stage_id = $1`, stageID); err != nil {
		return fmt.Errorf("failed to clear groups for stage %d: %w", stageID, err)
	}

	insertGroup := `
		INSERT INTO groups (label, stage_id)
		VALUES ($1, $2)
		RETURNING id, created_at`
	for _, group := range groups {
		group.StageID = stageID
		err := exec.QueryRowContext(ctx, insertGroup, group.Label, stageID).Scan(&group.ID, &group.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert group %q: %w", group.Label, err)
		}
	}
	return nil
}

func (r *postgresGroupRepository) CreateAssignments(ctx context.Context, exec SQLExecutor, assignments []*models.GroupAssignment) error {
	if exec == nil {
		return errors.New("CreateAssignments requires a transaction executor")
	}

	query := `
		INSERT INTO group_teams (group_id, team_id, pot)
		VALUES ($1, $2, $3)
		RETURNING id`
	for _, assignment := range assignments {
		err := exec.QueryRowContext(ctx, query, assignment.GroupID, assignment.TeamID, assignment.Pot).Scan(&assignment.ID)
		if err != nil {
			return fmt.Errorf("failed to assign team %d to group %d: %w", assignment.TeamID, assignment.GroupID, err)
		}
	}
	return nil
}

func (r *postgresGroupRepository) GetByID(ctx context.Context, id int) (*models.Group, error) {
	query := `SELECT id, label, stage_id, created_at FROM groups WHERE id = $1`

	group := &models.Group{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&group.ID, &group.Label, &group.StageID, &group.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGroupNotFound
		}
		return nil, err
	}
	return group, nil
}

func (r *postgresGroupRepository) ListAssignments(ctx context.Context, groupID int) ([]*models.GroupAssignment, error) {
	query := `SELECT id, group_id, team_id, pot FROM group_teams WHERE group_id = $1 ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*models.GroupAssignment, 0)
	for rows.Next() {
		var a models.GroupAssignment
		if scanErr := rows.Scan(&a.ID, &a.GroupID, &a.TeamID, &a.Pot); scanErr != nil {
			return nil, scanErr
		}
		assignments = append(assignments, &a)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// ListTeamSeeds maps team id to original seed for every team in the group,
// the tie-break input of the standings calculator.
func (r *postgresGroupRepository) ListTeamSeeds(ctx context.Context, groupID int) (map[int]int, error) {
	query := `
		SELECT t.id, t.seed
		FROM group_teams gt
		JOIN teams t ON t.id = gt.team_id
		WHERE gt.group_id = $1`

	rows, err := r.db.QueryContext(ctx, query, groupID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seeds := make(map[int]int)
	for rows.Next() {
		var teamID, seed int
		if scanErr := rows.Scan(&teamID, &seed); scanErr != nil {
			return nil, scanErr
		}
		seeds[teamID] = seed
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return seeds, nil
}
