package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/oflinehulk/showyours-core/brackets"
	"github.com/oflinehulk/showyours-core/models"
	"github.com/oflinehulk/showyours-core/random"
	"github.com/oflinehulk/showyours-core/repositories"
	"github.com/oflinehulk/showyours-core/seeding"
	"github.com/oflinehulk/showyours-core/storage"
)

// CoinFlipResult reports one audited coin flip between two teams.
type CoinFlipResult struct {
	TournamentID int    `json:"tournament_id"`
	TeamAID      int    `json:"team_a_id"`
	TeamBID      int    `json:"team_b_id"`
	WinnerID     int    `json:"winner_id"`
	DrawSeed     string `json:"draw_seed"`
}

type SeedingService interface {
	// AssignGroups partitions a tournament's approved teams into groupCount
	// groups using the balanced snake draft or a fully random deal. The new
	// groups replace any previous draw for the stage.
	AssignGroups(ctx context.Context, tournamentID, stageID, groupCount int, mode seeding.Mode) (*seeding.Result, error)
	// AssignGroupsByPots runs a pot-constrained draw. potByTeam maps team id
	// to pot number; teams missing from the map fall into the overflow pot.
	AssignGroupsByPots(ctx context.Context, tournamentID, stageID, groupCount int, potByTeam map[int]int) (*seeding.Result, error)
	// CoinFlip decides an order-of-play dispute between two teams and writes
	// the outcome to the draw audit trail.
	CoinFlip(ctx context.Context, tournamentID, teamAID, teamBID int) (*CoinFlipResult, error)
	ListDraws(ctx context.Context, tournamentID int) ([]*models.DrawRecord, error)
}

type seedingService struct {
	db        *sql.DB
	rnd       random.Provider
	teamRepo  repositories.TeamRepository
	groupRepo repositories.GroupRepository
	drawRepo  repositories.DrawRecordRepository
	hub       *brackets.Hub
	uploader  storage.FileUploader
}

func NewSeedingService(
	db *sql.DB,
	rnd random.Provider,
	teamRepo repositories.TeamRepository,
	groupRepo repositories.GroupRepository,
	drawRepo repositories.DrawRecordRepository,
	hub *brackets.Hub,
	uploader storage.FileUploader,
) SeedingService {
	return &seedingService{
		db:        db,
		rnd:       rnd,
		teamRepo:  teamRepo,
		groupRepo: groupRepo,
		drawRepo:  drawRepo,
		hub:       hub,
		uploader:  uploader,
	}
}

func (s *seedingService) AssignGroups(ctx context.Context, tournamentID, stageID, groupCount int, mode seeding.Mode) (*seeding.Result, error) {
	teams, err := s.loadDrawTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	var result *seeding.Result
	switch mode {
	case seeding.ModeBalanced:
		result, err = seeding.AssignBalanced(teams, groupCount)
	case seeding.ModeRandom:
		result, err = seeding.AssignRandom(s.rnd, teams, groupCount)
	default:
		return nil, fmt.Errorf("unsupported assignment mode %q", mode)
	}
	if err != nil {
		return nil, err
	}

	if err := s.persistDraw(ctx, tournamentID, stageID, result, models.DrawKindGroupRandom); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *seedingService) AssignGroupsByPots(ctx context.Context, tournamentID, stageID, groupCount int, potByTeam map[int]int) (*seeding.Result, error) {
	teams, err := s.loadDrawTeams(ctx, tournamentID)
	if err != nil {
		return nil, err
	}

	potTeams := make([]seeding.PotTeam, len(teams))
	for i, t := range teams {
		pot := potByTeam[t.ID] // missing teams land in the overflow pot
		potTeams[i] = seeding.PotTeam{Team: t, Pot: pot, OriginPot: pot}
	}

	result, err := seeding.AssignByPots(s.rnd, potTeams, groupCount)
	if err != nil {
		return nil, err
	}

	if err := s.persistDraw(ctx, tournamentID, stageID, result, models.DrawKindPot); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *seedingService) loadDrawTeams(ctx context.Context, tournamentID int) ([]seeding.Team, error) {
	approved, err := s.teamRepo.ListApprovedBySeed(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved teams for tournament %d: %w", tournamentID, err)
	}
	if len(approved) == 0 {
		return nil, ErrNoApprovedTeams
	}

	teams := make([]seeding.Team, len(approved))
	for i, t := range approved {
		teams[i] = seeding.Team{ID: t.ID, Seed: t.Seed}
	}
	return teams, nil
}

// persistDraw writes groups and assignments in one transaction, then records
// the draw seed for auditing and notifies the tournament room.
func (s *seedingService) persistDraw(ctx context.Context, tournamentID, stageID int, result *seeding.Result, kind models.DrawKind) error {
	groups := make([]*models.Group, result.GroupCount)
	for g := 0; g < result.GroupCount; g++ {
		groups[g] = &models.Group{Label: seeding.GroupLabel(g), StageID: stageID}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	var txErr error
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		} else if txErr != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				log.Printf("Error during rollback: %v. Original error: %v", rbErr, txErr)
			}
		}
	}()

	if txErr = s.groupRepo.ReplaceForStage(ctx, tx, stageID, groups); txErr != nil {
		return fmt.Errorf("failed to replace groups for stage %d: %w", stageID, txErr)
	}

	assignments := make([]*models.GroupAssignment, len(result.Assignments))
	for i, a := range result.Assignments {
		assignments[i] = &models.GroupAssignment{
			GroupID: groups[a.Group].ID,
			TeamID:  a.TeamID,
			Pot:     a.Pot,
		}
	}
	if txErr = s.groupRepo.CreateAssignments(ctx, tx, assignments); txErr != nil {
		return fmt.Errorf("failed to save group assignments: %w", txErr)
	}

	if result.DrawSeed != "" {
		payload, marshalErr := json.Marshal(result)
		if marshalErr != nil {
			txErr = fmt.Errorf("failed to marshal draw payload: %w", marshalErr)
			return txErr
		}
		record := &models.DrawRecord{
			TournamentID: tournamentID,
			Kind:         kind,
			Seed:         result.DrawSeed,
			Payload:      string(payload),
		}
		if txErr = s.drawRepo.Create(ctx, tx, record); txErr != nil {
			return fmt.Errorf("failed to record draw %s: %w", result.DrawSeed, txErr)
		}
	}

	if txErr = tx.Commit(); txErr != nil {
		return fmt.Errorf("failed to commit group draw for stage %d: %w", stageID, txErr)
	}

	s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), brackets.Event{
		Type: brackets.EventGroupDrawComplete,
		Payload: map[string]interface{}{
			"tournament_id": tournamentID,
			"stage_id":      stageID,
			"group_count":   result.GroupCount,
			"draw_seed":     result.DrawSeed,
		},
	})

	if s.uploader != nil && result.DrawSeed != "" {
		body, marshalErr := json.Marshal(result)
		if marshalErr == nil {
			key := fmt.Sprintf("draws/%s.json", result.DrawSeed)
			if _, upErr := s.uploader.UploadJSON(ctx, key, body); upErr != nil {
				log.Printf("Failed to export draw %s: %v", result.DrawSeed, upErr)
			}
		}
	}

	return nil
}

func (s *seedingService) CoinFlip(ctx context.Context, tournamentID, teamAID, teamBID int) (*CoinFlipResult, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamAID); err != nil {
		return nil, fmt.Errorf("failed to resolve team %d: %w", teamAID, err)
	}
	if _, err := s.teamRepo.GetByID(ctx, teamBID); err != nil {
		return nil, fmt.Errorf("failed to resolve team %d: %w", teamBID, err)
	}

	winnerID := teamAID
	if s.rnd.CoinFlip() == 1 {
		winnerID = teamBID
	}

	flip := &CoinFlipResult{
		TournamentID: tournamentID,
		TeamAID:      teamAID,
		TeamBID:      teamBID,
		WinnerID:     winnerID,
		DrawSeed:     s.rnd.NewDrawSeed(),
	}

	payload, err := json.Marshal(flip)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal coin flip payload: %w", err)
	}
	record := &models.DrawRecord{
		TournamentID: tournamentID,
		Kind:         models.DrawKindCoinFlip,
		Seed:         flip.DrawSeed,
		Payload:      string(payload),
	}
	if err := s.drawRepo.Create(ctx, nil, record); err != nil {
		return nil, fmt.Errorf("failed to record coin flip: %w", err)
	}
	return flip, nil
}

func (s *seedingService) ListDraws(ctx context.Context, tournamentID int) ([]*models.DrawRecord, error) {
	return s.drawRepo.ListByTournament(ctx, tournamentID)
}
