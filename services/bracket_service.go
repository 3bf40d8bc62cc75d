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
	"github.com/oflinehulk/showyours-core/repositories"
	"github.com/oflinehulk/showyours-core/storage"
	"golang.org/x/sync/errgroup"
)

type BracketFormat string

const (
	FormatSingleElimination BracketFormat = "single_elimination"
	FormatDoubleElimination BracketFormat = "double_elimination"
	FormatRoundRobin        BracketFormat = "round_robin"
)

// BracketView bundles a tournament's match skeleton with the teams feeding
// it, for host dashboards.
type BracketView struct {
	TournamentID int             `json:"tournament_id"`
	Matches      []*models.Match `json:"matches"`
	Teams        []*models.Team  `json:"teams"`
}

type BracketService interface {
	// GenerateAndSaveBracket builds the full match skeleton for the
	// tournament's approved teams and replaces any previously generated
	// bracket in one transaction. A re-run fully supersedes the old output.
	GenerateAndSaveBracket(ctx context.Context, tournamentID int, format BracketFormat, opts brackets.Options) ([]*models.Match, error)
	GetTournamentBracket(ctx context.Context, tournamentID int) (*BracketView, error)
}

type bracketService struct {
	db        *sql.DB
	teamRepo  repositories.TeamRepository
	matchRepo repositories.MatchRepository
	hub       *brackets.Hub
	uploader  storage.FileUploader
}

func NewBracketService(
	db *sql.DB,
	teamRepo repositories.TeamRepository,
	matchRepo repositories.MatchRepository,
	hub *brackets.Hub,
	uploader storage.FileUploader,
) BracketService {
	return &bracketService{
		db:        db,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		hub:       hub,
		uploader:  uploader,
	}
}

func (s *bracketService) GenerateAndSaveBracket(ctx context.Context, tournamentID int, format BracketFormat, opts brackets.Options) ([]*models.Match, error) {
	teams, err := s.teamRepo.ListApprovedBySeed(ctx, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved teams for tournament %d: %w", tournamentID, err)
	}
	if len(teams) == 0 {
		return nil, ErrNoApprovedTeams
	}

	var generator brackets.Generator
	switch format {
	case FormatSingleElimination:
		generator = brackets.NewSingleEliminationGenerator()
	case FormatDoubleElimination:
		generator = brackets.NewDoubleEliminationGenerator()
	case FormatRoundRobin:
		generator = brackets.NewRoundRobinGenerator()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	teamIDs := make([]int, len(teams))
	for i, team := range teams {
		teamIDs[i] = team.ID
	}

	generated, err := generator.GenerateBracket(ctx, brackets.GenerateParams{
		TournamentID: tournamentID,
		TeamIDs:      teamIDs,
		Options:      opts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s bracket for tournament %d: %w", generator.GetName(), tournamentID, err)
	}

	matches := make([]*models.Match, len(generated))
	for i, bm := range generated {
		matches[i] = &models.Match{
			TournamentID: tournamentID,
			Round:        bm.Round,
			MatchNumber:  bm.MatchNumber,
			Bracket:      bm.Bracket,
			TeamAID:      bm.SlotA.TeamIDPtr(),
			TeamBID:      bm.SlotB.TeamIDPtr(),
			Status:       models.MatchStatusPending,
			BestOf:       bm.BestOf,
			GroupID:      opts.GroupID,
			StageID:      opts.StageID,
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
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

	// Replace-whole-output: a regenerated bracket never merges into the old
	// one.
	if txErr = s.matchRepo.DeleteByTournament(ctx, tx, tournamentID); txErr != nil {
		return nil, fmt.Errorf("failed to clear previous bracket: %w", txErr)
	}
	if txErr = s.matchRepo.CreateBatch(ctx, tx, matches); txErr != nil {
		return nil, fmt.Errorf("failed to save generated bracket: %w", txErr)
	}
	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit bracket for tournament %d: %w", tournamentID, txErr)
	}

	s.hub.BroadcastToRoom(strconv.Itoa(tournamentID), brackets.Event{
		Type: brackets.EventBracketGenerated,
		Payload: map[string]interface{}{
			"tournament_id": tournamentID,
			"format":        format,
			"match_count":   len(matches),
		},
	})

	s.exportSnapshot(ctx, tournamentID, matches)

	return matches, nil
}

// exportSnapshot pushes the generated skeleton to object storage so hosts
// can download and verify it. Best effort: a failed export never fails the
// generation.
func (s *bracketService) exportSnapshot(ctx context.Context, tournamentID int, matches []*models.Match) {
	if s.uploader == nil {
		return
	}
	body, err := json.Marshal(matches)
	if err != nil {
		log.Printf("Failed to marshal bracket snapshot for tournament %d: %v", tournamentID, err)
		return
	}
	key := fmt.Sprintf("tournaments/%d/bracket.json", tournamentID)
	if _, err := s.uploader.UploadJSON(ctx, key, body); err != nil {
		log.Printf("Failed to export bracket snapshot for tournament %d: %v", tournamentID, err)
	}
}

func (s *bracketService) GetTournamentBracket(ctx context.Context, tournamentID int) (*BracketView, error) {
	view := &BracketView{TournamentID: tournamentID}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		matches, err := s.matchRepo.ListByTournament(gCtx, tournamentID, nil)
		if err != nil {
			return fmt.Errorf("failed to fetch matches for tournament %d: %w", tournamentID, err)
		}
		view.Matches = matches
		return nil
	})
	g.Go(func() error {
		teams, err := s.teamRepo.ListApprovedBySeed(gCtx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to fetch teams for tournament %d: %w", tournamentID, err)
		}
		view.Teams = teams
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return view, nil
}
