package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/oflinehulk/showyours-core/repositories"
	"github.com/oflinehulk/showyours-core/scheduling"
)

type ScheduleService interface {
	// AutoSchedule runs one scheduling pass over the tournament's pending
	// matches and persists every placement it found. Matches that already
	// carry a time are left untouched, so re-running is a no-op on a fully
	// scheduled tournament.
	AutoSchedule(ctx context.Context, tournamentID, gapMinutes int) (*scheduling.Result, error)
}

type scheduleService struct {
	db               *sql.DB
	matchRepo        repositories.MatchRepository
	availabilityRepo repositories.AvailabilityRepository
	grid             scheduling.Grid
}

func NewScheduleService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	availabilityRepo repositories.AvailabilityRepository,
	grid scheduling.Grid,
) ScheduleService {
	return &scheduleService{
		db:               db,
		matchRepo:        matchRepo,
		availabilityRepo: availabilityRepo,
		grid:             grid,
	}
}

func (s *scheduleService) AutoSchedule(ctx context.Context, tournamentID, gapMinutes int) (*scheduling.Result, error) {
	if gapMinutes < 0 {
		return nil, ErrInvalidGapMinutes
	}

	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for tournament %d: %w", tournamentID, err)
	}

	pendingIDs := make([]int, 0, len(matches))
	for _, m := range matches {
		if m.ScheduledTime == nil && m.TeamAID != nil && m.TeamBID != nil {
			pendingIDs = append(pendingIDs, m.ID)
		}
	}

	availability, err := s.availabilityRepo.ListByMatchIDs(ctx, pendingIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch availability for tournament %d: %w", tournamentID, err)
	}

	result := scheduling.Schedule(scheduling.Request{
		Matches:      matches,
		Availability: availability,
		GapMinutes:   gapMinutes,
		Grid:         s.grid,
	})
	if len(result.Scheduled) == 0 {
		return result, nil
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

	for _, assignment := range result.Scheduled {
		if txErr = s.matchRepo.UpdateScheduledTime(ctx, tx, assignment.MatchID, assignment.ScheduledTime); txErr != nil {
			return nil, fmt.Errorf("failed to persist schedule for match %d: %w", assignment.MatchID, txErr)
		}
	}
	if txErr = tx.Commit(); txErr != nil {
		return nil, fmt.Errorf("failed to commit schedule for tournament %d: %w", tournamentID, txErr)
	}

	return result, nil
}
