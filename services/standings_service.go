package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/oflinehulk/showyours-core/models"
	"github.com/oflinehulk/showyours-core/repositories"
	"github.com/oflinehulk/showyours-core/standings"
	"golang.org/x/sync/errgroup"
)

// GroupTable is the rendered standings for one group, with optional
// qualification cut lines applied.
type GroupTable struct {
	GroupID    int                       `json:"group_id"`
	GroupLabel string                    `json:"group_label"`
	Rows       []models.GroupStandingRow `json:"rows"`
	Advancing  []models.GroupStandingRow `json:"advancing,omitempty"`
	ToLower    []models.GroupStandingRow `json:"to_lower,omitempty"`
	Eliminated []models.GroupStandingRow `json:"eliminated,omitempty"`
}

type StandingsService interface {
	// GetGroupStandings recomputes the group table from completed matches.
	// advanceCount and advanceToLowerCount draw the qualification cut lines;
	// pass zero for both to get the plain table.
	GetGroupStandings(ctx context.Context, groupID, advanceCount, advanceToLowerCount int) (*GroupTable, error)
}

type standingsService struct {
	matchRepo repositories.MatchRepository
	groupRepo repositories.GroupRepository
}

func NewStandingsService(matchRepo repositories.MatchRepository, groupRepo repositories.GroupRepository) StandingsService {
	return &standingsService{matchRepo: matchRepo, groupRepo: groupRepo}
}

func (s *standingsService) GetGroupStandings(ctx context.Context, groupID, advanceCount, advanceToLowerCount int) (*GroupTable, error) {
	group, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		if errors.Is(err, repositories.ErrGroupNotFound) {
			return nil, ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to fetch group %d: %w", groupID, err)
	}

	var (
		matches []*models.Match
		seeds   map[int]int
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var fetchErr error
		matches, fetchErr = s.matchRepo.ListCompletedByGroup(gCtx, groupID)
		if fetchErr != nil {
			return fmt.Errorf("failed to fetch completed matches for group %d: %w", groupID, fetchErr)
		}
		return nil
	})
	g.Go(func() error {
		var fetchErr error
		seeds, fetchErr = s.groupRepo.ListTeamSeeds(gCtx, groupID)
		if fetchErr != nil {
			return fmt.Errorf("failed to fetch team seeds for group %d: %w", groupID, fetchErr)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	table := standings.Compute(matches, seeds, standings.OnePointPerWin)

	view := &GroupTable{
		GroupID:    group.ID,
		GroupLabel: group.Label,
		Rows:       table,
	}
	if advanceCount > 0 || advanceToLowerCount > 0 {
		view.Advancing, view.ToLower, view.Eliminated = standings.SplitQualifiers(table, advanceCount, advanceToLowerCount)
	}
	return view, nil
}
