package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

// RosterInvalidator drops any cached copy of the roster source.
type RosterInvalidator interface {
	Invalidate(ctx context.Context)
}

// RosterOptions lists the names an organizer can pick from.
type RosterOptions struct {
	Goalkeepers []string
	LinePlayers []string
	Total       int
	Mean        float64
}

type RosterService struct {
	repo        roster.Repository
	invalidator RosterInvalidator
	logger      *logging.Logger
}

// NewRosterService builds the service. invalidator may be nil when the
// repository is not cached.
func NewRosterService(repo roster.Repository, invalidator RosterInvalidator, logger *logging.Logger) *RosterService {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterService{
		repo:        repo,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *RosterService) Get(ctx context.Context) (roster.Roster, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Get")
	defer span.End()

	players, err := s.repo.List(ctx)
	if err != nil {
		return roster.Roster{}, fmt.Errorf("%w: list roster: %w", ErrDependencyUnavailable, err)
	}

	return roster.New(players), nil
}

func (s *RosterService) Options(ctx context.Context) (RosterOptions, error) {
	current, err := s.Get(ctx)
	if err != nil {
		return RosterOptions{}, err
	}

	return optionsOf(current), nil
}

// Reload forces the next read to hit the roster source and returns the fresh options.
func (s *RosterService) Reload(ctx context.Context) (RosterOptions, error) {
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}

	opts, err := s.Options(ctx)
	if err != nil {
		return RosterOptions{}, err
	}

	s.logger.InfoContext(ctx, "roster reloaded",
		"players", opts.Total,
		"goalkeepers", len(opts.Goalkeepers),
		"mean_skill", opts.Mean,
	)
	return opts, nil
}

func optionsOf(current roster.Roster) RosterOptions {
	opts := RosterOptions{
		Goalkeepers: []string{},
		LinePlayers: []string{},
		Total:       current.Len(),
		Mean:        current.Mean(),
	}
	for _, p := range current.Players() {
		if position.Primary(p.Position) == position.Goalkeeper {
			opts.Goalkeepers = append(opts.Goalkeepers, p.Name)
			continue
		}
		opts.LinePlayers = append(opts.LinePlayers, p.Name)
	}
	sort.Strings(opts.Goalkeepers)
	sort.Strings(opts.LinePlayers)
	return opts
}
