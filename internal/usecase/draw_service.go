package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/team-draw/internal/domain/balance"
	"github.com/riskibarqy/team-draw/internal/domain/draw"
	"github.com/riskibarqy/team-draw/internal/domain/position"
	"github.com/riskibarqy/team-draw/internal/domain/roster"
	idgen "github.com/riskibarqy/team-draw/internal/platform/id"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
)

// DrawLimits bounds what a single draw may contain.
type DrawLimits struct {
	MaxGoalkeepers int
	MaxLinePlayers int
	MinLinePlayers int
	DefaultVariety int
	MaxOptions     int
	Workers        int
}

func DefaultDrawLimits() DrawLimits {
	return DrawLimits{
		MaxGoalkeepers: 2,
		MaxLinePlayers: 14,
		MinLinePlayers: 2,
		DefaultVariety: 2,
		MaxOptions:     5,
		Workers:        4,
	}
}

// DrawInput is the organizer's selection. A nil Variety uses the configured default.
type DrawInput struct {
	Goalkeepers []string
	LinePlayers []string
	Guests      []roster.Guest
	Variety     *int
}

// DrawOutcome is one finished draw.
type DrawOutcome struct {
	ID        string
	Variety   int
	CreatedAt time.Time
	draw.Result
}

type DrawService struct {
	rosters   *RosterService
	limits    DrawLimits
	idGen     idgen.Generator
	logger    *logging.Logger
	newRandom func() balance.Random
	now       func() time.Time
}

func NewDrawService(rosters *RosterService, limits DrawLimits, idGen idgen.Generator, logger *logging.Logger) *DrawService {
	if logger == nil {
		logger = logging.Default()
	}
	if limits.Workers <= 0 {
		limits.Workers = 1
	}

	return &DrawService{
		rosters: rosters,
		limits:  limits,
		idGen:   idGen,
		logger:  logger,
		newRandom: func() balance.Random {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
		now: time.Now,
	}
}

type preparedDraw struct {
	selection draw.Selection
	roster    roster.Roster
	variety   int
}

func (s *DrawService) Draw(ctx context.Context, input DrawInput) (DrawOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.Draw")
	defer span.End()

	prepared, err := s.prepare(ctx, input)
	if err != nil {
		return DrawOutcome{}, err
	}

	outcome, err := s.run(prepared, s.newRandom())
	if err != nil {
		return DrawOutcome{}, err
	}

	span.SetAttributes(
		attribute.String("draw.id", outcome.ID),
		attribute.Float64("draw.diff", outcome.Diff),
	)
	s.logOutcome(ctx, outcome)
	return outcome, nil
}

// Options runs count independent draws over the same selection and returns
// them from the most to the least balanced.
func (s *DrawService) Options(ctx context.Context, input DrawInput, count int) ([]DrawOutcome, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DrawService.Options")
	defer span.End()

	if count < 1 || count > s.limits.MaxOptions {
		return nil, fmt.Errorf("%w: count must be between 1 and %d", ErrInvalidInput, s.limits.MaxOptions)
	}

	prepared, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	// the random source is not safe for concurrent use, so every draw gets its own
	sources := make([]balance.Random, count)
	for i := range sources {
		sources[i] = s.newRandom()
	}

	pool, err := ants.NewPool(min(s.limits.Workers, count))
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	outcomes := make([]DrawOutcome, count)
	errs := make([]error, count)
	var workers sync.WaitGroup
	for i := 0; i < count; i++ {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			outcomes[i], errs[i] = s.run(prepared, sources[i])
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit draw to worker pool: %w", err)
		}
	}
	workers.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	sort.SliceStable(outcomes, func(i, j int) bool {
		return outcomes[i].Diff < outcomes[j].Diff
	})
	for _, outcome := range outcomes {
		s.logOutcome(ctx, outcome)
	}
	return outcomes, nil
}

func (s *DrawService) prepare(ctx context.Context, input DrawInput) (preparedDraw, error) {
	variety := s.limits.DefaultVariety
	if input.Variety != nil {
		variety = *input.Variety
	}
	if variety < balance.MinVariety || variety > balance.MaxVariety {
		return preparedDraw{}, fmt.Errorf("%w: variety must be between %d and %d", ErrInvalidInput, balance.MinVariety, balance.MaxVariety)
	}

	guests := make([]roster.Guest, 0, len(input.Guests))
	for _, g := range input.Guests {
		g.Name = strings.TrimSpace(g.Name)
		if g.Name == "" {
			continue
		}
		if !g.Position.Valid() {
			return preparedDraw{}, fmt.Errorf("%w: guest %s has unknown position %q", ErrInvalidInput, g.Name, g.Position)
		}
		guests = append(guests, g)
	}

	current, err := s.rosters.Get(ctx)
	if err != nil {
		return preparedDraw{}, err
	}

	seen := make(map[string]struct{})
	goalkeepers := cleanNames(input.Goalkeepers, seen)
	linePlayers := cleanNames(input.LinePlayers, seen)

	var unknown []string
	var keeperCount, lineCount int
	for _, name := range append(append([]string(nil), goalkeepers...), linePlayers...) {
		p, ok := current.Lookup(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		if position.Primary(p.Position) == position.Goalkeeper {
			keeperCount++
		} else {
			lineCount++
		}
	}
	if len(unknown) > 0 {
		return preparedDraw{}, fmt.Errorf("%w: unknown players: %s", ErrInvalidInput, strings.Join(unknown, ", "))
	}
	for _, g := range guests {
		if g.Position == position.Goalkeeper {
			keeperCount++
		} else {
			lineCount++
		}
	}

	switch {
	case keeperCount > s.limits.MaxGoalkeepers:
		return preparedDraw{}, fmt.Errorf("%w: %d goalkeepers selected, at most %d allowed", ErrInvalidInput, keeperCount, s.limits.MaxGoalkeepers)
	case lineCount > s.limits.MaxLinePlayers:
		return preparedDraw{}, fmt.Errorf("%w: %d line players selected, at most %d allowed", ErrInvalidInput, lineCount, s.limits.MaxLinePlayers)
	case lineCount < s.limits.MinLinePlayers:
		return preparedDraw{}, fmt.Errorf("%w: %d line players selected, at least %d required", ErrInvalidInput, lineCount, s.limits.MinLinePlayers)
	}

	return preparedDraw{
		selection: draw.Selection{
			Goalkeepers: goalkeepers,
			LinePlayers: linePlayers,
			Guests:      guests,
		},
		roster:  current,
		variety: variety,
	}, nil
}

func (s *DrawService) run(prepared preparedDraw, rng balance.Random) (DrawOutcome, error) {
	drawID, err := s.idGen.NewID()
	if err != nil {
		return DrawOutcome{}, fmt.Errorf("generate draw id: %w", err)
	}

	result := draw.NewController(rng).Split(prepared.selection, prepared.roster, prepared.variety)
	return DrawOutcome{
		ID:        drawID,
		Variety:   prepared.variety,
		CreatedAt: s.now().UTC(),
		Result:    result,
	}, nil
}

func (s *DrawService) logOutcome(ctx context.Context, outcome DrawOutcome) {
	s.logger.InfoContext(ctx, "teams drawn",
		"draw_id", outcome.ID,
		"variety", outcome.Variety,
		"team_a_size", len(outcome.TeamA.Rows),
		"team_b_size", len(outcome.TeamB.Rows),
		"team_a_strength", outcome.TeamA.Strength,
		"team_b_strength", outcome.TeamB.Strength,
		"diff", outcome.Diff,
		"candidates", outcome.Candidates,
		"sampled", outcome.Sampled,
		"shuffled", outcome.Shuffled,
	)
}

func cleanNames(names []string, seen map[string]struct{}) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		key := roster.NameKey(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, name)
	}
	return out
}
