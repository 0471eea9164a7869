package cache

import (
	"context"
	"sync"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
	basecache "github.com/riskibarqy/team-draw/internal/platform/cache"
	"github.com/riskibarqy/team-draw/internal/platform/logging"
	"github.com/riskibarqy/team-draw/internal/platform/resilience"
)

const rosterKeyPrefix = "roster:"

// RosterRepository caches the roster source under its identity and falls back
// to the last good copy when the source fails.
type RosterRepository struct {
	next    roster.Repository
	cache   *basecache.Store[[]roster.Player]
	key     string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger

	mu       sync.RWMutex
	lastGood []roster.Player
}

// NewRosterRepository wraps next. source names the roster origin, for example
// a file path or "postgres". breaker may be nil.
func NewRosterRepository(
	next roster.Repository,
	cache *basecache.Store[[]roster.Player],
	source string,
	breaker *resilience.CircuitBreaker,
	logger *logging.Logger,
) *RosterRepository {
	if logger == nil {
		logger = logging.Default()
	}

	return &RosterRepository{
		next:    next,
		cache:   cache,
		key:     rosterKeyPrefix + source,
		breaker: breaker,
		logger:  logger,
	}
}

func (r *RosterRepository) List(ctx context.Context) ([]roster.Player, error) {
	items, err := r.cache.GetOrLoad(ctx, r.key, r.load)
	if err != nil {
		r.mu.RLock()
		stale := r.lastGood
		r.mu.RUnlock()
		if stale == nil {
			return nil, err
		}

		r.logger.WarnContext(ctx, "roster source failed, serving last good copy",
			"source", r.key,
			"players", len(stale),
			"error", err,
		)
		return append([]roster.Player(nil), stale...), nil
	}

	return append([]roster.Player(nil), items...), nil
}

// Invalidate drops every cached roster so the next List reads the source.
func (r *RosterRepository) Invalidate(ctx context.Context) {
	r.cache.DeletePrefix(ctx, rosterKeyPrefix)
}

func (r *RosterRepository) load(ctx context.Context) ([]roster.Player, error) {
	var items []roster.Player
	err := r.breaker.Do(func() error {
		var err error
		items, err = r.next.List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	items = append([]roster.Player(nil), items...)
	r.mu.Lock()
	r.lastGood = items
	r.mu.Unlock()
	return items, nil
}
