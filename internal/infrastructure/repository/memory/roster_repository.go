package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/team-draw/internal/domain/roster"
)

type RosterRepository struct {
	mu      sync.RWMutex
	players []roster.Player
}

func NewRosterRepository(players []roster.Player) *RosterRepository {
	return &RosterRepository{
		players: append([]roster.Player(nil), players...),
	}
}

func (r *RosterRepository) List(_ context.Context) ([]roster.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]roster.Player, 0, len(r.players))
	out = append(out, r.players...)

	return out, nil
}

// Replace swaps the whole roster, as a spreadsheet re-import would.
func (r *RosterRepository) Replace(players []roster.Player) {
	r.mu.Lock()
	r.players = append([]roster.Player(nil), players...)
	r.mu.Unlock()
}
