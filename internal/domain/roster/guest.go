package roster

import (
	"strings"

	"github.com/riskibarqy/team-draw/internal/domain/position"
)

// GuestMarker is appended to guest names so they never collide with registered players.
const GuestMarker = " (C)"

// Guest is an unregistered player entered by name and position only.
type Guest struct {
	Name     string
	Position position.Code
}

// Player materializes the guest with the given skill, normally the roster mean.
func (g Guest) Player(skill float64) Player {
	return Player{
		Name:     strings.TrimSpace(g.Name) + GuestMarker,
		Position: string(g.Position),
		Skill:    skill,
		Rated:    false,
	}
}

// ParseGuestList turns "Joao, Pedro" into one guest per non-empty name.
func ParseGuestList(text string, code position.Code) []Guest {
	var out []Guest
	for _, part := range strings.Split(text, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		out = append(out, Guest{Name: name, Position: code})
	}
	return out
}
