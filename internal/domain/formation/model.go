package formation

import "github.com/riskibarqy/team-draw/internal/domain/position"

// ImprovisedSuffix marks a player placed outside both of their positions.
const ImprovisedSuffix = " (Imp)"

// Template is the line formation every team is filled against.
var Template = []position.Code{
	position.CenterBack,
	position.Fullback,
	position.Fullback,
	position.HoldingMidfield,
	position.Midfielder,
	position.Midfielder,
	position.Forward,
}

// Player is one team member ready for slot assignment.
type Player struct {
	Name      string
	Skill     float64
	Origin    string
	Primary   position.Code
	Secondary position.Code
}

// NewPlayer classifies the raw position descriptor.
func NewPlayer(name string, skill float64, descriptor string) Player {
	primary, secondary := position.Classify(descriptor)
	return Player{
		Name:      name,
		Skill:     skill,
		Origin:    descriptor,
		Primary:   primary,
		Secondary: secondary,
	}
}

func (p Player) IsGoalkeeper() bool {
	return p.Primary == position.Goalkeeper
}

// Assignment is one output row of a team sheet.
type Assignment struct {
	Label string
	// Code is the slot filled, empty for reserves.
	Code       position.Code
	Improvised bool
	Reserve    bool
	Name       string
	Skill      float64
	Origin     string
}

// Rank orders the row within the team sheet.
func (a Assignment) Rank() int {
	return position.RankOf(a.Label)
}
