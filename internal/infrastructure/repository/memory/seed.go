package memory

import "github.com/riskibarqy/team-draw/internal/domain/roster"

// SeedRoster is the demo roster served when no roster source is configured.
func SeedRoster() []roster.Player {
	return []roster.Player{
		{Name: "Rafael", Position: "G", Skill: 7.5, Rated: true},
		{Name: "Everson", Position: "G", Skill: 6, Rated: true},
		{Name: "Gustavo", Position: "Z", Skill: 7, Rated: true},
		{Name: "Leo", Position: "Z/V", Skill: 6.5, Rated: true},
		{Name: "Marcos", Position: "LD", Skill: 6, Rated: true},
		{Name: "Renan", Position: "LE", Skill: 5.5, Rated: true},
		{Name: "Wesley", Position: "LD/M", Skill: 7, Rated: true},
		{Name: "Andre", Position: "V", Skill: 8, Rated: true},
		{Name: "Thiago", Position: "V/Z", Skill: 6, Rated: true},
		{Name: "Carlos", Position: "M", Skill: 8.5, Rated: true},
		{Name: "Ganso", Position: "M/A", Skill: 9, Rated: true},
		{Name: "Felipe", Position: "M", Skill: 5, Rated: true},
		{Name: "Hulk", Position: "A", Skill: 9, Rated: true},
		{Name: "Pedro", Position: "S", Skill: 8, Rated: true},
		{Name: "Vitinho", Position: "A/M", Skill: 6.5, Rated: true},
		{Name: "Dudu", Position: "M/A"},
	}
}
