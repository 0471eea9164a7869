package formation

import (
	"sort"

	"github.com/riskibarqy/team-draw/internal/domain/position"
)

const unassigned = -1

// Assign places every player of one team on the formation. Goalkeepers are
// labeled directly. Line players claim open slots by primary position, then by
// secondary position, then take any open slot as improvised, and finally go to
// the reserve. Slots are claimed first-come-first-served in input order, which
// callers should treat as arbitrary. Unfilled slots produce no rows.
func Assign(players []Player) []Assignment {
	out := make([]Assignment, 0, len(players))
	taken := make([]bool, len(Template))
	slotOf := make([]int, len(players))

	var line []int
	for i, p := range players {
		if p.IsGoalkeeper() {
			out = append(out, assignment(p, position.Goalkeeper, position.LabelGoalkeeper))
			continue
		}
		slotOf[i] = unassigned
		line = append(line, i)
	}

	claim := func(pick func(Player) position.Code) {
		for _, i := range line {
			if slotOf[i] != unassigned {
				continue
			}
			slot := openSlot(taken, pick(players[i]))
			if slot == unassigned {
				continue
			}
			taken[slot] = true
			slotOf[i] = slot
			out = append(out, assignment(players[i], Template[slot], position.Label(Template[slot])))
		}
	}
	claim(func(p Player) position.Code { return p.Primary })
	claim(func(p Player) position.Code { return p.Secondary })

	for _, i := range line {
		if slotOf[i] != unassigned {
			continue
		}
		slot := firstOpen(taken)
		if slot == unassigned {
			row := assignment(players[i], "", position.LabelReserve)
			row.Reserve = true
			out = append(out, row)
			continue
		}
		taken[slot] = true
		slotOf[i] = slot
		row := assignment(players[i], Template[slot], position.Label(Template[slot])+ImprovisedSuffix)
		row.Improvised = true
		out = append(out, row)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank() < out[j].Rank()
	})
	return out
}

func openSlot(taken []bool, code position.Code) int {
	for slot, slotCode := range Template {
		if !taken[slot] && slotCode == code {
			return slot
		}
	}
	return unassigned
}

func firstOpen(taken []bool) int {
	for slot := range Template {
		if !taken[slot] {
			return slot
		}
	}
	return unassigned
}

func assignment(p Player, code position.Code, label string) Assignment {
	return Assignment{
		Label:  label,
		Code:   code,
		Name:   p.Name,
		Skill:  p.Skill,
		Origin: p.Origin,
	}
}
