package position

import "strings"

// Code is a normalized tactical position.
type Code string

const (
	Goalkeeper      Code = "G"
	CenterBack      Code = "Z"
	Fullback        Code = "L"
	HoldingMidfield Code = "V"
	Midfielder      Code = "M"
	Forward         Code = "A"
)

const (
	defaultPrimary   = Midfielder
	secondaryDivider = "/"
)

var AllCodes = map[Code]struct{}{
	Goalkeeper:      {},
	CenterBack:      {},
	Fullback:        {},
	HoldingMidfield: {},
	Midfielder:      {},
	Forward:         {},
}

const (
	LabelGoalkeeper      = "Goleiro"
	LabelCenterBack      = "Zagueiro"
	LabelFullback        = "Lateral"
	LabelHoldingMidfield = "Volante"
	LabelMidfielder      = "Meia"
	LabelForward         = "Atacante"
	LabelReserve         = "RESERVA"
)

var labels = map[Code]string{
	Goalkeeper:      LabelGoalkeeper,
	CenterBack:      LabelCenterBack,
	Fullback:        LabelFullback,
	HoldingMidfield: LabelHoldingMidfield,
	Midfielder:      LabelMidfielder,
	Forward:         LabelForward,
}

// RankReserve is also used for labels outside the known set.
const RankReserve = 99

var ranks = map[string]int{
	LabelGoalkeeper:      0,
	LabelCenterBack:      1,
	LabelFullback:        2,
	LabelHoldingMidfield: 3,
	LabelMidfielder:      4,
	LabelForward:         5,
	LabelReserve:         RankReserve,
}

// Valid reports whether c belongs to the closed position alphabet.
func (c Code) Valid() bool {
	_, ok := AllCodes[c]
	return ok
}

// Label returns the display name of a position. Unknown codes are returned as-is.
func Label(c Code) string {
	if label, ok := labels[c]; ok {
		return label
	}
	return string(c)
}

// RankOf orders a slot label by its leading word, so suffixed labels keep their rank.
func RankOf(label string) int {
	fields := strings.Fields(label)
	if len(fields) == 0 {
		return RankReserve
	}
	if rank, ok := ranks[fields[0]]; ok {
		return rank
	}
	return RankReserve
}
