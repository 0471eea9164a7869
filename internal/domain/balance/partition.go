package balance

import (
	"math"
	"sort"
)

const (
	// MaxExhaustivePlayers is the largest pool searched combinatorially.
	// Larger pools are shuffled and cut in half.
	MaxExhaustivePlayers = 18
	// MaxCandidates caps the number of splits scored per draw.
	MaxCandidates = 4000

	MinVariety     = 0
	MaxVariety     = 10
	baseTopN       = 3
	topNPerVariety = 10
)

// Random is the subset of *math/rand/v2.Rand the partitioner draws from.
type Random interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Split is the outcome of a partition, expressed as indexes into the input.
type Split struct {
	A    []int
	B    []int
	Diff float64
	// Candidates is the number of splits scored, zero for the shuffle fallback.
	Candidates int
	Sampled    bool
	Shuffled   bool
}

type candidate struct {
	members []int
	diff    float64
}

// TopNFromVariety maps the 0..10 variety slider to the number of best splits
// the final choice is drawn from.
func TopNFromVariety(variety int) int {
	variety = min(max(variety, MinVariety), MaxVariety)
	return baseTopN + variety*topNPerVariety
}

// Partition splits skills into two teams whose sizes differ by at most one.
// Team A receives floor(n/2) players. The split is drawn uniformly among the
// topN lowest skill differences, so repeated calls may differ.
func Partition(skills []float64, topN int, rng Random) Split {
	n := len(skills)
	if n == 0 {
		return Split{}
	}

	var total float64
	for _, s := range skills {
		total += s
	}

	if n > MaxExhaustivePlayers {
		order := make([]int, n)
		for i := range order {
			order[i] = i
		}
		rng.Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })

		mid := n / 2
		split := Split{
			A:        append([]int(nil), order[:mid]...),
			B:        append([]int(nil), order[mid:]...),
			Shuffled: true,
		}
		split.Diff = math.Abs(total - 2*sumOf(skills, split.A))
		return split
	}

	k := n / 2
	if k == 0 {
		return Split{A: []int{}, B: []int{0}, Diff: math.Abs(total)}
	}

	// index 0 is the anchor: it is always on side A, so each unordered split
	// is generated exactly once
	var candidates []candidate
	iter := &combinationIterator{n: n - 1, k: k - 1}
	for iter.Next() {
		members := make([]int, 0, k)
		members = append(members, 0)
		for _, idx := range iter.comb {
			members = append(members, idx+1)
		}
		candidates = append(candidates, candidate{members: members})
	}

	sampled := false
	if len(candidates) > MaxCandidates {
		for i := 0; i < MaxCandidates; i++ {
			j := i + rng.IntN(len(candidates)-i)
			candidates[i], candidates[j] = candidates[j], candidates[i]
		}
		candidates = candidates[:MaxCandidates]
		sampled = true
	}

	for i := range candidates {
		candidates[i].diff = math.Abs(total - 2*sumOf(skills, candidates[i].members))
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].diff < candidates[j].diff
	})

	limit := min(max(topN, 1), len(candidates))
	chosen := candidates[rng.IntN(limit)]

	return Split{
		A:          chosen.members,
		B:          complement(n, chosen.members),
		Diff:       chosen.diff,
		Candidates: len(candidates),
		Sampled:    sampled,
	}
}

func sumOf(skills []float64, members []int) float64 {
	var sum float64
	for _, idx := range members {
		sum += skills[idx]
	}
	return sum
}

func complement(n int, members []int) []int {
	inA := make([]bool, n)
	for _, idx := range members {
		inA[idx] = true
	}
	out := make([]int, 0, n-len(members))
	for i := 0; i < n; i++ {
		if !inA[i] {
			out = append(out, i)
		}
	}
	return out
}
