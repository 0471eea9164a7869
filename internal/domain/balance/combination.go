package balance

// combinationIterator walks every k-subset of {0..n-1} in lexicographic order.
// k == 0 yields a single empty combination.
type combinationIterator struct {
	n, k    int
	comb    []int
	started bool
	done    bool
}

func (it *combinationIterator) Next() bool {
	if it.done {
		return false
	}

	if !it.started {
		it.started = true
		if it.k < 0 || it.k > it.n {
			it.done = true
			return false
		}
		it.comb = make([]int, it.k)
		for i := range it.comb {
			it.comb[i] = i
		}
		return true
	}

	i := it.k - 1
	for i >= 0 && it.comb[i] == it.n-it.k+i {
		i--
	}
	if i < 0 {
		it.done = true
		return false
	}

	it.comb[i]++
	for j := i + 1; j < it.k; j++ {
		it.comb[j] = it.comb[j-1] + 1
	}
	return true
}
