package selector

import (
	"errors"
	"sort"

	"github.com/shieldpool/core/pkg/notecache"
)

// ErrInsufficientFunds is returned when no strategy can reach target from
// the supplied candidates (§7).
var ErrInsufficientFunds = errors.New("selector: insufficient funds")

// maxExactCandidates bounds the subset-sum search in ExactMatch: beyond a
// handful of candidates the 2^N search stops paying for itself (§4.8).
const maxExactCandidates = 4

// Select runs the greedy descending-value strategy over candidates, which
// the caller has already filtered to spendable, unexcluded notes for the
// target address (§4.8).
func Select(candidates []*notecache.Entry, target uint64) ([]*notecache.Entry, uint64, error) {
	sorted := sortedDescending(candidates)

	var total uint64
	var chosen []*notecache.Entry
	for _, e := range sorted {
		if total >= target {
			break
		}
		chosen = append(chosen, e)
		total += e.Note.Value
	}
	if total < target {
		return nil, 0, ErrInsufficientFunds
	}
	return chosen, total, nil
}

// ExactMatch tries, in order: a single note of exact value, a bounded
// subset-sum over the top maxExactCandidates candidates by value, then the
// greedy fallback (§4.8).
func ExactMatch(candidates []*notecache.Entry, target uint64) ([]*notecache.Entry, uint64, error) {
	sorted := sortedDescending(candidates)

	for _, e := range sorted {
		if e.Note.Value == target {
			return []*notecache.Entry{e}, target, nil
		}
	}

	top := sorted
	if len(top) > maxExactCandidates {
		top = top[:maxExactCandidates]
	}
	if subset, total, ok := subsetSum(top, target); ok {
		return subset, total, nil
	}

	return Select(sorted, target)
}

// subsetSum brute-forces every non-empty subset of candidates (at most
// 2^maxExactCandidates - 1 of them) for the smallest-total combination that
// meets or exceeds target.
func subsetSum(candidates []*notecache.Entry, target uint64) ([]*notecache.Entry, uint64, bool) {
	n := len(candidates)
	var best []*notecache.Entry
	var bestTotal uint64
	found := false

	for mask := 1; mask < (1 << n); mask++ {
		var total uint64
		var subset []*notecache.Entry
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				subset = append(subset, candidates[i])
				total += candidates[i].Note.Value
			}
		}
		if total < target {
			continue
		}
		if !found || total < bestTotal {
			found = true
			bestTotal = total
			best = subset
		}
	}
	return best, bestTotal, found
}

func sortedDescending(candidates []*notecache.Entry) []*notecache.Entry {
	sorted := append([]*notecache.Entry(nil), candidates...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Note.Value > sorted[j].Note.Value
	})
	return sorted
}
