package tsp

import "math"

const noParent = -1

// HeldKarp solves the closed tour over a square distance matrix anchored at vertex 0.
// dist must be n×n with n ≥ 2 and finite, non-negative entries; callers bound n.
//
// State (mask, last) is the cheapest walk that starts at 0, visits exactly the
// vertices in mask and ends at last. Both tables are flat arenas indexed by
// mask*n+last and are discarded on return.
func HeldKarp(dist [][]float64) Result {
	n := len(dist)
	size := 1 << n
	full := size - 1
	const anchor = 1

	dp := make([]float64, n*size)
	parent := make([]int32, n*size)
	for i := range dp {
		dp[i] = math.Inf(1)
		parent[i] = noParent
	}
	dp[anchor*n+0] = 0

	for mask := anchor; mask < size; mask++ {
		if mask&anchor == 0 {
			continue
		}
		for last := 1; last < n; last++ {
			bit := 1 << last
			if mask&bit == 0 {
				continue
			}
			prevMask := mask ^ bit
			best := dp[mask*n+last]
			for prev := range n {
				if prevMask&(1<<prev) == 0 {
					continue
				}
				// Strict comparison keeps the first enumerated predecessor on ties.
				if cand := dp[prevMask*n+prev] + dist[prev][last]; cand < best {
					best = cand
					parent[mask*n+last] = int32(prev)
				}
			}
			dp[mask*n+last] = best
		}
	}

	bestCost := math.Inf(1)
	last := noParent
	for j := 1; j < n; j++ {
		if total := dp[full*n+j] + dist[j][0]; total < bestCost {
			bestCost = total
			last = j
		}
	}

	return Result{Tour: reconstruct(parent, n, full, last), Cost: bestCost}
}

// reconstruct walks parent pointers back from last under the full mask.
// The walk takes exactly n-1 steps and must land on the anchor with mask {0}.
func reconstruct(parent []int32, n, full, last int) []int {
	tour := make([]int, n+1)
	mask := full
	node := last
	for i := n - 1; i >= 1; i-- {
		if node <= 0 {
			panic("tsp: parent chain reached the anchor early")
		}
		tour[i] = node
		prev := int(parent[mask*n+node])
		mask ^= 1 << node
		node = prev
	}
	if node != 0 || mask != 1 {
		panic("tsp: parent chain did not terminate at the anchor")
	}

	return tour
}
