package errs

import "sort"

// Suggest returns up to n candidates from the pool that are closest to
// name by Levenshtein edit distance, nearest first. Ties break by the
// pool's original order. No corpus dependency implements fuzzy string
// matching (the standard library doesn't either), so this is a small
// hand-rolled edit-distance table — the one place in this package that is
// not grounded on a third-party library, recorded in DESIGN.md.
func Suggest(name string, pool []string, n int) []string {
	type scored struct {
		name string
		dist int
		idx  int
	}
	scores := make([]scored, 0, len(pool))
	for i, candidate := range pool {
		scores = append(scores, scored{name: candidate, dist: levenshtein(name, candidate), idx: i})
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].dist < scores[j].dist
	})
	if n > len(scores) {
		n = len(scores)
	}
	out := make([]string, 0, n)
	for _, s := range scores[:n] {
		out = append(out, s.name)
	}
	return out
}

// levenshtein computes the classic edit distance between a and b using a
// two-row dynamic program.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = minInt(del, minInt(ins, sub))
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
