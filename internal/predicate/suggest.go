package predicate

import "sort"

// levenshtein computes classic edit distance. No pack repo carries a
// string-distance library; this is intentionally stdlib-only.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			curr[j] = min3(del, ins, sub)
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

// Suggest returns the top-3 candidates closest to path by edit
// distance. Exported so other ambient tooling (the CLI's --fields
// validation) can reuse the same suggestion logic instead of
// reimplementing it.
func Suggest(path string, candidates []string) []string {
	return suggest(path, candidates)
}

func suggest(path string, candidates []string) []string {
	type scored struct {
		path string
		dist int
	}
	scoredList := make([]scored, len(candidates))
	for i, c := range candidates {
		scoredList[i] = scored{path: c, dist: levenshtein(path, c)}
	}
	sort.Slice(scoredList, func(i, j int) bool {
		if scoredList[i].dist != scoredList[j].dist {
			return scoredList[i].dist < scoredList[j].dist
		}
		return scoredList[i].path < scoredList[j].path
	})

	limit := 3
	if len(scoredList) < limit {
		limit = len(scoredList)
	}
	out := make([]string, limit)
	for i := 0; i < limit; i++ {
		out[i] = scoredList[i].path
	}
	return out
}
