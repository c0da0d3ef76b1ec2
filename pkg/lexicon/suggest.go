package lexicon

import "sort"

// maxDistance bounds the edit distance of suggestions.
const maxDistance = 2

type candidate struct {
	word string
	dist int
}

// Suggest returns up to limit known words closest to word by
// Damerau-Levenshtein distance (at most 2), nearest first and alphabetical
// within a distance.
func (l *Lexicon) Suggest(word string, limit int) []string {
	if l == nil || limit <= 0 {
		return nil
	}
	target := []rune(Normalize(word))
	if len(target) == 0 {
		return nil
	}

	var found []candidate
	for w := range l.words {
		r := []rune(w)
		if abs(len(r)-len(target)) > maxDistance {
			continue
		}
		d := distance(target, r, maxDistance)
		if d > 0 && d <= maxDistance {
			found = append(found, candidate{word: w, dist: d})
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].word < found[j].word
	})
	if len(found) > limit {
		found = found[:limit]
	}
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.word
	}
	return out
}

// distance computes the optimal string alignment distance between a and b,
// giving up early once every cell in a row exceeds bound.
func distance(a, b []rune, bound int) int {
	prev2 := make([]int, len(b)+1)
	prev := make([]int, len(b)+1)
	cur := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		cur[0] = i
		rowMin := cur[0]
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				cur[j] = min(cur[j], prev2[j-2]+1)
			}
			rowMin = min(rowMin, cur[j])
		}
		if rowMin > bound {
			return bound + 1
		}
		prev2, prev, cur = prev, cur, prev2
	}
	return prev[len(b)]
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
