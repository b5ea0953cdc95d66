// Package stats computes rankings, rosters and per-person histories from a loaded dataset.
//
// Every function here is pure: inputs are never modified and the same input
// always yields the same output.
package stats

import "strconv"

// Ranked pairs an item with its competition rank label.
type Ranked[T any] struct {
	Item T
	Rank string
}

// AssignRanks labels items that are already sorted by count descending.
// Consecutive items with equal counts share one label: "3" for a single
// item at position 3, "3-6" for a group occupying positions 3 to 6.
// It does not sort.
func AssignRanks[T any](items []T, count func(T) int) []Ranked[T] {
	result := make([]Ranked[T], 0, len(items))

	i := 0
	for i < len(items) {
		current := count(items[i])

		j := i
		for j < len(items) && count(items[j]) == current {
			j++
		}

		label := rankLabel(i+1, j)
		for k := i; k < j; k++ {
			result = append(result, Ranked[T]{Item: items[k], Rank: label})
		}

		i = j
	}

	return result
}

func rankLabel(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}

	return strconv.Itoa(start) + "-" + strconv.Itoa(end)
}
