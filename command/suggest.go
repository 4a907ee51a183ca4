package command

import "strings"

// suggestDistance is the largest edit distance still offered as a
// suggestion. It catches transpositions and dropped or extra characters.
const suggestDistance = 3

// Suggest returns the registered command ID closest to name, or "" when
// nothing is close enough. Ties go to the alphabetically first ID.
func (m *Manager) Suggest(name string) string {
	name = strings.ToLower(name)

	m.mu.RLock()
	defer m.mu.RUnlock()

	bestName := ""
	bestDistance := suggestDistance + 1

	m.commands.Scan(func(id string, _ Command) bool {
		if distance := levenshtein(name, id); distance < bestDistance {
			bestDistance = distance
			bestName = id
		}
		return true
	})

	return bestName
}

// levenshtein computes the edit distance between two strings over runes,
// keeping a single row of the distance matrix.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	previous := make([]int, len(ra)+1)
	for i := range previous {
		previous[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		current := make([]int, len(ra)+1)
		current[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			current[i] = min(
				previous[i]+1,
				current[i-1]+1,
				previous[i-1]+cost,
			)
		}

		previous = current
	}

	return previous[len(ra)]
}
