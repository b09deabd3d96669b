package buildorder

import (
	"slices"

	"github.com/agext/levenshtein"
	"github.com/nxp-imx/gtec-demo-framework-sub000/internal/pkgname"
)

const maxSuggestions = 5

// Suggest ranks candidates by similarity to name and returns the best five.
// Equal scores fall back to name order so the hint is stable.
func Suggest(name string, candidates []string) []string {
	type scored struct {
		name  string
		score float64
	}
	ranked := make([]scored, 0, len(candidates))
	for _, candidate := range candidates {
		ranked = append(ranked, scored{name: candidate, score: levenshtein.Similarity(name, candidate, nil)})
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		default:
			return pkgname.Compare(a.name, b.name)
		}
	})

	limit := min(maxSuggestions, len(ranked))
	out := make([]string, 0, limit)
	for _, entry := range ranked[:limit] {
		out = append(out, entry.name)
	}
	return out
}
