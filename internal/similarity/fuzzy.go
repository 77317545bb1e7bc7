package similarity

import (
	"fmt"
	"github.com/hbollon/go-edlib"
	"github.com/musikpolice/musiccleanup/internal/names"
	"github.com/rs/zerolog/log"
	"math"
)

// FuzzyPartialRatio compares raw display names by their best-aligned substring similarity.
type FuzzyPartialRatio struct {
	Threshold int
}

func (f FuzzyPartialRatio) String() string {
	return fmt.Sprintf("%s (ratio >= %d)", Fuzzy, f.Threshold)
}

// Match compares raw names, but names without a comparable alphanumeric key never match.
func (f FuzzyPartialRatio) Match(a, b string) bool {
	if blank(a) || blank(b) || !hasComparableKey(a) || !hasComparableKey(b) {
		return false
	}
	score := f.Score(a, b)
	if score >= f.Threshold-10 {
		log.Debug().
			Str("a", a).
			Str("b", b).
			Int("score", score).
			Int("threshold", f.Threshold).
			Msg("fuzzy match candidate evaluation")
	}
	return score >= f.Threshold
}

// Score returns the partial ratio of a and b on a 0-100 scale.
// The shorter name is slid across the longer one and the best window ratio wins,
// so "Beatles" scores 100 against "The Beatles". Argument order does not matter.
func (FuzzyPartialRatio) Score(a, b string) int {
	short, long := []rune(a), []rune(b)
	if len(short) > len(long) {
		short, long = long, short
	}
	if len(short) == 0 {
		return 0
	}
	if len(short) == len(long) {
		return percent(ratio(string(short), string(long)))
	}

	best := 0.0
	shortText := string(short)
	for start := 0; start+len(short) <= len(long); start++ {
		if r := ratio(shortText, string(long[start:start+len(short)])); r > best {
			best = r
			if best == 1 {
				break
			}
		}
	}
	return percent(best)
}

//indel similarity: 2*LCS / (len(a)+len(b)), symmetric in its arguments
func ratio(a, b string) float64 {
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 0
	}
	return 2 * float64(edlib.LCS(a, b)) / float64(total)
}

func hasComparableKey(name string) bool {
	return names.Comparable(names.Key(name, names.Alphanumeric))
}

func percent(r float64) int {
	return int(math.Round(r * 100))
}
