package similarity

import (
	"fmt"
	"github.com/musikpolice/musiccleanup/internal/names"
	"github.com/rs/zerolog/log"
	"strings"
)

// Scorer compares two display names. Score is graded 0-100, Match applies the strategy's acceptance rule.
// Implementations must never match an empty or whitespace-only name.
type Scorer interface {
	Score(a, b string) int
	Match(a, b string) bool
	fmt.Stringer
}

type Strategy string

const (
	Exact Strategy = "exact"
	Fuzzy Strategy = "fuzzy"
)

// DefaultThreshold is the fuzzy acceptance ratio used when none is configured.
const DefaultThreshold = 75

// New returns the scorer for the given strategy. The threshold only concerns the fuzzy strategy.
func New(strategy Strategy, threshold int) (Scorer, error) {
	switch strategy {
	case Exact, "":
		return ExactCanonical{}, nil
	case Fuzzy:
		if threshold < 0 || threshold > 100 {
			return nil, fmt.Errorf("fuzzy threshold %d outside of 0..100", threshold)
		}
		return FuzzyPartialRatio{Threshold: threshold}, nil
	}
	return nil, fmt.Errorf("unknown matching strategy %q", strategy)
}

func blank(name string) bool {
	return strings.TrimSpace(name) == ""
}

// ExactCanonical matches names whose alpha or alphanumeric keys are equal,
// or where one key is a prefix or suffix of the other ("BEATLES" / "THEBEATLES") and no key is too short.
type ExactCanonical struct{}

func (ExactCanonical) String() string {
	return string(Exact)
}

func (e ExactCanonical) Score(a, b string) int {
	if e.Match(a, b) {
		return 100
	}
	return 0
}

func (ExactCanonical) Match(a, b string) bool {
	if blank(a) || blank(b) {
		return false
	}
	mode, matched := matchingMode(names.KeysOf(a), names.KeysOf(b))
	if matched {
		log.Debug().Str("a", a).Str("b", b).Stringer("mode", mode).Msg("canonical keys match")
	}
	return matched
}

// matchingMode reports which key made two names match. Equal keys only need to be comparable themselves,
// prefix/suffix matching needs all four keys comparable, otherwise "10" would join "100".
func matchingMode(keysA, keysB names.Keys) (names.Mode, bool) {
	if equalKeys(keysA.Alpha, keysB.Alpha) {
		return names.AlphaOnly, true
	}
	if equalKeys(keysA.Alphanumeric, keysB.Alphanumeric) {
		return names.Alphanumeric, true
	}
	for _, key := range []string{keysA.Alpha, keysB.Alpha, keysA.Alphanumeric, keysB.Alphanumeric} {
		if !names.Comparable(key) {
			return 0, false
		}
	}
	if affixed(keysA.Alpha, keysB.Alpha) {
		return names.AlphaOnly, true
	}
	if affixed(keysA.Alphanumeric, keysB.Alphanumeric) {
		return names.Alphanumeric, true
	}
	return 0, false
}

func equalKeys(a, b string) bool {
	return names.Comparable(a) && a == b
}

func affixed(a, b string) bool {
	return strings.HasPrefix(a, b) || strings.HasSuffix(a, b) ||
		strings.HasPrefix(b, a) || strings.HasSuffix(b, a)
}
