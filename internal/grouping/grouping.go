package grouping

import (
	"github.com/musikpolice/musiccleanup/internal/similarity"
	"github.com/musikpolice/musiccleanup/internal/walk"
	"github.com/rs/zerolog/log"
	"path/filepath"
)

// Group is an anchor directory plus the siblings judged similar to it, in name order.
type Group struct {
	Anchor     walk.Entry
	Candidates []walk.Entry
}

// Members lists the anchor followed by its candidates, matching the numbering shown to the operator (1-based).
func (g Group) Members() []walk.Entry {
	return append([]walk.Entry{g.Anchor}, g.Candidates...)
}

// Claimed records directories that already belong to a group during one scan pass.
// Keys are cleaned paths. The zero value is not usable, see NewClaimed.
type Claimed struct {
	paths map[string]struct{}
}

func NewClaimed() *Claimed {
	return &Claimed{paths: make(map[string]struct{})}
}

func (c *Claimed) Claim(path string) {
	c.paths[filepath.Clean(path)] = struct{}{}
}

func (c *Claimed) Has(path string) bool {
	_, taken := c.paths[filepath.Clean(path)]
	return taken
}

func (c *Claimed) Len() int {
	return len(c.paths)
}

// Find compares every entry with every other one and emits one group per anchor that has at least one match.
// Entries are visited in display name order. Once a directory is part of a group (as anchor or candidate)
// it is claimed and neither anchors nor joins any later group of the same pass.
func Find(entries []walk.Entry, scorer similarity.Scorer, claimed *Claimed) []Group {
	sorted := make([]walk.Entry, len(entries))
	copy(sorted, entries)
	walk.SortByName(sorted)

	var groups []Group
	for i, anchor := range sorted {
		if claimed.Has(anchor.Path) {
			continue
		}
		var candidates []walk.Entry
		for j, other := range sorted {
			if i == j || other.Path == anchor.Path || claimed.Has(other.Path) {
				continue
			}
			if scorer.Match(anchor.Name, other.Name) {
				candidates = append(candidates, other)
			}
		}
		if len(candidates) == 0 {
			continue
		}
		claimed.Claim(anchor.Path)
		for _, candidate := range candidates {
			claimed.Claim(candidate.Path)
		}
		log.Debug().
			Str("anchor", anchor.Path).
			Int("candidates", len(candidates)).
			Str("strategy", scorer.String()).
			Msg("match group found")
		groups = append(groups, Group{Anchor: anchor, Candidates: candidates})
	}
	return groups
}
