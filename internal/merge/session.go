package merge

import (
	"github.com/musikpolice/musiccleanup/internal/grouping"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/musikpolice/musiccleanup/internal/similarity"
	"github.com/musikpolice/musiccleanup/internal/walk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

type State int

const (
	Idle State = iota
	Scanning
	PresentingGroup
	AwaitingInput
	Merging
	Skipping
	ScanningNextGroup
	Aborted
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "IDLE"
	case Scanning:
		return "SCANNING"
	case PresentingGroup:
		return "PRESENTING_GROUP"
	case AwaitingInput:
		return "AWAITING_OPERATOR_INPUT"
	case Merging:
		return "MERGING"
	case Skipping:
		return "SKIPPING"
	case ScanningNextGroup:
		return "SCANNING_NEXT_GROUP"
	case Aborted:
		return "ABORTED"
	case Done:
		return "DONE"
	}
	return "UNKNOWN"
}

// Stats summarizes what a session did.
type Stats struct {
	Groups  int
	Skipped int
	Merged  int
	Failed  int
	Created int
}

// Session is one scan pass that groups similarly named directories and merges them as the operator decides.
// Directories claimed by a group are never offered again within the same session.
type Session struct {
	fs      afero.Fs
	walker  walk.Walker
	scorer  similarity.Scorer
	planner *Planner
	merger  *Merger
	printer output.Printer
	claimed *grouping.Claimed
	state   State
	stats   Stats
	trace   []State
}

func NewSession(fsys afero.Fs, scorer similarity.Scorer, prompt Prompt, printer output.Printer) *Session {
	return &Session{
		fs:      fsys,
		walker:  walk.New(fsys),
		scorer:  scorer,
		planner: NewPlanner(prompt, printer),
		merger:  NewMerger(fsys, printer),
		printer: printer,
		claimed: grouping.NewClaimed(),
	}
}

func (s *Session) State() State {
	return s.state
}

func (s *Session) Stats() Stats {
	return s.stats
}

// Trace lists every state the session went through, in order.
func (s *Session) Trace() []State {
	return s.trace
}

func (s *Session) transition(next State) {
	log.Debug().Stringer("from", s.state).Stringer("to", next).Msg("session state")
	s.state = next
	s.trace = append(s.trace, next)
}

// CombineLevel groups and merges the directories directly inside dir.
func (s *Session) CombineLevel(dir string) (Outcome, error) {
	outcome, err := s.combineLevel(dir)
	if err != nil {
		return outcome, err
	}
	s.finish(outcome)
	return outcome, nil
}

// CombineTree runs CombineLevel on every directory below root (deepest first) and finally on root itself.
// Directories consumed by earlier merges are skipped silently.
func (s *Session) CombineTree(root string) (Outcome, error) {
	levels, err := s.walker.Subtree(root)
	if err != nil {
		return Continue, err
	}
	levels = append(levels, walk.NewEntry(root))
	for _, level := range levels {
		if !level.Exists(s.fs) {
			continue
		}
		outcome, err := s.combineLevel(level.Path)
		if err != nil {
			s.printer.Fail("Searching %s failed: %s", level.Path, err)
			log.Error().Err(err).Str("path", level.Path).Msg("level scan failed")
			continue
		}
		if outcome == Abort {
			s.finish(Abort)
			return Abort, nil
		}
	}
	s.finish(Continue)
	return Continue, nil
}

func (s *Session) finish(outcome Outcome) {
	if outcome == Abort {
		if s.state != Aborted {
			s.transition(Aborted)
		}
		return
	}
	s.transition(Done)
	s.printer.Out(output.Normal, "Done\n")
}

func (s *Session) combineLevel(dir string) (Outcome, error) {
	s.transition(Scanning)
	s.printer.Out(output.Verbose, "Searching %s for similarly named folders...\n", dir)
	entries, err := s.walker.Siblings(dir)
	if err != nil {
		return Continue, err
	}
	groups := grouping.Find(entries, s.scorer, s.claimed)
	s.stats.Groups += len(groups)
	log.Debug().Str("path", dir).Int("entries", len(entries)).Int("groups", len(groups)).
		Int("claimed", s.claimed.Len()).Msg("level grouped")

	for _, group := range groups {
		group, ok := s.refresh(group)
		if !ok {
			continue
		}

		s.transition(PresentingGroup)
		s.transition(AwaitingInput)
		plan, outcome := s.planner.Plan(group)
		switch outcome {
		case Abort:
			s.transition(Aborted)
			log.Info().Str("anchor", group.Anchor.Path).Msg("aborted by operator")
			return Abort, nil
		case Skip:
			s.transition(Skipping)
			s.stats.Skipped++
		default:
			s.transition(Merging)
			report := s.merger.Execute(plan)
			s.stats.Merged += len(report.Merged)
			s.stats.Failed += len(report.Failed)
			if report.Created {
				s.stats.Created++
			}
			if !report.Complete() {
				s.printer.Warn("%d of %d %s could not be combined into %s", len(report.Failed), len(plan.Sources),
					output.Plural(len(plan.Sources), "directory", "directories"), report.Destination)
			}
		}
		s.transition(ScanningNextGroup)
	}
	return Continue, nil
}

// refresh drops members that vanished since grouping. A group without an anchor or without candidates is not presented.
func (s *Session) refresh(group grouping.Group) (grouping.Group, bool) {
	if !group.Anchor.Exists(s.fs) {
		log.Debug().Str("anchor", group.Anchor.Path).Msg("group anchor vanished")
		return group, false
	}
	var remaining []walk.Entry
	for _, candidate := range group.Candidates {
		if candidate.Exists(s.fs) {
			remaining = append(remaining, candidate)
		}
	}
	group.Candidates = remaining
	return group, len(remaining) > 0
}
