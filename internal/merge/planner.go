package merge

import (
	"github.com/musikpolice/musiccleanup/internal/grouping"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/rs/zerolog/log"
	"path/filepath"
	"strconv"
	"strings"
)

// Plan is the resolved decision for one group: every source is merged into Destination, in order.
type Plan struct {
	Destination string
	Sources     []string
	NewName     bool //destination was typed as a name instead of picked from the members
}

const (
	selectionRequest   = "Enter the indices of the directories to combine (e.g. 1,3). Return to combine all of the above, 's' to skip, or 'a' to abort"
	destinationRequest = "Enter the index of the directory that will contain all combined directories. Enter a non-numeric string to specify a different name, or 'a' to abort"
)

type Planner struct {
	prompt  Prompt
	printer output.Printer
}

func NewPlanner(prompt Prompt, printer output.Printer) *Planner {
	return &Planner{prompt: prompt, printer: printer}
}

// Plan presents the group, lets the operator narrow it down and pick the destination.
// Unusable answers are reported and asked again.
func (p *Planner) Plan(g grouping.Group) (Plan, Outcome) {
	members := g.Members()
	parent := filepath.Dir(g.Anchor.Path)

	memberNames := make([]string, len(members))
	for i, m := range members {
		memberNames[i] = m.Name
	}
	p.printer.Out(output.Required, "\nThe following directories in %s have similar names:\n", p.printer.Bold(parent))
	p.printer.Out(output.Required, "%s", output.NumberedList(memberNames))

	var selected []int
	for {
		answer, aborted := p.prompt.AskText(selectionRequest)
		if aborted {
			return Plan{}, Abort
		}
		indices, outcome, err := ParseSelection(answer, len(members))
		if err != nil {
			p.printer.Warn("%s", err)
			continue
		}
		switch outcome {
		case Abort:
			p.printer.Out(output.Normal, "User chose to abort\n")
			return Plan{}, Abort
		case Skip:
			p.printer.Out(output.Normal, "User chose to skip\n")
			return Plan{}, Skip
		}
		selected = indices
		break
	}

	chosen := make([]string, len(selected))
	chosenNames := make([]string, len(selected))
	for i, index := range selected {
		chosen[i] = members[index].Path
		chosenNames[i] = members[index].Name
	}
	p.printer.Out(output.Required, "You chose to combine the following directories:\n")
	p.printer.Out(output.Required, "%s", output.NumberedList(chosenNames))

	var plan Plan
	for {
		answer, aborted := p.prompt.AskText(destinationRequest)
		if aborted {
			return Plan{}, Abort
		}
		destination, isNewName, outcome, err := ResolveDestination(answer, chosen, parent)
		if err != nil {
			p.printer.Warn("%s", err)
			continue
		}
		if outcome == Abort {
			p.printer.Out(output.Normal, "User chose to abort\n")
			return Plan{}, Abort
		}
		plan = Plan{Destination: destination, NewName: isNewName, Sources: withoutPath(chosen, destination)}
		break
	}

	if len(plan.Sources) == 0 {
		p.printer.Out(output.Normal, "Nothing left to combine into %s.\n", filepath.Base(plan.Destination))
		return plan, Skip
	}
	return plan, Continue
}

// ParseSelection interprets the member selection answer against a list of count members.
// An empty answer selects everything, "s"/"skip" and "a"/"abort" are recognized,
// otherwise a comma or space separated list of 1-based indices is expected. The result is 0-based, without duplicates, in the given order.
func ParseSelection(answer string, count int) (indices []int, outcome Outcome, err error) {
	trimmed := strings.TrimSpace(answer)
	switch {
	case trimmed == "":
		for i := 0; i < count; i++ {
			indices = append(indices, i)
		}
		return indices, Continue, nil
	case isAbort(trimmed):
		return nil, Abort, nil
	case isSkip(trimmed):
		return nil, Skip, nil
	}

	seen := make(map[int]bool)
	parts := strings.FieldsFunc(trimmed, func(r rune) bool { return r == ',' || r == ' ' || r == '\t' })
	for _, part := range parts {
		number, convErr := strconv.Atoi(part)
		if convErr != nil {
			return nil, Continue, usageError("%q is not an index", part)
		}
		if number < 1 || number > count {
			return nil, Continue, usageError("index %d is not between 1 and %d", number, count)
		}
		if !seen[number] {
			seen[number] = true
			indices = append(indices, number-1)
		}
	}
	if len(indices) == 0 {
		return nil, Continue, usageError("no index given")
	}
	return indices, Continue, nil
}

// ResolveDestination turns the destination answer into a path.
// A number between 1 and len(chosen) picks that chosen directory. Any other answer, including a number
// that is out of range, is taken literally as the name of a (possibly new) directory next to the chosen ones.
func ResolveDestination(answer string, chosen []string, parent string) (destination string, isNewName bool, outcome Outcome, err error) {
	trimmed := strings.TrimSpace(answer)
	if isAbort(trimmed) {
		return "", false, Abort, nil
	}
	if trimmed == "" {
		return "", false, Continue, usageError("a destination is required")
	}
	if number, convErr := strconv.Atoi(trimmed); convErr == nil {
		if number >= 1 && number <= len(chosen) {
			return chosen[number-1], false, Continue, nil
		}
		log.Warn().Str("answer", trimmed).Int("choices", len(chosen)).Msg("out-of-range destination index taken as directory name")
	}
	if err := ValidName(trimmed); err != nil {
		return "", false, Continue, err
	}
	return filepath.Join(parent, trimmed), true, Continue, nil
}

// ValidName rejects names that would leave the parent directory.
func ValidName(name string) error {
	if name == "." || name == ".." {
		return usageError("%q is not a directory name", name)
	}
	if strings.ContainsRune(name, filepath.Separator) || strings.ContainsRune(name, '/') {
		return usageError("%q must be a plain name without path separators", name)
	}
	return nil
}

func withoutPath(paths []string, excluded string) (remaining []string) {
	for _, path := range paths {
		if filepath.Clean(path) != filepath.Clean(excluded) {
			remaining = append(remaining, path)
		}
	}
	return
}
