package musiccleanup

import "github.com/musikpolice/musiccleanup/internal/merge"

// OperatorPrompt supplies every decision. Yes/no questions may be answered with abort,
// text questions report aborted when no answer can be obtained.
type OperatorPrompt = merge.Prompt

// Outcome reports whether an interactive operation ran to completion (Continue) or was aborted by the operator (Abort).
type Outcome = merge.Outcome

const (
	Continue = merge.Continue
	Abort    = merge.Abort
)

// Cleaner lets you tidy up a music library directory whose handle was retrieved using New.
// All operations work on the live filesystem, nothing is cached between calls.
// Changes take effect immediately and are not rolled back when a later step is aborted.
type Cleaner interface {

	// Root is the absolute library root every operation works below.
	Root() string

	// CombineSimilar finds groups of sibling directories with similar names and lets the operator merge each group.
	// Without recursion only the directories directly inside the root are compared.
	// With recursion every directory of the tree is treated as a level, deepest first, the root level last.
	CombineSimilar(prompt OperatorPrompt, recursive bool) (Outcome, error)

	// RenameNonAlphanumeric offers to rename directories whose names contain characters other than letters, digits, and whitespace.
	// If the chosen name already exists the operator may combine both directories instead.
	RenameNonAlphanumeric(prompt OperatorPrompt, recursive bool) (Outcome, error)

	// CombineIgnoringPrefixes offers to merge "X" into "The X" or "A X" for every top-level directory X where the latter exists.
	CombineIgnoringPrefixes(prompt OperatorPrompt) (Outcome, error)

	// DeleteUnwantedFileTypes asks once per file extension whether files of that type shall be deleted and applies the decision to all of them.
	DeleteUnwantedFileTypes(prompt OperatorPrompt) (Outcome, error)

	// DeleteEmptyDirectories removes all empty directories below the root, including those that only become empty by the removal of their children.
	DeleteEmptyDirectories() (removed int, err error)
}
