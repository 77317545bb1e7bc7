package musiccleanup

import (
	"github.com/musikpolice/musiccleanup/internal/merge"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/rs/zerolog/log"
	"path/filepath"
	"strings"
)

func (c *cleaner) CombineSimilar(prompt OperatorPrompt, recursive bool) (Outcome, error) {
	session := merge.NewSession(c.fs, c.scorer, prompt, c.printer)
	var outcome Outcome
	var err error
	if recursive {
		outcome, err = session.CombineTree(c.root)
	} else {
		outcome, err = session.CombineLevel(c.root)
	}
	if err != nil {
		return outcome, newCommandError("combining similar directories failed", err)
	}
	stats := session.Stats()
	log.Info().Stringer("outcome", outcome).Int("groups", stats.Groups).Int("merged", stats.Merged).
		Int("skipped", stats.Skipped).Int("failed", stats.Failed).Msg("similar directories combined")
	return outcome, nil
}

var articlePrefixes = []string{"The ", "A "}

func (c *cleaner) CombineIgnoringPrefixes(prompt OperatorPrompt) (Outcome, error) {
	entries, err := c.walker.Siblings(c.root)
	if err != nil {
		return Continue, newCommandError("scanning library failed", err)
	}
	c.printer.Out(output.Verbose, "Looking for directories that only differ by a leading article...\n")
	for _, entry := range entries {
		for _, prefix := range articlePrefixes {
			if !entry.Exists(c.fs) {
				break
			}
			if strings.HasPrefix(strings.ToUpper(entry.Name), strings.ToUpper(prefix)) {
				continue
			}
			target := filepath.Join(c.root, prefix+entry.Name)
			if !c.isDir(target) {
				continue
			}
			answer := prompt.AskYesNoAbort("Would you like to combine " + entry.Name + " with " + prefix + entry.Name + "?")
			switch answer {
			case merge.AnswerAbort:
				log.Info().Str("directory", entry.Path).Msg("aborted by operator")
				return Abort, nil
			case merge.AnswerYes:
				if err := c.merger.Merge(target, entry.Path); err != nil {
					c.merger.ReportFailure(entry.Path, err)
				}
			}
		}
	}
	c.printer.Out(output.Normal, "Done\n")
	return Continue, nil
}
