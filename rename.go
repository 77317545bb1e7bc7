package musiccleanup

import (
	"fmt"
	"github.com/musikpolice/musiccleanup/internal/merge"
	"github.com/musikpolice/musiccleanup/internal/names"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/musikpolice/musiccleanup/internal/walk"
	"github.com/rs/zerolog/log"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

func (c *cleaner) RenameNonAlphanumeric(prompt OperatorPrompt, recursive bool) (Outcome, error) {
	levels, err := c.levels(recursive)
	if err != nil {
		return Continue, err
	}
	for _, level := range levels {
		if !level.Exists(c.fs) {
			continue
		}
		c.printer.Out(output.Verbose, "Searching %s for non-alphanumeric names...\n", c.displayablePath(level.Path))
		entries, err := c.walker.Siblings(level.Path)
		if err != nil {
			c.printer.Fail("Searching %s failed: %s", c.displayablePath(level.Path), err)
			continue
		}
		for _, entry := range entries {
			if !entry.Exists(c.fs) || !needsRename(entry.Name) {
				continue
			}
			if outcome := c.offerRename(prompt, entry); outcome == Abort {
				log.Info().Str("directory", entry.Path).Msg("aborted by operator")
				return Abort, nil
			}
		}
	}
	c.printer.Out(output.Normal, "Done\n")
	return Continue, nil
}

// needsRename ignores names too short to be worth cleaning up.
func needsRename(name string) bool {
	return utf8.RuneCountInString(names.WithoutSpace(name)) >= names.MinComparableLength && !names.IsAlphanumeric(name)
}

func (c *cleaner) offerRename(prompt OperatorPrompt, entry walk.Entry) Outcome {
	switch prompt.AskYesNoAbort("Would you like to rename " + entry.Name + "?") {
	case merge.AnswerAbort:
		return Abort
	case merge.AnswerNo:
		return Continue
	}

	suggestion := names.Suggest(entry.Name)
	var newName string
	for {
		answer, aborted := prompt.AskText(fmt.Sprintf("What should we rename it to? [%s]", suggestion))
		if aborted {
			return Abort
		}
		newName = strings.TrimSpace(answer)
		if newName == "" {
			newName = suggestion
		}
		if newName == "" {
			c.printer.Warn("Please enter a name.")
			continue
		}
		if err := merge.ValidName(newName); err != nil {
			c.printer.Warn("%s", err)
			continue
		}
		break
	}
	if newName == entry.Name {
		c.printer.Out(output.Verbose, "Keeping %s unchanged\n", c.displayablePath(entry.Path))
		return Continue
	}

	target := filepath.Join(filepath.Dir(entry.Path), newName)
	caseOnly := strings.EqualFold(newName, entry.Name)
	switch {
	case !caseOnly && c.isDir(target):
		switch prompt.AskYesNoAbort("Specified directory " + newName + " exists. Combine contents?") {
		case merge.AnswerAbort:
			return Abort
		case merge.AnswerYes:
			if err := c.merger.Merge(target, entry.Path); err != nil {
				c.merger.ReportFailure(entry.Path, err)
			}
		}
		return Continue
	case !caseOnly && c.exists(target):
		c.printer.Fail("Cannot rename %s: a file named %s already exists", c.displayablePath(entry.Path), newName)
		return Continue
	}

	if err := c.fs.Rename(entry.Path, target); err != nil {
		c.printer.Fail("Renaming %s failed: %s", c.displayablePath(entry.Path), err)
		log.Error().Err(err).Str("from", entry.Path).Str("to", target).Msg("rename failed")
		return Continue
	}
	c.printer.Out(output.Normal, "Renamed %s to %s\n", c.displayablePath(entry.Path), newName)
	log.Info().Str("from", entry.Path).Str("to", target).Msg("renamed")
	return Continue
}

func (c *cleaner) exists(path string) bool {
	_, err := c.fs.Stat(path)
	return err == nil || !os.IsNotExist(err)
}
