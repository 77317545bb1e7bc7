package musiccleanup

import (
	"github.com/musikpolice/musiccleanup/internal/merge"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"io/fs"
	"path/filepath"
	"strings"
)

func (c *cleaner) DeleteUnwantedFileTypes(prompt OperatorPrompt) (Outcome, error) {
	var files []string
	err := afero.Walk(c.fs, c.root, func(path string, info fs.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return Continue, newCommandError("scanning library failed", err)
	}

	decisions := make(map[string]bool) //extension => delete
	deleted := 0
	for _, path := range files {
		ext := extensionOf(filepath.Base(path))
		remove, decided := decisions[ext]
		if !decided {
			question := "Found new extension *" + ext + " - delete all files of this type?"
			if ext == "" {
				question = "Found files without extension - delete all of them?"
			}
			c.printer.Out(output.Normal, "First of its kind: %s\n", c.displayablePath(path))
			switch prompt.AskYesNoAbort(question) {
			case merge.AnswerAbort:
				log.Info().Str("file", path).Msg("aborted by operator")
				return Abort, nil
			case merge.AnswerYes:
				remove = true
			}
			decisions[ext] = remove
			log.Debug().Str("extension", ext).Bool("delete", remove).Msg("extension decided")
		}
		if !remove {
			continue
		}
		if err := c.fs.Remove(path); err != nil {
			c.printer.Fail("Deleting %s failed: %s", c.displayablePath(path), err)
			continue
		}
		deleted++
		c.printer.Out(output.Verbose, "Deleted %s\n", c.displayablePath(path))
	}
	c.printer.Out(output.Normal, "Deleted %d %s\n", deleted, output.Plural(deleted, "file", "files"))
	log.Info().Int("deleted", deleted).Int("extensions", len(decisions)).Msg("unwanted file types deleted")
	return Continue, nil
}

// extensionOf returns the lowercased extension including its dot. Leading dots of hidden files do not start an extension.
func extensionOf(name string) string {
	ext := filepath.Ext(strings.TrimLeft(name, "."))
	return strings.ToLower(ext)
}

func (c *cleaner) DeleteEmptyDirectories() (removed int, err error) {
	dirs, err := c.walker.Subtree(c.root)
	if err != nil {
		return 0, newCommandError("scanning library failed", err)
	}
	//deepest first, so parents emptied by this loop are caught as well
	for _, dir := range dirs {
		children, err := afero.ReadDir(c.fs, dir.Path)
		if err != nil {
			c.printer.Fail("Reading %s failed: %s", c.displayablePath(dir.Path), err)
			continue
		}
		if len(children) > 0 {
			continue
		}
		if err := c.fs.Remove(dir.Path); err != nil {
			c.printer.Fail("Deleting %s failed: %s", c.displayablePath(dir.Path), err)
			continue
		}
		removed++
		c.printer.Out(output.Verbose, "Deleted empty directory %s\n", c.displayablePath(dir.Path))
	}
	c.printer.Out(output.Normal, "Deleted %d empty %s\n", removed, output.Plural(removed, "directory", "directories"))
	log.Info().Int("removed", removed).Msg("empty directories deleted")
	return removed, nil
}
