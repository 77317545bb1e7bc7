package musiccleanup

import (
	"fmt"
	"github.com/musikpolice/musiccleanup/internal/merge"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/musikpolice/musiccleanup/internal/similarity"
	"github.com/musikpolice/musiccleanup/internal/walk"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"path/filepath"
)

type VerbosityLevel int

const (
	DefaultVerbosity VerbosityLevel = iota //every state change the operator should know about
	VerboseMode                            //additionally previews of merges and progress of scans
	QuietMode                              //only questions, errors, and warnings
)

const (
	ExactMatching = string(similarity.Exact)
	FuzzyMatching = string(similarity.Fuzzy)
)

// CreateConfig holds the switches that concern all operations of a Cleaner.
// The zero value is a sensible default: exact canonical matching, normal verbosity, colored output.
type CreateConfig struct {
	Verbosity VerbosityLevel
	Matching  string //ExactMatching or FuzzyMatching
	Threshold int    //fuzzy acceptance ratio 1..100, zero selects the default
	Plain     bool   //no terminal escape sequences
}

// New opens the library below root on the real filesystem.
// Paths are displayed relative to the current working directory.
func New(root string, config CreateConfig) (Cleaner, error) {
	absolute, err := filepath.Abs(root)
	if err != nil {
		return nil, newCommandError("bad library root", err)
	}
	return open(afero.NewOsFs(), absolute, workingDirOr(absolute), config)
}

// NewWithFs opens the library below root on the given filesystem.
// Paths are displayed relative to the root.
func NewWithFs(fsys afero.Fs, root string, config CreateConfig) (Cleaner, error) {
	absolute, err := filepath.Abs(root)
	if err != nil {
		return nil, newCommandError("bad library root", err)
	}
	return open(fsys, absolute, absolute, config)
}

func open(fsys afero.Fs, absolute string, wd string, config CreateConfig) (Cleaner, error) {
	if isDir, err := afero.IsDir(fsys, absolute); err != nil || !isDir {
		return nil, newCommandError(fmt.Sprintf("library root %s is not a directory", absolute), err)
	}
	threshold := config.Threshold
	if threshold == 0 {
		threshold = similarity.DefaultThreshold
	}
	scorer, err := similarity.New(similarity.Strategy(config.Matching), threshold)
	if err != nil {
		return nil, newCommandError("bad matching configuration", err)
	}
	handle := makeCleaner(fsys, absolute, scorer, config)
	handle.wd = wd
	log.Info().Str("root", absolute).Str("strategy", scorer.String()).Msg("library opened")
	return handle, nil
}

type cleaner struct {
	fs      afero.Fs
	root    string //absolute, system-native path
	wd      string //reference for displayed paths
	scorer  similarity.Scorer
	walker  walk.Walker
	merger  *merge.Merger
	printer output.Printer
}

func makeCleaner(fsys afero.Fs, root string, scorer similarity.Scorer, config CreateConfig) *cleaner {
	classes := []output.Class{output.Required, output.Error}
	switch config.Verbosity {
	case VerboseMode:
		classes = append(classes, output.Verbose)
		fallthrough
	case DefaultVerbosity:
		classes = append(classes, output.Normal)
	}
	printer := output.NewPrinter(classes, !config.Plain)
	return &cleaner{
		fs:      fsys,
		root:    root,
		wd:      root,
		scorer:  scorer,
		walker:  walk.New(fsys),
		merger:  merge.NewMerger(fsys, printer),
		printer: printer,
	}
}

func (c *cleaner) Root() string {
	return c.root
}

// levels lists the directories whose children an operation visits: only the root, or the whole tree deepest first followed by the root.
func (c *cleaner) levels(recursive bool) ([]walk.Entry, error) {
	root := walk.NewEntry(c.root)
	if !recursive {
		return []walk.Entry{root}, nil
	}
	subtree, err := c.walker.Subtree(c.root)
	if err != nil {
		return nil, newCommandError("scanning library failed", err)
	}
	return append(subtree, root), nil
}

func (c *cleaner) isDir(path string) bool {
	isDir, err := afero.IsDir(c.fs, path)
	return err == nil && isDir
}
