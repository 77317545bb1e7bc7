package merge

import (
	"errors"
	"fmt"
	"github.com/musikpolice/musiccleanup/internal/output"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"io/fs"
	"path/filepath"
	"strings"
)

// Merger moves directory contents into other directories on the given filesystem.
type Merger struct {
	fs      afero.Fs
	printer output.Printer
}

func NewMerger(fsys afero.Fs, printer output.Printer) *Merger {
	return &Merger{fs: fsys, printer: printer}
}

// Merge copies everything below source into destination and then deletes source.
// Merging a directory into itself does nothing. If either directory is missing a *PreconditionError is
// returned before anything is touched. If source cannot be removed after a complete copy a *HalfMergedError is returned.
func (m *Merger) Merge(destination string, source string) error {
	destination, source = filepath.Clean(destination), filepath.Clean(source)
	if destination == source {
		return nil
	}
	if !m.isDir(destination) {
		return &PreconditionError{Path: destination, Reason: "destination directory does not exist"}
	}
	if !m.isDir(source) {
		return &PreconditionError{Path: source, Reason: "source directory does not exist"}
	}
	if within(destination, source) {
		return &PreconditionError{Path: destination, Reason: "destination lies inside the source directory " + source}
	}

	if m.printer.Enabled(output.Verbose) {
		if preview, err := m.Preview(destination, source); err == nil {
			m.printer.Out(output.Verbose, "%s\n", output.Indent(2, strings.TrimRight(preview, "\n")))
		}
	}

	files, bytes, err := copyTree(m.fs, source, destination)
	if err != nil {
		log.Error().Err(err).Str("source", source).Str("destination", destination).Msg("copy failed")
		return fmt.Errorf("copying %s into %s: %w", source, destination, err)
	}
	m.printer.Out(output.Normal, "Copied contents of %s to %s\n", source, destination)
	m.printer.Out(output.Verbose, "  %d %s, %s\n", files, output.Plural(files, "file", "files"), output.Filesize(bytes))
	log.Info().Str("source", source).Str("destination", destination).Int("files", files).Int64("bytes", bytes).Msg("copied")

	if err := removeTree(m.fs, source); err != nil {
		log.Error().Err(err).Str("source", source).Msg("removal after copy failed")
		return &HalfMergedError{Source: source, Destination: destination, cause: err}
	}
	m.printer.Out(output.Normal, "Deleted directory %s\n", source)
	log.Info().Str("path", source).Msg("deleted directory")
	return nil
}

// Preview renders what source would contribute to destination: "+" marks new entries, "~" files that get overwritten.
func (m *Merger) Preview(destination string, source string) (string, error) {
	tree := output.NewVisualFileTree(filepath.Base(source) + " -> " + destination)
	err := afero.Walk(m.fs, source, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(source, path)
		if err != nil || rel == "." {
			return err
		}
		if info.IsDir() {
			tree.InsertDir(rel)
			return nil
		}
		marker := "+ "
		if exists, _ := afero.Exists(m.fs, filepath.Join(destination, rel)); exists {
			marker = "~ "
		}
		tree.InsertPath(rel, marker)
		return nil
	})
	if err != nil {
		return "", err
	}
	if tree.Len() == 0 {
		return filepath.Base(source) + " is empty, nothing to copy\n", nil
	}
	return tree.Render(), nil
}

// Failure is a source that could not be merged.
type Failure struct {
	Source string
	Err    error
}

// Report describes the execution of one plan. Partial success is possible.
type Report struct {
	Destination string
	Created     bool
	Merged      []string
	Failed      []Failure
}

func (r Report) Complete() bool {
	return len(r.Failed) == 0
}

// Execute creates the destination if needed and merges each source into it, in order.
// A failing source is reported and does not stop the remaining ones.
func (m *Merger) Execute(plan Plan) (report Report) {
	report.Destination = filepath.Clean(plan.Destination)
	if !m.isDir(report.Destination) {
		m.printer.Out(output.Normal, "Creating directory %s\n", report.Destination)
		if err := m.fs.MkdirAll(report.Destination, 0o755); err != nil {
			m.printer.Fail("Creating directory %s failed: %s", report.Destination, err)
			log.Error().Err(err).Str("path", report.Destination).Msg("creating destination failed")
			for _, source := range plan.Sources {
				report.Failed = append(report.Failed, Failure{Source: source, Err: err})
			}
			return
		}
		report.Created = true
		log.Info().Str("path", report.Destination).Msg("created directory")
	} else if plan.NewName {
		m.printer.Out(output.Normal, "Directory %s already exists, combining into it\n", report.Destination)
		log.Info().Str("path", report.Destination).Msg("typed destination exists")
	}

	for _, source := range plan.Sources {
		if filepath.Clean(source) == report.Destination {
			continue
		}
		if err := m.Merge(report.Destination, source); err != nil {
			report.Failed = append(report.Failed, Failure{Source: source, Err: err})
			m.ReportFailure(source, err)
			continue
		}
		report.Merged = append(report.Merged, source)
	}
	return
}

// ReportFailure tells the operator why source was not merged. A half-merged source is a warning, not a plain failure.
func (m *Merger) ReportFailure(source string, err error) {
	var halfMerged *HalfMergedError
	var precondition *PreconditionError
	switch {
	case errors.As(err, &halfMerged):
		m.printer.Warn("WARNING: %s is left half-merged: %s", source, halfMerged.Unwrap())
		log.Warn().Err(err).Str("source", source).Msg("half-merged")
	case errors.As(err, &precondition):
		m.printer.Fail("Skipped %s: %s", source, precondition.Reason)
		log.Warn().Err(err).Str("source", source).Msg("merge precondition failed")
	default:
		m.printer.Fail("Combining %s failed: %s", source, err)
		log.Error().Err(err).Str("source", source).Msg("merge failed")
	}
}

func (m *Merger) isDir(path string) bool {
	isDir, err := afero.IsDir(m.fs, path)
	return err == nil && isDir
}

//within reports whether path is inside (or equal to) parent
func within(path string, parent string) bool {
	rel, err := filepath.Rel(parent, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
