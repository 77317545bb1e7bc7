package merge

import (
	"errors"
	"fmt"
	"github.com/spf13/afero"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// copyTree copies everything below src into the same relative location below dst.
// Existing files in dst are overwritten, existing directories are merged into.
func copyTree(fsys afero.Fs, src string, dst string) (files int, bytes int64, err error) {
	err = afero.Walk(fsys, src, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, relErr := filepath.Rel(src, path)
		if relErr != nil {
			return relErr
		}
		target := filepath.Join(dst, rel)
		switch {
		case info.IsDir():
			if rel == "." {
				return nil
			}
			if isFile, _ := isExistingFile(fsys, target); isFile {
				return fmt.Errorf("cannot copy directory %s over file %s", path, target)
			}
			return fsys.MkdirAll(target, info.Mode().Perm())
		case info.Mode()&fs.ModeSymlink != 0:
			if err := copySymlink(fsys, path, target); err != nil {
				return err
			}
			files++
			return nil
		case info.Mode().IsRegular():
			written, err := copyFile(fsys, path, target, info)
			if err != nil {
				return err
			}
			files++
			bytes += written
			return nil
		default:
			return fmt.Errorf("cannot copy special file %s", path)
		}
	})
	return
}

func copyFile(fsys afero.Fs, src string, dst string, info fs.FileInfo) (written int64, err error) {
	if isDir, _ := afero.IsDir(fsys, dst); isDir {
		return 0, fmt.Errorf("cannot copy file %s over directory %s", src, dst)
	}
	in, err := fsys.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := fsys.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return 0, err
	}
	written, err = io.Copy(out, in)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return written, fmt.Errorf("copying %s: %w", src, err)
	}
	if err := fsys.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return written, fmt.Errorf("preserving modification time of %s: %w", dst, err)
	}
	return written, nil
}

func copySymlink(fsys afero.Fs, src string, dst string) error {
	linker, ok := fsys.(afero.Symlinker)
	if !ok {
		return fmt.Errorf("cannot copy symbolic link %s: filesystem does not support links", src)
	}
	target, err := linker.ReadlinkIfPossible(src)
	if err != nil {
		return err
	}
	if _, _, err := linker.LstatIfPossible(dst); err == nil {
		if isDir, _ := afero.IsDir(fsys, dst); isDir {
			return fmt.Errorf("cannot copy symbolic link %s over directory %s", src, dst)
		}
		if err := fsys.Remove(dst); err != nil {
			return err
		}
	}
	return linker.SymlinkIfPossible(target, dst)
}

func isExistingFile(fsys afero.Fs, path string) (bool, error) {
	info, err := fsys.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

// removeTree deletes root and everything below it, children strictly before their parents.
// Symbolic links are removed, never followed.
func removeTree(fsys afero.Fs, root string) error {
	var paths []string
	err := afero.Walk(fsys, root, func(path string, info fs.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return err
	}
	//walk order is parent first, so reversing it is bottom-up and ends with root
	for i := len(paths) - 1; i >= 0; i-- {
		if err := fsys.Remove(paths[i]); err != nil {
			return err
		}
	}
	return nil
}
