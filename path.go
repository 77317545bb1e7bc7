package musiccleanup

import (
	"os"
	"path/filepath"
	"strings"
)

const libRootScheme = "lib:" + string(filepath.Separator) + string(filepath.Separator)

// displayablePath names a directory the way the operator can find it from where they started the program.
func (c *cleaner) displayablePath(absolutePath string) string {
	pleasant := pleasantPath(filepath.Clean(absolutePath), c.root, c.wd, true, true)
	if strings.HasPrefix(pleasant, libRootScheme) {
		pleasant = strings.Replace(pleasant, libRootScheme, c.printer.Dim(libRootScheme), 1)
	}
	return pleasant
}

const dot string = "."
const dirSeparator = string(filepath.Separator)
const dotDirSeparator = dot + dirSeparator
const doubleDot = dot + dot
const doubleDotDirSeparator = doubleDot + dirSeparator

func isChildOf(child string, parent string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return !(rel == dot || rel == doubleDot || strings.HasPrefix(rel, doubleDotDirSeparator))
}

// pleasantPath turns an absolute path into something easily understandable from the current context.
// If the working directory is inside the library a relative path is emitted, with leading "./" to stress relativity (opt-out possible).
// If the current location is outside the library an anchored path is printed and the library root is abbreviated.
func pleasantPath(absolute string, root string, wd string, collapseRoot bool, omitDotSlash bool) string {
	if wdAboveRoot := isChildOf(root, wd); wdAboveRoot {
		if !collapseRoot {
			return absolute
		}
		anchored, _ := filepath.Rel(root, absolute) //error impossible because both are rooted
		return libRootScheme + anchored
	}

	prefix := ""
	relative, _ := filepath.Rel(wd, absolute) //error impossible because both are rooted
	if !omitDotSlash && !strings.HasPrefix(relative, doubleDotDirSeparator) {
		prefix = dotDirSeparator
	}
	return prefix + relative
}

func workingDirOr(fallback string) string {
	wd, err := os.Getwd()
	if err != nil {
		return fallback
	}
	return wd
}
