package output

import (
	"github.com/disiqueira/gotree/v3"
	"path/filepath"
)

// VisualFileTree collects relative paths and renders them as an indented tree below a root label.
type VisualFileTree struct {
	tree  gotree.Tree
	dirs  map[string]gotree.Tree
	count int
}

func NewVisualFileTree(rootLabel string) *VisualFileTree {
	return &VisualFileTree{tree: gotree.New(rootLabel), dirs: make(map[string]gotree.Tree)}
}

func (t *VisualFileTree) getDir(dirPath string) (dir gotree.Tree) {
	if dirPath == "." {
		return t.tree
	}
	dir = t.dirs[dirPath]
	if dir == nil {
		parentPath := filepath.Dir(dirPath)
		parentDir := t.getDir(parentPath)
		dir = parentDir.Add(filepath.Base(dirPath))
		t.dirs[dirPath] = dir
		t.count++
	}
	return
}

func (t *VisualFileTree) InsertPath(filePath string, nodePrefix string) {
	file := filepath.Base(filePath)
	dir := t.getDir(filepath.Dir(filePath))
	dir.Add(nodePrefix + file)
	t.count++
}

func (t *VisualFileTree) InsertDir(dirPath string) {
	t.getDir(filepath.Clean(dirPath))
}

// Len counts all nodes below the root label.
func (t *VisualFileTree) Len() int {
	return t.count
}

func (t *VisualFileTree) Render() string {
	return t.tree.Print()
}
