package plumbing

import (
	"strings"
	"time"

	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// FileSystem is the in-memory hierarchical tree the simulated terminal works on. All paths are absolute and '/'-delimited.
type FileSystem struct {
	root *types.FileSystemItem
	now  func() time.Time
}

// NewFileSystem returns a filesystem holding only the root directory.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		root: newDir(""),
		now:  time.Now,
	}
}

func newDir(name string) *types.FileSystemItem {
	return &types.FileSystemItem{
		Type:     types.DirectoryItem,
		Name:     name,
		Children: map[string]*types.FileSystemItem{},
	}
}

// lookup walks the tree and returns the item at path.
func (f *FileSystem) lookup(path string) (*types.FileSystemItem, bool) {
	node := f.root
	for _, part := range segments(path) {
		if !node.IsDir() {
			return nil, false
		}
		child, ok := node.Children[part]
		if !ok {
			return nil, false
		}
		node = child
	}
	return node, true
}

// ensureDir walks the tree creating missing directories. It fails when a segment is an existing file.
func (f *FileSystem) ensureDir(parts []string) (*types.FileSystemItem, bool) {
	node := f.root
	for _, part := range parts {
		child, ok := node.Children[part]
		if !ok {
			child = newDir(part)
			child.LastModified = f.now()
			node.Children[part] = child
		}
		if !child.IsDir() {
			return nil, false
		}
		node = child
	}
	return node, true
}

// GetDirectoryContents returns the children of the directory at path. ok is false when path is missing or a file.
func (f *FileSystem) GetDirectoryContents(path string) (map[string]*types.FileSystemItem, bool) {
	node, ok := f.lookup(path)
	if !ok || !node.IsDir() {
		return nil, false
	}

	// Hand out a copy of the map so callers cannot reshape the tree
	out := make(map[string]*types.FileSystemItem, len(node.Children))
	for name, child := range node.Children {
		out[name] = child
	}
	return out, true
}

// GetFileContents returns the content of the file at path. ok is false when path is missing or a directory.
func (f *FileSystem) GetFileContents(path string) (string, bool) {
	node, ok := f.lookup(path)
	if !ok || node.IsDir() {
		return "", false
	}
	return node.Content, true
}

// WriteFile creates or overwrites the file at path, creating intermediate directories as needed.
func (f *FileSystem) WriteFile(path, content string) bool {
	parts := segments(path)
	if len(parts) == 0 {
		return false
	}

	// Make sure every parent is a directory
	dir, ok := f.ensureDir(parts[:len(parts)-1])
	if !ok {
		return false
	}

	name := parts[len(parts)-1]
	if existing, found := dir.Children[name]; found && existing.IsDir() {
		return false
	}

	dir.Children[name] = &types.FileSystemItem{
		Type:         types.FileItem,
		Name:         name,
		Content:      content,
		LastModified: f.now(),
	}
	return true
}

// Mkdir creates the directory at path and any missing parents. Existing directories are accepted.
func (f *FileSystem) Mkdir(path string) bool {
	_, ok := f.ensureDir(segments(path))
	return ok
}

// Delete removes the named entry from its parent. Walking a directory first is up to the caller.
func (f *FileSystem) Delete(path string) bool {
	dirPath, name := utils.ParentAndName(path)
	if name == "" {
		return false
	}
	parent, ok := f.lookup(dirPath)
	if !ok || !parent.IsDir() {
		return false
	}
	if _, found := parent.Children[name]; !found {
		return false
	}
	delete(parent.Children, name)
	return true
}

// Exists reports whether anything lives at path.
func (f *FileSystem) Exists(path string) bool {
	_, ok := f.lookup(path)
	return ok
}

// IsDirectory reports whether path is an existing directory.
func (f *FileSystem) IsDirectory(path string) bool {
	node, ok := f.lookup(path)
	return ok && node.IsDir()
}

// IsFile reports whether path is an existing file.
func (f *FileSystem) IsFile(path string) bool {
	node, ok := f.lookup(path)
	return ok && !node.IsDir()
}

// Stat returns the item at path.
func (f *FileSystem) Stat(path string) (*types.FileSystemItem, bool) {
	return f.lookup(path)
}

func segments(path string) []string {
	parts := []string{}
	for _, part := range strings.Split(utils.CleanAbs(path), "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}
