package plumbing

import (
	"path"
	"sort"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// ListFiles flattens the tree below root into sorted, normalized file paths (no leading '/'). The .git directory is skipped.
func ListFiles(fs *FileSystem, root string) []string {
	node, ok := fs.lookup(root)
	if !ok {
		return []string{}
	}

	// A file lists as itself
	if !node.IsDir() {
		return []string{utils.NormalizePath(root)}
	}

	out := []string{}
	flattenTreeRecur(node, utils.NormalizePath(root), &out)
	sort.Strings(out)
	return out
}

// flattenTreeRecur appends every file below node, prefixing each with prefix.
func flattenTreeRecur(node *types.FileSystemItem, prefix string, out *[]string) {
	for name, child := range node.Children {
		full := name
		if prefix != "" {
			full = prefix + "/" + name
		}

		// Skip the .git directory
		if child.IsDir() && name == constants.GitDir {
			continue
		}

		if child.IsDir() {
			flattenTreeRecur(child, full, out)
			continue
		}
		*out = append(*out, full)
	}
}

// SnapshotFiles reads the current content of the given normalized paths. Missing files are left out.
func SnapshotFiles(fs *FileSystem, paths []string) map[string]string {
	out := make(map[string]string, len(paths))
	for _, p := range paths {
		if content, ok := fs.GetFileContents("/" + p); ok {
			out[p] = content
		}
	}
	return out
}

// CheckoutToTree writes every entry of files into the working tree and removes the paths in stale that files does not contain.
func CheckoutToTree(fs *FileSystem, files map[string]string, stale []string) {

	// Remove files that only belonged to the outgoing tree
	for _, p := range stale {
		if _, keep := files[p]; keep {
			continue
		}
		fs.Delete("/" + p)
		PruneEmptyParents(fs, "/"+p)
	}

	// Write the incoming tree
	for _, p := range utils.SortedContentKeys(files) {
		fs.WriteFile("/"+p, files[p])
	}
}

// PruneEmptyParents removes directories above p that became empty, stopping at the root.
func PruneEmptyParents(fs *FileSystem, p string) {
	dir := path.Dir(utils.CleanAbs(p))
	for dir != "/" && dir != "." {
		children, ok := fs.GetDirectoryContents(dir)
		if !ok || len(children) > 0 {
			return
		}
		fs.Delete(dir)
		dir = path.Dir(dir)
	}
}

// RemoveAll deletes path and, for directories, everything below it. It returns the normalized file paths that were removed.
func RemoveAll(fs *FileSystem, p string) []string {
	removed := []string{}
	if !fs.Exists(p) {
		return removed
	}
	if fs.IsDirectory(p) {
		children, _ := fs.GetDirectoryContents(p)
		names := make([]string, 0, len(children))
		for name := range children {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			removed = append(removed, RemoveAll(fs, strings.TrimSuffix(p, "/")+"/"+name)...)
		}
	} else {
		removed = append(removed, utils.NormalizePath(p))
	}
	fs.Delete(p)
	return removed
}
