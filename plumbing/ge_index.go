package plumbing

import (
	"sort"

	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// ChangeKind describes a staged path the way 'git status' labels it.
type ChangeKind string

const (
	NewFileChange  ChangeKind = "new file"
	ModifiedChange ChangeKind = "modified"
	DeletedChange  ChangeKind = "deleted"
)

// PathsWithStatus returns the sorted paths whose status is one of want.
func PathsWithStatus(status types.GitStatus, want ...types.FileStatus) []string {
	out := []string{}
	for p, s := range status {
		for _, w := range want {
			if s == w {
				out = append(out, p)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// StagedPaths returns the sorted paths destined for the next commit.
func StagedPaths(status types.GitStatus) []string {
	return PathsWithStatus(status, types.StagedStatus)
}

// ClassifyStaged labels a staged path as a new file, a modification or a deletion.
func ClassifyStaged(fs *FileSystem, path string, committed map[string]string) ChangeKind {
	if !fs.IsFile("/" + path) {
		return DeletedChange
	}
	if _, ok := committed[path]; !ok {
		return NewFileChange
	}
	return ModifiedChange
}

// StatusAfterEdit returns the status a path takes after its working content changed outside Git.
// Staged paths stay staged: the staging area keeps the content it recorded, whatever happens to the file.
func StatusAfterEdit(current types.FileStatus, committed map[string]string, path, content string) types.FileStatus {
	switch current {
	case "", types.UntrackedStatus:
		return types.UntrackedStatus
	case types.StagedStatus:
		return types.StagedStatus
	}
	if prev, ok := committed[path]; ok && prev == content {
		return types.CommittedStatus
	}
	return types.ModifiedStatus
}
