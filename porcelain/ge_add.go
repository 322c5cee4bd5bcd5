package porcelain

import (
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// AddFile stages a single path. Missing paths are accepted only when Git already tracks them, which stages the deletion.
func (r *Repository) AddFile(path string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	p := utils.NormalizePath(path)
	if p == "" || isGitPath(p) {
		return false
	}

	content, exists := r.fs.GetFileContents("/" + p)
	committed, tracked := s.current().Files[p]
	_, known := s.status[p]

	switch {
	case !exists && !tracked && !known:
		return false
	case !exists && !tracked:
		// Staged new file that was removed again: nothing left to stage
		s.forget(p)
	case exists && tracked && committed == content:
		// Unchanged tracked files stay committed
		s.setStatus(p, types.CommittedStatus)
	default:
		s.stage(p, content, exists)
	}

	r.log.Debug("file added", zap.String("path", p), zap.String("branch", s.currentBranch))
	return true
}

// AddAll stages every path in paths. It returns false when there is nothing to add.
func (r *Repository) AddAll(paths []string) bool {
	if !r.IsInitialized() || len(paths) == 0 {
		return false
	}
	added := false
	for _, p := range paths {
		if r.AddFile(p) {
			added = true
		}
	}
	return added
}

// ChangedPaths lists what 'git add .' would pick up below the absolute directory dir. Deleted tracked paths are included.
func (r *Repository) ChangedPaths(dir string) []string {
	s, ok := r.repo()
	if !ok {
		return []string{}
	}
	prefix := utils.NormalizePath(dir)
	seen := map[string]bool{}
	out := []string{}

	for _, p := range plumbing.ListFiles(r.fs, dir) {
		if s.status[p] == types.CommittedStatus {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	for _, p := range utils.SortedKeys(s.status) {
		if seen[p] || !underPrefix(p, prefix) {
			continue
		}
		if st := s.status[p]; st == types.DeletedStatus || st == types.ModifiedStatus {
			out = append(out, p)
		}
	}
	return out
}

// underPrefix reports whether p is prefix itself or lies below it. An empty prefix matches everything.
func underPrefix(p, prefix string) bool {
	return prefix == "" || p == prefix || strings.HasPrefix(p, prefix+"/")
}
