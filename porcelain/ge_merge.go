package porcelain

import (
	"sort"

	"go.uber.org/zap"
)

// Merge reports whether branch is a valid merge target: it must exist and differ from the current branch.
// No content is merged and no conflicts are computed; conflict scenarios come from level data.
func (r *Repository) Merge(branch string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	if _, exists := s.branches[branch]; !exists || branch == s.currentBranch {
		return false
	}
	r.log.Debug("merge accepted", zap.String("from", branch), zap.String("into", s.currentBranch))
	return true
}

// MergePreview lists the commits of branch missing from the current branch and the files they touched. It never mutates state.
func (r *Repository) MergePreview(branch string) ([]string, []string) {
	s, ok := r.repo()
	if !ok {
		return nil, nil
	}
	b, exists := s.branches[branch]
	if !exists {
		return nil, nil
	}

	reachable := map[string]bool{}
	for _, id := range s.current().Commits {
		reachable[id] = true
	}

	commits := []string{}
	touched := map[string]bool{}
	for _, id := range b.Commits {
		if reachable[id] {
			continue
		}
		commits = append(commits, id)
		for _, f := range s.commits[id].Files {
			touched[f] = true
		}
	}

	files := make([]string, 0, len(touched))
	for f := range touched {
		files = append(files, f)
	}
	sort.Strings(files)
	return commits, files
}
