package porcelain

import (
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"go.uber.org/zap"
)

// ValidBranchName applies a small subset of git check-ref-format.
func ValidBranchName(name string) bool {
	if name == "" || name == "HEAD" || strings.HasPrefix(name, "-") || strings.HasSuffix(name, "/") || strings.HasSuffix(name, ".lock") {
		return false
	}
	if strings.ContainsAny(name, " ~^:?*[\\") || strings.Contains(name, "..") || strings.Contains(name, "@{") {
		return false
	}
	return true
}

// CreateBranch snapshots the current branch under a new name. It fails when the name exists or is not a valid ref name.
func (r *Repository) CreateBranch(name string) bool {
	s, ok := r.repo()
	if !ok || !ValidBranchName(name) {
		return false
	}
	if _, exists := s.branches[name]; exists {
		return false
	}

	// Capture the working tree first so the new branch starts from what the learner sees
	r.saveWorkingTreeToBranch(s)
	s.branches[name] = s.current().Clone()
	plumbing.UpdateBranchRef(r.fs, name, s.current().Head())

	r.log.Debug("branch created", zap.String("branch", name), zap.String("from", s.currentBranch))
	return true
}

// DeleteBranch removes a branch. The current branch and main can never be deleted.
func (r *Repository) DeleteBranch(name string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	if _, exists := s.branches[name]; !exists {
		return false
	}
	if name == s.currentBranch || name == constants.DefaultBranch || len(s.branches) == 1 {
		return false
	}

	delete(s.branches, name)
	plumbing.DeleteBranchRef(r.fs, name)

	r.log.Debug("branch deleted", zap.String("branch", name))
	return true
}

// RenameBranch moves a branch to a new name. main keeps its name.
func (r *Repository) RenameBranch(oldName, newName string) bool {
	s, ok := r.repo()
	if !ok || !ValidBranchName(newName) {
		return false
	}
	b, exists := s.branches[oldName]
	if !exists || oldName == constants.DefaultBranch {
		return false
	}
	if _, taken := s.branches[newName]; taken {
		return false
	}

	delete(s.branches, oldName)
	s.branches[newName] = b
	if s.currentBranch == oldName {
		s.currentBranch = newName
		plumbing.WriteHEAD(r.fs, newName)
	}
	plumbing.DeleteBranchRef(r.fs, oldName)
	plumbing.UpdateBranchRef(r.fs, newName, b.Head())
	return true
}

// IsMerged reports whether every commit of branch is reachable from the current branch.
func (r *Repository) IsMerged(branch string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	b, exists := s.branches[branch]
	if !exists {
		return false
	}
	reachable := map[string]bool{}
	for _, id := range s.current().Commits {
		reachable[id] = true
	}
	for _, id := range b.Commits {
		if !reachable[id] {
			return false
		}
	}
	return true
}
