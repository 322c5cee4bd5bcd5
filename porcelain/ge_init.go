package porcelain

import (
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// Init creates the repository. It returns false when the repository already exists or the .git layout cannot be written.
func (r *Repository) Init() bool {
	if r.IsInitialized() {
		return false
	}

	// Create .git directory structure
	if !plumbing.CreateGitDirs(r.fs) {
		return false
	}

	r.state = newInitialized()
	r.log.Debug("repository initialized")

	// Files that already exist show up as untracked right away
	s, _ := r.repo()
	for _, p := range plumbing.ListFiles(r.fs, "/") {
		s.setStatus(p, types.UntrackedStatus)
	}
	r.log.Debug("initial scan", zap.Int("untracked", len(s.status)))
	return true
}
