package porcelain

import (
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// UnstageFile takes a staged path out of the staging area, like 'git reset <path>' or 'git restore --staged <path>'.
func (r *Repository) UnstageFile(path string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	p := utils.NormalizePath(path)
	if s.status[p] != types.StagedStatus {
		return false
	}
	s.setStatus(p, r.unstagedStatus(s, p))
	r.log.Debug("file unstaged", zap.String("path", p))
	return true
}

// ResetPaths unstages every staged path in paths and reports how many changed.
func (r *Repository) ResetPaths(paths []string) int {
	n := 0
	for _, p := range paths {
		if r.UnstageFile(p) {
			n++
		}
	}
	return n
}

// unstagedStatus decides what a staged path falls back to.
func (r *Repository) unstagedStatus(s *initialized, p string) types.FileStatus {
	committed, tracked := s.current().Files[p]
	content, exists := r.fs.GetFileContents("/" + p)
	switch {
	case !tracked:
		return types.UntrackedStatus
	case !exists:
		return types.DeletedStatus
	case content == committed:
		return types.CommittedStatus
	default:
		return types.ModifiedStatus
	}
}

// ResetHead moves the current branch back by steps commits. steps 0 means HEAD and only touches the index.
// mode follows git: soft keeps changes staged, mixed keeps them in the working tree, hard throws them away.
func (r *Repository) ResetHead(steps int, mode types.ResetMode) bool {
	s, ok := r.repo()
	if !ok || steps < 0 {
		return false
	}
	b := s.current()
	if steps > 0 && steps >= len(b.Commits) {
		return false
	}

	oldFiles := b.Files
	if steps > 0 {
		target := s.commits[b.Commits[len(b.Commits)-1-steps]]
		b.Commits = b.Commits[:len(b.Commits)-steps]
		b.Files = make(map[string]string, len(target.Tree))
		for p, c := range target.Tree {
			b.Files[p] = c
		}
		plumbing.UpdateBranchRef(r.fs, s.currentBranch, b.Head())
	}

	// Every path the old tip or the new tip knows about needs a fresh status
	paths := map[string]bool{}
	for p := range oldFiles {
		paths[p] = true
	}
	for p := range b.Files {
		paths[p] = true
	}
	for p := range s.status {
		paths[p] = true
	}

	switch mode {
	case types.ResetHard:
		stale := make([]string, 0, len(paths))
		for p := range paths {
			if _, inOld := oldFiles[p]; inOld || s.status[p] != types.UntrackedStatus {
				stale = append(stale, p)
			}
		}
		plumbing.CheckoutToTree(r.fs, b.Files, stale)
		for p := range paths {
			if _, tracked := b.Files[p]; tracked {
				s.setStatus(p, types.CommittedStatus)
			} else if s.status[p] != types.UntrackedStatus {
				s.forget(p)
			}
		}
	case types.ResetSoft:
		// The index stays put: only what differs between the old and the new tip becomes staged
		for p := range paths {
			prev, known := s.status[p]
			if prev == types.UntrackedStatus || prev == types.StagedStatus {
				continue
			}
			oldContent, inOld := oldFiles[p]
			newContent, inNew := b.Files[p]
			if inOld != inNew || oldContent != newContent {
				s.stage(p, oldContent, inOld)
			} else if !known {
				s.setStatus(p, r.unstagedStatus(s, p))
			}
		}
	default:
		for p := range paths {
			if s.status[p] == types.UntrackedStatus {
				continue
			}
			if _, exists := r.fs.GetFileContents("/" + p); !exists {
				if _, tracked := b.Files[p]; !tracked {
					s.forget(p)
					continue
				}
			}
			s.setStatus(p, r.unstagedStatus(s, p))
		}
	}

	r.log.Debug("reset",
		zap.String("branch", s.currentBranch),
		zap.Int("steps", steps),
		zap.String("mode", string(mode)),
	)
	return true
}

// RestoreFile discards working tree changes of a tracked path by writing its committed content back.
func (r *Repository) RestoreFile(path string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	p := utils.NormalizePath(path)
	committed, tracked := s.current().Files[p]
	if !tracked {
		return false
	}
	if !r.fs.WriteFile("/"+p, committed) {
		return false
	}
	if s.status[p] != types.StagedStatus {
		s.setStatus(p, types.CommittedStatus)
	}
	r.log.Debug("file restored", zap.String("path", p))
	return true
}
