package porcelain

import (
	"fmt"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// Stash saves every modified, staged or deleted path and resets them to their committed state. It returns false when there is nothing to save.
func (r *Repository) Stash() bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	dirty := plumbing.PathsWithStatus(s.status, types.ModifiedStatus, types.StagedStatus, types.DeletedStatus)
	if len(dirty) == 0 {
		return false
	}

	b := s.current()
	entry := types.StashEntry{
		Branch:  s.currentBranch,
		Message: r.stashMessage(s),
		Files:   map[string]string{},
		Status:  types.GitStatus{},
		Removed: []string{},
	}

	for _, p := range dirty {
		entry.Status[p] = s.status[p]
		if content, exists := r.fs.GetFileContents("/" + p); exists {
			entry.Files[p] = content
		} else {
			entry.Removed = append(entry.Removed, p)
		}

		// Back to the committed version, or gone when it was never committed
		if committed, tracked := b.Files[p]; tracked {
			r.fs.WriteFile("/"+p, committed)
			s.setStatus(p, types.CommittedStatus)
		} else {
			r.fs.Delete("/" + p)
			plumbing.PruneEmptyParents(r.fs, "/"+p)
			s.forget(p)
		}
	}

	s.stash = append([]types.StashEntry{entry}, s.stash...)
	r.log.Debug("stash saved", zap.Int("paths", len(dirty)), zap.Int("depth", len(s.stash)))
	return true
}

// StashPop reapplies the newest stash entry onto the working tree and drops it.
func (r *Repository) StashPop() bool {
	s, ok := r.repo()
	if !ok || len(s.stash) == 0 {
		return false
	}
	entry := s.stash[0]
	s.stash = s.stash[1:]

	for p, content := range entry.Files {
		r.fs.WriteFile("/"+p, content)
	}
	for _, p := range entry.Removed {
		r.fs.Delete("/" + p)
	}
	for p, st := range entry.Status {
		s.setStatus(p, st)
	}

	r.log.Debug("stash popped", zap.Int("paths", len(entry.Status)), zap.Int("depth", len(s.stash)))
	return true
}

// StashDrop discards the newest stash entry.
func (r *Repository) StashDrop() bool {
	s, ok := r.repo()
	if !ok || len(s.stash) == 0 {
		return false
	}
	s.stash = s.stash[1:]
	return true
}

// StashList returns "stash@{N}: message" lines, newest first.
func (r *Repository) StashList() []string {
	s, ok := r.repo()
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(s.stash))
	for i, e := range s.stash {
		out = append(out, fmt.Sprintf("stash@{%d}: %s", i, e.Message))
	}
	return out
}

func (r *Repository) stashMessage(s *initialized) string {
	head := s.current().Head()
	if head == "" {
		return "WIP on " + s.currentBranch + ": (no commits yet)"
	}
	return fmt.Sprintf("WIP on %s: %s %s", s.currentBranch, head, s.commits[head].Subject())
}
