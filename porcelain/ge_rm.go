package porcelain

import (
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// RemoveFile deletes a tracked file from the working tree and stages the removal ('git rm').
func (r *Repository) RemoveFile(path string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	p := utils.NormalizePath(path)
	st, known := s.status[p]
	_, tracked := s.current().Files[p]
	if !known && !tracked || st == types.UntrackedStatus {
		return false
	}

	r.fs.Delete("/" + p)
	plumbing.PruneEmptyParents(r.fs, "/"+p)
	if tracked {
		s.setStatus(p, types.StagedStatus)
	} else {
		s.forget(p)
	}
	r.log.Debug("file removed", zap.String("path", p))
	return true
}

// MoveFile renames a tracked file and stages both sides of the rename ('git mv').
func (r *Repository) MoveFile(src, dst string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	from, to := utils.NormalizePath(src), utils.NormalizePath(dst)
	if from == to || isGitPath(to) {
		return false
	}
	st, known := s.status[from]
	if !known || st == types.UntrackedStatus {
		return false
	}
	content, exists := r.fs.GetFileContents("/" + from)
	if !exists || r.fs.Exists("/"+to) {
		return false
	}
	if !r.fs.WriteFile("/"+to, content) {
		return false
	}

	r.fs.Delete("/" + from)
	plumbing.PruneEmptyParents(r.fs, "/"+from)
	if _, tracked := s.current().Files[from]; tracked {
		s.setStatus(from, types.StagedStatus)
	} else {
		s.forget(from)
	}
	s.setStatus(to, types.StagedStatus)

	r.log.Debug("file moved", zap.String("from", from), zap.String("to", to))
	return true
}
