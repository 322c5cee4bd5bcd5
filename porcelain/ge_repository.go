// Package porcelain holds the simulated Git repository: working tree bookkeeping, staging, commits, branches and remotes.
//
// The repository never returns errors. Every operation answers with a boolean or an ok-pair and leaves the state untouched
// when a precondition fails, so the command layer decides how to word the failure.
package porcelain

import (
	"sort"
	"strings"
	"time"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// repoState is either uninitialized or *initialized. Only Init moves between them.
type repoState interface {
	isRepoState()
}

type uninitialized struct{}

func (uninitialized) isRepoState() {}

// initialized carries everything that only exists once 'git init' ran.
type initialized struct {
	branches      map[string]*types.BranchState
	currentBranch string
	status        types.GitStatus // mirrors branches[currentBranch].Status
	commits       map[string]types.Commit
	stash         []types.StashEntry // newest first
	remotes       map[string]string
	pushedCommits map[string]bool
	remoteHeads   map[string]string // "remote/branch" -> pushed head id
}

func (*initialized) isRepoState() {}

func newInitialized() *initialized {
	return &initialized{
		branches:      map[string]*types.BranchState{constants.DefaultBranch: types.NewBranchState()},
		currentBranch: constants.DefaultBranch,
		status:        types.GitStatus{},
		commits:       map[string]types.Commit{},
		stash:         []types.StashEntry{},
		remotes:       map[string]string{},
		pushedCommits: map[string]bool{},
		remoteHeads:   map[string]string{},
	}
}

// Repository is the per-session Git state machine. It reads and writes file contents only through the FileSystem it was given.
type Repository struct {
	fs    *plumbing.FileSystem
	state repoState
	log   *zap.Logger
	now   func() time.Time
}

// Option customizes a Repository.
type Option func(*Repository)

// WithLogger sets the logger used for debug tracing of mutations.
func WithLogger(l *zap.Logger) Option {
	return func(r *Repository) {
		if l != nil {
			r.log = l
		}
	}
}

// WithClock overrides the time source used for commit timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		if now != nil {
			r.now = now
		}
	}
}

// New returns an uninitialized repository bound to fs.
func New(fs *plumbing.FileSystem, opts ...Option) *Repository {
	r := &Repository{
		fs:    fs,
		state: uninitialized{},
		log:   zap.NewNop(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// repo narrows the state. ok is false before 'git init'.
func (r *Repository) repo() (*initialized, bool) {
	s, ok := r.state.(*initialized)
	return s, ok
}

// current returns the checked-out branch state.
func (s *initialized) current() *types.BranchState {
	return s.branches[s.currentBranch]
}

// setStatus writes a status to the global map and the current branch snapshot together. Leaving the staged state drops the staged content.
func (s *initialized) setStatus(path string, status types.FileStatus) {
	s.status[path] = status
	s.current().Status[path] = status
	if status != types.StagedStatus {
		delete(s.current().Index, path)
	}
}

// stage marks path as staged and records the content that the next commit takes.
func (s *initialized) stage(path, content string, exists bool) {
	s.setStatus(path, types.StagedStatus)
	if exists {
		s.current().Index[path] = content
	} else {
		delete(s.current().Index, path)
	}
}

// forget drops a path from the global map and the current branch snapshot together.
func (s *initialized) forget(path string) {
	delete(s.status, path)
	delete(s.current().Status, path)
	delete(s.current().Index, path)
}

// FileSystem returns the filesystem the repository works on.
func (r *Repository) FileSystem() *plumbing.FileSystem {
	return r.fs
}

// IsInitialized reports whether 'git init' has run.
func (r *Repository) IsInitialized() bool {
	_, ok := r.repo()
	return ok
}

// GetStatus returns a copy of the status map. It is empty before init.
func (r *Repository) GetStatus() types.GitStatus {
	s, ok := r.repo()
	if !ok {
		return types.GitStatus{}
	}
	return s.status.Clone()
}

// GetCurrentBranch returns the checked-out branch, or "" before init.
func (r *Repository) GetCurrentBranch() string {
	s, ok := r.repo()
	if !ok {
		return ""
	}
	return s.currentBranch
}

// HEAD returns the symbolic ref HEAD points to. Detached HEAD is not modelled.
func (r *Repository) HEAD() string {
	s, ok := r.repo()
	if !ok {
		return ""
	}
	return "refs/heads/" + s.currentBranch
}

// GetBranches returns all branch names sorted.
func (r *Repository) GetBranches() []string {
	s, ok := r.repo()
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(s.branches))
	for name := range s.branches {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// HasBranch reports whether name is an existing branch.
func (r *Repository) HasBranch(name string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	_, exists := s.branches[name]
	return exists
}

// GetTrackedContent returns the last committed content of path on the current branch.
func (r *Repository) GetTrackedContent(path string) (string, bool) {
	s, ok := r.repo()
	if !ok {
		return "", false
	}
	content, found := s.current().Files[utils.NormalizePath(path)]
	return content, found
}

// GetStagedContent returns the content 'git add' recorded for path. ok is false when the path is not staged with a recorded copy.
func (r *Repository) GetStagedContent(path string) (string, bool) {
	s, ok := r.repo()
	if !ok {
		return "", false
	}
	content, found := s.current().Index[utils.NormalizePath(path)]
	return content, found
}

// UpdateFileStatus sets the status of path directly. Commands that change files outside Git use it to keep status honest.
func (r *Repository) UpdateFileStatus(path string, status types.FileStatus) bool {
	s, ok := r.repo()
	if !ok || !status.IsValid() {
		return false
	}
	p := utils.NormalizePath(path)
	if p == "" {
		return false
	}
	s.setStatus(p, status)
	r.log.Debug("status updated", zap.String("path", p), zap.String("status", string(status)))
	return true
}

// RecordWorkingChange recomputes the status of path after the working tree changed under it (touch, nano, rm, mv, echo).
func (r *Repository) RecordWorkingChange(path string) {
	s, ok := r.repo()
	if !ok {
		return
	}
	p := utils.NormalizePath(path)
	if p == "" || isGitPath(p) {
		return
	}

	committed := s.current().Files
	content, exists := r.fs.GetFileContents("/" + p)
	if !exists {
		// Tracked files turn into deletions, everything else is forgotten
		if _, tracked := committed[p]; tracked {
			s.setStatus(p, types.DeletedStatus)
		} else {
			s.forget(p)
		}
		return
	}

	current, known := s.status[p]
	if !known {
		current = ""
	}
	if _, tracked := committed[p]; tracked && current == "" {
		current = types.CommittedStatus
	}
	s.setStatus(p, plumbing.StatusAfterEdit(current, committed, p, content))
}

// Reset throws every piece of repository state away and returns to "not initialized".
func (r *Repository) Reset() {
	if r.IsInitialized() {
		plumbing.RemoveAll(r.fs, "/"+constants.GitDir)
	}
	r.state = uninitialized{}
	r.log.Debug("repository reset")
}

// PartialReset keeps branches, commits and remotes but clears every status snapshot and the stash. Used when moving to the next level.
func (r *Repository) PartialReset() {
	s, ok := r.repo()
	if !ok {
		return
	}
	s.status = types.GitStatus{}
	for _, b := range s.branches {
		b.Status = types.GitStatus{}
		b.Worktree = map[string]string{}
		b.Index = map[string]string{}
	}
	s.stash = []types.StashEntry{}
	r.log.Debug("repository partially reset", zap.String("branch", s.currentBranch))
}

// isGitPath reports whether a normalized path lives inside .git.
func isGitPath(p string) bool {
	return p == constants.GitDir || strings.HasPrefix(p, constants.GitDir+"/")
}
