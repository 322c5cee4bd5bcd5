package porcelain

import (
	"fmt"
	"sort"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// Commit records every staged path in a new commit on the current branch. ok is false when nothing is staged.
func (r *Repository) Commit(message string) (string, bool) {
	s, ok := r.repo()
	if !ok {
		return "", false
	}

	staged := plumbing.StagedPaths(s.status)
	if len(staged) == 0 {
		return "", false
	}

	branch := s.current()
	ts := r.now()

	// Ids carry a random nonce, retry on the rare short-id clash
	id := plumbing.NewCommitID(message, ts)
	for {
		if _, clash := s.commits[id]; !clash {
			break
		}
		id = plumbing.NewCommitID(message, ts)
	}

	// Snapshot staged content into the branch, drop staged deletions. Content recorded by 'git add' wins over later edits.
	for _, p := range staged {
		content, exists := branch.Index[p]
		if !exists {
			content, exists = r.fs.GetFileContents("/" + p)
		}
		if !exists {
			delete(branch.Files, p)
			s.forget(p)
			continue
		}
		branch.Files[p] = content
		s.setStatus(p, r.unstagedStatus(s, p))
	}

	author := plumbing.GetAuthorInfo(r.fs)
	commit := plumbing.WriteCommit(id, message, s.currentBranch, branch.Head(), staged, branch.Files, ts)
	commit.Author = fmt.Sprintf("%s <%s>", author.Name, author.Email)

	s.commits[id] = commit
	branch.Commits = append(branch.Commits, id)
	plumbing.UpdateBranchRef(r.fs, s.currentBranch, id)

	r.log.Debug("commit created",
		zap.String("id", id),
		zap.String("branch", s.currentBranch),
		zap.Int("files", len(staged)),
	)
	return id, true
}

// GetCommits returns a copy of every commit ever recorded, across branches.
func (r *Repository) GetCommits() map[string]types.Commit {
	s, ok := r.repo()
	if !ok {
		return map[string]types.Commit{}
	}
	out := make(map[string]types.Commit, len(s.commits))
	for id, c := range s.commits {
		out[id] = c
	}
	return out
}

// GetCommitHistory returns the commits reachable on the current branch, newest first.
func (r *Repository) GetCommitHistory() []types.Commit {
	s, ok := r.repo()
	if !ok {
		return []types.Commit{}
	}
	return r.branchHistory(s, s.currentBranch)
}

// GetBranchHistory returns the commits reachable on branch, newest first.
func (r *Repository) GetBranchHistory(branch string) ([]types.Commit, bool) {
	s, ok := r.repo()
	if !ok {
		return nil, false
	}
	if _, exists := s.branches[branch]; !exists {
		return nil, false
	}
	return r.branchHistory(s, branch), true
}

func (r *Repository) branchHistory(s *initialized, branch string) []types.Commit {
	ids := s.branches[branch].Commits
	out := make([]types.Commit, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, s.commits[ids[i]])
	}
	return out
}

// GetBranchHead returns the newest commit id on branch.
func (r *Repository) GetBranchHead(branch string) (string, bool) {
	s, ok := r.repo()
	if !ok {
		return "", false
	}
	b, exists := s.branches[branch]
	if !exists {
		return "", false
	}
	return b.Head(), true
}

// GetCommit resolves HEAD, HEAD~N, a branch name or an id prefix to a commit.
func (r *Repository) GetCommit(ref string) (types.Commit, bool) {
	s, ok := r.repo()
	if !ok {
		return types.Commit{}, false
	}

	heads := make(map[string]string, len(s.branches))
	for name, b := range s.branches {
		heads[name] = b.Head()
	}

	id, err := plumbing.ResolveCommitish(ref, s.current().Head(), heads, s.commits)
	if err != nil {
		r.log.Debug("resolve failed", zap.String("ref", ref), zap.Error(err))
		return types.Commit{}, false
	}
	commit, found := s.commits[id]
	return commit, found
}

// CommitIDs returns every recorded commit id sorted by creation time.
func (r *Repository) CommitIDs() []string {
	s, ok := r.repo()
	if !ok {
		return []string{}
	}
	ids := make([]string, 0, len(s.commits))
	for id := range s.commits {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		a, b := s.commits[ids[i]], s.commits[ids[j]]
		if a.Timestamp.Equal(b.Timestamp) {
			return ids[i] < ids[j]
		}
		return a.Timestamp.Before(b.Timestamp)
	})
	return ids
}
