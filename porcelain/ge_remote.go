package porcelain

import (
	"strings"

	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"go.uber.org/zap"
)

// AddRemote registers a remote URL. It fails when the name is taken.
func (r *Repository) AddRemote(name, url string) bool {
	s, ok := r.repo()
	if !ok || name == "" || url == "" {
		return false
	}
	if _, exists := s.remotes[name]; exists {
		return false
	}
	s.remotes[name] = url
	r.log.Debug("remote added", zap.String("remote", name), zap.String("url", url))
	return true
}

// RemoveRemote forgets a remote and what was pushed to it.
func (r *Repository) RemoveRemote(name string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	if _, exists := s.remotes[name]; !exists {
		return false
	}
	delete(s.remotes, name)
	for key := range s.remoteHeads {
		if strings.HasPrefix(key, name+"/") {
			delete(s.remoteHeads, key)
		}
	}
	return true
}

// GetRemotes returns a copy of the remote name -> URL map.
func (r *Repository) GetRemotes() map[string]string {
	s, ok := r.repo()
	if !ok {
		return map[string]string{}
	}
	out := make(map[string]string, len(s.remotes))
	for k, v := range s.remotes {
		out[k] = v
	}
	return out
}

// Push marks the branch commits as pushed to remote. origin is created on the fly when no remote exists yet.
// It succeeds even when there is nothing new; callers check HasUnpushedCommits first to word the output.
func (r *Repository) Push(remote, branch string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}

	if len(s.remotes) == 0 && remote == constants.DefaultRemote {
		s.remotes[constants.DefaultRemote] = constants.PlaceholderRemote
	}
	if _, exists := s.remotes[remote]; !exists {
		return false
	}
	b, exists := s.branches[branch]
	if !exists {
		return false
	}

	pushed := 0
	for _, id := range b.Commits {
		if !s.pushedCommits[id] {
			s.pushedCommits[id] = true
			pushed++
		}
	}
	s.remoteHeads[remote+"/"+branch] = b.Head()

	r.log.Debug("pushed", zap.String("remote", remote), zap.String("branch", branch), zap.Int("commits", pushed))
	return true
}

// Pull succeeds for any known remote and branch. There is no remote content to bring in.
func (r *Repository) Pull(remote, branch string) bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	if _, exists := s.remotes[remote]; !exists {
		return false
	}
	if _, exists := s.branches[branch]; !exists {
		return false
	}
	r.log.Debug("pulled", zap.String("remote", remote), zap.String("branch", branch))
	return true
}

// HasUnpushedCommits reports whether the current branch holds commits that were never pushed.
func (r *Repository) HasUnpushedCommits() bool {
	s, ok := r.repo()
	if !ok {
		return false
	}
	for _, id := range s.current().Commits {
		if !s.pushedCommits[id] {
			return true
		}
	}
	return false
}

// UnpushedCommits returns the ids on branch that were never pushed, oldest first.
func (r *Repository) UnpushedCommits(branch string) []string {
	s, ok := r.repo()
	if !ok {
		return []string{}
	}
	b, exists := s.branches[branch]
	if !exists {
		return []string{}
	}
	out := []string{}
	for _, id := range b.Commits {
		if !s.pushedCommits[id] {
			out = append(out, id)
		}
	}
	return out
}

// RemoteHead returns the head last pushed for remote/branch.
func (r *Repository) RemoteHead(remote, branch string) (string, bool) {
	s, ok := r.repo()
	if !ok {
		return "", false
	}
	id, found := s.remoteHeads[remote+"/"+branch]
	return id, found
}
