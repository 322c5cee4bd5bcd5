package porcelain

import (
	"sort"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// StagedChange is one line of the "Changes to be committed" block.
type StagedChange struct {
	Path string
	Kind plumbing.ChangeKind
}

// StatusReport groups the status map the way 'git status' prints it. Every slice is sorted.
type StatusReport struct {
	Branch    string
	Staged    []StagedChange
	Modified  []string
	Deleted   []string
	Untracked []string
}

// Clean reports whether there is nothing to show besides the branch line.
func (s StatusReport) Clean() bool {
	return len(s.Staged) == 0 && len(s.Modified) == 0 && len(s.Deleted) == 0 && len(s.Untracked) == 0
}

// Report builds the grouped status view. ok is false before init.
func (r *Repository) Report() (StatusReport, bool) {
	s, ok := r.repo()
	if !ok {
		return StatusReport{}, false
	}

	report := StatusReport{
		Branch:    s.currentBranch,
		Staged:    []StagedChange{},
		Modified:  []string{},
		Deleted:   []string{},
		Untracked: []string{},
	}

	// Files in the working tree that Git never saw count as untracked too
	for _, p := range plumbing.ListFiles(r.fs, "/") {
		if _, known := s.status[p]; !known {
			if _, tracked := s.current().Files[p]; !tracked {
				report.Untracked = append(report.Untracked, p)
			}
		}
	}

	for _, p := range utils.SortedKeys(s.status) {
		switch s.status[p] {
		case types.StagedStatus:
			report.Staged = append(report.Staged, StagedChange{
				Path: p,
				Kind: plumbing.ClassifyStaged(r.fs, p, s.current().Files),
			})
		case types.ModifiedStatus:
			report.Modified = append(report.Modified, p)
		case types.DeletedStatus:
			report.Deleted = append(report.Deleted, p)
		case types.UntrackedStatus:
			if r.fs.IsFile("/" + p) {
				report.Untracked = append(report.Untracked, p)
			}
		}
	}
	report.Untracked = sortUnique(report.Untracked)
	return report, true
}

func sortUnique(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, p := range in {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}
