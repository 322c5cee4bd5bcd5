package porcelain

import (
	"sort"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
	"go.uber.org/zap"
)

// Checkout switches to branch, creating it first when createNew is set. Uncommitted changes only produce warnings and never block the switch.
func (r *Repository) Checkout(branch string, createNew bool) types.CheckoutResult {
	s, ok := r.repo()
	if !ok {
		return types.CheckoutResult{}
	}

	// Create the branch up front, the whole call fails with it
	if createNew {
		if !r.CreateBranch(branch) {
			return types.CheckoutResult{}
		}
	} else if _, exists := s.branches[branch]; !exists {
		return types.CheckoutResult{}
	}

	if branch == s.currentBranch {
		return types.CheckoutResult{Success: true}
	}

	// Uncommitted work is reported, not refused
	warnings := []string{}
	for _, p := range plumbing.PathsWithStatus(s.status, types.ModifiedStatus, types.StagedStatus) {
		warnings = append(warnings, "M\t"+p)
	}

	outgoing := s.currentBranch
	r.saveWorkingTreeToBranch(s)
	untracked := r.untrackedFiles(s)

	s.currentBranch = branch
	plumbing.WriteHEAD(r.fs, branch)

	r.restoreWorkingTreeFromBranch(s, s.branches[outgoing])

	// Resync global status from the incoming snapshot, untracked files follow the learner
	s.status = s.current().Status.Clone()
	for _, p := range untracked {
		if _, known := s.status[p]; !known && r.fs.IsFile("/"+p) {
			s.setStatus(p, types.UntrackedStatus)
		}
	}

	r.log.Debug("checked out",
		zap.String("from", outgoing),
		zap.String("to", branch),
		zap.Int("warnings", len(warnings)),
	)
	return types.CheckoutResult{Success: true, Warnings: warnings}
}

// saveWorkingTreeToBranch stores the working content of every dirty path in the current branch snapshot.
func (r *Repository) saveWorkingTreeToBranch(s *initialized) {
	b := s.current()
	dirty := []string{}
	for p, st := range s.status {
		if st.IsDirty() {
			dirty = append(dirty, p)
		}
	}
	b.Worktree = plumbing.SnapshotFiles(r.fs, dirty)
	b.Status = s.status.Clone()
}

// restoreWorkingTreeFromBranch writes the current branch into the working tree and removes files only the outgoing branch knew.
func (r *Repository) restoreWorkingTreeFromBranch(s *initialized, outgoing *types.BranchState) {
	incoming := s.current()

	// Incoming tree: committed files overlaid with the saved dirty content
	tree := make(map[string]string, len(incoming.Files)+len(incoming.Worktree))
	for p, c := range incoming.Files {
		tree[p] = c
	}
	for p, c := range incoming.Worktree {
		tree[p] = c
	}
	for p, st := range incoming.Status {
		if st == types.DeletedStatus {
			delete(tree, p)
		}
	}

	// Everything the outgoing branch tracked is a removal candidate
	stale := []string{}
	for p := range outgoing.Files {
		stale = append(stale, p)
	}
	for p, st := range outgoing.Status {
		if st != types.UntrackedStatus {
			if _, tracked := outgoing.Files[p]; !tracked {
				stale = append(stale, p)
			}
		}
	}
	for p, st := range incoming.Status {
		if st == types.DeletedStatus {
			stale = append(stale, p)
		}
	}
	sort.Strings(stale)

	plumbing.CheckoutToTree(r.fs, tree, stale)
}

// untrackedFiles lists the untracked paths that still exist in the working tree.
func (r *Repository) untrackedFiles(s *initialized) []string {
	out := []string{}
	for _, p := range plumbing.PathsWithStatus(s.status, types.UntrackedStatus) {
		if r.fs.IsFile("/" + p) {
			out = append(out, p)
		}
	}
	return out
}
