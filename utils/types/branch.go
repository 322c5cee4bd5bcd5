package types

// BranchState is the per-branch snapshot used to switch branches without an object database.
type BranchState struct {
	Files    map[string]string // path -> last committed content
	Status   GitStatus         // status snapshot scoped to the branch
	Commits  []string          // commit ids reachable on the branch, oldest first
	Worktree map[string]string // working content of dirty paths when the branch was last left
	Index    map[string]string // path -> content at staging time, staged paths only
}

// NewBranchState returns an empty branch state.
func NewBranchState() *BranchState {
	return &BranchState{
		Files:    map[string]string{},
		Status:   GitStatus{},
		Commits:  []string{},
		Worktree: map[string]string{},
		Index:    map[string]string{},
	}
}

// Clone deep-copies the branch state. Branches never share maps.
func (b *BranchState) Clone() *BranchState {
	files := make(map[string]string, len(b.Files))
	for k, v := range b.Files {
		files[k] = v
	}
	worktree := make(map[string]string, len(b.Worktree))
	for k, v := range b.Worktree {
		worktree[k] = v
	}
	index := make(map[string]string, len(b.Index))
	for k, v := range b.Index {
		index[k] = v
	}
	commits := make([]string, len(b.Commits))
	copy(commits, b.Commits)
	return &BranchState{
		Files:    files,
		Status:   b.Status.Clone(),
		Commits:  commits,
		Worktree: worktree,
		Index:    index,
	}
}

// Head returns the newest commit id on the branch, or "" when there are none.
func (b *BranchState) Head() string {
	if len(b.Commits) == 0 {
		return ""
	}
	return b.Commits[len(b.Commits)-1]
}

// StashEntry is one saved set of uncommitted changes.
type StashEntry struct {
	Branch  string            // branch the stash was taken on
	Message string            // WIP message shown by stash list
	Files   map[string]string // path -> working content at stash time
	Status  GitStatus         // statuses of the stashed paths
	Removed []string          // paths that were deleted in the working tree
}

// CheckoutResult reports the outcome of a branch switch.
type CheckoutResult struct {
	Success  bool
	Warnings []string
}

// ResetMode selects how far a HEAD reset reaches.
type ResetMode string

const (
	ResetSoft  ResetMode = "soft"
	ResetMixed ResetMode = "mixed"
	ResetHard  ResetMode = "hard"
)
