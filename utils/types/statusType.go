package types

// FileStatus is the state Git reports for a single tracked or observed path.
type FileStatus string

const (
	UntrackedStatus FileStatus = "untracked"
	ModifiedStatus  FileStatus = "modified"
	StagedStatus    FileStatus = "staged"
	CommittedStatus FileStatus = "committed"
	DeletedStatus   FileStatus = "deleted"
)

// IsValid reports whether s is one of the known statuses.
func (s FileStatus) IsValid() bool {
	switch s {
	case UntrackedStatus, ModifiedStatus, StagedStatus, CommittedStatus, DeletedStatus:
		return true
	}
	return false
}

// IsDirty reports whether the path carries uncommitted work.
func (s FileStatus) IsDirty() bool {
	return s == ModifiedStatus || s == StagedStatus || s == DeletedStatus
}

// GitStatus maps a normalized path (no leading '/') to its status.
type GitStatus map[string]FileStatus

// Clone returns an independent copy of the status map.
func (g GitStatus) Clone() GitStatus {
	out := make(GitStatus, len(g))
	for k, v := range g {
		out[k] = v
	}
	return out
}
