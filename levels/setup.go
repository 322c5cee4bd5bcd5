package levels

import (
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/porcelain"
	"github.com/MikaStiebitz/Git-Gud/utils"
)

// Apply builds the level's starting point on an empty filesystem and its repository.
func (s Setup) Apply(fs *plumbing.FileSystem, repo *porcelain.Repository) {
	for _, p := range utils.SortedContentKeys(s.Files) {
		fs.WriteFile(utils.CleanAbs(p), s.Files[p])
	}
	if !s.Init && s.Commit == "" {
		return
	}
	repo.Init()

	if s.Commit != "" {
		for _, p := range utils.SortedContentKeys(s.Files) {
			repo.AddFile(p)
		}
		repo.Commit(s.Commit)
	}
	for _, b := range s.Branches {
		repo.CreateBranch(b)
	}
	for _, p := range utils.SortedContentKeys(s.Staged) {
		fs.WriteFile(utils.CleanAbs(p), s.Staged[p])
		repo.RecordWorkingChange(p)
		repo.AddFile(p)
	}
	for _, p := range utils.SortedContentKeys(s.Modified) {
		fs.WriteFile(utils.CleanAbs(p), s.Modified[p])
		repo.RecordWorkingChange(p)
	}
}
