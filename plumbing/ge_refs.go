package plumbing

import (
	"path"

	"github.com/MikaStiebitz/Git-Gud/utils/constants"
)

// refsDir is where branch heads live inside the simulated .git directory.
var refsDir = path.Join("/", constants.GitDir, "refs", "heads")

// CreateGitDirs lays out the cosmetic .git directory so 'ls -a' looks real.
func CreateGitDirs(fs *FileSystem) bool {

	// Create the necessary directories
	for _, dir := range constants.Dir_paths {
		if !fs.Mkdir("/" + dir) {
			return false
		}
	}

	// HEAD points to the default branch, config gets the default content
	if !fs.WriteFile(path.Join("/", constants.GitDir, "HEAD"), constants.Head) {
		return false
	}
	return fs.WriteFile(path.Join("/", constants.GitDir, "config"), constants.Config)
}

// WriteHEAD points .git/HEAD to the given branch. It is a no-op when .git is missing.
func WriteHEAD(fs *FileSystem, branch string) {
	if !fs.IsDirectory("/" + constants.GitDir) {
		return
	}
	fs.WriteFile(path.Join("/", constants.GitDir, "HEAD"), "ref: refs/heads/"+branch+"\n")
}

// UpdateBranchRef records the branch head id under .git/refs/heads.
func UpdateBranchRef(fs *FileSystem, branch, id string) {
	if !fs.IsDirectory("/"+constants.GitDir) || id == "" {
		return
	}
	fs.WriteFile(path.Join(refsDir, branch), id+"\n")
}

// DeleteBranchRef removes the ref file of a deleted branch.
func DeleteBranchRef(fs *FileSystem, branch string) {
	fs.Delete(path.Join(refsDir, branch))
}
