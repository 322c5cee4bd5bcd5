package constants

const (
	DefaultBranch     = "main"
	DefaultRemote     = "origin"
	PlaceholderRemote = "https://github.com/user/repo.git" // used when push auto-creates origin
	ShortIDLength     = 7
	RootDir           = "/"
	GitDir            = ".git"
	ResetColor        = "\033[0m"
	BoldColor         = "\033[1m"
	GreenColor        = "\033[32m"
	RedColor          = "\033[31m"
	YellowColor       = "\033[33m"
	Head              = "ref: refs/heads/main\n" // Default .git/HEAD content
	Config            = `[core]
	repositoryformatversion = 0
	filemode = true
	bare = false
	logallrefupdates = true

[user]
	name = Git Learner
	email = learner@gitgud.local
` // Default .git/config content
	NotInitialized  = "fatal: not a git repository (or any of the parent directories): .git"
	NotImplemented  = "is not fully implemented in this simulation"
	NothingToCommit = "nothing to commit, working tree clean"
)

// Define the necessary directory structure
var Dir_paths = []string{
	".git",
	".git/objects",
	".git/refs",
	".git/refs/heads",
}
