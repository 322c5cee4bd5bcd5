package commands

// gitCommands returns every 'git <sub>' handler.
func gitCommands() []Command {
	return []Command{
		initCommand{spec{
			name:        "git init",
			description: "Create an empty Git repository",
			usage:       "git init",
			examples:    []string{"git init"},
		}},
		statusCommand{spec{
			name:        "git status",
			description: "Show the working tree status",
			usage:       "git status [-s]",
			examples:    []string{"git status", "git status -s"},
		}},
		addCommand{spec{
			name:        "git add",
			description: "Add file contents to the staging area",
			usage:       "git add <file>... | git add . | git add -A",
			examples:    []string{"git add README.md", "git add .", "git add -A"},
			files:       true,
		}},
		commitCommand{spec{
			name:        "git commit",
			description: "Record staged changes to the repository",
			usage:       `git commit [-a] -m "<message>"`,
			examples:    []string{`git commit -m "Add README"`, `git commit -am "Fix typo"`},
		}},
		branchCommand{spec{
			name:        "git branch",
			description: "List, create, rename or delete branches",
			usage:       "git branch [-a|-r] | git branch <name> | git branch -d <name> | git branch -m [<old>] <new>",
			examples:    []string{"git branch", "git branch feature", "git branch -d feature"},
		}},
		checkoutCommand{spec{
			name:        "git checkout",
			description: "Switch branches or restore working tree files",
			usage:       "git checkout [-b] <branch> | git checkout -- <file>",
			examples:    []string{"git checkout main", "git checkout -b feature", "git checkout -- README.md"},
			files:       true,
		}},
		switchCommand{spec{
			name:        "git switch",
			description: "Switch branches",
			usage:       "git switch [-c] <branch>",
			examples:    []string{"git switch main", "git switch -c feature"},
		}},
		mergeCommand{spec{
			name:        "git merge",
			description: "Join another branch into the current one",
			usage:       "git merge <branch>",
			examples:    []string{"git merge feature"},
		}},
		pushCommand{spec{
			name:        "git push",
			description: "Update a remote with local commits",
			usage:       "git push [-u] [<remote>] [<branch>]",
			examples:    []string{"git push", "git push -u origin main"},
		}},
		pullCommand{spec{
			name:        "git pull",
			description: "Fetch from a remote and integrate",
			usage:       "git pull [<remote>] [<branch>]",
			examples:    []string{"git pull", "git pull origin main"},
		}},
		remoteCommand{spec{
			name:        "git remote",
			description: "Manage remote repositories",
			usage:       "git remote [-v] | git remote add <name> <url> | git remote remove <name>",
			examples:    []string{"git remote -v", "git remote add origin https://github.com/user/repo.git"},
		}},
		resetCommand{spec{
			name:        "git reset",
			description: "Unstage files or move HEAD back",
			usage:       "git reset [<file>...] | git reset [--soft|--mixed|--hard] HEAD~<n>",
			examples:    []string{"git reset README.md", "git reset --hard HEAD~1"},
			files:       true,
		}},
		restoreCommand{spec{
			name:        "git restore",
			description: "Restore working tree files or unstage them",
			usage:       "git restore [--staged] <file>...",
			examples:    []string{"git restore README.md", "git restore --staged README.md"},
			files:       true,
		}},
		revertCommand{spec{
			name:        "git revert",
			description: "Revert an existing commit",
			usage:       "git revert <commit>",
			examples:    []string{"git revert HEAD"},
		}},
		rebaseCommand{spec{
			name:        "git rebase",
			description: "Reapply commits on top of another branch",
			usage:       "git rebase <branch>",
			examples:    []string{"git rebase main"},
		}},
		cherryPickCommand{spec{
			name:        "git cherry-pick",
			description: "Apply the changes of existing commits",
			usage:       "git cherry-pick <commit>...",
			examples:    []string{"git cherry-pick a1b2c3d"},
		}},
		gitMvCommand{spec{
			name:        "git mv",
			description: "Move or rename a tracked file",
			usage:       "git mv <source> <destination>",
			examples:    []string{"git mv old.txt new.txt"},
			files:       true,
		}},
		gitRmCommand{spec{
			name:        "git rm",
			description: "Remove tracked files from the working tree and the index",
			usage:       "git rm [-r] <file>...",
			examples:    []string{"git rm old.txt", "git rm -r build"},
			files:       true,
		}},
		showCommand{spec{
			name:        "git show",
			description: "Show a commit and its changes",
			usage:       "git show [<commit>]",
			examples:    []string{"git show", "git show HEAD~1"},
		}},
		diffCommand{spec{
			name:        "git diff",
			description: "Show changes between the working tree and the last commit",
			usage:       "git diff [--staged] [<file>...]",
			examples:    []string{"git diff", "git diff --staged"},
			files:       true,
		}},
		logCommand{spec{
			name:        "git log",
			description: "Show the commit history",
			usage:       "git log [--oneline] [-n <count>] [<branch>]",
			examples:    []string{"git log", "git log --oneline -n 5"},
		}},
		stashCommand{spec{
			name:        "git stash",
			description: "Shelve uncommitted changes",
			usage:       "git stash [push|pop|list|drop]",
			examples:    []string{"git stash", "git stash pop"},
		}},
		configCommand{spec{
			name:        "git config",
			description: "Read or write repository options",
			usage:       "git config [--list] | git config <name> [<value>]",
			examples:    []string{`git config user.name "Ada Lovelace"`, "git config --list"},
		}},
		catFileCommand{spec{
			name:        "git cat-file",
			description: "Show the type, size or content of a repository object",
			usage:       "git cat-file (-t | -s | -e | -p) <object>",
			examples:    []string{"git cat-file -p HEAD", "git cat-file -t HEAD~1", "git cat-file -p HEAD:README.md"},
			hidden:      true,
		}},
		lsTreeCommand{spec{
			name:        "git ls-tree",
			description: "List the contents of a commit's tree",
			usage:       "git ls-tree [-r] [-d] [-t] [--name-only] <tree-ish>",
			examples:    []string{"git ls-tree HEAD", "git ls-tree -r --name-only main"},
			hidden:      true,
		}},
		hashObjectCommand{spec{
			name:        "git hash-object",
			description: "Compute the object id of a file",
			usage:       "git hash-object [-t <type>] <file>...",
			examples:    []string{"git hash-object README.md"},
			hidden:      true,
			files:       true,
		}},
	}
}

// shellCommands returns the terminal helpers.
func shellCommands() []Command {
	return []Command{
		lsCommand{spec{
			name:        "ls",
			description: "List directory contents",
			usage:       "ls [-a] [<path>]",
			examples:    []string{"ls", "ls -a", "ls src"},
			files:       true,
		}},
		cdCommand{spec{
			name:        "cd",
			description: "Change the current directory",
			usage:       "cd [<dir>]",
			examples:    []string{"cd src", "cd ..", "cd /"},
			files:       true,
		}},
		pwdCommand{spec{
			name:        "pwd",
			description: "Print the current directory",
			usage:       "pwd",
		}},
		catCommand{spec{
			name:        "cat",
			description: "Print file contents",
			usage:       "cat <file>...",
			examples:    []string{"cat README.md"},
			files:       true,
		}},
		mkdirCommand{spec{
			name:        "mkdir",
			description: "Create directories",
			usage:       "mkdir [-p] <dir>...",
			examples:    []string{"mkdir src", "mkdir -p src/app"},
			files:       true,
		}},
		touchCommand{spec{
			name:        "touch",
			description: "Create empty files",
			usage:       "touch <file>...",
			examples:    []string{"touch notes.txt"},
			files:       true,
		}},
		rmCommand{spec{
			name:        "rm",
			description: "Remove files or directories",
			usage:       "rm [-r] [-f] <path>...",
			examples:    []string{"rm notes.txt", "rm -r build"},
			files:       true,
		}},
		nanoCommand{spec{
			name:        "nano",
			description: "Edit a file",
			usage:       "nano <file> [<content>]",
			examples:    []string{"nano README.md", `nano README.md "# Hello"`},
			files:       true,
		}},
		echoCommand{spec{
			name:        "echo",
			description: "Print text or write it to a file",
			usage:       "echo <text> [> <file>|>> <file>]",
			examples:    []string{`echo "hello" > hello.txt`, `echo "more" >> hello.txt`},
			files:       true,
		}},
		helpCommand{spec{
			name:        "help",
			description: "List commands or describe one",
			usage:       "help [<command>]",
			examples:    []string{"help", "help git commit"},
		}},
		clearCommand{spec{
			name:        "clear",
			description: "Clear the terminal",
			usage:       "clear",
		}},
		nextCommand{spec{
			name:        "next",
			description: "Go to the next level",
			usage:       "next",
		}},
	}
}
