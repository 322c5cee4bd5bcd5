package commands

import (
	"fmt"

	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
)

type pushCommand struct{ spec }

func (pushCommand) BooleanFlags() []string {
	return []string{"u", "set-upstream", "f", "force", "all", "tags"}
}

func (pushCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}

	remote, branch := constants.DefaultRemote, ctx.Repo.GetCurrentBranch()
	if len(args.Positional) > 0 {
		remote = args.Positional[0]
	}
	if len(args.Positional) > 1 {
		branch = args.Positional[1]
	}

	head, exists := ctx.Repo.GetBranchHead(branch)
	if !exists || head == "" {
		return []string{
			fmt.Sprintf("error: src refspec %s does not match any", branch),
			fmt.Sprintf("error: failed to push some refs to '%s'", remote),
		}
	}

	// Decide the wording before Push marks everything as pushed
	previous, known := ctx.Repo.RemoteHead(remote, branch)
	var pending bool
	if branch == ctx.Repo.GetCurrentBranch() {
		pending = ctx.Repo.HasUnpushedCommits()
	} else {
		pending = len(ctx.Repo.UnpushedCommits(branch)) > 0
	}

	if !ctx.Repo.Push(remote, branch) {
		return []string{
			fmt.Sprintf("fatal: '%s' does not appear to be a git repository", remote),
			"fatal: Could not read from remote repository.",
		}
	}

	lines := []string{}
	switch {
	case known && previous == head && !pending:
		lines = append(lines, "Everything up-to-date")
	case !known:
		lines = append(lines, "To "+ctx.Repo.GetRemotes()[remote], fmt.Sprintf(" * [new branch]      %s -> %s", branch, branch))
	default:
		lines = append(lines, "To "+ctx.Repo.GetRemotes()[remote], fmt.Sprintf("   %s..%s  %s -> %s", previous, head, branch, branch))
	}
	if args.Has("u", "set-upstream") {
		lines = append(lines, fmt.Sprintf("branch '%s' set up to track '%s/%s'.", branch, remote, branch))
	}
	return lines
}

type pullCommand struct{ spec }

func (pullCommand) BooleanFlags() []string { return []string{"rebase", "ff-only"} }

func (pullCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	remotes := ctx.Repo.GetRemotes()
	if len(remotes) == 0 && len(args.Positional) == 0 {
		return []string{
			"There is no tracking information for the current branch.",
			"Please specify which branch you want to merge with.",
		}
	}

	remote, branch := constants.DefaultRemote, ctx.Repo.GetCurrentBranch()
	if len(args.Positional) > 0 {
		remote = args.Positional[0]
	}
	if len(args.Positional) > 1 {
		branch = args.Positional[1]
	}

	if !ctx.Repo.Pull(remote, branch) {
		if _, ok := remotes[remote]; ok {
			return []string{fmt.Sprintf("fatal: couldn't find remote ref %s", branch)}
		}
		return []string{
			fmt.Sprintf("fatal: '%s' does not appear to be a git repository", remote),
			"fatal: Could not read from remote repository.",
		}
	}
	return []string{
		"From " + remotes[remote],
		fmt.Sprintf(" * branch            %s       -> FETCH_HEAD", branch),
		"Already up to date.",
	}
}

type remoteCommand struct{ spec }

func (remoteCommand) BooleanFlags() []string { return []string{"v", "verbose"} }

func (remoteCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	remotes := ctx.Repo.GetRemotes()

	if len(args.Positional) == 0 {
		lines := []string{}
		for _, name := range utils.SortedContentKeys(remotes) {
			if args.Has("v", "verbose") {
				lines = append(lines, name+"\t"+remotes[name]+" (fetch)", name+"\t"+remotes[name]+" (push)")
				continue
			}
			lines = append(lines, name)
		}
		return lines
	}

	sub, rest := args.Positional[0], args.Positional[1:]
	switch sub {
	case "add":
		if len(rest) < 2 {
			return []string{"usage: git remote add <name> <url>"}
		}
		if _, exists := remotes[rest[0]]; exists {
			return []string{fmt.Sprintf("error: remote %s already exists.", rest[0])}
		}
		if !ctx.Repo.AddRemote(rest[0], rest[1]) {
			return []string{fmt.Sprintf("error: could not add remote '%s'", rest[0])}
		}
		return []string{}
	case "remove", "rm":
		if len(rest) < 1 {
			return []string{"usage: git remote remove <name>"}
		}
		if !ctx.Repo.RemoveRemote(rest[0]) {
			return []string{fmt.Sprintf("error: No such remote: '%s'", rest[0])}
		}
		return []string{}
	case "get-url":
		if len(rest) < 1 {
			return []string{"usage: git remote get-url <name>"}
		}
		url, ok := remotes[rest[0]]
		if !ok {
			return []string{fmt.Sprintf("error: No such remote '%s'", rest[0])}
		}
		return []string{url}
	}
	return []string{fmt.Sprintf("error: unknown subcommand: `%s'", sub)}
}
