package commands

import (
	"fmt"

	"github.com/MikaStiebitz/Git-Gud/porcelain"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

type branchCommand struct{ spec }

func (branchCommand) BooleanFlags() []string {
	return []string{"d", "D", "delete", "m", "M", "move", "a", "all", "r", "remotes", "v", "list"}
}

func (branchCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}

	switch {
	case args.Has("d", "D", "delete"):
		if len(args.Positional) == 0 {
			return []string{"fatal: branch name required"}
		}
		lines := []string{}
		for _, name := range args.Positional {
			lines = append(lines, deleteBranch(ctx, name, args.Has("D"))...)
		}
		return lines

	case args.Has("m", "M", "move"):
		oldName, newName := ctx.Repo.GetCurrentBranch(), ""
		switch len(args.Positional) {
		case 1:
			newName = args.Positional[0]
		case 2:
			oldName, newName = args.Positional[0], args.Positional[1]
		default:
			return []string{"fatal: branch name required"}
		}
		return renameBranch(ctx, oldName, newName)

	case len(args.Positional) > 0:
		name := args.Positional[0]
		if ctx.Repo.HasBranch(name) {
			return []string{fmt.Sprintf("fatal: a branch named '%s' already exists", name)}
		}
		if !ctx.Repo.CreateBranch(name) {
			return []string{fmt.Sprintf("fatal: '%s' is not a valid branch name", name)}
		}
		return []string{}
	}

	return listBranches(ctx, args.Has("a", "all"), args.Has("r", "remotes"), args.Has("v"))
}

func listBranches(ctx *Context, all, remotesOnly, verbose bool) []string {
	lines := []string{}
	current := ctx.Repo.GetCurrentBranch()

	if !remotesOnly {
		for _, b := range ctx.Repo.GetBranches() {
			marker := "  "
			if b == current {
				marker = "* "
			}
			line := marker + b
			if verbose {
				if head, _ := ctx.Repo.GetBranchHead(b); head != "" {
					if hist, ok := ctx.Repo.GetBranchHistory(b); ok && len(hist) > 0 {
						line += " " + head + " " + hist[0].Subject()
					}
				}
			}
			lines = append(lines, line)
		}
	}

	if all || remotesOnly {
		for _, remote := range utils.SortedContentKeys(ctx.Repo.GetRemotes()) {
			for _, b := range ctx.Repo.GetBranches() {
				if _, pushed := ctx.Repo.RemoteHead(remote, b); pushed {
					prefix := "  remotes/"
					if remotesOnly {
						prefix = "  "
					}
					lines = append(lines, prefix+remote+"/"+b)
				}
			}
		}
	}
	return lines
}

func deleteBranch(ctx *Context, name string, force bool) []string {
	switch {
	case !ctx.Repo.HasBranch(name):
		return []string{fmt.Sprintf("error: branch '%s' not found.", name)}
	case name == ctx.Repo.GetCurrentBranch():
		return []string{fmt.Sprintf("error: Cannot delete branch '%s' checked out at '/'", name)}
	case name == constants.DefaultBranch:
		return []string{fmt.Sprintf("error: Cannot delete branch '%s': it is the default branch", name)}
	case !force && !ctx.Repo.IsMerged(name):
		return []string{
			fmt.Sprintf("error: the branch '%s' is not fully merged.", name),
			fmt.Sprintf("If you are sure you want to delete it, run 'git branch -D %s'.", name),
		}
	}

	head, _ := ctx.Repo.GetBranchHead(name)
	if !ctx.Repo.DeleteBranch(name) {
		return []string{fmt.Sprintf("error: Cannot delete branch '%s'", name)}
	}
	if head == "" {
		return []string{fmt.Sprintf("Deleted branch %s.", name)}
	}
	return []string{fmt.Sprintf("Deleted branch %s (was %s).", name, head)}
}

func renameBranch(ctx *Context, oldName, newName string) []string {
	switch {
	case !ctx.Repo.HasBranch(oldName):
		return []string{fmt.Sprintf("error: refname refs/heads/%s not found", oldName)}
	case oldName == constants.DefaultBranch:
		return []string{fmt.Sprintf("error: the branch '%s' cannot be renamed in this simulation", oldName)}
	case ctx.Repo.HasBranch(newName):
		return []string{fmt.Sprintf("fatal: a branch named '%s' already exists", newName)}
	case !ctx.Repo.RenameBranch(oldName, newName):
		return []string{fmt.Sprintf("fatal: '%s' is not a valid branch name", newName)}
	}
	return []string{}
}

// switchLines renders a checkout result.
func switchLines(res types.CheckoutResult, format, branch string) []string {
	lines := append([]string{}, res.Warnings...)
	return append(lines, fmt.Sprintf(format, branch))
}

// createAndSwitch handles 'checkout -b' and 'switch -c'.
func createAndSwitch(ctx *Context, name string) []string {
	if ctx.Repo.HasBranch(name) {
		return []string{fmt.Sprintf("fatal: a branch named '%s' already exists", name)}
	}
	if !porcelain.ValidBranchName(name) {
		return []string{fmt.Sprintf("fatal: '%s' is not a valid branch name", name)}
	}
	res := ctx.Repo.Checkout(name, true)
	if !res.Success {
		return []string{fmt.Sprintf("fatal: could not create branch '%s'", name)}
	}
	return switchLines(res, "Switched to a new branch '%s'", name)
}

type checkoutCommand struct{ spec }

func (checkoutCommand) BooleanFlags() []string { return []string{"b", "B", "f", "force"} }

func (checkoutCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		if args.Has("b", "B") {
			return invalid("error: switch `b' requires a value")
		}
		return invalid("fatal: you must specify a branch or path to check out")
	}
	return valid()
}

func (checkoutCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}

	// 'git checkout -- <file>' discards working tree changes
	for _, tok := range args.Raw {
		if tok == "--" {
			return restorePaths(ctx, args.Positional)
		}
	}

	name := args.Positional[0]
	if args.Has("b", "B") {
		return createAndSwitch(ctx, name)
	}
	if !ctx.Repo.HasBranch(name) {
		if _, tracked := ctx.Repo.GetTrackedContent(repoPath(ctx, name)); tracked {
			return restorePaths(ctx, args.Positional)
		}
		return []string{fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", name)}
	}
	if name == ctx.Repo.GetCurrentBranch() {
		return []string{fmt.Sprintf("Already on '%s'", name)}
	}
	res := ctx.Repo.Checkout(name, false)
	if !res.Success {
		return []string{fmt.Sprintf("error: could not switch to '%s'", name)}
	}
	return switchLines(res, "Switched to branch '%s'", name)
}

// restorePaths writes the committed content of each path back into the working tree.
func restorePaths(ctx *Context, paths []string) []string {
	lines := []string{}
	restored := 0
	for _, p := range paths {
		if !ctx.Repo.RestoreFile(repoPath(ctx, p)) {
			lines = append(lines, fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", p))
			continue
		}
		restored++
	}
	if restored > 0 {
		lines = append(lines, fmt.Sprintf("Updated %s from the index", plural(restored, "path")))
	}
	return lines
}

type switchCommand struct{ spec }

func (switchCommand) BooleanFlags() []string { return []string{"c", "C", "create"} }

func (switchCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		if args.Has("c", "C", "create") {
			return invalid("error: switch `c' requires a value")
		}
		return invalid("fatal: missing branch or commit argument")
	}
	return valid()
}

func (switchCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	name := args.Positional[0]
	if args.Has("c", "C", "create") {
		return createAndSwitch(ctx, name)
	}
	if !ctx.Repo.HasBranch(name) {
		return []string{"fatal: invalid reference: " + name}
	}
	if name == ctx.Repo.GetCurrentBranch() {
		return []string{fmt.Sprintf("Already on '%s'", name)}
	}
	res := ctx.Repo.Checkout(name, false)
	if !res.Success {
		return []string{fmt.Sprintf("error: could not switch to '%s'", name)}
	}
	return switchLines(res, "Switched to branch '%s'", name)
}

type mergeCommand struct{ spec }

func (mergeCommand) BooleanFlags() []string { return []string{"abort", "no-ff", "ff-only", "squash"} }

func (mergeCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 && !args.Has("abort") {
		return invalid("fatal: No remote for the current branch.")
	}
	return valid()
}

func (mergeCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("abort") {
		return []string{"fatal: There is no merge to abort (MERGE_HEAD missing)."}
	}

	name := args.Positional[0]
	if !ctx.Repo.HasBranch(name) {
		return []string{fmt.Sprintf("merge: %s - not something we can merge", name)}
	}

	// The preview is read before Merge so the output can name what came in
	commits, files := ctx.Repo.MergePreview(name)
	if !ctx.Repo.Merge(name) || len(commits) == 0 {
		return []string{"Already up to date."}
	}

	lines := []string{"Merge made by the 'ort' strategy."}
	for _, f := range files {
		lines = append(lines, " "+f)
	}
	return append(lines, fmt.Sprintf(" %s changed", plural(len(files), "file")))
}
