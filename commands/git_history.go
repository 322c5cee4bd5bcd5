package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

type resetCommand struct{ spec }

func (resetCommand) BooleanFlags() []string { return []string{"soft", "mixed", "hard", "q", "quiet"} }

// headSteps parses HEAD, HEAD~N, HEAD^ and HEAD^^ into a step count.
func headSteps(ref string) (int, bool) {
	if ref == "HEAD" || ref == "@" {
		return 0, true
	}
	if n, ok := strings.CutPrefix(ref, "HEAD~"); ok {
		if n == "" {
			return 1, true
		}
		steps, err := strconv.Atoi(n)
		return steps, err == nil && steps >= 0
	}
	if carets, ok := strings.CutPrefix(ref, "HEAD"); ok && carets != "" && strings.Trim(carets, "^") == "" {
		return len(carets), true
	}
	return 0, false
}

func (resetCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}

	mode := types.ResetMixed
	switch {
	case args.Has("hard"):
		mode = types.ResetHard
	case args.Has("soft"):
		mode = types.ResetSoft
	}

	target, paths := "HEAD", args.Positional
	if len(paths) > 0 {
		if _, isHead := headSteps(paths[0]); isHead {
			target, paths = paths[0], paths[1:]
		} else if !ctx.FS.Exists(ctx.Resolve(paths[0])) && !tracksPath(ctx, paths[0]) {
			// Commit ids and branch names are outside what reset supports here
			return append(notImplemented("git reset "+paths[0]), "hint: use HEAD or HEAD~N as the target")
		}
	}

	// Path form only touches the staging area
	if len(paths) > 0 {
		if mode != types.ResetMixed {
			return []string{fmt.Sprintf("fatal: Cannot do %s reset with paths.", mode)}
		}
		keys := make([]string, 0, len(paths))
		for _, p := range paths {
			keys = append(keys, repoPath(ctx, p))
		}
		ctx.Repo.ResetPaths(keys)
		return unstagedAfterReset(ctx)
	}

	steps, _ := headSteps(target)
	if !ctx.Repo.ResetHead(steps, mode) {
		return []string{fmt.Sprintf("fatal: ambiguous argument '%s': unknown revision or path not in the working tree.", target)}
	}

	switch mode {
	case types.ResetHard:
		head, _ := ctx.Repo.GetCommit("HEAD")
		if head.ID == "" {
			return []string{}
		}
		return []string{fmt.Sprintf("HEAD is now at %s %s", head.ID, head.Subject())}
	case types.ResetSoft:
		return []string{}
	}
	return unstagedAfterReset(ctx)
}

func tracksPath(ctx *Context, p string) bool {
	_, known := ctx.Repo.GetStatus()[repoPath(ctx, p)]
	return known
}

func unstagedAfterReset(ctx *Context) []string {
	status := ctx.Repo.GetStatus()
	lines := []string{}
	for _, p := range plumbing.PathsWithStatus(status, types.ModifiedStatus, types.DeletedStatus) {
		code := "M"
		if status[p] == types.DeletedStatus {
			code = "D"
		}
		lines = append(lines, code+"\t"+p)
	}
	if len(lines) == 0 {
		return lines
	}
	return append([]string{"Unstaged changes after reset:"}, lines...)
}

type restoreCommand struct{ spec }

func (restoreCommand) BooleanFlags() []string { return []string{"staged", "S", "worktree", "W"} }

func (restoreCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("fatal: you must specify path(s) to restore")
	}
	return valid()
}

func (restoreCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	staged := args.Has("staged", "S")
	status := ctx.Repo.GetStatus()

	lines := []string{}
	for _, p := range args.Positional {
		target := ctx.Resolve(p)

		// A directory expands to the paths below it that have something to restore
		var keys []string
		if ctx.FS.IsDirectory(target) || p == "." {
			want := []types.FileStatus{types.ModifiedStatus, types.DeletedStatus}
			if staged {
				want = []types.FileStatus{types.StagedStatus}
			}
			prefix := repoPath(ctx, p)
			for _, k := range plumbing.PathsWithStatus(status, want...) {
				if prefix == "" || k == prefix || strings.HasPrefix(k, prefix+"/") {
					keys = append(keys, k)
				}
			}
		} else {
			keys = []string{repoPath(ctx, p)}
		}

		for _, k := range keys {
			var ok bool
			if staged {
				ok = ctx.Repo.UnstageFile(k)
			} else {
				ok = ctx.Repo.RestoreFile(k)
			}
			if !ok && len(keys) == 1 && !ctx.FS.IsDirectory(target) {
				lines = append(lines, fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", p))
			}
		}
	}
	return lines
}

type revertCommand struct{ spec }

func (revertCommand) BooleanFlags() []string { return []string{"no-edit", "abort", "continue"} }

func (revertCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 && !args.Has("abort", "continue") {
		return invalid("usage: git revert <commit>")
	}
	return valid()
}

func (revertCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("abort", "continue") {
		return []string{"error: no cherry-pick or revert in progress"}
	}
	c, ok := ctx.Repo.GetCommit(args.Positional[0])
	if !ok {
		return []string{fmt.Sprintf("fatal: bad revision '%s'", args.Positional[0])}
	}
	return []string{
		fmt.Sprintf("Reverting %s \"%s\"", c.ID, c.Subject()),
		fmt.Sprintf("git revert %s; no commit was created.", constants.NotImplemented),
	}
}

type rebaseCommand struct{ spec }

func (rebaseCommand) BooleanFlags() []string {
	return []string{"i", "interactive", "abort", "continue", "skip"}
}

func (rebaseCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}

	// -i may come before or after the upstream, so look at the raw tokens
	for _, tok := range args.Raw {
		if tok == "-i" || tok == "--interactive" {
			return notImplemented("Interactive rebase")
		}
	}
	if args.Has("abort", "continue", "skip") {
		return []string{"fatal: No rebase in progress?"}
	}
	if len(args.Positional) == 0 {
		return []string{"fatal: There is no tracking information for the current branch."}
	}

	upstream := args.Positional[0]
	current := ctx.Repo.GetCurrentBranch()
	if !ctx.Repo.HasBranch(upstream) {
		if _, ok := ctx.Repo.GetCommit(upstream); !ok {
			return []string{fmt.Sprintf("fatal: invalid upstream '%s'", upstream)}
		}
		return notImplemented("Rebasing onto a commit")
	}
	if commits, _ := ctx.Repo.MergePreview(upstream); upstream == current || len(commits) == 0 {
		return []string{fmt.Sprintf("Current branch %s is up to date.", current)}
	}
	return []string{fmt.Sprintf("Successfully rebased and updated refs/heads/%s.", current)}
}

type cherryPickCommand struct{ spec }

func (cherryPickCommand) BooleanFlags() []string {
	return []string{"abort", "continue", "n", "no-commit"}
}

func (cherryPickCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 && !args.Has("abort", "continue") {
		return invalid("usage: git cherry-pick <commit>...")
	}
	return valid()
}

func (cherryPickCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("abort", "continue") {
		return []string{"error: no cherry-pick or revert in progress"}
	}

	lines := []string{}
	for _, ref := range args.Positional {
		c, ok := ctx.Repo.GetCommit(ref)
		if !ok {
			return append(lines, fmt.Sprintf("fatal: bad revision '%s'", ref))
		}
		lines = append(lines, fmt.Sprintf("Applying %s \"%s\" onto %s", c.ID, c.Subject(), ctx.Repo.GetCurrentBranch()))
	}
	return append(lines, fmt.Sprintf("git cherry-pick %s; no commit was created.", constants.NotImplemented))
}

type stashCommand struct{ spec }

func (stashCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	sub := "push"
	if len(args.Positional) > 0 {
		sub = args.Positional[0]
	}

	switch sub {
	case "push", "save":
		if !ctx.Repo.Stash() {
			return []string{"No local changes to save"}
		}
		top := ctx.Repo.StashList()[0]
		return []string{"Saved working directory and index state " + strings.TrimPrefix(top, "stash@{0}: ")}
	case "pop":
		if !ctx.Repo.StashPop() {
			return []string{"No stash entries found."}
		}
		return []string{"Dropped refs/stash@{0}"}
	case "drop":
		if !ctx.Repo.StashDrop() {
			return []string{"No stash entries found."}
		}
		return []string{"Dropped refs/stash@{0}"}
	case "list":
		return ctx.Repo.StashList()
	}
	return []string{fmt.Sprintf("error: unknown subcommand: %s", sub)}
}
