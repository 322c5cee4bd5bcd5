package commands

import (
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/porcelain"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

type initCommand struct{ spec }

func (initCommand) Execute(_ Args, ctx *Context) []string {
	if !ctx.Repo.Init() {
		return []string{"Reinitialized existing Git repository in /.git/"}
	}
	return []string{"Initialized empty Git repository in /.git/"}
}

type statusCommand struct{ spec }

func (statusCommand) BooleanFlags() []string { return []string{"s", "short", "b"} }

func (statusCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	report, _ := ctx.Repo.Report()
	if args.Has("s", "short") {
		return shortStatus(report)
	}

	lines := []string{"On branch " + report.Branch}
	if head, _ := ctx.Repo.GetBranchHead(report.Branch); head == "" {
		lines = append(lines, "", "No commits yet")
	} else if _, tracking := ctx.Repo.RemoteHead(constants.DefaultRemote, report.Branch); tracking {
		upstream := constants.DefaultRemote + "/" + report.Branch
		if ahead := len(ctx.Repo.UnpushedCommits(report.Branch)); ahead > 0 {
			lines = append(lines, fmt.Sprintf("Your branch is ahead of '%s' by %s.", upstream, plural(ahead, "commit")))
		} else {
			lines = append(lines, fmt.Sprintf("Your branch is up to date with '%s'.", upstream))
		}
	}

	if report.Clean() {
		return append(lines, constants.NothingToCommit)
	}

	if len(report.Staged) > 0 {
		lines = append(lines, "", "Changes to be committed:", `  (use "git restore --staged <file>..." to unstage)`)
		for _, c := range report.Staged {
			lines = append(lines, fmt.Sprintf("\t%-12s%s", string(c.Kind)+":", c.Path))
		}
	}
	if len(report.Modified) > 0 || len(report.Deleted) > 0 {
		lines = append(lines, "", "Changes not staged for commit:", `  (use "git add <file>..." to update what will be committed)`)
		for _, p := range report.Modified {
			lines = append(lines, fmt.Sprintf("\t%-12s%s", "modified:", p))
		}
		for _, p := range report.Deleted {
			lines = append(lines, fmt.Sprintf("\t%-12s%s", "deleted:", p))
		}
	}
	if len(report.Untracked) > 0 {
		lines = append(lines, "", "Untracked files:", `  (use "git add <file>..." to include in what will be committed)`)
		for _, p := range report.Untracked {
			lines = append(lines, "\t"+p)
		}
	}

	switch {
	case len(report.Staged) > 0:
	case len(report.Modified) > 0 || len(report.Deleted) > 0:
		lines = append(lines, "", `no changes added to commit (use "git add" and/or "git commit -a")`)
	default:
		lines = append(lines, "", `nothing added to commit but untracked files present (use "git add" to track)`)
	}
	return lines
}

func shortStatus(report porcelain.StatusReport) []string {
	lines := []string{}
	for _, c := range report.Staged {
		code := "M"
		switch c.Kind {
		case plumbing.NewFileChange:
			code = "A"
		case plumbing.DeletedChange:
			code = "D"
		}
		lines = append(lines, code+"  "+c.Path)
	}
	for _, p := range report.Modified {
		lines = append(lines, " M "+p)
	}
	for _, p := range report.Deleted {
		lines = append(lines, " D "+p)
	}
	for _, p := range report.Untracked {
		lines = append(lines, "?? "+p)
	}
	return lines
}

type addCommand struct{ spec }

func (addCommand) BooleanFlags() []string { return []string{"A", "all", "v", "verbose"} }

func (addCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 && !args.Has("A", "all") {
		return invalid("Nothing specified, nothing added. Maybe you wanted to say 'git add .'?")
	}
	return valid()
}

func (addCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("A", "all") {
		ctx.Repo.AddAll(ctx.Repo.ChangedPaths("/"))
		return []string{}
	}

	lines := []string{}
	for _, p := range args.Positional {
		target := ctx.Resolve(p)
		switch {
		case ctx.FS.IsDirectory(target):
			ctx.Repo.AddAll(ctx.Repo.ChangedPaths(target))
		case strings.ContainsAny(p, "*?["):
			matches := globChanged(ctx, target)
			if len(matches) == 0 {
				lines = append(lines, fmt.Sprintf("fatal: pathspec '%s' did not match any files", p))
				continue
			}
			ctx.Repo.AddAll(matches)
		case !ctx.Repo.AddFile(target):
			lines = append(lines, fmt.Sprintf("fatal: pathspec '%s' did not match any files", p))
		}
	}
	return lines
}

// globChanged returns the changed paths matching a shell pattern such as /src/*.txt.
func globChanged(ctx *Context, pattern string) []string {
	matches := []string{}
	for _, p := range ctx.Repo.ChangedPaths("/") {
		if ok, err := path.Match(pattern, "/"+p); err == nil && ok {
			matches = append(matches, p)
		}
	}
	return matches
}

type commitCommand struct{ spec }

func (commitCommand) BooleanFlags() []string { return []string{"a", "all", "amend", "no-edit"} }

// commitMessage finds the -m value in the raw tokens and rejoins a quoted message the tokenizer split apart.
func commitMessage(args Args) (string, bool) {
	for i, tok := range args.Raw {
		if v, ok := strings.CutPrefix(tok, "--message="); ok {
			return joinQuoted(append([]string{v}, args.Raw[i+1:]...)), true
		}
		short := strings.HasPrefix(tok, "-") && !strings.HasPrefix(tok, "--") && strings.HasSuffix(tok, "m")
		if tok == "--message" || short {
			if i+1 >= len(args.Raw) {
				return "", false
			}
			return joinQuoted(args.Raw[i+1:]), true
		}
	}
	return "", false
}

func (commitCommand) Validate(args Args) ValidationResult {
	if args.Has("amend") {
		return valid()
	}
	msg, ok := commitMessage(args)
	if !ok && args.Has("m", "message") {
		return invalid("error: switch `m' requires a value")
	}
	if !ok {
		return invalid("Aborting commit: please supply the message using -m \"<message>\".")
	}
	if strings.TrimSpace(msg) == "" {
		return invalid("Aborting commit due to empty commit message.")
	}
	return valid()
}

func (commitCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("amend") {
		return notImplemented("git commit --amend")
	}
	msg, _ := commitMessage(args)

	// -a stages every tracked change first
	if args.Has("a", "all") {
		status := ctx.Repo.GetStatus()
		ctx.Repo.AddAll(plumbing.PathsWithStatus(status, types.ModifiedStatus, types.DeletedStatus))
	}

	id, ok := ctx.Repo.Commit(msg)
	if !ok {
		report, _ := ctx.Repo.Report()
		lines := []string{"On branch " + report.Branch}
		switch {
		case len(report.Modified) > 0 || len(report.Deleted) > 0:
			return append(lines, `no changes added to commit (use "git add" and/or "git commit -a")`)
		case len(report.Untracked) > 0:
			return append(lines, `nothing added to commit but untracked files present (use "git add" to track)`)
		}
		return append(lines, constants.NothingToCommit)
	}

	c, _ := ctx.Repo.GetCommit(id)
	root := ""
	if c.Parent == "" {
		root = " (root-commit)"
	}
	return []string{
		fmt.Sprintf("[%s%s %s] %s", c.Branch, root, id, c.Subject()),
		fmt.Sprintf(" %s changed", plural(len(c.Files), "file")),
	}
}

type logCommand struct{ spec }

func (logCommand) BooleanFlags() []string { return []string{"oneline", "all", "graph"} }

func (logCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}

	branch := ctx.Repo.GetCurrentBranch()
	if len(args.Positional) > 0 {
		branch = args.Positional[0]
	}
	history, ok := ctx.Repo.GetBranchHistory(branch)
	if !ok {
		return []string{fmt.Sprintf("fatal: ambiguous argument '%s': unknown revision or path not in the working tree.", branch)}
	}
	if len(history) == 0 {
		return []string{fmt.Sprintf("fatal: your current branch '%s' does not have any commits yet", branch)}
	}

	if v, has := args.Value("n", "max-count"); has {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 && n < len(history) {
			history = history[:n]
		}
	}

	lines := []string{}
	for i, c := range history {
		if args.Has("oneline") {
			lines = append(lines, c.ID+decorations(ctx, c.ID)+" "+c.Subject())
			continue
		}
		if i > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, commitHeader(ctx, c)...)
	}
	return lines
}

type showCommand struct{ spec }

func (showCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	ref := "HEAD"
	if len(args.Positional) > 0 {
		ref = args.Positional[0]
	}
	c, ok := ctx.Repo.GetCommit(ref)
	if !ok {
		if ref == "HEAD" {
			return []string{"fatal: your current branch '" + ctx.Repo.GetCurrentBranch() + "' does not have any commits yet"}
		}
		return []string{fmt.Sprintf("fatal: ambiguous argument '%s': unknown revision or path not in the working tree.", ref)}
	}

	parentTree := map[string]string{}
	if c.Parent != "" {
		if parent, found := ctx.Repo.GetCommit(c.Parent); found {
			parentTree = parent.Tree
		}
	}

	lines := commitHeader(ctx, c)
	for _, p := range c.Files {
		before, hadBefore := parentTree[p]
		after, hasAfter := c.Tree[p]
		lines = append(lines, "")
		lines = append(lines, fileDiff(p, before, hadBefore, after, hasAfter)...)
	}
	return lines
}

type diffCommand struct{ spec }

func (diffCommand) BooleanFlags() []string { return []string{"staged", "cached", "stat"} }

func (diffCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	status := ctx.Repo.GetStatus()

	var paths []string
	if args.Has("staged", "cached") {
		paths = plumbing.StagedPaths(status)
	} else {
		paths = plumbing.PathsWithStatus(status, types.ModifiedStatus, types.DeletedStatus)
	}

	// Optional pathspecs narrow the listing
	if len(args.Positional) > 0 {
		wanted := map[string]bool{}
		for _, p := range args.Positional {
			wanted[repoPath(ctx, p)] = true
		}
		filtered := []string{}
		for _, p := range paths {
			if wanted[p] {
				filtered = append(filtered, p)
			}
		}
		paths = filtered
	}

	lines := []string{}
	for _, p := range paths {
		before, tracked := ctx.Repo.GetTrackedContent(p)
		after, exists := ctx.FS.GetFileContents("/" + p)
		if staged, recorded := ctx.Repo.GetStagedContent(p); recorded && args.Has("staged", "cached") {
			after, exists = staged, true
		}
		if args.Has("stat") {
			changed := 0
			for _, l := range diffLines(before, after) {
				if !strings.HasPrefix(l, " ") {
					changed++
				}
			}
			lines = append(lines, fmt.Sprintf(" %s | %d", p, changed))
			continue
		}
		lines = append(lines, fileDiff(p, before, tracked, after, exists)...)
	}
	if args.Has("stat") && len(paths) > 0 {
		lines = append(lines, fmt.Sprintf(" %s changed", plural(len(paths), "file")))
	}
	return lines
}
