package commands

import (
	"fmt"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

type gitMvCommand struct{ spec }

func (gitMvCommand) BooleanFlags() []string { return []string{"f", "force", "n"} }

func (gitMvCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) != 2 {
		return invalid("usage: git mv <source> <destination>")
	}
	return valid()
}

func (gitMvCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	src, dst := ctx.Resolve(args.Positional[0]), ctx.Resolve(args.Positional[1])
	if ctx.FS.IsDirectory(dst) {
		_, name := utils.ParentAndName(src)
		dst = utils.ResolvePath(name, dst)
	}
	where := fmt.Sprintf("source=%s, destination=%s", utils.NormalizePath(src), utils.NormalizePath(dst))

	st, known := ctx.Repo.GetStatus()[utils.NormalizePath(src)]
	switch {
	case !ctx.FS.IsFile(src):
		return []string{"fatal: bad source, " + where}
	case !known || st == types.UntrackedStatus:
		return []string{"fatal: not under version control, " + where}
	case ctx.FS.Exists(dst):
		return []string{"fatal: destination exists, " + where}
	case !ctx.Repo.MoveFile(src, dst):
		return []string{"fatal: renaming failed, " + where}
	}
	return []string{}
}

type gitRmCommand struct{ spec }

func (gitRmCommand) BooleanFlags() []string { return []string{"r", "f", "force", "cached", "q"} }

func (gitRmCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("usage: git rm [-r] <file>...")
	}
	return valid()
}

func (gitRmCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("cached") {
		return notImplemented("git rm --cached")
	}

	status := ctx.Repo.GetStatus()
	lines := []string{}
	for _, p := range args.Positional {
		target := ctx.Resolve(p)
		key := utils.NormalizePath(target)

		// Directories need -r and expand to the tracked paths below them
		paths := []string{key}
		if ctx.FS.IsDirectory(target) {
			if !args.Has("r") {
				return append(lines, fmt.Sprintf("fatal: not removing '%s' recursively without -r", p))
			}
			paths = paths[:0]
			for _, k := range utils.SortedKeys(status) {
				if strings.HasPrefix(k, key+"/") && status[k] != types.UntrackedStatus {
					paths = append(paths, k)
				}
			}
		}

		if len(paths) == 0 {
			return append(lines, fmt.Sprintf("fatal: pathspec '%s' did not match any files", p))
		}
		for _, k := range paths {
			if !ctx.Repo.RemoveFile(k) {
				return append(lines, fmt.Sprintf("fatal: pathspec '%s' did not match any files", p))
			}
			lines = append(lines, fmt.Sprintf("rm '%s'", k))
		}
	}
	return lines
}

type configCommand struct{ spec }

func (configCommand) BooleanFlags() []string {
	return []string{"global", "local", "system", "l", "list"}
}

func (configCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 && !args.Has("l", "list") {
		return invalid("usage: git config [--global] <name> [<value>]")
	}
	return valid()
}

func (configCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	if args.Has("l", "list") {
		return ctx.Repo.ListConfig()
	}

	key := strings.ToLower(args.Positional[0])
	if !strings.Contains(key, ".") {
		return []string{fmt.Sprintf("error: key does not contain a section: %s", args.Positional[0])}
	}
	if len(args.Positional) == 1 {
		if v, ok := ctx.Repo.GetConfig(key); ok {
			return []string{v}
		}
		return []string{}
	}

	value := joinText(args.Positional[1:])
	if !ctx.Repo.SetConfig(key, value) {
		return []string{fmt.Sprintf("error: could not set '%s'", key)}
	}
	return []string{}
}
