package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

type lsCommand struct{ spec }

func (lsCommand) BooleanFlags() []string { return []string{"a", "l", "la", "all"} }

func (lsCommand) Execute(args Args, ctx *Context) []string {
	targets := args.Positional
	if len(targets) == 0 {
		targets = []string{"."}
	}
	long := args.Has("l", "la")
	showHidden := args.Has("a", "all", "la")

	lines := []string{}
	for _, t := range targets {
		p := ctx.Resolve(t)
		item, ok := ctx.FS.Stat(p)
		if !ok {
			lines = append(lines, fmt.Sprintf("ls: cannot access '%s': No such file or directory", t))
			continue
		}
		if !item.IsDir() {
			if long {
				lines = append(lines, longEntry(item, t))
			} else {
				lines = append(lines, t)
			}
			continue
		}
		children, _ := ctx.FS.GetDirectoryContents(p)
		if len(targets) > 1 {
			lines = append(lines, t+":")
		}
		names := make([]string, 0, len(children))
		for name, child := range children {
			if strings.HasPrefix(name, ".") && !showHidden {
				continue
			}
			if child.IsDir() {
				name += "/"
			}
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if long {
				name = strings.TrimSuffix(name, "/")
				lines = append(lines, longEntry(children[name], name))
				continue
			}
			lines = append(lines, name)
		}
	}
	return lines
}

// longEntry renders one 'ls -l' line. Sizes of directories are reported as a fixed block.
func longEntry(item *types.FileSystemItem, name string) string {
	mode, size := "-rw-r--r--", len(item.Content)
	if item.IsDir() {
		mode, size = "drwxr-xr-x", 4096
	}
	return fmt.Sprintf("%s %5d %s %s", mode, size, item.LastModified.Format("Jan _2 15:04"), name)
}

type cdCommand struct{ spec }

func (cdCommand) Execute(args Args, ctx *Context) []string {
	target := constants.RootDir
	if len(args.Positional) > 0 {
		target = args.Positional[0]
	}
	p := ctx.Resolve(target)
	switch {
	case ctx.FS.IsFile(p):
		return []string{"cd: not a directory: " + target}
	case !ctx.FS.IsDirectory(p):
		return []string{"cd: no such file or directory: " + target}
	}
	ctx.SetCurrentDir(p)
	return []string{}
}

type pwdCommand struct{ spec }

func (pwdCommand) Execute(_ Args, ctx *Context) []string {
	return []string{ctx.CurrentDir}
}

type catCommand struct{ spec }

func (catCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("usage: cat <file>...")
	}
	return valid()
}

func (catCommand) Execute(args Args, ctx *Context) []string {
	lines := []string{}
	for _, t := range args.Positional {
		p := ctx.Resolve(t)
		if ctx.FS.IsDirectory(p) {
			lines = append(lines, fmt.Sprintf("cat: %s: Is a directory", t))
			continue
		}
		content, ok := ctx.FS.GetFileContents(p)
		if !ok {
			lines = append(lines, fmt.Sprintf("cat: %s: No such file or directory", t))
			continue
		}
		lines = append(lines, splitLines(content)...)
	}
	return lines
}

type mkdirCommand struct{ spec }

func (mkdirCommand) BooleanFlags() []string { return []string{"p", "parents"} }

func (mkdirCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("mkdir: missing operand")
	}
	return valid()
}

func (mkdirCommand) Execute(args Args, ctx *Context) []string {
	parents := args.Has("p", "parents")
	lines := []string{}
	for _, t := range args.Positional {
		p := ctx.Resolve(t)
		parent, _ := utils.ParentAndName(p)
		switch {
		case ctx.FS.IsDirectory(p) && parents:
			continue
		case ctx.FS.Exists(p):
			lines = append(lines, fmt.Sprintf("mkdir: cannot create directory '%s': File exists", t))
		case !parents && !ctx.FS.IsDirectory(parent):
			lines = append(lines, fmt.Sprintf("mkdir: cannot create directory '%s': No such file or directory", t))
		case !ctx.FS.Mkdir(p):
			lines = append(lines, fmt.Sprintf("mkdir: cannot create directory '%s': Not a directory", t))
		}
	}
	return lines
}

type touchCommand struct{ spec }

func (touchCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("touch: missing file operand")
	}
	return valid()
}

func (touchCommand) Execute(args Args, ctx *Context) []string {
	lines := []string{}
	for _, t := range args.Positional {
		p := ctx.Resolve(t)
		if ctx.FS.IsDirectory(p) {
			continue
		}
		content, _ := ctx.FS.GetFileContents(p)
		if !ctx.FS.WriteFile(p, content) {
			lines = append(lines, fmt.Sprintf("touch: cannot touch '%s': Not a directory", t))
			continue
		}
		ctx.Repo.RecordWorkingChange(p)
	}
	return lines
}

type rmCommand struct{ spec }

func (rmCommand) BooleanFlags() []string {
	return []string{"r", "R", "f", "rf", "fr", "recursive", "force"}
}

func (rmCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("rm: missing operand")
	}
	return valid()
}

func (rmCommand) Execute(args Args, ctx *Context) []string {
	recursive := args.Has("r", "R", "recursive")
	force := args.Has("f", "force")

	lines := []string{}
	for _, t := range args.Positional {
		p := ctx.Resolve(t)
		key := utils.NormalizePath(p)
		switch {
		case key == "" || key == constants.GitDir || strings.HasPrefix(key, constants.GitDir+"/"):
			lines = append(lines, fmt.Sprintf("rm: refusing to remove '%s'", t))
		case ctx.FS.IsDirectory(p) && !recursive:
			lines = append(lines, fmt.Sprintf("rm: cannot remove '%s': Is a directory", t))
		case ctx.FS.IsDirectory(p):
			for _, removed := range plumbing.RemoveAll(ctx.FS, p) {
				ctx.Repo.RecordWorkingChange(removed)
			}
			if strings.HasPrefix(ctx.CurrentDir+"/", p+"/") {
				parent, _ := utils.ParentAndName(p)
				ctx.SetCurrentDir(parent)
			}
		case !ctx.FS.Exists(p):
			if !force {
				lines = append(lines, fmt.Sprintf("rm: cannot remove '%s': No such file or directory", t))
			}
		default:
			ctx.FS.Delete(p)
			ctx.Repo.RecordWorkingChange(p)
		}
	}
	return lines
}

type nanoCommand struct{ spec }

func (nanoCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("usage: nano <file> [content]")
	}
	return valid()
}

func (nanoCommand) Execute(args Args, ctx *Context) []string {
	name := args.Positional[0]
	p := ctx.Resolve(name)
	if ctx.FS.IsDirectory(p) {
		return []string{fmt.Sprintf("nano: %s: Is a directory", name)}
	}
	save := func(content string) {
		if ctx.FS.WriteFile(p, content) {
			ctx.Repo.RecordWorkingChange(p)
		}
	}

	// Inline content replaces the file without opening an editor
	if len(args.Positional) > 1 {
		content := joinText(args.Positional[1:])
		if !ctx.FS.WriteFile(p, content+"\n") {
			return []string{fmt.Sprintf("nano: cannot write '%s'", name)}
		}
		ctx.Repo.RecordWorkingChange(p)
		return []string{}
	}

	if ctx.OpenEditor == nil {
		return []string{"nano: no editor attached; use 'nano <file> <content>' or 'echo <text> > <file>'"}
	}
	current, _ := ctx.FS.GetFileContents(p)
	ctx.OpenEditor(p, current, save)
	return []string{fmt.Sprintf("Editing %s", name)}
}

type echoCommand struct{ spec }

func (echoCommand) Execute(args Args, ctx *Context) []string {
	text, target, appendMode := []string{}, "", false
	for i := 0; i < len(args.Raw); i++ {
		tok := args.Raw[i]
		switch {
		case tok == ">" || tok == ">>":
			appendMode = tok == ">>"
			if i+1 < len(args.Raw) {
				target = args.Raw[i+1]
			}
			i = len(args.Raw)
		case strings.HasPrefix(tok, ">>"):
			appendMode, target = true, tok[2:]
			i = len(args.Raw)
		case strings.HasPrefix(tok, ">"):
			target = tok[1:]
			i = len(args.Raw)
		default:
			text = append(text, tok)
		}
	}
	out := unquote(strings.Join(text, " "))

	if target == "" {
		return []string{out}
	}
	p := ctx.Resolve(target)
	if ctx.FS.IsDirectory(p) {
		return []string{fmt.Sprintf("echo: %s: Is a directory", target)}
	}
	content := out + "\n"
	if appendMode {
		existing, _ := ctx.FS.GetFileContents(p)
		content = existing + content
	}
	if !ctx.FS.WriteFile(p, content) {
		return []string{fmt.Sprintf("echo: %s: No such file or directory", target)}
	}
	ctx.Repo.RecordWorkingChange(p)
	return []string{}
}

type helpCommand struct{ spec }

func (helpCommand) Execute(args Args, ctx *Context) []string {
	if ctx.registry == nil {
		return []string{}
	}

	if len(args.Positional) > 0 {
		name := strings.ToLower(strings.Join(args.Positional, " "))
		c, ok := ctx.registry.Lookup(name)
		if !ok {
			return []string{fmt.Sprintf("help: no help topics match '%s'", name)}
		}
		lines := []string{c.Name() + " - " + c.Description(), "", "Usage: " + c.Usage()}
		if len(c.Examples()) > 0 {
			lines = append(lines, "", "Examples:")
			for _, e := range c.Examples() {
				lines = append(lines, "  "+e)
			}
		}
		return lines
	}

	gitLines, shellLines := []string{}, []string{}
	for _, c := range ctx.registry.Commands() {
		line := fmt.Sprintf("  %-18s %s", c.Name(), c.Description())
		if strings.HasPrefix(c.Name(), "git ") {
			gitLines = append(gitLines, line)
		} else {
			shellLines = append(shellLines, line)
		}
	}
	lines := append([]string{"Git commands:"}, gitLines...)
	lines = append(lines, "", "Terminal commands:")
	lines = append(lines, shellLines...)
	return append(lines, "", "Type 'help <command>' for details.")
}

type clearCommand struct{ spec }

func (clearCommand) Execute(_ Args, ctx *Context) []string {
	if ctx.ClearScreen != nil {
		ctx.ClearScreen()
	}
	return []string{}
}

type nextCommand struct{ spec }

func (nextCommand) Execute(_ Args, ctx *Context) []string {
	if ctx.NextLevel == nil {
		return []string{"There is no level to advance to."}
	}
	return ctx.NextLevel()
}
