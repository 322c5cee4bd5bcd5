package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// object is what a revision expression names: a commit, or a blob via <rev>:<path>.
type object struct {
	kind    string
	content string
}

// resolveObject resolves a commit-ish or a <rev>:<path> blob.
func resolveObject(ctx *Context, name string) (object, bool) {
	if rev, p, isBlob := strings.Cut(name, ":"); isBlob {
		if rev == "" {
			rev = "HEAD"
		}
		c, ok := ctx.Repo.GetCommit(rev)
		if !ok {
			return object{}, false
		}
		content, ok := c.Tree[strings.TrimPrefix(p, "/")]
		return object{kind: "blob", content: content}, ok
	}
	c, ok := ctx.Repo.GetCommit(name)
	if !ok {
		return object{}, false
	}
	return object{kind: "commit", content: strings.Join(commitObject(c), "\n") + "\n"}, true
}

// commitObject renders a commit the way 'git cat-file -p' prints it.
func commitObject(c types.Commit) []string {
	lines := []string{"tree " + plumbing.TreeID(c.Tree, "")}
	if c.Parent != "" {
		lines = append(lines, "parent "+c.Parent)
	}
	stamp := fmt.Sprintf("%d %s", c.Timestamp.Unix(), c.Timestamp.Format("-0700"))
	lines = append(lines, "author "+c.Author+" "+stamp, "committer "+c.Author+" "+stamp, "")
	return append(lines, strings.Split(c.Message, "\n")...)
}

type catFileCommand struct{ spec }

func (catFileCommand) BooleanFlags() []string { return []string{"t", "s", "p", "e"} }

func (catFileCommand) Validate(args Args) ValidationResult {
	// Exactly one mode and one object
	modes := 0
	for _, f := range []string{"t", "s", "p", "e"} {
		if args.Has(f) {
			modes++
		}
	}
	if modes != 1 || len(args.Positional) != 1 {
		return invalid("usage: git cat-file (-t | -s | -e | -p) <object>")
	}
	return valid()
}

func (catFileCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	name := args.Positional[0]
	obj, ok := resolveObject(ctx, name)
	switch {
	case args.Has("e"):
		if !ok {
			return []string{fmt.Sprintf("fatal: Not a valid object name %s", name)}
		}
		return []string{}
	case !ok:
		return []string{fmt.Sprintf("fatal: Not a valid object name %s", name)}
	case args.Has("t"):
		return []string{obj.kind}
	case args.Has("s"):
		return []string{fmt.Sprint(len(obj.content))}
	}
	return splitLines(obj.content)
}

type lsTreeCommand struct{ spec }

func (lsTreeCommand) BooleanFlags() []string { return []string{"r", "name-only", "d", "t"} }

func (lsTreeCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) != 1 {
		return invalid("usage: git ls-tree [-r] [-d] [-t] [--name-only] <tree-ish>")
	}
	return valid()
}

func (lsTreeCommand) Execute(args Args, ctx *Context) []string {
	if lines, stop := notARepo(ctx); stop {
		return lines
	}
	c, ok := ctx.Repo.GetCommit(args.Positional[0])
	if !ok {
		return []string{"fatal: Not a valid object name " + args.Positional[0]}
	}

	recursive, dirsOnly := args.Has("r"), args.Has("d")
	showTrees := args.Has("t") || dirsOnly

	// Collect entries: blobs by full path, trees for every directory on the way
	type entry struct{ mode, kind, id, name string }
	seen := map[string]bool{}
	entries := []entry{}
	for p, content := range c.Tree {
		parts := strings.Split(p, "/")
		for i := 1; i < len(parts); i++ {
			dir := strings.Join(parts[:i], "/")
			top := i == 1
			if seen[dir] || (!top && !recursive) || (recursive && !showTrees) {
				continue
			}
			seen[dir] = true
			entries = append(entries, entry{"040000", "tree", plumbing.TreeID(c.Tree, dir), dir})
		}
		if dirsOnly || (len(parts) > 1 && !recursive) {
			continue
		}
		entries = append(entries, entry{"100644", "blob", plumbing.BlobID(content), p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		if args.Has("name-only") {
			lines = append(lines, e.name)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s %s\t%s", e.mode, e.kind, e.id, e.name))
	}
	return lines
}

type hashObjectCommand struct{ spec }

func (hashObjectCommand) BooleanFlags() []string { return []string{"w"} }

func (hashObjectCommand) Validate(args Args) ValidationResult {
	if len(args.Positional) == 0 {
		return invalid("usage: git hash-object [-w] [-t <type>] <file>...")
	}
	if kind, ok := args.Value("t"); ok && kind != "blob" && kind != "commit" && kind != "tree" {
		return invalid(fmt.Sprintf("fatal: invalid object type \"%s\"", kind))
	}
	return valid()
}

func (hashObjectCommand) Execute(args Args, ctx *Context) []string {
	if args.Has("w") {
		return notImplemented("Writing objects with 'git hash-object -w'")
	}
	kind := "blob"
	if t, ok := args.Value("t"); ok {
		kind = t
	}
	lines := []string{}
	for _, name := range args.Positional {
		content, ok := ctx.FS.GetFileContents(ctx.Resolve(name))
		if !ok {
			return []string{fmt.Sprintf("fatal: could not open '%s' for reading: No such file or directory", name)}
		}
		lines = append(lines, plumbing.ObjectID(kind, content))
	}
	return lines
}
