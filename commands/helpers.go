package commands

import (
	"fmt"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// nullID stands for a missing blob in diff headers.
var nullID = strings.Repeat("0", constants.ShortIDLength)

// notARepo is the answer of every git command that needs 'git init' first.
func notARepo(ctx *Context) ([]string, bool) {
	if ctx.Repo.IsInitialized() {
		return nil, false
	}
	return []string{constants.NotInitialized}, true
}

// notImplemented words a deliberate simulation boundary.
func notImplemented(what string) []string {
	return []string{fmt.Sprintf("%s %s", what, constants.NotImplemented)}
}

// repoPath resolves a user path to the status map key.
func repoPath(ctx *Context, p string) string {
	return utils.NormalizePath(ctx.Resolve(p))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

// splitLines turns file content into display lines. A single trailing newline does not add an empty line.
func splitLines(content string) []string {
	if content == "" {
		return []string{}
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}

// unquote strips one layer of matching quotes.
func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// joinText turns trailing tokens back into one value. A quoted value ends at its closing quote, anything else takes every token.
func joinText(tokens []string) string {
	if len(tokens) > 0 && tokens[0] != "" && (tokens[0][0] == '"' || tokens[0][0] == '\'') {
		return joinQuoted(tokens)
	}
	return strings.Join(tokens, " ")
}

// decorations returns the "(HEAD -> main, origin/main)" label for a commit id, or "".
func decorations(ctx *Context, id string) string {
	labels := []string{}
	current := ctx.Repo.GetCurrentBranch()
	if head, _ := ctx.Repo.GetBranchHead(current); head == id {
		labels = append(labels, "HEAD -> "+current)
	}
	for _, b := range ctx.Repo.GetBranches() {
		if b == current {
			continue
		}
		if head, _ := ctx.Repo.GetBranchHead(b); head == id {
			labels = append(labels, b)
		}
	}
	for _, remote := range utils.SortedContentKeys(ctx.Repo.GetRemotes()) {
		for _, b := range ctx.Repo.GetBranches() {
			if head, ok := ctx.Repo.RemoteHead(remote, b); ok && head == id {
				labels = append(labels, remote+"/"+b)
			}
		}
	}
	if len(labels) == 0 {
		return ""
	}
	return " (" + strings.Join(labels, ", ") + ")"
}

// commitHeader prints a commit the way 'git log' and 'git show' start.
func commitHeader(ctx *Context, c types.Commit) []string {
	lines := []string{
		"commit " + c.ID + decorations(ctx, c.ID),
	}
	if c.Author != "" {
		lines = append(lines, "Author: "+c.Author)
	}
	lines = append(lines, "Date:   "+c.Timestamp.Format("Mon Jan 2 15:04:05 2006 -0700"), "")
	for _, l := range strings.Split(c.Message, "\n") {
		lines = append(lines, "    "+l)
	}
	return lines
}

// diffLines returns a unified-style listing of old against new: kept lines prefixed with a space, removals with '-', additions with '+'.
func diffLines(oldContent, newContent string) []string {
	a, b := splitLines(oldContent), splitLines(newContent)

	// Longest common subsequence table, filled from the back
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else {
				lcs[i][j] = max(lcs[i+1][j], lcs[i][j+1])
			}
		}
	}

	out := []string{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			out = append(out, " "+a[i])
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			out = append(out, "-"+a[i])
			i++
		default:
			out = append(out, "+"+b[j])
			j++
		}
	}
	for ; i < len(a); i++ {
		out = append(out, "-"+a[i])
	}
	for ; j < len(b); j++ {
		out = append(out, "+"+b[j])
	}
	return out
}

// fileDiff prints one file section of 'git diff'. A missing side is shown as /dev/null.
func fileDiff(path, oldContent string, oldExists bool, newContent string, newExists bool) []string {
	from, to := "a/"+path, "b/"+path
	lines := []string{"diff --git a/" + path + " b/" + path}
	oldID, newID, mode := plumbing.BlobID(oldContent), plumbing.BlobID(newContent), " 100644"
	switch {
	case !oldExists:
		lines = append(lines, "new file mode 100644")
		from, oldID, mode = "/dev/null", nullID, ""
	case !newExists:
		lines = append(lines, "deleted file mode 100644")
		to, newID, mode = "/dev/null", nullID, ""
	}
	lines = append(lines, "index "+oldID+".."+newID+mode, "--- "+from, "+++ "+to)
	return append(lines, diffLines(oldContent, newContent)...)
}
