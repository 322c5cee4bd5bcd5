package plumbing

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// minPrefixLen is the shortest id prefix accepted when resolving a commit.
const minPrefixLen = 4

// WriteCommit builds a new commit record. tree is copied so later branch edits do not leak into history.
func WriteCommit(id, message, branch, parent string, files []string, tree map[string]string, ts time.Time) types.Commit {
	treeCopy := make(map[string]string, len(tree))
	for k, v := range tree {
		treeCopy[k] = v
	}
	filesCopy := make([]string, len(files))
	copy(filesCopy, files)

	return types.Commit{
		ID:        id,
		Message:   message,
		Timestamp: ts,
		Files:     filesCopy,
		Parent:    parent,
		Branch:    branch,
		Tree:      treeCopy,
	}
}

// ResolveCommitish resolves HEAD, a branch name or an id prefix, optionally followed by ~N or ^ suffixes, to a commit id.
func ResolveCommitish(commitIsh, head string, branches map[string]string, commits map[string]types.Commit) (string, error) {

	// Split off the <base>[(^~)<suffix>]+ part
	idx := strings.IndexAny(commitIsh, "^~")
	base := commitIsh
	if idx != -1 {
		base = commitIsh[:idx]
	} else {
		idx = len(commitIsh)
	}

	var result string
	switch {
	case base == "HEAD" || base == "@":
		result = head
	case branches[base] != "":
		result = branches[base]
	default:
		id, err := matchPrefix(base, commits)
		if err != nil {
			return "", err
		}
		result = id
	}
	if result == "" {
		return "", fmt.Errorf("ambiguous argument '%s': unknown revision or path not in the working tree", commitIsh)
	}

	// Walk the suffixes
	for idx < len(commitIsh) {
		sign := commitIsh[idx]
		rest := commitIsh[idx+1:]
		numStr := rest
		if next := strings.IndexAny(rest, "^~"); next != -1 {
			numStr = rest[:next]
		}
		idx += 1 + len(numStr)

		num := 1
		if numStr != "" {
			n, err := strconv.Atoi(numStr)
			if err != nil || n < 0 {
				return "", fmt.Errorf("%s is not valid suffix after %c", numStr, sign)
			}
			num = n
		}
		if sign == '^' && num > 1 {
			// Simulated history never has merge parents
			return "", fmt.Errorf("invalid object name: %s", commitIsh)
		}

		for i := 0; i < num; i++ {
			commit, ok := commits[result]
			if !ok || commit.Parent == "" {
				return "", fmt.Errorf("invalid object name: %s", commitIsh)
			}
			result = commit.Parent
		}
	}
	return result, nil
}

// matchPrefix finds the single commit whose id starts with prefix.
func matchPrefix(prefix string, commits map[string]types.Commit) (string, error) {
	if _, ok := commits[prefix]; ok {
		return prefix, nil
	}
	if len(prefix) < minPrefixLen {
		return "", fmt.Errorf("ambiguous argument '%s': unknown revision or path not in the working tree", prefix)
	}

	found := ""
	for id := range commits {
		if strings.HasPrefix(id, prefix) {
			if found != "" {
				return "", fmt.Errorf("short object ID %s is ambiguous", prefix)
			}
			found = id
		}
	}
	if found == "" {
		return "", fmt.Errorf("ambiguous argument '%s': unknown revision or path not in the working tree", prefix)
	}
	return found, nil
}
