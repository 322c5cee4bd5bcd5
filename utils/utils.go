package utils

import (
	"sort"
	"strings"

	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// ResolvePath resolves target against the current directory cwd. Absolute targets pass through, '..' pops one segment and '.' is ignored.
func ResolvePath(target, cwd string) string {

	// Absolute paths pass through, only normalized
	if strings.HasPrefix(target, "/") {
		return CleanAbs(target)
	}

	// Start from the current directory segments
	segments := splitSegments(cwd)
	for _, part := range strings.Split(target, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, part)
		}
	}
	return "/" + strings.Join(segments, "/")
}

// CleanAbs returns p as an absolute '/'-delimited path without a trailing slash (root stays "/").
func CleanAbs(p string) string {
	segments := []string{}
	for _, part := range strings.Split(p, "/") {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(segments) > 0 {
				segments = segments[:len(segments)-1]
			}
		default:
			segments = append(segments, part)
		}
	}
	return "/" + strings.Join(segments, "/")
}

// NormalizePath turns a filesystem path into the key used by the status map (no leading '/').
func NormalizePath(p string) string {
	return strings.TrimPrefix(CleanAbs(p), "/")
}

// ParentAndName splits an absolute path into its parent directory and final segment.
func ParentAndName(p string) (string, string) {
	clean := CleanAbs(p)
	idx := strings.LastIndex(clean, "/")
	if idx <= 0 {
		return "/", clean[idx+1:]
	}
	return clean[:idx], clean[idx+1:]
}

func splitSegments(p string) []string {
	segments := []string{}
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}

// Sort based on keys
func SortedKeys(m types.GitStatus) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortedContentKeys returns the keys of a path -> content map in order.
func SortedContentKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
