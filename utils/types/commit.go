package types

import "time"

// Commit is one entry of the simulated commit graph. Commits are never rewritten once recorded.
type Commit struct {
	ID        string            // short hex id, 7 characters
	Message   string            // commit message
	Timestamp time.Time         // creation time
	Files     []string          // paths staged when the commit was made
	Parent    string            // previous commit on the branch, empty for the first
	Branch    string            // branch the commit was created on
	Author    string            // "Name <email>" from .git/config
	Tree      map[string]string // branch files (path -> content) right after the commit
}

// Subject returns the first line of the commit message.
func (c Commit) Subject() string {
	for i := 0; i < len(c.Message); i++ {
		if c.Message[i] == '\n' {
			return c.Message[:i]
		}
	}
	return c.Message
}
