// Package levels holds the lesson catalog, tracks which objective a learner is on and persists completed levels through a Store.
package levels

import (
	"strings"
)

// anyArgs is the requirement sentinel for "at least one argument".
const anyArgs = "any"

// Requirement is one command a level expects the learner to run.
type Requirement struct {
	Command      string   `yaml:"command" json:"command"`
	RequiresArgs []string `yaml:"requiresArgs,omitempty" json:"requiresArgs,omitempty"`
}

// SatisfiedBy reports whether command with the raw argument tokens meets the requirement.
// Every listed argument must appear; "any" only needs one token of any kind.
func (r Requirement) SatisfiedBy(command string, tokens []string) bool {
	if !strings.EqualFold(r.Command, command) {
		return false
	}
	for _, want := range r.RequiresArgs {
		if want == anyArgs {
			if len(tokens) == 0 {
				return false
			}
			continue
		}
		if !hasToken(tokens, want) {
			return false
		}
	}
	return true
}

// hasToken matches want literally, or as one letter of a combined short flag (-m inside -am).
func hasToken(tokens []string, want string) bool {
	for _, tok := range tokens {
		if tok == want {
			return true
		}
		if v, ok := strings.CutPrefix(tok, want+"="); ok && v != "" {
			return true
		}
		short := len(want) == 2 && want[0] == '-' && want[1] != '-'
		if short && len(tok) > 2 && tok[0] == '-' && tok[1] != '-' && strings.ContainsRune(tok[1:], rune(want[1])) {
			return true
		}
	}
	return false
}

// Setup is the working tree a level starts from.
type Setup struct {
	Init     bool              `yaml:"init,omitempty" json:"init,omitempty"`
	Files    map[string]string `yaml:"files,omitempty" json:"files,omitempty"`
	Commit   string            `yaml:"commit,omitempty" json:"commit,omitempty"`     // commits Files with this message
	Branches []string          `yaml:"branches,omitempty" json:"branches,omitempty"` // created after the commit
	Staged   map[string]string `yaml:"staged,omitempty" json:"staged,omitempty"`     // written and staged after the commit
	Modified map[string]string `yaml:"modified,omitempty" json:"modified,omitempty"` // overwritten after the commit
}

// Level is one lesson.
type Level struct {
	ID           int           `yaml:"id" json:"id"`
	Chapter      string        `yaml:"chapter" json:"chapter"`
	Title        string        `yaml:"title" json:"title"`
	Objective    string        `yaml:"objective" json:"objective"`
	Hint         string        `yaml:"hint,omitempty" json:"hint,omitempty"`
	Requirements []Requirement `yaml:"requirements" json:"requirements"`
	Setup        Setup         `yaml:"setup" json:"setup"`

	// KeepState continues from the previous level's repository instead of a fresh workspace when advancing with next.
	KeepState bool `yaml:"keepState,omitempty" json:"keepState,omitempty"`
}
