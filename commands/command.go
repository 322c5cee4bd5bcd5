// Package commands implements the simulated terminal: a whitespace parser, a dispatch registry and one handler per git or shell command.
package commands

import (
	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/porcelain"
	"github.com/MikaStiebitz/Git-Gud/utils"
)

// Command is one entry of the registry.
type Command interface {
	Name() string
	Description() string
	Usage() string
	Examples() []string
	IncludeInTabCompletion() bool
	SupportsFileCompletion() bool
	Execute(args Args, ctx *Context) []string
}

// ValidationResult is what Validate reports.
type ValidationResult struct {
	IsValid      bool
	ErrorMessage string
}

// Validator is implemented by commands that check their arguments before Execute runs.
type Validator interface {
	Validate(args Args) ValidationResult
}

// BooleanFlagger is implemented by commands whose flags never take a value, so the parser does not swallow the next token.
type BooleanFlagger interface {
	BooleanFlags() []string
}

// Context is what a command may touch while it runs.
type Context struct {
	FS   *plumbing.FileSystem
	Repo *porcelain.Repository

	// CurrentDir is the absolute working directory of the terminal.
	CurrentDir string

	// OnChdir is called after cd changed CurrentDir.
	OnChdir func(dir string)

	// OpenEditor hands a file to the UI editor. save writes the edited content back.
	OpenEditor func(path, content string, save func(content string))

	// ClearScreen asks the UI to wipe the terminal.
	ClearScreen func()

	// NextLevel advances the learner and returns the lines to print.
	NextLevel func() []string

	registry *Registry
}

// NewContext bundles a filesystem and repository rooted at "/".
func NewContext(fs *plumbing.FileSystem, repo *porcelain.Repository) *Context {
	return &Context{FS: fs, Repo: repo, CurrentDir: "/"}
}

// SetCurrentDir changes the working directory and notifies the UI.
func (c *Context) SetCurrentDir(dir string) {
	c.CurrentDir = utils.CleanAbs(dir)
	if c.OnChdir != nil {
		c.OnChdir(c.CurrentDir)
	}
}

// Resolve turns a user-typed path into an absolute one.
func (c *Context) Resolve(p string) string {
	return utils.ResolvePath(p, c.CurrentDir)
}

// spec carries the static metadata every command shares.
type spec struct {
	name        string
	description string
	usage       string
	examples    []string
	hidden      bool
	files       bool
}

func (s spec) Name() string                 { return s.name }
func (s spec) Description() string          { return s.description }
func (s spec) Usage() string                { return s.usage }
func (s spec) Examples() []string           { return s.examples }
func (s spec) IncludeInTabCompletion() bool { return !s.hidden }
func (s spec) SupportsFileCompletion() bool { return s.files }

func valid() ValidationResult {
	return ValidationResult{IsValid: true}
}

func invalid(msg string) ValidationResult {
	return ValidationResult{IsValid: false, ErrorMessage: msg}
}
