package commands

import (
	"reflect"
	"strings"
	"testing"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/porcelain"
)

// term is a registry plus context, the way a session drives them.
type term struct {
	t   *testing.T
	reg *Registry
	ctx *Context
}

func newTerm(t *testing.T) *term {
	t.Helper()
	fs := plumbing.NewFileSystem()
	return &term{
		t:   t,
		reg: NewDefaultRegistry(nil),
		ctx: NewContext(fs, porcelain.New(fs)),
	}
}

func (tm *term) run(line string) []string {
	tm.t.Helper()
	return tm.reg.Execute(line, tm.ctx)
}

// quiet runs line and fails the test when it printed anything.
func (tm *term) quiet(line string) {
	tm.t.Helper()
	if out := tm.run(line); len(out) != 0 {
		tm.t.Fatalf("%s: unexpected output %q", line, out)
	}
}

func contains(lines []string, want string) bool {
	for _, l := range lines {
		if strings.Contains(l, want) {
			return true
		}
	}
	return false
}

func TestRegistryUnknownCommand(t *testing.T) {
	tm := newTerm(t)

	res := tm.reg.Run("frobnicate now", tm.ctx)
	if res.Found {
		t.Error("expected Found = false")
	}
	if len(res.Lines) != 1 || !strings.HasPrefix(res.Lines[0], "Command not found: frobnicate") {
		t.Errorf("Lines = %q", res.Lines)
	}

	out := tm.run("git frobnicate")
	if len(out) != 1 || out[0] != "git: 'frobnicate' is not a git command. See 'git help'." {
		t.Errorf("git frobnicate = %q", out)
	}
}

func TestRegistryEmptyLine(t *testing.T) {
	tm := newTerm(t)
	if out := tm.run("   "); len(out) != 0 {
		t.Errorf("empty line printed %q", out)
	}
}

func TestRegistryAliases(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")

	res := tm.reg.Run("git st", tm.ctx)
	if res.Command != "git status" || !res.Found {
		t.Errorf("alias resolved to %q (found=%v)", res.Command, res.Found)
	}
	if len(res.Lines) == 0 || res.Lines[0] != "On branch main" {
		t.Errorf("Lines = %q", res.Lines)
	}
}

func TestRegistryValidationRunsBeforeExecute(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")

	out := tm.run("git add")
	if len(out) != 1 || !strings.HasPrefix(out[0], "Nothing specified, nothing added.") {
		t.Errorf("git add = %q", out)
	}
	out = tm.run("git commit")
	if len(out) != 1 || !strings.Contains(out[0], "-m") {
		t.Errorf("git commit = %q", out)
	}
}

type panicCommand struct{ spec }

func (panicCommand) Execute(Args, *Context) []string { panic("boom") }

func TestRegistryRecoversPanics(t *testing.T) {
	tm := newTerm(t)
	tm.reg.Register(panicCommand{spec{name: "boom"}})

	out := tm.run("boom")
	if len(out) != 1 || out[0] != "error: boom failed unexpectedly" {
		t.Errorf("boom = %q", out)
	}
}

func TestRegistryObserver(t *testing.T) {
	tm := newTerm(t)
	seen := map[string]bool{}
	tm.reg.SetObserver(func(command string, found bool) {
		seen[command] = found
	})

	tm.run("pwd")
	tm.run("nope")
	if found, ok := seen["pwd"]; !ok || !found {
		t.Error("pwd not observed as found")
	}
	if found, ok := seen["nope"]; !ok || found {
		t.Error("nope not observed as missing")
	}
}

func TestRegistryCommandsSorted(t *testing.T) {
	reg := NewDefaultRegistry(nil)
	cmds := reg.Commands()
	for i := 1; i < len(cmds); i++ {
		if cmds[i-1].Name() >= cmds[i].Name() {
			t.Fatalf("commands not sorted at %d: %q >= %q", i, cmds[i-1].Name(), cmds[i].Name())
		}
	}
	for _, name := range []string{"git init", "git cherry-pick", "ls", "nano", "next"} {
		if _, ok := reg.Lookup(name); !ok {
			t.Errorf("%q not registered", name)
		}
	}
}

func TestRegistryComplete(t *testing.T) {
	tm := newTerm(t)
	tm.quiet("mkdir src")
	tm.quiet("touch src/main.go")
	tm.quiet("touch readme.md")

	tests := []struct {
		input string
		want  []string
	}{
		{"pw", []string{"pwd"}},
		{"git co", []string{"git commit", "git config"}},
		{"cat re", []string{"cat readme.md"}},
		{"cd s", []string{"cd src/"}},
		{"cat src/m", []string{"cat src/main.go"}},
		{"git status x", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := tm.reg.Complete(tt.input, tm.ctx)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	tm := newTerm(t)

	out := tm.run("help")
	if len(out) == 0 || out[0] != "Git commands:" {
		t.Fatalf("help = %q", out)
	}
	if !contains(out, "git commit") || !contains(out, "Terminal commands:") {
		t.Error("help misses sections")
	}

	out = tm.run("help git commit")
	if len(out) == 0 || out[0] != "git commit - Record staged changes to the repository" {
		t.Errorf("help git commit = %q", out)
	}
}
