package levels

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/porcelain"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

func TestRequirementSatisfiedBy(t *testing.T) {
	tests := []struct {
		name    string
		req     Requirement
		command string
		tokens  []string
		want    bool
	}{
		{"exact command", Requirement{Command: "git init"}, "git init", nil, true},
		{"other command", Requirement{Command: "git init"}, "git status", nil, false},
		{"any needs one arg", Requirement{Command: "git add", RequiresArgs: []string{"any"}}, "git add", nil, false},
		{"any with arg", Requirement{Command: "git add", RequiresArgs: []string{"any"}}, "git add", []string{"."}, true},
		{"literal flag", Requirement{Command: "git commit", RequiresArgs: []string{"-m"}}, "git commit", []string{"-m", "msg"}, true},
		{"combined short flag", Requirement{Command: "git commit", RequiresArgs: []string{"-m"}}, "git commit", []string{"-am", "msg"}, true},
		{"long flag with value", Requirement{Command: "git commit", RequiresArgs: []string{"--message"}}, "git commit", []string{"--message=x"}, true},
		{"missing flag", Requirement{Command: "git checkout", RequiresArgs: []string{"-b"}}, "git checkout", []string{"main"}, false},
		{"all must appear", Requirement{Command: "git push", RequiresArgs: []string{"origin", "main"}}, "git push", []string{"origin"}, false},
		{"positional literal", Requirement{Command: "git stash", RequiresArgs: []string{"pop"}}, "git stash", []string{"pop"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.SatisfiedBy(tt.command, tt.tokens); got != tt.want {
				t.Errorf("SatisfiedBy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultCatalog(t *testing.T) {
	levels := DefaultCatalog()
	if len(levels) < 5 {
		t.Fatalf("only %d built-in levels", len(levels))
	}
	if levels[0].Requirements[0].Command != "git init" {
		t.Errorf("first level requires %q", levels[0].Requirements[0].Command)
	}
}

func TestParseCatalogErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "levels: []",
		"duplicate":    "levels:\n  - id: 1\n    requirements: [{command: ls}]\n  - id: 1\n    requirements: [{command: ls}]\n",
		"no reqs":      "levels:\n  - id: 1\n",
		"invalid yaml": "levels: [",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseCatalog([]byte(data)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func testLevels() []Level {
	return []Level{
		{ID: 1, Requirements: []Requirement{{Command: "git init"}}},
		{ID: 2, Requirements: []Requirement{
			{Command: "git add", RequiresArgs: []string{"any"}},
			{Command: "git commit", RequiresArgs: []string{"-m"}},
		}},
	}
}

func TestManagerFlow(t *testing.T) {
	m := NewManager(testLevels(), nil)

	if m.CheckCommand("git status", nil) {
		t.Error("git status should not count")
	}
	if !m.CheckCommand("git init", nil) || !m.IsLevelComplete() {
		t.Fatal("git init should complete level 1")
	}
	if m.CheckCommand("git init", nil) {
		t.Error("a complete level should not count more commands")
	}

	lvl, ok := m.Next()
	if !ok || lvl.ID != 2 {
		t.Fatalf("Next = %v, %v", lvl.ID, ok)
	}

	// Requirements are met in order
	if m.CheckCommand("git commit", []string{"-m", "x"}) {
		t.Error("commit before add should not count")
	}
	m.CheckCommand("git add", []string{"."})
	if got := m.Remaining(); len(got) != 1 || got[0].Command != "git commit" {
		t.Errorf("Remaining = %v", got)
	}
	m.CheckCommand("git commit", []string{"-m", "x"})
	if !m.IsLevelComplete() {
		t.Error("level 2 should be complete")
	}

	if _, ok := m.Next(); ok {
		t.Error("Next past the last level should fail")
	}
	m.Reset()
	if m.Current().ID != 1 || m.IsLevelComplete() {
		t.Error("Reset should return to a fresh level 1")
	}
}

func TestManagerGoto(t *testing.T) {
	m := NewManager(testLevels(), nil)
	if lvl, err := m.Goto(2); err != nil || lvl.ID != 2 {
		t.Fatalf("Goto(2) = %v, %v", lvl.ID, err)
	}
	if _, err := m.Goto(9); !errors.Is(err, ErrUnknownLevel) {
		t.Errorf("Goto(9) err = %v", err)
	}
}

func TestProgressManagerMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	pm, err := NewProgressManager(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := pm.MarkCompleted(3); err != nil {
		t.Fatal(err)
	}
	if err := pm.MarkCompleted(1); err != nil {
		t.Fatal(err)
	}
	if err := pm.MarkCompleted(3); err != nil {
		t.Fatal(err)
	}
	if err := pm.SetCurrent(4); err != nil {
		t.Fatal(err)
	}

	// A second manager sees what the first saved
	again, err := NewProgressManager(store, nil)
	if err != nil {
		t.Fatal(err)
	}
	got := again.Progress()
	if got.CurrentLevel != 4 || !reflect.DeepEqual(got.CompletedLevels, []int{1, 3}) {
		t.Errorf("Progress = %+v", got)
	}
	if !again.IsCompleted(3) || again.IsCompleted(2) {
		t.Error("IsCompleted answered wrong")
	}

	if err := again.Reset(); err != nil {
		t.Fatal(err)
	}
	if p, _ := store.Load(); p.CurrentLevel != 0 || len(p.CompletedLevels) != 0 {
		t.Errorf("after reset store holds %+v", p)
	}
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "progress.yaml")
	store := NewFileStore(path)

	if p, err := store.Load(); err != nil || p != nil {
		t.Fatalf("Load on missing file = %v, %v", p, err)
	}
	want := &UserProgress{CurrentLevel: 2, CompletedLevels: []int{1}}
	if err := store.Save(want); err != nil {
		t.Fatal(err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load = %+v, want %+v", got, want)
	}
}

func TestSetupApply(t *testing.T) {
	fs := plumbing.NewFileSystem()
	repo := porcelain.New(fs)
	Setup{
		Init:     true,
		Files:    map[string]string{"README.md": "# hi\n", "src/app.js": "x\n"},
		Commit:   "Initial commit",
		Branches: []string{"feature"},
		Staged:   map[string]string{"notes.txt": "n\n"},
		Modified: map[string]string{"README.md": "# changed\n"},
	}.Apply(fs, repo)

	status := repo.GetStatus()
	want := types.GitStatus{
		"README.md":  types.ModifiedStatus,
		"src/app.js": types.CommittedStatus,
		"notes.txt":  types.StagedStatus,
	}
	if !reflect.DeepEqual(status, want) {
		t.Errorf("status = %v, want %v", status, want)
	}
	if !repo.HasBranch("feature") || len(repo.GetCommitHistory()) != 1 {
		t.Error("setup did not create the commit and branch")
	}
}

func TestSetupWithoutInit(t *testing.T) {
	fs := plumbing.NewFileSystem()
	repo := porcelain.New(fs)
	Setup{Files: map[string]string{"README.md": "x"}}.Apply(fs, repo)
	if repo.IsInitialized() || !fs.IsFile("/README.md") {
		t.Error("plain setup should only write files")
	}
}
