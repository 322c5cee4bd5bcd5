package commands

import (
	"reflect"
	"strings"
	"testing"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/constants"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

// committed returns a terminal with one commit of a.txt on main.
func committed(t *testing.T) *term {
	t.Helper()
	tm := newTerm(t)
	tm.run("git init")
	tm.quiet("echo hi > a.txt")
	tm.quiet("git add a.txt")
	tm.run(`git commit -m "first commit"`)
	return tm
}

func TestGitCommandsBeforeInit(t *testing.T) {
	tm := newTerm(t)
	for _, line := range []string{"git status", "git add a.txt", `git commit -m x`, "git branch", "git log", "git push"} {
		out := tm.run(line)
		if len(out) != 1 || out[0] != constants.NotInitialized {
			t.Errorf("%s = %q", line, out)
		}
	}
}

func TestGitInit(t *testing.T) {
	tm := newTerm(t)
	if out := tm.run("git init"); out[0] != "Initialized empty Git repository in /.git/" {
		t.Errorf("first init = %q", out)
	}
	if out := tm.run("git init"); out[0] != "Reinitialized existing Git repository in /.git/" {
		t.Errorf("second init = %q", out)
	}
	if out := tm.run("ls -a"); !reflect.DeepEqual(out, []string{".git/"}) {
		t.Errorf("ls -a = %q", out)
	}
}

func TestGitStatusLifecycle(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")
	tm.quiet("echo hi > a.txt")

	out := tm.run("git status")
	if out[0] != "On branch main" || !contains(out, "No commits yet") || !contains(out, "\ta.txt") {
		t.Errorf("untracked status = %q", out)
	}

	tm.quiet("git add a.txt")
	if out = tm.run("git status"); !contains(out, "\tnew file:   a.txt") {
		t.Errorf("staged status = %q", out)
	}

	tm.run(`git commit -m "first"`)
	if out = tm.run("git status"); !reflect.DeepEqual(out, []string{"On branch main", constants.NothingToCommit}) {
		t.Errorf("clean status = %q", out)
	}

	tm.quiet("echo bye > a.txt")
	tm.quiet("touch b.txt")
	if out = tm.run("git status -s"); !reflect.DeepEqual(out, []string{" M a.txt", "?? b.txt"}) {
		t.Errorf("short status = %q", out)
	}
	if out = tm.run("git status"); !contains(out, "\tmodified:   a.txt") || !contains(out, "no changes added to commit") {
		t.Errorf("modified status = %q", out)
	}
}

func TestGitAddErrorsAndDirectories(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")
	tm.quiet("mkdir -p src/app")
	tm.quiet("touch src/app/main.go")
	tm.quiet("touch src/util.go")
	tm.quiet("touch top.txt")

	out := tm.run("git add missing.txt")
	if len(out) != 1 || out[0] != "fatal: pathspec 'missing.txt' did not match any files" {
		t.Errorf("missing = %q", out)
	}

	tm.quiet("cd src")
	tm.quiet("git add .")
	status := tm.ctx.Repo.GetStatus()
	if status["src/app/main.go"] != types.StagedStatus || status["src/util.go"] != types.StagedStatus {
		t.Errorf("src not staged: %v", status)
	}
	if status["top.txt"] != types.UntrackedStatus {
		t.Errorf("top.txt = %q, want untracked", status["top.txt"])
	}

	tm.quiet("git add -A")
	if tm.ctx.Repo.GetStatus()["top.txt"] != types.StagedStatus {
		t.Error("git add -A missed top.txt")
	}
}

func TestGitAddGlob(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")
	tm.quiet("touch a.txt")
	tm.quiet("touch b.txt")
	tm.quiet("touch c.md")

	tm.quiet("git add *.txt")
	status := tm.ctx.Repo.GetStatus()
	if status["a.txt"] != types.StagedStatus || status["b.txt"] != types.StagedStatus || status["c.md"] != types.UntrackedStatus {
		t.Errorf("status = %v", status)
	}
}

func TestGitCommitQuotedMessage(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")
	tm.quiet("echo hi > a.txt")
	tm.quiet("git add a.txt")

	out := tm.run(`git commit -m "hello world"`)
	if len(out) != 2 || !strings.Contains(out[0], "(root-commit)") || !strings.HasSuffix(out[0], "] hello world") {
		t.Fatalf("commit = %q", out)
	}
	if out[1] != " 1 file changed" {
		t.Errorf("summary = %q", out[1])
	}
	if msg := tm.ctx.Repo.GetCommitHistory()[0].Message; msg != "hello world" {
		t.Errorf("stored message = %q", msg)
	}
}

func TestGitCommitAll(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo changed > a.txt")

	out := tm.run(`git commit -am "second one"`)
	if len(out) != 2 || !strings.HasSuffix(out[0], "] second one") || strings.Contains(out[0], "root-commit") {
		t.Fatalf("commit -am = %q", out)
	}
	if out = tm.run(`git commit -m "again"`); out[len(out)-1] != constants.NothingToCommit {
		t.Errorf("empty commit = %q", out)
	}
}

func TestGitCommitAmendNotImplemented(t *testing.T) {
	tm := committed(t)
	out := tm.run("git commit --amend")
	if !contains(out, constants.NotImplemented) {
		t.Errorf("amend = %q", out)
	}
}

func TestGitLogAndShow(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo more >> a.txt")
	tm.quiet("git add a.txt")
	tm.run(`git commit -m "second"`)

	history := tm.ctx.Repo.GetCommitHistory()
	out := tm.run("git log --oneline")
	want := []string{
		history[0].ID + " (HEAD -> main) second",
		history[1].ID + " first commit",
	}
	if !reflect.DeepEqual(out, want) {
		t.Errorf("log --oneline = %q, want %q", out, want)
	}

	if out = tm.run("git log -n 1"); !contains(out, "commit "+history[0].ID) || contains(out, history[1].ID) {
		t.Errorf("log -n 1 = %q", out)
	}

	out = tm.run("git show")
	if !contains(out, "diff --git a/a.txt b/a.txt") || !contains(out, "+more") {
		t.Errorf("show = %q", out)
	}
	if out = tm.run("git show nope"); !strings.HasPrefix(out[0], "fatal: ambiguous argument 'nope'") {
		t.Errorf("show nope = %q", out)
	}
}

func TestGitDiff(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo bye > a.txt")

	old, _ := tm.ctx.Repo.GetTrackedContent("a.txt")
	index := "index " + plumbing.BlobID(old) + ".." + plumbing.BlobID("bye\n") + " 100644"
	want := []string{"diff --git a/a.txt b/a.txt", index, "--- a/a.txt", "+++ b/a.txt", "-hi", "+bye"}
	if out := tm.run("git diff"); !reflect.DeepEqual(out, want) {
		t.Errorf("diff = %q, want %q", out, want)
	}
	if out := tm.run("git diff --staged"); len(out) != 0 {
		t.Errorf("diff --staged = %q", out)
	}

	tm.quiet("git add a.txt")
	if out := tm.run("git diff --staged"); !reflect.DeepEqual(out, want) {
		t.Errorf("diff --staged = %q", out)
	}
}

func TestGitDiffStagedShowsAddedContent(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo bye > a.txt")
	tm.quiet("git add a.txt")
	tm.quiet("echo later > a.txt")

	out := tm.run("git diff --staged")
	if !contains(out, "+bye") || contains(out, "+later") {
		t.Errorf("diff --staged = %q", out)
	}
}

func TestGitBranchFlow(t *testing.T) {
	tm := committed(t)

	if out := tm.run("git checkout -b feature"); !reflect.DeepEqual(out, []string{"Switched to a new branch 'feature'"}) {
		t.Errorf("checkout -b = %q", out)
	}
	if out := tm.run("git checkout -b feature"); out[0] != "fatal: a branch named 'feature' already exists" {
		t.Errorf("second checkout -b = %q", out)
	}
	if out := tm.run("git branch"); !reflect.DeepEqual(out, []string{"* feature", "  main"}) {
		t.Errorf("branch = %q", out)
	}

	tm.quiet("echo x > f.txt")
	tm.quiet("git add f.txt")
	tm.run(`git commit -m "feature work"`)

	if out := tm.run("git checkout main"); !reflect.DeepEqual(out, []string{"Switched to branch 'main'"}) {
		t.Errorf("checkout main = %q", out)
	}
	if out := tm.run("cat f.txt"); out[0] != "cat: f.txt: No such file or directory" {
		t.Errorf("f.txt leaked onto main: %q", out)
	}
	if out := tm.run("git checkout main"); out[0] != "Already on 'main'" {
		t.Errorf("checkout current = %q", out)
	}

	out := tm.run("git branch -d feature")
	if len(out) != 2 || out[0] != "error: the branch 'feature' is not fully merged." {
		t.Errorf("branch -d unmerged = %q", out)
	}
	if out = tm.run("git branch -d main"); !strings.HasPrefix(out[0], "error: Cannot delete branch 'main'") {
		t.Errorf("branch -d main = %q", out)
	}
	if out = tm.run("git branch -D feature"); !strings.HasPrefix(out[0], "Deleted branch feature (was ") {
		t.Errorf("branch -D = %q", out)
	}
	if out = tm.run("git branch -d ghost"); out[0] != "error: branch 'ghost' not found." {
		t.Errorf("branch -d ghost = %q", out)
	}
}

func TestGitCheckoutWarnings(t *testing.T) {
	tm := committed(t)
	tm.quiet("git branch feature")
	tm.quiet("echo dirty > a.txt")

	out := tm.run("git checkout feature")
	if !reflect.DeepEqual(out, []string{"M\ta.txt", "Switched to branch 'feature'"}) {
		t.Errorf("checkout = %q", out)
	}
}

func TestGitCheckoutFile(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo bye > a.txt")

	if out := tm.run("git checkout -- a.txt"); !reflect.DeepEqual(out, []string{"Updated 1 path from the index"}) {
		t.Errorf("checkout -- = %q", out)
	}
	if out := tm.run("cat a.txt"); !reflect.DeepEqual(out, []string{"hi"}) {
		t.Errorf("a.txt = %q", out)
	}
	if out := tm.run("git checkout nothing"); out[0] != "error: pathspec 'nothing' did not match any file(s) known to git" {
		t.Errorf("checkout nothing = %q", out)
	}
}

func TestGitSwitch(t *testing.T) {
	tm := committed(t)
	if out := tm.run("git switch -c dev"); !reflect.DeepEqual(out, []string{"Switched to a new branch 'dev'"}) {
		t.Errorf("switch -c = %q", out)
	}
	if out := tm.run("git switch nope"); out[0] != "fatal: invalid reference: nope" {
		t.Errorf("switch nope = %q", out)
	}
	if out := tm.run("git switch main"); out[0] != "Switched to branch 'main'" {
		t.Errorf("switch main = %q", out)
	}
}

func TestGitBranchRename(t *testing.T) {
	tm := committed(t)
	tm.quiet("git branch old")
	tm.quiet("git branch -m old new")
	if out := tm.run("git branch"); !reflect.DeepEqual(out, []string{"* main", "  new"}) {
		t.Errorf("branch = %q", out)
	}
}

func TestGitMerge(t *testing.T) {
	tm := committed(t)

	if out := tm.run("git merge nope"); out[0] != "merge: nope - not something we can merge" {
		t.Errorf("merge nope = %q", out)
	}
	if out := tm.run("git merge main"); out[0] != "Already up to date." {
		t.Errorf("merge self = %q", out)
	}

	tm.run("git checkout -b feature")
	tm.quiet("echo x > f.txt")
	tm.quiet("git add f.txt")
	tm.run(`git commit -m "feature"`)
	tm.run("git checkout main")

	out := tm.run("git merge feature")
	if out[0] != "Merge made by the 'ort' strategy." || !contains(out, " f.txt") {
		t.Errorf("merge feature = %q", out)
	}
}

func TestGitPush(t *testing.T) {
	tm := newTerm(t)
	tm.run("git init")
	if out := tm.run("git push"); out[0] != "error: src refspec main does not match any" {
		t.Errorf("push before commit = %q", out)
	}

	tm.quiet("echo hi > a.txt")
	tm.quiet("git add a.txt")
	tm.run(`git commit -m "first"`)

	want := []string{"To " + constants.PlaceholderRemote, " * [new branch]      main -> main"}
	if out := tm.run("git push"); !reflect.DeepEqual(out, want) {
		t.Errorf("first push = %q, want %q", out, want)
	}
	if out := tm.run("git push"); !reflect.DeepEqual(out, []string{"Everything up-to-date"}) {
		t.Errorf("second push = %q", out)
	}
	if out := tm.run("git status"); out[1] != "Your branch is up to date with 'origin/main'." {
		t.Errorf("status = %q", out)
	}
	if out := tm.run("git push upstream main"); out[0] != "fatal: 'upstream' does not appear to be a git repository" {
		t.Errorf("push upstream = %q", out)
	}

	tm.quiet("echo more >> a.txt")
	tm.run(`git commit -am "second"`)
	if out := tm.run("git status"); out[1] != "Your branch is ahead of 'origin/main' by 1 commit." {
		t.Errorf("status ahead = %q", out)
	}
	if out := tm.run("git push -u origin main"); !contains(out, "main -> main") || !contains(out, "set up to track 'origin/main'") {
		t.Errorf("push -u = %q", out)
	}
}

func TestGitPullAndRemote(t *testing.T) {
	tm := committed(t)

	if out := tm.run("git pull"); out[0] != "There is no tracking information for the current branch." {
		t.Errorf("pull without remote = %q", out)
	}
	tm.quiet("git remote add origin https://example.com/repo.git")
	if out := tm.run("git remote add origin x"); out[0] != "error: remote origin already exists." {
		t.Errorf("duplicate remote = %q", out)
	}
	want := []string{"origin\thttps://example.com/repo.git (fetch)", "origin\thttps://example.com/repo.git (push)"}
	if out := tm.run("git remote -v"); !reflect.DeepEqual(out, want) {
		t.Errorf("remote -v = %q", out)
	}
	if out := tm.run("git pull"); out[len(out)-1] != "Already up to date." {
		t.Errorf("pull = %q", out)
	}
	tm.quiet("git remote remove origin")
	if out := tm.run("git remote"); len(out) != 0 {
		t.Errorf("remote after remove = %q", out)
	}
}

func TestGitReset(t *testing.T) {
	tm := committed(t)
	first := tm.ctx.Repo.GetCommitHistory()[0].ID
	tm.quiet("echo two >> a.txt")
	tm.run(`git commit -am "second"`)

	tm.quiet("echo three > b.txt")
	tm.quiet("git add b.txt")
	tm.quiet("git reset b.txt")
	if st := tm.ctx.Repo.GetStatus()["b.txt"]; st != types.UntrackedStatus {
		t.Errorf("b.txt after reset = %q", st)
	}

	if out := tm.run("git reset HEAD~5"); !strings.HasPrefix(out[0], "fatal: ambiguous argument 'HEAD~5'") {
		t.Errorf("reset HEAD~5 = %q", out)
	}
	if out := tm.run("git reset deadbeef"); !contains(out, constants.NotImplemented) {
		t.Errorf("reset commit id = %q", out)
	}

	if out := tm.run("git reset --hard HEAD~1"); !reflect.DeepEqual(out, []string{"HEAD is now at " + first + " first commit"}) {
		t.Errorf("reset --hard = %q", out)
	}
	if out := tm.run("cat a.txt"); !reflect.DeepEqual(out, []string{"hi"}) {
		t.Errorf("a.txt after hard reset = %q", out)
	}
}

func TestGitStagedSurvivesWorkingEdits(t *testing.T) {
	tests := []struct {
		name      string
		setup     []string
		edit      string
		want      []string
		path      string
		committed string
		after     []string
	}{
		{
			name:      "touch keeps the file staged",
			setup:     []string{"echo hi > a.txt", "git add a.txt"},
			edit:      "touch a.txt",
			want:      []string{"A  a.txt"},
			path:      "a.txt",
			committed: "hi\n",
			after:     []string{},
		},
		{
			name:      "staged new file edited again",
			setup:     []string{"echo one > b.txt", "git add b.txt"},
			edit:      "echo two >> b.txt",
			want:      []string{"A  b.txt"},
			path:      "b.txt",
			committed: "one\n",
			after:     []string{" M b.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := newTerm(t)
			tm.run("git init")
			for _, line := range tt.setup {
				tm.quiet(line)
			}
			tm.quiet(tt.edit)

			if out := tm.run("git status -s"); !reflect.DeepEqual(out, tt.want) {
				t.Errorf("status -s = %q, want %q", out, tt.want)
			}
			if out := tm.run(`git commit -m "x"`); len(out) == 0 || !strings.HasPrefix(out[0], "[main (root-commit)") {
				t.Fatalf("commit = %q", out)
			}
			if got, _ := tm.ctx.Repo.GetTrackedContent(tt.path); got != tt.committed {
				t.Errorf("committed content = %q, want %q", got, tt.committed)
			}
			if out := tm.run("git status -s"); !reflect.DeepEqual(out, tt.after) {
				t.Errorf("status -s after commit = %q, want %q", out, tt.after)
			}
		})
	}
}

func TestGitResetSoftLeavesIndex(t *testing.T) {
	t.Run("HEAD", func(t *testing.T) {
		tm := committed(t)
		tm.quiet("echo changed > a.txt")
		tm.quiet("git reset --soft HEAD")
		if out := tm.run("git status -s"); !reflect.DeepEqual(out, []string{" M a.txt"}) {
			t.Errorf("status -s = %q", out)
		}
	})

	t.Run("HEAD~1", func(t *testing.T) {
		tm := committed(t)
		tm.quiet("echo bee > b.txt")
		tm.quiet("git add b.txt")
		tm.run(`git commit -m "second"`)
		tm.quiet("echo changed > a.txt")

		tm.quiet("git reset --soft HEAD~1")
		if out := tm.run("git status -s"); !reflect.DeepEqual(out, []string{"A  b.txt", " M a.txt"}) {
			t.Errorf("status -s = %q", out)
		}
		if out := tm.run(`git commit -m "again"`); len(out) == 0 || !strings.HasSuffix(out[0], "] again") {
			t.Fatalf("commit = %q", out)
		}
		if got, _ := tm.ctx.Repo.GetTrackedContent("a.txt"); got != "hi\n" {
			t.Errorf("a.txt was committed with its unstaged edit: %q", got)
		}
	})
}

func TestGitResetMixedListsUnstaged(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo two >> a.txt")
	tm.run(`git commit -am "second"`)

	out := tm.run("git reset HEAD~1")
	if !reflect.DeepEqual(out, []string{"Unstaged changes after reset:", "M\ta.txt"}) {
		t.Errorf("reset mixed = %q", out)
	}
}

func TestGitRestore(t *testing.T) {
	tm := committed(t)
	tm.quiet("echo bye > a.txt")
	tm.quiet("git add a.txt")

	tm.quiet("git restore --staged a.txt")
	if st := tm.ctx.Repo.GetStatus()["a.txt"]; st != types.ModifiedStatus {
		t.Errorf("after restore --staged = %q", st)
	}
	tm.quiet("git restore a.txt")
	if out := tm.run("cat a.txt"); !reflect.DeepEqual(out, []string{"hi"}) {
		t.Errorf("a.txt = %q", out)
	}
	if out := tm.run("git restore ghost.txt"); out[0] != "error: pathspec 'ghost.txt' did not match any file(s) known to git" {
		t.Errorf("restore ghost = %q", out)
	}
}

func TestGitPartialCommands(t *testing.T) {
	tm := committed(t)
	for _, line := range []string{"git rm --cached a.txt", "git rebase -i HEAD~1", "git revert HEAD", "git cherry-pick HEAD"} {
		if out := tm.run(line); !contains(out, constants.NotImplemented) {
			t.Errorf("%s = %q", line, out)
		}
	}
	if out := tm.run("git revert nope"); out[0] != "fatal: bad revision 'nope'" {
		t.Errorf("revert nope = %q", out)
	}
	if out := tm.run("git rebase main"); out[0] != "Current branch main is up to date." {
		t.Errorf("rebase self = %q", out)
	}
}

func TestGitRmAndMv(t *testing.T) {
	tm := committed(t)

	if out := tm.run("git mv a.txt b.txt"); len(out) != 0 {
		t.Fatalf("mv = %q", out)
	}
	status := tm.ctx.Repo.GetStatus()
	if status["a.txt"] != types.StagedStatus || status["b.txt"] != types.StagedStatus {
		t.Errorf("after mv: %v", status)
	}
	tm.run(`git commit -m "rename"`)

	if out := tm.run("git rm b.txt"); !reflect.DeepEqual(out, []string{"rm 'b.txt'"}) {
		t.Errorf("rm = %q", out)
	}
	if tm.ctx.FS.Exists("/b.txt") {
		t.Error("b.txt still on disk")
	}
	if out := tm.run("git rm ghost.txt"); out[0] != "fatal: pathspec 'ghost.txt' did not match any files" {
		t.Errorf("rm ghost = %q", out)
	}
}

func TestGitStash(t *testing.T) {
	tm := committed(t)
	if out := tm.run("git stash"); out[0] != "No local changes to save" {
		t.Errorf("empty stash = %q", out)
	}

	tm.quiet("echo bye > a.txt")
	out := tm.run("git stash")
	if !strings.HasPrefix(out[0], "Saved working directory and index state WIP on main: ") {
		t.Errorf("stash = %q", out)
	}
	if out = tm.run("cat a.txt"); !reflect.DeepEqual(out, []string{"hi"}) {
		t.Errorf("a.txt after stash = %q", out)
	}
	if out = tm.run("git stash list"); len(out) != 1 || !strings.HasPrefix(out[0], "stash@{0}: WIP on main") {
		t.Errorf("stash list = %q", out)
	}
	if out = tm.run("git stash pop"); out[0] != "Dropped refs/stash@{0}" {
		t.Errorf("stash pop = %q", out)
	}
	if out = tm.run("cat a.txt"); !reflect.DeepEqual(out, []string{"bye"}) {
		t.Errorf("a.txt after pop = %q", out)
	}
}

func TestGitConfig(t *testing.T) {
	tm := committed(t)
	tm.quiet(`git config user.name "Ada Lovelace"`)
	if out := tm.run("git config user.name"); !reflect.DeepEqual(out, []string{"Ada Lovelace"}) {
		t.Errorf("config get = %q", out)
	}
	if out := tm.run("git config --list"); !contains(out, "user.name=Ada Lovelace") {
		t.Errorf("config --list = %q", out)
	}
	if out := tm.run("git config name"); !strings.HasPrefix(out[0], "error: key does not contain a section") {
		t.Errorf("config name = %q", out)
	}
}
