package porcelain

import (
	"testing"
	"time"

	"github.com/MikaStiebitz/Git-Gud/plumbing"
	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

func newRepo(t *testing.T) (*Repository, *plumbing.FileSystem) {
	t.Helper()
	fs := plumbing.NewFileSystem()
	return New(fs), fs
}

func initRepo(t *testing.T) (*Repository, *plumbing.FileSystem) {
	t.Helper()
	r, fs := newRepo(t)
	if !r.Init() {
		t.Fatal("Init failed")
	}
	return r, fs
}

func commitFile(t *testing.T, r *Repository, fs *plumbing.FileSystem, path, content, msg string) string {
	t.Helper()
	fs.WriteFile("/"+path, content)
	if !r.AddFile(path) {
		t.Fatalf("AddFile(%s) failed", path)
	}
	id, ok := r.Commit(msg)
	if !ok {
		t.Fatalf("Commit(%s) failed", msg)
	}
	return id
}

func TestInitIdempotence(t *testing.T) {
	r, fs := newRepo(t)

	if r.IsInitialized() {
		t.Fatal("fresh repository should not be initialized")
	}
	if !r.Init() {
		t.Fatal("first Init should succeed")
	}
	if r.Init() {
		t.Error("second Init should fail")
	}
	if !r.IsInitialized() {
		t.Error("repository should be initialized")
	}

	for _, p := range []string{"/.git/HEAD", "/.git/config"} {
		if !fs.IsFile(p) {
			t.Errorf("%s should exist", p)
		}
	}
	for _, p := range []string{"/.git/objects", "/.git/refs/heads"} {
		if !fs.IsDirectory(p) {
			t.Errorf("%s should exist", p)
		}
	}
}

func TestOperationsBeforeInit(t *testing.T) {
	r, fs := newRepo(t)
	fs.WriteFile("/a.txt", "a")

	if r.AddFile("a.txt") {
		t.Error("AddFile before init should fail")
	}
	if _, ok := r.Commit("msg"); ok {
		t.Error("Commit before init should fail")
	}
	if r.CreateBranch("x") || r.DeleteBranch("x") || r.Merge("x") {
		t.Error("branch operations before init should fail")
	}
	if res := r.Checkout("main", false); res.Success {
		t.Error("Checkout before init should fail")
	}
	if r.Push("origin", "main") || r.Pull("origin", "main") {
		t.Error("remote operations before init should fail")
	}
	if r.UpdateFileStatus("a.txt", types.StagedStatus) {
		t.Error("UpdateFileStatus before init should fail")
	}
	if len(r.GetStatus()) != 0 || len(r.GetBranches()) != 0 || r.GetCurrentBranch() != "" {
		t.Error("queries before init should be empty")
	}
}

func TestBasicLifecycle(t *testing.T) {
	r, fs := initRepo(t)
	fs.WriteFile("/README.md", "# Hello")

	if !r.AddFile("README.md") {
		t.Fatal("AddFile failed")
	}
	if got := r.GetStatus()["README.md"]; got != types.StagedStatus {
		t.Errorf("after add: got %q, want staged", got)
	}

	id, ok := r.Commit("first")
	if !ok || id == "" {
		t.Fatal("Commit should return an id")
	}
	if got := r.GetStatus()["README.md"]; got != types.CommittedStatus {
		t.Errorf("after commit: got %q, want committed", got)
	}
	if r.GetCurrentBranch() != "main" {
		t.Errorf("current branch: got %q, want main", r.GetCurrentBranch())
	}

	c, found := r.GetCommits()[id]
	if !found {
		t.Fatal("commit missing from GetCommits")
	}
	if c.Message != "first" || len(c.Files) != 1 || c.Files[0] != "README.md" {
		t.Errorf("commit: %+v", c)
	}
	if ref, _ := fs.GetFileContents("/.git/refs/heads/main"); ref != id+"\n" {
		t.Errorf("branch ref: got %q", ref)
	}
}

func TestAddFileNormalizesLeadingSlash(t *testing.T) {
	r, fs := initRepo(t)
	fs.WriteFile("/src/app.go", "package app")

	if !r.AddFile("/src/app.go") {
		t.Fatal("AddFile failed")
	}
	if got := r.GetStatus()["src/app.go"]; got != types.StagedStatus {
		t.Errorf("got %q, want staged", got)
	}
}

func TestAddFileMissingPath(t *testing.T) {
	r, _ := initRepo(t)
	if r.AddFile("ghost.txt") {
		t.Error("adding a path that never existed should fail")
	}
}

func TestAddAll(t *testing.T) {
	r, fs := initRepo(t)
	if r.AddAll(nil) {
		t.Error("AddAll with no paths should report nothing added")
	}

	fs.WriteFile("/a.txt", "a")
	fs.WriteFile("/b.txt", "b")
	if !r.AddAll([]string{"a.txt", "b.txt"}) {
		t.Fatal("AddAll failed")
	}
	status := r.GetStatus()
	if status["a.txt"] != types.StagedStatus || status["b.txt"] != types.StagedStatus {
		t.Errorf("status: %v", status)
	}
}

func TestCommitRequiresStagedContent(t *testing.T) {
	r, fs := initRepo(t)
	for _, msg := range []string{"", "message", "a much longer message"} {
		if _, ok := r.Commit(msg); ok {
			t.Errorf("Commit(%q) with nothing staged should fail", msg)
		}
	}

	fs.WriteFile("/a.txt", "a")
	r.UpdateFileStatus("a.txt", types.ModifiedStatus)
	if _, ok := r.Commit("only modified"); ok {
		t.Error("modified but unstaged files should not be committed")
	}
}

func TestCommitStagedDeletion(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "gone.txt", "x", "add")

	if !r.RemoveFile("gone.txt") {
		t.Fatal("RemoveFile failed")
	}
	if _, ok := r.Commit("remove"); !ok {
		t.Fatal("commit of a removal failed")
	}
	if _, found := r.GetStatus()["gone.txt"]; found {
		t.Error("removed file should leave the status map")
	}
	if _, tracked := r.GetTrackedContent("gone.txt"); tracked {
		t.Error("removed file should leave the branch tree")
	}
}

func TestCommitHistoryAndResolve(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	fs := plumbing.NewFileSystem()
	r := New(fs, WithClock(func() time.Time { now = now.Add(time.Minute); return now }))
	r.Init()

	first := commitFile(t, r, fs, "a.txt", "1", "first")
	second := commitFile(t, r, fs, "a.txt", "2", "second")

	history := r.GetCommitHistory()
	if len(history) != 2 || history[0].ID != second || history[1].ID != first {
		t.Fatalf("history order wrong: %+v", history)
	}
	if history[0].Parent != first {
		t.Errorf("parent: got %q, want %q", history[0].Parent, first)
	}

	if c, ok := r.GetCommit("HEAD~1"); !ok || c.ID != first {
		t.Errorf("HEAD~1 resolved to %+v", c)
	}
	if c, ok := r.GetCommit("main"); !ok || c.ID != second {
		t.Errorf("main resolved to %+v", c)
	}
	if _, ok := r.GetCommit("HEAD~5"); ok {
		t.Error("HEAD~5 should not resolve")
	}

	ids := r.CommitIDs()
	if len(ids) != 2 || ids[0] != first {
		t.Errorf("CommitIDs: %v", ids)
	}
}

func TestCreateBranchSnapshotsParent(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "base", "base")

	if !r.CreateBranch("feature") {
		t.Fatal("CreateBranch failed")
	}
	if r.CreateBranch("feature") {
		t.Error("duplicate branch should fail")
	}
	if r.CreateBranch("bad name") {
		t.Error("invalid branch name should fail")
	}

	main, _ := r.GetBranchHistory("main")
	feature, _ := r.GetBranchHistory("feature")
	if len(feature) != len(main) || feature[0].ID != main[0].ID {
		t.Error("new branch should start with the parent's commits")
	}
	if got := r.GetBranches(); len(got) != 2 || got[0] != "feature" || got[1] != "main" {
		t.Errorf("GetBranches: %v", got)
	}
}

func TestBranchIsolation(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "README.md", "readme", "init")

	if !r.CreateBranch("feature") {
		t.Fatal("CreateBranch failed")
	}
	if res := r.Checkout("feature", false); !res.Success {
		t.Fatal("checkout feature failed")
	}
	commitFile(t, r, fs, "feature.txt", "only on feature", "feature work")

	if res := r.Checkout("main", false); !res.Success {
		t.Fatal("checkout main failed")
	}
	if fs.Exists("/feature.txt") {
		t.Error("feature-only file should not exist on main")
	}
	if _, found := r.GetStatus()["feature.txt"]; found {
		t.Error("feature-only file should not be in main's status")
	}
	if got, _ := fs.GetFileContents("/README.md"); got != "readme" {
		t.Errorf("shared file: got %q", got)
	}

	if res := r.Checkout("feature", false); !res.Success {
		t.Fatal("checkout feature failed")
	}
	if got, ok := fs.GetFileContents("/feature.txt"); !ok || got != "only on feature" {
		t.Errorf("feature file not restored: %q %v", got, ok)
	}
	if r.GetStatus()["feature.txt"] != types.CommittedStatus {
		t.Error("restored file should be committed")
	}
}

func TestCheckoutCreateNew(t *testing.T) {
	r, _ := initRepo(t)

	if res := r.Checkout("feature", true); !res.Success {
		t.Fatal("checkout -b on a fresh repo should succeed")
	}
	if r.GetCurrentBranch() != "feature" {
		t.Errorf("current: got %q", r.GetCurrentBranch())
	}
	if res := r.Checkout("feature", true); res.Success {
		t.Error("checkout -b with an existing name should fail")
	}
	if res := r.Checkout("missing", false); res.Success {
		t.Error("checkout of a missing branch should fail")
	}
}

func TestCheckoutWarnsButSwitches(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "v1", "v1")
	r.CreateBranch("other")

	fs.WriteFile("/a.txt", "v2")
	r.RecordWorkingChange("/a.txt")

	res := r.Checkout("other", false)
	if !res.Success {
		t.Fatal("checkout should proceed with uncommitted changes")
	}
	if len(res.Warnings) != 1 || res.Warnings[0] != "M\ta.txt" {
		t.Errorf("warnings: %v", res.Warnings)
	}

	// The modification stays with main
	r.Checkout("main", false)
	if got, _ := fs.GetFileContents("/a.txt"); got != "v2" {
		t.Errorf("main working copy: got %q, want v2", got)
	}
	if r.GetStatus()["a.txt"] != types.ModifiedStatus {
		t.Errorf("main status: got %q", r.GetStatus()["a.txt"])
	}
}

func TestCheckoutKeepsUntrackedFiles(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "a", "a")
	r.CreateBranch("other")

	fs.WriteFile("/scratch.txt", "notes")
	r.RecordWorkingChange("/scratch.txt")

	r.Checkout("other", false)
	if !fs.Exists("/scratch.txt") {
		t.Error("untracked file should survive checkout")
	}
	if r.GetStatus()["scratch.txt"] != types.UntrackedStatus {
		t.Errorf("status: got %q", r.GetStatus()["scratch.txt"])
	}
}

func TestDeleteBranchGuards(t *testing.T) {
	r, _ := initRepo(t)

	if r.DeleteBranch("main") {
		t.Error("main must not be deletable")
	}
	if r.DeleteBranch("missing") {
		t.Error("missing branch cannot be deleted")
	}

	r.Checkout("feature", true)
	if r.DeleteBranch("feature") {
		t.Error("current branch must not be deletable")
	}
	if r.DeleteBranch("main") {
		t.Error("main must not be deletable from another branch")
	}

	r.Checkout("main", false)
	if !r.DeleteBranch("feature") {
		t.Error("deleting a non-current branch should succeed")
	}
	if len(r.GetBranches()) < 1 {
		t.Error("at least one branch must remain")
	}
}

func TestRenameBranch(t *testing.T) {
	r, _ := initRepo(t)
	r.Checkout("old", true)

	if !r.RenameBranch("old", "new") {
		t.Fatal("RenameBranch failed")
	}
	if r.GetCurrentBranch() != "new" || r.HasBranch("old") {
		t.Error("rename should move the current branch")
	}
	if r.RenameBranch("main", "trunk") {
		t.Error("main cannot be renamed")
	}
}

func TestMergeTargetValidation(t *testing.T) {
	r, _ := initRepo(t)
	r.CreateBranch("feature")

	if r.Merge("nonexistent") {
		t.Error("merge of a missing branch should fail")
	}
	if r.Merge(r.GetCurrentBranch()) {
		t.Error("merging a branch into itself should fail")
	}
	if !r.Merge("feature") {
		t.Error("merge of an existing other branch should succeed")
	}
}

func TestMergePreview(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "a", "a")
	r.Checkout("feature", true)
	id := commitFile(t, r, fs, "b.txt", "b", "b")
	r.Checkout("main", false)

	commits, files := r.MergePreview("feature")
	if len(commits) != 1 || commits[0] != id {
		t.Errorf("commits: %v", commits)
	}
	if len(files) != 1 || files[0] != "b.txt" {
		t.Errorf("files: %v", files)
	}
	if r.IsMerged("feature") {
		t.Error("feature has commits main lacks")
	}
}

func TestPushBookkeeping(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "a", "a")

	if !r.HasUnpushedCommits() {
		t.Error("fresh commit should be unpushed")
	}
	if r.Push("upstream", "main") {
		t.Error("push to an unknown remote should fail")
	}
	if !r.Push("origin", "main") {
		t.Fatal("push to origin should auto-create it")
	}
	if r.HasUnpushedCommits() {
		t.Error("no commits should be unpushed after push")
	}
	if url := r.GetRemotes()["origin"]; url == "" {
		t.Error("origin should have a placeholder URL")
	}
	if !r.Push("origin", "main") {
		t.Error("pushing again should still succeed")
	}
	if r.Push("origin", "missing") {
		t.Error("push of an unknown branch should fail")
	}
	if head, ok := r.RemoteHead("origin", "main"); !ok || head == "" {
		t.Error("remote head should be recorded")
	}
}

func TestPull(t *testing.T) {
	r, _ := initRepo(t)
	if r.Pull("origin", "main") {
		t.Error("pull without remotes should fail")
	}
	r.AddRemote("origin", "https://example.com/repo.git")
	if !r.Pull("origin", "main") {
		t.Error("pull from a known remote should succeed")
	}
	if r.Pull("origin", "nope") {
		t.Error("pull of an unknown branch should fail")
	}
}

func TestRemotes(t *testing.T) {
	r, _ := initRepo(t)
	if !r.AddRemote("origin", "https://example.com/repo.git") {
		t.Fatal("AddRemote failed")
	}
	if r.AddRemote("origin", "https://other") {
		t.Error("duplicate remote should fail")
	}
	if !r.RemoveRemote("origin") || r.RemoveRemote("origin") {
		t.Error("RemoveRemote should succeed once")
	}
}

func TestResetAndPartialReset(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "a", "a")
	r.CreateBranch("feature")

	r.PartialReset()
	if !r.IsInitialized() {
		t.Fatal("partial reset keeps the repository")
	}
	if len(r.GetStatus()) != 0 {
		t.Error("partial reset clears status")
	}
	if len(r.GetBranches()) != 2 || len(r.GetCommits()) != 1 {
		t.Error("partial reset keeps branches and commits")
	}

	r.Reset()
	if r.IsInitialized() {
		t.Error("reset returns to uninitialized")
	}
	if fs.Exists("/.git") {
		t.Error("reset removes .git")
	}
	if !r.Init() || len(r.GetBranches()) != 1 || r.GetBranches()[0] != "main" {
		t.Error("after reset only main exists")
	}
}

func TestUpdateFileStatus(t *testing.T) {
	r, _ := initRepo(t)
	if !r.UpdateFileStatus("/docs/a.md", types.ModifiedStatus) {
		t.Fatal("UpdateFileStatus failed")
	}
	if got := r.GetStatus()["docs/a.md"]; got != types.ModifiedStatus {
		t.Errorf("got %q, want modified", got)
	}
	if r.UpdateFileStatus("x", types.FileStatus("weird")) {
		t.Error("unknown status should be rejected")
	}
}

func TestRecordWorkingChange(t *testing.T) {
	r, fs := initRepo(t)
	commitFile(t, r, fs, "a.txt", "v1", "v1")

	fs.WriteFile("/a.txt", "v2")
	r.RecordWorkingChange("/a.txt")
	if got := r.GetStatus()["a.txt"]; got != types.ModifiedStatus {
		t.Errorf("edited: got %q", got)
	}

	fs.WriteFile("/a.txt", "v1")
	r.RecordWorkingChange("/a.txt")
	if got := r.GetStatus()["a.txt"]; got != types.CommittedStatus {
		t.Errorf("reverted: got %q", got)
	}

	fs.Delete("/a.txt")
	r.RecordWorkingChange("/a.txt")
	if got := r.GetStatus()["a.txt"]; got != types.DeletedStatus {
		t.Errorf("deleted: got %q", got)
	}

	fs.WriteFile("/new.txt", "n")
	r.RecordWorkingChange("/new.txt")
	if got := r.GetStatus()["new.txt"]; got != types.UntrackedStatus {
		t.Errorf("new: got %q", got)
	}
	fs.Delete("/new.txt")
	r.RecordWorkingChange("/new.txt")
	if _, found := r.GetStatus()["new.txt"]; found {
		t.Error("deleted untracked file should be forgotten")
	}
}
