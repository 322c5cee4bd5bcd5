package plumbing

import (
	"testing"
	"time"

	"github.com/MikaStiebitz/Git-Gud/utils/types"
)

func history() map[string]types.Commit {
	now := time.Now()
	return map[string]types.Commit{
		"aaaa111": WriteCommit("aaaa111", "first", "main", "", []string{"a"}, nil, now),
		"bbbb222": WriteCommit("bbbb222", "second", "main", "aaaa111", []string{"b"}, nil, now),
		"cccc333": WriteCommit("cccc333", "third", "main", "bbbb222", []string{"c"}, nil, now),
	}
}

func TestResolveCommitish(t *testing.T) {
	commits := history()
	branches := map[string]string{"main": "cccc333", "feature": "bbbb222"}

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "HEAD", want: "cccc333"},
		{in: "HEAD~1", want: "bbbb222"},
		{in: "HEAD~2", want: "aaaa111"},
		{in: "HEAD^", want: "bbbb222"},
		{in: "HEAD~", want: "bbbb222"},
		{in: "HEAD^^", want: "aaaa111"},
		{in: "feature", want: "bbbb222"},
		{in: "feature~1", want: "aaaa111"},
		{in: "bbbb", want: "bbbb222"},
		{in: "bbbb222", want: "bbbb222"},
		{in: "HEAD~3", wantErr: true},
		{in: "HEAD^2", wantErr: true},
		{in: "zzz", wantErr: true},
		{in: "HEAD~x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ResolveCommitish(tt.in, "cccc333", branches, commits)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveCommitishEmptyHead(t *testing.T) {
	if _, err := ResolveCommitish("HEAD", "", nil, map[string]types.Commit{}); err == nil {
		t.Error("HEAD without commits should not resolve")
	}
}

func TestWriteCommitCopiesTree(t *testing.T) {
	tree := map[string]string{"a": "1"}
	c := WriteCommit("id12345", "msg\nbody", "main", "", []string{"a"}, tree, time.Now())
	tree["a"] = "2"

	if c.Tree["a"] != "1" {
		t.Error("commit tree should not follow later edits")
	}
	if c.Subject() != "msg" {
		t.Errorf("Subject: got %q, want msg", c.Subject())
	}
}

func TestNewCommitIDUnique(t *testing.T) {
	now := time.Now()
	a := NewCommitID("same", now)
	b := NewCommitID("same", now)
	if len(a) != 7 {
		t.Errorf("id length: got %d, want 7", len(a))
	}
	if a == b {
		t.Error("ids for identical input should differ")
	}
}
