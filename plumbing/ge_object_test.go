package plumbing

import "testing"

func TestObjectIDMatchesGit(t *testing.T) {
	tests := []struct {
		content string
		want    string
	}{
		{"", "e69de29bb2d1d6434b8b29ae775ad8c2e48c5391"},
		{"hello\n", "ce013625030ba8dba906f756967f9e9ca394464a"},
	}
	for _, tt := range tests {
		if got := ObjectID("blob", tt.content); got != tt.want {
			t.Errorf("ObjectID(blob, %q) = %s, want %s", tt.content, got, tt.want)
		}
		if got := BlobID(tt.content); got != tt.want[:7] {
			t.Errorf("BlobID(%q) = %s", tt.content, got)
		}
	}
}

func TestTreeID(t *testing.T) {
	files := map[string]string{"a.txt": "a\n", "src/main.go": "package main\n"}

	if TreeID(files, "") == TreeID(files, "src") {
		t.Error("root and subtree ids collide")
	}
	if TreeID(files, "src") != TreeID(map[string]string{"src/main.go": "package main\n"}, "src") {
		t.Error("subtree id depends on files outside the subtree")
	}
	files["a.txt"] = "changed\n"
	if TreeID(files, "src") != TreeID(map[string]string{"src/main.go": "package main\n"}, "src") {
		t.Error("subtree id changed with an unrelated file")
	}
}
