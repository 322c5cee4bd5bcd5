package plumbing

import (
	"strings"
	"testing"
)

func TestConfigGetSet(t *testing.T) {
	fs := NewFileSystem()
	if !CreateGitDirs(fs) {
		t.Fatal("CreateGitDirs failed")
	}

	if err := SetConfig(fs, "user.name", "Ada"); err != nil {
		t.Fatalf("SetConfig: %v", err)
	}
	got, err := GetConfig(fs, "user.name")
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if got != "Ada" {
		t.Errorf("user.name: got %q, want Ada", got)
	}

	if _, err := GetConfig(fs, "user.missing"); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := GetConfig(fs, "nosection"); err == nil {
		t.Error("expected error for key without section")
	}

	author := GetAuthorInfo(fs)
	if author.Name != "Ada" || author.Email == "" {
		t.Errorf("author: %+v", author)
	}

	entries, err := ListConfig(fs)
	if err != nil {
		t.Fatalf("ListConfig: %v", err)
	}
	found := false
	for _, e := range entries {
		if strings.HasPrefix(e, "user.name=") {
			found = true
		}
	}
	if !found {
		t.Errorf("ListConfig missing user.name: %v", entries)
	}
}

func TestConfigWithoutGitDir(t *testing.T) {
	fs := NewFileSystem()
	if _, err := GetConfig(fs, "user.name"); err == nil {
		t.Error("expected error without .git/config")
	}
	if a := GetAuthorInfo(fs); a.Name == "" {
		t.Error("author should fall back to a placeholder")
	}
}
