package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	for _, path := range [][]string{
		{"migrate"}, {"login"}, {"profile", "show"}, {"profile", "set"}, {"password"},
		{"address", "show"}, {"address", "set"}, {"phones", "list"}, {"phones", "add"},
		{"phones", "set"}, {"phones", "remove"}, {"plants"}, {"services"}, {"calc"}, {"version"},
	} {
		cmd, _, err := root.Find(path)
		if err != nil || cmd.Name() != path[len(path)-1] {
			t.Errorf("command %v not found: %v", path, err)
		}
	}
}

func TestRootCmd_Help(t *testing.T) {
	root := newRootCmd()
	if !strings.HasPrefix(root.Long, "Biogas: ") {
		t.Errorf("Long = %q", root.Long)
	}
}

func TestVersionCmd(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"version"})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !strings.HasPrefix(out.String(), "biogas dev") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("plant", "42"); err != nil || id != 42 {
		t.Errorf("parseID(42) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "-1", "0", "abc"} {
		if _, err := parseID("plant", bad); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
}
