package db

import (
	"os"
	"path/filepath"
	"testing"
)

// scriptedPrompter answers prompts by label. Unknown labels are declined.
type scriptedPrompter struct {
	texts map[string]string
	ints  map[string]int
	calls []string
}

func (p *scriptedPrompter) PromptText(label, current string) (string, bool) {
	p.calls = append(p.calls, label)
	v, ok := p.texts[label]
	if !ok {
		return current, false
	}
	return v, true
}

func (p *scriptedPrompter) PromptInt(label string, current, _, _, _ int) (int, bool) {
	p.calls = append(p.calls, label)
	v, ok := p.ints[label]
	if !ok {
		return current, false
	}
	return v, true
}

type recordingNotifier struct {
	msgs []string
}

func (n *recordingNotifier) Critical(msg, detail string) {
	n.msgs = append(n.msgs, msg+"\n"+detail)
}

// newSQLiteFile creates an empty database file and returns its directory and name.
func newSQLiteFile(t *testing.T, name string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), nil, 0o600); err != nil {
		t.Fatalf("create db file: %v", err)
	}
	return dir, name
}
