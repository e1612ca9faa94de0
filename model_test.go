package treediff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryKindString(t *testing.T) {
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "dir", KindDir.String())
	assert.Equal(t, "other", KindOther.String())
}

func TestApplyReportActions(t *testing.T) {
	r := &ApplyReport{
		Cloned:       "/tmp/clone",
		RemovedFiles: []string{"a.txt"},
		RemovedDirs:  []string{"old"},
		Patched:      []string{"b.txt"},
		Replaced:     []string{"blob.bin"},
		CreatedDirs:  []string{"new"},
		AddedFiles:   []string{"new/c.txt"},
	}

	want := []ApplyAction{
		{Verb: "clone", Path: "/tmp/clone"},
		{Verb: "remove", Path: "a.txt"},
		{Verb: "rmdir", Path: "old"},
		{Verb: "patch", Path: "b.txt"},
		{Verb: "replace", Path: "blob.bin"},
		{Verb: "mkdir", Path: "new"},
		{Verb: "add", Path: "new/c.txt"},
	}
	assert.Equal(t, want, r.Actions())
}

func TestChangeSetEmpty(t *testing.T) {
	assert.True(t, (&ChangeSet{Warnings: []string{"w"}}).Empty())
	assert.False(t, (&ChangeSet{AddedDirs: []string{"d"}}).Empty())
}
