package parser

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargets_NoLinks(t *testing.T) {
	got := slices.Collect(Targets("# Plain\nNo links here, not even [single] brackets.\n"))
	assert.Empty(t, got)
}

func TestTargets_Basic(t *testing.T) {
	text := "See [[Note A]] and [[Note B|alias]].\nAlso [[Note A]] again."
	got := slices.Collect(Targets(text))
	assert.Equal(t, []string{"note a.md", "note b.md", "note a.md"}, got)
}

func TestTargets_AliasAndSectionDiscarded(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"[[Target|Alias#Section]]", "target.md"},
		{"[[Target#Section|Alias]]", "target.md"},
		{"[[Target#Section]]", "target.md"},
		{"[[  Spaced Out  ]]", "spaced out.md"},
		{"[[Folder/Deep Note]]", "folder/deep note.md"},
		{"[[already.md]]", "already.md"},
		{"[[Upper.MD]]", "upper.md"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := slices.Collect(Targets(tt.in))
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0])
		})
	}
}

func TestTargets_EmptyBracketsYieldSuffix(t *testing.T) {
	got := slices.Collect(Targets("see [[]] and [[|alias]] and [[#top]]"))
	assert.Equal(t, []string{".md", ".md", ".md"}, got)
}

func TestTargets_DoesNotSpanLines(t *testing.T) {
	got := slices.Collect(Targets("[[broken\nlink]] then [[ok]]"))
	assert.Equal(t, []string{"ok.md"}, got)
}

func TestTargets_Restartable(t *testing.T) {
	seq := Targets("[[a]] [[b]]")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	assert.Equal(t, first, second)
}

func TestTargets_EarlyStop(t *testing.T) {
	var got []string
	for tgt := range Targets("[[a]] [[b]] [[c]]") {
		got = append(got, tgt)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a.md", "b.md"}, got)
}

func TestReferences_Fields(t *testing.T) {
	refs := slices.Collect(References("[[Dragons#Lair|the lair]]"))
	require.Len(t, refs, 1)
	r := refs[0]
	assert.Equal(t, "dragons.md", r.Target)
	assert.Equal(t, "Dragons#Lair|the lair", r.Raw)
	assert.Equal(t, "the lair", r.Alias)
	assert.Equal(t, "Lair", r.Section)
}

func TestExtractor_CustomSuffix(t *testing.T) {
	e := NewExtractor(".txt")
	got := slices.Collect(e.Targets("[[Readme]] [[notes.txt]]"))
	assert.Equal(t, []string{"readme.txt", "notes.txt"}, got)
}
