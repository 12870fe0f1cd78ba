package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryHasTag(t *testing.T) {
	entry := &Entry{Tags: "python, flask ,web"}

	assert.True(t, entry.HasTag("python"))
	assert.True(t, entry.HasTag("flask"))
	assert.True(t, entry.HasTag("web"))

	// substrings of a token do not match
	assert.False(t, entry.HasTag("py"))
	assert.False(t, entry.HasTag("lask"))

	// matching is case-sensitive
	assert.False(t, entry.HasTag("Python"))

	assert.False(t, entry.HasTag("rust"))
	assert.False(t, entry.HasTag(""))
}

func TestEntryTagList(t *testing.T) {
	entry := &Entry{Tags: " python, flask ,,web "}
	assert.Equal(t, []string{"python", "flask", "web"}, entry.TagList())

	empty := &Entry{Tags: ""}
	assert.Empty(t, empty.TagList())
}
