package rule

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultRule(t *testing.T) {
	r := Default(false)

	ct, found := r.Types.Get("feat")
	require.True(t, found)
	assert.Equal(t, "A new feature", ct.Desc)
	assert.Empty(t, ct.Emoji)

	assert.Equal(t, 72, r.SubjectLimit)
	assert.Equal(t, `\n`, r.LineBreak)
	assert.Equal(t, "none", r.NoneLabel)
	assert.NotEmpty(t, r.NewSaveLabel)
	assert.NotEmpty(t, r.NewOnceLabel)
	assert.False(t, r.SkipScope)
	assert.False(t, r.UseBreakingChange)
}

func TestDefaultRuleWithEmoji(t *testing.T) {
	r := Default(true)

	assert.Equal(t, ":sparkles:", r.EmojiOf("feat"))
	assert.Equal(t, ":bug:", r.EmojiOf("fix"))
	assert.Empty(t, r.EmojiOf("unknown"))
}

func TestReadFileYAML(t *testing.T) {
	path := writeFile(t, ".cw.yaml", `
types:
  feat:
    description: Feature work
  fix:
    description: Bug fixes
useBreakingChange: true
denyAdlibType: true
subjectLimit: 50
`)

	r, err := ReadFile(path)

	require.NoError(t, err)
	ct, found := r.Types.Get("feat")
	require.True(t, found)
	assert.Equal(t, "Feature work", ct.Desc)
	assert.True(t, r.UseBreakingChange)
	assert.True(t, r.DenyAdlibType)
	assert.Equal(t, 50, r.SubjectLimit)
	// unset values are normalized
	assert.Equal(t, "none", r.NoneLabel)
	assert.Equal(t, `\n`, r.LineBreak)
}

func TestReadFileJSON(t *testing.T) {
	path := writeFile(t, ".cw.json", `{
  "types": {"fix": {"description": "A bug fix", "emoji": ":bug:"}},
  "skipScope": true
}`)

	r, err := ReadFile(path)

	require.NoError(t, err)
	assert.True(t, r.SkipScope)
	assert.Equal(t, ":bug:", r.EmojiOf("fix"))
}

func TestReadFileUnknownExtensionTriesBoth(t *testing.T) {
	path := writeFile(t, ".cw", `{"skipBody": true}`)

	r, err := ReadFile(path)

	require.NoError(t, err)
	assert.True(t, r.SkipBody)
}

func TestReadFileMissing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.yaml"))

	require.Error(t, err)
}

func TestReadFileGarbage(t *testing.T) {
	path := writeFile(t, ".cw.json", "not json at all {")

	_, err := ReadFile(path)

	require.Error(t, err)
}
