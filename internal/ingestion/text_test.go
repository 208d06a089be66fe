package ingestion

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanText_PreserveMarkdownHeadings(t *testing.T) {
	input := "# Title\n## Subtitle\nContent here"
	result := CleanText(input)

	assert.Contains(t, result, "# Title")
	assert.Contains(t, result, "## Subtitle")
	assert.Contains(t, result, "Content here")
}

func TestCleanText_PreserveBulletLists(t *testing.T) {
	input := "  - Item 1\n- Item 2\n* Item   3"
	result := CleanText(input)

	assert.Equal(t, "- Item 1\n- Item 2\n* Item 3", result)
}

func TestCleanText_NormalizeWhitespace(t *testing.T) {
	result := CleanText("Line    with \t multiple    spaces   ")
	assert.Equal(t, "Line with multiple spaces", result)
}

func TestCleanText_RemoveExcessiveBlankLines(t *testing.T) {
	result := CleanText("Line 1\n\n\n\n\nLine 2")
	assert.Equal(t, "Line 1\n\nLine 2", result)
}

func TestCleanText_NormalizeLineEndings(t *testing.T) {
	result := CleanText("Line 1\r\nLine 2\rLine 3\nLine 4")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestCleanText_EmptyInput(t *testing.T) {
	assert.Equal(t, "", CleanText(""))
	assert.Equal(t, "", CleanText("   \n\t\n  "))
}

func TestIsBulletLine(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"- Built APIs", true},
		{"* Led a team", true},
		{"• Deployed services", true},
		{"   ▪ Indented", true},
		{"1. Numbered", true},
		{"12) Numbered", true},
		{"2020 - Present", false},
		{"Experience", false},
		{"-dash without space", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBulletLine(tt.line))
		})
	}
}

func TestCountBullets(t *testing.T) {
	text := "Experience\n- Built APIs\n- Led team\nSkills\n• Go"
	assert.Equal(t, 3, CountBullets(text))
	assert.Equal(t, 0, CountBullets("no bullets here"))
}

func TestLoadFile_Text(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Experience:\r\n  Built   APIs in Go\n\n\n\nSkills: Go"), 0644))

	text, meta, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Experience:\nBuilt APIs in Go\n\nSkills: Go", text)
	require.NotNil(t, meta)
	assert.Equal(t, FormatText, meta.Format)
	assert.Equal(t, path, meta.Source)
	assert.Equal(t, ComputeHash(text), meta.Hash)
}

func TestLoadFile_HTML(t *testing.T) {
	html := `<html><body><nav>Home | Jobs</nav>
<div class="job-description"><h2>Requirements</h2><ul><li>Python</li><li>Docker</li></ul></div>
<footer>Copyright</footer></body></html>`
	path := filepath.Join(t.TempDir(), "job.html")
	require.NoError(t, os.WriteFile(path, []byte(html), 0644))

	text, meta, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatHTML, meta.Format)
	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "- Python")
	assert.Contains(t, text, "- Docker")
	assert.NotContains(t, text, "Home | Jobs")
	assert.NotContains(t, text, "Copyright")
}

func TestLoadFile_UnsupportedType(t *testing.T) {
	_, _, err := LoadFile("resume.pdf")

	var inputErr *InputError
	require.ErrorAs(t, err, &inputErr)
	assert.Contains(t, err.Error(), "unsupported file type")
}

func TestLoadFile_FileNotFound(t *testing.T) {
	_, _, err := LoadFile("/nonexistent/resume.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
