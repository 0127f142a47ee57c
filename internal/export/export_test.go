package export

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() Document {
	return Document{
		Name:  "standup",
		Title: "Daily Standup Notes",
		Summary: `## 1. Abstract Summary
The team reviewed **release blockers**.

## 2. Key Points
- Build is green
- QA starts Monday`,
		Transcript: "Good morning. The build is green! Any blockers? None from me. QA starts Monday.",
		CreatedAt:  time.Date(2024, 3, 4, 9, 30, 0, 0, time.UTC),
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleDoc())
	assert.True(t, strings.HasPrefix(md, "# Daily Standup Notes\n\n_2024-03-04 09:30_\n\n## 1. Abstract Summary"))
}

func TestHTML(t *testing.T) {
	doc := sampleDoc()
	doc.Title = "Q&A <Review>"

	html, err := HTML(doc)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Q&amp;A &lt;Review&gt;</h1>")
	assert.Contains(t, html, "<strong>release blockers</strong>")
	assert.Contains(t, html, "<li>Build is green</li>")
}

func TestTranscriptParagraphs(t *testing.T) {
	paras := transcriptParagraphs("One. Two! Three? Four. Five.", 2)
	assert.Equal(t, []string{"One. Two!", "Three? Four.", "Five."}, paras)
	assert.Empty(t, transcriptParagraphs("   ", 2))
}

func TestWriteAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")

	written, err := WriteAll(sampleDoc(), dir)
	require.NoError(t, err)
	require.Len(t, written, 4)

	for _, name := range []string{"standup.md", "standup.html", "standup.docx", "standup_transcript.docx"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.Greater(t, info.Size(), int64(0), name)
	}
}

func TestWriteAllWithoutTranscript(t *testing.T) {
	doc := sampleDoc()
	doc.Transcript = ""

	written, err := WriteAll(doc, t.TempDir())
	require.NoError(t, err)
	assert.Len(t, written, 3)
}
