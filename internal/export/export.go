package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Document is a finished summary ready to be written to disk.
type Document struct {
	Name       string // base file name without extension
	Title      string
	Summary    string
	Transcript string
	CreatedAt  time.Time
}

// WriteAll writes <name>.md, <name>.html, <name>.docx and, when a transcript
// is present, <name>_transcript.docx into dir. It returns the paths written.
func WriteAll(doc Document, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	base := filepath.Join(dir, doc.Name)
	var written []string

	steps := []struct {
		path  string
		write func(Document, string) error
	}{
		{base + ".md", WriteMarkdown},
		{base + ".html", WriteHTML},
		{base + ".docx", WriteDOCX},
	}
	if strings.TrimSpace(doc.Transcript) != "" {
		steps = append(steps, struct {
			path  string
			write func(Document, string) error
		}{base + "_transcript.docx", WriteTranscriptDOCX})
	}

	for _, s := range steps {
		if err := s.write(doc, s.path); err != nil {
			return written, fmt.Errorf("write %s: %w", filepath.Base(s.path), err)
		}
		written = append(written, s.path)
	}
	return written, nil
}

// Markdown renders the summary as a standalone markdown note.
func Markdown(doc Document) string {
	return fmt.Sprintf("# %s\n\n_%s_\n\n%s\n",
		doc.Title,
		doc.CreatedAt.Format("2006-01-02 15:04"),
		strings.TrimSpace(doc.Summary),
	)
}

func WriteMarkdown(doc Document, path string) error {
	return os.WriteFile(path, []byte(Markdown(doc)), 0644)
}
