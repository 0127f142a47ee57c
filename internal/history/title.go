package history

import (
	"fmt"
	"strings"
)

// MaxTitleWords caps generated titles.
const MaxTitleWords = 10

const titlePrompt = `Read the following summary and generate a short professional title (max 10 words).
It should look like a meeting note headline.

Summary:
%s`

// TitleParts builds the generation parts for a title request.
func TitleParts(summary string) []string {
	return []string{fmt.Sprintf(titlePrompt, summary)}
}

// CleanTitle strips markdown decoration and quotes from a generated title and
// keeps at most MaxTitleWords words.
func CleanTitle(raw string) string {
	line := strings.TrimSpace(raw)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.Trim(line, " \t\"'*#`")
	line = strings.TrimPrefix(line, "Title:")

	words := strings.Fields(line)
	if len(words) > MaxTitleWords {
		words = words[:MaxTitleWords]
	}
	return strings.Join(words, " ")
}
