package chunker

// DefaultMaxChunkSize is the largest chunk handed to the summarizer, in
// characters.
const DefaultMaxChunkSize = 6000

// Chunk is a contiguous slice of a transcript.
type Chunk struct {
	Index int
	Text  string
}

// Size is the chunk length in characters.
func (c Chunk) Size() int {
	n := 0
	for range c.Text {
		n++
	}
	return n
}

// Split cuts text into chunks of at most maxSize characters. Joining the
// chunk texts in index order gives back text exactly. Empty text yields no
// chunks; maxSize <= 0 uses DefaultMaxChunkSize.
func Split(text string, maxSize int) []Chunk {
	if text == "" {
		return nil
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}

	var chunks []Chunk
	start, count := 0, 0
	for i := range text {
		if count == maxSize {
			chunks = append(chunks, Chunk{Index: len(chunks), Text: text[start:i]})
			start, count = i, 0
		}
		count++
	}
	chunks = append(chunks, Chunk{Index: len(chunks), Text: text[start:]})

	return chunks
}

// Whole returns text as a single chunk, for single-pass summarization.
func Whole(text string) []Chunk {
	if text == "" {
		return nil
	}
	return []Chunk{{Index: 0, Text: text}}
}
