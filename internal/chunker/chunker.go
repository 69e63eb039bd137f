// Package chunker splits article text into fixed-size word windows for
// embedding and similarity search.
package chunker

import "strings"

// DefaultWordsPerChunk is the window size used by the ingestion pipeline.
const DefaultWordsPerChunk = 500

// Chunk is one word window of the source text
type Chunk struct {
	Text      string
	WordCount int
}

// Chunker groups whitespace-separated words into consecutive windows of
// WordsPerChunk words. The final window holds the remainder. Windows do not
// overlap and no sentence-boundary awareness is applied; a window may split
// mid-sentence.
type Chunker struct {
	WordsPerChunk int
}

// New creates a Chunker with the given window size (DefaultWordsPerChunk if
// wordsPerChunk <= 0).
func New(wordsPerChunk int) *Chunker {
	if wordsPerChunk <= 0 {
		wordsPerChunk = DefaultWordsPerChunk
	}
	return &Chunker{WordsPerChunk: wordsPerChunk}
}

// Split chunks text into word windows. It is pure and deterministic.
// Empty or whitespace-only input yields no chunks; rejecting such input is
// the caller's responsibility.
func (c *Chunker) Split(text string) []Chunk {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	chunks := make([]Chunk, 0, (len(words)+c.WordsPerChunk-1)/c.WordsPerChunk)
	for start := 0; start < len(words); start += c.WordsPerChunk {
		end := start + c.WordsPerChunk
		if end > len(words) {
			end = len(words)
		}
		window := words[start:end]
		chunks = append(chunks, Chunk{
			Text:      strings.Join(window, " "),
			WordCount: len(window),
		})
	}
	return chunks
}
