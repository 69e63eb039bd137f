package chunker

import (
	"fmt"
	"strings"
	"testing"
)

// nWords builds a text of n distinct words separated by mixed whitespace runs.
func nWords(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i > 0 {
			switch i % 3 {
			case 0:
				b.WriteString("\n\t")
			case 1:
				b.WriteString("  ")
			default:
				b.WriteString(" ")
			}
		}
		fmt.Fprintf(&b, "w%d", i)
	}
	return b.String()
}

func TestChunker_WindowSizes(t *testing.T) {
	testCases := []struct {
		name          string
		words         int
		wordsPerChunk int
		wantSizes     []int
	}{
		{"exact multiple", 1000, 500, []int{500, 500}},
		{"remainder", 1200, 500, []int{500, 500, 200}},
		{"single partial", 37, 500, []int{37}},
		{"one word", 1, 500, []int{1}},
		{"tiny windows", 7, 3, []int{3, 3, 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			chunks := New(tc.wordsPerChunk).Split(nWords(tc.words))
			if len(chunks) != len(tc.wantSizes) {
				t.Fatalf("expected %d chunks, got %d", len(tc.wantSizes), len(chunks))
			}
			for i, want := range tc.wantSizes {
				if chunks[i].WordCount != want {
					t.Errorf("chunk %d: expected %d words, got %d", i, want, chunks[i].WordCount)
				}
				if got := len(strings.Fields(chunks[i].Text)); got != want {
					t.Errorf("chunk %d: text holds %d words, expected %d", i, got, want)
				}
			}
		})
	}
}

func TestChunker_EmptyInput(t *testing.T) {
	c := New(500)
	for _, input := range []string{"", "   ", "\n\t \r\n"} {
		if chunks := c.Split(input); len(chunks) != 0 {
			t.Errorf("expected no chunks for %q, got %d", input, len(chunks))
		}
	}
}

func TestChunker_Reconstruction(t *testing.T) {
	text := nWords(1234)
	chunks := New(500).Split(text)

	parts := make([]string, len(chunks))
	for i, ch := range chunks {
		parts[i] = ch.Text
	}
	joined := strings.Join(parts, " ")

	normalized := strings.Join(strings.Fields(text), " ")
	if joined != normalized {
		t.Error("concatenated chunks do not reconstruct the whitespace-normalized input")
	}
}

func TestChunker_Deterministic(t *testing.T) {
	text := nWords(750)
	c := New(500)

	first := c.Split(text)
	second := c.Split(text)

	if len(first) != len(second) {
		t.Fatalf("chunk counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("chunk %d differs between runs", i)
		}
	}
}

func TestNew_DefaultWindow(t *testing.T) {
	if c := New(0); c.WordsPerChunk != DefaultWordsPerChunk {
		t.Errorf("expected default window %d, got %d", DefaultWordsPerChunk, c.WordsPerChunk)
	}
	if c := New(-5); c.WordsPerChunk != DefaultWordsPerChunk {
		t.Errorf("expected default window for negative input, got %d", c.WordsPerChunk)
	}
}
