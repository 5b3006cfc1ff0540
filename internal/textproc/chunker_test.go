package textproc

import (
	"strings"
	"testing"
)

func TestChunker_Split_ShortInput(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	text := "A short document that fits in one chunk."
	chunks := c.Split(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0].Text != text {
		t.Errorf("single chunk should equal the input, got %q", chunks[0].Text)
	}
	if chunks[0].Position != 0 {
		t.Errorf("expected position 0, got %d", chunks[0].Position)
	}
}

func TestChunker_Split_EmptyInput(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	for _, input := range []string{"", "   ", "\n\n\t "} {
		if chunks := c.Split(input); len(chunks) != 0 {
			t.Errorf("expected 0 chunks for %q, got %d", input, len(chunks))
		}
	}
}

func TestChunker_Split_ExactOverlap(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	// 2500 chars, chunkSize 1000, overlap 200: 0..1000, 800..1800,
	// 1600..2500.
	text := strings.Repeat("a", 2500)
	chunks := c.Split(text)

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	first := chunks[0].Text
	second := chunks[1].Text
	if !strings.HasPrefix(second, first[len(first)-200:]) {
		t.Error("second chunk should start with the last 200 characters of the first")
	}
	if len(chunks[0].Text) != 1000 || len(chunks[1].Text) != 1000 {
		t.Errorf("expected full-size chunks, got %d and %d", len(chunks[0].Text), len(chunks[1].Text))
	}
	if chunks[2].EndOffset != 2500 {
		t.Errorf("last chunk should end at 2500, got %d", chunks[2].EndOffset)
	}
}

func TestChunker_Split_OverlapInvariant(t *testing.T) {
	cfg := ChunkConfig{ChunkSize: 300, Overlap: 60, PreserveSentences: true, PreserveParagraphs: true}
	c := NewChunker(cfg)

	// Sentence-shaped text so break points actually move the cut.
	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("The quick brown fox jumps over the lazy dog near the river bank. ")
	}
	text := b.String()

	chunks := c.Split(text)
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}

	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1], chunks[i]
		if cur.StartOffset != prev.EndOffset-cfg.Overlap {
			t.Errorf("chunk %d starts at %d, want %d", i, cur.StartOffset, prev.EndOffset-cfg.Overlap)
		}
		tail := prev.Text[len(prev.Text)-cfg.Overlap:]
		if !strings.HasPrefix(cur.Text, tail) {
			t.Errorf("chunk %d does not repeat the previous chunk's tail", i)
		}
	}
}

func TestChunker_Split_Deterministic(t *testing.T) {
	c := NewChunker(DefaultChunkConfig())

	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString("Paragraph text with several sentences. Another sentence follows here.\n\n")
	}
	text := b.String()

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

func TestChunker_Split_PrefersSentenceBoundary(t *testing.T) {
	cfg := ChunkConfig{ChunkSize: 100, Overlap: 20, PreserveSentences: true, PreserveParagraphs: true}
	c := NewChunker(cfg)

	text := strings.Repeat("One short sentence ends here. ", 20)
	chunks := c.Split(text)

	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	// Every non-final chunk should end right after a sentence ender.
	for i, chunk := range chunks[:len(chunks)-1] {
		if !strings.HasSuffix(chunk.Text, ". ") {
			t.Errorf("chunk %d does not end at a sentence boundary: %q", i, chunk.Text[len(chunk.Text)-10:])
		}
	}
}

func TestChunker_Split_PositionsAreOrdinal(t *testing.T) {
	c := NewChunker(ChunkConfig{ChunkSize: 50, Overlap: 10})

	chunks := c.Split(strings.Repeat("b", 200))
	for i, chunk := range chunks {
		if chunk.Position != i {
			t.Errorf("chunk %d has position %d", i, chunk.Position)
		}
	}
}
