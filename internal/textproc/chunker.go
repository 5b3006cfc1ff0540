package textproc

import "strings"

// ChunkConfig configures the chunker behavior.
type ChunkConfig struct {
	// ChunkSize is the maximum characters per chunk
	ChunkSize int

	// Overlap is the character overlap between consecutive chunks
	Overlap int

	// PreserveSentences tries to break at sentence boundaries
	PreserveSentences bool

	// PreserveParagraphs tries to break at paragraph boundaries
	PreserveParagraphs bool
}

// DefaultChunkConfig returns sensible defaults.
func DefaultChunkConfig() ChunkConfig {
	return ChunkConfig{
		ChunkSize:          1000,
		Overlap:            200,
		PreserveSentences:  true,
		PreserveParagraphs: true,
	}
}

// Chunk is one bounded slice of a document's text.
type Chunk struct {
	Text        string
	Position    int
	StartOffset int
	EndOffset   int
}

// Chunker splits text into overlapping chunks. Splitting is deterministic:
// the same text and config always yield the same sequence. Each chunk
// after the first starts exactly Overlap characters before the previous
// chunk's end, so consecutive chunks share exactly that many characters.
type Chunker struct {
	config ChunkConfig
}

// NewChunker creates a new chunker with the given config.
func NewChunker(config ChunkConfig) *Chunker {
	return &Chunker{config: config}
}

// Split splits text into chunks. Text no longer than ChunkSize yields a
// single chunk equal to the input; empty or whitespace-only text yields
// zero chunks.
func (c *Chunker) Split(text string) []Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if len(text) <= c.config.ChunkSize {
		return []Chunk{{
			Text:        text,
			Position:    0,
			StartOffset: 0,
			EndOffset:   len(text),
		}}
	}

	var chunks []Chunk
	start := 0
	position := 0

	for start < len(text) {
		end := start + c.config.ChunkSize
		if end > len(text) {
			end = len(text)
		}

		// Pull the cut back to a sentence or paragraph boundary when one
		// is close enough
		if end < len(text) && c.config.PreserveSentences {
			if bp := c.breakPoint(text, start, end); bp > start {
				end = bp
			}
		}

		chunks = append(chunks, Chunk{
			Text:        text[start:end],
			Position:    position,
			StartOffset: start,
			EndOffset:   end,
		})
		position++

		if end >= len(text) {
			break
		}

		// Step back by the configured overlap, always advancing
		next := end - c.config.Overlap
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks
}

// breakPoint searches the tail of the window for a boundary to cut at:
// paragraph first, then sentence, then word. Returns maxEnd when nothing
// better is found.
func (c *Chunker) breakPoint(text string, start, maxEnd int) int {
	searchStart := maxEnd - 100
	if searchStart < start {
		searchStart = start
	}

	window := text[searchStart:maxEnd]

	if c.config.PreserveParagraphs {
		if idx := strings.LastIndex(window, "\n\n"); idx != -1 {
			return searchStart + idx + 2
		}
	}

	if c.config.PreserveSentences {
		enders := []string{". ", "! ", "? ", ".\n", "!\n", "?\n"}
		best := -1
		for _, ender := range enders {
			if idx := strings.LastIndex(window, ender); idx != -1 {
				if after := idx + len(ender); after > best {
					best = after
				}
			}
		}
		if best > 0 {
			return searchStart + best
		}
	}

	if idx := strings.LastIndex(window, " "); idx != -1 {
		return searchStart + idx + 1
	}

	return maxEnd
}
