package extractors

import (
	"strings"
	"testing"
)

func TestMarkdownExtractor_Extract(t *testing.T) {
	e := NewMarkdownExtractor()

	src := []byte("# Title\n\nFirst paragraph with **bold** text.\n\n- item one\n- item two\n")
	doc, err := e.Extract("notes.md", src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Filename != "notes.md" {
		t.Errorf("expected filename notes.md, got %s", doc.Filename)
	}
	if doc.PageCount != 1 {
		t.Errorf("markdown page count should be 1, got %d", doc.PageCount)
	}
	for _, want := range []string{"Title", "First paragraph with", "bold", "item one", "item two"} {
		if !strings.Contains(doc.Text, want) {
			t.Errorf("extracted text missing %q: %q", want, doc.Text)
		}
	}
	if strings.Contains(doc.Text, "#") || strings.Contains(doc.Text, "**") {
		t.Errorf("extracted text should not contain markdown syntax: %q", doc.Text)
	}
}

func TestMarkdownExtractor_Extract_CodeBlock(t *testing.T) {
	e := NewMarkdownExtractor()

	doc, err := e.Extract("snippet.md", []byte("Intro.\n\n```\nfmt.Println(42)\n```\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(doc.Text, "fmt.Println(42)") {
		t.Errorf("code block content missing: %q", doc.Text)
	}
}

func TestMarkdownExtractor_Extract_Empty(t *testing.T) {
	e := NewMarkdownExtractor()

	doc, err := e.Extract("empty.md", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Text != "" {
		t.Errorf("expected empty text, got %q", doc.Text)
	}
}

func TestPDFExtractor_Extract_InvalidData(t *testing.T) {
	e := NewPDFExtractor()

	if _, err := e.Extract("broken.pdf", []byte("not a pdf")); err == nil {
		t.Error("expected error for invalid pdf bytes")
	}
}
