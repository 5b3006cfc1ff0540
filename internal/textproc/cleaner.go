package textproc

import (
	"regexp"
	"strings"
)

// PDF extraction leaves encoding artifacts behind; cleaning runs on chunk
// text before storage and again on retrieved snippets before they reach a
// prompt. Clean is pure, total and idempotent.
var (
	nonPrintable   = regexp.MustCompile(`[^\x20-\x7E\t\n\r]`)
	newlineRuns    = regexp.MustCompile(`\n+`)
	strayArtifacts = regexp.MustCompile(`[•#§ï]`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// Clean normalizes extracted text: drops characters outside the basic
// printable range, collapses newline runs, strips stray PDF artifacts,
// collapses whitespace runs to single spaces and trims the result.
// Empty input yields an empty string.
func Clean(text string) string {
	text = nonPrintable.ReplaceAllString(text, "")
	text = newlineRuns.ReplaceAllString(text, "\n")
	text = strayArtifacts.ReplaceAllString(text, "")
	text = whitespaceRuns.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
