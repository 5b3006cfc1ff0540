package domain

import (
	"fmt"
	"strings"
)

// Persona names a system-instruction template constraining the generator's
// tone and scope. The set is closed; external input is parsed once at the
// boundary and unknown keys resolve to PersonaDefault.
type Persona string

const (
	PersonaDefault Persona = "default"
	PersonaLawyer  Persona = "lawyer"
	PersonaTeacher Persona = "teacher"
)

// FallbackAnswer is the fixed sentence every persona instructs the
// generator to emit when the answer is not derivable from the context. It
// is also substituted as the answer when generation itself fails.
const FallbackAnswer = "This detail isn't mentioned in the context."

var personaInstructions = map[Persona]string{
	PersonaDefault: `You are a helpful AI assistant.
Answer strictly using the provided context.
If not found, say: "` + FallbackAnswer + `"`,

	PersonaLawyer: `You are a professional lawyer.
Answer formally and legally.
Base your answers strictly on the context.
If not found, say: "` + FallbackAnswer + `"`,

	PersonaTeacher: `You are a friendly teacher.
Explain clearly in simple terms.
Use examples if helpful.
Only use the context provided.
If not found, say: "` + FallbackAnswer + `"`,
}

// ParsePersona maps external input to a persona. Unknown or absent keys
// fall back to PersonaDefault; this never fails.
func ParsePersona(s string) Persona {
	p := Persona(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := personaInstructions[p]; ok {
		return p
	}
	return PersonaDefault
}

// Instructions returns the system-instruction template for the persona.
func (p Persona) Instructions() string {
	if instr, ok := personaInstructions[p]; ok {
		return instr
	}
	return personaInstructions[PersonaDefault]
}

// BuildPrompt combines persona instructions, labelled context blocks and
// the literal question into a single generation prompt.
func BuildPrompt(persona Persona, contextBlocks []string, question string) string {
	var b strings.Builder
	b.WriteString(persona.Instructions())
	b.WriteString("\n\nCONTEXT BLOCKS:\n")
	for i, block := range contextBlocks {
		fmt.Fprintf(&b, "--- BLOCK %d ---\n%s\n", i+1, block)
	}
	b.WriteString("\nQUESTION: ")
	b.WriteString(question)
	return b.String()
}

// SanitizeAnswer strips literal triple-backtick sequences from generator
// output before it is returned to the client.
func SanitizeAnswer(answer string) string {
	return strings.ReplaceAll(answer, "```", "")
}
