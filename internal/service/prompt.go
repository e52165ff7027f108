package service

import (
	"strings"

	"cvassist/internal/domain"
)

// NoContextAnswer is the fixed response when nothing clears the score
// threshold. It is a normal answer, not an error, and the generator
// is never called for it.
const NoContextAnswer = "No relevant CV content found. Try rephrasing the question or index more CVs."

const systemPrompt = `You are an expert HR assistant helping a recruiter evaluate candidates.

Rules:
- Answer ONLY from the CV excerpts provided - never invent information
- Always mention the candidate's name when referencing their data
- Be concise but complete; use structure when comparing multiple candidates
- If relevant info is missing from the excerpts, say so clearly
- End with a short recommendation when the question involves selection or ranking`

// historyTurns caps how much prior conversation travels in the
// prompt: the last two exchanges.
const historyTurns = 4

var sectionRule = strings.Repeat("=", 50)

// buildContext groups matches into per-candidate sections, candidates
// ordered by their best match.
func buildContext(matches []domain.RetrievalMatch) string {
	var order []string
	byCandidate := make(map[string][]domain.RetrievalMatch)
	for _, m := range matches {
		if _, seen := byCandidate[m.Payload.Candidate]; !seen {
			order = append(order, m.Payload.Candidate)
		}
		byCandidate[m.Payload.Candidate] = append(byCandidate[m.Payload.Candidate], m)
	}

	var parts []string
	for _, candidate := range order {
		parts = append(parts, sectionRule+"\nCANDIDATE: "+candidate+"\n"+sectionRule)
		for _, m := range byCandidate[candidate] {
			parts = append(parts, m.Payload.Text, "")
		}
	}
	return strings.Join(parts, "\n")
}

// buildPrompt fills the fixed template with the grounding context,
// optional recent history and the question.
func buildPrompt(question, context string, history []domain.Turn) string {
	var b strings.Builder
	b.WriteString(systemPrompt)
	b.WriteString("\n\n")

	if len(history) > historyTurns {
		history = history[len(history)-historyTurns:]
	}
	if len(history) > 0 {
		b.WriteString("Previous conversation:\n")
		for _, turn := range history {
			role := "Recruiter"
			if turn.Role == domain.RoleAssistant {
				role = "Assistant"
			}
			b.WriteString(role + ": " + turn.Content + "\n\n")
		}
	}

	b.WriteString("CV Excerpts:\n")
	b.WriteString(context)
	b.WriteString("\n\n---\n\nRecruiter question: ")
	b.WriteString(question)
	return b.String()
}
