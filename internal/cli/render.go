package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"cvassist/internal/domain"
)

var (
	sourceBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1).
			Width(70)
	sourceHeadStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	sourceMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// renderSources draws one box per retrieved chunk, ranked by
// relevance, so the user can verify the answer against its grounding.
func renderSources(matches []domain.RetrievalMatch) string {
	var b strings.Builder
	b.WriteString(sourceMetaStyle.Render(fmt.Sprintf("Source chunks (%d retrieved, ranked by relevance)", len(matches))))
	b.WriteString("\n")
	for i, m := range matches {
		head := sourceHeadStyle.Render(fmt.Sprintf("[%d] %s", i+1, m.Payload.Candidate))
		meta := sourceMetaStyle.Render(fmt.Sprintf("chunk %d/%d  score %.3f",
			m.Payload.Index+1, m.Payload.TotalChunks, m.Score))
		body := strings.TrimSpace(m.Payload.Text)
		b.WriteString(sourceBoxStyle.Render(head + "  " + meta + "\n" + body))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
