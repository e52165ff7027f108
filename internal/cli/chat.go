package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cvassist/internal/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat about the indexed CVs",
	Long: `Opens a terminal chat. Each question is answered from the indexed CV
excerpts; recent exchanges are carried into follow-up questions.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
	querier, err := buildQuerier()
	if err != nil {
		return err
	}

	m := tui.New(querier)
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
