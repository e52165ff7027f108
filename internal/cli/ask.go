package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Ask a single question about the indexed CVs",
	Long: `Answers one question grounded in the indexed CV excerpts and shows
the source chunks the answer was based on.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askNoSources, "no-sources", false, "hide the source chunk panel")
	rootCmd.AddCommand(askCmd)
}

var askNoSources bool

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	querier, err := buildQuerier()
	if err != nil {
		return err
	}

	answer, err := querier.Answer(context.Background(), question, nil)
	if err != nil {
		return err
	}

	cmd.Println()
	cmd.Println(answer.Text)
	if !askNoSources && answer.Grounded() {
		cmd.Println()
		cmd.Println(renderSources(answer.Matches))
	}
	return nil
}
