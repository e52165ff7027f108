package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List indexed candidates",
	Long:  `Lists every indexed candidate with its stored chunk count.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ingestor, err := buildIngestor()
	if err != nil {
		return err
	}

	counts, err := ingestor.List(context.Background())
	if err != nil {
		return fmt.Errorf("list failed: %w", err)
	}
	if len(counts) == 0 {
		cmd.Println("No candidates indexed yet. Run `cvassist ingest` first.")
		return nil
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	cmd.Printf("%d candidate(s):\n", len(names))
	for _, name := range names {
		cmd.Printf("  %-30s %d chunks\n", name, counts[name])
	}
	return nil
}
