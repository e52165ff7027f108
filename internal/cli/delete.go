package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cvassist/internal/domain"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <candidate>",
	Short: "Remove an indexed candidate",
	Long:  `Removes every stored chunk belonging to the candidate.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	candidate := args[0]

	ingestor, err := buildIngestor()
	if err != nil {
		return err
	}

	removed, err := ingestor.Delete(context.Background(), candidate)
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("candidate %q is not indexed", candidate)
	}
	if err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	cmd.Printf("Deleted %d chunks for %s\n", removed, candidate)
	return nil
}
