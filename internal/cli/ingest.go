package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [dir]",
	Short: "Index new CV files from a directory",
	Long: `Extracts text from every supported CV file (txt, pdf, docx) in the
directory, chunks and embeds it, and stores the vectors. Files whose
candidate is already indexed are skipped, so re-running is safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	dir := cfg.DataDir
	if len(args) == 1 {
		dir = args[0]
	}

	ingestor, err := buildIngestor()
	if err != nil {
		return err
	}

	report, err := ingestor.Ingest(context.Background(), dir)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	for _, f := range report.Files {
		switch {
		case f.Skipped:
			cmd.Printf("  %-30s already indexed, skipped\n", f.FileName)
		case f.Err != nil:
			cmd.Printf("  %-30s FAILED: %v\n", f.FileName, f.Err)
		default:
			cmd.Printf("  %-30s %d chunks stored\n", f.FileName, f.Chunks)
		}
	}
	cmd.Printf("\nDone: %d new chunks added", report.Added)
	if failed := report.Failed(); len(failed) > 0 {
		cmd.Printf(", %d file(s) failed", len(failed))
	}
	cmd.Println()
	return nil
}
