package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnielsen-cern/docmeta/internal/doctext"
)

var maxPages int

// textCmd represents the text command
var textCmd = &cobra.Command{
	Use:   "text <document>",
	Short: "Dump the plain text extracted from a document",
	Long: `Text converts a document to the plain text the mine and extract commands
operate on. Useful for inspecting what the pipeline actually sees when a
document mines or validates unexpectedly.

Examples:
  docmeta text paper.pdf
  docmeta text --max-pages 2 paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runText,
}

func runText(cmd *cobra.Command, args []string) error {
	reader := doctext.Reader{MaxPages: maxPages}

	text, ok := reader.Text(args[0])
	if !ok {
		return fmt.Errorf("no readable text in %s", args[0])
	}

	fmt.Print(text)

	return nil
}

func init() {
	rootCmd.AddCommand(textCmd)

	textCmd.Flags().IntVar(&maxPages, "max-pages", 0, "limit fallback PDF extraction to the first N pages (0 = all)")
}
