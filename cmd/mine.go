package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/lnielsen-cern/docmeta/internal/doctext"
	"github.com/lnielsen-cern/docmeta/internal/miner"
)

// mineCmd represents the mine command
var mineCmd = &cobra.Command{
	Use:   "mine <document>",
	Short: "Mine DOI candidates from a document's text",
	Long: `Mine converts the document to plain text and lists every DOI-shaped
candidate found, in first-seen order with duplicates removed. Sandbox
identifiers and unresolved placeholders are excluded; supplementary-file
suffixes are truncated.

Pass "-" to read plain text from stdin.

Examples:
  docmeta mine paper.pdf
  cat notes.txt | docmeta mine -`,
	Args: cobra.ExactArgs(1),
	RunE: runMine,
}

func runMine(cmd *cobra.Command, args []string) error {
	text, err := loadText(args[0])
	if err != nil {
		return err
	}

	candidates := miner.Mine(text)

	if output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(candidates)
	}

	if len(candidates) == 0 {
		fmt.Println("No DOI candidates found.")
		return nil
	}

	for _, doi := range candidates {
		fmt.Println(doi)
	}

	return nil
}

func loadText(arg string) (string, error) {
	if arg == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}

		return string(data), nil
	}

	text, ok := doctext.Reader{}.Text(arg)
	if !ok {
		return "", fmt.Errorf("no readable text in %s", arg)
	}

	return text, nil
}

func init() {
	rootCmd.AddCommand(mineCmd)
}
