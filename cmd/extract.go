package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lnielsen-cern/docmeta/internal/pipeline"
)

var (
	useEmbedded    bool
	extractWorkers int
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <document>",
	Short: "Extract a validated bibliographic record for a document",
	Long: `Extract runs the full metadata pipeline on one document: it inspects the
embedded metadata for a DOI, resolves the issuing registry, fetches the
registry record, and falls back to mining DOI candidates from the document
text when no embedded identifier exists. Network-derived records are
accepted only when they validate against the document's own text.

The result may be empty; an unreadable document or unreachable registry
degrades the extraction rather than failing it.

Examples:
  docmeta extract paper.pdf
  docmeta extract --use-embedded --workers 4 paper.pdf
  docmeta extract -o json paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func runExtract(cmd *cobra.Command, args []string) error {
	path := args[0]

	if !quiet {
		fmt.Fprintf(os.Stderr, "Extracting: %s\n", path)
		fmt.Fprintf(os.Stderr, "Threshold: %.2f\n", viper.GetFloat64("threshold"))
	}

	p := newPipeline(useEmbedded, extractWorkers)

	result := p.Extract(cmd.Context(), path)

	return outputResult(result)
}

func outputResult(result pipeline.Result) error {
	if output == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		return encoder.Encode(result)
	}

	fmt.Print(formatHuman(result))

	return nil
}

// formatHuman renders the result for terminal output, skipping fields
// the extraction did not fill.
func formatHuman(result pipeline.Result) string {
	if result.Record.IsEmpty() {
		return "No metadata found.\n"
	}

	rec := result.Record

	var b strings.Builder

	fmt.Fprintf(&b, "%-10s %s\n", "Source:", result.Source)

	if result.Validation != nil {
		fmt.Fprintf(&b, "%-10s %.2f (threshold %.2f)\n", "Score:",
			result.Validation.Score, result.Validation.Threshold)
	}

	writeField(&b, "DOI", rec.DOI)
	writeField(&b, "Title", strings.Join(rec.Title, "; "))
	writeField(&b, "Author", strings.Join(rec.Author, "; "))
	writeField(&b, "Publisher", rec.Publisher)
	writeField(&b, "Type", rec.Type)
	writeField(&b, "Volume", rec.Volume)
	writeField(&b, "Issue", rec.Issue)
	writeField(&b, "ISSN", strings.Join(rec.ISSN, ", "))
	writeField(&b, "ISBN", strings.Join(rec.ISBN, ", "))
	writeField(&b, "License", rec.LicenseURL)
	writeField(&b, "URL", rec.URL)

	if rec.Journal != nil {
		writeField(&b, "Journal", rec.Journal.Title)
	}

	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}

	fmt.Fprintf(b, "%-10s %s\n", label+":", value)
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().BoolVarP(&useEmbedded, "use-embedded", "e", false, "merge validated embedded metadata into the result")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "w", 1, "number of parallel candidate lookups")
	extractCmd.Flags().Float64("threshold", 0.8, "validation acceptance threshold")
	extractCmd.Flags().Int("window", 5000, "characters of document text scored during validation")

	cobra.CheckErr(viper.BindPFlag("threshold", extractCmd.Flags().Lookup("threshold")))
	cobra.CheckErr(viper.BindPFlag("window", extractCmd.Flags().Lookup("window")))
}
