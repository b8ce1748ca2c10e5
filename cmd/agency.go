package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lnielsen-cern/docmeta/internal/miner"
)

// agencyCmd represents the agency command
var agencyCmd = &cobra.Command{
	Use:   "agency <doi>",
	Short: "Resolve which registration agency issued a DOI",
	Long: `Agency queries the registry for the registrar of a DOI. The answer
decides which provider the extract pipeline fetches metadata from:
crossref, datacite, or unknown (any other registrar).

Examples:
  docmeta agency 10.1000/xyz123
  docmeta agency doi:10.5061/dryad.example`,
	Args: cobra.ExactArgs(1),
	RunE: runAgency,
}

func runAgency(cmd *cobra.Command, args []string) error {
	doi := miner.Canonical(args[0])
	if doi == "" {
		return fmt.Errorf("%q is not a DOI", args[0])
	}

	client := newRegistryClient()

	agency, err := client.ResolveAgency(cmd.Context(), doi)
	if err != nil {
		return fmt.Errorf("failed to resolve agency for %s: %w", doi, err)
	}

	fmt.Println(agency)

	return nil
}

func init() {
	rootCmd.AddCommand(agencyCmd)
}
