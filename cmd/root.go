package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lnielsen-cern/docmeta/internal/doctext"
	"github.com/lnielsen-cern/docmeta/internal/pipeline"
	"github.com/lnielsen-cern/docmeta/internal/registry"
)

var (
	cfgFile string
	quiet   bool
	output  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "docmeta",
	Short: "A CLI tool for extracting bibliographic metadata from scholarly documents",
	Long: `Docmeta extracts bibliographic metadata (title, authors, DOI, publisher,
journal) for a scholarly document. It combines embedded document metadata,
DOI mining from the document text, and registry lookups into a single
normalized record, validating every network-derived result against the
document's own text before trusting it.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.docmeta.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "quiet output (suppress progress messages)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "human", "output format (human, json)")

	viper.SetDefault("threshold", 0.8)
	viper.SetDefault("window", 5000)
	viper.SetDefault("timeout", 15)
	viper.SetDefault("workers", 1)
	viper.SetDefault("rate", 5.0)
	viper.SetDefault("mailto", "")
	viper.SetDefault("crossref.api", registry.DefaultAPIBase)
	viper.SetDefault("datacite.api", registry.DefaultDataCiteBase)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".docmeta" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".docmeta")
	}

	viper.SetEnvPrefix("docmeta")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && !quiet {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newRegistryClient builds the shared registry client from configuration.
func newRegistryClient() *registry.Client {
	return registry.New(registry.Options{
		APIBase:           viper.GetString("crossref.api"),
		DataCiteBase:      viper.GetString("datacite.api"),
		MailTo:            viper.GetString("mailto"),
		Timeout:           time.Duration(viper.GetInt("timeout")) * time.Second,
		RequestsPerSecond: viper.GetFloat64("rate"),
	})
}

// newPipeline wires the production collaborators into an extraction pipeline.
func newPipeline(useEmbedded bool, workers int) *pipeline.Pipeline {
	cfg := pipeline.Config{
		Threshold:   viper.GetFloat64("threshold"),
		TextWindow:  viper.GetInt("window"),
		UseEmbedded: useEmbedded,
		Workers:     workers,
		CallTimeout: time.Duration(viper.GetInt("timeout")) * time.Second,
	}

	return pipeline.New(doctext.Reader{}, pipeline.XMPSource{}, newRegistryClient(), cfg)
}
