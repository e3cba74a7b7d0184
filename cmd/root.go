package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/config"
	"github.com/jsphweid/voicedex/logger"
	"github.com/spf13/cobra"
)

var (
	flagConfig        string
	flagVocab         string
	flagFormat        string
	flagMaxAliasDepth int
)

// cfg is loaded before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "voicedex",
	Short:         "Piano chord and scale vocabulary",
	Long:          `Reads an S-expression chord and scale vocabulary, then lists, exports, plays and serves it.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := validateFormat(flagFormat); err != nil {
			return err
		}
		loaded, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cfg = loaded
		logger.NewLogger(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $CONFIG_PATH or ./voicedex.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagVocab, "vocab", "", "vocabulary file (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", formatText, "output format: json|text|yaml")
	rootCmd.PersistentFlags().IntVar(&flagMaxAliasDepth, "max-alias-depth", 0, "longest alias chain followed (default from config)")
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var c *config.Config
	var err error
	if flagConfig != "" {
		c, err = config.LoadFile(flagConfig)
	} else {
		c, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("vocab") {
		c.Vocab.Path = flagVocab
	}
	if flags.Changed("max-alias-depth") {
		c.Vocab.MaxAliasDepth = flagMaxAliasDepth
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return c, nil
}

// loadCatalog builds the catalog named by the config.
func loadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(cfg.Vocab.Path, cfg.CatalogOptions())
	if err != nil {
		return nil, err
	}
	slog.Debug("catalog loaded",
		"path", cfg.Vocab.Path,
		"build", c.BuildID(),
		"chords", len(c.ChordNames()),
		"scales", len(c.ScaleNames()))
	return c, nil
}
