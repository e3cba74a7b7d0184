package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jsphweid/voicedex/catalog"
	"github.com/spf13/cobra"
)

var flagExportOut string

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&flagExportOut, "output", "o", "", "file to write (default: stdout)")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports the whole catalog",
	Long:  `Writes every chord, scale and alias as one JSON or YAML document. Text format falls back to JSON.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog()
		if err != nil {
			return err
		}
		format := flagFormat
		if format == formatText {
			format = formatJSON
		}
		if flagExportOut == "" {
			return export(cmd.OutOrStdout(), c, format)
		}
		return exportFile(flagExportOut, c, format)
	},
}

func export(w io.Writer, c *catalog.Catalog, format string) error {
	return output(w, format, c.Export(), nil)
}

func exportFile(path string, c *catalog.Catalog, format string) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return export(f, c, format)
}
