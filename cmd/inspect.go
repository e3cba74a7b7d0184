package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/jsphweid/voicedex/catalog"
	"github.com/jsphweid/voicedex/record"
	"github.com/jsphweid/voicedex/util"
	"github.com/spf13/cobra"
)

var flagRaw bool

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&flagRaw, "raw", false, "dump the parsed records in full")
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [tag]",
	Short: "Inspects raw vocabulary records",
	Long:  `Inspects the vocabulary before any chord or scale is interpreted. Works on files that fail to build.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var tag string
		if len(args) == 1 {
			tag = args[0]
		}
		return inspect(cmd.OutOrStdout(), cfg.Vocab.Path, tag, flagRaw)
	},
}

func inspect(w io.Writer, path, tag string, raw bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening vocabulary: %w", err)
	}
	defer f.Close()

	doc, err := catalog.ReadDocument(f, path)
	if err != nil {
		return err
	}

	if tag == "" {
		counts := make(map[string]int)
		for _, t := range record.Tags(doc) {
			counts[t]++
		}
		for _, key := range util.GetKeys(counts) {
			fmt.Fprintf(w, "%s: %d\n", key, counts[key])
		}
		return nil
	}

	records, err := record.Extract(doc, tag)
	if err != nil {
		return err
	}
	if raw {
		dump := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, SortKeys: true}
		dump.Fdump(w, records)
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s %q (line %d)\n", r.Tag, r.Name(), r.Line)
		for _, field := range r.Order {
			fmt.Fprintf(w, "  %s: %s\n", field, record.Flatten(r.Fields[field]))
		}
	}
	return nil
}
