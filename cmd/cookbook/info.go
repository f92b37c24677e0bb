package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pyhub-apps/cookbook-pdf"
)

var infoCmd = &cobra.Command{
	Use:   "info [url|path]",
	Short: "Show the document information of a cookbook",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := sourceArg(args)
		data, err := readSource(cmd.Context(), source)
		if err != nil {
			return err
		}

		meta, err := cookbook.New(cfg, logger).InspectBytes(source, data)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, titleStyle.Render(cookbook.Describe(meta, source)))
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%s %s\n", label("Source"), source)
		fmt.Fprintf(out, "%s %d bytes\n", label("Size"), len(data))
		fmt.Fprintf(out, "%s %d\n", label("Pages"), meta.PageCount)
		printField(cmd, "Title", meta.Title)
		printField(cmd, "Author", meta.Author)
		printField(cmd, "Subject", meta.Subject)
		printField(cmd, "Keywords", meta.Keywords)
		printField(cmd, "Creator", meta.Creator)
		printField(cmd, "Producer", meta.Producer)
		if !meta.CreationDate.IsZero() {
			printField(cmd, "Created", meta.CreationDate.Format(time.RFC3339))
		}
		if !meta.ModDate.IsZero() {
			printField(cmd, "Modified", meta.ModDate.Format(time.RFC3339))
		}
		return nil
	},
}

func printField(cmd *cobra.Command, name, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", label(name), value)
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
