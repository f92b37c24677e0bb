package main

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyhub-apps/cookbook-pdf/pkg/layout"
	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
)

var (
	spansPage  int
	spansLimit int
	onlyTitles bool
)

var spansCmd = &cobra.Command{
	Use:   "spans [url|path]",
	Short: "Show the text spans of a cookbook with their font information",
	Long: `Show every text span the layout scanner produces, with its page, font, size
and style flags. Spans accepted by the selected policy are highlighted. This
is the tool for tuning the layout tolerances in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := sourceArg(args)
		data, err := readSource(cmd.Context(), source)
		if err != nil {
			return err
		}

		b, err := pdf.ParseBackend(cfg.PDF.Backend)
		if err != nil {
			return err
		}
		doc, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)), source, b, nil)
		if err != nil {
			return err
		}
		defer doc.Close()

		policy := currentPolicy()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s  %s %d  %s %s\n\n",
			label("Backend"), doc.Backend(),
			label("Pages"), doc.PageCount(),
			label("Policy"), titleStyle.Render(policy.Name))

		shown := 0
		for span, err := range layout.NewScanner(cfg.Layout).Spans(doc) {
			if err != nil {
				return err
			}
			if spansPage > 0 && span.PageIndex != spansPage-1 {
				continue
			}
			accepted := policy.Accept(span)
			if onlyTitles && !accepted {
				continue
			}

			line := fmt.Sprintf("p%-3d %6.2fpt  %-24s %-16s %q",
				span.PageIndex+1, span.FontSize, span.Font, span.Flags, span.Text)
			if accepted {
				line = recipeStyle.Render(line)
			}
			fmt.Fprintln(out, line)

			shown++
			if spansLimit > 0 && shown >= spansLimit {
				break
			}
		}
		return nil
	},
}

func init() {
	spansCmd.Flags().IntVar(&spansPage, "page", 0, "Only show spans of this page (1-based, 0 = all)")
	spansCmd.Flags().IntVarP(&spansLimit, "limit", "n", 0, "Maximum number of spans to show (0 = unlimited)")
	spansCmd.Flags().BoolVar(&onlyTitles, "titles", false, "Only show spans accepted by the policy")
	rootCmd.AddCommand(spansCmd)
}
