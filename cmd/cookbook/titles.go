package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pyhub-apps/cookbook-pdf"
)

var plainTitles bool

var titlesCmd = &cobra.Command{
	Use:   "titles [url|path]",
	Short: "List the recipe titles of a cookbook",
	Long: `List the recipe titles of a cookbook. The source defaults to the configured
cookbook URL. With --policy size, titles are capitalized spans set in 11pt or
larger, in document order; with --policy style, capitalized bold spans, sorted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := sourceArg(args)
		policy := currentPolicy()
		e := cookbook.New(cfg, logger)

		var res cookbook.Result
		if isURL(source) {
			res = e.ExtractFromURL(cmd.Context(), source, policy)
		} else {
			res = e.ExtractFromPath(cmd.Context(), source, policy)
		}
		if res.Err != nil {
			return res.Err
		}

		out := cmd.OutOrStdout()
		if plainTitles {
			for _, t := range res.Titles {
				fmt.Fprintln(out, t)
			}
			return nil
		}

		fmt.Fprintf(out, "%s %s\n%s %s  %s %d\n\n",
			label("Source"), source,
			label("Policy"), titleStyle.Render(res.Policy),
			label("Titles"), len(res.Titles))
		for _, t := range res.Titles {
			fmt.Fprintf(out, "  %s\n", recipeStyle.Render(t))
		}
		if len(res.Titles) == 0 {
			fmt.Fprintln(out, dimStyle.Render("  no titles found"))
		}
		return nil
	},
}

func init() {
	titlesCmd.Flags().BoolVar(&plainTitles, "plain", false, "Print one title per line without decoration")
	rootCmd.AddCommand(titlesCmd)
}
