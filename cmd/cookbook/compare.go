package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/pyhub-apps/cookbook-pdf"
	"github.com/pyhub-apps/cookbook-pdf/pkg/pdf"
	"github.com/pyhub-apps/cookbook-pdf/pkg/titles"
)

var compareBackends bool

var compareCmd = &cobra.Command{
	Use:   "compare [url|path]",
	Short: "Compare the titles found by each policy",
	Long: `Run every title policy over the same cookbook and show the results side by
side. With --backends the comparison is repeated for each PDF backend.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := sourceArg(args)
		data, err := readSource(cmd.Context(), source)
		if err != nil {
			return err
		}

		backends := []pdf.Backend{pdf.Backend(cfg.PDF.Backend)}
		if compareBackends {
			backends = []pdf.Backend{pdf.BackendLedongthuc, pdf.BackendDslipak}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n", label("Source"), source)
		for _, b := range backends {
			c := *cfg
			c.PDF.Backend = string(b)
			e := cookbook.New(&c, logger)

			var columns []string
			for _, p := range titles.Policies() {
				res := e.ExtractFromBytes(cmd.Context(), source, data, p)
				columns = append(columns, renderColumn(res))
			}

			fmt.Fprintf(out, "\n%s %s\n", label("Backend"), titleStyle.Render(string(b)))
			fmt.Fprintln(out, lipgloss.JoinHorizontal(lipgloss.Top, columns...))
		}
		return nil
	},
}

func renderColumn(res cookbook.Result) string {
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", res.Policy, len(res.Titles))))
	if res.Err != nil {
		sb.WriteString("\n" + errorStyle.Render(res.Err.Error()))
	}
	for _, t := range res.Titles {
		sb.WriteString("\n" + t)
	}
	return boxStyle.Render(sb.String())
}

func init() {
	compareCmd.Flags().BoolVar(&compareBackends, "backends", false, "Repeat the comparison for every PDF backend")
	rootCmd.AddCommand(compareCmd)
}
