package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"salesdash/internal/core"
	"salesdash/internal/dataset"
	"salesdash/internal/export"
	"salesdash/internal/report"
)

type reportOptions struct {
	months []string
	export string
}

func newReportCommand(root *rootOptions) *cobra.Command {
	opts := &reportOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print KPIs and the filtered rows",
		Long: "Print the dashboard's KPIs and filtered rows to the terminal.\n" +
			"Without --month every month in the file is selected.",
		Example: "  salesdash report --month Jan --month Feb --export feb.xlsx",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runReport(cmd.OutOrStdout(), root, opts, cmd.Flags().Changed("month"))
		},
	}
	cmd.Flags().StringArrayVarP(&opts.months, "month", "m", nil, "Month to include (repeatable)")
	cmd.Flags().StringVarP(&opts.export, "export", "o", "", "Also write the filtered rows to a .csv or .xlsx file")
	return cmd
}

func runReport(out io.Writer, root *rootOptions, opts *reportOptions, filtered bool) error {
	cfg, _, err := root.setup()
	if err != nil {
		return err
	}
	data, err := dataset.Open(cfg.DataFile)
	if err != nil {
		return err
	}

	sel := core.NewSelection(data.Months...)
	if filtered {
		sel = core.NewSelection()
		known := core.NewSelection(data.Months...)
		for _, m := range opts.months {
			if !known.Contains(m) {
				return fmt.Errorf("unknown month %q (available: %s)", m, strings.Join(data.Months, ", "))
			}
			sel.Add(m)
		}
	}

	rows := core.Filter(data.Rows, sel)
	r := report.Report{
		Title:    "Sales Analytics Dashboard",
		Currency: cfg.CurrencySymbol,
		Columns:  data.Table.Extra,
		Rows:     rows,
		KPIs:     core.Aggregate(rows),
		Dropped:  data.Report.Dropped,
	}
	for _, m := range data.Months {
		if sel.Contains(m) {
			r.Selected = append(r.Selected, m)
		}
	}
	if _, err := r.WriteTo(out); err != nil {
		return err
	}

	if opts.export != "" {
		if err := writeExport(opts.export, rows, data.Table.Extra); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %d row(s) to %s\n", len(rows), opts.export)
	}
	return nil
}

func writeExport(path string, rows core.SalesTable, extra []string) (err error) {
	write := export.WriteCSV
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		write = export.WriteXLSX
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f, rows, extra...)
}
