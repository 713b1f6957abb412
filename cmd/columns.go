package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	cfgpkg "github.com/KaramelBytes/statloom-cli/internal/config"
	"github.com/KaramelBytes/statloom-cli/internal/dataset"
)

var (
	colSheet     string
	colDelimiter string
)

var columnsCmd = &cobra.Command{
	Use:   "columns <file>",
	Short: "List header columns with their zero-based index and numeric value count",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		delim := colDelimiter
		if !cmd.Flags().Changed("delimiter") && cfg != nil {
			delim = cfg.Delimiter
		}
		sheet := colSheet
		if !cmd.Flags().Changed("sheet") && cfg != nil {
			sheet = cfg.Sheet
		}
		d, err := cfgpkg.ParseDelimiter(delim)
		if err != nil {
			return err
		}
		rows, err := dataset.Load(args[0], dataset.LoadOptions{Delimiter: d, Sheet: sheet})
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		headers := dataset.Headers(rows)
		if len(headers) == 0 {
			fmt.Fprintln(out, "(no columns)")
			return nil
		}
		fmt.Fprintf(out, "%d data row(s)\n", len(rows)-1)
		for i, h := range headers {
			numeric := "n/a"
			if col, err := dataset.Extract(rows, i); err == nil {
				numeric = fmt.Sprintf("%d numeric", col.Len())
			}
			fmt.Fprintf(out, "%3d  %-24s %s\n", i, h, numeric)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(columnsCmd)
	columnsCmd.Flags().StringVar(&colSheet, "sheet", "", "XLSX: sheet name (default first sheet)")
	columnsCmd.Flags().StringVar(&colDelimiter, "delimiter", "", "text delimiter: ',' | ';' | 'tab'")
}
