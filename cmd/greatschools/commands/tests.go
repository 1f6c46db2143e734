package commands

import (
	"greatschools/cmd/greatschools/globals"
	"greatschools/lib/greatschools"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var testsParams map[string]string

func init() {
	testsCmd.Flags().StringToStringVar(&testsParams, "param", nil, "Additional query parameters, name=value.")
	rootCmd.AddCommand(testsCmd)
}

func renderTestScores(out io.Writer, records []greatschools.TestScoreRecord) {
	t := newTable(out)
	t.AppendHeader(table.Row{"Test", "Year", "Grade", "Subject", "Score", "Tested"})
	for _, r := range records {
		name := r.Abbreviation
		if name == "" {
			name = r.TestName
		}
		t.AppendRow(table.Row{name, r.Year, r.GradeName, r.SubjectName, r.Score, r.NumberTested})
	}
	t.Render()
}

var testsCmd = &cobra.Command{
	Use:   "tests <state> <gsId>",
	Short: "Lists the test scores of a school.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := globals.Get(cmd.Context()).Client

		records, err := client.Tests(cmd.Context(), args[0], args[1], testsParams)
		if err != nil {
			return err
		}
		renderTestScores(cmd.OutOrStdout(), records)
		return nil
	},
}
