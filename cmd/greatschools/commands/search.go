package commands

import (
	"greatschools/cmd/greatschools/globals"
	"greatschools/lib/greatschools"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	searchState string
	searchLevel string
	searchSort  string
	searchLimit int
)

func init() {
	flags := searchCmd.Flags()
	flags.StringVar(&searchState, "state", "", "Two letter state abbreviation (required).")
	flags.StringVar(&searchLevel, "level", "", "One of elementary-schools, middle-schools, high-schools.")
	flags.StringVar(&searchSort, "sort", "", "One of relevance, alpha.")
	flags.IntVar(&searchLimit, "limit", greatschools.DefaultSearchLimit, "Maximum number of schools.")
	rootCmd.AddCommand(searchCmd)
}

func renderSearchResults(out io.Writer, results []greatschools.SearchResult) {
	t := newTable(out)
	t.AppendHeader(table.Row{"GS ID", "Name", "Type", "Grades", "City", "State", "Rating"})
	for _, r := range results {
		t.AppendRow(table.Row{r.GsID, r.Name, r.Type, r.GradeRange, r.City, r.State, r.GsRating})
	}
	t.Render()
}

var searchCmd = &cobra.Command{
	Use:   "search <query> --state <XX>",
	Short: "Searches for schools in a state.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := globals.Get(cmd.Context()).Client

		results, err := client.Search(cmd.Context(), greatschools.SearchParams{
			Query: args[0],
			State: searchState,
			Level: greatschools.SearchLevel(searchLevel),
			Sort:  greatschools.SearchSort(searchSort),
			Limit: searchLimit,
		})
		if err != nil {
			return err
		}
		renderSearchResults(cmd.OutOrStdout(), results)
		return nil
	},
}
