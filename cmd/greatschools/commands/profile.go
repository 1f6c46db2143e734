package commands

import (
	"fmt"
	"greatschools/cmd/greatschools/globals"
	"greatschools/lib/greatschools"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var profileParams map[string]string

func init() {
	profileCmd.Flags().StringToStringVar(&profileParams, "param", nil, "Additional query parameters, name=value.")
	rootCmd.AddCommand(profileCmd)
}

func renderProfile(out io.Writer, profile greatschools.SchoolProfile) {
	t := newTable(out)
	t.AppendRows([]table.Row{
		{"GS ID", profile.GsID},
		{"Name", profile.Name},
		{"Type", profile.Type},
		{"Grades", profile.GradeRange},
		{"Enrollment", profile.Enrollment},
		{"Address", profile.Address},
		{"District", profile.District},
		{"Phone", profile.Phone},
		{"Website", profile.Website},
		{"Location", fmt.Sprintf("%f, %f", profile.Lat, profile.Lon)},
		{"Overview", profile.OverviewLink},
	})
	t.Render()
}

var profileCmd = &cobra.Command{
	Use:   "profile <state> <gsId>",
	Short: "Shows the profile of a school.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := globals.Get(cmd.Context()).Client

		profiles, err := client.Profile(cmd.Context(), args[0], args[1], profileParams)
		if err != nil {
			return err
		}
		for _, profile := range profiles {
			renderProfile(cmd.OutOrStdout(), profile)
		}
		return nil
	},
}
