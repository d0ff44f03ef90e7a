package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func NewCitiesCmd(app *BikeshareApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cities",
		Short: "List configured cities and where their trips are read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.loadConfig()
			if err != nil {
				return err
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "CITY\tSOURCE")
			for _, city := range cfg.Cities {
				source := cfg.FilePath(city)
				if city.Table != "" {
					source = "table " + city.Table
				}
				fmt.Fprintf(writer, "%s\t%s\n", city.Name, source)
			}
			return writer.Flush()
		},
	}

	return cmd
}
