package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/shell"
	"tarediiran-industries.com/bikeshare-tools/internal/trips"
)

type statsOptions struct {
	City   string
	Month  string
	Day    string
	Format string
}

func NewStatsCmd(app *BikeshareApp) *cobra.Command {
	opts := &statsOptions{}

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Print statistics for one city and filter without prompting",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.stats(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.City, "city", "", "City to analyze")
	cmd.Flags().StringVar(&opts.Month, "month", trips.All, "Month name (January-June) or all")
	cmd.Flags().StringVar(&opts.Day, "day", trips.All, "Day name or all")
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text|json")
	_ = cmd.MarkFlagRequired("city")

	return cmd
}

func (app *BikeshareApp) stats(cmd *cobra.Command, opts *statsOptions) error {
	if opts.Format != "text" && opts.Format != "json" {
		return fmt.Errorf("unknown format %q", opts.Format)
	}

	s, err := app.openSession(cmd.Context())
	if err != nil {
		return err
	}
	defer s.close()

	city, ok := trips.NormalizeCity(s.loader.Config(), opts.City)
	if !ok {
		return fmt.Errorf("unknown city %q", opts.City)
	}
	month, ok := trips.NormalizeMonth(opts.Month)
	if !ok {
		return fmt.Errorf("invalid month %q", opts.Month)
	}
	day, ok := trips.NormalizeDay(opts.Day)
	if !ok {
		return fmt.Errorf("invalid day %q", opts.Day)
	}
	sel := trips.Selection{City: city, Month: month, Day: day}

	table, err := common.RuntimeBenchmark(cmd.ErrOrStderr(), "load "+city, func() (*trips.Table, error) {
		return s.loader.Load(cmd.Context(), city)
	})
	if err != nil {
		return err
	}
	filtered := trips.Filter(table, sel)

	out := cmd.OutOrStdout()
	if opts.Format == "json" {
		report := shell.RunReports(io.Discard, sel, filtered, s.metrics)
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	}

	fmt.Fprintf(out, "Statistics for %s (%d trips)\n", sel, filtered.Len())
	shell.RunReports(out, sel, filtered, s.metrics)
	return nil
}
