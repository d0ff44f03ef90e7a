package shell

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"tarediiran-industries.com/bikeshare-tools/internal/common"
	"tarediiran-industries.com/bikeshare-tools/internal/trips"
)

const noDataNotice = "No trips match the selected filters."

// Report gathers the four statistics sections for one filtered table.
type Report struct {
	Selection trips.Selection      `json:"selection"`
	Trips     int                  `json:"trips"`
	Time      trips.TimeReport     `json:"time"`
	Stations  trips.StationReport  `json:"stations"`
	Duration  trips.DurationReport `json:"duration"`
	Users     trips.UserReport     `json:"users"`
}

// RunReports computes the time, station, duration and user sections in that order,
// writing each to out as it completes. metrics may be nil.
func RunReports(out io.Writer, sel trips.Selection, table *trips.Table, metrics *common.Metrics) Report {
	report := Report{Selection: sel, Trips: table.Len()}

	section(out, metrics, "time", "Calculating The Most Frequent Times of Travel...", func() {
		report.Time = trips.TimeStats(table)
		writeTime(out, report.Time)
	})
	section(out, metrics, "station", "Calculating The Most Popular Stations and Trip...", func() {
		report.Stations = trips.StationStats(table)
		writeStations(out, report.Stations)
	})
	section(out, metrics, "duration", "Calculating Trip Duration...", func() {
		report.Duration = trips.DurationStats(table)
		writeDuration(out, report.Duration)
	})
	section(out, metrics, "user", "Calculating User Stats...", func() {
		report.Users = trips.UserStats(table)
		writeUsers(out, report.Users)
	})

	return report
}

func section(out io.Writer, metrics *common.Metrics, name, heading string, run func()) {
	fmt.Fprintf(out, "\n%s\n\n", heading)

	var observer prometheus.Observer
	if metrics != nil {
		observer = metrics.ReportSeconds.WithLabelValues(name)
	}

	benchmarker := common.NewBenchmarker(out, observer)
	run()
	benchmarker.Close()
	fmt.Fprintln(out, separator)
}

func writeTime(out io.Writer, report trips.TimeReport) {
	if report.Empty {
		fmt.Fprintln(out, noDataNotice)
		return
	}
	fmt.Fprintln(out, "Most Frequent Month:", report.Month)
	fmt.Fprintln(out, "Most Frequent Day:", report.Day)
	fmt.Fprintln(out, "Most Frequent Starting Hour:", report.StartHour)
}

func writeStations(out io.Writer, report trips.StationReport) {
	if report.Empty {
		fmt.Fprintln(out, noDataNotice)
		return
	}
	fmt.Fprintln(out, "Most Frequently Used Start Station:", report.StartStation)
	fmt.Fprintln(out, "Most Frequently Used End Station:", report.EndStation)
	fmt.Fprintf(out, "Most Frequently Used Station Combination:\nStart: %s\nEnd: %s\n", report.Trip.Start, report.Trip.End)
}

func writeDuration(out io.Writer, report trips.DurationReport) {
	if report.Empty {
		fmt.Fprintln(out, noDataNotice)
		return
	}
	fmt.Fprintf(out, "Total Travel Time: %s\n", formatSeconds(report.TotalSeconds))
	fmt.Fprintf(out, "Average Travel Time: %s\n", formatSeconds(report.MeanSeconds))
}

func writeUsers(out io.Writer, report trips.UserReport) {
	if report.Empty {
		fmt.Fprintln(out, noDataNotice)
		return
	}

	fmt.Fprintln(out, "Counts of User Types:")
	writeCounts(out, report.UserTypes)

	if report.Genders != nil {
		fmt.Fprintln(out, "\nCounts of Gender:")
		writeCounts(out, report.Genders)
	}

	if report.BirthYears != nil {
		fmt.Fprintln(out, "\nEarliest Birth Year:", report.BirthYears.Earliest)
		fmt.Fprintln(out, "Most Recent Birth Year:", report.BirthYears.MostRecent)
		fmt.Fprintln(out, "Most Common Birth Year:", report.BirthYears.MostCommon)
	}
}

func writeCounts(out io.Writer, counts []trips.Count) {
	writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, count := range counts {
		fmt.Fprintf(writer, "%s\t%d\n", count.Value, count.Count)
	}
	writer.Flush()
}

func formatSeconds(seconds float64) string {
	elapsed := time.Duration(seconds * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%.2f seconds (%s)", seconds, elapsed)
}

// WritePage renders each column group of a raw-data page as its own table.
func WritePage(out io.Writer, page trips.Page) {
	for _, group := range page.Groups {
		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

		fmt.Fprint(writer, "\t")
		for _, header := range group.Headers {
			fmt.Fprintf(writer, "%s\t", header)
		}
		fmt.Fprintln(writer)

		for i, row := range group.Rows {
			label := page.Start + i
			if i < len(page.Index) {
				label = page.Index[i]
			}
			fmt.Fprintf(writer, "%d\t", label)
			for _, cell := range row {
				fmt.Fprintf(writer, "%s\t", cell)
			}
			fmt.Fprintln(writer)
		}

		writer.Flush()
		fmt.Fprintln(out)
	}
}
