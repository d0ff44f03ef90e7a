package trips

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const (
	ColStartTime    = "Start Time"
	ColEndTime      = "End Time"
	ColTripDuration = "Trip Duration"
	ColStartStation = "Start Station"
	ColEndStation   = "End Station"
	ColUserType     = "User Type"
	ColGender       = "Gender"
	ColBirthYear    = "Birth Year"

	// Derived on load
	ColMonth     = "month"
	ColDayOfWeek = "day_of_week"
	// Position of the row in the loaded source, kept through filtering
	ColRowIndex = "row_index"

	// Added by StationStats
	ColBothStations = "Both Stations"
)

var ErrMissingColumn = errors.New("missing required column")

type ColumnEntry struct {
	Name     string
	Type     series.Type
	Required bool
}

var TripColumns = []ColumnEntry{
	{Name: ColStartTime, Type: series.String, Required: true},
	{Name: ColEndTime, Type: series.String, Required: true},
	{Name: ColTripDuration, Type: series.Float, Required: true},
	{Name: ColStartStation, Type: series.String, Required: true},
	{Name: ColEndStation, Type: series.String, Required: true},
	{Name: ColUserType, Type: series.String, Required: true},
	{Name: ColGender, Type: series.String, Required: false},
	{Name: ColBirthYear, Type: series.Float, Required: false},
}

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Schema records which optional columns the source carried.
type Schema struct {
	HasGender    bool
	HasBirthYear bool
}

// Table is one city's trip records plus the derived month and day_of_week columns.
type Table struct {
	City   string
	Frame  dataframe.DataFrame
	Schema Schema
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return t.Frame.Nrow()
}

// NewTable builds a Table from header-first string records.
func NewTable(city string, records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%s: no header row", city)
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[name] = true
	}

	types := map[string]series.Type{}
	for _, column := range TripColumns {
		if column.Required && !present[column.Name] {
			return nil, fmt.Errorf("%s: %w %q", city, ErrMissingColumn, column.Name)
		}
		if present[column.Name] {
			types[column.Name] = column.Type
		}
	}

	frame := loadFrame(records, types)
	if frame.Err != nil {
		return nil, fmt.Errorf("%s: dataframe.LoadRecords: %w", city, frame.Err)
	}

	frame, err := deriveColumns(frame)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", city, err)
	}

	return &Table{
		City:  city,
		Frame: frame,
		Schema: Schema{
			HasGender:    present[ColGender],
			HasBirthYear: present[ColBirthYear],
		},
	}, nil
}

func loadFrame(records [][]string, types map[string]series.Type) dataframe.DataFrame {
	// LoadRecords rejects a header without rows
	if len(records) == 1 {
		columns := make([]series.Series, len(records[0]))
		for i, name := range records[0] {
			t, ok := types[name]
			if !ok {
				t = series.String
			}
			columns[i] = series.New([]string{}, t, name)
		}
		return dataframe.New(columns...)
	}

	return dataframe.LoadRecords(
		records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(types),
	)
}

func deriveColumns(frame dataframe.DataFrame) (dataframe.DataFrame, error) {
	starts := frame.Col(ColStartTime).Records()

	positions := make([]int, len(starts))
	months := make([]int, len(starts))
	days := make([]string, len(starts))
	for i, raw := range starts {
		positions[i] = i
		ts, err := parseTimestamp(raw)
		if err != nil {
			return dataframe.DataFrame{}, fmt.Errorf("row %d: %w", i, err)
		}
		months[i] = int(ts.Month())
		days[i] = ts.Weekday().String()
	}

	frame = frame.
		Mutate(series.New(months, series.Int, ColMonth)).
		Mutate(series.New(days, series.String, ColDayOfWeek)).
		Mutate(series.New(positions, series.Int, ColRowIndex))

	return frame, frame.Err
}

func parseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparsable %s %q", ColStartTime, raw)
}

func isBlank(value string) bool {
	return value == "" || value == "NaN"
}
