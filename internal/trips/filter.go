package trips

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Filter keeps the rows matching sel's month and day, in their original order.
// An All (or empty) month or day does not narrow the table.
func Filter(t *Table, sel Selection) *Table {
	frame := t.Frame

	if month := orAll(sel.Month); month != All {
		frame = frame.Filter(dataframe.F{
			Colname:    ColMonth,
			Comparator: series.Eq,
			Comparando: MonthNumber(month),
		})
	}

	if day := orAll(sel.Day); day != All {
		frame = frame.Filter(dataframe.F{
			Colname:    ColDayOfWeek,
			Comparator: series.Eq,
			Comparando: TitleCase(day),
		})
	}

	return &Table{City: t.City, Frame: frame, Schema: t.Schema}
}
