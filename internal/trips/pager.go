package trips

import (
	"math"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

const DefaultPageSize = 5

// PageGroup is a slice of the displayed columns for the rows of one page.
type PageGroup struct {
	Headers []string
	Rows    [][]string
}

type Page struct {
	Start int
	End   int
	// Index holds each row's position in the unfiltered table.
	Index  []int
	Groups []PageGroup
	// Last is set on the page that reaches the end of the table.
	Last bool
}

// Pager walks a table a fixed number of rows at a time.
type Pager struct {
	table  *Table
	size   int
	offset int
	done   bool
}

func NewPager(t *Table, size int) *Pager {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Pager{table: t, size: size}
}

// Next returns the next page. A full page is returned while rows remain past it;
// otherwise the remaining rows come back with Last set and the pager is done.
func (pager *Pager) Next() (Page, bool) {
	if pager.done {
		return Page{}, false
	}

	rows := pager.table.Len()
	end := pager.offset + pager.size
	last := end >= rows
	if last {
		end = rows
		pager.done = true
	}

	frame := pager.table.Frame.Subset(rowRange(pager.offset, end))
	index, err := frame.Col(ColRowIndex).Int()
	if err != nil {
		index = nil
	}

	page := Page{
		Start:  pager.offset,
		End:    end,
		Index:  index,
		Groups: pager.groups(frame),
		Last:   last,
	}

	pager.offset += pager.size
	return page, true
}

func rowRange(start, end int) []int {
	indexes := make([]int, 0, end-start)
	for i := start; i < end; i++ {
		indexes = append(indexes, i)
	}
	return indexes
}

func (pager *Pager) groups(frame dataframe.DataFrame) []PageGroup {
	groups := make([]PageGroup, 0, 3)
	for _, columns := range DisplayColumns(pager.table.Schema) {
		cells := make([][]string, len(columns))
		for c, name := range columns {
			cells[c] = displayValues(frame.Col(name))
		}

		group := PageGroup{Headers: columns, Rows: make([][]string, 0, frame.Nrow())}
		for r := 0; r < frame.Nrow(); r++ {
			row := make([]string, len(columns))
			for c := range columns {
				row[c] = cells[c][r]
			}
			group.Rows = append(group.Rows, row)
		}
		groups = append(groups, group)
	}
	return groups
}

func displayValues(column series.Series) []string {
	if column.Type() != series.Float {
		out := column.Records()
		for i := range out {
			if column.Elem(i).IsNA() {
				out[i] = ""
			}
		}
		return out
	}

	values := column.Float()
	out := make([]string, len(values))
	for i, value := range values {
		if math.IsNaN(value) {
			continue
		}
		out[i] = strconv.FormatFloat(value, 'f', -1, 64)
	}
	return out
}

// DisplayColumns lists the raw-data column groups shown per page. Cities without
// demographic columns show a narrower last group.
func DisplayColumns(schema Schema) [][]string {
	last := []string{ColUserType}
	if schema.HasGender {
		last = append(last, ColGender)
	}
	if schema.HasBirthYear {
		last = append(last, ColBirthYear)
	}
	last = append(last, ColMonth, ColDayOfWeek)

	return [][]string{
		{ColStartTime, ColEndTime},
		{ColTripDuration, ColStartStation, ColEndStation},
		last,
	}
}
