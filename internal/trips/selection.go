package trips

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"tarediiran-industries.com/bikeshare-tools/internal/config"
)

const All = "All"

// Months covers the calendar months present in the trip data.
var Months = []string{"January", "February", "March", "April", "May", "June"}

var Days = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// Selection is one iteration's choice of city and optional month/day filters.
type Selection struct {
	City  string `json:"city"`
	Month string `json:"month"`
	Day   string `json:"day"`
}

func (sel Selection) String() string {
	return sel.City + " / " + orAll(sel.Month) + " / " + orAll(sel.Day)
}

func orAll(value string) string {
	if value == "" {
		return All
	}
	return value
}

func TitleCase(input string) string {
	return cases.Title(language.English).String(strings.TrimSpace(input))
}

// NormalizeCity returns the configured spelling of input, if it names a city.
func NormalizeCity(cfg config.Config, input string) (string, bool) {
	city, err := cfg.City(TitleCase(input))
	if err != nil {
		return "", false
	}
	return city.Name, true
}

func NormalizeMonth(input string) (string, bool) {
	month := TitleCase(input)
	if month == All || slices.Contains(Months, month) {
		return month, true
	}
	return "", false
}

func NormalizeDay(input string) (string, bool) {
	day := TitleCase(input)
	if day == All || slices.Contains(Days, day) {
		return day, true
	}
	return "", false
}

// MonthNumber maps a month name to its 1-based ordinal, or 0 if unknown.
func MonthNumber(name string) int {
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(m.String(), name) {
			return int(m)
		}
	}
	return 0
}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return time.Month(month).String()
}
