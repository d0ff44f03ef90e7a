package trips

import (
	"math"
	"sort"
	"strconv"

	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const unknownUserType = "Unknown"

// Count is one distinct value and how many rows carry it.
type Count struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

type TimeReport struct {
	Empty     bool   `json:"empty"`
	Month     string `json:"most_frequent_month,omitempty"`
	Day       string `json:"most_frequent_day,omitempty"`
	StartHour int    `json:"most_frequent_start_hour"`
}

type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type StationReport struct {
	Empty        bool        `json:"empty"`
	StartStation string      `json:"most_frequent_start_station,omitempty"`
	EndStation   string      `json:"most_frequent_end_station,omitempty"`
	Trip         StationPair `json:"most_frequent_trip"`
}

type DurationReport struct {
	Empty        bool    `json:"empty"`
	Trips        int     `json:"trips"`
	TotalSeconds float64 `json:"total_seconds"`
	MeanSeconds  float64 `json:"mean_seconds"`
}

type BirthYearReport struct {
	Earliest   int `json:"earliest"`
	MostRecent int `json:"most_recent"`
	MostCommon int `json:"most_common"`
}

// UserReport leaves Genders and BirthYears nil when the source lacks them.
type UserReport struct {
	Empty      bool             `json:"empty"`
	UserTypes  []Count          `json:"user_types"`
	Genders    []Count          `json:"genders,omitempty"`
	BirthYears *BirthYearReport `json:"birth_years,omitempty"`
}

func TimeStats(t *Table) TimeReport {
	if t.Len() == 0 {
		return TimeReport{Empty: true}
	}

	month, _ := mode(t.Frame.Col(ColMonth).Records())
	monthNumber, _ := strconv.Atoi(month)
	day, _ := mode(t.Frame.Col(ColDayOfWeek).Records())

	starts := t.Frame.Col(ColStartTime).Records()
	hours := make([]string, 0, len(starts))
	for _, raw := range starts {
		ts, err := parseTimestamp(raw)
		if err != nil {
			continue
		}
		hours = append(hours, strconv.Itoa(ts.Hour()))
	}
	hour, _ := mode(hours)
	startHour, _ := strconv.Atoi(hour)

	return TimeReport{
		Month:     MonthName(monthNumber),
		Day:       day,
		StartHour: startHour,
	}
}

// StationStats adds the Both Stations pair column to t as a side effect.
func StationStats(t *Table) StationReport {
	startStations := t.Frame.Col(ColStartStation).Records()
	endStations := t.Frame.Col(ColEndStation).Records()

	pairs := make([]string, len(startStations))
	for i := range startStations {
		pairs[i] = pairKey(startStations[i], endStations[i])
	}
	t.Frame = t.Frame.Mutate(series.New(pairs, series.String, ColBothStations))

	if t.Len() == 0 {
		return StationReport{Empty: true}
	}

	start, _ := mode(startStations)
	end, _ := mode(endStations)
	pair, _ := mode(pairs)

	report := StationReport{StartStation: start, EndStation: end}
	for i, key := range pairs {
		if key == pair {
			report.Trip = StationPair{Start: startStations[i], End: endStations[i]}
			break
		}
	}
	return report
}

func pairKey(start, end string) string {
	return start + "\x1f" + end
}

func DurationStats(t *Table) DurationReport {
	if t.Len() == 0 {
		return DurationReport{Empty: true}
	}

	durations := finite(t.Frame.Col(ColTripDuration).Float())
	report := DurationReport{Trips: t.Len()}
	if len(durations) == 0 {
		return report
	}

	report.TotalSeconds = floats.Sum(durations)
	report.MeanSeconds = stat.Mean(durations, nil)
	return report
}

func UserStats(t *Table) UserReport {
	if t.Len() == 0 {
		return UserReport{Empty: true}
	}

	userTypes := t.Frame.Col(ColUserType).Records()
	for i, value := range userTypes {
		if isBlank(value) {
			userTypes[i] = unknownUserType
		}
	}

	report := UserReport{UserTypes: valueCounts(userTypes)}

	if t.Schema.HasGender {
		genders := make([]string, 0, t.Len())
		for _, value := range t.Frame.Col(ColGender).Records() {
			if !isBlank(value) {
				genders = append(genders, value)
			}
		}
		report.Genders = valueCounts(genders)
	}

	if t.Schema.HasBirthYear {
		years := finite(t.Frame.Col(ColBirthYear).Float())
		if len(years) > 0 {
			labels := make([]string, len(years))
			for i, year := range years {
				labels[i] = strconv.Itoa(int(year))
			}
			commonYear, _ := mode(labels)
			mostCommon, _ := strconv.Atoi(commonYear)

			report.BirthYears = &BirthYearReport{
				Earliest:   int(floats.Min(years)),
				MostRecent: int(floats.Max(years)),
				MostCommon: mostCommon,
			}
		}
	}

	return report
}

// mode returns the most frequent value. Among equally frequent values the one
// seen first wins.
func mode(values []string) (string, int) {
	counts := valueCounts(values)
	if len(counts) == 0 {
		return "", 0
	}
	return counts[0].Value, counts[0].Count
}

// valueCounts tallies values, most frequent first, ties in first-seen order.
func valueCounts(values []string) []Count {
	index := make(map[string]int)
	counts := make([]Count, 0)

	for _, value := range values {
		i, ok := index[value]
		if !ok {
			i = len(counts)
			index[value] = i
			counts = append(counts, Count{Value: value})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}

func finite(values []float64) []float64 {
	out := make([]float64, 0, len(values))
	for _, value := range values {
		if !math.IsNaN(value) && !math.IsInf(value, 0) {
			out = append(out, value)
		}
	}
	return out
}

func SumCounts(counts []Count) int {
	total := 0
	for _, count := range counts {
		total += count.Count
	}
	return total
}
