package trips

import (
	"testing"

	"tarediiran-industries.com/bikeshare-tools/internal/config"
)

func TestNormalize(t *testing.T) {
	cfg := config.Default()

	tests := []struct {
		name      string
		normalize func(string) (string, bool)
		input     string
		want      string
		wantOK    bool
	}{
		{name: "city lower", normalize: func(s string) (string, bool) { return NormalizeCity(cfg, s) }, input: "new york city", want: "New York City", wantOK: true},
		{name: "city padded", normalize: func(s string) (string, bool) { return NormalizeCity(cfg, s) }, input: "  CHICAGO ", want: "Chicago", wantOK: true},
		{name: "city unknown", normalize: func(s string) (string, bool) { return NormalizeCity(cfg, s) }, input: "Boston", wantOK: false},
		{name: "month", normalize: NormalizeMonth, input: "january", want: "January", wantOK: true},
		{name: "month all", normalize: NormalizeMonth, input: "ALL", want: All, wantOK: true},
		{name: "month past june", normalize: NormalizeMonth, input: "July", wantOK: false},
		{name: "day", normalize: NormalizeDay, input: "sUnDaY", want: "Sunday", wantOK: true},
		{name: "day all", normalize: NormalizeDay, input: "all", want: All, wantOK: true},
		{name: "day abbreviation", normalize: NormalizeDay, input: "Mon", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.normalize(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("got %q want %q", got, tt.want)
			}
		})
	}
}

func TestMonthNumberAndName(t *testing.T) {
	for i, name := range Months {
		if got := MonthNumber(name); got != i+1 {
			t.Errorf("MonthNumber(%s) = %d", name, got)
		}
		if got := MonthName(i + 1); got != name {
			t.Errorf("MonthName(%d) = %s", i+1, got)
		}
	}

	if MonthNumber("Smarch") != 0 {
		t.Error("unknown month should map to 0")
	}
	if MonthName(13) != "" {
		t.Error("out of range month should have no name")
	}
}

func TestSelection_String(t *testing.T) {
	sel := Selection{City: "Washington", Month: "March"}
	if got := sel.String(); got != "Washington / March / All" {
		t.Errorf("got %q", got)
	}
}
