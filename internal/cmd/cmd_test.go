package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tarediiran-industries.com/bikeshare-tools/internal/shell"
)

var chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1,2017-01-01 09:07:57,2017-01-01 09:20:53,776,Clark St & Lake St,Wells St & Concord Ln,Subscriber,Male,1992.0
2,2017-01-02 18:40:00,2017-01-02 18:47:00,420,Streeter Dr & Grand Ave,Lake Shore Dr & Monroe St,Customer,,
3,2017-02-06 08:30:00,2017-02-06 08:45:00,900,Canal St & Adams St,Clark St & Lake St,Subscriber,Female,1970.0
`

func dataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "chicago.csv"), []byte(chicagoCSV), 0644); err != nil {
		t.Fatalf("Failed to create chicago.csv: %v", err)
	}
	return dir
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd(&BikeshareApp{})
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func TestStatsCmd_JSON(t *testing.T) {
	out, err := run(t, "", "stats", "--data-dir", dataDir(t), "--city", "chicago", "--month", "january", "--format", "json")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}

	var report shell.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("json.Unmarshal: %v\n%s", err, out)
	}

	if report.Trips != 2 {
		t.Errorf("expected 2 january trips, got %d", report.Trips)
	}
	if report.Time.Month != "January" || report.Selection.Month != "January" {
		t.Errorf("unexpected time report %+v", report.Time)
	}
	if report.Duration.TotalSeconds != 1196 {
		t.Errorf("total duration %v want 1196", report.Duration.TotalSeconds)
	}
}

func TestStatsCmd_Text(t *testing.T) {
	out, err := run(t, "", "stats", "--data-dir", dataDir(t), "--city", "Chicago")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(out, "Statistics for Chicago / All / All (3 trips)") {
		t.Errorf("missing header in %s", out)
	}
	if !strings.Contains(out, "Most Frequent Month: January") {
		t.Errorf("missing month line in %s", out)
	}
}

func TestStatsCmd_InvalidArgs(t *testing.T) {
	dir := dataDir(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "missing city", args: []string{"stats", "--data-dir", dir}},
		{name: "unknown city", args: []string{"stats", "--data-dir", dir, "--city", "Boston"}},
		{name: "bad month", args: []string{"stats", "--data-dir", dir, "--city", "Chicago", "--month", "July"}},
		{name: "bad day", args: []string{"stats", "--data-dir", dir, "--city", "Chicago", "--day", "Someday"}},
		{name: "bad format", args: []string{"stats", "--data-dir", dir, "--city", "Chicago", "--format", "xml"}},
		{name: "missing file", args: []string{"stats", "--data-dir", dir, "--city", "Washington"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := run(t, "", tt.args...); err == nil {
				t.Errorf("expected error for %v", tt.args)
			}
		})
	}
}

func TestCitiesCmd(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bikeshare.toml")
	content := `
data_dir = "/srv/bikeshare"
database = "postgres://localhost/bikeshare"

[[cities]]
name = "Chicago"
file = "chicago.csv"

[[cities]]
name = "Washington"
table = "washington_trips"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create config: %v", err)
	}

	out, err := run(t, "", "cities", "--config", configPath)
	if err != nil {
		t.Fatalf("cities: %v", err)
	}

	if !strings.Contains(out, filepath.Join("/srv/bikeshare", "chicago.csv")) {
		t.Errorf("missing chicago source in %s", out)
	}
	if !strings.Contains(out, "table washington_trips") {
		t.Errorf("missing washington source in %s", out)
	}
}

func TestRootCmd_Explore(t *testing.T) {
	out, err := run(t, "chicago\nall\nmonday\nyes\nno\n", "--data-dir", dataDir(t))
	if err != nil {
		t.Fatalf("explore: %v", err)
	}

	if !strings.Contains(out, "Most Frequent Day: Monday") {
		t.Errorf("missing day line in %s", out)
	}
	if !strings.Contains(out, "You have reached the end of the filtered data.") {
		t.Errorf("single page should end the data")
	}
}

func TestRootCmd_BadConfig(t *testing.T) {
	if _, err := run(t, "", "--config", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing config should fail")
	}
}
