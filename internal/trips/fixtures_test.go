package trips

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-01-01 09:07:57,2017-01-01 09:20:53,776,Clark St & Lake St,Wells St & Concord Ln,Subscriber,Male,1992.0
955915,2017-01-02 18:40:00,2017-01-02 18:47:00,420,Streeter Dr & Grand Ave,Lake Shore Dr & Monroe St,Customer,,
9031,2017-01-02 09:15:00,2017-01-02 09:30:00,900,Clark St & Lake St,Wells St & Concord Ln,Subscriber,Female,1985.0
304487,2017-01-09 09:01:00,2017-01-09 09:10:00,540,Streeter Dr & Grand Ave,Clark St & Lake St,Subscriber,Male,1992.0
45207,2017-02-06 08:30:00,2017-02-06 08:45:00,900,Canal St & Adams St,Clark St & Lake St,Subscriber,Female,1970.0
1473887,2017-03-15 17:20:00,2017-03-15 17:35:00,900,Clark St & Lake St,Wells St & Concord Ln,Customer,,
961916,2017-05-20 09:59:00,2017-05-20 10:10:00,660,Streeter Dr & Grand Ave,Canal St & Adams St,Subscriber,Male,2001.0
65924,2017-06-23 12:00:00,2017-06-23 12:20:00,1200,Canal St & Adams St,Streeter Dr & Grand Ave,,Male,1992.0
`

var washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
482740,2017-03-11 10:40:00,2017-03-11 10:46:42,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
1330037,2017-05-30 01:02:59,2017-05-30 01:19:39,1000,17th St & Massachusetts Ave NW,5th & K St NW,Customer
665458,2017-04-02 07:48:35,2017-04-02 07:58:35.5,600.5,14th & Belmont St NW,15th & K St NW,Subscriber
1481135,2017-06-10 08:36:00,2017-06-10 08:41:00,300,Yuma St & Tenley Circle NW,14th & Belmont St NW,Customer
1148202,2017-05-14 09:27:00,2017-05-14 09:31:10,250.25,14th & Belmont St NW,15th & K St NW,Subscriber
1594275,2017-06-20 17:00:00,2017-06-20 17:20:00,1200,5th & K St NW,17th St & Massachusetts Ave NW,Subscriber
`

func parseCSV(t *testing.T, content string) [][]string {
	t.Helper()
	records, err := csv.NewReader(strings.NewReader(content)).ReadAll()
	if err != nil {
		t.Fatalf("Failed to parse fixture: %v", err)
	}
	return records
}

func mustTable(t *testing.T, city, content string) *Table {
	t.Helper()
	table, err := NewTable(city, parseCSV(t, content))
	if err != nil {
		t.Fatalf("NewTable(%s): %v", city, err)
	}
	return table
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create %s: %v", name, err)
	}
	return path
}
