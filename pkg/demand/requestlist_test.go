package demand

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeRequestList(t *testing.T, rows [][]string) string {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			ref, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue(sheet, ref, cell); err != nil {
				t.Fatal(err)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "requests.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseRequestListXLSX(t *testing.T) {
	path := writeRequestList(t, [][]string{
		{"Scout", "Requested Badges"},
		{"Alex Lee", "Camping, Chess"},
		{"Ben Ortiz", "Camping; First Aid"},
		{"", ""},
	})

	agg := testAggregator(t)
	if err := ParseRequestListXLSX(path, agg); err != nil {
		t.Fatal(err)
	}
	res := agg.Result()
	if bd := res.BadgeDemand["Camping"]; bd == nil || bd.Count != 2 {
		t.Fatalf("unexpected Camping demand: %+v", bd)
	}
	if bd := res.BadgeDemand["Chess"]; bd == nil || bd.Count != 1 {
		t.Fatalf("unexpected Chess demand: %+v", bd)
	}
	if res.Summary.UniqueScouts != 2 {
		t.Fatalf("unique scouts = %d, want 2", res.Summary.UniqueScouts)
	}
}

func TestParseRequestListXLSXMissingScoutFatal(t *testing.T) {
	path := writeRequestList(t, [][]string{
		{"Scout", "Requested Badges"},
		{"", "Camping"},
	})

	agg := testAggregator(t)
	if err := ParseRequestListXLSX(path, agg); err == nil {
		t.Fatal("row with badges but no scout must fail")
	}
}
