package demand

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// badgeListSplitter matches the delimiters seen in request-list badge
// cells: commas and semicolons.
func splitBadgeList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseRequestListXLSX feeds an Aggregator from the request-list schema:
// one spreadsheet row per scout, with a delimited list of requested
// badges in the second column. A leading header row ("Scout", "Name",
// ...) is skipped.
func ParseRequestListXLSX(path string, agg *Aggregator) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("opening request list %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return fmt.Errorf("request list %s: no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return fmt.Errorf("reading request list %s: %w", path, err)
	}

	for i, row := range rows {
		if len(row) < 2 {
			continue
		}
		scout := strings.TrimSpace(row[0])
		badges := strings.TrimSpace(row[1])
		if scout == "" && badges == "" {
			continue
		}
		if i == 0 && isRequestListHeader(scout) {
			continue
		}
		if err := ParseRequestListRow(scout, splitBadgeList(badges), agg); err != nil {
			return fmt.Errorf("request list %s row %d: %w", path, i+1, err)
		}
	}
	return nil
}

// ParseRequestListRow records one scout's delimited badge requests.
func ParseRequestListRow(scout string, rawBadges []string, agg *Aggregator) error {
	for _, b := range rawBadges {
		if err := agg.Add(scout, b, FormRequestList); err != nil {
			return err
		}
	}
	return nil
}

func isRequestListHeader(firstCell string) bool {
	switch strings.ToLower(firstCell) {
	case "scout", "name", "scout name":
		return true
	}
	return false
}
