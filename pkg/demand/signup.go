package demand

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// ParseSignupCSV feeds an Aggregator from the signup-form schema: the
// sheet is split into "Eagle Merit Badges" / "Non-Eagle Merit Badges"
// sections, each badge row carries the badge name in column B (Eagle
// badges marked with a trailing '*') and the requesting scouts in
// columns C onward.
func ParseSignupCSV(r io.Reader, agg *Aggregator) error {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	inSection := false
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("signup csv row %d: %w", rowNum+1, err)
		}
		rowNum++
		if len(row) < 2 {
			continue
		}

		colA := strings.TrimSpace(row[0])
		colB := strings.TrimSpace(row[1])

		// Section headers can sit in column A or B.
		sectionText := colA + " " + colB
		switch {
		case strings.Contains(sectionText, "Eagle Merit Badges"):
			// Covers both the Eagle and Non-Eagle headers; the badge
			// universe, not the sheet section, decides Eagle status.
			inSection = true
			continue
		case colB == "Merit Badge":
			continue
		}

		if !inSection || colB == "" {
			continue
		}

		badgeName := strings.TrimSpace(strings.TrimRight(colB, "*"))
		if badgeName == "" {
			continue
		}
		for _, cell := range row[2:] {
			scout := strings.TrimSpace(cell)
			if scout == "" {
				continue
			}
			if err := agg.Add(scout, badgeName, FormSignup); err != nil {
				return fmt.Errorf("signup csv row %d: %w", rowNum, err)
			}
		}
	}
	return nil
}
