// Package roster extracts raw adult records from saved unit roster HTML
// exports. It is a boundary collaborator: its output is unvalidated and
// the joiner owns all matching decisions.
package roster

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/join"
)

const adultSectionMarker = "Adult Members"

// Adult member lines look like "12   Jane Q Doe \t ... \t Committee Member".
var adultLineRe = regexp.MustCompile(`^(\d+)\s+(\S.*?)\t`)

// memberIDLineRe matches the detail line that follows each member row.
var memberIDLineRe = regexp.MustCompile(`^\d{7,}\s`)

// ParseFile extracts the adult records from one roster export.
func ParseFile(path, unitID string) ([]join.RawAdult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()
	adults, err := Parse(f, unitID)
	if err != nil {
		return nil, fmt.Errorf("parsing roster %s: %w", path, err)
	}
	return adults, nil
}

// Parse reads a roster HTML export and returns the raw adult records
// found in its "Adult Members" section. Records with the non-leader
// position marker are dropped here; the joiner tolerates either a
// filtered or unfiltered stream.
func Parse(r io.Reader, unitID string) ([]join.RawAdult, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing roster HTML: %w", err)
	}

	text := doc.Text()
	idx := strings.Index(text, adultSectionMarker)
	if idx == -1 {
		utils.Log.WithField("unit", unitID).Warn("roster: no Adult Members section found")
		return nil, nil
	}
	return parseAdultLines(text[idx:], unitID), nil
}

func parseAdultLines(section, unitID string) []join.RawAdult {
	var adults []join.RawAdult
	lines := strings.Split(section, "\n")

	for i, line := range lines {
		line = strings.TrimRight(line, "\r")
		m := adultLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		fullName := strings.TrimSpace(m[2])
		if fullName == "" || strings.Contains(fullName, "Name") || strings.Contains(fullName, "MemberID") {
			continue
		}

		// The position title sits in the last tab-separated field after
		// the address and gender columns.
		parts := strings.Split(line, "\t")
		position := ""
		if len(parts) >= 5 {
			position = strings.TrimSpace(parts[len(parts)-1])
		}

		// Some position titles wrap onto the following line.
		if i+1 < len(lines) {
			next := strings.TrimSpace(lines[i+1])
			if next != "" && !adultLineRe.MatchString(next) && !memberIDLineRe.MatchString(next) && len(strings.Fields(next)) <= 3 {
				position = strings.TrimSpace(position + " " + next)
			}
		}

		if position == join.NonLeaderPosition {
			utils.Log.WithField("name", fullName).Debug("roster: skipping Unit Participant")
			continue
		}

		adults = append(adults, join.RawAdult{
			RawFullName: fullName,
			UnitID:      unitID,
			Position:    position,
		})
	}
	utils.Log.WithField("unit", unitID).Infof("roster: extracted %d adults", len(adults))
	return adults
}
