package scoutbook

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/troop32/mbcscope/internal/utils"
	"github.com/troop32/mbcscope/pkg/join"
)

var (
	emailRe    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	locationRe = regexp.MustCompile(`([A-Za-z .'-]+),\s*([A-Z]{2})\s*(\d{5})`)
	yptRe      = regexp.MustCompile(`(?i)Expires:\s*(\d{1,2}/\d{1,2}/\d{4})`)

	phoneRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Home[:\s]*\(?(\d{3})\)?[-.\s]*(\d{3})[-.\s]*(\d{4})`),
		regexp.MustCompile(`(?i)Mobile[:\s]*\(?(\d{3})\)?[-.\s]*(\d{3})[-.\s]*(\d{4})`),
		regexp.MustCompile(`(?i)Work[:\s]*\(?(\d{3})\)?[-.\s]*(\d{3})[-.\s]*(\d{4})`),
	}
)

// TotalPages reads the pagination count from a result page. The page
// count lives in a hidden input named pageCount.
func TotalPages(html string) (int, bool) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return 0, false
	}
	val, ok := doc.Find(`input[name="pageCount"], #pageCount`).First().Attr("value")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// ParseCounselors extracts the counselor records from one search-result
// page. Counselor blocks are the indented result divs; any div whose
// text contains an email address serves as the fallback when the layout
// changes.
func ParseCounselors(r io.Reader) ([]join.RawCounselor, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	blocks := doc.Find(`div[style*="margin-left: 65px"]`)
	if blocks.Length() == 0 {
		blocks = doc.Find("div").FilterFunction(func(_ int, s *goquery.Selection) bool {
			// Only leaf blocks, otherwise every ancestor matches too.
			if s.Find("div").Length() > 0 {
				return false
			}
			return emailRe.MatchString(s.Text())
		})
		if blocks.Length() > 0 {
			utils.Log.Debugf("scoutbook: layout fallback matched %d blocks", blocks.Length())
		}
	}

	var counselors []join.RawCounselor
	blocks.Each(func(_ int, s *goquery.Selection) {
		c, ok := parseCounselorBlock(s)
		if !ok {
			return
		}
		counselors = append(counselors, c)
	})
	return counselors, nil
}

func parseCounselorBlock(s *goquery.Selection) (join.RawCounselor, bool) {
	var c join.RawCounselor

	text := s.Text()
	lines := nonEmptyLines(text)
	if len(lines) == 0 {
		return c, false
	}
	c.RawFullName = lines[0]

	c.Town, c.State, c.Zip = parseLocation(s, text)

	for _, re := range phoneRes {
		if m := re.FindStringSubmatch(text); m != nil {
			c.Phones = append(c.Phones, "("+m[1]+") "+m[2]+"-"+m[3])
		}
	}
	c.Email = emailRe.FindString(text)
	c.YPTExpiration = parseYPT(s, text)
	c.MeritBadges = parseBadges(s)

	if c.RawFullName == "" || (c.Email == "" && len(c.Phones) == 0) {
		utils.Log.WithField("name", c.RawFullName).Debug("scoutbook: skipping block without contact info")
		return c, false
	}
	return c, true
}

// parseLocation prefers the structured address div, falling back to the
// "Town, ST 01234" pattern embedded in the block text.
func parseLocation(s *goquery.Selection, text string) (town, state, zip string) {
	if addr := s.Find("div.address").First(); addr.Length() > 0 {
		text = addr.Text()
	}
	m := locationRe.FindStringSubmatch(text)
	if m == nil {
		return "", "", ""
	}
	return strings.TrimSpace(m[1]), m[2], m[3]
}

// parseYPT reads the youth-protection expiration date. The yptDate div
// can be a sibling rather than a child, so ancestors are searched too.
func parseYPT(s *goquery.Selection, text string) string {
	ypt := s.Find("div.yptDate").First()
	if ypt.Length() == 0 {
		ypt = s.Parents().Find("div.yptDate").First()
	}
	if ypt.Length() > 0 {
		text = ypt.Text()
	}
	if m := yptRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func parseBadges(s *goquery.Selection) []string {
	var badges []string
	s.Find("div.mbContainer div.mb").Each(func(_ int, b *goquery.Selection) {
		name := strings.TrimSpace(b.Text())
		if name == "" {
			return
		}
		lower := strings.ToLower(name)
		if strings.Contains(lower, "council") || strings.Contains(lower, "approved") {
			return
		}
		badges = append(badges, name)
	})
	return badges
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			out = append(out, t)
		}
	}
	return out
}
