package report

const baseStyle = `<style>
body { font-family: Arial, sans-serif; max-width: 1200px; margin: 0 auto; padding: 20px; background-color: #f5f5f5; }
.header { background-color: #003f7f; color: white; padding: 20px; border-radius: 8px; margin-bottom: 20px; }
.header h1 { margin: 0; font-size: 24px; }
.timestamp { font-size: 14px; opacity: 0.9; }
.content { background-color: white; padding: 20px; border-radius: 8px; box-shadow: 0 2px 4px rgba(0,0,0,0.1); }
table { width: 100%; border-collapse: collapse; margin-top: 20px; }
th { background-color: #003f7f; color: white; padding: 10px; text-align: left; }
td { padding: 8px 10px; border-bottom: 1px solid #ddd; vertical-align: top; }
tr:nth-child(even) { background-color: #f9f9f9; }
.supplemental { color: #8a6d3b; font-style: italic; }
.tier-critical { border-left: 6px solid #c0392b; padding-left: 8px; }
.tier-high { border-left: 6px solid #e67e22; padding-left: 8px; }
.tier-medium { border-left: 6px solid #f1c40f; padding-left: 8px; }
h2 { color: #003f7f; margin-top: 30px; }
</style>`

var reportTemplates = map[string]string{
	"troop_counselors": `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Troop Merit Badge Counselors</title>` + baseStyle + `</head>
<body>
<div class="header">
  <h1>Troop Merit Badge Counselors &mdash; {{join .Units ", "}}</h1>
  <div class="timestamp">Generated {{.GeneratedAt.Format "January 2, 2006 3:04 PM"}}</div>
</div>
<div class="content">
  <p>{{.Summary.MBCMatches}} of {{.Summary.TotalAdults}} registered adults are Merit Badge Counselors.
  {{if .Summary.SupplementalMatches}}{{.Summary.SupplementalMatches}} additional unit-associated counselor(s) listed from supplemental input.{{end}}</p>
  <table>
    <tr><th>Name</th><th>Units</th><th>Merit Badges</th><th>Email</th><th>Phone</th><th>YPT Expires</th></tr>
    {{range .TroopCounselors}}
    <tr>
      <td>{{.FullName}}{{if .IsSupplemental}} <span class="supplemental">(unit-associated)</span>{{end}}</td>
      <td>{{.UnitDisplay}}</td>
      <td>{{badgeList .MeritBadges}}</td>
      <td>{{.Email}}</td>
      <td>{{join .Phones ", "}}</td>
      <td>{{.YPTExpiration}}</td>
    </tr>
    {{end}}
  </table>
</div>
</body>
</html>
`,

	"non_counselors": `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Leaders Who Are Not Counselors</title>` + baseStyle + `</head>
<body>
<div class="header">
  <h1>Adult Leaders Who Are Not Merit Badge Counselors &mdash; {{join .Units ", "}}</h1>
  <div class="timestamp">Generated {{.GeneratedAt.Format "January 2, 2006 3:04 PM"}}</div>
</div>
<div class="content">
  <p>These registered adult leaders are recruitment candidates: they are not currently certified for any merit badge.</p>
  <table>
    <tr><th>Name</th><th>Units</th><th>Position</th></tr>
    {{range .NonCounselorLeaders}}
    <tr>
      <td>{{.FullName}}</td>
      <td>{{.UnitDisplay}}</td>
      <td>{{range $unit, $pos := .Positions}}{{$unit}}: {{$pos}}<br>{{end}}</td>
    </tr>
    {{end}}
  </table>
</div>
</body>
</html>
`,

	"coverage_report": `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Merit Badge Coverage</title>` + baseStyle + `</head>
<body>
<div class="header">
  <h1>Merit Badge Coverage &mdash; {{join .Units ", "}}</h1>
  <div class="timestamp">Generated {{.GeneratedAt.Format "January 2, 2006 3:04 PM"}}</div>
</div>
<div class="content">
  <h2>Eagle-Required Badges With Counselors</h2>
  <table>
    <tr><th>Merit Badge</th><th>Counselors</th></tr>
    {{range .Coverage.EagleWithCounselors}}
    <tr><td>{{.Badge}}</td><td>{{range .Counselors}}{{.Name}} ({{.UnitDisplay}})<br>{{end}}</td></tr>
    {{end}}
  </table>
  <h2>Eagle-Required Badges Without Counselors</h2>
  <table>
    <tr><th>Merit Badge</th></tr>
    {{range .Coverage.EagleWithoutCounselors}}<tr><td>{{.Badge}}</td></tr>{{end}}
  </table>
  <h2>Other Badges With Counselors</h2>
  <table>
    <tr><th>Merit Badge</th><th>Counselors</th></tr>
    {{range .Coverage.NonEagleWithCounselors}}
    <tr><td>{{.Badge}}</td><td>{{range .Counselors}}{{.Name}} ({{.UnitDisplay}})<br>{{end}}</td></tr>
    {{end}}
  </table>
  <h2>Other Badges Without Counselors</h2>
  <table>
    <tr><th>Merit Badge</th></tr>
    {{range .Coverage.NonEagleWithoutCounselors}}<tr><td>{{.Badge}}</td></tr>{{end}}
  </table>
</div>
</body>
</html>
`,

	"priority_report": `<!DOCTYPE html>
<html lang="en">
<head><meta charset="UTF-8"><title>Counselor Recruitment Priorities</title>` + baseStyle + `</head>
<body>
<div class="header">
  <h1>Counselor Recruitment Priorities &mdash; {{join .Units ", "}}</h1>
  <div class="timestamp">Generated {{.GeneratedAt.Format "January 2, 2006 3:04 PM"}}</div>
</div>
<div class="content">
  <p>{{.Summary.CriticalCount}} critical, {{.Summary.HighCount}} high and {{.Summary.MediumCount}} medium
  priority badges; {{.Summary.ScoutsImpacted}} Scout(s) impacted by priority gaps.</p>

  <h2 class="tier-critical">Critical Priority</h2>
  <p>Eagle-required merit badges with 0 or 1 counselors. Highest recruitment priority regardless of current requests.</p>
  <table>
    <tr><th>Merit Badge</th><th>Counselors</th><th>Scouts Requesting</th></tr>
    {{range .Priority.Critical}}
    <tr><td>{{.Badge}}</td><td>{{.CounselorCount}}</td><td>{{if .DemandingScouts}}{{join .DemandingScouts ", "}}{{else}}&mdash;{{end}}</td></tr>
    {{end}}
  </table>

  <h2 class="tier-high">High Priority</h2>
  <p>Non-Eagle badges with no counselor and three or more Scouts requesting.</p>
  <table>
    <tr><th>Merit Badge</th><th>Scouts Requesting</th></tr>
    {{range .Priority.High}}
    <tr><td>{{.Badge}}</td><td>{{join .DemandingScouts ", "}}</td></tr>
    {{end}}
  </table>

  <h2 class="tier-medium">Medium Priority</h2>
  <p>Non-Eagle badges with no counselor and one or two Scouts requesting.</p>
  <table>
    <tr><th>Merit Badge</th><th>Scouts Requesting</th></tr>
    {{range .Priority.Medium}}
    <tr><td>{{.Badge}}</td><td>{{join .DemandingScouts ", "}}</td></tr>
    {{end}}
  </table>

  <h2>Adequately Covered</h2>
  <table>
    <tr><th>Merit Badge</th><th>Counselors</th></tr>
    {{range .Priority.AdequateWithCounselors}}
    <tr><td>{{.Badge}}</td><td>{{.CounselorCount}}</td></tr>
    {{end}}
  </table>
</div>
</body>
</html>
`,
}
