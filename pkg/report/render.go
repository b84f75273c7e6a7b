package report

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/troop32/mbcscope/internal/utils"
)

// Renderer writes the assembled report structures out as HTML files,
// one per report, into a per-run directory.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the built-in report templates.
func NewRenderer() (*Renderer, error) {
	tmpl := template.New("reports").Funcs(template.FuncMap{
		"join": strings.Join,
		"badgeList": func(badges []string) string {
			return strings.Join(badges, ", ")
		},
	})
	var err error
	for name, body := range reportTemplates {
		if _, err = tmpl.New(name).Parse(body); err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
	}
	return &Renderer{tmpl: tmpl}, nil
}

// OutputDirName builds the per-run report directory name from the
// sorted unit list plus the run timestamp.
func OutputDirName(r *Report) string {
	prefix := strings.Join(r.Units, "_")
	if prefix == "" {
		prefix = "MBC"
	}
	return fmt.Sprintf("%s_MBC_Reports_%s", prefix, r.GeneratedAt.Format("20060102_150405"))
}

// RenderAll writes the four reports under dir, creating it if needed,
// and returns the written file paths.
func (rd *Renderer) RenderAll(r *Report, dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating report directory: %w", err)
	}

	files := []struct {
		template string
		filename string
	}{
		{"troop_counselors", "troop_counselors.html"},
		{"non_counselors", "non_counselors.html"},
		{"coverage_report", "coverage_report.html"},
		{"priority_report", "priority_report.html"},
	}

	var written []string
	for _, f := range files {
		path := filepath.Join(dir, f.filename)
		out, err := os.Create(path)
		if err != nil {
			return written, fmt.Errorf("creating %s: %w", path, err)
		}
		if err := rd.tmpl.ExecuteTemplate(out, f.template, r); err != nil {
			out.Close()
			return written, fmt.Errorf("rendering %s: %w", f.template, err)
		}
		if err := out.Close(); err != nil {
			return written, err
		}
		utils.Log.WithField("path", path).Info("wrote report")
		written = append(written, path)
	}
	return written, nil
}
